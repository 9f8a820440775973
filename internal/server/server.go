// Package server publishes the orrery over HTTP: body metadata, scene
// positions, synthesized textures, a websocket frame stream driven by
// the shared clock, and Prometheus metrics.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/san-kum/orrery/internal/clock"
	"github.com/san-kum/orrery/internal/metrics"
	"github.com/san-kum/orrery/internal/orbit"
	"github.com/san-kum/orrery/internal/texcache"
)

const shutdownTimeout = 5 * time.Second

type Options struct {
	Addr       string
	Scale      float64
	Resolution int
	Seed       uint64
	FPS        int

	// Step is the wall time between clock steps.
	Step         time.Duration
	TextureRPS   float64
	TextureBurst int
}

func (o Options) withDefaults() Options {
	if o.Addr == "" {
		o.Addr = ":8080"
	}
	if !(o.Scale > 0) {
		o.Scale = orbit.DefaultScaleFactor
	}
	if o.Resolution <= 0 {
		o.Resolution = 512
	}
	if o.FPS <= 0 {
		o.FPS = 10
	}
	if o.Step <= 0 {
		o.Step = 100 * time.Millisecond
	}
	if !(o.TextureRPS > 0) {
		o.TextureRPS = 2
	}
	if o.TextureBurst < 1 {
		o.TextureBurst = 4
	}
	return o
}

type Server struct {
	opts     Options
	clock    *clock.Clock
	table    orbit.Table
	cache    *texcache.Cache
	metrics  *metrics.Collector
	logger   *log.Logger
	limiter  *IPRateLimiter
	upgrader websocket.Upgrader
	mux      *http.ServeMux
}

// New wires a server. A nil collector or logger gets a private one.
func New(opts Options, clk *clock.Clock, table orbit.Table, cache *texcache.Cache, m *metrics.Collector, logger *log.Logger) *Server {
	if m == nil {
		m = metrics.NewCollector()
	}
	if logger == nil {
		logger = log.Default()
	}
	if cache == nil {
		cache = texcache.New(texcache.DefaultCapacity, texcache.WithRecorder(m))
	}
	opts = opts.withDefaults()
	s := &Server{
		opts:    opts,
		clock:   clk,
		table:   table,
		cache:   cache,
		metrics: m,
		logger:  logger.WithPrefix("server"),
		limiter: NewIPRateLimiter(rate.Limit(opts.TextureRPS), opts.TextureBurst),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		mux: http.NewServeMux(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.handle("GET /api/bodies", "bodies", s.handleBodies)
	s.handle("GET /api/positions", "positions", s.handlePositions)
	s.handle("GET /api/clock", "clock", s.handleClock)
	s.handle("GET /api/textures/{id}", "textures", s.handleTexture)
	s.mux.HandleFunc("GET /ws", s.handleStream)
	s.mux.Handle("GET /metrics", s.metrics.Handler())
}

// handle counts responses per route. The websocket route is left out
// since hijacked connections have no status to record.
func (s *Server) handle(pattern, route string, h http.HandlerFunc) {
	s.mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, code: http.StatusOK}
		h(rec, r)
		s.metrics.RecordRequest(route, rec.code)
	})
}

func (s *Server) Handler() http.Handler { return s.mux }

// Run serves until ctx is done, stepping the clock in the background.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.opts.Addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.drive(gctx)
		return nil
	})
	g.Go(func() error {
		s.logger.Info("listening", "addr", s.opts.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// drive steps the clock every Step until ctx is done.
func (s *Server) drive(ctx context.Context) {
	ticker := time.NewTicker(s.opts.Step)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.clock.Step()
		}
	}
}

type statusRecorder struct {
	http.ResponseWriter
	code int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.code = code
	r.ResponseWriter.WriteHeader(code)
}
