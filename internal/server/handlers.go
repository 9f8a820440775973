package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/san-kum/orrery/internal/catalog"
	"github.com/san-kum/orrery/internal/clock"
	"github.com/san-kum/orrery/internal/export"
	"github.com/san-kum/orrery/internal/texture"
)

// Positions is the body of /api/positions and of every stream frame.
type Positions struct {
	Clock  clock.State  `json:"clock"`
	Scale  float64      `json:"scale"`
	Bodies []export.Row `json:"bodies"`
}

func (s *Server) positions(st clock.State, scale float64) Positions {
	return Positions{
		Clock:  st,
		Scale:  scale,
		Bodies: export.Snapshot(s.table, st.Time, scale),
	}
}

func (s *Server) handleBodies(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, catalog.Bodies())
}

func (s *Server) handleClock(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.clock.State())
}

// handlePositions answers for ?t= (RFC 3339, default the clock) at
// ?scale= (default the configured scale).
func (s *Server) handlePositions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	st := s.clock.State()
	if v := q.Get("t"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, fmt.Errorf("%w: t: %v", ErrBadParam, err))
			return
		}
		st.Time = t.UTC()
	}
	scale := s.opts.Scale
	if v := q.Get("scale"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || !(f > 0) {
			s.writeError(w, http.StatusBadRequest, fmt.Errorf("%w: scale %q", ErrBadParam, v))
			return
		}
		scale = f
	}
	s.writeJSON(w, http.StatusOK, s.positions(st, scale))
}

// handleTexture serves a body's texture as PNG. ?res= overrides the
// resolution and ?rings=1 asks for the ring texture of a ringed body.
func (s *Server) handleTexture(w http.ResponseWriter, r *http.Request) {
	if !s.limiter.Allow(clientIP(r)) {
		s.metrics.RateLimited("textures")
		w.Header().Set("Retry-After", "1")
		s.writeError(w, http.StatusTooManyRequests, ErrRateLimited)
		return
	}

	id := r.PathValue("id")
	body, ok := catalog.Lookup(id)
	if !ok {
		s.writeError(w, http.StatusNotFound, fmt.Errorf("%w: %s", ErrUnknownBody, id))
		return
	}

	res := s.opts.Resolution
	if v := r.URL.Query().Get("res"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > texture.MaxResolution {
			s.writeError(w, http.StatusBadRequest, fmt.Errorf("%w: res %q", ErrBadParam, v))
			return
		}
		res = n
	}

	req, ok := body.TextureRequest(res, s.opts.Seed), body.Textured()
	if r.URL.Query().Get("rings") == "1" {
		req, ok = body.RingsRequest(res, s.opts.Seed)
	}
	if !ok {
		s.writeError(w, http.StatusNotFound, fmt.Errorf("%w: %s", ErrNoTexture, id))
		return
	}

	img, err := s.cache.Get(req)
	if err != nil {
		s.logger.Error("texture synthesis failed", "body", id, "err", err)
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	var buf bytes.Buffer
	if err := export.WritePNG(&buf, img); err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

func (s *Server) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("encode response", "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, code int, err error) {
	s.writeJSON(w, code, map[string]string{"error": err.Error()})
}
