package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/orrery/internal/catalog"
	"github.com/san-kum/orrery/internal/clock"
	"github.com/san-kum/orrery/internal/config"
	"github.com/san-kum/orrery/internal/export"
	"github.com/san-kum/orrery/internal/metrics"
	"github.com/san-kum/orrery/internal/orbit"
	"github.com/san-kum/orrery/internal/server"
	"github.com/san-kum/orrery/internal/texcache"
	"github.com/san-kum/orrery/internal/viz"
)

var (
	cfg *config.Config

	configFile string
	logLevel   string
	preset     string
	dataDir    string

	at       string
	asJSON   bool
	asCSV    bool
	samples  int
	stepDays float64

	distSamples int

	svgPath    string
	pngPath    string
	size       int
	resolution int
	rings      bool
	texType    string
	baseColor  string
	noise      float64
	detail     float64
	moon       bool
	seed       uint64
	workers    int

	theme string
	addr  string
)

func main() {
	rootCmd := &cobra.Command{
		Use:               "orrery",
		Short:             "keplerian solar system model and planet texture synthesizer",
		SilenceUsage:      true,
		PersistentPreRunE: loadConfig,
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "apply a preset, e.g. clock/fast or high")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".orrery", "data directory for baked textures")

	positionsCmd := &cobra.Command{
		Use:   "positions",
		Short: "print body positions",
		RunE:  printPositions,
	}
	positionsCmd.Flags().StringVar(&at, "at", "", "time (RFC 3339 or YYYY-MM-DD), default clock.start")
	positionsCmd.Flags().BoolVar(&asJSON, "json", false, "write JSON")
	positionsCmd.Flags().BoolVar(&asCSV, "csv", false, "write CSV")
	positionsCmd.Flags().IntVar(&samples, "samples", 1, "number of snapshots")
	positionsCmd.Flags().Float64Var(&stepDays, "step", 1, "days between snapshots")

	distanceCmd := &cobra.Command{
		Use:   "distance [body]",
		Short: "plot heliocentric distance over one orbit",
		Args:  cobra.ExactArgs(1),
		RunE:  plotDistance,
	}
	distanceCmd.Flags().StringVar(&at, "at", "", "start time, default clock.start")
	distanceCmd.Flags().IntVar(&distSamples, "samples", 80, "samples per orbit")

	orbitsCmd := &cobra.Command{
		Use:   "orbits",
		Short: "write a top-down SVG of every orbit",
		RunE:  writeOrbits,
	}
	orbitsCmd.Flags().StringVarP(&svgPath, "out", "o", "orbits.svg", "output file")
	orbitsCmd.Flags().IntVar(&size, "size", 800, "image size in pixels")
	orbitsCmd.Flags().StringVar(&at, "at", "", "time of the body markers, default clock.start")

	textureCmd := &cobra.Command{
		Use:   "texture [body]",
		Short: "synthesize one texture as PNG",
		Args:  cobra.MaximumNArgs(1),
		RunE:  writeTexture,
	}
	textureCmd.Flags().StringVarP(&pngPath, "out", "o", "", "output file, default <body>.png")
	textureCmd.Flags().IntVar(&resolution, "res", 0, "resolution, default texture.resolution")
	textureCmd.Flags().BoolVar(&rings, "rings", false, "render the body's rings")
	textureCmd.Flags().StringVar(&texType, "type", "", "texture type when no body is given")
	textureCmd.Flags().StringVar(&baseColor, "color", "", "base color when no body is given")
	textureCmd.Flags().Float64Var(&noise, "noise", 0.5, "noise intensity when no body is given")
	textureCmd.Flags().Float64Var(&detail, "detail", 4, "detail when no body is given")
	textureCmd.Flags().BoolVar(&moon, "moon", false, "lunar variant of rocky when no body is given")
	textureCmd.Flags().Uint64Var(&seed, "seed", 0, "seed, default texture.seed")

	bakeCmd := &cobra.Command{
		Use:   "bake",
		Short: "synthesize every catalog texture into the data directory",
		RunE:  bakeTextures,
	}
	bakeCmd.Flags().IntVar(&resolution, "res", 0, "resolution, default texture.resolution")
	bakeCmd.Flags().IntVar(&workers, "workers", 0, "parallel syntheses, default texture.workers or GOMAXPROCS")
	bakeCmd.Flags().Uint64Var(&seed, "seed", 0, "seed, default texture.seed")

	bakesCmd := &cobra.Command{
		Use:   "bakes",
		Short: "list baked texture sets",
		RunE:  listBakes,
	}

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run the orrery in the terminal",
		RunE:  runLive,
	}
	liveCmd.Flags().StringVar(&theme, "theme", "deep-space", "color theme ("+strings.Join(viz.ThemeNames(), ", ")+")")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "serve positions, textures and a websocket stream",
		RunE:  serve,
	}
	serveCmd.Flags().StringVar(&addr, "addr", "", "listen address, default server.addr")

	presetsCmd := &cobra.Command{
		Use:   "presets [group]",
		Short: "list available presets",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			groups := config.ListGroups()
			if len(args) == 1 {
				if config.ListPresets(args[0]) == nil {
					return fmt.Errorf("%w: group %s (available: %v)", config.ErrUnknownPreset, args[0], groups)
				}
				groups = args
			}
			for _, g := range groups {
				fmt.Printf("%s:\n", g)
				for _, p := range config.ListPresets(g) {
					fmt.Printf("  %s/%s\n", g, p)
				}
			}
			return nil
		},
	}

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the default config",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "orrery.yaml"
			if len(args) == 1 {
				path = args[0]
			}
			if err := config.Save(path, config.DefaultConfig()); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", path)
			return nil
		},
	}

	rootCmd.AddCommand(positionsCmd, distanceCmd, orbitsCmd, textureCmd, bakeCmd, bakesCmd, liveCmd, serveCmd, presetsCmd, initCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig resolves the config file, preset and log level before any
// command runs.
func loadConfig(cmd *cobra.Command, args []string) error {
	cfg = config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if preset != "" {
		if err := cfg.ApplyPreset(preset); err != nil {
			return err
		}
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	lvl, err := cfg.LogLevel()
	if err != nil {
		return err
	}
	log.SetLevel(lvl)
	return nil
}

// resolveTime parses --at, falling back to clock.start.
func resolveTime() (time.Time, error) {
	if at == "" {
		return cfg.StartTime(time.Now())
	}
	c := *cfg
	c.Clock.Start = at
	return c.StartTime(time.Now())
}

func newClock() (*clock.Clock, error) {
	start, err := cfg.StartTime(time.Now())
	if err != nil {
		return nil, err
	}
	clk := clock.New(start)
	clk.SetSpeed(cfg.Clock.Speed)
	clk.SetPlaying(cfg.Clock.Playing)
	return clk, nil
}

func printPositions(cmd *cobra.Command, args []string) error {
	t, err := resolveTime()
	if err != nil {
		return err
	}
	if samples < 1 {
		samples = 1
	}
	step := time.Duration(stepDays * 24 * float64(time.Hour))
	eph := export.Sample(cfg.Elements(), t, step, samples, cfg.ScaleFactor)

	switch {
	case asJSON:
		return export.WriteJSON(os.Stdout, eph)
	case asCSV:
		return export.WriteCSV(os.Stdout, eph)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tBODY\tX (AU)\tY (AU)\tZ (AU)\tR (AU)\tSCENE")
	for _, r := range eph.Rows {
		fmt.Fprintf(w, "%s\t%s\t%.4f\t%.4f\t%.4f\t%.4f\t(%.1f, %.1f, %.1f)\n",
			r.Time.Format("2006-01-02 15:04"),
			r.ID,
			r.Position[0], r.Position[1], r.Position[2],
			r.Distance,
			r.Scene[0], r.Scene[1], r.Scene[2],
		)
	}
	return w.Flush()
}

func plotDistance(cmd *cobra.Command, args []string) error {
	id := args[0]
	table := cfg.Elements()
	el, ok := table[id]
	if !ok {
		return fmt.Errorf("%w: %s (available: %v)", orbit.ErrUnknownBody, id, table.IDs())
	}
	t0, err := resolveTime()
	if err != nil {
		return err
	}
	n := max(2, distSamples)
	period := el.PeriodDays()
	data := make([]float64, n)
	lo, hi := math.Inf(1), math.Inf(-1)
	d0 := orbit.DaysSinceJ2000(t0)
	for i := range data {
		data[i] = orbit.SolveAt(el, d0+float64(i)/float64(n)*period).Radius
		lo, hi = math.Min(lo, data[i]), math.Max(hi, data[i])
	}

	fmt.Printf("body: %s\n", id)
	fmt.Printf("period: %.1f days\n", period)
	fmt.Printf("perihelion: %.4f AU  aphelion: %.4f AU\n\n", lo, hi)
	graph := asciigraph.Plot(data,
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Precision(3),
		asciigraph.Caption(fmt.Sprintf("%s distance (AU) from %s", id, t0.Format("2006-01-02"))),
	)
	fmt.Println(graph)
	return nil
}

func writeOrbits(cmd *cobra.Command, args []string) error {
	t, err := resolveTime()
	if err != nil {
		return err
	}
	table := cfg.Elements()
	positions := catalog.ScenePositions(table, t, cfg.ScaleFactor)

	var orbits []export.Orbit
	for _, id := range catalog.SortedIDs(positions) {
		o := export.Orbit{ID: id, Color: "#888888", Radius: 3}
		if b, ok := catalog.Lookup(id); ok {
			o.Color = b.Color
			o.Radius = math.Max(2, b.Radius)
		}
		if el, ok := table[id]; ok {
			for _, p := range orbit.Trace(el, orbit.J2000, 360) {
				s := orbit.ScaleForDisplay(p, cfg.ScaleFactor)
				o.Points = append(o.Points, export.Point{X: s.X, Y: s.Z})
			}
		}
		p := positions[id]
		o.Body = &export.Point{X: p.X, Y: p.Z}
		orbits = append(orbits, o)
	}

	if err := os.WriteFile(svgPath, []byte(export.OrbitsToSVG(orbits, size)), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", svgPath)
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	clk, err := newClock()
	if err != nil {
		return err
	}
	m := viz.NewModel(viz.Options{
		Clock:    clk,
		Table:    cfg.Elements(),
		Scale:    cfg.ScaleFactor,
		Interval: cfg.StepInterval(),
		Theme:    theme,
	})
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func serve(cmd *cobra.Command, args []string) error {
	clk, err := newClock()
	if err != nil {
		return err
	}
	if addr != "" {
		cfg.Server.Addr = addr
	}

	m := metrics.NewCollector()
	cache := texcache.New(cfg.Texture.CacheSize, texcache.WithRecorder(m))
	logger := log.Default()
	srv := server.New(server.Options{
		Addr:         cfg.Server.Addr,
		Scale:        cfg.ScaleFactor,
		Resolution:   cfg.Texture.Resolution,
		Seed:         cfg.Texture.Seed,
		FPS:          cfg.Server.FPS,
		Step:         cfg.StepInterval(),
		TextureRPS:   cfg.Server.TextureRPS,
		TextureBurst: cfg.Server.TextureBurst,
	}, clk, cfg.Elements(), cache, m, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return srv.Run(ctx)
}
