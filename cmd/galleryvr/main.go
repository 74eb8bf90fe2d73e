package main

import (
	"context"
	"encoding/json"
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

	"github.com/san-kum/galleryvr/internal/config"
	"github.com/san-kum/galleryvr/internal/layout"
	"github.com/san-kum/galleryvr/internal/server"
	"github.com/san-kum/galleryvr/internal/tui"
	"github.com/san-kum/galleryvr/internal/viz"
	"github.com/san-kum/galleryvr/internal/watch"
)

var (
	dataDir    string
	configFile string
	verbose    bool

	// layout parameters
	count   float64
	radius  float64
	spacing float64
	height  float64
	preset  string
	format  string

	// render / export
	view         string
	tilt         float64
	svgOut       string
	width        int
	rows         int
	exportFormat string
	outDir       string
	all          bool
	workers      int

	addr string

	cfg *config.Config
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "galleryvr",
		Short:         "procedural 3d gallery layouts",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if cfg, err = loadConfig(); err != nil {
				return err
			}
			if !cmd.Flags().Changed("data") && cfg.DataDir != "" {
				dataDir = cfg.DataDir
			}
			level, err := log.ParseLevel(cfg.LogLevel)
			if err != nil {
				level = log.InfoLevel
			}
			if verbose {
				level = log.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(os.Stderr, level)))
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", config.DefaultDataDir, "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml or toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	layoutCmd := &cobra.Command{
		Use:   "layout [archetype]",
		Short: "compute placements",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLayout,
	}
	addLayoutFlags(layoutCmd)
	layoutCmd.Flags().StringVar(&format, "format", "table", "output format (table, json)")

	plotCmd := &cobra.Command{
		Use:   "plot [archetype]",
		Short: "plot yaw and height per index",
		Args:  cobra.MaximumNArgs(1),
		RunE:  plotLayout,
	}
	addLayoutFlags(plotCmd)

	previewCmd := &cobra.Command{
		Use:   "preview [archetype]",
		Short: "interactive layout editor",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runPreview,
	}
	addLayoutFlags(previewCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets [archetype]",
		Short: "list room presets",
		Args:  cobra.MaximumNArgs(1),
		RunE:  listPresets,
	}

	benchCmd := &cobra.Command{
		Use:   "bench [archetype]",
		Short: "benchmark layout generation",
		Args:  cobra.MaximumNArgs(1),
		RunE:  benchLayout,
	}

	renderCmd := &cobra.Command{
		Use:   "render [gallery_id]",
		Short: "draw a gallery in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  renderGallery,
	}
	renderCmd.Flags().StringVar(&view, "view", "plan", "view (plan, perspective)")
	renderCmd.Flags().IntVar(&width, "width", 72, "canvas width in cells")
	renderCmd.Flags().IntVar(&rows, "height", 24, "canvas height in cells")
	renderCmd.Flags().Float64Var(&tilt, "tilt", 0, "perspective camera pitch in degrees")
	renderCmd.Flags().StringVar(&svgOut, "svg", "", "also write the drawing to this svg file")

	exportCmd := &cobra.Command{
		Use:   "export [gallery_id]",
		Short: "export a gallery scene",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportGalleries,
	}
	exportCmd.Flags().StringVar(&exportFormat, "format", "svg", "output format (svg, json, yaml)")
	exportCmd.Flags().StringVar(&outDir, "out", ".", "output directory")
	exportCmd.Flags().BoolVar(&all, "all", false, "export every gallery")
	exportCmd.Flags().IntVar(&workers, "workers", 4, "concurrent exports with --all")

	watchCmd := &cobra.Command{
		Use:   "watch [file]",
		Short: "regenerate a layout whenever its config file changes",
		Args:  cobra.ExactArgs(1),
		RunE:  watchFile,
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "serve layouts and scenes over http",
		RunE:  serve,
	}
	serveCmd.Flags().StringVar(&addr, "addr", config.DefaultAddr, "listen address")

	rootCmd.AddCommand(layoutCmd, plotCmd, previewCmd, presetsCmd, benchCmd,
		renderCmd, exportCmd, watchCmd, serveCmd, galleryCommand())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	if configFile == "" {
		return config.DefaultConfig(), nil
	}
	c, err := config.Load(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return c, nil
}

func addLayoutFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&count, "count", config.DefaultCount, "number of artworks")
	cmd.Flags().Float64Var(&radius, "radius", layout.DefaultRadius, "room radius")
	cmd.Flags().Float64Var(&spacing, "spacing", layout.DefaultSpacing, "spacing between artworks")
	cmd.Flags().Float64Var(&height, "height", layout.DefaultHeight, "hanging height")
	cmd.Flags().StringVar(&preset, "preset", "", "use a room preset")
}

// layoutRequest merges config, preset and flags, in increasing priority.
func layoutRequest(cmd *cobra.Command, args []string) (layout.Request, error) {
	lc := cfg.Layout
	if len(args) > 0 {
		lc.Archetype = args[0]
	}
	a := layout.Archetype(strings.ToLower(strings.TrimSpace(lc.Archetype)))

	if preset != "" {
		p, err := config.GetPreset(a, preset)
		if err != nil {
			return layout.Request{}, err
		}
		p.Apply(&lc)
	} else if len(args) > 0 && configFile == "" {
		config.ArchetypePreset(a).Apply(&lc)
	}

	if cmd.Flags().Changed("count") {
		lc.Count = count
	}
	if cmd.Flags().Changed("radius") {
		lc.Radius = radius
	}
	if cmd.Flags().Changed("spacing") {
		lc.Spacing = spacing
	}
	if cmd.Flags().Changed("height") {
		lc.Height = height
	}
	return lc.Request(), nil
}

func runLayout(cmd *cobra.Command, args []string) error {
	req, err := layoutRequest(cmd, args)
	if err != nil {
		return err
	}
	logger := loggerFromContext(cmd.Context())
	if !req.Archetype.Known() {
		logger.Warn("unknown archetype, nothing placed", "archetype", req.Archetype, "known", layout.Archetypes())
	}

	e := cfg.Engine()
	ps := e.Generate(req)
	logger.Debug("generated", "request", layout.Sanitize(req, e.Defaults()), "placements", len(ps))

	switch format {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(ps)
	case "table":
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "INDEX\tX\tY\tZ\tYAW")
		for _, p := range ps {
			fmt.Fprintf(w, "%d\t%.3f\t%.3f\t%.3f\t%.1f\n",
				p.Index, p.Position.X, p.Position.Y, p.Position.Z, p.Rotation.Y)
		}
		return w.Flush()
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func plotLayout(cmd *cobra.Command, args []string) error {
	req, err := layoutRequest(cmd, args)
	if err != nil {
		return err
	}
	ps := cfg.Engine().Generate(req)
	if len(ps) == 0 {
		return fmt.Errorf("no placements to plot")
	}

	yaw := make([]float64, len(ps))
	y := make([]float64, len(ps))
	dist := make([]float64, len(ps))
	for i, p := range ps {
		yaw[i] = p.Rotation.Y
		y[i] = p.Position.Y
		dist[i] = math.Hypot(p.Position.X, p.Position.Z)
	}

	fmt.Printf("layout: %s\n", req.Archetype)
	fmt.Printf("placements: %d\n\n", len(ps))
	for _, series := range []struct {
		data    []float64
		caption string
	}{
		{yaw, "yaw (degrees)"},
		{y, "height"},
		{dist, "distance from center"},
	} {
		graph := asciigraph.Plot(series.data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(series.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func runPreview(cmd *cobra.Command, args []string) error {
	req, err := layoutRequest(cmd, args)
	if err != nil {
		return err
	}
	p := tea.NewProgram(tui.NewPreview(cfg.Engine(), req), tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	_, err = p.Run()
	return err
}

func listPresets(cmd *cobra.Command, args []string) error {
	archetypes := layout.Archetypes()
	if len(args) > 0 {
		a, err := layout.ParseArchetype(args[0])
		if err != nil {
			return err
		}
		archetypes = []layout.Archetype{a}
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ARCHETYPE\tPRESET\tRADIUS\tSPACING\tHEIGHT")
	for _, a := range archetypes {
		for _, name := range config.ListPresets(a) {
			p := config.Presets[a][name]
			fmt.Fprintf(w, "%s\t%s\t%.2f\t%.2f\t%.2f\n", a, name, p.Radius, p.Spacing, p.Height)
		}
	}
	return w.Flush()
}

func benchLayout(cmd *cobra.Command, args []string) error {
	archetypes := layout.Archetypes()
	if len(args) > 0 {
		a, err := layout.ParseArchetype(args[0])
		if err != nil {
			return err
		}
		archetypes = []layout.Archetype{a}
	}

	e := cfg.Engine()
	counts := []int{10, 100, 1000, 10000}
	const iterations = 200

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ARCHETYPE\tCOUNT\tPER CALL\tPLACEMENTS/SEC\tMIN SEP")
	for _, a := range archetypes {
		for _, n := range counts {
			req := layout.Request{Archetype: a, Count: n, Radius: math.NaN(), Spacing: math.NaN(), Height: math.NaN()}
			start := time.Now()
			var ps []layout.Placement
			for i := 0; i < iterations; i++ {
				ps = e.Generate(req)
			}
			per := time.Since(start) / iterations
			sep := "-"
			if n <= 1000 {
				sep = fmt.Sprintf("%.3f", layout.MinSeparation(ps))
			}
			fmt.Fprintf(w, "%s\t%d\t%v\t%.0f\t%s\n",
				a, n, per, float64(n)/per.Seconds(), sep)
		}
	}
	return w.Flush()
}

func watchFile(cmd *cobra.Command, args []string) error {
	logger := loggerFromContext(cmd.Context())
	w, err := watch.New(args[0], func(r watch.Result) {
		if r.Err != nil {
			logger.Error("reload", "err", r.Err)
			return
		}
		fmt.Println(viz.Summary(r.Request, r.Placements))
		plan := viz.FloorPlan(r.Placements, 60, 16, viz.DefaultPlanOptions())
		fmt.Println(viz.Drawing.Render(plan.String()))
	}, logger)
	if err != nil {
		return err
	}

	if err := w.Start(cmd.Context()); err != nil {
		return err
	}
	defer w.Stop()
	select {
	case <-cmd.Context().Done():
	case <-w.Done():
	}
	return nil
}

func serve(cmd *cobra.Command, args []string) error {
	logger := loggerFromContext(cmd.Context())
	if !cmd.Flags().Changed("addr") && cfg.Server.Addr != "" {
		addr = cfg.Server.Addr
	}

	st, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	return server.New(st, cfg.Engine(), logger).Run(cmd.Context(), addr)
}
