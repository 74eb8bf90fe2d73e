package main

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/san-kum/galleryvr/internal/export"
	"github.com/san-kum/galleryvr/internal/gallery"
	"github.com/san-kum/galleryvr/internal/layout"
	"github.com/san-kum/galleryvr/internal/scene"
	"github.com/san-kum/galleryvr/internal/viz"
)

var (
	artTitle       string
	artURL         string
	artDescription string
	artCategory    string
	artAudio       string

	roomRadius  float64
	roomSpacing float64
	roomHeight  float64

	wallColor   string
	floorTex    string
	ceilingTex  string
	music       string
	description string
)

// openStore opens the gallery store under dataDir, installing the sample
// galleries the first time the directory is created.
func openStore(ctx context.Context) (*gallery.Store, error) {
	logger := loggerFromContext(ctx)
	st := gallery.New(dataDir).WithLogger(logger)
	n, err := st.Open()
	if err != nil {
		return nil, err
	}
	if n > 0 {
		logger.Info("installed sample galleries", "count", n, "dir", dataDir)
	}
	return st, nil
}

func galleryCommand() *cobra.Command {
	galleryCmd := &cobra.Command{
		Use:   "gallery",
		Short: "manage galleries",
	}

	createCmd := &cobra.Command{
		Use:   "create [name]",
		Short: "create an empty gallery",
		Args:  cobra.ExactArgs(1),
		RunE:  createGallery,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list galleries",
		RunE:  listGalleries,
	}

	showCmd := &cobra.Command{
		Use:   "show [gallery_id]",
		Short: "show a gallery and its layout",
		Args:  cobra.ExactArgs(1),
		RunE:  showGallery,
	}

	deleteCmd := &cobra.Command{
		Use:   "delete [gallery_id]",
		Short: "delete a gallery",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			if err := st.Delete(args[0]); err != nil {
				return err
			}
			fmt.Printf("deleted %s\n", args[0])
			return nil
		},
	}

	setLayoutCmd := &cobra.Command{
		Use:   "set-layout [gallery_id] [archetype]",
		Short: "change the layout archetype and room parameters",
		Args:  cobra.ExactArgs(2),
		RunE:  setLayout,
	}
	setLayoutCmd.Flags().Float64Var(&roomRadius, "radius", 0, "room radius override (unset uses the preset)")
	setLayoutCmd.Flags().Float64Var(&roomSpacing, "spacing", 0, "spacing override (unset uses the preset)")
	setLayoutCmd.Flags().Float64Var(&roomHeight, "height", 0, "hanging height override (unset uses the preset)")

	styleCmd := &cobra.Command{
		Use:   "style [gallery_id]",
		Short: "change wall color, textures and music",
		Args:  cobra.ExactArgs(1),
		RunE:  styleGallery,
	}
	styleCmd.Flags().StringVar(&wallColor, "wall-color", "", "wall color")
	styleCmd.Flags().StringVar(&floorTex, "floor", "", "floor texture (wood, marble, concrete, carpet)")
	styleCmd.Flags().StringVar(&ceilingTex, "ceiling", "", "ceiling texture (plain, skylights, industrial)")
	styleCmd.Flags().StringVar(&music, "music", "", "background music url")
	styleCmd.Flags().StringVar(&description, "description", "", "gallery description")

	addArtCmd := &cobra.Command{
		Use:   "add-artwork [gallery_id]",
		Short: "append an artwork",
		Args:  cobra.ExactArgs(1),
		RunE:  addArtwork,
	}
	addArtCmd.Flags().StringVar(&artTitle, "title", "", "artwork title")
	addArtCmd.Flags().StringVar(&artURL, "url", "", "image url")
	addArtCmd.Flags().StringVar(&artDescription, "description", "", "artwork description")
	addArtCmd.Flags().StringVar(&artCategory, "category", "", "category")
	addArtCmd.Flags().StringVar(&artAudio, "audio", "", "audio commentary url")
	addArtCmd.MarkFlagRequired("title")
	addArtCmd.MarkFlagRequired("url")

	removeArtCmd := &cobra.Command{
		Use:   "remove-artwork [gallery_id] [artwork_id]",
		Short: "remove an artwork",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			g, err := st.RemoveArtwork(args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Printf("%s now has %d artworks\n", g.Name, len(g.Artworks))
			return nil
		},
	}

	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "install the sample galleries into an empty store",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			n, err := st.Seed()
			if err != nil {
				return err
			}
			if n == 0 {
				fmt.Println("store is not empty, nothing seeded")
				return nil
			}
			fmt.Printf("seeded %d galleries\n", n)
			return nil
		},
	}

	galleryCmd.AddCommand(createCmd, listCmd, showCmd, deleteCmd, setLayoutCmd,
		styleCmd, addArtCmd, removeArtCmd, seedCmd)
	return galleryCmd
}

func createGallery(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	g, err := st.Create(args[0])
	if err != nil {
		return err
	}
	fmt.Printf("gallery id: %s\n", g.ID)
	return nil
}

func listGalleries(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	gs, err := st.List()
	if err != nil {
		return err
	}
	if len(gs) == 0 {
		fmt.Println("no galleries found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tLAYOUT\tARTWORKS\tCREATED")
	for _, g := range gs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
			g.ID,
			g.Name,
			g.Layout,
			len(g.Artworks),
			g.CreatedAt.Format("2006-01-02 15:04:05"),
		)
	}
	return w.Flush()
}

func showGallery(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	g, err := st.Get(args[0])
	if err != nil {
		return err
	}

	s := scene.Build(g, cfg.Engine())
	fmt.Println(viz.Title.Render(g.Name))
	if g.Description != "" {
		fmt.Println(viz.Subtle.Render(g.Description))
	}
	fmt.Printf("walls %s  floor %s  ceiling %s\n\n", g.WallColor, g.FloorTexture, g.CeilingTexture)
	fmt.Println(viz.Summary(s.Room.Request, s.Placements()))
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INDEX\tARTWORK\tTITLE\tX\tY\tZ\tYAW")
	for _, n := range s.Nodes {
		fmt.Fprintf(w, "%d\t%s\t%s\t%.2f\t%.2f\t%.2f\t%.1f\n",
			n.Index, n.ArtworkID, n.Title,
			n.Position.X, n.Position.Y, n.Position.Z, n.Rotation.Y)
	}
	return w.Flush()
}

func setLayout(cmd *cobra.Command, args []string) error {
	a, err := layout.ParseArchetype(args[1])
	if err != nil {
		return err
	}
	st, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	g, err := st.Get(args[0])
	if err != nil {
		return err
	}

	if g.Layout != a {
		// Overrides tuned for the old archetype rarely suit the new one.
		g.Room = gallery.RoomParams{}
	}
	g.Layout = a
	if cmd.Flags().Changed("radius") {
		g.Room.Radius = gallery.Float(roomRadius)
	}
	if cmd.Flags().Changed("spacing") {
		g.Room.Spacing = gallery.Float(roomSpacing)
	}
	if cmd.Flags().Changed("height") {
		g.Room.Height = gallery.Float(roomHeight)
	}
	if err := st.Update(g); err != nil {
		return err
	}

	s := scene.Build(g, cfg.Engine())
	fmt.Println(viz.Summary(s.Room.Request, s.Placements()))
	return nil
}

func styleGallery(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	g, err := st.Get(args[0])
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("floor") {
		if !gallery.FloorTexture(floorTex).Valid() {
			return fmt.Errorf("unknown floor texture: %s", floorTex)
		}
		g.FloorTexture = gallery.FloorTexture(floorTex)
	}
	if cmd.Flags().Changed("ceiling") {
		if !gallery.CeilingTexture(ceilingTex).Valid() {
			return fmt.Errorf("unknown ceiling texture: %s", ceilingTex)
		}
		g.CeilingTexture = gallery.CeilingTexture(ceilingTex)
	}
	if cmd.Flags().Changed("wall-color") {
		g.WallColor = wallColor
	}
	if cmd.Flags().Changed("music") {
		g.BackgroundMusic = music
	}
	if cmd.Flags().Changed("description") {
		g.Description = description
	}
	return st.Update(g)
}

func addArtwork(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	a, err := gallery.NewArtwork(artTitle, artURL)
	if err != nil {
		return err
	}
	a.Description = artDescription
	a.Category = artCategory
	a.AudioCommentary = artAudio

	g, err := st.AddArtwork(args[0], a)
	if err != nil {
		return err
	}
	fmt.Printf("artwork id: %s (position %d of %d)\n", a.ID, len(g.Artworks)-1, len(g.Artworks))
	return nil
}

func renderGallery(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	g, err := st.Get(args[0])
	if err != nil {
		return err
	}

	s := scene.Build(g, cfg.Engine())
	c, err := renderCanvas(s, view, width, rows, tilt)
	if err != nil {
		return err
	}

	if svgOut != "" {
		if err := os.WriteFile(svgOut, []byte(export.CanvasToSVG(c, 4, "#00ff88")), 0644); err != nil {
			return err
		}
		loggerFromContext(cmd.Context()).Info("wrote svg", "path", svgOut)
	}

	fmt.Println(viz.Title.Render(g.Name))
	fmt.Println(viz.Panel.Render(viz.Drawing.Render(c.String())))
	fmt.Println(viz.Summary(s.Room.Request, s.Placements()))
	return nil
}

// renderCanvas draws s as seen from above ("plan") or from the viewer's
// start point ("perspective"), pitched by tiltDeg degrees.
func renderCanvas(s *scene.Scene, view string, w, h int, tiltDeg float64) (*viz.Canvas, error) {
	switch view {
	case "plan":
		return viz.FloorPlan(s.Placements(), w, h, viz.DefaultPlanOptions()), nil
	case "perspective":
		c := viz.NewCanvas(w, h)
		wf := viz.FramesWireframe(s.Placements(), scene.FrameWidth, scene.FrameHeight)
		wf.AddFloorGrid(10, 2)
		cam := viz.NewCamera(s.Viewer)
		cam.Tilt(tiltDeg * math.Pi / 180)
		viz.Render3D(c, wf, cam)
		return c, nil
	}
	return nil, fmt.Errorf("unknown view: %s", view)
}

func exportGalleries(cmd *cobra.Command, args []string) error {
	if all == (len(args) > 0) {
		return fmt.Errorf("pass either a gallery id or --all")
	}
	switch exportFormat {
	case "svg", "json", "yaml":
	default:
		return fmt.Errorf("unknown format: %s", exportFormat)
	}

	logger := loggerFromContext(cmd.Context())
	st, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return err
	}

	ids := args
	if all {
		gs, err := st.List()
		if err != nil {
			return err
		}
		ids = make([]string, 0, len(gs))
		for _, g := range gs {
			ids = append(ids, g.ID)
		}
	}

	prog := newProgress(logger)
	e := cfg.Engine()
	grp, ctx := errgroup.WithContext(cmd.Context())
	grp.SetLimit(max(workers, 1))
	for _, id := range ids {
		id := id
		grp.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			g, err := st.Get(id)
			if err != nil {
				return err
			}
			path, err := exportScene(scene.Build(g, e), exportFormat, outDir)
			if err != nil {
				return fmt.Errorf("export %s: %w", id, err)
			}
			logger.Debug("exported", "gallery", g.Name, "path", path)
			fmt.Println(path)
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return err
	}
	prog.done(fmt.Sprintf("exported %d galleries", len(ids)))
	return nil
}

func exportScene(s *scene.Scene, format, dir string) (string, error) {
	var buf bytes.Buffer
	switch format {
	case "svg":
		buf.WriteString(export.FloorPlanSVG(s, 800, 600, export.DefaultPlanStyle()))
	case "json":
		if err := s.WriteJSON(&buf); err != nil {
			return "", err
		}
	case "yaml":
		if err := s.WriteYAML(&buf); err != nil {
			return "", err
		}
	}
	path := filepath.Join(dir, s.GalleryID+"."+format)
	return path, os.WriteFile(path, buf.Bytes(), 0644)
}
