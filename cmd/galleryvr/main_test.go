package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/san-kum/galleryvr/internal/config"
	"github.com/san-kum/galleryvr/internal/export"
	"github.com/san-kum/galleryvr/internal/gallery"
	"github.com/san-kum/galleryvr/internal/layout"
	"github.com/san-kum/galleryvr/internal/scene"
)

func newLayoutCmd(t *testing.T, flags ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "layout"}
	addLayoutFlags(cmd)
	if err := cmd.Flags().Parse(flags); err != nil {
		t.Fatal(err)
	}
	return cmd
}

func resetGlobals(t *testing.T) {
	t.Helper()
	cfg = config.DefaultConfig()
	configFile = ""
	preset = ""
}

func TestLayoutRequest_ArchetypePreset(t *testing.T) {
	resetGlobals(t)
	req, err := layoutRequest(newLayoutCmd(t), []string{"grid"})
	if err != nil {
		t.Fatal(err)
	}
	if req.Archetype != layout.Grid || req.Radius != 9.5 || req.Spacing != 3 {
		t.Errorf("expected grid preset, got %+v", req)
	}
	if req.Count != config.DefaultCount {
		t.Errorf("expected default count, got %d", req.Count)
	}
}

func TestLayoutRequest_FlagsOverridePreset(t *testing.T) {
	resetGlobals(t)
	cmd := newLayoutCmd(t, "--preset", "hall", "--count", "3.7", "--spacing", "1")
	req, err := layoutRequest(cmd, []string{"corridor"})
	if err != nil {
		t.Fatal(err)
	}
	if req.Radius != 8 || req.Height != 2 {
		t.Errorf("expected hall preset radius/height, got %+v", req)
	}
	if req.Spacing != 1 || req.Count != 3 {
		t.Errorf("expected flag overrides, got %+v", req)
	}
}

func TestLayoutRequest_UnknownPreset(t *testing.T) {
	resetGlobals(t)
	cmd := newLayoutCmd(t, "--preset", "nope")
	if _, err := layoutRequest(cmd, []string{"grid"}); err == nil {
		t.Error("expected error for unknown preset")
	}
}

func TestLayoutRequest_ConfigArchetypeWithSpaces(t *testing.T) {
	resetGlobals(t)
	cfg.Layout.Archetype = " Grid "
	cmd := newLayoutCmd(t, "--preset", "salon")
	req, err := layoutRequest(cmd, nil)
	if err != nil {
		t.Fatal(err)
	}
	if req.Archetype != layout.Grid || req.Radius != 6 || req.Spacing != 1.5 {
		t.Errorf("expected grid salon preset, got %+v", req)
	}
}

func TestLayoutRequest_HugeCountIsClamped(t *testing.T) {
	resetGlobals(t)
	req, err := layoutRequest(newLayoutCmd(t, "--count", "1e12"), []string{"grid"})
	if err != nil {
		t.Fatal(err)
	}
	if req.Count != layout.MaxCount {
		t.Errorf("expected count %d, got %d", layout.MaxCount, req.Count)
	}
}

func TestOpenStoreInstallsSamplesOnce(t *testing.T) {
	dataDir = filepath.Join(t.TempDir(), "data")
	st, err := openStore(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	gs, err := st.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(gs) != len(gallery.SampleGalleries()) {
		t.Fatalf("expected sample galleries, got %d", len(gs))
	}

	for _, g := range gs {
		if err := st.Delete(g.ID); err != nil {
			t.Fatal(err)
		}
	}
	st, err = openStore(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if gs, _ := st.List(); len(gs) != 0 {
		t.Errorf("samples reinstalled into an emptied store: %d", len(gs))
	}
}

func TestRenderCanvas(t *testing.T) {
	g := gallery.SampleGalleries()[1]
	s := scene.Build(&g, layout.NewEngine(layout.StandardDefaults()))

	for _, v := range []string{"plan", "perspective"} {
		c, err := renderCanvas(s, v, 40, 12, 10)
		if err != nil {
			t.Fatalf("%s: %v", v, err)
		}
		if c.Lit() == 0 {
			t.Errorf("%s: nothing drawn", v)
		}
		svg := export.CanvasToSVG(c, 4, "#00ff88")
		if n := strings.Count(svg, "<circle"); n != c.Lit() {
			t.Errorf("%s: %d dots for %d lit pixels", v, n, c.Lit())
		}
	}

	if _, err := renderCanvas(s, "side", 40, 12, 0); err == nil {
		t.Error("expected error for unknown view")
	}
}

func TestExportScene(t *testing.T) {
	dir := t.TempDir()
	g := gallery.SampleGalleries()[0]
	s := scene.Build(&g, layout.NewEngine(layout.StandardDefaults()))

	for _, format := range []string{"svg", "json", "yaml"} {
		path, err := exportScene(s, format, dir)
		if err != nil {
			t.Fatalf("%s: %v", format, err)
		}
		if filepath.Ext(path) != "."+format {
			t.Errorf("unexpected path %s", path)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(string(data), s.Nodes[0].ID) && format != "svg" {
			t.Errorf("%s: missing node id", format)
		}
		if len(data) == 0 {
			t.Errorf("%s: empty output", format)
		}
	}
}
