package export

import (
	"strings"
	"testing"

	"github.com/san-kum/galleryvr/internal/gallery"
	"github.com/san-kum/galleryvr/internal/layout"
	"github.com/san-kum/galleryvr/internal/scene"
	"github.com/san-kum/galleryvr/internal/viz"
)

func TestFloorPlanSVG_OneFramePerNode(t *testing.T) {
	for _, a := range layout.Archetypes() {
		s := scene.New()
		s.Materialize(layout.Generate(layout.Request{Archetype: a, Count: 7}), gallery.SampleArtworks())

		svg := FloorPlanSVG(s, 400, 300, DefaultPlanStyle())
		if !strings.HasPrefix(svg, "<?xml") || !strings.HasSuffix(svg, "</svg>") {
			t.Fatalf("%s: malformed svg", a)
		}
		if n := strings.Count(svg, `class="artwork"`); n != 7 {
			t.Errorf("%s: expected 7 frames, got %d", a, n)
		}
		if strings.Contains(svg, "NaN") || strings.Contains(svg, "Inf") {
			t.Errorf("%s: non-finite coordinate in output", a)
		}
	}
}

func TestFloorPlanSVG_Empty(t *testing.T) {
	s := scene.New()
	s.Name = "Empty <Hall>"
	svg := FloorPlanSVG(s, 100, 100, DefaultPlanStyle())

	if strings.Contains(svg, `class="artwork"`) {
		t.Error("expected no frames")
	}
	if !strings.Contains(svg, "Empty &lt;Hall&gt;") {
		t.Error("expected escaped title")
	}
}

func TestFloorPlanSVG_EscapesTitles(t *testing.T) {
	s := scene.New()
	s.Materialize(layout.Generate(layout.Request{Archetype: layout.Grid, Count: 1}), []gallery.Artwork{{ID: "a", Title: `Tom & "Jerry"`}})

	svg := FloorPlanSVG(s, 100, 100, DefaultPlanStyle())
	if !strings.Contains(svg, "Tom &amp; &#34;Jerry&#34;") {
		t.Errorf("title not escaped: %s", svg)
	}
}

func TestCanvasToSVG(t *testing.T) {
	if CanvasToSVG(nil, 2, "#fff") != "" {
		t.Error("expected empty output for nil canvas")
	}

	c := viz.NewCanvas(4, 2)
	c.Set(0, 0)
	c.Set(5, 6)
	svg := CanvasToSVG(c, 2, "#00ff00")
	if n := strings.Count(svg, "<circle"); n != 2 {
		t.Errorf("expected 2 dots, got %d", n)
	}
}
