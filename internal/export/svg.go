package export

import (
	"fmt"
	"html"
	"math"
	"strings"

	"github.com/san-kum/galleryvr/internal/layout"
	"github.com/san-kum/galleryvr/internal/scene"
	"github.com/san-kum/galleryvr/internal/viz"
)

// PlanStyle controls the colors of a floor plan SVG.
type PlanStyle struct {
	Background string
	Frame      string
	Facing     string
	Viewer     string
	Label      string
}

func DefaultPlanStyle() PlanStyle {
	return PlanStyle{
		Background: "#0a0a0a",
		Frame:      "#00ff88",
		Facing:     "#446688",
		Viewer:     "#ff00ff",
		Label:      "#888899",
	}
}

// FloorPlanSVG draws a top-down plan of the scene: one stroke per artwork
// frame, a short line showing the direction it faces, its index, and the
// viewer's start point. The SVG has no frames when the scene has no nodes.
func FloorPlanSVG(s *scene.Scene, width, height int, style PlanStyle) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, style.Background)

	if s.Name != "" {
		fmt.Fprintf(&sb, `<title>%s</title>
`, html.EscapeString(s.Name))
	}

	ps := s.Placements()
	if len(ps) == 0 {
		sb.WriteString("</svg>")
		return sb.String()
	}

	// Find bounds, including the viewer.
	min, max := layout.Bounds(ps)
	minX, maxX := math.Min(min.X, s.Viewer.X), math.Max(max.X, s.Viewer.X)
	minZ, maxZ := math.Min(min.Z, s.Viewer.Z), math.Max(max.Z, s.Viewer.Z)

	// Add padding
	pad := scene.FrameWidth
	minX, maxX = minX-pad, maxX+pad
	minZ, maxZ = minZ-pad, maxZ+pad
	scale := math.Min(float64(width)/(maxX-minX), float64(height)/(maxZ-minZ))
	offX := (float64(width) - (maxX-minX)*scale) / 2
	offY := (float64(height) - (maxZ-minZ)*scale) / 2
	pt := func(v layout.Vec3) (float64, float64) {
		return offX + (v.X-minX)*scale, offY + (v.Z-minZ)*scale
	}

	fmt.Fprintf(&sb, `<g stroke="%s" stroke-width="1">
`, style.Facing)
	for _, p := range ps {
		x0, y0 := pt(p.Position)
		x1, y1 := pt(p.Position.Add(p.Facing().Scale(scene.FrameWidth / 3)))
		fmt.Fprintf(&sb, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>
`, x0, y0, x1, y1)
	}
	sb.WriteString("</g>\n")

	fmt.Fprintf(&sb, `<g stroke="%s" stroke-width="3" stroke-linecap="round">
`, style.Frame)
	for _, n := range s.Nodes {
		p := layout.Placement{Index: n.Index, Position: n.Position, Rotation: n.Rotation}
		half := p.Right().Scale(n.Width / 2)
		x0, y0 := pt(p.Position.Sub(half))
		x1, y1 := pt(p.Position.Add(half))
		fmt.Fprintf(&sb, `<line class="artwork" data-index="%d" x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f">`, n.Index, x0, y0, x1, y1)
		if n.Title != "" {
			fmt.Fprintf(&sb, "<title>%s</title>", html.EscapeString(n.Title))
		}
		sb.WriteString("</line>\n")
	}
	sb.WriteString("</g>\n")

	fmt.Fprintf(&sb, `<g fill="%s" font-family="monospace" font-size="10">
`, style.Label)
	for _, p := range ps {
		x, y := pt(p.Position.Sub(p.Facing().Scale(scene.FrameWidth / 4)))
		fmt.Fprintf(&sb, `<text x="%.1f" y="%.1f" text-anchor="middle">%d</text>
`, x, y, p.Index)
	}
	sb.WriteString("</g>\n")

	vx, vy := pt(s.Viewer)
	fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="4" fill="%s"/>
</svg>`, vx, vy, style.Viewer)
	return sb.String()
}

// CanvasToSVG converts a Braille canvas to SVG, one dot per lit sub-pixel.
func CanvasToSVG(canvas *viz.Canvas, scale float64, color string) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.PixelWidth()) * scale
	height := float64(canvas.PixelHeight()) * scale

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<g fill="%s">
`, width, height, width, height, color)

	r := scale * 0.4
	for y := 0; y < canvas.PixelHeight(); y++ {
		for x := 0; x < canvas.PixelWidth(); x++ {
			if !canvas.IsSet(x, y) {
				continue
			}
			fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="%.1f"/>
`, (float64(x)+0.5)*scale, (float64(y)+0.5)*scale, r)
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}
