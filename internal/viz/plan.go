package viz

import (
	"math"

	"github.com/san-kum/galleryvr/internal/layout"
)

// PlanOptions controls FloorPlan.
type PlanOptions struct {
	FrameWidth float64 // world width of each artwork frame
	Tick       float64 // world length of the facing indicator
	Margin     float64 // world padding around the bounds
	Viewer     bool    // mark the room center
}

func DefaultPlanOptions() PlanOptions {
	return PlanOptions{FrameWidth: 1.5, Tick: 0.5, Margin: 1, Viewer: true}
}

// projection maps world X/Z onto canvas sub-pixels with a uniform scale so
// circles stay round. +Z points down the screen.
type projection struct {
	minX, minZ float64
	scale      float64
	offX, offY float64
}

func newProjection(c *Canvas, min, max layout.Vec3, margin float64) projection {
	min.X, min.Z = min.X-margin, min.Z-margin
	max.X, max.Z = max.X+margin, max.Z+margin
	spanX := math.Max(max.X-min.X, 1e-9)
	spanZ := math.Max(max.Z-min.Z, 1e-9)
	pw, ph := float64(c.PixelWidth()-1), float64(c.PixelHeight()-1)
	// Braille sub-pixels are roughly twice as tall as they are wide on screen.
	scale := math.Min(pw/spanX, 2*ph/spanZ)
	return projection{
		minX:  min.X,
		minZ:  min.Z,
		scale: scale,
		offX:  (pw - spanX*scale) / 2,
		offY:  (ph - spanZ*scale/2) / 2,
	}
}

func (p projection) point(v layout.Vec3) (int, int) {
	x := p.offX + (v.X-p.minX)*p.scale
	y := p.offY + (v.Z-p.minZ)*p.scale/2
	return int(math.Round(x)), int(math.Round(y))
}

// FloorPlan draws a top-down view of ps onto a new w x h canvas.
func FloorPlan(ps []layout.Placement, w, h int, opts PlanOptions) *Canvas {
	c := NewCanvas(w, h)
	if len(ps) == 0 {
		return c
	}

	min, max := layout.Bounds(ps)
	if opts.Viewer {
		min.X, min.Z = math.Min(min.X, 0), math.Min(min.Z, 0)
		max.X, max.Z = math.Max(max.X, 0), math.Max(max.Z, 0)
	}
	proj := newProjection(c, min, max, opts.Margin+opts.FrameWidth/2)

	for _, p := range ps {
		half := p.Right().Scale(opts.FrameWidth / 2)
		x0, y0 := proj.point(p.Position.Sub(half))
		x1, y1 := proj.point(p.Position.Add(half))
		c.DrawLine(x0, y0, x1, y1)

		if opts.Tick > 0 {
			cx, cy := proj.point(p.Position)
			tx, ty := proj.point(p.Position.Add(p.Facing().Scale(opts.Tick)))
			c.DrawLine(cx, cy, tx, ty)
		}
	}

	if opts.Viewer {
		vx, vy := proj.point(layout.Vec3{})
		c.Set(vx, vy)
		c.Set(vx+1, vy)
		c.Set(vx, vy+1)
		c.Set(vx+1, vy+1)
	}
	return c
}
