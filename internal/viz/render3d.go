package viz

import (
	"math"
	"sort"

	"github.com/san-kum/galleryvr/internal/layout"
)

// Camera projects world points for a viewer standing in the room and turning
// in place. Yaw 0 looks down -Z, toward the grid wall.
type Camera struct {
	Position   layout.Vec3
	Yaw, Pitch float64 // radians
	FOV        float64 // vertical field of view, radians
	Near       float64
}

func NewCamera(eye layout.Vec3) *Camera {
	return &Camera{Position: eye, FOV: math.Pi / 3, Near: 0.1}
}

func (c *Camera) Turn(a float64) { c.Yaw = math.Mod(c.Yaw+a, 2*math.Pi) }
func (c *Camera) Tilt(a float64) {
	c.Pitch = math.Max(-math.Pi/2+0.01, math.Min(math.Pi/2-0.01, c.Pitch+a))
}

// view returns p in camera space, with the camera looking down -Z.
func (c *Camera) view(p layout.Vec3) layout.Vec3 {
	p = p.Sub(c.Position)
	cy, sy := math.Cos(c.Yaw), math.Sin(c.Yaw)
	p.X, p.Z = p.X*cy-p.Z*sy, p.X*sy+p.Z*cy
	cx, sx := math.Cos(c.Pitch), math.Sin(c.Pitch)
	p.Y, p.Z = p.Y*cx+p.Z*sx, -p.Y*sx+p.Z*cx
	return p
}

// Project converts a world point to sub-pixel screen coordinates on a canvas
// of sw x sh sub-pixels. It returns x, y, depth, and whether the point is in
// front of the camera.
func (c *Camera) Project(p layout.Vec3, sw, sh int) (int, int, float64, bool) {
	v := c.view(p)
	depth := -v.Z
	if depth < c.Near {
		return 0, 0, 0, false
	}
	f := float64(sh) / 2 / math.Tan(c.FOV/2)
	// Sub-pixels are twice as tall as wide; halve the horizontal focal length.
	sx := float64(sw)/2 + v.X/depth*f/2
	sy := float64(sh)/2 - v.Y/depth*f
	return int(math.Round(sx)), int(math.Round(sy)), depth, true
}

type Edge struct {
	Start, End layout.Vec3
}

type Wireframe struct{ Edges []Edge }

func NewWireframe() *Wireframe               { return &Wireframe{Edges: make([]Edge, 0)} }
func (w *Wireframe) AddEdge(s, e layout.Vec3) { w.Edges = append(w.Edges, Edge{s, e}) }

// AddFrame adds the rectangle outline of an artwork of the given size,
// centered on the placement and lying in its plane.
func (w *Wireframe) AddFrame(p layout.Placement, width, height float64) {
	r := p.Right().Scale(width / 2)
	u := layout.Vec3{Y: height / 2}
	c := p.Position
	tl, tr := c.Sub(r).Add(u), c.Add(r).Add(u)
	bl, br := c.Sub(r).Sub(u), c.Add(r).Sub(u)
	w.AddEdge(tl, tr)
	w.AddEdge(tr, br)
	w.AddEdge(br, bl)
	w.AddEdge(bl, tl)
}

// FramesWireframe builds one frame per placement.
func FramesWireframe(ps []layout.Placement, width, height float64) *Wireframe {
	w := NewWireframe()
	for _, p := range ps {
		w.AddFrame(p, width, height)
	}
	return w
}

// AddFloorGrid adds a square floor grid of the given half-size and step.
func (w *Wireframe) AddFloorGrid(half, step float64) {
	if step <= 0 || half <= 0 {
		return
	}
	for v := -half; v <= half+1e-9; v += step {
		w.AddEdge(layout.Vec3{X: v, Z: -half}, layout.Vec3{X: v, Z: half})
		w.AddEdge(layout.Vec3{X: -half, Z: v}, layout.Vec3{X: half, Z: v})
	}
}

type projectedEdge struct {
	x1, y1, x2, y2 int
	depth          float64
}

// Render3D draws the wireframe to the canvas using a simple painter's algorithm.
// Edges with an endpoint behind the camera are dropped.
func Render3D(c *Canvas, w *Wireframe, cam *Camera) {
	if c == nil || w == nil || cam == nil {
		return
	}
	sw, sh := c.PixelWidth(), c.PixelHeight()
	proj := make([]projectedEdge, 0, len(w.Edges))
	for _, e := range w.Edges {
		x1, y1, d1, v1 := cam.Project(e.Start, sw, sh)
		x2, y2, d2, v2 := cam.Project(e.End, sw, sh)
		if !v1 || !v2 {
			continue
		}
		if !onScreen(x1, y1, sw, sh) && !onScreen(x2, y2, sw, sh) {
			continue
		}
		if !nearScreen(x1, y1, sw, sh) || !nearScreen(x2, y2, sw, sh) {
			continue
		}
		proj = append(proj, projectedEdge{x1, y1, x2, y2, (d1 + d2) / 2})
	}
	sort.Slice(proj, func(i, j int) bool { return proj[i].depth > proj[j].depth })
	for _, e := range proj {
		c.DrawLine(e.x1, e.y1, e.x2, e.y2)
	}
}

func onScreen(x, y, w, h int) bool {
	return x >= 0 && x < w && y >= 0 && y < h
}

// nearScreen bounds the Bresenham walk for points projected close to the
// camera plane.
func nearScreen(x, y, w, h int) bool {
	return absInt(x) < 8*w && absInt(y) < 8*h
}
