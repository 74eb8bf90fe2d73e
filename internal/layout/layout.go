package layout

import "math"

type generator func(r Request) []Placement

var generators = map[Archetype]generator{
	Circular: circular,
	Corridor: corridor,
	Grid:     grid,
}

// Engine generates placements with a fixed set of fallback defaults.
type Engine struct {
	defaults Defaults
}

// NewEngine returns an Engine that substitutes d for invalid parameters.
func NewEngine(d Defaults) *Engine {
	return &Engine{defaults: d}
}

// Defaults returns the engine's fallback values.
func (e *Engine) Defaults() Defaults {
	return e.defaults
}

// Generate computes the placements for r. The result has exactly r.Count
// elements for a known archetype, ordered by Index, and is empty for a zero
// count or an unknown archetype. Counts above MaxCount are clamped.
func (e *Engine) Generate(r Request) []Placement {
	r = Sanitize(r, e.defaults)
	if r.Count == 0 {
		return []Placement{}
	}
	gen, ok := generators[r.Archetype]
	if !ok {
		return []Placement{}
	}
	return gen(r)
}

var standard = NewEngine(StandardDefaults())

// Generate computes placements using StandardDefaults.
func Generate(r Request) []Placement {
	return standard.Generate(r)
}

func circular(r Request) []Placement {
	out := make([]Placement, 0, r.Count)
	step := 2 * math.Pi / float64(r.Count)
	for i := 0; i < r.Count; i++ {
		angle := float64(i) * step
		out = append(out, Placement{
			Index: i,
			Position: Vec3{
				X: Validate(r.Radius*math.Cos(angle), 0),
				Y: r.Height,
				Z: Validate(r.Radius*math.Sin(angle), 0),
			},
			Rotation: Vec3{Y: Validate(angle*180/math.Pi+90, 0)},
		})
	}
	return out
}

// corridor fills one row at a time: the left slot of row i, then its right
// slot when items remain. Renderers bind artworks by Index, so this order
// decides which artwork lands on which wall.
func corridor(r Request) []Placement {
	out := make([]Placement, 0, r.Count)
	half := (r.Count + 1) / 2
	length := float64(half) * r.Spacing
	for i := 0; i < half; i++ {
		z := Validate(-length/2+float64(i)*r.Spacing, 0)
		out = append(out, Placement{
			Index:    len(out),
			Position: Vec3{X: -r.Radius, Y: r.Height, Z: z},
			Rotation: Vec3{Y: 90},
		})
		if i+half < r.Count {
			out = append(out, Placement{
				Index:    len(out),
				Position: Vec3{X: r.Radius, Y: r.Height, Z: z},
				Rotation: Vec3{Y: -90},
			})
		}
	}
	return out
}

func grid(r Request) []Placement {
	out := make([]Placement, 0, r.Count)
	cols, rows := GridShape(r.Count)
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			if row*cols+col >= r.Count {
				break
			}
			out = append(out, Placement{
				Index: len(out),
				Position: Vec3{
					X: Validate((float64(col)-float64(cols-1)/2)*r.Spacing, 0),
					Y: Validate(r.Height+float64(rows-1-row)*r.Spacing, 0),
					Z: -r.Radius,
				},
			})
		}
	}
	return out
}

// GridShape returns the column and row count the grid archetype uses for n
// items.
func GridShape(n int) (cols, rows int) {
	if n <= 0 {
		return 0, 0
	}
	cols = int(math.Ceil(math.Sqrt(float64(n))))
	rows = (n + cols - 1) / cols
	return cols, rows
}
