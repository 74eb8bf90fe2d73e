package layout

import "math"

// Bounds returns the axis-aligned box enclosing every placement position.
// Both corners are the zero vector for an empty slice.
func Bounds(ps []Placement) (min, max Vec3) {
	if len(ps) == 0 {
		return Vec3{}, Vec3{}
	}
	min, max = ps[0].Position, ps[0].Position
	for _, p := range ps[1:] {
		min.X = math.Min(min.X, p.Position.X)
		min.Y = math.Min(min.Y, p.Position.Y)
		min.Z = math.Min(min.Z, p.Position.Z)
		max.X = math.Max(max.X, p.Position.X)
		max.Y = math.Max(max.Y, p.Position.Y)
		max.Z = math.Max(max.Z, p.Position.Z)
	}
	return min, max
}

// MinSeparation returns the smallest distance between any two placement
// positions, or +Inf when fewer than two are given. It is quadratic and meant
// for diagnostics, not for the generation path.
func MinSeparation(ps []Placement) float64 {
	best := math.Inf(1)
	for i := 0; i < len(ps); i++ {
		for j := i + 1; j < len(ps); j++ {
			if d := ps[i].Position.Sub(ps[j].Position).Length(); d < best {
				best = d
			}
		}
	}
	return best
}
