package layout

import (
	"fmt"
	"math"
	"strings"
)

// Archetype names a room layout strategy. It is a string so that values read
// from storage or the command line can carry names the engine does not know.
type Archetype string

const (
	Circular Archetype = "circular"
	Corridor Archetype = "corridor"
	Grid     Archetype = "grid"
)

// Archetypes returns the supported archetypes in a stable order.
func Archetypes() []Archetype {
	return []Archetype{Circular, Corridor, Grid}
}

// Known reports whether a is one of the supported archetypes.
func (a Archetype) Known() bool {
	switch a {
	case Circular, Corridor, Grid:
		return true
	}
	return false
}

// ParseArchetype normalizes s and returns the matching archetype.
func ParseArchetype(s string) (Archetype, error) {
	a := Archetype(strings.ToLower(strings.TrimSpace(s)))
	if !a.Known() {
		return a, fmt.Errorf("unknown archetype: %q", s)
	}
	return a, nil
}

type Vec3 struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z" yaml:"z"`
}

func (v Vec3) Add(o Vec3) Vec3      { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3      { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }
func (v Vec3) Length() float64      { return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z) }
func (v Vec3) Dot(o Vec3) float64   { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

// IsFinite reports whether no component is NaN or infinite.
func (v Vec3) IsFinite() bool {
	return isFinite(v.X) && isFinite(v.Y) && isFinite(v.Z)
}

func (v Vec3) String() string {
	return fmt.Sprintf("(%.3f, %.3f, %.3f)", v.X, v.Y, v.Z)
}

// Request is the full input of one layout computation.
type Request struct {
	Archetype Archetype `json:"archetype" yaml:"archetype"`
	Count     int       `json:"count" yaml:"count"`
	Radius    float64   `json:"radius" yaml:"radius"`
	Spacing   float64   `json:"spacing" yaml:"spacing"`
	Height    float64   `json:"height" yaml:"height"`
}

// Placement is one artwork slot. Rotation holds Euler angles in degrees; only
// the Y (yaw) component is ever non-zero.
type Placement struct {
	Index    int  `json:"index"`
	Position Vec3 `json:"position"`
	Rotation Vec3 `json:"rotation"`
}

// Facing returns the unit vector the artwork plane faces, derived from its
// yaw. A yaw of 0 faces +Z.
func (p Placement) Facing() Vec3 {
	yaw := p.Rotation.Y * math.Pi / 180
	return Vec3{X: math.Sin(yaw), Z: math.Cos(yaw)}
}

// Right returns the horizontal unit vector along the artwork plane, used to
// span its width.
func (p Placement) Right() Vec3 {
	yaw := p.Rotation.Y * math.Pi / 180
	return Vec3{X: math.Cos(yaw), Z: -math.Sin(yaw)}
}
