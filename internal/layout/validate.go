package layout

import "math"

// Fallbacks applied when a request field is NaN or infinite.
const (
	DefaultRadius  = 5.0
	DefaultSpacing = 2.0
	DefaultHeight  = 1.6
)

// MaxCount bounds the number of placements a single request can produce.
// Larger counts are clamped to it.
const MaxCount = 10000

// Defaults is the set of fallback values an Engine substitutes for invalid
// request parameters.
type Defaults struct {
	Radius  float64 `json:"radius" yaml:"radius" toml:"radius"`
	Spacing float64 `json:"spacing" yaml:"spacing" toml:"spacing"`
	Height  float64 `json:"height" yaml:"height" toml:"height"`
}

// StandardDefaults returns the fallbacks used by the package-level Generate.
func StandardDefaults() Defaults {
	return Defaults{
		Radius:  DefaultRadius,
		Spacing: DefaultSpacing,
		Height:  DefaultHeight,
	}
}

// Validate returns def if value is NaN or infinite, otherwise value.
func Validate(value, def float64) float64 {
	if !isFinite(value) {
		return def
	}
	return value
}

// ValidCount converts an arbitrary real count into a usable item count:
// non-finite becomes 0, fractions are floored, and the result is clamped to
// [0, MaxCount].
func ValidCount(v float64) int {
	v = math.Floor(Validate(v, 0))
	if v <= 0 {
		return 0
	}
	if v > MaxCount {
		return MaxCount
	}
	return int(v)
}

// Sanitize returns a copy of r whose numeric fields are all finite and whose
// count lies in [0, MaxCount]. The defaults themselves are validated against
// the standard fallbacks so a corrupt Defaults cannot leak through.
func Sanitize(r Request, d Defaults) Request {
	std := StandardDefaults()
	out := r
	if out.Count < 0 {
		out.Count = 0
	}
	if out.Count > MaxCount {
		out.Count = MaxCount
	}
	out.Radius = Validate(r.Radius, Validate(d.Radius, std.Radius))
	out.Spacing = Validate(r.Spacing, Validate(d.Spacing, std.Spacing))
	out.Height = Validate(r.Height, Validate(d.Height, std.Height))
	return out
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
