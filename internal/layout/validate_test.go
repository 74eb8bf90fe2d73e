package layout

import (
	"math"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		def   float64
		want  float64
	}{
		{"finite", 3.5, 1, 3.5},
		{"zero", 0, 1, 0},
		{"negative", -2, 1, -2},
		{"NaN", math.NaN(), 1, 1},
		{"+Inf", math.Inf(1), 2, 2},
		{"-Inf", math.Inf(-1), 3, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Validate(tt.value, tt.def); got != tt.want {
				t.Errorf("Validate(%v, %v) = %v, want %v", tt.value, tt.def, got, tt.want)
			}
		})
	}
}

func TestValidCount(t *testing.T) {
	tests := []struct {
		in   float64
		want int
	}{
		{0, 0},
		{3, 3},
		{2.7, 2},
		{-1, 0},
		{-0.5, 0},
		{math.NaN(), 0},
		{math.Inf(1), 0},
		{math.Inf(-1), 0},
		{MaxCount, MaxCount},
		{MaxCount + 0.5, MaxCount},
		{1e12, MaxCount},
		{math.MaxFloat64, MaxCount},
	}

	for _, tt := range tests {
		if got := ValidCount(tt.in); got != tt.want {
			t.Errorf("ValidCount(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestSanitizeClampsCount(t *testing.T) {
	r := Sanitize(Request{Archetype: Grid, Count: math.MaxInt32}, StandardDefaults())
	if r.Count != MaxCount {
		t.Errorf("count = %d, want %d", r.Count, MaxCount)
	}
}

func TestGenerateHugeCountIsBounded(t *testing.T) {
	for _, a := range Archetypes() {
		ps := Generate(Request{Archetype: a, Count: math.MaxInt32, Radius: 5, Spacing: 2, Height: 1.6})
		if len(ps) != MaxCount {
			t.Errorf("%s: got %d placements, want %d", a, len(ps), MaxCount)
		}
	}
}

func TestSanitize(t *testing.T) {
	d := StandardDefaults()
	r := Sanitize(Request{
		Archetype: Grid,
		Count:     -4,
		Radius:    math.NaN(),
		Spacing:   math.Inf(1),
		Height:    math.Inf(-1),
	}, d)

	if r.Count != 0 {
		t.Errorf("count = %d, want 0", r.Count)
	}
	if r.Radius != DefaultRadius {
		t.Errorf("radius = %v, want %v", r.Radius, DefaultRadius)
	}
	if r.Spacing != DefaultSpacing {
		t.Errorf("spacing = %v, want %v", r.Spacing, DefaultSpacing)
	}
	if r.Height != DefaultHeight {
		t.Errorf("height = %v, want %v", r.Height, DefaultHeight)
	}
	if r.Archetype != Grid {
		t.Errorf("archetype changed to %q", r.Archetype)
	}
}

func TestSanitize_CorruptDefaults(t *testing.T) {
	bad := Defaults{Radius: math.NaN(), Spacing: math.Inf(1), Height: math.NaN()}
	r := Sanitize(Request{Radius: math.NaN(), Spacing: math.NaN(), Height: math.NaN()}, bad)

	if r.Radius != DefaultRadius || r.Spacing != DefaultSpacing || r.Height != DefaultHeight {
		t.Errorf("corrupt defaults leaked: %+v", r)
	}
}
