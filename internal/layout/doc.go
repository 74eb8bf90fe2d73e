// Package layout computes artwork placements for a gallery room.
//
// The package is a pure function of a [Request]: given a room archetype and
// an artwork count it returns one [Placement] per artwork, each a position and
// an Euler rotation (degrees) that turns the artwork plane toward the room's
// interior.
//
//   - [Circular]: evenly spaced around a ring, facing the center
//   - [Corridor]: two parallel walls, filled left then right per row
//   - [Grid]: a single wall, row-major with the first row highest
//
// Every numeric input is sanitized before use and every emitted coordinate is
// checked again, so a NaN or infinite parameter falls back to a default
// instead of producing an unplaceable artwork. Unknown archetypes and a zero
// count yield an empty slice; Generate never fails.
//
// # Example
//
//	ps := layout.Generate(layout.Request{
//		Archetype: layout.Circular,
//		Count:     4,
//		Radius:    5,
//		Height:    1.6,
//	})
//	for _, p := range ps {
//		fmt.Println(p.Index, p.Position, p.Rotation)
//	}
//
// # Thread Safety
//
// An [Engine] holds only its immutable [Defaults] and may be shared between
// goroutines.
package layout
