// Package viz draws gallery layouts in the terminal.
//
// Drawing happens on a [Canvas] of Braille characters, each cell holding a
// 2x4 block of sub-pixels:
//
//   - [FloorPlan]: top-down view of the room, one stroke per artwork frame
//     with a tick showing the direction it faces
//   - [Render3D]: perspective wireframe of the frames seen by a [Camera]
//
// Styles shared with the interactive preview live in styles.go.
package viz
