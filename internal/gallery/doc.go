// Package gallery stores gallery records and their artwork lists.
//
// A [Store] keeps one JSON document per gallery under a base directory and
// offers create/read/update/delete keyed by gallery ID, plus artwork
// add/remove. The layout engine never writes here; it only reads the artwork
// count and room parameters through [Gallery.LayoutRequest].
package gallery
