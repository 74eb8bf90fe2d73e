package gallery

import "errors"

var (
	// ErrNotFound indicates no gallery with the requested ID exists.
	ErrNotFound = errors.New("gallery: not found")

	// ErrArtworkNotFound indicates the gallery has no artwork with the requested ID.
	ErrArtworkNotFound = errors.New("gallery: artwork not found")

	// ErrInvalidName indicates an empty or whitespace-only gallery name.
	ErrInvalidName = errors.New("gallery: name must not be empty")

	// ErrInvalidArtwork indicates an artwork without a title or image URL.
	ErrInvalidArtwork = errors.New("gallery: artwork needs a title and image url")
)
