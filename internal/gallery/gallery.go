package gallery

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/galleryvr/internal/config"
	"github.com/san-kum/galleryvr/internal/layout"
)

type FloorTexture string

const (
	FloorWood     FloorTexture = "wood"
	FloorMarble   FloorTexture = "marble"
	FloorConcrete FloorTexture = "concrete"
	FloorCarpet   FloorTexture = "carpet"
)

type CeilingTexture string

const (
	CeilingPlain      CeilingTexture = "plain"
	CeilingSkylights  CeilingTexture = "skylights"
	CeilingIndustrial CeilingTexture = "industrial"
)

func (f FloorTexture) Valid() bool {
	switch f {
	case FloorWood, FloorMarble, FloorConcrete, FloorCarpet:
		return true
	}
	return false
}

func (c CeilingTexture) Valid() bool {
	switch c {
	case CeilingPlain, CeilingSkylights, CeilingIndustrial:
		return true
	}
	return false
}

const (
	DefaultWallColor = "#1e293b"
	DefaultThumbnail = "/assets/thumbnails/default.jpg"
)

type Artwork struct {
	ID              string    `json:"id" yaml:"id"`
	Title           string    `json:"title" yaml:"title"`
	Description     string    `json:"description" yaml:"description"`
	ImageURL        string    `json:"imageUrl" yaml:"image_url"`
	AudioCommentary string    `json:"audioCommentary,omitempty" yaml:"audio_commentary,omitempty"`
	Category        string    `json:"category" yaml:"category"`
	CreatedAt       time.Time `json:"createdAt" yaml:"created_at"`
}

// RoomParams overrides the archetype's standard room parameters. Nil fields
// keep the archetype preset; zero is a valid override.
type RoomParams struct {
	Radius  *float64 `json:"radius,omitempty" yaml:"radius,omitempty"`
	Spacing *float64 `json:"spacing,omitempty" yaml:"spacing,omitempty"`
	Height  *float64 `json:"height,omitempty" yaml:"height,omitempty"`
}

// Float returns a pointer to v, for filling RoomParams.
func Float(v float64) *float64 { return &v }

type Gallery struct {
	ID              string           `json:"id" yaml:"id"`
	Name            string           `json:"name" yaml:"name"`
	Description     string           `json:"description" yaml:"description"`
	Layout          layout.Archetype `json:"layout" yaml:"layout"`
	Room            RoomParams       `json:"room" yaml:"room,omitempty"`
	WallColor       string           `json:"wallColor" yaml:"wall_color"`
	FloorTexture    FloorTexture     `json:"floorTexture" yaml:"floor_texture"`
	CeilingTexture  CeilingTexture   `json:"ceilingTexture" yaml:"ceiling_texture"`
	BackgroundMusic string           `json:"backgroundMusic,omitempty" yaml:"background_music,omitempty"`
	Artworks        []Artwork        `json:"artworks" yaml:"artworks"`
	CreatedAt       time.Time        `json:"createdAt" yaml:"created_at"`
	Thumbnail       string           `json:"thumbnail" yaml:"thumbnail"`
}

// NewGallery returns an empty circular gallery with the standard styling.
func NewGallery(name string) (*Gallery, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidName
	}
	return &Gallery{
		ID:             uuid.NewString(),
		Name:           name,
		Layout:         layout.Circular,
		WallColor:      DefaultWallColor,
		FloorTexture:   FloorWood,
		CeilingTexture: CeilingPlain,
		Artworks:       []Artwork{},
		CreatedAt:      time.Now().UTC(),
		Thumbnail:      DefaultThumbnail,
	}, nil
}

// NewArtwork fills in an ID and creation time.
func NewArtwork(title, imageURL string) (Artwork, error) {
	a := Artwork{Title: strings.TrimSpace(title), ImageURL: strings.TrimSpace(imageURL)}
	if a.Title == "" || a.ImageURL == "" {
		return Artwork{}, ErrInvalidArtwork
	}
	a.ID = uuid.NewString()
	a.CreatedAt = time.Now().UTC()
	return a, nil
}

// LayoutRequest derives the engine request for the gallery's current state.
// Room overrides take precedence over the archetype preset.
func (g *Gallery) LayoutRequest() layout.Request {
	p := config.ArchetypePreset(g.Layout)
	req := layout.Request{
		Archetype: g.Layout,
		Count:     len(g.Artworks),
		Radius:    p.Radius,
		Spacing:   p.Spacing,
		Height:    p.Height,
	}
	if g.Room.Radius != nil {
		req.Radius = *g.Room.Radius
	}
	if g.Room.Spacing != nil {
		req.Spacing = *g.Room.Spacing
	}
	if g.Room.Height != nil {
		req.Height = *g.Room.Height
	}
	return req
}

func (g *Gallery) artworkIndex(id string) int {
	for i, a := range g.Artworks {
		if a.ID == id {
			return i
		}
	}
	return -1
}
