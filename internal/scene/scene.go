// Package scene turns layout placements into a renderable scene graph.
//
// It is the imperative boundary around the pure layout engine: every
// Materialize call discards the previously generated nodes and creates one
// node per placement, bound to the artwork whose position in the gallery
// matches the placement index.
package scene

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/galleryvr/internal/gallery"
	"github.com/san-kum/galleryvr/internal/layout"
)

const (
	FrameWidth  = 1.5
	FrameHeight = 1.0
)

// Viewer is where the camera starts, at standing eye height in the room's
// center.
var Viewer = layout.Vec3{Y: 1.6}

type Node struct {
	ID          string      `json:"id" yaml:"id"`
	Index       int         `json:"index" yaml:"index"`
	ArtworkID   string      `json:"artworkId,omitempty" yaml:"artwork_id,omitempty"`
	Title       string      `json:"title,omitempty" yaml:"title,omitempty"`
	Description string      `json:"description,omitempty" yaml:"description,omitempty"`
	ImageURL    string      `json:"imageUrl,omitempty" yaml:"image_url,omitempty"`
	AudioSrc    string      `json:"audioSrc,omitempty" yaml:"audio_src,omitempty"`
	Placeholder bool        `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Position    layout.Vec3 `json:"position" yaml:"position"`
	Rotation    layout.Vec3 `json:"rotation" yaml:"rotation"`
	Width       float64     `json:"width" yaml:"width"`
	Height      float64     `json:"height" yaml:"height"`
}

type Room struct {
	Archetype       layout.Archetype       `json:"archetype" yaml:"archetype"`
	WallColor       string                 `json:"wallColor" yaml:"wall_color"`
	FloorTexture    gallery.FloorTexture   `json:"floorTexture" yaml:"floor_texture"`
	CeilingTexture  gallery.CeilingTexture `json:"ceilingTexture" yaml:"ceiling_texture"`
	BackgroundMusic string                 `json:"backgroundMusic,omitempty" yaml:"background_music,omitempty"`
	Request         layout.Request         `json:"request" yaml:"request"`
}

// Scene is not safe for concurrent mutation.
type Scene struct {
	GalleryID  string      `json:"galleryId,omitempty" yaml:"gallery_id,omitempty"`
	Name       string      `json:"name,omitempty" yaml:"name,omitempty"`
	Room       Room        `json:"room" yaml:"room"`
	Viewer     layout.Vec3 `json:"viewer" yaml:"viewer"`
	Nodes      []Node      `json:"nodes" yaml:"nodes"`
	Generation int         `json:"generation" yaml:"generation"`
}

func New() *Scene {
	return &Scene{Viewer: Viewer, Nodes: []Node{}}
}

// Clear drops every generated node.
func (s *Scene) Clear() {
	s.Nodes = s.Nodes[:0]
}

// Materialize replaces the scene's nodes with one node per placement. A
// placement whose index has no matching artwork becomes a placeholder.
func (s *Scene) Materialize(ps []layout.Placement, artworks []gallery.Artwork) {
	s.Clear()
	for _, p := range ps {
		n := Node{
			ID:       fmt.Sprintf("artwork-%d", p.Index),
			Index:    p.Index,
			Position: p.Position,
			Rotation: p.Rotation,
			Width:    FrameWidth,
			Height:   FrameHeight,
		}
		if p.Index >= 0 && p.Index < len(artworks) {
			a := artworks[p.Index]
			n.ArtworkID = a.ID
			n.Title = a.Title
			n.Description = a.Description
			n.ImageURL = a.ImageURL
			n.AudioSrc = a.AudioCommentary
		} else {
			n.Placeholder = true
		}
		s.Nodes = append(s.Nodes, n)
	}
	s.Generation++
}

// Rebuild recomputes the layout for g with e and materializes it.
func (s *Scene) Rebuild(g *gallery.Gallery, e *layout.Engine) {
	req := g.LayoutRequest()
	s.GalleryID = g.ID
	s.Name = g.Name
	s.Room = Room{
		Archetype:       g.Layout,
		WallColor:       g.WallColor,
		FloorTexture:    g.FloorTexture,
		CeilingTexture:  g.CeilingTexture,
		BackgroundMusic: g.BackgroundMusic,
		Request:         layout.Sanitize(req, e.Defaults()),
	}
	s.Materialize(e.Generate(req), g.Artworks)
}

// Build returns a fresh scene for g.
func Build(g *gallery.Gallery, e *layout.Engine) *Scene {
	s := New()
	s.Rebuild(g, e)
	return s
}

// Placements returns the layout placements the scene was built from.
func (s *Scene) Placements() []layout.Placement {
	out := make([]layout.Placement, len(s.Nodes))
	for i, n := range s.Nodes {
		out[i] = layout.Placement{Index: n.Index, Position: n.Position, Rotation: n.Rotation}
	}
	return out
}

func (s *Scene) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

func (s *Scene) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return err
	}
	return enc.Close()
}
