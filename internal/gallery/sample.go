package gallery

import (
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/galleryvr/internal/layout"
)

var sampleCatalog = []struct {
	title, description, url, category string
}{
	{"Mountain Sunset", "A beautiful mountain landscape at sunset", "https://images.pexels.com/photos/2387873/pexels-photo-2387873.jpeg", "nature"},
	{"Abstract Composition", "Colorful abstract composition with geometric shapes", "https://images.pexels.com/photos/2693212/pexels-photo-2693212.png", "abstract"},
	{"Coastal Waves", "Powerful ocean waves crashing against the shore", "https://images.pexels.com/photos/1350197/pexels-photo-1350197.jpeg", "nature"},
	{"Night Sky", "Stars and galaxies in the night sky", "https://images.pexels.com/photos/1252890/pexels-photo-1252890.jpeg", "space"},
	{"Urban Architecture", "Modern architecture in an urban setting", "https://images.pexels.com/photos/3052361/pexels-photo-3052361.jpeg", "urban"},
	{"Autumn Forest", "Colorful autumn forest with fallen leaves", "https://images.pexels.com/photos/1808329/pexels-photo-1808329.jpeg", "nature"},
	{"Desert Landscape", "Expansive desert landscape with sand dunes", "https://images.pexels.com/photos/1001435/pexels-photo-1001435.jpeg", "nature"},
	{"Abstract Fluid Art", "Colorful abstract fluid art with flowing patterns", "https://images.pexels.com/photos/1328891/pexels-photo-1328891.jpeg", "abstract"},
	{"Nebula", "Colorful nebula in deep space", "https://images.pexels.com/photos/1169754/pexels-photo-1169754.jpeg", "space"},
	{"Japanese Garden", "Serene Japanese garden with traditional elements", "https://images.pexels.com/photos/1108701/pexels-photo-1108701.jpeg", "nature"},
}

// SampleArtworks returns the built-in artwork catalog with fresh IDs.
func SampleArtworks() []Artwork {
	now := time.Now().UTC()
	out := make([]Artwork, len(sampleCatalog))
	for i, c := range sampleCatalog {
		out[i] = Artwork{
			ID:          uuid.NewString(),
			Title:       c.title,
			Description: c.description,
			ImageURL:    c.url,
			Category:    c.category,
			CreatedAt:   now,
		}
	}
	return out
}

func byCategory(as []Artwork, category string, limit int) []Artwork {
	out := []Artwork{}
	for _, a := range as {
		if a.Category != category {
			continue
		}
		if limit > 0 && len(out) == limit {
			break
		}
		out = append(out, a)
	}
	return out
}

// SampleGalleries returns one demo gallery per archetype.
func SampleGalleries() []Gallery {
	art := SampleArtworks()
	now := time.Now().UTC()
	return []Gallery{
		{
			ID:             uuid.NewString(),
			Name:           "Nature Collection",
			Description:    "A collection of stunning nature photographs",
			Layout:         layout.Circular,
			WallColor:      "#1e293b",
			FloorTexture:   FloorWood,
			CeilingTexture: CeilingSkylights,
			Artworks:       byCategory(art, "nature", 4),
			CreatedAt:      now,
			Thumbnail:      "https://images.pexels.com/photos/2387873/pexels-photo-2387873.jpeg",
		},
		{
			ID:             uuid.NewString(),
			Name:           "Abstract Art",
			Description:    "Modern abstract art gallery",
			Layout:         layout.Grid,
			WallColor:      "#0f172a",
			FloorTexture:   FloorMarble,
			CeilingTexture: CeilingPlain,
			Artworks:       byCategory(art, "abstract", 0),
			CreatedAt:      now.Add(time.Millisecond),
			Thumbnail:      "https://images.pexels.com/photos/2693212/pexels-photo-2693212.png",
		},
		{
			ID:             uuid.NewString(),
			Name:           "Space Exploration",
			Description:    "Images of space and cosmic phenomena",
			Layout:         layout.Corridor,
			WallColor:      "#020617",
			FloorTexture:   FloorConcrete,
			CeilingTexture: CeilingSkylights,
			Artworks:       byCategory(art, "space", 0),
			CreatedAt:      now.Add(2 * time.Millisecond),
			Thumbnail:      "https://images.pexels.com/photos/1169754/pexels-photo-1169754.jpeg",
		},
	}
}
