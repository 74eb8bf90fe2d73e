package gallery_test

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/galleryvr/internal/gallery"
	"github.com/san-kum/galleryvr/internal/layout"
)

var _ = Describe("Store", func() {
	var (
		dir   string
		store *gallery.Store
	)

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
		store = gallery.New(dir).WithLogger(log.New(GinkgoWriter))
		Expect(store.Init()).To(Succeed())
	})

	Describe("Create", func() {
		It("stores a circular gallery with default styling", func() {
			g, err := store.Create("  Harbor Lights ")
			Expect(err).NotTo(HaveOccurred())
			Expect(g.ID).NotTo(BeEmpty())
			Expect(g.Name).To(Equal("Harbor Lights"))
			Expect(g.Layout).To(Equal(layout.Circular))
			Expect(g.WallColor).To(Equal(gallery.DefaultWallColor))
			Expect(g.FloorTexture).To(Equal(gallery.FloorWood))
			Expect(g.Artworks).To(BeEmpty())

			Expect(filepath.Join(dir, g.ID+".json")).To(BeAnExistingFile())
		})

		It("rejects a blank name", func() {
			_, err := store.Create("   ")
			Expect(err).To(MatchError(gallery.ErrInvalidName))
		})
	})

	Describe("Get", func() {
		It("round-trips a stored gallery", func() {
			created, err := store.Create("Round Trip")
			Expect(err).NotTo(HaveOccurred())

			loaded, err := store.Get(created.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(loaded.Name).To(Equal("Round Trip"))
			Expect(loaded.CreatedAt.Equal(created.CreatedAt)).To(BeTrue())
		})

		It("returns ErrNotFound for a missing id", func() {
			_, err := store.Get("missing")
			Expect(err).To(MatchError(gallery.ErrNotFound))
		})

		It("refuses path-like ids", func() {
			_, err := store.Get("../etc/passwd")
			Expect(err).To(MatchError(gallery.ErrNotFound))
		})
	})

	Describe("List", func() {
		It("is empty for a fresh store", func() {
			gs, err := store.List()
			Expect(err).NotTo(HaveOccurred())
			Expect(gs).To(BeEmpty())
		})

		It("is empty when the directory does not exist", func() {
			gs, err := gallery.New(filepath.Join(dir, "nope")).List()
			Expect(err).NotTo(HaveOccurred())
			Expect(gs).To(BeEmpty())
		})

		It("skips unreadable files", func() {
			_, err := store.Create("Good")
			Expect(err).NotTo(HaveOccurred())
			Expect(os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{"), 0644)).To(Succeed())

			gs, err := store.List()
			Expect(err).NotTo(HaveOccurred())
			Expect(gs).To(HaveLen(1))
			Expect(gs[0].Name).To(Equal("Good"))
		})
	})

	Describe("Update", func() {
		It("persists layout changes", func() {
			g, err := store.Create("Switcher")
			Expect(err).NotTo(HaveOccurred())

			g.Layout = layout.Grid
			g.Room.Spacing = gallery.Float(4)
			Expect(store.Update(g)).To(Succeed())

			loaded, err := store.Get(g.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(loaded.Layout).To(Equal(layout.Grid))
			Expect(loaded.Room.Spacing).To(HaveValue(Equal(4.0)))
		})

		It("fails for an unknown gallery", func() {
			g, err := gallery.NewGallery("Ghost")
			Expect(err).NotTo(HaveOccurred())
			Expect(store.Update(g)).To(MatchError(gallery.ErrNotFound))
		})
	})

	Describe("Delete", func() {
		It("removes the gallery", func() {
			g, err := store.Create("Temporary")
			Expect(err).NotTo(HaveOccurred())

			Expect(store.Delete(g.ID)).To(Succeed())
			_, err = store.Get(g.ID)
			Expect(err).To(MatchError(gallery.ErrNotFound))
		})

		It("returns ErrNotFound for a missing id", func() {
			Expect(store.Delete("missing")).To(MatchError(gallery.ErrNotFound))
		})
	})

	Describe("artworks", func() {
		var g *gallery.Gallery

		BeforeEach(func() {
			var err error
			g, err = store.Create("Artful")
			Expect(err).NotTo(HaveOccurred())
		})

		It("appends artworks in order and assigns ids", func() {
			_, err := store.AddArtwork(g.ID, gallery.Artwork{Title: "One", ImageURL: "one.jpg"})
			Expect(err).NotTo(HaveOccurred())
			updated, err := store.AddArtwork(g.ID, gallery.Artwork{Title: "Two", ImageURL: "two.jpg"})
			Expect(err).NotTo(HaveOccurred())

			Expect(updated.Artworks).To(HaveLen(2))
			Expect(updated.Artworks[0].Title).To(Equal("One"))
			Expect(updated.Artworks[1].Title).To(Equal("Two"))
			Expect(updated.Artworks[0].ID).NotTo(BeEmpty())
			Expect(updated.Artworks[0].ID).NotTo(Equal(updated.Artworks[1].ID))
		})

		It("rejects an artwork without an image", func() {
			_, err := store.AddArtwork(g.ID, gallery.Artwork{Title: "Blank"})
			Expect(err).To(MatchError(gallery.ErrInvalidArtwork))
		})

		It("removes an artwork by id", func() {
			updated, err := store.AddArtwork(g.ID, gallery.Artwork{Title: "Gone", ImageURL: "gone.jpg"})
			Expect(err).NotTo(HaveOccurred())

			updated, err = store.RemoveArtwork(g.ID, updated.Artworks[0].ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Artworks).To(BeEmpty())
		})

		It("reports a missing artwork", func() {
			_, err := store.RemoveArtwork(g.ID, "nope")
			Expect(err).To(MatchError(gallery.ErrArtworkNotFound))
		})

		It("reports a missing gallery", func() {
			_, err := store.AddArtwork("nope", gallery.Artwork{Title: "x", ImageURL: "x.jpg"})
			Expect(err).To(MatchError(gallery.ErrNotFound))
		})
	})

	Describe("Seed", func() {
		It("installs one sample gallery per archetype", func() {
			n, err := store.Seed()
			Expect(err).NotTo(HaveOccurred())
			Expect(n).To(Equal(3))

			gs, err := store.List()
			Expect(err).NotTo(HaveOccurred())
			Expect(gs).To(HaveLen(3))

			layouts := []layout.Archetype{}
			for _, g := range gs {
				layouts = append(layouts, g.Layout)
			}
			Expect(layouts).To(ConsistOf(layout.Circular, layout.Grid, layout.Corridor))
			Expect(gs[0].Name).To(Equal("Nature Collection"))
			Expect(gs[0].Artworks).To(HaveLen(4))
		})

		It("is installed by Open on first use", func() {
			fresh := gallery.New(filepath.Join(dir, "fresh")).WithLogger(log.New(GinkgoWriter))
			n, err := fresh.Open()
			Expect(err).NotTo(HaveOccurred())
			Expect(n).To(Equal(3))

			gs, err := fresh.List()
			Expect(err).NotTo(HaveOccurred())
			Expect(gs).To(HaveLen(3))
		})

		It("is not reinstalled by Open into an existing empty store", func() {
			n, err := store.Open()
			Expect(err).NotTo(HaveOccurred())
			Expect(n).To(BeZero())

			gs, err := store.List()
			Expect(err).NotTo(HaveOccurred())
			Expect(gs).To(BeEmpty())
		})

		It("leaves a populated store alone", func() {
			_, err := store.Create("Existing")
			Expect(err).NotTo(HaveOccurred())

			n, err := store.Seed()
			Expect(err).NotTo(HaveOccurred())
			Expect(n).To(BeZero())
		})
	})
})

var _ = Describe("Gallery.LayoutRequest", func() {
	It("uses the archetype preset and the artwork count", func() {
		g, err := gallery.NewGallery("Presets")
		Expect(err).NotTo(HaveOccurred())
		g.Layout = layout.Grid
		g.Artworks = gallery.SampleArtworks()[:5]

		req := g.LayoutRequest()
		Expect(req).To(Equal(layout.Request{
			Archetype: layout.Grid,
			Count:     5,
			Radius:    9.5,
			Spacing:   3,
			Height:    1.6,
		}))
		Expect(layout.Generate(req)).To(HaveLen(5))
	})

	It("prefers room overrides", func() {
		g, err := gallery.NewGallery("Custom")
		Expect(err).NotTo(HaveOccurred())
		g.Layout = layout.Corridor
		g.Room = gallery.RoomParams{Radius: gallery.Float(3)}

		req := g.LayoutRequest()
		Expect(req.Radius).To(Equal(3.0))
		Expect(req.Spacing).To(Equal(2.0))
		Expect(req.Count).To(BeZero())
	})

	It("accepts a zero override", func() {
		g, err := gallery.NewGallery("Floor level")
		Expect(err).NotTo(HaveOccurred())
		g.Layout = layout.Grid
		g.Artworks = gallery.SampleArtworks()[:4]
		g.Room = gallery.RoomParams{Height: gallery.Float(0)}

		req := g.LayoutRequest()
		Expect(req.Height).To(BeZero())
		Expect(req.Radius).To(Equal(9.5))

		ps := layout.Generate(req)
		Expect(ps).To(HaveLen(4))
		Expect(ps[2].Position.Y).To(BeZero())
	})

	It("keeps a zero override through the store", func() {
		store := gallery.New(GinkgoT().TempDir()).WithLogger(log.New(GinkgoWriter))
		g, err := store.Create("Sunken")
		Expect(err).NotTo(HaveOccurred())
		g.Room.Height = gallery.Float(0)
		Expect(store.Update(g)).To(Succeed())

		loaded, err := store.Get(g.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(loaded.Room.Height).To(HaveValue(BeZero()))
		Expect(loaded.Room.Radius).To(BeNil())
	})

	It("yields no placements for an empty gallery", func() {
		g, err := gallery.NewGallery("Empty")
		Expect(err).NotTo(HaveOccurred())
		Expect(layout.Generate(g.LayoutRequest())).To(BeEmpty())
	})
})
