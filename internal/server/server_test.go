package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/galleryvr/internal/gallery"
	"github.com/san-kum/galleryvr/internal/layout"
	"github.com/san-kum/galleryvr/internal/scene"
)

func newTestServer(t *testing.T) (*httptest.Server, *gallery.Store) {
	t.Helper()
	store := gallery.New(t.TempDir())
	require.NoError(t, store.Init())
	srv := httptest.NewServer(New(store, nil, log.New(io.Discard)).Routes())
	t.Cleanup(srv.Close)
	return srv, store
}

func getJSON(t *testing.T, url string, v any) int {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	if v != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
	}
	return resp.StatusCode
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t)
	var body map[string]string
	assert.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/api/health", &body))
	assert.Equal(t, "ok", body["status"])
}

func TestLayoutQuery(t *testing.T) {
	srv, _ := newTestServer(t)

	var body layoutResponse
	code := getJSON(t, srv.URL+"/api/layout?archetype=grid&count=5&spacing=2&height=1.6", &body)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, layout.Grid, body.Request.Archetype)
	require.Len(t, body.Placements, 5)
	assert.InDelta(t, -2.0, body.Placements[0].Position.X, 1e-9)
	assert.InDelta(t, 3.6, body.Placements[0].Position.Y, 1e-9)
}

func TestLayoutQueryMalformedNumbersUseDefaults(t *testing.T) {
	srv, _ := newTestServer(t)

	var body layoutResponse
	code := getJSON(t, srv.URL+"/api/layout?archetype=circular&count=3&radius=abc&height=NaN", &body)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, layout.DefaultRadius, body.Request.Radius)
	assert.Equal(t, layout.DefaultHeight, body.Request.Height)
	require.Len(t, body.Placements, 3)
	assert.InDelta(t, layout.DefaultRadius, body.Placements[0].Position.X, 1e-9)
}

func TestLayoutQueryEmptyCases(t *testing.T) {
	srv, _ := newTestServer(t)

	for _, q := range []string{
		"archetype=spiral&count=4",
		"archetype=grid&count=0",
		"archetype=grid&count=-3",
		"archetype=grid",
		"archetype=&count=4",
		"archetype=grid&count=Inf",
	} {
		var body layoutResponse
		require.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/api/layout?"+q, &body), q)
		assert.NotNil(t, body.Placements, q)
		assert.Empty(t, body.Placements, q)
	}
}

func TestLayoutQueryArchetypeDefaultsWhenAbsent(t *testing.T) {
	srv, _ := newTestServer(t)

	var body layoutResponse
	require.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/api/layout?count=4", &body))
	assert.Equal(t, layout.Circular, body.Request.Archetype)
	assert.Len(t, body.Placements, 4)
}

func TestLayoutQueryCountLimit(t *testing.T) {
	srv, _ := newTestServer(t)
	assert.Equal(t, http.StatusBadRequest, getJSON(t, srv.URL+"/api/layout?count=1e9", nil))
}

func TestGalleries(t *testing.T) {
	srv, store := newTestServer(t)
	n, err := store.Seed()
	require.NoError(t, err)

	var list []gallerySummary
	require.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/api/galleries", &list))
	require.Len(t, list, n)

	id := list[0].ID
	var g gallery.Gallery
	require.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/api/galleries/"+id, &g))
	assert.Equal(t, list[0].Name, g.Name)

	var lr layoutResponse
	require.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/api/galleries/"+id+"/layout", &lr))
	assert.Len(t, lr.Placements, len(g.Artworks))
	assert.Equal(t, g.Layout, lr.Request.Archetype)

	var sc scene.Scene
	require.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/api/galleries/"+id+"/scene", &sc))
	require.Len(t, sc.Nodes, len(g.Artworks))
	assert.Equal(t, g.Artworks[0].ID, sc.Nodes[0].ArtworkID)
	assert.Equal(t, "artwork-0", sc.Nodes[0].ID)
}

func TestGalleryNotFound(t *testing.T) {
	srv, _ := newTestServer(t)

	for _, path := range []string{"/api/galleries/missing", "/api/galleries/missing/layout", "/api/galleries/missing/scene"} {
		var body map[string]string
		assert.Equal(t, http.StatusNotFound, getJSON(t, srv.URL+path, &body), path)
		assert.NotEmpty(t, body["error"], path)
	}
}
