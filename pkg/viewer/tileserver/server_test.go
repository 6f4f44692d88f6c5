package tileserver

import (
	"context"
	"encoding/json"
	"image"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"worldmap/pkg/viewer/assets"
	"worldmap/pkg/viewer/config"
	"worldmap/pkg/viewer/devtools"
	"worldmap/pkg/viewer/tiles"
)

// newTestServer writes tile 2/1,0 and one icon as PNG and serves them.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Default()
	cfg.ImageExt = "png"

	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for _, p := range []string{
		tiles.Path(cfg.AssetRoot, tiles.Key{Level: 2, Col: 1, Row: 0}, "png"),
		tiles.IconPath(cfg.AssetRoot, "MW-icon-map-City", "png"),
	} {
		full := filepath.Join(dir, filepath.FromSlash(p))
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := devtools.WritePNG(full, img); err != nil {
			t.Fatal(err)
		}
	}

	srv := httptest.NewServer(New(cfg, dir).Routes())
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, url string) int {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	return resp.StatusCode
}

func TestRoutes_Status(t *testing.T) {
	srv := newTestServer(t)
	cases := []struct {
		path string
		want int
	}{
		{"/health", http.StatusOK},
		{"/tiles/2/1/0", http.StatusOK},
		{"/tiles/2/0/0", http.StatusNotFound}, // in grid, not on disk
		{"/tiles/2/2/0", http.StatusNotFound}, // out of grid
		{"/tiles/3/0/0", http.StatusNotFound}, // not a pyramid level
		{"/tiles/2/x/0", http.StatusNotFound},
		{"/icons/MW-icon-map-City", http.StatusOK},
		{"/icons/..", http.StatusBadRequest},
		{"/assets/2/image-1-0.png", http.StatusOK},
		{"/assets/2/image-1-0.webp", http.StatusNotFound},
		{"/assets/icons/MW-icon-map-City.png", http.StatusOK},
	}
	for _, c := range cases {
		t.Run(c.path, func(t *testing.T) {
			if got := get(t, srv.URL+c.path); got != c.want {
				t.Errorf("GET %s = %d, want %d", c.path, got, c.want)
			}
		})
	}
}

func TestHealth_JSON(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "ok" {
		t.Errorf("health body = %v", body)
	}
}

// The viewer's HTTP fetcher resolves asset paths against the server root.
func TestRoutes_ServeHTTPFetcher(t *testing.T) {
	srv := newTestServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	f := assets.NewFetcher(srv.URL, "")
	img, err := f.Fetch(ctx, tiles.Path("assets", tiles.Key{Level: 2, Col: 1, Row: 0}, "png"))
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != 2 {
		t.Errorf("fetched tile width = %d, want 2", img.Bounds().Dx())
	}
}
