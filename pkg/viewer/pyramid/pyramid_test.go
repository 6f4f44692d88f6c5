package pyramid

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"worldmap/pkg/viewer/assets"
	"worldmap/pkg/viewer/tiles"
)

// quadrants returns a 2s x 2s image whose four quadrants have distinct
// colours, indexed [col][row].
func quadrants(s int) (*image.RGBA, [2][2]color.RGBA) {
	cols := [2][2]color.RGBA{
		{{255, 0, 0, 255}, {0, 255, 0, 255}},
		{{0, 0, 255, 255}, {255, 255, 0, 255}},
	}
	img := image.NewRGBA(image.Rect(0, 0, 2*s, 2*s))
	for x := 0; x < 2*s; x++ {
		for y := 0; y < 2*s; y++ {
			img.SetRGBA(x, y, cols[x/s][y/s])
		}
	}
	return img, cols
}

// near reports whether two colours match within scaling round-off.
func near(a, b color.RGBA) bool {
	d := func(x, y uint8) bool { return max(x, y)-min(x, y) <= 2 }
	return d(a.R, b.R) && d(a.G, b.G) && d(a.B, b.B) && d(a.A, b.A)
}

func testCtx(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestSplitLevel_ColumnMajor(t *testing.T) {
	src, want := quadrants(8)
	grid, err := SplitLevel(src, 2, 4)
	if err != nil {
		t.Fatal(err)
	}
	for col := 0; col < 2; col++ {
		for row := 0; row < 2; row++ {
			tile := grid[col][row]
			if b := tile.Bounds(); b.Dx() != 4 || b.Dy() != 4 {
				t.Fatalf("tile %d,%d size = %v, want 4x4", col, row, b)
			}
			if got := tile.RGBAAt(2, 2); !near(got, want[col][row]) {
				t.Errorf("tile %d,%d centre = %v, want %v", col, row, got, want[col][row])
			}
		}
	}
}

func TestSplitLevel_Errors(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	if _, err := SplitLevel(src, 0, 4); err == nil {
		t.Error("SplitLevel with level 0 succeeded")
	}
	if _, err := SplitLevel(src, 4, 4); err == nil {
		t.Error("SplitLevel with a source smaller than the grid succeeded")
	}
}

func TestWriteAndJoinLevel(t *testing.T) {
	dir := t.TempDir()
	src, want := quadrants(8)
	grid, err := SplitLevel(src, 2, 8)
	if err != nil {
		t.Fatal(err)
	}
	written, err := WriteLevel(filepath.Join(dir, "assets"), 2, grid)
	if err != nil {
		t.Fatal(err)
	}
	if len(written) != 4 {
		t.Fatalf("WriteLevel wrote %d files, want 4", len(written))
	}
	if _, err := os.Stat(filepath.Join(dir, "assets", "2", "image-1-0.png")); err != nil {
		t.Errorf("tile 1,0 not at the asset path: %v", err)
	}

	joined, err := JoinLevel(testCtx(t), assets.FileFetcher{Dir: dir}, "assets", "png", 2, 8)
	if err != nil {
		t.Fatal(err)
	}
	if b := joined.Bounds(); b.Dx() != 16 || b.Dy() != 16 {
		t.Fatalf("joined size = %v, want 16x16", b)
	}
	if got := joined.RGBAAt(12, 4); !near(got, want[1][0]) {
		t.Errorf("joined pixel in column 1 row 0 = %v, want %v", got, want[1][0])
	}
}

func TestJoinLevel_MissingTile(t *testing.T) {
	_, err := JoinLevel(testCtx(t), assets.FileFetcher{Dir: t.TempDir()}, "assets", "png", 2, 8)
	if err == nil || !strings.Contains(err.Error(), "2/0,0") {
		t.Errorf("JoinLevel() error = %v, want one naming tile 2/0,0", err)
	}
}

func TestExpandURL(t *testing.T) {
	got := ExpandURL("https://cdn.example/{level}/{col}-{row}.webp", tiles.Key{Level: 4, Col: 3, Row: 1})
	if want := "https://cdn.example/4/3-1.webp"; got != want {
		t.Errorf("ExpandURL() = %q, want %q", got, want)
	}
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 1, 1))); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestFetchLevel(t *testing.T) {
	body := pngBytes(t)
	var mu sync.Mutex
	seen := map[string]bool{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		seen[r.URL.Path] = true
		mu.Unlock()
		w.Write(body)
	}))
	defer srv.Close()

	dir := t.TempDir()
	var last int
	err := FetchLevel(testCtx(t), FetchOptions{
		URLTemplate: srv.URL + "/{col}-{row}.png",
		Level:       2,
		Root:        dir,
		Ext:         "png",
		Concurrency: 2,
		Progress: func(done, total int, k tiles.Key) {
			mu.Lock()
			last = max(last, done)
			mu.Unlock()
			if total != 4 {
				t.Errorf("progress total = %d, want 4", total)
			}
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(seen) != 4 || !seen["/1-0.png"] {
		t.Errorf("requested paths = %v, want the four tiles", seen)
	}
	if last != 4 {
		t.Errorf("last progress = %d, want 4", last)
	}
	data, err := os.ReadFile(filepath.Join(dir, "2", "image-1-1.png"))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(data, body) {
		t.Error("written tile differs from the response body")
	}
}

func TestFetchLevel_StopsOnError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	err := FetchLevel(testCtx(t), FetchOptions{
		URLTemplate: srv.URL + "/{col}-{row}.png",
		Level:       2,
		Root:        t.TempDir(),
		Ext:         "png",
	})
	if err == nil || !strings.Contains(err.Error(), "404") {
		t.Errorf("FetchLevel() error = %v, want a 404", err)
	}
}

func TestFetchLevel_TruncatedBodyLeavesNoFile(t *testing.T) {
	body := pngBytes(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Promise more than is sent; the server then drops the connection.
		w.Header().Set("Content-Length", strconv.Itoa(len(body)*2))
		w.Write(body)
	}))
	defer srv.Close()

	dir := t.TempDir()
	err := FetchLevel(testCtx(t), FetchOptions{
		URLTemplate: srv.URL + "/{col}-{row}.png",
		Level:       1,
		Root:        dir,
		Ext:         "png",
	})
	if err == nil {
		t.Fatal("FetchLevel() error = nil, want a short read")
	}
	p := filepath.Join(dir, "1", "image-0-0.png")
	if _, err := os.Stat(p); !os.IsNotExist(err) {
		t.Errorf("partial tile %s left behind (stat error %v)", p, err)
	}
}
