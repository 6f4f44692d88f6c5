// Package assets fetches and decodes tile and icon images, and provides the
// load-once asynchronous Loader the tile and icon caches are built on.
package assets

import (
	"context"
	"fmt"
	"image"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	// Decoders for every tile format the pyramid tools read or write.
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

// Fetcher loads and decodes one image by its asset path, e.g.
// "assets/4/image-1-2.webp". Implementations must be safe for concurrent use.
type Fetcher interface {
	Fetch(ctx context.Context, path string) (image.Image, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, path string) (image.Image, error)

// Fetch calls f(ctx, path).
func (f FetcherFunc) Fetch(ctx context.Context, path string) (image.Image, error) {
	return f(ctx, path)
}

// FileFetcher reads images from the local filesystem. Asset paths are
// resolved relative to Dir.
type FileFetcher struct {
	Dir string
}

// Fetch opens and decodes the file at Dir/path.
func (f FileFetcher) Fetch(ctx context.Context, path string) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	full := filepath.Join(f.Dir, filepath.FromSlash(path))
	file, err := os.Open(full)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", full, err)
	}
	defer file.Close()
	return Decode(file, full)
}

// HTTPFetcher downloads images from BaseURL + "/" + path.
type HTTPFetcher struct {
	BaseURL string
	Client  *http.Client // http.DefaultClient when nil
}

// Fetch issues a GET for path below BaseURL and decodes the body.
func (h HTTPFetcher) Fetch(ctx context.Context, path string) (image.Image, error) {
	target, err := url.JoinPath(h.BaseURL, path)
	if err != nil {
		return nil, fmt.Errorf("building URL for %s: %w", path, err)
	}
	body, err := Get(ctx, h.Client, target)
	if err != nil {
		return nil, err
	}
	defer body.Close()
	return Decode(body, target)
}

// Get performs a GET request and returns the body of a 200 response.
func Get(ctx context.Context, client *http.Client, target string) (io.ReadCloser, error) {
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request for %s: %w", target, err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", target, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("fetching %s: unexpected status %s", target, resp.Status)
	}
	return resp.Body, nil
}

// Decode decodes any registered image format; name only labels errors.
func Decode(r io.Reader, name string) (image.Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", name, err)
	}
	return img, nil
}

// NewFetcher returns an HTTPFetcher when baseURL is set and a FileFetcher
// rooted at dir otherwise.
func NewFetcher(baseURL, dir string) Fetcher {
	if strings.TrimSpace(baseURL) != "" {
		return HTTPFetcher{BaseURL: baseURL}
	}
	return FileFetcher{Dir: dir}
}
