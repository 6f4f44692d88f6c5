// Package pyramid builds and inspects tile pyramids on disk: cutting a
// source image into level grids, stitching a level back together and
// downloading a level from a remote tile source.
package pyramid

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"golang.org/x/image/draw"

	"worldmap/pkg/viewer/assets"
	"worldmap/pkg/viewer/devtools"
	"worldmap/pkg/viewer/tiles"
)

// SplitLevel cuts src into a level x level grid and scales every cell to
// size x size. The result is indexed [col][row].
func SplitLevel(src image.Image, level, size int) ([][]*image.RGBA, error) {
	if level <= 0 || size <= 0 {
		return nil, fmt.Errorf("split: level %d and size %d must be positive", level, size)
	}
	b := src.Bounds()
	if b.Dx() < level || b.Dy() < level {
		return nil, fmt.Errorf("split: source %dx%d is smaller than the %dx%d grid", b.Dx(), b.Dy(), level, level)
	}

	out := make([][]*image.RGBA, level)
	for col := 0; col < level; col++ {
		out[col] = make([]*image.RGBA, level)
		for row := 0; row < level; row++ {
			sr := image.Rect(
				b.Min.X+b.Dx()*col/level, b.Min.Y+b.Dy()*row/level,
				b.Min.X+b.Dx()*(col+1)/level, b.Min.Y+b.Dy()*(row+1)/level,
			)
			dst := image.NewRGBA(image.Rect(0, 0, size, size))
			draw.CatmullRom.Scale(dst, dst.Bounds(), src, sr, draw.Src, nil)
			out[col][row] = dst
		}
	}
	return out, nil
}

// WriteLevel writes a split level below root following the asset layout,
// as PNG files, and returns the written paths.
func WriteLevel(root string, level int, grid [][]*image.RGBA) ([]string, error) {
	var written []string
	for col := range grid {
		for row, img := range grid[col] {
			k := tiles.Key{Level: level, Col: col, Row: row}
			p := filepath.FromSlash(tiles.Path(root, k, "png"))
			if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
				return written, err
			}
			if err := devtools.WritePNG(p, img); err != nil {
				return written, fmt.Errorf("writing tile %v: %w", k, err)
			}
			written = append(written, p)
		}
	}
	return written, nil
}

// JoinLevel loads every tile of a level through f and stitches them into
// one image of level*size pixels square.
func JoinLevel(ctx context.Context, f assets.Fetcher, root, ext string, level, size int) (*image.RGBA, error) {
	if level <= 0 || size <= 0 {
		return nil, fmt.Errorf("join: level %d and size %d must be positive", level, size)
	}
	out := image.NewRGBA(image.Rect(0, 0, level*size, level*size))
	for col := 0; col < level; col++ {
		for row := 0; row < level; row++ {
			k := tiles.Key{Level: level, Col: col, Row: row}
			img, err := f.Fetch(ctx, tiles.Path(root, k, ext))
			if err != nil {
				return nil, fmt.Errorf("join: tile %v: %w", k, err)
			}
			dr := image.Rect(col*size, row*size, (col+1)*size, (row+1)*size)
			draw.ApproxBiLinear.Scale(out, dr, img, img.Bounds(), draw.Src, nil)
		}
	}
	return out, nil
}
