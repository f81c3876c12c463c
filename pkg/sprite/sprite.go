// Package sprite loads and scales the optional particle bitmap.
package sprite

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	"golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// Load decodes the image at path. An empty path means "no sprite" and
// returns a nil image without error.
func Load(path string) (image.Image, error) {
	if path == "" {
		return nil, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open sprite: %w", err)
	}
	defer f.Close()
	img, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("sprite %s: %w", path, err)
	}
	return img, nil
}

// Decode reads a png, jpeg, gif, bmp or webp image.
func Decode(r io.Reader) (image.Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode sprite: %w", err)
	}
	return img, nil
}

// Scale returns an independent size×size copy of src using nearest-neighbour
// sampling. A nil source or non-positive size yields nil.
func Scale(src image.Image, size int) *image.RGBA {
	if src == nil || size <= 0 {
		return nil
	}
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}
