//go:build ebiten

package render

import (
	"image"
	"image/color"

	"winter/pkg/snow"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Surface draws particles onto an ebiten screen. Sprite copies are uploaded
// once and reused while they stay visible.
type Surface struct {
	dst   *ebiten.Image
	disk  color.Color
	cache map[image.Image]*uploaded
	frame uint64
}

type uploaded struct {
	img  *ebiten.Image
	seen uint64
}

var _ snow.Surface = (*Surface)(nil)

// NewSurface returns a surface that fills sprite-less particles with disk.
func NewSurface(disk color.Color) *Surface {
	return &Surface{disk: disk, cache: map[image.Image]*uploaded{}}
}

// Begin targets dst for the coming frame.
func (s *Surface) Begin(dst *ebiten.Image) {
	s.dst = dst
	s.frame++
}

// End releases uploads that were not drawn during the frame.
func (s *Surface) End() {
	for key, u := range s.cache {
		if u.seen != s.frame {
			u.img.Dispose()
			delete(s.cache, key)
		}
	}
	s.dst = nil
}

// DrawImage draws img with its top-left corner at (x, y).
func (s *Surface) DrawImage(img image.Image, x, y float64) {
	if s.dst == nil || img == nil {
		return
	}
	u, ok := s.cache[img]
	if !ok {
		u = &uploaded{img: ebiten.NewImageFromImage(img)}
		s.cache[img] = u
	}
	u.seen = s.frame
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(x, y)
	s.dst.DrawImage(u.img, op)
}

// FillCircle draws an anti-aliased disk centred on (x, y).
func (s *Surface) FillCircle(x, y, radius float64) {
	if s.dst == nil || radius <= 0 {
		return
	}
	vector.DrawFilledCircle(s.dst, float32(x), float32(y), float32(radius), s.disk, true)
}

// Cached returns the number of uploaded sprite copies.
func (s *Surface) Cached() int { return len(s.cache) }
