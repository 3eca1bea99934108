// Package raster implements renderer.Surface on the CPU with fogleman/gg.
package raster

import (
	"fmt"
	"image"
	"image/color"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/pthm-cable/vortex/renderer"
)

// Surface is an in-memory RGBA frame.
type Surface struct {
	im *image.RGBA
	dc *gg.Context

	// Float scratch buffers for the glow filter
	src []float32
	tmp []float32

	faces map[float64]font.Face
}

var _ renderer.Surface = (*Surface)(nil)

// New creates a surface of the given pixel size.
func New(w, h int) *Surface {
	s := &Surface{faces: make(map[float64]font.Face)}
	s.Resize(w, h)
	return s
}

// Size implements renderer.Surface.
func (s *Surface) Size() (int, int) {
	b := s.im.Bounds()
	return b.Dx(), b.Dy()
}

// Resize reallocates the frame. Contents are discarded.
func (s *Surface) Resize(w, h int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	if s.im != nil {
		if cw, ch := s.Size(); cw == w && ch == h {
			return
		}
	}
	s.im = image.NewRGBA(image.Rect(0, 0, w, h))
	s.dc = gg.NewContextForRGBA(s.im)
	s.src = make([]float32, len(s.im.Pix))
	s.tmp = make([]float32, len(s.im.Pix))
}

// Clear implements renderer.Surface.
func (s *Surface) Clear(c color.RGBA) {
	s.dc.SetColor(c)
	s.dc.Clear()
}

// StrokeLine implements renderer.Surface.
func (s *Surface) StrokeLine(x1, y1, x2, y2, width float64, c color.RGBA) {
	if c.A == 0 || width <= 0 {
		return
	}
	s.dc.SetLineWidth(width)
	s.dc.SetLineCapRound()
	s.dc.SetRGBA255(int(c.R), int(c.G), int(c.B), int(c.A))
	s.dc.DrawLine(x1, y1, x2, y2)
	s.dc.Stroke()
}

// CompositeAdditive implements renderer.Surface. The frame is copied, blurred,
// scaled by the filter gain and added back with saturation.
func (s *Surface) CompositeAdditive(f renderer.Filter) {
	pix := s.im.Pix
	if len(pix) == 0 {
		return
	}
	for i, v := range pix {
		s.src[i] = float32(v)
	}

	w, h := s.Size()
	if f.Blur > 0 {
		gaussianBlur(s.src, s.tmp, w, h, f.Blur)
	}

	gain := float32(f.Gain())
	for i := 0; i < len(pix); i += 4 {
		pix[i] = addSat(pix[i], s.src[i]*gain)
		pix[i+1] = addSat(pix[i+1], s.src[i+1]*gain)
		pix[i+2] = addSat(pix[i+2], s.src[i+2]*gain)
		pix[i+3] = addSat(pix[i+3], s.src[i+3])
	}
}

func addSat(dst uint8, v float32) uint8 {
	sum := float32(dst) + v
	if sum >= 255 {
		return 255
	}
	if sum <= 0 {
		return 0
	}
	return uint8(sum + 0.5)
}

// FillText implements renderer.Surface using the Go Mono face.
func (s *Surface) FillText(text string, x, y, size float64, c color.RGBA) {
	face, err := s.face(size)
	if err != nil {
		return
	}
	s.dc.SetFontFace(face)
	s.dc.SetColor(c)
	s.dc.DrawString(text, x, y)
}

var (
	monoOnce sync.Once
	monoFont *truetype.Font
	monoErr  error
)

func (s *Surface) face(size float64) (font.Face, error) {
	if f, ok := s.faces[size]; ok {
		return f, nil
	}
	monoOnce.Do(func() {
		monoFont, monoErr = truetype.Parse(gomono.TTF)
	})
	if monoErr != nil {
		return nil, fmt.Errorf("parsing font: %w", monoErr)
	}
	f := truetype.NewFace(monoFont, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	s.faces[size] = f
	return f, nil
}

// Image returns the frame. The image is reallocated by Resize.
func (s *Surface) Image() *image.RGBA {
	return s.im
}

// SavePNG writes the current frame to path.
func (s *Surface) SavePNG(path string) error {
	if err := s.dc.SavePNG(path); err != nil {
		return fmt.Errorf("saving frame: %w", err)
	}
	return nil
}
