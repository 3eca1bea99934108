package raster

import (
	"image/color"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/pthm-cable/vortex/renderer"
)

var black = color.RGBA{A: 255}

func TestClearAndResize(t *testing.T) {
	s := New(8, 6)
	if w, h := s.Size(); w != 8 || h != 6 {
		t.Fatalf("Size = %dx%d, want 8x6", w, h)
	}

	s.Clear(color.RGBA{R: 10, G: 20, B: 30, A: 255})
	if got := s.Image().RGBAAt(3, 3); got != (color.RGBA{R: 10, G: 20, B: 30, A: 255}) {
		t.Errorf("pixel after Clear = %v", got)
	}

	s.Resize(4, 3)
	if w, h := s.Size(); w != 4 || h != 3 {
		t.Fatalf("Size after Resize = %dx%d, want 4x3", w, h)
	}
	if len(s.Image().Pix) != 4*3*4 {
		t.Errorf("pixel buffer length %d", len(s.Image().Pix))
	}
}

func TestStrokeLine(t *testing.T) {
	s := New(40, 40)
	s.Clear(black)
	s.StrokeLine(5, 20, 35, 20, 3, color.RGBA{R: 255, A: 255})

	if got := s.Image().RGBAAt(20, 20); got.R < 200 {
		t.Errorf("pixel on the line = %v, want red", got)
	}
	if got := s.Image().RGBAAt(20, 5); got.R != 0 {
		t.Errorf("pixel far from the line = %v, want black", got)
	}
	// Round caps extend past the end point
	if got := s.Image().RGBAAt(36, 20); got.R == 0 {
		t.Errorf("expected round cap past the end point, got %v", got)
	}
}

func TestStrokeLineTransparentIsNoop(t *testing.T) {
	s := New(10, 10)
	s.Clear(black)
	s.StrokeLine(0, 5, 10, 5, 4, color.RGBA{R: 255})
	for i, v := range s.Image().Pix {
		if i%4 != 3 && v != 0 {
			t.Fatalf("transparent stroke changed pixel data at %d", i)
		}
	}
}

func TestCompositeAdditiveUnfiltered(t *testing.T) {
	s := New(2, 1)
	s.Clear(color.RGBA{R: 50, G: 100, B: 200, A: 255})
	s.CompositeAdditive(renderer.Filter{})

	got := s.Image().RGBAAt(0, 0)
	want := color.RGBA{R: 100, G: 200, B: 255, A: 255}
	if got != want {
		t.Errorf("additive self-composite = %v, want %v", got, want)
	}
}

func TestCompositeAdditiveGlowSpreads(t *testing.T) {
	const size = 41
	s := New(size, size)
	s.Clear(black)
	s.Image().SetRGBA(20, 20, color.RGBA{R: 255, G: 255, B: 255, A: 255})

	s.CompositeAdditive(renderer.Filter{Blur: 3, Brightness: 2})

	img := s.Image()
	if img.RGBAAt(20, 20).R != 255 {
		t.Errorf("centre should stay saturated, got %v", img.RGBAAt(20, 20))
	}
	near := img.RGBAAt(23, 20)
	if near.R == 0 {
		t.Error("glow should reach neighbouring pixels")
	}
	if far := img.RGBAAt(0, 0); far.R != 0 {
		t.Errorf("glow leaked to the corner: %v", far)
	}
	// Symmetric kernel
	if l, r := int(img.RGBAAt(17, 20).R), int(img.RGBAAt(23, 20).R); l-r > 1 || r-l > 1 {
		t.Errorf("asymmetric glow: left %d right %d", l, r)
	}
}

func TestGaussianBlurPreservesMass(t *testing.T) {
	const w, h = 31, 31
	buf := make([]float32, w*h*4)
	tmp := make([]float32, len(buf))
	buf[(15*w+15)*4] = 1000

	gaussianBlur(buf, tmp, w, h, 2)

	var sum float64
	for i := 0; i < len(buf); i += 4 {
		sum += float64(buf[i])
	}
	if math.Abs(sum-1000) > 1 {
		t.Errorf("blurred mass = %v, want 1000", sum)
	}
}

func TestBoxSizes(t *testing.T) {
	for _, sigma := range []float64{1, 2.5, 4, 8} {
		sizes := boxSizes(sigma, 3)
		var variance float64
		for _, s := range sizes {
			if s%2 == 0 {
				t.Fatalf("sigma %v: even box size %d", sigma, s)
			}
			variance += float64(s*s-1) / 12
		}
		if got := math.Sqrt(variance); math.Abs(got-sigma) > 0.6 {
			t.Errorf("sigma %v: boxes %v give sigma %v", sigma, sizes, got)
		}
	}
}

func TestFillText(t *testing.T) {
	s := New(120, 40)
	s.Clear(black)
	s.FillText("Vortex", 5, 30, 20, color.RGBA{R: 255, G: 255, B: 255, A: 255})

	lit := 0
	for i := 0; i < len(s.Image().Pix); i += 4 {
		if s.Image().Pix[i] > 0 {
			lit++
		}
	}
	if lit == 0 {
		t.Error("expected text to light some pixels")
	}
}

func TestSavePNG(t *testing.T) {
	s := New(16, 16)
	s.Clear(black)
	path := filepath.Join(t.TempDir(), "frame.png")
	if err := s.SavePNG(path); err != nil {
		t.Fatalf("SavePNG: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil || info.Size() == 0 {
		t.Errorf("expected a non-empty PNG, stat err=%v", err)
	}
}
