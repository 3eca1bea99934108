package window

import (
	_ "embed"
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/vortex/renderer"
)

//go:embed shaders/glow.fs
var glowShader string

// Surface draws into a render texture on the GPU. Glow passes run the
// frame through a two-pass Gaussian shader into a scratch texture and
// add the result back with additive blending.
type Surface struct {
	frame   rl.RenderTexture2D
	scratch rl.RenderTexture2D
	w, h    int

	shader        rl.Shader
	resolutionLoc int32
	directionLoc  int32
	sigmaLoc      int32
	gainLoc       int32

	// Whether frame is the active render target
	drawing bool
}

// NewSurface allocates the render textures and compiles the glow shader.
// Must be called after the raylib window is created.
func NewSurface(w, h int) *Surface {
	s := &Surface{}
	s.shader = rl.LoadShaderFromMemory("", glowShader)
	s.resolutionLoc = rl.GetShaderLocation(s.shader, "resolution")
	s.directionLoc = rl.GetShaderLocation(s.shader, "direction")
	s.sigmaLoc = rl.GetShaderLocation(s.shader, "sigma")
	s.gainLoc = rl.GetShaderLocation(s.shader, "gain")
	s.Resize(w, h)
	return s
}

// Size implements renderer.Surface.
func (s *Surface) Size() (int, int) {
	return s.w, s.h
}

// Resize implements renderer.Surface. Contents are discarded.
func (s *Surface) Resize(w, h int) {
	if w == s.w && h == s.h {
		return
	}
	s.end()
	if s.w > 0 && s.h > 0 {
		rl.UnloadRenderTexture(s.frame)
		rl.UnloadRenderTexture(s.scratch)
	}
	s.w, s.h = w, h
	if w <= 0 || h <= 0 {
		return
	}
	s.frame = rl.LoadRenderTexture(int32(w), int32(h))
	s.scratch = rl.LoadRenderTexture(int32(w), int32(h))

	resolution := []float32{float32(w), float32(h)}
	rl.SetShaderValue(s.shader, s.resolutionLoc, resolution, rl.ShaderUniformVec2)
}

// begin makes frame the render target.
func (s *Surface) begin() bool {
	if s.w <= 0 || s.h <= 0 {
		return false
	}
	if !s.drawing {
		rl.BeginTextureMode(s.frame)
		s.drawing = true
	}
	return true
}

func (s *Surface) end() {
	if s.drawing {
		rl.EndTextureMode()
		s.drawing = false
	}
}

// Clear implements renderer.Surface.
func (s *Surface) Clear(c color.RGBA) {
	if !s.begin() {
		return
	}
	rl.ClearBackground(rl.NewColor(c.R, c.G, c.B, c.A))
}

// StrokeLine implements renderer.Surface with round caps.
func (s *Surface) StrokeLine(x1, y1, x2, y2, width float64, c color.RGBA) {
	if c.A == 0 || width <= 0 || !s.begin() {
		return
	}
	col := rl.NewColor(c.R, c.G, c.B, c.A)
	a := rl.NewVector2(float32(x1), float32(y1))
	b := rl.NewVector2(float32(x2), float32(y2))
	r := float32(width / 2)
	rl.DrawLineEx(a, b, float32(width), col)
	rl.DrawCircleV(a, r, col)
	rl.DrawCircleV(b, r, col)
}

// CompositeAdditive implements renderer.Surface: horizontal blur into
// scratch, then vertical blur with gain added back onto frame.
func (s *Surface) CompositeAdditive(f renderer.Filter) {
	if s.w <= 0 || s.h <= 0 {
		return
	}
	s.end()

	sigma := []float32{float32(f.Blur)}
	rl.SetShaderValue(s.shader, s.sigmaLoc, sigma, rl.ShaderUniformFloat)

	rl.BeginTextureMode(s.scratch)
	rl.ClearBackground(rl.Blank)
	s.blurPass(s.frame.Texture, []float32{1, 0}, 1)
	rl.EndTextureMode()

	rl.BeginTextureMode(s.frame)
	rl.BeginBlendMode(rl.BlendAdditive)
	s.blurPass(s.scratch.Texture, []float32{0, 1}, float32(f.Gain()))
	rl.EndBlendMode()
	rl.EndTextureMode()
}

func (s *Surface) blurPass(src rl.Texture2D, direction []float32, gain float32) {
	rl.SetShaderValue(s.shader, s.directionLoc, direction, rl.ShaderUniformVec2)
	rl.SetShaderValue(s.shader, s.gainLoc, []float32{gain}, rl.ShaderUniformFloat)
	rl.BeginShaderMode(s.shader)
	s.drawFlipped(src)
	rl.EndShaderMode()
}

// drawFlipped draws a render texture upright (OpenGL textures are stored bottom-up).
func (s *Surface) drawFlipped(tex rl.Texture2D) {
	src := rl.Rectangle{X: 0, Y: 0, Width: float32(s.w), Height: -float32(s.h)}
	rl.DrawTextureRec(tex, src, rl.Vector2{}, rl.White)
}

// FillText implements renderer.Surface. y is the baseline.
func (s *Surface) FillText(text string, x, y, size float64, c color.RGBA) {
	if !s.begin() {
		return
	}
	pos := rl.NewVector2(float32(x), float32(y-size))
	rl.DrawTextEx(rl.GetFontDefault(), text, pos, float32(size), float32(size)/10, rl.NewColor(c.R, c.G, c.B, c.A))
}

// Present draws the finished frame to the current target.
func (s *Surface) Present() {
	s.PresentAt(0, 0)
}

// PresentAt draws the finished frame with its top-left corner at (x, y).
func (s *Surface) PresentAt(x, y float32) {
	s.end()
	if s.w <= 0 || s.h <= 0 {
		return
	}
	src := rl.Rectangle{X: 0, Y: 0, Width: float32(s.w), Height: -float32(s.h)}
	rl.DrawTextureRec(s.frame.Texture, src, rl.NewVector2(x, y), rl.White)
}

// Unload releases GPU resources.
func (s *Surface) Unload() {
	s.end()
	if s.w > 0 && s.h > 0 {
		rl.UnloadRenderTexture(s.frame)
		rl.UnloadRenderTexture(s.scratch)
	}
	rl.UnloadShader(s.shader)
	s.w, s.h = 0, 0
}
