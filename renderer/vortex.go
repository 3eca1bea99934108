package renderer

import "image/color"

// GlowPass is one blurred, brightened self-composite.
type GlowPass struct {
	Blur       float64
	Brightness float64
}

// DefaultGlow is a broad halo followed by a tight bright core.
var DefaultGlow = []GlowPass{
	{Blur: 8, Brightness: 2},
	{Blur: 4, Brightness: 2},
}

// Renderer paints particle segments and composites the glow.
type Renderer struct {
	surface Surface
	passes  []GlowPass
	present bool
	layers  []Layer

	// Segments drawn since the last Reset, for telemetry
	segments int
}

// NewRenderer creates a renderer for the given glow passes. present adds a final
// unfiltered additive copy after the glow passes.
func NewRenderer(passes []GlowPass, present bool) *Renderer {
	return &Renderer{
		passes:  append([]GlowPass(nil), passes...),
		present: present,
	}
}

// Bind attaches the surface strokes and composites go to. A nil surface disables drawing.
func (r *Renderer) Bind(s Surface) {
	r.surface = s
}

// Surface returns the bound surface.
func (r *Renderer) Surface() Surface {
	return r.surface
}

// AddLayer stacks content above the effect. Layers draw in insertion order.
func (r *Renderer) AddLayer(l Layer) {
	r.layers = append(r.layers, l)
}

// Passes returns the configured glow passes.
func (r *Renderer) Passes() []GlowPass {
	return r.passes
}

// SetPasses replaces the glow passes.
func (r *Renderer) SetPasses(passes []GlowPass) {
	r.passes = append(r.passes[:0], passes...)
}

// Clear fills the frame with the background colour.
func (r *Renderer) Clear(bg color.RGBA) {
	if r.surface == nil {
		return
	}
	r.segments = 0
	r.surface.Clear(bg)
}

// DrawSegment strokes a particle's travel for this frame as a round-capped line
// in hsla(hue, 100%, 60%, alpha) with the particle's radius as width.
func (r *Renderer) DrawSegment(x1, y1, x2, y2, alpha, radius, hue float64) {
	if r.surface == nil {
		return
	}
	r.segments++
	r.surface.StrokeLine(x1, y1, x2, y2, radius, HSLA(hue, strokeSaturation, strokeLightness, alpha))
}

// Glow composites every glow pass, then the optional present pass.
func (r *Renderer) Glow() {
	if r.surface == nil {
		return
	}
	for _, p := range r.passes {
		r.surface.CompositeAdditive(Filter{Blur: p.Blur, Brightness: p.Brightness})
	}
	if r.present {
		r.surface.CompositeAdditive(Filter{})
	}
}

// DrawLayers paints the stacked content above the effect.
func (r *Renderer) DrawLayers() {
	if r.surface == nil {
		return
	}
	for _, l := range r.layers {
		l.Draw(r.surface)
	}
}

// Segments returns the number of strokes drawn since the last Clear.
func (r *Renderer) Segments() int {
	return r.segments
}

// TextLayer draws lines of text centred horizontally on the surface.
type TextLayer struct {
	Lines []string
	Size  float64
	Color color.RGBA
}

// Draw implements Layer.
func (t *TextLayer) Draw(s Surface) {
	if len(t.Lines) == 0 {
		return
	}
	w, h := s.Size()
	size := t.Size
	if size <= 0 {
		size = 32
	}
	lineH := size * 1.4
	top := float64(h)/2 - lineH*float64(len(t.Lines))/2
	for i, line := range t.Lines {
		// Monospace estimate; surfaces draw from the left baseline
		x := float64(w)/2 - float64(len([]rune(line)))*size*0.3
		y := top + lineH*float64(i+1)
		s.FillText(line, x, y, size, t.Color)
	}
}
