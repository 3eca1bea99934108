// Glow debug tool - renders the glow passes over a test pattern to PNG files
// so the GPU and CPU surfaces can be compared side by side.
//
// Usage: go run ./cmd/glowdebug -out debug
package main

import (
	"flag"
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/vortex/config"
	"github.com/pthm-cable/vortex/display/window"
	"github.com/pthm-cable/vortex/renderer"
	"github.com/pthm-cable/vortex/renderer/raster"
)

func main() {
	configPath := flag.String("config", "", "Path to config file for glow passes (empty = use defaults)")
	outDir := flag.String("out", "glowdebug", "Output directory")
	width := flag.Int("width", 512, "Render width")
	height := flag.Int("height", 512, "Render height")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := os.MkdirAll(*outDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create output directory: %v\n", err)
		os.Exit(1)
	}

	passes := make([]renderer.GlowPass, len(cfg.Glow.Passes))
	for i, p := range cfg.Glow.Passes {
		passes[i] = renderer.GlowPass{Blur: p.Blur, Brightness: p.Brightness}
	}

	// Initialize raylib with hidden window
	rl.SetConfigFlags(rl.FlagWindowHidden)
	rl.InitWindow(int32(*width), int32(*height), "Glow Debug")
	defer rl.CloseWindow()

	gpu := window.NewSurface(*width, *height)
	defer gpu.Unload()
	cpu := raster.New(*width, *height)

	for _, s := range []renderer.Surface{gpu, cpu} {
		r := renderer.NewRenderer(passes, cfg.Glow.Present)
		r.Bind(s)
		r.Clear(cfg.Derived.Background)
		drawPattern(r, *width, *height)
		r.Glow()
	}

	// Read the GPU frame back and flip it (OpenGL convention)
	target := rl.LoadRenderTexture(int32(*width), int32(*height))
	defer rl.UnloadRenderTexture(target)
	rl.BeginTextureMode(target)
	rl.ClearBackground(rl.Black)
	gpu.Present()
	rl.EndTextureMode()

	img := rl.LoadImageFromTexture(target.Texture)
	rl.ImageFlipVertical(img)
	gpuPath := filepath.Join(*outDir, "glow_gpu.png")
	success := rl.ExportImage(*img, gpuPath)
	rl.UnloadImage(img)
	if !success {
		fmt.Fprintf(os.Stderr, "Failed to export image\n")
		os.Exit(1)
	}

	cpuPath := filepath.Join(*outDir, "glow_cpu.png")
	if err := cpu.SavePNG(cpuPath); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to save image: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Glow rendered to: %s and %s (%dx%d, %d passes)\n", gpuPath, cpuPath, *width, *height, len(passes))
}

// drawPattern strokes a fan of segments across the hue range at rising alpha and width.
func drawPattern(r *renderer.Renderer, w, h int) {
	const n = 12
	cx, cy := float64(w)/2, float64(h)/2
	for i := 0; i < n; i++ {
		t := float64(i) / float64(n-1)
		y := cy + (t-0.5)*float64(h)*0.8
		r.DrawSegment(float64(w)*0.15, y, cx, cy, 0.2+0.8*t, 1+2*t, 220+100*t)
	}
	r.DrawSegment(cx, cy, float64(w)*0.85, cy, 1, 3, 0)
	// A single bright dot shows the blur kernel directly
	r.Surface().StrokeLine(float64(w)*0.85, float64(h)*0.2, float64(w)*0.85, float64(h)*0.2, 2, color.RGBA{R: 255, G: 255, B: 255, A: 255})
}
