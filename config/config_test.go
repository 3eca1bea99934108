package config

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	if cfg.Vortex.ParticleCount != 700 {
		t.Errorf("particle_count = %d, want 700", cfg.Vortex.ParticleCount)
	}
	if cfg.Vortex.RangeY != 100 {
		t.Errorf("range_y = %v, want 100", cfg.Vortex.RangeY)
	}
	if cfg.Vortex.BaseSpeed != 0 || cfg.Vortex.RangeSpeed != 1.5 {
		t.Errorf("speed range = %v/%v, want 0/1.5", cfg.Vortex.BaseSpeed, cfg.Vortex.RangeSpeed)
	}
	if cfg.Vortex.BaseHue != 220 || cfg.Vortex.RangeHue != 100 {
		t.Errorf("hue range = %v/%v, want 220/100", cfg.Vortex.BaseHue, cfg.Vortex.RangeHue)
	}
	if len(cfg.Glow.Passes) != 2 {
		t.Fatalf("expected 2 glow passes, got %d", len(cfg.Glow.Passes))
	}
	if cfg.Glow.Passes[0].Blur <= cfg.Glow.Passes[1].Blur {
		t.Errorf("expected coarse pass before fine pass, got %v then %v",
			cfg.Glow.Passes[0].Blur, cfg.Glow.Passes[1].Blur)
	}
	want := color.RGBA{A: 255}
	if cfg.Derived.Background != want {
		t.Errorf("background = %v, want %v", cfg.Derived.Background, want)
	}
}

func TestLoadYAMLOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vortex.yaml")
	data := []byte("vortex:\n  particle_count: 12\n  background_color: \"#102030\"\nnoise:\n  kind: perlin\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Vortex.ParticleCount != 12 {
		t.Errorf("particle_count = %d, want 12", cfg.Vortex.ParticleCount)
	}
	if cfg.Noise.Kind != "perlin" {
		t.Errorf("noise kind = %q, want perlin", cfg.Noise.Kind)
	}
	// Untouched fields keep their defaults
	if cfg.Vortex.RangeY != 100 {
		t.Errorf("range_y = %v, want default 100", cfg.Vortex.RangeY)
	}
	want := color.RGBA{R: 0x10, G: 0x20, B: 0x30, A: 255}
	if cfg.Derived.Background != want {
		t.Errorf("background = %v, want %v", cfg.Derived.Background, want)
	}
}

func TestLoadTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vortex.toml")
	data := []byte("[vortex]\nparticle_count = 5\nrange_y = 40.0\n\n[noise]\nkind = \"fbm\"\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Vortex.ParticleCount != 5 || cfg.Vortex.RangeY != 40 {
		t.Errorf("got count=%d range_y=%v, want 5 and 40", cfg.Vortex.ParticleCount, cfg.Vortex.RangeY)
	}
	if cfg.Noise.Kind != "fbm" {
		t.Errorf("noise kind = %q, want fbm", cfg.Noise.Kind)
	}
	if cfg.Screen.Width != 1280 {
		t.Errorf("screen width = %d, want default 1280", cfg.Screen.Width)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative count", func(c *Config) { c.Vortex.ParticleCount = -1 }},
		{"zero width", func(c *Config) { c.Screen.Width = 0 }},
		{"negative range", func(c *Config) { c.Vortex.RangeTTL = -5 }},
		{"negative blur", func(c *Config) { c.Glow.Passes[0].Blur = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestZeroParticlesIsValid(t *testing.T) {
	cfg := Defaults()
	cfg.Vortex.ParticleCount = 0
	if err := cfg.Validate(); err != nil {
		t.Errorf("zero particles should be valid, got %v", err)
	}
}

func TestParseColorRejectsGarbage(t *testing.T) {
	if _, err := ParseColor("not-a-colour"); !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid, got %v", err)
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg := Defaults()
	cfg.Vortex.ParticleCount = 321

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}
	back, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if back.Vortex.ParticleCount != 321 {
		t.Errorf("particle_count = %d, want 321", back.Vortex.ParticleCount)
	}
}

func TestCfgBeforeInitPanics(t *testing.T) {
	saved := global
	global = nil
	defer func() {
		global = saved
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	Cfg()
}
