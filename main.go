package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/pthm-cable/vortex/config"
	"github.com/pthm-cable/vortex/display"
	"github.com/pthm-cable/vortex/display/window"
	"github.com/pthm-cable/vortex/engine"
	"github.com/pthm-cable/vortex/telemetry"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml or config.toml (empty = use defaults)")
	mode := flag.String("mode", "window", "Host: window, terminal or headless")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	statsWindow := flag.Int("stats-window", 0, "Stats window size in frames (0 = use config)")
	snapshotDir := flag.String("snapshot-dir", "", "Directory for headless PNG snapshots")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "Noise and spawn seed (0 = use config, then time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N frames (0 = unlimited)")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	if *seed != 0 {
		cfg.Noise.Seed = *seed
	}
	if cfg.Noise.Seed == 0 {
		cfg.Noise.Seed = time.Now().UnixNano()
	}
	if *statsWindow > 0 {
		cfg.Telemetry.StatsWindow = *statsWindow
	}

	output, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		slog.Error("failed to create output directory", "error", err)
		os.Exit(1)
	}
	defer output.Close()
	if err := output.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config", "error", err)
	}

	opts := engine.OptionsFromConfig(cfg)
	opts.LogStats = *logStats
	opts.Output = output

	e, err := engine.New(opts)
	if err != nil {
		slog.Error("failed to create engine", "error", err)
		os.Exit(1)
	}
	defer e.Stop()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch *mode {
	case "headless":
		// Headless mode - CPU raster, no window
		host := display.NewHeadless(cfg.Screen.Width, cfg.Screen.Height)
		snapshotEvery := cfg.Headless.SnapshotEvery
		if *snapshotDir != "" && snapshotEvery <= 0 {
			snapshotEvery = 60
		}
		if err := host.SetSnapshots(*snapshotDir, snapshotEvery); err != nil {
			slog.Error("failed to set up snapshots", "error", err)
			os.Exit(1)
		}

		slog.Info("starting headless run",
			"seed", cfg.Noise.Seed,
			"max_ticks", *maxTicks,
			"snapshot_every", snapshotEvery,
		)

		e.Start(host)
		if *maxTicks <= 0 {
			slog.Warn("headless run without -max-ticks runs until interrupted")
		}
		ran, err := host.Run(ctx, *maxTicks)
		if err != nil && ctx.Err() == nil {
			slog.Error("headless run failed", "error", err)
			os.Exit(1)
		}
		slog.Info("headless run finished", "frames", ran, "tick", e.TickCount())

	case "terminal":
		host, err := display.NewTerminal(cfg.Screen.TargetFPS)
		if err != nil {
			slog.Error("failed to open terminal", "error", err)
			os.Exit(1)
		}
		// The screen owns stdout while running
		slog.SetDefault(slog.New(slog.DiscardHandler))
		e.Start(host)
		err = host.Run(ctx, *maxTicks)
		e.Stop()
		host.Close()
		slog.SetDefault(logger)
		if err != nil && ctx.Err() == nil {
			slog.Error("terminal run failed", "error", err)
			os.Exit(1)
		}

	case "window":
		host := window.Open(cfg.Screen)
		defer host.Close()

		e.Start(host)
		host.Run(e, *maxTicks)

	default:
		slog.Error("unknown mode", "mode", *mode)
		os.Exit(2)
	}
}
