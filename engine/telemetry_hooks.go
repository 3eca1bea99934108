package engine

import "log/slog"

// flushTelemetry writes a stats window once enough frames have run.
func (e *Engine) flushTelemetry() {
	if !e.collector.ShouldFlush(e.tick) {
		return
	}

	stats := e.collector.Flush(e.tick, e.pool)
	perfStats := e.perfCollector.Stats()

	if e.opts.StatsCallback != nil {
		e.opts.StatsCallback(stats)
	}

	if e.opts.LogStats {
		slog.Info("stats", "window", stats)
		perfStats.LogStats()
	}

	if e.opts.Output != nil {
		if err := e.opts.Output.WriteStats(stats); err != nil {
			slog.Error("failed to write stats", "error", err)
		}
		if err := e.opts.Output.WritePerf(perfStats, stats.WindowEndTick); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}
}
