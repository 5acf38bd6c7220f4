package telemetry

import (
	"context"
	"os"
	"runtime"

	"github.com/shirou/gopsutil/v4/process"
	"go.opentelemetry.io/otel"
)

var meter = otel.Meter("go.perf_stats")
var cpuGauge, _ = meter.Float64Gauge("cpu_usage")
var rssGauge, _ = meter.Int64Gauge("rss_mb")
var memoryGauge, _ = meter.Int64Gauge("allocated_mb")
var goroutineGauge, _ = meter.Int64Gauge("goroutine_count")

type PerfStats struct {
	CPUPercent  float64
	RSSMb       int64
	AllocatedMb int64
	Goroutines  int
}

// CollectPerfStats samples the current process and records the samples as
// gauges on the global meter provider.
func CollectPerfStats(ctx context.Context) (PerfStats, error) {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	stats := PerfStats{
		AllocatedMb: int64(memStats.Alloc / 1_000_000),
		Goroutines:  runtime.NumGoroutine(),
	}

	proc, err := process.NewProcessWithContext(ctx, int32(os.Getpid()))
	if err != nil {
		return stats, err
	}
	cpu, err := proc.CPUPercentWithContext(ctx)
	if err != nil {
		return stats, err
	}
	stats.CPUPercent = cpu
	mem, err := proc.MemoryInfoWithContext(ctx)
	if err != nil {
		return stats, err
	}
	stats.RSSMb = int64(mem.RSS / 1_000_000)

	cpuGauge.Record(ctx, stats.CPUPercent)
	rssGauge.Record(ctx, stats.RSSMb)
	memoryGauge.Record(ctx, stats.AllocatedMb)
	goroutineGauge.Record(ctx, int64(stats.Goroutines))

	return stats, nil
}
