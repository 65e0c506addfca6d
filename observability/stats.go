package observability

import (
	"context"
	"os"
	"runtime"
	"strings"
	"sync"

	"github.com/samber/lo"
	"github.com/shirou/gopsutil/v3/process"
	otelruntime "go.opentelemetry.io/contrib/instrumentation/runtime"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

var (
	once sync.Once
)

type appStats struct {
	goroutines metric.Int64ObservableUpDownCounter
	processes  metric.Int64ObservableUpDownCounter
	rss        metric.Int64ObservableGauge
}

func appStatsName(name string) string {
	builder := &strings.Builder{}
	builder.WriteString("xalgo/app/")
	if len(strings.TrimSpace(name)) > 0 {
		builder.WriteString(name)
	} else {
		builder.WriteString("default")
	}
	return builder.String()
}

func newAppStats(provider metric.MeterProvider, name string) (*appStats, error) {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return nil, err
	}
	meter := provider.Meter(
		appStatsName(name),
		metric.WithInstrumentationVersion(otelruntime.Version()),
	)
	return &appStats{
		goroutines: lo.Must[metric.Int64ObservableUpDownCounter](meter.Int64ObservableUpDownCounter(
			"app.core.goroutines",
			metric.WithDescription(`The application goroutines' info.`),
			metric.WithInt64Callback(func(ctx context.Context, ob metric.Int64Observer) error {
				ob.Observe(int64(runtime.NumGoroutine()))
				return nil
			}),
		)),
		processes: lo.Must[metric.Int64ObservableUpDownCounter](meter.Int64ObservableUpDownCounter(
			"app.core.processes",
			metric.WithDescription(`The application processes' info.`),
			metric.WithInt64Callback(func(ctx context.Context, ob metric.Int64Observer) error {
				ob.Observe(int64(runtime.GOMAXPROCS(0)))
				return nil
			}),
		)),
		rss: lo.Must[metric.Int64ObservableGauge](meter.Int64ObservableGauge(
			"app.process.memory.rss",
			metric.WithDescription(`The resident set size of the process.`),
			metric.WithUnit("By"),
			metric.WithInt64Callback(func(ctx context.Context, ob metric.Int64Observer) error {
				mem, err := proc.MemoryInfoWithContext(ctx)
				if err != nil {
					return err
				}
				ob.Observe(int64(mem.RSS))
				return nil
			}),
		)),
	}, nil
}

// InitAppStats registers the process level instruments and the go runtime
// instrumentation on the global meter provider. Only the first call counts.
func InitAppStats(name string) (err error) {
	once.Do(func() {
		if _, err = newAppStats(otel.GetMeterProvider(), name); err != nil {
			return
		}
		err = otelruntime.Start()
	})
	return err
}
