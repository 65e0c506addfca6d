package observability

// https://opentelemetry.io/docs/languages/go/exporters/

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/sdk/metric"
)

var ErrUnknownMetricsExporter = errors.New("[observability] unknown metrics exporter")

type MetricsExporterType string

const (
	ConsoleExporter    MetricsExporterType = "console"
	PrometheusExporter MetricsExporterType = "prometheus"
)

type exporterCfg struct {
	interval time.Duration
	timeout  time.Duration
	writer   io.Writer
}

type MetricsExporterOpt func(*exporterCfg)

// WithConsoleInterval sets how often the console exporter flushes.
func WithConsoleInterval(interval, timeout time.Duration) MetricsExporterOpt {
	return func(cfg *exporterCfg) {
		if interval > 0 {
			cfg.interval = interval
		}
		if timeout > 0 {
			cfg.timeout = timeout
		}
	}
}

func WithConsoleWriter(w io.Writer) MetricsExporterOpt {
	return func(cfg *exporterCfg) {
		if w != nil {
			cfg.writer = w
		}
	}
}

// InitMetricsExporter installs a global meter provider backed by the given
// exporter. The returned callback flushes and shuts the provider down.
func InitMetricsExporter(typ MetricsExporterType, opts ...MetricsExporterOpt) (func(ctx context.Context) error, error) {
	cfg := &exporterCfg{
		interval: 10 * time.Second,
		timeout:  5 * time.Second,
		writer:   os.Stdout,
	}
	for _, o := range opts {
		o(cfg)
	}

	switch typ {
	case ConsoleExporter:
		return newConsoleMetricsExporter(cfg.interval, cfg.timeout, stdoutmetric.WithWriter(cfg.writer))
	case PrometheusExporter:
		return newPrometheusMetricsExporter()
	default:
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownMetricsExporter, typ)
}

// Serves for test/dev environment.
func newConsoleMetricsExporter(interval, timeout time.Duration, opts ...stdoutmetric.Option) (func(ctx context.Context) error, error) {
	exporter, err := stdoutmetric.New(opts...)
	if err != nil {
		return nil, err
	}
	mp := metric.NewMeterProvider(metric.WithReader(metric.NewPeriodicReader(
		exporter,
		metric.WithInterval(interval),
		metric.WithTimeout(timeout),
	)))
	otel.SetMeterProvider(mp)
	return mp.Shutdown, nil
}

// Serves for the product environment and fetch stats metrics by HTTP.
// The metrics are registered to the prometheus default registry.
func newPrometheusMetricsExporter() (func(ctx context.Context) error, error) {
	exporter, err := prometheus.New()
	if err != nil {
		return nil, err
	}
	mp := metric.NewMeterProvider(metric.WithReader(exporter))
	otel.SetMeterProvider(mp)
	return mp.Shutdown, nil
}
