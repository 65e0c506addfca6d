package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/urfave/cli"

	"github.com/benz9527/xalgo/bench"
	"github.com/benz9527/xalgo/lib/xlog"
	"github.com/benz9527/xalgo/observability"
)

var errInvalidFlag = errors.New("[xalgo-bench] invalid flag")

type config struct {
	strategies  []string
	ops         int
	keySpace    int
	rounds      int
	readRatio   float64
	deleteRatio float64
	seed        uint64
	workers     int
	validate    bool
	trace       bool
	exporter    observability.MetricsExporterType
	listen      string
	interval    time.Duration
	logLevel    xlog.LogLevel
}

func parseConfig(c *cli.Context) (*config, error) {
	cfg := &config{
		ops:         c.Int("ops"),
		keySpace:    c.Int("keys"),
		rounds:      c.Int("rounds"),
		readRatio:   c.Float64("read"),
		deleteRatio: c.Float64("delete"),
		seed:        c.Uint64("seed"),
		workers:     c.Int("workers"),
		validate:    c.Bool("validate"),
		trace:       c.Bool("trace"),
		exporter:    observability.MetricsExporterType(strings.ToLower(c.String("exporter"))),
		listen:      c.String("listen"),
		interval:    c.Duration("interval"),
		logLevel:    xlog.LogLevel(strings.ToUpper(c.String("log-level"))),
	}

	cfg.strategies = lo.Uniq(lo.Compact(lo.Map(strings.Split(c.String("strategies"), ","),
		func(s string, _ int) string {
			return strings.ToLower(strings.TrimSpace(s))
		},
	)))
	if len(cfg.strategies) == 0 {
		return nil, fmt.Errorf("%w: no strategy given", errInvalidFlag)
	}
	if unknown, _ := lo.Difference(cfg.strategies, bench.Strategies); len(unknown) > 0 {
		return nil, fmt.Errorf("%w: unknown strategies %v", errInvalidFlag, unknown)
	}
	if cfg.rounds <= 0 {
		return nil, fmt.Errorf("%w: rounds must be positive", errInvalidFlag)
	}
	if !lo.Contains([]xlog.LogLevel{
		xlog.LogLevelDebug, xlog.LogLevelInfo, xlog.LogLevelWarn, xlog.LogLevelError,
	}, cfg.logLevel) {
		return nil, fmt.Errorf("%w: log level %q", errInvalidFlag, cfg.logLevel)
	}
	return cfg, nil
}

// workloads expands the configuration, strategy major.
func (cfg *config) workloads() []bench.Workload {
	workloads := make([]bench.Workload, 0, len(cfg.strategies)*cfg.rounds)
	for _, s := range cfg.strategies {
		for r := 0; r < cfg.rounds; r++ {
			workloads = append(workloads, bench.Workload{
				Strategy:    s,
				Ops:         cfg.ops,
				KeySpace:    cfg.keySpace,
				ReadRatio:   cfg.readRatio,
				DeleteRatio: cfg.deleteRatio,
				Seed:        cfg.seed + uint64(r),
				Validate:    cfg.validate,
			})
		}
	}
	return workloads
}
