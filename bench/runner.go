package bench

import (
	"context"
	"runtime"
	"sync"
	"time"

	antsv2 "github.com/panjf2000/ants/v2"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/benz9527/xalgo/lib/xlog"
)

type runnerCfg struct {
	poolSize   int
	logger     xlog.XLogger
	provider   metric.MeterProvider
	traceSteps bool
}

type RunnerOpt func(*runnerCfg)

func WithRunnerPoolSize(size int) RunnerOpt {
	return func(cfg *runnerCfg) {
		if size > 0 {
			cfg.poolSize = size
		}
	}
}

func WithRunnerLogger(logger xlog.XLogger) RunnerOpt {
	return func(cfg *runnerCfg) {
		cfg.logger = logger
	}
}

// WithRunnerMeterProvider routes the tree counters to provider instead of
// the global one.
func WithRunnerMeterProvider(provider metric.MeterProvider) RunnerOpt {
	return func(cfg *runnerCfg) {
		cfg.provider = provider
	}
}

// WithRunnerTraceSteps hands the logger down to the maps, so every
// rebalancing step is logged at debug level.
func WithRunnerTraceSteps() RunnerOpt {
	return func(cfg *runnerCfg) {
		cfg.traceSteps = true
	}
}

// Runner executes workloads on a goroutine pool, one map per workload.
type Runner struct {
	pool *antsv2.Pool
	cfg  *runnerCfg
}

func NewRunner(opts ...RunnerOpt) (*Runner, error) {
	cfg := &runnerCfg{
		poolSize: runtime.GOMAXPROCS(0),
	}
	for _, o := range opts {
		o(cfg)
	}
	pool, err := antsv2.NewPool(
		cfg.poolSize,
		antsv2.WithLogger(xlog.NewAntsXLogger(cfg.logger)),
	)
	if err != nil {
		return nil, err
	}
	return &Runner{pool: pool, cfg: cfg}, nil
}

// Run blocks until every workload finished. Results keep the order of
// workloads; the errors of the failed ones are combined.
func (r *Runner) Run(ctx context.Context, workloads []Workload) ([]Result, error) {
	results := make([]Result, len(workloads))
	errs := make([]error, len(workloads))
	var stepLogger xlog.XLogger
	if r.cfg.traceSteps {
		stepLogger = r.cfg.logger
	}

	wg := sync.WaitGroup{}
	for i, w := range workloads {
		wg.Add(1)
		if err := r.pool.Submit(func() {
			defer wg.Done()
			results[i], errs[i] = runWorkload(ctx, w, stepLogger, r.cfg.provider)
			if r.cfg.logger == nil {
				return
			}
			if errs[i] != nil {
				r.cfg.logger.Error(errs[i], "workload failed", zap.String("strategy", w.Strategy))
				return
			}
			r.cfg.logger.Info("workload done",
				zap.String("strategy", w.Strategy),
				zap.Int("ops", results[i].Ops),
				zap.Int("inserts", results[i].Inserts),
				zap.Int("updates", results[i].Updates),
				zap.Int64("len", results[i].Len),
				zap.Int("height", results[i].TreeHeight),
				zap.Duration("elapsed", results[i].Elapsed),
			)
		}); err != nil {
			wg.Done()
			errs[i] = err
		}
	}
	wg.Wait()
	return results, multierr.Combine(errs...)
}

func (r *Runner) Release(timeout time.Duration) error {
	return r.pool.ReleaseTimeout(timeout)
}
