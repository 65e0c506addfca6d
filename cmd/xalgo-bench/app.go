package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/urfave/cli"
	"go.uber.org/automaxprocs/maxprocs"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/benz9527/xalgo/bench"
	"github.com/benz9527/xalgo/lib/xlog"
	"github.com/benz9527/xalgo/observability"
)

const releaseTimeout = 5 * time.Second

func newLogger(cfg *config) xlog.XLogger {
	return xlog.NewXLogger(
		xlog.WithXLoggerWriter(xlog.StdErr),
		xlog.WithXLoggerEncoder(xlog.PlainText),
		xlog.WithXLoggerLevel(cfg.logLevel),
	)
}

func newRunner(lc fx.Lifecycle, cfg *config, logger xlog.XLogger) (*bench.Runner, error) {
	opts := []bench.RunnerOpt{
		bench.WithRunnerPoolSize(cfg.workers),
		bench.WithRunnerLogger(logger.Named("bench")),
	}
	if cfg.trace {
		opts = append(opts, bench.WithRunnerTraceSteps())
	}
	runner, err := bench.NewRunner(opts...)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return runner.Release(releaseTimeout)
		},
	})
	return runner, nil
}

func registerMaxProcs(lc fx.Lifecycle, logger xlog.XLogger) error {
	undo, err := maxprocs.Set(maxprocs.Logger(func(format string, args ...any) {
		logger.Logf(zapcore.DebugLevel, format, args...)
	}))
	if err != nil {
		return err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			undo()
			return nil
		},
	})
	return nil
}

func registerMetrics(lc fx.Lifecycle, cfg *config, logger xlog.XLogger) error {
	shutdown, err := observability.InitMetricsExporter(cfg.exporter,
		observability.WithConsoleInterval(cfg.interval, 0),
		observability.WithConsoleWriter(os.Stdout),
	)
	if err != nil {
		return err
	}
	if err = observability.InitAppStats("bench"); err != nil {
		return err
	}

	var srv *http.Server
	if cfg.exporter == observability.PrometheusExporter {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		srv = &http.Server{
			Addr:              cfg.listen,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
	}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if srv == nil {
				return nil
			}
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}
			logger.Info("serving metrics", zap.String("addr", ln.Addr().String()))
			go func() {
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Error(err, "metrics server stopped")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			var err error
			if srv != nil {
				err = srv.Shutdown(ctx)
			}
			return multierr.Append(err, shutdown(ctx))
		},
	})
	return nil
}

func newApp(cfg *config, populate ...any) *fx.App {
	return fx.New(
		fx.Supply(cfg),
		fx.Provide(newLogger, newRunner),
		fx.WithLogger(func(logger xlog.XLogger) fxevent.Logger {
			return xlog.NewFxXLogger(logger)
		}),
		fx.Invoke(registerMaxProcs, registerMetrics),
		fx.Populate(populate...),
	)
}

func runBench(c *cli.Context) error {
	cfg, err := parseConfig(c)
	if err != nil {
		return err
	}

	var (
		runner *bench.Runner
		logger xlog.XLogger
	)
	app := newApp(cfg, &runner, &logger)
	if err = app.Err(); err != nil {
		return err
	}

	startCtx, cancel := context.WithTimeout(context.Background(), app.StartTimeout())
	defer cancel()
	if err = app.Start(startCtx); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	results, runErr := runner.Run(ctx, cfg.workloads())
	if err = printJSON(c.App.Writer, results); err != nil {
		runErr = multierr.Append(runErr, err)
	}

	if runErr == nil && cfg.exporter == observability.PrometheusExporter {
		logger.Info("workloads finished, waiting for a signal to exit")
		<-app.Done()
	}

	stopCtx, cancelStop := context.WithTimeout(context.Background(), app.StopTimeout())
	defer cancelStop()
	err = multierr.Append(runErr, app.Stop(stopCtx))
	_ = logger.Sync()
	return err
}

func printJSON(w io.Writer, message any) error {
	b, err := json.MarshalIndent(message, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n", b)
	return err
}
