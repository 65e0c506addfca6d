package bench

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/zap/zapcore"

	"github.com/benz9527/xalgo/lib/xlog"
)

func TestWorkload_Check(t *testing.T) {
	testcases := []struct {
		name string
		w    Workload
		ok   bool
	}{
		{"valid", Workload{Strategy: "avl", Ops: 10, KeySpace: 10, ReadRatio: 0.5, DeleteRatio: 0.2}, true},
		{"no ops", Workload{Strategy: "avl", KeySpace: 10}, false},
		{"no keys", Workload{Strategy: "avl", Ops: 10}, false},
		{"ratio overflow", Workload{Strategy: "avl", Ops: 10, KeySpace: 10, ReadRatio: 0.8, DeleteRatio: 0.3}, false},
		{"negative ratio", Workload{Strategy: "avl", Ops: 10, KeySpace: 10, ReadRatio: -0.1}, false},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(tt *testing.T) {
			err := tc.w.check()
			if tc.ok {
				require.NoError(tt, err)
			} else {
				require.ErrorIs(tt, err, ErrInvalidWorkload)
			}
		})
	}
}

func TestRunWorkload(t *testing.T) {
	for _, strategy := range Strategies {
		t.Run(strategy, func(tt *testing.T) {
			w := Workload{
				Strategy:    strategy,
				Ops:         5000,
				KeySpace:    512,
				ReadRatio:   0.4,
				DeleteRatio: 0.2,
				Seed:        42,
				Validate:    true,
			}
			res, err := runWorkload(context.Background(), w, nil, nil)
			require.NoError(tt, err)
			require.Equal(tt, strategy, res.Strategy)
			require.Equal(tt, 5000, res.Ops)
			require.LessOrEqual(tt, res.Inserts+res.Updates+res.Reads+res.Deletes, res.Ops)
			require.Equal(tt, int64(res.Inserts-res.Deletes), res.Len)
			require.LessOrEqual(tt, res.Hits, res.Reads)
			require.LessOrEqual(tt, res.Len, int64(512))
			require.Positive(tt, res.Len)

			// Same seed, same run.
			again, err := runWorkload(context.Background(), w, nil, nil)
			require.NoError(tt, err)
			require.Equal(tt, res.Len, again.Len)
			require.Equal(tt, res.Hits, again.Hits)
			require.Equal(tt, res.Deletes, again.Deletes)
		})
	}

	_, err := runWorkload(context.Background(), Workload{Strategy: "btree", Ops: 1, KeySpace: 1}, nil, nil)
	require.ErrorIs(t, err, ErrUnknownStrategy)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = runWorkload(ctx, Workload{Strategy: "avl", Ops: 10, KeySpace: 10}, nil, nil)
	require.ErrorIs(t, err, context.Canceled)
}

func TestRunWorkload_InsertsCountNewKeys(t *testing.T) {
	testcases := []struct {
		name     string
		ops      int
		keySpace int
	}{
		{"dense rewrites", 2000, 16},
		{"sparse keys", 300, 1 << 20},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(tt *testing.T) {
			res, err := runWorkload(context.Background(), Workload{
				Strategy: "rbtree",
				Ops:      tc.ops,
				KeySpace: tc.keySpace,
				Seed:     7,
				Validate: true,
			}, nil, nil)
			require.NoError(tt, err)
			require.Equal(tt, int64(res.Inserts), res.Len)
			require.Equal(tt, tc.ops, res.Inserts+res.Updates)
			require.Zero(tt, res.Reads)
			require.Zero(tt, res.Deletes)
		})
	}
}

func TestRunner_Run(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := xlog.NewXLogger(
		xlog.WithXLoggerWriteSyncer(zapcore.Lock(zapcore.AddSync(buf))),
		xlog.WithXLoggerLevel(xlog.LogLevelInfo),
	)
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer func() {
		_ = provider.Shutdown(context.Background())
	}()

	runner, err := NewRunner(
		WithRunnerPoolSize(2),
		WithRunnerLogger(logger),
		WithRunnerMeterProvider(provider),
	)
	require.NoError(t, err)
	defer func() {
		require.NoError(t, runner.Release(time.Second))
	}()

	workloads := lo.Map(Strategies, func(s string, idx int) Workload {
		return Workload{Strategy: s, Ops: 2000, KeySpace: 256, ReadRatio: 0.3, DeleteRatio: 0.3, Seed: uint64(idx), Validate: true}
	})
	results, err := runner.Run(context.Background(), workloads)
	require.NoError(t, err)
	require.Len(t, results, len(Strategies))
	for i, res := range results {
		require.Equal(t, Strategies[i], res.Strategy)
		require.Equal(t, 2000, res.Ops)
	}

	rm := metricdata.ResourceMetrics{}
	require.NoError(t, reader.Collect(context.Background(), &rm))
	inserts := int64(0)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if sum, ok := m.Data.(metricdata.Sum[int64]); ok && m.Name == "tree.insert.count" {
				for _, dp := range sum.DataPoints {
					inserts += dp.Value
				}
			}
		}
	}
	require.Positive(t, inserts)

	require.NoError(t, logger.Sync())
	require.Contains(t, buf.String(), "workload done")

	_, err = runner.Run(context.Background(), []Workload{
		{Strategy: "avl", Ops: 10, KeySpace: 10},
		{Strategy: "skiplist", Ops: 10, KeySpace: 10},
	})
	require.ErrorIs(t, err, ErrUnknownStrategy)
}
