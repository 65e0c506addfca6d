package main

import (
	"bytes"
	"context"
	"flag"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/urfave/cli"

	"github.com/benz9527/xalgo/bench"
	"github.com/benz9527/xalgo/lib/xlog"
)

func newTestContext(t *testing.T, args ...string) *cli.Context {
	app := cli.NewApp()
	set := flag.NewFlagSet("test", flag.ContinueOnError)
	set.String("strategies", "bst,avl,rbtree,splay", "")
	set.Int("ops", 100, "")
	set.Int("keys", 10, "")
	set.Int("rounds", 1, "")
	set.Float64("read", 0.5, "")
	set.Float64("delete", 0.2, "")
	set.Uint64("seed", 1, "")
	set.Int("workers", 0, "")
	set.Bool("validate", false, "")
	set.Bool("trace", false, "")
	set.String("exporter", "console", "")
	set.String("listen", ":9464", "")
	set.Duration("interval", 0, "")
	set.String("log-level", "info", "")
	require.NoError(t, set.Parse(args))
	return cli.NewContext(app, set, nil)
}

func TestParseConfig(t *testing.T) {
	testcases := []struct {
		name       string
		args       []string
		strategies []string
		err        bool
	}{
		{"defaults", nil, bench.Strategies, false},
		{"trim and dedupe", []string{"-strategies", " AVL, splay,avl,"}, []string{"avl", "splay"}, false},
		{"unknown strategy", []string{"-strategies", "avl,btree"}, nil, true},
		{"empty strategies", []string{"-strategies", " , "}, nil, true},
		{"bad rounds", []string{"-rounds", "0"}, nil, true},
		{"bad log level", []string{"-log-level", "trace"}, nil, true},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(tt *testing.T) {
			cfg, err := parseConfig(newTestContext(tt, tc.args...))
			if tc.err {
				require.ErrorIs(tt, err, errInvalidFlag)
				return
			}
			require.NoError(tt, err)
			require.Equal(tt, tc.strategies, cfg.strategies)
			require.Equal(tt, xlog.LogLevelInfo, cfg.logLevel)
		})
	}
}

func TestConfig_Workloads(t *testing.T) {
	cfg, err := parseConfig(newTestContext(t, "-strategies", "avl,rbtree", "-rounds", "3", "-seed", "7"))
	require.NoError(t, err)
	workloads := cfg.workloads()
	require.Len(t, workloads, 6)
	require.Equal(t, "avl", workloads[0].Strategy)
	require.Equal(t, uint64(9), workloads[2].Seed)
	require.Equal(t, "rbtree", workloads[3].Strategy)
	require.Equal(t, uint64(7), workloads[3].Seed)
}

func TestApp_Run(t *testing.T) {
	cfg, err := parseConfig(newTestContext(t, "-strategies", "avl,splay", "-validate", "-log-level", "error"))
	require.NoError(t, err)

	var runner *bench.Runner
	app := newApp(cfg, &runner)
	require.NoError(t, app.Err())
	require.NoError(t, app.Start(context.Background()))

	results, err := runner.Run(context.Background(), cfg.workloads())
	require.NoError(t, err)
	require.Len(t, results, 2)

	buf := &bytes.Buffer{}
	require.NoError(t, printJSON(buf, results))
	require.Contains(t, buf.String(), `"strategy": "splay"`)
	require.NoError(t, app.Stop(context.Background()))
}
