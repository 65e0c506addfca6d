package main

import (
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero"

func main() {
	app := cli.NewApp()
	app.Name = "xalgo-bench"
	app.Usage = "drive random workloads through the ordered map strategies"
	app.Version = version

	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr

	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "strategies, s",
			Value: "bst,avl,rbtree,splay",
			Usage: " comma separated `LIST` of strategies [bst|avl|rbtree|splay]",
		},
		cli.IntFlag{
			Name:  "ops, n",
			Value: 100000,
			Usage: " operations per workload `COUNT`",
		},
		cli.IntFlag{
			Name:  "keys, k",
			Value: 10000,
			Usage: " keys are drawn from [0, `COUNT`)",
		},
		cli.IntFlag{
			Name:  "rounds, r",
			Value: 1,
			Usage: " workloads per strategy `COUNT`, each with its own seed",
		},
		cli.Float64Flag{
			Name:  "read",
			Value: 0.5,
			Usage: " share of lookups `RATIO`",
		},
		cli.Float64Flag{
			Name:  "delete",
			Value: 0.2,
			Usage: " share of deletes `RATIO`",
		},
		cli.Uint64Flag{
			Name:  "seed",
			Value: 1,
			Usage: " base random `SEED`",
		},
		cli.IntFlag{
			Name:  "workers, w",
			Value: 0,
			Usage: " goroutine pool `SIZE` [GOMAXPROCS]",
		},
		cli.BoolFlag{
			Name:  "validate",
			Usage: " check the tree invariants after each workload",
		},
		cli.BoolFlag{
			Name:  "trace",
			Usage: " log every rebalancing step at debug level",
		},
		cli.StringFlag{
			Name:  "exporter, e",
			Value: "console",
			Usage: " metrics `EXPORTER` [console|prometheus]",
		},
		cli.StringFlag{
			Name:  "listen, l",
			Value: ":9464",
			Usage: " prometheus scrape `ADDRESS`",
		},
		cli.DurationFlag{
			Name:  "interval",
			Value: 10 * time.Second,
			Usage: " console exporter flush `INTERVAL`",
		},
		cli.StringFlag{
			Name:  "log-level",
			Value: "info",
			Usage: " log `LEVEL` [debug|info|warn|error]",
		},
	}
	app.Action = runBench

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(app.ErrWriter, "terminated with error: %s\n", err)
		os.Exit(1)
	}
}
