package bench

import (
	"context"
	"errors"
	"fmt"
	randv2 "math/rand/v2"
	"time"

	"go.opentelemetry.io/otel/metric"

	"github.com/benz9527/xalgo/lib/tree"
	"github.com/benz9527/xalgo/lib/xlog"
)

var (
	ErrUnknownStrategy = errors.New("[bench] unknown strategy")
	ErrInvalidWorkload = errors.New("[bench] invalid workload")
)

// Strategies lists the map flavors a workload can drive.
var Strategies = []string{"bst", "avl", "rbtree", "splay"}

// Workload describes a random mix of operations against one map.
// The remaining share after reads and deletes goes to inserts.
type Workload struct {
	Strategy    string  `json:"strategy"`
	Ops         int     `json:"ops"`
	KeySpace    int     `json:"keySpace"`
	ReadRatio   float64 `json:"readRatio"`
	DeleteRatio float64 `json:"deleteRatio"`
	Seed        uint64  `json:"seed"`
	Validate    bool    `json:"validate"`
}

func (w Workload) check() error {
	if w.Ops <= 0 || w.KeySpace <= 0 {
		return fmt.Errorf("%w: ops and key space must be positive", ErrInvalidWorkload)
	}
	if w.ReadRatio < 0 || w.DeleteRatio < 0 || w.ReadRatio+w.DeleteRatio > 1 {
		return fmt.Errorf("%w: read %.2f delete %.2f", ErrInvalidWorkload, w.ReadRatio, w.DeleteRatio)
	}
	return nil
}

type Result struct {
	Strategy   string        `json:"strategy"`
	Ops        int           `json:"ops"`
	Inserts    int           `json:"inserts"`
	Updates    int           `json:"updates"`
	Reads      int           `json:"reads"`
	Hits       int           `json:"hits"`
	Deletes    int           `json:"deletes"`
	Len        int64         `json:"len"`
	TreeHeight int           `json:"treeHeight"`
	Elapsed    time.Duration `json:"elapsed"`
}

func newTreeMap(strategy string, opts ...tree.TreeMapOpt[int, int]) (*tree.TreeMap[int, int], error) {
	switch strategy {
	case "bst":
		return tree.NewTreeMap[int, int](opts...), nil
	case "avl":
		return tree.NewAVLTreeMap[int, int](opts...), nil
	case "rbtree":
		return tree.NewRedBlackTreeMap[int, int](opts...), nil
	case "splay":
		return tree.NewSplayTreeMap[int, int](opts...), nil
	default:
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, strategy)
}

// runWorkload drives a private map, so nothing here is shared between
// goroutines.
func runWorkload(
	ctx context.Context,
	w Workload,
	logger xlog.XLogger,
	provider metric.MeterProvider,
) (res Result, err error) {
	if err = w.check(); err != nil {
		return res, err
	}
	opts := []tree.TreeMapOpt[int, int]{
		tree.WithTreeMapStats[int, int]("bench", provider),
	}
	if logger != nil {
		opts = append(opts, tree.WithTreeMapLogger[int, int](logger))
	}
	m, err := newTreeMap(w.Strategy, opts...)
	if err != nil {
		return res, err
	}

	rnd := randv2.New(randv2.NewPCG(w.Seed, w.Seed^0x9e3779b97f4a7c15))
	res.Strategy = w.Strategy
	start := time.Now()
	for i := 0; i < w.Ops; i++ {
		if i&1023 == 0 {
			if err = ctx.Err(); err != nil {
				return res, err
			}
		}
		key := rnd.IntN(w.KeySpace)
		switch p := rnd.Float64(); {
		case p < w.ReadRatio:
			res.Reads++
			if _, err := m.Get(key); err == nil {
				res.Hits++
			}
		case p < w.ReadRatio+w.DeleteRatio:
			if _, err := m.Delete(key); err == nil {
				res.Deletes++
			}
		default:
			before := m.Len()
			m.Set(key, i)
			if m.Len() > before {
				res.Inserts++
			} else {
				res.Updates++
			}
		}
		res.Ops++
	}
	res.Elapsed = time.Since(start)
	res.Len = m.Len()
	res.TreeHeight = m.TreeHeight()

	if w.Validate {
		if err = tree.ViolationValidate(m); err != nil {
			return res, err
		}
	}
	return res, nil
}
