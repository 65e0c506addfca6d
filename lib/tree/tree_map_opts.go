package tree

import (
	"go.opentelemetry.io/otel/metric"

	"github.com/benz9527/xalgo/lib/infra"
	"github.com/benz9527/xalgo/lib/xlog"
)

type treeMapCfg[K infra.OrderedKey, V any] struct {
	cmp           infra.OrderedKeyComparator[K]
	isDesc        bool
	strategy      RebalanceStrategy[Item[K, V]]
	logger        xlog.XLogger
	statsEnabled  bool
	statsName     string
	statsProvider metric.MeterProvider
}

type TreeMapOpt[K infra.OrderedKey, V any] func(*treeMapCfg[K, V])

// WithTreeMapDesc keeps the keys in descending order.
func WithTreeMapDesc[K infra.OrderedKey, V any]() TreeMapOpt[K, V] {
	return func(cfg *treeMapCfg[K, V]) {
		cfg.isDesc = true
	}
}

// WithTreeMapComparator replaces the natural key order. The comparator must
// stay consistent for as long as a key is stored.
func WithTreeMapComparator[K infra.OrderedKey, V any](cmp infra.OrderedKeyComparator[K]) TreeMapOpt[K, V] {
	return func(cfg *treeMapCfg[K, V]) {
		if cmp != nil {
			cfg.cmp = cmp
		}
	}
}

// WithTreeMapStrategy overrides the balancing strategy picked by the
// constructor.
func WithTreeMapStrategy[K infra.OrderedKey, V any](strategy RebalanceStrategy[Item[K, V]]) TreeMapOpt[K, V] {
	return func(cfg *treeMapCfg[K, V]) {
		if strategy != nil {
			cfg.strategy = strategy
		}
	}
}

// WithTreeMapLogger emits debug records of the rebalancing steps.
func WithTreeMapLogger[K infra.OrderedKey, V any](logger xlog.XLogger) TreeMapOpt[K, V] {
	return func(cfg *treeMapCfg[K, V]) {
		cfg.logger = logger
	}
}

// WithTreeMapStats counts rotations and map operations with the global
// otel meter provider, or with provider if one is given.
func WithTreeMapStats[K infra.OrderedKey, V any](name string, provider ...metric.MeterProvider) TreeMapOpt[K, V] {
	return func(cfg *treeMapCfg[K, V]) {
		cfg.statsEnabled = true
		cfg.statsName = name
		if len(provider) > 0 {
			cfg.statsProvider = provider[0]
		}
	}
}
