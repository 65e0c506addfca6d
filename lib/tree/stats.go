package tree

import (
	"context"
	"fmt"

	"github.com/samber/lo"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	TreeStatsName = "xalgo/tree"
)

type treeStats struct {
	attrs            metric.MeasurementOption
	rotationCount    metric.Int64Counter
	restructureCount metric.Int64Counter
	insertCount      metric.Int64Counter
	deleteCount      metric.Int64Counter
	accessCount      metric.Int64Counter
}

func (stats *treeStats) IncreaseRotationCount() {
	if stats == nil {
		return
	}
	stats.rotationCount.Add(context.Background(), 1, stats.attrs)
}

func (stats *treeStats) IncreaseRestructureCount() {
	if stats == nil {
		return
	}
	stats.restructureCount.Add(context.Background(), 1, stats.attrs)
}

func (stats *treeStats) IncreaseInsertCount() {
	if stats == nil {
		return
	}
	stats.insertCount.Add(context.Background(), 1, stats.attrs)
}

func (stats *treeStats) IncreaseDeleteCount() {
	if stats == nil {
		return
	}
	stats.deleteCount.Add(context.Background(), 1, stats.attrs)
}

func (stats *treeStats) IncreaseAccessCount() {
	if stats == nil {
		return
	}
	stats.accessCount.Add(context.Background(), 1, stats.attrs)
}

func newTreeStats(provider metric.MeterProvider, name, strategy string) *treeStats {
	if provider == nil {
		provider = otel.GetMeterProvider()
	}
	meter := provider.Meter(fmt.Sprintf("%s/%s", TreeStatsName, name))
	return &treeStats{
		attrs: metric.WithAttributeSet(attribute.NewSet(
			attribute.String("tree.strategy", strategy),
		)),
		rotationCount: lo.Must[metric.Int64Counter](meter.Int64Counter(
			"tree.rotation.count",
			metric.WithDescription("The number of single rotations applied to the tree."),
		)),
		restructureCount: lo.Must[metric.Int64Counter](meter.Int64Counter(
			"tree.restructure.count",
			metric.WithDescription("The number of trinode restructurings applied to the tree."),
		)),
		insertCount: lo.Must[metric.Int64Counter](meter.Int64Counter(
			"tree.insert.count",
			metric.WithDescription("The number of new keys inserted into the map."),
		)),
		deleteCount: lo.Must[metric.Int64Counter](meter.Int64Counter(
			"tree.delete.count",
			metric.WithDescription("The number of keys removed from the map."),
		)),
		accessCount: lo.Must[metric.Int64Counter](meter.Int64Counter(
			"tree.access.count",
			metric.WithDescription("The number of located-but-unchanged accesses."),
		)),
	}
}
