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
	TreeStatsName = "xtree"
)

type treeStats struct {
	nodeCount     metric.Int64UpDownCounter
	rotationCount metric.Int64Counter
	recolorCount  metric.Int64Counter
}

func (stats *treeStats) RecordNodeCount(delta int64) {
	if stats == nil {
		return
	}
	stats.nodeCount.Add(context.Background(), delta)
}

func (stats *treeStats) IncreaseRotationCount(kind RotationKind) {
	if stats == nil {
		return
	}
	as := attribute.NewSet(
		attribute.String("tree.rotation", string(kind)),
	)
	stats.rotationCount.Add(context.Background(), 1, metric.WithAttributeSet(as))
}

func (stats *treeStats) IncreaseRecolorCount() {
	if stats == nil {
		return
	}
	stats.recolorCount.Add(context.Background(), 1)
}

func newTreeStats(mp metric.MeterProvider, kind, name string) *treeStats {
	if mp == nil {
		mp = otel.GetMeterProvider()
	}
	meter := mp.Meter(fmt.Sprintf("%s/%s/%s", TreeStatsName, kind, name))
	return &treeStats{
		nodeCount: lo.Must[metric.Int64UpDownCounter](meter.
			Int64UpDownCounter(
				"tree.node.count",
				metric.WithDescription("The number of nodes in the tree."),
			),
		),
		rotationCount: lo.Must[metric.Int64Counter](meter.
			Int64Counter(
				"tree.rotation.count",
				metric.WithDescription("The number of rotations done to rebalance the tree."),
			),
		),
		recolorCount: lo.Must[metric.Int64Counter](meter.
			Int64Counter(
				"tree.recolor.count",
				metric.WithDescription("The number of node repaints done by the red-black fix-up."),
			),
		),
	}
}
