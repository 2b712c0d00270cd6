package observability

import (
	"context"
	"strings"

	"github.com/samber/lo"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// SizedTree is satisfied by every tree in lib/tree.
type SizedTree interface {
	Len() int64
}

type treeSizeStats struct {
	ctx          context.Context
	registration metric.Registration
	size         metric.Int64ObservableGauge
}

func (stats *treeSizeStats) waitForShutdown() {
	if stats == nil || stats.registration == nil {
		return
	}
	done := stats.ctx.Done()
	if done == nil {
		// Never cancelled, the caller unregisters.
		return
	}
	go func() {
		<-done
		_ = stats.registration.Unregister()
	}()
}

// ObserveTreeSize reports the size of each named tree on every
// collection of mp, the global meter provider if mp is nil.
// The callback is unregistered once ctx is done. A ctx that is
// never done, such as context.Background(), leaves it to the
// caller to unregister the returned registration.
func ObserveTreeSize(ctx context.Context, mp metric.MeterProvider, name string, trees map[string]SizedTree) (metric.Registration, error) {
	if mp == nil {
		mp = otel.GetMeterProvider()
	}
	builder := &strings.Builder{}
	builder.WriteString("xtree/size")
	builder.WriteString("/")
	if len(strings.TrimSpace(name)) > 0 {
		builder.WriteString(name)
	} else {
		builder.WriteString("default")
	}
	meter := mp.Meter(builder.String())

	stats := &treeSizeStats{
		ctx: ctx,
		size: lo.Must[metric.Int64ObservableGauge](meter.Int64ObservableGauge(
			"tree.size",
			metric.WithDescription(`The number of nodes of each observed tree.`),
		)),
	}
	attrs := lo.MapValues(trees, func(_ SizedTree, treeName string) attribute.Set {
		return attribute.NewSet(attribute.String("tree.name", treeName))
	})
	reg, err := meter.RegisterCallback(func(ctx context.Context, ob metric.Observer) error {
		for treeName, tree := range trees {
			ob.ObserveInt64(stats.size, tree.Len(), metric.WithAttributeSet(attrs[treeName]))
		}
		return nil
	}, stats.size)
	if err != nil {
		return nil, err
	}
	stats.registration = reg
	stats.waitForShutdown()
	return reg, nil
}

// ObserveTreeSize binds the tree size gauge to the exporter.
func (e *MetricsExporter) ObserveTreeSize(ctx context.Context, name string, trees map[string]SizedTree) (metric.Registration, error) {
	return ObserveTreeSize(ctx, e.provider, name, trees)
}
