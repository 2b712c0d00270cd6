package observability

// https://opentelemetry.io/docs/languages/go/exporters/

import (
	"context"
	"strings"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"

	"github.com/benz9527/xtree/lib/tree"
)

type exporterConfig struct {
	stdoutOpts  []stdoutmetric.Option
	registerer  promclient.Registerer
	serviceName string
	isGlobal    bool
	isTreeOnly  bool
}

type ExporterOption func(*exporterConfig)

func WithStdoutOptions(opts ...stdoutmetric.Option) ExporterOption {
	return func(cfg *exporterConfig) {
		cfg.stdoutOpts = append(cfg.stdoutOpts, opts...)
	}
}

// WithPrometheusRegisterer replaces the prometheus default registerer.
func WithPrometheusRegisterer(reg promclient.Registerer) ExporterOption {
	return func(cfg *exporterConfig) {
		cfg.registerer = reg
	}
}

// WithServiceName sets the service.name resource attribute.
func WithServiceName(name string) ExporterOption {
	return func(cfg *exporterConfig) {
		cfg.serviceName = strings.TrimSpace(name)
	}
}

// WithGlobalMeterProvider installs the provider as the otel global one,
// trees created with WithTreeStats only are bound to it then.
func WithGlobalMeterProvider() ExporterOption {
	return func(cfg *exporterConfig) {
		cfg.isGlobal = true
	}
}

// WithTreeMetricsOnly drops every instrument outside of the xtree meters.
func WithTreeMetricsOnly() ExporterOption {
	return func(cfg *exporterConfig) {
		cfg.isTreeOnly = true
	}
}

// MetricsExporter owns the meter provider the tree stats are bound to.
type MetricsExporter struct {
	provider *metric.MeterProvider
}

func (e *MetricsExporter) MeterProvider() *metric.MeterProvider {
	return e.provider
}

// TreeStats returns the options enabling the stats of a tree
// against this exporter's meter provider.
func (e *MetricsExporter) TreeStats(name string) []tree.TreeOption {
	return []tree.TreeOption{
		tree.WithTreeStats(name),
		tree.WithTreeMeterProvider(e.provider),
	}
}

func (e *MetricsExporter) Shutdown(ctx context.Context) error {
	return e.provider.Shutdown(ctx)
}

func treeScopeView(inst metric.Instrument) (metric.Stream, bool) {
	if strings.HasPrefix(inst.Scope.Name, tree.TreeStatsName+"/") {
		return metric.Stream{}, false
	}
	return metric.Stream{
		Name:        inst.Name,
		Description: inst.Description,
		Unit:        inst.Unit,
		Aggregation: metric.AggregationDrop{},
	}, true
}

func newMetricsExporter(reader metric.Reader, cfg *exporterConfig) *MetricsExporter {
	mpOpts := []metric.Option{
		metric.WithReader(reader),
	}
	if len(cfg.serviceName) > 0 {
		mpOpts = append(mpOpts, metric.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(cfg.serviceName),
		)))
	}
	if cfg.isTreeOnly {
		mpOpts = append(mpOpts, metric.WithView(treeScopeView))
	}
	mp := metric.NewMeterProvider(mpOpts...)
	if cfg.isGlobal {
		otel.SetMeterProvider(mp)
	}
	return &MetricsExporter{provider: mp}
}

func newExporterConfig(opts ...ExporterOption) *exporterConfig {
	cfg := &exporterConfig{}
	for _, o := range opts {
		if o != nil {
			o(cfg)
		}
	}
	return cfg
}

// NewConsoleMetricsExporter prints the tree stats periodically.
// Serves for test/dev environment.
func NewConsoleMetricsExporter(interval, timeout time.Duration, opts ...ExporterOption) (*MetricsExporter, error) {
	cfg := newExporterConfig(opts...)
	exporter, err := stdoutmetric.New(cfg.stdoutOpts...)
	if err != nil {
		return nil, err
	}
	return newMetricsExporter(metric.NewPeriodicReader(
		exporter,
		metric.WithInterval(interval),
		metric.WithTimeout(timeout),
	), cfg), nil
}

// NewPrometheusMetricsExporter serves the tree stats to prometheus
// scrapes. Serves for the product environment.
func NewPrometheusMetricsExporter(opts ...ExporterOption) (*MetricsExporter, error) {
	cfg := newExporterConfig(opts...)
	promOpts := make([]prometheus.Option, 0, 1)
	if cfg.registerer != nil {
		promOpts = append(promOpts, prometheus.WithRegisterer(cfg.registerer))
	}
	exporter, err := prometheus.New(promOpts...)
	if err != nil {
		return nil, err
	}
	return newMetricsExporter(exporter, cfg), nil
}
