package tree

import (
	"strings"

	"go.opentelemetry.io/otel/metric"

	"github.com/benz9527/xtree/lib/xlog"
)

const (
	kindBST    = "bst"
	kindAVL    = "avl"
	kindRBTree = "rbtree"
)

type treeConfig struct {
	logger         xlog.XLogger
	meterProvider  metric.MeterProvider
	statsName      string
	isDesc         bool
	isStatsEnabled bool
}

type TreeOption func(*treeConfig)

// WithTreeDesc sorts the values from the largest to the smallest.
func WithTreeDesc() TreeOption {
	return func(cfg *treeConfig) {
		cfg.isDesc = true
	}
}

func WithTreeLogger(logger xlog.XLogger) TreeOption {
	return func(cfg *treeConfig) {
		cfg.logger = logger
	}
}

// WithTreeStats enables the OpenTelemetry instruments.
// The meter is resolved from the global meter provider
// unless WithTreeMeterProvider is given.
func WithTreeStats(name string) TreeOption {
	return func(cfg *treeConfig) {
		cfg.isStatsEnabled = true
		if name = strings.TrimSpace(name); len(name) == 0 {
			name = "default"
		}
		cfg.statsName = name
	}
}

// WithTreeMeterProvider binds the stats to mp instead of the
// global meter provider. It takes effect with WithTreeStats only.
func WithTreeMeterProvider(mp metric.MeterProvider) TreeOption {
	return func(cfg *treeConfig) {
		cfg.meterProvider = mp
	}
}

func newTreeConfig(opts ...TreeOption) *treeConfig {
	cfg := &treeConfig{}
	for _, o := range opts {
		if o != nil {
			o(cfg)
		}
	}
	return cfg
}
