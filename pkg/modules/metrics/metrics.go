// Package metrics exports reconciliation counters to Prometheus.
//
// A Collector owns the registered metrics and is shared by every Patcher in
// the process. Each Patcher gets its own Module from Collector.Module, since
// a module tracks the start time of the patch in progress.
//
// Metrics collected:
//   - vdom_patches_total: Counter of Patch calls
//   - vdom_patch_duration_seconds: Histogram of Patch duration
//   - vdom_nodes_created_total: Counter of materialized elements
//   - vdom_nodes_updated_total: Counter of matched nodes patched in place
//   - vdom_nodes_destroyed_total: Counter of destroyed elements
//   - vdom_nodes_removed_total: Counter of removed subtree roots
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vango-dev/vdomkit/pkg/vdom"
)

// Config configures the collector.
type Config struct {
	// Namespace is the metrics namespace (default: "vdom").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for patch duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// Option configures the collector.
type Option func(*Config)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) Option {
	return func(c *Config) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) Option {
	return func(c *Config) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) Option {
	return func(c *Config) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) Option {
	return func(c *Config) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) Option {
	return func(c *Config) {
		c.Registry = registry
	}
}

func defaultConfig() Config {
	return Config{
		Namespace: "vdom",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Collector holds the registered metrics.
type Collector struct {
	patches   prometheus.Counter
	duration  prometheus.Histogram
	created   prometheus.Counter
	updated   prometheus.Counter
	destroyed prometheus.Counter
	removed   prometheus.Counter
}

// NewCollector registers the metrics. Registering twice on the same registry
// panics, as with promauto.
func NewCollector(opts ...Option) *Collector {
	config := defaultConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	counter := func(name, help string) prometheus.Counter {
		return factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        name,
			Help:        help,
			ConstLabels: config.ConstLabels,
		})
	}

	return &Collector{
		patches: counter("patches_total", "Total number of Patch calls"),
		duration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "patch_duration_seconds",
			Help:        "Patch duration in seconds, hooks included",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}),
		created:   counter("nodes_created_total", "Total number of elements materialized"),
		updated:   counter("nodes_updated_total", "Total number of matched nodes patched in place"),
		destroyed: counter("nodes_destroyed_total", "Total number of elements destroyed"),
		removed:   counter("nodes_removed_total", "Total number of removed subtree roots"),
	}
}

// Module returns a new module feeding c. Use one module per Patcher.
func (c *Collector) Module() *Module {
	return &Module{c: c, now: time.Now}
}

// Module is the metrics module of a single Patcher.
type Module struct {
	c     *Collector
	now   func() time.Time
	start time.Time
}

// Pre implements vdom.PreModule.
func (m *Module) Pre() {
	m.start = m.now()
}

// Create implements vdom.CreateModule.
func (m *Module) Create(_, _ *vdom.VNode) {
	m.c.created.Inc()
}

// Update implements vdom.UpdateModule.
func (m *Module) Update(_, _ *vdom.VNode) {
	m.c.updated.Inc()
}

// Destroy implements vdom.DestroyModule.
func (m *Module) Destroy(_ *vdom.VNode) {
	m.c.destroyed.Inc()
}

// Remove implements vdom.RemoveModule. It completes immediately.
func (m *Module) Remove(_ *vdom.VNode, done func()) {
	m.c.removed.Inc()
	done()
}

// Post implements vdom.PostModule.
func (m *Module) Post() {
	m.c.patches.Inc()
	m.c.duration.Observe(m.now().Sub(m.start).Seconds())
}
