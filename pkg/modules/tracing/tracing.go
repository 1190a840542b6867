// Package tracing records one OpenTelemetry span per Patch call.
//
// The span starts in the pre phase and ends in the post phase, carrying the
// number of elements created, updated, destroyed and removed as attributes.
// The tracer comes from the global provider unless WithTracerProvider is
// given:
//
//	tp := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exporter))
//	otel.SetTracerProvider(tp)
//	p := vdom.New([]vdom.Module{tracing.New()}, doc)
package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/vdomkit/pkg/vdom"
)

// Default tracer name.
const defaultTracerName = "vdomkit"

// SpanName is the name of the span recorded for each Patch call.
const SpanName = "vdom.patch"

// Config configures the tracing module.
type Config struct {
	// TracerName is the name of the tracer (default: "vdomkit").
	TracerName string

	// Provider supplies the tracer. Default: otel.GetTracerProvider().
	Provider trace.TracerProvider

	// Attributes are added to every span.
	Attributes []attribute.KeyValue
}

// Option configures the tracing module.
type Option func(*Config)

// WithTracerName sets the tracer name.
func WithTracerName(name string) Option {
	return func(c *Config) {
		c.TracerName = name
	}
}

// WithTracerProvider sets the tracer provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *Config) {
		c.Provider = tp
	}
}

// WithAttributes adds constant attributes to every span.
func WithAttributes(attrs ...attribute.KeyValue) Option {
	return func(c *Config) {
		c.Attributes = append(c.Attributes, attrs...)
	}
}

// Module is the tracing module of a single Patcher. It is not safe for
// concurrent Patch calls, like the Patcher itself.
type Module struct {
	tracer trace.Tracer
	attrs  []attribute.KeyValue

	parent context.Context
	span   trace.Span

	created, updated, destroyed, removed int
}

// New creates a tracing module.
func New(opts ...Option) *Module {
	config := Config{TracerName: defaultTracerName}
	for _, opt := range opts {
		opt(&config)
	}
	if config.Provider == nil {
		config.Provider = otel.GetTracerProvider()
	}
	return &Module{
		tracer: config.Provider.Tracer(config.TracerName),
		attrs:  config.Attributes,
		parent: context.Background(),
	}
}

// SetContext sets the parent context of the spans started by later Patch
// calls, typically the context of the request that triggered the patch.
func (m *Module) SetContext(ctx context.Context) {
	if ctx == nil {
		ctx = context.Background()
	}
	m.parent = ctx
}

// Pre implements vdom.PreModule.
func (m *Module) Pre() {
	m.created, m.updated, m.destroyed, m.removed = 0, 0, 0, 0
	_, m.span = m.tracer.Start(m.parent, SpanName,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(m.attrs...),
	)
}

// Create implements vdom.CreateModule.
func (m *Module) Create(_, _ *vdom.VNode) { m.created++ }

// Update implements vdom.UpdateModule.
func (m *Module) Update(_, _ *vdom.VNode) { m.updated++ }

// Destroy implements vdom.DestroyModule.
func (m *Module) Destroy(_ *vdom.VNode) { m.destroyed++ }

// Remove implements vdom.RemoveModule. It completes immediately.
func (m *Module) Remove(_ *vdom.VNode, done func()) {
	m.removed++
	done()
}

// Post implements vdom.PostModule.
func (m *Module) Post() {
	if m.span == nil {
		return
	}
	m.span.SetAttributes(
		attribute.Int("vdom.nodes_created", m.created),
		attribute.Int("vdom.nodes_updated", m.updated),
		attribute.Int("vdom.nodes_destroyed", m.destroyed),
		attribute.Int("vdom.nodes_removed", m.removed),
	)
	m.span.SetStatus(codes.Ok, "")
	m.span.End()
	m.span = nil
}
