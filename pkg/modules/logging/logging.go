// Package logging writes reconciliation events to a structured logger.
//
// Every element creation, destruction and removal is logged at Debug level,
// followed by a one-line summary per Patch call. Nothing is logged when the
// logger's handler has Debug disabled.
package logging

import (
	"context"
	"log/slog"

	"github.com/vango-dev/vdomkit/pkg/vdom"
)

// Module is the logging module of a single Patcher.
type Module struct {
	logger *slog.Logger
	level  slog.Level

	created, updated, removed int
}

// Option configures the module.
type Option func(*Module)

// WithLevel sets the level used for all records. Default: slog.LevelDebug.
func WithLevel(level slog.Level) Option {
	return func(m *Module) {
		m.level = level
	}
}

// New returns a module writing to logger. A nil logger means
// slog.Default() with component=vdom.
func New(logger *slog.Logger, opts ...Option) *Module {
	if logger == nil {
		logger = slog.Default().With("component", "vdom")
	}
	m := &Module{logger: logger, level: slog.LevelDebug}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Module) enabled() bool {
	return m.logger.Enabled(context.Background(), m.level)
}

// Pre implements vdom.PreModule.
func (m *Module) Pre() {
	m.created, m.updated, m.removed = 0, 0, 0
}

// Create implements vdom.CreateModule.
func (m *Module) Create(_, v *vdom.VNode) {
	m.created++
	if m.enabled() {
		m.logger.Log(context.Background(), m.level, "create", "sel", v.Sel, "key", v.Key)
	}
}

// Update implements vdom.UpdateModule.
func (m *Module) Update(_, _ *vdom.VNode) {
	m.updated++
}

// Destroy implements vdom.DestroyModule.
func (m *Module) Destroy(v *vdom.VNode) {
	if m.enabled() {
		m.logger.Log(context.Background(), m.level, "destroy", "sel", v.Sel, "key", v.Key)
	}
}

// Remove implements vdom.RemoveModule. It completes immediately.
func (m *Module) Remove(v *vdom.VNode, done func()) {
	m.removed++
	if m.enabled() {
		m.logger.Log(context.Background(), m.level, "remove", "sel", v.Sel, "key", v.Key)
	}
	done()
}

// Post implements vdom.PostModule.
func (m *Module) Post() {
	m.logger.Log(context.Background(), m.level, "patch complete",
		"created", m.created,
		"updated", m.updated,
		"removed", m.removed,
	)
}
