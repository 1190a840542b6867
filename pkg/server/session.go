package server

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/vango-dev/vdomkit/pkg/host"
	"github.com/vango-dev/vdomkit/pkg/hostdom"
	"github.com/vango-dev/vdomkit/pkg/modules/attrs"
	"github.com/vango-dev/vdomkit/pkg/modules/logging"
	"github.com/vango-dev/vdomkit/pkg/modules/metrics"
	"github.com/vango-dev/vdomkit/pkg/modules/tracing"
	"github.com/vango-dev/vdomkit/pkg/vdom"
)

// Message types sent to websocket subscribers.
const (
	// MessageSnapshot is the first message of a stream and carries the
	// current HTML.
	MessageSnapshot = "snapshot"

	// MessagePatch carries the host operations of one patch.
	MessagePatch = "patch"

	// MessageClosed is sent when the session is destroyed.
	MessageClosed = "closed"
)

// subscriberBuffer is the number of messages queued per subscriber before
// it is dropped as too slow.
const subscriberBuffer = 32

// Message is one websocket frame of a session stream.
type Message struct {
	Type string    `json:"type"`
	Seq  uint64    `json:"seq"`
	Ops  []host.Op `json:"ops,omitempty"`
	HTML string    `json:"html,omitempty"`
}

// Subscription is one registered stream of a session.
type Subscription struct {
	ch chan Message
}

// C returns the channel of messages. It is closed when the subscription
// ends.
func (sub *Subscription) C() <-chan Message {
	return sub.ch
}

// sessionDeps holds what the manager hands to every new session.
type sessionDeps struct {
	collector *metrics.Collector // nil disables metrics
	tracing   []tracing.Option   // nil disables tracing
	logger    *slog.Logger
}

// Session is a live reconciliation target: a host document, the Patcher
// driving it and the tree last patched into it.
//
// All host writes happen under the session lock. Patch calls are therefore
// serialized, and anything completing a removal after Patch returned must
// go through Do.
type Session struct {
	// ID is the session identifier, also the snapshot key in the store.
	ID string

	mu         sync.Mutex
	doc        *hostdom.Document
	mount      *hostdom.Node
	rec        *host.Recorder
	patcher    *vdom.Patcher
	tracer     *tracing.Module
	tree       *vdom.VNode
	seq        uint64
	subs       map[*Subscription]struct{}
	closed     bool
	lastActive time.Time

	logger *slog.Logger
}

func newSession(id string, deps sessionDeps) *Session {
	doc := hostdom.NewDocument()
	rec := host.NewRecorder(doc, doc.ID)
	logger := deps.logger.With("session_id", id)

	s := &Session{
		ID:         id,
		doc:        doc,
		mount:      doc.Mount("div"),
		rec:        rec,
		subs:       make(map[*Subscription]struct{}),
		lastActive: time.Now(),
		logger:     logger,
	}

	modules := []vdom.Module{attrs.New(rec)}
	if deps.collector != nil {
		modules = append(modules, deps.collector.Module())
	}
	if deps.tracing != nil {
		s.tracer = tracing.New(deps.tracing...)
		modules = append(modules, s.tracer)
	}
	modules = append(modules, logging.New(logger))
	s.patcher = vdom.New(modules, rec, vdom.WithLogger(logger))
	return s
}

// Apply patches the session's document to v and broadcasts the resulting
// operations. The returned message carries the operations and the HTML
// after the patch.
func (s *Session) Apply(ctx context.Context, v *vdom.VNode) (Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return Message{}, ErrSessionClosed
	}
	if s.tracer != nil {
		s.tracer.SetContext(ctx)
		defer s.tracer.SetContext(context.Background())
	}

	s.rec.Reset()
	if s.tree == nil {
		s.tree = s.patcher.PatchElement(s.mount, v)
	} else {
		s.tree = s.patcher.Patch(s.tree, v)
	}
	s.lastActive = time.Now()

	msg := s.flushLocked()
	msg.HTML = s.doc.Body().InnerHTML()
	return msg, nil
}

// Do runs fn under the session lock and broadcasts any host operation fn
// caused. It is the way to complete a deferred removal.
func (s *Session) Do(fn func()) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSessionClosed
	}
	s.rec.Reset()
	fn()
	if len(s.rec.Ops()) > 0 {
		s.flushLocked()
	}
	return nil
}

// flushLocked takes the recorded operations as the next patch message and
// sends it to every subscriber.
func (s *Session) flushLocked() Message {
	s.seq++
	msg := Message{Type: MessagePatch, Seq: s.seq, Ops: s.rec.Take()}
	s.broadcastLocked(msg)
	return msg
}

func (s *Session) broadcastLocked(msg Message) {
	for sub := range s.subs {
		select {
		case sub.ch <- msg:
		default:
			s.logger.Warn("dropping slow subscriber", "seq", msg.Seq)
			delete(s.subs, sub)
			close(sub.ch)
		}
	}
}

// HTML returns the serialized content of the session's document.
func (s *Session) HTML() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Body().InnerHTML()
}

// Seq returns the sequence number of the last broadcast patch.
func (s *Session) Seq() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seq
}

// LastActive returns when the session was last patched.
func (s *Session) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}

// Subscribe registers a new stream. The returned snapshot message must be
// sent before anything read from the subscriber's channel.
func (s *Session) Subscribe() (*Subscription, Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, Message{}, ErrSessionClosed
	}
	sub := &Subscription{ch: make(chan Message, subscriberBuffer)}
	s.subs[sub] = struct{}{}
	snap := Message{Type: MessageSnapshot, Seq: s.seq, HTML: s.doc.Body().InnerHTML()}
	return sub, snap, nil
}

// Unsubscribe removes sub and closes its channel. It is a no-op for a
// subscriber that was already dropped.
func (s *Session) Unsubscribe(sub *Subscription) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.subs[sub]; ok {
		delete(s.subs, sub)
		close(sub.ch)
	}
}

// Subscribers returns the number of live streams.
func (s *Session) Subscribers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}

// Destroy removes the whole tree, running every destroy and remove hook,
// broadcasts the resulting operations and closes the session.
func (s *Session) Destroy(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSessionClosed
	}
	if s.tree != nil {
		if s.tracer != nil {
			s.tracer.SetContext(ctx)
			defer s.tracer.SetContext(context.Background())
		}
		s.rec.Reset()
		s.tree = s.patcher.Patch(s.tree, vdom.Comment(""))
		s.flushLocked()
	}
	s.closeLocked()
	return nil
}

// Close closes the session and its streams without touching the tree.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		s.closeLocked()
	}
}

func (s *Session) closeLocked() {
	s.closed = true
	s.broadcastLocked(Message{Type: MessageClosed, Seq: s.seq})
	for sub := range s.subs {
		delete(s.subs, sub)
		close(sub.ch)
	}
	s.logger.Debug("session closed")
}

// IsClosed reports whether the session was closed or destroyed.
func (s *Session) IsClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}
