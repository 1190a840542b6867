package server

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/vango-dev/vdomkit/internal/errors"
	"github.com/vango-dev/vdomkit/pkg/host"
	"github.com/vango-dev/vdomkit/pkg/snapshot"
	"github.com/vango-dev/vdomkit/pkg/store"
)

// PatchResponse is the body returned by the patch route.
type PatchResponse struct {
	ID   string    `json:"id"`
	Seq  uint64    `json:"seq"`
	Ops  []host.Op `json:"ops"`
	HTML string    `json:"html"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"sessions": s.sessions.Count(),
	})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	ids, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	ids = append(ids, s.sessions.IDs()...)
	slices.Sort(ids)
	ids = slices.Compact(ids)
	if ids == nil {
		ids = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"sessions": ids})
}

func (s *Server) handlePatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := s.sessionID(w, r)
	if !ok {
		return
	}

	body := io.Reader(r.Body)
	if limit := s.config.Server.MaxBodyBytes; limit > 0 {
		body = http.MaxBytesReader(w, r.Body, limit)
	}
	tree, err := snapshot.Read(body)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	sess, err := s.sessions.Open(ctx, id, true)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	msg, err := sess.Apply(ctx, tree)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	data, err := snapshot.Encode(tree)
	if err == nil {
		err = s.store.Save(ctx, id, data)
	}
	if err != nil {
		s.writeError(w, r, NewSessionError(id, "persist", err))
		return
	}

	ops := msg.Ops
	if ops == nil {
		ops = []host.Op{}
	}
	writeJSON(w, http.StatusOK, PatchResponse{ID: id, Seq: msg.Seq, Ops: ops, HTML: msg.HTML})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := s.sessionID(w, r)
	if !ok {
		return
	}
	sess, err := s.sessions.Open(r.Context(), id, false)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	io.WriteString(w, sess.HTML())
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := s.sessionID(w, r)
	if !ok {
		return
	}

	if sess := s.sessions.Remove(id); sess != nil {
		if err := sess.Destroy(ctx); err != nil && !stderrors.Is(err, ErrSessionClosed) {
			s.writeError(w, r, err)
			return
		}
	} else {
		data, err := s.store.Load(ctx, id)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		if data == nil {
			s.writeError(w, r, ErrSessionNotFound)
			return
		}
	}

	if err := s.store.Delete(ctx, id); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.logger.Info("session deleted", "session_id", id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) sessionID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := chi.URLParam(r, "id")
	if !store.ValidID(id) {
		s.writeError(w, r, errors.New(errors.CodeInvalidRequest).
			WithDetail("Invalid session ID "+id))
		return "", false
	}
	return id, true
}

// writeError renders err as a JSON error body with a status derived from
// its code.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var e *errors.Error
	switch {
	case stderrors.Is(err, ErrSessionNotFound):
		e = errors.New(errors.CodeSessionNotFound).Wrap(err)
	case stderrors.Is(err, ErrSessionClosed):
		e = errors.New(errors.CodeSessionNotFound).WithDetail("The session was deleted.")
	default:
		if !stderrors.As(err, &e) {
			e = errors.Newf(errors.CategoryServer, "Internal server error").Wrap(err)
		}
	}

	status := statusFor(e)
	var tooLarge *http.MaxBytesError
	if stderrors.As(err, &tooLarge) {
		status = http.StatusRequestEntityTooLarge
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", middleware.GetReqID(r.Context()),
			"error", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	io.WriteString(w, e.FormatJSON())
}

func statusFor(e *errors.Error) int {
	switch e.Code {
	case errors.CodeInvalidSnapshot, errors.CodeTextAndChildren, errors.CodeTextNodeFields, errors.CodeCommentFields, errors.CodeInvalidRequest:
		return http.StatusBadRequest
	case errors.CodeSessionNotFound:
		return http.StatusNotFound
	case errors.CodeStoreUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
