package server

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vango-dev/vdomkit/internal/config"
	"github.com/vango-dev/vdomkit/internal/errors"
	"github.com/vango-dev/vdomkit/pkg/store"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// wireOp and wireMessage mirror the JSON sent to clients.
type wireOp struct {
	Op     string `json:"op"`
	Node   uint64 `json:"node"`
	Parent uint64 `json:"parent"`
	Value  string `json:"value"`
}

type wireMessage struct {
	ID   string   `json:"id"`
	Type string   `json:"type"`
	Seq  uint64   `json:"seq"`
	Ops  []wireOp `json:"ops"`
	HTML string   `json:"html"`
}

type wireError struct {
	Code     string `json:"code"`
	Category string `json:"category"`
	Message  string `json:"message"`
}

func setupServer(t *testing.T, st store.Store, mutate ...func(*config.Config)) (*Server, *httptest.Server) {
	t.Helper()
	cfg := config.New()
	for _, fn := range mutate {
		fn(cfg)
	}
	if st == nil {
		st = store.NewMemoryStore()
	}
	s := New(cfg, st, WithLogger(discardLogger))
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	t.Cleanup(func() { s.Sessions().Shutdown() })
	return s, ts
}

func do(t *testing.T, method, url, body string) (int, []byte) {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp.StatusCode, data
}

func postPatch(t *testing.T, ts *httptest.Server, id, body string) wireMessage {
	t.Helper()
	status, data := do(t, http.MethodPost, ts.URL+"/sessions/"+id+"/patch", body)
	if status != http.StatusOK {
		t.Fatalf("POST patch status=%d, want 200: %s", status, data)
	}
	var msg wireMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatalf("decode patch response: %v", err)
	}
	return msg
}

func decodeError(t *testing.T, data []byte) wireError {
	t.Helper()
	var e wireError
	if err := json.Unmarshal(data, &e); err != nil {
		t.Fatalf("decode error body %q: %v", data, err)
	}
	return e
}

func wsURL(t *testing.T, baseURL, path string) string {
	t.Helper()
	return "ws" + strings.TrimPrefix(baseURL, "http") + path
}

func dialWS(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		status := 0
		if resp != nil {
			status = resp.StatusCode
		}
		t.Fatalf("dial %s: %v (status %d)", url, err, status)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readWS(t *testing.T, conn *websocket.Conn) wireMessage {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var msg wireMessage
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read websocket message: %v", err)
	}
	return msg
}

func opNames(ops []wireOp) []string {
	names := make([]string, len(ops))
	for i, op := range ops {
		names[i] = op.Op
	}
	return names
}

// failingStore fails every operation with the given code.
type failingStore struct {
	code string
}

func (f failingStore) Save(context.Context, string, []byte) error {
	return errors.New(f.code)
}

func (f failingStore) Load(context.Context, string) ([]byte, error) {
	return nil, errors.New(f.code)
}

func (f failingStore) Delete(context.Context, string) error {
	return errors.New(f.code)
}

func (f failingStore) List(context.Context) ([]string, error) {
	return nil, errors.New(f.code)
}

func (f failingStore) Close() error {
	return nil
}
