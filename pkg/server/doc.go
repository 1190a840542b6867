// Package server runs live reconciliation sessions over HTTP.
//
// Each session owns an in-memory host document and a Patcher. Clients post
// tree snapshots to a session; the server patches the session's document,
// persists the snapshot and streams the resulting host operations to every
// websocket subscriber of that session.
//
// Routes:
//
//	GET    /healthz
//	GET    /metrics               Prometheus metrics (when enabled)
//	GET    /sessions              live and stored session IDs
//	GET    /sessions/{id}         current HTML of the session
//	DELETE /sessions/{id}         destroy the tree and delete the snapshot
//	POST   /sessions/{id}/patch   apply a snapshot, respond with ops and HTML
//	GET    /sessions/{id}/ws      websocket stream of op batches
//
// With metrics enabled every request is counted by route pattern; with
// tracing enabled every request gets a server span and the patch spans of
// the session's tracing module are recorded under it.
//
// Example:
//
//	cfg := config.New()
//	st, _ := store.Open(cfg.Store)
//	srv := server.New(cfg, st)
//	if err := srv.Run(); err != nil {
//		log.Fatal(err)
//	}
package server
