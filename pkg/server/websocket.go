package server

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vango-dev/vdomkit/internal/errors"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong from the peer.
	pongWait = 60 * time.Second

	// Ping period; must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Streams are server to client; clients only send control frames.
	maxMessageSize = 512
)

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	id, ok := s.sessionID(w, r)
	if !ok {
		return
	}
	sess, err := s.sessions.Open(r.Context(), id, false)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed",
			"session_id", id,
			"error", errors.New(errors.CodeWebSocketUpgrade).Wrap(err))
		return
	}

	sub, snap, err := sess.Subscribe()
	if err != nil {
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "session closed"))
		conn.Close()
		return
	}
	s.logger.Debug("stream opened", "session_id", id)

	go s.readLoop(conn, sess, sub)
	s.writeLoop(conn, sub, snap)
}

// readLoop discards client messages and ends the subscription when the
// connection goes away.
func (s *Server) readLoop(conn *websocket.Conn, sess *Session, sub *Subscription) {
	defer sess.Unsubscribe(sub)

	conn.SetReadLimit(maxMessageSize)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				s.logger.Error("read error", "session_id", sess.ID, "error", err)
			}
			return
		}
	}
}

// writeLoop sends first, then every message of sub, pinging the peer while
// idle. It closes the connection when the subscription ends.
func (s *Server) writeLoop(conn *websocket.Conn, sub *Subscription, first Message) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	if err := writeMessage(conn, first); err != nil {
		return
	}
	for {
		select {
		case msg, ok := <-sub.C():
			if !ok {
				conn.SetWriteDeadline(time.Now().Add(writeWait))
				conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := writeMessage(conn, msg); err != nil {
				s.logger.Debug("write error", "error", err)
				return
			}

		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func writeMessage(conn *websocket.Conn, msg Message) error {
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(msg)
}
