package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"softsell-backend/internal/chat"
	"softsell-backend/internal/types"
)

const (
	wsWriteWait      = 10 * time.Second
	wsMaxMessageSize = 4096
)

// GET /api/chat/ws
// Upgrades to a websocket that streams each turn's events (user, typing,
// reply) as they happen. Frames are handled one at a time per connection.
func (s *Server) handleChatWS(w http.ResponseWriter, r *http.Request) {
	header := http.Header{}
	sid := getSessionID(r)
	if sid == "" {
		sid = newSessionID()
		header.Add("Set-Cookie", sessionCookie(sid, s.cfg.SecureCookie).String())
	}
	header.Set("X-Session-Id", sid)

	conn, err := s.upgrader.Upgrade(w, r, header)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()
	sess := s.store.GetOrCreate(sid)
	conn.SetReadLimit(wsMaxMessageSize)

	send := func(out types.WSOutbound) bool {
		_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
		if err := conn.WriteJSON(out); err != nil {
			s.logger.Debug("websocket write failed", "session_id", sid, "error", err)
			return false
		}
		return true
	}

	if !send(types.WSOutbound{Type: "history", Messages: sess.Transcript.Messages()}) {
		return
	}

	for {
		var in types.WSInbound
		if err := conn.ReadJSON(&in); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Debug("websocket closed", "session_id", sid, "error", err)
			}
			return
		}

		var kind chat.Kind
		switch in.Type {
		case string(chat.KindMessage):
			kind = chat.KindMessage
		case string(chat.KindPredefined):
			kind = chat.KindPredefined
		default:
			if !send(types.WSOutbound{Type: "error", Error: "unknown frame type"}) {
				return
			}
			continue
		}
		if strings.TrimSpace(in.Text) == "" {
			if !send(types.WSOutbound{Type: "error", Error: "text is required"}) {
				return
			}
			continue
		}

		// A failed write does not stop the turn; the transcript still
		// receives the reply and the next read notices the broken socket.
		s.runTurn(r.Context(), sess, kind, in.Text, func(e chat.Event) {
			msg := e.Message
			send(types.WSOutbound{Type: string(e.Type), Message: &msg, Source: e.Source})
		})
	}
}
