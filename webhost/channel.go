package webhost

import (
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/truora/identity-bridge/bridge"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Cross-origin policy is enforced by the cors middleware on the
		// content routes; the channel accepts the session id as proof.
		return true
	},
}

// channelFrame is one postMessage event relayed by the hosted page.
type channelFrame struct {
	Channel string `json:"channel"`
	Body    string `json:"body"`
}

// channelHandler upgrades to a websocket and forwards every frame to the
// session's bound bridge as a RawMessage. Frames are delivered in arrival
// order on this connection's reader goroutine; the bridge decodes and
// invokes callbacks inline, so this goroutine is the "host scheduling
// thread" of the bridge's concurrency model.
func (s *Server) channelHandler(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookupSession(r)
	if !ok {
		http.Error(w, "unknown or expired session", http.StatusNotFound)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.Log.Warn().Err(err).Msg("channel upgrade failed")
		return
	}
	defer conn.Close()

	for {
		var frame channelFrame
		if err := conn.ReadJSON(&frame); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.Log.Debug().Err(err).Str("session", sess.ID).Msg("channel closed")
			}
			return
		}
		sess.forward(bridge.RawMessage{
			ChannelName: frame.Channel,
			Body:        frame.Body,
		})
	}
}
