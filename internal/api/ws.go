package api

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/syntra-ai/syntra/internal/inbox"
)

const (
	wsWriteWait  = 10 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingPeriod = wsPongWait * 9 / 10
)

// wsInbound is a client frame. Type is "send" or "new_chat".
type wsInbound struct {
	Type    string `json:"type"`
	Content string `json:"content,omitempty"`
}

// wsSnapshot is the first frame on every connection. The subscription opens
// before the snapshot is taken, so a message event that follows may repeat a
// message already in the snapshot. Clients dedupe by message ID.
type wsSnapshot struct {
	Type     string          `json:"type"`
	Stage    inbox.Stage     `json:"stage"`
	Messages []inbox.Message `json:"messages"`
}

type wsError struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

// handleChatWS streams inbox events to the client and accepts send and
// new_chat frames. All writes happen on the handler goroutine.
func handleChatWS(deps Deps, up websocket.Upgrader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := up.Upgrade(w, r, nil)
		if err != nil {
			deps.Logger.Debug("websocket upgrade failed", "error", err)
			return
		}
		defer conn.Close()

		// Subscribe before the snapshot so no event is lost in between.
		events, cancel := deps.Inbox.Subscribe(64)
		defer cancel()

		replies := make(chan any, 8)
		quit := make(chan struct{})
		readerDone := make(chan struct{})
		defer close(quit)

		go func() {
			defer close(readerDone)
			readFrames(deps, conn, replies, quit)
		}()

		msgs := deps.Inbox.Messages()
		if msgs == nil {
			msgs = []inbox.Message{}
		}
		if !wsWrite(conn, wsSnapshot{Type: "snapshot", Stage: deps.Inbox.Stage(), Messages: msgs}) {
			return
		}

		ping := time.NewTicker(wsPingPeriod)
		defer ping.Stop()

		for {
			select {
			case ev, ok := <-events:
				if !ok {
					conn.WriteControl(websocket.CloseMessage,
						websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
						time.Now().Add(wsWriteWait))
					return
				}
				if !wsWrite(conn, ev) {
					return
				}
			case v := <-replies:
				if !wsWrite(conn, v) {
					return
				}
			case <-ping.C:
				if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(wsWriteWait)); err != nil {
					return
				}
			case <-readerDone:
				return
			}
		}
	}
}

func readFrames(deps Deps, conn *websocket.Conn, replies chan<- any, quit <-chan struct{}) {
	conn.SetReadLimit(maxRequestBodySize)
	conn.SetReadDeadline(time.Now().Add(wsPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})

	for {
		var in wsInbound
		if err := conn.ReadJSON(&in); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				deps.Logger.Debug("websocket read failed", "error", err)
			}
			return
		}
		conn.SetReadDeadline(time.Now().Add(wsPongWait))

		var reply any
		switch in.Type {
		case "send":
			if _, err := deps.Inbox.Send(in.Content); err != nil {
				reply = wsError{Type: "error", Error: err.Error()}
			}
		case "new_chat":
			deps.Inbox.NewChat()
		default:
			reply = wsError{Type: "error", Error: "unknown frame type " + in.Type}
		}
		if reply == nil {
			continue
		}
		select {
		case replies <- reply:
		case <-quit:
			return
		}
	}
}

func wsWrite(conn *websocket.Conn, v any) bool {
	conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
	return conn.WriteJSON(v) == nil
}
