package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/coder/websocket"

	"github.com/example/phpkart/internal/hub"
	"github.com/example/phpkart/internal/lobby"
	"github.com/example/phpkart/pkg/types"
)

// Handler subscribes the connection to a single lobby's event channel and
// streams broadcasts to it. Clients are listeners only; mutations go
// through the HTTP API.
func Handler(h *hub.Hub, store *lobby.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lobbyKey := r.URL.Query().Get("lobby")
		if lobbyKey == "" {
			http.Error(w, "missing lobby", http.StatusBadRequest)
			return
		}
		if _, ok := store.Get(lobbyKey); !ok {
			http.Error(w, "lobby not found", http.StatusNotFound)
			return
		}

		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{})
		if err != nil {
			return
		}
		defer conn.Close(websocket.StatusNormalClosure, "bye")

		channel := lobby.ChannelFor(lobbyKey)
		out := make(chan types.Event, 8)
		clientID, err := lobby.GenerateKey(6)
		if err != nil {
			conn.Close(websocket.StatusInternalError, "id generation failed")
			return
		}

		h.Inbox() <- hub.Subscribe{Channel: channel, ClientID: clientID, Outbox: out}
		defer func() { h.Inbox() <- hub.Unsubscribe{Channel: channel, ClientID: clientID} }()

		// Writer goroutine
		writeCtx, writeCancel := context.WithCancel(r.Context())
		defer writeCancel()
		go func() {
			for ev := range out {
				payload, _ := json.Marshal(ev)
				ctx, cancel := context.WithTimeout(writeCtx, 3*time.Second)
				_ = conn.Write(ctx, websocket.MessageText, payload)
				cancel()
			}
		}()

		// Reader loop: we expect no inbound messages, but reading keeps
		// the connection's liveness and close handling working.
		for {
			if _, _, err := conn.Read(r.Context()); err != nil {
				switch websocket.CloseStatus(err) {
				case websocket.StatusNormalClosure, websocket.StatusGoingAway:
					return
				}
				return
			}
		}
	}
}
