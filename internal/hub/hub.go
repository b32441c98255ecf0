package hub

import (
	"context"

	"github.com/example/phpkart/pkg/types"
)

type Msg interface{ isHubMsg() }

type Subscribe struct {
	Channel  string
	ClientID string
	Outbox   chan types.Event // where this client wants to receive events
}

type Unsubscribe struct {
	Channel  string
	ClientID string
}

type Broadcast struct {
	Event types.Event
}

type Shutdown struct{}

func (Subscribe) isHubMsg()   {}
func (Unsubscribe) isHubMsg() {}
func (Broadcast) isHubMsg()   {}
func (Shutdown) isHubMsg()    {}

// Hub fans events out to channel subscribers. All state is owned by a
// single goroutine fed through the inbox, so no locks are needed.
type Hub struct {
	inbox  chan Msg
	subs   map[string]map[string]chan types.Event // channel -> clientID -> outbox
	ctx    context.Context
	cancel context.CancelFunc
}

func NewHub(parent context.Context) *Hub {
	ctx, cancel := context.WithCancel(parent)
	h := &Hub{
		inbox:  make(chan Msg, 64),
		subs:   make(map[string]map[string]chan types.Event),
		ctx:    ctx,
		cancel: cancel,
	}
	go h.loop()
	return h
}

func (h *Hub) Inbox() chan<- Msg { return h.inbox }

// Publish implements lobby.Broadcaster. Events published after shutdown
// are discarded; the inbox is no longer drained, so blocking on it would
// leak the publisher.
func (h *Hub) Publish(channel, event string, data any) {
	select {
	case h.inbox <- Broadcast{Event: types.Event{Channel: channel, Event: event, Data: data}}:
	case <-h.ctx.Done():
	}
}

func (h *Hub) loop() {
	for {
		select {
		case <-h.ctx.Done():
			h.shutdown()
			return

		case m := <-h.inbox:
			switch msg := m.(type) {
			case Subscribe:
				clients := h.subs[msg.Channel]
				if clients == nil {
					clients = make(map[string]chan types.Event)
					h.subs[msg.Channel] = clients
				}
				clients[msg.ClientID] = msg.Outbox

			case Unsubscribe:
				if clients := h.subs[msg.Channel]; clients != nil {
					if ch, ok := clients[msg.ClientID]; ok {
						close(ch) // tell the client no more events
						delete(clients, msg.ClientID)
					}
					if len(clients) == 0 {
						delete(h.subs, msg.Channel)
					}
				}

			case Broadcast:
				h.broadcast(msg.Event)

			case Shutdown:
				h.shutdown()
				return
			}
		}
	}
}

func (h *Hub) broadcast(ev types.Event) {
	clients := h.subs[ev.Channel]
	for id, ch := range clients {
		select {
		case ch <- ev:
			// ok
		default:
			// Client is slow/full - drop them.
			close(ch)
			delete(clients, id)
		}
	}
	if len(clients) == 0 {
		delete(h.subs, ev.Channel)
	}
}

func (h *Hub) shutdown() {
	for channel, clients := range h.subs {
		for id, ch := range clients {
			close(ch)
			delete(clients, id)
		}
		delete(h.subs, channel)
	}
	h.cancel()
}
