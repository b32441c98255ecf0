package hub

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/phpkart/pkg/types"
)

// helper: receive one event with a timeout so tests never hang
func recvEvent(t *testing.T, ch <-chan types.Event, within time.Duration) types.Event {
	t.Helper()
	select {
	case ev, ok := <-ch:
		if !ok {
			t.Fatalf("outbox closed unexpectedly")
		}
		return ev
	case <-time.After(within):
		t.Fatalf("timed out waiting for event")
		return types.Event{} // unreachable
	}
}

func recvNoEvent(t *testing.T, ch <-chan types.Event, within time.Duration) {
	t.Helper()
	select {
	case ev, ok := <-ch:
		if !ok {
			return // closed channel: no further events possible
		}
		t.Fatalf("expected no event within %v, but got: %+v", within, ev)
	case <-time.After(within):
		// good: no event
	}
}

func TestHub_PublishReachesChannelSubscriber(t *testing.T) {
	h := NewHub(context.Background())

	out := make(chan types.Event, 4)
	h.Inbox() <- Subscribe{Channel: "lobby.abc", ClientID: "c1", Outbox: out}

	h.Publish("lobby.abc", "race.countdown", 3)

	ev := recvEvent(t, out, time.Second)
	assert.Equal(t, "lobby.abc", ev.Channel)
	assert.Equal(t, "race.countdown", ev.Event)
	assert.Equal(t, 3, ev.Data)
}

func TestHub_PublishScopedToChannel(t *testing.T) {
	h := NewHub(context.Background())

	out := make(chan types.Event, 4)
	h.Inbox() <- Subscribe{Channel: "lobby.abc", ClientID: "c1", Outbox: out}

	h.Publish("lobby.other", "race.countdown", 3)

	recvNoEvent(t, out, 50*time.Millisecond)
}

func TestHub_UnsubscribeStopsDelivery(t *testing.T) {
	h := NewHub(context.Background())

	out := make(chan types.Event, 4)
	h.Inbox() <- Subscribe{Channel: "lobby.abc", ClientID: "c1", Outbox: out}
	h.Inbox() <- Unsubscribe{Channel: "lobby.abc", ClientID: "c1"}

	h.Publish("lobby.abc", "race.countdown", 3)

	recvNoEvent(t, out, 50*time.Millisecond)
}

func TestHub_SlowSubscriberDropped(t *testing.T) {
	h := NewHub(context.Background())

	slow := make(chan types.Event) // unbuffered, nobody reading
	fast := make(chan types.Event, 4)
	h.Inbox() <- Subscribe{Channel: "lobby.abc", ClientID: "slow", Outbox: slow}
	h.Inbox() <- Subscribe{Channel: "lobby.abc", ClientID: "fast", Outbox: fast}

	h.Publish("lobby.abc", "race.countdown", 3)
	h.Publish("lobby.abc", "race.countdown", 2)

	// Fast client sees both events; slow client's channel gets closed.
	first := recvEvent(t, fast, time.Second)
	second := recvEvent(t, fast, time.Second)
	assert.Equal(t, 3, first.Data)
	assert.Equal(t, 2, second.Data)

	require.Eventually(t, func() bool {
		select {
		case _, ok := <-slow:
			return !ok
		default:
			return false
		}
	}, time.Second, 5*time.Millisecond)
}

func TestHub_PublishAfterShutdownDoesNotBlock(t *testing.T) {
	h := NewHub(context.Background())
	h.Inbox() <- Shutdown{}

	// Well past the inbox buffer; blocks forever if publishes still queue.
	done := make(chan struct{})
	go func() {
		for i := 0; i < 128; i++ {
			h.Publish("lobby.abc", "race.countdown", i)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked after shutdown")
	}
}

func TestHub_ShutdownClosesSubscribers(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	h := NewHub(ctx)

	out := make(chan types.Event, 4)
	h.Inbox() <- Subscribe{Channel: "lobby.abc", ClientID: "c1", Outbox: out}

	h.Inbox() <- Shutdown{}

	require.Eventually(t, func() bool {
		select {
		case _, ok := <-out:
			return !ok
		default:
			return false
		}
	}, time.Second, 5*time.Millisecond)
}
