package lobby

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordedEvent struct {
	channel string
	event   string
	data    any
}

// recordingBroadcaster captures published events and mirrors them to a
// channel so tests can wait without polling.
type recordingBroadcaster struct {
	mu     sync.Mutex
	events []recordedEvent
	ch     chan recordedEvent
}

func newRecordingBroadcaster() *recordingBroadcaster {
	return &recordingBroadcaster{ch: make(chan recordedEvent, 16)}
}

func (b *recordingBroadcaster) Publish(channel, event string, data any) {
	ev := recordedEvent{channel: channel, event: event, data: data}
	b.mu.Lock()
	b.events = append(b.events, ev)
	b.mu.Unlock()
	b.ch <- ev
}

func (b *recordingBroadcaster) count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.events)
}

// helper: receive one event with a timeout so tests never hang
func recvEvent(t *testing.T, ch <-chan recordedEvent, within time.Duration) recordedEvent {
	t.Helper()
	select {
	case ev := <-ch:
		return ev
	case <-time.After(within):
		t.Fatalf("timed out waiting for event")
		return recordedEvent{} // unreachable
	}
}

func newTestSequencer(t *testing.T, store *Store, fc *clockwork.FakeClock) (*Sequencer, *recordingBroadcaster) {
	t.Helper()
	bc := newRecordingBroadcaster()
	seq := NewSequencer(context.Background(), store, bc, fc, time.Second, zap.NewNop().Sugar())
	return seq, bc
}

func TestStartRace_MissingLobby(t *testing.T) {
	store := NewStore(time.Hour)
	seq, _ := newTestSequencer(t, store, clockwork.NewFakeClock())

	_, err := seq.StartRace("nope")
	assert.ErrorIs(t, err, ErrLobbyNotFound)
}

func TestStartRace_ReturnsCountdownImmediately(t *testing.T) {
	store := NewStore(time.Hour)
	fc := clockwork.NewFakeClock()
	seq, _ := newTestSequencer(t, store, fc)

	store.Put("abc", &Lobby{Key: "abc", Status: StatusWaiting, Players: []Player{{ID: "p1"}}})

	lb, err := seq.StartRace("abc")
	require.NoError(t, err)
	assert.Equal(t, StatusCountdown, lb.Status)
	require.NotNil(t, lb.RaceStartedAt)
	assert.Equal(t, fc.Now(), *lb.RaceStartedAt)

	stored, ok := store.Get("abc")
	require.True(t, ok)
	assert.Equal(t, StatusCountdown, stored.Status)
}

func TestCountdown_SequenceOrderTimingAndFinalState(t *testing.T) {
	store := NewStore(time.Hour)
	fc := clockwork.NewFakeClock()
	seq, bc := newTestSequencer(t, store, fc)

	players := []Player{{ID: "p1", Name: "One", Position: 1}, {ID: "p2", Name: "Two", Position: 2}}
	store.Put("abc", &Lobby{Key: "abc", Status: StatusWaiting, Players: players})

	_, err := seq.StartRace("abc")
	require.NoError(t, err)

	var got []recordedEvent
	for i := 0; i < 4; i++ {
		fc.BlockUntil(1)
		fc.Advance(time.Second)
		got = append(got, recvEvent(t, bc.ch, time.Second))
	}
	// race.started follows GO! with no additional wait
	got = append(got, recvEvent(t, bc.ch, time.Second))

	wantCounts := []any{3, 2, 1, "GO!"}
	var prev time.Time
	for i, want := range wantCounts {
		ev := got[i]
		assert.Equal(t, "lobby.abc", ev.channel)
		assert.Equal(t, EventCountdown, ev.event)

		payload, ok := ev.data.(CountdownPayload)
		require.True(t, ok)
		assert.Equal(t, want, payload.Count)
		assert.Equal(t, "abc", payload.LobbyKey)
		if i > 0 {
			assert.Equal(t, time.Second, payload.Timestamp.Sub(prev))
		}
		prev = payload.Timestamp
	}

	started := got[4]
	assert.Equal(t, EventRaceStarted, started.event)
	payload, ok := started.data.(RaceStartedPayload)
	require.True(t, ok)
	assert.Equal(t, players, payload.Players)

	require.Eventually(t, func() bool {
		lb, ok := store.Get("abc")
		return ok && lb.Status == StatusRacing
	}, time.Second, 5*time.Millisecond)
}

func TestCancel_AbortsPendingCountdown(t *testing.T) {
	store := NewStore(time.Hour)
	fc := clockwork.NewFakeClock()
	seq, bc := newTestSequencer(t, store, fc)

	store.Put("abc", &Lobby{Key: "abc", Status: StatusWaiting, Players: []Player{{ID: "p1"}}})

	_, err := seq.StartRace("abc")
	require.NoError(t, err)

	fc.BlockUntil(1)
	seq.Cancel("abc")

	// Give the goroutine time to observe cancellation, then confirm no
	// ticks fire even if the clock keeps moving.
	time.Sleep(50 * time.Millisecond)
	fc.Advance(5 * time.Second)
	time.Sleep(50 * time.Millisecond)

	assert.Zero(t, bc.count())
	lb, ok := store.Get("abc")
	require.True(t, ok)
	assert.Equal(t, StatusCountdown, lb.Status)
}

func TestCancel_AfterRestartAbortsNewCountdown(t *testing.T) {
	store := NewStore(time.Hour)
	fc := clockwork.NewFakeClock()
	seq, bc := newTestSequencer(t, store, fc)

	store.Put("abc", &Lobby{Key: "abc", Status: StatusWaiting, Players: []Player{{ID: "p1"}}})

	// The second start replaces the first run; the replaced run's cleanup
	// must leave the new run registered so Cancel still reaches it.
	_, err := seq.StartRace("abc")
	require.NoError(t, err)
	_, err = seq.StartRace("abc")
	require.NoError(t, err)

	// Let the replaced run observe its cancellation and exit.
	time.Sleep(50 * time.Millisecond)

	seq.Cancel("abc")
	time.Sleep(50 * time.Millisecond)
	fc.Advance(5 * time.Second)
	time.Sleep(50 * time.Millisecond)

	assert.Zero(t, bc.count())
}

func TestCountdown_ExpiredLobbyDropsFinalWrite(t *testing.T) {
	store := NewStore(20 * time.Millisecond)
	fc := clockwork.NewFakeClock()
	seq, bc := newTestSequencer(t, store, fc)

	store.Put("abc", &Lobby{Key: "abc", Status: StatusWaiting, Players: []Player{{ID: "p1"}}})

	_, err := seq.StartRace("abc")
	require.NoError(t, err)

	// Let the record expire while the sequence is still pending.
	time.Sleep(50 * time.Millisecond)

	for i := 0; i < 4; i++ {
		fc.BlockUntil(1)
		fc.Advance(time.Second)
		recvEvent(t, bc.ch, time.Second)
	}
	recvEvent(t, bc.ch, time.Second) // race.started still broadcast

	// The final status write is dropped; nothing is recreated.
	time.Sleep(10 * time.Millisecond)
	_, ok := store.Get("abc")
	assert.False(t, ok)
}
