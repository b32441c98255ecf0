package lobby

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

const (
	EventCountdown   = "race.countdown"
	EventRaceStarted = "race.started"
)

// Broadcaster pushes an event to every subscriber of a channel. Delivery
// is fire-and-forget; a missed tick is not retried.
type Broadcaster interface {
	Publish(channel, event string, data any)
}

type CountdownPayload struct {
	LobbyKey string `json:"lobby_key"`
	// Count is 3, 2, 1 or the literal string "GO!".
	Count     any       `json:"count"`
	Timestamp time.Time `json:"timestamp"`
}

type RaceStartedPayload struct {
	LobbyKey  string    `json:"lobby_key"`
	Players   []Player  `json:"players"`
	Countdown any       `json:"countdown"`
	Timestamp time.Time `json:"timestamp"`
}

// Sequencer turns a waiting lobby into a racing one through a timed,
// observable countdown. Each started sequence runs in its own goroutine
// under a cancellable context, tracked per lobby key so an abandoned
// lobby's countdown can be aborted.
type Sequencer struct {
	store    *Store
	bc       Broadcaster
	clock    clockwork.Clock
	interval time.Duration
	log      *zap.SugaredLogger
	ctx      context.Context

	mu      sync.Mutex
	running map[string]*countdownRun
}

// countdownRun identifies one countdown goroutine. The registry maps each
// lobby key to its current run, so a replaced run's cleanup cannot evict
// the run that superseded it.
type countdownRun struct {
	cancel context.CancelFunc
}

func NewSequencer(parent context.Context, store *Store, bc Broadcaster, clock clockwork.Clock, interval time.Duration, log *zap.SugaredLogger) *Sequencer {
	if interval <= 0 {
		interval = time.Second
	}
	return &Sequencer{
		store:    store,
		bc:       bc,
		clock:    clock,
		interval: interval,
		log:      log,
		ctx:      parent,
		running:  make(map[string]*countdownRun),
	}
}

// StartRace flips the lobby to countdown, persists it and schedules the
// countdown sequence in the background. The returned lobby is still in
// countdown state; callers do not wait for the sequence.
func (s *Sequencer) StartRace(lobbyKey string) (*Lobby, error) {
	lb, ok := s.store.Get(lobbyKey)
	if !ok {
		return nil, ErrLobbyNotFound
	}

	now := s.clock.Now()
	lb.Status = StatusCountdown
	lb.RaceStartedAt = &now
	s.store.Put(lobbyKey, lb)

	runCtx, cancel := context.WithCancel(s.ctx)
	current := &countdownRun{cancel: cancel}
	s.mu.Lock()
	if prev, exists := s.running[lobbyKey]; exists {
		// A restarted countdown replaces the pending one.
		prev.cancel()
	}
	s.running[lobbyKey] = current
	s.mu.Unlock()

	go s.run(runCtx, lobbyKey, lb.Players, current)

	s.log.Infow("race countdown started", "lobby_key", lobbyKey, "players", len(lb.Players))
	return lb, nil
}

// Cancel aborts a pending countdown, if one is running for the key.
func (s *Sequencer) Cancel(lobbyKey string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if run, ok := s.running[lobbyKey]; ok {
		run.cancel()
		delete(s.running, lobbyKey)
	}
}

// remove drops the registry entry, but only while it still belongs to this
// run. A run replaced mid-flight must not evict its successor.
func (s *Sequencer) remove(lobbyKey string, run *countdownRun) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running[lobbyKey] == run {
		delete(s.running, lobbyKey)
	}
}

func (s *Sequencer) run(ctx context.Context, lobbyKey string, players []Player, self *countdownRun) {
	defer s.remove(lobbyKey, self)

	channel := ChannelFor(lobbyKey)
	for _, count := range []any{3, 2, 1, "GO!"} {
		select {
		case <-ctx.Done():
			return
		case <-s.clock.After(s.interval):
		}
		s.bc.Publish(channel, EventCountdown, CountdownPayload{
			LobbyKey:  lobbyKey,
			Count:     count,
			Timestamp: s.clock.Now(),
		})
	}

	s.bc.Publish(channel, EventRaceStarted, RaceStartedPayload{
		LobbyKey:  lobbyKey,
		Players:   players,
		Timestamp: s.clock.Now(),
	})

	lb, ok := s.store.Get(lobbyKey)
	if !ok {
		// Lobby expired mid-sequence. Drop the final transition rather
		// than resurrecting a record the store already let go of.
		s.log.Warnw("lobby gone before race start landed", "lobby_key", lobbyKey)
		return
	}
	lb.Status = StatusRacing
	s.store.Put(lobbyKey, lb)
}
