package lobby

import (
	"time"

	"github.com/patrickmn/go-cache"
)

const (
	recordPrefix = "lobby:"
	registryKey  = "lobby_keys"

	// DefaultTTL is the retention window for lobby records. Every Put
	// resets it, so an active lobby never expires mid-game.
	DefaultTTL = time.Hour
)

// Store is the cache-backed persistence for lobbies plus a registry of all
// known lobby keys. It deliberately offers no compare-and-swap: callers do
// read-modify-write and concurrent writers are last-write-wins, matching
// the consistency the game actually needs.
type Store struct {
	cache *cache.Cache
	ttl   time.Duration
}

func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		cache: cache.New(ttl, 10*time.Minute),
		ttl:   ttl,
	}
}

// Get returns a copy of the stored lobby, so callers can't mutate the
// stored record without going back through Put.
func (s *Store) Get(key string) (*Lobby, bool) {
	v, ok := s.cache.Get(recordPrefix + key)
	if !ok {
		return nil, false
	}
	lb := v.(Lobby).clone()
	return &lb, true
}

// Put overwrites the record unconditionally and resets its TTL.
func (s *Store) Put(key string, lb *Lobby) {
	s.cache.Set(recordPrefix+key, lb.clone(), s.ttl)
}

// RegisterKey appends to the key registry. Duplicates are tolerated; the
// registry is only scanned first-fit during matchmaking.
func (s *Store) RegisterKey(key string) {
	keys := append(s.ListKeys(), key)
	s.cache.Set(registryKey, keys, s.ttl)
}

// ListKeys returns known lobby keys in registration order.
func (s *Store) ListKeys() []string {
	v, ok := s.cache.Get(registryKey)
	if !ok {
		return nil
	}
	return v.([]string)
}
