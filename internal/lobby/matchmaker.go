package lobby

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

// AI display names, indexed by the player count at the moment the AI is
// added. A lobby holds at most four players, so the list is never exceeded.
var aiNames = [MaxPlayers]string{"Taylor AI", "Nuno AI", "Caleb AI", "Aaron AI"}

// Matchmaker admits players into lobbies with open capacity, creating
// lobbies as needed.
type Matchmaker struct {
	store *Store
	clock clockwork.Clock
	log   *zap.SugaredLogger
}

func NewMatchmaker(store *Store, clock clockwork.Clock, log *zap.SugaredLogger) *Matchmaker {
	return &Matchmaker{store: store, clock: clock, log: log}
}

// FindOrCreateLobby scans known lobbies in registration order and returns
// the first one still waiting with a free slot. If none qualifies it
// registers a fresh random key. First-fit, not best-fit.
func (m *Matchmaker) FindOrCreateLobby() (string, error) {
	for _, key := range m.store.ListKeys() {
		lb, ok := m.store.Get(key)
		if ok && lb.Status == StatusWaiting && len(lb.Players) < MaxPlayers {
			return key, nil
		}
	}

	key, err := GenerateKey(8)
	if err != nil {
		return "", fmt.Errorf("generate lobby key: %w", err)
	}
	m.store.RegisterKey(key)
	m.log.Infow("created lobby", "lobby_key", key)
	return key, nil
}

// Join adds the player to the lobby, creating a fresh waiting lobby when
// the key is unknown. Joining twice with the same player id is a no-op.
func (m *Matchmaker) Join(lobbyKey, playerID, playerName string) *Lobby {
	lb, ok := m.store.Get(lobbyKey)
	if !ok {
		lb = &Lobby{
			Key:       lobbyKey,
			Players:   []Player{},
			Status:    StatusWaiting,
			CreatedAt: m.clock.Now(),
		}
	}

	if !lb.hasPlayer(playerID) {
		lb.Players = append(lb.Players, Player{
			ID:       playerID,
			Name:     playerName,
			Position: len(lb.Players) + 1,
		})
		m.log.Infow("player joined lobby",
			"lobby_key", lobbyKey, "player_id", playerID, "players", len(lb.Players))
	}

	m.store.Put(lobbyKey, lb)
	return lb
}

// AddAI fills one slot with an AI player. AI players are ready from the
// moment they are created.
func (m *Matchmaker) AddAI(lobbyKey string) (*Lobby, error) {
	lb, ok := m.store.Get(lobbyKey)
	if !ok {
		return nil, ErrLobbyNotFound
	}
	if len(lb.Players) >= MaxPlayers {
		return nil, ErrLobbyFull
	}

	n := len(lb.Players)
	lb.Players = append(lb.Players, Player{
		ID:       "ai_" + uuid.NewString(),
		Name:     aiNames[n],
		Position: n + 1,
		Ready:    true,
		IsAI:     true,
	})
	m.store.Put(lobbyKey, lb)

	m.log.Infow("ai added to lobby", "lobby_key", lobbyKey, "name", aiNames[n])
	return lb, nil
}

// GenerateKey returns a random alphanumeric identifier. Also used to tag
// websocket subscribers, so key generation lives in one place.
func GenerateKey(length int) (string, error) {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	key := make([]byte, length)
	for i := range key {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", err
		}
		key[i] = charset[num.Int64()]
	}
	return string(key), nil
}
