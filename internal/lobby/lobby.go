package lobby

import (
	"errors"
	"time"
)

var ErrLobbyNotFound = errors.New("lobby not found")
var ErrLobbyFull = errors.New("lobby full")

// MaxPlayers is the lobby capacity, humans and AI combined.
const MaxPlayers = 4

type Status string

const (
	StatusWaiting   Status = "waiting"
	StatusCountdown Status = "countdown"
	StatusRacing    Status = "racing"
)

type Player struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Position int    `json:"position"`
	Ready    bool   `json:"ready"`
	IsAI     bool   `json:"is_ai"`
}

// Lobby is the record persisted in the store. Status only moves forward:
// waiting -> countdown -> racing. The roster is frozen once the countdown
// begins.
type Lobby struct {
	Key           string     `json:"key"`
	Players       []Player   `json:"players"`
	Status        Status     `json:"status"`
	CreatedAt     time.Time  `json:"created_at"`
	RaceStartedAt *time.Time `json:"race_started_at,omitempty"`
}

func (l *Lobby) hasPlayer(playerID string) bool {
	for _, p := range l.Players {
		if p.ID == playerID {
			return true
		}
	}
	return false
}

func (l Lobby) clone() Lobby {
	out := l
	out.Players = make([]Player, len(l.Players))
	copy(out.Players, l.Players)
	return out
}

// ChannelFor names the broadcast channel scoped to one lobby.
func ChannelFor(lobbyKey string) string {
	return "lobby." + lobbyKey
}
