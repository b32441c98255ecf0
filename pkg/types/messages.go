package types

import (
	"github.com/example/phpkart/internal/lobby"
	"github.com/example/phpkart/internal/models"
)

// Event is the envelope pushed to websocket subscribers. Channel is
// scoped per lobby ("lobby.{key}") so only that lobby's subscribers see it.
type Event struct {
	Channel string `json:"channel"`
	Event   string `json:"event"`
	Data    any    `json:"data"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// Lobby API

type JoinLobbyRequest struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
}

type JoinLobbyResponse struct {
	LobbyKey string       `json:"lobby_key"`
	PlayerID string       `json:"player_id"`
	Lobby    *lobby.Lobby `json:"lobby"`
}

type AddAIRequest struct {
	LobbyKey string `json:"lobby_key"`
}

type StartRaceRequest struct {
	LobbyKey string `json:"lobby_key"`
}

type LobbyResponse struct {
	Lobby *lobby.Lobby `json:"lobby"`
}

// Unlock API

type UnlockNextRequest struct {
	BeatenDeveloper string `json:"beaten_developer"`
}

// Race API

type CreateRaceRequest struct {
	Name       string `json:"name"`
	TrackName  string `json:"track_name"`
	MaxPlayers int    `json:"max_players"`
	Laps       int    `json:"laps"`
}

type JoinRaceRequest struct {
	UserID      uint `json:"user_id"`
	DeveloperID uint `json:"php_developer_id"`
	CarID       uint `json:"car_id"`
}

type UpdatePositionRequest struct {
	UserID       uint            `json:"user_id"`
	PositionData models.Position `json:"position_data"`
	CurrentLap   int             `json:"current_lap"`
}
