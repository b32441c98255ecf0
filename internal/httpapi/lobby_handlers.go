package httpapi

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/example/phpkart/internal/lobby"
	"github.com/example/phpkart/pkg/types"
)

// JoinLobby admits the player into the first open lobby, creating one when
// every known lobby is full or already racing.
func JoinLobby(mm *lobby.Matchmaker, log *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.JoinLobbyRequest
		if err := decode(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json body")
			return
		}

		playerID := req.PlayerID
		if playerID == "" {
			playerID = uuid.NewString()
		}
		playerName := req.PlayerName
		if playerName == "" {
			playerName = "Player"
		}

		lobbyKey, err := mm.FindOrCreateLobby()
		if err != nil {
			log.Errorw("find or create lobby", "error", err)
			writeError(w, http.StatusInternalServerError, "failed to allocate lobby")
			return
		}

		lb := mm.Join(lobbyKey, playerID, playerName)
		writeJSON(w, http.StatusOK, types.JoinLobbyResponse{
			LobbyKey: lobbyKey,
			PlayerID: playerID,
			Lobby:    lb,
		})
	}
}

func AddLobbyAI(mm *lobby.Matchmaker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.AddAIRequest
		if err := decode(r, &req); err != nil || req.LobbyKey == "" {
			writeError(w, http.StatusBadRequest, "lobby_key is required")
			return
		}

		lb, err := mm.AddAI(req.LobbyKey)
		if errors.Is(err, lobby.ErrLobbyNotFound) || errors.Is(err, lobby.ErrLobbyFull) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, types.LobbyResponse{Lobby: lb})
	}
}

func StartLobbyRace(seq *lobby.Sequencer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.StartRaceRequest
		if err := decode(r, &req); err != nil || req.LobbyKey == "" {
			writeError(w, http.StatusBadRequest, "lobby_key is required")
			return
		}

		lb, err := seq.StartRace(req.LobbyKey)
		if errors.Is(err, lobby.ErrLobbyNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, types.LobbyResponse{Lobby: lb})
	}
}

func GetLobby(store *lobby.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lobbyKey := chi.URLParam(r, "lobbyKey")
		lb, ok := store.Get(lobbyKey)
		if !ok {
			writeError(w, http.StatusNotFound, lobby.ErrLobbyNotFound.Error())
			return
		}
		writeJSON(w, http.StatusOK, types.LobbyResponse{Lobby: lb})
	}
}
