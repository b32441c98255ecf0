package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/example/phpkart/internal/race"
	"github.com/example/phpkart/pkg/types"
)

func raceID(r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(chi.URLParam(r, "raceID"), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

func CreateRace(races *race.Service, log *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.CreateRaceRequest
		if err := decode(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json body")
			return
		}
		if req.Name == "" || req.TrackName == "" {
			writeError(w, http.StatusBadRequest, "name and track_name are required")
			return
		}

		created, err := races.Create(r.Context(), race.CreateParams{
			Name:       req.Name,
			TrackName:  req.TrackName,
			MaxPlayers: req.MaxPlayers,
			Laps:       req.Laps,
		})
		if err != nil {
			log.Errorw("create race", "error", err)
			writeError(w, http.StatusInternalServerError, "failed to create race")
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

func JoinRace(races *race.Service, log *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := raceID(r)
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid race id")
			return
		}
		var req types.JoinRaceRequest
		if err := decode(r, &req); err != nil || req.UserID == 0 {
			writeError(w, http.StatusBadRequest, "user_id is required")
			return
		}

		participant, err := races.Join(r.Context(), id, req.UserID, req.DeveloperID, req.CarID)
		switch {
		case errors.Is(err, race.ErrRaceNotFound):
			writeError(w, http.StatusNotFound, err.Error())
			return
		case errors.Is(err, race.ErrRaceClosed), errors.Is(err, race.ErrAlreadyJoined):
			writeError(w, http.StatusBadRequest, err.Error())
			return
		case err != nil:
			log.Errorw("join race", "race_id", id, "error", err)
			writeError(w, http.StatusInternalServerError, "failed to join race")
			return
		}
		writeJSON(w, http.StatusCreated, participant)
	}
}

func StartRace(races *race.Service, log *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := raceID(r)
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid race id")
			return
		}

		started, err := races.Start(r.Context(), id)
		switch {
		case errors.Is(err, race.ErrRaceNotFound):
			writeError(w, http.StatusNotFound, err.Error())
			return
		case errors.Is(err, race.ErrRaceClosed), errors.Is(err, race.ErrNotEnoughPlayers):
			writeError(w, http.StatusBadRequest, err.Error())
			return
		case err != nil:
			log.Errorw("start race", "race_id", id, "error", err)
			writeError(w, http.StatusInternalServerError, "failed to start race")
			return
		}
		writeJSON(w, http.StatusOK, started)
	}
}

func GetRace(races *race.Service, log *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := raceID(r)
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid race id")
			return
		}

		found, err := races.Get(r.Context(), id)
		if errors.Is(err, race.ErrRaceNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		if err != nil {
			log.Errorw("get race", "race_id", id, "error", err)
			writeError(w, http.StatusInternalServerError, "failed to load race")
			return
		}
		writeJSON(w, http.StatusOK, found)
	}
}

func UpdateRacePosition(races *race.Service, log *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := raceID(r)
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid race id")
			return
		}
		var req types.UpdatePositionRequest
		if err := decode(r, &req); err != nil || req.UserID == 0 {
			writeError(w, http.StatusBadRequest, "user_id is required")
			return
		}

		err := races.UpdatePosition(r.Context(), id, req.UserID, req.PositionData, req.CurrentLap)
		switch {
		case errors.Is(err, race.ErrRaceNotFound), errors.Is(err, race.ErrNotParticipant):
			writeError(w, http.StatusBadRequest, err.Error())
			return
		case err != nil:
			log.Errorw("update position", "race_id", id, "error", err)
			writeError(w, http.StatusInternalServerError, "failed to update position")
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"success": true})
	}
}
