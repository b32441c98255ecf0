package httpapi

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/example/phpkart/internal/game"
	"github.com/example/phpkart/pkg/types"
)

func ListDevelopers(games *game.Service, log *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		devs, err := games.ListDevelopers(r.Context())
		if err != nil {
			log.Errorw("list developers", "error", err)
			writeError(w, http.StatusInternalServerError, "failed to load developers")
			return
		}
		writeJSON(w, http.StatusOK, devs)
	}
}

func ListCars(games *game.Service, log *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cars, err := games.ListCars(r.Context())
		if err != nil {
			log.Errorw("list cars", "error", err)
			writeError(w, http.StatusInternalServerError, "failed to load cars")
			return
		}
		writeJSON(w, http.StatusOK, cars)
	}
}

// UnlockTaylor is the final-boss override: it bypasses the progression
// order entirely.
func UnlockTaylor(games *game.Service, log *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := games.UnlockTerminal(r.Context(), "taylor-otwell")
		if errors.Is(err, game.ErrDeveloperNotFound) {
			writeJSON(w, http.StatusNotFound, game.UnlockResult{Success: false, Message: "Taylor not found"})
			return
		}
		if err != nil {
			log.Errorw("unlock taylor", "error", err)
			writeError(w, http.StatusInternalServerError, "failed to unlock")
			return
		}
		writeJSON(w, http.StatusOK, result)
	}
}

func UnlockNextDeveloper(games *game.Service, log *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.UnlockNextRequest
		if err := decode(r, &req); err != nil || req.BeatenDeveloper == "" {
			writeError(w, http.StatusBadRequest, "beaten_developer is required")
			return
		}

		result, err := games.UnlockNext(r.Context(), req.BeatenDeveloper)
		if errors.Is(err, game.ErrDeveloperNotFound) {
			writeJSON(w, http.StatusNotFound, game.UnlockResult{Success: false, Message: "Developer not found"})
			return
		}
		if err != nil {
			log.Errorw("unlock next developer", "beaten", req.BeatenDeveloper, "error", err)
			writeError(w, http.StatusInternalServerError, "failed to unlock")
			return
		}
		writeJSON(w, http.StatusOK, result)
	}
}
