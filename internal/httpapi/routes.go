package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/example/phpkart/internal/game"
	"github.com/example/phpkart/internal/hub"
	"github.com/example/phpkart/internal/lobby"
	"github.com/example/phpkart/internal/race"
	"github.com/example/phpkart/internal/ws"
)

// Deps bundles everything the HTTP surface needs.
type Deps struct {
	Store      *lobby.Store
	Matchmaker *lobby.Matchmaker
	Sequencer  *lobby.Sequencer
	Games      *game.Service
	Races      *race.Service
	Hub        *hub.Hub
	Log        *zap.SugaredLogger
}

func SetupRoutes(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", Healthz)
	r.Get("/ws", ws.Handler(d.Hub, d.Store))

	r.Route("/api", func(r chi.Router) {
		r.Post("/lobby/join", JoinLobby(d.Matchmaker, d.Log))
		r.Post("/lobby/add-ai", AddLobbyAI(d.Matchmaker))
		r.Post("/lobby/start-race", StartLobbyRace(d.Sequencer))
		r.Get("/lobby/{lobbyKey}", GetLobby(d.Store))

		r.Get("/developers", ListDevelopers(d.Games, d.Log))
		r.Get("/cars", ListCars(d.Games, d.Log))
		r.Post("/unlock-taylor", UnlockTaylor(d.Games, d.Log))
		r.Post("/unlock-next-developer", UnlockNextDeveloper(d.Games, d.Log))

		r.Route("/races", func(r chi.Router) {
			r.Post("/", CreateRace(d.Races, d.Log))
			r.Post("/{raceID}/join", JoinRace(d.Races, d.Log))
			r.Post("/{raceID}/start", StartRace(d.Races, d.Log))
			r.Get("/{raceID}", GetRace(d.Races, d.Log))
			r.Post("/{raceID}/position", UpdateRacePosition(d.Races, d.Log))
		})
	})

	return r
}

func Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}
