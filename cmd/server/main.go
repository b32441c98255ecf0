package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/errgroup"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/example/phpkart/internal/config"
	"github.com/example/phpkart/internal/game"
	"github.com/example/phpkart/internal/httpapi"
	"github.com/example/phpkart/internal/hub"
	"github.com/example/phpkart/internal/lobby"
	"github.com/example/phpkart/internal/logger"
	"github.com/example/phpkart/internal/models"
	"github.com/example/phpkart/internal/race"
	"github.com/example/phpkart/internal/seed"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	zlog, err := logger.New()
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		zlog.Fatalw("connect database", "error", err)
	}
	if err := db.AutoMigrate(models.All()...); err != nil {
		zlog.Fatalw("migrate", "error", err)
	}
	if cfg.Seed {
		if err := seed.Run(db, zlog); err != nil {
			zlog.Fatalw("seed", "error", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	clock := clockwork.NewRealClock()
	h := hub.NewHub(ctx)
	store := lobby.NewStore(cfg.LobbyTTL)

	handler := httpapi.SetupRoutes(httpapi.Deps{
		Store:      store,
		Matchmaker: lobby.NewMatchmaker(store, clock, zlog),
		Sequencer:  lobby.NewSequencer(ctx, store, h, clock, cfg.CountdownInterval, zlog),
		Games:      game.NewService(db, zlog),
		Races:      race.NewService(db, zlog),
		Hub:        h,
		Log:        zlog,
	})

	srv := &http.Server{Addr: cfg.Addr, Handler: handler}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		zlog.Infow("listening", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		zlog.Fatalw("server exited", "error", err)
	}
}
