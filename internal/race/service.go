package race

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/example/phpkart/internal/models"
)

var (
	ErrRaceNotFound     = errors.New("race not found")
	ErrRaceClosed       = errors.New("race is full or already started")
	ErrAlreadyJoined    = errors.New("already in this race")
	ErrNotEnoughPlayers = errors.New("need at least 2 players to start")
	ErrNotParticipant   = errors.New("not in this race")
)

// Service owns persistent race records and their participants. Distinct
// from the lobby subsystem: lobbies are ephemeral cache records, races are
// relational rows that survive the game session.
type Service struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

func NewService(db *gorm.DB, log *zap.SugaredLogger) *Service {
	return &Service{db: db, log: log}
}

type CreateParams struct {
	Name       string
	TrackName  string
	MaxPlayers int
	Laps       int
}

func (s *Service) Create(ctx context.Context, p CreateParams) (*models.Race, error) {
	if p.MaxPlayers == 0 {
		p.MaxPlayers = 4
	}
	if p.Laps == 0 {
		p.Laps = 3
	}

	r := models.Race{
		Name:       p.Name,
		TrackName:  p.TrackName,
		Status:     "waiting",
		MaxPlayers: p.MaxPlayers,
		Laps:       p.Laps,
		TrackData:  trackDataFor(p.TrackName),
	}
	if err := s.db.WithContext(ctx).Create(&r).Error; err != nil {
		return nil, fmt.Errorf("create race: %w", err)
	}

	s.log.Infow("race created", "race_id", r.ID, "track", r.TrackName)
	return &r, nil
}

// Join adds the user to a waiting race. The user id is an explicit
// parameter; there is no ambient principal.
func (s *Service) Join(ctx context.Context, raceID, userID, developerID, carID uint) (*models.RaceParticipant, error) {
	r, err := s.load(ctx, raceID)
	if err != nil {
		return nil, err
	}
	if !r.CanJoin() {
		return nil, ErrRaceClosed
	}

	var existing int64
	err = s.db.WithContext(ctx).Model(&models.RaceParticipant{}).
		Where("race_id = ? AND user_id = ?", raceID, userID).
		Count(&existing).Error
	if err != nil {
		return nil, fmt.Errorf("check membership: %w", err)
	}
	if existing > 0 {
		return nil, ErrAlreadyJoined
	}

	participant := models.RaceParticipant{
		RaceID:       raceID,
		UserID:       userID,
		DeveloperID:  developerID,
		CarID:        carID,
		PositionData: models.Position{},
	}
	if err := s.db.WithContext(ctx).Create(&participant).Error; err != nil {
		return nil, fmt.Errorf("create participant: %w", err)
	}

	err = s.db.WithContext(ctx).Model(r).
		UpdateColumn("current_players", gorm.Expr("current_players + 1")).Error
	if err != nil {
		return nil, fmt.Errorf("increment players: %w", err)
	}

	s.log.Infow("user joined race", "race_id", raceID, "user_id", userID)
	return &participant, nil
}

func (s *Service) Start(ctx context.Context, raceID uint) (*models.Race, error) {
	r, err := s.load(ctx, raceID)
	if err != nil {
		return nil, err
	}
	if r.Status != "waiting" {
		return nil, ErrRaceClosed
	}
	if r.CurrentPlayers < 2 {
		return nil, ErrNotEnoughPlayers
	}

	now := time.Now()
	err = s.db.WithContext(ctx).Model(r).
		Updates(map[string]any{"status": "active", "started_at": now}).Error
	if err != nil {
		return nil, fmt.Errorf("start race: %w", err)
	}

	s.log.Infow("race started", "race_id", raceID)
	return s.Get(ctx, raceID)
}

func (s *Service) Get(ctx context.Context, raceID uint) (*models.Race, error) {
	var r models.Race
	err := s.db.WithContext(ctx).Preload("Participants").First(&r, raceID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRaceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load race %d: %w", raceID, err)
	}
	return &r, nil
}

func (s *Service) UpdatePosition(ctx context.Context, raceID, userID uint, pos models.Position, currentLap int) error {
	var participant models.RaceParticipant
	err := s.db.WithContext(ctx).
		Where("race_id = ? AND user_id = ?", raceID, userID).
		First(&participant).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotParticipant
	}
	if err != nil {
		return fmt.Errorf("load participant: %w", err)
	}

	participant.PositionData = pos
	participant.CurrentLap = currentLap
	err = s.db.WithContext(ctx).Model(&participant).
		Select("position_data", "current_lap").
		Updates(&participant).Error
	if err != nil {
		return fmt.Errorf("update position: %w", err)
	}
	return nil
}

func (s *Service) load(ctx context.Context, raceID uint) (*models.Race, error) {
	var r models.Race
	err := s.db.WithContext(ctx).First(&r, raceID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRaceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load race %d: %w", raceID, err)
	}
	return &r, nil
}
