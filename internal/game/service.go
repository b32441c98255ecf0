package game

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/example/phpkart/internal/models"
)

var ErrDeveloperNotFound = errors.New("developer not found")

// Service serves the character/car catalog and owns the campaign unlock
// progression.
type Service struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

func NewService(db *gorm.DB, log *zap.SugaredLogger) *Service {
	return &Service{db: db, log: log}
}

// DeveloperView is the catalog shape the frontend consumes.
type DeveloperView struct {
	ID               uint             `json:"id"`
	Name             string           `json:"name"`
	Bio              string           `json:"bio"`
	Abilities        models.Abilities `json:"special_abilities"`
	PopularityRating int              `json:"popularity_rating"`
	IsFeatured       bool             `json:"is_featured"`
	IsLocked         bool             `json:"is_locked"`
	ImageURL         string           `json:"image_url"`
}

type CarView struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	Speed        int    `json:"speed"`
	Acceleration int    `json:"acceleration"`
	Handling     int    `json:"handling"`
	Drift        int    `json:"drift"`
	IsLocked     bool   `json:"is_locked"`
	ImageURL     string `json:"image_url"`
}

// ListDevelopers returns all developers, most popular first, featured
// breaking ties.
func (s *Service) ListDevelopers(ctx context.Context) ([]DeveloperView, error) {
	var devs []models.Developer
	err := s.db.WithContext(ctx).
		Order("popularity_rating desc").
		Order("is_featured desc").
		Find(&devs).Error
	if err != nil {
		return nil, fmt.Errorf("list developers: %w", err)
	}

	views := make([]DeveloperView, 0, len(devs))
	for _, d := range devs {
		views = append(views, DeveloperView{
			ID:               d.ID,
			Name:             d.Name,
			Bio:              d.Bio,
			Abilities:        d.Abilities,
			PopularityRating: d.PopularityRating,
			IsFeatured:       d.IsFeatured,
			IsLocked:         d.IsLocked,
			ImageURL:         d.AvatarURL,
		})
	}
	return views, nil
}

// ListCars returns all cars, fastest first. A car is locked when its
// unlock level is above the starting level; drift mirrors handling.
func (s *Service) ListCars(ctx context.Context) ([]CarView, error) {
	var cars []models.Car
	err := s.db.WithContext(ctx).Order("speed_rating desc").Find(&cars).Error
	if err != nil {
		return nil, fmt.Errorf("list cars: %w", err)
	}

	views := make([]CarView, 0, len(cars))
	for _, c := range cars {
		views = append(views, CarView{
			ID:           c.ID,
			Name:         c.Name,
			Speed:        c.SpeedRating,
			Acceleration: c.AccelerationRating,
			Handling:     c.HandlingRating,
			Drift:        c.HandlingRating,
			IsLocked:     c.UnlockLevel > 1,
			ImageURL:     c.ImageURL,
		})
	}
	return views, nil
}

// UnlockResult reports an unlock attempt. Reaching the end of the
// progression is success with a no-op message, never an error.
type UnlockResult struct {
	Success           bool   `json:"success"`
	Message           string `json:"message"`
	UnlockedDeveloper string `json:"unlocked_developer,omitempty"`
}

// UnlockNext unlocks the developer that follows the beaten one in the
// campaign order. Unlocks are monotonic: this only ever clears the locked
// flag, it never sets it.
func (s *Service) UnlockNext(ctx context.Context, beatenSlug string) (UnlockResult, error) {
	var beaten models.Developer
	err := s.db.WithContext(ctx).Where("slug = ?", beatenSlug).First(&beaten).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return UnlockResult{}, ErrDeveloperNotFound
	}
	if err != nil {
		return UnlockResult{}, fmt.Errorf("load developer %q: %w", beatenSlug, err)
	}

	var next models.Developer
	err = s.db.WithContext(ctx).Where("unlock_order = ?", beaten.UnlockOrder+1).First(&next).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return UnlockResult{Success: true, Message: "No more developers to unlock"}, nil
	}
	if err != nil {
		return UnlockResult{}, fmt.Errorf("load next developer after %q: %w", beatenSlug, err)
	}

	if !next.IsLocked {
		return UnlockResult{Success: true, Message: "No more developers to unlock"}, nil
	}

	if err := s.db.WithContext(ctx).Model(&next).Update("is_locked", false).Error; err != nil {
		return UnlockResult{}, fmt.Errorf("unlock developer %q: %w", next.Slug, err)
	}

	s.log.Infow("developer unlocked", "slug", next.Slug, "beaten", beatenSlug)
	return UnlockResult{
		Success:           true,
		Message:           next.Name + " unlocked!",
		UnlockedDeveloper: next.Name,
	}, nil
}

// UnlockTerminal unconditionally unlocks the given developer, ignoring the
// progression order. Used for the final boss.
func (s *Service) UnlockTerminal(ctx context.Context, slug string) (UnlockResult, error) {
	var dev models.Developer
	err := s.db.WithContext(ctx).Where("slug = ?", slug).First(&dev).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return UnlockResult{}, ErrDeveloperNotFound
	}
	if err != nil {
		return UnlockResult{}, fmt.Errorf("load developer %q: %w", slug, err)
	}

	if err := s.db.WithContext(ctx).Model(&dev).Update("is_locked", false).Error; err != nil {
		return UnlockResult{}, fmt.Errorf("unlock developer %q: %w", slug, err)
	}

	s.log.Infow("developer unlocked", "slug", slug)
	return UnlockResult{Success: true, Message: dev.Name + " unlocked!"}, nil
}
