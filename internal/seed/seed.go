package seed

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/example/phpkart/internal/models"
)

var developers = []models.Developer{
	{
		// The final boss. Stays locked until the rest of the ladder is beaten.
		Name:             "Taylor Otwell",
		Slug:             "taylor-otwell",
		Bio:              "Creator of Laravel. The legend himself.",
		AvatarURL:        "/storage/taylor.png",
		Abilities:        models.Abilities{Speed: 100, Handling: 100, Acceleration: 100},
		PopularityRating: 100,
		IsFeatured:       true,
		IsLocked:         true,
		UnlockOrder:      4,
	},
	{
		Name:             "TJ Miller",
		Slug:             "tj-miller",
		Bio:              "AI programmer extraordinaire at Geocodio. Built Prism PHP and loves fast cars.",
		AvatarURL:        "/storage/tj.png",
		Abilities:        models.Abilities{Speed: 65, Handling: 70, Acceleration: 60},
		PopularityRating: 75,
		IsLocked:         true,
		UnlockOrder:      1,
	},
	{
		Name:             "Nuno Maduro",
		Slug:             "nuno-maduro",
		Bio:              "Laravel core team member and Pest PHP creator. Testing his way to victory.",
		AvatarURL:        "/storage/nuno.png",
		Abilities:        models.Abilities{Speed: 80, Handling: 85, Acceleration: 75},
		PopularityRating: 85,
		IsLocked:         true,
		UnlockOrder:      2,
	},
	{
		// The only character available from the start.
		Name:             "Aaron Francis",
		Slug:             "aaron-francis",
		Bio:              "Database wizard and Laravel educator. Knows every MySQL optimization trick.",
		AvatarURL:        "/storage/aaron.png",
		Abilities:        models.Abilities{Speed: 85, Handling: 90, Acceleration: 80},
		PopularityRating: 88,
		IsLocked:         false,
		UnlockOrder:      0,
	},
}

var cars = []models.Car{
	{
		Name:               "Taylor's Legendary Lambo",
		Slug:               "taylors-legendary-lambo",
		Brand:              "Lamborghini",
		Model:              "Huracán EVO Special",
		Description:        "Taylor's personal ride. Beat him in single player to unlock this beast!",
		ImageURL:           "/storage/taylor-car.png",
		SpeedRating:        100,
		AccelerationRating: 95,
		HandlingRating:     90,
		IsLambo:            true,
		IsPremium:          true,
		UnlockLevel:        999,
	},
	{
		Name:               "Nuno's Testing Machine",
		Slug:               "nunos-testing-machine",
		Brand:              "Porsche",
		Model:              "911 GT3 RS",
		Description:        "Precise and reliable. Perfect for testing every corner of the track.",
		ImageURL:           "/storage/nuno-car.png",
		SpeedRating:        85,
		AccelerationRating: 80,
		HandlingRating:     95,
		UnlockLevel:        1,
	},
	{
		Name:               "TJ's AI Speedster",
		Slug:               "tjs-ai-speedster",
		Brand:              "McLaren",
		Model:              "720S",
		Description:        "AI-optimized performance. Machine learning meets racing.",
		ImageURL:           "/storage/tj-car.png",
		SpeedRating:        90,
		AccelerationRating: 92,
		HandlingRating:     88,
		UnlockLevel:        1,
	},
	{
		Name:               "Aaron's Database Cruiser",
		Slug:               "aarons-database-cruiser",
		Brand:              "BMW",
		Model:              "M8 Competition",
		Description:        "Optimized for smooth performance. Queries the track like a pro.",
		ImageURL:           "/storage/aaron-car.png",
		SpeedRating:        82,
		AccelerationRating: 85,
		HandlingRating:     87,
		UnlockLevel:        1,
	},
}

// Run loads the initial developers and cars. It is a no-op when developer
// records already exist, so it is safe to run on every boot.
func Run(db *gorm.DB, log *zap.SugaredLogger) error {
	var count int64
	if err := db.Model(&models.Developer{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count developers: %w", err)
	}
	if count > 0 {
		log.Debugw("seed skipped, developers already present", "count", count)
		return nil
	}

	devs := make([]models.Developer, len(developers))
	copy(devs, developers)
	if err := db.Create(&devs).Error; err != nil {
		return fmt.Errorf("seed developers: %w", err)
	}

	rides := make([]models.Car, len(cars))
	copy(rides, cars)
	if err := db.Create(&rides).Error; err != nil {
		return fmt.Errorf("seed cars: %w", err)
	}

	log.Infow("seeded game data", "developers", len(developers), "cars", len(cars))
	return nil
}
