package models

import "time"

// Abilities are the per-developer kart stat boosts.
type Abilities struct {
	Speed        int `json:"speed"`
	Handling     int `json:"handling"`
	Acceleration int `json:"acceleration"`
}

// Developer is a playable (or locked) PHP developer character.
type Developer struct {
	ID               uint      `gorm:"primarykey" json:"id"`
	Name             string    `json:"name"`
	Slug             string    `gorm:"uniqueIndex" json:"slug"`
	Bio              string    `json:"bio"`
	AvatarURL        string    `json:"avatar_url"`
	Abilities        Abilities `gorm:"serializer:json" json:"special_abilities"`
	PopularityRating int       `gorm:"default:50" json:"popularity_rating"`
	IsFeatured       bool      `json:"is_featured"`
	IsLocked         bool      `json:"is_locked"`
	UnlockOrder      int       `json:"unlock_order"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type Car struct {
	ID                 uint      `gorm:"primarykey" json:"id"`
	Name               string    `json:"name"`
	Slug               string    `gorm:"uniqueIndex" json:"slug"`
	Brand              string    `json:"brand"`
	Model              string    `json:"model"`
	Description        string    `json:"description"`
	ImageURL           string    `json:"image_url"`
	SpeedRating        int       `gorm:"default:50" json:"speed_rating"`
	AccelerationRating int       `gorm:"default:50" json:"acceleration_rating"`
	HandlingRating     int       `gorm:"default:50" json:"handling_rating"`
	IsLambo            bool      `json:"is_lambo"`
	IsPremium          bool      `json:"is_premium"`
	UnlockLevel        int       `gorm:"default:1" json:"unlock_level"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// Checkpoint is a point on the track racers must pass through, in order.
type Checkpoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

type TrackData struct {
	Length      float64      `json:"length"`
	Turns       int          `json:"turns"`
	Difficulty  string       `json:"difficulty"`
	Checkpoints []Checkpoint `json:"checkpoints"`
}

// Race status values: waiting, active, finished.
type Race struct {
	ID             uint              `gorm:"primarykey" json:"id"`
	Name           string            `json:"name"`
	TrackName      string            `json:"track_name"`
	Status         string            `gorm:"default:waiting" json:"status"`
	MaxPlayers     int               `gorm:"default:4" json:"max_players"`
	CurrentPlayers int               `gorm:"default:0" json:"current_players"`
	Laps           int               `gorm:"default:3" json:"laps"`
	TrackData      TrackData         `gorm:"serializer:json" json:"track_data"`
	StartedAt      *time.Time        `json:"started_at"`
	FinishedAt     *time.Time        `json:"finished_at"`
	WinnerID       *uint             `json:"winner_id"`
	Participants   []RaceParticipant `json:"participants,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

func (r *Race) CanJoin() bool {
	return r.Status == "waiting" && r.CurrentPlayers < r.MaxPlayers
}

// Position is a racer's realtime location on the track.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

type RaceParticipant struct {
	ID           uint       `gorm:"primarykey" json:"id"`
	RaceID       uint       `gorm:"uniqueIndex:idx_race_user" json:"race_id"`
	UserID       uint       `gorm:"uniqueIndex:idx_race_user" json:"user_id"`
	DeveloperID  uint       `json:"php_developer_id"`
	CarID        uint       `json:"car_id"`
	Position     *int       `json:"position"`
	CurrentLap   int        `gorm:"default:0" json:"current_lap"`
	LapTimes     []float64  `gorm:"serializer:json" json:"lap_times"`
	PositionData Position   `gorm:"serializer:json" json:"position_data"`
	Finished     bool       `json:"finished"`
	FinishTime   *time.Time `json:"finish_time"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

type User struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// All returns every model for migration.
func All() []any {
	return []any{&User{}, &Developer{}, &Car{}, &Race{}, &RaceParticipant{}}
}
