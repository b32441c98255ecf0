package race

import "github.com/example/phpkart/internal/models"

// Fixed track catalog. Unknown track names fall back to Laravel Circuit.
var trackCatalog = map[string]models.TrackData{
	"Laravel Circuit": {
		Length:     2.5,
		Turns:      12,
		Difficulty: "medium",
		Checkpoints: []models.Checkpoint{
			{X: 100, Y: 0, Z: 200},
			{X: 300, Y: 0, Z: 400},
			{X: 500, Y: 0, Z: 200},
			{X: 300, Y: 0, Z: 0},
		},
	},
	"PHP Speedway": {
		Length:     3.2,
		Turns:      8,
		Difficulty: "easy",
		Checkpoints: []models.Checkpoint{
			{X: 150, Y: 0, Z: 300},
			{X: 450, Y: 0, Z: 300},
			{X: 450, Y: 0, Z: 0},
			{X: 150, Y: 0, Z: 0},
		},
	},
	"Symfony Grand Prix": {
		Length:     4.1,
		Turns:      16,
		Difficulty: "hard",
		Checkpoints: []models.Checkpoint{
			{X: 80, Y: 0, Z: 150},
			{X: 250, Y: 0, Z: 350},
			{X: 420, Y: 0, Z: 500},
			{X: 600, Y: 0, Z: 250},
			{X: 400, Y: 0, Z: 0},
		},
	},
}

func trackDataFor(trackName string) models.TrackData {
	if data, ok := trackCatalog[trackName]; ok {
		return data
	}
	return trackCatalog["Laravel Circuit"]
}
