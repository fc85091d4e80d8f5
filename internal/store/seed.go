package store

import (
	"encoding/json"
	"os"

	"github.com/rs/zerolog/log"

	"turndown/config"
	roomModel "turndown/internal/domains/room/model"
)

type seedRoom struct {
	Number string `json:"number"`
	Floor  int    `json:"floor"`
	Type   string `json:"type"`
}

var defaultSeed = []seedRoom{
	{Number: "101", Floor: 1, Type: "Deluxe King"},
	{Number: "102", Floor: 1, Type: "Standard Twin"},
	{Number: "103", Floor: 1, Type: "Standard Queen"},
	{Number: "201", Floor: 2, Type: "Deluxe Queen"},
	{Number: "202", Floor: 2, Type: "Standard Twin"},
	{Number: "203", Floor: 2, Type: "Junior Suite"},
	{Number: "301", Floor: 3, Type: "Suite"},
	{Number: "302", Floor: 3, Type: "Apartment"},
}

// seed populates a fresh state with the room inventory. A seed file, when
// configured, replaces the built-in inventory entirely.
func (s *Store) seed() {
	rooms := defaultSeed

	if path := config.Get().Housekeeping.SeedFile; path != "" {
		loaded, err := loadSeedFile(path)
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("Failed to load seed file, using built-in inventory")
		} else {
			rooms = loaded
		}
	}

	for _, seed := range rooms {
		s.state.Rooms[seed.Number] = &roomModel.Room{
			Number:    seed.Number,
			Floor:     seed.Floor,
			Type:      seed.Type,
			Status:    roomModel.StatusCheckout,
			Checklist: []roomModel.ChecklistItem{},
		}
	}
}

func loadSeedFile(path string) ([]seedRoom, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var rooms []seedRoom
	if err = json.Unmarshal(raw, &rooms); err != nil {
		return nil, err
	}

	return rooms, nil
}
