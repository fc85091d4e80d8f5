package store

import (
	"time"

	assignmentModel "turndown/internal/domains/assignment/model"
	catalogModel "turndown/internal/domains/catalog/model"
	cleanerModel "turndown/internal/domains/cleaner/model"
	historyModel "turndown/internal/domains/history/model"
	roomModel "turndown/internal/domains/room/model"
)

// State is the whole housekeeping world: rooms, cleaners, the task catalog
// and every ledger derived from them. It is only ever touched inside the
// Store's View/Update funnels and is serialized as-is for snapshots.
type State struct {
	Catalog  catalogModel.Catalog             `json:"catalog"`
	Rooms    map[string]*roomModel.Room       `json:"rooms"`
	Cleaners map[string]*cleanerModel.Cleaner `json:"cleaners"`

	// Proposals is keyed by room number; a room carries at most one pending
	// proposal.
	Proposals map[string]assignmentModel.Proposal `json:"proposals"`

	// LastRejected remembers, per room, the cleaner who most recently turned
	// the room down, so the manager is not offered the same pairing again.
	LastRejected map[string]string `json:"last_rejected"`

	// Sessions is keyed by cleaner ID.
	Sessions map[string]*assignmentModel.Session `json:"sessions"`

	// Messages is the FIFO exception channel, oldest first.
	Messages []assignmentModel.Message `json:"messages"`

	// RoomHistory is keyed by cleaner ID. Entries are idempotent on
	// (cleaner, room): re-recording the same pairing is a no-op even when
	// the assignment path differs.
	RoomHistory map[string][]historyModel.RoomHistoryEntry `json:"room_history"`

	// Cleanings is append-only.
	Cleanings []historyModel.CleaningRecord `json:"cleanings"`

	SavedAt time.Time `json:"saved_at"`
}

func NewState() *State {
	return &State{
		Catalog:      catalogModel.Default(),
		Rooms:        map[string]*roomModel.Room{},
		Cleaners:     map[string]*cleanerModel.Cleaner{},
		Proposals:    map[string]assignmentModel.Proposal{},
		LastRejected: map[string]string{},
		Sessions:     map[string]*assignmentModel.Session{},
		Messages:     []assignmentModel.Message{},
		RoomHistory:  map[string][]historyModel.RoomHistoryEntry{},
		Cleanings:    []historyModel.CleaningRecord{},
	}
}

// normalize re-creates any map a snapshot may have left nil so callers can
// write without nil checks.
func (s *State) normalize() {
	if s.Rooms == nil {
		s.Rooms = map[string]*roomModel.Room{}
	}

	if s.Cleaners == nil {
		s.Cleaners = map[string]*cleanerModel.Cleaner{}
	}

	if s.Proposals == nil {
		s.Proposals = map[string]assignmentModel.Proposal{}
	}

	if s.LastRejected == nil {
		s.LastRejected = map[string]string{}
	}

	if s.Sessions == nil {
		s.Sessions = map[string]*assignmentModel.Session{}
	}

	if s.RoomHistory == nil {
		s.RoomHistory = map[string][]historyModel.RoomHistoryEntry{}
	}
}

// RecordRoomHistory appends a (cleaner, room) pairing unless it already
// exists. The assignedBy of the first recording wins.
func (s *State) RecordRoomHistory(cleanerID, roomNumber, assignedBy string, at time.Time) {
	for _, entry := range s.RoomHistory[cleanerID] {
		if entry.RoomNumber == roomNumber {
			return
		}
	}

	s.RoomHistory[cleanerID] = append(s.RoomHistory[cleanerID], historyModel.RoomHistoryEntry{
		RoomNumber: roomNumber,
		AssignedBy: assignedBy,
		RecordedAt: at,
	})
}

// AppendCleaning adds a completed-cleaning record to the append-only ledger.
func (s *State) AppendCleaning(record historyModel.CleaningRecord) {
	s.Cleanings = append(s.Cleanings, record)
}

// ActiveCleaners returns active cleaners except the excluded ID, insertion
// order not guaranteed.
func (s *State) ActiveCleaners(excludeID string) []cleanerModel.Cleaner {
	cleaners := []cleanerModel.Cleaner{}

	for _, cleaner := range s.Cleaners {
		if cleaner.Active && cleaner.ID != excludeID {
			cleaners = append(cleaners, *cleaner)
		}
	}

	return cleaners
}
