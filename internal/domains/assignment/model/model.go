package model

import (
	"time"

	roomModel "turndown/internal/domains/room/model"
)

const (
	EntityName = "assignment"
)

// Proposal is a pending manager-initiated assignment awaiting the cleaner's
// yes/no confirmation. RoomStatus captures the room's status at proposal
// time; a mismatch at confirm time means the write lost a race and is
// rejected.
type Proposal struct {
	RoomNumber string           `json:"room_number"`
	CleanerID  string           `json:"cleaner_id"`
	RoomStatus roomModel.Status `json:"room_status"`
	ProposedAt time.Time        `json:"proposed_at"`
}

// Session is one housekeeper's active cleaning bookkeeping: the rooms they
// currently have selected and the wall-clock start of the session. StartedAt
// is nil while rooms are selected but cleaning has not begun.
type Session struct {
	CleanerID string     `json:"cleaner_id"`
	StartedAt *time.Time `json:"started_at,omitempty"`
	Rooms     []string   `json:"rooms"`
}

// HasRoom reports whether the room number is in the session's selection.
func (s Session) HasRoom(number string) bool {
	for _, room := range s.Rooms {
		if room == number {
			return true
		}
	}

	return false
}

// RemoveRoom drops the room from the selection, returning the updated list.
func (s *Session) RemoveRoom(number string) {
	rooms := s.Rooms[:0]

	for _, room := range s.Rooms {
		if room != number {
			rooms = append(rooms, room)
		}
	}

	s.Rooms = rooms
}

// Message is a housekeeper-initiated exception: a room removed mid-clean.
// Actionability is derived from the room's current status at read time, not
// stored.
type Message struct {
	ID               string    `json:"id"`
	RoomNumber       string    `json:"room_number"`
	CleanerID        string    `json:"cleaner_id"`
	CleanerName      string    `json:"cleaner_name"`
	TimeSpentSeconds int64     `json:"time_spent_seconds"`
	Note             string    `json:"note,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}
