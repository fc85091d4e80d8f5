package model

import (
	"time"

	roomModel "turndown/internal/domains/room/model"
)

const (
	EntityName = "history"
)

const (
	AssignedByManager     = "manager"
	AssignedByHousekeeper = "housekeeper"
)

// RoomHistoryEntry links a cleaner to a room number and how the link was
// made. A room number appears at most once per cleaner.
type RoomHistoryEntry struct {
	RoomNumber string    `json:"room_number"`
	AssignedBy string    `json:"assigned_by"`
	RecordedAt time.Time `json:"recorded_at"`
}

// CleaningRecord is the immutable snapshot of one completed cleaning,
// retained for reporting. Never mutated after creation.
type CleaningRecord struct {
	ID              string                    `json:"id"`
	RoomNumber      string                    `json:"room_number"`
	RoomType        string                    `json:"room_type"`
	Floor           int                       `json:"floor"`
	CleanerID       string                    `json:"cleaner_id"`
	CleanerName     string                    `json:"cleaner_name"`
	CleaningDate    string                    `json:"cleaning_date"`
	StartedAt       time.Time                 `json:"started_at"`
	EndedAt         time.Time                 `json:"ended_at"`
	DurationSeconds int64                     `json:"duration_seconds"`
	CompletedTasks  []roomModel.ChecklistItem `json:"completed_tasks"`
}
