package dto

import (
	"turndown/internal/domains/assignment/model"
	cleanerModel "turndown/internal/domains/cleaner/model"
	roomModel "turndown/internal/domains/room/model"
	"turndown/shared/constant"
	"turndown/shared/timezone"
)

type ProposeRequest struct {
	RoomNumber string `json:"room_number" validate:"required"`
	CleanerID  string `json:"cleaner_id"  validate:"required"`
}

type ConfirmRequest struct {
	RoomNumber string `json:"room_number" validate:"required"`
	Accept     *bool  `json:"accept"      validate:"required"`
}

type SelectRequest struct {
	RoomNumbers []string `json:"room_numbers" validate:"required,min=1"`
}

type DeselectRequest struct {
	RoomNumber string `json:"room_number" validate:"required"`
}

type AbandonRequest struct {
	RoomNumber string `json:"room_number" validate:"required"`
	Note       string `json:"note"        validate:"omitempty,max=500"`
}

type FinishRequest struct {
	RoomNumber string `json:"room_number" validate:"required"`
}

type ProposalResponse struct {
	RoomNumber string `json:"room_number"`
	CleanerID  string `json:"cleaner_id"`
	ProposedAt string `json:"proposed_at"`
}

func (r *ProposalResponse) FromModel(proposal model.Proposal) {
	r.RoomNumber = proposal.RoomNumber
	r.CleanerID = proposal.CleanerID
	r.ProposedAt = timezone.Format(proposal.ProposedAt, constant.DateFormat)
}

// AlternateCleaner is offered to the manager after a rejection: every other
// active cleaner is a candidate for reassignment.
type AlternateCleaner struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ConfirmResponse struct {
	RoomNumber      string             `json:"room_number"`
	Accepted        bool               `json:"accepted"`
	Status          string             `json:"status"`
	AssignedCleaner string             `json:"assigned_cleaner,omitempty"`
	Alternates      []AlternateCleaner `json:"alternates,omitempty"`
}

func (r *ConfirmResponse) FromModels(room roomModel.Room, accepted bool, alternates []cleanerModel.Cleaner) {
	r.RoomNumber = room.Number
	r.Accepted = accepted
	r.Status = string(room.Status)
	r.AssignedCleaner = room.AssignedCleaner

	for _, alternate := range alternates {
		r.Alternates = append(r.Alternates, AlternateCleaner{
			ID:   alternate.ID,
			Name: alternate.Name,
		})
	}
}

type SessionRoom struct {
	Number         string `json:"number"`
	Status         string `json:"status"`
	ElapsedSeconds int64  `json:"elapsed_seconds,omitempty"`
}

type SessionResponse struct {
	CleanerID      string        `json:"cleaner_id"`
	StartedAt      string        `json:"started_at,omitempty"`
	ElapsedSeconds int64         `json:"elapsed_seconds,omitempty"`
	Rooms          []SessionRoom `json:"rooms"`
}

func (r *SessionResponse) FromModel(session model.Session, rooms map[string]roomModel.Room) {
	now := timezone.Now()

	r.CleanerID = session.CleanerID
	r.Rooms = make([]SessionRoom, 0, len(session.Rooms))

	if session.StartedAt != nil {
		r.StartedAt = timezone.Format(*session.StartedAt, constant.DateFormat)
		r.ElapsedSeconds = int64(now.Sub(*session.StartedAt).Seconds())
	}

	for _, number := range session.Rooms {
		sessionRoom := SessionRoom{Number: number}

		if room, ok := rooms[number]; ok {
			sessionRoom.Status = string(room.Status)

			if room.SessionStart != nil {
				sessionRoom.ElapsedSeconds = int64(now.Sub(*room.SessionStart).Seconds())
			}
		}

		r.Rooms = append(r.Rooms, sessionRoom)
	}
}

type MessageResponse struct {
	ID               string `json:"id"`
	RoomNumber       string `json:"room_number"`
	CleanerID        string `json:"cleaner_id"`
	CleanerName      string `json:"cleaner_name"`
	TimeSpentSeconds int64  `json:"time_spent_seconds"`
	Note             string `json:"note,omitempty"`
	CreatedAt        string `json:"created_at"`
	IsActionable     bool   `json:"is_actionable"`
}

func (r *MessageResponse) FromModel(message model.Message, actionable bool) {
	r.ID = message.ID
	r.RoomNumber = message.RoomNumber
	r.CleanerID = message.CleanerID
	r.CleanerName = message.CleanerName
	r.TimeSpentSeconds = message.TimeSpentSeconds
	r.Note = message.Note
	r.CreatedAt = timezone.Format(message.CreatedAt, constant.DateFormat)
	r.IsActionable = actionable
}

type GetMessagesResponse struct {
	Messages []MessageResponse `json:"messages"`
}
