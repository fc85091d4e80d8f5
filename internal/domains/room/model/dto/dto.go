package dto

import (
	catalogModel "turndown/internal/domains/catalog/model"
	"turndown/internal/domains/room/model"
	"turndown/shared/constant"
	"turndown/shared/timezone"
)

type TaskState struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	Category  string `json:"category"`
	Icon      string `json:"icon,omitempty"`
	Completed bool   `json:"completed"`
}

type RoomResponse struct {
	Number          string `json:"number"`
	Floor           int    `json:"floor"`
	Type            string `json:"type"`
	Status          string `json:"status"`
	AssignedCleaner string `json:"assigned_cleaner,omitempty"`
	SessionStart    string `json:"session_start,omitempty"`
	ElapsedSeconds  int64  `json:"elapsed_seconds,omitempty"`
	Completed       int    `json:"completed"`
	Total           int    `json:"total"`
}

func (r *RoomResponse) FromModel(room model.Room, catalog catalogModel.Catalog) {
	r.Number = room.Number
	r.Floor = room.Floor
	r.Type = room.Type
	r.Status = string(room.Status)
	r.AssignedCleaner = room.AssignedCleaner
	r.Completed, r.Total = model.Progress(room, catalog)

	if room.SessionStart != nil {
		r.SessionStart = timezone.Format(*room.SessionStart, constant.DateFormat)
		r.ElapsedSeconds = int64(timezone.Now().Sub(*room.SessionStart).Seconds())
	}
}

type RoomDetailResponse struct {
	RoomResponse
	Tasks []TaskState `json:"tasks"`
}

func (r *RoomDetailResponse) FromModel(room model.Room, catalog catalogModel.Catalog) {
	r.RoomResponse.FromModel(room, catalog)

	tasks := model.VisibleTasks(room, catalog)
	r.Tasks = make([]TaskState, 0, len(tasks))

	for _, task := range tasks {
		r.Tasks = append(r.Tasks, TaskState{
			ID:        task.ID,
			Label:     task.Label,
			Category:  task.Category,
			Icon:      task.Icon,
			Completed: room.TaskCompleted(task.ID),
		})
	}
}

type GetRoomsResponse struct {
	Rooms []RoomResponse `json:"rooms"`
}

func (r *GetRoomsResponse) FromModels(rooms []model.Room, catalog catalogModel.Catalog) {
	r.Rooms = make([]RoomResponse, 0, len(rooms))

	for _, room := range rooms {
		response := RoomResponse{}
		response.FromModel(room, catalog)
		r.Rooms = append(r.Rooms, response)
	}
}
