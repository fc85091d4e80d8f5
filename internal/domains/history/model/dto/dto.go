package dto

import (
	"turndown/internal/domains/history/model"
	roomModel "turndown/internal/domains/room/model"
	"turndown/shared"
	"turndown/shared/constant"
	"turndown/shared/timezone"
)

type CompletedTask struct {
	TaskID    string `json:"task_id"`
	Category  string `json:"category"`
	Label     string `json:"label,omitempty"`
	Completed bool   `json:"completed"`
}

type CleaningRecordResponse struct {
	ID              string          `json:"id"`
	RoomNumber      string          `json:"room_number"`
	RoomType        string          `json:"room_type"`
	Floor           int             `json:"floor"`
	CleanerID       string          `json:"cleaner_id"`
	CleanerName     string          `json:"cleaner_name"`
	CleaningDate    string          `json:"cleaning_date"`
	StartedAt       string          `json:"started_at"`
	EndedAt         string          `json:"ended_at"`
	DurationSeconds int64           `json:"duration_seconds"`
	CompletedTasks  []CompletedTask `json:"completed_tasks"`
}

func (r *CleaningRecordResponse) FromModel(record model.CleaningRecord) {
	r.ID = record.ID
	r.RoomNumber = record.RoomNumber
	r.RoomType = record.RoomType
	r.Floor = record.Floor
	r.CleanerID = record.CleanerID
	r.CleanerName = record.CleanerName
	r.CleaningDate = record.CleaningDate
	r.StartedAt = timezone.Format(record.StartedAt, constant.DateFormat)
	r.EndedAt = timezone.Format(record.EndedAt, constant.DateFormat)
	r.DurationSeconds = record.DurationSeconds
	r.CompletedTasks = completedTasks(record.CompletedTasks)
}

func completedTasks(items []roomModel.ChecklistItem) []CompletedTask {
	tasks := make([]CompletedTask, 0, len(items))

	for _, item := range items {
		tasks = append(tasks, CompletedTask{
			TaskID:    item.TaskID,
			Category:  item.Category,
			Label:     item.Label,
			Completed: item.Completed,
		})
	}

	return tasks
}

type GetCleaningsResponse struct {
	Records   []CleaningRecordResponse `json:"records"`
	TotalData int                      `json:"total_data"`
	TotalPage int                      `json:"total_page"`
}

func (r *GetCleaningsResponse) FromModels(records []model.CleaningRecord, total, limit int) {
	r.Records = make([]CleaningRecordResponse, 0, len(records))
	r.TotalData = total
	r.TotalPage = shared.CalculateTotalPage(total, limit)

	for _, record := range records {
		response := CleaningRecordResponse{}
		response.FromModel(record)
		r.Records = append(r.Records, response)
	}
}

type RoomHistoryEntryResponse struct {
	RoomNumber string `json:"room_number"`
	AssignedBy string `json:"assigned_by"`
	RecordedAt string `json:"recorded_at"`
}

func (r *RoomHistoryEntryResponse) FromModel(entry model.RoomHistoryEntry) {
	r.RoomNumber = entry.RoomNumber
	r.AssignedBy = entry.AssignedBy
	r.RecordedAt = timezone.Format(entry.RecordedAt, constant.DateFormat)
}

type GetRoomHistoryResponse struct {
	Entries   []RoomHistoryEntryResponse `json:"entries"`
	TotalData int                        `json:"total_data"`
	TotalPage int                        `json:"total_page"`
}

func (r *GetRoomHistoryResponse) FromModels(entries []model.RoomHistoryEntry, total, limit int) {
	r.Entries = make([]RoomHistoryEntryResponse, 0, len(entries))
	r.TotalData = total
	r.TotalPage = shared.CalculateTotalPage(total, limit)

	for _, entry := range entries {
		response := RoomHistoryEntryResponse{}
		response.FromModel(entry)
		r.Entries = append(r.Entries, response)
	}
}

type ArchiveResponse struct {
	URL         string `json:"url"`
	RecordCount int    `json:"record_count"`
}
