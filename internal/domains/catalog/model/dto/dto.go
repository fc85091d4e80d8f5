package dto

import (
	"encoding/json"
	"turndown/internal/domains/catalog/model"
)

// FeedEntry is one category in the manager's task-list feed. The modern shape
// is an object with room type restrictions; the legacy shape is a bare array
// of task labels, which normalizes to an unrestricted entry here so the
// engine never branches on shape.
type FeedEntry struct {
	RoomTypes []string `json:"room_types"`
	Tasks     []string `json:"tasks"`
}

func (e *FeedEntry) UnmarshalJSON(data []byte) error {
	var labels []string
	if err := json.Unmarshal(data, &labels); err == nil {
		e.RoomTypes = nil
		e.Tasks = labels

		return nil
	}

	type plain FeedEntry

	var decoded plain
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}

	*e = FeedEntry(decoded)

	return nil
}

// Feed is the full manager-edited catalog payload.
type Feed map[string]FeedEntry

type TaskResponse struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Category string `json:"category"`
	Icon     string `json:"icon,omitempty"`
}

type EntryResponse struct {
	Category  string         `json:"category"`
	RoomTypes []string       `json:"room_types,omitempty"`
	Tasks     []TaskResponse `json:"tasks"`
}

type CatalogResponse struct {
	Version    int             `json:"version"`
	Categories []EntryResponse `json:"categories"`
}

func (r *CatalogResponse) FromModel(catalog model.Catalog) {
	r.Version = catalog.Version
	r.Categories = make([]EntryResponse, 0, len(catalog.Order))

	for _, category := range catalog.Order {
		entry := catalog.Categories[category]

		entryResponse := EntryResponse{
			Category:  category,
			RoomTypes: entry.RoomTypes,
			Tasks:     make([]TaskResponse, 0, len(entry.Tasks)),
		}

		for _, task := range entry.Tasks {
			entryResponse.Tasks = append(entryResponse.Tasks, TaskResponse{
				ID:       task.ID,
				Label:    task.Label,
				Category: task.Category,
				Icon:     task.Icon,
			})
		}

		r.Categories = append(r.Categories, entryResponse)
	}
}
