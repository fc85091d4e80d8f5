package model

import "strings"

const (
	EntityName = "catalog"
)

// Task is a single cleaning task definition. IDs are slugs derived from the
// label and stay stable across catalog merges.
type Task struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Category string `json:"category"`
	Icon     string `json:"icon,omitempty"`
}

// Entry groups the ordered tasks of one category. An empty RoomTypes list
// means the category applies to every room; otherwise the room's free-text
// type must contain one of the listed type tokens.
type Entry struct {
	RoomTypes []string `json:"room_types"`
	Tasks     []Task   `json:"tasks"`
}

// AppliesTo reports whether this category's tasks belong on a room of the
// given type. Matching is a case-insensitive substring check per token.
func (e Entry) AppliesTo(roomType string) bool {
	if len(e.RoomTypes) == 0 {
		return true
	}

	haystack := strings.ToLower(roomType)

	for _, token := range e.RoomTypes {
		if token == "" {
			continue
		}

		if strings.Contains(haystack, strings.ToLower(token)) {
			return true
		}
	}

	return false
}

// Catalog is the merged task catalog: the built-in default overlaid with the
// manager-edited feed. Order preserves category display order; task order
// within a category defines the completion-dependency chain.
type Catalog struct {
	Version    int              `json:"version"`
	Order      []string         `json:"order"`
	Categories map[string]Entry `json:"categories"`
}

// TaskByID resolves a task definition anywhere in the catalog.
func (c Catalog) TaskByID(taskID string) (Task, bool) {
	for _, category := range c.Order {
		for _, task := range c.Categories[category].Tasks {
			if task.ID == taskID {
				return task, true
			}
		}
	}

	return Task{}, false
}

// HasTaskID reports whether a task id is already allocated anywhere in the
// catalog. Used for slug collision disambiguation.
func (c Catalog) HasTaskID(taskID string) bool {
	_, ok := c.TaskByID(taskID)

	return ok
}

// Clone returns a deep copy so snapshots and readers never alias the
// authoritative maps.
func (c Catalog) Clone() Catalog {
	clone := Catalog{
		Version:    c.Version,
		Order:      append([]string(nil), c.Order...),
		Categories: make(map[string]Entry, len(c.Categories)),
	}

	for name, entry := range c.Categories {
		clone.Categories[name] = Entry{
			RoomTypes: append([]string(nil), entry.RoomTypes...),
			Tasks:     append([]Task(nil), entry.Tasks...),
		}
	}

	return clone
}
