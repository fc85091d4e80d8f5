package model

import (
	"time"

	catalogModel "turndown/internal/domains/catalog/model"
)

const (
	EntityName = "room"
)

// Status is the room lifecycle state driven by the assignment engine.
type Status string

const (
	StatusCheckout   Status = "checkout"
	StatusAssigned   Status = "assigned"
	StatusInCleaning Status = "in_cleaning"
	StatusAvailable  Status = "available"
)

// ChecklistItem is one task-completion flag on a room. Items exist for tasks
// the room has interacted with plus any ad-hoc tasks added outside the
// catalog.
type ChecklistItem struct {
	TaskID    string `json:"task_id"`
	Category  string `json:"category"`
	Label     string `json:"label,omitempty"`
	Completed bool   `json:"completed"`
}

type Room struct {
	Number          string          `json:"number"`
	Floor           int             `json:"floor"`
	Type            string          `json:"type"`
	Status          Status          `json:"status"`
	AssignedCleaner string          `json:"assigned_cleaner,omitempty"`
	Checklist       []ChecklistItem `json:"checklist"`
	SessionStart    *time.Time      `json:"session_start,omitempty"`
}

// Clone deep-copies the room so readers never alias store state.
func (r Room) Clone() Room {
	clone := r
	clone.Checklist = append([]ChecklistItem(nil), r.Checklist...)

	if r.SessionStart != nil {
		start := *r.SessionStart
		clone.SessionStart = &start
	}

	return clone
}

func (r Room) checklistItem(taskID string) (ChecklistItem, bool) {
	for _, item := range r.Checklist {
		if item.TaskID == taskID {
			return item, true
		}
	}

	return ChecklistItem{}, false
}

// TaskCompleted reports whether the given task is flagged complete on the
// room. A task with no checklist item counts as incomplete.
func (r Room) TaskCompleted(taskID string) bool {
	item, ok := r.checklistItem(taskID)

	return ok && item.Completed
}

// ApplicableCategories returns the catalog categories whose tasks belong on
// this room, in catalog order.
func ApplicableCategories(room Room, catalog catalogModel.Catalog) []string {
	categories := make([]string, 0, len(catalog.Order))

	for _, category := range catalog.Order {
		if catalog.Categories[category].AppliesTo(room.Type) {
			categories = append(categories, category)
		}
	}

	return categories
}

// VisibleTasks merges the catalog definitions for the room's applicable
// categories with any ad-hoc tasks already on the checklist. Catalog tasks
// come first in catalog order; ad-hoc tasks follow in checklist order,
// grouped under their own category.
func VisibleTasks(room Room, catalog catalogModel.Catalog) []catalogModel.Task {
	tasks := []catalogModel.Task{}

	for _, category := range ApplicableCategories(room, catalog) {
		tasks = append(tasks, CategoryTasks(room, catalog, category)...)
	}

	// Ad-hoc tasks under categories the catalog no longer knows about are
	// still visible so manager additions survive catalog edits.
	known := map[string]bool{}
	for _, category := range ApplicableCategories(room, catalog) {
		known[category] = true
	}

	for _, item := range room.Checklist {
		if known[item.Category] {
			continue
		}

		if _, ok := catalog.TaskByID(item.TaskID); ok {
			continue
		}

		tasks = append(tasks, catalogModel.Task{
			ID:       item.TaskID,
			Label:    item.Label,
			Category: item.Category,
		})
	}

	return tasks
}

// CategoryTasks builds the merged, ordered task list for a single category:
// catalog tasks first, then ad-hoc checklist tasks appended in checklist
// order. This ordering defines the completion-dependency chain.
func CategoryTasks(room Room, catalog catalogModel.Catalog, category string) []catalogModel.Task {
	entry := catalog.Categories[category]

	tasks := append([]catalogModel.Task(nil), entry.Tasks...)

	inCatalog := map[string]bool{}
	for _, task := range entry.Tasks {
		inCatalog[task.ID] = true
	}

	for _, item := range room.Checklist {
		if item.Category != category || inCatalog[item.TaskID] {
			continue
		}

		tasks = append(tasks, catalogModel.Task{
			ID:       item.TaskID,
			Label:    item.Label,
			Category: category,
		})
	}

	return tasks
}

// Progress counts completed tasks over the room's visible tasks.
func Progress(room Room, catalog catalogModel.Catalog) (completed, total int) {
	tasks := VisibleTasks(room, catalog)

	for _, task := range tasks {
		if room.TaskCompleted(task.ID) {
			completed++
		}
	}

	return completed, len(tasks)
}

// FullyClean reports whether every visible task is complete and at least one
// task exists.
func FullyClean(room Room, catalog catalogModel.Catalog) bool {
	completed, total := Progress(room, catalog)

	return total > 0 && completed == total
}
