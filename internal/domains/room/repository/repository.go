package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=./mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"sort"

	"turndown/infras/otel"
	catalogModel "turndown/internal/domains/catalog/model"
	"turndown/internal/domains/room/model"
	"turndown/internal/store"
	"turndown/shared/constant"
	"turndown/shared/failure"
)

type Room interface {
	GetAll(ctx context.Context) ([]model.Room, catalogModel.Catalog, error)
	Get(ctx context.Context, number string) (model.Room, catalogModel.Catalog, error)
	ToggleTask(ctx context.Context, number, taskID, actorID string) (model.Room, catalogModel.Catalog, error)
}

type repositoryImpl struct {
	store *store.Store
	otel  otel.Otel
}

func New(st *store.Store, otel otel.Otel) Room {
	return &repositoryImpl{
		store: st,
		otel:  otel,
	}
}

func (r *repositoryImpl) GetAll(ctx context.Context) (rooms []model.Room, catalog catalogModel.Catalog, err error) {
	_, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".GetAllRooms")
	defer scope.End()
	defer scope.TraceIfError(err)

	err = r.store.View(func(state *store.State) error {
		rooms = make([]model.Room, 0, len(state.Rooms))

		for _, room := range state.Rooms {
			rooms = append(rooms, room.Clone())
		}

		catalog = state.Catalog.Clone()

		return nil
	})

	sort.Slice(rooms, func(i, j int) bool { return rooms[i].Number < rooms[j].Number })

	return rooms, catalog, err
}

func (r *repositoryImpl) Get(ctx context.Context, number string) (room model.Room, catalog catalogModel.Catalog, err error) {
	_, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".GetRoom")
	defer scope.End()
	defer scope.TraceIfError(err)

	err = r.store.View(func(state *store.State) error {
		found, ok := state.Rooms[number]
		if !ok {
			return failure.NotFound("room not found")
		}

		room = found.Clone()
		catalog = state.Catalog.Clone()

		return nil
	})

	return room, catalog, err
}

// ToggleTask flips one checklist flag inside a single critical section.
// Completing a task requires every earlier task of the same category to be
// complete already; un-completing is always allowed so a cleaner can correct
// a mistake without tearing the chain down first.
func (r *repositoryImpl) ToggleTask(ctx context.Context, number, taskID, actorID string) (room model.Room, catalog catalogModel.Catalog, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".ToggleTask")
	defer scope.End()
	defer scope.TraceIfError(err)

	err = r.store.Update(ctx, func(state *store.State) error {
		target, ok := state.Rooms[number]
		if !ok {
			return failure.NotFound("room not found")
		}

		if target.Status != model.StatusInCleaning || target.AssignedCleaner != actorID {
			return failure.PreconditionFailed("room is not being cleaned by you")
		}

		task, ok := findVisibleTask(*target, state.Catalog, taskID)
		if !ok {
			return failure.NotFound("task not found")
		}

		if target.TaskCompleted(taskID) {
			uncomplete(target, taskID)
		} else if blocker, blocked := firstIncompleteBefore(*target, state.Catalog, task); blocked {
			return failure.PreconditionFailed(fmt.Sprintf("complete %q first", blocker.Label))
		} else {
			complete(target, task)
		}

		room = target.Clone()
		catalog = state.Catalog.Clone()

		return nil
	})

	return room, catalog, err
}

func findVisibleTask(room model.Room, catalog catalogModel.Catalog, taskID string) (catalogModel.Task, bool) {
	for _, task := range model.VisibleTasks(room, catalog) {
		if task.ID == taskID {
			return task, true
		}
	}

	return catalogModel.Task{}, false
}

// firstIncompleteBefore walks the category's dependency chain up to the
// target task and returns the first unfinished predecessor.
func firstIncompleteBefore(room model.Room, catalog catalogModel.Catalog, target catalogModel.Task) (catalogModel.Task, bool) {
	for _, task := range model.CategoryTasks(room, catalog, target.Category) {
		if task.ID == target.ID {
			return catalogModel.Task{}, false
		}

		if !room.TaskCompleted(task.ID) {
			return task, true
		}
	}

	return catalogModel.Task{}, false
}

func complete(room *model.Room, task catalogModel.Task) {
	for i := range room.Checklist {
		if room.Checklist[i].TaskID == task.ID {
			room.Checklist[i].Completed = true

			return
		}
	}

	room.Checklist = append(room.Checklist, model.ChecklistItem{
		TaskID:    task.ID,
		Category:  task.Category,
		Label:     task.Label,
		Completed: true,
	})
}

func uncomplete(room *model.Room, taskID string) {
	for i := range room.Checklist {
		if room.Checklist[i].TaskID == taskID {
			room.Checklist[i].Completed = false

			return
		}
	}
}
