package repository_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"turndown/config"
	otelMocks "turndown/infras/otel/mocks"
	"turndown/internal/domains/room/model"
	"turndown/internal/domains/room/repository"
	"turndown/internal/snapshot"
	"turndown/internal/store"
	"turndown/shared/failure"
)

func newRepo(t *testing.T) (repository.Room, *store.Store) {
	t.Helper()

	st := store.New(snapshot.New(&config.Config{}, nil, nil), &config.Config{})

	return repository.New(st, otelMocks.NewOtel()), st
}

// startCleaning puts the room mid-clean for the given cleaner without going
// through the assignment engine.
func startCleaning(t *testing.T, st *store.Store, number, cleanerID string) {
	t.Helper()

	err := st.Update(context.Background(), func(state *store.State) error {
		room := state.Rooms[number]
		room.Status = model.StatusInCleaning
		room.AssignedCleaner = cleanerID

		return nil
	})
	assert.NoError(t, err)
}

func TestGetAll_SortedByNumber(t *testing.T) {
	ctx := context.Background()
	repo, _ := newRepo(t)

	rooms, catalog, err := repo.GetAll(ctx)
	assert.NoError(t, err)
	assert.NotEmpty(t, rooms)
	assert.NotEmpty(t, catalog.Order)

	for i := 1; i < len(rooms); i++ {
		assert.Less(t, rooms[i-1].Number, rooms[i].Number)
	}
}

func TestGet_UnknownRoom(t *testing.T) {
	repo, _ := newRepo(t)

	_, _, err := repo.Get(context.Background(), "999")
	assert.True(t, failure.IsCode(err, http.StatusNotFound))
}

func TestToggleTask_OnlyMidCleanByTheAssignedCleaner(t *testing.T) {
	ctx := context.Background()
	repo, st := newRepo(t)

	// Room still in checkout: nobody can tick tasks.
	_, _, err := repo.ToggleTask(ctx, "101", "strip-linens", "c-1")
	assert.True(t, failure.IsCode(err, http.StatusUnprocessableEntity))

	startCleaning(t, st, "101", "c-1")

	// Another cleaner cannot touch the checklist.
	_, _, err = repo.ToggleTask(ctx, "101", "strip-linens", "c-2")
	assert.True(t, failure.IsCode(err, http.StatusUnprocessableEntity))

	room, _, err := repo.ToggleTask(ctx, "101", "strip-linens", "c-1")
	assert.NoError(t, err)
	assert.True(t, room.TaskCompleted("strip-linens"))
}

func TestToggleTask_DependencyChain(t *testing.T) {
	ctx := context.Background()
	repo, st := newRepo(t)

	startCleaning(t, st, "101", "c-1")

	// Completing out of order names the first unfinished predecessor.
	_, _, err := repo.ToggleTask(ctx, "101", "make-bed", "c-1")
	assert.True(t, failure.IsCode(err, http.StatusUnprocessableEntity))
	assert.Contains(t, err.Error(), "Strip linens")

	_, _, err = repo.ToggleTask(ctx, "101", "strip-linens", "c-1")
	assert.NoError(t, err)

	room, _, err := repo.ToggleTask(ctx, "101", "make-bed", "c-1")
	assert.NoError(t, err)
	assert.True(t, room.TaskCompleted("make-bed"))

	// Chains are independent per category: the washroom opener is not
	// blocked by unfinished bedroom tasks.
	room, _, err = repo.ToggleTask(ctx, "101", "restock-towels", "c-1")
	assert.NoError(t, err)
	assert.True(t, room.TaskCompleted("restock-towels"))
}

func TestToggleTask_UncompleteIsAlwaysAllowed(t *testing.T) {
	ctx := context.Background()
	repo, st := newRepo(t)

	startCleaning(t, st, "101", "c-1")

	_, _, err := repo.ToggleTask(ctx, "101", "strip-linens", "c-1")
	assert.NoError(t, err)
	_, _, err = repo.ToggleTask(ctx, "101", "make-bed", "c-1")
	assert.NoError(t, err)

	// Unticking an earlier task does not require tearing down later ones.
	room, _, err := repo.ToggleTask(ctx, "101", "strip-linens", "c-1")
	assert.NoError(t, err)
	assert.False(t, room.TaskCompleted("strip-linens"))
	assert.True(t, room.TaskCompleted("make-bed"))

	room, _, err = repo.ToggleTask(ctx, "101", "strip-linens", "c-1")
	assert.NoError(t, err)
	assert.True(t, room.TaskCompleted("strip-linens"))
}

func TestToggleTask_KitchenOnlyOnSuiteLikeRooms(t *testing.T) {
	ctx := context.Background()
	repo, st := newRepo(t)

	// 101 is a Deluxe King: the kitchen category does not apply.
	startCleaning(t, st, "101", "c-1")

	_, _, err := repo.ToggleTask(ctx, "101", "wash-dishes", "c-1")
	assert.True(t, failure.IsCode(err, http.StatusNotFound))

	// 301 is a Suite: kitchen tasks are visible there.
	startCleaning(t, st, "301", "c-1")

	room, _, err := repo.ToggleTask(ctx, "301", "wash-dishes", "c-1")
	assert.NoError(t, err)
	assert.True(t, room.TaskCompleted("wash-dishes"))
}

func TestToggleTask_AdHocTasksJoinTheChain(t *testing.T) {
	ctx := context.Background()
	repo, st := newRepo(t)

	startCleaning(t, st, "101", "c-1")

	// A manager-added ad-hoc task sits at the end of its category's chain.
	err := st.Update(ctx, func(state *store.State) error {
		room := state.Rooms["101"]
		room.Checklist = append(room.Checklist, model.ChecklistItem{
			TaskID:   "shampoo-carpet",
			Category: "bedroom",
			Label:    "Shampoo carpet",
		})

		return nil
	})
	assert.NoError(t, err)

	// It is blocked until the catalog tasks before it are done.
	_, _, err = repo.ToggleTask(ctx, "101", "shampoo-carpet", "c-1")
	assert.True(t, failure.IsCode(err, http.StatusUnprocessableEntity))

	for _, taskID := range []string{"strip-linens", "make-bed", "dust-surfaces", "vacuum-floor"} {
		_, _, err = repo.ToggleTask(ctx, "101", taskID, "c-1")
		assert.NoError(t, err)
	}

	room, _, err := repo.ToggleTask(ctx, "101", "shampoo-carpet", "c-1")
	assert.NoError(t, err)
	assert.True(t, room.TaskCompleted("shampoo-carpet"))
}
