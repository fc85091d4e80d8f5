package repository_test

import (
	"context"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"turndown/config"
	otelMocks "turndown/infras/otel/mocks"
	"turndown/internal/domains/assignment/repository"
	cleanerModel "turndown/internal/domains/cleaner/model"
	historyModel "turndown/internal/domains/history/model"
	roomModel "turndown/internal/domains/room/model"
	"turndown/internal/snapshot"
	"turndown/internal/store"
	"turndown/shared/failure"
)

func newEngine(t *testing.T) (repository.Assignment, *store.Store) {
	t.Helper()

	st := store.New(snapshot.New(&config.Config{}, nil, nil), &config.Config{})

	return repository.New(st, otelMocks.NewOtel()), st
}

func addCleaner(t *testing.T, st *store.Store, id, name string) {
	t.Helper()

	err := st.Update(context.Background(), func(state *store.State) error {
		state.Cleaners[id] = &cleanerModel.Cleaner{ID: id, Name: name, Active: true}

		return nil
	})
	assert.NoError(t, err)
}

func roomByNumber(t *testing.T, st *store.Store, number string) roomModel.Room {
	t.Helper()

	var room roomModel.Room

	err := st.View(func(state *store.State) error {
		found, ok := state.Rooms[number]
		assert.True(t, ok, "room %s should exist", number)
		room = found.Clone()

		return nil
	})
	assert.NoError(t, err)

	return room
}

func completeChecklist(t *testing.T, st *store.Store, number string) {
	t.Helper()

	err := st.Update(context.Background(), func(state *store.State) error {
		room := state.Rooms[number]

		items := []roomModel.ChecklistItem{}
		for _, task := range roomModel.VisibleTasks(*room, state.Catalog) {
			items = append(items, roomModel.ChecklistItem{
				TaskID:    task.ID,
				Category:  task.Category,
				Completed: true,
			})
		}
		room.Checklist = items

		return nil
	})
	assert.NoError(t, err)
}

func TestPropose_Validations(t *testing.T) {
	ctx := context.Background()
	engine, st := newEngine(t)
	addCleaner(t, st, "c-1", "Ana")

	t.Run("unknown room", func(t *testing.T) {
		_, err := engine.Propose(ctx, "999", "c-1")
		assert.True(t, failure.IsCode(err, http.StatusNotFound))
	})

	t.Run("unknown cleaner", func(t *testing.T) {
		_, err := engine.Propose(ctx, "101", "ghost")
		assert.True(t, failure.IsCode(err, http.StatusNotFound))
	})

	t.Run("duplicate proposal", func(t *testing.T) {
		_, err := engine.Propose(ctx, "101", "c-1")
		assert.NoError(t, err)

		_, err = engine.Propose(ctx, "101", "c-1")
		assert.True(t, failure.IsCode(err, http.StatusUnprocessableEntity))
	})

	t.Run("cleaner already holds the room", func(t *testing.T) {
		_, _, err := engine.Confirm(ctx, "101", true)
		assert.NoError(t, err)

		_, err = engine.Propose(ctx, "101", "c-1")
		assert.True(t, failure.IsCode(err, http.StatusUnprocessableEntity))
	})

	t.Run("available room needs no cleaning", func(t *testing.T) {
		err := st.Update(ctx, func(state *store.State) error {
			state.Rooms["302"].Status = roomModel.StatusAvailable

			return nil
		})
		assert.NoError(t, err)

		_, err = engine.Propose(ctx, "302", "c-1")
		assert.True(t, failure.IsCode(err, http.StatusUnprocessableEntity))
	})
}

func TestConfirm_RejectionFlow(t *testing.T) {
	ctx := context.Background()
	engine, st := newEngine(t)
	addCleaner(t, st, "c-1", "Ana")
	addCleaner(t, st, "c-2", "Budi")
	addCleaner(t, st, "c-3", "Citra")

	_, err := engine.Propose(ctx, "101", "c-1")
	assert.NoError(t, err)

	room, alternates, err := engine.Confirm(ctx, "101", false)
	assert.NoError(t, err)
	assert.Equal(t, roomModel.StatusCheckout, room.Status)

	// Alternates exclude the cleaner who just said no.
	ids := []string{}
	for _, alternate := range alternates {
		ids = append(ids, alternate.ID)
	}
	assert.ElementsMatch(t, []string{"c-2", "c-3"}, ids)

	// The same pairing cannot be proposed again.
	_, err = engine.Propose(ctx, "101", "c-1")
	assert.True(t, failure.IsCode(err, http.StatusUnprocessableEntity))

	// A different cleaner can still take the room.
	_, err = engine.Propose(ctx, "101", "c-2")
	assert.NoError(t, err)

	room, alternates, err = engine.Confirm(ctx, "101", true)
	assert.NoError(t, err)
	assert.Empty(t, alternates)
	assert.Equal(t, roomModel.StatusAssigned, room.Status)
	assert.Equal(t, "c-2", room.AssignedCleaner)

	// Acceptance is recorded in the cleaner's room history as manager-assigned.
	err = st.View(func(state *store.State) error {
		entries := state.RoomHistory["c-2"]
		if assert.Len(t, entries, 1) {
			assert.Equal(t, "101", entries[0].RoomNumber)
			assert.Equal(t, historyModel.AssignedByManager, entries[0].AssignedBy)
		}

		// Acceptance also clears the rejection memory for the room.
		_, rejected := state.LastRejected["101"]
		assert.False(t, rejected)

		return nil
	})
	assert.NoError(t, err)
}

func TestConfirm_StateConflictWhenRoomMoved(t *testing.T) {
	ctx := context.Background()
	engine, st := newEngine(t)
	addCleaner(t, st, "c-1", "Ana")
	addCleaner(t, st, "c-2", "Budi")

	_, err := engine.Propose(ctx, "101", "c-1")
	assert.NoError(t, err)

	// Another cleaner picks the room up and starts cleaning before the
	// proposal is answered.
	_, err = engine.Select(ctx, "c-2", []string{"101"})
	assert.NoError(t, err)
	_, _, err = engine.Proceed(ctx, "c-2")
	assert.NoError(t, err)

	_, _, err = engine.Confirm(ctx, "101", true)
	assert.True(t, failure.IsCode(err, http.StatusConflict))

	// The stale proposal is dropped, not retried.
	_, _, err = engine.Confirm(ctx, "101", true)
	assert.True(t, failure.IsCode(err, http.StatusNotFound))
}

func TestConfirm_ReassignsAssignedRoom(t *testing.T) {
	ctx := context.Background()
	engine, st := newEngine(t)
	addCleaner(t, st, "c-1", "Ana")
	addCleaner(t, st, "c-2", "Budi")

	_, err := engine.Propose(ctx, "101", "c-1")
	assert.NoError(t, err)
	_, _, err = engine.Confirm(ctx, "101", true)
	assert.NoError(t, err)

	// The manager can offer an already-assigned room to someone else.
	_, err = engine.Propose(ctx, "101", "c-2")
	assert.NoError(t, err)

	room, _, err := engine.Confirm(ctx, "101", true)
	assert.NoError(t, err)

	// The room stays assigned, only the holder changes.
	assert.Equal(t, roomModel.StatusAssigned, room.Status)
	assert.Equal(t, "c-2", room.AssignedCleaner)

	err = st.View(func(state *store.State) error {
		entries := state.RoomHistory["c-2"]
		if assert.Len(t, entries, 1) {
			assert.Equal(t, "101", entries[0].RoomNumber)
			assert.Equal(t, historyModel.AssignedByManager, entries[0].AssignedBy)
		}

		return nil
	})
	assert.NoError(t, err)
}

func TestConfirm_ReassignsRoomMidClean(t *testing.T) {
	ctx := context.Background()
	engine, st := newEngine(t)
	addCleaner(t, st, "c-1", "Ana")
	addCleaner(t, st, "c-2", "Budi")

	_, err := engine.Select(ctx, "c-1", []string{"101"})
	assert.NoError(t, err)
	_, _, err = engine.Proceed(ctx, "c-1")
	assert.NoError(t, err)

	before := roomByNumber(t, st, "101")

	_, err = engine.Propose(ctx, "101", "c-2")
	assert.NoError(t, err)

	room, _, err := engine.Confirm(ctx, "101", true)
	assert.NoError(t, err)

	// The clean keeps running under the new cleaner with the original timer.
	assert.Equal(t, roomModel.StatusInCleaning, room.Status)
	assert.Equal(t, "c-2", room.AssignedCleaner)
	if assert.NotNil(t, room.SessionStart) {
		assert.Equal(t, *before.SessionStart, *room.SessionStart)
	}

	// The room moved out of the old session and into the new one.
	session, _, err := engine.GetSession(ctx, "c-1")
	assert.NoError(t, err)
	assert.Empty(t, session.Rooms)
	assert.Nil(t, session.StartedAt)

	session, _, err = engine.GetSession(ctx, "c-2")
	assert.NoError(t, err)
	assert.Equal(t, []string{"101"}, session.Rooms)
	if assert.NotNil(t, session.StartedAt) {
		assert.Equal(t, *before.SessionStart, *session.StartedAt)
	}

	// The new cleaner can close the room out.
	completeChecklist(t, st, "101")

	record, err := engine.Finish(ctx, "c-2", "Budi", "101")
	assert.NoError(t, err)
	assert.Equal(t, "c-2", record.CleanerID)
}

func TestConfirm_RejectedReassignmentLeavesRoomAlone(t *testing.T) {
	ctx := context.Background()
	engine, st := newEngine(t)
	addCleaner(t, st, "c-1", "Ana")
	addCleaner(t, st, "c-2", "Budi")

	_, err := engine.Propose(ctx, "101", "c-1")
	assert.NoError(t, err)
	_, _, err = engine.Confirm(ctx, "101", true)
	assert.NoError(t, err)

	_, err = engine.Propose(ctx, "101", "c-2")
	assert.NoError(t, err)

	room, alternates, err := engine.Confirm(ctx, "101", false)
	assert.NoError(t, err)

	// The current holder keeps the room.
	assert.Equal(t, roomModel.StatusAssigned, room.Status)
	assert.Equal(t, "c-1", room.AssignedCleaner)

	ids := []string{}
	for _, alternate := range alternates {
		ids = append(ids, alternate.ID)
	}
	assert.ElementsMatch(t, []string{"c-1"}, ids)

	// The rejecting cleaner cannot be offered the room again.
	_, err = engine.Propose(ctx, "101", "c-2")
	assert.True(t, failure.IsCode(err, http.StatusUnprocessableEntity))
}

func TestSelect_BatchIsAllOrNothing(t *testing.T) {
	ctx := context.Background()
	engine, st := newEngine(t)
	addCleaner(t, st, "c-1", "Ana")
	addCleaner(t, st, "c-2", "Budi")

	// Room 201 gets assigned to another cleaner; batches touching it fail
	// entirely.
	_, err := engine.Propose(ctx, "201", "c-2")
	assert.NoError(t, err)
	_, _, err = engine.Confirm(ctx, "201", true)
	assert.NoError(t, err)

	_, err = engine.Select(ctx, "c-1", []string{"101", "201"})
	assert.True(t, failure.IsCode(err, http.StatusUnprocessableEntity))

	// Nothing was picked up.
	session, _, err := engine.GetSession(ctx, "c-1")
	assert.NoError(t, err)
	assert.Empty(t, session.Rooms)

	// A cleaner can pick up a room assigned to them, mixed with checkout
	// rooms, and re-selecting is a no-op.
	session, err = engine.Select(ctx, "c-2", []string{"101", "201"})
	assert.NoError(t, err)
	assert.Equal(t, []string{"101", "201"}, session.Rooms)

	session, err = engine.Select(ctx, "c-2", []string{"201"})
	assert.NoError(t, err)
	assert.Equal(t, []string{"101", "201"}, session.Rooms)

	// Rooms in another cleaner's selection are off limits even in checkout.
	_, err = engine.Select(ctx, "c-1", []string{"101"})
	assert.True(t, failure.IsCode(err, http.StatusUnprocessableEntity))
}

func TestDeselect(t *testing.T) {
	ctx := context.Background()
	engine, st := newEngine(t)
	addCleaner(t, st, "c-1", "Ana")

	// Removing from an empty selection is a no-op, not an error.
	session, err := engine.Deselect(ctx, "c-1", "101")
	assert.NoError(t, err)
	assert.Empty(t, session.Rooms)

	_, err = engine.Select(ctx, "c-1", []string{"101", "102"})
	assert.NoError(t, err)

	// So is removing a room that was never selected.
	session, err = engine.Deselect(ctx, "c-1", "203")
	assert.NoError(t, err)
	assert.Equal(t, []string{"101", "102"}, session.Rooms)

	session, err = engine.Deselect(ctx, "c-1", "102")
	assert.NoError(t, err)
	assert.Equal(t, []string{"101"}, session.Rooms)

	// Once cleaning started the room can only be abandoned.
	_, _, err = engine.Proceed(ctx, "c-1")
	assert.NoError(t, err)

	_, err = engine.Deselect(ctx, "c-1", "101")
	assert.True(t, failure.IsCode(err, http.StatusUnprocessableEntity))
}

func TestProceed_BatchSharesOneStart(t *testing.T) {
	ctx := context.Background()
	engine, st := newEngine(t)
	addCleaner(t, st, "c-1", "Ana")

	_, _, err := engine.Proceed(ctx, "c-1")
	assert.True(t, failure.IsCode(err, http.StatusUnprocessableEntity))

	_, err = engine.Select(ctx, "c-1", []string{"101", "102", "103"})
	assert.NoError(t, err)

	session, rooms, err := engine.Proceed(ctx, "c-1")
	assert.NoError(t, err)
	assert.NotNil(t, session.StartedAt)

	for _, number := range []string{"101", "102", "103"} {
		room := rooms[number]
		assert.Equal(t, roomModel.StatusInCleaning, room.Status)
		assert.Equal(t, "c-1", room.AssignedCleaner)
		if assert.NotNil(t, room.SessionStart) {
			assert.Equal(t, *session.StartedAt, *room.SessionStart)
		}
	}

	// Self-selected checkout rooms are recorded as housekeeper-assigned.
	err = st.View(func(state *store.State) error {
		entries := state.RoomHistory["c-1"]
		assert.Len(t, entries, 3)

		for _, entry := range entries {
			assert.Equal(t, historyModel.AssignedByHousekeeper, entry.AssignedBy)
		}

		return nil
	})
	assert.NoError(t, err)

	// Adding a room later and proceeding again keeps the session start.
	firstStart := *session.StartedAt

	_, err = engine.Select(ctx, "c-1", []string{"201"})
	assert.NoError(t, err)

	session, rooms, err = engine.Proceed(ctx, "c-1")
	assert.NoError(t, err)
	assert.Equal(t, firstStart, *session.StartedAt)
	assert.Equal(t, roomModel.StatusInCleaning, rooms["201"].Status)
}

func TestProceed_ConflictWhenRoomMovedSinceSelection(t *testing.T) {
	ctx := context.Background()
	engine, st := newEngine(t)
	addCleaner(t, st, "c-1", "Ana")
	addCleaner(t, st, "c-2", "Budi")

	_, err := engine.Select(ctx, "c-1", []string{"101"})
	assert.NoError(t, err)

	// The room is assigned out from under the selection.
	err = st.Update(ctx, func(state *store.State) error {
		state.Rooms["101"].Status = roomModel.StatusAssigned
		state.Rooms["101"].AssignedCleaner = "c-2"

		return nil
	})
	assert.NoError(t, err)

	_, _, err = engine.Proceed(ctx, "c-1")
	assert.True(t, failure.IsCode(err, http.StatusConflict))
}

// A reader running concurrently with Proceed must never observe a batch with
// some rooms started and others not, nor an in-cleaning room without a start
// timestamp.
func TestProceed_ReadersNeverSeeHalfStartedBatch(t *testing.T) {
	ctx := context.Background()
	engine, st := newEngine(t)
	addCleaner(t, st, "c-1", "Ana")

	batch := []string{"101", "102", "103"}

	_, err := engine.Select(ctx, "c-1", batch)
	assert.NoError(t, err)

	done := make(chan struct{})
	violations := make(chan string, 16)

	var wg sync.WaitGroup

	wg.Add(1)

	go func() {
		defer wg.Done()

		for {
			select {
			case <-done:
				return
			default:
			}

			_ = st.View(func(state *store.State) error {
				started := 0

				for _, number := range batch {
					room := state.Rooms[number]

					if room.Status == roomModel.StatusInCleaning {
						started++

						if room.SessionStart == nil {
							violations <- "in-cleaning room without session start"
						}
					}
				}

				if started != 0 && started != len(batch) {
					violations <- "half-started batch observed"
				}

				return nil
			})
		}
	}()

	_, _, err = engine.Proceed(ctx, "c-1")
	assert.NoError(t, err)

	close(done)
	wg.Wait()
	close(violations)

	for violation := range violations {
		t.Error(violation)
	}
}

func TestAbandon(t *testing.T) {
	ctx := context.Background()
	engine, st := newEngine(t)
	addCleaner(t, st, "c-1", "Ana")
	addCleaner(t, st, "c-2", "Budi")

	_, err := engine.Abandon(ctx, "c-1", "Ana", "101", "flooded")
	assert.True(t, failure.IsCode(err, http.StatusNotFound))

	_, err = engine.Select(ctx, "c-1", []string{"101"})
	assert.NoError(t, err)

	// Selected but not proceeded: nothing to abandon yet.
	_, err = engine.Abandon(ctx, "c-1", "Ana", "101", "flooded")
	assert.True(t, failure.IsCode(err, http.StatusUnprocessableEntity))

	_, _, err = engine.Proceed(ctx, "c-1")
	assert.NoError(t, err)

	// Partial progress survives the abandon.
	err = st.Update(ctx, func(state *store.State) error {
		state.Rooms["101"].Checklist = []roomModel.ChecklistItem{
			{TaskID: "strip-linens", Category: "bedroom", Completed: true},
		}

		return nil
	})
	assert.NoError(t, err)

	message, err := engine.Abandon(ctx, "c-1", "Ana", "101", "bathroom flooded")
	assert.NoError(t, err)
	assert.NotEmpty(t, message.ID)
	assert.Equal(t, "101", message.RoomNumber)
	assert.Equal(t, "Ana", message.CleanerName)
	assert.Equal(t, "bathroom flooded", message.Note)

	room := roomByNumber(t, st, "101")
	assert.Equal(t, roomModel.StatusCheckout, room.Status)
	assert.Empty(t, room.AssignedCleaner)
	assert.Nil(t, room.SessionStart)
	assert.Len(t, room.Checklist, 1)

	// The session ended with its last room.
	session, _, err := engine.GetSession(ctx, "c-1")
	assert.NoError(t, err)
	assert.Empty(t, session.Rooms)
	assert.Nil(t, session.StartedAt)

	// The message is actionable while the room sits in checkout and stops
	// being actionable once someone else picks it up.
	messages, statuses, err := engine.GetMessages(ctx)
	assert.NoError(t, err)
	assert.Len(t, messages, 1)
	assert.Equal(t, roomModel.StatusCheckout, statuses["101"])

	_, err = engine.Select(ctx, "c-2", []string{"101"})
	assert.NoError(t, err)
	_, _, err = engine.Proceed(ctx, "c-2")
	assert.NoError(t, err)

	messages, statuses, err = engine.GetMessages(ctx)
	assert.NoError(t, err)
	assert.Len(t, messages, 1)
	assert.Equal(t, roomModel.StatusInCleaning, statuses["101"])
}

func TestFinish(t *testing.T) {
	ctx := context.Background()
	engine, st := newEngine(t)
	addCleaner(t, st, "c-1", "Ana")

	_, err := engine.Select(ctx, "c-1", []string{"102", "103"})
	assert.NoError(t, err)
	_, _, err = engine.Proceed(ctx, "c-1")
	assert.NoError(t, err)

	// The dependency chains must be fully worked through first.
	_, err = engine.Finish(ctx, "c-1", "Ana", "102")
	assert.True(t, failure.IsCode(err, http.StatusUnprocessableEntity))

	completeChecklist(t, st, "102")

	record, err := engine.Finish(ctx, "c-1", "Ana", "102")
	assert.NoError(t, err)
	assert.NotEmpty(t, record.ID)
	assert.Equal(t, "102", record.RoomNumber)
	assert.Equal(t, "Standard Twin", record.RoomType)
	assert.Equal(t, 1, record.Floor)
	assert.Equal(t, "c-1", record.CleanerID)
	assert.Equal(t, "Ana", record.CleanerName)
	assert.NotEmpty(t, record.CleaningDate)
	assert.GreaterOrEqual(t, record.DurationSeconds, int64(0))
	assert.Len(t, record.CompletedTasks, 8)

	// The room resets for the next guest.
	room := roomByNumber(t, st, "102")
	assert.Equal(t, roomModel.StatusAvailable, room.Status)
	assert.Empty(t, room.AssignedCleaner)
	assert.Nil(t, room.SessionStart)
	assert.Empty(t, room.Checklist)

	// One room left, session still alive.
	session, _, err := engine.GetSession(ctx, "c-1")
	assert.NoError(t, err)
	assert.Equal(t, []string{"103"}, session.Rooms)
	assert.NotNil(t, session.StartedAt)

	completeChecklist(t, st, "103")

	_, err = engine.Finish(ctx, "c-1", "Ana", "103")
	assert.NoError(t, err)

	session, _, err = engine.GetSession(ctx, "c-1")
	assert.NoError(t, err)
	assert.Empty(t, session.Rooms)
	assert.Nil(t, session.StartedAt)

	// Both cleanings landed in the append-only ledger.
	err = st.View(func(state *store.State) error {
		assert.Len(t, state.Cleanings, 2)

		return nil
	})
	assert.NoError(t, err)
}

func TestFinish_OnlyTheAssignedCleanerCanFinish(t *testing.T) {
	ctx := context.Background()
	engine, st := newEngine(t)
	addCleaner(t, st, "c-1", "Ana")
	addCleaner(t, st, "c-2", "Budi")

	_, err := engine.Select(ctx, "c-1", []string{"101"})
	assert.NoError(t, err)
	_, _, err = engine.Proceed(ctx, "c-1")
	assert.NoError(t, err)

	completeChecklist(t, st, "101")

	_, err = engine.Finish(ctx, "c-2", "Budi", "101")
	assert.True(t, failure.IsCode(err, http.StatusNotFound))
}
