package repository_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"turndown/config"
	otelMocks "turndown/infras/otel/mocks"
	assignmentModel "turndown/internal/domains/assignment/model"
	"turndown/internal/domains/cleaner/model"
	"turndown/internal/domains/cleaner/repository"
	roomModel "turndown/internal/domains/room/model"
	"turndown/internal/snapshot"
	"turndown/internal/store"
	"turndown/shared/failure"
)

func newRepo(t *testing.T) (repository.Cleaner, *store.Store) {
	t.Helper()

	st := store.New(snapshot.New(&config.Config{}, nil, nil), &config.Config{})

	return repository.New(st, otelMocks.NewOtel()), st
}

func TestInsert_RejectsDuplicateNationalID(t *testing.T) {
	ctx := context.Background()
	repo, _ := newRepo(t)

	err := repo.Insert(ctx, model.Cleaner{ID: "c-1", Name: "Ana", NationalID: "123456789X", Active: true})
	assert.NoError(t, err)

	err = repo.Insert(ctx, model.Cleaner{ID: "c-2", Name: "Budi", NationalID: "123456789X", Active: true})
	assert.True(t, failure.IsCode(err, http.StatusConflict))

	// A deactivated cleaner frees the national id for reuse.
	_, err = repo.Deactivate(ctx, "c-1")
	assert.NoError(t, err)

	err = repo.Insert(ctx, model.Cleaner{ID: "c-3", Name: "Citra", NationalID: "123456789X", Active: true})
	assert.NoError(t, err)
}

func TestGetAll_SortedByName(t *testing.T) {
	ctx := context.Background()
	repo, _ := newRepo(t)

	for _, cleaner := range []model.Cleaner{
		{ID: "c-1", Name: "Citra", NationalID: "123456789012", Active: true},
		{ID: "c-2", Name: "Ana", NationalID: "123456789X", Active: true},
		{ID: "c-3", Name: "Budi", NationalID: "987654321Z", Active: true},
	} {
		assert.NoError(t, repo.Insert(ctx, cleaner))
	}

	cleaners, err := repo.GetAll(ctx)
	assert.NoError(t, err)

	names := []string{}
	for _, cleaner := range cleaners {
		names = append(names, cleaner.Name)
	}

	assert.Equal(t, []string{"Ana", "Budi", "Citra"}, names)
}

func TestUpdate_UnknownCleaner(t *testing.T) {
	repo, _ := newRepo(t)

	err := repo.Update(context.Background(), model.Cleaner{ID: "ghost", Name: "Ghost"})
	assert.True(t, failure.IsCode(err, http.StatusNotFound))
}

func TestDeactivate(t *testing.T) {
	ctx := context.Background()
	repo, st := newRepo(t)

	err := repo.Insert(ctx, model.Cleaner{ID: "c-1", Name: "Ana", NationalID: "123456789X", Active: true})
	assert.NoError(t, err)

	// One room waiting on the cleaner, one mid-clean, one pending proposal.
	err = st.Update(ctx, func(state *store.State) error {
		state.Rooms["101"].Status = roomModel.StatusAssigned
		state.Rooms["101"].AssignedCleaner = "c-1"

		state.Rooms["102"].Status = roomModel.StatusInCleaning
		state.Rooms["102"].AssignedCleaner = "c-1"

		state.Proposals["103"] = assignmentModel.Proposal{
			RoomNumber: "103",
			CleanerID:  "c-1",
			RoomStatus: roomModel.StatusCheckout,
		}

		return nil
	})
	assert.NoError(t, err)

	returned, err := repo.Deactivate(ctx, "c-1")
	assert.NoError(t, err)
	assert.Equal(t, []string{"101"}, returned)

	err = st.View(func(state *store.State) error {
		assert.False(t, state.Cleaners["c-1"].Active)

		// The waiting assignment went back to the queue.
		assert.Equal(t, roomModel.StatusCheckout, state.Rooms["101"].Status)
		assert.Empty(t, state.Rooms["101"].AssignedCleaner)

		// The running clean is left for the abandon flow.
		assert.Equal(t, roomModel.StatusInCleaning, state.Rooms["102"].Status)
		assert.Equal(t, "c-1", state.Rooms["102"].AssignedCleaner)

		// Pending proposals addressed to the cleaner are withdrawn.
		assert.NotContains(t, state.Proposals, "103")

		return nil
	})
	assert.NoError(t, err)

	// Deactivating twice is rejected.
	_, err = repo.Deactivate(ctx, "c-1")
	assert.True(t, failure.IsCode(err, http.StatusUnprocessableEntity))

	_, err = repo.Deactivate(ctx, "ghost")
	assert.True(t, failure.IsCode(err, http.StatusNotFound))
}
