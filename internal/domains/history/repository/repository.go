package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=./mocks/repository_mock.go -package=mocks

import (
	"context"
	"sort"

	"turndown/infras/otel"
	"turndown/internal/domains/history/model"
	"turndown/internal/store"
	"turndown/shared/constant"
)

type History interface {
	GetCleanings(ctx context.Context, cleanerID string) ([]model.CleaningRecord, error)
	GetRoomHistory(ctx context.Context, cleanerID string) ([]model.RoomHistoryEntry, error)
}

type repositoryImpl struct {
	store *store.Store
	otel  otel.Otel
}

func New(st *store.Store, otel otel.Otel) History {
	return &repositoryImpl{
		store: st,
		otel:  otel,
	}
}

// GetCleanings returns cleaning records newest first, optionally filtered to
// one cleaner.
func (r *repositoryImpl) GetCleanings(ctx context.Context, cleanerID string) (records []model.CleaningRecord, err error) {
	_, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".GetCleanings")
	defer scope.End()
	defer scope.TraceIfError(err)

	err = r.store.View(func(state *store.State) error {
		for _, record := range state.Cleanings {
			if cleanerID == "" || record.CleanerID == cleanerID {
				records = append(records, record)
			}
		}

		return nil
	})

	sort.SliceStable(records, func(i, j int) bool { return records[i].EndedAt.After(records[j].EndedAt) })

	return records, err
}

// GetRoomHistory returns the cleaner's room pairings newest first.
func (r *repositoryImpl) GetRoomHistory(ctx context.Context, cleanerID string) (entries []model.RoomHistoryEntry, err error) {
	_, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".GetRoomHistory")
	defer scope.End()
	defer scope.TraceIfError(err)

	err = r.store.View(func(state *store.State) error {
		entries = append([]model.RoomHistoryEntry(nil), state.RoomHistory[cleanerID]...)

		return nil
	})

	sort.SliceStable(entries, func(i, j int) bool { return entries[i].RecordedAt.After(entries[j].RecordedAt) })

	return entries, err
}
