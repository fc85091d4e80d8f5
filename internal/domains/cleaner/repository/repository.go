package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=./mocks/repository_mock.go -package=mocks

import (
	"context"
	"sort"

	"turndown/infras/otel"
	"turndown/internal/domains/cleaner/model"
	roomModel "turndown/internal/domains/room/model"
	"turndown/internal/store"
	"turndown/shared/constant"
	"turndown/shared/failure"
)

type Cleaner interface {
	Insert(ctx context.Context, cleaner model.Cleaner) error
	Get(ctx context.Context, id string) (model.Cleaner, error)
	GetAll(ctx context.Context) ([]model.Cleaner, error)
	Update(ctx context.Context, cleaner model.Cleaner) error
	Deactivate(ctx context.Context, id string) (returnedRooms []string, err error)
}

type repositoryImpl struct {
	store *store.Store
	otel  otel.Otel
}

func New(st *store.Store, otel otel.Otel) Cleaner {
	return &repositoryImpl{
		store: st,
		otel:  otel,
	}
}

func (r *repositoryImpl) Insert(ctx context.Context, cleaner model.Cleaner) (err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".InsertCleaner")
	defer scope.End()
	defer scope.TraceIfError(err)

	return r.store.Update(ctx, func(state *store.State) error {
		for _, existing := range state.Cleaners {
			if existing.Active && existing.NationalID == cleaner.NationalID {
				return failure.Conflict("a cleaner with this national id already exists")
			}
		}

		state.Cleaners[cleaner.ID] = &cleaner

		return nil
	})
}

func (r *repositoryImpl) Get(ctx context.Context, id string) (cleaner model.Cleaner, err error) {
	_, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".GetCleaner")
	defer scope.End()
	defer scope.TraceIfError(err)

	err = r.store.View(func(state *store.State) error {
		found, ok := state.Cleaners[id]
		if !ok {
			return failure.NotFound("cleaner not found")
		}

		cleaner = *found

		return nil
	})

	return cleaner, err
}

func (r *repositoryImpl) GetAll(ctx context.Context) (cleaners []model.Cleaner, err error) {
	_, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".GetAllCleaners")
	defer scope.End()
	defer scope.TraceIfError(err)

	err = r.store.View(func(state *store.State) error {
		cleaners = make([]model.Cleaner, 0, len(state.Cleaners))

		for _, cleaner := range state.Cleaners {
			cleaners = append(cleaners, *cleaner)
		}

		return nil
	})

	sort.Slice(cleaners, func(i, j int) bool { return cleaners[i].Name < cleaners[j].Name })

	return cleaners, err
}

func (r *repositoryImpl) Update(ctx context.Context, cleaner model.Cleaner) (err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".UpdateCleaner")
	defer scope.End()
	defer scope.TraceIfError(err)

	return r.store.Update(ctx, func(state *store.State) error {
		if _, ok := state.Cleaners[cleaner.ID]; !ok {
			return failure.NotFound("cleaner not found")
		}

		state.Cleaners[cleaner.ID] = &cleaner

		return nil
	})
}

// Deactivate retires the cleaner and returns their waiting assignments to
// the queue. Rooms already in cleaning are left alone; the abandon flow is
// the only way out of a running clean.
func (r *repositoryImpl) Deactivate(ctx context.Context, id string) (returnedRooms []string, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".DeactivateCleaner")
	defer scope.End()
	defer scope.TraceIfError(err)

	err = r.store.Update(ctx, func(state *store.State) error {
		cleaner, ok := state.Cleaners[id]
		if !ok {
			return failure.NotFound("cleaner not found")
		}

		if !cleaner.Active {
			return failure.PreconditionFailed("cleaner is already deactivated")
		}

		cleaner.Active = false

		for number, proposal := range state.Proposals {
			if proposal.CleanerID == id {
				delete(state.Proposals, number)
			}
		}

		for _, room := range state.Rooms {
			if room.AssignedCleaner == id && room.Status == roomModel.StatusAssigned {
				room.Status = roomModel.StatusCheckout
				room.AssignedCleaner = ""
				returnedRooms = append(returnedRooms, room.Number)
			}
		}

		sort.Strings(returnedRooms)

		return nil
	})

	return returnedRooms, err
}
