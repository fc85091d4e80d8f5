package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=./mocks/repository_mock.go -package=mocks

import (
	"context"

	"turndown/infras/otel"
	"turndown/internal/domains/catalog/model"
	"turndown/internal/store"
	"turndown/shared/constant"
)

type Catalog interface {
	Get(ctx context.Context) (model.Catalog, error)
	Replace(ctx context.Context, catalog model.Catalog) error
}

type repositoryImpl struct {
	store *store.Store
	otel  otel.Otel
}

func New(st *store.Store, otel otel.Otel) Catalog {
	return &repositoryImpl{
		store: st,
		otel:  otel,
	}
}

func (r *repositoryImpl) Get(ctx context.Context) (catalog model.Catalog, err error) {
	_, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".GetCatalog")
	defer scope.End()
	defer scope.TraceIfError(err)

	err = r.store.View(func(state *store.State) error {
		catalog = state.Catalog.Clone()

		return nil
	})

	return catalog, err
}

func (r *repositoryImpl) Replace(ctx context.Context, catalog model.Catalog) (err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".ReplaceCatalog")
	defer scope.End()
	defer scope.TraceIfError(err)

	return r.store.Update(ctx, func(state *store.State) error {
		state.Catalog = catalog.Clone()

		return nil
	})
}
