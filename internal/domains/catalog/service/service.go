package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"sort"

	"github.com/rs/zerolog/log"

	"turndown/config"
	"turndown/infras/otel"
	"turndown/internal/domains/catalog/model"
	"turndown/internal/domains/catalog/model/dto"
	"turndown/internal/domains/catalog/repository"
	"turndown/shared/constant"
	"turndown/shared/slug"
)

type Catalog interface {
	Get(ctx context.Context) (dto.CatalogResponse, error)
	Ingest(ctx context.Context, feed dto.Feed) (dto.CatalogResponse, error)
}

type serviceImpl struct {
	repo repository.Catalog
	cfg  *config.Config
	otel otel.Otel
}

func New(repo repository.Catalog, cfg *config.Config, otel otel.Otel) Catalog {
	return &serviceImpl{
		repo: repo,
		cfg:  cfg,
		otel: otel,
	}
}

func (s *serviceImpl) Get(ctx context.Context) (res dto.CatalogResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetCatalog")
	defer scope.End()
	defer scope.TraceIfError(err)

	catalog, err := s.repo.Get(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to get catalog")

		return res, fmt.Errorf("failed to get catalog: %w", err)
	}

	res.FromModel(catalog)

	return res, nil
}

// Ingest rebuilds the catalog from the built-in default overlaid with the
// manager's feed, then bumps the version. Rebuilding from the default on
// every ingest keeps task ids deterministic for identical feeds.
func (s *serviceImpl) Ingest(ctx context.Context, feed dto.Feed) (res dto.CatalogResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".IngestCatalog")
	defer scope.End()
	defer scope.TraceIfError(err)

	current, err := s.repo.Get(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to get catalog")

		return res, fmt.Errorf("failed to get catalog: %w", err)
	}

	merged := Merge(feed)
	merged.Version = current.Version + 1

	if err = s.repo.Replace(ctx, merged); err != nil {
		log.Error().Err(err).Msg("failed to replace catalog")

		return res, fmt.Errorf("failed to replace catalog: %w", err)
	}

	log.Info().Int("version", merged.Version).Int("categories", len(merged.Order)).Msg("catalog ingested")

	res.FromModel(merged)

	return res, nil
}

// Merge overlays the feed on the default catalog. A feed category replaces
// the default category of the same name; untouched default categories are
// kept; new categories are appended in alphabetical order so ids stay stable
// regardless of map iteration.
func Merge(feed dto.Feed) model.Catalog {
	merged := model.Default()

	extra := make([]string, 0, len(feed))
	for category := range feed {
		if _, ok := merged.Categories[category]; !ok {
			extra = append(extra, category)
		}
	}

	sort.Strings(extra)
	order := append(merged.Order, extra...)

	// Task ids in default categories the feed does not replace stay allocated,
	// even before those categories are copied over.
	keptIDs := map[string]bool{}

	for category, entry := range merged.Categories {
		if _, ok := feed[category]; ok {
			continue
		}

		for _, task := range entry.Tasks {
			keptIDs[task.ID] = true
		}
	}

	catalog := model.Catalog{
		Version:    merged.Version,
		Order:      []string{},
		Categories: map[string]model.Entry{},
	}

	for _, category := range order {
		entry, fromFeed := feed[category]
		if !fromFeed {
			catalog.Order = append(catalog.Order, category)
			catalog.Categories[category] = merged.Categories[category]

			continue
		}

		tasks := make([]model.Task, 0, len(entry.Tasks))

		for _, label := range entry.Tasks {
			id := slug.MakeUnique(label, func(candidate string) bool {
				for _, task := range tasks {
					if task.ID == candidate {
						return true
					}
				}

				return keptIDs[candidate] || catalog.HasTaskID(candidate)
			})

			tasks = append(tasks, model.Task{
				ID:       id,
				Label:    label,
				Category: category,
			})
		}

		catalog.Order = append(catalog.Order, category)
		catalog.Categories[category] = model.Entry{
			RoomTypes: append([]string(nil), entry.RoomTypes...),
			Tasks:     tasks,
		}
	}

	return catalog
}
