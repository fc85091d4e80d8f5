package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"turndown/config"
	"turndown/infras/otel"
	"turndown/internal/domains/cleaner/model/dto"
	"turndown/internal/domains/cleaner/repository"
	"turndown/shared/constant"
)

type Cleaner interface {
	Create(ctx context.Context, req dto.CreateCleanerRequest) (dto.CleanerResponse, error)
	Get(ctx context.Context, id string) (dto.CleanerResponse, error)
	GetAll(ctx context.Context) (dto.GetCleanersResponse, error)
	Update(ctx context.Context, req dto.UpdateCleanerRequest, id string) (dto.CleanerResponse, error)
	Deactivate(ctx context.Context, id string) (dto.DeactivateCleanerResponse, error)
}

type serviceImpl struct {
	repo repository.Cleaner
	cfg  *config.Config
	otel otel.Otel
}

func New(repo repository.Cleaner, cfg *config.Config, otel otel.Otel) Cleaner {
	return &serviceImpl{
		repo: repo,
		cfg:  cfg,
		otel: otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateCleanerRequest) (res dto.CleanerResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateCleaner")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	cleaner := req.ToModel(user)

	if err = s.repo.Insert(ctx, cleaner); err != nil {
		return res, err
	}

	log.Info().Str("cleaner_id", cleaner.ID).Msg("cleaner created")

	res.FromModel(cleaner)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.CleanerResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetCleaner")
	defer scope.End()
	defer scope.TraceIfError(err)

	cleaner, err := s.repo.Get(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(cleaner)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context) (res dto.GetCleanersResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAllCleaners")
	defer scope.End()
	defer scope.TraceIfError(err)

	cleaners, err := s.repo.GetAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to get cleaners")

		return res, fmt.Errorf("failed to get cleaners: %w", err)
	}

	res.FromModels(cleaners)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateCleanerRequest, id string) (res dto.CleanerResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateCleaner")
	defer scope.End()
	defer scope.TraceIfError(err)

	cleaner, err := s.repo.Get(ctx, id)
	if err != nil {
		return res, err
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	updated := req.Apply(cleaner, user)

	if err = s.repo.Update(ctx, updated); err != nil {
		return res, err
	}

	res.FromModel(updated)

	return res, nil
}

// Deactivate retires the cleaner and hands their waiting rooms back to the
// cleaning queue.
func (s *serviceImpl) Deactivate(ctx context.Context, id string) (res dto.DeactivateCleanerResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".DeactivateCleaner")
	defer scope.End()
	defer scope.TraceIfError(err)

	returnedRooms, err := s.repo.Deactivate(ctx, id)
	if err != nil {
		return res, err
	}

	log.Info().Str("cleaner_id", id).Strs("returned_rooms", returnedRooms).Msg("cleaner deactivated")

	res.CleanerID = id
	res.ReturnedRooms = returnedRooms

	return res, nil
}
