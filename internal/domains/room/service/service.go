package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"turndown/config"
	"turndown/infras/otel"
	"turndown/internal/domains/room/model/dto"
	"turndown/internal/domains/room/repository"
	"turndown/shared/constant"
)

type Room interface {
	GetAll(ctx context.Context) (dto.GetRoomsResponse, error)
	Get(ctx context.Context, number string) (dto.RoomDetailResponse, error)
	ToggleTask(ctx context.Context, number, taskID string) (dto.RoomDetailResponse, error)
}

type serviceImpl struct {
	repo repository.Room
	cfg  *config.Config
	otel otel.Otel
}

func New(repo repository.Room, cfg *config.Config, otel otel.Otel) Room {
	return &serviceImpl{
		repo: repo,
		cfg:  cfg,
		otel: otel,
	}
}

func (s *serviceImpl) GetAll(ctx context.Context) (res dto.GetRoomsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAllRooms")
	defer scope.End()
	defer scope.TraceIfError(err)

	rooms, catalog, err := s.repo.GetAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to get rooms")

		return res, fmt.Errorf("failed to get rooms: %w", err)
	}

	res.FromModels(rooms, catalog)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, number string) (res dto.RoomDetailResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetRoom")
	defer scope.End()
	defer scope.TraceIfError(err)

	room, catalog, err := s.repo.Get(ctx, number)
	if err != nil {
		return res, err
	}

	res.FromModel(room, catalog)

	return res, nil
}

func (s *serviceImpl) ToggleTask(ctx context.Context, number, taskID string) (res dto.RoomDetailResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ToggleTask")
	defer scope.End()
	defer scope.TraceIfError(err)

	actor, _ := ctx.Value(constant.ContextKeyUserID).(string)

	room, catalog, err := s.repo.ToggleTask(ctx, number, taskID, actor)
	if err != nil {
		return res, err
	}

	res.FromModel(room, catalog)

	return res, nil
}
