package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"

	"github.com/rs/zerolog/log"

	"turndown/config"
	"turndown/infras/kafka"
	"turndown/infras/otel"
	"turndown/internal/domains/assignment/model/dto"
	"turndown/internal/domains/assignment/repository"
	historyModel "turndown/internal/domains/history/model"
	roomModel "turndown/internal/domains/room/model"
	"turndown/shared/constant"
)

type Assignment interface {
	Propose(ctx context.Context, req dto.ProposeRequest) (dto.ProposalResponse, error)
	Confirm(ctx context.Context, req dto.ConfirmRequest) (dto.ConfirmResponse, error)
	GetSession(ctx context.Context) (dto.SessionResponse, error)
	Select(ctx context.Context, req dto.SelectRequest) (dto.SessionResponse, error)
	Deselect(ctx context.Context, req dto.DeselectRequest) (dto.SessionResponse, error)
	Proceed(ctx context.Context) (dto.SessionResponse, error)
	Abandon(ctx context.Context, req dto.AbandonRequest) (dto.MessageResponse, error)
	Finish(ctx context.Context, req dto.FinishRequest) (dto.SessionResponse, error)
	GetMessages(ctx context.Context) (dto.GetMessagesResponse, error)
}

type serviceImpl struct {
	repo  repository.Assignment
	cfg   *config.Config
	otel  otel.Otel
	kafka kafka.Client
}

func New(repo repository.Assignment, cfg *config.Config, otel otel.Otel, kafkaClient kafka.Client) Assignment {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		otel:  otel,
		kafka: kafkaClient,
	}
}

func (s *serviceImpl) Propose(ctx context.Context, req dto.ProposeRequest) (res dto.ProposalResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Propose")
	defer scope.End()
	defer scope.TraceIfError(err)

	proposal, err := s.repo.Propose(ctx, req.RoomNumber, req.CleanerID)
	if err != nil {
		return res, err
	}

	log.Info().Str("room", proposal.RoomNumber).Str("cleaner_id", proposal.CleanerID).Msg("assignment proposed")

	res.FromModel(proposal)

	return res, nil
}

func (s *serviceImpl) Confirm(ctx context.Context, req dto.ConfirmRequest) (res dto.ConfirmResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Confirm")
	defer scope.End()
	defer scope.TraceIfError(err)

	accepted := req.Accept != nil && *req.Accept

	room, alternates, err := s.repo.Confirm(ctx, req.RoomNumber, accepted)
	if err != nil {
		return res, err
	}

	log.Info().Str("room", room.Number).Bool("accepted", accepted).Msg("assignment confirmed")

	res.FromModels(room, accepted, alternates)

	return res, nil
}

func (s *serviceImpl) GetSession(ctx context.Context) (res dto.SessionResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetSession")
	defer scope.End()
	defer scope.TraceIfError(err)

	cleanerID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	session, rooms, err := s.repo.GetSession(ctx, cleanerID)
	if err != nil {
		return res, err
	}

	res.FromModel(session, rooms)

	return res, nil
}

func (s *serviceImpl) Select(ctx context.Context, req dto.SelectRequest) (res dto.SessionResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Select")
	defer scope.End()
	defer scope.TraceIfError(err)

	cleanerID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	session, err := s.repo.Select(ctx, cleanerID, req.RoomNumbers)
	if err != nil {
		return res, err
	}

	log.Info().Str("cleaner_id", cleanerID).Strs("rooms", session.Rooms).Msg("rooms selected")

	return s.sessionResponse(ctx, cleanerID)
}

func (s *serviceImpl) Deselect(ctx context.Context, req dto.DeselectRequest) (res dto.SessionResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Deselect")
	defer scope.End()
	defer scope.TraceIfError(err)

	cleanerID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if _, err = s.repo.Deselect(ctx, cleanerID, req.RoomNumber); err != nil {
		return res, err
	}

	return s.sessionResponse(ctx, cleanerID)
}

func (s *serviceImpl) Proceed(ctx context.Context) (res dto.SessionResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Proceed")
	defer scope.End()
	defer scope.TraceIfError(err)

	cleanerID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	session, rooms, err := s.repo.Proceed(ctx, cleanerID)
	if err != nil {
		return res, err
	}

	log.Info().Str("cleaner_id", cleanerID).Strs("rooms", session.Rooms).Msg("cleaning started")

	res.FromModel(session, rooms)

	return res, nil
}

func (s *serviceImpl) Abandon(ctx context.Context, req dto.AbandonRequest) (res dto.MessageResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Abandon")
	defer scope.End()
	defer scope.TraceIfError(err)

	cleanerID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	cleanerName, _ := ctx.Value(constant.ContextKeyUserName).(string)

	message, err := s.repo.Abandon(ctx, cleanerID, cleanerName, req.RoomNumber, req.Note)
	if err != nil {
		return res, err
	}

	log.Warn().Str("room", message.RoomNumber).Str("cleaner_id", cleanerID).Msg("room abandoned mid clean")

	s.publish(ctx, s.cfg.Kafka.Topic.Exceptions, message.RoomNumber, message)

	// The room just went back to checkout, so the message is actionable.
	res.FromModel(message, true)

	return res, nil
}

func (s *serviceImpl) Finish(ctx context.Context, req dto.FinishRequest) (res dto.SessionResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Finish")
	defer scope.End()
	defer scope.TraceIfError(err)

	cleanerID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	cleanerName, _ := ctx.Value(constant.ContextKeyUserName).(string)

	record, err := s.repo.Finish(ctx, cleanerID, cleanerName, req.RoomNumber)
	if err != nil {
		return res, err
	}

	log.Info().
		Str("room", record.RoomNumber).
		Str("cleaner_id", cleanerID).
		Int64("duration_seconds", record.DurationSeconds).
		Msg("room cleaning finished")

	s.publish(ctx, s.cfg.Kafka.Topic.Completions, record.RoomNumber, completionEvent(record))

	session, rooms, err := s.repo.GetSession(ctx, cleanerID)
	if err != nil {
		return res, err
	}

	res.FromModel(session, rooms)

	return res, nil
}

func (s *serviceImpl) GetMessages(ctx context.Context) (res dto.GetMessagesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetMessages")
	defer scope.End()
	defer scope.TraceIfError(err)

	messages, statuses, err := s.repo.GetMessages(ctx)
	if err != nil {
		return res, err
	}

	res.Messages = make([]dto.MessageResponse, 0, len(messages))

	for _, message := range messages {
		response := dto.MessageResponse{}
		response.FromModel(message, statuses[message.RoomNumber] == roomModel.StatusCheckout)
		res.Messages = append(res.Messages, response)
	}

	return res, nil
}

func (s *serviceImpl) sessionResponse(ctx context.Context, cleanerID string) (res dto.SessionResponse, err error) {
	session, rooms, err := s.repo.GetSession(ctx, cleanerID)
	if err != nil {
		return res, err
	}

	res.FromModel(session, rooms)

	return res, nil
}

// publish sends an event best-effort: broker trouble never fails the
// workflow write that already happened.
func (s *serviceImpl) publish(ctx context.Context, topic, key string, value any) {
	if !s.cfg.Kafka.Enable || topic == "" {
		return
	}

	if err := s.kafka.SendMessages(ctx, topic, kafka.Message{Key: key, Value: value}); err != nil {
		log.Error().Err(err).Str("topic", topic).Msg("failed to publish event")
	}
}

func completionEvent(record historyModel.CleaningRecord) map[string]any {
	return map[string]any{
		"record_id":        record.ID,
		"room_number":      record.RoomNumber,
		"cleaner_id":       record.CleanerID,
		"cleaning_date":    record.CleaningDate,
		"duration_seconds": record.DurationSeconds,
	}
}
