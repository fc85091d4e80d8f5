package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"

	"turndown/config"
	"turndown/infras/otel"
	"turndown/infras/s3"
	"turndown/internal/domains/history/model/dto"
	"turndown/internal/domains/history/repository"
	"turndown/shared"
	"turndown/shared/constant"
	gDto "turndown/shared/dto"
	"turndown/shared/failure"
	"turndown/shared/timezone"
)

type History interface {
	GetCleanings(ctx context.Context, cleanerID string, params gDto.QueryParams) (dto.GetCleaningsResponse, error)
	GetRoomHistory(ctx context.Context, cleanerID string, params gDto.QueryParams) (dto.GetRoomHistoryResponse, error)
	Archive(ctx context.Context) (dto.ArchiveResponse, error)
}

type serviceImpl struct {
	repo repository.History
	cfg  *config.Config
	otel otel.Otel
	s3   s3.S3
}

func New(repo repository.History, cfg *config.Config, otel otel.Otel, s3Client s3.S3) History {
	return &serviceImpl{
		repo: repo,
		cfg:  cfg,
		otel: otel,
		s3:   s3Client,
	}
}

func (s *serviceImpl) GetCleanings(ctx context.Context, cleanerID string, params gDto.QueryParams) (res dto.GetCleaningsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetCleanings")
	defer scope.End()
	defer scope.TraceIfError(err)

	records, err := s.repo.GetCleanings(ctx, cleanerID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get cleaning records")

		return res, fmt.Errorf("failed to get cleaning records: %w", err)
	}

	page := shared.Paginate(records, params.Page, params.Limit)
	res.FromModels(page, len(records), params.Limit)

	return res, nil
}

func (s *serviceImpl) GetRoomHistory(ctx context.Context, cleanerID string, params gDto.QueryParams) (res dto.GetRoomHistoryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetRoomHistory")
	defer scope.End()
	defer scope.TraceIfError(err)

	if cleanerID == "" {
		return res, failure.BadRequestFromString("cleaner_id is required") // nolint:wrapcheck
	}

	entries, err := s.repo.GetRoomHistory(ctx, cleanerID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get room history")

		return res, fmt.Errorf("failed to get room history: %w", err)
	}

	page := shared.Paginate(entries, params.Page, params.Limit)
	res.FromModels(page, len(entries), params.Limit)

	return res, nil
}

// Archive exports the full cleaning ledger as a JSON document to object
// storage for the reporting surface.
func (s *serviceImpl) Archive(ctx context.Context) (res dto.ArchiveResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ArchiveCleanings")
	defer scope.End()
	defer scope.TraceIfError(err)

	records, err := s.repo.GetCleanings(ctx, "")
	if err != nil {
		log.Error().Err(err).Msg("failed to get cleaning records")

		return res, fmt.Errorf("failed to get cleaning records: %w", err)
	}

	document, err := json.Marshal(records)
	if err != nil {
		log.Error().Err(err).Msg("failed to encode cleaning archive")

		return res, fmt.Errorf("failed to encode cleaning archive: %w", err)
	}

	fileName := fmt.Sprintf("cleanings-%s.json", timezone.Format(timezone.Now(), constant.DateOnlyFormat))

	url, err := s.s3.UploadFileBytes(
		ctx,
		s.cfg.External.S3.BucketName,
		s.cfg.External.S3.ArchiveDirectory,
		fileName,
		constant.ContentTypeJSON,
		document,
	)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload cleaning archive")

		return res, fmt.Errorf("failed to upload cleaning archive: %w", err)
	}

	log.Info().Str("url", url).Int("records", len(records)).Msg("cleaning archive uploaded")

	res.URL = url
	res.RecordCount = len(records)

	return res, nil
}
