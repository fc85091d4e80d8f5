package service_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"turndown/config"
	otelMocks "turndown/infras/otel/mocks"
	s3Mocks "turndown/infras/s3/mocks"
	historyModel "turndown/internal/domains/history/model"
	"turndown/internal/domains/history/repository"
	"turndown/internal/domains/history/service"
	"turndown/internal/snapshot"
	"turndown/internal/store"
	gDto "turndown/shared/dto"
	"turndown/shared/failure"
	"turndown/shared/timezone"
)

func newFixture(t *testing.T, cfg *config.Config) (service.History, *store.Store, *s3Mocks.MockS3) {
	t.Helper()

	ctrl := gomock.NewController(t)
	s3Client := s3Mocks.NewMockS3(ctrl)

	st := store.New(snapshot.New(&config.Config{}, nil, nil), &config.Config{})
	repo := repository.New(st, otelMocks.NewOtel())

	return service.New(repo, cfg, otelMocks.NewOtel(), s3Client), st, s3Client
}

func seedCleanings(t *testing.T, st *store.Store, count int) {
	t.Helper()

	base := timezone.Now().Add(-time.Duration(count) * time.Hour)

	err := st.Update(context.Background(), func(state *store.State) error {
		for i := 0; i < count; i++ {
			cleanerID := "c-1"
			if i%2 == 1 {
				cleanerID = "c-2"
			}

			state.AppendCleaning(historyModel.CleaningRecord{
				ID:         string(rune('a' + i)),
				RoomNumber: "101",
				CleanerID:  cleanerID,
				EndedAt:    base.Add(time.Duration(i) * time.Hour),
			})
		}

		return nil
	})
	assert.NoError(t, err)
}

func TestGetCleanings_PaginatedNewestFirst(t *testing.T) {
	ctx := context.Background()
	svc, st, _ := newFixture(t, &config.Config{})

	seedCleanings(t, st, 5)

	res, err := svc.GetCleanings(ctx, "", gDto.QueryParams{Page: 1, Limit: 2})
	assert.NoError(t, err)
	assert.Equal(t, 5, res.TotalData)
	assert.Equal(t, 3, res.TotalPage)

	if assert.Len(t, res.Records, 2) {
		// Newest first: the last seeded record leads.
		assert.Equal(t, "e", res.Records[0].ID)
		assert.Equal(t, "d", res.Records[1].ID)
	}

	// Past the last page comes back empty but keeps the totals.
	res, err = svc.GetCleanings(ctx, "", gDto.QueryParams{Page: 4, Limit: 2})
	assert.NoError(t, err)
	assert.Empty(t, res.Records)
	assert.Equal(t, 5, res.TotalData)
}

func TestGetCleanings_FilteredByCleaner(t *testing.T) {
	ctx := context.Background()
	svc, st, _ := newFixture(t, &config.Config{})

	seedCleanings(t, st, 4)

	res, err := svc.GetCleanings(ctx, "c-2", gDto.QueryParams{Page: 1, Limit: 10})
	assert.NoError(t, err)
	assert.Equal(t, 2, res.TotalData)

	for _, record := range res.Records {
		assert.Equal(t, "c-2", record.CleanerID)
	}
}

func TestGetRoomHistory(t *testing.T) {
	ctx := context.Background()
	svc, st, _ := newFixture(t, &config.Config{})

	_, err := svc.GetRoomHistory(ctx, "", gDto.QueryParams{Page: 1, Limit: 10})
	assert.True(t, failure.IsCode(err, http.StatusBadRequest))

	now := timezone.Now()

	err = st.Update(ctx, func(state *store.State) error {
		state.RecordRoomHistory("c-1", "101", historyModel.AssignedByManager, now.Add(-time.Hour))
		state.RecordRoomHistory("c-1", "102", historyModel.AssignedByHousekeeper, now)

		return nil
	})
	assert.NoError(t, err)

	res, err := svc.GetRoomHistory(ctx, "c-1", gDto.QueryParams{Page: 1, Limit: 10})
	assert.NoError(t, err)
	assert.Equal(t, 2, res.TotalData)

	if assert.Len(t, res.Entries, 2) {
		assert.Equal(t, "102", res.Entries[0].RoomNumber)
		assert.Equal(t, "101", res.Entries[1].RoomNumber)
		assert.Equal(t, historyModel.AssignedByManager, res.Entries[1].AssignedBy)
	}
}

func TestArchive_UploadsFullLedger(t *testing.T) {
	ctx := context.Background()

	cfg := &config.Config{}
	cfg.External.S3.BucketName = "turndown-archives"
	cfg.External.S3.ArchiveDirectory = "cleanings"

	svc, st, s3Client := newFixture(t, cfg)
	seedCleanings(t, st, 3)

	s3Client.EXPECT().
		UploadFileBytes(gomock.Any(), "turndown-archives", "cleanings", gomock.Any(), "application/json", gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _, fileName, _ string, document []byte) (string, error) {
			assert.Contains(t, fileName, "cleanings-")
			assert.Contains(t, fileName, ".json")

			var records []historyModel.CleaningRecord
			assert.NoError(t, json.Unmarshal(document, &records))
			assert.Len(t, records, 3)

			return "https://cdn.example.com/cleanings/" + fileName, nil
		})

	res, err := svc.Archive(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 3, res.RecordCount)
	assert.Contains(t, res.URL, "https://cdn.example.com/cleanings/")
}

func TestArchive_UploadFailure(t *testing.T) {
	ctx := context.Background()
	svc, _, s3Client := newFixture(t, &config.Config{})

	s3Client.EXPECT().
		UploadFileBytes(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return("", assert.AnError)

	_, err := svc.Archive(ctx)
	assert.Error(t, err)
}
