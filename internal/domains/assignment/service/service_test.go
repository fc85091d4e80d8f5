package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"turndown/config"
	"turndown/infras/kafka"
	kafkaMocks "turndown/infras/kafka/mocks"
	otelMocks "turndown/infras/otel/mocks"
	"turndown/internal/domains/assignment/model/dto"
	"turndown/internal/domains/assignment/repository"
	"turndown/internal/domains/assignment/service"
	cleanerModel "turndown/internal/domains/cleaner/model"
	roomModel "turndown/internal/domains/room/model"
	"turndown/internal/snapshot"
	"turndown/internal/store"
	"turndown/shared/constant"
)

func boolPtr(value bool) *bool { return &value }

func cleanerContext(id, name string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, id)

	return context.WithValue(ctx, constant.ContextKeyUserName, name)
}

func completeChecklist(t *testing.T, st *store.Store, number string) {
	t.Helper()

	err := st.Update(context.Background(), func(state *store.State) error {
		room := state.Rooms[number]

		items := []roomModel.ChecklistItem{}
		for _, task := range roomModel.VisibleTasks(*room, state.Catalog) {
			items = append(items, roomModel.ChecklistItem{
				TaskID:    task.ID,
				Category:  task.Category,
				Completed: true,
			})
		}
		room.Checklist = items

		return nil
	})
	assert.NoError(t, err)
}

func newFixture(t *testing.T, cfg *config.Config) (service.Assignment, *store.Store, *kafkaMocks.MockClient) {
	t.Helper()

	ctrl := gomock.NewController(t)
	kafkaClient := kafkaMocks.NewMockClient(ctrl)

	st := store.New(snapshot.New(&config.Config{}, nil, nil), &config.Config{})
	repo := repository.New(st, otelMocks.NewOtel())

	err := st.Update(context.Background(), func(state *store.State) error {
		state.Cleaners["c-1"] = &cleanerModel.Cleaner{ID: "c-1", Name: "Ana", Active: true}

		return nil
	})
	assert.NoError(t, err)

	return service.New(repo, cfg, otelMocks.NewOtel(), kafkaClient), st, kafkaClient
}

func TestAbandon_PublishesExceptionEvent(t *testing.T) {
	cfg := &config.Config{}
	cfg.Kafka.Enable = true
	cfg.Kafka.Topic.Exceptions = "housekeeping.exceptions"

	svc, _, kafkaClient := newFixture(t, cfg)
	ctx := cleanerContext("c-1", "Ana")

	_, err := svc.Select(ctx, dto.SelectRequest{RoomNumbers: []string{"101"}})
	assert.NoError(t, err)
	_, err = svc.Proceed(ctx)
	assert.NoError(t, err)

	kafkaClient.EXPECT().
		SendMessages(gomock.Any(), "housekeeping.exceptions", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, messages ...kafka.Message) error {
			if assert.Len(t, messages, 1) {
				assert.Equal(t, "101", messages[0].Key)
			}

			return nil
		})

	res, err := svc.Abandon(ctx, dto.AbandonRequest{RoomNumber: "101", Note: "broken lamp"})
	assert.NoError(t, err)
	assert.Equal(t, "101", res.RoomNumber)
	assert.Equal(t, "Ana", res.CleanerName)
	assert.Equal(t, "broken lamp", res.Note)
	assert.True(t, res.IsActionable)
}

func TestAbandon_NoPublishWhenKafkaDisabled(t *testing.T) {
	svc, _, _ := newFixture(t, &config.Config{})
	ctx := cleanerContext("c-1", "Ana")

	_, err := svc.Select(ctx, dto.SelectRequest{RoomNumbers: []string{"101"}})
	assert.NoError(t, err)
	_, err = svc.Proceed(ctx)
	assert.NoError(t, err)

	// No SendMessages expectation: publishing is skipped entirely.
	res, err := svc.Abandon(ctx, dto.AbandonRequest{RoomNumber: "101"})
	assert.NoError(t, err)
	assert.True(t, res.IsActionable)
}

func TestFinish_PublishesCompletionAndReturnsRemainingSession(t *testing.T) {
	cfg := &config.Config{}
	cfg.Kafka.Enable = true
	cfg.Kafka.Topic.Completions = "housekeeping.completions"

	svc, st, kafkaClient := newFixture(t, cfg)
	ctx := cleanerContext("c-1", "Ana")

	_, err := svc.Select(ctx, dto.SelectRequest{RoomNumbers: []string{"102", "103"}})
	assert.NoError(t, err)
	_, err = svc.Proceed(ctx)
	assert.NoError(t, err)

	completeChecklist(t, st, "102")

	kafkaClient.EXPECT().
		SendMessages(gomock.Any(), "housekeeping.completions", gomock.Any()).
		Return(nil)

	res, err := svc.Finish(ctx, dto.FinishRequest{RoomNumber: "102"})
	assert.NoError(t, err)

	// The finished room left the session; the other room keeps cleaning.
	if assert.Len(t, res.Rooms, 1) {
		assert.Equal(t, "103", res.Rooms[0].Number)
	}
	assert.NotEmpty(t, res.StartedAt)
}

func TestFinish_PublishFailureDoesNotFailTheWorkflow(t *testing.T) {
	cfg := &config.Config{}
	cfg.Kafka.Enable = true
	cfg.Kafka.Topic.Completions = "housekeeping.completions"

	svc, st, kafkaClient := newFixture(t, cfg)
	ctx := cleanerContext("c-1", "Ana")

	_, err := svc.Select(ctx, dto.SelectRequest{RoomNumbers: []string{"102"}})
	assert.NoError(t, err)
	_, err = svc.Proceed(ctx)
	assert.NoError(t, err)

	completeChecklist(t, st, "102")

	kafkaClient.EXPECT().
		SendMessages(gomock.Any(), "housekeeping.completions", gomock.Any()).
		Return(assert.AnError)

	res, err := svc.Finish(ctx, dto.FinishRequest{RoomNumber: "102"})
	assert.NoError(t, err)
	assert.Empty(t, res.Rooms)
}

func TestConfirm_TreatsMissingAcceptAsRejection(t *testing.T) {
	svc, _, _ := newFixture(t, &config.Config{})
	ctx := cleanerContext("m-1", "Manager")

	_, err := svc.Propose(ctx, dto.ProposeRequest{RoomNumber: "101", CleanerID: "c-1"})
	assert.NoError(t, err)

	res, err := svc.Confirm(ctx, dto.ConfirmRequest{RoomNumber: "101", Accept: boolPtr(false)})
	assert.NoError(t, err)
	assert.False(t, res.Accepted)
	assert.Equal(t, "checkout", res.Status)
}

func TestGetMessages_ActionabilityTracksRoomStatus(t *testing.T) {
	svc, _, _ := newFixture(t, &config.Config{})
	ctx := cleanerContext("c-1", "Ana")

	_, err := svc.Select(ctx, dto.SelectRequest{RoomNumbers: []string{"101"}})
	assert.NoError(t, err)
	_, err = svc.Proceed(ctx)
	assert.NoError(t, err)
	_, err = svc.Abandon(ctx, dto.AbandonRequest{RoomNumber: "101"})
	assert.NoError(t, err)

	res, err := svc.GetMessages(ctx)
	assert.NoError(t, err)
	if assert.Len(t, res.Messages, 1) {
		assert.True(t, res.Messages[0].IsActionable)
	}

	// Once the room is picked up again the message goes stale.
	_, err = svc.Select(ctx, dto.SelectRequest{RoomNumbers: []string{"101"}})
	assert.NoError(t, err)
	_, err = svc.Proceed(ctx)
	assert.NoError(t, err)

	res, err = svc.GetMessages(ctx)
	assert.NoError(t, err)
	if assert.Len(t, res.Messages, 1) {
		assert.False(t, res.Messages[0].IsActionable)
	}
}
