package service_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"turndown/config"
	otelMocks "turndown/infras/otel/mocks"
	"turndown/internal/domains/catalog/model/dto"
	"turndown/internal/domains/catalog/repository"
	"turndown/internal/domains/catalog/service"
	"turndown/internal/snapshot"
	"turndown/internal/store"
)

func newService(t *testing.T) service.Catalog {
	t.Helper()

	st := store.New(snapshot.New(&config.Config{}, nil, nil), &config.Config{})
	repo := repository.New(st, otelMocks.NewOtel())

	return service.New(repo, &config.Config{}, otelMocks.NewOtel())
}

func categoryNames(res dto.CatalogResponse) []string {
	names := []string{}
	for _, entry := range res.Categories {
		names = append(names, entry.Category)
	}

	return names
}

func findCategory(res dto.CatalogResponse, name string) (dto.EntryResponse, bool) {
	for _, entry := range res.Categories {
		if entry.Category == name {
			return entry, true
		}
	}

	return dto.EntryResponse{}, false
}

func TestFeedEntry_AcceptsBothShapes(t *testing.T) {
	payload := []byte(`{
		"bedroom": ["Make bed", "Vacuum floor"],
		"balcony": {"room_types": ["suite"], "tasks": ["Sweep balcony"]}
	}`)

	feed := dto.Feed{}
	assert.NoError(t, json.Unmarshal(payload, &feed))

	// The legacy bare-array shape normalizes to an unrestricted entry.
	assert.Empty(t, feed["bedroom"].RoomTypes)
	assert.Equal(t, []string{"Make bed", "Vacuum floor"}, feed["bedroom"].Tasks)

	assert.Equal(t, []string{"suite"}, feed["balcony"].RoomTypes)
	assert.Equal(t, []string{"Sweep balcony"}, feed["balcony"].Tasks)
}

func TestIngest_OverlaysFeedOnDefault(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	res, err := svc.Ingest(ctx, dto.Feed{
		"bedroom": {Tasks: []string{"Air the room", "Make bed"}},
		"balcony": {RoomTypes: []string{"suite"}, Tasks: []string{"Sweep balcony"}},
		"attic":   {Tasks: []string{"Dust beams"}},
	})
	assert.NoError(t, err)
	assert.Equal(t, 2, res.Version)

	// Default categories keep their order; new ones follow alphabetically.
	assert.Equal(t, []string{"bedroom", "washroom", "kitchen", "attic", "balcony"}, categoryNames(res))

	// The feed replaced the default bedroom entirely.
	bedroom, ok := findCategory(res, "bedroom")
	assert.True(t, ok)
	if assert.Len(t, bedroom.Tasks, 2) {
		assert.Equal(t, "air-the-room", bedroom.Tasks[0].ID)
		assert.Equal(t, "make-bed", bedroom.Tasks[1].ID)
	}

	// Untouched default categories survive with their icons.
	washroom, ok := findCategory(res, "washroom")
	assert.True(t, ok)
	assert.Len(t, washroom.Tasks, 4)
	assert.Equal(t, "restock-towels", washroom.Tasks[0].ID)

	balcony, ok := findCategory(res, "balcony")
	assert.True(t, ok)
	assert.Equal(t, []string{"suite"}, balcony.RoomTypes)
}

func TestIngest_DisambiguatesDuplicateLabels(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	res, err := svc.Ingest(ctx, dto.Feed{
		"washroom": {Tasks: []string{"Mop floor", "Mop floor"}},
		"hallway":  {Tasks: []string{"Mop floor"}},
	})
	assert.NoError(t, err)

	// mop-floor-2 belongs to the untouched default kitchen, so the duplicate
	// label skips over it.
	washroom, _ := findCategory(res, "washroom")
	if assert.Len(t, washroom.Tasks, 2) {
		assert.Equal(t, "mop-floor", washroom.Tasks[0].ID)
		assert.Equal(t, "mop-floor-3", washroom.Tasks[1].ID)
	}

	hallway, _ := findCategory(res, "hallway")
	if assert.Len(t, hallway.Tasks, 1) {
		assert.Equal(t, "mop-floor-4", hallway.Tasks[0].ID)
	}
}

func TestIngest_VersionKeepsClimbing(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	res, err := svc.Ingest(ctx, dto.Feed{"bedroom": {Tasks: []string{"Make bed"}}})
	assert.NoError(t, err)
	assert.Equal(t, 2, res.Version)

	res, err = svc.Ingest(ctx, dto.Feed{"bedroom": {Tasks: []string{"Make bed"}}})
	assert.NoError(t, err)
	assert.Equal(t, 3, res.Version)

	// Identical feeds produce identical task ids across ingests.
	bedroom, _ := findCategory(res, "bedroom")
	assert.Equal(t, "make-bed", bedroom.Tasks[0].ID)
}
