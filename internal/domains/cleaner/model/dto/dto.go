package dto

import (
	"turndown/internal/domains/cleaner/model"
	gDto "turndown/shared/dto"
	gModel "turndown/shared/model"
	"turndown/shared/timezone"

	"github.com/google/uuid"
)

type CreateCleanerRequest struct {
	Name       string `json:"name"        validate:"required"`
	Phone      string `json:"phone"       validate:"required,numeric"`
	Email      string `json:"email"       validate:"omitempty,email"`
	NationalID string `json:"national_id" validate:"required,national_id"`
	Address    string `json:"address"     validate:"required,min=5"`
}

func (r CreateCleanerRequest) ToModel(createdBy string) model.Cleaner {
	now := timezone.Now()

	return model.Cleaner{
		ID:         uuid.New().String(),
		Name:       r.Name,
		Phone:      r.Phone,
		Email:      r.Email,
		NationalID: r.NationalID,
		Address:    r.Address,
		Active:     true,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  createdBy,
			ModifiedBy: createdBy,
		},
	}
}

type UpdateCleanerRequest struct {
	Name       string `json:"name"        validate:"omitempty"`
	Phone      string `json:"phone"       validate:"omitempty,numeric"`
	Email      string `json:"email"       validate:"omitempty,email"`
	NationalID string `json:"national_id" validate:"omitempty,national_id"`
	Address    string `json:"address"     validate:"omitempty,min=5"`
}

// Apply overlays the non-empty request fields onto the existing profile.
func (r UpdateCleanerRequest) Apply(cleaner model.Cleaner, modifiedBy string) model.Cleaner {
	if r.Name != "" {
		cleaner.Name = r.Name
	}

	if r.Phone != "" {
		cleaner.Phone = r.Phone
	}

	if r.Email != "" {
		cleaner.Email = r.Email
	}

	if r.NationalID != "" {
		cleaner.NationalID = r.NationalID
	}

	if r.Address != "" {
		cleaner.Address = r.Address
	}

	cleaner.ModifiedAt = timezone.Now()
	cleaner.ModifiedBy = modifiedBy

	return cleaner
}

type CleanerResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Email      string `json:"email,omitempty"`
	NationalID string `json:"national_id"`
	Address    string `json:"address"`
	Active     bool   `json:"active"`
	gDto.Metadata
}

func (r *CleanerResponse) FromModel(cleaner model.Cleaner) {
	r.ID = cleaner.ID
	r.Name = cleaner.Name
	r.Phone = cleaner.Phone
	r.Email = cleaner.Email
	r.NationalID = cleaner.NationalID
	r.Address = cleaner.Address
	r.Active = cleaner.Active
	r.Metadata.FromModel(cleaner.Metadata)
}

type DeactivateCleanerResponse struct {
	CleanerID     string   `json:"cleaner_id"`
	ReturnedRooms []string `json:"returned_rooms"`
}

type GetCleanersResponse struct {
	Cleaners []CleanerResponse `json:"cleaners"`
}

func (r *GetCleanersResponse) FromModels(cleaners []model.Cleaner) {
	r.Cleaners = make([]CleanerResponse, 0, len(cleaners))

	for _, cleaner := range cleaners {
		response := CleanerResponse{}
		response.FromModel(cleaner)
		r.Cleaners = append(r.Cleaners, response)
	}
}
