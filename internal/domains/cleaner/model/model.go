package model

import "turndown/shared/model"

const (
	EntityName = "cleaner"
)

type Cleaner struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Email      string `json:"email,omitempty"`
	NationalID string `json:"national_id"`
	Address    string `json:"address"`
	Active     bool   `json:"active"`
	model.Metadata
}
