package validator_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"turndown/shared/failure"
	"turndown/shared/validator"
)

func TestValidateVar_NationalID(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{name: "nine digits and a letter", value: "123456789X", wantErr: false},
		{name: "nine digits and lowercase letter", value: "123456789x", wantErr: false},
		{name: "twelve digits", value: "123456789012", wantErr: false},
		{name: "nine digits no letter", value: "123456789", wantErr: true},
		{name: "ten digits", value: "1234567890", wantErr: true},
		{name: "letter in the middle", value: "12345X6789", wantErr: true},
		{name: "thirteen digits", value: "1234567890123", wantErr: true},
		{name: "empty", value: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateVar(tt.value, "national_id")

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

type profileRequest struct {
	Name    string `json:"name"    validate:"required"`
	Phone   string `json:"phone"   validate:"required,numeric"`
	Email   string `json:"email"   validate:"omitempty,email"`
	Address string `json:"address" validate:"required,min=5"`
}

func TestValidate_ReportsEveryInvalidField(t *testing.T) {
	body := strings.NewReader(`{"name":"","phone":"not-a-number","email":"not-an-email","address":"x"}`)

	req := profileRequest{}
	err := validator.Validate(body, &req)

	assert.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))

	// One message per invalid field, joined.
	message := err.Error()
	assert.Contains(t, message, "Name")
	assert.Contains(t, message, "Phone")
	assert.Contains(t, message, "Email")
	assert.Contains(t, message, "Address")
}

func TestValidate_AcceptsValidPayload(t *testing.T) {
	body := strings.NewReader(`{"name":"Ana","phone":"08123456789","address":"12 Elm Street"}`)

	req := profileRequest{}

	assert.NoError(t, validator.Validate(body, &req))
}

func TestValidate_RejectsMalformedJSON(t *testing.T) {
	body := strings.NewReader(`{"name":`)

	req := profileRequest{}
	err := validator.Validate(body, &req)

	assert.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
}
