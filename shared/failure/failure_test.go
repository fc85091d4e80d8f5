package failure_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"turndown/shared/failure"
)

func TestGetCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "bad request", err: failure.BadRequestFromString("bad"), want: http.StatusBadRequest},
		{name: "not found", err: failure.NotFound("room not found"), want: http.StatusNotFound},
		{name: "state conflict", err: failure.StateConflict("room moved"), want: http.StatusConflict},
		{name: "precondition failed", err: failure.PreconditionFailed("not ready"), want: http.StatusUnprocessableEntity},
		{name: "unauthorized", err: failure.Unauthorized("no token"), want: http.StatusUnauthorized},
		{name: "plain error defaults to 500", err: fmt.Errorf("boom"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, failure.GetCode(tt.err))
		})
	}
}

func TestGetCode_Wrapped(t *testing.T) {
	err := fmt.Errorf("outer: %w", failure.PreconditionFailed("checklist is not complete"))

	assert.Equal(t, http.StatusUnprocessableEntity, failure.GetCode(err))
	assert.True(t, failure.IsCode(err, http.StatusUnprocessableEntity))
	assert.False(t, failure.IsCode(err, http.StatusConflict))
}
