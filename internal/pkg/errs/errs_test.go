package errs

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewError(t *testing.T) {
	tests := []struct {
		name       string
		code       int
		wantCode   int
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "empty name defaults to bad request",
			code:       ErrEmptyName,
			wantCode:   ErrEmptyName,
			wantStatus: http.StatusBadRequest,
			wantMsg:    "Name cannot be empty!",
		},
		{
			name:       "name taken is a conflict",
			code:       ErrNameTaken,
			wantCode:   ErrNameTaken,
			wantStatus: http.StatusConflict,
			wantMsg:    "This name is already taken!",
		},
		{
			name:       "unknown code falls back to ErrUnknown",
			code:       424242,
			wantCode:   ErrUnknown,
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "Something went wrong. Please try again.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewError(tt.code)

			assert.Equal(t, tt.wantCode, err.Code)
			assert.Equal(t, tt.wantStatus, err.Status)
			assert.Equal(t, tt.wantMsg, err.Message)
		})
	}
}

func TestNewErrorReturnsCopy(t *testing.T) {
	first := NewError(ErrEmptyName)
	first.Message = "mutated"

	second := NewError(ErrEmptyName)
	assert.Equal(t, "Name cannot be empty!", second.Message)
}
