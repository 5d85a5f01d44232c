// Copyright (c) 2026 PressArt. All rights reserved.

package respond_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pressart/storefront/internal/platform/apperr"
	"github.com/pressart/storefront/internal/platform/respond"
	"github.com/pressart/storefront/pkg/pagination"
)

/*
TestError tests the mapping of errors onto the JSON error envelope.
*/
func TestError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantError  string
		wantFields int
	}{
		{
			name:       "validation",
			err:        apperr.ValidationError("Validation failed", apperr.FieldError{Field: "quantity", Message: "Must be between 1 and 99"}),
			wantStatus: http.StatusBadRequest,
			wantCode:   apperr.CodeValidation,
			wantError:  "Validation failed",
			wantFields: 1,
		},
		{
			name:       "storage_down",
			err:        apperr.ServiceUnavailable("Your cart is temporarily unavailable. Please try again."),
			wantStatus: http.StatusServiceUnavailable,
			wantCode:   apperr.CodeServiceUnavailable,
			wantError:  "Your cart is temporarily unavailable. Please try again.",
		},
		{
			name:       "unexpected",
			err:        errors.New("disk on fire"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   apperr.CodeInternal,
			wantError:  "An unexpected error occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			request := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)

			respond.Error(recorder, request, tt.err)

			assert.Equal(t, tt.wantStatus, recorder.Code)
			assert.Equal(t, "application/json; charset=utf-8", recorder.Header().Get("Content-Type"))

			var envelope respond.ErrorEnvelope
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
			assert.Equal(t, tt.wantCode, envelope.Code)
			assert.Equal(t, tt.wantError, envelope.Error)
			assert.Len(t, envelope.Details, tt.wantFields)
		})
	}
}

/*
TestPaginated tests that list responses carry the metadata block.
*/
func TestPaginated(t *testing.T) {
	recorder := httptest.NewRecorder()

	respond.Paginated(recorder, []string{"LOL-01"}, pagination.NewMeta(2, 1, 3))

	assert.Equal(t, http.StatusOK, recorder.Code)
	var envelope struct {
		Data []string        `json:"data"`
		Meta pagination.Meta `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	assert.Equal(t, []string{"LOL-01"}, envelope.Data)
	assert.Equal(t, 3, envelope.Meta.TotalPages)
}
