package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	t.Run("known codes map to their status", func(t *testing.T) {
		assert.Equal(t, http.StatusNotFound, GetHTTPStatus(ErrCodeNotFound))
		assert.Equal(t, http.StatusConflict, GetHTTPStatus(ErrCodeAlreadyExists))
		assert.Equal(t, http.StatusUnauthorized, GetHTTPStatus(ErrCodeUnauthorized))
		assert.Equal(t, http.StatusForbidden, GetHTTPStatus(ErrCodeForbidden))
		assert.Equal(t, http.StatusBadRequest, GetHTTPStatus(ErrCodeValidation))
		assert.Equal(t, http.StatusUnprocessableEntity, GetHTTPStatus(ErrCodeBusinessRule))
		assert.Equal(t, http.StatusTooManyRequests, GetHTTPStatus(ErrCodeRateLimited))
	})

	t.Run("unknown codes fall back to 500", func(t *testing.T) {
		assert.Equal(t, http.StatusInternalServerError, GetHTTPStatus("ERR_NO_SUCH_CODE"))
		assert.Equal(t, http.StatusInternalServerError, GetHTTPStatus(""))
	})
}

func TestNormalizeErrorCode(t *testing.T) {
	t.Run("domain codes normalize to standard codes", func(t *testing.T) {
		assert.Equal(t, ErrCodeNotFound, NormalizeErrorCode("NOT_FOUND"))
		assert.Equal(t, ErrCodeAlreadyExists, NormalizeErrorCode("EMAIL_TAKEN"))
		assert.Equal(t, ErrCodeUnauthorized, NormalizeErrorCode("INVALID_CREDENTIALS"))
		assert.Equal(t, ErrCodeForbidden, NormalizeErrorCode("FORBIDDEN"))
		assert.Equal(t, ErrCodeBusinessRule, NormalizeErrorCode("SELF_FOLLOW"))
	})

	t.Run("entity validation codes map to validation", func(t *testing.T) {
		assert.Equal(t, ErrCodeValidation, NormalizeErrorCode("INVALID_EMAIL"))
		assert.Equal(t, ErrCodeValidation, NormalizeErrorCode("INVALID_PASSWORD"))
		assert.Equal(t, ErrCodeValidation, NormalizeErrorCode("INVALID_POST"))
	})

	t.Run("already standard codes pass through", func(t *testing.T) {
		assert.Equal(t, ErrCodeNotFound, NormalizeErrorCode(ErrCodeNotFound))
		assert.Equal(t, "SOMETHING_ELSE", NormalizeErrorCode("SOMETHING_ELSE"))
	})
}

func TestErrorResponses(t *testing.T) {
	t.Run("error response carries code and message", func(t *testing.T) {
		resp := NewErrorResponse(ErrCodeNotFound, "post not found")
		assert.False(t, resp.Success)
		assert.Equal(t, ErrCodeNotFound, resp.Error.Code)
		assert.Equal(t, "post not found", resp.Error.Message)
		assert.Empty(t, resp.Error.RequestID)
	})

	t.Run("request ID is attached when provided", func(t *testing.T) {
		resp := NewErrorResponseWithRequestID(ErrCodeInternal, "boom", "req-123")
		assert.Equal(t, "req-123", resp.Error.RequestID)
	})
}
