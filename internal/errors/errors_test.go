package errors

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := New(http.StatusBadRequest, "TEST_CODE", "test message")
	assert.Equal(t, http.StatusBadRequest, err.StatusCode)
	assert.Equal(t, "TEST_CODE", err.ErrorCode)
	assert.Equal(t, "test message", err.Error())
}

func TestWithTrace(t *testing.T) {
	base := ErrInternalServer
	traced := base.WithTrace("abc-123")

	assert.Equal(t, "abc-123", traced.TraceID)
	// predefined errors must not be mutated
	assert.Empty(t, base.TraceID)
}

func TestRender(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	err := render.Render(w, r, ErrValidationFailed)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "VALIDATION_FAILED")
}

func TestValidationFailed(t *testing.T) {
	err := ValidationFailed([]ValidationError{{Field: "Date", Message: "required"}})
	assert.Equal(t, http.StatusBadRequest, err.StatusCode)
	fields, ok := err.Details.([]ValidationError)
	require.True(t, ok)
	assert.Equal(t, "Date", fields[0].Field)
}

func TestInvalidRequestWithError(t *testing.T) {
	err := InvalidRequestWithError(assert.AnError)
	assert.Equal(t, http.StatusBadRequest, err.StatusCode)
	assert.Equal(t, assert.AnError.Error(), err.Details)
}
