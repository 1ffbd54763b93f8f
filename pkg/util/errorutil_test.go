package util

import (
	"errors"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDomainError_PassthroughAndWrapping(t *testing.T) {
	original := NewValidationError("bad input", map[string]any{"field": "name"})
	converted := ToDomainError(original)
	assert.Equal(t, "VALIDATION_FAILED", converted.Code)
	assert.Equal(t, http.StatusBadRequest, converted.HTTPStatus)

	wrapped := ToDomainError(errors.New("boom"))
	assert.Equal(t, "INTERNAL_ERROR", wrapped.Code)
	assert.Equal(t, http.StatusInternalServerError, wrapped.HTTPStatus)
}

func TestToDomainError_NoRowsBecomesNotFound(t *testing.T) {
	converted := ToDomainError(pgx.ErrNoRows)
	assert.Equal(t, "NOT_FOUND", converted.Code)
	assert.Equal(t, http.StatusNotFound, converted.HTTPStatus)
}

func TestNewAccessDenied_UniformShape(t *testing.T) {
	first := ToDomainError(NewAccessDenied())
	second := ToDomainError(NewAccessDenied())

	require.NotNil(t, first)
	assert.Equal(t, "ACCESS_DENIED", first.Code)
	assert.Equal(t, http.StatusForbidden, first.HTTPStatus)
	assert.Equal(t, first.Code, second.Code)
	assert.Equal(t, first.Message, second.Message)
	assert.Empty(t, first.Details)
}
