package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsKind(t *testing.T) {
	err := NewInsufficientStockError("Dune", 5)
	assert.True(t, IsKind(err, KindInsufficientStock))
	assert.False(t, IsKind(err, KindNotFound))
	assert.False(t, IsKind(errors.New("plain"), KindInsufficientStock))

	// Wrapped errors still match
	wrapped := fmt.Errorf("approving order: %w", err)
	assert.True(t, IsKind(wrapped, KindInsufficientStock))
}

func TestInsufficientStockMessage(t *testing.T) {
	err := NewInsufficientStockError("Dune", 5)
	assert.Equal(t, "Insufficient stock for Dune: 5 remaining", err.Error())
	assert.Equal(t, http.StatusBadRequest, err.Code)
}

func TestGetAppError(t *testing.T) {
	appErr := GetAppError(NewNotFoundError("Product"))
	assert.Equal(t, KindNotFound, appErr.Kind)
	assert.Equal(t, "Product not found", appErr.Message)

	fallback := GetAppError(errors.New("boom"))
	assert.Equal(t, KindInternal, fallback.Kind)
	assert.Equal(t, http.StatusInternalServerError, fallback.Code)
}
