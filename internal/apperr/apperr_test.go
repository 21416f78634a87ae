package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/grubdash-service/internal/apperr"
	"github.com/stretchr/testify/assert"
)

func TestNotFound(t *testing.T) {
	err := apperr.NotFound("Dish", "42")

	assert.Equal(t, "Dish id not found: 42", err.Error())
	assert.Equal(t, http.StatusNotFound, err.Status())
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.NotErrorIs(t, err, apperr.ErrBadRequest)
}

func TestBadRequest(t *testing.T) {
	err := apperr.BadRequest("name", "Dish must include a name")

	assert.Equal(t, "name", err.Rule)
	assert.Equal(t, http.StatusBadRequest, err.Status())
	assert.ErrorIs(t, err, apperr.ErrBadRequest)
}

func TestStatusAndMessageOf(t *testing.T) {
	t.Run("wrapped chain error", func(t *testing.T) {
		err := fmt.Errorf("update dish: %w", apperr.BadRequest("price", "bad price"))

		assert.Equal(t, http.StatusBadRequest, apperr.StatusOf(err))
		assert.Equal(t, "bad price", apperr.MessageOf(err))
	})

	t.Run("foreign error", func(t *testing.T) {
		err := errors.New("connection reset")

		assert.Equal(t, http.StatusInternalServerError, apperr.StatusOf(err))
		assert.Equal(t, "Something went wrong!", apperr.MessageOf(err))
	})
}
