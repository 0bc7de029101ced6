package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError(t *testing.T) {
	t.Run("message without cause", func(t *testing.T) {
		err := BadRequest("Code não foi encontrado")
		assert.Equal(t, "Code não foi encontrado: bad request", err.Error())
		assert.ErrorIs(t, err, ErrBadRequest)
	})

	t.Run("wraps cause", func(t *testing.T) {
		cause := errors.New("connection reset")
		err := Gateway("create order", cause)
		assert.ErrorIs(t, err, cause)
		assert.Equal(t, http.StatusBadGateway, err.StatusCode)
	})

	t.Run("gateway default cause", func(t *testing.T) {
		assert.ErrorIs(t, Gateway("cancel charge", nil), ErrGateway)
	})

	t.Run("to response", func(t *testing.T) {
		resp := NotFound("order").ToResponse()
		assert.Equal(t, "NOT_FOUND", resp.Error.Code)
		assert.Equal(t, "order not found", resp.Error.Message)
	})
}

func TestGetStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"app error", Conflict("duplicated"), http.StatusConflict},
		{"wrapped app error", fmt.Errorf("handle: %w", Unavailable("")), http.StatusServiceUnavailable},
		{"sentinel not found", fmt.Errorf("find: %w", ErrNotFound), http.StatusNotFound},
		{"sentinel gateway", ErrGateway, http.StatusBadGateway},
		{"sentinel unauthorized", ErrUnauthorized, http.StatusUnauthorized},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetStatusCode(tt.err))
		})
	}
}
