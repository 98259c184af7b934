// internal/pkg/errs/errors_test.go
package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		code Code
		want int
	}{
		{CodeNotFound, http.StatusNotFound},
		{CodeValidation, http.StatusBadRequest},
		{CodeInvalidTransition, http.StatusUnprocessableEntity},
		{CodeAuth, http.StatusUnauthorized},
		{CodeStorage, http.StatusInternalServerError},
		{CodeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.want, New(tt.code, "boom").HTTPStatus())
		})
	}
}

func TestIsSeesThroughWrapping(t *testing.T) {
	err := NotFound("product 7 not found")
	wrapped := fmt.Errorf("loading cart: %w", err)

	assert.True(t, Is(wrapped, CodeNotFound))
	assert.False(t, Is(wrapped, CodeValidation))
	assert.False(t, Is(nil, CodeNotFound))
	assert.False(t, Is(errors.New("plain"), CodeNotFound))
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := Storage(cause, "failed to save cart")

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, CodeStorage, From(err).Code)
}

func TestFromUnknownError(t *testing.T) {
	e := From(errors.New("plain"))

	assert.Equal(t, CodeInternal, e.Code)
	assert.Equal(t, http.StatusInternalServerError, e.HTTPStatus())
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "NOT_FOUND: order 3 not found", NotFoundf("order %d not found", 3).Error())

	cause := errors.New("timeout")
	assert.Contains(t, Storage(cause, "failed to load cart").Error(), "timeout")
}
