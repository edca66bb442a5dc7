package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatusMapping(t *testing.T) {
	cases := map[error]int{
		ErrValidation:         http.StatusBadRequest,
		ErrIdentity:           http.StatusUnauthorized,
		ErrAuthorization:      http.StatusForbidden,
		ErrNotFound:           http.StatusNotFound,
		ErrBackendUnavailable: http.StatusServiceUnavailable,
		errors.New("boom"):    http.StatusInternalServerError,
	}
	for err, want := range cases {
		assert.Equal(t, want, HTTPStatus(err))
		// Wrapped errors map the same way.
		assert.Equal(t, want, HTTPStatus(fmt.Errorf("outer: %w", err)))
	}
}

func TestCancelledContextSurfacesBackendUnavailable(t *testing.T) {
	gdb := setupDB(t)
	s := NewIdentityService(gdb, 0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Resolve(ctx, "x@example.edu", "x", "")
	assert.ErrorIs(t, err, ErrBackendUnavailable)
}
