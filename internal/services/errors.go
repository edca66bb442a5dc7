package services

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"gorm.io/gorm"
)

// Error taxonomy. Everything the services return wraps one of these
// sentinels so handlers can map them to HTTP statuses with errors.Is.
var (
	ErrValidation         = errors.New("invalid input")
	ErrIdentity           = errors.New("invalid session identity")
	ErrAuthorization      = errors.New("permission denied")
	ErrNotFound           = errors.New("not found")
	ErrBackendUnavailable = errors.New("backend unavailable")
)

// HTTPStatus maps a service error to its response status code.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrIdentity):
		return http.StatusUnauthorized
	case errors.Is(err, ErrAuthorization):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrBackendUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// StoreError classifies a persistence failure for callers outside this
// package that talk to the store directly.
func StoreError(err error) error {
	return storeErr(err)
}

// storeErr classifies a persistence-layer failure. Missing rows become
// ErrNotFound; timeouts and connectivity failures become
// ErrBackendUnavailable so callers see a 503 instead of a hang or a 500.
func storeErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	return err
}
