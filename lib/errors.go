package lib

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/uptrace/bun/driver/pgdriver"
)

// Database errors
var (
	ErrConflict = errors.New("conflict")
	ErrNotFound = errors.New("not found")
)

// Auth errors
var (
	ErrInvalidToken       = errors.New("invalid token")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotApproved        = errors.New("account pending approval")
)

// Quote submission errors
var (
	// ErrInvalidQuote means the quote cannot be submitted as an order:
	// missing client name or empty item list. Caught before any network call.
	ErrInvalidQuote = errors.New("quote not valid for submission")

	// ErrContactResolution means neither the contact search nor the create
	// produced a usable external contact id.
	ErrContactResolution = errors.New("contact could not be resolved")
)

// IntegrationError wraps a failed outbound ERP call (token refresh, contact
// search/create, order submit). Status carries the upstream HTTP status when
// one is available, so handlers can surface an equivalent response.
type IntegrationError struct {
	Status  int
	Message string
	Err     error
}

func (e *IntegrationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "integration unavailable"
}

func (e *IntegrationError) Unwrap() error { return e.Err }

// NewIntegrationError builds an IntegrationError; status 0 means unknown and
// is reported as 502 to callers.
func NewIntegrationError(status int, format string, args ...any) *IntegrationError {
	return &IntegrationError{Status: status, Message: fmt.Sprintf(format, args...)}
}

// StatusFromError maps the error taxonomy to an HTTP status code.
func StatusFromError(err error) int {
	var integ *IntegrationError
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidQuote):
		return http.StatusBadRequest
	case errors.Is(err, ErrContactResolution):
		return http.StatusBadGateway
	case errors.As(err, &integ):
		if integ.Status > 0 {
			return integ.Status
		}
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func MapPgError(err error) error {
	var pgErr pgdriver.Error
	if errors.As(err, &pgErr) {
		switch pgErr.Field('C') { // SQLSTATE
		case "23505": // unique_violation
			return ErrConflict
		case "P0002": // no_data_found
			return ErrNotFound
		}
	}
	return err
}
