package v1

import (
	"errors"
	"net/http"

	"github.com/fintrack-app/backend/internal/models"
)

type httpError struct {
	Error string `json:"error" example:"An ID specified in the query string was not a valid UUID"`
}

// status returns the appropriate HTTP status for an error
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	if errors.Is(err, errNoToken) || errors.Is(err, errNotAuthorized) {
		return http.StatusUnauthorized
	}

	return http.StatusBadRequest
}

// Auth errors
var (
	errNoToken        = errors.New("no token provided")
	errNotAuthorized  = errors.New("not authorized")
	errFieldsRequired = errors.New("all fields required")
	errEmailRequired  = errors.New("email required")
	errTokenRequired  = errors.New("token and new password required")
	errWrongPassword  = errors.New("current password is incorrect")
	errMailNotSetUp   = errors.New("email service not configured")
)

// Expense and income errors
var (
	errTitleRequired  = errors.New("the title must be set")
	errSourceRequired = errors.New("the source must be set")
)
