package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrForbidden indicates the caller may not access another user's data
type ErrForbidden struct {
	UserID uuid.UUID
}

func (e *ErrForbidden) Error() string {
	return fmt.Sprintf("access denied for user: %s", e.UserID)
}

// ErrOpportunityNotFound indicates the opportunity does not exist
type ErrOpportunityNotFound struct {
	ID uuid.UUID
}

func (e *ErrOpportunityNotFound) Error() string {
	return fmt.Sprintf("opportunity not found: %s", e.ID)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validation *ErrValidation
		forbidden  *ErrForbidden
		notFound   *ErrOpportunityNotFound
	)
	switch {
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.As(err, &forbidden):
		return http.StatusForbidden
	case errors.As(err, &notFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
