package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/clinic-api/internal/api/shared"
	"github.com/phrazzld/clinic-api/internal/domain"
	"github.com/phrazzld/clinic-api/internal/store"
)

// ErrorPolicy holds the error mappings that can differ between deployments.
type ErrorPolicy struct {
	// StrictConflicts maps unique-constraint violations to 409. When false they
	// surface as 500 with the driver message as detail, which is what existing
	// clients of doctors-api expect.
	StrictConflicts bool
}

// MapErrorToStatusCode maps internal errors to HTTP status codes using the
// default policy.
func MapErrorToStatusCode(err error) int {
	return ErrorPolicy{}.StatusCode(err)
}

// StatusCode maps internal errors to appropriate HTTP status codes based on
// the error type.
func (p ErrorPolicy) StatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK

	// Bad request errors
	case domain.IsValidationError(err),
		errors.Is(err, shared.ErrInvalidBody),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	// Not found errors
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, store.ErrDuplicate):
		if p.StrictConflicts {
			return http.StatusConflict
		}
		return http.StatusInternalServerError

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a client-facing message for err. Validation
// errors name the offending fields; everything else uses a fixed message.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var validationErr *domain.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return validationErr.Error()
	case errors.Is(err, domain.ErrInvalidID):
		return domain.ErrInvalidID.Error()
	case errors.Is(err, domain.ErrEmptyPatch):
		return domain.ErrEmptyPatch.Error()
	case errors.Is(err, shared.ErrInvalidBody):
		return shared.ErrInvalidBody.Error()
	case errors.Is(err, store.ErrNotFound):
		return "not found"
	case errors.Is(err, store.ErrEmailExists):
		return "email already exists"
	case errors.Is(err, store.ErrDuplicate):
		return "already exists"
	case errors.Is(err, store.ErrInvalidEntity):
		return "invalid entity data"
	default:
		return "An unexpected error occurred"
	}
}

// respondError writes the response for err. Server-side failures use
// failureMessage (e.g. "insert failed") and carry the redacted cause as detail.
func (p ErrorPolicy) respondError(w http.ResponseWriter, r *http.Request, err error, failureMessage string) {
	status := p.StatusCode(err)

	if status >= http.StatusInternalServerError {
		shared.RespondWithErrorAndLog(w, r, status, failureMessage, err)
		return
	}

	var opts []shared.ResponseOption
	if status == http.StatusConflict {
		opts = append(opts, shared.WithElevatedLogLevel())
	}
	shared.RespondWithErrorAndLog(w, r, status, GetSafeErrorMessage(err), err, opts...)
}
