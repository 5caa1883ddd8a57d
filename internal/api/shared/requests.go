package shared

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/phrazzld/clinic-api/internal/domain"
)

// MaxBodyBytes caps request bodies.
const MaxBodyBytes = 1 << 20

// ErrInvalidBody is returned when a request body is not a JSON object.
var ErrInvalidBody = errors.New("invalid JSON body")

// Global validator instance for reuse
var validate = validator.New()

// DecodeJSON decodes the request body into v. An empty body decodes as {}, so
// handlers report missing fields rather than a parse error. Unknown fields are
// ignored. Anything other than a single JSON object yields ErrInvalidBody.
func DecodeJSON(r *http.Request, v any) error {
	if r.Body == nil {
		return nil
	}

	data, err := io.ReadAll(io.LimitReader(r.Body, MaxBodyBytes+1))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBody, err)
	}
	if len(data) > MaxBodyBytes {
		return fmt.Errorf("%w: body exceeds %d bytes", ErrInvalidBody, MaxBodyBytes)
	}

	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil
	}
	if data[0] != '{' {
		return fmt.Errorf("%w: expected an object", ErrInvalidBody)
	}

	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBody, err)
	}
	return nil
}

// ValidateRequest validates v with its own Validate method when it has one,
// falling back to struct tags.
func ValidateRequest(v any) error {
	if validator, ok := v.(interface{ Validate() error }); ok {
		return validator.Validate()
	}
	return validate.Struct(v)
}

// ParseID reads the {id} path parameter. It must be a positive integer.
func ParseID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
