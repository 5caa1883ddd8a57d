package store

import (
	"context"

	"github.com/phrazzld/clinic-api/internal/domain"
)

// DoctorStore defines the interface for doctor data persistence.
type DoctorStore interface {
	// List returns every doctor ordered by ascending id.
	List(ctx context.Context) ([]domain.Doctor, error)

	// GetByID returns ErrDoctorNotFound if the doctor does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Doctor, error)

	// Create returns ErrEmailExists if the email is already taken.
	Create(ctx context.Context, d domain.NewDoctor) (*domain.Doctor, error)

	// Update returns ErrDoctorNotFound if the doctor does not exist and
	// ErrEmailExists if the new email is already taken.
	Update(ctx context.Context, id int64, patch domain.DoctorPatch) (*domain.Doctor, error)

	// Delete returns ErrDoctorNotFound if the doctor does not exist.
	Delete(ctx context.Context, id int64) error
}
