package store

import (
	"context"

	"github.com/phrazzld/clinic-api/internal/domain"
)

// UserReader provides read access to users. users-api never persists writes,
// so there is no mutating counterpart.
type UserReader interface {
	List(ctx context.Context) ([]domain.User, error)

	// GetByID returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}
