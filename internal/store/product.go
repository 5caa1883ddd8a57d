package store

import (
	"context"

	"github.com/phrazzld/clinic-api/internal/domain"
)

// ProductStore defines the interface for product data persistence.
type ProductStore interface {
	// List returns every product ordered by ascending id.
	// An empty store yields an empty, non-nil slice.
	List(ctx context.Context) ([]domain.Product, error)

	// GetByID returns the product with the given id.
	// Returns ErrProductNotFound if it does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Product, error)

	// Create persists a validated product and returns it with its assigned id.
	Create(ctx context.Context, p domain.NewProduct) (*domain.Product, error)

	// Update merges the patch into the stored product and returns the result.
	// Returns ErrProductNotFound if it does not exist.
	Update(ctx context.Context, id int64, patch domain.ProductPatch) (*domain.Product, error)

	// Delete removes the product. Returns ErrProductNotFound if it does not exist.
	Delete(ctx context.Context, id int64) error
}
