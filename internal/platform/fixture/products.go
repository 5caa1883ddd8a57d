package fixture

import (
	"context"
	"log/slog"

	"github.com/phrazzld/clinic-api/internal/domain"
	"github.com/phrazzld/clinic-api/internal/platform/logger"
	"github.com/phrazzld/clinic-api/internal/store"
)

// ProductStore serves products from a fixed list. Create, Update and Delete
// validate their input and report the outcome a database would produce, but
// the list itself is never changed.
type ProductStore struct {
	products []domain.Product
	logger   *slog.Logger
}

// NewProductStore wraps products, which must already be sorted by id.
func NewProductStore(products []domain.Product, logger *slog.Logger) *ProductStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProductStore{
		products: products,
		logger:   logger.With(slog.String("component", "product_fixture")),
	}
}

var _ store.ProductStore = (*ProductStore)(nil)

// List returns every product in ascending id order.
func (s *ProductStore) List(ctx context.Context) ([]domain.Product, error) {
	out := make([]domain.Product, len(s.products))
	copy(out, s.products)
	return out, nil
}

// GetByID returns store.ErrProductNotFound for unknown ids.
func (s *ProductStore) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	i := s.index(id)
	if i < 0 {
		return nil, store.ErrProductNotFound
	}
	p := s.products[i]
	return &p, nil
}

// Create returns the product with the id the next insert would receive.
func (s *ProductStore) Create(ctx context.Context, in domain.NewProduct) (*domain.Product, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	var next int64 = 1
	if n := len(s.products); n > 0 {
		next = s.products[n-1].ID + 1
	}
	p := domain.Product{ID: next, Name: *in.Name, Price: *in.Price}

	logger.FromContextOrDefault(ctx, s.logger).Info("simulated product create",
		slog.Int64("product_id", p.ID))
	return &p, nil
}

// Update returns the stored product with patch merged in.
func (s *ProductStore) Update(ctx context.Context, id int64, patch domain.ProductPatch) (*domain.Product, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	i := s.index(id)
	if i < 0 {
		return nil, store.ErrProductNotFound
	}
	p := patch.Apply(s.products[i])

	logger.FromContextOrDefault(ctx, s.logger).Info("simulated product update",
		slog.Int64("product_id", id))
	return &p, nil
}

// Delete succeeds for known ids without removing anything.
func (s *ProductStore) Delete(ctx context.Context, id int64) error {
	if s.index(id) < 0 {
		return store.ErrProductNotFound
	}
	logger.FromContextOrDefault(ctx, s.logger).Info("simulated product delete",
		slog.Int64("product_id", id))
	return nil
}

func (s *ProductStore) index(id int64) int {
	for i := range s.products {
		if s.products[i].ID == id {
			return i
		}
	}
	return -1
}
