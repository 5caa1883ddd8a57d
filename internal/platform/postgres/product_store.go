package postgres

import (
	"context"
	"errors"
	"log/slog"

	"github.com/phrazzld/clinic-api/internal/domain"
	"github.com/phrazzld/clinic-api/internal/platform/logger"
	"github.com/phrazzld/clinic-api/internal/store"
)

const (
	productColumns = `id, name, price`

	listProductsSQL = `SELECT ` + productColumns + ` FROM products_schema.products ORDER BY id ASC`

	getProductSQL = `SELECT ` + productColumns + ` FROM products_schema.products WHERE id = $1`

	insertProductSQL = `
		INSERT INTO products_schema.products(name, price)
		VALUES ($1, $2)
		RETURNING ` + productColumns

	updateProductSQL = `
		UPDATE products_schema.products
		SET name = COALESCE($1, name),
		    price = COALESCE($2, price)
		WHERE id = $3
		RETURNING ` + productColumns

	deleteProductSQL = `DELETE FROM products_schema.products WHERE id = $1`
)

// PostgresProductStore implements the store.ProductStore interface
// using a PostgreSQL database as the storage backend.
type PostgresProductStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresProductStore creates a new PostgreSQL implementation of the ProductStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresProductStore(db store.DBTX, logger *slog.Logger) *PostgresProductStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresProductStore{
		db:     db,
		logger: logger.With(slog.String("component", "product_store")),
	}
}

// Ensure PostgresProductStore implements store.ProductStore interface
var _ store.ProductStore = (*PostgresProductStore)(nil)

// List implements store.ProductStore.List
func (s *PostgresProductStore) List(ctx context.Context) ([]domain.Product, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, listProductsSQL)
	if err != nil {
		log.Error("failed to list products", slog.String("error", err.Error()))
		return nil, store.NewStoreError("product", "list", "query failed", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	products := make([]domain.Product, 0)
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price); err != nil {
			log.Error("failed to scan product", slog.String("error", err.Error()))
			return nil, MapError(err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		log.Error("failed to iterate products", slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	log.Debug("products listed", slog.Int("count", len(products)))
	return products, nil
}

// GetByID implements store.ProductStore.GetByID
func (s *PostgresProductStore) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var p domain.Product
	err := s.db.QueryRowContext(ctx, getProductSQL, id).Scan(&p.ID, &p.Name, &p.Price)
	if err != nil {
		return nil, s.notFoundOr(log, "get", id, err)
	}
	return &p, nil
}

// Create implements store.ProductStore.Create
func (s *PostgresProductStore) Create(ctx context.Context, in domain.NewProduct) (*domain.Product, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := in.Validate(); err != nil {
		return nil, err
	}

	var p domain.Product
	err := s.db.QueryRowContext(ctx, insertProductSQL, *in.Name, *in.Price).
		Scan(&p.ID, &p.Name, &p.Price)
	if err != nil {
		log.Error("failed to create product", slog.String("error", err.Error()))
		return nil, store.NewStoreError("product", "create", "insert failed", MapError(err))
	}

	log.Info("product created", slog.Int64("product_id", p.ID))
	return &p, nil
}

// Update implements store.ProductStore.Update
// Fields absent from the patch are sent as NULL and kept by COALESCE.
func (s *PostgresProductStore) Update(
	ctx context.Context,
	id int64,
	patch domain.ProductPatch,
) (*domain.Product, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := patch.Validate(); err != nil {
		return nil, err
	}

	var p domain.Product
	err := s.db.QueryRowContext(ctx, updateProductSQL,
		nullable(patch.Name),
		nullable(patch.Price),
		id,
	).Scan(&p.ID, &p.Name, &p.Price)
	if err != nil {
		return nil, s.notFoundOr(log, "update", id, err)
	}

	log.Info("product updated", slog.Int64("product_id", id))
	return &p, nil
}

// Delete implements store.ProductStore.Delete
func (s *PostgresProductStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, deleteProductSQL, id)
	if err != nil {
		log.Error("failed to delete product",
			slog.String("error", err.Error()),
			slog.Int64("product_id", id))
		return store.NewStoreError("product", "delete", "delete failed", MapError(err))
	}
	if err := CheckRowsAffected(result, store.ErrProductNotFound); err != nil {
		return err
	}

	log.Info("product deleted", slog.Int64("product_id", id))
	return nil
}

func (s *PostgresProductStore) notFoundOr(log *slog.Logger, op string, id int64, err error) error {
	mapped := MapError(err)
	if errors.Is(mapped, store.ErrNotFound) {
		log.Debug("product not found", slog.String("op", op), slog.Int64("product_id", id))
		return store.ErrProductNotFound
	}
	log.Error("product query failed",
		slog.String("op", op),
		slog.String("error", err.Error()),
		slog.Int64("product_id", id))
	return store.NewStoreError("product", op, "query failed", mapped)
}

// nullable turns a patch field into a bound parameter: the value when set,
// otherwise NULL.
func nullable[T any](o domain.Optional[T]) any {
	v, ok := o.Get()
	if !ok {
		return nil
	}
	return v
}
