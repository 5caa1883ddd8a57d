package service

import (
	"context"
	"encoding/json"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/phrazzld/clinic-api/internal/domain"
	"github.com/phrazzld/clinic-api/internal/peer"
	"github.com/phrazzld/clinic-api/internal/platform/logger"
	"github.com/phrazzld/clinic-api/internal/store"
)

// UsersPeer is the users-api view the catalog needs.
type UsersPeer interface {
	ListUsers(ctx context.Context) peer.Result[[]json.RawMessage]
}

// ProductsWithUsers is the composed catalog view.
type ProductsWithUsers struct {
	Products   []domain.Product `json:"products"`
	UsersCount int              `json:"usersCount"`
}

// ProductCatalog serves product views that involve other services.
type ProductCatalog interface {
	// ListWithUsersCount returns all products together with the number of
	// users known to users-api. An unreachable users-api counts as zero users;
	// only a failure to read local products is returned as an error.
	ListWithUsersCount(ctx context.Context) (*ProductsWithUsers, error)
}

type productCatalogImpl struct {
	products store.ProductStore
	users    UsersPeer
	logger   *slog.Logger
}

// NewProductCatalog creates a ProductCatalog.
// It returns an error if any of the required dependencies are nil.
func NewProductCatalog(products store.ProductStore, users UsersPeer, logger *slog.Logger) (ProductCatalog, error) {
	if products == nil {
		return nil, domain.NewValidationError("cannot be nil", "products")
	}
	if users == nil {
		return nil, domain.NewValidationError("cannot be nil", "users")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &productCatalogImpl{
		products: products,
		users:    users,
		logger:   logger.With(slog.String("component", "product_catalog")),
	}, nil
}

// ListWithUsersCount implements ProductCatalog.ListWithUsersCount
// The local read and the peer call run concurrently.
func (s *productCatalogImpl) ListWithUsersCount(ctx context.Context) (*ProductsWithUsers, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var (
		products []domain.Product
		users    peer.Result[[]json.RawMessage]
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		products, err = s.products.List(gctx)
		return err
	})
	// Only a local failure cancels the group; the peer goroutine always returns nil.
	g.Go(func() error {
		users = s.users.ListUsers(gctx)
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error("failed to list products", slog.String("error", err.Error()))
		return nil, NewServiceError("list_with_users_count", "products query failed", err)
	}

	if !isAvailable(users) {
		log.Warn("users-api unavailable, reporting zero users",
			slog.String("error", users.Err().Error()))
	}

	return &ProductsWithUsers{
		Products:   products,
		UsersCount: len(users.OrElse(nil)),
	}, nil
}

func isAvailable[T any](r peer.Result[T]) bool {
	_, ok := r.Get()
	return ok
}
