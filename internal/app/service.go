package app

import (
	"errors"
	"fmt"

	"github.com/go-chi/chi/v5"

	"github.com/phrazzld/clinic-api/internal/api"
	"github.com/phrazzld/clinic-api/internal/config"
	"github.com/phrazzld/clinic-api/internal/peer"
	"github.com/phrazzld/clinic-api/internal/platform/fixture"
	"github.com/phrazzld/clinic-api/internal/platform/postgres"
	"github.com/phrazzld/clinic-api/internal/service"
	"github.com/phrazzld/clinic-api/internal/store"
)

// Routable is implemented by every handler that mounts its own routes.
type Routable interface {
	Routes(r chi.Router)
}

// Service describes one microservice.
type Service struct {
	// Defaults seed configuration before file and environment overrides.
	Defaults config.Defaults

	// Schema is bootstrapped on start when the service runs against postgres.
	Schema *postgres.Schema

	// Sources lists the data sources the service can run with.
	Sources []string

	// Handlers builds the entity handlers once dependencies are ready.
	Handlers func(app *application) ([]Routable, error)
}

// ErrUnsupportedSource is returned when DATA_SOURCE names a source the service
// cannot run with.
var ErrUnsupportedSource = errors.New("unsupported data source")

func (s Service) supports(source string) bool {
	for _, candidate := range s.Sources {
		if candidate == source {
			return true
		}
	}
	return false
}

// UsersAPI serves users from a static fixture; writes are simulated.
var UsersAPI = Service{
	Defaults: config.Defaults{ServiceName: "users-api", Port: 4001, Source: config.SourceStatic},
	Sources:  []string{config.SourceStatic},
	Handlers: func(app *application) ([]Routable, error) {
		users, err := fixture.LoadUsers(app.config.Data.UsersFile)
		if err != nil {
			return nil, err
		}
		app.logger.Info("users fixture loaded", "count", len(users))

		return []Routable{
			api.NewUserHandler(fixture.NewUserStore(users, app.logger), app.errorPolicy(), app.logger),
		}, nil
	},
}

// ProductsAPI serves products from postgres, or from a fixture with simulated
// writes, and composes the catalog view with users-api.
var ProductsAPI = Service{
	Defaults: config.Defaults{ServiceName: "products-api", Port: 4002, Source: config.SourcePostgres},
	Schema:   &postgres.ProductsSchema,
	Sources:  []string{config.SourcePostgres, config.SourceStatic},
	Handlers: func(app *application) ([]Routable, error) {
		var products store.ProductStore
		if app.db != nil {
			products = postgres.NewPostgresProductStore(app.db, app.logger)
		} else {
			fixed, err := fixture.LoadProducts(app.config.Data.ProductsFile)
			if err != nil {
				return nil, err
			}
			products = fixture.NewProductStore(fixed, app.logger)
		}

		users := peer.NewUsersClient(
			app.config.Peers.UsersAPIURL,
			app.config.Peers.Timeout,
			app.logger,
			peer.WithObserver(app.metrics),
		)
		catalog, err := service.NewProductCatalog(products, users, app.logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create product catalog: %w", err)
		}

		return []Routable{
			api.NewProductHandler(products, catalog, app.errorPolicy(), app.logger),
		}, nil
	},
}

// DoctorsAPI serves doctors from postgres.
var DoctorsAPI = Service{
	Defaults: config.Defaults{ServiceName: "doctors-api", Port: 4003, Source: config.SourcePostgres},
	Schema:   &postgres.DoctorsSchema,
	Sources:  []string{config.SourcePostgres},
	Handlers: func(app *application) ([]Routable, error) {
		return []Routable{
			api.NewDoctorHandler(postgres.NewPostgresDoctorStore(app.db, app.logger), app.errorPolicy(), app.logger),
		}, nil
	},
}
