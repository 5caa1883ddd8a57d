package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/clinic-api/internal/domain"
	"github.com/phrazzld/clinic-api/internal/peer"
	"github.com/phrazzld/clinic-api/internal/platform/fixture"
	"github.com/phrazzld/clinic-api/internal/service"
	"github.com/phrazzld/clinic-api/internal/store"
)

type stubUsersPeer struct {
	result peer.Result[[]json.RawMessage]
}

func (s stubUsersPeer) ListUsers(ctx context.Context) peer.Result[[]json.RawMessage] {
	return s.result
}

type brokenProducts struct {
	store.ProductStore
}

func (brokenProducts) List(ctx context.Context) ([]domain.Product, error) {
	return nil, errors.New("dial tcp 10.0.0.5:5432: connect: connection refused")
}

func widgetStore() *fixture.ProductStore {
	return fixture.NewProductStore([]domain.Product{
		{ID: 1, Name: "Widget", Price: decimal.NewFromInt(5)},
	}, nil)
}

func productRouter(t *testing.T, products store.ProductStore, users peer.Result[[]json.RawMessage]) http.Handler {
	t.Helper()
	catalog, err := service.NewProductCatalog(products, stubUsersPeer{result: users}, nil)
	require.NoError(t, err)
	return newRouter(NewProductHandler(products, catalog, ErrorPolicy{}, nil))
}

func TestProductHandler_PartialUpdate(t *testing.T) {
	h := productRouter(t, widgetStore(), peer.Available([]json.RawMessage{}))

	rec, _ := do(t, h, http.MethodPut, "/products/1", `{"price":9.99}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":1,"name":"Widget","price":9.99}`, rec.Body.String())
}

func TestProductHandler_Endpoints(t *testing.T) {
	h := productRouter(t, widgetStore(), peer.Available([]json.RawMessage{}))

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
		want   string
	}{
		{"list", http.MethodGet, "/products", "", http.StatusOK, `[{"id":1,"name":"Widget","price":5}]`},
		{"get", http.MethodGet, "/products/1", "", http.StatusOK, `{"id":1,"name":"Widget","price":5}`},
		{"get missing", http.MethodGet, "/products/2", "", http.StatusNotFound, ""},
		{"get invalid id", http.MethodGet, "/products/1.5", "", http.StatusBadRequest, ""},
		{"create", http.MethodPost, "/products", `{"name":"Lamp","price":12.5,"color":"red"}`, http.StatusCreated,
			`{"id":2,"name":"Lamp","price":12.5}`},
		{"create missing price", http.MethodPost, "/products", `{"name":"Lamp"}`, http.StatusBadRequest,
			""},
		{"update nothing", http.MethodPut, "/products/1", `{}`, http.StatusBadRequest, ""},
		{"update blank name", http.MethodPut, "/products/1", `{"name":"  "}`, http.StatusBadRequest, ""},
		{"delete", http.MethodDelete, "/products/1", "", http.StatusOK, `{"deleted":true,"id":1,"message":"deleted"}`},
		{"delete missing", http.MethodDelete, "/products/7", "", http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, _ := do(t, h, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.status, rec.Code)
			if tt.want != "" {
				assert.JSONEq(t, tt.want, rec.Body.String())
			}
		})
	}
}

func TestProductHandler_CreateMissingFieldsMessage(t *testing.T) {
	h := productRouter(t, widgetStore(), peer.Available([]json.RawMessage{}))

	_, body := do(t, h, http.MethodPost, "/products", `{}`)
	assert.Equal(t, "name & price required", body["error"])
}

func TestProductHandler_ListWithUsers(t *testing.T) {
	t.Run("peer available", func(t *testing.T) {
		users := peer.Available([]json.RawMessage{json.RawMessage(`{"id":1}`), json.RawMessage(`{"id":2}`)})
		h := productRouter(t, widgetStore(), users)

		rec, _ := do(t, h, http.MethodGet, "/products/with-users", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"products":[{"id":1,"name":"Widget","price":5}],"usersCount":2}`, rec.Body.String())
	})

	t.Run("peer unavailable", func(t *testing.T) {
		h := productRouter(t, widgetStore(), peer.Unavailable[[]json.RawMessage](nil))

		rec, _ := do(t, h, http.MethodGet, "/products/with-users", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"products":[{"id":1,"name":"Widget","price":5}],"usersCount":0}`, rec.Body.String())
	})

	t.Run("local failure", func(t *testing.T) {
		h := productRouter(t, brokenProducts{}, peer.Available([]json.RawMessage{}))

		rec, body := do(t, h, http.MethodGet, "/products/with-users", "")
		assert.Equal(t, http.StatusBadGateway, rec.Code)
		assert.Equal(t, "products query failed", body["error"])
		assert.Contains(t, body["detail"], "connection refused")
	})
}

func TestProductHandler_ListFailure(t *testing.T) {
	h := productRouter(t, brokenProducts{}, peer.Available([]json.RawMessage{}))

	rec, body := do(t, h, http.MethodGet, "/products", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "query failed", body["error"])
	assert.Contains(t, body["detail"], "connection refused")
}
