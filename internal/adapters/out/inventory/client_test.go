package inventory_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"sales/internal/adapters/out/inventory"
	"sales/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestClient(serverURL string) *inventory.Client {
	return inventory.NewClient(serverURL, 5*time.Second, testLogger())
}

func Test_Client_GetProduct_ReturnsProductMetadata(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/v1/products/prod-sofa", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":               "prod-sofa",
			"name":             "Sofa",
			"availabilityType": "MANUFACTURING",
			"estimatedDays":    7,
		})
	}))
	defer server.Close()

	product, err := newTestClient(server.URL).GetProduct(context.Background(), "prod-sofa")

	require.NoError(t, err)
	assert.Equal(t, "prod-sofa", product.ID)
	assert.Equal(t, "Sofa", product.Name)
	assert.Equal(t, ports.AvailabilityManufacturing, product.AvailabilityType)
	assert.Equal(t, 7, product.EstimatedDays)
}

func Test_Client_GetProduct_ServerError_ReturnsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).GetProduct(context.Background(), "prod-sofa")

	require.Error(t, err)
	assert.ErrorContains(t, err, "status 500")
}

func Test_Client_GetProduct_ServiceUnreachable_ReturnsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	_, err := newTestClient(server.URL).GetProduct(context.Background(), "prod-sofa")

	require.Error(t, err)
}

func Test_Client_SearchProducts_WithoutQuery_ListsCatalog(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/products", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{
				{"id": "prod-chair", "sku": "CHAIR", "name": "Chair", "price": 49.90, "availabilityType": "STOCK", "stock": 12},
				{"id": "prod-sofa", "sku": "SOFA", "name": "Sofa", "price": 320.0, "availabilityType": "MANUFACTURING", "estimatedDays": 7},
			},
		})
	}))
	defer server.Close()

	products, err := newTestClient(server.URL).SearchProducts(context.Background(), "")

	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "prod-chair", products[0].ID)
	assert.Equal(t, 12, products[0].Stock)
	assert.Equal(t, ports.AvailabilityManufacturing, products[1].AvailabilityType)
}

func Test_Client_SearchProducts_WithQuery_UsesSearchEndpoint(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/products/search", r.URL.Path)
		assert.Equal(t, "sofa cama", r.URL.Query().Get("query"))
		_ = json.NewEncoder(w).Encode(map[string]any{"data": []map[string]any{}})
	}))
	defer server.Close()

	products, err := newTestClient(server.URL).SearchProducts(context.Background(), "sofa cama")

	require.NoError(t, err)
	assert.Empty(t, products)
}

func Test_Client_Reserve_PostsInventoryKeyAndQuantity(t *testing.T) {
	var received map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/productos/reservas", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	err := newTestClient(server.URL).Reserve(context.Background(), "CHAIR", 2)

	require.NoError(t, err)
	assert.Equal(t, "CHAIR", received["id_producto"])
	assert.Equal(t, float64(2), received["cantidad"])
	assert.NotContains(t, received, "metodo_entrega")
}

func Test_Client_MarkForDispatch_PostsToDispatchEndpoint(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/productos/despachos", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	err := newTestClient(server.URL).MarkForDispatch(context.Background(), "SOFA", 1)

	require.NoError(t, err)
}

func Test_Client_WithdrawStock_IncludesChannel(t *testing.T) {
	var received map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/productos/retiros", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	err := newTestClient(server.URL).WithdrawStock(context.Background(), "LAMP", 3, ports.WithdrawalChannelStore)

	require.NoError(t, err)
	assert.Equal(t, "tienda", received["metodo_entrega"])
}

func Test_Client_StockOperation_ServerError_ReturnsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	err := newTestClient(server.URL).Reserve(context.Background(), "CHAIR", 2)

	require.Error(t, err)
	assert.ErrorContains(t, err, "status 400")
}
