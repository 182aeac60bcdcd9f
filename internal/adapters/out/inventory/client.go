// Package inventory implements the outbound HTTP client for the external
// inventory service. Product reads use the service's v1 JSON API; the three
// stock-affecting operations post to its Spanish-named legacy endpoints.
package inventory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"sales/internal/core/ports"
)

const defaultTimeout = 10 * time.Second

// Client calls the inventory service over HTTP. It implements
// ports.InventoryClient. Every call is attempted exactly once.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates an inventory client for the given base URL. A
// non-positive timeout falls back to the default of ten seconds.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.With("component", "inventory_client"),
	}
}

type productResponse struct {
	ID               string  `json:"id"`
	SKU              string  `json:"sku"`
	Name             string  `json:"name"`
	Price            float64 `json:"price"`
	AvailabilityType string  `json:"availabilityType"`
	EstimatedDays    int     `json:"estimatedDays"`
	Stock            int     `json:"stock"`
}

type productListResponse struct {
	Data []productResponse `json:"data"`
}

type stockOperationRequest struct {
	ProductID string `json:"id_producto"`
	Quantity  int    `json:"cantidad"`
	Channel   string `json:"metodo_entrega,omitempty"`
}

// GetProduct fetches fulfillment metadata for a catalog product.
func (c *Client) GetProduct(ctx context.Context, productID string) (ports.Product, error) {
	endpoint := c.baseURL + "/api/v1/products/" + url.PathEscape(productID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return ports.Product{}, fmt.Errorf("create product request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ports.Product{}, fmt.Errorf("fetch product %q: %w", productID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ports.Product{}, fmt.Errorf("inventory service returned status %d for product %q", resp.StatusCode, productID)
	}

	var body productResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return ports.Product{}, fmt.Errorf("decode product response: %w", err)
	}

	return ports.Product{
		ID:               body.ID,
		Name:             body.Name,
		AvailabilityType: ports.AvailabilityType(body.AvailabilityType),
		EstimatedDays:    body.EstimatedDays,
	}, nil
}

// SearchProducts lists catalog products. An empty query lists the whole
// catalog; a non-empty query hits the search endpoint.
func (c *Client) SearchProducts(ctx context.Context, query string) ([]ports.CatalogProduct, error) {
	endpoint := c.baseURL + "/api/v1/products"
	if query != "" {
		endpoint = c.baseURL + "/api/v1/products/search?query=" + url.QueryEscape(query)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create catalog request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("inventory service returned status %d for catalog search", resp.StatusCode)
	}

	var body productListResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode catalog response: %w", err)
	}

	products := make([]ports.CatalogProduct, 0, len(body.Data))
	for _, item := range body.Data {
		products = append(products, ports.CatalogProduct{
			ID:               item.ID,
			SKU:              item.SKU,
			Name:             item.Name,
			Price:            item.Price,
			AvailabilityType: ports.AvailabilityType(item.AvailabilityType),
			EstimatedDays:    item.EstimatedDays,
			Stock:            item.Stock,
		})
	}
	return products, nil
}

// Reserve records a non-committing stock hold for a pending sale.
func (c *Client) Reserve(ctx context.Context, inventoryKey string, quantity int) error {
	return c.postStockOperation(ctx, "/api/productos/reservas", stockOperationRequest{
		ProductID: inventoryKey,
		Quantity:  quantity,
	})
}

// MarkForDispatch flags stock for outbound shipping.
func (c *Client) MarkForDispatch(ctx context.Context, inventoryKey string, quantity int) error {
	return c.postStockOperation(ctx, "/api/productos/despachos", stockOperationRequest{
		ProductID: inventoryKey,
		Quantity:  quantity,
	})
}

// WithdrawStock decrements stock for an in-store pickup.
func (c *Client) WithdrawStock(ctx context.Context, inventoryKey string, quantity int, channel ports.WithdrawalChannel) error {
	return c.postStockOperation(ctx, "/api/productos/retiros", stockOperationRequest{
		ProductID: inventoryKey,
		Quantity:  quantity,
		Channel:   string(channel),
	})
}

func (c *Client) postStockOperation(ctx context.Context, path string, payload stockOperationRequest) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal stock operation: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create stock operation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("post stock operation to %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("inventory service returned status %d for %s", resp.StatusCode, path)
	}

	c.logger.Info("stock operation accepted",
		"path", path,
		"product", payload.ProductID,
		"quantity", payload.Quantity)
	return nil
}
