// Package dispatch implements the outbound HTTP client for the external
// dispatch service. The service only supports creating dispatch orders;
// there is no endpoint to query a dispatch after creation.
package dispatch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"sales/internal/core/ports"
)

const (
	defaultTimeout = 10 * time.Second

	// fallbackDeliveryDays is the estimate returned when the dispatch
	// service cannot be reached for an availability check.
	fallbackDeliveryDays = 3
)

// Client calls the dispatch service over HTTP. It implements
// ports.DispatchClient.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a dispatch client for the given base URL. A non-positive
// timeout falls back to the default of ten seconds.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.With("component", "dispatch_client"),
	}
}

type checkAvailabilityRequest struct {
	Address string `json:"address"`
}

type checkAvailabilityResponse struct {
	Available             bool    `json:"available"`
	EstimatedDeliveryDate string  `json:"estimatedDeliveryDate"`
	DeliveryDays          int     `json:"deliveryDays"`
	Zone                  string  `json:"zone"`
	Cost                  float64 `json:"cost"`
}

type dispatchOrderItem struct {
	ProductID string `json:"id_producto"`
	Name      string `json:"nombre"`
	Quantity  int    `json:"cantidad"`
}

type dispatchOrderRequest struct {
	SaleID        string              `json:"id_venta"`
	CustomerName  string              `json:"cliente_nombre"`
	CustomerPhone string              `json:"cliente_telefono"`
	Address       string              `json:"direccion_entrega"`
	Products      []dispatchOrderItem `json:"productos"`
	ShippingDate  string              `json:"fecha_estimada_envio"`
	Status        string              `json:"estado"`
}

type dispatchOrderResponse struct {
	OrderID json.Number `json:"orden_id"`
	Status  string      `json:"estado"`
}

// CheckAvailability asks whether home delivery reaches the address. When the
// service is unreachable or answers with an error, it degrades to a fixed
// three-day estimate instead of failing the caller.
func (c *Client) CheckAvailability(ctx context.Context, address string) (ports.DeliveryAvailability, error) {
	body, err := json.Marshal(checkAvailabilityRequest{Address: address})
	if err != nil {
		return ports.DeliveryAvailability{}, fmt.Errorf("marshal availability request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/api/dispatch/check-availability", bytes.NewReader(body))
	if err != nil {
		return ports.DeliveryAvailability{}, fmt.Errorf("create availability request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("availability check unreachable, using fallback estimate", "error", err)
		return c.fallbackAvailability(), nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("availability check failed, using fallback estimate", "status", resp.StatusCode)
		return c.fallbackAvailability(), nil
	}

	var payload checkAvailabilityResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		c.logger.Warn("availability response malformed, using fallback estimate", "error", err)
		return c.fallbackAvailability(), nil
	}

	estimatedDate, err := time.Parse(time.RFC3339, payload.EstimatedDeliveryDate)
	if err != nil {
		estimatedDate = time.Now().AddDate(0, 0, payload.DeliveryDays)
	}

	return ports.DeliveryAvailability{
		Available:             payload.Available,
		EstimatedDeliveryDate: estimatedDate,
		DeliveryDays:          payload.DeliveryDays,
		Zone:                  payload.Zone,
		Cost:                  payload.Cost,
	}, nil
}

func (c *Client) fallbackAvailability() ports.DeliveryAvailability {
	return ports.DeliveryAvailability{
		Available:             true,
		EstimatedDeliveryDate: time.Now().AddDate(0, 0, fallbackDeliveryDays),
		DeliveryDays:          fallbackDeliveryDays,
	}
}

// CreateDispatch creates a dispatch order for a confirmed sale. It fails hard
// when the service is unreachable; the returned identifier is always the one
// the service assigned, never an invented one.
func (c *Client) CreateDispatch(ctx context.Context, request ports.DispatchRequest) (ports.DispatchConfirmation, error) {
	items := make([]dispatchOrderItem, 0, len(request.Items))
	for _, item := range request.Items {
		name := item.Description
		if name == "" {
			name = item.ProductID
		}
		items = append(items, dispatchOrderItem{
			ProductID: item.ProductID,
			Name:      name,
			Quantity:  item.Quantity,
		})
	}

	payload := dispatchOrderRequest{
		SaleID:        request.SaleID,
		CustomerName:  request.CustomerName,
		CustomerPhone: request.CustomerPhone,
		Address:       request.Address,
		Products:      items,
		ShippingDate:  request.DeliveryDate.Format("2006-01-02"),
		Status:        "pendiente",
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return ports.DispatchConfirmation{}, fmt.Errorf("marshal dispatch order: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/ordenes", bytes.NewReader(body))
	if err != nil {
		return ports.DispatchConfirmation{}, fmt.Errorf("create dispatch order request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ports.DispatchConfirmation{}, fmt.Errorf("post dispatch order: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return ports.DispatchConfirmation{}, fmt.Errorf("dispatch service returned status %d", resp.StatusCode)
	}

	var confirmation dispatchOrderResponse
	if err := json.NewDecoder(resp.Body).Decode(&confirmation); err != nil {
		return ports.DispatchConfirmation{}, fmt.Errorf("decode dispatch order response: %w", err)
	}
	if confirmation.OrderID.String() == "" {
		return ports.DispatchConfirmation{}, fmt.Errorf("dispatch service response carried no order id")
	}

	c.logger.Info("dispatch order created",
		"sale_id", request.SaleID,
		"dispatch_id", confirmation.OrderID.String())

	return ports.DispatchConfirmation{
		DispatchID:            confirmation.OrderID.String(),
		Status:                confirmation.Status,
		EstimatedDeliveryDate: request.DeliveryDate,
	}, nil
}
