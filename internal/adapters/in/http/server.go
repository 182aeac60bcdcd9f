// Package http exposes the sales service over a REST API. It coordinates
// between HTTP handlers and application use cases.
package http

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"

	"sales/internal/core/application/usecases/commands"
	"sales/internal/core/application/usecases/queries"
	"sales/internal/core/domain/model/customer"
	"sales/internal/core/domain/model/kernel"
	"sales/internal/core/domain/model/sale"
	"sales/internal/core/ports"
	"sales/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// profitMargin is applied on top of inventory cost prices when the catalog
// is served to the storefront.
const profitMargin = 0.16

// Server implements the REST handlers for sales, persons, the product
// catalog proxy and the delivery availability check.
type Server struct {
	// Command handlers
	createSaleHandler     commands.CreateSaleCommandHandler
	completeSaleHandler   commands.CompleteSaleCommandHandler
	cleanupExpiredHandler commands.CleanupExpiredSalesCommandHandler
	createCustomerHandler commands.CreateCustomerCommandHandler
	updateCustomerHandler commands.UpdateCustomerCommandHandler

	// Query handlers
	getAllSalesHandler     queries.GetAllSalesQueryHandler
	getSaleHandler         queries.GetSaleQueryHandler
	getAllCustomersHandler queries.GetAllCustomersQueryHandler
	getCustomerHandler     queries.GetCustomerQueryHandler

	// External collaborators
	inventory ports.InventoryClient
	dispatch  ports.DispatchClient
}

// NewServer creates an HTTP server with the required command and query
// handlers and the outbound clients backing the proxy endpoints.
func NewServer(
	createSaleHandler commands.CreateSaleCommandHandler,
	completeSaleHandler commands.CompleteSaleCommandHandler,
	cleanupExpiredHandler commands.CleanupExpiredSalesCommandHandler,
	createCustomerHandler commands.CreateCustomerCommandHandler,
	updateCustomerHandler commands.UpdateCustomerCommandHandler,
	getAllSalesHandler queries.GetAllSalesQueryHandler,
	getSaleHandler queries.GetSaleQueryHandler,
	getAllCustomersHandler queries.GetAllCustomersQueryHandler,
	getCustomerHandler queries.GetCustomerQueryHandler,
	inventory ports.InventoryClient,
	dispatch ports.DispatchClient,
) *Server {
	return &Server{
		createSaleHandler:      createSaleHandler,
		completeSaleHandler:    completeSaleHandler,
		cleanupExpiredHandler:  cleanupExpiredHandler,
		createCustomerHandler:  createCustomerHandler,
		updateCustomerHandler:  updateCustomerHandler,
		getAllSalesHandler:     getAllSalesHandler,
		getSaleHandler:         getSaleHandler,
		getAllCustomersHandler: getAllCustomersHandler,
		getCustomerHandler:     getCustomerHandler,
		inventory:              inventory,
		dispatch:               dispatch,
	}
}

// RegisterRoutes wires every endpoint into the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	salesGroup := e.Group("/api/sales")
	salesGroup.POST("", s.CreateSale)
	salesGroup.GET("", s.GetSales)
	salesGroup.GET("/products", s.GetProducts)
	salesGroup.GET("/:id", s.GetSale)
	salesGroup.PATCH("/:id/complete", s.CompleteSale)
	salesGroup.POST("/cleanup-expired", s.CleanupExpiredSales)
	salesGroup.POST("/check-delivery", s.CheckDelivery)

	personsGroup := e.Group("/api/persons")
	personsGroup.POST("", s.CreatePerson)
	personsGroup.GET("", s.GetPersons)
	personsGroup.GET("/:id", s.GetPerson)
	personsGroup.PUT("/:id", s.UpdatePerson)
}

// ErrorResponse is the JSON error body returned by every endpoint.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// PersonRequest is the request body for creating or updating a person.
type PersonRequest struct {
	Name           string  `json:"name"`
	Email          string  `json:"email"`
	Address        string  `json:"address"`
	Phone          *string `json:"phone,omitempty"`
	DocumentNumber *string `json:"documentNumber,omitempty"`
}

// PersonResponse is a person as returned by the API.
type PersonResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Address        string    `json:"address"`
	Phone          *string   `json:"phone,omitempty"`
	DocumentNumber *string   `json:"documentNumber,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

// SaleItemRequest is one line item of a sale-creation request.
type SaleItemRequest struct {
	ProductID string  `json:"productId"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
}

// CreateSaleRequest is the request body for creating a sale.
type CreateSaleRequest struct {
	Customer       PersonRequest     `json:"customer"`
	Items          []SaleItemRequest `json:"items"`
	DeliveryMethod string            `json:"deliveryMethod"`
	Status         string            `json:"status"`
	DeliveryDate   *string           `json:"deliveryDate,omitempty"`
}

// SaleItemResponse is one line item of a sale as returned by the API.
type SaleItemResponse struct {
	ProductID string  `json:"productId"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
	Subtotal  float64 `json:"subtotal"`
}

// SaleCustomerResponse is the customer summary embedded in a sale.
type SaleCustomerResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ManufacturingInfo reports the fabrication metadata of a freshly created
// sale that contains manufacturing items.
type ManufacturingInfo struct {
	HasManufacturingProducts bool       `json:"hasManufacturingProducts"`
	ManufacturingDays        int        `json:"manufacturingDays"`
	CalculatedDeliveryDate   *time.Time `json:"calculatedDeliveryDate,omitempty"`
}

// SaleResponse is a sale as returned by the API.
type SaleResponse struct {
	ID                string                `json:"id"`
	CustomerID        string                `json:"customerId"`
	Customer          *SaleCustomerResponse `json:"customer,omitempty"`
	Items             []SaleItemResponse    `json:"items"`
	Total             float64               `json:"total"`
	DeliveryMethod    string                `json:"deliveryMethod"`
	Status            string                `json:"status"`
	ExpiresAt         *time.Time            `json:"expiresAt,omitempty"`
	DeliveryDate      *time.Time            `json:"deliveryDate,omitempty"`
	DispatchID        *string               `json:"dispatchId,omitempty"`
	CreatedAt         time.Time             `json:"createdAt"`
	ManufacturingInfo *ManufacturingInfo    `json:"manufacturingInfo,omitempty"`
}

// CleanupExpiredSalesResponse reports the result of an expiration sweep.
type CleanupExpiredSalesResponse struct {
	Message      string   `json:"message"`
	DeletedSales []string `json:"deletedSales"`
}

// CheckDeliveryRequest is the request body of the delivery availability check.
type CheckDeliveryRequest struct {
	Address string `json:"address"`
}

// CheckDeliveryResponse is the delivery availability answer.
type CheckDeliveryResponse struct {
	Available             bool      `json:"available"`
	EstimatedDeliveryDate time.Time `json:"estimatedDeliveryDate"`
	DeliveryDays          int       `json:"deliveryDays"`
	Zone                  string    `json:"zone,omitempty"`
	Cost                  float64   `json:"cost,omitempty"`
}

// CatalogProductResponse is a catalog product with the storefront price.
type CatalogProductResponse struct {
	ID               string  `json:"id"`
	SKU              string  `json:"sku"`
	Name             string  `json:"name"`
	Price            float64 `json:"price"`
	CostPrice        float64 `json:"costPrice"`
	AvailabilityType string  `json:"availabilityType"`
	EstimatedDays    int     `json:"estimatedDays,omitempty"`
	Stock            int     `json:"stock"`
}

// ProductListResponse wraps the catalog listing.
type ProductListResponse struct {
	Data []CatalogProductResponse `json:"data"`
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// CreateSale handles POST /api/sales - runs the sale-creation flow.
func (s *Server) CreateSale(ctx echo.Context) error {
	var request CreateSaleRequest
	if err := ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	var deliveryDate *time.Time
	if request.DeliveryDate != nil && *request.DeliveryDate != "" {
		parsed, err := parseDeliveryDate(*request.DeliveryDate)
		if err != nil {
			return ctx.JSON(http.StatusBadRequest, ErrorResponse{
				Code:    http.StatusBadRequest,
				Message: "Invalid delivery date: " + err.Error(),
			})
		}
		deliveryDate = &parsed
	}

	items := make([]commands.ItemInput, len(request.Items))
	for i, item := range request.Items {
		items[i] = commands.ItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		}
	}

	cmd, err := commands.NewCreateSaleCommand(
		commands.CustomerInput{
			Name:           request.Customer.Name,
			Email:          request.Customer.Email,
			Address:        request.Customer.Address,
			Phone:          request.Customer.Phone,
			DocumentNumber: request.Customer.DocumentNumber,
		},
		items,
		request.DeliveryMethod,
		request.Status,
		deliveryDate,
	)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid sale data: " + err.Error(),
		})
	}

	result, err := s.createSaleHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.errorResponse(ctx, err)
	}

	response := saleResponseFrom(result.Sale)
	response.Customer = customerSummaryFrom(result.Customer)
	if result.Fulfillment.HasManufacturing {
		response.ManufacturingInfo = &ManufacturingInfo{
			HasManufacturingProducts: true,
			ManufacturingDays:        result.Fulfillment.ManufacturingDays,
			CalculatedDeliveryDate:   result.Fulfillment.DeliveryDate,
		}
	}

	return ctx.JSON(http.StatusCreated, response)
}

// GetSales handles GET /api/sales - lists every sale, newest first.
func (s *Server) GetSales(ctx echo.Context) error {
	sales, err := s.getAllSalesHandler.Handle(ctx.Request().Context(), queries.NewGetAllSalesQuery())
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve sales",
		})
	}

	response := make([]SaleResponse, len(sales))
	for i, item := range sales {
		response[i] = saleResponseFromReadModel(item)
	}
	return ctx.JSON(http.StatusOK, response)
}

// GetSale handles GET /api/sales/:id.
func (s *Server) GetSale(ctx echo.Context) error {
	saleID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid sale id",
		})
	}

	query, err := queries.NewGetSaleQuery(saleID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid sale id",
		})
	}

	result, err := s.getSaleHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, saleResponseFromReadModel(result))
}

// CompleteSale handles PATCH /api/sales/:id/complete - confirms a pending sale.
func (s *Server) CompleteSale(ctx echo.Context) error {
	saleID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid sale id",
		})
	}

	cmd, err := commands.NewCompleteSaleCommand(saleID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid sale id",
		})
	}

	completed, err := s.completeSaleHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, saleResponseFrom(completed))
}

// CleanupExpiredSales handles POST /api/sales/cleanup-expired - deletes every
// pending sale whose expiration deadline has passed.
func (s *Server) CleanupExpiredSales(ctx echo.Context) error {
	cmd := commands.NewCleanupExpiredSalesCommand()

	result, err := s.cleanupExpiredHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Failed to clean up expired sales",
		})
	}

	deleted := make([]string, len(result.DeletedIDs))
	for i, id := range result.DeletedIDs {
		deleted[i] = id.String()
	}

	return ctx.JSON(http.StatusOK, CleanupExpiredSalesResponse{
		Message:      fmt.Sprintf("Cleaned up %d expired sales", result.Count),
		DeletedSales: deleted,
	})
}

// CheckDelivery handles POST /api/sales/check-delivery.
func (s *Server) CheckDelivery(ctx echo.Context) error {
	var request CheckDeliveryRequest
	if err := ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if request.Address == "" {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Address is required",
		})
	}

	availability, err := s.dispatch.CheckAvailability(ctx.Request().Context(), request.Address)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Failed to check delivery availability",
		})
	}

	return ctx.JSON(http.StatusOK, CheckDeliveryResponse{
		Available:             availability.Available,
		EstimatedDeliveryDate: availability.EstimatedDeliveryDate,
		DeliveryDays:          availability.DeliveryDays,
		Zone:                  availability.Zone,
		Cost:                  availability.Cost,
	})
}

// GetProducts handles GET /api/sales/products - proxies the inventory catalog
// with the storefront profit margin applied on top of cost prices.
func (s *Server) GetProducts(ctx echo.Context) error {
	products, err := s.inventory.SearchProducts(ctx.Request().Context(), ctx.QueryParam("search"))
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Failed to fetch products",
		})
	}

	response := ProductListResponse{Data: make([]CatalogProductResponse, len(products))}
	for i, product := range products {
		response.Data[i] = CatalogProductResponse{
			ID:               product.ID,
			SKU:              product.SKU,
			Name:             product.Name,
			Price:            math.Round(product.Price * (1 + profitMargin)),
			CostPrice:        product.Price,
			AvailabilityType: string(product.AvailabilityType),
			EstimatedDays:    product.EstimatedDays,
			Stock:            product.Stock,
		}
	}
	return ctx.JSON(http.StatusOK, response)
}

// CreatePerson handles POST /api/persons.
func (s *Server) CreatePerson(ctx echo.Context) error {
	var request PersonRequest
	if err := ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	cmd, err := commands.NewCreateCustomerCommand(commands.CustomerInput{
		Name:           request.Name,
		Email:          request.Email,
		Address:        request.Address,
		Phone:          request.Phone,
		DocumentNumber: request.DocumentNumber,
	})
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid person data: " + err.Error(),
		})
	}

	created, err := s.createCustomerHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, personResponseFrom(created))
}

// GetPersons handles GET /api/persons.
func (s *Server) GetPersons(ctx echo.Context) error {
	persons, err := s.getAllCustomersHandler.Handle(ctx.Request().Context(), queries.NewGetAllCustomersQuery())
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve persons",
		})
	}

	response := make([]PersonResponse, len(persons))
	for i, person := range persons {
		response[i] = PersonResponse{
			ID:             person.ID.String(),
			Name:           person.Name,
			Email:          person.Email,
			Address:        person.Address,
			Phone:          person.Phone,
			DocumentNumber: person.DocumentNumber,
			CreatedAt:      person.CreatedAt,
		}
	}
	return ctx.JSON(http.StatusOK, response)
}

// GetPerson handles GET /api/persons/:id.
func (s *Server) GetPerson(ctx echo.Context) error {
	personID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid person id",
		})
	}

	query, err := queries.NewGetCustomerQuery(personID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid person id",
		})
	}

	person, err := s.getCustomerHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, PersonResponse{
		ID:             person.ID.String(),
		Name:           person.Name,
		Email:          person.Email,
		Address:        person.Address,
		Phone:          person.Phone,
		DocumentNumber: person.DocumentNumber,
		CreatedAt:      person.CreatedAt,
	})
}

// UpdatePerson handles PUT /api/persons/:id.
func (s *Server) UpdatePerson(ctx echo.Context) error {
	personID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid person id",
		})
	}

	var request PersonRequest
	if err := ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	cmd, err := commands.NewUpdateCustomerCommand(personID, commands.CustomerInput{
		Name:           request.Name,
		Email:          request.Email,
		Address:        request.Address,
		Phone:          request.Phone,
		DocumentNumber: request.DocumentNumber,
	})
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid person data: " + err.Error(),
		})
	}

	updated, err := s.updateCustomerHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, personResponseFrom(updated))
}

// errorResponse maps application errors to HTTP status codes.
func (s *Server) errorResponse(ctx echo.Context, err error) error {
	conflict := &errs.StateConflictError{}

	switch {
	case errors.As(err, &conflict):
		message := "Sale is not pending"
		if errors.Is(conflict.Cause, sale.ErrSaleExpired) {
			message = "Sale has expired"
		}
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: message,
		})
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, ErrorResponse{
			Code:    http.StatusNotFound,
			Message: "Not found",
		})
	case errors.Is(err, errs.ErrObjectAlreadyExists):
		return ctx.JSON(http.StatusConflict, ErrorResponse{
			Code:    http.StatusConflict,
			Message: "Already exists",
		})
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
	default:
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Internal Server Error",
		})
	}
}

// parseDeliveryDate accepts RFC 3339 timestamps and plain dates.
func parseDeliveryDate(value string) (time.Time, error) {
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return parsed, nil
	}
	return time.Parse("2006-01-02", value)
}

func saleResponseFrom(aggregate *sale.Sale) SaleResponse {
	items := make([]SaleItemResponse, len(aggregate.Items()))
	for i, item := range aggregate.Items() {
		items[i] = SaleItemResponse{
			ProductID: item.ProductID(),
			Quantity:  item.Quantity(),
			UnitPrice: item.UnitPrice(),
			Subtotal:  item.Subtotal(),
		}
	}

	return SaleResponse{
		ID:             aggregate.ID().String(),
		CustomerID:     aggregate.CustomerID().String(),
		Items:          items,
		Total:          aggregate.Total(),
		DeliveryMethod: aggregate.DeliveryMethod().String(),
		Status:         aggregate.Status().String(),
		ExpiresAt:      aggregate.ExpiresAt(),
		DeliveryDate:   aggregate.DeliveryDate(),
		DispatchID:     aggregate.DispatchID(),
		CreatedAt:      aggregate.CreatedAt(),
	}
}

func saleResponseFromReadModel(model queries.GetAllSalesQueryResponse) SaleResponse {
	items := make([]SaleItemResponse, len(model.Items))
	for i, item := range model.Items {
		items[i] = SaleItemResponse{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Subtotal:  item.Subtotal,
		}
	}

	return SaleResponse{
		ID:         model.ID.String(),
		CustomerID: model.Customer.ID.String(),
		Customer: &SaleCustomerResponse{
			ID:    model.Customer.ID.String(),
			Name:  model.Customer.Name,
			Email: model.Customer.Email,
		},
		Items:          items,
		Total:          model.Total,
		DeliveryMethod: model.DeliveryMethod,
		Status:         model.Status,
		ExpiresAt:      model.ExpiresAt,
		DeliveryDate:   model.DeliveryDate,
		DispatchID:     model.DispatchID,
		CreatedAt:      model.CreatedAt,
	}
}

func customerSummaryFrom(aggregate *customer.Customer) *SaleCustomerResponse {
	return &SaleCustomerResponse{
		ID:    aggregate.ID().String(),
		Name:  aggregate.Name(),
		Email: aggregate.Email().String(),
	}
}

func personResponseFrom(aggregate *customer.Customer) PersonResponse {
	return PersonResponse{
		ID:             aggregate.ID().String(),
		Name:           aggregate.Name(),
		Email:          aggregate.Email().String(),
		Address:        aggregate.Address().String(),
		Phone:          aggregate.Phone(),
		DocumentNumber: aggregate.DocumentNumber(),
		CreatedAt:      aggregate.CreatedAt(),
	}
}
