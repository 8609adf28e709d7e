// Package http exposes the order fulfillment operations over a JSON API.
// It coordinates between HTTP handlers and application use cases; every
// request carries the acting staff role in the X-Actor-Role header.
package http

import (
	"errors"
	"net/http"
	"sort"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/credit"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/staff"
	"fulfillment/internal/core/domain/model/stock"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// ActorRoleHeader names the request header carrying the acting staff role.
const ActorRoleHeader = "X-Actor-Role"

// Server wires the HTTP routes to the application command and query handlers.
type Server struct {
	// Command handlers
	createOrderHandler      commands.CreateOrderCommandHandler
	transitionOrderHandler  *commands.TransitionOrderCommandHandler
	approveBackorderHandler commands.ApproveBackorderCommandHandler
	adjustQuantityHandler   commands.AdjustPackingQuantityCommandHandler

	// Query handlers
	getOrderHandler        queries.GetOrderQueryHandler
	getActiveOrdersHandler queries.GetActiveOrdersQueryHandler

	// transitions backs the next-statuses list on the order read view.
	transitions *services.TransitionTable
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	transitionOrderHandler *commands.TransitionOrderCommandHandler,
	approveBackorderHandler commands.ApproveBackorderCommandHandler,
	adjustQuantityHandler commands.AdjustPackingQuantityCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getActiveOrdersHandler queries.GetActiveOrdersQueryHandler,
	transitions *services.TransitionTable,
) *Server {
	return &Server{
		createOrderHandler:      createOrderHandler,
		transitionOrderHandler:  transitionOrderHandler,
		approveBackorderHandler: approveBackorderHandler,
		adjustQuantityHandler:   adjustQuantityHandler,
		getOrderHandler:         getOrderHandler,
		getActiveOrdersHandler:  getActiveOrdersHandler,
		transitions:             transitions,
	}
}

// RegisterRoutes attaches the API routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")
	api.POST("/orders", s.CreateOrder)
	api.GET("/orders", s.GetActiveOrders)
	api.GET("/orders/:id", s.GetOrder)
	api.POST("/orders/:id/transitions", s.TransitionOrder)
	api.POST("/orders/:id/backorder", s.ApproveBackorder)
	api.POST("/orders/:id/items/:item_id/quantity", s.AdjustPackingQuantity)
}

// ErrorResponse is the JSON error body returned by every handler.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NewLineItemRequest is one line of an order creation request.
type NewLineItemRequest struct {
	ProductID      string  `json:"product_id"`
	Quantity       float64 `json:"quantity"`
	UnitPriceCents int64   `json:"unit_price_cents"`
}

// CreateOrderRequest is the body of POST /api/v1/orders.
type CreateOrderRequest struct {
	CustomerID string               `json:"customer_id"`
	Items      []NewLineItemRequest `json:"items"`
}

// TransitionOrderRequest is the body of POST /api/v1/orders/{id}/transitions.
type TransitionOrderRequest struct {
	Target               string  `json:"target"`
	PackerID             *string `json:"packer_id,omitempty"`
	AdminOverride        bool    `json:"admin_override,omitempty"`
	AllowCrossDayPacking bool    `json:"allow_cross_day_packing,omitempty"`
}

// ApproveBackorderRequest is the body of POST /api/v1/orders/{id}/backorder.
// An empty approved list rejects the backorder outright.
type ApproveBackorderRequest struct {
	ApprovedItemIDs []string `json:"approved_item_ids"`
}

// AdjustPackingQuantityRequest is the body of
// POST /api/v1/orders/{id}/items/{item_id}/quantity.
type AdjustPackingQuantityRequest struct {
	Quantity float64 `json:"quantity"`
}

// OrderDetailsResponse is the read model returned by GET /api/v1/orders/{id},
// extended with the statuses reachable from the order's current one.
type OrderDetailsResponse struct {
	queries.GetOrderQueryResponse
	NextStatuses []string `json:"next_statuses"`
}

// OrderResponse is the order representation returned by command endpoints.
type OrderResponse struct {
	ID              string `json:"id"`
	CustomerID      string `json:"customer_id"`
	Status          string `json:"status"`
	BackorderStatus string `json:"backorder_status"`
	StockConsumed   bool   `json:"stock_consumed"`
	TotalCents      int64  `json:"total_cents"`
}

// CreateOrder handles POST /api/v1/orders - creates a new order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	role, err := actorRole(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	var req CreateOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	customerID, err := kernel.UUIDFromString(req.CustomerID)
	if err != nil {
		return badRequest(ctx, "invalid customer id: "+err.Error())
	}

	items := make([]order.LineItem, 0, len(req.Items))
	for _, line := range req.Items {
		productID, itemErr := kernel.UUIDFromString(line.ProductID)
		if itemErr != nil {
			return badRequest(ctx, "invalid product id: "+itemErr.Error())
		}
		item, itemErr := order.NewLineItem(kernel.NewUUID(), productID, line.Quantity, line.UnitPriceCents)
		if itemErr != nil {
			return badRequest(ctx, "invalid line item: "+itemErr.Error())
		}
		items = append(items, item)
	}

	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), customerID, items, role)
	if err != nil {
		return badRequest(ctx, "invalid order data: "+err.Error())
	}

	created, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return commandError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, toOrderResponse(created))
}

// GetOrder handles GET /api/v1/orders/{id} - retrieves one order.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid order id: "+err.Error())
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	resp, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		var notFoundErr *errs.ObjectNotFoundError
		if errors.As(err, &notFoundErr) {
			return ctx.JSON(http.StatusNotFound, ErrorResponse{
				Code:    http.StatusNotFound,
				Message: err.Error(),
			})
		}
		return internalError(ctx, "failed to retrieve order")
	}

	return ctx.JSON(http.StatusOK, OrderDetailsResponse{
		GetOrderQueryResponse: resp,
		NextStatuses:          s.nextStatuses(resp.Status),
	})
}

// nextStatuses lists the one-step transition targets for a status, sorted for
// a stable response body.
func (s *Server) nextStatuses(current order.Status) []string {
	targets := s.transitions.TargetsFrom(current)
	names := make([]string, 0, len(targets))
	for _, target := range targets {
		names = append(names, target.String())
	}
	sort.Strings(names)
	return names
}

// GetActiveOrders handles GET /api/v1/orders - lists orders still in flight.
func (s *Server) GetActiveOrders(ctx echo.Context) error {
	query := queries.NewGetActiveOrdersQuery()

	orders, err := s.getActiveOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return internalError(ctx, "failed to retrieve orders")
	}

	return ctx.JSON(http.StatusOK, orders)
}

// TransitionOrder handles POST /api/v1/orders/{id}/transitions - moves an
// order along its lifecycle.
func (s *Server) TransitionOrder(ctx echo.Context) error {
	role, err := actorRole(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid order id: "+err.Error())
	}

	var req TransitionOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	target, err := order.StatusFromString(req.Target)
	if err != nil {
		return badRequest(ctx, "invalid target status: "+err.Error())
	}

	opts := commands.TransitionOptions{
		AdminOverride:        req.AdminOverride,
		AllowCrossDayPacking: req.AllowCrossDayPacking,
	}
	if req.PackerID != nil {
		packerID, packerErr := kernel.UUIDFromString(*req.PackerID)
		if packerErr != nil {
			return badRequest(ctx, "invalid packer id: "+packerErr.Error())
		}
		opts.PackerID = &packerID
	}

	cmd, err := commands.NewTransitionOrderCommand(orderID, target, role, opts)
	if err != nil {
		return badRequest(ctx, "invalid transition: "+err.Error())
	}

	transitioned, err := s.transitionOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return commandError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponse(transitioned))
}

// ApproveBackorder handles POST /api/v1/orders/{id}/backorder - resolves a
// pending backorder decision.
func (s *Server) ApproveBackorder(ctx echo.Context) error {
	role, err := actorRole(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid order id: "+err.Error())
	}

	var req ApproveBackorderRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	approvedItemIDs := make([]kernel.UUID, 0, len(req.ApprovedItemIDs))
	for _, raw := range req.ApprovedItemIDs {
		itemID, itemErr := kernel.UUIDFromString(raw)
		if itemErr != nil {
			return badRequest(ctx, "invalid item id: "+itemErr.Error())
		}
		approvedItemIDs = append(approvedItemIDs, itemID)
	}

	cmd, err := commands.NewApproveBackorderCommand(orderID, approvedItemIDs, role)
	if err != nil {
		return badRequest(ctx, "invalid approval: "+err.Error())
	}

	resolved, err := s.approveBackorderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return commandError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponse(resolved))
}

// AdjustPackingQuantity handles POST /api/v1/orders/{id}/items/{item_id}/quantity -
// records the physically packed quantity of a line item.
func (s *Server) AdjustPackingQuantity(ctx echo.Context) error {
	role, err := actorRole(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid order id: "+err.Error())
	}

	itemID, err := kernel.UUIDFromString(ctx.Param("item_id"))
	if err != nil {
		return badRequest(ctx, "invalid item id: "+err.Error())
	}

	var req AdjustPackingQuantityRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewAdjustPackingQuantityCommand(orderID, itemID, req.Quantity, role)
	if err != nil {
		if errors.Is(err, commands.ErrRoleCannotAdjustPacking) {
			return ctx.JSON(http.StatusForbidden, ErrorResponse{
				Code:    http.StatusForbidden,
				Message: err.Error(),
			})
		}
		return badRequest(ctx, "invalid adjustment: "+err.Error())
	}

	adjusted, err := s.adjustQuantityHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return commandError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponse(adjusted))
}

// actorRole extracts and parses the acting role from the request header.
// The system role belongs to internal automation and is never accepted from
// a request.
func actorRole(ctx echo.Context) (staff.Role, error) {
	raw := ctx.Request().Header.Get(ActorRoleHeader)
	if raw == "" {
		return staff.UnknownRole, errors.New(ActorRoleHeader + " header is required")
	}

	role, err := staff.RoleFromString(raw)
	if err != nil {
		return staff.UnknownRole, err
	}
	if role == staff.System {
		return staff.UnknownRole, errors.New("system role is reserved for internal automation")
	}

	return role, nil
}

// commandError maps a command failure to the API status code: 403 for role
// denials, 409 for lifecycle conflicts, 422 for credit and stock shortfalls.
func commandError(ctx echo.Context, err error) error {
	var deniedErr *services.TransitionDeniedError
	if errors.As(err, &deniedErr) {
		status := http.StatusConflict
		if errors.Is(deniedErr.Reason, services.ErrRoleNotPermitted) {
			status = http.StatusForbidden
		}
		return ctx.JSON(status, ErrorResponse{Code: status, Message: err.Error()})
	}

	var notFoundErr *errs.ObjectNotFoundError
	switch {
	case errors.As(err, &notFoundErr):
		return ctx.JSON(http.StatusNotFound, ErrorResponse{
			Code:    http.StatusNotFound,
			Message: err.Error(),
		})
	case errors.Is(err, credit.ErrCreditLimitExceeded),
		errors.Is(err, stock.ErrInsufficientStock):
		return ctx.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Code:    http.StatusUnprocessableEntity,
			Message: err.Error(),
		})
	case errors.Is(err, commands.ErrCrossDayPacking),
		errors.Is(err, order.ErrBackorderIsNotPending),
		errors.Is(err, order.ErrOrderIsNotPacking):
		return ctx.JSON(http.StatusConflict, ErrorResponse{
			Code:    http.StatusConflict,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrValueIsInvalid):
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
	default:
		return internalError(ctx, "operation failed")
	}
}

func toOrderResponse(o *order.Order) OrderResponse {
	return OrderResponse{
		ID:              o.ID().String(),
		CustomerID:      o.CustomerID().String(),
		Status:          o.Status().String(),
		BackorderStatus: o.BackorderStatus().String(),
		StockConsumed:   o.StockConsumed(),
		TotalCents:      o.TotalCents(),
	}
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

func internalError(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
		Code:    http.StatusInternalServerError,
		Message: message,
	})
}
