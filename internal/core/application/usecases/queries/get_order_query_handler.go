package queries

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"math"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// lineItemRow mirrors the JSONB encoding of a line item on the orders row.
type lineItemRow struct {
	ID             uuid.UUID `json:"id"`
	ProductID      uuid.UUID `json:"product_id"`
	Quantity       float64   `json:"quantity"`
	UnitPriceCents int64     `json:"unit_price_cents"`
	Approved       bool      `json:"approved"`
}

// GetOrderQueryHandler retrieves a single order read model from the database.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for single-order queries.
// Requires a GORM database connection for query execution.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the query and returns the order read model.
// Returns an object-not-found error when the order does not exist.
func (h GetOrderQueryHandler) Handle(
	ctx context.Context,
	query GetOrderQuery,
) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			customer_id,
			status,
			backorder_status,
			stock_consumed,
			items
		FROM orders
		WHERE id = ?
	`, query.OrderID().Bytes()).Row()

	resp, err := scanOrderRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
		}
		return GetOrderQueryResponse{}, err
	}

	return resp, nil
}

// scanOrderRow maps one orders row to the read model, including the JSONB
// item list and the derived totals.
func scanOrderRow(row interface{ Scan(dest ...any) error }) (GetOrderQueryResponse, error) {
	var (
		id, customerID          uuid.UUID
		status, backorderStatus int
		stockConsumed           bool
		itemsRaw                []byte
	)

	if err := row.Scan(&id, &customerID, &status, &backorderStatus, &stockConsumed, &itemsRaw); err != nil {
		return GetOrderQueryResponse{}, err
	}

	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	custID, err := kernel.UUIDFromBytes(customerID[:])
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	var rows []lineItemRow
	if err = json.Unmarshal(itemsRaw, &rows); err != nil {
		return GetOrderQueryResponse{}, err
	}

	resp := GetOrderQueryResponse{
		ID:              orderID,
		CustomerID:      custID,
		Status:          order.Status(status),
		BackorderStatus: order.BackorderStatus(backorderStatus),
		StockConsumed:   stockConsumed,
		Items:           make([]LineItemResponse, 0, len(rows)),
	}

	for _, r := range rows {
		itemID, itemErr := kernel.UUIDFromBytes(r.ID[:])
		if itemErr != nil {
			return GetOrderQueryResponse{}, itemErr
		}
		productID, itemErr := kernel.UUIDFromBytes(r.ProductID[:])
		if itemErr != nil {
			return GetOrderQueryResponse{}, itemErr
		}

		subtotal := int64(math.Round(r.Quantity * float64(r.UnitPriceCents)))
		resp.TotalCents += subtotal
		if r.Approved {
			resp.ChargeableTotalCents += subtotal
		}

		resp.Items = append(resp.Items, LineItemResponse{
			ID:             itemID,
			ProductID:      productID,
			Quantity:       r.Quantity,
			UnitPriceCents: r.UnitPriceCents,
			Approved:       r.Approved,
		})
	}

	return resp, nil
}
