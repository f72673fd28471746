package model

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus enumerates the lifecycle states of an order.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusComplete  OrderStatus = "complete"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Valid reports whether the status is one of the known states.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusComplete, OrderStatusCancelled:
		return true
	}
	return false
}

// Order represents a customer order.
type Order struct {
	ID        uuid.UUID   `json:"id" db:"id"`
	UserID    uuid.UUID   `json:"userId" db:"user_id"`
	Status    OrderStatus `json:"status" db:"status"`
	CreatedAt time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time   `json:"updatedAt" db:"updated_at"`
}

// OrderItem represents a line item in an order. Subtotals are never stored;
// they are computed from the referenced product's current price at read time.
type OrderItem struct {
	ID        uuid.UUID `json:"-" db:"id"`
	OrderID   uuid.UUID `json:"-" db:"order_id"`
	ProductID int64     `json:"productId" db:"product_id"`
	Quantity  int       `json:"quantity" db:"quantity"`
}

// OrderItemRequest represents a single item in an order write payload.
type OrderItemRequest struct {
	ProductID int64 `json:"product"`
	Quantity  int   `json:"quantity"`
}

// OrderRequest represents the payload for creating an order. The owning user
// is taken from the authenticated caller, never from the payload.
type OrderRequest struct {
	Status OrderStatus        `json:"status"`
	Items  []OrderItemRequest `json:"items"`
}

// Validate checks field-level constraints on an order create.
func (r *OrderRequest) Validate() error {
	errs := validateOrderFields(r.Status, r.Items, true)
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// OrderUpdateRequest represents the payload for updating an order. A nil item
// list keeps the existing items; a non-nil list replaces them wholesale.
type OrderUpdateRequest struct {
	Status OrderStatus         `json:"status"`
	Items  *[]OrderItemRequest `json:"items"`
}

// Validate checks field-level constraints on an order update.
func (r *OrderUpdateRequest) Validate() error {
	var items []OrderItemRequest
	if r.Items != nil {
		items = *r.Items
	}
	errs := validateOrderFields(r.Status, items, r.Items != nil)
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validateOrderFields(status OrderStatus, items []OrderItemRequest, requireItems bool) ValidationErrors {
	var errs ValidationErrors
	if !status.Valid() {
		errs = append(errs, FieldError{Field: "status", Message: "status must be pending, complete or cancelled"})
	}
	if requireItems && len(items) == 0 {
		errs = append(errs, FieldError{Field: "items", Message: "order must contain at least one item"})
	}
	for _, item := range items {
		if item.ProductID <= 0 {
			errs = append(errs, FieldError{Field: "items", Message: "product reference is required"})
			break
		}
	}
	for _, item := range items {
		if item.Quantity <= 0 {
			errs = append(errs, FieldError{Field: "items", Message: "quantity must be greater than zero"})
			break
		}
	}
	return errs
}
