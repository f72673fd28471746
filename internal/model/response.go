package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Response shapes are built here as pure functions over already-loaded rows.
// Derived figures (item subtotals, order totals, order counts) are computed
// from the current product rows, never persisted.

// ProductResponse is the wire representation of a product.
type ProductResponse struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
}

// NewProductResponse maps a product row to its wire representation.
func NewProductResponse(p Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
	}
}

// NewProductResponses maps a slice of product rows.
func NewProductResponses(products []Product) []ProductResponse {
	out := make([]ProductResponse, len(products))
	for i, p := range products {
		out[i] = NewProductResponse(p)
	}
	return out
}

// ProductPage is a paginated product listing.
type ProductPage struct {
	Count   int               `json:"count"`
	Page    int               `json:"page"`
	Size    int               `json:"size"`
	Results []ProductResponse `json:"results"`
}

// OrderItemResponse is the wire representation of a line item nested under an
// order. Product name and price are looked up through the product reference.
type OrderItemResponse struct {
	ProductName  string          `json:"product_name"`
	ProductPrice decimal.Decimal `json:"product_price"`
	Quantity     int             `json:"quantity"`
	ItemSubtotal decimal.Decimal `json:"item_subtotal"`
}

// NewOrderItemResponse builds an item representation from the item row and its
// referenced product.
func NewOrderItemResponse(item OrderItem, product Product) OrderItemResponse {
	return OrderItemResponse{
		ProductName:  product.Name,
		ProductPrice: product.Price,
		Quantity:     item.Quantity,
		ItemSubtotal: product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))),
	}
}

// OrderResponse is the wire representation of an order with its items.
type OrderResponse struct {
	ID         uuid.UUID           `json:"id"`
	CreatedAt  time.Time           `json:"created_at"`
	User       uuid.UUID           `json:"user"`
	Status     OrderStatus         `json:"status"`
	Items      []OrderItemResponse `json:"items"`
	TotalPrice decimal.Decimal     `json:"total_price"`
}

// NewOrderResponse builds an order representation. The products map must hold
// every product referenced by the items.
func NewOrderResponse(order Order, items []OrderItem, products map[int64]Product) OrderResponse {
	itemResponses := make([]OrderItemResponse, len(items))
	total := decimal.Zero
	for i, item := range items {
		itemResponses[i] = NewOrderItemResponse(item, products[item.ProductID])
		total = total.Add(itemResponses[i].ItemSubtotal)
	}
	return OrderResponse{
		ID:         order.ID,
		CreatedAt:  order.CreatedAt,
		User:       order.UserID,
		Status:     order.Status,
		Items:      itemResponses,
		TotalPrice: total,
	}
}

// ProductInfoResponse is the read-only aggregate over the full catalogue.
type ProductInfoResponse struct {
	Products []ProductResponse `json:"products"`
	Count    int               `json:"count"`
	MaxPrice *decimal.Decimal  `json:"max_price"`
}

// NewProductInfoResponse computes the catalogue aggregate. MaxPrice is nil
// when the catalogue is empty.
func NewProductInfoResponse(products []Product) ProductInfoResponse {
	info := ProductInfoResponse{
		Products: NewProductResponses(products),
		Count:    len(products),
	}
	for _, p := range products {
		if info.MaxPrice == nil || p.Price.GreaterThan(*info.MaxPrice) {
			price := p.Price
			info.MaxPrice = &price
		}
	}
	return info
}

// UserOrderItemResponse is the item summary nested under a user's order.
type UserOrderItemResponse struct {
	ProductName string `json:"product_name"`
}

// UserOrderResponse is the order summary nested under a user.
type UserOrderResponse struct {
	ID    uuid.UUID               `json:"id"`
	Items []UserOrderItemResponse `json:"items"`
}

// UserResponse is the wire representation of a user with order summaries.
type UserResponse struct {
	Username      string              `json:"username"`
	Role          Role                `json:"role"`
	Authenticated bool                `json:"is_authenticated"`
	FullName      string              `json:"full_name"`
	Orders        []UserOrderResponse `json:"orders"`
	TotalOrders   int                 `json:"total_orders"`
}

// NewUserResponse builds a user representation with nested order summaries.
func NewUserResponse(user User, orders []Order, itemsByOrder map[uuid.UUID][]OrderItem, products map[int64]Product) UserResponse {
	orderResponses := make([]UserOrderResponse, len(orders))
	for i, order := range orders {
		items := itemsByOrder[order.ID]
		itemResponses := make([]UserOrderItemResponse, len(items))
		for j, item := range items {
			itemResponses[j] = UserOrderItemResponse{ProductName: products[item.ProductID].Name}
		}
		orderResponses[i] = UserOrderResponse{ID: order.ID, Items: itemResponses}
	}
	return UserResponse{
		Username:      user.Username,
		Role:          user.Role,
		Authenticated: true,
		FullName:      user.FullName,
		Orders:        orderResponses,
		TotalOrders:   len(orders),
	}
}
