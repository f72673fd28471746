package service

import (
	"context"

	"storefront/internal/model"
	"storefront/internal/query"

	"github.com/google/uuid"
)

// ProductService defines operations for catalogue management.
type ProductService interface {
	// List retrieves a filtered, ordered, paginated product page.
	List(ctx context.Context, q query.ProductQuery) (*model.ProductPage, error)

	// GetByID retrieves a single product by ID.
	GetByID(ctx context.Context, id int64) (*model.ProductResponse, error)

	// Create validates and persists a new product.
	Create(ctx context.Context, req *model.ProductRequest) (*model.ProductResponse, error)

	// Replace validates and fully replaces an existing product.
	Replace(ctx context.Context, id int64, req *model.ProductRequest) (*model.ProductResponse, error)

	// Patch applies a partial update to an existing product.
	Patch(ctx context.Context, id int64, patch *model.ProductPatch) (*model.ProductResponse, error)

	// Delete removes a product.
	Delete(ctx context.Context, id int64) error

	// Info computes the aggregate over the full unfiltered catalogue.
	Info(ctx context.Context) (*model.ProductInfoResponse, error)
}

// OrderService defines operations for order management.
type OrderService interface {
	// List retrieves orders visible to the caller.
	List(ctx context.Context) ([]model.OrderResponse, error)

	// GetByID retrieves an order visible to the caller.
	GetByID(ctx context.Context, id uuid.UUID) (*model.OrderResponse, error)

	// Create persists a new order with its items in one transaction. The
	// owning user is the authenticated caller.
	Create(ctx context.Context, req *model.OrderRequest) (*model.OrderResponse, error)

	// Update changes an order's status and, when items are supplied,
	// replaces the whole item set in one transaction.
	Update(ctx context.Context, id uuid.UUID, req *model.OrderUpdateRequest) (*model.OrderResponse, error)

	// Delete removes an order and its items.
	Delete(ctx context.Context, id uuid.UUID) error
}

// UserService defines read operations over users.
type UserService interface {
	// List retrieves all users with their order summaries.
	List(ctx context.Context) ([]model.UserResponse, error)
}
