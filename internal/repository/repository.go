package repository

import (
	"context"

	"storefront/internal/model"
	"storefront/internal/query"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ProductRepository defines the interface for product data access operations.
type ProductRepository interface {
	// List retrieves one page of products narrowed by the query, together
	// with the total matching count.
	List(ctx context.Context, q query.ProductQuery) ([]model.Product, int, error)

	// GetAll retrieves the full unfiltered catalogue.
	GetAll(ctx context.Context) ([]model.Product, error)

	// GetByID retrieves a single product by its ID. Returns (nil, nil) when
	// the product does not exist.
	GetByID(ctx context.Context, id int64) (*model.Product, error)

	// GetByIDs retrieves multiple products by their IDs.
	GetByIDs(ctx context.Context, ids []int64) ([]model.Product, error)

	// Create inserts a new product and fills its generated ID and timestamp.
	Create(ctx context.Context, product *model.Product) error

	// Update replaces a product row. Returns false when no row matched.
	Update(ctx context.Context, product *model.Product) (bool, error)

	// Delete removes a product. Returns false when no row matched.
	Delete(ctx context.Context, id int64) (bool, error)

	// ValidateProductsExist checks if all provided product IDs exist in the
	// database. Returns model.ErrProductNotFound if any is missing.
	ValidateProductsExist(ctx context.Context, ids []int64) error
}

// OrderRepository defines the interface for order data access operations.
// Multi-row mutations run inside a caller-provided transaction so an order
// and its items commit or roll back as one unit.
type OrderRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// CreateOrder inserts a new order within the provided transaction.
	CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error

	// CreateOrderItems inserts multiple order items within the provided transaction.
	CreateOrderItems(ctx context.Context, tx pgx.Tx, items []model.OrderItem) error

	// UpdateOrder updates an order's status within the provided transaction.
	// Returns false when no row matched.
	UpdateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) (bool, error)

	// DeleteItems removes all items of an order within the provided transaction.
	DeleteItems(ctx context.Context, tx pgx.Tx, orderID uuid.UUID) error

	// GetByID retrieves an order by its ID along with its items. Returns
	// (nil, nil, nil) when the order does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, []model.OrderItem, error)

	// List retrieves orders, optionally scoped to a single owner.
	List(ctx context.Context, ownerID *uuid.UUID) ([]model.Order, error)

	// ItemsForOrders retrieves the items of the given orders keyed by order ID.
	ItemsForOrders(ctx context.Context, orderIDs []uuid.UUID) (map[uuid.UUID][]model.OrderItem, error)

	// Delete removes an order and, via cascade, its items. Returns false when
	// no row matched.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

// UserRepository defines the interface for user data access operations.
type UserRepository interface {
	// List retrieves all users.
	List(ctx context.Context) ([]model.User, error)

	// GetByID retrieves a single user by ID. Returns (nil, nil) when the
	// user does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
}
