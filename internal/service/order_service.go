package service

import (
	"context"
	"fmt"
	"time"

	"storefront/internal/auth"
	"storefront/internal/config"
	"storefront/internal/model"
	"storefront/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// orderService implements OrderService.
type orderService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	visibility  string
	logger      zerolog.Logger
}

// NewOrderService creates a new order service. Visibility controls order read
// scope, see config.OrdersConfig.
func NewOrderService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	visibility string,
	logger zerolog.Logger,
) OrderService {
	return &orderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		visibility:  visibility,
		logger:      logger.With().Str("service", "order").Logger(),
	}
}

// ownerScope returns the owner filter to apply for the caller, or an error
// when owner-scoped reads require an identity that is missing.
func (s *orderService) ownerScope(ctx context.Context) (*uuid.UUID, error) {
	if s.visibility != config.VisibilityOwner {
		return nil, nil
	}

	identity, ok := auth.FromContext(ctx)
	if !ok {
		return nil, auth.ErrUnauthenticated
	}
	if identity.IsAdmin() {
		return nil, nil
	}
	return &identity.UserID, nil
}

// List retrieves orders visible to the caller with computed totals.
func (s *orderService) List(ctx context.Context) ([]model.OrderResponse, error) {
	owner, err := s.ownerScope(ctx)
	if err != nil {
		return nil, err
	}

	orders, err := s.orderRepo.List(ctx, owner)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list orders")
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	orderIDs := make([]uuid.UUID, len(orders))
	for i, order := range orders {
		orderIDs[i] = order.ID
	}

	itemsByOrder, err := s.orderRepo.ItemsForOrders(ctx, orderIDs)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to load order items")
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	products, err := s.productsForItems(ctx, itemsByOrder)
	if err != nil {
		return nil, err
	}

	responses := make([]model.OrderResponse, len(orders))
	for i, order := range orders {
		responses[i] = model.NewOrderResponse(order, itemsByOrder[order.ID], products)
	}

	s.logger.Debug().Int("count", len(responses)).Msg("retrieved orders")
	return responses, nil
}

// GetByID retrieves an order visible to the caller.
func (s *orderService) GetByID(ctx context.Context, id uuid.UUID) (*model.OrderResponse, error) {
	owner, err := s.ownerScope(ctx)
	if err != nil {
		return nil, err
	}

	order, items, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to get order")
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if order == nil {
		return nil, model.ErrOrderNotFound
	}

	// Owner scoping narrows the queryset, so a foreign order reads as absent
	// rather than revealing its existence.
	if owner != nil && order.UserID != *owner {
		return nil, model.ErrOrderNotFound
	}

	resp, err := s.buildResponse(ctx, *order, items)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// Create persists a new order with its items in one transaction.
func (s *orderService) Create(ctx context.Context, req *model.OrderRequest) (resp *model.OrderResponse, err error) {
	if err := req.Validate(); err != nil {
		s.logger.Warn().Err(err).Msg("order create rejected")
		return nil, err
	}

	identity, ok := auth.FromContext(ctx)
	if !ok {
		return nil, auth.ErrUnauthenticated
	}

	productIDs := make([]int64, len(req.Items))
	for i, item := range req.Items {
		productIDs[i] = item.ProductID
	}

	if err := s.productRepo.ValidateProductsExist(ctx, productIDs); err != nil {
		s.logger.Warn().
			Int("product_count", len(productIDs)).
			Err(err).
			Msg("product validation failed")
		return nil, err
	}

	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	// The whole order mutation rolls back if any row fails to attach.
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	now := time.Now()
	order := &model.Order{
		ID:        uuid.New(),
		UserID:    identity.UserID,
		Status:    req.Status,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err = s.orderRepo.CreateOrder(ctx, tx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	items := newOrderItems(order.ID, req.Items)
	if err = s.orderRepo.CreateOrderItems(ctx, tx, items); err != nil {
		return nil, fmt.Errorf("failed to create order items: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to commit transaction")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.logger.Info().
		Str("order_id", order.ID.String()).
		Int("item_count", len(items)).
		Msg("order created")

	return s.buildResponse(ctx, *order, items)
}

// Update changes an order's status and, when items are supplied, replaces the
// whole item set: existing items are deleted and recreated from the payload
// inside one transaction.
func (s *orderService) Update(ctx context.Context, id uuid.UUID, req *model.OrderUpdateRequest) (resp *model.OrderResponse, err error) {
	if err := req.Validate(); err != nil {
		s.logger.Warn().Err(err).Str("order_id", id.String()).Msg("order update rejected")
		return nil, err
	}

	order, existingItems, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if order == nil {
		return nil, model.ErrOrderNotFound
	}

	items := existingItems
	if req.Items != nil {
		productIDs := make([]int64, len(*req.Items))
		for i, item := range *req.Items {
			productIDs[i] = item.ProductID
		}
		if err := s.productRepo.ValidateProductsExist(ctx, productIDs); err != nil {
			s.logger.Warn().Err(err).Str("order_id", id.String()).Msg("product validation failed")
			return nil, err
		}
	}

	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to update order: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	order.Status = req.Status
	order.UpdatedAt = time.Now()

	found, err := s.orderRepo.UpdateOrder(ctx, tx, order)
	if err != nil {
		return nil, fmt.Errorf("failed to update order: %w", err)
	}
	if !found {
		err = model.ErrOrderNotFound
		return nil, err
	}

	if req.Items != nil {
		if err = s.orderRepo.DeleteItems(ctx, tx, id); err != nil {
			return nil, fmt.Errorf("failed to replace order items: %w", err)
		}
		items = newOrderItems(id, *req.Items)
		if err = s.orderRepo.CreateOrderItems(ctx, tx, items); err != nil {
			return nil, fmt.Errorf("failed to replace order items: %w", err)
		}
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to commit transaction")
		return nil, fmt.Errorf("failed to update order: %w", err)
	}

	s.logger.Info().
		Str("order_id", id.String()).
		Int("item_count", len(items)).
		Msg("order updated")

	return s.buildResponse(ctx, *order, items)
}

// Delete removes an order and its items.
func (s *orderService) Delete(ctx context.Context, id uuid.UUID) error {
	found, err := s.orderRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}
	if !found {
		return model.ErrOrderNotFound
	}

	s.logger.Info().Str("order_id", id.String()).Msg("order deleted")
	return nil
}

// buildResponse loads the referenced products and assembles the order
// representation with computed subtotals.
func (s *orderService) buildResponse(ctx context.Context, order model.Order, items []model.OrderItem) (*model.OrderResponse, error) {
	products, err := s.productsForItems(ctx, map[uuid.UUID][]model.OrderItem{order.ID: items})
	if err != nil {
		return nil, err
	}

	resp := model.NewOrderResponse(order, items, products)
	return &resp, nil
}

// productsForItems loads every product referenced by the given items, keyed
// by product ID.
func (s *orderService) productsForItems(ctx context.Context, itemsByOrder map[uuid.UUID][]model.OrderItem) (map[int64]model.Product, error) {
	seen := make(map[int64]struct{})
	var productIDs []int64
	for _, items := range itemsByOrder {
		for _, item := range items {
			if _, ok := seen[item.ProductID]; !ok {
				seen[item.ProductID] = struct{}{}
				productIDs = append(productIDs, item.ProductID)
			}
		}
	}

	products, err := s.productRepo.GetByIDs(ctx, productIDs)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to retrieve product details")
		return nil, fmt.Errorf("failed to retrieve product details: %w", err)
	}

	byID := make(map[int64]model.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	return byID, nil
}

func newOrderItems(orderID uuid.UUID, items []model.OrderItemRequest) []model.OrderItem {
	out := make([]model.OrderItem, len(items))
	for i, item := range items {
		out[i] = model.OrderItem{
			ID:        uuid.New(),
			OrderID:   orderID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		}
	}
	return out
}
