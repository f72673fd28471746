package service

import (
	"context"
	"fmt"

	"storefront/internal/model"
	"storefront/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// userService implements UserService.
type userService struct {
	userRepo  repository.UserRepository
	orderRepo repository.OrderRepository
	// Product rows are needed to resolve item product names in the nested
	// order summaries.
	productRepo repository.ProductRepository
	logger      zerolog.Logger
}

// NewUserService creates a new user service.
func NewUserService(
	userRepo repository.UserRepository,
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	logger zerolog.Logger,
) UserService {
	return &userService{
		userRepo:    userRepo,
		orderRepo:   orderRepo,
		productRepo: productRepo,
		logger:      logger.With().Str("service", "user").Logger(),
	}
}

// List retrieves all users with nested order summaries and computed order
// counts.
func (s *userService) List(ctx context.Context) ([]model.UserResponse, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list users")
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	orders, err := s.orderRepo.List(ctx, nil)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to load orders for user listing")
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	ordersByUser := make(map[uuid.UUID][]model.Order)
	orderIDs := make([]uuid.UUID, len(orders))
	for i, order := range orders {
		ordersByUser[order.UserID] = append(ordersByUser[order.UserID], order)
		orderIDs[i] = order.ID
	}

	itemsByOrder, err := s.orderRepo.ItemsForOrders(ctx, orderIDs)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to load order items for user listing")
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

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
		s.logger.Error().Err(err).Msg("failed to load products for user listing")
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	productsByID := make(map[int64]model.Product, len(products))
	for _, p := range products {
		productsByID[p.ID] = p
	}

	responses := make([]model.UserResponse, len(users))
	for i, user := range users {
		responses[i] = model.NewUserResponse(user, ordersByUser[user.ID], itemsByOrder, productsByID)
	}

	s.logger.Debug().Int("count", len(responses)).Msg("retrieved users")
	return responses, nil
}
