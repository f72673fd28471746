package service

import (
	"context"
	"fmt"

	"storefront/internal/model"
	"storefront/internal/query"
	"storefront/internal/repository"

	"github.com/rs/zerolog"
)

// productService implements ProductService.
type productService struct {
	productRepo repository.ProductRepository
	logger      zerolog.Logger
}

// NewProductService creates a new product service.
func NewProductService(productRepo repository.ProductRepository, logger zerolog.Logger) ProductService {
	return &productService{
		productRepo: productRepo,
		logger:      logger.With().Str("service", "product").Logger(),
	}
}

// List retrieves a filtered, ordered, paginated product page.
func (s *productService) List(ctx context.Context, q query.ProductQuery) (*model.ProductPage, error) {
	products, total, err := s.productRepo.List(ctx, q)
	if err != nil {
		s.logger.Error().Err(err).
			Int("page", q.Page).
			Int("size", q.Size).
			Msg("failed to list products")
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	s.logger.Debug().
		Int("count", len(products)).
		Int("total", total).
		Int("page", q.Page).
		Msg("retrieved product page")

	return &model.ProductPage{
		Count:   total,
		Page:    q.Page,
		Size:    q.Size,
		Results: model.NewProductResponses(products),
	}, nil
}

// GetByID retrieves a single product by ID.
func (s *productService) GetByID(ctx context.Context, id int64) (*model.ProductResponse, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("product_id", id).Msg("failed to get product by ID")
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	if product == nil {
		return nil, model.ErrProductNotFound
	}

	resp := model.NewProductResponse(*product)
	return &resp, nil
}

// Create validates and persists a new product.
func (s *productService) Create(ctx context.Context, req *model.ProductRequest) (*model.ProductResponse, error) {
	if err := req.Validate(); err != nil {
		s.logger.Warn().Err(err).Msg("product create rejected")
		return nil, err
	}

	product := &model.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		s.logger.Error().Err(err).Str("name", req.Name).Msg("failed to create product")
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.logger.Info().Int64("product_id", product.ID).Msg("product created")

	resp := model.NewProductResponse(*product)
	return &resp, nil
}

// Replace validates and fully replaces an existing product.
func (s *productService) Replace(ctx context.Context, id int64, req *model.ProductRequest) (*model.ProductResponse, error) {
	if err := req.Validate(); err != nil {
		s.logger.Warn().Err(err).Int64("product_id", id).Msg("product replace rejected")
		return nil, err
	}

	product := &model.Product{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
	}

	found, err := s.productRepo.Update(ctx, product)
	if err != nil {
		s.logger.Error().Err(err).Int64("product_id", id).Msg("failed to replace product")
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	if !found {
		return nil, model.ErrProductNotFound
	}

	s.logger.Info().Int64("product_id", id).Msg("product replaced")

	resp := model.NewProductResponse(*product)
	return &resp, nil
}

// Patch applies a partial update to an existing product.
func (s *productService) Patch(ctx context.Context, id int64, patch *model.ProductPatch) (*model.ProductResponse, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("product_id", id).Msg("failed to load product for patch")
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}

	if err := patch.Apply(product); err != nil {
		s.logger.Warn().Err(err).Int64("product_id", id).Msg("product patch rejected")
		return nil, err
	}

	found, err := s.productRepo.Update(ctx, product)
	if err != nil {
		s.logger.Error().Err(err).Int64("product_id", id).Msg("failed to patch product")
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	if !found {
		return nil, model.ErrProductNotFound
	}

	s.logger.Info().Int64("product_id", id).Msg("product patched")

	resp := model.NewProductResponse(*product)
	return &resp, nil
}

// Delete removes a product.
func (s *productService) Delete(ctx context.Context, id int64) error {
	found, err := s.productRepo.Delete(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("product_id", id).Msg("failed to delete product")
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if !found {
		return model.ErrProductNotFound
	}

	s.logger.Info().Int64("product_id", id).Msg("product deleted")
	return nil
}

// Info computes the aggregate over the full unfiltered catalogue at request
// time; nothing is cached.
func (s *productService) Info(ctx context.Context) (*model.ProductInfoResponse, error) {
	products, err := s.productRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to load catalogue for info aggregate")
		return nil, fmt.Errorf("failed to get products: %w", err)
	}

	info := model.NewProductInfoResponse(products)
	return &info, nil
}
