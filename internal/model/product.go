package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a catalogue product.
type Product struct {
	ID          int64           `json:"id" db:"id"`
	Name        string          `json:"name" db:"name"`
	Description string          `json:"description" db:"description"`
	Price       decimal.Decimal `json:"price" db:"price"`
	Stock       int             `json:"stock" db:"stock"`
	CreatedAt   time.Time       `json:"createdAt" db:"created_at"`
}

// ProductRequest represents the payload for creating or replacing a product.
type ProductRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
}

// Validate checks field-level constraints on a product write.
func (r *ProductRequest) Validate() error {
	var errs ValidationErrors
	if r.Name == "" {
		errs = append(errs, FieldError{Field: "name", Message: "name is required"})
	}
	if !r.Price.IsPositive() {
		errs = append(errs, FieldError{Field: "price", Message: "price must be greater than 0"})
	}
	if r.Stock < 0 {
		errs = append(errs, FieldError{Field: "stock", Message: "stock cannot be negative"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ProductPatch represents a partial product update. Nil fields are left untouched.
type ProductPatch struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Stock       *int             `json:"stock"`
}

// Apply overlays the patch onto an existing product and validates the result.
func (p *ProductPatch) Apply(product *Product) error {
	if p.Name != nil {
		product.Name = *p.Name
	}
	if p.Description != nil {
		product.Description = *p.Description
	}
	if p.Price != nil {
		product.Price = *p.Price
	}
	if p.Stock != nil {
		product.Stock = *p.Stock
	}

	req := ProductRequest{
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		Stock:       product.Stock,
	}
	return req.Validate()
}
