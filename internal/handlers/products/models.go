package products

import (
	"catalog/internal/errors"
)

// Product is the document shape stored in the engine. The engine owns all
// uniqueness and durability guarantees; this is type-shape validation only.
type Product struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Price       float64  `json:"price"`
	Rating      float64  `json:"rating"`
	Tags        []string `json:"tags"`
}

func (p *Product) Validate() error {
	if p.ID == "" {
		return errors.New(errors.ErrInvalidInput, "Product id is required", nil)
	}
	if p.Name == "" {
		return errors.New(errors.ErrInvalidInput, "Product name is required", nil)
	}
	return nil
}

type ListProductsResponse struct {
	Total    int              `json:"total"`
	Page     int              `json:"page"`
	PerPage  int              `json:"per_page"`
	Products []map[string]any `json:"products"`
}

type CreateProductResponse struct {
	Message string         `json:"message"`
	Product map[string]any `json:"product"`
}

type DeleteProductResponse struct {
	Message string `json:"message"`
}
