package products

import (
	"context"
	"fmt"
	"log/slog"

	"catalog/internal/errors"
	"catalog/internal/events"
	"catalog/internal/search"
)

type ProductsService interface {
	ListProducts(ctx context.Context, limit, offset int) (ListProductsResponse, error)
	CreateProduct(ctx context.Context, product *Product) (CreateProductResponse, error)
	GetProduct(ctx context.Context, productID string) (map[string]any, error)
	DeleteProduct(ctx context.Context, productID string) (DeleteProductResponse, error)
}

type svc struct {
	engine       search.Engine
	logger       *slog.Logger
	eventHandler *events.EventHandler
}

func NewProductsService(engine search.Engine, logger *slog.Logger, eventHandler *events.EventHandler) ProductsService {
	return &svc{
		engine:       engine,
		logger:       logger,
		eventHandler: eventHandler,
	}
}

// ListProducts pages through the collection with a wildcard search.
func (s *svc) ListProducts(ctx context.Context, limit, offset int) (ListProductsResponse, error) {
	page := offset/limit + 1

	result, err := s.engine.Search(ctx, search.ProductsCollection, search.Params{
		Query:   "*",
		Page:    page,
		PerPage: &limit,
	})
	if err != nil {
		return ListProductsResponse{}, errors.New(errors.ErrUpstream, fmt.Sprintf("Failed to get products: %v", err), err)
	}

	productDocs := make([]map[string]any, 0, len(result.Hits))
	for _, hit := range result.Hits {
		productDocs = append(productDocs, hit.Document)
	}

	return ListProductsResponse{
		Total:    result.Found,
		Page:     page,
		PerPage:  limit,
		Products: productDocs,
	}, nil
}

func (s *svc) CreateProduct(ctx context.Context, product *Product) (CreateProductResponse, error) {
	if err := product.Validate(); err != nil {
		s.logger.WarnContext(ctx, "Validation failed", "error", err)
		return CreateProductResponse{}, err
	}

	s.logger.InfoContext(ctx, "Creating product", "product_id", product.ID, "name", product.Name)

	created, err := s.engine.CreateDocument(ctx, search.ProductsCollection, product)
	if err != nil {
		return CreateProductResponse{}, errors.New(errors.ErrUpstream, fmt.Sprintf("Failed to add product: %v", err), err)
	}

	s.eventHandler.RaiseProductCreated(ctx, product.ID)

	return CreateProductResponse{
		Message: "Product added successfully",
		Product: created,
	}, nil
}

func (s *svc) GetProduct(ctx context.Context, productID string) (map[string]any, error) {
	product, err := s.engine.GetDocument(ctx, search.ProductsCollection, productID)
	if err != nil {
		return nil, errors.New(errors.ErrNotFound, fmt.Sprintf("Product not found: %v", err), err)
	}
	return product, nil
}

func (s *svc) DeleteProduct(ctx context.Context, productID string) (DeleteProductResponse, error) {
	s.logger.InfoContext(ctx, "Deleting product", "product_id", productID)

	if _, err := s.engine.DeleteDocument(ctx, search.ProductsCollection, productID); err != nil {
		return DeleteProductResponse{}, errors.New(errors.ErrNotFound, fmt.Sprintf("Failed to delete product: %v", err), err)
	}

	s.eventHandler.RaiseProductDeleted(ctx, productID)

	return DeleteProductResponse{
		Message: fmt.Sprintf("Product %s deleted successfully", productID),
	}, nil
}
