package searching

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"catalog/internal/errors"
	"catalog/internal/search"
)

const (
	searchQueryBy         = "name,description,tags"
	searchSortBy          = "rating:desc,price:asc"
	recommendationQueryBy = "tags,category,name"
	recommendationSortBy  = "rating:desc"
)

type SearchService interface {
	Search(ctx context.Context, query *SearchQuery) (SearchResponse, error)
	GetCategories(ctx context.Context) (CategoriesResponse, error)
	GetRecommendations(ctx context.Context, productID string, limit int) (RecommendationsResponse, error)
}

type svc struct {
	engine search.Engine
	logger *slog.Logger
}

func NewSearchService(engine search.Engine, logger *slog.Logger) SearchService {
	return &svc{
		engine: engine,
		logger: logger,
	}
}

// Search runs full-text search over name, description and tags, best-rated
// first, with the optional filter conjunction applied.
func (s *svc) Search(ctx context.Context, query *SearchQuery) (SearchResponse, error) {
	s.logger.InfoContext(ctx, "Searching products", "query", query.Query)

	result, err := s.engine.Search(ctx, search.ProductsCollection, search.Params{
		Query:    query.Query,
		QueryBy:  searchQueryBy,
		SortBy:   searchSortBy,
		FilterBy: query.FilterExpression(),
	})
	if err != nil {
		return SearchResponse{}, errors.New(errors.ErrUpstream, fmt.Sprintf("Search failed: %v", err), err)
	}

	return SearchResponse{
		Query:   query.Query,
		Found:   result.Found,
		Results: result.Hits,
	}, nil
}

// GetCategories returns the distinct category values currently stored,
// in the order the engine's faceting returns them.
func (s *svc) GetCategories(ctx context.Context) (CategoriesResponse, error) {
	result, err := s.engine.Search(ctx, search.ProductsCollection, search.Params{
		Query:   "*",
		FacetBy: "category",
	})
	if err != nil {
		return CategoriesResponse{}, errors.New(errors.ErrUpstream, fmt.Sprintf("Failed to get categories: %v", err), err)
	}

	categories := []string{}
	for _, facet := range result.FacetCounts {
		if facet.FieldName != "category" {
			continue
		}
		for _, count := range facet.Counts {
			categories = append(categories, count.Value)
		}
	}

	return CategoriesResponse{Categories: categories}, nil
}

// GetRecommendations searches for products sharing tags and category with
// the source product, excluding the source itself.
func (s *svc) GetRecommendations(ctx context.Context, productID string, limit int) (RecommendationsResponse, error) {
	source, err := s.engine.GetDocument(ctx, search.ProductsCollection, productID)
	if err != nil {
		return RecommendationsResponse{}, errors.New(errors.ErrUpstream, fmt.Sprintf("Failed to get recommendations: %v", err), err)
	}

	tags, err := documentTags(source)
	if err != nil {
		return RecommendationsResponse{}, errors.New(errors.ErrUpstream, fmt.Sprintf("Failed to get recommendations: %v", err), err)
	}

	result, err := s.engine.Search(ctx, search.ProductsCollection, search.Params{
		Query:    strings.Join(tags, " "),
		QueryBy:  recommendationQueryBy,
		FilterBy: fmt.Sprintf("id:!=%s", productID),
		SortBy:   recommendationSortBy,
		PerPage:  &limit,
	})
	if err != nil {
		return RecommendationsResponse{}, errors.New(errors.ErrUpstream, fmt.Sprintf("Failed to get recommendations: %v", err), err)
	}

	return RecommendationsResponse{
		SourceProduct:   source,
		Recommendations: result.Hits,
	}, nil
}

func documentTags(document map[string]any) ([]string, error) {
	raw, ok := document["tags"].([]any)
	if !ok {
		return nil, fmt.Errorf("source product has no tags field")
	}
	tags := make([]string, 0, len(raw))
	for _, t := range raw {
		tag, ok := t.(string)
		if !ok {
			return nil, fmt.Errorf("source product has malformed tags")
		}
		tags = append(tags, tag)
	}
	return tags, nil
}
