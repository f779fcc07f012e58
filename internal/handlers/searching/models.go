package searching

import (
	"fmt"
	"strings"

	"catalog/internal/search"
)

// SearchQuery is the request body of POST /search/. The optional filters
// use pointers so "absent" and "zero" stay distinguishable.
type SearchQuery struct {
	Query    string   `json:"query"`
	Category *string  `json:"category"`
	MinPrice *float64 `json:"min_price"`
	MaxPrice *float64 `json:"max_price"`
}

// FilterExpression builds the engine's filter_by conjunction: one clause
// per supplied filter, joined with &&, in the order category, min_price,
// max_price. An empty category counts as absent.
func (q *SearchQuery) FilterExpression() string {
	var filters []string
	if q.Category != nil && *q.Category != "" {
		filters = append(filters, fmt.Sprintf("category:=%s", *q.Category))
	}
	if q.MinPrice != nil {
		filters = append(filters, fmt.Sprintf("price:>=%v", *q.MinPrice))
	}
	if q.MaxPrice != nil {
		filters = append(filters, fmt.Sprintf("price:<=%v", *q.MaxPrice))
	}
	return strings.Join(filters, " && ")
}

type SearchResponse struct {
	Query   string       `json:"query"`
	Found   int          `json:"found"`
	Results []search.Hit `json:"results"`
}

type CategoriesResponse struct {
	Categories []string `json:"categories"`
}

type RecommendationsResponse struct {
	SourceProduct   map[string]any `json:"source_product"`
	Recommendations []search.Hit   `json:"recommendations"`
}
