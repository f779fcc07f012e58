package search

// Field is one schema field of a collection.
type Field struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Facet bool   `json:"facet"`
}

// CollectionSchema is the shape used to create a collection.
type CollectionSchema struct {
	Name                string  `json:"name"`
	Fields              []Field `json:"fields"`
	DefaultSortingField string  `json:"default_sorting_field,omitempty"`
}

// Collection mirrors the engine's collection response.
type Collection struct {
	Name                string  `json:"name"`
	NumDocuments        int64   `json:"num_documents"`
	Fields              []Field `json:"fields"`
	DefaultSortingField string  `json:"default_sorting_field,omitempty"`
	CreatedAt           int64   `json:"created_at,omitempty"`
}

// Params is one search call. Zero values mean "engine default";
// PerPage is a pointer because 0 is meaningful (count only, no documents).
type Params struct {
	Query    string
	QueryBy  string
	FilterBy string
	SortBy   string
	FacetBy  string
	Page     int
	PerPage  *int
}

// Hit is one matching document plus the engine's match metadata.
type Hit struct {
	Document   map[string]any `json:"document"`
	Highlights any            `json:"highlights,omitempty"`
	TextMatch  *int64         `json:"text_match,omitempty"`
}

// FacetValue is one value/count pair inside a facet.
type FacetValue struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// FacetCount is the engine's per-field facet aggregation.
type FacetCount struct {
	FieldName string       `json:"field_name"`
	Counts    []FacetValue `json:"counts"`
}

// Result mirrors the engine's search result structure.
type Result struct {
	Found        int          `json:"found"`
	SearchTimeMs int          `json:"search_time_ms"`
	Hits         []Hit        `json:"hits"`
	FacetCounts  []FacetCount `json:"facet_counts,omitempty"`
}
