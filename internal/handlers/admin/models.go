package admin

import (
	"catalog/internal/search"
)

type CollectionsResponse struct {
	Collections []search.Collection `json:"collections"`
}

type CollectionStatsResponse struct {
	CollectionName string            `json:"collection_name"`
	Schema         search.Collection `json:"schema"`
	DocumentCount  int               `json:"document_count"`
	SearchTimeMs   int               `json:"search_time_ms"`
}

// CollectionStat reports "unknown" for DocumentCount when the count probe
// fails, hence the any type.
type CollectionStat struct {
	Name          string `json:"name"`
	DocumentCount any    `json:"document_count"`
	Fields        int    `json:"fields"`
}

type EngineStatsResponse struct {
	TotalCollections int              `json:"total_collections"`
	TotalDocuments   int              `json:"total_documents"`
	Collections      []CollectionStat `json:"collections"`
}
