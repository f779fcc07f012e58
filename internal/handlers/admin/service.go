package admin

import (
	"context"
	"fmt"
	"log/slog"

	"catalog/internal/errors"
	"catalog/internal/search"
)

type AdminService interface {
	ListCollections(ctx context.Context) (CollectionsResponse, error)
	GetCollection(ctx context.Context, name string) (search.Collection, error)
	CollectionStats(ctx context.Context, name string) (CollectionStatsResponse, error)
	EngineStats(ctx context.Context) (EngineStatsResponse, error)
}

type svc struct {
	engine search.Engine
	logger *slog.Logger
}

func NewAdminService(engine search.Engine, logger *slog.Logger) AdminService {
	return &svc{
		engine: engine,
		logger: logger,
	}
}

func (s *svc) ListCollections(ctx context.Context) (CollectionsResponse, error) {
	collections, err := s.engine.ListCollections(ctx)
	if err != nil {
		return CollectionsResponse{}, errors.New(errors.ErrUpstream, fmt.Sprintf("Failed to get collections: %v", err), err)
	}
	return CollectionsResponse{Collections: collections}, nil
}

func (s *svc) GetCollection(ctx context.Context, name string) (search.Collection, error) {
	collection, err := s.engine.GetCollection(ctx, name)
	if err != nil {
		return search.Collection{}, errors.New(errors.ErrNotFound, fmt.Sprintf("Collection not found: %v", err), err)
	}
	return collection, nil
}

// CollectionStats combines the schema with a count-only wildcard search.
func (s *svc) CollectionStats(ctx context.Context, name string) (CollectionStatsResponse, error) {
	collection, err := s.engine.GetCollection(ctx, name)
	if err != nil {
		return CollectionStatsResponse{}, errors.New(errors.ErrUpstream, fmt.Sprintf("Failed to get collection stats: %v", err), err)
	}

	result, err := s.countDocuments(ctx, name)
	if err != nil {
		return CollectionStatsResponse{}, errors.New(errors.ErrUpstream, fmt.Sprintf("Failed to get collection stats: %v", err), err)
	}

	return CollectionStatsResponse{
		CollectionName: name,
		Schema:         collection,
		DocumentCount:  result.Found,
		SearchTimeMs:   result.SearchTimeMs,
	}, nil
}

// EngineStats aggregates document counts across every collection. A
// collection whose count probe fails is reported with an "unknown" count
// and left out of the total rather than failing the whole response.
func (s *svc) EngineStats(ctx context.Context) (EngineStatsResponse, error) {
	collections, err := s.engine.ListCollections(ctx)
	if err != nil {
		return EngineStatsResponse{}, errors.New(errors.ErrUpstream, fmt.Sprintf("Failed to get search engine stats: %v", err), err)
	}

	totalDocuments := 0
	stats := make([]CollectionStat, 0, len(collections))

	for _, collection := range collections {
		result, err := s.countDocuments(ctx, collection.Name)
		if err != nil {
			s.logger.WarnContext(ctx, "Count probe failed for collection", "collection", collection.Name, "error", err)
			stats = append(stats, CollectionStat{
				Name:          collection.Name,
				DocumentCount: "unknown",
				Fields:        len(collection.Fields),
			})
			continue
		}

		totalDocuments += result.Found
		stats = append(stats, CollectionStat{
			Name:          collection.Name,
			DocumentCount: result.Found,
			Fields:        len(collection.Fields),
		})
	}

	return EngineStatsResponse{
		TotalCollections: len(collections),
		TotalDocuments:   totalDocuments,
		Collections:      stats,
	}, nil
}

// countDocuments runs a wildcard search with per_page=0: no documents come
// back, only the found-count.
func (s *svc) countDocuments(ctx context.Context, collection string) (search.Result, error) {
	perPage := 0
	return s.engine.Search(ctx, collection, search.Params{
		Query:   "*",
		PerPage: &perPage,
	})
}
