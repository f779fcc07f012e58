package search

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/typesense/typesense-go/typesense"
	"github.com/typesense/typesense-go/typesense/api"
	"github.com/typesense/typesense-go/typesense/api/pointer"
)

// TypesenseEngine talks to a Typesense server. The client is safe for
// concurrent use, so one instance is shared by every request handler.
type TypesenseEngine struct {
	client *typesense.Client
}

func NewTypesenseEngine(host, port, apiKey string) Engine {
	client := typesense.NewClient(
		typesense.WithServer(fmt.Sprintf("http://%s:%s", host, port)),
		typesense.WithAPIKey(apiKey),
		typesense.WithConnectionTimeout(2*time.Second),
	)
	return &TypesenseEngine{client: client}
}

func (t *TypesenseEngine) HealthCheck(ctx context.Context) error {
	healthy, err := t.client.Health(ctx, 5*time.Second)
	if err != nil {
		return fmt.Errorf("typesense health check failed: %w", err)
	}
	if !healthy {
		return fmt.Errorf("typesense is unhealthy")
	}
	return nil
}

func (t *TypesenseEngine) ListCollections(ctx context.Context) ([]Collection, error) {
	resp, err := t.client.Collections().Retrieve(ctx)
	if err != nil {
		return nil, wrapErr("list collections", err)
	}
	collections := make([]Collection, 0, len(resp))
	for _, c := range resp {
		collections = append(collections, toCollection(c))
	}
	return collections, nil
}

func (t *TypesenseEngine) GetCollection(ctx context.Context, name string) (Collection, error) {
	resp, err := t.client.Collection(name).Retrieve(ctx)
	if err != nil {
		return Collection{}, wrapErr("get collection", err)
	}
	return toCollection(resp), nil
}

func (t *TypesenseEngine) CreateCollection(ctx context.Context, schema CollectionSchema) error {
	apiSchema := &api.CollectionSchema{
		Name:   schema.Name,
		Fields: make([]api.Field, 0, len(schema.Fields)),
	}
	if schema.DefaultSortingField != "" {
		apiSchema.DefaultSortingField = pointer.String(schema.DefaultSortingField)
	}
	for _, f := range schema.Fields {
		field := api.Field{Name: f.Name, Type: f.Type}
		if f.Facet {
			field.Facet = pointer.True()
		}
		apiSchema.Fields = append(apiSchema.Fields, field)
	}

	if _, err := t.client.Collections().Create(ctx, apiSchema); err != nil {
		return wrapErr("create collection", err)
	}
	return nil
}

func (t *TypesenseEngine) DropCollection(ctx context.Context, name string) error {
	if _, err := t.client.Collection(name).Delete(ctx); err != nil {
		return wrapErr("drop collection", err)
	}
	return nil
}

func (t *TypesenseEngine) ImportDocuments(ctx context.Context, collection string, documents []any) error {
	params := &api.ImportDocumentsParams{Action: pointer.String("create")}
	responses, err := t.client.Collection(collection).Documents().Import(ctx, documents, params)
	if err != nil {
		return wrapErr("import documents", err)
	}
	for _, resp := range responses {
		if !resp.Success {
			return fmt.Errorf("typesense import failed: %s", resp.Error)
		}
	}
	return nil
}

func (t *TypesenseEngine) CreateDocument(ctx context.Context, collection string, document any) (map[string]any, error) {
	created, err := t.client.Collection(collection).Documents().Create(ctx, document)
	if err != nil {
		return nil, wrapErr("create document", err)
	}
	return created, nil
}

func (t *TypesenseEngine) GetDocument(ctx context.Context, collection, id string) (map[string]any, error) {
	document, err := t.client.Collection(collection).Document(id).Retrieve(ctx)
	if err != nil {
		return nil, wrapErr("get document", err)
	}
	return document, nil
}

func (t *TypesenseEngine) DeleteDocument(ctx context.Context, collection, id string) (map[string]any, error) {
	document, err := t.client.Collection(collection).Document(id).Delete(ctx)
	if err != nil {
		return nil, wrapErr("delete document", err)
	}
	return document, nil
}

func (t *TypesenseEngine) Search(ctx context.Context, collection string, params Params) (Result, error) {
	searchParams := &api.SearchCollectionParams{
		Q:       params.Query,
		QueryBy: params.QueryBy,
	}
	if params.FilterBy != "" {
		searchParams.FilterBy = pointer.String(params.FilterBy)
	}
	if params.SortBy != "" {
		searchParams.SortBy = pointer.String(params.SortBy)
	}
	if params.FacetBy != "" {
		searchParams.FacetBy = pointer.String(params.FacetBy)
	}
	if params.Page > 0 {
		searchParams.Page = pointer.Int(params.Page)
	}
	if params.PerPage != nil {
		searchParams.PerPage = pointer.Int(*params.PerPage)
	}

	resp, err := t.client.Collection(collection).Documents().Search(ctx, searchParams)
	if err != nil {
		return Result{}, wrapErr("search", err)
	}
	return toResult(resp), nil
}

// Close is a no-op; the Typesense client does not require explicit closure.
func (t *TypesenseEngine) Close() error {
	return nil
}

// wrapErr tags engine 404s with ErrNotFound while keeping the original
// message intact for the pass-through error responses.
func wrapErr(op string, err error) error {
	var httpErr *typesense.HTTPError
	if errors.As(err, &httpErr) && httpErr.Status == http.StatusNotFound {
		return fmt.Errorf("typesense %s failed: %v: %w", op, err, ErrNotFound)
	}
	return fmt.Errorf("typesense %s failed: %w", op, err)
}

func toCollection(resp *api.CollectionResponse) Collection {
	c := Collection{Name: resp.Name}
	if resp.NumDocuments != nil {
		c.NumDocuments = *resp.NumDocuments
	}
	if resp.DefaultSortingField != nil {
		c.DefaultSortingField = *resp.DefaultSortingField
	}
	if resp.CreatedAt != nil {
		c.CreatedAt = *resp.CreatedAt
	}
	for _, f := range resp.Fields {
		field := Field{Name: f.Name, Type: f.Type}
		if f.Facet != nil {
			field.Facet = *f.Facet
		}
		c.Fields = append(c.Fields, field)
	}
	return c
}

func toResult(resp *api.SearchResult) Result {
	var result Result
	if resp.Found != nil {
		result.Found = *resp.Found
	}
	if resp.SearchTimeMs != nil {
		result.SearchTimeMs = *resp.SearchTimeMs
	}
	if resp.Hits != nil {
		for _, h := range *resp.Hits {
			hit := Hit{TextMatch: h.TextMatch}
			if h.Document != nil {
				hit.Document = *h.Document
			}
			if h.Highlights != nil {
				hit.Highlights = *h.Highlights
			}
			result.Hits = append(result.Hits, hit)
		}
	}
	if resp.FacetCounts != nil {
		for _, fc := range *resp.FacetCounts {
			facet := FacetCount{}
			if fc.FieldName != nil {
				facet.FieldName = *fc.FieldName
			}
			if fc.Counts != nil {
				for _, c := range *fc.Counts {
					value := FacetValue{}
					if c.Value != nil {
						value.Value = *c.Value
					}
					if c.Count != nil {
						value.Count = *c.Count
					}
					facet.Counts = append(facet.Counts, value)
				}
			}
			result.FacetCounts = append(result.FacetCounts, facet)
		}
	}
	return result
}
