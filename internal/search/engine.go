package search

import (
	"context"
	"errors"
)

// ProductsCollection is the demo collection (re)created at startup.
const ProductsCollection = "products"

// ErrNotFound is wrapped into errors returned for engine 404s so callers
// can distinguish missing entities from transport failures.
var ErrNotFound = errors.New("not found")

// Engine defines the contract for the external search engine.
// This allows us to swap Typesense for another engine later,
// and makes unit testing trivial.
type Engine interface {
	// HealthCheck checks that the engine is reachable.
	HealthCheck(ctx context.Context) error

	// ListCollections returns every collection on the engine.
	ListCollections(ctx context.Context) ([]Collection, error)

	// GetCollection returns one collection with its schema.
	GetCollection(ctx context.Context, name string) (Collection, error)

	// CreateCollection creates a collection from a schema.
	CreateCollection(ctx context.Context, schema CollectionSchema) error

	// DropCollection deletes a collection and everything in it.
	DropCollection(ctx context.Context, name string) error

	// ImportDocuments bulk-loads documents into a collection.
	ImportDocuments(ctx context.Context, collection string, documents []any) error

	// CreateDocument adds one document and returns it as stored.
	CreateDocument(ctx context.Context, collection string, document any) (map[string]any, error)

	// GetDocument retrieves a document by ID.
	GetDocument(ctx context.Context, collection, id string) (map[string]any, error)

	// DeleteDocument removes a document by ID and returns the removed document.
	DeleteDocument(ctx context.Context, collection, id string) (map[string]any, error)

	// Search runs one search against a collection.
	Search(ctx context.Context, collection string, params Params) (Result, error)

	// Close cleans up any resources held by the engine client.
	Close() error
}
