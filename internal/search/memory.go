package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
)

// SearchCall records one Search invocation so tests can assert on the
// exact parameters a service sent to the engine.
type SearchCall struct {
	Collection string
	Params     Params
}

// InMemoryEngine is a thread-safe fake for testing.
// Documents live in a map: store[collection][documentID] = document.
// Search is not implemented for real; it records the call and returns
// the next stubbed result.
type InMemoryEngine struct {
	mu          sync.RWMutex
	schemas     map[string]CollectionSchema
	store       map[string]map[string]map[string]any
	stubResults []Result

	HealthErr   error
	SearchErr   error
	HealthCalls int
	SearchCalls []SearchCall
}

func NewInMemoryEngine() *InMemoryEngine {
	return &InMemoryEngine{
		schemas: make(map[string]CollectionSchema),
		store:   make(map[string]map[string]map[string]any),
	}
}

// StubSearch queues a result to be returned by the next Search call.
// With nothing queued, Search returns an empty Result.
func (e *InMemoryEngine) StubSearch(result Result) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stubResults = append(e.stubResults, result)
}

func (e *InMemoryEngine) HealthCheck(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.HealthCalls++
	return e.HealthErr
}

func (e *InMemoryEngine) ListCollections(ctx context.Context) ([]Collection, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	collections := make([]Collection, 0, len(e.schemas))
	for name, schema := range e.schemas {
		collections = append(collections, Collection{
			Name:                name,
			NumDocuments:        int64(len(e.store[name])),
			Fields:              schema.Fields,
			DefaultSortingField: schema.DefaultSortingField,
		})
	}
	return collections, nil
}

func (e *InMemoryEngine) GetCollection(ctx context.Context, name string) (Collection, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	schema, ok := e.schemas[name]
	if !ok {
		return Collection{}, fmt.Errorf("collection %q: %w", name, ErrNotFound)
	}
	return Collection{
		Name:                name,
		NumDocuments:        int64(len(e.store[name])),
		Fields:              schema.Fields,
		DefaultSortingField: schema.DefaultSortingField,
	}, nil
}

func (e *InMemoryEngine) CreateCollection(ctx context.Context, schema CollectionSchema) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, exists := e.schemas[schema.Name]; exists {
		return fmt.Errorf("collection %q already exists", schema.Name)
	}
	e.schemas[schema.Name] = schema
	e.store[schema.Name] = make(map[string]map[string]any)
	return nil
}

func (e *InMemoryEngine) DropCollection(ctx context.Context, name string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, exists := e.schemas[name]; !exists {
		return fmt.Errorf("collection %q: %w", name, ErrNotFound)
	}
	delete(e.schemas, name)
	delete(e.store, name)
	return nil
}

func (e *InMemoryEngine) ImportDocuments(ctx context.Context, collection string, documents []any) error {
	for _, document := range documents {
		if _, err := e.CreateDocument(ctx, collection, document); err != nil {
			return err
		}
	}
	return nil
}

func (e *InMemoryEngine) CreateDocument(ctx context.Context, collection string, document any) (map[string]any, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.store[collection] == nil {
		e.store[collection] = make(map[string]map[string]any)
	}

	doc, err := toDocumentMap(document)
	if err != nil {
		return nil, fmt.Errorf("in-memory create failed: %w", err)
	}
	id, ok := doc["id"].(string)
	if !ok {
		return nil, errors.New("in-memory create failed: document missing 'id' field")
	}

	e.store[collection][id] = doc
	return doc, nil
}

func (e *InMemoryEngine) GetDocument(ctx context.Context, collection, id string) (map[string]any, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	doc, ok := e.store[collection][id]
	if !ok {
		return nil, fmt.Errorf("document %q: %w", id, ErrNotFound)
	}
	return doc, nil
}

func (e *InMemoryEngine) DeleteDocument(ctx context.Context, collection, id string) (map[string]any, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	doc, ok := e.store[collection][id]
	if !ok {
		return nil, fmt.Errorf("document %q: %w", id, ErrNotFound)
	}
	delete(e.store[collection], id)
	return doc, nil
}

func (e *InMemoryEngine) Search(ctx context.Context, collection string, params Params) (Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.SearchCalls = append(e.SearchCalls, SearchCall{Collection: collection, Params: params})
	if e.SearchErr != nil {
		return Result{}, e.SearchErr
	}
	if len(e.stubResults) == 0 {
		return Result{}, nil
	}
	result := e.stubResults[0]
	e.stubResults = e.stubResults[1:]
	return result, nil
}

func (e *InMemoryEngine) Close() error {
	return nil
}

// HasCollection lets tests inspect bootstrap outcomes.
func (e *InMemoryEngine) HasCollection(name string) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	_, ok := e.schemas[name]
	return ok
}

// DocumentCount lets tests inspect seeded data.
func (e *InMemoryEngine) DocumentCount(collection string) int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.store[collection])
}

// toDocumentMap normalizes structs and maps into the map shape the real
// engine returns, via a JSON round-trip. Inefficient but fine for tests.
func toDocumentMap(document any) (map[string]any, error) {
	if m, ok := document.(map[string]any); ok {
		return m, nil
	}
	b, err := json.Marshal(document)
	if err != nil {
		return nil, errors.New("cannot marshal document")
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, errors.New("cannot unmarshal document to map")
	}
	return m, nil
}
