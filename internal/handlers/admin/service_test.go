package admin

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "catalog/internal/errors"
	"catalog/internal/search"
	"catalog/internal/testutil"
)

func newTestService(engine search.Engine) AdminService {
	return NewAdminService(engine, testutil.NewTestLogger())
}

func productsSchema() search.CollectionSchema {
	return search.CollectionSchema{
		Name: search.ProductsCollection,
		Fields: []search.Field{
			{Name: "id", Type: "string"},
			{Name: "name", Type: "string"},
			{Name: "category", Type: "string", Facet: true},
		},
		DefaultSortingField: "rating",
	}
}

func TestListCollections(t *testing.T) {
	fakeEngine := search.NewInMemoryEngine()
	require.NoError(t, fakeEngine.CreateCollection(context.Background(), productsSchema()))
	service := newTestService(fakeEngine)

	response, err := service.ListCollections(context.Background())
	require.NoError(t, err)
	require.Len(t, response.Collections, 1)
	assert.Equal(t, search.ProductsCollection, response.Collections[0].Name)
}

func TestGetCollection_MissingIsNotFound(t *testing.T) {
	fakeEngine := search.NewInMemoryEngine()
	service := newTestService(fakeEngine)

	_, err := service.GetCollection(context.Background(), "nope")

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrNotFound, appErr.Code)
}

func TestCollectionStats_UsesCountOnlySearch(t *testing.T) {
	fakeEngine := search.NewInMemoryEngine()
	require.NoError(t, fakeEngine.CreateCollection(context.Background(), productsSchema()))
	fakeEngine.StubSearch(search.Result{Found: 7, SearchTimeMs: 2})
	service := newTestService(fakeEngine)

	response, err := service.CollectionStats(context.Background(), search.ProductsCollection)
	require.NoError(t, err)

	assert.Equal(t, search.ProductsCollection, response.CollectionName)
	assert.Equal(t, 7, response.DocumentCount)
	assert.Equal(t, 2, response.SearchTimeMs)
	assert.Equal(t, search.ProductsCollection, response.Schema.Name)

	require.Len(t, fakeEngine.SearchCalls, 1)
	params := fakeEngine.SearchCalls[0].Params
	assert.Equal(t, "*", params.Query)
	require.NotNil(t, params.PerPage)
	assert.Equal(t, 0, *params.PerPage)
}

func TestEngineStats_AggregatesCounts(t *testing.T) {
	fakeEngine := search.NewInMemoryEngine()
	require.NoError(t, fakeEngine.CreateCollection(context.Background(), productsSchema()))
	fakeEngine.StubSearch(search.Result{Found: 5})
	service := newTestService(fakeEngine)

	response, err := service.EngineStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, response.TotalCollections)
	assert.Equal(t, 5, response.TotalDocuments)
	require.Len(t, response.Collections, 1)
	assert.Equal(t, 5, response.Collections[0].DocumentCount)
	assert.Equal(t, 3, response.Collections[0].Fields)
}

func TestEngineStats_CountProbeFailureDegradesGracefully(t *testing.T) {
	fakeEngine := search.NewInMemoryEngine()
	require.NoError(t, fakeEngine.CreateCollection(context.Background(), productsSchema()))
	fakeEngine.SearchErr = assert.AnError
	service := newTestService(fakeEngine)

	response, err := service.EngineStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, response.TotalCollections)
	assert.Equal(t, 0, response.TotalDocuments)
	require.Len(t, response.Collections, 1)
	assert.Equal(t, "unknown", response.Collections[0].DocumentCount)
}
