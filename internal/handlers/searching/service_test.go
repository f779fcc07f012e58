package searching

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "catalog/internal/errors"
	"catalog/internal/search"
	"catalog/internal/testutil"
)

func newTestService(engine search.Engine) SearchService {
	return NewSearchService(engine, testutil.NewTestLogger())
}

func TestSearch_BuildsEngineParams(t *testing.T) {
	fakeEngine := search.NewInMemoryEngine()
	fakeEngine.StubSearch(search.Result{
		Found: 2,
		Hits: []search.Hit{
			{Document: map[string]any{"id": "1", "name": "iPhone 15 Pro"}},
			{Document: map[string]any{"id": "2", "name": "Samsung Galaxy S24"}},
		},
	})
	service := newTestService(fakeEngine)

	query := &SearchQuery{
		Query:    "smartphone",
		Category: strPtr("Electronics"),
		MinPrice: f64Ptr(100),
		MaxPrice: f64Ptr(999.99),
	}

	response, err := service.Search(context.Background(), query)
	require.NoError(t, err)

	require.Len(t, fakeEngine.SearchCalls, 1)
	call := fakeEngine.SearchCalls[0]
	assert.Equal(t, search.ProductsCollection, call.Collection)
	assert.Equal(t, "smartphone", call.Params.Query)
	assert.Equal(t, "name,description,tags", call.Params.QueryBy)
	assert.Equal(t, "rating:desc,price:asc", call.Params.SortBy)
	assert.Equal(t, "category:=Electronics && price:>=100 && price:<=999.99", call.Params.FilterBy)

	assert.Equal(t, "smartphone", response.Query)
	assert.Equal(t, 2, response.Found)
	assert.Len(t, response.Results, 2)
}

func TestSearch_EngineFailureIsUpstreamError(t *testing.T) {
	fakeEngine := search.NewInMemoryEngine()
	fakeEngine.SearchErr = assert.AnError
	service := newTestService(fakeEngine)

	_, err := service.Search(context.Background(), &SearchQuery{Query: "phone"})

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrUpstream, appErr.Code)
	assert.Contains(t, appErr.Message, "Search failed")
}

func TestGetCategories_PreservesFacetOrder(t *testing.T) {
	fakeEngine := search.NewInMemoryEngine()
	fakeEngine.StubSearch(search.Result{
		Found: 5,
		FacetCounts: []search.FacetCount{
			{
				FieldName: "category",
				Counts: []search.FacetValue{
					{Value: "Electronics", Count: 2},
					{Value: "Computers", Count: 2},
					{Value: "Audio", Count: 1},
				},
			},
			{
				FieldName: "tags",
				Counts:    []search.FacetValue{{Value: "apple", Count: 2}},
			},
		},
	})
	service := newTestService(fakeEngine)

	response, err := service.GetCategories(context.Background())
	require.NoError(t, err)

	// Engine faceting order, not re-sorted
	assert.Equal(t, []string{"Electronics", "Computers", "Audio"}, response.Categories)

	require.Len(t, fakeEngine.SearchCalls, 1)
	assert.Equal(t, "*", fakeEngine.SearchCalls[0].Params.Query)
	assert.Equal(t, "category", fakeEngine.SearchCalls[0].Params.FacetBy)
}

func TestGetCategories_NoFacetsYieldsEmptyList(t *testing.T) {
	fakeEngine := search.NewInMemoryEngine()
	service := newTestService(fakeEngine)

	response, err := service.GetCategories(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, response.Categories)
	assert.Empty(t, response.Categories)
}

func TestGetRecommendations_ExcludesSourceProduct(t *testing.T) {
	fakeEngine := search.NewInMemoryEngine()
	source := map[string]any{
		"id":       "1",
		"name":     "iPhone 15 Pro",
		"category": "Electronics",
		"tags":     []any{"smartphone", "apple", "premium"},
	}
	_, err := fakeEngine.CreateDocument(context.Background(), search.ProductsCollection, source)
	require.NoError(t, err)

	fakeEngine.StubSearch(search.Result{
		Found: 1,
		Hits:  []search.Hit{{Document: map[string]any{"id": "2", "name": "Samsung Galaxy S24"}}},
	})
	service := newTestService(fakeEngine)

	response, err := service.GetRecommendations(context.Background(), "1", 3)
	require.NoError(t, err)

	require.Len(t, fakeEngine.SearchCalls, 1)
	params := fakeEngine.SearchCalls[0].Params
	assert.Equal(t, "smartphone apple premium", params.Query)
	assert.Equal(t, "tags,category,name", params.QueryBy)
	assert.Equal(t, "id:!=1", params.FilterBy)
	assert.Equal(t, "rating:desc", params.SortBy)
	require.NotNil(t, params.PerPage)
	assert.Equal(t, 3, *params.PerPage)

	assert.Equal(t, source, response.SourceProduct)
	assert.Len(t, response.Recommendations, 1)
}

func TestGetRecommendations_UnknownSourceFails(t *testing.T) {
	fakeEngine := search.NewInMemoryEngine()
	service := newTestService(fakeEngine)

	_, err := service.GetRecommendations(context.Background(), "missing", 5)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrUpstream, appErr.Code)
	assert.Contains(t, appErr.Message, "Failed to get recommendations")
}
