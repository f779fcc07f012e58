package products

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "catalog/internal/errors"
	"catalog/internal/events"
	"catalog/internal/search"
	"catalog/internal/testutil"
)

func newTestService(engine search.Engine) ProductsService {
	logger := testutil.NewTestLogger()
	eventHandler := events.NewEventHandler(events.NoopBus{}, events.NewEventConfig(), logger)
	return NewProductsService(engine, logger, eventHandler)
}

func TestListProducts_Pagination(t *testing.T) {
	fakeEngine := search.NewInMemoryEngine()
	fakeEngine.StubSearch(search.Result{
		Found: 42,
		Hits:  []search.Hit{{Document: map[string]any{"id": "26", "name": "Dell XPS 13"}}},
	})
	service := newTestService(fakeEngine)

	response, err := service.ListProducts(context.Background(), 10, 25)
	require.NoError(t, err)

	// offset 25 with page size 10 lands on page 3
	assert.Equal(t, 3, response.Page)
	assert.Equal(t, 10, response.PerPage)
	assert.Equal(t, 42, response.Total)
	require.Len(t, response.Products, 1)
	assert.Equal(t, "26", response.Products[0]["id"])

	require.Len(t, fakeEngine.SearchCalls, 1)
	params := fakeEngine.SearchCalls[0].Params
	assert.Equal(t, "*", params.Query)
	assert.Equal(t, 3, params.Page)
	require.NotNil(t, params.PerPage)
	assert.Equal(t, 10, *params.PerPage)
}

func TestListProducts_FirstPage(t *testing.T) {
	fakeEngine := search.NewInMemoryEngine()
	service := newTestService(fakeEngine)

	response, err := service.ListProducts(context.Background(), 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, response.Page)
}

func TestCreateThenGetProduct_RoundTrips(t *testing.T) {
	fakeEngine := search.NewInMemoryEngine()
	service := newTestService(fakeEngine)

	product := &Product{
		ID:          "42",
		Name:        "Kindle Paperwhite",
		Description: "E-reader with a glare-free display",
		Category:    "Electronics",
		Price:       149.99,
		Rating:      4.3,
		Tags:        []string{"e-reader", "amazon"},
	}

	created, err := service.CreateProduct(context.Background(), product)
	require.NoError(t, err)
	assert.Equal(t, "Product added successfully", created.Message)

	fetched, err := service.GetProduct(context.Background(), "42")
	require.NoError(t, err)
	assert.Equal(t, "Kindle Paperwhite", fetched["name"])
	assert.Equal(t, "Electronics", fetched["category"])
	assert.Equal(t, 149.99, fetched["price"])
	assert.Equal(t, 4.3, fetched["rating"])
	assert.Equal(t, []any{"e-reader", "amazon"}, fetched["tags"])
}

func TestCreateProduct_RequiresID(t *testing.T) {
	fakeEngine := search.NewInMemoryEngine()
	service := newTestService(fakeEngine)

	_, err := service.CreateProduct(context.Background(), &Product{Name: "No ID"})

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrInvalidInput, appErr.Code)
}

func TestGetProduct_MissingIsNotFound(t *testing.T) {
	fakeEngine := search.NewInMemoryEngine()
	service := newTestService(fakeEngine)

	_, err := service.GetProduct(context.Background(), "missing")

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrNotFound, appErr.Code)
	assert.Contains(t, appErr.Message, "Product not found")
}

func TestDeleteProduct_MissingIsNotFound(t *testing.T) {
	fakeEngine := search.NewInMemoryEngine()
	service := newTestService(fakeEngine)

	_, err := service.DeleteProduct(context.Background(), "missing")

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrNotFound, appErr.Code)
}

func TestDeleteProduct_RemovesDocument(t *testing.T) {
	fakeEngine := search.NewInMemoryEngine()
	service := newTestService(fakeEngine)

	_, err := service.CreateProduct(context.Background(), &Product{ID: "7", Name: "Webcam"})
	require.NoError(t, err)

	response, err := service.DeleteProduct(context.Background(), "7")
	require.NoError(t, err)
	assert.Equal(t, "Product 7 deleted successfully", response.Message)

	_, err = service.GetProduct(context.Background(), "7")
	require.Error(t, err)
}
