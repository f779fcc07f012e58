package products

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"catalog/internal/errors"
	"catalog/internal/json"
)

type ProductsHandler struct {
	service ProductsService
}

func NewProductsHandler(svc ProductsService) *ProductsHandler {
	return &ProductsHandler{
		service: svc,
	}
}

func (h *ProductsHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit, err := queryInt(r, "limit", 10)
	if err != nil || limit <= 0 {
		slog.WarnContext(ctx, "Invalid limit parameter", "limit", r.URL.Query().Get("limit"))
		errors.RespondError(w, r, errors.New(errors.ErrInvalidInput, "limit must be a positive integer", err))
		return
	}
	offset, err := queryInt(r, "offset", 0)
	if err != nil || offset < 0 {
		slog.WarnContext(ctx, "Invalid offset parameter", "offset", r.URL.Query().Get("offset"))
		errors.RespondError(w, r, errors.New(errors.ErrInvalidInput, "offset must be a non-negative integer", err))
		return
	}

	response, err := h.service.ListProducts(ctx, limit, offset)
	if err != nil {
		slog.WarnContext(ctx, "Failed to list products", "error", err)
		errors.RespondError(w, r, err)
		return
	}

	json.Write(w, http.StatusOK, response)
}

func (h *ProductsHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	product := Product{}
	if err := json.Read(r, &product); err != nil {
		slog.WarnContext(ctx, "Invalid request body", "error", err)
		errors.RespondError(w, r, errors.New(errors.ErrInvalidInput, "Input provided was not in the format expected.", err))
		return
	}

	response, err := h.service.CreateProduct(ctx, &product)
	if err != nil {
		slog.WarnContext(ctx, "Failed to create product", "error", err)
		errors.RespondError(w, r, err)
		return
	}

	json.Write(w, http.StatusOK, response)
}

func (h *ProductsHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	productID := chi.URLParam(r, "id")
	if productID == "" {
		slog.WarnContext(ctx, "Missing product ID in request")
		errors.RespondError(w, r, errors.New(errors.ErrInvalidInput, "Product ID is required", nil))
		return
	}

	product, err := h.service.GetProduct(ctx, productID)
	if err != nil {
		slog.WarnContext(ctx, "Failed to fetch product", "error", err, "product_id", productID)
		errors.RespondError(w, r, err)
		return
	}

	json.Write(w, http.StatusOK, product)
}

func (h *ProductsHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	productID := chi.URLParam(r, "id")
	if productID == "" {
		slog.WarnContext(ctx, "Missing product ID in request")
		errors.RespondError(w, r, errors.New(errors.ErrInvalidInput, "Product ID is required", nil))
		return
	}

	response, err := h.service.DeleteProduct(ctx, productID)
	if err != nil {
		slog.WarnContext(ctx, "Failed to delete product", "error", err, "product_id", productID)
		errors.RespondError(w, r, err)
		return
	}

	json.Write(w, http.StatusOK, response)
}

func queryInt(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}
