package searching

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"catalog/internal/errors"
	"catalog/internal/json"
)

type SearchHandler struct {
	service SearchService
}

func NewSearchHandler(svc SearchService) *SearchHandler {
	return &SearchHandler{
		service: svc,
	}
}

func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	query := SearchQuery{}
	if err := json.Read(r, &query); err != nil {
		slog.WarnContext(ctx, "Invalid request body", "error", err)
		errors.RespondError(w, r, errors.New(errors.ErrInvalidInput, "Input provided was not in the format expected.", err))
		return
	}

	response, err := h.service.Search(ctx, &query)
	if err != nil {
		slog.WarnContext(ctx, "Search failed", "error", err)
		errors.RespondError(w, r, err)
		return
	}

	json.Write(w, http.StatusOK, response)
}

func (h *SearchHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	response, err := h.service.GetCategories(ctx)
	if err != nil {
		slog.WarnContext(ctx, "Failed to fetch categories", "error", err)
		errors.RespondError(w, r, err)
		return
	}

	json.Write(w, http.StatusOK, response)
}

func (h *SearchHandler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	productID := chi.URLParam(r, "id")
	if productID == "" {
		slog.WarnContext(ctx, "Missing product ID in request")
		errors.RespondError(w, r, errors.New(errors.ErrInvalidInput, "Product ID is required", nil))
		return
	}

	limit := 5
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			slog.WarnContext(ctx, "Invalid limit parameter", "limit", raw)
			errors.RespondError(w, r, errors.New(errors.ErrInvalidInput, "limit must be a positive integer", err))
			return
		}
		limit = parsed
	}

	response, err := h.service.GetRecommendations(ctx, productID, limit)
	if err != nil {
		slog.WarnContext(ctx, "Failed to fetch recommendations", "error", err, "product_id", productID)
		errors.RespondError(w, r, err)
		return
	}

	json.Write(w, http.StatusOK, response)
}
