package admin

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"catalog/internal/errors"
	"catalog/internal/json"
)

type AdminHandler struct {
	service AdminService
}

func NewAdminHandler(svc AdminService) *AdminHandler {
	return &AdminHandler{
		service: svc,
	}
}

func (h *AdminHandler) ListCollections(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	response, err := h.service.ListCollections(ctx)
	if err != nil {
		slog.WarnContext(ctx, "Failed to list collections", "error", err)
		errors.RespondError(w, r, err)
		return
	}

	json.Write(w, http.StatusOK, response)
}

func (h *AdminHandler) GetCollection(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	name := chi.URLParam(r, "name")
	if name == "" {
		slog.WarnContext(ctx, "Missing collection name in request")
		errors.RespondError(w, r, errors.New(errors.ErrInvalidInput, "Collection name is required", nil))
		return
	}

	collection, err := h.service.GetCollection(ctx, name)
	if err != nil {
		slog.WarnContext(ctx, "Failed to fetch collection", "error", err, "collection", name)
		errors.RespondError(w, r, err)
		return
	}

	json.Write(w, http.StatusOK, collection)
}

func (h *AdminHandler) CollectionStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	name := chi.URLParam(r, "name")
	if name == "" {
		slog.WarnContext(ctx, "Missing collection name in request")
		errors.RespondError(w, r, errors.New(errors.ErrInvalidInput, "Collection name is required", nil))
		return
	}

	response, err := h.service.CollectionStats(ctx, name)
	if err != nil {
		slog.WarnContext(ctx, "Failed to fetch collection stats", "error", err, "collection", name)
		errors.RespondError(w, r, err)
		return
	}

	json.Write(w, http.StatusOK, response)
}

func (h *AdminHandler) EngineStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	response, err := h.service.EngineStats(ctx)
	if err != nil {
		slog.WarnContext(ctx, "Failed to fetch engine stats", "error", err)
		errors.RespondError(w, r, err)
		return
	}

	json.Write(w, http.StatusOK, response)
}
