package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/trace"
)

// EventHandler publishes product lifecycle events so downstream consumers
// (re-indexers, cache invalidation) can react to catalog mutations.
// Publish failures are logged, never surfaced to API clients.
type EventHandler struct {
	bus    Bus
	config *EventConfig
	logger *slog.Logger
}

func NewEventHandler(bus Bus, config *EventConfig, logger *slog.Logger) *EventHandler {
	return &EventHandler{
		bus:    bus,
		config: config,
		logger: logger,
	}
}

func (h *EventHandler) RaiseProductCreated(ctx context.Context, productID string) {
	evt := ProductCreatedEvent{ProductID: productID, TraceID: traceID(ctx)}

	data, err := json.Marshal(evt)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to marshal ProductCreatedEvent", "error", err)
		return
	}

	msgId := fmt.Sprintf("product.created.%s", productID)
	if err := h.bus.Publish(h.config.ProductCreated, data, msgId); err != nil {
		h.logger.ErrorContext(ctx, "Failed to publish ProductCreatedEvent", "error", err, "product_id", productID)
	}
}

func (h *EventHandler) RaiseProductDeleted(ctx context.Context, productID string) {
	evt := ProductDeletedEvent{ProductID: productID, TraceID: traceID(ctx)}

	data, err := json.Marshal(evt)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to marshal ProductDeletedEvent", "error", err)
		return
	}

	msgId := fmt.Sprintf("product.deleted.%s", productID)
	if err := h.bus.Publish(h.config.ProductDeleted, data, msgId); err != nil {
		h.logger.ErrorContext(ctx, "Failed to publish ProductDeletedEvent", "error", err, "product_id", productID)
	}
}

func traceID(ctx context.Context) string {
	spanContext := trace.SpanContextFromContext(ctx)
	if spanContext.IsValid() {
		return spanContext.TraceID().String()
	}
	return ""
}
