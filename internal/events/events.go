package events

import (
	"os"
)

type ProductCreatedEvent struct {
	ProductID string `json:"product_id"`
	TraceID   string `json:"trace_id"`
}

type ProductDeletedEvent struct {
	ProductID string `json:"product_id"`
	TraceID   string `json:"trace_id"`
}

type EventConfig struct {
	ProductCreated string
	ProductDeleted string
}

func NewEventConfig() *EventConfig {
	cfg := &EventConfig{
		ProductCreated: os.Getenv("EVENT_PRODUCT_CREATED"),
		ProductDeleted: os.Getenv("EVENT_PRODUCT_DELETED"),
	}
	if cfg.ProductCreated == "" {
		cfg.ProductCreated = "catalog.product.created"
	}
	if cfg.ProductDeleted == "" {
		cfg.ProductDeleted = "catalog.product.deleted"
	}
	return cfg
}
