package service

import (
	"context"

	"restaurant-service/internal/models"
)

// EventPublisher publishes order lifecycle events
type EventPublisher interface {
	PublishOrderEvent(ctx context.Context, event *models.OrderEvent) error
}

// OrderReader is the read side of the order ledger
type OrderReader interface {
	Orders() []models.Order
}

type nopPublisher struct{}

func (nopPublisher) PublishOrderEvent(context.Context, *models.OrderEvent) error { return nil }
