package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Event types
const (
	EventTypeOrderCreated   = "ORDER_CREATED"
	EventTypeOrderStandby   = "ORDER_STANDBY"
	EventTypeOrderResumed   = "ORDER_RESUMED"
	EventTypeOrderCompleted = "ORDER_COMPLETED"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
}

// OrderEvent is published on every order status change
type OrderEvent struct {
	BaseEvent
	OrderID       string          `json:"order_id"`
	TableID       string          `json:"table_id"`
	Status        OrderStatus     `json:"status"`
	Total         decimal.Decimal `json:"total"`
	ItemCount     int             `json:"item_count"`
	PaymentMethod PaymentMethod   `json:"payment_method,omitempty"`
	CompletedAt   *time.Time      `json:"completed_at,omitempty"`
}
