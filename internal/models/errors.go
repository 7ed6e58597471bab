package models

import "errors"

var (
	ErrTableNotFound        = errors.New("table not found")
	ErrOrderNotFound        = errors.New("order not found")
	ErrMenuItemNotFound     = errors.New("menu item not found")
	ErrCategoryNotFound     = errors.New("category not found")
	ErrOrderCompleted       = errors.New("order already completed")
	ErrEmptyOrder           = errors.New("order has no items")
	ErrEmptyName            = errors.New("name must not be blank")
	ErrInvalidQuantity      = errors.New("quantity must be at least 1")
	ErrInvalidPrice         = errors.New("price must not be negative")
	ErrInvalidTableStatus   = errors.New("invalid table status")
	ErrInvalidOrderStatus   = errors.New("invalid order status")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
)
