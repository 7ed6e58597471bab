package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Category groups menu items. MenuItem.Category references it by Name.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// MenuItem represents a dish or drink in the catalog
type MenuItem struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Category string          `json:"category"`
	Price    decimal.Decimal `json:"price"`
}

// Table represents a physical seating unit
type Table struct {
	ID             string      `json:"id"`
	Number         int         `json:"number"`
	Status         TableStatus `json:"status"`
	CurrentOrderID string      `json:"currentOrderId,omitempty"`
}

// OrderItem is one line of an order. MenuItem is a copy taken when the
// line was added, so later catalog edits do not change it.
type OrderItem struct {
	MenuItem MenuItem `json:"menuItem"`
	Quantity int      `json:"quantity"`
}

// Subtotal returns quantity × captured price
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.MenuItem.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Order is the running tab for one table visit
type Order struct {
	ID            string          `json:"id"`
	TableID       string          `json:"tableId"`
	Items         []OrderItem     `json:"items"`
	Status        OrderStatus     `json:"status"`
	Total         decimal.Decimal `json:"total"`
	PaymentMethod PaymentMethod   `json:"paymentMethod,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	CompletedAt   *time.Time      `json:"completedAt,omitempty"`
}

// Clone returns a copy that shares no slices or pointers with o
func (o Order) Clone() Order {
	c := o
	c.Items = append([]OrderItem(nil), o.Items...)
	if o.CompletedAt != nil {
		t := *o.CompletedAt
		c.CompletedAt = &t
	}
	return c
}

// ComputeTotal sums quantity × price over the order lines
func ComputeTotal(items []OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// PaymentBreakdown holds revenue per payment method
type PaymentBreakdown struct {
	Cash decimal.Decimal `json:"cash"`
	Card decimal.Decimal `json:"card"`
	Pix  decimal.Decimal `json:"pix"`
}

// Add credits amount to the bucket for method. Unknown methods are ignored.
func (b *PaymentBreakdown) Add(method PaymentMethod, amount decimal.Decimal) {
	switch method {
	case PaymentCash:
		b.Cash = b.Cash.Add(amount)
	case PaymentCard:
		b.Card = b.Card.Add(amount)
	case PaymentPix:
		b.Pix = b.Pix.Add(amount)
	}
}

// PaymentShares holds percentages of a day's revenue, rounded to one
// decimal place. Electronic is card plus pix.
type PaymentShares struct {
	Cash       decimal.Decimal `json:"cash"`
	Electronic decimal.Decimal `json:"electronic"`
}

var hundred = decimal.NewFromInt(100)

// Shares returns each bucket's percentage of total. A zero total yields
// zero shares.
func (b PaymentBreakdown) Shares(total decimal.Decimal) PaymentShares {
	if total.IsZero() {
		return PaymentShares{Cash: decimal.Zero, Electronic: decimal.Zero}
	}
	percent := func(amount decimal.Decimal) decimal.Decimal {
		return amount.Mul(hundred).Div(total).Round(1)
	}
	return PaymentShares{
		Cash:       percent(b.Cash),
		Electronic: percent(b.Card.Add(b.Pix)),
	}
}

// DailySummary is the revenue breakdown for one calendar day. It is derived
// on demand and never persisted.
type DailySummary struct {
	Date            DateKey          `json:"date"`
	TotalRevenue    decimal.Decimal  `json:"totalRevenue"`
	CompletedOrders int              `json:"completedOrders"`
	PaymentMethods  PaymentBreakdown `json:"paymentMethods"`
	PaymentShares   PaymentShares    `json:"paymentShares"`
}

// DateKey identifies a calendar day as YYYY-MM-DD
type DateKey string

const dateKeyLayout = "2006-01-02"

// DateKeyOf returns the calendar day of t in loc
func DateKeyOf(t time.Time, loc *time.Location) DateKey {
	if loc == nil {
		loc = time.Local
	}
	return DateKey(t.In(loc).Format(dateKeyLayout))
}

// ParseDateKey validates s and returns it as a DateKey
func ParseDateKey(s string) (DateKey, error) {
	if _, err := time.Parse(dateKeyLayout, s); err != nil {
		return "", fmt.Errorf("invalid date %q: %w", s, err)
	}
	return DateKey(s), nil
}

// TableStatus is the occupancy state of a table
type TableStatus string

// Table statuses
const (
	TableAvailable TableStatus = "available"
	TableOccupied  TableStatus = "occupied"
	TableReserved  TableStatus = "reserved"
)

// Valid reports whether s is a known table status
func (s TableStatus) Valid() bool {
	switch s {
	case TableAvailable, TableOccupied, TableReserved:
		return true
	}
	return false
}

// OrderStatus is the lifecycle state of an order
type OrderStatus string

// Order statuses
const (
	OrderActive    OrderStatus = "active"
	OrderStandby   OrderStatus = "standby"
	OrderCompleted OrderStatus = "completed"
)

// Valid reports whether s is a known order status
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderActive, OrderStandby, OrderCompleted:
		return true
	}
	return false
}

// PaymentMethod is how a completed order was paid. The zero value means
// no method was recorded.
type PaymentMethod string

// Payment methods
const (
	PaymentNone PaymentMethod = ""
	PaymentCash PaymentMethod = "cash"
	PaymentCard PaymentMethod = "card"
	PaymentPix  PaymentMethod = "pix"
)

// legacyPaymentMethods maps tags written by the browser tool
var legacyPaymentMethods = map[string]PaymentMethod{
	"dinheiro": PaymentCash,
	"cartao":   PaymentCard,
}

// Valid reports whether m is a known method or PaymentNone
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentNone, PaymentCash, PaymentCard, PaymentPix:
		return true
	}
	return false
}

// ParsePaymentMethod accepts current and legacy tags
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	if m, ok := legacyPaymentMethods[s]; ok {
		return m, nil
	}
	m := PaymentMethod(s)
	if !m.Valid() {
		return PaymentNone, fmt.Errorf("%w: %q", ErrInvalidPaymentMethod, s)
	}
	return m, nil
}

// UnmarshalJSON decodes a payment method, translating legacy tags
func (m *PaymentMethod) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParsePaymentMethod(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
