package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"restaurant-service/internal/models"
	"restaurant-service/internal/store"
	"restaurant-service/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OrderService is the order ledger. It owns every order, keeps each
// order's total equal to the sum of its lines, and never deletes orders.
type OrderService struct {
	mu             sync.RWMutex
	orders         []models.Order
	repo           *store.Collection[models.Order]
	eventPublisher EventPublisher
	now            func() time.Time
	logger         *zap.Logger
}

// NewOrderService creates an order ledger persisted through kv. A nil
// publisher disables events.
func NewOrderService(kv store.KV, eventPublisher EventPublisher) *OrderService {
	if eventPublisher == nil {
		eventPublisher = nopPublisher{}
	}
	return &OrderService{
		orders:         []models.Order{},
		repo:           store.NewCollection[models.Order](kv, store.KeyOrders, nil),
		eventPublisher: eventPublisher,
		now:            time.Now,
		logger:         util.GetLogger(),
	}
}

// Load replaces the in-memory orders with the stored snapshot
func (s *OrderService) Load(ctx context.Context) error {
	orders, err := s.repo.LoadAll(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders = orders
	return nil
}

// Orders returns a copy of every order in creation order
func (s *OrderService) Orders() []models.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Order, len(s.orders))
	for i, o := range s.orders {
		out[i] = o.Clone()
	}
	return out
}

// Order looks up an order by id
func (s *OrderService) Order(id string) (models.Order, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if idx := s.indexOf(id); idx >= 0 {
		return s.orders[idx].Clone(), true
	}
	return models.Order{}, false
}

// CreateOrder opens an empty active order for tableID and returns its id
func (s *OrderService) CreateOrder(ctx context.Context, tableID string) (string, error) {
	ctx, span := util.StartSpan(ctx, "OrderService.CreateOrder")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	order := models.Order{
		ID:        uuid.New().String(),
		TableID:   tableID,
		Items:     []models.OrderItem{},
		Status:    models.OrderActive,
		CreatedAt: s.now(),
	}

	updated := append(s.snapshot(), order)
	if err := s.commit(ctx, updated); err != nil {
		return "", fmt.Errorf("failed to create order: %w", err)
	}

	util.OrdersCreatedTotal.Inc()
	s.logger.Info("Order created",
		zap.String("order_id", order.ID),
		zap.String("table_id", tableID))

	s.publish(ctx, models.EventTypeOrderCreated, order)
	return order.ID, nil
}

// AddItemToOrder adds quantity units of menuItem. A line for the same menu
// item is merged rather than duplicated. Unknown orders are ignored.
func (s *OrderService) AddItemToOrder(ctx context.Context, orderID string, menuItem models.MenuItem, quantity int) error {
	ctx, span := util.StartSpan(ctx, "OrderService.AddItemToOrder")
	defer span.End()

	if quantity < 1 {
		return fmt.Errorf("%w: %d", models.ErrInvalidQuantity, quantity)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(orderID)
	if idx < 0 {
		s.logger.Debug("Add item to unknown order ignored", zap.String("order_id", orderID))
		return nil
	}

	updated := s.snapshot()
	order := &updated[idx]

	merged := false
	for i := range order.Items {
		if order.Items[i].MenuItem.ID == menuItem.ID {
			order.Items[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		order.Items = append(order.Items, models.OrderItem{MenuItem: menuItem, Quantity: quantity})
	}
	order.Total = models.ComputeTotal(order.Items)

	if err := s.commit(ctx, updated); err != nil {
		return fmt.Errorf("failed to add item to order: %w", err)
	}

	util.OrderItemsAddedTotal.Add(float64(quantity))
	s.logger.Info("Item added to order",
		zap.String("order_id", orderID),
		zap.String("menu_item_id", menuItem.ID),
		zap.Int("quantity", quantity),
		zap.String("total", order.Total.StringFixed(2)))
	return nil
}

// RemoveItemFromOrder drops the whole line for menuItemID regardless of its
// quantity. Unknown orders and lines are ignored.
func (s *OrderService) RemoveItemFromOrder(ctx context.Context, orderID, menuItemID string) error {
	ctx, span := util.StartSpan(ctx, "OrderService.RemoveItemFromOrder")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(orderID)
	if idx < 0 {
		s.logger.Debug("Remove item from unknown order ignored", zap.String("order_id", orderID))
		return nil
	}

	updated := s.snapshot()
	order := &updated[idx]

	items := make([]models.OrderItem, 0, len(order.Items))
	for _, item := range order.Items {
		if item.MenuItem.ID != menuItemID {
			items = append(items, item)
		}
	}
	if len(items) == len(order.Items) {
		return nil
	}
	order.Items = items
	order.Total = models.ComputeTotal(items)

	if err := s.commit(ctx, updated); err != nil {
		return fmt.Errorf("failed to remove item from order: %w", err)
	}

	util.OrderItemsRemovedTotal.Inc()
	s.logger.Info("Item removed from order",
		zap.String("order_id", orderID),
		zap.String("menu_item_id", menuItemID),
		zap.String("total", order.Total.StringFixed(2)))
	return nil
}

// UpdateOrderStatus moves an order to status. Completing stamps completedAt
// and records paymentMethod when one is given; neither is ever cleared.
// Completed orders are terminal and reject further changes with
// ErrOrderCompleted. Unknown orders are ignored.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, orderID string, status models.OrderStatus, paymentMethod models.PaymentMethod) error {
	ctx, span := util.StartSpan(ctx, "OrderService.UpdateOrderStatus")
	defer span.End()

	if !status.Valid() {
		return fmt.Errorf("%w: %q", models.ErrInvalidOrderStatus, status)
	}
	if !paymentMethod.Valid() {
		return fmt.Errorf("%w: %q", models.ErrInvalidPaymentMethod, paymentMethod)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(orderID)
	if idx < 0 {
		s.logger.Debug("Status update for unknown order ignored", zap.String("order_id", orderID))
		return nil
	}
	if s.orders[idx].Status == models.OrderCompleted {
		return fmt.Errorf("%w: %s", models.ErrOrderCompleted, orderID)
	}

	updated := s.snapshot()
	order := &updated[idx]
	previous := order.Status
	order.Status = status

	if status == models.OrderCompleted {
		completedAt := s.now()
		order.CompletedAt = &completedAt
		if paymentMethod != models.PaymentNone {
			order.PaymentMethod = paymentMethod
		}
	}

	if err := s.commit(ctx, updated); err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}

	s.logger.Info("Order status updated",
		zap.String("order_id", orderID),
		zap.String("from", string(previous)),
		zap.String("to", string(status)),
		zap.String("payment_method", string(order.PaymentMethod)))

	switch status {
	case models.OrderCompleted:
		util.OrdersCompletedTotal.WithLabelValues(paymentLabel(order.PaymentMethod)).Inc()
		s.publish(ctx, models.EventTypeOrderCompleted, *order)
	case models.OrderStandby:
		if previous != models.OrderStandby {
			util.OrdersStandbyTotal.Inc()
			s.publish(ctx, models.EventTypeOrderStandby, *order)
		}
	case models.OrderActive:
		if previous == models.OrderStandby {
			s.publish(ctx, models.EventTypeOrderResumed, *order)
		}
	}
	return nil
}

func (s *OrderService) publish(ctx context.Context, eventType string, order models.Order) {
	event := &models.OrderEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: eventType,
			Timestamp: s.now(),
		},
		OrderID:       order.ID,
		TableID:       order.TableID,
		Status:        order.Status,
		Total:         order.Total,
		ItemCount:     len(order.Items),
		PaymentMethod: order.PaymentMethod,
		CompletedAt:   order.CompletedAt,
	}

	if err := s.eventPublisher.PublishOrderEvent(ctx, event); err != nil {
		s.logger.Error("Failed to publish order event",
			zap.String("event_type", eventType),
			zap.String("order_id", order.ID),
			zap.Error(err))
	}
}

func (s *OrderService) indexOf(id string) int {
	for i, o := range s.orders {
		if o.ID == id {
			return i
		}
	}
	return -1
}

// snapshot deep-copies the orders so a failed save leaves s.orders intact.
// Callers hold s.mu.
func (s *OrderService) snapshot() []models.Order {
	out := make([]models.Order, len(s.orders))
	for i, o := range s.orders {
		out[i] = o.Clone()
	}
	return out
}

// commit persists updated and swaps it in. Callers hold s.mu.
func (s *OrderService) commit(ctx context.Context, updated []models.Order) error {
	if err := s.repo.SaveAll(ctx, updated); err != nil {
		return err
	}
	s.orders = updated
	return nil
}

func paymentLabel(m models.PaymentMethod) string {
	if m == models.PaymentNone {
		return "none"
	}
	return string(m)
}
