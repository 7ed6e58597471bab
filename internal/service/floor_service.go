package service

import (
	"context"
	"fmt"
	"sync"

	"restaurant-service/internal/models"
	"restaurant-service/internal/util"

	"go.uber.org/zap"
)

// FloorService runs the front-of-house intents that touch both a table and
// its order, keeping Table.CurrentOrderID in step with the order's state.
// Edits to completed orders are refused here; the ledger itself stays
// unguarded.
type FloorService struct {
	mu     sync.Mutex
	tables *TableService
	orders *OrderService
	logger *zap.Logger
}

// NewFloorService creates a coordinator over the table registry and ledger
func NewFloorService(tables *TableService, orders *OrderService) *FloorService {
	return &FloorService{
		tables: tables,
		orders: orders,
		logger: util.GetLogger(),
	}
}

// OpenTable starts an order on a table and marks it occupied. A table that
// is already linked to an open order returns that order. An open order for
// the table that lost its link (a failed table write) is linked again
// instead of starting a second one.
func (f *FloorService) OpenTable(ctx context.Context, tableID string) (string, error) {
	ctx, span := util.StartSpan(ctx, "FloorService.OpenTable")
	defer span.End()

	f.mu.Lock()
	defer f.mu.Unlock()

	table, ok := f.tables.Table(tableID)
	if !ok {
		return "", fmt.Errorf("%w: %s", models.ErrTableNotFound, tableID)
	}

	if table.Status == models.TableOccupied && table.CurrentOrderID != "" {
		if order, ok := f.orders.Order(table.CurrentOrderID); ok && order.Status != models.OrderCompleted {
			return order.ID, nil
		}
	}

	orderID, ok := f.unlinkedOpenOrder(tableID)
	if !ok {
		var err error
		orderID, err = f.orders.CreateOrder(ctx, tableID)
		if err != nil {
			return "", err
		}
	}

	if err := f.tables.UpdateTableStatus(ctx, tableID, models.TableOccupied, orderID); err != nil {
		f.logger.Error("Order left without table link",
			zap.String("table_id", tableID),
			zap.String("order_id", orderID),
			zap.Error(err))
		return "", fmt.Errorf("failed to occupy table: %w", err)
	}

	f.logger.Info("Table opened",
		zap.String("table_id", tableID),
		zap.Int("number", table.Number),
		zap.String("order_id", orderID))
	return orderID, nil
}

// unlinkedOpenOrder finds the newest non-completed order for tableID. Callers
// hold f.mu.
func (f *FloorService) unlinkedOpenOrder(tableID string) (string, bool) {
	orders := f.orders.Orders()
	for i := len(orders) - 1; i >= 0; i-- {
		if orders[i].TableID == tableID && orders[i].Status != models.OrderCompleted {
			return orders[i].ID, true
		}
	}
	return "", false
}

// CompleteOrder closes an order with paymentMethod and frees its table.
// Orders without items cannot be completed. Retrying after the table write
// failed frees the table that still points at the completed order.
func (f *FloorService) CompleteOrder(ctx context.Context, orderID string, paymentMethod models.PaymentMethod) error {
	ctx, span := util.StartSpan(ctx, "FloorService.CompleteOrder")
	defer span.End()

	f.mu.Lock()
	defer f.mu.Unlock()

	order, ok := f.orders.Order(orderID)
	if !ok {
		return fmt.Errorf("%w: %s", models.ErrOrderNotFound, orderID)
	}

	if order.Status == models.OrderCompleted {
		table, ok := f.tables.Table(order.TableID)
		if !ok || table.CurrentOrderID != orderID {
			return fmt.Errorf("%w: %s", models.ErrOrderCompleted, orderID)
		}
		f.logger.Warn("Freeing table still linked to completed order",
			zap.String("table_id", table.ID),
			zap.String("order_id", orderID))
		return f.freeTable(ctx, order.TableID)
	}

	if len(order.Items) == 0 {
		return fmt.Errorf("%w: %s", models.ErrEmptyOrder, orderID)
	}

	if err := f.orders.UpdateOrderStatus(ctx, orderID, models.OrderCompleted, paymentMethod); err != nil {
		return err
	}
	return f.freeTable(ctx, order.TableID)
}

func (f *FloorService) freeTable(ctx context.Context, tableID string) error {
	if err := f.tables.UpdateTableStatus(ctx, tableID, models.TableAvailable, ""); err != nil {
		return fmt.Errorf("failed to free table: %w", err)
	}
	return nil
}

// StandbyOrder parks an order. Its table stays occupied and linked.
func (f *FloorService) StandbyOrder(ctx context.Context, orderID string) error {
	return f.setOpenStatus(ctx, orderID, models.OrderStandby)
}

// ResumeOrder makes a parked order active again
func (f *FloorService) ResumeOrder(ctx context.Context, orderID string) error {
	return f.setOpenStatus(ctx, orderID, models.OrderActive)
}

func (f *FloorService) setOpenStatus(ctx context.Context, orderID string, status models.OrderStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.orders.Order(orderID); !ok {
		return fmt.Errorf("%w: %s", models.ErrOrderNotFound, orderID)
	}
	return f.orders.UpdateOrderStatus(ctx, orderID, status, models.PaymentNone)
}

// AddItem adds quantity units of menuItem to an open order
func (f *FloorService) AddItem(ctx context.Context, orderID string, menuItem models.MenuItem, quantity int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.requireOpen(orderID); err != nil {
		return err
	}
	return f.orders.AddItemToOrder(ctx, orderID, menuItem, quantity)
}

// RemoveItem drops the line for menuItemID from an open order
func (f *FloorService) RemoveItem(ctx context.Context, orderID, menuItemID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.requireOpen(orderID); err != nil {
		return err
	}
	return f.orders.RemoveItemFromOrder(ctx, orderID, menuItemID)
}

func (f *FloorService) requireOpen(orderID string) error {
	order, ok := f.orders.Order(orderID)
	if !ok {
		return fmt.Errorf("%w: %s", models.ErrOrderNotFound, orderID)
	}
	if order.Status == models.OrderCompleted {
		return fmt.Errorf("%w: %s", models.ErrOrderCompleted, orderID)
	}
	return nil
}
