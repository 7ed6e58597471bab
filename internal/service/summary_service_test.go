package service

import (
	"context"
	"testing"
	"time"

	"restaurant-service/internal/models"
	"restaurant-service/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticOrders []models.Order

func (s staticOrders) Orders() []models.Order { return s }

func completedOrder(id, total string, method models.PaymentMethod, at time.Time) models.Order {
	return models.Order{
		ID:            id,
		TableID:       "t",
		Status:        models.OrderCompleted,
		Total:         dec(total),
		PaymentMethod: method,
		CreatedAt:     at.Add(-time.Hour),
		CompletedAt:   &at,
	}
}

func TestDailySummaryBucketsByPaymentMethod(t *testing.T) {
	day := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	orders := staticOrders{
		completedOrder("1", "10.00", models.PaymentCash, day.Add(12*time.Hour)),
		completedOrder("2", "20.00", models.PaymentCard, day.Add(13*time.Hour)),
		completedOrder("3", "15.00", models.PaymentNone, day.Add(20*time.Hour)),
	}
	s := NewSummaryService(orders, time.UTC)

	summary := s.DailySummary("2024-06-10")
	assert.Equal(t, models.DateKey("2024-06-10"), summary.Date)
	assert.True(t, dec("45.00").Equal(summary.TotalRevenue), "got %s", summary.TotalRevenue)
	assert.Equal(t, 3, summary.CompletedOrders)
	assert.True(t, dec("10.00").Equal(summary.PaymentMethods.Cash))
	assert.True(t, dec("20.00").Equal(summary.PaymentMethods.Card))
	assert.True(t, summary.PaymentMethods.Pix.IsZero())

	// 10 of 45 in cash, 20 of 45 electronic; the unpaid order counts in neither
	assert.True(t, dec("22.2").Equal(summary.PaymentShares.Cash), "got %s", summary.PaymentShares.Cash)
	assert.True(t, dec("44.4").Equal(summary.PaymentShares.Electronic), "got %s", summary.PaymentShares.Electronic)
}

func TestDailySummaryEmptyDay(t *testing.T) {
	s := NewSummaryService(staticOrders{}, time.UTC)

	summary := s.DailySummary("2024-06-10")
	assert.True(t, summary.TotalRevenue.IsZero())
	assert.Equal(t, 0, summary.CompletedOrders)
	assert.True(t, summary.PaymentMethods.Cash.IsZero())
	assert.True(t, summary.PaymentMethods.Card.IsZero())
	assert.True(t, summary.PaymentMethods.Pix.IsZero())
	assert.True(t, summary.PaymentShares.Cash.IsZero())
	assert.True(t, summary.PaymentShares.Electronic.IsZero())
}

func TestDailySummaryIgnoresOpenOrdersAndOtherDays(t *testing.T) {
	day := time.Date(2024, 6, 10, 15, 0, 0, 0, time.UTC)
	orders := staticOrders{
		completedOrder("1", "10.00", models.PaymentPix, day),
		completedOrder("2", "99.00", models.PaymentPix, day.AddDate(0, 0, -1)),
		{ID: "3", Status: models.OrderActive, Total: dec("50.00"), CreatedAt: day},
		{ID: "4", Status: models.OrderStandby, Total: dec("40.00"), CreatedAt: day},
	}
	s := NewSummaryService(orders, time.UTC)

	summary := s.DailySummary("2024-06-10")
	assert.Equal(t, 1, summary.CompletedOrders)
	assert.True(t, dec("10.00").Equal(summary.TotalRevenue))
	assert.True(t, dec("10.00").Equal(summary.PaymentMethods.Pix))
}

func TestDailySummaryUsesConfiguredZone(t *testing.T) {
	saoPaulo := time.FixedZone("BRT", -3*60*60)
	// 01:30 UTC on the 11th is still the evening of the 10th in BRT.
	late := time.Date(2024, 6, 11, 1, 30, 0, 0, time.UTC)
	orders := staticOrders{completedOrder("1", "12.00", models.PaymentCash, late)}

	assert.Equal(t, 1, NewSummaryService(orders, saoPaulo).DailySummary("2024-06-10").CompletedOrders)
	assert.Equal(t, 1, NewSummaryService(orders, time.UTC).DailySummary("2024-06-11").CompletedOrders)
}

func TestDailySummaryDefaultsToToday(t *testing.T) {
	now := time.Date(2024, 6, 10, 18, 0, 0, 0, time.UTC)
	orders := staticOrders{completedOrder("1", "7.00", models.PaymentCash, now.Add(-time.Hour))}
	s := NewSummaryService(orders, time.UTC)
	s.now = func() time.Time { return now }

	summary := s.DailySummary("")
	assert.Equal(t, models.DateKey("2024-06-10"), summary.Date)
	assert.Equal(t, 1, summary.CompletedOrders)
}

func TestAvailableDatesDistinctAndDescending(t *testing.T) {
	d1 := time.Date(2024, 5, 31, 20, 0, 0, 0, time.UTC)
	d2 := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	d3 := time.Date(2023, 12, 25, 12, 0, 0, 0, time.UTC)

	var orders staticOrders
	for i := 0; i < 5; i++ {
		orders = append(orders, completedOrder("d2", "1.00", models.PaymentCash, d2.Add(time.Duration(i)*time.Minute)))
	}
	orders = append(orders,
		completedOrder("d1", "1.00", models.PaymentCard, d1),
		completedOrder("d3", "1.00", models.PaymentPix, d3),
		models.Order{ID: "open", Status: models.OrderActive, CreatedAt: d2.AddDate(0, 0, 5)},
	)

	dates := NewSummaryService(orders, time.UTC).AvailableDates()
	assert.Equal(t, []models.DateKey{"2024-06-10", "2024-05-31", "2023-12-25"}, dates)
}

func TestSummaryReflectsLedgerChanges(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{t: time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)}
	ledger, _ := newTestOrderService(t, store.NewMemoryStore(), clock)
	s := NewSummaryService(ledger, time.UTC)
	assert.Empty(t, s.AvailableDates())

	id, err := ledger.CreateOrder(ctx, "table-1")
	require.NoError(t, err)
	require.NoError(t, ledger.AddItemToOrder(ctx, id, menuItem("a", "3.00"), 1))
	assert.Empty(t, s.AvailableDates(), "open orders have no completion day")

	require.NoError(t, ledger.UpdateOrderStatus(ctx, id, models.OrderCompleted, models.PaymentCash))
	assert.Equal(t, []models.DateKey{"2024-06-10"}, s.AvailableDates())
	assert.True(t, dec("3.00").Equal(s.DailySummary("2024-06-10").TotalRevenue))
}
