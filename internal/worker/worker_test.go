package worker

import (
	"context"
	"testing"

	"restaurant-service/internal/models"
	"restaurant-service/internal/util"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func revenueEvent(id string, total string, method models.PaymentMethod) *models.OrderEvent {
	return &models.OrderEvent{
		BaseEvent:     models.BaseEvent{EventID: id, EventType: models.EventTypeOrderCompleted},
		OrderID:       "order-" + id,
		Status:        models.OrderCompleted,
		Total:         decimal.RequireFromString(total),
		PaymentMethod: method,
	}
}

func TestHandleOrderCompletedRecordsRevenue(t *testing.T) {
	w := NewRevenueWorker(nil)
	ctx := context.Background()

	pix := util.RevenueTotal.WithLabelValues("pix")
	none := util.RevenueTotal.WithLabelValues("none")
	pixBefore, noneBefore := testutil.ToFloat64(pix), testutil.ToFloat64(none)

	require.NoError(t, w.HandleOrderCompleted(ctx, revenueEvent("a", "12.50", models.PaymentPix)))
	require.NoError(t, w.HandleOrderCompleted(ctx, revenueEvent("b", "7.50", models.PaymentPix)))
	require.NoError(t, w.HandleOrderCompleted(ctx, revenueEvent("c", "3", models.PaymentNone)))

	assert.InDelta(t, 20.0, testutil.ToFloat64(pix)-pixBefore, 1e-9)
	assert.InDelta(t, 3.0, testutil.ToFloat64(none)-noneBefore, 1e-9)
}

func TestHandleOrderCompletedIgnoresRedelivery(t *testing.T) {
	w := NewRevenueWorker(nil)
	ctx := context.Background()

	cash := util.RevenueTotal.WithLabelValues("cash")
	before := testutil.ToFloat64(cash)

	event := revenueEvent("dup", "10.00", models.PaymentCash)
	require.NoError(t, w.HandleOrderCompleted(ctx, event))
	require.NoError(t, w.HandleOrderCompleted(ctx, event))

	assert.InDelta(t, 10.0, testutil.ToFloat64(cash)-before, 1e-9)
}

func TestSeenEventsAreBounded(t *testing.T) {
	w := newRevenueWorker(nil, 2)
	ctx := context.Background()

	card := util.RevenueTotal.WithLabelValues("card")
	before := testutil.ToFloat64(card)

	for _, id := range []string{"e1", "e2", "e3"} {
		require.NoError(t, w.HandleOrderCompleted(ctx, revenueEvent(id, "1.00", models.PaymentCard)))
	}
	assert.Equal(t, 2, w.seen.Len())
	assert.False(t, w.seen.Contains("e1"), "oldest id is evicted")

	// Recent ids are still deduplicated
	require.NoError(t, w.HandleOrderCompleted(ctx, revenueEvent("e3", "1.00", models.PaymentCard)))
	assert.InDelta(t, 3.0, testutil.ToFloat64(card)-before, 1e-9)
}
