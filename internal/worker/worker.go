package worker

import (
	"context"

	"restaurant-service/internal/broker"
	"restaurant-service/internal/models"
	"restaurant-service/internal/util"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
)

// DefaultSeenEvents bounds how many event ids are remembered for dedup
const DefaultSeenEvents = 10000

// RevenueWorker turns ORDER_COMPLETED events into revenue metrics
type RevenueWorker struct {
	consumer     *broker.Consumer
	eventHandler *broker.EventHandler
	logger       *zap.Logger
	seen         *lru.Cache[string, struct{}]
}

// NewRevenueWorker creates a new revenue worker remembering the last
// DefaultSeenEvents event ids
func NewRevenueWorker(consumer *broker.Consumer) *RevenueWorker {
	return newRevenueWorker(consumer, DefaultSeenEvents)
}

func newRevenueWorker(consumer *broker.Consumer, seenEvents int) *RevenueWorker {
	seen, err := lru.New[string, struct{}](seenEvents)
	if err != nil {
		panic(err)
	}
	w := &RevenueWorker{
		consumer:     consumer,
		eventHandler: broker.NewEventHandler(),
		logger:       util.GetLogger(),
		seen:         seen,
	}
	w.eventHandler.OnOrderCompleted(w.HandleOrderCompleted)
	return w
}

// Start consumes events until ctx is done
func (w *RevenueWorker) Start(ctx context.Context) error {
	w.logger.Info("Starting revenue worker")
	return w.consumer.StartConsuming(ctx, w.eventHandler.HandleMessage)
}

// Stop stops the worker
func (w *RevenueWorker) Stop() error {
	w.logger.Info("Stopping revenue worker")
	return w.consumer.Close()
}

// HandleOrderCompleted records the order's total under its payment method.
// Redeliveries of any of the most recently seen event ids are skipped.
func (w *RevenueWorker) HandleOrderCompleted(_ context.Context, event *models.OrderEvent) error {
	if dup, _ := w.seen.ContainsOrAdd(event.EventID, struct{}{}); dup {
		w.logger.Info("Event already processed", zap.String("event_id", event.EventID))
		return nil
	}

	method := string(event.PaymentMethod)
	if event.PaymentMethod == models.PaymentNone {
		method = "none"
	}

	amount, _ := event.Total.Float64()
	util.RevenueTotal.WithLabelValues(method).Add(amount)

	w.logger.Info("Revenue recorded",
		zap.String("order_id", event.OrderID),
		zap.String("payment_method", method),
		zap.String("total", event.Total.StringFixed(2)))
	return nil
}
