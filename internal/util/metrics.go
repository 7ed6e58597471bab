package util

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OrdersCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orders_created_total",
		Help: "Total number of orders opened",
	})

	OrdersCompletedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "orders_completed_total",
		Help: "Total number of orders completed",
	}, []string{"payment_method"})

	OrdersStandbyTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orders_standby_total",
		Help: "Total number of orders parked in standby",
	})

	OrderItemsAddedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "order_items_added_total",
		Help: "Total number of item units added to orders",
	})

	OrderItemsRemovedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "order_items_removed_total",
		Help: "Total number of order lines removed",
	})

	RevenueTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "revenue_total",
		Help: "Revenue of completed orders by payment method",
	}, []string{"payment_method"})

	TablesOccupied = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "tables_occupied",
		Help: "Number of tables currently occupied",
	})

	TablesTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "tables_total",
		Help: "Number of tables in the registry",
	})

	SnapshotSaveLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "snapshot_save_latency_seconds",
		Help:    "Latency of collection snapshot writes",
		Buckets: prometheus.DefBuckets,
	}, []string{"collection"})

	SnapshotLoadFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "snapshot_load_failures_total",
		Help: "Total number of snapshots that failed to decode",
	}, []string{"collection"})

	CategoryDeletesBlockedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "category_deletes_blocked_total",
		Help: "Total number of category deletions refused because menu items still use them",
	})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
)
