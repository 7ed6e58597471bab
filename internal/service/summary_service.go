package service

import (
	"sort"
	"time"

	"restaurant-service/internal/models"

	"github.com/shopspring/decimal"
)

// SummaryService derives daily revenue from the order ledger. It holds no
// state of its own, so every call reflects the ledger at that moment.
type SummaryService struct {
	orders OrderReader
	loc    *time.Location
	now    func() time.Time
}

// NewSummaryService creates an aggregator over orders. Calendar days are
// taken in loc; nil means the local zone.
func NewSummaryService(orders OrderReader, loc *time.Location) *SummaryService {
	if loc == nil {
		loc = time.Local
	}
	return &SummaryService{
		orders: orders,
		loc:    loc,
		now:    time.Now,
	}
}

// Today returns the current calendar day
func (s *SummaryService) Today() models.DateKey {
	return models.DateKeyOf(s.now(), s.loc)
}

// DailySummary totals the orders completed on date. An empty date means today.
func (s *SummaryService) DailySummary(date models.DateKey) models.DailySummary {
	if date == "" {
		date = s.Today()
	}

	summary := models.DailySummary{
		Date:         date,
		TotalRevenue: decimal.Zero,
		PaymentMethods: models.PaymentBreakdown{
			Cash: decimal.Zero,
			Card: decimal.Zero,
			Pix:  decimal.Zero,
		},
	}

	for _, order := range s.orders.Orders() {
		key, ok := s.completedDay(order)
		if !ok || key != date {
			continue
		}
		summary.TotalRevenue = summary.TotalRevenue.Add(order.Total)
		summary.CompletedOrders++
		summary.PaymentMethods.Add(order.PaymentMethod, order.Total)
	}

	summary.PaymentShares = summary.PaymentMethods.Shares(summary.TotalRevenue)
	return summary
}

// AvailableDates lists the distinct days with completed orders, most recent
// first.
func (s *SummaryService) AvailableDates() []models.DateKey {
	seen := make(map[models.DateKey]struct{})
	dates := []models.DateKey{}

	for _, order := range s.orders.Orders() {
		key, ok := s.completedDay(order)
		if !ok {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		dates = append(dates, key)
	}

	// YYYY-MM-DD sorts chronologically as a string.
	sort.Slice(dates, func(i, j int) bool { return dates[i] > dates[j] })
	return dates
}

func (s *SummaryService) completedDay(order models.Order) (models.DateKey, bool) {
	if order.Status != models.OrderCompleted || order.CompletedAt == nil {
		return "", false
	}
	return models.DateKeyOf(*order.CompletedAt, s.loc), true
}
