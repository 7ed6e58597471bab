package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"restaurant-service/internal/models"
	"restaurant-service/internal/store"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// mockKV is a store.KV whose calls are scripted per test
type mockKV struct {
	mock.Mock
}

func (m *mockKV) Load(ctx context.Context, key string) ([]byte, bool, error) {
	args := m.Called(ctx, key)
	raw, _ := args.Get(0).([]byte)
	return raw, args.Bool(1), args.Error(2)
}

func (m *mockKV) Save(ctx context.Context, key string, value []byte) error {
	return m.Called(ctx, key, value).Error(0)
}

// recordingPublisher keeps every published event
type recordingPublisher struct {
	mu     sync.Mutex
	events []*models.OrderEvent
}

func (p *recordingPublisher) PublishOrderEvent(_ context.Context, event *models.OrderEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.EventType
	}
	return out
}

// fakeClock returns a settable time
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = t
}

func newTestOrderService(t *testing.T, kv store.KV, clock *fakeClock) (*OrderService, *recordingPublisher) {
	t.Helper()
	pub := &recordingPublisher{}
	s := NewOrderService(kv, pub)
	if clock != nil {
		s.now = clock.Now
	}
	require.NoError(t, s.Load(context.Background()))
	return s, pub
}

func menuItem(id, price string) models.MenuItem {
	return models.MenuItem{
		ID:       id,
		Name:     "item-" + id,
		Category: "test",
		Price:    decimal.RequireFromString(price),
	}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
