package service

import (
	"context"
	"fmt"
	"sync"

	"restaurant-service/internal/models"
	"restaurant-service/internal/store"
	"restaurant-service/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TableService is the table registry
type TableService struct {
	mu     sync.RWMutex
	tables []models.Table
	repo   *store.Collection[models.Table]
	logger *zap.Logger
}

// NewTableService creates a table registry persisted through kv
func NewTableService(kv store.KV) *TableService {
	return &TableService{
		tables: []models.Table{},
		repo:   store.NewCollection[models.Table](kv, store.KeyTables, nil),
		logger: util.GetLogger(),
	}
}

// Load replaces the in-memory tables with the stored snapshot
func (s *TableService) Load(ctx context.Context) error {
	tables, err := s.repo.LoadAll(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables = tables
	s.updateGauges()
	return nil
}

// Tables returns the tables in creation order
func (s *TableService) Tables() []models.Table {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Table(nil), s.tables...)
}

// Table looks up a table by id
func (s *TableService) Table(id string) (models.Table, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.tables {
		if t.ID == id {
			return t, true
		}
	}
	return models.Table{}, false
}

// AddTable appends an available table numbered after the current count
func (s *TableService) AddTable(ctx context.Context) (models.Table, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	table := models.Table{
		ID:     uuid.New().String(),
		Number: len(s.tables) + 1,
		Status: models.TableAvailable,
	}

	updated := append(append([]models.Table(nil), s.tables...), table)
	if err := s.commit(ctx, updated); err != nil {
		return models.Table{}, err
	}

	s.logger.Info("Table added", zap.String("table_id", table.ID), zap.Int("number", table.Number))
	return table, nil
}

// RemoveTable drops the most recently added table. It reports false when
// the registry is empty.
func (s *TableService) RemoveTable(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.tables) == 0 {
		return false, nil
	}

	last := s.tables[len(s.tables)-1]
	updated := append([]models.Table(nil), s.tables[:len(s.tables)-1]...)
	if err := s.commit(ctx, updated); err != nil {
		return false, err
	}

	s.logger.Info("Table removed", zap.String("table_id", last.ID), zap.Int("number", last.Number))
	return true, nil
}

// UpdateTableStatus sets the status of a table and replaces its order
// reference; an empty orderID clears it. Unknown ids are ignored.
func (s *TableService) UpdateTableStatus(ctx context.Context, tableID string, status models.TableStatus, orderID string) error {
	if !status.Valid() {
		return fmt.Errorf("%w: %q", models.ErrInvalidTableStatus, status)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(tableID)
	if idx < 0 {
		s.logger.Debug("Status update for unknown table ignored", zap.String("table_id", tableID))
		return nil
	}

	updated := append([]models.Table(nil), s.tables...)
	updated[idx].Status = status
	updated[idx].CurrentOrderID = orderID

	if err := s.commit(ctx, updated); err != nil {
		return err
	}

	s.logger.Info("Table status updated",
		zap.String("table_id", tableID),
		zap.String("status", string(status)),
		zap.String("order_id", orderID))
	return nil
}

func (s *TableService) indexOf(id string) int {
	for i, t := range s.tables {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// commit persists updated and swaps it in. Callers hold s.mu.
func (s *TableService) commit(ctx context.Context, updated []models.Table) error {
	if err := s.repo.SaveAll(ctx, updated); err != nil {
		return err
	}
	s.tables = updated
	s.updateGauges()
	return nil
}

func (s *TableService) updateGauges() {
	occupied := 0
	for _, t := range s.tables {
		if t.Status == models.TableOccupied {
			occupied++
		}
	}
	util.TablesOccupied.Set(float64(occupied))
	util.TablesTotal.Set(float64(len(s.tables)))
}
