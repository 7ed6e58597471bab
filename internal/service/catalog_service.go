package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"restaurant-service/internal/models"
	"restaurant-service/internal/store"
	"restaurant-service/internal/util"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// DefaultCategories seeds an empty catalog
func DefaultCategories() []models.Category {
	return []models.Category{
		{ID: "1", Name: "espetos", Icon: "Utensils"},
		{ID: "2", Name: "lanches", Icon: "Coffee"},
		{ID: "3", Name: "bebidas", Icon: "Wine"},
	}
}

// DefaultMenuItems seeds an empty menu
func DefaultMenuItems() []models.MenuItem {
	return []models.MenuItem{
		{ID: "1", Name: "Espeto de Carne", Category: "espetos", Price: decimal.RequireFromString("8.50")},
		{ID: "2", Name: "Espeto de Frango", Category: "espetos", Price: decimal.RequireFromString("7.00")},
		{ID: "3", Name: "X-Burger", Category: "lanches", Price: decimal.RequireFromString("15.00")},
		{ID: "4", Name: "X-Salada", Category: "lanches", Price: decimal.RequireFromString("18.00")},
		{ID: "5", Name: "Coca-Cola", Category: "bebidas", Price: decimal.RequireFromString("5.00")},
		{ID: "6", Name: "Cerveja", Category: "bebidas", Price: decimal.RequireFromString("6.00")},
	}
}

// CategoryUpdate carries the fields to change; nil fields are left alone
type CategoryUpdate struct {
	Name *string `json:"name"`
	Icon *string `json:"icon"`
}

// MenuItemInput describes a new menu item
type MenuItemInput struct {
	Name     string          `json:"name" binding:"required"`
	Category string          `json:"category" binding:"required"`
	Price    decimal.Decimal `json:"price"`
}

// MenuItemUpdate carries the fields to change; nil fields are left alone
type MenuItemUpdate struct {
	Name     *string          `json:"name"`
	Category *string          `json:"category"`
	Price    *decimal.Decimal `json:"price"`
}

// CatalogService owns categories and menu items
type CatalogService struct {
	mu           sync.RWMutex
	categories   []models.Category
	menuItems    []models.MenuItem
	categoryRepo *store.Collection[models.Category]
	menuItemRepo *store.Collection[models.MenuItem]
	logger       *zap.Logger
}

// NewCatalogService creates a catalog persisted through kv
func NewCatalogService(kv store.KV) *CatalogService {
	return &CatalogService{
		categories:   []models.Category{},
		menuItems:    []models.MenuItem{},
		categoryRepo: store.NewCollection(kv, store.KeyCategories, DefaultCategories),
		menuItemRepo: store.NewCollection(kv, store.KeyMenuItems, DefaultMenuItems),
		logger:       util.GetLogger(),
	}
}

// Load replaces the in-memory catalog with the stored snapshots
func (s *CatalogService) Load(ctx context.Context) error {
	categories, err := s.categoryRepo.LoadAll(ctx)
	if err != nil {
		return err
	}
	menuItems, err := s.menuItemRepo.LoadAll(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories = categories
	s.menuItems = menuItems
	return nil
}

// Categories returns every category
func (s *CatalogService) Categories() []models.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Category(nil), s.categories...)
}

// Category looks up a category by id
func (s *CatalogService) Category(id string) (models.Category, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.categories {
		if c.ID == id {
			return c, true
		}
	}
	return models.Category{}, false
}

// AddCategory creates a category. The name is stored lowercased.
func (s *CatalogService) AddCategory(ctx context.Context, name, icon string) (models.Category, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return models.Category{}, models.ErrEmptyName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	category := models.Category{
		ID:   uuid.New().String(),
		Name: name,
		Icon: icon,
	}

	updated := append(append([]models.Category(nil), s.categories...), category)
	if err := s.categoryRepo.SaveAll(ctx, updated); err != nil {
		return models.Category{}, err
	}
	s.categories = updated

	s.logger.Info("Category added", zap.String("category_id", category.ID), zap.String("name", category.Name))
	return category, nil
}

// UpdateCategory applies update to a category. Menu items that reference
// the old name keep it. Unknown ids are ignored.
func (s *CatalogService) UpdateCategory(ctx context.Context, id string, update CategoryUpdate) error {
	if update.Name != nil && isBlank(*update.Name) {
		return models.ErrEmptyName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, c := range s.categories {
		if c.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}

	updated := append([]models.Category(nil), s.categories...)
	if update.Name != nil {
		updated[idx].Name = *update.Name
	}
	if update.Icon != nil {
		updated[idx].Icon = *update.Icon
	}

	if err := s.categoryRepo.SaveAll(ctx, updated); err != nil {
		return err
	}
	s.categories = updated

	s.logger.Info("Category updated", zap.String("category_id", id))
	return nil
}

// DeleteCategory removes a category without checking for menu items that
// still use it; see CountMenuItemsInCategory.
func (s *CatalogService) DeleteCategory(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	updated := make([]models.Category, 0, len(s.categories))
	for _, c := range s.categories {
		if c.ID != id {
			updated = append(updated, c)
		}
	}
	if len(updated) == len(s.categories) {
		return nil
	}

	if err := s.categoryRepo.SaveAll(ctx, updated); err != nil {
		return err
	}
	s.categories = updated

	s.logger.Info("Category deleted", zap.String("category_id", id))
	return nil
}

// CountMenuItemsInCategory counts menu items whose category is name
func (s *CatalogService) CountMenuItemsInCategory(name string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, item := range s.menuItems {
		if item.Category == name {
			count++
		}
	}
	return count
}

// MenuItems returns every menu item
func (s *CatalogService) MenuItems() []models.MenuItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.MenuItem(nil), s.menuItems...)
}

// MenuItem looks up a menu item by id
func (s *CatalogService) MenuItem(id string) (models.MenuItem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, item := range s.menuItems {
		if item.ID == id {
			return item, true
		}
	}
	return models.MenuItem{}, false
}

// AddMenuItem creates a menu item
func (s *CatalogService) AddMenuItem(ctx context.Context, input MenuItemInput) (models.MenuItem, error) {
	if isBlank(input.Name) {
		return models.MenuItem{}, models.ErrEmptyName
	}
	if input.Price.IsNegative() {
		return models.MenuItem{}, fmt.Errorf("%w: %s", models.ErrInvalidPrice, input.Price)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	item := models.MenuItem{
		ID:       uuid.New().String(),
		Name:     input.Name,
		Category: input.Category,
		Price:    input.Price,
	}

	updated := append(append([]models.MenuItem(nil), s.menuItems...), item)
	if err := s.menuItemRepo.SaveAll(ctx, updated); err != nil {
		return models.MenuItem{}, err
	}
	s.menuItems = updated

	s.logger.Info("Menu item added",
		zap.String("menu_item_id", item.ID),
		zap.String("name", item.Name),
		zap.String("price", item.Price.StringFixed(2)))
	return item, nil
}

// UpdateMenuItem applies update to a menu item. Orders already holding the
// item keep the copy they were given. Unknown ids are ignored.
func (s *CatalogService) UpdateMenuItem(ctx context.Context, id string, update MenuItemUpdate) error {
	if update.Name != nil && isBlank(*update.Name) {
		return models.ErrEmptyName
	}
	if update.Price != nil && update.Price.IsNegative() {
		return fmt.Errorf("%w: %s", models.ErrInvalidPrice, update.Price)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, item := range s.menuItems {
		if item.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}

	updated := append([]models.MenuItem(nil), s.menuItems...)
	if update.Name != nil {
		updated[idx].Name = *update.Name
	}
	if update.Category != nil {
		updated[idx].Category = *update.Category
	}
	if update.Price != nil {
		updated[idx].Price = *update.Price
	}

	if err := s.menuItemRepo.SaveAll(ctx, updated); err != nil {
		return err
	}
	s.menuItems = updated

	s.logger.Info("Menu item updated", zap.String("menu_item_id", id))
	return nil
}

// DeleteMenuItem removes a menu item. Unknown ids are ignored.
func (s *CatalogService) DeleteMenuItem(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	updated := make([]models.MenuItem, 0, len(s.menuItems))
	for _, item := range s.menuItems {
		if item.ID != id {
			updated = append(updated, item)
		}
	}
	if len(updated) == len(s.menuItems) {
		return nil
	}

	if err := s.menuItemRepo.SaveAll(ctx, updated); err != nil {
		return err
	}
	s.menuItems = updated

	s.logger.Info("Menu item deleted", zap.String("menu_item_id", id))
	return nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
