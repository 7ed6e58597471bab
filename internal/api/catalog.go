package api

import (
	"fmt"
	"net/http"

	"restaurant-service/internal/models"
	"restaurant-service/internal/service"
	"restaurant-service/internal/util"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type addCategoryRequest struct {
	Name string `json:"name" binding:"required"`
	Icon string `json:"icon"`
}

const defaultCategoryIcon = "Utensils"

func (h *Handler) listCategories(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.Categories())
}

func (h *Handler) addCategory(c *gin.Context) {
	var req addCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if req.Icon == "" {
		req.Icon = defaultCategoryIcon
	}

	category, err := h.catalog.AddCategory(c.Request.Context(), req.Name, req.Icon)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, category)
}

func (h *Handler) updateCategory(c *gin.Context) {
	var req service.CategoryUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	id := c.Param("id")
	if _, ok := h.catalog.Category(id); !ok {
		h.respondError(c, fmt.Errorf("%w: %s", models.ErrCategoryNotFound, id))
		return
	}
	if err := h.catalog.UpdateCategory(c.Request.Context(), id, req); err != nil {
		h.respondError(c, err)
		return
	}

	category, _ := h.catalog.Category(id)
	c.JSON(http.StatusOK, category)
}

// deleteCategory refuses to delete a category while menu items still
// reference it by name, reporting how many do.
func (h *Handler) deleteCategory(c *gin.Context) {
	id := c.Param("id")
	category, ok := h.catalog.Category(id)
	if !ok {
		h.respondError(c, fmt.Errorf("%w: %s", models.ErrCategoryNotFound, id))
		return
	}

	if inUse := h.catalog.CountMenuItemsInCategory(category.Name); inUse > 0 {
		util.CategoryDeletesBlockedTotal.Inc()
		h.logger.Info("Category delete blocked",
			zap.String("category_id", id),
			zap.String("name", category.Name),
			zap.Int("items", inUse))
		c.JSON(http.StatusConflict, gin.H{
			"error": fmt.Sprintf("category %q is used by %d menu items", category.Name, inUse),
			"items": inUse,
		})
		return
	}

	if err := h.catalog.DeleteCategory(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) listMenuItems(c *gin.Context) {
	items := h.catalog.MenuItems()

	if category := c.Query("category"); category != "" {
		filtered := make([]models.MenuItem, 0, len(items))
		for _, item := range items {
			if item.Category == category {
				filtered = append(filtered, item)
			}
		}
		items = filtered
	}

	c.JSON(http.StatusOK, items)
}

func (h *Handler) addMenuItem(c *gin.Context) {
	var req service.MenuItemInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	item, err := h.catalog.AddMenuItem(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *Handler) updateMenuItem(c *gin.Context) {
	var req service.MenuItemUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	id := c.Param("id")
	if _, ok := h.catalog.MenuItem(id); !ok {
		h.respondError(c, fmt.Errorf("%w: %s", models.ErrMenuItemNotFound, id))
		return
	}
	if err := h.catalog.UpdateMenuItem(c.Request.Context(), id, req); err != nil {
		h.respondError(c, err)
		return
	}

	item, _ := h.catalog.MenuItem(id)
	c.JSON(http.StatusOK, item)
}

func (h *Handler) deleteMenuItem(c *gin.Context) {
	if err := h.catalog.DeleteMenuItem(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
