package api

import (
	"fmt"
	"net/http"

	"restaurant-service/internal/models"

	"github.com/gin-gonic/gin"
)

type updateTableStatusRequest struct {
	Status  models.TableStatus `json:"status" binding:"required"`
	OrderID string             `json:"orderId"`
}

func (h *Handler) listTables(c *gin.Context) {
	c.JSON(http.StatusOK, h.tables.Tables())
}

func (h *Handler) addTable(c *gin.Context) {
	table, err := h.tables.AddTable(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, table)
}

// removeTable drops the most recently added table
func (h *Handler) removeTable(c *gin.Context) {
	removed, err := h.tables.RemoveTable(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": removed})
}

func (h *Handler) updateTableStatus(c *gin.Context) {
	var req updateTableStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	tableID := c.Param("id")
	if err := h.tables.UpdateTableStatus(c.Request.Context(), tableID, req.Status, req.OrderID); err != nil {
		h.respondError(c, err)
		return
	}

	table, ok := h.tables.Table(tableID)
	if !ok {
		h.respondError(c, fmt.Errorf("%w: %s", models.ErrTableNotFound, tableID))
		return
	}
	c.JSON(http.StatusOK, table)
}

func (h *Handler) openTable(c *gin.Context) {
	orderID, err := h.floor.OpenTable(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	order, _ := h.orders.Order(orderID)
	c.JSON(http.StatusCreated, order)
}

func (h *Handler) tableQRCode(c *gin.Context) {
	tableID := c.Param("id")
	table, ok := h.tables.Table(tableID)
	if !ok {
		h.respondError(c, fmt.Errorf("%w: %s", models.ErrTableNotFound, tableID))
		return
	}

	png, err := h.qr.Generate(table.Number)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}
