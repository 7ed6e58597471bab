package api

import (
	"fmt"
	"net/http"

	"restaurant-service/internal/models"

	"github.com/gin-gonic/gin"
)

type addOrderItemRequest struct {
	MenuItemID string `json:"menuItemId" binding:"required"`
	Quantity   int    `json:"quantity"`
}

type updateOrderStatusRequest struct {
	Status        models.OrderStatus   `json:"status" binding:"required"`
	PaymentMethod models.PaymentMethod `json:"paymentMethod"`
}

type completeOrderRequest struct {
	PaymentMethod models.PaymentMethod `json:"paymentMethod"`
}

func (h *Handler) listOrders(c *gin.Context) {
	orders := h.orders.Orders()

	if status := c.Query("status"); status != "" {
		filtered := make([]models.Order, 0, len(orders))
		for _, o := range orders {
			if string(o.Status) == status {
				filtered = append(filtered, o)
			}
		}
		orders = filtered
	}

	c.JSON(http.StatusOK, orders)
}

func (h *Handler) getOrder(c *gin.Context) {
	h.writeOrder(c, c.Param("id"))
}

// addOrderItem copies the current catalog entry into an open order
func (h *Handler) addOrderItem(c *gin.Context) {
	var req addOrderItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	orderID := c.Param("id")
	if _, ok := h.orders.Order(orderID); !ok {
		h.respondError(c, fmt.Errorf("%w: %s", models.ErrOrderNotFound, orderID))
		return
	}

	menuItem, ok := h.catalog.MenuItem(req.MenuItemID)
	if !ok {
		h.respondError(c, fmt.Errorf("%w: %s", models.ErrMenuItemNotFound, req.MenuItemID))
		return
	}

	if err := h.floor.AddItem(c.Request.Context(), orderID, menuItem, req.Quantity); err != nil {
		h.respondError(c, err)
		return
	}
	h.writeOrder(c, orderID)
}

func (h *Handler) removeOrderItem(c *gin.Context) {
	orderID := c.Param("id")
	if err := h.floor.RemoveItem(c.Request.Context(), orderID, c.Param("menuItemId")); err != nil {
		h.respondError(c, err)
		return
	}
	h.writeOrder(c, orderID)
}

// updateOrderStatus goes through the floor intents so the table link
// follows the order
func (h *Handler) updateOrderStatus(c *gin.Context) {
	var req updateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	ctx := c.Request.Context()
	orderID := c.Param("id")

	var err error
	switch req.Status {
	case models.OrderCompleted:
		err = h.floor.CompleteOrder(ctx, orderID, req.PaymentMethod)
	case models.OrderStandby:
		err = h.floor.StandbyOrder(ctx, orderID)
	case models.OrderActive:
		err = h.floor.ResumeOrder(ctx, orderID)
	default:
		err = fmt.Errorf("%w: %q", models.ErrInvalidOrderStatus, req.Status)
	}
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.writeOrder(c, orderID)
}

func (h *Handler) completeOrder(c *gin.Context) {
	var req completeOrderRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
	}

	orderID := c.Param("id")
	if err := h.floor.CompleteOrder(c.Request.Context(), orderID, req.PaymentMethod); err != nil {
		h.respondError(c, err)
		return
	}
	h.writeOrder(c, orderID)
}

func (h *Handler) standbyOrder(c *gin.Context) {
	orderID := c.Param("id")
	if err := h.floor.StandbyOrder(c.Request.Context(), orderID); err != nil {
		h.respondError(c, err)
		return
	}
	h.writeOrder(c, orderID)
}

func (h *Handler) resumeOrder(c *gin.Context) {
	orderID := c.Param("id")
	if err := h.floor.ResumeOrder(c.Request.Context(), orderID); err != nil {
		h.respondError(c, err)
		return
	}
	h.writeOrder(c, orderID)
}

func (h *Handler) writeOrder(c *gin.Context, orderID string) {
	order, ok := h.orders.Order(orderID)
	if !ok {
		h.respondError(c, fmt.Errorf("%w: %s", models.ErrOrderNotFound, orderID))
		return
	}
	c.JSON(http.StatusOK, order)
}
