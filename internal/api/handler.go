package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"restaurant-service/internal/models"
	"restaurant-service/internal/service"
	"restaurant-service/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Handler contains HTTP handlers
type Handler struct {
	tables  *service.TableService
	orders  *service.OrderService
	catalog *service.CatalogService
	summary *service.SummaryService
	floor   *service.FloorService
	qr      service.QRGenerator
	logger  *zap.Logger
}

// Services bundles the dependencies of Handler
type Services struct {
	Tables  *service.TableService
	Orders  *service.OrderService
	Catalog *service.CatalogService
	Summary *service.SummaryService
	Floor   *service.FloorService
	QR      service.QRGenerator
}

// NewHandler creates a new HTTP handler
func NewHandler(s Services) *Handler {
	return &Handler{
		tables:  s.Tables,
		orders:  s.Orders,
		catalog: s.Catalog,
		summary: s.Summary,
		floor:   s.Floor,
		qr:      s.QR,
		logger:  util.GetLogger(),
	}
}

// SetupRoutes sets up HTTP routes
func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(prometheusMiddleware())

	router.GET("/health", h.healthCheck)
	router.GET("/ready", h.readinessCheck)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/tables", h.listTables)
		v1.POST("/tables", h.addTable)
		v1.DELETE("/tables", h.removeTable)
		v1.PUT("/tables/:id/status", h.updateTableStatus)
		v1.POST("/tables/:id/open", h.openTable)
		v1.GET("/tables/:id/qrcode", h.tableQRCode)

		v1.GET("/orders", h.listOrders)
		v1.GET("/orders/:id", h.getOrder)
		v1.POST("/orders/:id/items", h.addOrderItem)
		v1.DELETE("/orders/:id/items/:menuItemId", h.removeOrderItem)
		v1.PUT("/orders/:id/status", h.updateOrderStatus)
		v1.POST("/orders/:id/complete", h.completeOrder)
		v1.POST("/orders/:id/standby", h.standbyOrder)
		v1.POST("/orders/:id/resume", h.resumeOrder)

		v1.GET("/categories", h.listCategories)
		v1.POST("/categories", h.addCategory)
		v1.PUT("/categories/:id", h.updateCategory)
		v1.DELETE("/categories/:id", h.deleteCategory)

		v1.GET("/menu-items", h.listMenuItems)
		v1.POST("/menu-items", h.addMenuItem)
		v1.PUT("/menu-items/:id", h.updateMenuItem)
		v1.DELETE("/menu-items/:id", h.deleteMenuItem)

		v1.GET("/summary/daily", h.dailySummary)
		v1.GET("/summary/dates", h.availableDates)
	}
}

// healthCheck handles health check requests
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().Unix(),
	})
}

// readinessCheck handles readiness check requests
func (h *Handler) readinessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"time":   time.Now().Unix(),
	})
}

// respondError maps service errors onto HTTP statuses
func (h *Handler) respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, models.ErrTableNotFound),
		errors.Is(err, models.ErrOrderNotFound),
		errors.Is(err, models.ErrMenuItemNotFound),
		errors.Is(err, models.ErrCategoryNotFound):
		status = http.StatusNotFound
	case errors.Is(err, models.ErrOrderCompleted),
		errors.Is(err, models.ErrEmptyOrder):
		status = http.StatusConflict
	case errors.Is(err, models.ErrInvalidQuantity),
		errors.Is(err, models.ErrInvalidPrice),
		errors.Is(err, models.ErrEmptyName),
		errors.Is(err, models.ErrInvalidTableStatus),
		errors.Is(err, models.ErrInvalidOrderStatus),
		errors.Is(err, models.ErrInvalidPaymentMethod):
		status = http.StatusBadRequest
	}

	if status == http.StatusInternalServerError {
		h.logger.Error("Request failed",
			zap.String("path", c.FullPath()),
			zap.Error(err))
	}

	c.JSON(status, gin.H{
		"error": err.Error(),
	})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":   "Invalid request body",
		"details": err.Error(),
	})
}

// prometheusMiddleware collects HTTP metrics
func prometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		util.HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Observe(duration)

		util.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Inc()
	}
}
