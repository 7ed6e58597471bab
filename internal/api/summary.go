package api

import (
	"net/http"

	"restaurant-service/internal/models"

	"github.com/gin-gonic/gin"
)

// dailySummary reports revenue for ?date=YYYY-MM-DD, defaulting to today
func (h *Handler) dailySummary(c *gin.Context) {
	var date models.DateKey
	if raw := c.Query("date"); raw != "" {
		parsed, err := models.ParseDateKey(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Invalid date",
				"details": err.Error(),
			})
			return
		}
		date = parsed
	}

	c.JSON(http.StatusOK, h.summary.DailySummary(date))
}

func (h *Handler) availableDates(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"today": h.summary.Today(),
		"dates": h.summary.AvailableDates(),
	})
}
