package handlers

import (
	"net/http"
	"time"

	"portfolio-api/models"

	"github.com/gin-gonic/gin"
)

// ISO 8601 in UTC with milliseconds, e.g. 2025-03-01T09:30:00.000Z
const healthTimestampLayout = "2006-01-02T15:04:05.000Z"

func HealthCheck(service string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, models.HealthResponse{
			Status:    "ok",
			Timestamp: time.Now().UTC().Format(healthTimestampLayout),
			Service:   service,
		})
	}
}
