// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthController handles health check endpoints.
type HealthController struct {
	dbHealthChecker func() bool
}

// NewHealthController creates a new health controller instance.
func NewHealthController(dbHealthChecker func() bool) *HealthController {
	return &HealthController{
		dbHealthChecker: dbHealthChecker,
	}
}

// Check handles GET /health requests.
func (c *HealthController) Check(ctx *gin.Context) {
	dbStatus := "ok"
	statusCode := http.StatusOK
	if c.dbHealthChecker == nil || !c.dbHealthChecker() {
		dbStatus = "unavailable"
		statusCode = http.StatusServiceUnavailable
	}

	ctx.JSON(statusCode, gin.H{
		"status":   "ok",
		"database": dbStatus,
	})
}
