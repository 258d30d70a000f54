// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/budget-ledger/backend/internal/integration/entrypoint/controller"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine                *gin.Engine
	healthController      *controller.HealthController
	categoryController    *controller.CategoryController
	periodController      *controller.PeriodController
	budgetItemController  *controller.BudgetItemController
	realizationController *controller.RealizationController
	rollupController      *controller.RollupController
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	categoryController *controller.CategoryController,
	periodController *controller.PeriodController,
	budgetItemController *controller.BudgetItemController,
	realizationController *controller.RealizationController,
	rollupController *controller.RollupController,
) *Router {
	return &Router{
		healthController:      healthController,
		categoryController:    categoryController,
		periodController:      periodController,
		budgetItemController:  budgetItemController,
		realizationController: realizationController,
		rollupController:      rollupController,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	// Default middleware (logger and recovery)
	r.engine = gin.Default()

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")
	{
		categories := v1.Group("/categories")
		{
			categories.GET("", r.categoryController.List)
			categories.POST("", r.categoryController.Create)
			categories.DELETE("/:id", r.categoryController.Deactivate)
		}

		periods := v1.Group("/periods")
		{
			periods.GET("", r.periodController.List)
			periods.POST("", r.periodController.Create)
			periods.PATCH("/:id/status", r.periodController.UpdateStatus)
			periods.DELETE("/:id", r.periodController.Deactivate)
		}

		budgetItems := v1.Group("/budget-items")
		{
			budgetItems.GET("", r.budgetItemController.List)
			budgetItems.POST("", r.budgetItemController.Create)
			budgetItems.DELETE("/:id", r.budgetItemController.Deactivate)
		}

		realizations := v1.Group("/realizations")
		{
			realizations.GET("", r.realizationController.List)
			realizations.POST("", r.realizationController.Post)
			realizations.POST("/import", r.realizationController.Import)
			realizations.PATCH("/:id", r.realizationController.Update)
			realizations.DELETE("/:id", r.realizationController.Delete)
		}

		v1.GET("/rollup", r.rollupController.Compute)
	}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
