// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/budget-ledger/backend/internal/application/usecase/rollup"
	domainerror "github.com/budget-ledger/backend/internal/domain/error"
	"github.com/budget-ledger/backend/internal/integration/entrypoint/dto"
)

// RollupController handles rollup report endpoints.
type RollupController struct {
	computeUseCase *rollup.ComputeRollupUseCase
}

// NewRollupController creates a new rollup controller instance.
func NewRollupController(computeUseCase *rollup.ComputeRollupUseCase) *RollupController {
	return &RollupController{
		computeUseCase: computeUseCase,
	}
}

// Compute handles GET /rollup requests. Category, level and item filters
// narrow the returned node set only; aggregates always cover the full tree.
func (c *RollupController) Compute(ctx *gin.Context) {
	periodID, err := uuid.Parse(ctx.Query("period_id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "period_id query parameter is required",
		})
		return
	}

	input := rollup.ComputeRollupInput{
		PeriodID: periodID,
	}

	if categoryIDStr := ctx.Query("category_id"); categoryIDStr != "" {
		categoryID, err := uuid.Parse(categoryIDStr)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid category ID format",
			})
			return
		}
		input.CategoryID = &categoryID
	}
	if itemIDStr := ctx.Query("item_id"); itemIDStr != "" {
		itemID, err := uuid.Parse(itemIDStr)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid budget item ID format",
			})
			return
		}
		input.ItemID = &itemID
	}
	if levelStr := ctx.Query("level"); levelStr != "" {
		level, err := strconv.Atoi(levelStr)
		if err != nil || level < 1 {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid level, expected a positive integer",
			})
			return
		}
		input.Level = &level
	}
	if startDateStr := ctx.Query("start_date"); startDateStr != "" {
		startDate, err := time.Parse("2006-01-02", startDateStr)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid start date, expected YYYY-MM-DD",
			})
			return
		}
		input.StartDate = &startDate
	}
	if endDateStr := ctx.Query("end_date"); endDateStr != "" {
		endDate, err := time.Parse("2006-01-02", endDateStr)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid end date, expected YYYY-MM-DD",
			})
			return
		}
		input.EndDate = &endDate
	}

	output, err := c.computeUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleRollupError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToRollupResponse(output.Items, output.Summary))
}

// handleRollupError handles rollup errors and returns appropriate HTTP responses.
func (c *RollupController) handleRollupError(ctx *gin.Context, err error) {
	var perErr *domainerror.PeriodError
	if errors.As(err, &perErr) {
		statusCode := http.StatusInternalServerError
		if perErr.Code == domainerror.ErrCodePeriodNotFound {
			statusCode = http.StatusNotFound
		}
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: perErr.Message,
			Code:  string(perErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}
