// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budget-ledger/backend/internal/application/usecase/budgetitem"
	domainerror "github.com/budget-ledger/backend/internal/domain/error"
	"github.com/budget-ledger/backend/internal/integration/entrypoint/dto"
)

// BudgetItemController handles budget item tree endpoints.
type BudgetItemController struct {
	createUseCase     *budgetitem.CreateItemUseCase
	listUseCase       *budgetitem.ListItemsUseCase
	deactivateUseCase *budgetitem.DeactivateItemUseCase
}

// NewBudgetItemController creates a new budget item controller instance.
func NewBudgetItemController(
	createUseCase *budgetitem.CreateItemUseCase,
	listUseCase *budgetitem.ListItemsUseCase,
	deactivateUseCase *budgetitem.DeactivateItemUseCase,
) *BudgetItemController {
	return &BudgetItemController{
		createUseCase:     createUseCase,
		listUseCase:       listUseCase,
		deactivateUseCase: deactivateUseCase,
	}
}

// Create handles POST /budget-items requests.
func (c *BudgetItemController) Create(ctx *gin.Context) {
	var req dto.CreateBudgetItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingItemFields),
		})
		return
	}

	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid category ID format",
		})
		return
	}
	periodID, err := uuid.Parse(req.PeriodID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid period ID format",
		})
		return
	}

	var parentID *uuid.UUID
	if req.ParentID != "" {
		parsed, err := uuid.Parse(req.ParentID)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid parent ID format",
			})
			return
		}
		parentID = &parsed
	}

	unitAmount, ok := parseOptionalAmount(ctx, req.UnitAmount, "unit_amount")
	if !ok {
		return
	}
	totalTarget, ok := parseOptionalAmount(ctx, req.TotalTarget, "total_target")
	if !ok {
		return
	}

	input := budgetitem.CreateItemInput{
		CategoryID:      categoryID,
		PeriodID:        periodID,
		ParentID:        parentID,
		Name:            req.Name,
		Description:     req.Description,
		Code:            req.Code,
		TargetFrequency: req.TargetFrequency,
		FrequencyUnit:   req.FrequencyUnit,
		UnitAmount:      unitAmount,
		TotalTarget:     totalTarget,
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleBudgetItemError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToBudgetItemResponse(output.Item, 0))
}

// List handles GET /budget-items requests.
func (c *BudgetItemController) List(ctx *gin.Context) {
	periodID, err := uuid.Parse(ctx.Query("period_id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "period_id query parameter is required",
		})
		return
	}

	input := budgetitem.ListItemsInput{
		PeriodID:        periodID,
		Search:          ctx.Query("search"),
		IncludeInactive: ctx.Query("include_inactive") == "true",
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
	if parentIDStr := ctx.Query("parent_id"); parentIDStr != "" {
		parentID, err := uuid.Parse(parentIDStr)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid parent ID format",
			})
			return
		}
		input.ParentID = &parentID
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

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleBudgetItemError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBudgetItemListResponse(output.Items))
}

// Deactivate handles DELETE /budget-items/:id requests.
func (c *BudgetItemController) Deactivate(ctx *gin.Context) {
	itemID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid budget item ID format",
		})
		return
	}

	input := budgetitem.DeactivateItemInput{
		ItemID: itemID,
	}

	if _, err := c.deactivateUseCase.Execute(ctx.Request.Context(), input); err != nil {
		c.handleBudgetItemError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// handleBudgetItemError handles budget item errors and returns appropriate
// HTTP responses. Period errors pass through for the not-found case on list.
func (c *BudgetItemController) handleBudgetItemError(ctx *gin.Context, err error) {
	var itemErr *domainerror.BudgetItemError
	if errors.As(err, &itemErr) {
		ctx.JSON(c.getStatusCodeForBudgetItemError(itemErr.Code), dto.ErrorResponse{
			Error: itemErr.Message,
			Code:  string(itemErr.Code),
		})
		return
	}

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

// getStatusCodeForBudgetItemError maps budget item error codes to HTTP status codes.
func (c *BudgetItemController) getStatusCodeForBudgetItemError(code domainerror.BudgetItemErrorCode) int {
	switch code {
	case domainerror.ErrCodeBudgetItemNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeDuplicateItemCode,
		domainerror.ErrCodeBudgetItemInUse,
		domainerror.ErrCodeItemSequenceConflict:
		return http.StatusConflict
	case domainerror.ErrCodeInvalidParent,
		domainerror.ErrCodeMissingItemFields:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// parseOptionalAmount parses an optional decimal string field. The second
// return value reports whether handling should continue.
func parseOptionalAmount(ctx *gin.Context, value, field string) (*decimal.Decimal, bool) {
	if value == "" {
		return nil, true
	}
	amount, err := decimal.NewFromString(value)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid " + field + ", expected a decimal string",
		})
		return nil, false
	}
	return &amount, true
}
