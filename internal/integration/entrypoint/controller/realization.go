// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budget-ledger/backend/internal/application/usecase/realization"
	domainerror "github.com/budget-ledger/backend/internal/domain/error"
	"github.com/budget-ledger/backend/internal/integration/entrypoint/dto"
)

// RealizationController handles realization ledger endpoints.
type RealizationController struct {
	postUseCase   *realization.PostRealizationUseCase
	listUseCase   *realization.ListRealizationsUseCase
	updateUseCase *realization.UpdateRealizationUseCase
	deleteUseCase *realization.DeleteRealizationUseCase
	importUseCase *realization.ImportRealizationsUseCase
}

// NewRealizationController creates a new realization controller instance.
func NewRealizationController(
	postUseCase *realization.PostRealizationUseCase,
	listUseCase *realization.ListRealizationsUseCase,
	updateUseCase *realization.UpdateRealizationUseCase,
	deleteUseCase *realization.DeleteRealizationUseCase,
	importUseCase *realization.ImportRealizationsUseCase,
) *RealizationController {
	return &RealizationController{
		postUseCase:   postUseCase,
		listUseCase:   listUseCase,
		updateUseCase: updateUseCase,
		deleteUseCase: deleteUseCase,
		importUseCase: importUseCase,
	}
}

// Post handles POST /realizations requests.
func (c *RealizationController) Post(ctx *gin.Context) {
	var req dto.PostRealizationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingRealizationFields),
		})
		return
	}

	budgetItemID, err := uuid.Parse(req.BudgetItemID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid budget item ID format",
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
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid date, expected YYYY-MM-DD",
		})
		return
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid amount, expected a decimal string",
			Code:  string(domainerror.ErrCodeInvalidAmount),
		})
		return
	}

	input := realization.PostRealizationInput{
		BudgetItemID: budgetItemID,
		PeriodID:     periodID,
		Date:         date,
		Amount:       amount,
		Note:         req.Note,
	}

	output, err := c.postUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleRealizationError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToRealizationResponse(output.Entry))
}

// List handles GET /realizations requests.
func (c *RealizationController) List(ctx *gin.Context) {
	input := realization.ListRealizationsInput{
		Search: ctx.Query("search"),
	}

	if periodIDStr := ctx.Query("period_id"); periodIDStr != "" {
		periodID, err := uuid.Parse(periodIDStr)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid period ID format",
			})
			return
		}
		input.PeriodID = &periodID
	}
	if itemIDStr := ctx.Query("budget_item_id"); itemIDStr != "" {
		itemID, err := uuid.Parse(itemIDStr)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid budget item ID format",
			})
			return
		}
		input.BudgetItemID = &itemID
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
	if pageStr := ctx.Query("page"); pageStr != "" {
		if page, err := strconv.Atoi(pageStr); err == nil {
			input.Page = page
		}
	}
	if limitStr := ctx.Query("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil {
			input.Limit = limit
		}
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to retrieve realizations",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.ToRealizationListResponse(
		output.Entries, output.Total, output.Page, output.Limit, output.TotalPages))
}

// Update handles PATCH /realizations/:id requests.
func (c *RealizationController) Update(ctx *gin.Context) {
	entryID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid realization entry ID format",
		})
		return
	}

	var req dto.UpdateRealizationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	input := realization.UpdateRealizationInput{
		EntryID: entryID,
		Note:    req.Note,
	}

	if req.Date != nil {
		date, err := time.Parse("2006-01-02", *req.Date)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid date, expected YYYY-MM-DD",
			})
			return
		}
		input.Date = &date
	}
	if req.Amount != nil {
		amount, err := decimal.NewFromString(*req.Amount)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid amount, expected a decimal string",
				Code:  string(domainerror.ErrCodeInvalidAmount),
			})
			return
		}
		input.Amount = &amount
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleRealizationError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToRealizationResponse(output.Entry))
}

// Delete handles DELETE /realizations/:id requests.
func (c *RealizationController) Delete(ctx *gin.Context) {
	entryID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid realization entry ID format",
		})
		return
	}

	input := realization.DeleteRealizationInput{
		EntryID: entryID,
	}

	if _, err := c.deleteUseCase.Execute(ctx.Request.Context(), input); err != nil {
		c.handleRealizationError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// Import handles POST /realizations/import requests. Any invalid row
// rejects the whole batch; the response then lists every rejected row with
// its index.
func (c *RealizationController) Import(ctx *gin.Context) {
	var req dto.ImportRealizationsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingRealizationFields),
		})
		return
	}

	entries := make([]realization.ImportEntryInput, len(req.Entries))
	for i, row := range req.Entries {
		budgetItemID, err := uuid.Parse(row.BudgetItemID)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid budget item ID format at row " + strconv.Itoa(i),
			})
			return
		}
		periodID, err := uuid.Parse(row.PeriodID)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid period ID format at row " + strconv.Itoa(i),
			})
			return
		}
		date, err := time.Parse("2006-01-02", row.Date)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid date at row " + strconv.Itoa(i) + ", expected YYYY-MM-DD",
			})
			return
		}
		amount, err := decimal.NewFromString(row.Amount)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid amount at row " + strconv.Itoa(i) + ", expected a decimal string",
				Code:  string(domainerror.ErrCodeInvalidAmount),
			})
			return
		}

		entries[i] = realization.ImportEntryInput{
			BudgetItemID: budgetItemID,
			PeriodID:     periodID,
			Date:         date,
			Amount:       amount,
			Note:         row.Note,
			Year:         row.Year,
			Month:        row.Month,
			Week:         row.Week,
		}
	}

	output, err := c.importUseCase.Execute(ctx.Request.Context(), realization.ImportRealizationsInput{
		Entries: entries,
	})
	if err != nil {
		var bulkErr *domainerror.BulkImportError
		if errors.As(err, &bulkErr) {
			ctx.JSON(http.StatusUnprocessableEntity, dto.ToImportErrorResponse(bulkErr))
			return
		}
		c.handleRealizationError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ImportSummaryResponse{
		TotalRows:   output.Summary.TotalRows,
		TotalAmount: output.Summary.TotalAmount.String(),
	})
}

// handleRealizationError handles realization errors and returns appropriate
// HTTP responses. Period fence errors surface with their own codes.
func (c *RealizationController) handleRealizationError(ctx *gin.Context, err error) {
	var rlzErr *domainerror.RealizationError
	if errors.As(err, &rlzErr) {
		ctx.JSON(c.getStatusCodeForRealizationError(rlzErr.Code), dto.ErrorResponse{
			Error: rlzErr.Message,
			Code:  string(rlzErr.Code),
		})
		return
	}

	var perErr *domainerror.PeriodError
	if errors.As(err, &perErr) {
		statusCode := http.StatusInternalServerError
		switch perErr.Code {
		case domainerror.ErrCodePeriodClosed:
			statusCode = http.StatusUnprocessableEntity
		case domainerror.ErrCodeDateOutOfRange:
			statusCode = http.StatusBadRequest
		case domainerror.ErrCodePeriodNotFound:
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

// getStatusCodeForRealizationError maps realization error codes to HTTP status codes.
func (c *RealizationController) getStatusCodeForRealizationError(code domainerror.RealizationErrorCode) int {
	switch code {
	case domainerror.ErrCodeRealizationNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeDuplicatePeriodKey,
		domainerror.ErrCodeBulkImportConflict:
		return http.StatusConflict
	case domainerror.ErrCodePeriodMismatch,
		domainerror.ErrCodeInvalidAmount,
		domainerror.ErrCodeMissingRealizationFields,
		domainerror.ErrCodeUnknownItem:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
