// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/budget-ledger/backend/internal/application/usecase/period"
	"github.com/budget-ledger/backend/internal/domain/entity"
	domainerror "github.com/budget-ledger/backend/internal/domain/error"
	"github.com/budget-ledger/backend/internal/integration/entrypoint/dto"
)

// PeriodController handles fiscal period endpoints.
type PeriodController struct {
	createUseCase       *period.CreatePeriodUseCase
	listUseCase         *period.ListPeriodsUseCase
	updateStatusUseCase *period.UpdatePeriodStatusUseCase
	deactivateUseCase   *period.DeactivatePeriodUseCase
}

// NewPeriodController creates a new period controller instance.
func NewPeriodController(
	createUseCase *period.CreatePeriodUseCase,
	listUseCase *period.ListPeriodsUseCase,
	updateStatusUseCase *period.UpdatePeriodStatusUseCase,
	deactivateUseCase *period.DeactivatePeriodUseCase,
) *PeriodController {
	return &PeriodController{
		createUseCase:       createUseCase,
		listUseCase:         listUseCase,
		updateStatusUseCase: updateStatusUseCase,
		deactivateUseCase:   deactivateUseCase,
	}
}

// Create handles POST /periods requests.
func (c *PeriodController) Create(ctx *gin.Context) {
	var req dto.CreatePeriodRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingPeriodFields),
		})
		return
	}

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid start date, expected YYYY-MM-DD",
			Code:  string(domainerror.ErrCodeInvalidPeriodDates),
		})
		return
	}
	endDate, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid end date, expected YYYY-MM-DD",
			Code:  string(domainerror.ErrCodeInvalidPeriodDates),
		})
		return
	}

	input := period.CreatePeriodInput{
		Name:      req.Name,
		Year:      req.Year,
		StartDate: startDate,
		EndDate:   endDate,
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handlePeriodError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToPeriodResponse(output.Period))
}

// List handles GET /periods requests.
func (c *PeriodController) List(ctx *gin.Context) {
	input := period.ListPeriodsInput{
		ActiveOnly: ctx.Query("include_inactive") != "true",
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to retrieve periods",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.ToPeriodListResponse(output.Periods))
}

// UpdateStatus handles PATCH /periods/:id/status requests.
func (c *PeriodController) UpdateStatus(ctx *gin.Context) {
	periodID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid period ID format",
		})
		return
	}

	var req dto.UpdatePeriodStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeInvalidPeriodStatus),
		})
		return
	}

	input := period.UpdatePeriodStatusInput{
		PeriodID: periodID,
		Status:   entity.PeriodStatus(req.Status),
	}

	output, err := c.updateStatusUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handlePeriodError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToPeriodResponse(output.Period))
}

// Deactivate handles DELETE /periods/:id requests.
func (c *PeriodController) Deactivate(ctx *gin.Context) {
	periodID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid period ID format",
		})
		return
	}

	input := period.DeactivatePeriodInput{
		PeriodID: periodID,
	}

	if _, err := c.deactivateUseCase.Execute(ctx.Request.Context(), input); err != nil {
		c.handlePeriodError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// handlePeriodError handles period errors and returns appropriate HTTP responses.
func (c *PeriodController) handlePeriodError(ctx *gin.Context, err error) {
	var perErr *domainerror.PeriodError
	if errors.As(err, &perErr) {
		ctx.JSON(c.getStatusCodeForPeriodError(perErr.Code), dto.ErrorResponse{
			Error: perErr.Message,
			Code:  string(perErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForPeriodError maps period error codes to HTTP status codes.
func (c *PeriodController) getStatusCodeForPeriodError(code domainerror.PeriodErrorCode) int {
	switch code {
	case domainerror.ErrCodePeriodNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodePeriodNameExists,
		domainerror.ErrCodePeriodInUse:
		return http.StatusConflict
	case domainerror.ErrCodePeriodClosed:
		return http.StatusUnprocessableEntity
	case domainerror.ErrCodeDateOutOfRange,
		domainerror.ErrCodeInvalidPeriodStatus,
		domainerror.ErrCodeInvalidPeriodDates,
		domainerror.ErrCodeMissingPeriodFields:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
