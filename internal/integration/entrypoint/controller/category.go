// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/budget-ledger/backend/internal/application/usecase/category"
	domainerror "github.com/budget-ledger/backend/internal/domain/error"
	"github.com/budget-ledger/backend/internal/integration/entrypoint/dto"
)

// CategoryController handles category endpoints.
type CategoryController struct {
	createUseCase     *category.CreateCategoryUseCase
	listUseCase       *category.ListCategoriesUseCase
	deactivateUseCase *category.DeactivateCategoryUseCase
}

// NewCategoryController creates a new category controller instance.
func NewCategoryController(
	createUseCase *category.CreateCategoryUseCase,
	listUseCase *category.ListCategoriesUseCase,
	deactivateUseCase *category.DeactivateCategoryUseCase,
) *CategoryController {
	return &CategoryController{
		createUseCase:     createUseCase,
		listUseCase:       listUseCase,
		deactivateUseCase: deactivateUseCase,
	}
}

// Create handles POST /categories requests.
func (c *CategoryController) Create(ctx *gin.Context) {
	var req dto.CreateCategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingCategoryFields),
		})
		return
	}

	input := category.CreateCategoryInput{
		Name:      req.Name,
		ShortCode: req.ShortCode,
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleCategoryError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToCategoryResponse(output.Category))
}

// List handles GET /categories requests.
func (c *CategoryController) List(ctx *gin.Context) {
	input := category.ListCategoriesInput{
		ActiveOnly: ctx.Query("include_inactive") != "true",
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to retrieve categories",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCategoryListResponse(output.Categories))
}

// Deactivate handles DELETE /categories/:id requests.
func (c *CategoryController) Deactivate(ctx *gin.Context) {
	categoryID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid category ID format",
		})
		return
	}

	input := category.DeactivateCategoryInput{
		CategoryID: categoryID,
	}

	if _, err := c.deactivateUseCase.Execute(ctx.Request.Context(), input); err != nil {
		c.handleCategoryError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// handleCategoryError handles category errors and returns appropriate HTTP responses.
func (c *CategoryController) handleCategoryError(ctx *gin.Context, err error) {
	var catErr *domainerror.CategoryError
	if errors.As(err, &catErr) {
		ctx.JSON(c.getStatusCodeForCategoryError(catErr.Code), dto.ErrorResponse{
			Error: catErr.Message,
			Code:  string(catErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForCategoryError maps category error codes to HTTP status codes.
func (c *CategoryController) getStatusCodeForCategoryError(code domainerror.CategoryErrorCode) int {
	switch code {
	case domainerror.ErrCodeCategoryNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeCategoryNameExists,
		domainerror.ErrCodeCategoryCodeExists,
		domainerror.ErrCodeCategoryInUse:
		return http.StatusConflict
	case domainerror.ErrCodeMissingCategoryFields:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
