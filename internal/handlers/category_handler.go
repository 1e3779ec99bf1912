// =============================================================================
// FILE: internal/handlers/category_handler.go
// PURPOSE: HTTP request handling for category endpoints
// =============================================================================

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"catalog-api/internal/models"
	"catalog-api/internal/services"
)

// CategoryHandler handles HTTP requests for category endpoints
type CategoryHandler struct {
	categoryService services.CategoryServiceInterface
	log             *logrus.Logger
}

// NewCategoryHandler creates a new CategoryHandler instance
func NewCategoryHandler(categoryService services.CategoryServiceInterface, logger *logrus.Logger) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService, log: logger}
}

// RegisterRoutes mounts the category endpoints under /categories
func (h *CategoryHandler) RegisterRoutes(router gin.IRouter) {
	registerValidations()

	categories := router.Group("/categories")
	{
		categories.GET("", h.ListCategories)
		categories.POST("", h.CreateCategory)
		categories.GET("/:id", h.GetCategory)
		categories.PUT("/:id", h.UpdateCategory)
		categories.DELETE("/:id", h.DeleteCategory)

		// GET /categories/:id/products - products that belong to the category
		categories.GET("/:id/products", h.ListCategoryProducts)
	}
}

// =============================================================================
// ENDPOINT: GET /categories
// =============================================================================

// ListCategories returns every category
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	h.log.Info("Request to get all categories")

	categories, err := h.categoryService.GetAllCategories(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, models.ToCategoryDTOList(categories))
}

// =============================================================================
// ENDPOINT: GET /categories/:id
// =============================================================================

// GetCategory returns one category
func (h *CategoryHandler) GetCategory(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		_ = c.Error(err)
		return
	}
	h.log.WithField("id", id).Info("Request to get category by ID")

	category, err := h.categoryService.GetCategoryByID(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, models.ToCategoryDTO(category))
}

// =============================================================================
// ENDPOINT: POST /categories
// =============================================================================

// CreateCategory stores a new category and answers 201 with it
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var dto models.CategoryDTO
	if err := bindJSON(c, &dto); err != nil {
		_ = c.Error(err)
		return
	}
	h.log.WithField("name", dto.Name).Info("Request to create a new category")

	// a client supplied id is never used for inserts
	dto.ID = 0
	created, err := h.categoryService.CreateCategory(c.Request.Context(), models.ToCategoryModel(dto))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, models.ToCategoryDTO(created))
}

// =============================================================================
// ENDPOINT: PUT /categories/:id
// =============================================================================

// UpdateCategory replaces a category. The id in the URL always wins over
// the id in the body.
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		_ = c.Error(err)
		return
	}

	var dto models.CategoryDTO
	if err := bindJSON(c, &dto); err != nil {
		_ = c.Error(err)
		return
	}
	h.log.WithField("id", id).Info("Request to update category")

	dto.ID = id
	updated, err := h.categoryService.UpdateCategory(c.Request.Context(), id, models.ToCategoryModel(dto))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, models.ToCategoryDTO(updated))
}

// =============================================================================
// ENDPOINT: DELETE /categories/:id
// =============================================================================

// DeleteCategory removes a category and its products, answering 204
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		_ = c.Error(err)
		return
	}
	h.log.WithField("id", id).Info("Request to delete category")

	if err := h.categoryService.DeleteCategory(c.Request.Context(), id); err != nil {
		_ = c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}

// =============================================================================
// ENDPOINT: GET /categories/:id/products
// =============================================================================

// ListCategoryProducts returns the products of a category without their
// category back-reference
func (h *CategoryHandler) ListCategoryProducts(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		_ = c.Error(err)
		return
	}

	products, err := h.categoryService.GetCategoryProducts(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, models.ToProductSummaryDTOList(products))
}
