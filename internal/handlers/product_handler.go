// =============================================================================
// FILE: internal/handlers/product_handler.go
// PURPOSE: HTTP request handling for product endpoints
// =============================================================================

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"catalog-api/internal/models"
	"catalog-api/internal/services"
)

// ProductHandler handles HTTP requests for product endpoints
type ProductHandler struct {
	productService services.ProductServiceInterface
	log            *logrus.Logger
}

// NewProductHandler creates a new ProductHandler instance
func NewProductHandler(productService services.ProductServiceInterface, logger *logrus.Logger) *ProductHandler {
	return &ProductHandler{productService: productService, log: logger}
}

// RegisterRoutes mounts the product endpoints under /products
func (h *ProductHandler) RegisterRoutes(router gin.IRouter) {
	registerValidations()

	products := router.Group("/products")
	{
		products.GET("", h.ListProducts)
		products.POST("", h.CreateProduct)
		products.GET("/:id", h.GetProduct)
		products.PUT("/:id", h.UpdateProduct)
		products.DELETE("/:id", h.DeleteProduct)
	}
}

// ListProducts returns every product with its category
func (h *ProductHandler) ListProducts(c *gin.Context) {
	h.log.Info("Request to get all products")

	products, err := h.productService.GetAllProducts(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, models.ToProductDTOList(products))
}

// GetProduct returns one product
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		_ = c.Error(err)
		return
	}
	h.log.WithField("id", id).Info("Request to get product by ID")

	product, err := h.productService.GetProductByID(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, models.ToProductDTO(product))
}

// CreateProduct stores a new product and answers 201 with it
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var dto models.ProductDTO
	if err := bindJSON(c, &dto); err != nil {
		_ = c.Error(err)
		return
	}
	h.log.WithField("name", dto.Name).Info("Request to create a new product")

	product := models.ToProductModel(dto)
	product.ID = 0
	created, err := h.productService.CreateProduct(c.Request.Context(), product)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, models.ToProductDTO(created))
}

// UpdateProduct replaces a product. The URL id is forced onto the mapped
// model, so a different id in the body is ignored.
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		_ = c.Error(err)
		return
	}

	var dto models.ProductDTO
	if err := bindJSON(c, &dto); err != nil {
		_ = c.Error(err)
		return
	}
	h.log.WithField("id", id).Info("Request to update product")

	product := models.ToProductModel(dto)
	product.ID = id
	updated, err := h.productService.UpdateProduct(c.Request.Context(), product)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, models.ToProductDTO(updated))
}

// DeleteProduct removes a product, answering 204
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		_ = c.Error(err)
		return
	}
	h.log.WithField("id", id).Info("Request to delete product")

	if err := h.productService.DeleteProduct(c.Request.Context(), id); err != nil {
		_ = c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}
