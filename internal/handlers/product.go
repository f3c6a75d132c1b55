package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/petsure/petsure/internal/services"
)

type ProductHandler struct {
	logger   *logrus.Logger
	products *services.ProductService
}

func NewProductHandler(logger *logrus.Logger, products *services.ProductService) *ProductHandler {
	return &ProductHandler{
		logger:   logger,
		products: products,
	}
}

func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.products.List(c.Request.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to list insurance products")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": gin.H{
				"code":    "PRODUCT_LIST_FAILED",
				"message": "Failed to list insurance products",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"products": products})
}

// Get returns one product with its coverage ids resolved to readable text.
func (h *ProductHandler) Get(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{
				"code":    "INVALID_PRODUCT_ID",
				"message": "Invalid product ID format",
			},
		})
		return
	}

	product, err := h.products.Get(c.Request.Context(), productID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			notFound(c, "PRODUCT_NOT_FOUND", "Insurance product not found")
			return
		}
		h.logger.WithError(err).Error("Failed to load insurance product")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": gin.H{
				"code":    "PRODUCT_LOOKUP_FAILED",
				"message": "Failed to load insurance product",
			},
		})
		return
	}

	c.JSON(http.StatusOK, h.products.Detail(product))
}
