package product

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"berrystore/internal/pkg/response"
	"berrystore/internal/pkg/validator"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterPublicRoutes mounts the read-only endpoints.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/products", h.GetAll)
	rg.GET("/products/:id", h.GetByID)
}

// RegisterProtectedRoutes mounts the mutating endpoints behind auth.
func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.POST("/products", h.Create)
	rg.PUT("/products/:id", h.Update)
	rg.DELETE("/products/:id", h.Delete)
}

// GetAll godoc
// @Summary List all products
// @Tags Products
// @Produce json
// @Success 200 {array} domain.Product
// @Router /api/products [get]
func (h *Handler) GetAll(c *gin.Context) {
	products, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to fetch products")
		return
	}
	c.JSON(http.StatusOK, products)
}

// GetByID godoc
// @Summary Get a single product
// @Tags Products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} domain.Product
// @Failure 404 {object} map[string]string
// @Router /api/products/{id} [get]
func (h *Handler) GetByID(c *gin.Context) {
	p, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "Product not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to fetch product")
		return
	}
	c.JSON(http.StatusOK, p)
}

// Create godoc
// @Summary Create a product
// @Tags Products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateProductRequest true "Product fields"
// @Success 201 {object} domain.Product
// @Failure 400,401,409 {object} map[string]string
// @Router /api/products [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if fieldErrs := validator.Validate(req); fieldErrs != nil {
		response.Error(c, http.StatusBadRequest, "Failed to create product")
		return
	}

	p, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrDuplicateProductID) {
			response.Error(c, http.StatusConflict, "A product with this product_id already exists")
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to create product")
		return
	}
	c.JSON(http.StatusCreated, p)
}

// Update godoc
// @Summary Update a product (partial)
// @Tags Products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Param request body UpdateProductRequest true "Fields to change"
// @Success 200 {object} domain.Product
// @Failure 400,401,404 {object} map[string]string
// @Router /api/products/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if fieldErrs := validator.Validate(req); fieldErrs != nil {
		response.Error(c, http.StatusBadRequest, "Failed to update product")
		return
	}

	p, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "Product not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to update product")
		return
	}
	c.JSON(http.StatusOK, p)
}

// Delete godoc
// @Summary Delete a product
// @Tags Products
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Success 200 {object} map[string]string
// @Failure 401,404 {object} map[string]string
// @Router /api/products/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "Product not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to delete product")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}
