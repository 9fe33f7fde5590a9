package upload

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"berrystore/internal/pkg/response"
)

// FormField is the multipart field product images arrive under.
const FormField = "images"

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the upload endpoint under the protected product
// group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/products/upload", h.UploadImages)
}

// UploadImages godoc
// @Summary Upload product images
// @Description Accepts up to 6 images (jpeg, jpg, png, webp, gif, max 5 MiB each), transcodes them to webp and returns their public descriptors.
// @Tags Products
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param images formData file true "Image files"
// @Success 200 {object} map[string]interface{}
// @Failure 400,401,500 {object} map[string]string
// @Router /api/products/upload [post]
func (h *Handler) UploadImages(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid multipart form")
		return
	}

	descriptors, err := h.service.Process(c.Request.Context(), form.File[FormField])
	if err != nil {
		if IsValidation(err) {
			response.Error(c, http.StatusBadRequest, err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, "image processing failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{"files": descriptors})
}
