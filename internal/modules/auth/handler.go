package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"berrystore/internal/pkg/response"
	"berrystore/internal/pkg/validator"
)

// Handler manages all HTTP interactions for authentication
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r gin.IRouter) {
	users := r.Group("/users")
	{
		users.POST("/signup", h.Signup)
		users.POST("/login", h.Login)
	}
}

// Signup godoc
// @Summary Register a new user
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body SignupRequest true "Signup payload (email, password, firstName, lastName)"
// @Success 201 {object} map[string]interface{}
// @Failure 400,409 {object} map[string]string
// @Router /users/signup [post]
func (h *Handler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Email & password required")
		return
	}
	if fieldErrs := validator.Validate(req); fieldErrs != nil {
		response.Error(c, http.StatusBadRequest, "Email & password required")
		return
	}

	user, token, err := h.service.Signup(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrEmailAlreadyExists) {
			response.Error(c, http.StatusConflict, "User already exists")
			return
		}
		response.Error(c, http.StatusInternalServerError, "Error during signup")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User created",
		"token":   token,
		"user":    gin.H{"email": user.Email, "role": user.Role},
	})
}

// Login godoc
// @Summary Log in with email and password
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} map[string]interface{}
// @Failure 400,401 {object} map[string]string
// @Router /users/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Email & password required")
		return
	}

	user, token, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			response.Error(c, http.StatusUnauthorized, "Incorrect email or password")
			return
		}
		response.Error(c, http.StatusInternalServerError, "Error during login")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  gin.H{"email": user.Email, "role": user.Role},
	})
}
