package handler

import (
	"errors"
	"net/http"

	"customersatisfaction/satisfaction-service/internal/app/satisfaction/entity"
	"customersatisfaction/satisfaction-service/internal/app/satisfaction/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService service.AuthServiceInterface
}

func NewAuthHandler(authService service.AuthServiceInterface) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// SignUp - POST /sign-up
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req entity.SignUpRequest
	if !bindBody(c, "User", &req) {
		return
	}

	user, err := h.authService.SignUp(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, entity.SignUpResponse{
		ID:    user.ID,
		Email: user.Email,
		Role:  user.Role,
	})
}

// Login - POST /login
func (h *AuthHandler) Login(c *gin.Context) {
	var req entity.LoginRequest
	if !bindBody(c, "User", &req) {
		return
	}

	token, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, entity.MessageResponse{Message: "Invalid email or password"})
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, entity.LoginResponse{Token: token})
}
