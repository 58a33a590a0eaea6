package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "tasktracker/internal/errors"
	"tasktracker/internal/services"
	"tasktracker/internal/validation"
)

// AuthHandler coordinates authentication-related HTTP handlers.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Register creates a new user and returns the auth payload.
func (h *AuthHandler) Register(c *gin.Context) {
	var input validation.RegisterInput
	if err := validation.BindJSON(c, &input); err != nil {
		apierrors.Respond(c, err)
		return
	}

	payload, err := h.authService.Register(input)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, payload)
}

// Login authenticates a user and returns the auth payload.
func (h *AuthHandler) Login(c *gin.Context) {
	var input validation.LoginInput
	if err := validation.BindJSON(c, &input); err != nil {
		apierrors.Respond(c, err)
		return
	}

	payload, err := h.authService.Login(input)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, payload)
}
