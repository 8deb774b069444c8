// handlers/auth_handlers.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tripexpense/tripexpense-backend/models"
	"github.com/tripexpense/tripexpense-backend/services"
	"github.com/tripexpense/tripexpense-backend/utils"
)

// AuthHandler handles authentication HTTP requests
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.authService.Register(&req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleCreated(c, resp)
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.authService.Login(&req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, resp)
}

// ChangePassword handles POST /auth/change-password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req models.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.authService.ChangePassword(CurrentUserID(c), &req); err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, gin.H{"message": "Password updated successfully"})
}
