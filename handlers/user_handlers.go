// handlers/user_handlers.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tripexpense/tripexpense-backend/models"
	"github.com/tripexpense/tripexpense-backend/services"
	"github.com/tripexpense/tripexpense-backend/utils"
)

// UserHandler handles user profile HTTP requests
type UserHandler struct {
	userService    *services.UserService
	balanceService *services.BalanceService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *services.UserService, balanceService *services.BalanceService) *UserHandler {
	return &UserHandler{userService: userService, balanceService: balanceService}
}

func pathID(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return id, true
}

// GetMe handles GET /auth/me
func (h *UserHandler) GetMe(c *gin.Context) {
	user, err := h.userService.GetUser(CurrentUserID(c))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, user)
}

// GetUser handles GET /users/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	user, err := h.userService.GetUser(id)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, user)
}

// ListUsers handles GET /users
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.ListUsers()
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, users)
}

// UpdateUser handles PUT /users/:id
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if id != CurrentUserID(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only update your own profile"})
		return
	}

	var req models.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.userService.UpdateUser(id, &req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, user)
}

// DeleteUser handles DELETE /users/:id
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if id != CurrentUserID(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only delete your own account"})
		return
	}

	if err := h.userService.DeleteUser(id); err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, gin.H{"message": "Account deleted successfully"})
}

// GetDashboard handles GET /trips/user/dashboard
func (h *UserHandler) GetDashboard(c *gin.Context) {
	dashboard, err := h.balanceService.GetUserDashboard(CurrentUserID(c))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, dashboard)
}
