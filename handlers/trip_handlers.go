// handlers/trip_handlers.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tripexpense/tripexpense-backend/models"
	"github.com/tripexpense/tripexpense-backend/services"
	"github.com/tripexpense/tripexpense-backend/utils"
)

// TripHandler handles trip and membership HTTP requests
type TripHandler struct {
	tripService    *services.TripService
	balanceService *services.BalanceService
}

// NewTripHandler creates a new trip handler
func NewTripHandler(tripService *services.TripService, balanceService *services.BalanceService) *TripHandler {
	return &TripHandler{tripService: tripService, balanceService: balanceService}
}

// CreateTrip handles POST /trips
func (h *TripHandler) CreateTrip(c *gin.Context) {
	var req models.CreateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	trip, err := h.tripService.CreateTrip(CurrentUserID(c), &req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleCreated(c, trip)
}

// ListTrips handles GET /trips
func (h *TripHandler) ListTrips(c *gin.Context) {
	trips, err := h.tripService.ListTripsForUser(CurrentUserID(c))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, trips)
}

// GetTrip handles GET /trips/:id
func (h *TripHandler) GetTrip(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	trip, err := h.tripService.GetTrip(id)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, trip)
}

// GetTripDetails handles GET /trips/:id/details
func (h *TripHandler) GetTripDetails(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	detail, err := h.balanceService.GetTripDetails(id, CurrentUserID(c))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, detail)
}

// UpdateTrip handles PUT /trips/:id
func (h *TripHandler) UpdateTrip(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req models.CreateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	trip, err := h.tripService.UpdateTrip(id, &req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, trip)
}

// AddMember handles POST /trips/:id/members
func (h *TripHandler) AddMember(c *gin.Context) {
	tripID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req struct {
		UserID int `json:"userId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.tripService.AddMember(tripID, req.UserID); err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, gin.H{"message": "Member added successfully"})
}

// RemoveMember handles DELETE /trips/:id/members/:userId
func (h *TripHandler) RemoveMember(c *gin.Context) {
	tripID, ok := pathID(c, "id")
	if !ok {
		return
	}
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}

	if err := h.tripService.RemoveMember(tripID, userID); err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, gin.H{"message": "Member removed successfully"})
}

// GetBalances handles GET /trips/:id/balances
func (h *TripHandler) GetBalances(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	balances, err := h.balanceService.GetTripBalances(id)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, balances)
}

// GenerateInvite handles POST /trips/:id/invite
func (h *TripHandler) GenerateInvite(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	expiryDays, _ := strconv.Atoi(c.DefaultQuery("expiryDays", "0"))

	invite, err := h.tripService.GenerateInviteLink(id, expiryDays)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, invite)
}

// GetInviteInfo handles GET /trips/invite/:token (public)
func (h *TripHandler) GetInviteInfo(c *gin.Context) {
	info, err := h.tripService.GetInviteInfo(c.Param("token"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, info)
}

// JoinTrip handles POST /trips/join
func (h *TripHandler) JoinTrip(c *gin.Context) {
	var req models.JoinTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	trip, err := h.tripService.JoinTripViaInvite(CurrentUserID(c), req.InviteToken)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, trip)
}

// DeactivateInvite handles DELETE /trips/:id/invite
func (h *TripHandler) DeactivateInvite(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.tripService.DeactivateInvite(id); err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, gin.H{"message": "Invite link deactivated"})
}

// GetInviteStatus handles GET /trips/:id/invite/status
func (h *TripHandler) GetInviteStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	invite, err := h.tripService.GetInviteStatus(id)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, invite)
}
