// handlers/settlement_handlers.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tripexpense/tripexpense-backend/models"
	"github.com/tripexpense/tripexpense-backend/services"
	"github.com/tripexpense/tripexpense-backend/utils"
)

// SettlementHandler handles settlement HTTP requests
type SettlementHandler struct {
	settlementService *services.SettlementService
}

// NewSettlementHandler creates a new settlement handler
func NewSettlementHandler(settlementService *services.SettlementService) *SettlementHandler {
	return &SettlementHandler{settlementService: settlementService}
}

// CreateSettlement handles POST /settlements
func (h *SettlementHandler) CreateSettlement(c *gin.Context) {
	var req models.CreateSettlementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	settlement, err := h.settlementService.CreateSettlement(&req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleCreated(c, settlement)
}

// GetSettlements handles GET /settlements?tripId=
func (h *SettlementHandler) GetSettlements(c *gin.Context) {
	tripID, err := strconv.Atoi(c.Query("tripId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tripId"})
		return
	}

	settlements, err := h.settlementService.GetTripSettlements(tripID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, settlements)
}

// GetUserSettlements handles GET /settlements/user/:userId?tripId=
func (h *SettlementHandler) GetUserSettlements(c *gin.Context) {
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}
	tripID, err := strconv.Atoi(c.Query("tripId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tripId"})
		return
	}

	settlements, err := h.settlementService.GetUserSettlements(tripID, userID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, settlements)
}

// GetSuggestions handles GET /settlements/suggestions/:tripId
func (h *SettlementHandler) GetSuggestions(c *gin.Context) {
	tripID, ok := pathID(c, "tripId")
	if !ok {
		return
	}

	suggestions, err := h.settlementService.GetSuggestions(tripID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, suggestions)
}

// DeleteSettlement handles DELETE /settlements/:id
func (h *SettlementHandler) DeleteSettlement(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.settlementService.DeleteSettlement(id); err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, gin.H{"message": "Settlement deleted successfully"})
}
