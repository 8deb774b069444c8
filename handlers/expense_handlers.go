// handlers/expense_handlers.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tripexpense/tripexpense-backend/models"
	"github.com/tripexpense/tripexpense-backend/services"
	"github.com/tripexpense/tripexpense-backend/utils"
)

// ExpenseHandler handles expense HTTP requests
type ExpenseHandler struct {
	expenseService *services.ExpenseService
	balanceService *services.BalanceService
}

// NewExpenseHandler creates a new expense handler
func NewExpenseHandler(expenseService *services.ExpenseService, balanceService *services.BalanceService) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService, balanceService: balanceService}
}

// ListExpenses handles GET /expenses?tripId=
func (h *ExpenseHandler) ListExpenses(c *gin.Context) {
	tripID, err := strconv.Atoi(c.Query("tripId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tripId"})
		return
	}

	expenses, err := h.expenseService.ListExpenses(tripID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, expenses)
}

// GetMemberBreakdown handles GET /expenses/member/:userId/trip/:tripId/breakdown
func (h *ExpenseHandler) GetMemberBreakdown(c *gin.Context) {
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}
	tripID, ok := pathID(c, "tripId")
	if !ok {
		return
	}
	myExpensesOnly, _ := strconv.ParseBool(c.DefaultQuery("myExpensesOnly", "false"))

	ledger, err := h.balanceService.GetMemberLedger(tripID, userID, myExpensesOnly)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, ledger)
}

// GetExpense handles GET /expenses/:id
func (h *ExpenseHandler) GetExpense(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	expense, err := h.expenseService.GetExpense(id)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, expense)
}

// CreateExpense handles POST /expenses
func (h *ExpenseHandler) CreateExpense(c *gin.Context) {
	var req models.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	expense, err := h.expenseService.CreateExpense(&req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleCreated(c, expense)
}

// UpdateExpense handles PUT /expenses/:id
func (h *ExpenseHandler) UpdateExpense(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req models.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	expense, err := h.expenseService.UpdateExpense(id, &req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, expense)
}

// DeleteExpense handles DELETE /expenses/:id
func (h *ExpenseHandler) DeleteExpense(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.expenseService.DeleteExpense(id); err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, gin.H{"message": "Expense deleted successfully"})
}

// UpdateParticipants handles PATCH /expenses/:id/participants
func (h *ExpenseHandler) UpdateParticipants(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var participantIDs []int
	if err := c.ShouldBindJSON(&participantIDs); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	expense, err := h.expenseService.UpdateParticipants(id, participantIDs)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, expense)
}

// GetParticipants handles GET /expenses/:id/participants
func (h *ExpenseHandler) GetParticipants(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	ids, err := h.expenseService.GetParticipants(id)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, ids)
}
