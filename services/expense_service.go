// services/expense_service.go
package services

import (
	"fmt"
	"time"

	"github.com/tripexpense/tripexpense-backend/models"
	"github.com/tripexpense/tripexpense-backend/repository"
	"github.com/tripexpense/tripexpense-backend/utils"
)

// ExpenseService handles expense CRUD on top of the split allocator
type ExpenseService struct {
	tripRepo    *repository.TripRepository
	expenseRepo *repository.ExpenseRepository
}

// NewExpenseService creates a new ExpenseService
func NewExpenseService() *ExpenseService {
	return &ExpenseService{
		tripRepo:    repository.NewTripRepository(),
		expenseRepo: repository.NewExpenseRepository(),
	}
}

// ListExpenses returns a trip's expenses with their splits, newest first
func (s *ExpenseService) ListExpenses(tripID int) ([]*models.Expense, error) {
	if _, err := s.tripRepo.GetTripByID(tripID); err != nil {
		return nil, err
	}
	expenses, err := s.expenseRepo.GetExpensesByTrip(tripID)
	if err != nil {
		return nil, err
	}
	if expenses == nil {
		expenses = []*models.Expense{}
	}
	return expenses, nil
}

// GetExpense returns one expense, flagged when settlements were recorded
// after it was created. Clients use the flag to warn before edits that
// would invalidate those settlements.
func (s *ExpenseService) GetExpense(id int) (*models.ExpenseDetail, error) {
	expense, err := s.expenseRepo.GetExpenseByID(id)
	if err != nil {
		return nil, err
	}

	trip, err := s.tripRepo.GetTripByID(expense.TripID)
	if err != nil {
		return nil, err
	}

	hasSettlements, err := s.expenseRepo.HasSettlementsSince(expense.TripID, expense.CreatedAt)
	if err != nil {
		return nil, err
	}

	detail := &models.ExpenseDetail{
		Expense:        *expense,
		Currency:       trip.Currency,
		SplitCount:     len(expense.Splits),
		HasSettlements: hasSettlements,
	}
	if expense.SplitType == utils.SplitTypePaidFor {
		detail.Description = fmt.Sprintf("%s (Paid for others)", expense.Description)
	}
	return detail, nil
}

// CreateExpense validates, allocates splits and stores a new expense atomically
func (s *ExpenseService) CreateExpense(req *models.CreateExpenseRequest) (*models.Expense, error) {
	trip, err := s.tripRepo.GetTripByID(req.TripID)
	if err != nil {
		return nil, err
	}

	splits, err := AllocateSplits(req.Amount, req.PaidByUserID, req.SplitType, trip.Members, req.Splits)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	expense := &models.Expense{
		TripID:       req.TripID,
		Description:  req.Description,
		Amount:       utils.Round(req.Amount),
		PaidByUserID: req.PaidByUserID,
		ExpenseDate:  now,
		Category:     req.Category,
		SplitType:    req.SplitType,
		CreatedAt:    now,
		Splits:       splits,
	}
	if err := s.expenseRepo.CreateExpense(expense); err != nil {
		return nil, err
	}
	return s.expenseRepo.GetExpenseByID(expense.ID)
}

// UpdateExpense rewrites an expense, regenerating its splits from the request
func (s *ExpenseService) UpdateExpense(id int, req *models.CreateExpenseRequest) (*models.Expense, error) {
	existing, err := s.expenseRepo.GetExpenseByID(id)
	if err != nil {
		return nil, err
	}

	trip, err := s.tripRepo.GetTripByID(existing.TripID)
	if err != nil {
		return nil, err
	}

	splits, err := AllocateSplits(req.Amount, req.PaidByUserID, req.SplitType, trip.Members, req.Splits)
	if err != nil {
		return nil, err
	}

	existing.Description = req.Description
	existing.Amount = utils.Round(req.Amount)
	existing.PaidByUserID = req.PaidByUserID
	existing.Category = req.Category
	existing.SplitType = req.SplitType
	existing.Splits = splits

	if err := s.expenseRepo.UpdateExpense(existing); err != nil {
		return nil, err
	}
	return s.expenseRepo.GetExpenseByID(id)
}

// DeleteExpense removes an expense and its splits
func (s *ExpenseService) DeleteExpense(id int) error {
	return s.expenseRepo.DeleteExpense(id)
}

// UpdateParticipants re-splits an expense equally over a subset of members.
// The stored split type stays Equal when every active member is included,
// otherwise it becomes Custom.
func (s *ExpenseService) UpdateParticipants(expenseID int, participantIDs []int) (*models.Expense, error) {
	if err := utils.ValidateNotEmpty(participantIDs, "participants"); err != nil {
		return nil, err
	}

	expense, err := s.expenseRepo.GetExpenseByID(expenseID)
	if err != nil {
		return nil, err
	}

	trip, err := s.tripRepo.GetTripByID(expense.TripID)
	if err != nil {
		return nil, err
	}

	activeCount := 0
	active := make(map[int]bool)
	for _, m := range trip.Members {
		if m.IsActive {
			active[m.UserID] = true
			activeCount++
		}
	}
	for _, userID := range participantIDs {
		if !active[userID] {
			return nil, utils.NewValidationError(fmt.Sprintf("User %d is not a member of this trip", userID))
		}
	}

	share := utils.Round(expense.Amount / float64(len(participantIDs)))
	splits := make([]models.ExpenseSplit, 0, len(participantIDs))
	for _, userID := range participantIDs {
		splits = append(splits, models.ExpenseSplit{
			UserID: userID,
			Amount: share,
			IsPaid: userID == expense.PaidByUserID,
		})
	}

	splitType := utils.SplitTypeCustom
	if len(participantIDs) == activeCount {
		splitType = utils.SplitTypeEqual
	}

	if err := s.expenseRepo.ReplaceSplits(expenseID, splitType, splits); err != nil {
		return nil, err
	}
	return s.expenseRepo.GetExpenseByID(expenseID)
}

// GetParticipants returns the user ids currently sharing an expense
func (s *ExpenseService) GetParticipants(expenseID int) ([]int, error) {
	expense, err := s.expenseRepo.GetExpenseByID(expenseID)
	if err != nil {
		return nil, err
	}

	ids := make([]int, 0, len(expense.Splits))
	for _, split := range expense.Splits {
		ids = append(ids, split.UserID)
	}
	return ids, nil
}
