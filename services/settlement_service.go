// services/settlement_service.go
package services

import (
	"sort"
	"time"

	"github.com/tripexpense/tripexpense-backend/models"
	"github.com/tripexpense/tripexpense-backend/repository"
	"github.com/tripexpense/tripexpense-backend/utils"
)

// SettlementService records settlements and suggests the payments that
// close out a trip's balances
type SettlementService struct {
	tripRepo       *repository.TripRepository
	expenseRepo    *repository.ExpenseRepository
	settlementRepo *repository.SettlementRepository
	balanceService *BalanceService
}

// NewSettlementService creates a new SettlementService
func NewSettlementService() *SettlementService {
	return &SettlementService{
		tripRepo:       repository.NewTripRepository(),
		expenseRepo:    repository.NewExpenseRepository(),
		settlementRepo: repository.NewSettlementRepository(),
		balanceService: NewBalanceService(),
	}
}

type signedBalance struct {
	userID int
	amount float64
}

// SuggestSettlements turns a set of signed balances into a short list of
// payments that would bring everyone to zero. Debtors are matched against
// creditors greedily, largest first; positions within a cent of zero are
// treated as settled. Ties break on user id so the output is deterministic.
func SuggestSettlements(balances map[int]float64) []models.SettlementSuggestion {
	var debtors, creditors []signedBalance
	for userID, balance := range balances {
		switch {
		case balance < -utils.BalanceEpsilon:
			debtors = append(debtors, signedBalance{userID, balance})
		case balance > utils.BalanceEpsilon:
			creditors = append(creditors, signedBalance{userID, balance})
		}
	}

	sort.Slice(debtors, func(i, j int) bool {
		if debtors[i].amount != debtors[j].amount {
			return debtors[i].amount < debtors[j].amount
		}
		return debtors[i].userID < debtors[j].userID
	})
	sort.Slice(creditors, func(i, j int) bool {
		if creditors[i].amount != creditors[j].amount {
			return creditors[i].amount > creditors[j].amount
		}
		return creditors[i].userID < creditors[j].userID
	})

	suggestions := []models.SettlementSuggestion{}
	di, ci := 0, 0
	for di < len(debtors) && ci < len(creditors) {
		debtor := &debtors[di]
		creditor := &creditors[ci]

		amount := utils.Round(utils.Min(-debtor.amount, creditor.amount))
		if amount > 0 {
			suggestions = append(suggestions, models.SettlementSuggestion{
				FromUserID: debtor.userID,
				ToUserID:   creditor.userID,
				Amount:     amount,
			})
		}

		debtor.amount += amount
		creditor.amount -= amount
		if -debtor.amount < utils.BalanceEpsilon {
			di++
		}
		if creditor.amount < utils.BalanceEpsilon {
			ci++
		}
	}
	return suggestions
}

// GetSuggestions computes suggested settlements for a trip, with member names
func (s *SettlementService) GetSuggestions(tripID int) ([]models.SettlementSuggestion, error) {
	trip, err := s.tripRepo.GetTripByID(tripID)
	if err != nil {
		return nil, err
	}

	expenses, err := s.expenseRepo.GetExpensesByTrip(tripID)
	if err != nil {
		return nil, err
	}
	settlements, err := s.settlementRepo.GetSettlementsByTrip(tripID)
	if err != nil {
		return nil, err
	}

	names := make(map[int]string, len(trip.Members))
	for _, m := range trip.Members {
		names[m.UserID] = m.Name
	}

	suggestions := SuggestSettlements(ComputeTripBalances(trip.Members, expenses, settlements))
	for i := range suggestions {
		suggestions[i].FromUserName = names[suggestions[i].FromUserID]
		suggestions[i].ToUserName = names[suggestions[i].ToUserID]
	}
	return suggestions, nil
}

// CreateSettlement records a real-world payment between two trip members
func (s *SettlementService) CreateSettlement(req *models.CreateSettlementRequest) (*models.Settlement, error) {
	if req.FromUserID == req.ToUserID {
		return nil, utils.NewValidationError("Cannot record a settlement with yourself")
	}
	if err := utils.ValidatePositive(req.Amount, "amount"); err != nil {
		return nil, err
	}

	if _, err := s.tripRepo.GetTripByID(req.TripID); err != nil {
		return nil, err
	}
	if _, err := s.tripRepo.GetMember(req.TripID, req.FromUserID); err != nil {
		return nil, err
	}
	if _, err := s.tripRepo.GetMember(req.TripID, req.ToUserID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	settlement := &models.Settlement{
		TripID:         req.TripID,
		FromUserID:     req.FromUserID,
		ToUserID:       req.ToUserID,
		Amount:         utils.Round(req.Amount),
		SettlementDate: now,
		Notes:          req.Notes,
		CreatedAt:      now,
	}
	if err := s.settlementRepo.CreateSettlement(settlement); err != nil {
		return nil, err
	}
	return s.settlementRepo.GetSettlementByID(settlement.ID)
}

// GetTripSettlements lists a trip's recorded settlements, newest first
func (s *SettlementService) GetTripSettlements(tripID int) ([]*models.Settlement, error) {
	if _, err := s.tripRepo.GetTripByID(tripID); err != nil {
		return nil, err
	}
	settlements, err := s.settlementRepo.GetSettlementsByTrip(tripID)
	if err != nil {
		return nil, err
	}
	if settlements == nil {
		settlements = []*models.Settlement{}
	}
	return settlements, nil
}

// GetUserSettlements lists the settlements involving one member of a trip
func (s *SettlementService) GetUserSettlements(tripID, userID int) ([]*models.Settlement, error) {
	if _, err := s.tripRepo.GetMember(tripID, userID); err != nil {
		return nil, err
	}
	settlements, err := s.settlementRepo.GetSettlementsForUser(tripID, userID)
	if err != nil {
		return nil, err
	}
	if settlements == nil {
		settlements = []*models.Settlement{}
	}
	return settlements, nil
}

// DeleteSettlement removes a recorded settlement
func (s *SettlementService) DeleteSettlement(id int) error {
	return s.settlementRepo.DeleteSettlement(id)
}
