// services/balance_service.go
package services

import (
	"sort"

	"github.com/tripexpense/tripexpense-backend/models"
	"github.com/tripexpense/tripexpense-backend/repository"
	"github.com/tripexpense/tripexpense-backend/utils"
)

// BalanceService computes member balances, per-member ledgers and the user
// dashboard from a trip's expenses and settlements
type BalanceService struct {
	tripRepo       *repository.TripRepository
	userRepo       *repository.UserRepository
	expenseRepo    *repository.ExpenseRepository
	settlementRepo *repository.SettlementRepository
}

// NewBalanceService creates a new BalanceService
func NewBalanceService() *BalanceService {
	return &BalanceService{
		tripRepo:       repository.NewTripRepository(),
		userRepo:       repository.NewUserRepository(),
		expenseRepo:    repository.NewExpenseRepository(),
		settlementRepo: repository.NewSettlementRepository(),
	}
}

// ComputeTripBalances folds a trip's full history into one signed balance per
// member. The payer is credited the full amount, every split debtor is
// debited their share, and each settlement moves its amount from the payer's
// debt to the receiver's credit. The result always sums to zero (within
// rounding noise).
func ComputeTripBalances(members []models.TripMember, expenses []*models.Expense, settlements []*models.Settlement) map[int]float64 {
	balances := make(map[int]float64, len(members))
	for _, m := range members {
		if m.IsActive {
			balances[m.UserID] = 0
		}
	}

	for _, e := range expenses {
		balances[e.PaidByUserID] += e.Amount
		for _, s := range e.Splits {
			balances[s.UserID] -= s.Amount
		}
	}

	for _, s := range settlements {
		balances[s.FromUserID] += s.Amount
		balances[s.ToUserID] -= s.Amount
	}

	for userID, balance := range balances {
		balances[userID] = utils.Round(balance)
	}
	return balances
}

// ComputeMemberLedger builds one member's transaction feed for a trip and
// their resulting net balance. Entries are returned newest first, with the
// running balance accumulated from the oldest entry forward. In
// myExpensesOnly mode the feed narrows to money the member actually put in:
// only expenses they paid (at full amount) and only outgoing settlements.
func ComputeMemberLedger(userID int, expenses []*models.Expense, settlements []*models.Settlement, myExpensesOnly bool) ([]models.LedgerTransaction, float64) {
	var entries []models.LedgerTransaction

	for _, e := range expenses {
		isPayer := e.PaidByUserID == userID
		if myExpensesOnly && !isPayer {
			continue
		}

		net := 0.0
		involved := isPayer
		if isPayer {
			net += e.Amount
		}
		for _, s := range e.Splits {
			if s.UserID == userID {
				if !myExpensesOnly {
					net -= s.Amount
				}
				involved = true
			}
		}
		if !involved {
			continue
		}

		expenseID := e.ID
		entries = append(entries, models.LedgerTransaction{
			Date:          e.CreatedAt,
			Description:   e.Description,
			Type:          utils.TransactionTypeExpense,
			Amount:        utils.Round(net),
			TransactionID: e.ID,
			ExpenseID:     &expenseID,
			PaidByName:    e.PaidByName,
			TotalAmount:   e.Amount,
			IsUserPayer:   isPayer,
		})
	}

	for _, s := range settlements {
		if s.FromUserID != userID && s.ToUserID != userID {
			continue
		}
		if myExpensesOnly && s.FromUserID != userID {
			continue
		}

		entryType := utils.TransactionTypePayment
		amount := s.Amount
		if s.ToUserID == userID {
			entryType = utils.TransactionTypeReceipt
			amount = -s.Amount
		}

		settlementID := s.ID
		entries = append(entries, models.LedgerTransaction{
			Date:          s.SettlementDate,
			Description:   "Settlement",
			Type:          entryType,
			Amount:        utils.Round(amount),
			TransactionID: s.ID + utils.SettlementSortOffset,
			SettlementID:  &settlementID,
			FromUserName:  s.FromUserName,
			ToUserName:    s.ToUserName,
			TotalAmount:   s.Amount,
			Notes:         s.Notes,
		})
	}

	// Newest first; settlements outrank expenses on equal dates via the
	// transaction id offset
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].Date.Equal(entries[j].Date) {
			return entries[i].Date.After(entries[j].Date)
		}
		return entries[i].TransactionID > entries[j].TransactionID
	})

	running := 0.0
	for i := len(entries) - 1; i >= 0; i-- {
		running = utils.Round(running + entries[i].Amount)
		entries[i].RunningBalance = running
	}
	return entries, running
}

// GetTripBalances returns every member's signed balance for a trip,
// decorated with names and the trip currency
func (s *BalanceService) GetTripBalances(tripID int) ([]models.UserBalance, error) {
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

	balances := ComputeTripBalances(trip.Members, expenses, settlements)

	result := make([]models.UserBalance, 0, len(trip.Members))
	for _, m := range trip.Members {
		if !m.IsActive {
			continue
		}
		result = append(result, models.UserBalance{
			UserID:   m.UserID,
			Name:     m.Name,
			Avatar:   m.Avatar,
			Currency: trip.Currency,
			Balance:  balances[m.UserID],
		})
	}
	return result, nil
}

// GetMemberLedger returns one member's transaction feed for a trip
func (s *BalanceService) GetMemberLedger(tripID, userID int, myExpensesOnly bool) (*models.MemberLedger, error) {
	trip, err := s.tripRepo.GetTripByID(tripID)
	if err != nil {
		return nil, err
	}

	member, err := s.tripRepo.GetMember(tripID, userID)
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

	transactions, netBalance := ComputeMemberLedger(userID, expenses, settlements, myExpensesOnly)
	if transactions == nil {
		transactions = []models.LedgerTransaction{}
	}

	return &models.MemberLedger{
		UserID:       member.UserID,
		UserName:     member.Name,
		UserAvatar:   member.Avatar,
		TripID:       trip.ID,
		TripName:     trip.Name,
		NetBalance:   netBalance,
		Transactions: transactions,
	}, nil
}

// GetTripDetails returns the trip view enriched with the viewer's share and balance
func (s *BalanceService) GetTripDetails(tripID, viewerID int) (*models.TripDetail, error) {
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

	totalSpent := 0.0
	yourShare := 0.0
	for _, e := range expenses {
		totalSpent += e.Amount
		for _, sp := range e.Splits {
			if sp.UserID == viewerID {
				yourShare += sp.Amount
			}
		}
	}

	balances := ComputeTripBalances(trip.Members, expenses, settlements)

	return &models.TripDetail{
		ID:          trip.ID,
		Name:        trip.Name,
		Description: trip.Description,
		Currency:    trip.Currency,
		StartDate:   trip.StartDate,
		EndDate:     trip.EndDate,
		MemberCount: len(trip.Members),
		TotalSpent:  utils.Round(totalSpent),
		YourShare:   utils.Round(yourShare),
		YourBalance: balances[viewerID],
		CreatedAt:   trip.CreatedAt,
		Members:     trip.Members,
	}, nil
}

// GetUserDashboard aggregates a user's position across all their trips,
// grouped per currency
func (s *BalanceService) GetUserDashboard(userID int) (*models.UserDashboard, error) {
	user, err := s.userRepo.GetUserByID(userID)
	if err != nil {
		return nil, err
	}

	summaries, err := s.tripRepo.ListTripsForUser(userID)
	if err != nil {
		return nil, err
	}

	dashboard := &models.UserDashboard{
		UserID:           user.ID,
		Name:             user.Name,
		Email:            user.Email,
		Avatar:           user.Avatar,
		CurrencyBalances: []models.CurrencyBalance{},
		RecentTrips:      []models.TripSummaryWithBalance{},
		TotalTrips:       len(summaries),
	}

	byCurrency := make(map[string]*models.CurrencyBalance)
	for _, summary := range summaries {
		trip, err := s.tripRepo.GetTripByID(summary.ID)
		if err != nil {
			return nil, err
		}
		expenses, err := s.expenseRepo.GetExpensesByTrip(summary.ID)
		if err != nil {
			return nil, err
		}
		settlements, err := s.settlementRepo.GetSettlementsByTrip(summary.ID)
		if err != nil {
			return nil, err
		}

		balances := ComputeTripBalances(trip.Members, expenses, settlements)
		yourBalance := balances[userID]

		spent := 0.0
		owed := 0.0
		for _, e := range expenses {
			if e.PaidByUserID == userID {
				spent += e.Amount
			}
			for _, sp := range e.Splits {
				if sp.UserID == userID {
					owed += sp.Amount
				}
			}
		}

		cb, ok := byCurrency[trip.Currency]
		if !ok {
			cb = &models.CurrencyBalance{
				Currency:       trip.Currency,
				CurrencySymbol: utils.CurrencySymbol(trip.Currency),
			}
			byCurrency[trip.Currency] = cb
		}
		cb.Balance = utils.Round(cb.Balance + yourBalance)
		cb.TotalSpent = utils.Round(cb.TotalSpent + spent)
		cb.TotalOwed = utils.Round(cb.TotalOwed + owed)
		cb.TripCount++

		dashboard.TotalSpent = utils.Round(dashboard.TotalSpent + spent)
		dashboard.TotalOwed = utils.Round(dashboard.TotalOwed + owed)
		dashboard.OverallBalance = utils.Round(dashboard.OverallBalance + yourBalance)

		dashboard.RecentTrips = append(dashboard.RecentTrips, models.TripSummaryWithBalance{
			ID:             summary.ID,
			Name:           summary.Name,
			StartDate:      summary.StartDate,
			EndDate:        summary.EndDate,
			MemberCount:    summary.MemberCount,
			TotalExpenses:  summary.TotalExpenses,
			YourBalance:    yourBalance,
			Currency:       trip.Currency,
			CurrencySymbol: utils.CurrencySymbol(trip.Currency),
		})
	}

	currencies := make([]string, 0, len(byCurrency))
	for currency := range byCurrency {
		currencies = append(currencies, currency)
	}
	sort.Strings(currencies)
	for _, currency := range currencies {
		dashboard.CurrencyBalances = append(dashboard.CurrencyBalances, *byCurrency[currency])
	}

	return dashboard, nil
}
