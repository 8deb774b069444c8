package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripexpense/tripexpense-backend/models"
	"github.com/tripexpense/tripexpense-backend/utils"
)

func equalExpense(id, payerID int, amount float64, date time.Time, userIDs ...int) *models.Expense {
	share := utils.Round(amount / float64(len(userIDs)))
	e := &models.Expense{
		ID:           id,
		Description:  "expense",
		Amount:       amount,
		PaidByUserID: payerID,
		ExpenseDate:  date,
		CreatedAt:    date,
		SplitType:    utils.SplitTypeEqual,
	}
	for _, uid := range userIDs {
		e.Splits = append(e.Splits, models.ExpenseSplit{
			ExpenseID: id,
			UserID:    uid,
			Amount:    share,
			IsPaid:    uid == payerID,
		})
	}
	return e
}

func TestComputeTripBalancesTwoMembers(t *testing.T) {
	members := activeMembers(1, 2)
	day := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	expenses := []*models.Expense{equalExpense(1, 1, 100, day, 1, 2)}

	balances := ComputeTripBalances(members, expenses, nil)

	assert.Equal(t, 50.0, balances[1])
	assert.Equal(t, -50.0, balances[2])
}

func TestComputeTripBalancesWithSettlement(t *testing.T) {
	members := activeMembers(1, 2, 3)
	day := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	expenses := []*models.Expense{equalExpense(1, 1, 90, day, 1, 2, 3)}
	settlements := []*models.Settlement{
		{ID: 1, FromUserID: 2, ToUserID: 1, Amount: 30, SettlementDate: day.Add(24 * time.Hour)},
	}

	balances := ComputeTripBalances(members, expenses, settlements)

	assert.Equal(t, 30.0, balances[1])
	assert.Equal(t, 0.0, balances[2])
	assert.Equal(t, -30.0, balances[3])
}

func TestComputeTripBalancesSumToZero(t *testing.T) {
	members := activeMembers(1, 2, 3, 4)
	day := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	expenses := []*models.Expense{
		equalExpense(1, 1, 120, day, 1, 2, 3, 4),
		equalExpense(2, 2, 45.50, day.Add(time.Hour), 1, 2),
		equalExpense(3, 3, 77.25, day.Add(2*time.Hour), 2, 3, 4),
	}
	settlements := []*models.Settlement{
		{ID: 1, FromUserID: 4, ToUserID: 1, Amount: 20, SettlementDate: day.Add(3 * time.Hour)},
	}

	balances := ComputeTripBalances(members, expenses, settlements)

	sum := 0.0
	for _, b := range balances {
		sum += b
	}
	assert.InDelta(t, 0, sum, 0.05)
}

func TestComputeTripBalancesScopedToActiveMembers(t *testing.T) {
	day := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	members := activeMembers(1)
	members = append(members,
		models.TripMember{UserID: 2, IsActive: false},
		models.TripMember{UserID: 3, IsActive: false},
	)
	// User 2 left after sharing an expense; user 3 never took part
	expenses := []*models.Expense{equalExpense(1, 1, 100, day, 1, 2)}

	balances := ComputeTripBalances(members, expenses, nil)

	assert.Equal(t, 50.0, balances[1])
	assert.Equal(t, -50.0, balances[2])
	_, reported := balances[3]
	assert.False(t, reported, "uninvolved inactive members get no balance entry")
}

func TestComputeTripBalancesIdempotent(t *testing.T) {
	members := activeMembers(1, 2)
	day := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	expenses := []*models.Expense{equalExpense(1, 2, 80, day, 1, 2)}

	first := ComputeTripBalances(members, expenses, nil)
	second := ComputeTripBalances(members, expenses, nil)

	assert.Equal(t, first, second)
}

func TestComputeMemberLedgerOrderingAndRunningBalance(t *testing.T) {
	day1 := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	expenses := []*models.Expense{
		equalExpense(1, 1, 100, day1, 1, 2), // user 1 net +50
		equalExpense(2, 2, 60, day2, 1, 2),  // user 1 net -30
	}
	settlements := []*models.Settlement{
		{ID: 1, FromUserID: 2, ToUserID: 1, Amount: 20, SettlementDate: day2}, // user 1 net -20
	}

	entries, net := ComputeMemberLedger(1, expenses, settlements, false)
	require.Len(t, entries, 3)

	// Newest first; the settlement outranks the same-day expense
	assert.Equal(t, utils.TransactionTypeReceipt, entries[0].Type)
	assert.Equal(t, utils.TransactionTypeExpense, entries[1].Type)
	assert.Equal(t, day1, entries[2].Date)

	// Running balances accumulate oldest first: +50, then +20, then 0
	assert.Equal(t, 50.0, entries[2].RunningBalance)
	assert.Equal(t, 20.0, entries[1].RunningBalance)
	assert.Equal(t, 0.0, entries[0].RunningBalance)
	assert.Equal(t, 0.0, net)
}

func TestComputeMemberLedgerDatesEntriesByCreation(t *testing.T) {
	expenseDay := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	recordedDay := time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC)

	e := equalExpense(1, 1, 80, expenseDay, 1, 2)
	e.CreatedAt = recordedDay

	entries, _ := ComputeMemberLedger(1, []*models.Expense{e}, nil, false)
	require.Len(t, entries, 1)
	assert.Equal(t, recordedDay, entries[0].Date)
}

func TestComputeMemberLedgerPaymentAndReceiptSigns(t *testing.T) {
	day := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	settlements := []*models.Settlement{
		{ID: 1, FromUserID: 1, ToUserID: 2, Amount: 40, SettlementDate: day},
	}

	payerEntries, payerNet := ComputeMemberLedger(1, nil, settlements, false)
	require.Len(t, payerEntries, 1)
	assert.Equal(t, utils.TransactionTypePayment, payerEntries[0].Type)
	assert.Equal(t, 40.0, payerEntries[0].Amount)
	assert.Equal(t, 40.0, payerNet)

	receiverEntries, receiverNet := ComputeMemberLedger(2, nil, settlements, false)
	require.Len(t, receiverEntries, 1)
	assert.Equal(t, utils.TransactionTypeReceipt, receiverEntries[0].Type)
	assert.Equal(t, -40.0, receiverEntries[0].Amount)
	assert.Equal(t, -40.0, receiverNet)
}

func TestComputeMemberLedgerSkipsUninvolvedExpenses(t *testing.T) {
	day := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	expenses := []*models.Expense{
		equalExpense(1, 2, 100, day, 2, 3),
	}

	entries, net := ComputeMemberLedger(1, expenses, nil, false)
	assert.Empty(t, entries)
	assert.Equal(t, 0.0, net)
}

func TestComputeMemberLedgerMyExpensesOnly(t *testing.T) {
	day := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	expenses := []*models.Expense{
		equalExpense(1, 1, 100, day, 1, 2),
		equalExpense(2, 2, 60, day.Add(time.Hour), 1, 2),
	}

	entries, _ := ComputeMemberLedger(1, expenses, nil, true)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].IsUserPayer)
	assert.Equal(t, 1, entries[0].TransactionID)
	// In this mode the entry carries the full amount paid, not the net share
	assert.Equal(t, 100.0, entries[0].Amount)
}

func TestComputeMemberLedgerMyExpensesOnlySkipsIncomingSettlements(t *testing.T) {
	day := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	settlements := []*models.Settlement{
		{ID: 1, FromUserID: 1, ToUserID: 2, Amount: 25, SettlementDate: day},
		{ID: 2, FromUserID: 2, ToUserID: 1, Amount: 10, SettlementDate: day.Add(time.Hour)},
	}

	entries, net := ComputeMemberLedger(1, nil, settlements, true)
	require.Len(t, entries, 1)
	assert.Equal(t, utils.TransactionTypePayment, entries[0].Type)
	assert.Equal(t, 25.0, entries[0].Amount)
	assert.Equal(t, 25.0, net)
}

func TestComputeMemberLedgerNetMatchesBalances(t *testing.T) {
	members := activeMembers(1, 2, 3)
	day := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	expenses := []*models.Expense{
		equalExpense(1, 1, 90, day, 1, 2, 3),
		equalExpense(2, 3, 42, day.Add(time.Hour), 1, 3),
	}
	settlements := []*models.Settlement{
		{ID: 1, FromUserID: 2, ToUserID: 1, Amount: 15, SettlementDate: day.Add(2 * time.Hour)},
	}

	balances := ComputeTripBalances(members, expenses, settlements)
	for _, userID := range []int{1, 2, 3} {
		_, net := ComputeMemberLedger(userID, expenses, settlements, false)
		assert.InDelta(t, balances[userID], net, 0.01, "user %d", userID)
	}
}
