package utils

const (
	// Split types
	SplitTypeEqual      = "Equal"
	SplitTypeCustom     = "Custom"
	SplitTypePercentage = "Percentage"
	SplitTypePaidFor    = "PaidFor"

	// Member roles
	RoleAdmin  = "Admin"
	RoleMember = "Member"

	// Ledger transaction types
	TransactionTypeExpense = "Expense"
	TransactionTypePayment = "Payment"
	TransactionTypeReceipt = "Receipt"

	// Amounts below this are treated as settled when matching debts
	BalanceEpsilon = 0.01

	// Settlement ledger entries sort above expense entries on the same day
	SettlementSortOffset = 1000000

	// HTTP status messages
	ErrInvalidRequest  = "Invalid request"
	ErrTripNotFound    = "Trip not found"
	ErrUserNotFound    = "User not found"
	ErrExpenseNotFound = "Expense not found"
	ErrFailedToStore   = "Failed to store data"

	// Precision for monetary calculations
	MoneyPrecision = 100.0

	// Fallback trip currency
	DefaultCurrency = "PHP"
)

// ValidSplitType reports whether t is one of the supported split policies
func ValidSplitType(t string) bool {
	switch t {
	case SplitTypeEqual, SplitTypeCustom, SplitTypePercentage, SplitTypePaidFor:
		return true
	}
	return false
}
