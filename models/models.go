// models/models.go
package models

import "time"

// User represents a registered account
type User struct {
	ID              int        `json:"id"`
	Name            string     `json:"name"`
	Email           string     `json:"email"`
	PhoneNumber     string     `json:"phoneNumber,omitempty"`
	Avatar          string     `json:"avatar,omitempty"`
	PasswordHash    string     `json:"-"`
	IsEmailVerified bool       `json:"isEmailVerified"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       *time.Time `json:"updatedAt,omitempty"`
	LastLoginAt     *time.Time `json:"lastLoginAt,omitempty"`
}

// Trip represents a group of people sharing expenses
type Trip struct {
	ID                 int          `json:"id"`
	Name               string       `json:"name"`
	Description        string       `json:"description,omitempty"`
	Currency           string       `json:"currency"`
	StartDate          time.Time    `json:"startDate"`
	EndDate            time.Time    `json:"endDate"`
	CreatedByUserID    int          `json:"createdByUserId"`
	CreatedByName      string       `json:"createdByName,omitempty"`
	InviteToken        string       `json:"-"`
	InviteTokenExpiry  *time.Time   `json:"-"`
	IsInviteLinkActive bool         `json:"-"`
	CreatedAt          time.Time    `json:"createdAt"`
	UpdatedAt          *time.Time   `json:"updatedAt,omitempty"`
	Members            []TripMember `json:"members,omitempty"`
}

// TripMember links a user to a trip. Inactive members stay in the table so
// historical splits keep resolving, but they are excluded from new splits.
type TripMember struct {
	ID       int       `json:"id"`
	TripID   int       `json:"tripId"`
	UserID   int       `json:"userId"`
	Name     string    `json:"name,omitempty"`
	Avatar   string    `json:"avatar,omitempty"`
	Role     string    `json:"role"`
	JoinedAt time.Time `json:"joinedAt"`
	IsActive bool      `json:"isActive"`
}

// Expense represents a shared expense within a trip
type Expense struct {
	ID           int            `json:"id"`
	TripID       int            `json:"tripId"`
	Description  string         `json:"description"`
	Amount       float64        `json:"amount"`
	PaidByUserID int            `json:"paidByUserId"`
	PaidByName   string         `json:"paidByName,omitempty"`
	ExpenseDate  time.Time      `json:"expenseDate"`
	Category     string         `json:"category,omitempty"`
	SplitType    string         `json:"splitType"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    *time.Time     `json:"updatedAt,omitempty"`
	Splits       []ExpenseSplit `json:"splits,omitempty"`
}

// ExpenseSplit is one member's share of an expense
type ExpenseSplit struct {
	ID         int      `json:"id"`
	ExpenseID  int      `json:"expenseId"`
	UserID     int      `json:"userId"`
	UserName   string   `json:"userName,omitempty"`
	Amount     float64  `json:"amount"`
	Percentage *float64 `json:"percentage,omitempty"`
	IsPaid     bool     `json:"isPaid"`
}

// Settlement represents a recorded real-world payment between two members
type Settlement struct {
	ID             int       `json:"id"`
	TripID         int       `json:"tripId"`
	FromUserID     int       `json:"fromUserId"`
	FromUserName   string    `json:"fromUserName,omitempty"`
	ToUserID       int       `json:"toUserId"`
	ToUserName     string    `json:"toUserName,omitempty"`
	Amount         float64   `json:"amount"`
	SettlementDate time.Time `json:"settlementDate"`
	Notes          string    `json:"notes,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

// UserBalance is a member's net signed position within a trip.
// Positive means the trip owes them money.
type UserBalance struct {
	UserID   int     `json:"userId"`
	Name     string  `json:"name"`
	Avatar   string  `json:"avatar,omitempty"`
	Currency string  `json:"currency"`
	Balance  float64 `json:"balance"`
}

// SettlementSuggestion is one suggested payment closing part of a trip's debt
type SettlementSuggestion struct {
	FromUserID   int     `json:"fromUserId"`
	FromUserName string  `json:"fromUserName,omitempty"`
	ToUserID     int     `json:"toUserId"`
	ToUserName   string  `json:"toUserName,omitempty"`
	Amount       float64 `json:"amount"`
}

// LedgerTransaction is one entry in a member's chronological trip feed.
// Expense entries carry the member's net amount for that expense; settlement
// entries carry the settlement amount signed by direction.
type LedgerTransaction struct {
	Date           time.Time `json:"date"`
	Description    string    `json:"description"`
	Type           string    `json:"type"` // Expense, Payment or Receipt
	Amount         float64   `json:"amount"`
	RunningBalance float64   `json:"runningBalance"`
	TransactionID  int       `json:"transactionId"`
	ExpenseID      *int      `json:"expenseId,omitempty"`
	SettlementID   *int      `json:"settlementId,omitempty"`
	PaidByName     string    `json:"paidByName,omitempty"`
	FromUserName   string    `json:"fromUserName,omitempty"`
	ToUserName     string    `json:"toUserName,omitempty"`
	TotalAmount    float64   `json:"totalAmount"`
	IsUserPayer    bool      `json:"isUserPayer"`
	Notes          string    `json:"notes,omitempty"`
}

// MemberLedger is the breakdown returned for one member of one trip
type MemberLedger struct {
	UserID       int                 `json:"userId"`
	UserName     string              `json:"userName"`
	UserAvatar   string              `json:"userAvatar,omitempty"`
	TripID       int                 `json:"tripId"`
	TripName     string              `json:"tripName"`
	NetBalance   float64             `json:"netBalance"`
	Transactions []LedgerTransaction `json:"transactions"`
}
