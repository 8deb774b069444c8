// models/dtos.go
package models

import "time"

// RegisterRequest request model
type RegisterRequest struct {
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	PhoneNumber string `json:"phoneNumber"`
	Password    string `json:"password" binding:"required,min=8"`
}

// LoginRequest request model
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ChangePasswordRequest request model
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8"`
}

// AuthResponse is returned on successful register/login
type AuthResponse struct {
	UserID    int       `json:"userId"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Avatar    string    `json:"avatar,omitempty"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// UpdateUserRequest request model
type UpdateUserRequest struct {
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	PhoneNumber string `json:"phoneNumber"`
	Avatar      string `json:"avatar"`
}

// CreateTripRequest request model
type CreateTripRequest struct {
	Name        string    `json:"name" binding:"required"`
	Description string    `json:"description"`
	Currency    string    `json:"currency"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
	MemberIDs   []int     `json:"memberIds"`
}

// TripSummary is the list view of a trip
type TripSummary struct {
	ID            int       `json:"id"`
	Name          string    `json:"name"`
	Currency      string    `json:"currency"`
	StartDate     time.Time `json:"startDate"`
	EndDate       time.Time `json:"endDate"`
	MemberCount   int       `json:"memberCount"`
	TotalExpenses float64   `json:"totalExpenses"`
}

// TripDetail is the trip view enriched with the viewer's own figures
type TripDetail struct {
	ID          int          `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Currency    string       `json:"currency"`
	StartDate   time.Time    `json:"startDate"`
	EndDate     time.Time    `json:"endDate"`
	MemberCount int          `json:"memberCount"`
	TotalSpent  float64      `json:"totalSpent"`
	YourShare   float64      `json:"yourShare"`
	YourBalance float64      `json:"yourBalance"`
	CreatedAt   time.Time    `json:"createdAt"`
	Members     []TripMember `json:"members"`
}

// CurrencyBalance aggregates a user's position across all trips in one currency
type CurrencyBalance struct {
	Currency       string  `json:"currency"`
	CurrencySymbol string  `json:"currencySymbol"`
	Balance        float64 `json:"balance"`
	TotalSpent     float64 `json:"totalSpent"`
	TotalOwed      float64 `json:"totalOwed"`
	TripCount      int     `json:"tripCount"`
}

// TripSummaryWithBalance is a dashboard row: a trip plus the viewer's balance in it
type TripSummaryWithBalance struct {
	ID             int       `json:"id"`
	Name           string    `json:"name"`
	StartDate      time.Time `json:"startDate"`
	EndDate        time.Time `json:"endDate"`
	MemberCount    int       `json:"memberCount"`
	TotalExpenses  float64   `json:"totalExpenses"`
	YourBalance    float64   `json:"yourBalance"`
	Currency       string    `json:"currency"`
	CurrencySymbol string    `json:"currencySymbol"`
}

// UserDashboard is the home view: balances grouped per currency plus recent trips
type UserDashboard struct {
	UserID           int                      `json:"userId"`
	Name             string                   `json:"name"`
	Email            string                   `json:"email"`
	Avatar           string                   `json:"avatar,omitempty"`
	CurrencyBalances []CurrencyBalance        `json:"currencyBalances"`
	OverallBalance   float64                  `json:"overallBalance"`
	TotalTrips       int                      `json:"totalTrips"`
	TotalSpent       float64                  `json:"totalSpent"`
	TotalOwed        float64                  `json:"totalOwed"`
	RecentTrips      []TripSummaryWithBalance `json:"recentTrips"`
}

// SplitInput is one caller-provided split line for Custom, Percentage and
// PaidFor expenses
type SplitInput struct {
	UserID     int      `json:"userId" binding:"required"`
	Amount     *float64 `json:"amount"`
	Percentage *float64 `json:"percentage"`
}

// CreateExpenseRequest request model
type CreateExpenseRequest struct {
	TripID       int          `json:"tripId" binding:"required"`
	Description  string       `json:"description" binding:"required"`
	Amount       float64      `json:"amount" binding:"required,gt=0"`
	PaidByUserID int          `json:"paidByUserId" binding:"required"`
	Category     string       `json:"category"`
	SplitType    string       `json:"splitType" binding:"required"`
	Splits       []SplitInput `json:"splits"`
}

// ExpenseDetail is a single-expense view with the trip currency and a flag
// warning that settlements were recorded after the expense was created
type ExpenseDetail struct {
	Expense
	Currency       string `json:"currency"`
	SplitCount     int    `json:"splitCount"`
	HasSettlements bool   `json:"hasSettlements"`
}

// CreateSettlementRequest request model
type CreateSettlementRequest struct {
	TripID     int     `json:"tripId" binding:"required"`
	FromUserID int     `json:"fromUserId" binding:"required"`
	ToUserID   int     `json:"toUserId" binding:"required"`
	Amount     float64 `json:"amount" binding:"required,gt=0"`
	Notes      string  `json:"notes"`
}

// TripInvite describes an active invite link
type TripInvite struct {
	TripID      int        `json:"tripId"`
	TripName    string     `json:"tripName"`
	InviteToken string     `json:"inviteToken"`
	InviteLink  string     `json:"inviteLink"`
	ExpiryDate  *time.Time `json:"expiryDate,omitempty"`
	IsActive    bool       `json:"isActive"`
}

// TripInviteInfo is the public preview shown before joining via a link
type TripInviteInfo struct {
	TripID        int       `json:"tripId,omitempty"`
	TripName      string    `json:"tripName,omitempty"`
	Description   string    `json:"description,omitempty"`
	StartDate     time.Time `json:"startDate,omitempty"`
	EndDate       time.Time `json:"endDate,omitempty"`
	MemberCount   int       `json:"memberCount,omitempty"`
	CreatedByName string    `json:"createdByName,omitempty"`
	IsValid       bool      `json:"isValid"`
	Message       string    `json:"message"`
}

// JoinTripRequest request model
type JoinTripRequest struct {
	InviteToken string `json:"inviteToken" binding:"required"`
}
