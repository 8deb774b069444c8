// services/split_service.go
package services

import (
	"fmt"
	"math"

	"github.com/tripexpense/tripexpense-backend/models"
	"github.com/tripexpense/tripexpense-backend/utils"
)

// AllocateSplits turns an expense amount into per-member splits according to
// the chosen split policy. Only active trip members may appear in a split.
// The payer's own split is marked paid.
func AllocateSplits(amount float64, paidByUserID int, splitType string, members []models.TripMember, inputs []models.SplitInput) ([]models.ExpenseSplit, error) {
	if amount <= 0 {
		return nil, utils.NewValidationError("Expense amount must be greater than zero")
	}

	active := make(map[int]bool)
	for _, m := range members {
		if m.IsActive {
			active[m.UserID] = true
		}
	}
	if !active[paidByUserID] {
		return nil, utils.NewValidationError(fmt.Sprintf("User %d is not a member of this trip", paidByUserID))
	}

	switch splitType {
	case utils.SplitTypeEqual:
		return allocateEqual(amount, paidByUserID, members)
	case utils.SplitTypeCustom:
		return allocateCustom(amount, paidByUserID, active, inputs)
	case utils.SplitTypePercentage:
		return allocatePercentage(amount, paidByUserID, active, inputs)
	case utils.SplitTypePaidFor:
		return allocatePaidFor(amount, paidByUserID, active, inputs)
	default:
		return nil, utils.NewValidationError(fmt.Sprintf("Unknown split type: %s", splitType))
	}
}

func allocateEqual(amount float64, paidByUserID int, members []models.TripMember) ([]models.ExpenseSplit, error) {
	var splits []models.ExpenseSplit
	count := 0
	for _, m := range members {
		if m.IsActive {
			count++
		}
	}
	if count == 0 {
		return nil, utils.NewValidationError("Trip has no active members to split between")
	}

	share := utils.Round(amount / float64(count))
	for _, m := range members {
		if !m.IsActive {
			continue
		}
		splits = append(splits, models.ExpenseSplit{
			UserID: m.UserID,
			Amount: share,
			IsPaid: m.UserID == paidByUserID,
		})
	}
	return splits, nil
}

func allocateCustom(amount float64, paidByUserID int, active map[int]bool, inputs []models.SplitInput) ([]models.ExpenseSplit, error) {
	if len(inputs) == 0 {
		return nil, utils.NewValidationError("Custom split requires at least one split entry")
	}

	var splits []models.ExpenseSplit
	total := 0.0
	for _, in := range inputs {
		if !active[in.UserID] {
			return nil, utils.NewValidationError(fmt.Sprintf("User %d is not a member of this trip", in.UserID))
		}
		if in.Amount == nil || *in.Amount <= 0 {
			return nil, utils.NewValidationError("Custom split amounts must be greater than zero")
		}
		share := utils.Round(*in.Amount)
		total += share
		splits = append(splits, models.ExpenseSplit{
			UserID: in.UserID,
			Amount: share,
			IsPaid: in.UserID == paidByUserID,
		})
	}

	if math.Abs(total-amount) > utils.BalanceEpsilon {
		return nil, utils.NewValidationError(
			fmt.Sprintf("Split amounts (%.2f) must add up to the expense amount (%.2f)", total, amount))
	}
	return splits, nil
}

func allocatePercentage(amount float64, paidByUserID int, active map[int]bool, inputs []models.SplitInput) ([]models.ExpenseSplit, error) {
	if len(inputs) == 0 {
		return nil, utils.NewValidationError("Percentage split requires at least one split entry")
	}

	var splits []models.ExpenseSplit
	totalPct := 0.0
	for _, in := range inputs {
		if !active[in.UserID] {
			return nil, utils.NewValidationError(fmt.Sprintf("User %d is not a member of this trip", in.UserID))
		}
		if in.Percentage == nil || *in.Percentage <= 0 {
			return nil, utils.NewValidationError("Split percentages must be greater than zero")
		}
		pct := *in.Percentage
		totalPct += pct
		splits = append(splits, models.ExpenseSplit{
			UserID:     in.UserID,
			Amount:     utils.Round(amount * pct / 100),
			Percentage: &pct,
			IsPaid:     in.UserID == paidByUserID,
		})
	}

	// Percentage sums must round to exactly 100: a full cent of drift
	// (99.99 or 100.01) is rejected, unlike the Custom amount check
	if utils.Round(totalPct) != 100 {
		return nil, utils.NewValidationError(
			fmt.Sprintf("Split percentages (%.2f) must add up to 100", totalPct))
	}
	return splits, nil
}

// allocatePaidFor splits the full amount equally over the marked
// participants. Input amounts act only as the participation flag: entries
// with a positive amount are in, everything else is ignored.
func allocatePaidFor(amount float64, paidByUserID int, active map[int]bool, inputs []models.SplitInput) ([]models.ExpenseSplit, error) {
	var participants []int
	for _, in := range inputs {
		if in.Amount == nil || *in.Amount <= 0 {
			continue
		}
		if !active[in.UserID] {
			return nil, utils.NewValidationError(fmt.Sprintf("User %d is not a member of this trip", in.UserID))
		}
		participants = append(participants, in.UserID)
	}
	if len(participants) == 0 {
		return nil, utils.NewValidationError("PaidFor split requires at least one participant")
	}

	share := utils.Round(amount / float64(len(participants)))
	splits := make([]models.ExpenseSplit, 0, len(participants))
	for _, userID := range participants {
		splits = append(splits, models.ExpenseSplit{
			UserID: userID,
			Amount: share,
			IsPaid: userID == paidByUserID,
		})
	}
	return splits, nil
}
