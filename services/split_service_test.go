package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripexpense/tripexpense-backend/models"
	"github.com/tripexpense/tripexpense-backend/utils"
)

func activeMembers(userIDs ...int) []models.TripMember {
	members := make([]models.TripMember, 0, len(userIDs))
	for _, id := range userIDs {
		members = append(members, models.TripMember{UserID: id, IsActive: true})
	}
	return members
}

func ptr(v float64) *float64 { return &v }

func TestAllocateSplitsEqual(t *testing.T) {
	members := activeMembers(1, 2, 3)

	splits, err := AllocateSplits(90, 1, utils.SplitTypeEqual, members, nil)
	require.NoError(t, err)
	require.Len(t, splits, 3)

	for _, s := range splits {
		assert.Equal(t, 30.0, s.Amount)
		assert.Equal(t, s.UserID == 1, s.IsPaid)
	}
}

func TestAllocateSplitsEqualRounding(t *testing.T) {
	members := activeMembers(1, 2, 3)

	splits, err := AllocateSplits(100, 1, utils.SplitTypeEqual, members, nil)
	require.NoError(t, err)
	require.Len(t, splits, 3)

	// 100 / 3 rounds to 33.33 per head; the cent of drift is accepted
	for _, s := range splits {
		assert.Equal(t, 33.33, s.Amount)
	}
}

func TestAllocateSplitsEqualSkipsInactiveMembers(t *testing.T) {
	members := activeMembers(1, 2)
	members = append(members, models.TripMember{UserID: 3, IsActive: false})

	splits, err := AllocateSplits(50, 1, utils.SplitTypeEqual, members, nil)
	require.NoError(t, err)
	require.Len(t, splits, 2)
	assert.Equal(t, 25.0, splits[0].Amount)
}

func TestAllocateSplitsCustom(t *testing.T) {
	members := activeMembers(1, 2)
	inputs := []models.SplitInput{
		{UserID: 1, Amount: ptr(70)},
		{UserID: 2, Amount: ptr(30)},
	}

	splits, err := AllocateSplits(100, 1, utils.SplitTypeCustom, members, inputs)
	require.NoError(t, err)
	require.Len(t, splits, 2)
	assert.Equal(t, 70.0, splits[0].Amount)
	assert.Equal(t, 30.0, splits[1].Amount)
	assert.True(t, splits[0].IsPaid)
	assert.False(t, splits[1].IsPaid)
}

func TestAllocateSplitsCustomSumMismatch(t *testing.T) {
	members := activeMembers(1, 2)
	inputs := []models.SplitInput{
		{UserID: 1, Amount: ptr(70)},
		{UserID: 2, Amount: ptr(40)},
	}

	_, err := AllocateSplits(100, 1, utils.SplitTypeCustom, members, inputs)
	assert.Error(t, err)
}

func TestAllocateSplitsCustomToleratesOneCent(t *testing.T) {
	members := activeMembers(1, 2, 3)
	inputs := []models.SplitInput{
		{UserID: 1, Amount: ptr(33.33)},
		{UserID: 2, Amount: ptr(33.33)},
		{UserID: 3, Amount: ptr(33.33)},
	}

	_, err := AllocateSplits(100, 1, utils.SplitTypeCustom, members, inputs)
	assert.NoError(t, err)
}

func TestAllocateSplitsPercentage(t *testing.T) {
	members := activeMembers(1, 2)
	inputs := []models.SplitInput{
		{UserID: 1, Percentage: ptr(60)},
		{UserID: 2, Percentage: ptr(40)},
	}

	splits, err := AllocateSplits(250, 1, utils.SplitTypePercentage, members, inputs)
	require.NoError(t, err)
	require.Len(t, splits, 2)
	assert.Equal(t, 150.0, splits[0].Amount)
	assert.Equal(t, 100.0, splits[1].Amount)
	require.NotNil(t, splits[0].Percentage)
	assert.Equal(t, 60.0, *splits[0].Percentage)
}

func TestAllocateSplitsPercentageBoundaries(t *testing.T) {
	members := activeMembers(1, 2)

	cases := []struct {
		name  string
		first float64
		ok    bool
	}{
		{"sums to 99.99", 59.99, false},
		{"sums to 100.00", 60.00, true},
		{"sums to 100.01", 60.01, false},
		{"sums to 100.02", 60.02, false},
		{"sums to 99.98", 59.98, false},
		{"sums to 99.999", 59.999, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			inputs := []models.SplitInput{
				{UserID: 1, Percentage: ptr(tc.first)},
				{UserID: 2, Percentage: ptr(40)},
			}
			_, err := AllocateSplits(100, 1, utils.SplitTypePercentage, members, inputs)
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestAllocateSplitsPaidFor(t *testing.T) {
	members := activeMembers(1, 2, 3)
	inputs := []models.SplitInput{
		{UserID: 2, Amount: ptr(10)},
		{UserID: 3, Amount: ptr(10)},
	}

	splits, err := AllocateSplits(60, 1, utils.SplitTypePaidFor, members, inputs)
	require.NoError(t, err)
	require.Len(t, splits, 2)

	// Input amounts only mark participation; the expense splits equally
	total := 0.0
	for _, s := range splits {
		assert.Equal(t, 30.0, s.Amount)
		assert.False(t, s.IsPaid)
		total += s.Amount
	}
	assert.InDelta(t, 60.0, total, 0.01)
}

func TestAllocateSplitsPaidForIgnoresUnmarkedEntries(t *testing.T) {
	members := activeMembers(1, 2, 3)
	inputs := []models.SplitInput{
		{UserID: 1, Amount: ptr(5)},
		{UserID: 2, Amount: ptr(0)},
		{UserID: 3},
	}

	splits, err := AllocateSplits(90, 1, utils.SplitTypePaidFor, members, inputs)
	require.NoError(t, err)
	require.Len(t, splits, 1)
	assert.Equal(t, 1, splits[0].UserID)
	assert.Equal(t, 90.0, splits[0].Amount)
	assert.True(t, splits[0].IsPaid)
}

func TestAllocateSplitsPaidForRequiresParticipants(t *testing.T) {
	members := activeMembers(1, 2)

	_, err := AllocateSplits(60, 1, utils.SplitTypePaidFor, members, nil)
	assert.Error(t, err)

	zero := []models.SplitInput{{UserID: 2, Amount: ptr(0)}}
	_, err = AllocateSplits(60, 1, utils.SplitTypePaidFor, members, zero)
	assert.Error(t, err)
}

func TestAllocateSplitsRejectsNonMember(t *testing.T) {
	members := activeMembers(1, 2)
	inputs := []models.SplitInput{
		{UserID: 99, Amount: ptr(100)},
	}

	_, err := AllocateSplits(100, 1, utils.SplitTypeCustom, members, inputs)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "User 99 is not a member of this trip")
}

func TestAllocateSplitsRejectsNonMemberPayer(t *testing.T) {
	members := activeMembers(1, 2)

	_, err := AllocateSplits(100, 7, utils.SplitTypeEqual, members, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "User 7 is not a member of this trip")
}

func TestAllocateSplitsRejectsUnknownType(t *testing.T) {
	members := activeMembers(1)

	_, err := AllocateSplits(100, 1, "Weighted", members, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unknown split type")
}

func TestAllocateSplitsRejectsNonPositiveAmount(t *testing.T) {
	members := activeMembers(1)

	_, err := AllocateSplits(0, 1, utils.SplitTypeEqual, members, nil)
	assert.Error(t, err)
}
