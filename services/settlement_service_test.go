package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuggestSettlementsSimplePair(t *testing.T) {
	suggestions := SuggestSettlements(map[int]float64{1: 50, 2: -50})

	require.Len(t, suggestions, 1)
	assert.Equal(t, 2, suggestions[0].FromUserID)
	assert.Equal(t, 1, suggestions[0].ToUserID)
	assert.Equal(t, 50.0, suggestions[0].Amount)
}

func TestSuggestSettlementsLargestFirst(t *testing.T) {
	// One creditor, two debtors; the bigger debt is matched first
	suggestions := SuggestSettlements(map[int]float64{1: 100, 2: -70, 3: -30})

	require.Len(t, suggestions, 2)
	assert.Equal(t, 2, suggestions[0].FromUserID)
	assert.Equal(t, 70.0, suggestions[0].Amount)
	assert.Equal(t, 3, suggestions[1].FromUserID)
	assert.Equal(t, 30.0, suggestions[1].Amount)
}

func TestSuggestSettlementsChainAcrossCreditors(t *testing.T) {
	suggestions := SuggestSettlements(map[int]float64{1: 60, 2: 40, 3: -100})

	require.Len(t, suggestions, 2)
	assert.Equal(t, 3, suggestions[0].FromUserID)
	assert.Equal(t, 1, suggestions[0].ToUserID)
	assert.Equal(t, 60.0, suggestions[0].Amount)
	assert.Equal(t, 2, suggestions[1].ToUserID)
	assert.Equal(t, 40.0, suggestions[1].Amount)
}

func TestSuggestSettlementsIgnoresNearZero(t *testing.T) {
	suggestions := SuggestSettlements(map[int]float64{1: 0.005, 2: -0.005, 3: 0})
	assert.Empty(t, suggestions)
}

func TestSuggestSettlementsEmpty(t *testing.T) {
	assert.Empty(t, SuggestSettlements(nil))
	assert.Empty(t, SuggestSettlements(map[int]float64{}))
}

func TestSuggestSettlementsDeterministic(t *testing.T) {
	balances := map[int]float64{1: 25, 2: 25, 3: -25, 4: -25}

	first := SuggestSettlements(balances)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, SuggestSettlements(balances))
	}

	// Equal amounts break ties on user id
	require.Len(t, first, 2)
	assert.Equal(t, 3, first[0].FromUserID)
	assert.Equal(t, 1, first[0].ToUserID)
	assert.Equal(t, 4, first[1].FromUserID)
	assert.Equal(t, 2, first[1].ToUserID)
}

func TestSuggestSettlementsClearsAllDebt(t *testing.T) {
	balances := map[int]float64{1: 83.25, 2: -41.10, 3: -12.15, 4: -30.00}

	suggestions := SuggestSettlements(balances)

	remaining := make(map[int]float64, len(balances))
	for id, b := range balances {
		remaining[id] = b
	}
	for _, s := range suggestions {
		remaining[s.FromUserID] += s.Amount
		remaining[s.ToUserID] -= s.Amount
		assert.Greater(t, s.Amount, 0.0)
	}
	for id, b := range remaining {
		assert.InDelta(t, 0, b, 0.01, "user %d", id)
	}
}
