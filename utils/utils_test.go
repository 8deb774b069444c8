package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRound(t *testing.T) {
	assert.Equal(t, 33.33, Round(33.333333))
	assert.Equal(t, 33.34, Round(33.336))
	assert.Equal(t, 0.0, Round(0.001))
	assert.Equal(t, -12.34, Round(-12.341))
}

func TestCurrencySymbol(t *testing.T) {
	assert.Equal(t, "₱", CurrencySymbol("PHP"))
	assert.Equal(t, "$", CurrencySymbol("usd"))
	assert.Equal(t, "₱", CurrencySymbol(""))
	// Unknown codes fall back to the code itself
	assert.Equal(t, "XYZ", CurrencySymbol("XYZ"))
}

func TestCleanFileName(t *testing.T) {
	assert.Equal(t, "Tokyo_Trip_2025", CleanFileName("Tokyo Trip 2025"))
	assert.Equal(t, "a_b_c", CleanFileName(`a/b\c`))
	assert.Equal(t, "trim", CleanFileName("  trim  "))
}

func TestValidSplitType(t *testing.T) {
	assert.True(t, ValidSplitType(SplitTypeEqual))
	assert.True(t, ValidSplitType(SplitTypePaidFor))
	assert.False(t, ValidSplitType("equal"))
	assert.False(t, ValidSplitType(""))
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(NewNotFoundError("Trip")))
	assert.False(t, IsNotFound(NewValidationError("bad")))
	assert.False(t, IsNotFound(assert.AnError))
}
