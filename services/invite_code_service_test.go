package services

import (
	"strings"
	"testing"
	"unicode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateWordCode(t *testing.T) {
	for i := 0; i < 50; i++ {
		code := GenerateWordCode()

		digits := strings.TrimLeftFunc(code, unicode.IsLetter)
		word := strings.TrimSuffix(code, digits)

		assert.Contains(t, inviteWords, word)
		require.Len(t, digits, 2)
	}
}

func TestGenerateCharCode(t *testing.T) {
	for i := 0; i < 50; i++ {
		code := GenerateCharCode()

		require.Len(t, code, 6)
		for _, r := range code {
			assert.Contains(t, inviteCodeCharset, string(r))
		}
		// Ambiguous characters are excluded from the charset
		assert.NotContains(t, code, "0")
		assert.NotContains(t, code, "O")
		assert.NotContains(t, code, "1")
		assert.NotContains(t, code, "I")
	}
}
