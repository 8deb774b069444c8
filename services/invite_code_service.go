// services/invite_code_service.go
package services

import (
	"fmt"
	"math/rand"
	"strings"
)

// No 0/O or 1/I so codes survive being read aloud
const inviteCodeCharset = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

var inviteWords = []string{
	"BEACH", "SUNNY", "TRIP", "FUN", "PARTY",
	"CHILL", "MOON", "STAR", "WAVE", "COOL",
	"JAPAN", "OSAKA", "SAPPORO", "TOKYO", "CEBU",
}

// GenerateWordCode builds a memorable invite code: a travel word plus two digits
func GenerateWordCode() string {
	word := inviteWords[rand.Intn(len(inviteWords))]
	return fmt.Sprintf("%s%d", word, 10+rand.Intn(89))
}

// GenerateCharCode builds a 6-character alphanumeric invite code
func GenerateCharCode() string {
	var b strings.Builder
	for i := 0; i < 6; i++ {
		b.WriteByte(inviteCodeCharset[rand.Intn(len(inviteCodeCharset))])
	}
	return b.String()
}
