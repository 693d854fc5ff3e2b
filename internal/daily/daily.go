// Package daily derives the shared seed for the daily challenge: every
// player who starts a daily round on the same UTC date with the same button
// count sees the same colors and the same shuffles.
package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// Seed returns HMAC-SHA256(salt, YYYY-MM-DD) folded to its first 8 bytes.
func Seed(date time.Time, salt string) uint64 {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	return binary.BigEndian.Uint64(sum[:8])
}
