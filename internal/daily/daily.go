// Package daily derives the deterministic puzzle seed shared by everyone on
// a given UTC day.
package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"

	"github.com/robalobadob/hiddenwords/internal/puzzle"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// Seed returns HMAC(salt, YYYY-MM-DD) folded into an int64.
func Seed(date time.Time, salt string) int64 {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	// first 8 bytes are plenty for a math/rand seed
	return int64(binary.BigEndian.Uint64(sum[:8]))
}

// Source returns the puzzle source for the day containing date.
func Source(date time.Time, salt string) puzzle.Source {
	return puzzle.NewSeeded(Seed(date, salt))
}
