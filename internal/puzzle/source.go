package puzzle

import (
	"crypto/rand"
	"math/big"
	mrand "math/rand"
)

// Source yields uniform integers in [0, n). n is always > 0.
// *math/rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
}

// NewSeeded returns a deterministic Source for tests and daily puzzles.
func NewSeeded(seed int64) Source {
	return mrand.New(mrand.NewSource(seed))
}

// CryptoSource draws from crypto/rand. The zero value is ready to use.
type CryptoSource struct{}

// Intn returns a cryptographically random integer in [0, n).
func (CryptoSource) Intn(n int) int {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		// crypto/rand only fails if the OS entropy source is broken.
		panic("puzzle: crypto/rand failed: " + err.Error())
	}
	return int(v.Int64())
}
