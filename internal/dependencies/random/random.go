package random

import (
	"crypto/rand"
	"math/big"
)

// Alphanumeric is the default alphabet for generated identifiers
const Alphanumeric = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Random provides random number generation that can be mocked for testing
type Random interface {
	// Intn returns a random int in [0, n)
	Intn(n int) int

	// String generates a random string of length characters from alphabet
	String(length int, alphabet string) string
}

// CryptoRandom implements Random using crypto/rand.
// It holds no state, so a single instance is safe to share between goroutines.
type CryptoRandom struct{}

// New creates a new CryptoRandom
func New() *CryptoRandom {
	return &CryptoRandom{}
}

// Intn returns a cryptographically random int in [0, n)
func (r *CryptoRandom) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	max := big.NewInt(int64(n))
	result, err := rand.Int(rand.Reader, max)
	if err != nil {
		return 0
	}
	return int(result.Int64())
}

// String generates length characters (runes, not bytes) drawn from alphabet
func (r *CryptoRandom) String(length int, alphabet string) string {
	symbols := []rune(alphabet)
	if length <= 0 || len(symbols) == 0 {
		return ""
	}
	result := make([]rune, length)
	for i := range result {
		result[i] = symbols[r.Intn(len(symbols))]
	}
	return string(result)
}

// Characters returns exactly length alphanumeric characters drawn from r
func Characters(r Random, length int) string {
	return r.String(length, Alphanumeric)
}
