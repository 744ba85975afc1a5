package mocks

import (
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/mcoot/gameapi-e2e/internal/dependencies/random"
)

// MockRandom is a scripted Random for tests.
// Queued strings are returned verbatim; once the queue is drained String pads
// with the first alphabet character so callers still get the requested length.
type MockRandom struct {
	mu sync.Mutex

	ints    []int
	strings []string
}

var _ random.Random = (*MockRandom)(nil)

// NewMockRandom creates a new MockRandom
func NewMockRandom() *MockRandom {
	return &MockRandom{}
}

// Intn returns the next queued int, or 0 if none remain
func (r *MockRandom) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.ints) == 0 {
		return 0
	}
	result := r.ints[0]
	r.ints = r.ints[1:]
	return result
}

// String returns the next queued string, or a padded fallback
func (r *MockRandom) String(length int, alphabet string) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.strings) > 0 {
		result := r.strings[0]
		r.strings = r.strings[1:]
		return result
	}
	if length <= 0 || alphabet == "" {
		return ""
	}
	first, _ := utf8.DecodeRuneInString(alphabet)
	return strings.Repeat(string(first), length)
}

// QueueIntn adds values to the Intn result queue
func (r *MockRandom) QueueIntn(values ...int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ints = append(r.ints, values...)
}

// QueueString adds values to the String result queue
func (r *MockRandom) QueueString(values ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.strings = append(r.strings, values...)
}
