package random

import (
	"strings"
	"sync"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestCharactersLength(t *testing.T) {
	r := New()

	for _, n := range []int{1, 5, 10, 64} {
		s := Characters(r, n)
		assert.Len(t, s, n)
		for _, c := range s {
			assert.True(t, strings.ContainsRune(Alphanumeric, c), "unexpected character %q", c)
		}
	}
}

func TestStringEdgeCases(t *testing.T) {
	r := New()

	assert.Empty(t, r.String(0, Alphanumeric))
	assert.Empty(t, r.String(-3, Alphanumeric))
	assert.Empty(t, r.String(5, ""))
	assert.Equal(t, "xxxx", r.String(4, "x"))
}

func TestIntnBounds(t *testing.T) {
	r := New()

	assert.Equal(t, 0, r.Intn(0))
	assert.Equal(t, 0, r.Intn(-1))
	for i := 0; i < 200; i++ {
		n := r.Intn(7)
		assert.GreaterOrEqual(t, n, 0)
		assert.Less(t, n, 7)
	}
}

func TestCharactersConcurrentUse(t *testing.T) {
	r := New()

	var wg sync.WaitGroup
	results := make([]string, 32)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = Characters(r, 10)
		}(i)
	}
	wg.Wait()

	seen := make(map[string]bool)
	for _, s := range results {
		assert.Len(t, s, 10)
		seen[s] = true
	}
	// 62^10 possibilities; a collision here means the generator is broken
	assert.Len(t, seen, len(results))
}

func TestStringMultibyteAlphabet(t *testing.T) {
	r := New()

	s := r.String(8, "äöü")
	assert.True(t, utf8.ValidString(s), "invalid UTF-8: %q", s)
	assert.Equal(t, 8, utf8.RuneCountInString(s))
	assert.Empty(t, strings.Trim(s, "äöü"))
}
