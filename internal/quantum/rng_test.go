package quantum_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vancomm/quantum-minefield-server/internal/quantum"
)

func TestRngDeterministicSequence(t *testing.T) {
	t.Parallel()

	a := quantum.NewSplitMix64(42)
	b := quantum.NewSplitMix64(42)
	for i := range 100 {
		assert.Equal(t, a.Uint64(), b.Uint64(), "draw %d diverged", i)
	}
}

func TestRngFloat64Range(t *testing.T) {
	t.Parallel()

	r := quantum.NewSplitMix64(123)
	for range 1000 {
		v := r.Float64()
		assert.GreaterOrEqual(t, v, 0.0)
		assert.Less(t, v, 1.0)
	}
}

func TestRngIntNRange(t *testing.T) {
	t.Parallel()

	r := quantum.NewSplitMix64(999)
	for _, bound := range []int{1, 2, 5, 10, 100, 1000} {
		for range 200 {
			v := r.IntN(bound)
			assert.GreaterOrEqual(t, v, 0)
			assert.Less(t, v, bound, "IntN(%d)", bound)
		}
	}
}

func TestRngSeedsDiverge(t *testing.T) {
	t.Parallel()

	a := quantum.NewSplitMix64(0)
	b := quantum.NewSplitMix64(1)
	same := true
	for range 10 {
		if a.Uint64() != b.Uint64() {
			same = false
		}
	}
	assert.False(t, same, "seeds 0 and 1 produced identical streams")
}

func TestRngShuffleReproducible(t *testing.T) {
	t.Parallel()

	shuffled := func(seed uint64) []int {
		s := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
		r := quantum.NewSplitMix64(seed)
		r.Shuffle(len(s), func(i, j int) {
			s[i], s[j] = s[j], s[i]
		})
		return s
	}

	assert.Equal(t, shuffled(7), shuffled(7))
	assert.ElementsMatch(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, shuffled(7))
}
