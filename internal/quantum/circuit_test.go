package quantum_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vancomm/quantum-minefield-server/internal/quantum"
)

func TestHadamardCompressesTowardHalf(t *testing.T) {
	t.Parallel()

	c := quantum.Circuit{}.WithGate(quantum.Hadamard())
	assert.InDelta(t, 0.35, c.Apply(0.2), 1e-10)
	assert.InDelta(t, 0.65, c.Apply(0.8), 1e-10)
	assert.InDelta(t, 0.5, c.Apply(0.5), 1e-10)
}

func TestNotFlips(t *testing.T) {
	t.Parallel()

	c := quantum.Circuit{}.WithGate(quantum.Not())
	assert.InDelta(t, 0.7, c.Apply(0.3), 1e-10)
}

func TestPhaseShiftZeroIsIdentity(t *testing.T) {
	t.Parallel()

	c := quantum.Circuit{}.WithGate(quantum.PhaseShift(0))
	assert.InDelta(t, 0.3, c.Apply(0.3), 1e-10)
	assert.InDelta(t, 0.7, c.Apply(0.7), 1e-10)
}

func TestPhaseShiftPiIsFlip(t *testing.T) {
	t.Parallel()

	c := quantum.Circuit{}.WithGate(quantum.PhaseShift(math.Pi))
	assert.InDelta(t, 0.7, c.Apply(0.3), 1e-10)
}

func TestDifficultyCircuits(t *testing.T) {
	t.Parallel()

	var (
		obs = quantum.CircuitFor(quantum.Observer).Apply(0.15)
		res = quantum.CircuitFor(quantum.Researcher).Apply(0.15)
		the = quantum.CircuitFor(quantum.Theorist).Apply(0.15)
	)
	for _, v := range []float64{obs, res, the} {
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 1.0)
	}
	assert.Less(t, math.Abs(obs-0.15), math.Abs(res-0.15),
		"observer hints should stay closest to the input")
}

func TestCircuitIsPure(t *testing.T) {
	t.Parallel()

	for _, d := range []quantum.Difficulty{
		quantum.Observer, quantum.Researcher, quantum.Theorist,
	} {
		c := quantum.CircuitFor(d)
		for _, p := range []float64{0, 0.15, 0.5, 0.85, 1} {
			assert.Equal(t, c.Apply(p), c.Apply(p),
				"%s circuit drifted on %v", d, p)
		}
	}
}

func TestCircuitClampsInput(t *testing.T) {
	t.Parallel()

	c := quantum.CircuitFor(quantum.Theorist)
	assert.GreaterOrEqual(t, c.Apply(-0.5), 0.0)
	assert.LessOrEqual(t, c.Apply(1.5), 1.0)
}
