package quantum

import "math"

type Difficulty string

const (
	Observer   Difficulty = "observer"
	Researcher Difficulty = "researcher"
	Theorist   Difficulty = "theorist"
)

// Gate is a pure probability transform. Every gate maps [0,1] into [0,1].
type Gate func(p float64) float64

// Hadamard halves the distance from 0.5: H(0.2) = 0.35, H(0.8) = 0.65.
func Hadamard() Gate {
	return func(p float64) float64 {
		return 0.5 + (p-0.5)*0.5
	}
}

// Not flips the probability.
func Not() Gate {
	return func(p float64) float64 {
		return 1 - p
	}
}

// PhaseShift mixes p with its complement using cos²/sin² weights.
// theta = 0 is the identity, theta = π a full flip.
func PhaseShift(theta float64) Gate {
	c2 := math.Pow(math.Cos(theta/2), 2)
	s2 := math.Pow(math.Sin(theta/2), 2)
	return func(p float64) float64 {
		return clamp01(p*c2 + (1-p)*s2)
	}
}

// Circuit is an ordered gate chain folded over a base probability to produce
// the player-visible hint. It holds no state and no randomness; the same
// input always yields the same output.
type Circuit struct {
	gates []Gate
}

func (c Circuit) WithGate(g Gate) Circuit {
	c.gates = append(c.gates, g)
	return c
}

func (c Circuit) Apply(p float64) float64 {
	p = clamp01(p)
	for _, g := range c.gates {
		p = g(p)
	}
	return p
}

// CircuitFor builds the difficulty-appropriate chain. Observer hints stay
// close to the truth; theorist chains Hadamard twice around a strong phase
// shift, scrambling hints heavily. Unknown labels get the researcher chain.
func CircuitFor(d Difficulty) Circuit {
	switch d {
	case Observer:
		return Circuit{}.WithGate(PhaseShift(math.Pi / 6))
	case Theorist:
		return Circuit{}.
			WithGate(Hadamard()).
			WithGate(PhaseShift(math.Pi / 3)).
			WithGate(Hadamard())
	default:
		return Circuit{}.
			WithGate(Hadamard()).
			WithGate(PhaseShift(math.Pi / 4))
	}
}

func clamp01(p float64) float64 {
	return math.Min(1, math.Max(0, p))
}
