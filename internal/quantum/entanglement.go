package quantum

// Pair links two cell indices. Observing either member shifts the displayed
// probability of the other; the underlying mine truth is never touched.
type Pair struct {
	A, B     int
	Strength float64
}

type Entanglement struct {
	pairs   []Pair
	partner map[int]int // cell index -> pair index, both members mapped
}

// newEntanglement draws disjoint pairs from the grid via the session RNG.
// Pair count and strength scale with difficulty. Pairing happens before any
// mines exist — it only needs coordinates.
func newEntanglement(total int, d Difficulty, rng *SplitMix64) Entanglement {
	var (
		count    int
		strength float64
	)
	switch d {
	case Observer:
		count, strength = total/12, 0.2
	case Theorist:
		count, strength = total/6, 0.5
	default:
		count, strength = total/8, 0.35
	}
	if count > total/2 {
		count = total / 2
	}

	indices := make([]int, total)
	for i := range indices {
		indices[i] = i
	}
	rng.Shuffle(total, func(i, j int) {
		indices[i], indices[j] = indices[j], indices[i]
	})

	e := Entanglement{partner: make(map[int]int, count*2)}
	for k := 0; k < count; k++ {
		p := Pair{A: indices[2*k], B: indices[2*k+1], Strength: strength}
		e.partner[p.A] = len(e.pairs)
		e.partner[p.B] = len(e.pairs)
		e.pairs = append(e.pairs, p)
	}
	return e
}

// PartnerOf reports the pair containing index and the other member's index.
func (e Entanglement) PartnerOf(index int) (Pair, int, bool) {
	k, ok := e.partner[index]
	if !ok {
		return Pair{}, 0, false
	}
	pair := e.pairs[k]
	if pair.A == index {
		return pair, pair.B, true
	}
	return pair, pair.A, true
}

// Shift biases p away from the partner's revealed truth: a safe partner pulls
// the displayed probability toward 1, a mined partner toward 0. Linear blend
// by pair strength, clamped to [0,1].
func (e Entanglement) Shift(pair Pair, partnerIsMine bool, p float64) float64 {
	target := 1.0
	if partnerIsMine {
		target = 0.0
	}
	return clamp01(p*(1-pair.Strength) + target*pair.Strength)
}
