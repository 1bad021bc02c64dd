package quantum

// SplitMix64 is the only randomness source in the engine. A grid owns exactly
// one instance; same seed plus same call sequence reproduces the same game
// bit-for-bit on every platform.
type SplitMix64 struct {
	state uint64
}

func NewSplitMix64(seed uint64) *SplitMix64 {
	return &SplitMix64{state: seed}
}

func (r *SplitMix64) Uint64() uint64 {
	r.state += 0x9e3779b97f4a7c15
	z := r.state
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

// Float64 returns a value in [0, 1) built from the top 53 bits of a draw.
func (r *SplitMix64) Float64() float64 {
	return float64(r.Uint64()>>11) / (1 << 53)
}

// IntN returns a value in [0, n). Plain modulo reduction: biased toward low
// values when n does not divide 2^64, which is acceptable here — replays only
// need the exact same draw for the exact same seed, not perfect uniformity.
func (r *SplitMix64) IntN(n int) int {
	if n <= 1 {
		return 0
	}
	return int(r.Uint64() % uint64(n))
}

// Shuffle performs a Fisher-Yates shuffle over n elements.
func (r *SplitMix64) Shuffle(n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		j := r.IntN(i + 1)
		swap(i, j)
	}
}
