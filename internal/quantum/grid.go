package quantum

import (
	"hash/maphash"
	"log/slog"
	"strconv"
	"strings"
)

var Log *slog.Logger = slog.Default()

type CellState int8

const (
	Superposition CellState = iota // unobserved, shown as a probability
	Revealed                       // observed safe, shows adjacent mine count
	Contained                      // locked by a containment charge
	Detonated                      // observed mine, game over
)

func (s CellState) String() string {
	switch s {
	case Superposition:
		return "superposition"
	case Revealed:
		return "revealed"
	case Contained:
		return "contained"
	case Detonated:
		return "detonated"
	default:
		return "unknown"
	}
}

type Cell struct {
	X, Y          int
	State         CellState
	AdjacentMines int // valid once mines are placed

	// Drawn once at construction so probability hints exist before the
	// first move places any mines.
	baseProbability float64
}

// Grid is the whole game: cell matrix, lazily placed mine layout, containment
// charges and win/loss flags. It is a pure function of its seed and the
// sequence of player actions, and is owned by a single caller — it does no
// locking of its own.
type Grid struct {
	Width, Height, MineCount int
	Difficulty               Difficulty
	Seed                     uint64
	GameOver, Won            bool
	ContainmentCharges       int

	cells        []Cell
	mines        []bool
	minesPlaced  bool
	rng          *SplitMix64
	circuit      Circuit
	entanglement Entanglement
	inspector    bool
}

// NewGrid picks a seed once from a non-deterministic source; every later
// computation depends only on that recorded seed.
func NewGrid(width, height, mineCount int, d Difficulty) (*Grid, error) {
	return NewSeededGrid(width, height, mineCount, new(maphash.Hash).Sum64(), d)
}

func NewSeededGrid(
	width, height, mineCount int, seed uint64, d Difficulty,
) (*Grid, error) {
	if width < 1 || height < 1 || mineCount < 1 || mineCount >= width*height {
		return nil, InvalidConfigurationError{width, height, mineCount}
	}

	total := width * height
	g := &Grid{
		Width:              width,
		Height:             height,
		MineCount:          mineCount,
		Difficulty:         d,
		Seed:               seed,
		ContainmentCharges: mineCount,
		cells:              make([]Cell, total),
		mines:              make([]bool, total),
		rng:                NewSplitMix64(seed),
		circuit:            CircuitFor(d),
	}

	// RNG draw order is part of the wire-level contract: base
	// probabilities first, then the entanglement shuffle.
	for i := range g.cells {
		g.cells[i] = Cell{
			X:               i % width,
			Y:               i / width,
			baseProbability: g.rng.Float64(),
		}
	}
	g.entanglement = newEntanglement(total, d, g.rng)

	return g, nil
}

func (g *Grid) PointInBounds(x, y int) bool {
	return 0 <= x && x < g.Width && 0 <= y && y < g.Height
}

// Terminal reports whether the game has ended; terminal grids ignore all
// further actions.
func (g *Grid) Terminal() bool {
	return g.GameOver || g.Won
}

func (g *Grid) index(x, y int) int {
	return y*g.Width + x
}

// Reveal observes a cell. Revealing a mine detonates it and ends the game;
// revealing a safe cell shows its adjacent mine count and flood-fills
// through zero-count neighbors. Acting on a terminal grid or an already
// resolved cell is a no-op.
func (g *Grid) Reveal(x, y int) error {
	if !g.PointInBounds(x, y) {
		return OutOfBoundsError{x, y}
	}
	if g.Terminal() {
		return nil
	}
	i := g.index(x, y)
	if g.cells[i].State != Superposition {
		return nil
	}

	if !g.minesPlaced {
		g.placeMines(i)
	}

	if g.mines[i] {
		g.cells[i].State = Detonated
		g.GameOver = true
		return nil
	}

	g.revealSafe(i)
	g.refreshWon()
	return nil
}

// Contain spends one charge to lock a cell. A mined cell is neutralized; a
// safe cell is locked anyway and the charge is wasted — either way the cell
// counts as resolved and never detonates. With no charges left the call is a
// silent no-op.
func (g *Grid) Contain(x, y int) error {
	if !g.PointInBounds(x, y) {
		return OutOfBoundsError{x, y}
	}
	if g.Terminal() || g.ContainmentCharges == 0 {
		return nil
	}
	i := g.index(x, y)
	if g.cells[i].State != Superposition {
		return nil
	}

	if !g.minesPlaced {
		g.placeMines(i)
	}

	g.ContainmentCharges--
	g.cells[i].State = Contained
	g.refreshWon()
	return nil
}

// Entropy is the fraction of cells still in superposition. 1 means nothing
// observed, 0 means every cell resolved.
func (g *Grid) Entropy() float64 {
	if len(g.cells) == 0 {
		return 0
	}
	return float64(g.unresolved()) / float64(len(g.cells))
}

func (g *Grid) SetInspector(enabled bool) {
	g.inspector = enabled
}

func (g *Grid) InspectorEnabled() bool {
	return g.inspector
}

func (g *Grid) unresolved() (count int) {
	for i := range g.cells {
		if g.cells[i].State == Superposition {
			count++
		}
	}
	return
}

func (g *Grid) refreshWon() {
	if !g.GameOver && g.unresolved() == 0 {
		g.Won = true
	}
}

// placeMines runs the deferred Fisher-Yates placement, excluding the first
// move's cell and its 8-neighborhood so the opening never detonates.
func (g *Grid) placeMines(safe int) {
	var (
		total  = len(g.cells)
		sx, sy = g.cells[safe].X, g.cells[safe].Y
	)

	excluded := make(map[int]bool, 9)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if g.PointInBounds(sx+dx, sy+dy) {
				excluded[g.index(sx+dx, sy+dy)] = true
			}
		}
	}

	candidates := make([]int, 0, total)
	for i := range total {
		if !excluded[i] {
			candidates = append(candidates, i)
		}
	}

	/*
	 * On tiny grids the neighborhood may not leave room for every mine.
	 * Fall back to protecting the clicked cell alone; mineCount < total
	 * guarantees the mines fit then.
	 */
	if len(candidates) < g.MineCount {
		candidates = candidates[:0]
		for i := range total {
			if i != safe {
				candidates = append(candidates, i)
			}
		}
	}

	g.rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	for _, i := range candidates[:g.MineCount] {
		g.mines[i] = true
	}
	g.minesPlaced = true

	for i := range g.cells {
		g.cells[i].AdjacentMines = g.adjacentMines(g.cells[i].X, g.cells[i].Y)
	}

	Log.Debug("mines placed",
		slog.Int("count", g.MineCount),
		slog.Int("safeX", sx), slog.Int("safeY", sy))
}

// revealSafe opens a cell known not to be mined and flood-fills outward from
// zero-count cells. The fill is iterative with an explicit work list; a cell
// is revealed before it is pushed, so each one enters the list at most once
// and total work is bounded by the grid size.
func (g *Grid) revealSafe(i int) {
	g.cells[i].State = Revealed
	if g.cells[i].AdjacentMines != 0 {
		return
	}

	work := []int{i}
	for len(work) > 0 {
		c := work[len(work)-1]
		work = work[:len(work)-1]
		cx, cy := g.cells[c].X, g.cells[c].Y
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				if !g.PointInBounds(cx+dx, cy+dy) {
					continue
				}
				n := g.index(cx+dx, cy+dy)
				// mines are never auto-revealed
				if g.cells[n].State != Superposition || g.mines[n] {
					continue
				}
				g.cells[n].State = Revealed
				if g.cells[n].AdjacentMines == 0 {
					work = append(work, n)
				}
			}
		}
	}
}

func (g *Grid) adjacentMines(x, y int) (count int) {
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			if g.PointInBounds(x+dx, y+dy) && g.mines[g.index(x+dx, y+dy)] {
				count++
			}
		}
	}
	return
}

// displayedProbability derives the player-visible hint from scratch: base
// draw through the gate chain, then the entanglement shift if the cell's
// partner has been resolved. Never cached, so it is always consistent with
// the current state.
func (g *Grid) displayedProbability(i int) float64 {
	p := g.circuit.Apply(g.cells[i].baseProbability)
	pair, partner, ok := g.entanglement.PartnerOf(i)
	if !ok || !g.minesPlaced || g.cells[partner].State == Superposition {
		return p
	}
	return g.entanglement.Shift(pair, g.mines[partner], p)
}

// ProbabilityCloud lists displayed probabilities for every cell still in
// superposition, row-major.
func (g *Grid) ProbabilityCloud() []float64 {
	cloud := make([]float64, 0, g.unresolved())
	for i := range g.cells {
		if g.cells[i].State == Superposition {
			cloud = append(cloud, g.displayedProbability(i))
		}
	}
	return cloud
}

func (g *Grid) ToString() string {
	var b strings.Builder
	for y := range g.Height {
		for x := range g.Width {
			switch c := g.cells[g.index(x, y)]; c.State {
			case Revealed:
				b.WriteString(strconv.Itoa(c.AdjacentMines))
			case Contained:
				b.WriteString("#")
			case Detonated:
				b.WriteString("*")
			default:
				b.WriteString("-")
			}
			b.WriteString(" ")
		}
		b.WriteString("\n")
	}
	return b.String()
}
