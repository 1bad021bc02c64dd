package quantum

import (
	"fmt"
	"strconv"
)

// CellView is one cell as the presentation layer sees it: a probability
// while unobserved, an adjacency count once revealed.
type CellView struct {
	X             int       `json:"x"`
	Y             int       `json:"y"`
	State         CellState `json:"state"`
	Probability   *float64  `json:"probability,omitempty"`
	AdjacentMines *int      `json:"adjacent_mines,omitempty"`
}

// [CellState] implements [encoding/json.Marshaler]
func (s CellState) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(s.String())), nil
}

// [CellState] implements [encoding/json.Unmarshaler]
func (s *CellState) UnmarshalJSON(data []byte) error {
	label, err := strconv.Unquote(string(data))
	if err != nil {
		return err
	}
	switch label {
	case "superposition":
		*s = Superposition
	case "revealed":
		*s = Revealed
	case "contained":
		*s = Contained
	case "detonated":
		*s = Detonated
	default:
		return fmt.Errorf("unknown cell state %q", label)
	}
	return nil
}

// Snapshot is the full serializable view of a grid. Building one is a pure
// read; the seed travels as a decimal string so 64-bit values survive
// JSON-over-JS bridges.
type Snapshot struct {
	Width              int        `json:"width"`
	Height             int        `json:"height"`
	MineCount          int        `json:"mine_count"`
	Difficulty         Difficulty `json:"difficulty"`
	GameOver           bool       `json:"game_over"`
	Won                bool       `json:"won"`
	Seed               string     `json:"seed"`
	ContainmentCharges int        `json:"containment_charges"`
	Entropy            float64    `json:"entropy"`
	InspectorEnabled   bool       `json:"inspector_enabled"`
	Cells              []CellView `json:"cells"`
}

func (g *Grid) Snapshot() Snapshot {
	cells := make([]CellView, len(g.cells))
	for i := range g.cells {
		view := CellView{
			X:     g.cells[i].X,
			Y:     g.cells[i].Y,
			State: g.cells[i].State,
		}
		switch g.cells[i].State {
		case Superposition:
			p := g.displayedProbability(i)
			view.Probability = &p
		case Revealed:
			adj := g.cells[i].AdjacentMines
			view.AdjacentMines = &adj
		}
		cells[i] = view
	}
	return Snapshot{
		Width:              g.Width,
		Height:             g.Height,
		MineCount:          g.MineCount,
		Difficulty:         g.Difficulty,
		GameOver:           g.GameOver,
		Won:                g.Won,
		Seed:               strconv.FormatUint(g.Seed, 10),
		ContainmentCharges: g.ContainmentCharges,
		Entropy:            g.Entropy(),
		InspectorEnabled:   g.inspector,
		Cells:              cells,
	}
}
