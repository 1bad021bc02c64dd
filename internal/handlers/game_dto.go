package handlers

import (
	"strconv"

	"github.com/gorilla/schema"

	"github.com/vancomm/quantum-minefield-server/internal/quantum"
	"github.com/vancomm/quantum-minefield-server/internal/session"
)

type NewGameDTO struct {
	Width      int    `schema:"width,required"`
	Height     int    `schema:"height,required"`
	MineCount  int    `schema:"mine_count,required"`
	Difficulty string `schema:"difficulty,required"`
	// Optional explicit seed (decimal string); empty means the server
	// picks one.
	Seed string `schema:"seed"`
}

func ParseNewGameDTO(src map[string][]string) (NewGameDTO, error) {
	var dto NewGameDTO
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	err := dec.Decode(&dto, src)
	return dto, err
}

type PositionDTO struct {
	X int `schema:"x,required"`
	Y int `schema:"y,required"`
}

func ParsePositionDTO(src map[string][]string) (PositionDTO, error) {
	var dto PositionDTO
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	err := dec.Decode(&dto, src)
	return dto, err
}

type InspectorDTO struct {
	Enabled bool `schema:"enabled,required"`
}

func ParseInspectorDTO(src map[string][]string) (InspectorDTO, error) {
	var dto InspectorDTO
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	err := dec.Decode(&dto, src)
	return dto, err
}

// GameSessionDTO is the wire shape of one session: its id and timestamps
// wrapped around the engine snapshot.
type GameSessionDTO struct {
	GameSessionId string `json:"game_session_id"`
	StartedAt     int64  `json:"started_at"`
	EndedAt       *int64 `json:"ended_at,omitempty"`
	quantum.Snapshot
}

func NewGameSessionDTO(s *session.Session) *GameSessionDTO {
	dto := &GameSessionDTO{
		GameSessionId: s.Id,
		StartedAt:     s.StartedAt.UnixMilli(),
	}
	_ = s.Do(func(g *quantum.Grid) error {
		dto.Snapshot = g.Snapshot()
		return nil
	})
	if s.EndedAt != nil {
		e := s.EndedAt.UnixMilli()
		dto.EndedAt = &e
	}
	return dto
}

// ProbabilityCloudDTO carries displayed probabilities of all unresolved
// cells, row-major.
type ProbabilityCloudDTO struct {
	Probabilities []float64 `json:"probabilities"`
}

type ReplayTokenDTO struct {
	Seed        string `json:"seed"`
	ReplayToken string `json:"replay_token,omitempty"`
}

func parseSeed(s string) (uint64, error) {
	return strconv.ParseUint(s, 10, 64)
}
