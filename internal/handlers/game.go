package handlers

import (
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/quantum-minefield-server/internal/config"
	"github.com/vancomm/quantum-minefield-server/internal/quantum"
	"github.com/vancomm/quantum-minefield-server/internal/session"
)

type GameHandler struct {
	log    *logrus.Logger
	store  *session.Store
	ws     *config.WebSocket
	replay *config.Replay // nil when no replay keys are configured
}

func NewGameHandler(
	log *logrus.Logger,
	store *session.Store,
	ws *config.WebSocket,
	replay *config.Replay,
) *GameHandler {
	return &GameHandler{
		log:    log,
		store:  store,
		ws:     ws,
		replay: replay,
	}
}

// NewGame creates a session from query parameters. With a `seed` parameter
// the session is fully reproducible; without one the engine picks a seed and
// reports it back in the snapshot.
func (h GameHandler) NewGame(w http.ResponseWriter, r *http.Request) {
	dto, err := ParseNewGameDTO(r.URL.Query())
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		SendErrorOrLog(w, h.log, err)
		return
	}

	var (
		grid       *quantum.Grid
		difficulty = quantum.Difficulty(dto.Difficulty)
	)
	if dto.Seed != "" {
		seed, seedErr := parseSeed(dto.Seed)
		if seedErr != nil {
			w.WriteHeader(http.StatusBadRequest)
			SendErrorOrLog(w, h.log, seedErr)
			return
		}
		grid, err = quantum.NewSeededGrid(
			dto.Width, dto.Height, dto.MineCount, seed, difficulty,
		)
	} else {
		grid, err = quantum.NewGrid(
			dto.Width, dto.Height, dto.MineCount, difficulty,
		)
	}

	var invalid quantum.InvalidConfigurationError
	if errors.As(err, &invalid) {
		w.WriteHeader(http.StatusBadRequest)
		SendErrorOrLog(w, h.log, invalid)
		return
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.log.WithError(err).Error("unable to create a new game")
		return
	}

	s := h.store.Create(grid)
	h.log.WithFields(logrus.Fields{
		"sessionId":  s.Id,
		"width":      grid.Width,
		"height":     grid.Height,
		"mineCount":  grid.MineCount,
		"difficulty": grid.Difficulty,
	}).Info("new game")

	SendJSONOrLog(w, h.log, NewGameSessionDTO(s))
}

// Replay rebuilds a session from a signed replay token.
func (h GameHandler) Replay(w http.ResponseWriter, r *http.Request) {
	if h.replay == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	claims, err := h.replay.Parse(r.URL.Query().Get("token"))
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		SendErrorOrLog(w, h.log, err)
		return
	}

	seed, err := parseSeed(claims.Seed)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		SendErrorOrLog(w, h.log, err)
		return
	}

	grid, err := quantum.NewSeededGrid(
		claims.Width, claims.Height, claims.MineCount,
		seed, quantum.Difficulty(claims.Difficulty),
	)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		SendErrorOrLog(w, h.log, err)
		return
	}

	s := h.store.Create(grid)
	h.log.WithField("sessionId", s.Id).Info("replayed game")
	SendJSONOrLog(w, h.log, NewGameSessionDTO(s))
}

func (h GameHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	s, ok := h.fetchSession(w, r)
	if !ok {
		return
	}
	SendJSONOrLog(w, h.log, NewGameSessionDTO(s))
}

func (h GameHandler) Reveal(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, func(g *quantum.Grid, x, y int) error {
		return g.Reveal(x, y)
	})
}

func (h GameHandler) Contain(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, func(g *quantum.Grid, x, y int) error {
		return g.Contain(x, y)
	})
}

// act applies a move shared-shape: parse position, run it against the
// session's grid, answer with the fresh snapshot. Out-of-bounds is the
// caller's error; everything anomalous-but-harmless is a no-op and still
// answers 200 with current state.
func (h GameHandler) act(
	w http.ResponseWriter, r *http.Request,
	move func(g *quantum.Grid, x, y int) error,
) {
	pos, err := ParsePositionDTO(r.URL.Query())
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		SendErrorOrLog(w, h.log, err)
		return
	}

	s, ok := h.fetchSession(w, r)
	if !ok {
		return
	}

	err = s.Do(func(g *quantum.Grid) error {
		return move(g, pos.X, pos.Y)
	})

	var oob quantum.OutOfBoundsError
	if errors.As(err, &oob) {
		w.WriteHeader(http.StatusBadRequest)
		SendErrorOrLog(w, h.log, oob)
		return
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.log.WithError(err).Error("unable to apply move")
		return
	}

	SendJSONOrLog(w, h.log, NewGameSessionDTO(s))
}

func (h GameHandler) Cloud(w http.ResponseWriter, r *http.Request) {
	s, ok := h.fetchSession(w, r)
	if !ok {
		return
	}
	var dto ProbabilityCloudDTO
	_ = s.Do(func(g *quantum.Grid) error {
		dto.Probabilities = g.ProbabilityCloud()
		return nil
	})
	SendJSONOrLog(w, h.log, dto)
}

func (h GameHandler) Inspector(w http.ResponseWriter, r *http.Request) {
	dto, err := ParseInspectorDTO(r.URL.Query())
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		SendErrorOrLog(w, h.log, err)
		return
	}

	s, ok := h.fetchSession(w, r)
	if !ok {
		return
	}
	_ = s.Do(func(g *quantum.Grid) error {
		g.SetInspector(dto.Enabled)
		return nil
	})
	SendJSONOrLog(w, h.log, NewGameSessionDTO(s))
}

// Share hands out the session's seed, plus a signed replay token when the
// server has replay keys.
func (h GameHandler) Share(w http.ResponseWriter, r *http.Request) {
	s, ok := h.fetchSession(w, r)
	if !ok {
		return
	}

	var claims config.ReplayClaims
	_ = s.Do(func(g *quantum.Grid) error {
		snap := g.Snapshot()
		claims = config.ReplayClaims{
			Width:      g.Width,
			Height:     g.Height,
			MineCount:  g.MineCount,
			Seed:       snap.Seed,
			Difficulty: string(g.Difficulty),
		}
		return nil
	})

	dto := ReplayTokenDTO{Seed: claims.Seed}
	if h.replay != nil {
		token, err := h.replay.Sign(claims)
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			h.log.WithError(err).Error("unable to sign replay token")
			return
		}
		dto.ReplayToken = token
	}
	SendJSONOrLog(w, h.log, dto)
}

// Destroy is the explicit end of a session's lifetime; nothing waits for a
// garbage collector.
func (h GameHandler) Destroy(w http.ResponseWriter, r *http.Request) {
	s, ok := h.fetchSession(w, r)
	if !ok {
		return
	}
	h.store.Delete(s.Id)
	w.WriteHeader(http.StatusNoContent)
}

func (h GameHandler) fetchSession(
	w http.ResponseWriter, r *http.Request,
) (*session.Session, bool) {
	s, ok := h.store.Get(r.PathValue("id"))
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return nil, false
	}
	return s, true
}
