package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/vancomm/quantum-minefield-server/internal/quantum"
	"github.com/vancomm/quantum-minefield-server/internal/session"
)

type wsCommand string

const (
	wsNoop      wsCommand = "g"
	wsReveal    wsCommand = "r"
	wsContain   wsCommand = "c"
	wsInspector wsCommand = "i"
)

type gameExecutor struct {
	session *session.Session
}

func (e gameExecutor) reveal(args []string) error {
	x, y, err := parseXY(args)
	if err != nil {
		return err
	}
	return e.session.Do(func(g *quantum.Grid) error {
		return g.Reveal(x, y)
	})
}

func (e gameExecutor) contain(args []string) error {
	x, y, err := parseXY(args)
	if err != nil {
		return err
	}
	return e.session.Do(func(g *quantum.Grid) error {
		return g.Contain(x, y)
	})
}

func (e gameExecutor) inspector(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("invalid args")
	}
	enabled := args[0] != "0"
	return e.session.Do(func(g *quantum.Grid) error {
		g.SetInspector(enabled)
		return nil
	})
}

func (e gameExecutor) execute(line string) error {
	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return nil
	}
	cmd, args := wsCommand(tokens[0]), tokens[1:]
	switch cmd {
	case wsNoop:
		return nil
	case wsReveal:
		return e.reveal(args)
	case wsContain:
		return e.contain(args)
	case wsInspector:
		return e.inspector(args)
	default:
		return fmt.Errorf("unknown command")
	}
}

// ConnectWS upgrades the request and plays the session interactively: one or
// more line-oriented commands per text message ("r x y", "c x y", "i 1",
// "g"), a full session snapshot pushed back after every message.
func (h GameHandler) ConnectWS(w http.ResponseWriter, r *http.Request) {
	s, ok := h.fetchSession(w, r)
	if !ok {
		return
	}

	conn, err := h.ws.Upgrader.Upgrade(w, r, nil) // headers sent here
	if err != nil {
		h.log.WithError(err).Error("unable to upgrade")
		return
	}
	defer conn.Close()

	h.log.WithField("sessionId", s.Id).Debug("established WS connection")

	if err := h.wsRunGameLoop(conn, s); err != nil {
		if websocket.IsCloseError(err, websocket.CloseNormalClosure) {
			return
		}
		h.log.WithError(err).Warn("error in ws loop")
	}
}

func (h GameHandler) wsRunGameLoop(
	conn *websocket.Conn, s *session.Session,
) error {
	game := gameExecutor{session: s}
	for {
		mt, buf, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		if mt != websocket.TextMessage {
			return nil
		}

		for _, line := range strings.Split(strings.TrimSpace(string(buf)), "\n") {
			if err := game.execute(strings.TrimSpace(line)); err != nil {
				return err
			}
		}

		if err := conn.WriteJSON(NewGameSessionDTO(s)); err != nil {
			return fmt.Errorf("unable to write json: %w", err)
		}
	}
}

func parseXY(args []string) (x int, y int, err error) {
	if len(args) != 2 {
		err = fmt.Errorf("invalid args")
		return
	}
	if x, err = strconv.Atoi(args[0]); err != nil {
		err = fmt.Errorf("first argument must be an int")
		return
	}
	if y, err = strconv.Atoi(args[1]); err != nil {
		err = fmt.Errorf("second argument must be an int")
		return
	}
	return
}
