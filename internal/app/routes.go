package app

import (
	"net/http"

	"github.com/vancomm/quantum-minefield-server/internal/handlers"
)

func handleStatus(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("\"ok\""))
}

func (a *App) loadRoutes() {
	game := handlers.NewGameHandler(a.log, a.store, a.ws, a.replay)

	a.router.HandleFunc("GET /status", handleStatus)

	a.router.HandleFunc("POST /game", game.NewGame)
	a.router.HandleFunc("POST /game/replay", game.Replay)
	a.router.HandleFunc("GET /game/{id}", game.Fetch)
	a.router.HandleFunc("DELETE /game/{id}", game.Destroy)
	a.router.HandleFunc("POST /game/{id}/reveal", game.Reveal)
	a.router.HandleFunc("POST /game/{id}/contain", game.Contain)
	a.router.HandleFunc("GET /game/{id}/cloud", game.Cloud)
	a.router.HandleFunc("POST /game/{id}/inspector", game.Inspector)
	a.router.HandleFunc("GET /game/{id}/share", game.Share)
	a.router.HandleFunc("GET /game/{id}/connect", game.ConnectWS)
}
