package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/vancomm/quantum-minefield-server/internal/config"
	"github.com/vancomm/quantum-minefield-server/internal/middleware"
	"github.com/vancomm/quantum-minefield-server/internal/session"
)

type App struct {
	log    *logrus.Logger
	router *http.ServeMux
	store  *session.Store
	ws     *config.WebSocket
	replay *config.Replay
}

func New(log *logrus.Logger) *App {
	return &App{
		log:    log,
		router: http.NewServeMux(),
		store:  session.NewStore(),
	}
}

func (a *App) Start(ctx context.Context) error {
	ws, err := config.NewWebSocket()
	if err != nil {
		return err
	}
	a.ws = ws

	// Replay sharing is optional: without keys the server still runs,
	// /share simply omits the signed token.
	replay, err := config.NewReplay()
	if err != nil {
		a.log.WithError(err).Warn("replay tokens disabled")
	} else {
		a.replay = replay
	}

	a.loadRoutes()

	server := &http.Server{
		Addr: config.Port(),
		Handler: middleware.Wrap(
			a.router,
			middleware.Cors(),
			middleware.Logging(a.log),
		),
	}

	a.log.WithField("addr", server.Addr).Info("minefield online")

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		<-gCtx.Done()
		sCtx, cancel := context.WithTimeout(context.Background(), time.Second*15)
		defer cancel()
		return server.Shutdown(sCtx)
	})

	return g.Wait()
}
