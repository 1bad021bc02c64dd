package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"

	"github.com/vancomm/quantum-minefield-server/internal/app"
	"github.com/vancomm/quantum-minefield-server/internal/config"
	"github.com/vancomm/quantum-minefield-server/internal/quantum"
)

func setupLogging(log *logrus.Logger) {
	if config.Development() {
		log.SetLevel(logrus.DebugLevel)
		quantum.Log = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}

	log.SetFormatter(&logrus.TextFormatter{ForceColors: true})

	if logFile := config.LogFile(); logFile != "" {
		hook, err := rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
			Filename:   logFile,
			MaxSize:    50, // MB
			MaxBackups: 3,
			MaxAge:     28, // days
			Level:      log.GetLevel(),
			Formatter:  &logrus.JSONFormatter{},
		})
		if err != nil {
			log.Fatal("unable to create rotate file hook: ", err)
		}
		log.AddHook(hook)
	}
}

func main() {
	log := logrus.New()
	setupLogging(log)

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	if err := app.New(log).Start(ctx); err != nil {
		log.Fatal("exit reason: ", err)
	}
}
