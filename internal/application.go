package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/cookiemilk-backend/internal/config"
	"github.com/rocketscienceinc/cookiemilk-backend/internal/monitor"
	"github.com/rocketscienceinc/cookiemilk-backend/internal/repository"
	"github.com/rocketscienceinc/cookiemilk-backend/internal/repository/storage"
	"github.com/rocketscienceinc/cookiemilk-backend/internal/usecase"
	"github.com/rocketscienceinc/cookiemilk-backend/transport/rest"
	"github.com/rocketscienceinc/cookiemilk-backend/transport/websocket"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	redisAddrString := conf.Redis.GetRedisAddr()
	if redisAddrString == "" {
		return ErrAddrNotFound
	}

	redisStorage, err := storage.New(ctx, redisAddrString)
	if err != nil {
		return fmt.Errorf("could not connect to redis storage: %w", err)
	}

	defer func() {
		if err = redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}()

	// the board starts empty on every run, so events of a previous process are stale
	journalRepo := repository.NewJournalRepository(redisStorage, conf.Journal.Key, conf.Journal.Limit)
	if err = journalRepo.Clear(ctx); err != nil {
		return fmt.Errorf("could not clear board journal: %w", err)
	}

	metrics := monitor.NewMetrics(conf.Metrics.Namespace)
	liveServer := websocket.New(logger)
	boardManager := usecase.NewBoardManager(logger, journalRepo, liveServer, metrics)

	router := rest.NewRouter(rest.Handlers{
		Board:   rest.NewBoardHandler(logger, boardManager, conf.Journal.Limit),
		Ping:    rest.NewPingHandler(logger),
		Live:    liveServer.Handler(boardManager),
		Metrics: metrics.Handler(),
	}, metrics)

	log.Info("Starting HTTP server", "port", conf.HTTPPort)
	if err = rest.Start(ctx, conf.HTTPPort, router); err != nil {
		return fmt.Errorf("HTTP server error: %w", err)
	}

	log.Info("Application context canceled, shutting down")

	return nil
}
