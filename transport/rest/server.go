package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

const shutdownTimeout = 5 * time.Second

type requestObserver interface {
	ObserveRequest(route string, code int, duration time.Duration)
}

// Handlers groups everything the router serves.
type Handlers struct {
	Board   BoardHandler
	Ping    PingHandler
	Live    http.Handler
	Metrics http.Handler
}

func NewRouter(handlers Handlers, observer requestObserver) *http.ServeMux {
	mux := http.NewServeMux()

	route := func(method, path string, handler http.HandlerFunc) {
		mux.Handle(method+" "+path, observe(observer, path, handler))
	}

	route(http.MethodGet, "/ping", handlers.Ping.PingHandler)
	route(http.MethodGet, "/12/board", handlers.Board.GetBoard)
	route(http.MethodPost, "/12/reset", handlers.Board.Reset)
	route(http.MethodPost, "/12/place/{team}/{column}", handlers.Board.Place)
	route(http.MethodGet, "/12/random-board", handlers.Board.RandomBoard)
	route(http.MethodGet, "/12/history", handlers.Board.History)

	mux.Handle("GET /12/ws", handlers.Live)
	mux.Handle("GET /metrics", handlers.Metrics)

	return mux
}

// Start serves handler on port until ctx is canceled, then shuts down gracefully.
func Start(ctx context.Context, port string, handler http.Handler) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("failed to start server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}

	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server stopped with error: %w", err)
	}

	return nil
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (that *statusRecorder) WriteHeader(status int) {
	that.status = status
	that.ResponseWriter.WriteHeader(status)
}

func observe(observer requestObserver, route string, next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next(recorder, r)

		observer.ObserveRequest(route, recorder.status, time.Since(start))
	})
}
