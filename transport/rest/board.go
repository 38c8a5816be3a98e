package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/rocketscienceinc/cookiemilk-backend/internal/apperror"
	"github.com/rocketscienceinc/cookiemilk-backend/internal/entity"
)

const defaultHistoryLimit = 20

var errInvalidLimit = errors.New("invalid history limit")

type boardUseCase interface {
	Render() string
	Place(ctx context.Context, marker entity.Cell, column int) (string, error)
	Reset(ctx context.Context) string
	Randomize(ctx context.Context) string
	History(ctx context.Context, limit int64) ([]*entity.BoardEvent, error)
}

type BoardHandler interface {
	GetBoard(w http.ResponseWriter, r *http.Request)
	Reset(w http.ResponseWriter, r *http.Request)
	Place(w http.ResponseWriter, r *http.Request)
	RandomBoard(w http.ResponseWriter, r *http.Request)
	History(w http.ResponseWriter, r *http.Request)
}

type boardHandler struct {
	logger       *slog.Logger
	board        boardUseCase
	historyLimit int64
}

// NewBoardHandler serves the board; historyLimit is the journal cap and bounds the history limit parameter.
func NewBoardHandler(logger *slog.Logger, board boardUseCase, historyLimit int64) BoardHandler {
	return &boardHandler{
		logger:       logger.With("component", "rest"),
		board:        board,
		historyLimit: historyLimit,
	}
}

func (that *boardHandler) GetBoard(w http.ResponseWriter, _ *http.Request) {
	that.writeBoard(w, http.StatusOK, that.board.Render())
}

func (that *boardHandler) Reset(w http.ResponseWriter, r *http.Request) {
	that.writeBoard(w, http.StatusOK, that.board.Reset(r.Context()))
}

// Place validates the team and column path values before the board is touched.
func (that *boardHandler) Place(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "Place")

	marker, err := entity.ParseMarker(r.PathValue("team"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	column, err := parseColumn(r.PathValue("column"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rendering, err := that.board.Place(r.Context(), marker, column)
	switch {
	case err == nil:
		that.writeBoard(w, http.StatusOK, rendering)
	case errors.Is(err, apperror.ErrGameFinished), errors.Is(err, apperror.ErrColumnFull):
		that.writeBoard(w, http.StatusServiceUnavailable, rendering)
	default:
		log.Error("failed to place marker", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func (that *boardHandler) RandomBoard(w http.ResponseWriter, r *http.Request) {
	that.writeBoard(w, http.StatusOK, that.board.Randomize(r.Context()))
}

func (that *boardHandler) History(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "History")

	limit, err := parseLimit(r.URL.Query().Get("limit"), that.historyLimit)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	events, err := that.board.History(r.Context(), limit)
	if err != nil {
		log.Error("failed to read history", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err = json.NewEncoder(w).Encode(events); err != nil {
		log.Error("failed to encode history", "error", err)
	}
}

func (that *boardHandler) writeBoard(w http.ResponseWriter, status int, rendering string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)

	if _, err := w.Write([]byte(rendering)); err != nil {
		that.logger.Error("failed to write board", "error", err)
	}
}

func parseColumn(raw string) (int, error) {
	column, err := strconv.Atoi(raw)
	if err != nil || column < 1 || column > entity.BoardWidth {
		return 0, apperror.ErrInvalidColumn
	}

	return column, nil
}

func parseLimit(raw string, maxLimit int64) (int64, error) {
	if raw == "" {
		return min(defaultHistoryLimit, maxLimit), nil
	}

	limit, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || limit < 1 || limit > maxLimit {
		return 0, errInvalidLimit
	}

	return limit, nil
}
