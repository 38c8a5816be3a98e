package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/rocketscienceinc/cookiemilk-backend/internal/apperror"
	"github.com/rocketscienceinc/cookiemilk-backend/internal/entity"
)

const journalTimeout = 3 * time.Second

type journal interface {
	Append(ctx context.Context, event *entity.BoardEvent) error
	Recent(ctx context.Context, limit int64) ([]*entity.BoardEvent, error)
}

type broadcaster interface {
	Broadcast(rendering string)
}

type metrics interface {
	MoveAccepted(result entity.Result)
	MoveRejected(err error)
	BoardReset()
	BoardRandomized(result entity.Result)
}

// BoardManager owns the single process-wide board. Reads share the lock, mutations take it exclusively.
//
// Every mutation takes a sequence number under the write lock. Journal appends and broadcasts happen
// after the lock is released but strictly in sequence order, so the live feed and the history always
// end on the latest board.
type BoardManager struct {
	logger *slog.Logger

	mu    sync.RWMutex
	board *entity.Board
	seq   uint64

	publishMu   sync.Mutex
	publishCond *sync.Cond
	published   uint64

	journal     journal
	broadcaster broadcaster
	metrics     metrics
}

func NewBoardManager(logger *slog.Logger, journal journal, broadcaster broadcaster, metrics metrics) *BoardManager {
	manager := &BoardManager{
		logger: logger.With("component", "board"),
		board:  entity.NewBoard(),

		journal:     journal,
		broadcaster: broadcaster,
		metrics:     metrics,
	}
	manager.publishCond = sync.NewCond(&manager.publishMu)

	return manager
}

func (that *BoardManager) Render() string {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return that.board.Render()
}

func (that *BoardManager) Result() entity.Result {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return that.board.Result()
}

// Place drops marker into the 1-indexed column. On ErrGameFinished and ErrColumnFull the current
// rendering is still returned.
//
// The decided check runs under the read lock and the drop under the write lock, so a move that races
// with another one may land after the game has already been decided. The drop itself rescans the
// column under the write lock and never overwrites a cell.
func (that *BoardManager) Place(ctx context.Context, marker entity.Cell, column int) (string, error) {
	log := that.logger.With("method", "Place", "marker", marker.Name(), "column", column)

	that.mu.RLock()
	if that.board.Result().IsDecided() {
		rendering := that.board.Render()
		that.mu.RUnlock()

		log.Info("move rejected, game is decided")
		that.metrics.MoveRejected(apperror.ErrGameFinished)

		return rendering, apperror.ErrGameFinished
	}
	that.mu.RUnlock()

	that.mu.Lock()
	row, err := that.board.Drop(marker, column)
	rendering := that.board.Render()
	result := that.board.Result()

	var event *entity.BoardEvent
	if err == nil {
		event = entity.NewPlaceEvent(that.board, marker, column, row)
		that.stamp(event)
	}
	that.mu.Unlock()

	if err != nil {
		that.metrics.MoveRejected(err)

		if errors.Is(err, apperror.ErrColumnFull) {
			log.Info("move rejected, column is full")
			return rendering, err
		}

		return rendering, fmt.Errorf("failed to place marker: %w", err)
	}

	log.Debug("move accepted", "row", row, "result", result.String())
	that.metrics.MoveAccepted(result)
	that.publish(ctx, event, rendering)

	return rendering, nil
}

// Reset replaces the board with a fresh one, reseeding the generator.
func (that *BoardManager) Reset(ctx context.Context) string {
	that.mu.Lock()
	that.board = entity.NewBoard()
	rendering := that.board.Render()
	event := entity.NewBoardEvent(entity.EventReset, that.board)
	that.stamp(event)
	that.mu.Unlock()

	that.logger.Debug("board reset")
	that.metrics.BoardReset()
	that.publish(ctx, event, rendering)

	return rendering
}

// Randomize fills every cell from the board generator. The result is always a win or a draw.
func (that *BoardManager) Randomize(ctx context.Context) string {
	that.mu.Lock()
	that.board.Randomize()
	rendering := that.board.Render()
	result := that.board.Result()
	event := entity.NewBoardEvent(entity.EventRandomize, that.board)
	that.stamp(event)
	that.mu.Unlock()

	that.logger.Debug("board randomized", "result", result.String())
	that.metrics.BoardRandomized(result)
	that.publish(ctx, event, rendering)

	return rendering
}

// History returns up to limit journal events, newest first.
func (that *BoardManager) History(ctx context.Context, limit int64) ([]*entity.BoardEvent, error) {
	events, err := that.journal.Recent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to read board history: %w", err)
	}

	return events, nil
}

// stamp must be called with the write lock held.
func (that *BoardManager) stamp(event *entity.BoardEvent) {
	that.seq++
	event.Seq = that.seq
}

// publish waits for every earlier event to be published, then journals and broadcasts this one.
// The journal write is detached from ctx so a client that hangs up does not lose the event.
func (that *BoardManager) publish(ctx context.Context, event *entity.BoardEvent, rendering string) {
	log := that.logger.With("method", "publish", "seq", event.Seq)

	that.publishMu.Lock()
	defer that.publishMu.Unlock()

	for that.published+1 != event.Seq {
		that.publishCond.Wait()
	}

	journalCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), journalTimeout)
	defer cancel()

	if err := that.journal.Append(journalCtx, event); err != nil {
		log.Error("failed to append board event", "kind", event.Kind, "error", err)
	}

	that.broadcaster.Broadcast(rendering)

	that.published = event.Seq
	that.publishCond.Broadcast()
}
