package usecase

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/rocketscienceinc/cookiemilk-backend/internal/entity"
)

type mockJournal struct {
	mock.Mock
}

func (that *mockJournal) Append(ctx context.Context, event *entity.BoardEvent) error {
	args := that.Called(ctx, event)
	return args.Error(0)
}

func (that *mockJournal) Recent(ctx context.Context, limit int64) ([]*entity.BoardEvent, error) {
	args := that.Called(ctx, limit)
	events, _ := args.Get(0).([]*entity.BoardEvent)
	return events, args.Error(1)
}

type mockBroadcaster struct {
	mock.Mock
}

func (that *mockBroadcaster) Broadcast(rendering string) {
	that.Called(rendering)
}

type countingMetrics struct {
	mu         sync.Mutex
	accepted   int
	rejected   []error
	resets     int
	randomized int
}

func (that *countingMetrics) MoveAccepted(entity.Result) {
	that.mu.Lock()
	defer that.mu.Unlock()
	that.accepted++
}

func (that *countingMetrics) MoveRejected(err error) {
	that.mu.Lock()
	defer that.mu.Unlock()
	that.rejected = append(that.rejected, err)
}

func (that *countingMetrics) BoardReset() {
	that.mu.Lock()
	defer that.mu.Unlock()
	that.resets++
}

func (that *countingMetrics) BoardRandomized(entity.Result) {
	that.mu.Lock()
	defer that.mu.Unlock()
	that.randomized++
}

// recordingBroadcaster keeps every frame in the order it was broadcast.
type recordingBroadcaster struct {
	mu     sync.Mutex
	frames []string
}

func (that *recordingBroadcaster) Broadcast(rendering string) {
	that.mu.Lock()
	defer that.mu.Unlock()
	that.frames = append(that.frames, rendering)
}

func (that *recordingBroadcaster) Frames() []string {
	that.mu.Lock()
	defer that.mu.Unlock()
	return append([]string(nil), that.frames...)
}
