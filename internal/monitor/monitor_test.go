package monitor

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/cookiemilk-backend/internal/apperror"
	"github.com/rocketscienceinc/cookiemilk-backend/internal/entity"
)

func TestMetrics_Moves(t *testing.T) {
	// Given: fresh metrics
	metrics := NewMetrics("test")

	// When: moves with every outcome are recorded
	metrics.MoveAccepted(entity.ResultInProgress)
	metrics.MoveAccepted(entity.ResultCookie)
	metrics.MoveRejected(apperror.ErrGameFinished)
	metrics.MoveRejected(fmt.Errorf("wrapped: %w", apperror.ErrColumnFull))
	metrics.MoveRejected(apperror.ErrInvalidColumn)

	// Then: each outcome is counted and only the decided move counts as a finished game
	assert.InDelta(t, 2, testutil.ToFloat64(metrics.Moves.WithLabelValues(outcomeAccepted)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.Moves.WithLabelValues(outcomeGameOver)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.Moves.WithLabelValues(outcomeColumnFull)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.Moves.WithLabelValues(outcomeInvalid)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.GamesDecided.WithLabelValues("cookie")), 0)
}

func TestMetrics_ResetAndRandomize(t *testing.T) {
	// Given: fresh metrics
	metrics := NewMetrics("test")

	// When: the board is reset once and randomized into a draw twice
	metrics.BoardReset()
	metrics.BoardRandomized(entity.ResultDraw)
	metrics.BoardRandomized(entity.ResultDraw)

	// Then: the counters follow
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.Resets), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(metrics.Randomizes), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(metrics.GamesDecided.WithLabelValues("draw")), 0)
}

func TestMetrics_Handler(t *testing.T) {
	// Given: metrics with one observed request
	metrics := NewMetrics("test")
	metrics.ObserveRequest("/12/board", http.StatusOK, 3*time.Millisecond)
	metrics.BoardReset()

	// When: scraping the handler
	recorder := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	// Then: the exposition contains the registered series
	require.Equal(t, http.StatusOK, recorder.Code)
	body, err := io.ReadAll(recorder.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "test_resets_total 1")
	assert.Contains(t, string(body), `test_http_request_duration_seconds_count{code="200",route="/12/board"} 1`)
}
