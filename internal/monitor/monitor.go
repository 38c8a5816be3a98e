package monitor

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rocketscienceinc/cookiemilk-backend/internal/apperror"
	"github.com/rocketscienceinc/cookiemilk-backend/internal/entity"
)

const (
	outcomeAccepted   = "accepted"
	outcomeGameOver   = "game_over"
	outcomeColumnFull = "column_full"
	outcomeInvalid    = "invalid"
)

type Metrics struct {
	registry *prometheus.Registry

	Moves           *prometheus.CounterVec
	Resets          prometheus.Counter
	Randomizes      prometheus.Counter
	GamesDecided    *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

// NewMetrics registers the board collectors on a private registry.
func NewMetrics(namespace string) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),

		Moves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "moves_total",
			Help:      "Placement attempts by outcome",
		}, []string{"outcome"}),
		Resets: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "resets_total",
			Help:      "Number of board resets",
		}),
		Randomizes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "randomizes_total",
			Help:      "Number of randomly filled boards",
		}),
		GamesDecided: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "games_decided_total",
			Help:      "Boards that reached a win or a draw",
		}, []string{"result"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 10),
		}, []string{"route", "code"}),
	}

	m.registry.MustRegister(
		m.Moves,
		m.Resets,
		m.Randomizes,
		m.GamesDecided,
		m.RequestDuration,
	)

	return m
}

func (that *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(that.registry, promhttp.HandlerOpts{})
}

func (that *Metrics) MoveAccepted(result entity.Result) {
	that.Moves.WithLabelValues(outcomeAccepted).Inc()
	that.observeResult(result)
}

func (that *Metrics) MoveRejected(err error) {
	switch {
	case errors.Is(err, apperror.ErrGameFinished):
		that.Moves.WithLabelValues(outcomeGameOver).Inc()
	case errors.Is(err, apperror.ErrColumnFull):
		that.Moves.WithLabelValues(outcomeColumnFull).Inc()
	default:
		that.Moves.WithLabelValues(outcomeInvalid).Inc()
	}
}

func (that *Metrics) BoardReset() {
	that.Resets.Inc()
}

func (that *Metrics) BoardRandomized(result entity.Result) {
	that.Randomizes.Inc()
	that.observeResult(result)
}

func (that *Metrics) ObserveRequest(route string, code int, duration time.Duration) {
	that.RequestDuration.WithLabelValues(route, strconv.Itoa(code)).Observe(duration.Seconds())
}

func (that *Metrics) observeResult(result entity.Result) {
	if result.IsDecided() {
		that.GamesDecided.WithLabelValues(result.String()).Inc()
	}
}
