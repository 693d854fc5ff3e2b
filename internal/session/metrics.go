package session

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	SessionsActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "buttons_sessions_active",
			Help: "Open websocket game sessions",
		},
	)
	RoundsRevealed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "buttons_rounds_revealed_total",
			Help: "Rounds whose presentation finished and reached the reveal",
		},
		[]string{"mode"},
	)
	RoundsFinished = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "buttons_rounds_finished_total",
			Help: "Rounds that reached a win or a loss",
		},
		[]string{"mode", "result"},
	)
	RoundButtons = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "buttons_round_buttons",
			Help:    "Button count per revealed round",
			Buckets: []float64{1, 2, 3, 5, 8, 13, 21, 34, 55, 89},
		},
	)
)

func init() {
	prometheus.MustRegister(SessionsActive)
	prometheus.MustRegister(RoundsRevealed)
	prometheus.MustRegister(RoundsFinished)
	prometheus.MustRegister(RoundButtons)
}
