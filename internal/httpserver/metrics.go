// internal/httpserver/metrics.go
//
// Prometheus collectors for the server, registered on the default registry
// and exposed at /metrics.

package httpserver

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	modeClassic = "classic"
	modeDaily   = "daily"

	resultAccepted = "accepted"
	resultRejected = "rejected"
)

var (
	// roundsStarted counts new rounds by mode
	roundsStarted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wordle_rounds_started_total",
		Help: "Rounds started by mode",
	}, []string{"mode"})

	// roundsFinished counts finished rounds by mode and outcome (won|lost)
	roundsFinished = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wordle_rounds_finished_total",
		Help: "Rounds finished by mode and outcome",
	}, []string{"mode", "outcome"})

	// guessesTotal counts guesses by whether the round accepted them
	guessesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wordle_guesses_total",
		Help: "Guesses submitted by result",
	}, []string{"result"})

	activeSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "wordle_active_sessions",
		Help: "Classic game sessions currently held in memory",
	})
)
