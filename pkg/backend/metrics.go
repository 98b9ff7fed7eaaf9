package backend

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	mutationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "lenskeep",
		Subsystem: "backend",
		Name:      "mutations_total",
		Help:      "Privileged mutations by operation and outcome.",
	}, []string{"op", "outcome"})

	invitationsSweptTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "lenskeep",
		Subsystem: "backend",
		Name:      "invitations_swept_total",
		Help:      "Pending invitations transitioned to expired by the sweep.",
	})
)

const (
	outcomeOK           = "ok"
	outcomeUnauthorized = "unauthorized"
	outcomeError        = "error"
)

func observe(op string, err error) {
	switch {
	case err == nil:
		mutationsTotal.WithLabelValues(op, outcomeOK).Inc()
	case isUnauthorized(err):
		mutationsTotal.WithLabelValues(op, outcomeUnauthorized).Inc()
	default:
		mutationsTotal.WithLabelValues(op, outcomeError).Inc()
	}
}
