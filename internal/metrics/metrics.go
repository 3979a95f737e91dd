package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Label values for the method dimension.
const (
	MethodPassword  = "password"
	MethodFederated = "federated"
)

// Label values for the outcome dimension.
const (
	OutcomeOK       = "ok"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

var (
	Registrations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "welly",
		Subsystem: "auth",
		Name:      "registrations_total",
		Help:      "Password registrations by outcome.",
	}, []string{"outcome"})

	Logins = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "welly",
		Subsystem: "auth",
		Name:      "logins_total",
		Help:      "Login attempts by method and outcome.",
	}, []string{"method", "outcome"})

	TokenVerifications = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "welly",
		Subsystem: "auth",
		Name:      "token_verifications_total",
		Help:      "Session token verifications at the gate by outcome.",
	}, []string{"outcome"})
)
