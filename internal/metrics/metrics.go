package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	EchoRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "superservice", Name: "echo_requests_total", Help: "Echo requests by outcome."},
		[]string{"outcome"},
	)
	ProfileWrites = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "superservice", Name: "profile_writes_total", Help: "Profile writes triggered by user creation, by result."},
		[]string{"result"},
	)
	Heartbeats = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "superservice", Name: "heartbeats_total", Help: "Heartbeats emitted, by trigger."},
		[]string{"trigger"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(EchoRequests)
	reg.MustRegister(ProfileWrites)
	reg.MustRegister(Heartbeats)
}
