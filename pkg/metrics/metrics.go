package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "vibetorch", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "vibetorch", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
	SessionStoreOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "vibetorch", Name: "session_store_ops_total", Help: "Session store operations by backend, operation and result."},
		[]string{"backend", "op", "result"},
	)
	GithubCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "vibetorch", Name: "github_calls_total", Help: "Outbound GitHub API calls by endpoint and result."},
		[]string{"endpoint", "result"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
	reg.MustRegister(SessionStoreOps)
	reg.MustRegister(GithubCalls)
}
