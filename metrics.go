package apiclient

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics returns middleware recording fetch counts and latencies on reg:
//
//	apiclient_requests_total{method, outcome}
//	apiclient_request_duration_seconds{method}
//
// outcome is "ok" or "error". Calling Metrics again with the same
// registerer reuses the collectors registered first.
func Metrics(reg prometheus.Registerer) Middleware {
	requests := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "apiclient_requests_total",
		Help: "Fetches performed, by method and outcome.",
	}, []string{"method", "outcome"}))

	latency := register(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "apiclient_request_duration_seconds",
		Help:    "Fetch latency, by method.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method"}))

	return func(next Fetcher) Fetcher {
		return FetcherFunc(func(ctx context.Context, req Request) (any, error) {
			start := time.Now()
			res, err := next.Fetch(ctx, req)

			outcome := "ok"
			if err != nil {
				outcome = "error"
			}
			requests.WithLabelValues(req.Method.String(), outcome).Inc()
			latency.WithLabelValues(req.Method.String()).Observe(time.Since(start).Seconds())
			return res, err
		})
	}
}

// register registers c on reg, returning the already registered
// collector when an equal one exists.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) C {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing
			}
		}
		panic(err)
	}
	return c
}
