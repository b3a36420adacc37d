package api

import (
	"errors"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "inaturalist_client"

// metrics records per-request counters and latency. A nil *metrics is a
// no-op.
type metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func newMetrics(reg prometheus.Registerer) (*metrics, error) {
	if reg == nil {
		return nil, nil
	}

	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "requests_total",
		Help:      "Requests dispatched, by method, call kind and status code.",
	}, []string{"method", "kind", "code"})

	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: metricsNamespace,
		Name:      "request_duration_seconds",
		Help:      "Time from dispatch to response headers.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "kind"})

	var err error
	if requests, err = registerOrReuse(reg, requests); err != nil {
		return nil, err
	}
	if duration, err = registerOrReuse(reg, duration); err != nil {
		return nil, err
	}
	return &metrics{requests: requests, duration: duration}, nil
}

// registerOrReuse lets several clients share one registerer.
func registerOrReuse[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// observe records one dispatch. statusCode is 0 for transport failures.
func (m *metrics) observe(method string, kind callKind, statusCode int, elapsed time.Duration) {
	if m == nil {
		return
	}
	code := "error"
	if statusCode > 0 {
		code = strconv.Itoa(statusCode)
	}
	m.requests.WithLabelValues(method, string(kind), code).Inc()
	m.duration.WithLabelValues(method, string(kind)).Observe(elapsed.Seconds())
}
