// Package metrics holds the Prometheus collectors of the events API
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "ntlango"

// Collection is the set of collectors.  A nil *Collection is valid and
// records nothing, which keeps tests free of registry plumbing.
type Collection struct {
	HTTPRequests    *prometheus.CounterVec
	HTTPDuration    *prometheus.HistogramVec
	StoreDuration   *prometheus.HistogramVec
	LoaderBatchSize *prometheus.HistogramVec
	RateLimited     prometheus.Counter
}

// New creates the collectors and registers them with reg
func New(reg prometheus.Registerer) *Collection {
	f := promauto.With(reg)
	return &Collection{
		HTTPRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Number of HTTP requests by path and status code.",
		}, []string{"path", "code"}),
		HTTPDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Time taken to handle HTTP requests.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"path"}),
		StoreDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "dao_operation_duration_seconds",
			Help:      "Time taken by MongoDB round trips.",
			Buckets:   []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}, []string{"collection", "operation", "outcome"}),
		LoaderBatchSize: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "loader_batch_keys",
			Help:      "Number of keys in each batched load.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 8),
		}, []string{"loader"}),
		RateLimited: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_limited_requests_total",
			Help:      "Number of requests rejected by the rate limiter.",
		}),
	}
}

// ObserveStore records the duration of a DAO operation since start
func (c *Collection) ObserveStore(collection, operation string, start time.Time, err error) {
	if c == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	c.StoreDuration.WithLabelValues(collection, operation, outcome).Observe(time.Since(start).Seconds())
}

// ObserveBatch records the number of keys of one batched load
func (c *Collection) ObserveBatch(loader string, keys int) {
	if c == nil {
		return
	}
	c.LoaderBatchSize.WithLabelValues(loader).Observe(float64(keys))
}

// ObserveRequest records a finished HTTP request
func (c *Collection) ObserveRequest(path, code string, start time.Time) {
	if c == nil {
		return
	}
	c.HTTPRequests.WithLabelValues(path, code).Inc()
	c.HTTPDuration.WithLabelValues(path).Observe(time.Since(start).Seconds())
}

// IncRateLimited counts a rejected request
func (c *Collection) IncRateLimited() {
	if c == nil {
		return
	}
	c.RateLimited.Inc()
}
