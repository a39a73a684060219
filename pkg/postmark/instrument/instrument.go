// Package instrument decorates a [postmark.Transport] with prometheus
// metrics. The decorator only observes: it never retries, rewrites, or
// fails a call.
package instrument

import (
	"context"
	"strconv"
	"time"

	"github.com/postmarkgo/postmark/pkg/postmark"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// CodeTransportError is the code label of calls failing before
// obtaining a response.
const CodeTransportError = "error"

// summaryObjectives returns the summary objectives for the duration summary.
func summaryObjectives() map[float64]float64 {
	return map[float64]float64{
		0.5:  0.010, // 0.490 <= φ <= 0.510
		0.9:  0.010, // 0.899 <= φ <= 0.901
		0.99: 0.001, // 0.989 <= φ <= 0.991
	}
}

// Transport is a [postmark.Transport] collecting metrics.
type Transport struct {
	inner postmark.Transport

	// requestsCount counts the calls by method and status code.
	requestsCount *prometheus.CounterVec

	// requestsInflight gauges the calls currently inflight.
	requestsInflight prometheus.Gauge

	// durationSeconds summarizes the duration of the calls.
	durationSeconds prometheus.Summary
}

var _ postmark.Transport = &Transport{}

// NewTransport wraps inner and registers the metrics with reg. Use
// [prometheus.DefaultRegisterer] to export them along with the
// process metrics. Registering twice with the same reg panics.
func NewTransport(inner postmark.Transport, reg prometheus.Registerer) *Transport {
	factory := promauto.With(reg)
	return &Transport{
		inner: inner,
		requestsCount: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "postmark_client_requests_count",
			Help: "Total number of Postmark API calls",
		}, []string{"method", "code"}),
		requestsInflight: factory.NewGauge(prometheus.GaugeOpts{
			Name: "postmark_client_requests_inflight_gauge",
			Help: "The number of Postmark API calls currently inflight",
		}),
		durationSeconds: factory.NewSummary(prometheus.SummaryOpts{
			Name:       "postmark_client_request_duration_seconds",
			Help:       "Summarizes the time to complete a Postmark API call (in seconds)",
			Objectives: summaryObjectives(),
		}),
	}
}

// Execute implements postmark.Transport.
func (txp *Transport) Execute(ctx context.Context, req *postmark.WireRequest) (*postmark.WireResponse, error) {
	txp.requestsInflight.Inc()
	defer txp.requestsInflight.Dec()
	t0 := time.Now()
	resp, err := txp.inner.Execute(ctx, req)
	txp.durationSeconds.Observe(time.Since(t0).Seconds())
	code := CodeTransportError
	if err == nil && resp != nil {
		code = strconv.Itoa(resp.StatusCode)
	}
	txp.requestsCount.WithLabelValues(req.Method, code).Inc()
	return resp, err
}
