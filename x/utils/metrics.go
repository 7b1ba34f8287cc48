package utils

import (
	"time"

	custody "github.com/iov-one/custody"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics is a decorator that counts processed transactions and measures
// how long each of them took, labeled by the message path.
type Metrics struct {
	total    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

var _ custody.Decorator = (*Metrics)(nil)

// NewMetrics creates a Metrics decorator and registers its collectors with
// the given registerer. Use prometheus.DefaultRegisterer in the daemon and a
// fresh prometheus.NewRegistry() in tests.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	total := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "custody",
		Name:      "tx_total",
		Help:      "Number of processed transactions.",
	}, []string{"path", "phase", "result"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "custody",
		Name:      "tx_duration_seconds",
		Help:      "Time spent processing a transaction.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"path", "phase"})

	for _, c := range []prometheus.Collector{total, duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return &Metrics{total: total, duration: duration}, nil
}

// Check observes a check call.
func (m *Metrics) Check(ctx custody.Context, store custody.KVStore, tx custody.Tx, next custody.Checker) (*custody.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, store, tx)
	m.observe(custody.GetPath(tx), "check", start, err)
	return res, err
}

// Deliver observes a deliver call.
func (m *Metrics) Deliver(ctx custody.Context, store custody.KVStore, tx custody.Tx, next custody.Deliverer) (*custody.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, store, tx)
	m.observe(custody.GetPath(tx), "deliver", start, err)
	return res, err
}

func (m *Metrics) observe(path, phase string, start time.Time, err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	m.total.WithLabelValues(path, phase, result).Inc()
	m.duration.WithLabelValues(path, phase).Observe(time.Since(start).Seconds())
}
