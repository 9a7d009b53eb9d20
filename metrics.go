package vecio

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics aggregates transfer accounting across engines. A single instance
// may be shared by several engines registered against the same registry.
type Metrics struct {
	completions *prometheus.CounterVec
	bytes       *prometheus.CounterVec
	shorts      prometheus.Counter
	errors      prometheus.Counter
	batchSize   prometheus.Histogram
}

// NewMetrics registers the engine collectors with reg under namespace.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		completions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "io_completions_total",
			Help:      "Requests resolved without error, by direction.",
		}, []string{"dir"}),
		bytes: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "io_bytes_total",
			Help:      "Bytes transferred, by direction.",
		}, []string{"dir"}),
		shorts: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "io_short_transfers_total",
			Help:      "Requests resolved with a nonzero residual.",
		}),
		errors: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "io_errors_total",
			Help:      "Requests resolved with an error.",
		}),
		batchSize: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "io_batch_size",
			Help:      "Requests merged into one committed batch.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 8),
		}),
	}
}

func (m *Metrics) observe(req *Request) {
	if req.Err != nil {
		m.errors.Inc()
		return
	}
	dir := req.Dir.String()
	m.completions.WithLabelValues(dir).Inc()
	if req.Dir != DirSync {
		m.bytes.WithLabelValues(dir).Add(float64(len(req.Buf) - req.Resid))
		if req.Resid > 0 {
			m.shorts.Inc()
		}
	}
}

func (m *Metrics) observeBatch(queued int) {
	m.batchSize.Observe(float64(queued))
}
