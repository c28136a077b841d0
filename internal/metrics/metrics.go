package metrics

import "github.com/prometheus/client_golang/prometheus"

const namespace = "calltrack"

type Counter interface {
	Inc(labels ...string)
}

type Counters struct {
	// LogsReceived counts stored call records by service and status class.
	LogsReceived Counter

	// Requests counts API operations by transport, operation and outcome.
	Requests Counter

	// BrokerPublished counts record publications by outcome.
	BrokerPublished Counter
}

type PrometheusCounter struct {
	counter *prometheus.CounterVec
}

func newCounterVec(name, help string, labels []string) *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      name,
		Help:      help,
	}, labels)
}

func NewPrometheusCounter(reg prometheus.Registerer, name, help string, labels []string) *PrometheusCounter {
	c := &PrometheusCounter{
		counter: newCounterVec(name, help, labels),
	}
	reg.MustRegister(c.counter)
	return c
}

func (p *PrometheusCounter) Inc(labels ...string) {
	p.counter.WithLabelValues(labels...).Inc()
}

// NewCounters registers the domain counters in reg. The server passes the
// default registry served on /metrics.
func NewCounters(reg prometheus.Registerer) *Counters {
	return &Counters{
		LogsReceived: NewPrometheusCounter(reg,
			"logs_received_total",
			"Number of stored API call records.",
			[]string{"service", "status_class"},
		),
		Requests: NewPrometheusCounter(reg,
			"api_requests_total",
			"Number of API operations handled.",
			[]string{"transport", "operation", "outcome"},
		),
		BrokerPublished: NewPrometheusCounter(reg,
			"broker_published_total",
			"Number of call records published to the broker.",
			[]string{"outcome"},
		),
	}
}
