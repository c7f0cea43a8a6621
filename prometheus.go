package handoff

import (
	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusConfig is a config of the Prometheus metrics provided by the buffer.
//
// An instance can be created only by the [Prometheus] function. The zero value is invalid.
type PrometheusConfig struct {
	// Namespace of the metrics.
	Namespace string
	// Subsystem of the metrics.
	Subsystem string
	// Options for the held items gauge.
	Items prometheus.GaugeOpts
	// Options for the accepted puts counter.
	Puts prometheus.CounterOpts
	// Options for the successful gets counter.
	Gets prometheus.CounterOpts
	// Options for the cancelled operations counter.
	Cancellations prometheus.CounterOpts
	// Options for the blocked time histogram.
	WaitSeconds prometheus.HistogramOpts

	registerer prometheus.Registerer
}

// Prometheus returns a [PrometheusConfig] with the provided registerer. If registerer is nil,
// metrics will not be registered. Many default parameters can be configured by passing
// configuration functions.
func Prometheus(
	registerer prometheus.Registerer,
	configFuncs ...func(c *PrometheusConfig),
) *PrometheusConfig {
	const (
		namespace = "handoff"
		subsystem = "buffer"
	)

	c := PrometheusConfig{
		registerer: registerer,
		Namespace:  namespace,
		Subsystem:  subsystem,
		Items: prometheus.GaugeOpts{
			Name: "items",
			Help: "Number of items held by the buffer",
		},
		Puts: prometheus.CounterOpts{
			Name: "puts",
			Help: "Number of items accepted by the buffer",
		},
		Gets: prometheus.CounterOpts{
			Name: "gets",
			Help: "Number of items taken from the buffer",
		},
		Cancellations: prometheus.CounterOpts{
			Name: "cancellations",
			Help: "Number of blocked operations aborted by cancellation",
		},
		WaitSeconds: prometheus.HistogramOpts{
			Name:    "wait_seconds",
			Help:    "Time operations spent blocked on the buffer",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
		},
	}

	for _, cf := range configFuncs {
		if cf != nil {
			cf(&c)
		}
	}

	return &c
}

func (c *PrometheusConfig) metrics() *metrics {
	c.Items.Namespace, c.Items.Subsystem = c.Namespace, c.Subsystem
	c.Puts.Namespace, c.Puts.Subsystem = c.Namespace, c.Subsystem
	c.Gets.Namespace, c.Gets.Subsystem = c.Namespace, c.Subsystem
	c.Cancellations.Namespace, c.Cancellations.Subsystem = c.Namespace, c.Subsystem
	c.WaitSeconds.Namespace, c.WaitSeconds.Subsystem = c.Namespace, c.Subsystem

	m := metrics{
		items:         prometheus.NewGauge(c.Items),
		puts:          prometheus.NewCounter(c.Puts),
		gets:          prometheus.NewCounter(c.Gets),
		cancellations: prometheus.NewCounterVec(c.Cancellations, []string{"op"}),
		waitSeconds:   prometheus.NewHistogramVec(c.WaitSeconds, []string{"op"}),
	}

	if c.registerer != nil {
		c.registerer.MustRegister(
			m.items,
			m.puts,
			m.gets,
			m.cancellations,
			m.waitSeconds,
		)
	}

	return &m
}

type metrics struct {
	items         prometheus.Gauge
	puts          prometheus.Counter
	gets          prometheus.Counter
	cancellations *prometheus.CounterVec
	waitSeconds   *prometheus.HistogramVec
}

const (
	opPut = "put"
	opGet = "get"
)
