package handoff

type Option = func(*config)

// WithPrometheus makes the buffer report its metrics as configured by [Prometheus].
func WithPrometheus(prometheus *PrometheusConfig) Option {
	if prometheus == nil {
		panic("prometheus can't be nil")
	}
	return func(c *config) {
		c.prometheus = prometheus
	}
}

// WithQueueSize sets the initial number of slots of an unbounded buffer. Other policies
// ignore it.
func WithQueueSize(size int) Option {
	if size < 0 {
		panic("queue size can't be < 0")
	}
	return func(c *config) {
		c.queueSize = size
	}
}

type config struct {
	prometheus *PrometheusConfig
	queueSize  int
}

func newConfig(options ...Option) *config {
	options = append([]Option{
		WithPrometheus(Prometheus(nil)),
		WithQueueSize(0),
	}, options...)

	cfg := config{}
	for _, opt := range options {
		opt(&cfg)
	}

	return &cfg
}
