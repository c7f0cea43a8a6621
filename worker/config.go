package worker

import (
	"context"
	"log/slog"

	"github.com/teenjuna/handoff"
	"github.com/teenjuna/handoff/pace"
)

// ProcessFunc handles an item taken from the buffer by a consumer. A returned error stops the
// consumer and, inside [Run], the whole group.
type ProcessFunc = func(ctx context.Context, consumer string, item *handoff.Item) error

type Option = func(*config)

// WithProducers sets the number of producers started by [Run].
func WithProducers(producers int) Option {
	if producers < 1 {
		panic("producers can't be < 1")
	}
	return func(c *config) {
		c.producers = producers
	}
}

// WithConsumers sets the number of consumers started by [Run].
func WithConsumers(consumers int) Option {
	if consumers < 1 {
		panic("consumers can't be < 1")
	}
	return func(c *config) {
		c.consumers = consumers
	}
}

// WithItems sets the number of items each producer started by [Run] puts.
func WithItems(items int) Option {
	if items < 0 {
		panic("items can't be < 0")
	}
	return func(c *config) {
		c.items = items
	}
}

// WithPacer sets the pacer every worker derives its own instance from.
func WithPacer(pacer pace.Pacer) Option {
	if pacer == nil {
		panic("pacer can't be nil")
	}
	return func(c *config) {
		c.pacer = pacer
	}
}

// WithProcess sets the function consumers hand their items to.
func WithProcess(process ProcessFunc) Option {
	if process == nil {
		panic("process can't be nil")
	}
	return func(c *config) {
		c.process = process
	}
}

func WithLogger(logger *slog.Logger) Option {
	if logger == nil {
		panic("logger can't be nil")
	}
	return func(c *config) {
		c.logger = logger
	}
}

type config struct {
	producers int
	consumers int
	items     int
	pacer     pace.Pacer
	process   ProcessFunc
	logger    *slog.Logger
}

func newConfig(options ...Option) *config {
	options = append([]Option{
		WithProducers(1),
		WithConsumers(1),
		WithItems(0),
		WithPacer(pace.Immediate()),
		WithLogger(slog.Default()),
	}, options...)

	cfg := config{}
	for _, opt := range options {
		opt(&cfg)
	}

	if cfg.process == nil {
		logger := cfg.logger
		cfg.process = func(ctx context.Context, consumer string, item *handoff.Item) error {
			logger.DebugContext(ctx, "processed item", "worker", consumer, "item", item.String())
			return nil
		}
	}

	return &cfg
}
