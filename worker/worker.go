// Package worker drives a shared buffer with producers and consumers that each make a fixed
// number of calls and then stop.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/teenjuna/handoff"
	"github.com/teenjuna/handoff/pace"
)

// Putter is the producer side of a buffer.
type Putter interface {
	Put(ctx context.Context, item *handoff.Item) error
}

// Getter is the consumer side of a buffer.
type Getter interface {
	Get(ctx context.Context) (*handoff.Item, error)
}

// Buffer is what a group of producers and consumers share.
type Buffer interface {
	Putter
	Getter
}

var _ Buffer = (*handoff.Buffer[*handoff.Item])(nil)

// Producer puts a fixed number of items, tagged with its identity and increasing sequence
// numbers, into a buffer.
type Producer struct {
	id     string
	items  int
	buffer Putter
	pacer  pace.Pacer
	logger *slog.Logger
}

func NewProducer(id string, items int, buffer Putter, options ...Option) *Producer {
	if items < 0 {
		panic("items can't be < 0")
	}
	cfg := newConfig(options...)
	return &Producer{
		id:     id,
		items:  items,
		buffer: buffer,
		pacer:  cfg.pacer.Derive(),
		logger: cfg.logger.With("worker", id),
	}
}

// Run puts the items and returns how many were accepted.
//
// Cancellation is a clean stop: a cancelled put or a done context between items ends the run
// with a nil error and fewer items than configured.
func (p *Producer) Run(ctx context.Context) (int, error) {
	p.logger.InfoContext(ctx, "producer started", "items", p.items)

	var produced int
	for seq := range p.items {
		if !p.pacer.Wait(ctx) {
			break
		}

		item := handoff.NewItem(p.id, seq)
		if err := p.buffer.Put(ctx, item); err != nil {
			if errors.Is(err, handoff.ErrCancelled) {
				break
			}
			return produced, fmt.Errorf("producer %s: put: %w", p.id, err)
		}

		produced++
		p.logger.DebugContext(ctx, "put item", "seq", seq)
	}

	p.logger.InfoContext(ctx, "producer stopped", "produced", produced, "cancelled", produced < p.items)
	return produced, nil
}

// Consumer takes a fixed number of items from a buffer and hands each to a [ProcessFunc].
type Consumer struct {
	id      string
	items   int
	buffer  Getter
	pacer   pace.Pacer
	process ProcessFunc
	logger  *slog.Logger
}

func NewConsumer(id string, items int, buffer Getter, options ...Option) *Consumer {
	if items < 0 {
		panic("items can't be < 0")
	}
	cfg := newConfig(options...)
	return &Consumer{
		id:      id,
		items:   items,
		buffer:  buffer,
		pacer:   cfg.pacer.Derive(),
		process: cfg.process,
		logger:  cfg.logger.With("worker", id),
	}
}

// Run takes the items and returns how many were processed.
//
// Cancellation is a clean stop, as for [Producer.Run]. A process error stops the consumer and
// is returned; the item it failed on is not counted.
func (c *Consumer) Run(ctx context.Context) (int, error) {
	c.logger.InfoContext(ctx, "consumer started", "items", c.items)

	var consumed int
	for range c.items {
		if !c.pacer.Wait(ctx) {
			break
		}

		item, err := c.buffer.Get(ctx)
		if err != nil {
			if errors.Is(err, handoff.ErrCancelled) {
				break
			}
			return consumed, fmt.Errorf("consumer %s: get: %w", c.id, err)
		}

		c.logger.DebugContext(ctx, "got item", "item", item.String())
		if err := c.process(ctx, c.id, item); err != nil {
			return consumed, fmt.Errorf("consumer %s: process %s: %w", c.id, item, err)
		}
		consumed++
	}

	c.logger.InfoContext(ctx, "consumer stopped", "consumed", consumed, "cancelled", consumed < c.items)
	return consumed, nil
}
