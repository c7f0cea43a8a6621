package worker

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
)

// Report summarizes a finished [Run].
type Report struct {
	// Produced is the number of items accepted by the buffer.
	Produced int
	// Consumed is the number of items taken from the buffer and processed.
	Consumed int
	// Stopped is the number of workers that ended before making all of their calls.
	Stopped int
	// Elapsed is the wall time of the run.
	Elapsed time.Duration
}

// Run starts producers "P1".."Pn" and consumers "C1".."Cm" against the buffer and waits until
// all of them finish.
//
// The items of all producers are split between the consumers as evenly as possible, so a run
// whose context is never cancelled always ends with every item consumed. The first process
// error cancels the remaining workers and is returned together with the report.
func Run(ctx context.Context, buffer Buffer, options ...Option) (*Report, error) {
	cfg := newConfig(options...)

	var (
		started         = time.Now()
		produced        = new(atomic.Int64)
		consumed        = new(atomic.Int64)
		stopped         = new(atomic.Int64)
		group, groupCtx = errgroup.WithContext(ctx)
		total           = cfg.producers * cfg.items
	)

	cfg.logger.InfoContext(ctx, "run started",
		"producers", cfg.producers,
		"consumers", cfg.consumers,
		"items", total,
	)

	for i := range cfg.producers {
		producer := NewProducer(fmt.Sprintf("P%d", i+1), cfg.items, buffer, options...)
		group.Go(func() error {
			n, err := producer.Run(groupCtx)
			produced.Add(int64(n))
			if n < cfg.items {
				stopped.Add(1)
			}
			return err
		})
	}

	for i, share := range split(total, cfg.consumers) {
		consumer := NewConsumer(fmt.Sprintf("C%d", i+1), share, buffer, options...)
		group.Go(func() error {
			n, err := consumer.Run(groupCtx)
			consumed.Add(int64(n))
			if n < share {
				stopped.Add(1)
			}
			return err
		})
	}

	err := group.Wait()

	report := Report{
		Produced: int(produced.Load()),
		Consumed: int(consumed.Load()),
		Stopped:  int(stopped.Load()),
		Elapsed:  time.Since(started),
	}

	cfg.logger.InfoContext(ctx, "run finished",
		"produced", report.Produced,
		"consumed", report.Consumed,
		"stopped", report.Stopped,
		"elapsed", report.Elapsed,
	)

	return &report, err
}

// split divides total into n shares that differ by at most one, larger shares first.
func split(total, n int) []int {
	shares := make([]int, n)
	for i := range shares {
		shares[i] = total / n
		if i < total%n {
			shares[i]++
		}
	}
	return shares
}
