package pace

import (
	"context"
	"time"
)

var _ Pacer = (*FixedPacer)(nil)

// FixedPacer waits a fixed interval, randomly stretched or shrunk by up to jitter, between
// iterations.
type FixedPacer struct {
	waited   bool
	jitter   float64
	interval time.Duration
}

func Fixed(interval time.Duration) *FixedPacer {
	if interval < 0 {
		panic("interval can't be < 0")
	}
	return &FixedPacer{
		interval: interval,
		jitter:   0.1,
	}
}

func (p *FixedPacer) WithJitter(jitter float64) *FixedPacer {
	if jitter < 0 {
		panic("jitter can't be < 0")
	}
	if jitter >= 1 {
		panic("jitter can't be >= 1")
	}
	p.jitter = jitter
	return p
}

func (p *FixedPacer) Wait(ctx context.Context) bool {
	if !p.waited {
		p.waited = true
		return ctx.Err() == nil
	}
	return wait(ctx, p.interval, p.jitter)
}

func (p *FixedPacer) Derive() Pacer {
	return Fixed(p.interval).WithJitter(p.jitter)
}
