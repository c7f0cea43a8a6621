package pace_test

import (
	"context"
	"testing"
	"testing/synctest"
	"time"

	"github.com/teenjuna/handoff/internal/testing/require"
	"github.com/teenjuna/handoff/pace"
)

const (
	// Amount of time allowed for measurment error.
	EPSILON = time.Microsecond * 10
)

func TestImmediate(t *testing.T) {
	run(t, "Never waits", func(t *testing.T) {
		p := pace.Immediate()
		tt := time.Now()
		for range 100 {
			require.Equal(t, p.Wait(t.Context()), true)
		}
		require.Equal(t, time.Since(tt), time.Duration(0))
	})

	run(t, "Stops on cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		cancel()
		require.Equal(t, pace.Immediate().Wait(ctx), false)
		require.NotNil(t, pace.Immediate().Derive())
	})
}

func TestFixed(t *testing.T) {
	run(t, "With invalid interval", func(t *testing.T) {
		require.PanicWithError(t, "interval can't be < 0", func() {
			_ = pace.Fixed(-1)
		})
	})

	run(t, "With invalid jitter", func(t *testing.T) {
		require.PanicWithError(t, "jitter can't be < 0", func() {
			_ = pace.Fixed(time.Second).WithJitter(-0.1)
		})
		require.PanicWithError(t, "jitter can't be >= 1", func() {
			_ = pace.Fixed(time.Second).WithJitter(1)
		})
	})

	run(t, "Without jitter", func(t *testing.T) {
		const interval = time.Second
		p := pace.Fixed(interval).WithJitter(0)
		delay := delayFunc(t, 0)

		delay(0, func() { require.Equal(t, p.Wait(t.Context()), true) })
		for range 10 {
			delay(interval, func() { require.Equal(t, p.Wait(t.Context()), true) })
		}
	})

	run(t, "With jitter", func(t *testing.T) {
		const (
			interval = time.Second
			jitter   = 0.3
		)
		p := pace.Fixed(interval).WithJitter(jitter)
		delay := delayFunc(t, jitter)

		delay(0, func() { require.Equal(t, p.Wait(t.Context()), true) })
		for range 100 {
			delay(interval, func() { require.Equal(t, p.Wait(t.Context()), true) })
		}
	})

	run(t, "Derived pacer starts over", func(t *testing.T) {
		const interval = time.Second
		p := pace.Fixed(interval).WithJitter(0)
		delay := delayFunc(t, 0)

		delay(0, func() { require.Equal(t, p.Wait(t.Context()), true) })
		d := p.Derive()
		delay(0, func() { require.Equal(t, d.Wait(t.Context()), true) })
		delay(interval, func() { require.Equal(t, d.Wait(t.Context()), true) })
	})

	run(t, "Stops on cancelled context", func(t *testing.T) {
		p := pace.Fixed(time.Hour)
		require.Equal(t, p.Wait(t.Context()), true)

		ctx, cancel := context.WithCancel(t.Context())
		time.AfterFunc(time.Minute, cancel)

		tt := time.Now()
		require.Equal(t, p.Wait(ctx), false)
		require.Equal(t, time.Since(tt), time.Minute)
	})
}

func run(t *testing.T, name string, fn func(t *testing.T)) {
	t.Run(name, func(t *testing.T) {
		t.Helper()
		t.Parallel()
		synctest.Test(t, func(t *testing.T) {
			fn(t)
		})
	})
}

func delayFunc(t *testing.T, jitter float64) func(delay time.Duration, fn func()) {
	t.Helper()
	return func(delay time.Duration, fn func()) {
		delta := time.Duration(float64(delay) * jitter)
		minDelay := (delay - delta).Truncate(EPSILON)
		maxDelay := (delay + delta + EPSILON).Truncate(EPSILON)

		tt := time.Now()
		fn()
		ts := time.Since(tt).Truncate(EPSILON)

		if ts < minDelay {
			t.Fatalf("delay %s < min delay %s", ts, minDelay)
		}

		if ts > maxDelay {
			t.Fatalf("delay %s > max delay %s", ts, maxDelay)
		}
	}
}
