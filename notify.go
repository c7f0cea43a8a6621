package handoff

// waiters wakes every goroutine blocked on one side of a buffer at once.
//
// All methods must be called with the buffer lock held. A waiter takes the channel returned by
// wait, releases the lock and blocks on it together with its context; broadcast closes the
// channel, so a waiter that gives up on cancellation never swallows a wakeup meant for others.
type waiters struct {
	ch chan struct{}
}

func (w *waiters) wait() <-chan struct{} {
	if w.ch == nil {
		w.ch = make(chan struct{})
	}
	return w.ch
}

func (w *waiters) broadcast() {
	if w.ch != nil {
		close(w.ch)
		w.ch = nil
	}
}
