package pace

import "context"

var _ Pacer = (*ImmediatePacer)(nil)

// ImmediatePacer never waits. It only reports whether the context is still alive.
type ImmediatePacer struct{}

func Immediate() *ImmediatePacer {
	return &ImmediatePacer{}
}

func (p *ImmediatePacer) Wait(ctx context.Context) bool {
	return ctx.Err() == nil
}

func (p *ImmediatePacer) Derive() Pacer {
	return Immediate()
}
