package handoff

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrCancelled is returned by [Buffer.Put] and [Buffer.Get] when the context of a blocked
	// call is done before the call could proceed. The buffer is left untouched.
	ErrCancelled = errors.New("operation cancelled")
	// ErrConfig is matched by every error returned for an invalid buffer configuration.
	ErrConfig = errors.New("invalid configuration")
)

// ConfigError describes why a buffer could not be created.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrConfig, e.Field, e.Reason)
}

func (e *ConfigError) Unwrap() error {
	return ErrConfig
}

func cancelled(ctx context.Context) error {
	return fmt.Errorf("%w: %w", ErrCancelled, context.Cause(ctx))
}
