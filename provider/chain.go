package provider

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ZaguanLabs/gotdict"
)

// Chain tries each backend in order and returns the first non-empty
// translation.
type Chain struct {
	backends []Backend
	log      *slog.Logger
}

// NewChain creates a chain over the given backends. Nil backends are skipped.
func NewChain(backends ...Backend) *Chain {
	c := &Chain{log: slog.Default().With("adapter", "chain")}
	for _, b := range backends {
		if b != nil {
			c.backends = append(c.backends, b)
		}
	}
	return c
}

// Len returns the number of backends in the chain.
func (c *Chain) Len() int {
	return len(c.backends)
}

// Translate implements Backend. When every backend fails the error wraps
// gotdict.ErrBackendUnavailable together with each failure.
func (c *Chain) Translate(ctx context.Context, req TranslateRequest) (string, error) {
	if len(c.backends) == 0 {
		return "", gotdict.ErrBackendUnavailable
	}

	errs := []error{gotdict.ErrBackendUnavailable}
	for i, b := range c.backends {
		out, err := b.Translate(ctx, req)
		if err == nil && out != "" {
			return out, nil
		}
		if err == nil {
			err = fmt.Errorf("backend %d: empty translation", i)
		}
		errs = append(errs, err)

		if ctx.Err() != nil {
			break
		}
		c.log.DebugContext(ctx, "backend failed, trying next", slog.Int("index", i), slog.String("error", err.Error()))
	}
	return "", errors.Join(errs...)
}

// Verify Chain implements Backend
var _ Backend = (*Chain)(nil)
