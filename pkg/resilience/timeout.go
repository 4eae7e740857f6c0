package resilience

import (
	"context"
	"errors"
	"time"

	apperrors "github.com/Adithya-Monish-Kumar-K/corpus-concordance/pkg/errors"
)

// WithTimeout runs fn under a deadline of timeout. A non-positive timeout
// runs fn with ctx unchanged. fn must return once its context is done; a
// deadline hit is reported as ErrTimeout, while cancellation of ctx itself
// is passed through.
func WithTimeout(ctx context.Context, timeout time.Duration, name string, fn func(ctx context.Context) error) error {
	if timeout <= 0 {
		return fn(ctx)
	}
	timeoutCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	err := fn(timeoutCtx)
	if ctx.Err() == nil && errors.Is(timeoutCtx.Err(), context.DeadlineExceeded) {
		return apperrors.Newf(apperrors.ErrTimeout, apperrors.ExitTimeout, "%s exceeded %v", name, timeout)
	}
	return err
}
