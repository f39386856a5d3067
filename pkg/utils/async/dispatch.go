package async

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/taskbeacon/taskbeacon/pkg/utils/logging"
)

// Dispatch executes a handler function asynchronously in a new goroutine.
// Each triggering event is handled as an independent unit of work: the
// handler gets a fresh background context (preserving the logger), and
// errors or panics are logged without affecting the caller.
func Dispatch(ctx context.Context, handler func(ctx context.Context) error) {
	bgCtx := logging.With(context.Background(), logging.From(ctx))

	go func() {
		defer func() {
			if r := recover(); r != nil {
				logging.From(bgCtx).Error("panic in async handler", "panic", r)
			}
		}()

		if err := handler(bgCtx); err != nil {
			logging.From(bgCtx).Error("async handler failed", "error", goerr.Unwrap(err))
		}
	}()
}
