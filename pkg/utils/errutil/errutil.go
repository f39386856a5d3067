package errutil

import (
	"context"
	"errors"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"
	"github.com/taskbeacon/taskbeacon/pkg/utils/logging"
)

// Handle logs the error with full goerr context and reports it to Sentry
// when a DSN is configured. It returns the error unchanged so callers can
// decide whether to propagate or swallow it.
func Handle(ctx context.Context, err error, msg string) error {
	if err == nil {
		return nil
	}

	logger := logging.From(ctx)

	var ge *goerr.Error
	if errors.As(err, &ge) {
		logger.Error(msg,
			"error", err.Error(),
			"values", ge.Values(),
			"stack", ge.Stacks(),
		)
	} else {
		logger.Error(msg, "error", err.Error())
	}

	// No-op unless sentry.Init has been called
	sentry.CurrentHub().CaptureException(err)

	return err
}
