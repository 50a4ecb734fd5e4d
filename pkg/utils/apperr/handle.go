package apperr

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// Handle logs a terminal application error with its attached values
func Handle(ctx context.Context, err error) {
	logger := ctxlog.From(ctx)

	if gerr := goerr.Unwrap(err); gerr != nil {
		logger.Error("command failed", "error", err, "values", gerr.Values())
		return
	}
	logger.Error("command failed", "error", err)
}
