package middleware

import (
	"context"
	"log/slog"
	"time"

	soapserver "github.com/byjg/go-soap-server"
)

// LoggingInterceptor creates an interceptor that logs operation
// dispatches using slog. It logs the start and end of each call,
// including duration and error status.
func LoggingInterceptor(logger *slog.Logger) soapserver.UnaryInterceptor {
	if logger == nil {
		logger = slog.Default()
	}

	return func(ctx context.Context, args map[string]any, info *soapserver.OperationInfo, next soapserver.InvokeFunc) (any, error) {
		start := time.Now()

		logger.InfoContext(ctx, "dispatch started",
			slog.String("service", info.Service),
			slog.String("operation", info.Operation),
		)

		res, err := next(ctx, args)
		duration := time.Since(start)

		if err != nil {
			logger.ErrorContext(ctx, "dispatch failed",
				slog.String("service", info.Service),
				slog.String("operation", info.Operation),
				slog.Duration("duration", duration),
				slog.Any("error", err),
			)
		} else {
			logger.InfoContext(ctx, "dispatch completed",
				slog.String("service", info.Service),
				slog.String("operation", info.Operation),
				slog.Duration("duration", duration),
			)
		}

		return res, err
	}
}
