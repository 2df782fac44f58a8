package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/merev/gsr-api/internal/feedback"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// withTelemetry runs op under the service mutex with a span, metrics,
// structured logs and panic recovery.
func withTelemetry[T any](
	s *Service,
	ctx context.Context,
	operation string,
	identifier string,
	op func(ctx context.Context) (T, error),
) (result T, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, span := s.tracer.Start(ctx, "GameService."+operation, trace.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("identifier", identifier),
	))
	defer span.End()

	s.metrics.RecordOperationAttempt(ctx, operation)
	start := time.Now()
	defer func() {
		s.metrics.RecordOperationDuration(ctx, operation, time.Since(start))
	}()

	s.logger.DebugContext(ctx, "Operation triggered",
		slog.String("operation", operation),
		slog.String("identifier", identifier),
	)

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", operation, r)
			s.logger.ErrorContext(ctx, "Critical panic recovered",
				slog.String("operation", operation),
				slog.String("identifier", identifier),
				slog.Any("error", err),
			)
			s.metrics.RecordOperationFailure(ctx, operation, "panic")
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			var zero T
			result = zero
		}
	}()

	result, err = op(ctx)

	var ve *feedback.ValidationError
	switch {
	case errors.As(err, &ve):
		s.logger.InfoContext(ctx, "Operation rejected",
			slog.String("operation", operation),
			slog.String("identifier", identifier),
			slog.String("reason", ve.Reason.Error()),
			slog.Any("feedback", ve.Feedback.Map()),
		)
		s.metrics.RecordOperationFailure(ctx, operation, "validation")
		span.SetAttributes(attribute.String("rejection", ve.Reason.Error()))
		return result, err
	case err != nil:
		wrapped := fmt.Errorf("%s: %w", operation, err)
		s.logger.ErrorContext(ctx, "Operation failed with error",
			slog.String("operation", operation),
			slog.String("identifier", identifier),
			slog.Any("error", wrapped),
		)
		s.metrics.RecordOperationFailure(ctx, operation, "error")
		span.RecordError(wrapped)
		span.SetStatus(codes.Error, wrapped.Error())
		return result, wrapped
	}

	s.logger.DebugContext(ctx, "Operation completed successfully",
		slog.String("operation", operation),
		slog.String("identifier", identifier),
	)
	s.metrics.RecordOperationSuccess(ctx, operation)
	return result, nil
}
