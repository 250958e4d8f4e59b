package logging

import (
	"context"
	"log/slog"

	"cardscan/internal/services"
)

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldCaptureToken is the standardized structured logging key for capture tokens.
	FieldCaptureToken = "capture_token"
	// FieldCardID is the standardized structured logging key for persisted card identifiers.
	FieldCardID = "card_id"
	// FieldCorrelationID is the standardized structured logging key for request correlation identifiers.
	FieldCorrelationID = "correlation_id"
	// FieldEndpoint is the standardized structured logging key for catalog lookup endpoint names.
	FieldEndpoint = "endpoint"
)

// ContextFields extracts standardized slog attributes from the provided context.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	fields := make([]slog.Attr, 0, 3)
	if token, ok := services.CaptureTokenFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldCaptureToken, token))
	}
	if id, ok := services.CardIDFromContext(ctx); ok {
		fields = append(fields, slog.Int64(FieldCardID, id))
	}
	if rid, ok := services.RequestIDFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldCorrelationID, rid))
	}
	return fields
}

// WithContext returns a logger augmented with structured fields derived from
// the supplied context.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(attrsToArgs(fields)...)
}
