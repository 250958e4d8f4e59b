package services

import "context"

type contextKey string

const (
	captureTokenKey contextKey = "capture_token"
	cardIDKey       contextKey = "card_id"
	requestIDKey    contextKey = "request_id"
)

// WithCaptureToken annotates context with the current capture token.
func WithCaptureToken(ctx context.Context, token string) context.Context {
	if token == "" {
		return ctx
	}
	return context.WithValue(ctx, captureTokenKey, token)
}

// CaptureTokenFromContext extracts the capture token if present.
func CaptureTokenFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(captureTokenKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithCardID annotates context with a persisted card identifier.
func WithCardID(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, cardIDKey, id)
}

// CardIDFromContext extracts the card identifier if present.
func CardIDFromContext(ctx context.Context) (int64, bool) {
	v := ctx.Value(cardIDKey)
	if v == nil {
		return 0, false
	}
	switch val := v.(type) {
	case int64:
		return val, true
	case int:
		return int64(val), true
	default:
		return 0, false
	}
}

// WithRequestID annotates context with a correlation identifier.
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext extracts the correlation identifier if present.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(requestIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
