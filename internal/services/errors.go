package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrTransport marks network or HTTP failures talking to the inference
	// or catalog endpoints.
	ErrTransport = errors.New("transport error")
	// ErrEmptyResponse marks an inference response with no usable text.
	ErrEmptyResponse = errors.New("empty response")
	// ErrMalformedExtraction marks model output that is not the expected
	// JSON object.
	ErrMalformedExtraction = errors.New("malformed extraction")
	// ErrNotFound marks operations that target a missing record.
	ErrNotFound = errors.New("not found")
	// ErrExportWrite marks an export destination that cannot be written.
	ErrExportWrite = errors.New("export write error")
	// ErrConfiguration marks unusable configuration.
	ErrConfiguration = errors.New("configuration error")
)

// Wrap builds an error message that includes component context while tagging
// it with the provided marker for later classification. The marker should be
// one of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrTransport
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// IsRecognitionFailure reports whether an error belongs to the
// RecognitionFailed kind: the capture attempt is aborted and a single
// user-facing message is shown.
func IsRecognitionFailure(err error) bool {
	return errors.Is(err, ErrTransport) || errors.Is(err, ErrEmptyResponse)
}

// UserMessage renders the transient, dismissable message shown for a
// pipeline failure. It intentionally flattens the taxonomy into short text.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrEmptyResponse):
		return "The card could not be recognized. Try another photo."
	case errors.Is(err, ErrTransport):
		return "Recognition service unreachable. Check your connection and try again."
	case errors.Is(err, ErrMalformedExtraction):
		return "The recognition result could not be read. Try another photo."
	case errors.Is(err, ErrNotFound):
		return "That card no longer exists in history."
	case errors.Is(err, ErrExportWrite):
		return "The export file could not be written."
	default:
		msg := strings.TrimSpace(err.Error())
		if msg == "" {
			return "Something went wrong."
		}
		return msg
	}
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
