package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"cardscan/internal/config"
)

const userAgent = "Cardscan-Go/0.1.0"

// Service defines the notification surface exposed to pipeline components.
type Service interface {
	NotifyScanComplete(ctx context.Context, cardName, setName string) error
	NotifyExportComplete(ctx context.Context, path string, count int) error
	NotifyError(ctx context.Context, err error, contextLabel string) error
	TestNotification(ctx context.Context) error
}

// NewService builds a notification service backed by ntfy when configured.
// When no ntfy topic is configured, a noop implementation is returned.
func NewService(cfg *config.Config) Service {
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic == "" {
		return noopService{}
	}

	timeout := time.Duration(cfg.Notifications.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &ntfyService{
		endpoint:   topic,
		client:     &http.Client{Timeout: timeout},
		scanPush:   cfg.Notifications.Scans,
		exportPush: cfg.Notifications.Exports,
		errorPush:  cfg.Notifications.Errors,
	}
}

type payload struct {
	title    string
	message  string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint   string
	client     *http.Client
	scanPush   bool
	exportPush bool
	errorPush  bool
}

func (n *ntfyService) NotifyScanComplete(ctx context.Context, cardName, setName string) error {
	if !n.scanPush {
		return nil
	}
	cardName = strings.TrimSpace(cardName)
	if cardName == "" {
		cardName = "unknown card"
	}
	message := fmt.Sprintf("Card saved: %s", cardName)
	if setName = strings.TrimSpace(setName); setName != "" {
		message = fmt.Sprintf("%s (%s)", message, setName)
	}
	data := payload{
		title:   "Cardscan - Card Saved",
		message: message,
		tags:    []string{"cardscan", "scan", "saved"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyExportComplete(ctx context.Context, path string, count int) error {
	if !n.exportPush {
		return nil
	}
	data := payload{
		title:   "Cardscan - Export Complete",
		message: fmt.Sprintf("Exported %d cards to %s", count, strings.TrimSpace(path)),
		tags:    []string{"cardscan", "export", "completed"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyError(ctx context.Context, err error, contextLabel string) error {
	if !n.errorPush {
		return nil
	}
	var builder strings.Builder
	builder.WriteString("Error")
	if contextLabel = strings.TrimSpace(contextLabel); contextLabel != "" {
		builder.WriteString(" with ")
		builder.WriteString(contextLabel)
	}
	builder.WriteString(": ")
	if err != nil {
		builder.WriteString(strings.TrimSpace(err.Error()))
	} else {
		builder.WriteString("unknown")
	}

	data := payload{
		title:    "Cardscan - Error",
		message:  builder.String(),
		tags:     []string{"cardscan", "error", "alert"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) TestNotification(ctx context.Context) error {
	data := payload{
		title:    "Cardscan - Test",
		message:  "Notification system test",
		tags:     []string{"cardscan", "test"},
		priority: "low",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) send(ctx context.Context, data payload) error {
	if n == nil || n.client == nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(data.message))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if data.title != "" {
		req.Header.Set("Title", data.title)
	}
	if len(data.tags) > 0 {
		req.Header.Set("Tags", strings.Join(data.tags, ","))
	}
	if data.priority != "" && data.priority != "default" {
		req.Header.Set("Priority", data.priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

type noopService struct{}

func (noopService) NotifyScanComplete(context.Context, string, string) error { return nil }

func (noopService) NotifyExportComplete(context.Context, string, int) error { return nil }

func (noopService) NotifyError(context.Context, error, string) error { return nil }

func (noopService) TestNotification(context.Context) error { return nil }
