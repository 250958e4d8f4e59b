package notifications_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"cardscan/internal/config"
	"cardscan/internal/notifications"
)

func TestNewServiceReturnsNoopWhenTopicMissing(t *testing.T) {
	cfg := config.Default()
	cfg.Notifications.NtfyTopic = ""
	svc := notifications.NewService(&cfg)
	if err := svc.NotifyScanComplete(context.Background(), "Duplicant", "Mirrodin"); err != nil {
		t.Fatalf("expected noop notifier to return nil, got %v", err)
	}
}

func TestNtfyServiceSendsHeadersAndBody(t *testing.T) {
	var (
		gotTitle string
		gotTags  string
		gotBody  string
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotTitle = r.Header.Get("Title")
		gotTags = r.Header.Get("Tags")
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	cfg := config.Default()
	cfg.Notifications.NtfyTopic = server.URL
	svc := notifications.NewService(&cfg)

	if err := svc.NotifyScanComplete(context.Background(), "Duplicant", "Mirrodin"); err != nil {
		t.Fatalf("NotifyScanComplete failed: %v", err)
	}
	if gotTitle != "Cardscan - Card Saved" {
		t.Fatalf("title = %q", gotTitle)
	}
	if gotTags != "cardscan,scan,saved" {
		t.Fatalf("tags = %q", gotTags)
	}
	if gotBody != "Card saved: Duplicant (Mirrodin)" {
		t.Fatalf("body = %q", gotBody)
	}
}

func TestNtfyServiceHonorsEventToggles(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	cfg := config.Default()
	cfg.Notifications.NtfyTopic = server.URL
	cfg.Notifications.Scans = false
	svc := notifications.NewService(&cfg)

	if err := svc.NotifyScanComplete(context.Background(), "Duplicant", ""); err != nil {
		t.Fatalf("NotifyScanComplete failed: %v", err)
	}
	if requests != 0 {
		t.Fatalf("scan push sent despite disabled toggle, requests = %d", requests)
	}

	if err := svc.NotifyExportComplete(context.Background(), "/tmp/out.csv", 3); err != nil {
		t.Fatalf("NotifyExportComplete failed: %v", err)
	}
	if requests != 1 {
		t.Fatalf("export push not sent, requests = %d", requests)
	}
}

func TestNtfyServiceReportsServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "topic over quota", http.StatusTooManyRequests)
	}))
	defer server.Close()

	cfg := config.Default()
	cfg.Notifications.NtfyTopic = server.URL
	svc := notifications.NewService(&cfg)

	if err := svc.TestNotification(context.Background()); err == nil {
		t.Fatal("expected error for non-2xx response")
	}
}
