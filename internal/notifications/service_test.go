package notifications_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"flipbook/internal/config"
	"flipbook/internal/notifications"
)

type recorded struct {
	title    string
	tags     string
	priority string
	body     string
}

func newRecordingServer(t *testing.T) (*httptest.Server, *[]recorded) {
	t.Helper()
	var requests []recorded
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		requests = append(requests, recorded{
			title:    r.Header.Get("Title"),
			tags:     r.Header.Get("Tags"),
			priority: r.Header.Get("Priority"),
			body:     string(body),
		})
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(server.Close)
	return server, &requests
}

func serviceFor(topic string) notifications.Service {
	cfg := config.Default()
	cfg.Notifications.NtfyTopic = topic
	cfg.Notifications.Conversions = true
	cfg.Notifications.Errors = true
	return notifications.NewService(&cfg)
}

func TestNewServiceReturnsNoopWhenTopicMissing(t *testing.T) {
	cfg := config.Default()
	cfg.Notifications.NtfyTopic = ""
	svc := notifications.NewService(&cfg)
	if err := svc.NotifyConversionCompleted(context.Background(), "demo", "/out/output.webp"); err != nil {
		t.Fatalf("expected noop notifier to return nil, got %v", err)
	}
}

func TestNotifyConversionStarted(t *testing.T) {
	server, requests := newRecordingServer(t)
	svc := serviceFor(server.URL)

	if err := svc.NotifyConversionStarted(context.Background(), "demo", 48); err != nil {
		t.Fatalf("NotifyConversionStarted failed: %v", err)
	}
	if len(*requests) != 1 {
		t.Fatalf("expected 1 request, got %d", len(*requests))
	}
	got := (*requests)[0]
	if got.title != "Flipbook - Conversion Started" {
		t.Fatalf("unexpected title: %q", got.title)
	}
	if !strings.Contains(got.body, "48 frames") {
		t.Fatalf("unexpected body: %q", got.body)
	}
	if got.tags != "flipbook,convert,started" {
		t.Fatalf("unexpected tags: %q", got.tags)
	}
}

func TestNotifyConversionCompletedIncludesOutput(t *testing.T) {
	server, requests := newRecordingServer(t)
	svc := serviceFor(server.URL)

	if err := svc.NotifyConversionCompleted(context.Background(), "demo", "/out/output.webp"); err != nil {
		t.Fatalf("NotifyConversionCompleted failed: %v", err)
	}
	got := (*requests)[0]
	if got.priority != "high" {
		t.Fatalf("unexpected priority: %q", got.priority)
	}
	if !strings.Contains(got.body, "/out/output.webp") {
		t.Fatalf("body should include output path: %q", got.body)
	}
}

func TestNotifyConversionFailed(t *testing.T) {
	server, requests := newRecordingServer(t)
	svc := serviceFor(server.URL)

	cause := errors.New("img2webp exited with status 1")
	if err := svc.NotifyConversionFailed(context.Background(), "demo", cause); err != nil {
		t.Fatalf("NotifyConversionFailed failed: %v", err)
	}
	got := (*requests)[0]
	if got.title != "Flipbook - Error" {
		t.Fatalf("unexpected title: %q", got.title)
	}
	if !strings.Contains(got.body, "img2webp exited") {
		t.Fatalf("body should include cause: %q", got.body)
	}
}

func TestConversionToggleSuppressesEvents(t *testing.T) {
	server, requests := newRecordingServer(t)
	cfg := config.Default()
	cfg.Notifications.NtfyTopic = server.URL
	cfg.Notifications.Conversions = false
	cfg.Notifications.Errors = false
	svc := notifications.NewService(&cfg)

	if err := svc.NotifyConversionStarted(context.Background(), "demo", 10); err != nil {
		t.Fatalf("NotifyConversionStarted failed: %v", err)
	}
	if err := svc.NotifyConversionFailed(context.Background(), "demo", errors.New("x")); err != nil {
		t.Fatalf("NotifyConversionFailed failed: %v", err)
	}
	if len(*requests) != 0 {
		t.Fatalf("expected suppressed notifications, got %d requests", len(*requests))
	}

	if err := svc.TestNotification(context.Background()); err != nil {
		t.Fatalf("TestNotification failed: %v", err)
	}
	if len(*requests) != 1 {
		t.Fatalf("test notification should bypass toggles, got %d requests", len(*requests))
	}
}

func TestSendReportsHTTPFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "topic rejected", http.StatusForbidden)
	}))
	t.Cleanup(server.Close)
	svc := serviceFor(server.URL)

	err := svc.TestNotification(context.Background())
	if err == nil {
		t.Fatal("expected error for HTTP 403")
	}
	if !strings.Contains(err.Error(), "403") {
		t.Fatalf("unexpected error: %v", err)
	}
}
