package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"flipbook/internal/config"
)

const userAgent = "Flipbook-Go/0.1.0"

// Service defines the notification surface exposed to workflow components.
type Service interface {
	NotifyConversionStarted(ctx context.Context, label string, frameCount int) error
	NotifyConversionCompleted(ctx context.Context, label, outputPath string) error
	NotifyConversionFailed(ctx context.Context, label string, cause error) error
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
		endpoint:    topic,
		client:      &http.Client{Timeout: timeout},
		conversions: cfg.Notifications.Conversions,
		errors:      cfg.Notifications.Errors,
	}
}

type payload struct {
	title    string
	message  string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint    string
	client      *http.Client
	conversions bool
	errors      bool
}

func (n *ntfyService) NotifyConversionStarted(ctx context.Context, label string, frameCount int) error {
	if !n.conversions {
		return nil
	}
	data := payload{
		title:   "Flipbook - Conversion Started",
		message: fmt.Sprintf("Assembling %d frames: %s", frameCount, strings.TrimSpace(label)),
		tags:    []string{"flipbook", "convert", "started"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyConversionCompleted(ctx context.Context, label, outputPath string) error {
	if !n.conversions {
		return nil
	}
	message := fmt.Sprintf("Animation ready: %s", strings.TrimSpace(label))
	if outputPath = strings.TrimSpace(outputPath); outputPath != "" {
		message = fmt.Sprintf("%s\nFile: %s", message, outputPath)
	}
	data := payload{
		title:    "Flipbook - Conversion Complete",
		message:  message,
		tags:     []string{"flipbook", "convert", "completed"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyConversionFailed(ctx context.Context, label string, cause error) error {
	if !n.errors {
		return nil
	}
	var builder strings.Builder
	builder.WriteString("Conversion failed")
	if label = strings.TrimSpace(label); label != "" {
		builder.WriteString(": ")
		builder.WriteString(label)
	}
	builder.WriteString("\n")
	if cause != nil {
		builder.WriteString(strings.TrimSpace(cause.Error()))
	} else {
		builder.WriteString("unknown error")
	}

	data := payload{
		title:    "Flipbook - Error",
		message:  builder.String(),
		tags:     []string{"flipbook", "error", "alert"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) TestNotification(ctx context.Context) error {
	data := payload{
		title:    "Flipbook - Test",
		message:  "Notification system test",
		tags:     []string{"flipbook", "test"},
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

func (noopService) NotifyConversionStarted(context.Context, string, int) error    { return nil }
func (noopService) NotifyConversionCompleted(context.Context, string, string) error { return nil }
func (noopService) NotifyConversionFailed(context.Context, string, error) error   { return nil }
func (noopService) TestNotification(context.Context) error                        { return nil }
