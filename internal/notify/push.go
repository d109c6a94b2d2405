package notify

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"platter/internal/config"
)

const userAgent = "platter/0.1"

// Pusher mirrors run milestones to a push notification channel.
type Pusher interface {
	RipStarted(ctx context.Context, discName, strategy string) error
	RipCompleted(ctx context.Context, discName string) error
	RipFailed(ctx context.Context, discName string, cause error) error
}

// NewPusher builds a pusher backed by ntfy when a topic is configured.
// When no topic is configured, a noop implementation is returned.
func NewPusher(cfg *config.Config) Pusher {
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic == "" {
		return noopPusher{}
	}

	timeout := time.Duration(cfg.Notifications.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &ntfyPusher{
		endpoint: topic,
		client:   &http.Client{Timeout: timeout},
	}
}

type payload struct {
	title    string
	message  string
	tags     []string
	priority string
}

type ntfyPusher struct {
	endpoint string
	client   *http.Client
}

func (n *ntfyPusher) RipStarted(ctx context.Context, discName, strategy string) error {
	return n.send(ctx, payload{
		title:   "Platter - Rip Started",
		message: fmt.Sprintf("Started ripping: %s (%s)", strings.TrimSpace(discName), strategy),
		tags:    []string{"platter", "rip", "started"},
	})
}

func (n *ntfyPusher) RipCompleted(ctx context.Context, discName string) error {
	return n.send(ctx, payload{
		title:   "Platter - Rip Complete",
		message: fmt.Sprintf("Rip complete: %s", strings.TrimSpace(discName)),
		tags:    []string{"platter", "rip", "completed"},
	})
}

func (n *ntfyPusher) RipFailed(ctx context.Context, discName string, cause error) error {
	message := fmt.Sprintf("Rip failed: %s", strings.TrimSpace(discName))
	if cause != nil {
		message = fmt.Sprintf("%s\n%s", message, strings.TrimSpace(cause.Error()))
	}
	return n.send(ctx, payload{
		title:    "Platter - Rip Failed",
		message:  message,
		tags:     []string{"platter", "rip", "failed"},
		priority: "high",
	})
}

func (n *ntfyPusher) send(ctx context.Context, data payload) error {
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

type noopPusher struct{}

func (noopPusher) RipStarted(context.Context, string, string) error { return nil }

func (noopPusher) RipCompleted(context.Context, string) error { return nil }

func (noopPusher) RipFailed(context.Context, string, error) error { return nil }
