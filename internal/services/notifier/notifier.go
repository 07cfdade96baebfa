// Package notifier delivers best-effort run reports to a chat channel.
// Delivery failures never affect order placement; callers log and move on.
package notifier

import (
	"context"

	"github.com/pkg/errors"
	"github.com/slack-go/slack"
)

// Notifier best-effort message sink.
type Notifier interface {
	Notify(ctx context.Context, text string) error
}

// New returns a Slack webhook notifier, or a no-op sink when no webhook is
// configured.
func New(webhookURL string) Notifier {
	if webhookURL == "" {
		return Noop{}
	}
	return &Slack{webhookURL: webhookURL}
}

// Slack posts messages to a Slack incoming webhook.
type Slack struct {
	webhookURL string
}

// Notify posts one message.
func (s *Slack) Notify(ctx context.Context, text string) error {
	msg := &slack.WebhookMessage{Text: text}
	if err := slack.PostWebhookContext(ctx, s.webhookURL, msg); err != nil {
		return errors.Wrap(err, "failed to post slack webhook")
	}
	return nil
}

// Noop discards messages; used when no channel is configured.
type Noop struct{}

// Notify discards the message.
func (Noop) Notify(context.Context, string) error { return nil }
