package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/slack-go/slack"

	"github.com/Nathanlovaniaina/Projet-Cloud-S5/pkg/domain/interfaces"
	"github.com/Nathanlovaniaina/Projet-Cloud-S5/pkg/domain/model"
	"github.com/Nathanlovaniaina/Projet-Cloud-S5/pkg/domain/types"
)

const (
	// DefaultTimeout bounds a single webhook delivery
	DefaultTimeout = 10 * time.Second
	// DefaultUsername is shown as the sender of notifications
	DefaultUsername = "civicsync"

	// maxErrorBytes keeps the attachment under Slack's text limits
	maxErrorBytes = 2000
)

// Notifier posts failed reconciliation runs to a Slack incoming webhook.
type Notifier struct {
	webhookURL string
	channel    string
	username   string
	httpClient *http.Client
}

var _ interfaces.Notifier = &Notifier{}

// Option is a functional option for Notifier configuration
type Option func(*Notifier)

// WithChannel overrides the channel configured on the webhook
func WithChannel(channel string) Option {
	return func(n *Notifier) {
		n.channel = channel
	}
}

// WithUsername sets the sender name shown in Slack
func WithUsername(username string) Option {
	return func(n *Notifier) {
		n.username = username
	}
}

// WithHTTPClient replaces the HTTP client used for delivery
func WithHTTPClient(client *http.Client) Option {
	return func(n *Notifier) {
		n.httpClient = client
	}
}

// New creates a Notifier for the given incoming webhook URL
func New(webhookURL string, opts ...Option) (*Notifier, error) {
	if webhookURL == "" {
		return nil, goerr.New("Slack webhook URL is required")
	}

	n := &Notifier{
		webhookURL: webhookURL,
		username:   DefaultUsername,
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(n)
	}
	return n, nil
}

func (n *Notifier) NotifySyncFailure(ctx context.Context, result *model.SyncResult) error {
	if result == nil {
		return nil
	}

	msg := buildSyncFailureMessage(result)
	msg.Channel = n.channel
	msg.Username = n.username

	if err := slack.PostWebhookCustomHTTPContext(ctx, n.webhookURL, n.httpClient, msg); err != nil {
		return goerr.Wrap(err, "failed to post sync failure to Slack",
			goerr.V("run_id", result.RunID),
			goerr.V("direction", result.Direction))
	}
	return nil
}

func buildSyncFailureMessage(result *model.SyncResult) *slack.WebhookMessage {
	title := fmt.Sprintf("Sync %s failed", result.Direction)
	switch result.Direction {
	case types.SyncDirectionPull:
		title = "Sync failed: " + model.PullMarker
	case types.SyncDirectionPush:
		title = "Sync failed: " + model.PushMarker
	}

	fields := []slack.AttachmentField{
		{Title: "Run ID", Value: result.RunID, Short: true},
		{Title: "Started at", Value: result.RunAt.UTC().Format(time.RFC3339), Short: true},
	}
	if counts := formatCounts(result.Counts); counts != "" {
		fields = append(fields, slack.AttachmentField{Title: "Applied before failure", Value: counts})
	}

	return &slack.WebhookMessage{
		Text: title,
		Attachments: []slack.Attachment{
			{
				Color:  "danger",
				Title:  title,
				Text:   "```" + truncateToMaxBytes(result.Error, maxErrorBytes) + "```",
				Fields: fields,
				Footer: "reconciliation run auditor",
				Ts:     json.Number(strconv.FormatInt(result.RunAt.Unix(), 10)),
			},
		},
	}
}

// formatCounts lists per-collection counts in dependency order
func formatCounts(counts map[string]int) string {
	var lines []string
	for _, kind := range types.AllEntityKinds() {
		n, ok := counts[kind.Collection()]
		if !ok {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s: %d", kind.Collection(), n))
	}
	return strings.Join(lines, "\n")
}
