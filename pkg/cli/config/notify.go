package config

import (
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/Nathanlovaniaina/Projet-Cloud-S5/pkg/domain/interfaces"
	"github.com/Nathanlovaniaina/Projet-Cloud-S5/pkg/service/slack"
)

// Notify holds CLI flags for failed-run notifications
type Notify struct {
	webhookURL string
	channel    string
}

func (x *Notify) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-webhook-url",
			Usage:       "Slack incoming webhook URL notified when a sync run fails",
			Category:    "Slack",
			Destination: &x.webhookURL,
			Sources:     cli.EnvVars("CIVICSYNC_SLACK_WEBHOOK_URL"),
		},
		&cli.StringFlag{
			Name:        "slack-channel",
			Usage:       "Channel overriding the webhook default",
			Category:    "Slack",
			Destination: &x.channel,
			Sources:     cli.EnvVars("CIVICSYNC_SLACK_CHANNEL"),
		},
	}
}

func (x Notify) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("webhook-url.len", len(x.webhookURL)),
		slog.String("channel", x.channel),
	)
}

// IsConfigured reports whether a webhook URL was given
func (x *Notify) IsConfigured() bool {
	return x.webhookURL != ""
}

// Configure returns the Slack notifier, or nil when no webhook is configured
func (x *Notify) Configure() (interfaces.Notifier, error) {
	if !x.IsConfigured() {
		return nil, nil
	}

	var opts []slack.Option
	if x.channel != "" {
		opts = append(opts, slack.WithChannel(x.channel))
	}
	n, err := slack.New(x.webhookURL, opts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to initialize slack notifier")
	}
	return n, nil
}
