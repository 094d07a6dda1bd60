package notify

import (
	"context"
	"fmt"
	"log"

	"github.com/slack-go/slack"

	"github.com/krishanraja/mindmaker-for-teams-sub001/internal/report"
)

// SlackNotifier posts a one-line summary to a facilitator channel when a
// provocation report is generated.
type SlackNotifier struct {
	api     *slack.Client
	channel string
}

// NewSlackNotifier creates a notifier, or nil when no token is configured
// (notifications are optional).
func NewSlackNotifier(token, channel string) *SlackNotifier {
	if token == "" || channel == "" {
		return nil
	}

	api := slack.New(token)

	authTest, err := api.AuthTest()
	if err != nil {
		log.Printf("⚠️ Slack authentication failed, notifications disabled: %v", err)
		return nil
	}
	log.Printf("✅ Slack notifier connected as %s", authTest.User)

	return &SlackNotifier{api: api, channel: channel}
}

// ReportGenerated posts the report summary line
func (n *SlackNotifier) ReportGenerated(ctx context.Context, sessionID string, scores report.Scores) error {
	message := fmt.Sprintf("📊 Provocation report ready for session %s — urgency %d/100, pilot readiness %d/100 (%s)",
		sessionID, scores.Urgency, scores.Readiness, scores.ReadinessBand)

	_, _, err := n.api.PostMessageContext(
		ctx,
		n.channel,
		slack.MsgOptionText(message, false),
	)
	if err != nil {
		return fmt.Errorf("failed to post report notification: %w", err)
	}
	return nil
}
