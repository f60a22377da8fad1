package notify

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"
)

const emailSubject = "New feature idea submitted"

type EmailNotifier struct {
	client *resend.Client
	from   string
	to     []string
}

func NewEmailNotifier(apiKey, from string, to []string) *EmailNotifier {
	return &EmailNotifier{
		client: resend.NewClient(apiKey),
		from:   from,
		to:     to,
	}
}

func (n *EmailNotifier) Publish(ctx context.Context, message string) error {
	params := &resend.SendEmailRequest{
		From:    n.from,
		To:      n.to,
		Subject: emailSubject,
		Text:    message,
	}

	if _, err := n.client.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
