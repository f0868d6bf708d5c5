// Package resend implements a Transport using the Resend API.
package resend

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v3"

	notification "github.com/Javivb/notifications-engine-dreamole-19"
)

// Config holds Resend transport configuration.
type Config struct {
	APIKey      string
	SenderEmail string
	SenderName  string
}

// Transport sends emails via the Resend API.
type Transport struct {
	client *resend.Client
	config Config
}

// Compile-time check
var _ notification.Transport = (*Transport)(nil)

// New creates a new Resend transport.
func New(cfg Config) *Transport {
	return &Transport{
		client: resend.NewClient(cfg.APIKey),
		config: cfg,
	}
}

// Send delivers the email via Resend. Resend addresses recipients by
// literal email address, so configurations carrying typed identifier
// references are rejected. On success every recipient shares the single
// Resend message ID.
func (t *Transport) Send(ctx context.Context, email *notification.Email) ([]notification.SendResult, error) {
	if len(email.To) == 0 {
		return nil, notification.ErrEmptyRecipients
	}
	if err := rejectRefs(email); err != nil {
		return nil, err
	}

	from := t.config.SenderEmail
	if t.config.SenderName != "" {
		from = fmt.Sprintf("%s <%s>", t.config.SenderName, t.config.SenderEmail)
	}

	req := &resend.SendEmailRequest{
		From:    from,
		To:      addressStrings(email.To),
		Cc:      addressStrings(email.CC),
		Subject: email.Subject,
		Html:    email.HTMLBody,
		Text:    email.TextBody,
	}

	if len(email.Attachments) > 0 {
		req.Attachments = convertAttachments(email.Attachments)
	}

	resp, err := t.client.Emails.SendWithContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("resend: send email: %w", err)
	}

	results := make([]notification.SendResult, len(email.To))
	for i, addr := range email.To {
		results[i] = notification.SendResult{
			Recipient: addr.String(),
			MessageID: resp.Id,
			Success:   true,
		}
	}
	return results, nil
}

// Name returns the transport name.
func (t *Transport) Name() string {
	return "resend"
}

// rejectRefs fails the configuration when a recipient slot holds a typed
// identifier instead of a literal address.
func rejectRefs(email *notification.Email) error {
	for _, addr := range email.To {
		if addr.IsRef() {
			return fmt.Errorf("typed recipient %q cannot be delivered via resend: %w",
				addr.String(), notification.ErrRejected)
		}
	}
	for _, addr := range email.CC {
		if addr.IsRef() {
			return fmt.Errorf("typed cc recipient %q cannot be delivered via resend: %w",
				addr.String(), notification.ErrRejected)
		}
	}
	return nil
}

// addressStrings flattens addresses to literal strings.
func addressStrings(addrs []notification.Address) []string {
	if len(addrs) == 0 {
		return nil
	}
	out := make([]string, len(addrs))
	for i, a := range addrs {
		out[i] = a.String()
	}
	return out
}

func convertAttachments(attachments []notification.Attachment) []*resend.Attachment {
	result := make([]*resend.Attachment, len(attachments))
	for i, a := range attachments {
		result[i] = &resend.Attachment{
			Filename: a.Filename,
			Content:  a.Body,
		}
	}
	return result
}
