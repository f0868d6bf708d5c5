// Package ses implements a Transport that sends emails via AWS SES v2.
package ses

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"mime"
	"mime/multipart"
	"net/textproto"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	sesv2 "github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	notification "github.com/Javivb/notifications-engine-dreamole-19"
)

// maxRetries is the maximum number of retry attempts for transient failures.
const maxRetries = 3

// baseRetryDelay is the initial delay for exponential backoff.
const baseRetryDelay = 1 * time.Second

// Config holds the configuration for creating a Transport.
type Config struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Sender          string
}

// Transport sends emails via the AWS SES v2 API.
type Transport struct {
	sender string
	client SendEmailAPI
	logger *slog.Logger
}

// Compile-time check
var _ notification.Transport = (*Transport)(nil)

// SendEmailAPI is the interface for the SES v2 SendEmail operation.
// Used for testing with mock implementations.
type SendEmailAPI interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// New creates a new Transport with the given configuration.
func New(ctx context.Context, cfg Config) (*Transport, error) {
	var opts []func(*awsconfig.LoadOptions) error

	opts = append(opts, awsconfig.WithRegion(cfg.Region))

	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return &Transport{
		sender: cfg.Sender,
		client: sesv2.NewFromConfig(awsCfg),
		logger: slog.Default(),
	}, nil
}

// NewWithClient creates a Transport with a custom client, used for testing.
func NewWithClient(sender string, client SendEmailAPI) *Transport {
	return &Transport{
		sender: sender,
		client: client,
		logger: slog.Default(),
	}
}

// Send delivers the email via AWS SES v2. SES addresses recipients by
// literal email address, so configurations carrying typed identifier
// references are rejected. On success every recipient shares the single
// SES message ID.
func (t *Transport) Send(ctx context.Context, email *notification.Email) ([]notification.SendResult, error) {
	if len(email.To) == 0 {
		return nil, notification.ErrEmptyRecipients
	}
	if err := rejectRefs(email); err != nil {
		return nil, err
	}

	var input *sesv2.SendEmailInput
	if len(email.Attachments) > 0 {
		raw, err := buildRawMessage(t.sender, email)
		if err != nil {
			return nil, fmt.Errorf("build raw message: %w", err)
		}
		input = &sesv2.SendEmailInput{
			Content: &types.EmailContent{
				Raw: &types.RawMessage{
					Data: raw,
				},
			},
		}
	} else {
		input = buildSimpleInput(t.sender, email)
	}

	var out *sesv2.SendEmailOutput
	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			t.logger.Debug("retrying SES API request",
				"attempt", attempt,
				"max_retries", maxRetries,
			)
			if err := sleepWithContext(ctx, backoffDelay(attempt)); err != nil {
				return nil, fmt.Errorf("context cancelled during retry wait: %w", err)
			}
		}

		var err error
		out, err = t.client.SendEmail(ctx, input)
		if err == nil {
			lastErr = nil
			break
		}

		lastErr = err
		t.logger.Warn("SES API error",
			"attempt", attempt,
			"error", err,
		)
	}
	if lastErr != nil {
		return nil, fmt.Errorf("SES API request failed after %d retries: %w", maxRetries, lastErr)
	}

	messageID := ""
	if out != nil && out.MessageId != nil {
		messageID = *out.MessageId
	}

	results := make([]notification.SendResult, len(email.To))
	for i, addr := range email.To {
		results[i] = notification.SendResult{
			Recipient: addr.String(),
			MessageID: messageID,
			Success:   true,
		}
	}
	return results, nil
}

// Name returns the transport name.
func (t *Transport) Name() string {
	return "ses"
}

// rejectRefs fails the configuration when a recipient slot holds a typed
// identifier instead of a literal address.
func rejectRefs(email *notification.Email) error {
	for _, addr := range email.To {
		if addr.IsRef() {
			return fmt.Errorf("typed recipient %q cannot be delivered via ses: %w",
				addr.String(), notification.ErrRejected)
		}
	}
	for _, addr := range email.CC {
		if addr.IsRef() {
			return fmt.Errorf("typed cc recipient %q cannot be delivered via ses: %w",
				addr.String(), notification.ErrRejected)
		}
	}
	return nil
}

// buildSimpleInput creates a SES SendEmailInput for emails without attachments.
func buildSimpleInput(sender string, email *notification.Email) *sesv2.SendEmailInput {
	body := &types.Body{}

	if email.HTMLBody != "" {
		body.Html = &types.Content{
			Data:    aws.String(email.HTMLBody),
			Charset: aws.String("UTF-8"),
		}
	}
	if email.TextBody != "" {
		body.Text = &types.Content{
			Data:    aws.String(email.TextBody),
			Charset: aws.String("UTF-8"),
		}
	}

	dest := &types.Destination{
		ToAddresses: addressStrings(email.To),
		CcAddresses: addressStrings(email.CC),
	}

	return &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(sender),
		Destination:      dest,
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{
					Data:    aws.String(email.Subject),
					Charset: aws.String("UTF-8"),
				},
				Body: body,
			},
		},
	}
}

// buildRawMessage constructs a raw MIME message for emails with attachments.
func buildRawMessage(sender string, email *notification.Email) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "From: %s\r\n", sender)
	if len(email.To) > 0 {
		fmt.Fprintf(&buf, "To: %s\r\n", strings.Join(addressStrings(email.To), ", "))
	}
	if len(email.CC) > 0 {
		fmt.Fprintf(&buf, "Cc: %s\r\n", strings.Join(addressStrings(email.CC), ", "))
	}
	fmt.Fprintf(&buf, "Subject: %s\r\n", email.Subject)
	fmt.Fprintf(&buf, "MIME-Version: 1.0\r\n")

	writer := multipart.NewWriter(&buf)
	fmt.Fprintf(&buf, "Content-Type: multipart/mixed; boundary=%q\r\n\r\n", writer.Boundary())

	bodyHeader := make(textproto.MIMEHeader)
	if email.HTMLBody != "" {
		bodyHeader.Set("Content-Type", "text/html; charset=UTF-8")
		part, err := writer.CreatePart(bodyHeader)
		if err != nil {
			return nil, fmt.Errorf("create body part: %w", err)
		}
		part.Write([]byte(email.HTMLBody))
	} else if email.TextBody != "" {
		bodyHeader.Set("Content-Type", "text/plain; charset=UTF-8")
		part, err := writer.CreatePart(bodyHeader)
		if err != nil {
			return nil, fmt.Errorf("create body part: %w", err)
		}
		part.Write([]byte(email.TextBody))
	}

	for _, att := range email.Attachments {
		attHeader := make(textproto.MIMEHeader)
		attHeader.Set("Content-Type", contentTypeFor(att.Filename))
		attHeader.Set("Content-Transfer-Encoding", "base64")
		attHeader.Set("Content-Disposition",
			fmt.Sprintf("attachment; filename=%s", mime.QEncoding.Encode("UTF-8", att.Filename)))

		part, err := writer.CreatePart(attHeader)
		if err != nil {
			return nil, fmt.Errorf("create attachment part: %w", err)
		}
		part.Write([]byte(encodeBase64WithLineBreaks(att.Body)))
	}

	writer.Close()
	return buf.Bytes(), nil
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

// contentTypeFor guesses a MIME type from the filename extension.
func contentTypeFor(filename string) string {
	if ct := mime.TypeByExtension(filepath.Ext(filename)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

// encodeBase64WithLineBreaks encodes bytes to base64 with 76-character line breaks per RFC 2045.
func encodeBase64WithLineBreaks(data []byte) string {
	encoded := base64.StdEncoding.EncodeToString(data)
	var lines []string
	for i := 0; i < len(encoded); i += 76 {
		end := i + 76
		if end > len(encoded) {
			end = len(encoded)
		}
		lines = append(lines, encoded[i:end])
	}
	return strings.Join(lines, "\r\n")
}

// backoffDelay returns the exponential backoff delay for the given attempt number.
func backoffDelay(attempt int) time.Duration {
	delay := baseRetryDelay
	for i := 0; i < attempt; i++ {
		delay *= 2
	}
	return delay
}

// sleepWithContext sleeps for the given duration or until the context is done.
func sleepWithContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
