package notification

import "context"

// Transport delivers a finalized email configuration through an external
// messaging provider. Implementations must be safe for concurrent use.
//
// The transport/memory, transport/ses and transport/resend packages provide
// implementations.
type Transport interface {
	// Send delivers the email and returns one result per primary recipient.
	// A transport may reject the whole configuration (malformed address,
	// empty recipient list) by returning an error wrapping ErrRejected.
	Send(ctx context.Context, email *Email) ([]SendResult, error)

	// Name returns the human-readable name of this transport.
	Name() string
}

// SendResult is the per-recipient outcome of a send.
type SendResult struct {
	// Recipient is the address or identifier token the result refers to.
	Recipient string

	// MessageID is the provider-assigned message identifier, when known.
	MessageID string

	// Success reports whether delivery to this recipient was accepted.
	Success bool

	// Error carries the per-recipient failure detail, if any.
	Error error
}
