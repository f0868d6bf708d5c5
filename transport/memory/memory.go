// Package memory provides an in-memory Transport for testing.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	notification "github.com/Javivb/notifications-engine-dreamole-19"
)

// Compile-time check
var _ notification.Transport = (*Transport)(nil)

// Transport records every configuration it receives and returns synthetic
// per-recipient results. Safe for concurrent use.
type Transport struct {
	mu             sync.Mutex
	sent           []*notification.Email
	failWith       error
	failRecipients map[string]error
}

// New creates a new in-memory transport.
func New() *Transport {
	return &Transport{}
}

// Send records the configuration and returns one successful result per
// primary recipient, unless a failure was injected via FailWith or
// FailRecipient.
func (t *Transport) Send(_ context.Context, email *notification.Email) ([]notification.SendResult, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.failWith != nil {
		return nil, t.failWith
	}
	if len(email.To) == 0 {
		return nil, notification.ErrEmptyRecipients
	}

	t.sent = append(t.sent, email)

	results := make([]notification.SendResult, len(email.To))
	for i, addr := range email.To {
		res := notification.SendResult{
			Recipient: addr.String(),
			MessageID: uuid.NewString(),
			Success:   true,
		}
		if err, ok := t.failRecipients[addr.String()]; ok {
			res.Success = false
			res.MessageID = ""
			res.Error = err
		}
		results[i] = res
	}
	return results, nil
}

// Name returns the transport name.
func (t *Transport) Name() string {
	return "memory"
}

// Sent returns the configurations received so far, in order.
func (t *Transport) Sent() []*notification.Email {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]*notification.Email(nil), t.sent...)
}

// Last returns the most recently received configuration, or nil.
func (t *Transport) Last() *notification.Email {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.sent) == 0 {
		return nil
	}
	return t.sent[len(t.sent)-1]
}

// FailWith makes every subsequent Send fail with err. Pass nil to clear.
func (t *Transport) FailWith(err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.failWith = err
}

// FailRecipient makes results for the given recipient report err while the
// send as a whole still succeeds.
func (t *Transport) FailRecipient(recipient string, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.failRecipients == nil {
		t.failRecipients = make(map[string]error)
	}
	t.failRecipients[recipient] = err
}

// Reset clears recorded configurations and injected failures.
func (t *Transport) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.sent = nil
	t.failWith = nil
	t.failRecipients = nil
}
