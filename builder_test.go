package notification

import (
	"context"
	"errors"
	"testing"
)

// mockTransport implements Transport for testing.
type mockTransport struct {
	sendFn    func(ctx context.Context, email *Email) ([]SendResult, error)
	callCount int
	lastEmail *Email
}

func (m *mockTransport) Send(ctx context.Context, email *Email) ([]SendResult, error) {
	m.callCount++
	m.lastEmail = email
	if m.sendFn != nil {
		return m.sendFn(ctx, email)
	}
	results := make([]SendResult, len(email.To))
	for i, addr := range email.To {
		results[i] = SendResult{Recipient: addr.String(), MessageID: "msg-1", Success: true}
	}
	return results, nil
}

func (m *mockTransport) Name() string { return "mock" }

// mockResolver implements TemplateResolver for testing.
type mockResolver struct {
	resolveFn func(ctx context.Context, name string) (Identifier, error)
	callCount int
	lastName  string
}

func (m *mockResolver) ResolveByName(ctx context.Context, name string) (Identifier, error) {
	m.callCount++
	m.lastName = name
	if m.resolveFn != nil {
		return m.resolveFn(ctx, name)
	}
	return "", ErrTemplateNotFound
}

// Well-formed identifier tokens for tests. The first three characters are
// the key prefix: 005 is User, 003 is Contact, 00X is EmailTemplate.
const (
	userID     = "005000000000AAA"
	userIDLong = "005000000000AAAEXT"
	contactID  = "003000000000AAA"
	templateID = "00X000000000AAA"
)

func newTestService(t *testing.T, transport *mockTransport, resolver TemplateResolver) *Service {
	t.Helper()
	opts := []Option{WithTransport(transport)}
	if resolver != nil {
		opts = append(opts, WithTemplateResolver(resolver))
	}
	svc, err := NewService(opts...)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return svc
}

func TestBuilderSuppression(t *testing.T) {
	t.Run("defaults to save as interaction", func(t *testing.T) {
		svc := newTestService(t, &mockTransport{}, nil)
		if !svc.Compose().Email().SaveAsInteraction {
			t.Error("expected SaveAsInteraction true on a fresh builder")
		}
	})

	t.Run("user identifier as first recipient suppresses", func(t *testing.T) {
		svc := newTestService(t, &mockTransport{}, nil)
		b := svc.Compose().To(userID)
		if b.Email().SaveAsInteraction {
			t.Error("expected SaveAsInteraction false for user-type first recipient")
		}
	})

	t.Run("long-form user identifier suppresses", func(t *testing.T) {
		svc := newTestService(t, &mockTransport{}, nil)
		b := svc.Compose().To(userIDLong)
		if b.Email().SaveAsInteraction {
			t.Error("expected SaveAsInteraction false for 18-character user identifier")
		}
	})

	t.Run("plain address keeps save enabled", func(t *testing.T) {
		svc := newTestService(t, &mockTransport{}, nil)
		b := svc.Compose().To("user@example.com")
		if !b.Email().SaveAsInteraction {
			t.Error("expected SaveAsInteraction true for plain address")
		}
	})

	t.Run("non-user identifier keeps save enabled", func(t *testing.T) {
		svc := newTestService(t, &mockTransport{}, nil)
		b := svc.Compose().To(contactID)
		if !b.Email().SaveAsInteraction {
			t.Error("expected SaveAsInteraction true for contact identifier")
		}
	})

	t.Run("only the first address is inspected", func(t *testing.T) {
		svc := newTestService(t, &mockTransport{}, nil)
		b := svc.Compose().To("user@example.com", userID)
		if !b.Email().SaveAsInteraction {
			t.Error("expected SaveAsInteraction true when user identifier is not first")
		}
	})

	t.Run("related user record suppresses", func(t *testing.T) {
		svc := newTestService(t, &mockTransport{}, nil)
		b := svc.Compose().RelatedTo(userID)
		if b.Email().SaveAsInteraction {
			t.Error("expected SaveAsInteraction false for user-type related record")
		}
	})

	t.Run("related non-user record keeps save enabled", func(t *testing.T) {
		svc := newTestService(t, &mockTransport{}, nil)
		b := svc.Compose().RelatedTo(contactID)
		if !b.Email().SaveAsInteraction {
			t.Error("expected SaveAsInteraction true for contact related record")
		}
	})

	t.Run("suppression by related record survives later To", func(t *testing.T) {
		svc := newTestService(t, &mockTransport{}, nil)
		b := svc.Compose().RelatedTo(userID).To("user@example.com")
		if b.Email().SaveAsInteraction {
			t.Error("expected suppression to be monotonic: To with plain address must not re-enable")
		}
	})

	t.Run("suppression by To survives later RelatedTo", func(t *testing.T) {
		svc := newTestService(t, &mockTransport{}, nil)
		b := svc.Compose().To(userID).RelatedTo(contactID)
		if b.Email().SaveAsInteraction {
			t.Error("expected suppression to be monotonic: RelatedTo with contact must not re-enable")
		}
	})

	t.Run("replacing recipients does not re-enable within one builder", func(t *testing.T) {
		svc := newTestService(t, &mockTransport{}, nil)
		b := svc.Compose().To(userID).To("user@example.com")
		if b.Email().SaveAsInteraction {
			t.Error("expected suppression to stick after recipient list is replaced")
		}
	})

	t.Run("cc recipients never trigger detection", func(t *testing.T) {
		svc := newTestService(t, &mockTransport{}, nil)
		b := svc.Compose().To("user@example.com").CCTo(userID)
		if !b.Email().SaveAsInteraction {
			t.Error("expected SaveAsInteraction true: cc list is outside the provider rule")
		}
	})

	t.Run("fresh builder is unaffected by a previous one", func(t *testing.T) {
		svc := newTestService(t, &mockTransport{}, nil)
		svc.Compose().To(userID)
		b := svc.Compose().To("user@example.com")
		if !b.Email().SaveAsInteraction {
			t.Error("expected suppression to be scoped to a single builder instance")
		}
	})
}

func TestBuilderSetters(t *testing.T) {
	svc := newTestService(t, &mockTransport{}, nil)

	t.Run("accumulates fields through the chain", func(t *testing.T) {
		email := svc.Compose().
			To("a@example.com", "b@example.com").
			CCTo("c@example.com").
			WithSubject("Hi").
			WithBody("plain").
			WithRichTextBody("<b>rich</b>").
			UsingMergeContext(Identifier(contactID)).
			Email()

		if len(email.To) != 2 {
			t.Fatalf("expected 2 recipients, got %d", len(email.To))
		}
		if got := email.To[0].String(); got != "a@example.com" {
			t.Errorf("expected first recipient a@example.com, got %q", got)
		}
		if len(email.CC) != 1 || email.CC[0].String() != "c@example.com" {
			t.Errorf("unexpected cc list: %v", email.CC)
		}
		if email.Subject != "Hi" {
			t.Errorf("expected subject Hi, got %q", email.Subject)
		}
		if email.TextBody != "plain" || email.HTMLBody != "<b>rich</b>" {
			t.Errorf("unexpected bodies: %q / %q", email.TextBody, email.HTMLBody)
		}
		if email.MergeContext != Identifier(contactID) {
			t.Errorf("expected merge context %q, got %q", contactID, email.MergeContext)
		}
	})

	t.Run("merge context is independent of related record", func(t *testing.T) {
		email := svc.Compose().UsingMergeContext(Identifier(contactID)).Email()
		if email.RelatedRecord != "" {
			t.Errorf("expected related record unset, got %q", email.RelatedRecord)
		}
	})

	t.Run("To replaces the previous list", func(t *testing.T) {
		email := svc.Compose().To("a@example.com").To("b@example.com").Email()
		if len(email.To) != 1 || email.To[0].String() != "b@example.com" {
			t.Errorf("expected To to replace the list, got %v", email.To)
		}
	})
}

func TestWithAttachments(t *testing.T) {
	svc := newTestService(t, &mockTransport{}, nil)

	t.Run("empty call leaves existing attachments untouched", func(t *testing.T) {
		b := svc.Compose().WithAttachments(RawAttachment{Filename: "a.pdf", Content: []byte{1}})
		b.WithAttachments()
		email := b.Email()
		if len(email.Attachments) != 1 {
			t.Fatalf("expected 1 attachment, got %d", len(email.Attachments))
		}
	})

	t.Run("maps sources preserving order", func(t *testing.T) {
		email := svc.Compose().WithAttachments(
			RawAttachment{Filename: "a.pdf", Content: []byte("first")},
			RawAttachment{Filename: "b.txt", Content: []byte("second")},
		).Email()

		if len(email.Attachments) != 2 {
			t.Fatalf("expected 2 attachments, got %d", len(email.Attachments))
		}
		if email.Attachments[0].Filename != "a.pdf" || string(email.Attachments[0].Body) != "first" {
			t.Errorf("unexpected first attachment: %+v", email.Attachments[0])
		}
		if email.Attachments[1].Filename != "b.txt" || string(email.Attachments[1].Body) != "second" {
			t.Errorf("unexpected second attachment: %+v", email.Attachments[1])
		}
	})

	t.Run("successive calls append", func(t *testing.T) {
		email := svc.Compose().
			WithAttachments(RawAttachment{Filename: "a.pdf"}).
			WithAttachments(RawAttachment{Filename: "b.txt"}).
			Email()
		if len(email.Attachments) != 2 {
			t.Fatalf("expected 2 attachments, got %d", len(email.Attachments))
		}
	})

	t.Run("nil sources are skipped", func(t *testing.T) {
		email := svc.Compose().WithAttachments(nil, RawAttachment{Filename: "a.pdf"}).Email()
		if len(email.Attachments) != 1 {
			t.Fatalf("expected 1 attachment, got %d", len(email.Attachments))
		}
	})
}

func TestUsingTemplate(t *testing.T) {
	ctx := context.Background()

	t.Run("blank value is a no-op", func(t *testing.T) {
		resolver := &mockResolver{}
		svc := newTestService(t, &mockTransport{}, resolver)
		b := svc.Compose()
		if err := b.UsingTemplate(ctx, ""); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if b.Email().Template != "" {
			t.Errorf("expected template unset, got %q", b.Email().Template)
		}
		if resolver.callCount != 0 {
			t.Errorf("expected resolver not invoked, got %d calls", resolver.callCount)
		}
	})

	t.Run("identifier value is used directly", func(t *testing.T) {
		resolver := &mockResolver{}
		svc := newTestService(t, &mockTransport{}, resolver)
		b := svc.Compose()
		if err := b.UsingTemplate(ctx, templateID); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if b.Email().Template != Identifier(templateID) {
			t.Errorf("expected template %q, got %q", templateID, b.Email().Template)
		}
		if resolver.callCount != 0 {
			t.Errorf("expected resolver not invoked, got %d calls", resolver.callCount)
		}
	})

	t.Run("name resolves through the resolver exactly once", func(t *testing.T) {
		resolver := &mockResolver{
			resolveFn: func(_ context.Context, name string) (Identifier, error) {
				return Identifier(templateID), nil
			},
		}
		svc := newTestService(t, &mockTransport{}, resolver)
		b := svc.Compose()
		if err := b.UsingTemplate(ctx, "Welcome_Template"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if b.Email().Template != Identifier(templateID) {
			t.Errorf("expected template %q, got %q", templateID, b.Email().Template)
		}
		if resolver.callCount != 1 {
			t.Errorf("expected exactly one resolver call, got %d", resolver.callCount)
		}
		if resolver.lastName != "Welcome_Template" {
			t.Errorf("expected resolver called with Welcome_Template, got %q", resolver.lastName)
		}
	})

	t.Run("resolver failure propagates and template stays unset", func(t *testing.T) {
		resolver := &mockResolver{}
		svc := newTestService(t, &mockTransport{}, resolver)
		b := svc.Compose()
		err := b.UsingTemplate(ctx, "Missing_Template")
		if !errors.Is(err, ErrTemplateNotFound) {
			t.Fatalf("expected ErrTemplateNotFound, got %v", err)
		}
		if b.Email().Template != "" {
			t.Errorf("expected template unset after failure, got %q", b.Email().Template)
		}
	})

	t.Run("name without a resolver fails", func(t *testing.T) {
		svc := newTestService(t, &mockTransport{}, nil)
		err := svc.Compose().UsingTemplate(ctx, "Welcome_Template")
		if !errors.Is(err, ErrResolverRequired) {
			t.Fatalf("expected ErrResolverRequired, got %v", err)
		}
	})
}

func TestSend(t *testing.T) {
	ctx := context.Background()

	t.Run("returns transport results verbatim", func(t *testing.T) {
		perRecipient := []SendResult{
			{Recipient: "a@example.com", MessageID: "m1", Success: true},
			{Recipient: "b@example.com", Success: false, Error: errors.New("bounced")},
		}
		transport := &mockTransport{
			sendFn: func(_ context.Context, _ *Email) ([]SendResult, error) {
				return perRecipient, nil
			},
		}
		svc := newTestService(t, transport, nil)

		results, err := svc.Compose().To("a@example.com", "b@example.com").Send(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(results) != 2 {
			t.Fatalf("expected 2 results, got %d", len(results))
		}
		if results[0] != perRecipient[0] {
			t.Errorf("expected first result passed through unchanged, got %+v", results[0])
		}
		if results[1].Error == nil || results[1].Success {
			t.Errorf("expected second result to carry the per-recipient failure, got %+v", results[1])
		}
	})

	t.Run("transport rejection propagates unchanged", func(t *testing.T) {
		transport := &mockTransport{
			sendFn: func(_ context.Context, _ *Email) ([]SendResult, error) {
				return nil, ErrEmptyRecipients
			},
		}
		svc := newTestService(t, transport, nil)

		_, err := svc.Compose().Send(ctx)
		if !errors.Is(err, ErrRejected) {
			t.Fatalf("expected ErrRejected, got %v", err)
		}
	})

	t.Run("transport receives a frozen snapshot", func(t *testing.T) {
		transport := &mockTransport{}
		svc := newTestService(t, transport, nil)

		b := svc.Compose().To("a@example.com").WithSubject("before")
		if _, err := b.Send(ctx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		b.WithSubject("after").To("b@example.com")

		if transport.lastEmail.Subject != "before" {
			t.Errorf("expected snapshot subject %q, got %q", "before", transport.lastEmail.Subject)
		}
		if len(transport.lastEmail.To) != 1 || transport.lastEmail.To[0].String() != "a@example.com" {
			t.Errorf("expected snapshot recipient list unchanged, got %v", transport.lastEmail.To)
		}
	})
}

func TestEndToEnd(t *testing.T) {
	ctx := context.Background()

	t.Run("plain address keeps interaction history", func(t *testing.T) {
		transport := &mockTransport{}
		svc := newTestService(t, transport, nil)

		results, err := svc.Compose().
			To("user@example.com").
			WithSubject("Hi").
			WithBody("Hello").
			Send(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		sent := transport.lastEmail
		if !sent.SaveAsInteraction {
			t.Error("expected SaveAsInteraction true for plain address")
		}
		if len(sent.To) != 1 || sent.To[0].String() != "user@example.com" {
			t.Errorf("unexpected recipient list: %v", sent.To)
		}
		if sent.Subject != "Hi" || sent.TextBody != "Hello" {
			t.Errorf("unexpected subject/body: %q / %q", sent.Subject, sent.TextBody)
		}
		if len(results) != 1 || !results[0].Success {
			t.Errorf("expected one successful result, got %v", results)
		}
	})

	t.Run("user identifier suppresses interaction history", func(t *testing.T) {
		transport := &mockTransport{}
		svc := newTestService(t, transport, nil)

		if _, err := svc.Compose().To(userID).WithSubject("Hi").Send(ctx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if transport.lastEmail.SaveAsInteraction {
			t.Error("expected SaveAsInteraction false for user-type recipient")
		}
	})
}
