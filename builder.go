package notification

import "context"

// Builder accumulates a single email configuration through chained calls.
// All setter methods return the Builder to enable chaining:
//
//	svc.Compose().To("user@example.com").WithSubject("Hi").WithBody("Hello")
//
// Operations that can fail (UsingTemplate, Send) return errors and are
// intentionally not part of the fluent chain.
//
// A Builder is request-scoped: build it, send it once, and discard it.
// It is not safe for concurrent use, and behavior after Send is unspecified.
type Builder struct {
	svc   *Service
	email Email

	// userTarget is the running disjunction of user-principal detections.
	// It only ever flips to true; SaveAsInteraction is recomputed from it
	// after every relevant mutation so the invariant cannot go stale no
	// matter the call order.
	userTarget bool
}

// To replaces the primary recipient list. Addresses are accepted either as
// literal email strings or as identifier tokens. Detection inspects the
// first address only; mixed recipient lists beyond the first element are a
// known limitation carried over from the provider's rule.
func (b *Builder) To(addresses ...string) *Builder {
	to := make([]Address, len(addresses))
	for i, raw := range addresses {
		to[i] = b.svc.classifier.Address(raw)
	}
	b.email.To = to

	if len(to) > 0 && to[0].IsUser() {
		b.userTarget = true
	}
	b.refreshSaveAsInteraction()
	return b
}

// CCTo replaces the carbon-copy recipient list. The provider's user-target
// restriction applies to primary recipients and the related record only, so
// no detection runs here.
func (b *Builder) CCTo(addresses ...string) *Builder {
	cc := make([]Address, len(addresses))
	for i, raw := range addresses {
		cc[i] = b.svc.classifier.Address(raw)
	}
	b.email.CC = cc
	return b
}

// WithBody sets the plain-text body.
func (b *Builder) WithBody(text string) *Builder {
	b.email.TextBody = text
	return b
}

// WithRichTextBody sets the HTML body. Both bodies may be set; the
// transport decides precedence.
func (b *Builder) WithRichTextBody(html string) *Builder {
	b.email.HTMLBody = html
	return b
}

// WithSubject sets the subject.
func (b *Builder) WithSubject(text string) *Builder {
	b.email.Subject = text
	return b
}

// RelatedTo anchors the email to a record and re-runs user detection
// against it. Detection results accumulate: once a user-type principal has
// been seen here or in To, SaveAsInteraction stays suppressed.
func (b *Builder) RelatedTo(recordID Identifier) *Builder {
	b.email.RelatedRecord = recordID

	if b.svc.classifier.ClassifyIdentifier(recordID) == TypeUser {
		b.userTarget = true
	}
	b.refreshSaveAsInteraction()
	return b
}

// UsingMergeContext sets the record whose fields fill template
// placeholders. Independent of RelatedTo.
func (b *Builder) UsingMergeContext(id Identifier) *Builder {
	b.email.MergeContext = id
	return b
}

// WithAttachments appends one attachment per source, preserving order.
// An empty call is a no-op and leaves previously added attachments intact.
func (b *Builder) WithAttachments(sources ...AttachmentSource) *Builder {
	if len(sources) == 0 {
		return b
	}
	for _, src := range sources {
		if src == nil {
			continue
		}
		b.email.Attachments = append(b.email.Attachments, Attachment{
			Filename: src.Name(),
			Body:     src.BinaryBody(),
		})
	}
	return b
}

// UsingTemplate sets the email template. A blank value is a no-op. If
// nameOrID is already a structurally valid identifier it is used directly;
// otherwise the service's TemplateResolver is consulted. Resolver failures
// propagate unmodified and leave the template unset: fail fast, no
// recovery.
func (b *Builder) UsingTemplate(ctx context.Context, nameOrID string) error {
	if nameOrID == "" {
		return nil
	}

	if id, ok := ParseIdentifier(nameOrID); ok {
		b.email.Template = id
		return nil
	}

	id, err := b.svc.resolveTemplate(ctx, nameOrID)
	if err != nil {
		return err
	}
	b.email.Template = id
	return nil
}

// Send finalizes the configuration and delegates to the transport,
// returning its result list verbatim. No retry, no transformation; transport
// failures surface to the caller unchanged.
func (b *Builder) Send(ctx context.Context) ([]SendResult, error) {
	return b.svc.send(ctx, b.email.clone())
}

// Email returns a snapshot of the configuration accumulated so far.
func (b *Builder) Email() *Email {
	return b.email.clone()
}

// refreshSaveAsInteraction recomputes the flag from the detection
// disjunction. Suppression is monotonic within a builder instance: later
// mutations with non-user destinations never re-enable it.
func (b *Builder) refreshSaveAsInteraction() {
	b.email.SaveAsInteraction = !b.userTarget
}
