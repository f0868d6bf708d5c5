// Package notification provides a fluent builder for composing and
// dispatching single-recipient email notifications through an external
// messaging provider.
//
// The builder accumulates recipients, bodies, a related record, a template
// and attachments, then hands the frozen configuration to a Transport. Its
// one piece of conditional logic is the save-as-interaction rule: when the
// destination resolves to an internal user principal (detected from the
// first recipient address or from the related record), logging the message
// as interaction history is suppressed, because the provider rejects that
// combination.
//
// # Basic Usage
//
//	svc, err := notification.NewService(
//	    notification.WithTransport(transport),
//	    notification.WithTemplateResolver(resolver),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	b := svc.Compose().
//	    To("user@example.com").
//	    WithSubject("Welcome").
//	    WithBody("Hello there")
//
//	if err := b.UsingTemplate(ctx, "Welcome_Template"); err != nil {
//	    log.Fatal(err)
//	}
//
//	results, err := b.Send(ctx)
//
// Recipient slots accept either literal email addresses or opaque typed
// identifiers; the classifier decides which shape a value is at the moment
// it enters the builder.
//
// # Collaborators
//
// Transports live in transport/memory (testing), transport/ses (AWS SES v2)
// and transport/resend (Resend API). Template resolvers live in
// template/static and template/cached (Redis read-through cache). Key
// prefix registries live in registry/static and registry/postgres. The
// attachment/s3 and attachment/gcs packages turn object-storage content
// into attachment sources.
package notification
