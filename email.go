package notification

// Email is the configuration accumulated by a Builder and consumed by a
// Transport. It is mutable while building and snapshotted at Send, so the
// copy handed to the transport never changes afterwards.
type Email struct {
	// To holds the primary recipients in order. The builder does not require
	// it to be non-empty; an empty list is the transport's concern.
	To []Address

	// CC holds the carbon-copy recipients in order.
	CC []Address

	// Subject, TextBody and HTMLBody are optional and not mutually
	// exclusive; the transport decides precedence when both bodies are set.
	Subject  string
	TextBody string
	HTMLBody string

	// RelatedRecord anchors the email to a record for interaction history
	// and template merging.
	RelatedRecord Identifier

	// MergeContext supplies the record whose fields fill template
	// placeholders. Kept independent from RelatedRecord; the two are not
	// required to be set together.
	MergeContext Identifier

	// Template is the resolved template identifier, if any.
	Template Identifier

	// Attachments are (filename, body) pairs in the order they were added.
	Attachments []Attachment

	// SaveAsInteraction controls whether the provider logs the message as an
	// activity against the related record. It is forced to false whenever
	// the destination is a user-type principal, because the provider rejects
	// that combination.
	SaveAsInteraction bool
}

// clone returns a deep copy of the configuration.
func (e *Email) clone() *Email {
	c := *e
	if e.To != nil {
		c.To = append([]Address(nil), e.To...)
	}
	if e.CC != nil {
		c.CC = append([]Address(nil), e.CC...)
	}
	if e.Attachments != nil {
		c.Attachments = append([]Attachment(nil), e.Attachments...)
	}
	return &c
}

// Attachment is a named binary payload carried with the email.
type Attachment struct {
	Filename string
	Body     []byte
}

// AttachmentSource is an external record exposing a name and a binary body.
// The builder reads sources; it never writes them. The attachment/s3 and
// attachment/gcs packages produce sources from object storage.
type AttachmentSource interface {
	Name() string
	BinaryBody() []byte
}

// RawAttachment is an in-memory AttachmentSource.
type RawAttachment struct {
	Filename string
	Content  []byte
}

// Name returns the attachment filename.
func (r RawAttachment) Name() string { return r.Filename }

// BinaryBody returns the attachment content.
func (r RawAttachment) BinaryBody() []byte { return r.Content }
