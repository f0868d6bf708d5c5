package notification

import (
	"errors"
	"fmt"
)

// Sentinel errors for the notification package.
// Use errors.Is() to check for these errors.
var (
	// ErrTransportRequired is returned by NewService when no transport is
	// configured.
	ErrTransportRequired = errors.New("notification: transport is required")

	// ErrResolverRequired is returned by UsingTemplate when a template name
	// needs resolving but no resolver is configured.
	ErrResolverRequired = errors.New("notification: template resolver is required")

	// ErrTemplateNotFound is returned by template resolvers when a name
	// cannot be resolved. The builder performs no recovery; the failure
	// surfaces to the caller unchanged.
	ErrTemplateNotFound = errors.New("notification: template not found")

	// ErrRejected is returned by transports that refuse a configuration,
	// for example one with a malformed address. The builder surfaces it
	// unchanged.
	ErrRejected = errors.New("notification: configuration rejected by transport")

	// ErrEmptyRecipients is returned by transports when the configuration
	// has no primary recipients. Wraps ErrRejected for consistent checking.
	ErrEmptyRecipients = fmt.Errorf("notification: no recipients: %w", ErrRejected)
)
