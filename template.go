package notification

import "context"

// TemplateResolver maps developer-facing template names to identifiers.
// Implementations must be safe for concurrent use.
//
// The template/static and template/cached packages provide implementations.
type TemplateResolver interface {
	// ResolveByName returns the identifier for the named template.
	// Returns an error wrapping ErrTemplateNotFound when no template
	// matches.
	ResolveByName(ctx context.Context, name string) (Identifier, error)
}
