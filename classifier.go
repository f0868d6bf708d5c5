package notification

// TypeRegistry maps identifier key prefixes to type tags. It is the lookup
// capability behind the classifier; implementations must be safe for
// concurrent use and deterministic within a process lifetime.
//
// The registry and registry/postgres packages provide implementations backed
// by an in-memory map and a PostgreSQL table respectively.
type TypeRegistry interface {
	// TypeOf returns the type tag registered for the given key prefix.
	// The second return value is false when the prefix is not registered.
	TypeOf(keyPrefix string) (TypeTag, bool)
}

// defaultRegistry serves the built-in standard prefix table.
type defaultRegistry struct {
	prefixes map[string]TypeTag
}

func (r *defaultRegistry) TypeOf(keyPrefix string) (TypeTag, bool) {
	tag, ok := r.prefixes[keyPrefix]
	return tag, ok
}

// Classifier determines the type tag of opaque identifier tokens.
// It has no side effects: classification of a structurally invalid token
// (such as a plain email address) degrades to TypeUnknown without error.
type Classifier struct {
	registry TypeRegistry
}

// NewClassifier creates a classifier backed by the given registry.
// A nil registry falls back to the built-in standard prefix table.
func NewClassifier(registry TypeRegistry) *Classifier {
	if registry == nil {
		registry = &defaultRegistry{prefixes: StandardPrefixes()}
	}
	return &Classifier{registry: registry}
}

// Classify returns the type tag for token. Structurally invalid tokens and
// identifiers with an unregistered key prefix yield TypeUnknown.
func (c *Classifier) Classify(token string) TypeTag {
	id, ok := ParseIdentifier(token)
	if !ok {
		return TypeUnknown
	}
	return c.ClassifyIdentifier(id)
}

// ClassifyIdentifier returns the type tag for an already-parsed identifier.
func (c *Classifier) ClassifyIdentifier(id Identifier) TypeTag {
	tag, ok := c.registry.TypeOf(id.KeyPrefix())
	if !ok {
		return TypeUnknown
	}
	return tag
}

// Address builds an Address from a raw caller-supplied string, classifying
// it exactly once. Strings that parse as identifiers become typed
// references; everything else is treated as a plain address.
func (c *Classifier) Address(raw string) Address {
	if id, ok := ParseIdentifier(raw); ok {
		return TypedRef(id, c.ClassifyIdentifier(id))
	}
	return PlainAddress(raw)
}
