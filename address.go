package notification

// Address is a recipient slot that holds either a literal email address or
// a typed identifier reference. Callers never declare which shape they are
// passing; Classifier.Address decides at construction time, so the
// classification result travels with the value instead of being re-derived.
type Address struct {
	raw string
	ref Identifier
	tag TypeTag
}

// PlainAddress builds an Address from a literal email address string.
func PlainAddress(raw string) Address {
	return Address{raw: raw}
}

// TypedRef builds an Address from an identifier and its classified type tag.
func TypedRef(id Identifier, tag TypeTag) Address {
	return Address{ref: id, tag: tag}
}

// IsRef reports whether the address is a typed identifier reference.
func (a Address) IsRef() bool {
	return a.ref != ""
}

// Ref returns the identifier for typed references, or the empty Identifier
// for plain addresses.
func (a Address) Ref() Identifier {
	return a.ref
}

// Tag returns the type tag of a typed reference. Plain addresses always
// carry TypeUnknown.
func (a Address) Tag() TypeTag {
	return a.tag
}

// IsUser reports whether the address references a user-type principal.
func (a Address) IsUser() bool {
	return a.tag == TypeUser
}

// String returns the literal address for plain addresses and the identifier
// token for typed references.
func (a Address) String() string {
	if a.IsRef() {
		return a.ref.String()
	}
	return a.raw
}
