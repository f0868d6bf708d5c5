package notification

// TypeTag names the logical entity type an Identifier points to.
type TypeTag string

// Well-known type tags. TypeUnknown is returned for tokens that are not
// structurally valid identifiers or whose key prefix is not registered.
const (
	TypeUnknown       TypeTag = ""
	TypeUser          TypeTag = "User"
	TypeContact       TypeTag = "Contact"
	TypeLead          TypeTag = "Lead"
	TypeAccount       TypeTag = "Account"
	TypeEmailTemplate TypeTag = "EmailTemplate"
)

// keyPrefixLength is the number of leading characters that identify the
// owning entity type of an identifier.
const keyPrefixLength = 3

// Identifier is an opaque reference token. The first three characters form
// the key prefix that names the owning entity type; the rest is opaque.
// Tokens come in a short (15 character) and a long (18 character) form.
type Identifier string

// ParseIdentifier reports whether s is a structurally valid identifier and
// returns it as an Identifier. Validity is purely structural: 15 or 18
// alphanumeric characters. A plain email address is never a valid identifier.
func ParseIdentifier(s string) (Identifier, bool) {
	if len(s) != 15 && len(s) != 18 {
		return "", false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		default:
			return "", false
		}
	}
	return Identifier(s), true
}

// IsIdentifier reports whether s is a structurally valid identifier.
func IsIdentifier(s string) bool {
	_, ok := ParseIdentifier(s)
	return ok
}

// KeyPrefix returns the three-character key prefix of the identifier.
func (id Identifier) KeyPrefix() string {
	if len(id) < keyPrefixLength {
		return ""
	}
	return string(id[:keyPrefixLength])
}

// String returns the identifier as a string.
func (id Identifier) String() string {
	return string(id)
}

// StandardPrefixes returns the built-in key prefix table mapping the
// well-known prefixes to their type tags. The returned map is a copy and
// may be extended by the caller before handing it to a registry.
func StandardPrefixes() map[string]TypeTag {
	return map[string]TypeTag{
		"001": TypeAccount,
		"003": TypeContact,
		"005": TypeUser,
		"00Q": TypeLead,
		"00X": TypeEmailTemplate,
	}
}
