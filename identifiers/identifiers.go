// Package identifiers handles external identifier schemes for persons and
// organizations (ORCID, ROR). The network lookup of organization names is a
// collaborator capability declared as an interface; the text-level helpers
// live here.
package identifiers

import (
	"regexp"
	"strings"
)

var (
	orcidRegex = regexp.MustCompile(`^\d{4}-\d{4}-\d{4}-\d{3}[\dXx]$`)
	rorRegex   = regexp.MustCompile(`^0[a-z0-9]{8}$`)
	urlRegex   = regexp.MustCompile(`^https?://`)
)

// OrganizationResolver resolves an organization identifier to its
// registered name. Implementations talk to ROR or a local cache; timeout
// and retry policy are theirs entirely.
type OrganizationResolver interface {
	// ResolveOrganizationName returns the organization name for the
	// identifier, or "" when the identifier is unknown.
	ResolveOrganizationName(identifier string) (string, error)
}

// NoopResolver never resolves anything. It keeps the core usable without a
// network collaborator.
type NoopResolver struct{}

// ResolveOrganizationName always returns the empty string.
func (NoopResolver) ResolveOrganizationName(string) (string, error) { return "", nil }

// IsIdentifierURL reports whether the text is an identifier in URL form
// (https://orcid.org/..., https://ror.org/...).
func IsIdentifierURL(text string) bool {
	return urlRegex.MatchString(strings.TrimSpace(text))
}

// Canonicalise strips URL prefixes from an identifier, returning the bare
// value: "https://orcid.org/0000-0001-2345-6789" -> "0000-0001-2345-6789".
func Canonicalise(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimSuffix(text, "/")
	if !IsIdentifierURL(text) {
		return text
	}
	if i := strings.LastIndex(text, "/"); i >= 0 {
		return text[i+1:]
	}
	return text
}

// DetectScheme guesses the identifier scheme from the identifier's shape.
// Returns "" when the shape matches no known scheme.
func DetectScheme(identifier string) string {
	id := Canonicalise(identifier)
	switch {
	case orcidRegex.MatchString(id):
		return "ORCID"
	case rorRegex.MatchString(id):
		return "ROR"
	default:
		return ""
	}
}

// SchemeURI returns the canonical scheme URI for a known scheme.
func SchemeURI(scheme string) string {
	switch strings.ToUpper(scheme) {
	case "ORCID":
		return "https://orcid.org"
	case "ROR":
		return "https://ror.org"
	default:
		return ""
	}
}
