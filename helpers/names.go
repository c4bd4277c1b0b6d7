// Package helpers provides parsing utilities shared by the import pipelines.
package helpers

import (
	"regexp"
	"strings"
)

// Suffix tokens that must not be mistaken for a given name when splitting
// "Family, Given" strings. Fixed heuristic; names where a suffix-like token
// really is a given name stay unsplit.
var nameSuffixes = []string{
	"Jr.", "Jr", "Sr.", "Sr", "II", "III", "IV", "V",
	"PhD", "Ph.D.", "MD", "M.D.", "Esq.", "Esq",
}

var whitespaceRegex = regexp.MustCompile(`\s+`)

// ParsedName holds the components of a personal name.
type ParsedName struct {
	Given  string
	Family string
}

// ParsePersonName splits a single name string into given and family parts.
// "Family, Given" takes precedence; otherwise the last whitespace-separated
// token becomes the family name. A comma followed only by a suffix token
// ("Smith, Jr.") does not split the name.
func ParsePersonName(name string) ParsedName {
	name = whitespaceRegex.ReplaceAllString(strings.TrimSpace(name), " ")
	if name == "" {
		return ParsedName{}
	}

	if family, rest, ok := strings.Cut(name, ","); ok {
		rest = strings.TrimSpace(rest)
		if isSuffix(rest) {
			return ParsedName{Family: name}
		}
		return ParsedName{
			Family: strings.TrimSpace(family),
			Given:  rest,
		}
	}

	parts := strings.Fields(name)
	if len(parts) == 1 {
		return ParsedName{Family: parts[0]}
	}
	return ParsedName{
		Given:  strings.Join(parts[:len(parts)-1], " "),
		Family: parts[len(parts)-1],
	}
}

func isSuffix(token string) bool {
	for _, s := range nameSuffixes {
		if strings.EqualFold(token, s) {
			return true
		}
	}
	return false
}

// FormatNameInverted renders a parsed name as "Family, Given".
func (n ParsedName) FormatNameInverted() string {
	if n.Given == "" {
		return n.Family
	}
	return n.Family + ", " + n.Given
}
