package identifiers

import "testing"

func TestCanonicalise(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"orcid url", "https://orcid.org/0000-0001-2345-6789", "0000-0001-2345-6789"},
		{"ror url", "https://ror.org/03yrm5c26", "03yrm5c26"},
		{"trailing slash", "https://orcid.org/0000-0001-2345-6789/", "0000-0001-2345-6789"},
		{"bare identifier untouched", "0000-0001-2345-6789", "0000-0001-2345-6789"},
		{"whitespace trimmed", "  0000-0001-2345-6789 ", "0000-0001-2345-6789"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Canonicalise(tt.input); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDetectScheme(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"orcid", "0000-0001-2345-6789", "ORCID"},
		{"orcid with X checksum", "0000-0002-1825-009X", "ORCID"},
		{"orcid in url form", "https://orcid.org/0000-0001-2345-6789", "ORCID"},
		{"ror", "03yrm5c26", "ROR"},
		{"unknown", "12345", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectScheme(tt.input); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsIdentifierURL(t *testing.T) {
	if !IsIdentifierURL("https://ror.org/03yrm5c26") {
		t.Error("https URL should be detected")
	}
	if IsIdentifierURL("0000-0001-2345-6789") {
		t.Error("bare identifier is not a URL")
	}
}

func TestSchemeURI(t *testing.T) {
	if got := SchemeURI("ORCID"); got != "https://orcid.org" {
		t.Errorf("got %q", got)
	}
	if got := SchemeURI("ROR"); got != "https://ror.org" {
		t.Errorf("got %q", got)
	}
	if got := SchemeURI("labid"); got != "" {
		t.Errorf("got %q, want empty", got)
	}
}
