package igsn

import (
	"strings"
	"testing"
)

const sampleHeader = "igsn|title|name|orcid|sample_type|material|latitude|longitude|collection_start_date|collection_end_date|keywords|contributors|related_identifiers|funding|size|laboratory|description"

func parseString(t *testing.T, content string) *ParseResult {
	t.Helper()
	result, err := Parse(strings.NewReader(content))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	return result
}

func TestParseValidRow(t *testing.T) {
	content := sampleHeader + "\n" +
		"IEMEG0001|Basalt core VEMA-1|Müller, Anna|0000-0001-2345-6789|Core|Basalt|10.7|-41.5|2019-05|2019-06|basalt, ridge|Okafor, Ben (Data Collector)|DOI:10.1594/IEDA/100023|National Science Foundation (OCE-1558679)|Drilled Length [m]: 12.5|WHOI Core Lab|Mid-Atlantic Ridge core"

	result := parseString(t, content)
	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(result.Rows))
	}

	row := result.Rows[0]
	if row.IGSN != "IEMEG0001" || row.Title != "Basalt core VEMA-1" {
		t.Errorf("row = %+v", row)
	}
	if row.Creator.Name != "Müller, Anna" || row.Creator.ORCID != "0000-0001-2345-6789" {
		t.Errorf("creator = %+v", row.Creator)
	}
	if len(row.Keywords) != 2 || row.Keywords[1] != "ridge" {
		t.Errorf("keywords = %v", row.Keywords)
	}

	if len(row.Contributors) != 1 {
		t.Fatalf("contributors = %v", row.Contributors)
	}
	if row.Contributors[0].Name != "Okafor, Ben" || row.Contributors[0].Role != "data-collector" {
		t.Errorf("contributor = %+v", row.Contributors[0])
	}

	if len(row.Related) != 1 {
		t.Fatalf("related = %v", row.Related)
	}
	rel := row.Related[0]
	if rel.Type != "DOI" || rel.Identifier != "10.1594/IEDA/100023" || rel.Relation != "References" {
		t.Errorf("related = %+v", rel)
	}

	if len(row.Funding) != 1 {
		t.Fatalf("funding = %v", row.Funding)
	}
	if row.Funding[0].FunderName != "National Science Foundation" || row.Funding[0].AwardNumber != "OCE-1558679" {
		t.Errorf("funding = %+v", row.Funding[0])
	}
}

func TestParseSizeDecomposition(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Size
	}{
		{
			name:  "labeled with unit and value",
			input: "Drilled Length [m]: 12.5",
			want:  Size{Type: "Drilled Length", Unit: "m", Value: "12.5"},
		},
		{
			name:  "no unit",
			input: "Core Sections: 4",
			want:  Size{Type: "Core Sections", Value: "4"},
		},
		{
			name:  "label only",
			input: "Drilled Length [m]",
			want:  Size{Type: "Drilled Length", Unit: "m"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseSizes(tt.input)
			if len(got) != 1 {
				t.Fatalf("sizes = %v", got)
			}
			if got[0] != tt.want {
				t.Errorf("got %+v, want %+v", got[0], tt.want)
			}
		})
	}
}

func TestSizeString(t *testing.T) {
	s := Size{Type: "Drilled Length", Unit: "m", Value: "12.5"}
	if got := s.String(); got != "Drilled Length: 12.5 m" {
		t.Errorf("got %q", got)
	}
}

func TestParseMissingRequiredField(t *testing.T) {
	content := sampleHeader + "\n" +
		"|No IGSN here|Smith, John|||||||||||||\n" +
		"IEMEG0002|Valid row|Smith, John|||||||||||||"

	result := parseString(t, content)
	if len(result.Errors) != 1 {
		t.Fatalf("errors = %v, want 1", result.Errors)
	}
	if result.Errors[0].Row != 1 {
		t.Errorf("error row = %d, want 1", result.Errors[0].Row)
	}
	if result.Errors[0].Message != "Missing required field: igsn" {
		t.Errorf("message = %q", result.Errors[0].Message)
	}
	if len(result.Rows) != 1 || result.Rows[0].IGSN != "IEMEG0002" {
		t.Errorf("valid rows in the same file must still parse, got %+v", result.Rows)
	}
}

func TestParseRecommendedFieldWarning(t *testing.T) {
	content := sampleHeader + "\n" +
		"IEMEG0001|Title|Smith, John||Core||10.7|-41.5|||||||||"

	result := parseString(t, content)
	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Warnings) != 1 {
		t.Fatalf("warnings = %v, want 1", result.Warnings)
	}
	if result.Warnings[0].Message != "Missing recommended field: material" {
		t.Errorf("warning = %q", result.Warnings[0].Message)
	}
	if len(result.Rows) != 1 {
		t.Error("warnings must not block the row")
	}
}

func TestParseHeaderCaseInsensitive(t *testing.T) {
	content := "IGSN|Title|Name\nIEMEG0001|T|Smith, John"
	result := parseString(t, content)
	if len(result.Rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(result.Rows))
	}
}

func TestParseMalformedHeader(t *testing.T) {
	_, err := Parse(strings.NewReader("igsn|title\nIEMEG0001|T"))
	if err == nil {
		t.Fatal("header without the name column must be fatal")
	}
	if !strings.Contains(err.Error(), "name") {
		t.Errorf("error should name the missing column: %v", err)
	}
}

func TestParseEmptyFile(t *testing.T) {
	if _, err := Parse(strings.NewReader("")); err == nil {
		t.Fatal("empty file must be an error")
	}
}
