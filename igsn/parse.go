// Package igsn ingests pipe-delimited CSV batches of physical-sample
// records. The parser turns the tabular format into structured rows with
// per-row errors and warnings; the store step feeds the rows through the
// same persistence path as the editing front end.
package igsn

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Delimiter separates columns in the IGSN tabular format.
const Delimiter = "|"

// requiredFields must be present and non-empty on every row; a missing
// value is a row-level error that skips the row.
var requiredFields = []string{"igsn", "title", "name"}

// recommendedFields generate a warning when absent but do not block the row.
var recommendedFields = []string{"sample_type", "material", "latitude", "longitude"}

// RowIssue is one parse-time error or warning, addressed by its 1-indexed
// data row number for user-facing display.
type RowIssue struct {
	Row     int
	Message string
}

func (i RowIssue) String() string {
	return fmt.Sprintf("row %d: %s", i.Row, i.Message)
}

// Agent is a person or laboratory reference parsed from a CSV field.
type Agent struct {
	Name  string
	ORCID string
	Role  string // contributor role slug, empty for the creator
}

// Related is a related identifier parsed from a CSV field.
type Related struct {
	Type       string
	Identifier string
	Relation   string
}

// Funding is a funding reference parsed from a CSV field.
type Funding struct {
	FunderName  string
	AwardNumber string
}

// Size is one decomposed size entry: "Drilled Length [m]: 12.5" yields
// {Type: "Drilled Length", Unit: "m", Value: "12.5"}.
type Size struct {
	Type  string
	Unit  string
	Value string
}

// String renders the size for storage: "Drilled Length: 12.5 m".
func (s Size) String() string {
	out := s.Type
	if s.Value != "" {
		out += ": " + s.Value
	}
	if s.Unit != "" {
		out += " " + s.Unit
	}
	return out
}

// Row is one parsed sample record.
type Row struct {
	Line int // 1-indexed data row number

	IGSN       string
	ParentIGSN string
	Title      string
	Creator    Agent

	SampleType       string
	Material         string
	CollectionMethod string
	Description      string

	CollectionStart string
	CollectionEnd   string

	Place     string
	Latitude  string
	Longitude string
	Elevation string
	DepthMin  string
	DepthMax  string

	Keywords     []string
	Contributors []Agent
	Related      []Related
	Funding      []Funding
	Sizes        []Size
	Laboratory   string

	Publisher       string
	PublicationYear string
}

// ParseResult is the outcome of parsing one file.
type ParseResult struct {
	Rows     []Row
	Warnings []RowIssue
	Errors   []RowIssue
}

// Parse reads a pipe-delimited IGSN file. The header row defines column
// order; header names match case-insensitively. A header missing a required
// column is a fatal error; everything below that is reported per row.
func Parse(r io.Reader) (*ParseResult, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("reading header: %w", err)
		}
		return nil, fmt.Errorf("empty file: no header row")
	}

	columns, err := parseHeader(scanner.Text())
	if err != nil {
		return nil, err
	}

	result := &ParseResult{}
	line := 0
	for scanner.Scan() {
		text := scanner.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}
		line++
		row, issues := parseRow(line, columns, strings.Split(text, Delimiter))

		fatal := false
		for _, issue := range issues {
			if strings.HasPrefix(issue.Message, "Missing required field") {
				result.Errors = append(result.Errors, issue)
				fatal = true
			} else {
				result.Warnings = append(result.Warnings, issue)
			}
		}
		if !fatal {
			result.Rows = append(result.Rows, row)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading rows: %w", err)
	}
	return result, nil
}

func parseHeader(header string) (map[string]int, error) {
	columns := make(map[string]int)
	for i, name := range strings.Split(header, Delimiter) {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range requiredFields {
		if _, ok := columns[name]; !ok {
			return nil, fmt.Errorf("malformed header: missing required column %q", name)
		}
	}
	return columns, nil
}

func parseRow(line int, columns map[string]int, fields []string) (Row, []RowIssue) {
	get := func(name string) string {
		i, ok := columns[name]
		if !ok || i >= len(fields) {
			return ""
		}
		return strings.TrimSpace(fields[i])
	}

	var issues []RowIssue
	for _, name := range requiredFields {
		if get(name) == "" {
			issues = append(issues, RowIssue{Row: line, Message: "Missing required field: " + name})
		}
	}
	for _, name := range recommendedFields {
		if _, present := columns[name]; present && get(name) == "" {
			issues = append(issues, RowIssue{Row: line, Message: "Missing recommended field: " + name})
		}
	}

	row := Row{
		Line:             line,
		IGSN:             get("igsn"),
		ParentIGSN:       get("parent_igsn"),
		Title:            get("title"),
		Creator:          Agent{Name: get("name"), ORCID: get("orcid")},
		SampleType:       get("sample_type"),
		Material:         get("material"),
		CollectionMethod: get("collection_method"),
		Description:      get("description"),
		CollectionStart:  get("collection_start_date"),
		CollectionEnd:    get("collection_end_date"),
		Place:            get("locality"),
		Latitude:         get("latitude"),
		Longitude:        get("longitude"),
		Elevation:        get("elevation"),
		DepthMin:         get("depth_min"),
		DepthMax:         get("depth_max"),
		Laboratory:       get("laboratory"),
		Publisher:        get("publisher"),
		PublicationYear:  get("publication_year"),
	}

	row.Keywords = splitMulti(get("keywords"), ", ")
	row.Contributors = parseContributors(get("contributors"))
	row.Related = parseRelated(get("related_identifiers"))
	row.Funding = parseFunding(get("funding"))
	row.Sizes = parseSizes(get("size"))

	return row, issues
}

// splitMulti splits a multi-valued field on the given separator, dropping
// empty entries.
func splitMulti(value, sep string) []string {
	if value == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(value, sep) {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// parseContributors splits "; "-separated entries of the form
// "Name (Role)". The role in parentheses is optional and defaults to
// data collector, the dominant role in sample registries.
func parseContributors(value string) []Agent {
	var out []Agent
	for _, entry := range splitMulti(value, "; ") {
		agent := Agent{Name: entry, Role: "data-collector"}
		if i := strings.LastIndex(entry, "("); i > 0 && strings.HasSuffix(entry, ")") {
			role := strings.TrimSpace(entry[i+1 : len(entry)-1])
			if role != "" {
				agent.Name = strings.TrimSpace(entry[:i])
				agent.Role = strings.ToLower(strings.ReplaceAll(role, " ", "-"))
			}
		}
		out = append(out, agent)
	}
	return out
}

// parseRelated splits "; "-separated entries of the form
// "TYPE:identifier", e.g. "DOI:10.1594/IEDA/100023". The relation is fixed
// to References; parent linkage travels in the parent_igsn column instead.
func parseRelated(value string) []Related {
	var out []Related
	for _, entry := range splitMulti(value, "; ") {
		typ, id, ok := strings.Cut(entry, ":")
		if !ok || strings.TrimSpace(id) == "" {
			continue
		}
		out = append(out, Related{
			Type:       strings.TrimSpace(typ),
			Identifier: strings.TrimSpace(id),
			Relation:   "References",
		})
	}
	return out
}

// parseFunding splits "; "-separated entries of the form
// "Funder Name (AwardNumber)"; the award number is optional.
func parseFunding(value string) []Funding {
	var out []Funding
	for _, entry := range splitMulti(value, "; ") {
		f := Funding{FunderName: entry}
		if i := strings.LastIndex(entry, "("); i > 0 && strings.HasSuffix(entry, ")") {
			f.FunderName = strings.TrimSpace(entry[:i])
			f.AwardNumber = strings.TrimSpace(entry[i+1 : len(entry)-1])
		}
		out = append(out, f)
	}
	return out
}

// parseSizes splits "; "-separated entries and decomposes each label:
// "Drilled Length [m]: 12.5" -> type "Drilled Length", unit "m",
// value "12.5".
func parseSizes(value string) []Size {
	var out []Size
	for _, entry := range splitMulti(value, "; ") {
		label, val, _ := strings.Cut(entry, ":")
		s := Size{Type: strings.TrimSpace(label), Value: strings.TrimSpace(val)}
		if i := strings.LastIndex(s.Type, "["); i > 0 && strings.HasSuffix(s.Type, "]") {
			s.Unit = strings.TrimSpace(s.Type[i+1 : len(s.Type)-1])
			s.Type = strings.TrimSpace(s.Type[:i])
		}
		out = append(out, s)
	}
	return out
}
