package export

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/geosamples/curator/datacite"
	"github.com/geosamples/curator/model"
)

func strptr(s string) *string { return &s }

func exportJSON(t *testing.T, r *model.Resource, opts Options) (datacite.Document, string) {
	t.Helper()
	e, err := Get("json")
	if err != nil {
		t.Fatal(err)
	}
	raw, err := e.Export(r, opts)
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	var doc datacite.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("exported document is not valid JSON: %v", err)
	}
	return doc, string(raw)
}

func TestExportDraftResource(t *testing.T) {
	r := &model.Resource{
		PublicationYear: 2023,
		ResourceType:    model.ResourceType{Name: "Dataset", Slug: "dataset"},
		Titles:          []model.Title{{Value: "Sample Study", Type: model.TitleMain}},
		Creators: []model.Creator{{
			Person: &model.Person{
				GivenName:  strptr("Anna"),
				FamilyName: "Müller",
				Identifier: "0000-0001-2345-6789",
				Scheme:     "ORCID",
			},
		}},
	}

	doc, raw := exportJSON(t, r, Options{})
	attrs := doc.Data.Attributes

	if strings.Contains(raw, `"doi"`) || strings.Contains(raw, `"identifiers"`) {
		t.Error("draft export must omit doi and identifiers entirely")
	}
	if attrs.PublicationYear != 2023 {
		t.Errorf("publicationYear = %d", attrs.PublicationYear)
	}
	if len(attrs.Creators) != 1 {
		t.Fatalf("creators = %d, want 1", len(attrs.Creators))
	}
	c := attrs.Creators[0]
	if c.Name != "Müller, Anna" {
		t.Errorf("name = %q", c.Name)
	}
	if c.NameType != "Personal" || c.GivenName != "Anna" || c.FamilyName != "Müller" {
		t.Errorf("name parts = %+v", c)
	}
	if len(c.NameIdentifiers) != 1 {
		t.Fatalf("nameIdentifiers = %d, want 1", len(c.NameIdentifiers))
	}
	if c.NameIdentifiers[0].NameIdentifier != "0000-0001-2345-6789" ||
		c.NameIdentifiers[0].NameIdentifierScheme != "ORCID" {
		t.Errorf("nameIdentifier = %+v", c.NameIdentifiers[0])
	}
	if len(attrs.Titles) != 1 || attrs.Titles[0].Title != "Sample Study" {
		t.Errorf("titles = %+v", attrs.Titles)
	}
	if attrs.Titles[0].TitleType != "" {
		t.Errorf("main title must carry no titleType, got %q", attrs.Titles[0].TitleType)
	}
}

func TestExportRegisteredDOI(t *testing.T) {
	r := &model.Resource{
		DOI:             strptr("10.1594/IEDA/100023"),
		PublicationYear: 2022,
		ResourceType:    model.ResourceType{Name: "Dataset", Slug: "dataset"},
		Titles:          []model.Title{{Value: "T", Type: model.TitleMain}},
	}

	doc, _ := exportJSON(t, r, Options{})
	attrs := doc.Data.Attributes
	if attrs.DOI != "10.1594/IEDA/100023" {
		t.Errorf("doi = %q", attrs.DOI)
	}
	if len(attrs.Identifiers) != 1 || attrs.Identifiers[0].IdentifierType != "DOI" {
		t.Errorf("identifiers = %+v", attrs.Identifiers)
	}
	if doc.Data.ID != "10.1594/IEDA/100023" {
		t.Errorf("data.id = %q", doc.Data.ID)
	}
}

func TestExportOpenEndedDateRange(t *testing.T) {
	r := &model.Resource{
		PublicationYear: 2021,
		ResourceType:    model.ResourceType{Name: "Dataset", Slug: "dataset"},
		Titles:          []model.Title{{Value: "T", Type: model.TitleMain}},
		Dates: []model.ResourceDate{
			{Type: model.DateCollected, Start: "2020-01-01"},
			{Type: model.DateCollected, Start: "2020-01-01", End: "2020-06-30"},
		},
	}

	doc, _ := exportJSON(t, r, Options{})
	dates := doc.Data.Attributes.Dates
	if len(dates) != 2 {
		t.Fatalf("dates = %d, want 2", len(dates))
	}
	if dates[0].Date != "2020-01-01" || dates[0].DateType != "Collected" {
		t.Errorf("open-ended range = %+v, want bare start value", dates[0])
	}
	if dates[1].Date != "2020-01-01/2020-06-30" {
		t.Errorf("closed range = %q", dates[1].Date)
	}
}

func TestExportSampleTypeSynthesis(t *testing.T) {
	tests := []struct {
		name       string
		sampleType string
		material   string
		want       string
	}{
		{"both", "Core", "Basalt", "Core: Basalt"},
		{"type only", "Core", "", "Core"},
		{"material only", "", "Basalt", "Basalt"},
		{"neither", "", "", "Physical Object"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &model.Resource{
				PublicationYear: 2023,
				ResourceType:    model.ResourceType{Name: "Physical Object", Slug: "physical-object"},
				Titles:          []model.Title{{Value: "T", Type: model.TitleMain}},
				Sample:          &model.PhysicalSample{IGSN: "IEMEG0001", SampleType: tt.sampleType, Material: tt.material},
			}
			doc, _ := exportJSON(t, r, Options{})
			types := doc.Data.Attributes.Types
			if types.ResourceTypeGeneral != "PhysicalObject" {
				t.Errorf("general = %q", types.ResourceTypeGeneral)
			}
			if types.ResourceType != tt.want {
				t.Errorf("resourceType = %q, want %q", types.ResourceType, tt.want)
			}
		})
	}
}

func TestExportGeoLocationPointOnly(t *testing.T) {
	r := &model.Resource{
		PublicationYear: 2023,
		ResourceType:    model.ResourceType{Name: "Dataset", Slug: "dataset"},
		Titles:          []model.Title{{Value: "T", Type: model.TitleMain}},
		GeoLocations: []model.GeoLocation{{
			Point: &model.GeoPoint{Latitude: -17.5, Longitude: 168.3},
		}},
	}

	_, raw := exportJSON(t, r, Options{})
	if !strings.Contains(raw, "geoLocationPoint") {
		t.Error("geoLocationPoint missing")
	}
	if strings.Contains(raw, "geoLocationBox") || strings.Contains(raw, "geoLocationPolygon") {
		t.Error("empty sub-shapes must not be emitted")
	}
}

func TestExportUnknownCreatorPlaceholder(t *testing.T) {
	r := &model.Resource{
		PublicationYear: 2023,
		ResourceType:    model.ResourceType{Name: "Dataset", Slug: "dataset"},
		Titles:          []model.Title{{Value: "T", Type: model.TitleMain}},
	}

	doc, _ := exportJSON(t, r, Options{})
	creators := doc.Data.Attributes.Creators
	if len(creators) != 1 {
		t.Fatalf("creators = %d, want 1 placeholder", len(creators))
	}
	if creators[0].Name != "Unknown" || creators[0].NameType != "Personal" {
		t.Errorf("placeholder = %+v", creators[0])
	}
}

func TestExportContributorPromotionForSamples(t *testing.T) {
	dupe := &model.Person{GivenName: strptr("Anna"), FamilyName: "Müller", Identifier: "0000-0001-2345-6789", Scheme: "ORCID"}
	extra := &model.Person{GivenName: strptr("Ben"), FamilyName: "Okafor"}

	r := &model.Resource{
		PublicationYear: 2023,
		ResourceType:    model.ResourceType{Name: "Physical Object", Slug: "physical-object"},
		Titles:          []model.Title{{Value: "T", Type: model.TitleMain}},
		Sample:          &model.PhysicalSample{IGSN: "IEMEG0001"},
		Creators:        []model.Creator{{Person: dupe}},
		Contributors: []model.Contributor{
			{Role: model.RoleDataCollector, Person: dupe},
			{Role: model.RoleDataCollector, Person: extra},
		},
	}

	doc, _ := exportJSON(t, r, Options{})
	creators := doc.Data.Attributes.Creators
	if len(creators) != 2 {
		t.Fatalf("creators = %d, want 2 (duplicate contributor must be skipped)", len(creators))
	}
	if creators[1].Name != "Okafor, Ben" {
		t.Errorf("promoted creator = %q", creators[1].Name)
	}
	// Promotion adds to creators without removing from contributors.
	if len(doc.Data.Attributes.Contributors) != 2 {
		t.Errorf("contributors = %d, want 2", len(doc.Data.Attributes.Contributors))
	}
}

func TestExportPublisherFallback(t *testing.T) {
	r := &model.Resource{
		PublicationYear: 2023,
		ResourceType:    model.ResourceType{Name: "Dataset", Slug: "dataset"},
		Titles:          []model.Title{{Value: "T", Type: model.TitleMain}},
	}

	doc, _ := exportJSON(t, r, Options{})
	if doc.Data.Attributes.Publisher.Name != fallbackPublisher {
		t.Errorf("publisher = %q, want hardcoded fallback", doc.Data.Attributes.Publisher.Name)
	}

	doc, _ = exportJSON(t, r, Options{DefaultPublisher: "EarthChem Library"})
	if doc.Data.Attributes.Publisher.Name != "EarthChem Library" {
		t.Errorf("publisher = %q, want configured default", doc.Data.Attributes.Publisher.Name)
	}

	r.Publisher = "IEDA"
	doc, _ = exportJSON(t, r, Options{DefaultPublisher: "EarthChem Library"})
	if doc.Data.Attributes.Publisher.Name != "IEDA" {
		t.Errorf("publisher = %q, want resource's own", doc.Data.Attributes.Publisher.Name)
	}
}

func TestExportSampleLanguageFallback(t *testing.T) {
	r := &model.Resource{
		PublicationYear: 2023,
		ResourceType:    model.ResourceType{Name: "Physical Object", Slug: "physical-object"},
		Titles:          []model.Title{{Value: "T", Type: model.TitleMain}},
		Sample:          &model.PhysicalSample{IGSN: "IEMEG0001"},
	}

	doc, _ := exportJSON(t, r, Options{})
	if doc.Data.Attributes.Language != "en" {
		t.Errorf("language = %q, want en fallback for samples", doc.Data.Attributes.Language)
	}
	if doc.Data.Attributes.Titles[0].Lang != "en" {
		t.Errorf("title lang = %q, want en", doc.Data.Attributes.Titles[0].Lang)
	}

	alt := doc.Data.Attributes.AlternateIdentifiers
	if len(alt) != 1 || alt[0].AlternateIdentifier != "IEMEG0001" || alt[0].AlternateIdentifierType != "IGSN" {
		t.Errorf("alternateIdentifiers = %+v", alt)
	}
}

func TestExportLaboratoryRole(t *testing.T) {
	r := &model.Resource{
		PublicationYear: 2023,
		ResourceType:    model.ResourceType{Name: "Dataset", Slug: "dataset"},
		Titles:          []model.Title{{Value: "T", Type: model.TitleMain}},
		Contributors: []model.Contributor{{
			Role:        model.RoleDataCollector,
			Institution: &model.Institution{Name: "WHOI Core Lab", Identifier: "lab-42", Scheme: model.SchemeLabID},
		}},
	}

	doc, _ := exportJSON(t, r, Options{})
	contribs := doc.Data.Attributes.Contributors
	if len(contribs) != 1 {
		t.Fatalf("contributors = %d", len(contribs))
	}
	if contribs[0].ContributorType != "HostingInstitution" {
		t.Errorf("contributorType = %q, want HostingInstitution", contribs[0].ContributorType)
	}
	if len(contribs[0].NameIdentifiers) != 0 {
		t.Error("internal lab identifiers must not export")
	}
}
