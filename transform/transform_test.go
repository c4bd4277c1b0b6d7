package transform

import (
	"encoding/json"
	"testing"

	"github.com/geosamples/curator/datacite"
	"github.com/geosamples/curator/export"
	"github.com/geosamples/curator/model"
	"github.com/geosamples/curator/storage"
)

func newTestStore(t *testing.T) *storage.Store {
	t.Helper()
	s, err := storage.Open(t.TempDir() + "/curator.db")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func strptr(s string) *string { return &s }

func TestImportDocument(t *testing.T) {
	raw := []byte(`{
	  "data": {
	    "type": "dois",
	    "attributes": {
	      "titles": [
	        {"title": "Hydrothermal vent fluids"},
	        {"title": "Vent fluid chemistry", "titleType": "AlternativeTitle"}
	      ],
	      "creators": [
	        {
	          "name": "Müller, Anna",
	          "nameType": "Personal",
	          "givenName": "Anna",
	          "familyName": "Müller",
	          "nameIdentifiers": [
	            {"nameIdentifier": "https://orcid.org/0000-0001-2345-6789", "nameIdentifierScheme": "ORCID"}
	          ],
	          "affiliation": [
	            {"name": "GEOMAR", "affiliationIdentifier": "https://ror.org/02h2x0161", "affiliationIdentifierScheme": "ROR"}
	          ]
	        },
	        {"name": "Deep Submergence Group", "nameType": "Organizational"}
	      ],
	      "contributors": [
	        {"name": "Okafor, Ben", "nameType": "Personal", "contributorType": "DataCollector"},
	        {"name": "Nobody", "nameType": "Personal", "contributorType": "TimeTraveler"}
	      ],
	      "publisher": {"name": "IEDA"},
	      "publicationYear": 2021,
	      "types": {"resourceTypeGeneral": "Dataset", "resourceType": "Dataset"},
	      "dates": [
	        {"date": "2020", "dateType": "Collected"},
	        {"date": "2020-03/2020-04", "dateType": "Coverage"},
	        {"date": "2020-01-01", "dateType": "Imagined"}
	      ],
	      "descriptions": [
	        {"description": "Fluid samples from the vent field.", "descriptionType": "Abstract"}
	      ],
	      "subjects": [{"subject": "hydrothermal"}],
	      "rightsList": [{"rights": "Creative Commons Attribution 4.0", "rightsIdentifier": "CC-BY-4.0"}],
	      "geoLocations": [
	        {"geoLocationPoint": {"pointLatitude": 9.8, "pointLongitude": -104.3}},
	        {"geoLocationPolygon": [
	          {"polygonPoint": {"pointLatitude": 1, "pointLongitude": 1}},
	          {"polygonPoint": {"pointLatitude": 2, "pointLongitude": 2}}
	        ]}
	      ],
	      "relatedIdentifiers": [
	        {"relatedIdentifier": "10.1594/IEDA/100023", "relatedIdentifierType": "DOI", "relationType": "IsPartOf"},
	        {"relatedIdentifier": "x", "relatedIdentifierType": "Hologram", "relationType": "IsPartOf"}
	      ]
	    }
	  }
	}`)

	doc, err := ParseDocument(raw)
	if err != nil {
		t.Fatal(err)
	}

	store := newTestStore(t)
	r, updated, err := NewImporter(store, nil).Import(doc, "tester")
	if err != nil {
		t.Fatal(err)
	}
	if updated {
		t.Error("no DOI: must create, not update")
	}

	if r.MainTitle() != "Hydrothermal vent fluids" {
		t.Errorf("main title = %q", r.MainTitle())
	}
	if len(r.Titles) != 2 || r.Titles[1].Type != "alternative-title" {
		t.Errorf("titles = %+v", r.Titles)
	}

	if len(r.Creators) != 2 {
		t.Fatalf("creators = %+v", r.Creators)
	}
	person := r.Creators[0].Person
	if person == nil || person.Identifier != "0000-0001-2345-6789" || person.Scheme != "ORCID" {
		t.Errorf("person = %+v", person)
	}
	if len(r.Creators[0].Affiliations) != 1 || r.Creators[0].Affiliations[0].Identifier != "02h2x0161" {
		t.Errorf("affiliations = %+v", r.Creators[0].Affiliations)
	}
	if r.Creators[1].Institution == nil || r.Creators[1].Institution.Name != "Deep Submergence Group" {
		t.Errorf("institution creator = %+v", r.Creators[1])
	}

	// The unknown contributor type is skipped, not fatal.
	if len(r.Contributors) != 1 || r.Contributors[0].Role != "data-collector" {
		t.Errorf("contributors = %+v", r.Contributors)
	}

	// Partial dates normalize; the unknown date type is skipped.
	var collected, coverage bool
	for _, d := range r.Dates {
		switch d.Type {
		case model.DateCollected:
			collected = true
			if d.Value != "2020-01-01" {
				t.Errorf("collected = %+v, want year start normalization", d)
			}
		case model.DateCoverage:
			coverage = true
			if d.Start != "2020-03-01" || d.End != "2020-04-30" {
				t.Errorf("coverage = %+v", d)
			}
		case "imagined":
			t.Error("unknown date type must be skipped")
		}
	}
	if !collected || !coverage {
		t.Errorf("dates = %+v", r.Dates)
	}

	// The degenerate polygon entry is dropped whole; the point entry survives.
	if len(r.GeoLocations) != 1 {
		t.Fatalf("geolocations = %+v", r.GeoLocations)
	}
	if r.GeoLocations[0].Point == nil {
		t.Errorf("geolocations = %+v", r.GeoLocations)
	}

	if len(r.RelatedIdentifiers) != 1 || r.RelatedIdentifiers[0].Type != "DOI" {
		t.Errorf("related identifiers = %+v", r.RelatedIdentifiers)
	}
	if len(r.Rights) != 1 || r.Rights[0].Identifier != "CC-BY-4.0" {
		t.Errorf("rights = %+v", r.Rights)
	}
	if r.Publisher != "IEDA" {
		t.Errorf("publisher = %q", r.Publisher)
	}
}

func TestImportUpdatesByDOI(t *testing.T) {
	store := newTestStore(t)

	first, _, err := store.Save(storage.EditPayload{
		DOI:             "10.1594/IEDA/100023",
		PublicationYear: 2020,
		ResourceType:    "dataset",
		Titles:          []storage.TitleInput{{Value: "Original", Type: model.TitleMain}},
	}, "tester")
	if err != nil {
		t.Fatal(err)
	}

	doc := &datacite.Document{Data: datacite.Data{
		Type: "dois",
		Attributes: datacite.Attributes{
			DOI:             "10.1594/IEDA/100023",
			PublicationYear: 2021,
			Types:           datacite.Types{ResourceTypeGeneral: "Dataset"},
			Titles:          []datacite.Title{{Title: "Revised"}},
		},
	}}

	r, updated, err := NewImporter(store, nil).Import(doc, "tester")
	if err != nil {
		t.Fatal(err)
	}
	if !updated {
		t.Error("existing DOI must update")
	}
	if r.ID != first.ID {
		t.Errorf("id = %d, want %d", r.ID, first.ID)
	}
	if r.MainTitle() != "Revised" || r.PublicationYear != 2021 {
		t.Errorf("resource = %+v", r)
	}
}

func TestImportNameParsingFallback(t *testing.T) {
	doc := &datacite.Document{Data: datacite.Data{
		Type: "dois",
		Attributes: datacite.Attributes{
			PublicationYear: 2021,
			Types:           datacite.Types{ResourceTypeGeneral: "Dataset"},
			Titles:          []datacite.Title{{Title: "T"}},
			Creators: []datacite.Name{
				{Name: "Jane van Dorn"},
				{Name: "Smith, Jr."},
			},
		},
	}}

	store := newTestStore(t)
	r, _, err := NewImporter(store, nil).Import(doc, "tester")
	if err != nil {
		t.Fatal(err)
	}
	if len(r.Creators) != 2 {
		t.Fatalf("creators = %+v", r.Creators)
	}
	if r.Creators[0].Person.FamilyName != "Dorn" || *r.Creators[0].Person.GivenName != "Jane van" {
		t.Errorf("parsed = %+v", r.Creators[0].Person)
	}
	if r.Creators[1].Person.FamilyName != "Smith, Jr." || r.Creators[1].Person.GivenName != nil {
		t.Errorf("suffix name = %+v", r.Creators[1].Person)
	}
}

// Exporting then importing must reproduce an equivalent graph, modulo the
// documented lossy cases: open-ended ranges collapse, and export-only
// fallbacks must not displace real values.
func TestRoundTrip(t *testing.T) {
	store := newTestStore(t)

	original, _, err := store.Save(storage.EditPayload{
		DOI:             "10.1594/IEDA/100023",
		PublicationYear: 2021,
		ResourceType:    "dataset",
		Language:        "en",
		Publisher:       "IEDA",
		Titles: []storage.TitleInput{
			{Value: "Vent fluid chemistry", Type: model.TitleMain},
			{Value: "Chimie des fluides", Type: "translated-title", Language: "fr"},
		},
		Creators: []storage.AgentInput{{
			Kind:       storage.AgentPerson,
			GivenName:  strptr("Anna"),
			FamilyName: "Müller",
			Identifier: "0000-0001-2345-6789",
			Scheme:     model.SchemeORCID,
			Affiliations: []storage.AffiliationInput{
				{Name: "GEOMAR", Identifier: "02h2x0161", Scheme: "ROR"},
			},
		}},
		Contributors: []storage.AgentInput{{
			Kind:       storage.AgentPerson,
			FamilyName: "Okafor",
			GivenName:  strptr("Ben"),
			Role:       model.RoleDataCollector,
		}},
		Descriptions: []storage.DescriptionInput{
			{Value: "Fluid samples.", Type: model.DescriptionAbstract},
		},
		Dates: []storage.DateInput{
			{Type: model.DateCollected, Start: "2020-01-01", End: "2020-06-30"},
		},
		Subjects: []model.Subject{{Value: "hydrothermal"}},
		GeoLocations: []storage.GeoLocationInput{{
			Place:          "East Pacific Rise",
			PointLatitude:  "9.8",
			PointLongitude: "-104.3",
		}},
		RelatedIdentifiers: []storage.RelatedIdentifierInput{{
			Identifier:   "10.1000/parent",
			Type:         "DOI",
			RelationType: "IsPartOf",
		}},
		FundingReferences: []model.FundingReference{{FunderName: "NSF", AwardNumber: "OCE-1"}},
		Licenses:          []string{"CC-BY-4.0"},
		Sizes:             []string{"42 samples"},
		Formats:           []string{"text/csv"},
	}, "tester")
	if err != nil {
		t.Fatal(err)
	}

	exporter, err := export.Get("json")
	if err != nil {
		t.Fatal(err)
	}
	raw, err := exporter.Export(original, export.Options{DefaultPublisher: "fallback"})
	if err != nil {
		t.Fatal(err)
	}

	doc, err := ParseDocument(raw)
	if err != nil {
		t.Fatal(err)
	}
	// Clear the DOI so the import creates a second, comparable resource.
	doc.Data.ID = ""
	doc.Data.Attributes.DOI = ""
	doc.Data.Attributes.Identifiers = nil

	imported, _, err := NewImporter(store, nil).Import(doc, "tester")
	if err != nil {
		t.Fatal(err)
	}

	if imported.MainTitle() != original.MainTitle() {
		t.Errorf("title %q != %q", imported.MainTitle(), original.MainTitle())
	}
	if len(imported.Titles) != len(original.Titles) {
		t.Errorf("titles %d != %d", len(imported.Titles), len(original.Titles))
	}
	if imported.PublicationYear != original.PublicationYear {
		t.Errorf("year %d != %d", imported.PublicationYear, original.PublicationYear)
	}
	if imported.Publisher != "IEDA" {
		t.Errorf("publisher = %q: export fallback must not displace real data", imported.Publisher)
	}
	if imported.ResourceType.Slug != original.ResourceType.Slug {
		t.Errorf("type %q != %q", imported.ResourceType.Slug, original.ResourceType.Slug)
	}

	if len(imported.Creators) != 1 {
		t.Fatalf("creators = %+v", imported.Creators)
	}
	// Entity resolution must reuse the same person row, not clone it.
	if imported.Creators[0].Person.ID != original.Creators[0].Person.ID {
		t.Error("creator did not resolve to the same person")
	}
	if len(imported.Creators[0].Affiliations) != 1 {
		t.Errorf("affiliations = %+v", imported.Creators[0].Affiliations)
	}

	if len(imported.Contributors) != 1 || imported.Contributors[0].Role != model.RoleDataCollector {
		t.Errorf("contributors = %+v", imported.Contributors)
	}

	var got, want *model.ResourceDate
	for i, d := range imported.Dates {
		if d.Type == model.DateCollected {
			got = &imported.Dates[i]
		}
	}
	for i, d := range original.Dates {
		if d.Type == model.DateCollected {
			want = &original.Dates[i]
		}
	}
	if got == nil || want == nil {
		t.Fatal("collected date missing")
	}
	if got.Start != want.Start || got.End != want.End {
		t.Errorf("collected %+v != %+v", got, want)
	}

	if len(imported.Subjects) != 1 || imported.Subjects[0].Value != "hydrothermal" {
		t.Errorf("subjects = %+v", imported.Subjects)
	}
	if len(imported.GeoLocations) != 1 || imported.GeoLocations[0].Point == nil {
		t.Fatalf("geolocations = %+v", imported.GeoLocations)
	}
	if imported.GeoLocations[0].Point.Latitude != 9.8 || imported.GeoLocations[0].Place != "East Pacific Rise" {
		t.Errorf("point = %+v", imported.GeoLocations[0])
	}
	if len(imported.RelatedIdentifiers) != 1 || imported.RelatedIdentifiers[0].RelationType != "IsPartOf" {
		t.Errorf("related = %+v", imported.RelatedIdentifiers)
	}
	if len(imported.FundingReferences) != 1 || imported.FundingReferences[0].AwardNumber != "OCE-1" {
		t.Errorf("funding = %+v", imported.FundingReferences)
	}
	if len(imported.Rights) != 1 || imported.Rights[0].Identifier != "CC-BY-4.0" {
		t.Errorf("rights = %+v", imported.Rights)
	}
	if len(imported.Sizes) != 1 || len(imported.Formats) != 1 {
		t.Errorf("sizes/formats = %v %v", imported.Sizes, imported.Formats)
	}
}

func TestParseDocumentBareAttributes(t *testing.T) {
	raw := []byte(`{"publicationYear": 2021, "titles": [{"title": "Bare"}], "types": {"resourceTypeGeneral": "Dataset"}}`)
	doc, err := ParseDocument(raw)
	if err != nil {
		t.Fatal(err)
	}
	if doc.Data.Attributes.PublicationYear != 2021 || len(doc.Data.Attributes.Titles) != 1 {
		t.Errorf("attributes = %+v", doc.Data.Attributes)
	}
	var buf datacite.Document
	if err := json.Unmarshal(raw, &buf); err != nil {
		t.Fatal(err)
	}
}
