package igsn

import (
	"strings"
	"testing"

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

func TestIngestBatch(t *testing.T) {
	content := sampleHeader + "\n" +
		"IEMEG0001|Basalt core VEMA-1|Müller, Anna|0000-0001-2345-6789|Core|Basalt|10.7|-41.5|2019-05||basalt|Okafor, Ben (Data Collector)|DOI:10.1594/IEDA/100023|NSF (OCE-1558679)|Drilled Length [m]: 12.5|WHOI Core Lab|Mid-Atlantic Ridge core\n" +
		"IEMEG0002|Gabbro sample VEMA-2|Okafor, Ben||Individual Sample|Gabbro|10.9|-41.2|||||||||"

	store := newTestStore(t)
	result, err := Parse(strings.NewReader(content))
	if err != nil {
		t.Fatal(err)
	}

	report, err := NewIngester(store, nil).Store(result, "vema.csv", "tester")
	if err != nil {
		t.Fatal(err)
	}
	if report.Created != 2 {
		t.Fatalf("created = %d, want 2 (errors: %v)", report.Created, report.Errors)
	}
	if report.BatchID == "" {
		t.Error("batch id missing")
	}

	list, err := store.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 {
		t.Fatalf("stored resources = %d", len(list))
	}

	var first *model.Resource
	for _, s := range list {
		r, err := store.Get(s.ID)
		if err != nil {
			t.Fatal(err)
		}
		if r.Sample != nil && r.Sample.IGSN == "IEMEG0001" {
			first = r
		}
	}
	if first == nil {
		t.Fatal("IEMEG0001 not stored")
	}

	if first.ResourceType.Slug != "physical-object" {
		t.Errorf("resource type = %q", first.ResourceType.Slug)
	}
	if first.Sample.SampleType != "Core" || first.Sample.Material != "Basalt" {
		t.Errorf("sample = %+v", first.Sample)
	}
	if len(first.Creators) != 1 || !first.Creators[0].IsPerson() {
		t.Fatalf("creators = %+v", first.Creators)
	}
	if first.Creators[0].Person.Identifier != "0000-0001-2345-6789" {
		t.Errorf("creator orcid = %q", first.Creators[0].Person.Identifier)
	}

	// One parsed contributor plus the laboratory.
	if len(first.Contributors) != 2 {
		t.Fatalf("contributors = %+v", first.Contributors)
	}
	lab := first.Contributors[1]
	if lab.IsPerson() || !lab.Institution.IsLaboratory() {
		t.Errorf("laboratory contributor = %+v", lab)
	}
	if lab.Role != model.RoleHostingInstitution {
		t.Errorf("laboratory role = %q", lab.Role)
	}

	// Open-ended collection range stays open in storage.
	var collected *model.ResourceDate
	for i, d := range first.Dates {
		if d.Type == model.DateCollected {
			collected = &first.Dates[i]
		}
	}
	if collected == nil {
		t.Fatal("collected date missing")
	}
	if collected.Start != "2019-05-01" || collected.End != "" {
		t.Errorf("collected = %+v", collected)
	}

	if len(first.Sizes) != 1 || first.Sizes[0] != "Drilled Length: 12.5 m" {
		t.Errorf("sizes = %v", first.Sizes)
	}
	if len(first.GeoLocations) != 1 || first.GeoLocations[0].Point == nil {
		t.Fatalf("geolocations = %+v", first.GeoLocations)
	}
	if first.GeoLocations[0].Point.Latitude != 10.7 {
		t.Errorf("latitude = %v", first.GeoLocations[0].Point.Latitude)
	}
}

func TestIngestCollectsRowErrors(t *testing.T) {
	content := "igsn|title|name|publication_year\n" +
		"IEMEG0001|Good row|Smith, John|2023\n" +
		"IEMEG0002|Bad year|Smith, John|twenty-twenty"

	store := newTestStore(t)
	result, err := Parse(strings.NewReader(content))
	if err != nil {
		t.Fatal(err)
	}

	report, err := NewIngester(store, nil).Store(result, "bad.csv", "tester")
	if err != nil {
		t.Fatal(err)
	}
	if report.Created != 1 {
		t.Errorf("created = %d, want 1", report.Created)
	}
	if len(report.Errors) != 1 || report.Errors[0].Row != 2 {
		t.Errorf("errors = %v", report.Errors)
	}
}
