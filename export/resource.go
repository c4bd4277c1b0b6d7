package export

import (
	"github.com/geosamples/curator/datacite"
	"github.com/geosamples/curator/model"
)

// Shared read-side transforms used by both the JSON and XML exporters.

// agentEntry is one creator or contributor, flattened out of the
// person/institution variant. role is set for contributors only.
type agentEntry struct {
	name       string
	nameType   string
	givenName  string
	familyName string
	role       string
	identifier string
	scheme     string
	affils     []model.Affiliation
}

func personEntry(p *model.Person, affils []model.Affiliation) agentEntry {
	e := agentEntry{
		name:       p.DisplayName(),
		nameType:   datacite.NameTypePersonal,
		familyName: p.FamilyName,
		identifier: p.Identifier,
		scheme:     p.Scheme,
		affils:     affils,
	}
	if p.GivenName != nil {
		e.givenName = *p.GivenName
	}
	return e
}

func institutionEntry(in *model.Institution, affils []model.Affiliation) agentEntry {
	e := agentEntry{
		name:     in.Name,
		nameType: datacite.NameTypeOrganizational,
		affils:   affils,
	}
	// Laboratory identifiers are internal and do not export as
	// nameIdentifiers.
	if !in.IsLaboratory() {
		e.identifier = in.Identifier
		e.scheme = in.Scheme
	}
	return e
}

// creatorEntries builds the exported creator list. For physical-sample
// resources, person contributors are additionally promoted into the list:
// some ingestion sources record principal investigators only as
// contributors. Promotion deduplicates against already-emitted creators by
// normalized name and by ORCID. An empty result gets the "Unknown"
// placeholder, since the schema requires at least one creator.
func creatorEntries(r *model.Resource) []agentEntry {
	out := make([]agentEntry, 0, len(r.Creators))
	seenNames := make(map[string]bool)
	seenIDs := make(map[string]bool)

	for _, c := range r.Creators {
		if c.IsPerson() {
			out = append(out, personEntry(c.Person, c.Affiliations))
			seenNames[c.Person.NormalizedName()] = true
			if c.Person.Identifier != "" {
				seenIDs[c.Person.Identifier] = true
			}
		} else {
			out = append(out, institutionEntry(c.Institution, c.Affiliations))
		}
	}

	if r.Sample != nil {
		for _, c := range r.Contributors {
			if !c.IsPerson() {
				continue
			}
			if seenNames[c.Person.NormalizedName()] {
				continue
			}
			if c.Person.Identifier != "" && seenIDs[c.Person.Identifier] {
				continue
			}
			out = append(out, personEntry(c.Person, c.Affiliations))
			seenNames[c.Person.NormalizedName()] = true
			if c.Person.Identifier != "" {
				seenIDs[c.Person.Identifier] = true
			}
		}
	}

	if len(out) == 0 {
		out = append(out, agentEntry{name: "Unknown", nameType: datacite.NameTypePersonal})
	}
	return out
}

// contributorEntries builds the exported contributor list. Laboratories
// export under the HostingInstitution role regardless of their stored role.
func contributorEntries(r *model.Resource) []agentEntry {
	out := make([]agentEntry, 0, len(r.Contributors))
	for _, c := range r.Contributors {
		var e agentEntry
		if c.IsPerson() {
			e = personEntry(c.Person, c.Affiliations)
			e.role = datacite.ContributorType(c.Role)
		} else {
			e = institutionEntry(c.Institution, c.Affiliations)
			if c.Institution.IsLaboratory() {
				e.role = "HostingInstitution"
			} else {
				e.role = datacite.ContributorType(c.Role)
			}
		}
		out = append(out, e)
	}
	return out
}

// publisherName applies the three-tier publisher fallback. The publisher
// field is schema-required and must never come out empty.
func publisherName(r *model.Resource, opts Options) string {
	switch {
	case r.Publisher != "":
		return r.Publisher
	case opts.DefaultPublisher != "":
		return opts.DefaultPublisher
	default:
		return fallbackPublisher
	}
}

// resourceTypes derives the DataCite general type and the specific type
// string. Physical samples synthesize the specific type from their sample
// type and material.
func resourceTypes(r *model.Resource) (general, specific string) {
	general = datacite.ResourceTypeGeneral(r.ResourceType.Name)
	if general == "PhysicalObject" && r.Sample != nil {
		switch {
		case r.Sample.SampleType != "" && r.Sample.Material != "":
			return general, r.Sample.SampleType + ": " + r.Sample.Material
		case r.Sample.SampleType != "":
			return general, r.Sample.SampleType
		case r.Sample.Material != "":
			return general, r.Sample.Material
		default:
			return general, "Physical Object"
		}
	}
	return general, r.ResourceType.Name
}

// childLang picks the lang attribute for a title, description, or rights
// entry. Physical-sample records imported from CSV never carry a language,
// so they fall back to "en" instead of omitting the attribute.
func childLang(r *model.Resource, lang string) string {
	if lang != "" {
		return lang
	}
	if r.Sample != nil {
		return "en"
	}
	return ""
}

// resourceLang picks the top-level language code, with the same
// physical-sample fallback.
func resourceLang(r *model.Resource) string {
	if r.Language != "" {
		return r.Language
	}
	if r.Sample != nil {
		return "en"
	}
	return ""
}

// exportableDates filters out dates with no mappable type or no derivable
// value. Open-ended ranges collapse to their start value here; the open
// end survives only in storage.
type dateEntry struct {
	value       string
	dateType    string
	information string
}

func exportableDates(r *model.Resource) []dateEntry {
	out := make([]dateEntry, 0, len(r.Dates))
	for _, d := range r.Dates {
		term := datacite.DateType(d.Type)
		value := d.Resolved()
		if term == "" || value == "" {
			continue
		}
		out = append(out, dateEntry{value: value, dateType: term, information: d.Information})
	}
	return out
}
