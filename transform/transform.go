// Package transform turns inbound DataCite JSON documents into stored
// resources. Optional child records that cannot be resolved are skipped
// with a logged warning; the write itself is all-or-nothing through the
// storage layer.
package transform

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/geosamples/curator/datacite"
	"github.com/geosamples/curator/helpers"
	"github.com/geosamples/curator/identifiers"
	"github.com/geosamples/curator/model"
	"github.com/geosamples/curator/storage"
)

// Importer converts DataCite documents into edit payloads and stores them.
type Importer struct {
	store *storage.Store
	log   *slog.Logger
}

// NewImporter creates an importer writing through the given store.
func NewImporter(store *storage.Store, log *slog.Logger) *Importer {
	if log == nil {
		log = slog.Default()
	}
	return &Importer{store: store, log: log}
}

// Import stores the document as a resource and reports whether an existing
// resource was updated. A document whose DOI is already registered updates
// that resource; anything else creates a new one.
func (im *Importer) Import(doc *datacite.Document, actorID string) (*model.Resource, bool, error) {
	attrs := &doc.Data.Attributes

	payload, err := im.buildPayload(attrs)
	if err != nil {
		return nil, false, err
	}

	if payload.DOI != "" {
		existing, err := im.store.GetByDOI(payload.DOI)
		switch {
		case err == nil:
			payload.ID = &existing.ID
		case !errors.Is(err, storage.ErrNotFound):
			return nil, false, err
		}
	}

	return im.store.Save(payload, actorID)
}

// buildPayload maps the document attributes onto an edit payload. Per-child
// filtering happens here so the strict storage validation only ever sees
// resolvable data; anything dropped is logged.
func (im *Importer) buildPayload(attrs *datacite.Attributes) (storage.EditPayload, error) {
	general := attrs.Types.ResourceTypeGeneral
	typeName := datacite.ResourceTypeName(general)

	p := storage.EditPayload{
		DOI:             attrs.DOI,
		PublicationYear: attrs.PublicationYear,
		Version:         attrs.Version,
		ResourceType:    slugify(typeName),
		Language:        attrs.Language,
		Publisher:       attrs.Publisher.Name,
		Sizes:           attrs.Sizes,
		Formats:         attrs.Formats,
	}

	for _, t := range attrs.Titles {
		if t.Title == "" {
			im.log.Warn("skipping empty title")
			continue
		}
		p.Titles = append(p.Titles, storage.TitleInput{
			Value:    t.Title,
			Type:     datacite.TitleTypeSlug(t.TitleType),
			Language: t.Lang,
		})
	}

	for _, n := range attrs.Creators {
		agent, ok := im.parseAgent(n)
		if !ok {
			continue
		}
		p.Creators = append(p.Creators, agent)
	}

	for _, n := range attrs.Contributors {
		agent, ok := im.parseAgent(n)
		if !ok {
			continue
		}
		agent.Role = datacite.ContributorTypeSlug(n.ContributorType)
		if agent.Role == "" {
			im.log.Warn("skipping contributor with unknown type",
				"name", n.Name, "contributorType", n.ContributorType)
			continue
		}
		p.Contributors = append(p.Contributors, agent)
	}

	for _, d := range attrs.Descriptions {
		slug := datacite.DescriptionTypeSlug(d.DescriptionType)
		if slug == "" {
			im.log.Warn("skipping description with unknown type", "descriptionType", d.DescriptionType)
			continue
		}
		p.Descriptions = append(p.Descriptions, storage.DescriptionInput{
			Value:    d.Description,
			Type:     slug,
			Language: d.Lang,
		})
	}

	p.Subjects = make([]model.Subject, 0, len(attrs.Subjects))
	for _, s := range attrs.Subjects {
		p.Subjects = append(p.Subjects, model.Subject{
			Value:              s.Subject,
			Scheme:             s.SubjectScheme,
			SchemeURI:          s.SchemeURI,
			ValueURI:           s.ValueURI,
			ClassificationCode: s.ClassificationCode,
		})
	}

	for _, d := range attrs.Dates {
		entry, ok := im.parseDate(d)
		if !ok {
			continue
		}
		p.Dates = append(p.Dates, entry)
	}

	for _, g := range attrs.GeoLocations {
		in := im.parseGeoLocation(g)
		if emptyGeoLocation(in) {
			continue
		}
		p.GeoLocations = append(p.GeoLocations, in)
	}

	for _, rel := range attrs.RelatedIdentifiers {
		if !im.store.HasIdentifierType(rel.RelatedIdentifierType) {
			im.log.Warn("skipping related identifier with unknown type",
				"identifier", rel.RelatedIdentifier, "identifierType", rel.RelatedIdentifierType)
			continue
		}
		if !im.store.HasRelationType(rel.RelationType) {
			im.log.Warn("skipping related identifier with unknown relation",
				"identifier", rel.RelatedIdentifier, "relationType", rel.RelationType)
			continue
		}
		p.RelatedIdentifiers = append(p.RelatedIdentifiers, storage.RelatedIdentifierInput{
			Identifier:          rel.RelatedIdentifier,
			Type:                rel.RelatedIdentifierType,
			RelationType:        rel.RelationType,
			ResourceTypeGeneral: rel.ResourceTypeGeneral,
		})
	}

	for _, f := range attrs.FundingReferences {
		if f.FunderName == "" {
			im.log.Warn("skipping funding reference without funder name")
			continue
		}
		p.FundingReferences = append(p.FundingReferences, model.FundingReference{
			FunderName:           f.FunderName,
			FunderIdentifier:     f.FunderIdentifier,
			FunderIdentifierType: f.FunderIdentifierType,
			AwardNumber:          f.AwardNumber,
			AwardURI:             f.AwardURI,
			AwardTitle:           f.AwardTitle,
		})
	}

	for _, right := range attrs.RightsList {
		if right.RightsIdentifier == "" {
			im.log.Warn("skipping rights entry without identifier", "rights", right.Rights)
			continue
		}
		p.Licenses = append(p.Licenses, right.RightsIdentifier)
	}

	if general == "PhysicalObject" {
		p.Sample = parseSample(attrs)
	}

	return p, nil
}

// parseAgent maps one DataCite name onto an agent input. Returns false when
// the entry cannot yield a usable identity.
func (im *Importer) parseAgent(n datacite.Name) (storage.AgentInput, bool) {
	identifier, scheme := pickNameIdentifier(n.NameIdentifiers)

	if n.NameType == datacite.NameTypeOrganizational {
		if n.Name == "" {
			im.log.Warn("skipping organizational name without a name")
			return storage.AgentInput{}, false
		}
		return storage.AgentInput{
			Kind:         storage.AgentInstitution,
			Name:         n.Name,
			Identifier:   identifier,
			Scheme:       scheme,
			Affiliations: parseAffiliations(n.Affiliation),
		}, true
	}

	given, family := n.GivenName, n.FamilyName
	if family == "" {
		parsed := helpers.ParsePersonName(n.Name)
		given, family = parsed.Given, parsed.Family
	}
	if family == "" {
		im.log.Warn("skipping creator with unparseable name", "name", n.Name)
		return storage.AgentInput{}, false
	}

	agent := storage.AgentInput{
		Kind:         storage.AgentPerson,
		FamilyName:   family,
		Identifier:   identifier,
		Scheme:       scheme,
		Affiliations: parseAffiliations(n.Affiliation),
	}
	if given != "" {
		agent.GivenName = &given
	}
	return agent, true
}

// pickNameIdentifier extracts the first usable external identifier,
// canonicalised to its bare form. The scheme comes from the entry or, when
// absent, from the identifier's shape.
func pickNameIdentifier(ids []datacite.NameIdentifier) (identifier, scheme string) {
	for _, id := range ids {
		value := identifiers.Canonicalise(id.NameIdentifier)
		if value == "" {
			continue
		}
		s := id.NameIdentifierScheme
		if s == "" {
			s = identifiers.DetectScheme(value)
		}
		if s == "" {
			continue
		}
		return value, s
	}
	return "", ""
}

func parseAffiliations(affils []datacite.Affiliation) []storage.AffiliationInput {
	out := make([]storage.AffiliationInput, 0, len(affils))
	for _, a := range affils {
		if a.Name == "" {
			continue
		}
		out = append(out, storage.AffiliationInput{
			Name:       a.Name,
			Identifier: identifiers.Canonicalise(a.AffiliationIdentifier),
			Scheme:     a.AffiliationIdentifierScheme,
			SchemeURI:  a.SchemeURI,
		})
	}
	return out
}

// parseDate maps one DataCite date onto a date input. Range values use the
// "start/end" form; partial ISO dates are normalized to full calendar
// dates, start-of-period for starts and end-of-period for ends.
func (im *Importer) parseDate(d datacite.Date) (storage.DateInput, bool) {
	slug := datacite.DateTypeSlug(d.DateType)
	if slug == "" {
		im.log.Warn("skipping date with unknown type", "dateType", d.DateType, "date", d.Date)
		return storage.DateInput{}, false
	}
	if d.Date == "" {
		im.log.Warn("skipping date without a value", "dateType", d.DateType)
		return storage.DateInput{}, false
	}

	entry := storage.DateInput{Type: slug, Information: d.DateInformation}

	if start, end, ok := strings.Cut(d.Date, "/"); ok {
		normStart, err := helpers.NormalizeDateStart(start)
		if err != nil {
			im.log.Warn("skipping date with unparseable range start", "date", d.Date, "error", err)
			return storage.DateInput{}, false
		}
		entry.Start = normStart
		if end != "" {
			normEnd, err := helpers.NormalizeDateEnd(end)
			if err != nil {
				im.log.Warn("skipping date with unparseable range end", "date", d.Date, "error", err)
				return storage.DateInput{}, false
			}
			entry.End = normEnd
		}
		return entry, true
	}

	value, err := helpers.NormalizeDateStart(d.Date)
	if err != nil {
		im.log.Warn("skipping unparseable date", "date", d.Date, "error", err)
		return storage.DateInput{}, false
	}
	entry.Value = value
	return entry, true
}

// parseGeoLocation maps one DataCite geolocation onto a geolocation input.
// Polygons that would fail validation are dropped with a warning here
// instead of failing the whole import.
func (im *Importer) parseGeoLocation(g datacite.GeoLocation) storage.GeoLocationInput {
	in := storage.GeoLocationInput{Place: g.GeoLocationPlace}
	if g.GeoLocationPoint != nil {
		in.PointLatitude = formatCoord(g.GeoLocationPoint.PointLatitude)
		in.PointLongitude = formatCoord(g.GeoLocationPoint.PointLongitude)
	}
	if g.GeoLocationBox != nil {
		in.West = formatCoord(g.GeoLocationBox.WestBoundLongitude)
		in.East = formatCoord(g.GeoLocationBox.EastBoundLongitude)
		in.South = formatCoord(g.GeoLocationBox.SouthBoundLatitude)
		in.North = formatCoord(g.GeoLocationBox.NorthBoundLatitude)
	}
	if len(g.GeoLocationPolygon) > 0 {
		valid := 0
		for _, p := range g.GeoLocationPolygon {
			pt := model.GeoPoint{
				Latitude:  p.PolygonPoint.PointLatitude,
				Longitude: p.PolygonPoint.PointLongitude,
			}
			if pt.InBounds() {
				valid++
			}
		}
		if valid < 3 {
			im.log.Warn("skipping polygon with too few valid points",
				"place", g.GeoLocationPlace, "valid", valid)
		} else {
			for _, p := range g.GeoLocationPolygon {
				in.Polygon = append(in.Polygon, storage.PolygonPointInput{
					Latitude:  formatCoord(p.PolygonPoint.PointLatitude),
					Longitude: formatCoord(p.PolygonPoint.PointLongitude),
				})
			}
			if g.InPolygonPoint != nil {
				in.InPointLatitude = formatCoord(g.InPolygonPoint.PointLatitude)
				in.InPointLongitude = formatCoord(g.InPolygonPoint.PointLongitude)
			}
		}
	}
	return in
}

// parseSample recovers IGSN sample metadata from a physical-object
// document: the IGSN from the alternate identifiers, the sample type and
// material from the "type: material" specific resourceType.
func parseSample(attrs *datacite.Attributes) *model.PhysicalSample {
	sample := &model.PhysicalSample{}
	for _, alt := range attrs.AlternateIdentifiers {
		if strings.EqualFold(alt.AlternateIdentifierType, "IGSN") {
			sample.IGSN = alt.AlternateIdentifier
			break
		}
	}

	specific := attrs.Types.ResourceType
	if specific != "" && specific != "Physical Object" {
		if sampleType, material, ok := strings.Cut(specific, ": "); ok {
			sample.SampleType = sampleType
			sample.Material = material
		} else {
			sample.SampleType = specific
		}
	}

	if sample.IGSN == "" && sample.SampleType == "" && sample.Material == "" {
		return nil
	}
	return sample
}

// emptyGeoLocation reports whether nothing survived filtering, so no row
// should be stored at all.
func emptyGeoLocation(in storage.GeoLocationInput) bool {
	return in.Place == "" &&
		in.PointLatitude == "" && in.PointLongitude == "" &&
		in.West == "" && in.East == "" && in.South == "" && in.North == "" &&
		len(in.Polygon) == 0
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// slugify turns an internal type name into its lookup slug:
// "Book Chapter" -> "book-chapter".
func slugify(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, " ", "-"))
}

// ParseDocument decodes a DataCite JSON document, accepting both the full
// {"data":{...}} envelope and a bare attributes object.
func ParseDocument(raw []byte) (*datacite.Document, error) {
	var doc datacite.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decoding document: %w", err)
	}
	if doc.Data.Attributes.PublicationYear == 0 && len(doc.Data.Attributes.Titles) == 0 {
		var attrs datacite.Attributes
		if err := json.Unmarshal(raw, &attrs); err == nil &&
			(attrs.PublicationYear != 0 || len(attrs.Titles) > 0) {
			doc.Data = datacite.Data{Type: "dois", Attributes: attrs}
		}
	}
	return &doc, nil
}
