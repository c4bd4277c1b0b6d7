package export

import (
	"encoding/json"
	"fmt"

	"github.com/geosamples/curator/datacite"
	"github.com/geosamples/curator/identifiers"
	"github.com/geosamples/curator/model"
)

func init() {
	Register(&jsonExporter{})
}

// jsonExporter renders the DataCite REST API JSON envelope.
type jsonExporter struct{}

func (e *jsonExporter) Name() string      { return "json" }
func (e *jsonExporter) Extension() string { return "json" }

func (e *jsonExporter) Export(r *model.Resource, opts Options) ([]byte, error) {
	doc := datacite.Document{
		Data: datacite.Data{
			Type:       "dois",
			Attributes: buildAttributes(r, opts),
		},
	}
	if r.HasDOI() {
		doc.Data.ID = *r.DOI
	}

	if opts.Pretty {
		out, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling document: %w", err)
		}
		return out, nil
	}
	return json.Marshal(doc)
}

func buildAttributes(r *model.Resource, opts Options) datacite.Attributes {
	general, specific := resourceTypes(r)

	attrs := datacite.Attributes{
		Creators:        jsonNames(creatorEntries(r)),
		Publisher:       datacite.Publisher{Name: publisherName(r, opts)},
		PublicationYear: r.PublicationYear,
		Language:        resourceLang(r),
		Types:           datacite.Types{ResourceTypeGeneral: general, ResourceType: specific},
		Sizes:           r.Sizes,
		Formats:         r.Formats,
		Version:         r.Version,
		SchemaVersion:   datacite.XMLNamespace,
	}

	// Draft-safe: doi and identifiers appear only for registered resources.
	if r.HasDOI() {
		attrs.DOI = *r.DOI
		attrs.Identifiers = []datacite.Identifier{{Identifier: *r.DOI, IdentifierType: "DOI"}}
	}
	if r.Sample != nil && r.Sample.IGSN != "" {
		attrs.AlternateIdentifiers = []datacite.AlternateIdentifier{
			{AlternateIdentifier: r.Sample.IGSN, AlternateIdentifierType: "IGSN"},
		}
	}

	for _, t := range r.Titles {
		entry := datacite.Title{Title: t.Value, Lang: childLang(r, t.Language)}
		if t.Type != model.TitleMain {
			entry.TitleType = datacite.TitleType(t.Type)
		}
		attrs.Titles = append(attrs.Titles, entry)
	}

	for _, s := range r.Subjects {
		attrs.Subjects = append(attrs.Subjects, datacite.Subject{
			Subject:            s.Value,
			SubjectScheme:      s.Scheme,
			SchemeURI:          s.SchemeURI,
			ValueURI:           s.ValueURI,
			ClassificationCode: s.ClassificationCode,
		})
	}

	attrs.Contributors = jsonNames(contributorEntries(r))

	for _, d := range exportableDates(r) {
		attrs.Dates = append(attrs.Dates, datacite.Date{
			Date:            d.value,
			DateType:        d.dateType,
			DateInformation: d.information,
		})
	}

	for _, rel := range r.RelatedIdentifiers {
		attrs.RelatedIdentifiers = append(attrs.RelatedIdentifiers, datacite.RelatedIdentifier{
			RelatedIdentifier:     rel.Identifier,
			RelatedIdentifierType: rel.Type,
			RelationType:          rel.RelationType,
			ResourceTypeGeneral:   rel.ResourceTypeGeneral,
		})
	}

	for _, right := range r.Rights {
		entry := datacite.Rights{
			Rights:           right.Name,
			RightsURI:        right.URI,
			RightsIdentifier: right.Identifier,
			Lang:             childLang(r, ""),
		}
		if right.Identifier != "" {
			entry.RightsIdentifierScheme = "SPDX"
		}
		attrs.RightsList = append(attrs.RightsList, entry)
	}

	for _, d := range r.Descriptions {
		attrs.Descriptions = append(attrs.Descriptions, datacite.Description{
			Description:     d.Value,
			DescriptionType: datacite.DescriptionType(d.Type),
			Lang:            childLang(r, d.Language),
		})
	}

	for _, g := range r.GeoLocations {
		entry := jsonGeoLocation(g)
		if entry != nil {
			attrs.GeoLocations = append(attrs.GeoLocations, *entry)
		}
	}

	for _, f := range r.FundingReferences {
		attrs.FundingReferences = append(attrs.FundingReferences, datacite.FundingReference{
			FunderName:           f.FunderName,
			FunderIdentifier:     f.FunderIdentifier,
			FunderIdentifierType: f.FunderIdentifierType,
			AwardNumber:          f.AwardNumber,
			AwardURI:             f.AwardURI,
			AwardTitle:           f.AwardTitle,
		})
	}

	return attrs
}

func jsonNames(entries []agentEntry) []datacite.Name {
	if len(entries) == 0 {
		return nil
	}
	out := make([]datacite.Name, 0, len(entries))
	for _, e := range entries {
		n := datacite.Name{
			Name:            e.name,
			NameType:        e.nameType,
			GivenName:       e.givenName,
			FamilyName:      e.familyName,
			ContributorType: e.role,
		}
		if e.identifier != "" {
			n.NameIdentifiers = []datacite.NameIdentifier{{
				NameIdentifier:       e.identifier,
				NameIdentifierScheme: e.scheme,
				SchemeURI:            identifiers.SchemeURI(e.scheme),
			}}
		}
		for _, a := range e.affils {
			n.Affiliation = append(n.Affiliation, datacite.Affiliation{
				Name:                        a.Name,
				AffiliationIdentifier:       a.Identifier,
				AffiliationIdentifierScheme: a.Scheme,
				SchemeURI:                   a.SchemeURI,
			})
		}
		out = append(out, n)
	}
	return out
}

// jsonGeoLocation emits each sub-shape independently and only when its
// required coordinates are all present. Returns nil when the entry has
// nothing exportable.
func jsonGeoLocation(g model.GeoLocation) *datacite.GeoLocation {
	if !g.HasShape() {
		return nil
	}
	entry := datacite.GeoLocation{GeoLocationPlace: g.Place}
	if g.Point != nil {
		entry.GeoLocationPoint = &datacite.GeoPoint{
			PointLatitude:  g.Point.Latitude,
			PointLongitude: g.Point.Longitude,
		}
	}
	if g.Box != nil {
		entry.GeoLocationBox = &datacite.GeoBox{
			WestBoundLongitude: g.Box.West,
			EastBoundLongitude: g.Box.East,
			SouthBoundLatitude: g.Box.South,
			NorthBoundLatitude: g.Box.North,
		}
	}
	if len(g.Polygon) >= 3 {
		for _, p := range g.Polygon {
			entry.GeoLocationPolygon = append(entry.GeoLocationPolygon, datacite.PolygonPoint{
				PolygonPoint: datacite.GeoPoint{PointLatitude: p.Latitude, PointLongitude: p.Longitude},
			})
		}
		if g.InPolygonPoint != nil {
			entry.InPolygonPoint = &datacite.GeoPoint{
				PointLatitude:  g.InPolygonPoint.Latitude,
				PointLongitude: g.InPolygonPoint.Longitude,
			}
		}
	}
	return &entry
}
