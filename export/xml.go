package export

import (
	"encoding/xml"
	"fmt"

	"github.com/geosamples/curator/datacite"
	"github.com/geosamples/curator/identifiers"
	"github.com/geosamples/curator/model"
)

func init() {
	Register(&xmlExporter{})
}

// xmlExporter renders the DataCite kernel-4 XML representation.
type xmlExporter struct{}

func (e *xmlExporter) Name() string      { return "xml" }
func (e *xmlExporter) Extension() string { return "xml" }

func (e *xmlExporter) Export(r *model.Resource, opts Options) ([]byte, error) {
	general, specific := resourceTypes(r)

	doc := datacite.XMLResource{
		Xmlns:             datacite.XMLNamespace,
		XmlnsXsi:          datacite.XSINamespace,
		XsiSchemaLocation: datacite.XSISchemaLocation,
		Publisher:         datacite.XMLPublisher{Value: publisherName(r, opts)},
		PublicationYear:   r.PublicationYear,
		ResourceType:      &datacite.XMLResourceType{ResourceTypeGeneral: general, Value: specific},
		Language:          resourceLang(r),
		Sizes:             r.Sizes,
		Formats:           r.Formats,
		Version:           r.Version,
	}

	if r.HasDOI() {
		doc.Identifier = &datacite.XMLIdentifier{IdentifierType: "DOI", Value: *r.DOI}
	}
	if r.Sample != nil && r.Sample.IGSN != "" {
		doc.AlternateIdentifiers = []datacite.XMLAlternateIdentifier{
			{AlternateIdentifierType: "IGSN", Value: r.Sample.IGSN},
		}
	}

	for _, entry := range creatorEntries(r) {
		doc.Creators = append(doc.Creators, datacite.XMLCreator{
			CreatorName:     datacite.XMLName{NameType: entry.nameType, Value: entry.name},
			GivenName:       entry.givenName,
			FamilyName:      entry.familyName,
			NameIdentifiers: xmlNameIdentifiers(entry),
			Affiliations:    xmlAffiliations(entry),
		})
	}

	for _, t := range r.Titles {
		entry := datacite.XMLTitle{Value: t.Value, Lang: childLang(r, t.Language)}
		if t.Type != model.TitleMain {
			entry.TitleType = datacite.TitleType(t.Type)
		}
		doc.Titles = append(doc.Titles, entry)
	}
	// The schema requires at least one title.
	if len(doc.Titles) == 0 {
		doc.Titles = []datacite.XMLTitle{{Value: "Untitled", Lang: childLang(r, "")}}
	}

	for _, s := range r.Subjects {
		doc.Subjects = append(doc.Subjects, datacite.XMLSubject{
			SubjectScheme:      s.Scheme,
			SchemeURI:          s.SchemeURI,
			ValueURI:           s.ValueURI,
			ClassificationCode: s.ClassificationCode,
			Value:              s.Value,
		})
	}

	for _, entry := range contributorEntries(r) {
		doc.Contributors = append(doc.Contributors, datacite.XMLContributor{
			ContributorType: entry.role,
			ContributorName: datacite.XMLName{NameType: entry.nameType, Value: entry.name},
			GivenName:       entry.givenName,
			FamilyName:      entry.familyName,
			NameIdentifiers: xmlNameIdentifiers(entry),
			Affiliations:    xmlAffiliations(entry),
		})
	}

	for _, d := range exportableDates(r) {
		doc.Dates = append(doc.Dates, datacite.XMLDate{
			DateType:        d.dateType,
			DateInformation: d.information,
			Value:           d.value,
		})
	}

	for _, rel := range r.RelatedIdentifiers {
		doc.RelatedIdentifiers = append(doc.RelatedIdentifiers, datacite.XMLRelatedIdentifier{
			RelatedIdentifierType: rel.Type,
			RelationType:          rel.RelationType,
			ResourceTypeGeneral:   rel.ResourceTypeGeneral,
			Value:                 rel.Identifier,
		})
	}

	for _, right := range r.Rights {
		entry := datacite.XMLRights{
			RightsURI:        right.URI,
			RightsIdentifier: right.Identifier,
			Lang:             childLang(r, ""),
			Value:            right.Name,
		}
		if right.Identifier != "" {
			entry.RightsIdentifierScheme = "SPDX"
		}
		doc.RightsList = append(doc.RightsList, entry)
	}

	for _, d := range r.Descriptions {
		doc.Descriptions = append(doc.Descriptions, datacite.XMLDescription{
			DescriptionType: datacite.DescriptionType(d.Type),
			Lang:            childLang(r, d.Language),
			Value:           d.Value,
		})
	}

	for _, g := range r.GeoLocations {
		if entry := xmlGeoLocation(g); entry != nil {
			doc.GeoLocations = append(doc.GeoLocations, *entry)
		}
	}

	for _, f := range r.FundingReferences {
		entry := datacite.XMLFundingReference{
			FunderName: f.FunderName,
			AwardTitle: f.AwardTitle,
		}
		if f.FunderIdentifier != "" {
			entry.FunderIdentifier = &datacite.XMLFunderID{
				FunderIdentifierType: f.FunderIdentifierType,
				Value:                f.FunderIdentifier,
			}
		}
		if f.AwardNumber != "" {
			entry.AwardNumber = &datacite.XMLAwardNumber{
				AwardURI: f.AwardURI,
				Value:    f.AwardNumber,
			}
		}
		doc.FundingReferences = append(doc.FundingReferences, entry)
	}

	var out []byte
	var err error
	if opts.Pretty {
		out, err = xml.MarshalIndent(doc, "", "  ")
	} else {
		out, err = xml.Marshal(doc)
	}
	if err != nil {
		return nil, fmt.Errorf("marshaling document: %w", err)
	}
	return append([]byte(xml.Header), out...), nil
}

func xmlNameIdentifiers(e agentEntry) []datacite.XMLNameIdentifier {
	if e.identifier == "" {
		return nil
	}
	return []datacite.XMLNameIdentifier{{
		NameIdentifierScheme: e.scheme,
		SchemeURI:            identifiers.SchemeURI(e.scheme),
		Value:                e.identifier,
	}}
}

func xmlAffiliations(e agentEntry) []datacite.XMLAffiliation {
	if len(e.affils) == 0 {
		return nil
	}
	out := make([]datacite.XMLAffiliation, 0, len(e.affils))
	for _, a := range e.affils {
		out = append(out, datacite.XMLAffiliation{
			AffiliationIdentifier:       a.Identifier,
			AffiliationIdentifierScheme: a.Scheme,
			SchemeURI:                   a.SchemeURI,
			Value:                       a.Name,
		})
	}
	return out
}

func xmlGeoLocation(g model.GeoLocation) *datacite.XMLGeoLocation {
	if !g.HasShape() {
		return nil
	}
	entry := datacite.XMLGeoLocation{Place: g.Place}
	if g.Point != nil {
		entry.Point = &datacite.XMLGeoPoint{
			PointLatitude:  g.Point.Latitude,
			PointLongitude: g.Point.Longitude,
		}
	}
	if g.Box != nil {
		entry.Box = &datacite.XMLGeoBox{
			WestBoundLongitude: g.Box.West,
			EastBoundLongitude: g.Box.East,
			SouthBoundLatitude: g.Box.South,
			NorthBoundLatitude: g.Box.North,
		}
	}
	if len(g.Polygon) >= 3 {
		polygon := &datacite.XMLGeoPolygon{}
		for _, p := range g.Polygon {
			polygon.Points = append(polygon.Points, datacite.XMLGeoPoint{
				PointLatitude:  p.Latitude,
				PointLongitude: p.Longitude,
			})
		}
		if g.InPolygonPoint != nil {
			polygon.InPolygonPoint = &datacite.XMLGeoPoint{
				PointLatitude:  g.InPolygonPoint.Latitude,
				PointLongitude: g.InPolygonPoint.Longitude,
			}
		}
		entry.Polygon = polygon
	}
	return &entry
}
