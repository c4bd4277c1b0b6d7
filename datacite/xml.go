package datacite

import "encoding/xml"

// XML marshal types for the kernel-4 representation. encoding/xml handles
// entity escaping of all character data.

// XMLResource is the root <resource> element.
type XMLResource struct {
	XMLName              xml.Name                 `xml:"resource"`
	Xmlns                string                   `xml:"xmlns,attr"`
	XmlnsXsi             string                   `xml:"xmlns:xsi,attr"`
	XsiSchemaLocation    string                   `xml:"xsi:schemaLocation,attr"`
	Identifier           *XMLIdentifier           `xml:"identifier"`
	Creators             []XMLCreator             `xml:"creators>creator"`
	Titles               []XMLTitle               `xml:"titles>title"`
	Publisher            XMLPublisher             `xml:"publisher"`
	PublicationYear      int                      `xml:"publicationYear"`
	ResourceType         *XMLResourceType         `xml:"resourceType"`
	Subjects             []XMLSubject             `xml:"subjects>subject,omitempty"`
	Contributors         []XMLContributor         `xml:"contributors>contributor,omitempty"`
	Dates                []XMLDate                `xml:"dates>date,omitempty"`
	Language             string                   `xml:"language,omitempty"`
	AlternateIdentifiers []XMLAlternateIdentifier `xml:"alternateIdentifiers>alternateIdentifier,omitempty"`
	RelatedIdentifiers   []XMLRelatedIdentifier   `xml:"relatedIdentifiers>relatedIdentifier,omitempty"`
	Sizes                []string                 `xml:"sizes>size,omitempty"`
	Formats              []string                 `xml:"formats>format,omitempty"`
	Version              string                   `xml:"version,omitempty"`
	RightsList           []XMLRights              `xml:"rightsList>rights,omitempty"`
	Descriptions         []XMLDescription         `xml:"descriptions>description,omitempty"`
	GeoLocations         []XMLGeoLocation         `xml:"geoLocations>geoLocation,omitempty"`
	FundingReferences    []XMLFundingReference    `xml:"fundingReferences>fundingReference,omitempty"`
}

// XMLIdentifier is the primary DOI identifier.
type XMLIdentifier struct {
	IdentifierType string `xml:"identifierType,attr"`
	Value          string `xml:",chardata"`
}

// XMLCreator is one <creator> entry.
type XMLCreator struct {
	CreatorName     XMLName             `xml:"creatorName"`
	GivenName       string              `xml:"givenName,omitempty"`
	FamilyName      string              `xml:"familyName,omitempty"`
	NameIdentifiers []XMLNameIdentifier `xml:"nameIdentifier"`
	Affiliations    []XMLAffiliation    `xml:"affiliation"`
}

// XMLContributor is one <contributor> entry.
type XMLContributor struct {
	ContributorType string              `xml:"contributorType,attr"`
	ContributorName XMLName             `xml:"contributorName"`
	GivenName       string              `xml:"givenName,omitempty"`
	FamilyName      string              `xml:"familyName,omitempty"`
	NameIdentifiers []XMLNameIdentifier `xml:"nameIdentifier"`
	Affiliations    []XMLAffiliation    `xml:"affiliation"`
}

// XMLName is a creatorName/contributorName element with its nameType.
type XMLName struct {
	NameType string `xml:"nameType,attr,omitempty"`
	Value    string `xml:",chardata"`
}

// XMLNameIdentifier is an ORCID/ROR identifier of a name.
type XMLNameIdentifier struct {
	NameIdentifierScheme string `xml:"nameIdentifierScheme,attr"`
	SchemeURI            string `xml:"schemeURI,attr,omitempty"`
	Value                string `xml:",chardata"`
}

// XMLAffiliation is an affiliation of a name.
type XMLAffiliation struct {
	AffiliationIdentifier       string `xml:"affiliationIdentifier,attr,omitempty"`
	AffiliationIdentifierScheme string `xml:"affiliationIdentifierScheme,attr,omitempty"`
	SchemeURI                   string `xml:"schemeURI,attr,omitempty"`
	Value                       string `xml:",chardata"`
}

// XMLTitle is one <title> entry. Main titles carry no titleType attribute.
type XMLTitle struct {
	TitleType string `xml:"titleType,attr,omitempty"`
	Lang      string `xml:"xml:lang,attr,omitempty"`
	Value     string `xml:",chardata"`
}

// XMLPublisher is the structured publisher element.
type XMLPublisher struct {
	PublisherIdentifier       string `xml:"publisherIdentifier,attr,omitempty"`
	PublisherIdentifierScheme string `xml:"publisherIdentifierScheme,attr,omitempty"`
	SchemeURI                 string `xml:"schemeURI,attr,omitempty"`
	Value                     string `xml:",chardata"`
}

// XMLSubject is one <subject> entry.
type XMLSubject struct {
	SubjectScheme      string `xml:"subjectScheme,attr,omitempty"`
	SchemeURI          string `xml:"schemeURI,attr,omitempty"`
	ValueURI           string `xml:"valueURI,attr,omitempty"`
	ClassificationCode string `xml:"classificationCode,attr,omitempty"`
	Lang               string `xml:"xml:lang,attr,omitempty"`
	Value              string `xml:",chardata"`
}

// XMLDate is one <date> entry; ranges use the "start/end" text form.
type XMLDate struct {
	DateType        string `xml:"dateType,attr"`
	DateInformation string `xml:"dateInformation,attr,omitempty"`
	Value           string `xml:",chardata"`
}

// XMLResourceType is the resourceType element.
type XMLResourceType struct {
	ResourceTypeGeneral string `xml:"resourceTypeGeneral,attr"`
	Value               string `xml:",chardata"`
}

// XMLAlternateIdentifier is one alternateIdentifier entry.
type XMLAlternateIdentifier struct {
	AlternateIdentifierType string `xml:"alternateIdentifierType,attr"`
	Value                   string `xml:",chardata"`
}

// XMLRelatedIdentifier is one relatedIdentifier entry.
type XMLRelatedIdentifier struct {
	RelatedIdentifierType string `xml:"relatedIdentifierType,attr"`
	RelationType          string `xml:"relationType,attr"`
	ResourceTypeGeneral   string `xml:"resourceTypeGeneral,attr,omitempty"`
	Value                 string `xml:",chardata"`
}

// XMLRights is one rights entry.
type XMLRights struct {
	RightsURI              string `xml:"rightsURI,attr,omitempty"`
	RightsIdentifier       string `xml:"rightsIdentifier,attr,omitempty"`
	RightsIdentifierScheme string `xml:"rightsIdentifierScheme,attr,omitempty"`
	Lang                   string `xml:"xml:lang,attr,omitempty"`
	Value                  string `xml:",chardata"`
}

// XMLDescription is one description entry.
type XMLDescription struct {
	DescriptionType string `xml:"descriptionType,attr"`
	Lang            string `xml:"xml:lang,attr,omitempty"`
	Value           string `xml:",chardata"`
}

// XMLGeoLocation is one geoLocation entry.
type XMLGeoLocation struct {
	Place   string             `xml:"geoLocationPlace,omitempty"`
	Point   *XMLGeoPoint       `xml:"geoLocationPoint"`
	Box     *XMLGeoBox         `xml:"geoLocationBox"`
	Polygon *XMLGeoPolygon     `xml:"geoLocationPolygon"`
}

// XMLGeoPoint is a coordinate pair.
type XMLGeoPoint struct {
	PointLatitude  float64 `xml:"pointLatitude"`
	PointLongitude float64 `xml:"pointLongitude"`
}

// XMLGeoBox is a bounding box.
type XMLGeoBox struct {
	WestBoundLongitude float64 `xml:"westBoundLongitude"`
	EastBoundLongitude float64 `xml:"eastBoundLongitude"`
	SouthBoundLatitude float64 `xml:"southBoundLatitude"`
	NorthBoundLatitude float64 `xml:"northBoundLatitude"`
}

// XMLGeoPolygon is a polygon with at least three vertices.
type XMLGeoPolygon struct {
	Points         []XMLGeoPoint `xml:"polygonPoint"`
	InPolygonPoint *XMLGeoPoint  `xml:"inPolygonPoint"`
}

// XMLFundingReference is one fundingReference entry.
type XMLFundingReference struct {
	FunderName           string            `xml:"funderName"`
	FunderIdentifier     *XMLFunderID      `xml:"funderIdentifier"`
	AwardNumber          *XMLAwardNumber   `xml:"awardNumber"`
	AwardTitle           string            `xml:"awardTitle,omitempty"`
}

// XMLFunderID is the funder identifier with its type attribute.
type XMLFunderID struct {
	FunderIdentifierType string `xml:"funderIdentifierType,attr"`
	Value                string `xml:",chardata"`
}

// XMLAwardNumber is the award number with its optional URI attribute.
type XMLAwardNumber struct {
	AwardURI string `xml:"awardURI,attr,omitempty"`
	Value    string `xml:",chardata"`
}
