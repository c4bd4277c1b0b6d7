package datacite

// Document is the JSON envelope used by the DataCite REST API:
// {"data":{"type":"dois","attributes":{...}}}.
type Document struct {
	Data Data `json:"data"`
}

// Data is the JSON:API object carrying the DOI attributes.
type Data struct {
	ID         string     `json:"id,omitempty"`
	Type       string     `json:"type"`
	Attributes Attributes `json:"attributes"`
}

// Attributes holds the DataCite metadata properties. The doi and
// identifiers fields are present only when the resource has a registered
// DOI, so draft resources export cleanly.
type Attributes struct {
	DOI                  string                `json:"doi,omitempty"`
	Identifiers          []Identifier          `json:"identifiers,omitempty"`
	AlternateIdentifiers []AlternateIdentifier `json:"alternateIdentifiers,omitempty"`
	Creators             []Name                `json:"creators"`
	Titles               []Title               `json:"titles"`
	Publisher            Publisher             `json:"publisher"`
	PublicationYear      int                   `json:"publicationYear"`
	Subjects             []Subject             `json:"subjects,omitempty"`
	Contributors         []Name                `json:"contributors,omitempty"`
	Dates                []Date                `json:"dates,omitempty"`
	Language             string                `json:"language,omitempty"`
	Types                Types                 `json:"types"`
	RelatedIdentifiers   []RelatedIdentifier   `json:"relatedIdentifiers,omitempty"`
	Sizes                []string              `json:"sizes,omitempty"`
	Formats              []string              `json:"formats,omitempty"`
	Version              string                `json:"version,omitempty"`
	RightsList           []Rights              `json:"rightsList,omitempty"`
	Descriptions         []Description         `json:"descriptions,omitempty"`
	GeoLocations         []GeoLocation         `json:"geoLocations,omitempty"`
	FundingReferences    []FundingReference    `json:"fundingReferences,omitempty"`
	SchemaVersion        string                `json:"schemaVersion,omitempty"`
}

// Identifier is a primary identifier entry.
type Identifier struct {
	Identifier     string `json:"identifier"`
	IdentifierType string `json:"identifierType"`
}

// AlternateIdentifier is a non-DOI identifier of the resource itself.
type AlternateIdentifier struct {
	AlternateIdentifier     string `json:"alternateIdentifier"`
	AlternateIdentifierType string `json:"alternateIdentifierType"`
}

// Name is a creator or contributor entry. ContributorType is set only in
// the contributors list.
type Name struct {
	Name            string           `json:"name"`
	NameType        string           `json:"nameType,omitempty"`
	GivenName       string           `json:"givenName,omitempty"`
	FamilyName      string           `json:"familyName,omitempty"`
	ContributorType string           `json:"contributorType,omitempty"`
	NameIdentifiers []NameIdentifier `json:"nameIdentifiers,omitempty"`
	Affiliation     []Affiliation    `json:"affiliation,omitempty"`
}

// NameIdentifier is an external identifier of a person or organization.
type NameIdentifier struct {
	NameIdentifier       string `json:"nameIdentifier"`
	NameIdentifierScheme string `json:"nameIdentifierScheme"`
	SchemeURI            string `json:"schemeUri,omitempty"`
}

// Affiliation is an organization a creator or contributor belongs to.
type Affiliation struct {
	Name                        string `json:"name"`
	AffiliationIdentifier       string `json:"affiliationIdentifier,omitempty"`
	AffiliationIdentifierScheme string `json:"affiliationIdentifierScheme,omitempty"`
	SchemeURI                   string `json:"schemeUri,omitempty"`
}

// Title is a title entry; main titles carry no titleType.
type Title struct {
	Title     string `json:"title"`
	TitleType string `json:"titleType,omitempty"`
	Lang      string `json:"lang,omitempty"`
}

// Publisher is the 4.5+ structured publisher.
type Publisher struct {
	Name                      string `json:"name"`
	PublisherIdentifier       string `json:"publisherIdentifier,omitempty"`
	PublisherIdentifierScheme string `json:"publisherIdentifierScheme,omitempty"`
	SchemeURI                 string `json:"schemeUri,omitempty"`
}

// Subject is a keyword or controlled-vocabulary entry.
type Subject struct {
	Subject            string `json:"subject"`
	SubjectScheme      string `json:"subjectScheme,omitempty"`
	SchemeURI          string `json:"schemeUri,omitempty"`
	ValueURI           string `json:"valueUri,omitempty"`
	ClassificationCode string `json:"classificationCode,omitempty"`
	Lang               string `json:"lang,omitempty"`
}

// Date is a typed date entry. Ranges use the "start/end" form in Date.
type Date struct {
	Date            string `json:"date"`
	DateType        string `json:"dateType"`
	DateInformation string `json:"dateInformation,omitempty"`
}

// Types carries the resource type pair.
type Types struct {
	ResourceTypeGeneral string `json:"resourceTypeGeneral"`
	ResourceType        string `json:"resourceType,omitempty"`
}

// RelatedIdentifier links to another identified object.
type RelatedIdentifier struct {
	RelatedIdentifier     string `json:"relatedIdentifier"`
	RelatedIdentifierType string `json:"relatedIdentifierType"`
	RelationType          string `json:"relationType"`
	ResourceTypeGeneral   string `json:"resourceTypeGeneral,omitempty"`
}

// Rights is a license entry.
type Rights struct {
	Rights                 string `json:"rights,omitempty"`
	RightsURI              string `json:"rightsUri,omitempty"`
	RightsIdentifier       string `json:"rightsIdentifier,omitempty"`
	RightsIdentifierScheme string `json:"rightsIdentifierScheme,omitempty"`
	Lang                   string `json:"lang,omitempty"`
}

// Description is a typed description entry.
type Description struct {
	Description     string `json:"description"`
	DescriptionType string `json:"descriptionType"`
	Lang            string `json:"lang,omitempty"`
}

// GeoLocation is one geolocation entry; each sub-shape is optional and
// independent.
type GeoLocation struct {
	GeoLocationPlace   string         `json:"geoLocationPlace,omitempty"`
	GeoLocationPoint   *GeoPoint      `json:"geoLocationPoint,omitempty"`
	GeoLocationBox     *GeoBox        `json:"geoLocationBox,omitempty"`
	GeoLocationPolygon []PolygonPoint `json:"geoLocationPolygon,omitempty"`
	InPolygonPoint     *GeoPoint      `json:"inPolygonPoint,omitempty"`
}

// GeoPoint is a latitude/longitude pair.
type GeoPoint struct {
	PointLatitude  float64 `json:"pointLatitude"`
	PointLongitude float64 `json:"pointLongitude"`
}

// GeoBox is a bounding box.
type GeoBox struct {
	WestBoundLongitude float64 `json:"westBoundLongitude"`
	EastBoundLongitude float64 `json:"eastBoundLongitude"`
	SouthBoundLatitude float64 `json:"southBoundLatitude"`
	NorthBoundLatitude float64 `json:"northBoundLatitude"`
}

// PolygonPoint wraps one polygon vertex.
type PolygonPoint struct {
	PolygonPoint GeoPoint `json:"polygonPoint"`
}

// FundingReference names a funder and award.
type FundingReference struct {
	FunderName           string `json:"funderName"`
	FunderIdentifier     string `json:"funderIdentifier,omitempty"`
	FunderIdentifierType string `json:"funderIdentifierType,omitempty"`
	AwardNumber          string `json:"awardNumber,omitempty"`
	AwardURI             string `json:"awardUri,omitempty"`
	AwardTitle           string `json:"awardTitle,omitempty"`
}
