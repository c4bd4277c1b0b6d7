package storage

import "github.com/geosamples/curator/model"

// EditPayload is the submitted state of one resource, as produced by the
// editing front end or by the import pipelines. A nil ID means create; a
// set ID means update. Coordinates arrive as strings because they are
// user-entered and validated here, not upstream.
type EditPayload struct {
	ID                 *int64
	DOI                string
	PublicationYear    int
	Version            string
	ResourceType       string // slug
	Language           string
	Publisher          string
	Titles             []TitleInput
	Creators           []AgentInput
	Contributors       []AgentInput
	Descriptions       []DescriptionInput
	Dates              []DateInput
	Subjects           []model.Subject
	GeoLocations       []GeoLocationInput
	RelatedIdentifiers []RelatedIdentifierInput
	FundingReferences  []model.FundingReference
	Licenses           []string // SPDX-style identifiers
	Sizes              []string
	Formats            []string
	Sample             *model.PhysicalSample
}

// TitleInput is one submitted title.
type TitleInput struct {
	Value    string
	Type     string
	Language string
}

// DescriptionInput is one submitted description.
type DescriptionInput struct {
	Value    string
	Type     string
	Language string
}

// DateInput is one submitted date: either Value, or Start with an optional
// End. Supplying both is a validation error.
type DateInput struct {
	Type        string
	Value       string
	Start       string
	End         string
	Information string
}

// AgentInput is one submitted creator or contributor. Kind selects the
// variant; Role is set for contributors only.
type AgentInput struct {
	Kind         string // AgentPerson or AgentInstitution
	GivenName    *string
	FamilyName   string
	Name         string // institution name
	Identifier   string
	Scheme       string
	Role         string
	Affiliations []AffiliationInput
}

// Agent variant tags.
const (
	AgentPerson      = "person"
	AgentInstitution = "institution"
)

// AffiliationInput is one submitted affiliation.
type AffiliationInput struct {
	Name       string
	Identifier string
	Scheme     string
	SchemeURI  string
}

// GeoLocationInput is one submitted geolocation; all coordinates are raw
// strings from the form.
type GeoLocationInput struct {
	Place            string
	PointLatitude    string
	PointLongitude   string
	West             string
	East             string
	South            string
	North            string
	Polygon          []PolygonPointInput
	InPointLatitude  string
	InPointLongitude string
}

// PolygonPointInput is one submitted polygon vertex.
type PolygonPointInput struct {
	Latitude  string
	Longitude string
}

// RelatedIdentifierInput is one submitted related identifier.
type RelatedIdentifierInput struct {
	Identifier          string
	Type                string
	RelationType        string
	ResourceTypeGeneral string
}
