// Package model defines the Resource aggregate: one curated metadata record
// together with its owned child collections. The shapes here are what the
// storage layer persists and what the DataCite exporters read.
package model

import "time"

// ResourceType pairs a human-readable type name with its machine slug.
// The name is what editors see ("Book Chapter"); the slug is the stable
// lookup key ("book-chapter").
type ResourceType struct {
	Name string
	Slug string
}

// Resource is the aggregate root for a curated metadata record.
// A nil DOI means the resource is a draft that has not been registered.
type Resource struct {
	ID              int64
	DOI             *string
	PublicationYear int
	Version         string
	ResourceType    ResourceType
	Language        string
	Publisher       string
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Titles             []Title
	Creators           []Creator
	Contributors       []Contributor
	Descriptions       []Description
	Dates              []ResourceDate
	Subjects           []Subject
	GeoLocations       []GeoLocation
	RelatedIdentifiers []RelatedIdentifier
	FundingReferences  []FundingReference
	Rights             []Right
	Sizes              []string
	Formats            []string

	// Sample carries IGSN physical-sample metadata. Non-nil only for
	// resources of type "physical-object".
	Sample *PhysicalSample
}

// HasDOI reports whether the resource carries a registered DOI.
func (r *Resource) HasDOI() bool {
	return r.DOI != nil && *r.DOI != ""
}

// MainTitle returns the first main title, or the first title of any type
// when legacy data lacks a main title.
func (r *Resource) MainTitle() string {
	for _, t := range r.Titles {
		if t.Type == TitleMain {
			return t.Value
		}
	}
	if len(r.Titles) > 0 {
		return r.Titles[0].Value
	}
	return ""
}

// Title is one of the resource's titles. Every resource is expected to have
// exactly one TitleMain entry; legacy records may violate this and
// consumers degrade gracefully.
type Title struct {
	Value    string
	Type     string
	Language string
}

// Title type slugs.
const (
	TitleMain        = "main-title"
	TitleSubtitle    = "subtitle"
	TitleAlternative = "alternative-title"
	TitleTranslated  = "translated-title"
	TitleOther       = "other"
)

// Description is a typed free-text description.
type Description struct {
	Value    string
	Type     string
	Language string
}

// Description type slugs.
const (
	DescriptionAbstract      = "abstract"
	DescriptionMethods       = "methods"
	DescriptionSeriesInfo    = "series-information"
	DescriptionTableContents = "table-of-contents"
	DescriptionTechnicalInfo = "technical-information"
	DescriptionOther         = "other"
)

// Subject is a keyword or controlled-vocabulary term. An empty Scheme means
// a free keyword.
type Subject struct {
	Value              string
	Scheme             string
	SchemeURI          string
	ValueURI           string
	ClassificationCode string
}

// RelatedIdentifier links the resource to another identified object.
type RelatedIdentifier struct {
	Identifier          string
	Type                string
	RelationType        string
	ResourceTypeGeneral string
	Position            int
}

// FundingReference names a funder and optionally the award behind the
// resource. FunderName is the only required field.
type FundingReference struct {
	FunderName           string
	FunderIdentifier     string
	FunderIdentifierType string
	AwardNumber          string
	AwardURI             string
	AwardTitle           string
}

// Right is a license associated with the resource, keyed by its SPDX-style
// identifier.
type Right struct {
	Identifier string
	Name       string
	URI        string
}

// PhysicalSample holds the IGSN-specific metadata of a physical-object
// resource.
type PhysicalSample struct {
	IGSN             string
	ParentIGSN       string
	SampleType       string
	Material         string
	CollectionMethod string
	Elevation        *float64
	DepthMin         *float64
	DepthMax         *float64
}
