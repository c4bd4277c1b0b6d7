package model

import "strings"

// Identifier schemes for persons and institutions.
const (
	SchemeORCID = "ORCID"
	SchemeROR   = "ROR"
	// SchemeLabID marks an institution as a laboratory record. Laboratories
	// are exported under the HostingInstitution role rather than as plain
	// institutional contributors.
	SchemeLabID = "labid"
)

// Person is a shared, deduplicated person record. GivenName is a pointer
// because a missing given name and an empty given name are distinct for
// identity resolution: "Smith" must never merge with "Smith, John".
type Person struct {
	ID         int64
	GivenName  *string
	FamilyName string
	Identifier string
	Scheme     string
}

// DisplayName formats the person as "Family, Given" (or just the family
// name when no given name is recorded).
func (p *Person) DisplayName() string {
	if p.GivenName == nil || *p.GivenName == "" {
		return p.FamilyName
	}
	return p.FamilyName + ", " + *p.GivenName
}

// NormalizedName returns a case-folded key used for cross-list
// deduplication of creators and contributors.
func (p *Person) NormalizedName() string {
	return strings.ToLower(strings.TrimSpace(p.DisplayName()))
}

// Institution is a shared organization record.
type Institution struct {
	ID         int64
	Name       string
	Identifier string
	Scheme     string
}

// IsLaboratory reports whether the institution is a laboratory record.
func (i *Institution) IsLaboratory() bool {
	return i.Scheme == SchemeLabID
}

// Affiliation ties a creator or contributor to an organization by name,
// optionally with an external identifier (ROR today). Affiliations are
// owned by exactly one creator or contributor and are deliberately not
// deduplicated across records.
type Affiliation struct {
	Name       string
	Identifier string
	Scheme     string
	SchemeURI  string
}

// Creator is an ordered author entry. Exactly one of Person or Institution
// is set; consumers must handle both variants exhaustively.
type Creator struct {
	Position     int
	Person       *Person
	Institution  *Institution
	Affiliations []Affiliation
}

// IsPerson reports whether the creator references a person.
func (c *Creator) IsPerson() bool { return c.Person != nil }

// Contributor is an ordered contributor entry with a typed role
// (e.g. "data-collector"). Exactly one of Person or Institution is set.
type Contributor struct {
	Position     int
	Role         string
	Person       *Person
	Institution  *Institution
	Affiliations []Affiliation
}

// IsPerson reports whether the contributor references a person.
func (c *Contributor) IsPerson() bool { return c.Person != nil }

// Contributor role slugs from the DataCite contributorType vocabulary.
const (
	RoleContactPerson      = "contact-person"
	RoleDataCollector      = "data-collector"
	RoleDataCurator        = "data-curator"
	RoleDataManager        = "data-manager"
	RoleDistributor        = "distributor"
	RoleEditor             = "editor"
	RoleHostingInstitution = "hosting-institution"
	RoleProducer           = "producer"
	RoleProjectLeader      = "project-leader"
	RoleProjectManager     = "project-manager"
	RoleProjectMember      = "project-member"
	RoleRegistrationAgency = "registration-agency"
	RoleRegistrationAuth   = "registration-authority"
	RoleRelatedPerson      = "related-person"
	RoleResearcher         = "researcher"
	RoleResearchGroup      = "research-group"
	RoleRightsHolder       = "rights-holder"
	RoleSponsor            = "sponsor"
	RoleSupervisor         = "supervisor"
	RoleWorkPackageLeader  = "work-package-leader"
	RoleOther              = "other"
)
