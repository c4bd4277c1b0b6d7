package storage

import (
	"database/sql"
	"fmt"

	"github.com/geosamples/curator/model"
)

// lookupEntry is one row of a slug-keyed lookup table.
type lookupEntry struct {
	ID   int64
	Name string
	Slug string
}

// lookups is the in-memory read-through cache of the lookup tables. It is
// loaded once per Store; ReloadLookups is the invalidation hook for the
// rare case of lookup rows changing underneath a running process.
type lookups struct {
	resourceTypes    map[string]lookupEntry // by slug
	titleTypes       map[string]lookupEntry
	dateTypes        map[string]lookupEntry
	descriptionTypes map[string]lookupEntry
	contributorTypes map[string]lookupEntry
	identifierTypes  map[string]lookupEntry // by name
	relationTypes    map[string]lookupEntry // by name

	resourceTypesByID    map[int64]lookupEntry
	titleTypesByID       map[int64]lookupEntry
	dateTypesByID        map[int64]lookupEntry
	descriptionTypesByID map[int64]lookupEntry
	contributorTypesByID map[int64]lookupEntry
	identifierTypesByID  map[int64]lookupEntry
	relationTypesByID    map[int64]lookupEntry
}

// ReloadLookups re-reads all lookup tables into the cache.
func (s *Store) ReloadLookups() error {
	l := &lookups{}
	var err error

	load := func(table string, bySlug bool) (map[string]lookupEntry, map[int64]lookupEntry, error) {
		byKey := make(map[string]lookupEntry)
		byID := make(map[int64]lookupEntry)
		var rows *sql.Rows
		var qerr error
		if bySlug {
			rows, qerr = s.db.Query("SELECT id, name, slug FROM " + table)
		} else {
			rows, qerr = s.db.Query("SELECT id, name, name FROM " + table)
		}
		if qerr != nil {
			return nil, nil, fmt.Errorf("loading %s: %w", table, qerr)
		}
		defer rows.Close()
		for rows.Next() {
			var e lookupEntry
			if err := rows.Scan(&e.ID, &e.Name, &e.Slug); err != nil {
				return nil, nil, err
			}
			byKey[e.Slug] = e
			byID[e.ID] = e
		}
		return byKey, byID, rows.Err()
	}

	if l.resourceTypes, l.resourceTypesByID, err = load("resource_types", true); err != nil {
		return err
	}
	if l.titleTypes, l.titleTypesByID, err = load("title_types", true); err != nil {
		return err
	}
	if l.dateTypes, l.dateTypesByID, err = load("date_types", true); err != nil {
		return err
	}
	if l.descriptionTypes, l.descriptionTypesByID, err = load("description_types", true); err != nil {
		return err
	}
	if l.contributorTypes, l.contributorTypesByID, err = load("contributor_types", true); err != nil {
		return err
	}
	if l.identifierTypes, l.identifierTypesByID, err = load("identifier_types", false); err != nil {
		return err
	}
	if l.relationTypes, l.relationTypesByID, err = load("relation_types", false); err != nil {
		return err
	}

	s.lookups = l
	return nil
}

// HasResourceType reports whether the slug names a known resource type.
func (s *Store) HasResourceType(slug string) bool {
	_, ok := s.lookups.resourceTypes[slug]
	return ok
}

// HasDateType reports whether the slug names a known date type.
func (s *Store) HasDateType(slug string) bool {
	_, ok := s.lookups.dateTypes[slug]
	return ok
}

// HasDescriptionType reports whether the slug names a known description type.
func (s *Store) HasDescriptionType(slug string) bool {
	_, ok := s.lookups.descriptionTypes[slug]
	return ok
}

// HasContributorType reports whether the slug names a known contributor role.
func (s *Store) HasContributorType(slug string) bool {
	_, ok := s.lookups.contributorTypes[slug]
	return ok
}

// HasIdentifierType reports whether the name is a known identifier type.
func (s *Store) HasIdentifierType(name string) bool {
	_, ok := s.lookups.identifierTypes[name]
	return ok
}

// HasRelationType reports whether the name is a known relation type.
func (s *Store) HasRelationType(name string) bool {
	_, ok := s.lookups.relationTypes[name]
	return ok
}

// seedLookups populates the lookup tables on first open. INSERT OR IGNORE
// keeps existing, possibly curated rows untouched.
func seedLookups(db *sql.DB) error {
	type seed struct{ name, slug string }

	insert := func(table string, entries []seed) error {
		stmt, err := db.Prepare("INSERT OR IGNORE INTO " + table + " (name, slug) VALUES (?, ?)")
		if err != nil {
			return err
		}
		defer stmt.Close()
		for _, e := range entries {
			if _, err := stmt.Exec(e.name, e.slug); err != nil {
				return fmt.Errorf("seeding %s: %w", table, err)
			}
		}
		return nil
	}

	if err := insert("resource_types", []seed{
		{"Audiovisual", "audiovisual"},
		{"Book", "book"},
		{"Book Chapter", "book-chapter"},
		{"Collection", "collection"},
		{"Computational Notebook", "computational-notebook"},
		{"Conference Paper", "conference-paper"},
		{"Conference Proceeding", "conference-proceeding"},
		{"Data Paper", "data-paper"},
		{"Dataset", "dataset"},
		{"Dissertation", "dissertation"},
		{"Event", "event"},
		{"Image", "image"},
		{"Interactive Resource", "interactive-resource"},
		{"Journal", "journal"},
		{"Journal Article", "journal-article"},
		{"Model", "model"},
		{"Output Management Plan", "output-management-plan"},
		{"Peer Review", "peer-review"},
		{"Physical Object", "physical-object"},
		{"Preprint", "preprint"},
		{"Report", "report"},
		{"Service", "service"},
		{"Software", "software"},
		{"Sound", "sound"},
		{"Standard", "standard"},
		{"Study Registration", "study-registration"},
		{"Text", "text"},
		{"Workflow", "workflow"},
		{"Other", "other"},
	}); err != nil {
		return err
	}

	if err := insert("title_types", []seed{
		{"Main Title", model.TitleMain},
		{"Subtitle", model.TitleSubtitle},
		{"Alternative Title", model.TitleAlternative},
		{"Translated Title", model.TitleTranslated},
		{"Other", model.TitleOther},
	}); err != nil {
		return err
	}

	if err := insert("date_types", []seed{
		{"Accepted", model.DateAccepted},
		{"Available", model.DateAvailable},
		{"Collected", model.DateCollected},
		{"Copyrighted", model.DateCopyright},
		{"Coverage", model.DateCoverage},
		{"Created", model.DateCreated},
		{"Issued", model.DateIssued},
		{"Submitted", model.DateSubmitted},
		{"Updated", model.DateUpdated},
		{"Valid", model.DateValid},
		{"Withdrawn", model.DateWithdrawn},
		{"Other", model.DateOther},
	}); err != nil {
		return err
	}

	if err := insert("description_types", []seed{
		{"Abstract", model.DescriptionAbstract},
		{"Methods", model.DescriptionMethods},
		{"Series Information", model.DescriptionSeriesInfo},
		{"Table of Contents", model.DescriptionTableContents},
		{"Technical Information", model.DescriptionTechnicalInfo},
		{"Other", model.DescriptionOther},
	}); err != nil {
		return err
	}

	if err := insert("contributor_types", []seed{
		{"Contact Person", model.RoleContactPerson},
		{"Data Collector", model.RoleDataCollector},
		{"Data Curator", model.RoleDataCurator},
		{"Data Manager", model.RoleDataManager},
		{"Distributor", model.RoleDistributor},
		{"Editor", model.RoleEditor},
		{"Hosting Institution", model.RoleHostingInstitution},
		{"Producer", model.RoleProducer},
		{"Project Leader", model.RoleProjectLeader},
		{"Project Manager", model.RoleProjectManager},
		{"Project Member", model.RoleProjectMember},
		{"Registration Agency", model.RoleRegistrationAgency},
		{"Registration Authority", model.RoleRegistrationAuth},
		{"Related Person", model.RoleRelatedPerson},
		{"Researcher", model.RoleResearcher},
		{"Research Group", model.RoleResearchGroup},
		{"Rights Holder", model.RoleRightsHolder},
		{"Sponsor", model.RoleSponsor},
		{"Supervisor", model.RoleSupervisor},
		{"Work Package Leader", model.RoleWorkPackageLeader},
		{"Other", model.RoleOther},
	}); err != nil {
		return err
	}

	insertNames := func(table string, names []string) error {
		stmt, err := db.Prepare("INSERT OR IGNORE INTO " + table + " (name) VALUES (?)")
		if err != nil {
			return err
		}
		defer stmt.Close()
		for _, n := range names {
			if _, err := stmt.Exec(n); err != nil {
				return fmt.Errorf("seeding %s: %w", table, err)
			}
		}
		return nil
	}

	if err := insertNames("identifier_types", []string{
		"ARK", "arXiv", "bibcode", "DOI", "EAN13", "EISSN", "Handle",
		"IGSN", "ISBN", "ISSN", "ISTC", "LISSN", "LSID", "PMID", "PURL",
		"UPC", "URL", "URN", "w3id",
	}); err != nil {
		return err
	}

	if err := insertNames("relation_types", []string{
		"IsCitedBy", "Cites", "IsSupplementTo", "IsSupplementedBy",
		"IsContinuedBy", "Continues", "IsDescribedBy", "Describes",
		"HasMetadata", "IsMetadataFor", "HasVersion", "IsVersionOf",
		"IsNewVersionOf", "IsPreviousVersionOf", "IsPartOf", "HasPart",
		"IsPublishedIn", "IsReferencedBy", "References", "IsDocumentedBy",
		"Documents", "IsCompiledBy", "Compiles", "IsVariantFormOf",
		"IsOriginalFormOf", "IsIdenticalTo", "IsReviewedBy", "Reviews",
		"IsDerivedFrom", "IsSourceOf", "IsRequiredBy", "Requires",
		"IsObsoletedBy", "Obsoletes", "IsCollectedBy", "Collects",
		"IsTranslationOf", "HasTranslation",
	}); err != nil {
		return err
	}

	licenses := []struct{ identifier, name, url string }{
		{"CC0-1.0", "Creative Commons Zero v1.0 Universal", "https://creativecommons.org/publicdomain/zero/1.0/"},
		{"CC-BY-4.0", "Creative Commons Attribution 4.0 International", "https://creativecommons.org/licenses/by/4.0/"},
		{"CC-BY-SA-4.0", "Creative Commons Attribution Share Alike 4.0 International", "https://creativecommons.org/licenses/by-sa/4.0/"},
		{"CC-BY-NC-4.0", "Creative Commons Attribution Non Commercial 4.0 International", "https://creativecommons.org/licenses/by-nc/4.0/"},
		{"MIT", "MIT License", "https://opensource.org/licenses/MIT"},
		{"GPL-3.0-or-later", "GNU General Public License v3.0 or later", "https://www.gnu.org/licenses/gpl-3.0.html"},
	}
	stmt, err := db.Prepare("INSERT OR IGNORE INTO licenses (identifier, name, url) VALUES (?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, l := range licenses {
		if _, err := stmt.Exec(l.identifier, l.name, l.url); err != nil {
			return fmt.Errorf("seeding licenses: %w", err)
		}
	}
	return nil
}
