package datacite

import "strings"

// Vocabulary crosswalks between internal names/slugs and the DataCite
// PascalCase terms. Forward maps are explicit; reverse maps are derived so
// the two directions cannot drift apart.

// resourceTypeGeneral maps internal resource type names to the DataCite
// resourceTypeGeneral vocabulary.
var resourceTypeGeneral = map[string]string{
	"Audiovisual":            "Audiovisual",
	"Book":                   "Book",
	"Book Chapter":           "BookChapter",
	"Collection":             "Collection",
	"Computational Notebook": "ComputationalNotebook",
	"Conference Paper":       "ConferencePaper",
	"Conference Proceeding":  "ConferenceProceeding",
	"Data Paper":             "DataPaper",
	"Dataset":                "Dataset",
	"Dissertation":           "Dissertation",
	"Event":                  "Event",
	"Image":                  "Image",
	"Interactive Resource":   "InteractiveResource",
	"Journal":                "Journal",
	"Journal Article":        "JournalArticle",
	"Model":                  "Model",
	"Output Management Plan": "OutputManagementPlan",
	"Peer Review":            "PeerReview",
	"Physical Object":        "PhysicalObject",
	"Preprint":               "Preprint",
	"Report":                 "Report",
	"Service":                "Service",
	"Software":               "Software",
	"Sound":                  "Sound",
	"Standard":               "Standard",
	"Study Registration":     "StudyRegistration",
	"Text":                   "Text",
	"Workflow":               "Workflow",
	"Other":                  "Other",
}

// ResourceTypeGeneral maps an internal resource type name to its DataCite
// general type. Unmapped names fall back to stripping spaces.
func ResourceTypeGeneral(name string) string {
	if v, ok := resourceTypeGeneral[name]; ok {
		return v
	}
	return strings.ReplaceAll(name, " ", "")
}

var titleTypes = map[string]string{
	"subtitle":          "Subtitle",
	"alternative-title": "AlternativeTitle",
	"translated-title":  "TranslatedTitle",
	"other":             "Other",
}

// TitleType maps a title type slug to its DataCite term. Main titles carry
// no type marker in DataCite, so callers omit them before mapping; anything
// unknown maps to "Other".
func TitleType(slug string) string {
	if v, ok := titleTypes[slug]; ok {
		return v
	}
	return "Other"
}

var dateTypes = map[string]string{
	"accepted":    "Accepted",
	"available":   "Available",
	"collected":   "Collected",
	"copyrighted": "Copyrighted",
	"coverage":    "Coverage",
	"created":     "Created",
	"issued":      "Issued",
	"submitted":   "Submitted",
	"updated":     "Updated",
	"valid":       "Valid",
	"withdrawn":   "Withdrawn",
	"other":       "Other",
}

// DateType maps a date type slug to its DataCite term; empty when unknown
// so callers can skip the entry.
func DateType(slug string) string {
	return dateTypes[slug]
}

var descriptionTypes = map[string]string{
	"abstract":              "Abstract",
	"methods":               "Methods",
	"series-information":    "SeriesInformation",
	"table-of-contents":     "TableOfContents",
	"technical-information": "TechnicalInfo",
	"other":                 "Other",
}

// DescriptionType maps a description type slug to its DataCite term, with
// an "Other" fallback.
func DescriptionType(slug string) string {
	if v, ok := descriptionTypes[slug]; ok {
		return v
	}
	return "Other"
}

var contributorTypes = map[string]string{
	"contact-person":         "ContactPerson",
	"data-collector":         "DataCollector",
	"data-curator":           "DataCurator",
	"data-manager":           "DataManager",
	"distributor":            "Distributor",
	"editor":                 "Editor",
	"hosting-institution":    "HostingInstitution",
	"producer":               "Producer",
	"project-leader":         "ProjectLeader",
	"project-manager":        "ProjectManager",
	"project-member":         "ProjectMember",
	"registration-agency":    "RegistrationAgency",
	"registration-authority": "RegistrationAuthority",
	"related-person":         "RelatedPerson",
	"researcher":             "Researcher",
	"research-group":         "ResearchGroup",
	"rights-holder":          "RightsHolder",
	"sponsor":                "Sponsor",
	"supervisor":             "Supervisor",
	"work-package-leader":    "WorkPackageLeader",
	"other":                  "Other",
}

// ContributorType maps a contributor role slug to its DataCite term, with
// an "Other" fallback.
func ContributorType(slug string) string {
	if v, ok := contributorTypes[slug]; ok {
		return v
	}
	return "Other"
}

var (
	resourceTypeNames    = reverse(resourceTypeGeneral)
	titleTypeSlugs       = reverse(titleTypes)
	dateTypeSlugs        = reverse(dateTypes)
	descriptionTypeSlugs = reverse(descriptionTypes)
	contributorTypeSlugs = reverse(contributorTypes)
)

func reverse(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[v] = k
	}
	return out
}

// ResourceTypeName maps a DataCite general type back to the internal
// resource type name, falling back to "Other".
func ResourceTypeName(general string) string {
	if v, ok := resourceTypeNames[general]; ok {
		return v
	}
	return "Other"
}

// TitleTypeSlug maps a DataCite title type back to its slug. An empty type
// means the main title; anything unknown maps to "other".
func TitleTypeSlug(term string) string {
	if term == "" {
		return "main-title"
	}
	if v, ok := titleTypeSlugs[term]; ok {
		return v
	}
	return "other"
}

// DateTypeSlug maps a DataCite date type back to its slug; empty when
// unknown so importers can skip the entry.
func DateTypeSlug(term string) string {
	return dateTypeSlugs[term]
}

// DescriptionTypeSlug maps a DataCite description type back to its slug;
// empty when unknown.
func DescriptionTypeSlug(term string) string {
	return descriptionTypeSlugs[term]
}

// ContributorTypeSlug maps a DataCite contributor type back to its slug;
// empty when unknown.
func ContributorTypeSlug(term string) string {
	return contributorTypeSlugs[term]
}
