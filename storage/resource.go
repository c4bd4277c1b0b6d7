package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/geosamples/curator/model"
)

// Get loads one resource with all child collections in their stored order.
func (s *Store) Get(id int64) (*model.Resource, error) {
	l := s.lookups
	r := &model.Resource{ID: id}

	var doi sql.NullString
	var resourceTypeID int64
	var createdAt, updatedAt string
	err := s.db.QueryRow(
		`SELECT doi, publication_year, version, resource_type_id, language,
		        publisher, created_at, updated_at
		 FROM resources WHERE id = ?`, id,
	).Scan(&doi, &r.PublicationYear, &r.Version, &resourceTypeID,
		&r.Language, &r.Publisher, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading resource %d: %w", id, err)
	}

	if doi.Valid && doi.String != "" {
		r.DOI = &doi.String
	}
	rt := l.resourceTypesByID[resourceTypeID]
	r.ResourceType = model.ResourceType{Name: rt.Name, Slug: rt.Slug}
	r.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	r.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)

	if r.Titles, err = s.loadTitles(id); err != nil {
		return nil, err
	}
	if r.Creators, err = s.loadCreators(id); err != nil {
		return nil, err
	}
	if r.Contributors, err = s.loadContributors(id); err != nil {
		return nil, err
	}
	if r.Descriptions, err = s.loadDescriptions(id); err != nil {
		return nil, err
	}
	if r.Dates, err = s.loadDates(id); err != nil {
		return nil, err
	}
	if r.Subjects, err = s.loadSubjects(id); err != nil {
		return nil, err
	}
	if r.GeoLocations, err = s.loadGeoLocations(id); err != nil {
		return nil, err
	}
	if r.RelatedIdentifiers, err = s.loadRelatedIdentifiers(id); err != nil {
		return nil, err
	}
	if r.FundingReferences, err = s.loadFundingReferences(id); err != nil {
		return nil, err
	}
	if r.Rights, err = s.loadRights(id); err != nil {
		return nil, err
	}
	if r.Sizes, err = s.loadValues("sizes", id); err != nil {
		return nil, err
	}
	if r.Formats, err = s.loadValues("formats", id); err != nil {
		return nil, err
	}
	if r.Sample, err = s.loadSample(id); err != nil {
		return nil, err
	}

	return r, nil
}

// GetByDOI loads the resource registered under the given DOI.
func (s *Store) GetByDOI(doi string) (*model.Resource, error) {
	var id int64
	err := s.db.QueryRow(`SELECT id FROM resources WHERE doi = ?`, doi).Scan(&id)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("looking up doi %s: %w", doi, err)
	}
	return s.Get(id)
}

// Summary is one row of a resource listing.
type Summary struct {
	ID           int64
	DOI          string
	Title        string
	ResourceType string
	UpdatedAt    string
}

// List returns summaries of all resources, most recently updated first.
func (s *Store) List() ([]Summary, error) {
	rows, err := s.db.Query(
		`SELECT r.id, COALESCE(r.doi, ''), rt.name, r.updated_at,
		        COALESCE((SELECT t.value FROM titles t
		                  WHERE t.resource_id = r.id
		                  ORDER BY t.position LIMIT 1), '')
		 FROM resources r
		 JOIN resource_types rt ON rt.id = r.resource_type_id
		 ORDER BY r.updated_at DESC, r.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing resources: %w", err)
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var sm Summary
		if err := rows.Scan(&sm.ID, &sm.DOI, &sm.ResourceType, &sm.UpdatedAt, &sm.Title); err != nil {
			return nil, err
		}
		out = append(out, sm)
	}
	return out, rows.Err()
}

func (s *Store) loadTitles(id int64) ([]model.Title, error) {
	rows, err := s.db.Query(
		`SELECT value, title_type_id, language FROM titles
		 WHERE resource_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("loading titles: %w", err)
	}
	defer rows.Close()

	var out []model.Title
	for rows.Next() {
		var t model.Title
		var typeID int64
		if err := rows.Scan(&t.Value, &typeID, &t.Language); err != nil {
			return nil, err
		}
		t.Type = s.lookups.titleTypesByID[typeID].Slug
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *Store) loadCreators(id int64) ([]model.Creator, error) {
	rows, err := s.db.Query(
		`SELECT id, position, person_id, institution_id FROM creators
		 WHERE resource_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("loading creators: %w", err)
	}
	defer rows.Close()

	type row struct {
		joinID int64
		c      model.Creator
		person sql.NullInt64
		inst   sql.NullInt64
	}
	var raw []row
	for rows.Next() {
		var r row
		if err := rows.Scan(&r.joinID, &r.c.Position, &r.person, &r.inst); err != nil {
			return nil, err
		}
		raw = append(raw, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]model.Creator, 0, len(raw))
	for _, r := range raw {
		var err error
		if r.person.Valid {
			if r.c.Person, err = s.loadPerson(r.person.Int64); err != nil {
				return nil, err
			}
		} else {
			if r.c.Institution, err = s.loadInstitution(r.inst.Int64); err != nil {
				return nil, err
			}
		}
		if r.c.Affiliations, err = s.loadAffiliations("creator_id", r.joinID); err != nil {
			return nil, err
		}
		out = append(out, r.c)
	}
	return out, nil
}

func (s *Store) loadContributors(id int64) ([]model.Contributor, error) {
	rows, err := s.db.Query(
		`SELECT id, position, contributor_type_id, person_id, institution_id
		 FROM contributors WHERE resource_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("loading contributors: %w", err)
	}
	defer rows.Close()

	type row struct {
		joinID int64
		c      model.Contributor
		person sql.NullInt64
		inst   sql.NullInt64
	}
	var raw []row
	for rows.Next() {
		var r row
		var roleID int64
		if err := rows.Scan(&r.joinID, &r.c.Position, &roleID, &r.person, &r.inst); err != nil {
			return nil, err
		}
		r.c.Role = s.lookups.contributorTypesByID[roleID].Slug
		raw = append(raw, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]model.Contributor, 0, len(raw))
	for _, r := range raw {
		var err error
		if r.person.Valid {
			if r.c.Person, err = s.loadPerson(r.person.Int64); err != nil {
				return nil, err
			}
		} else {
			if r.c.Institution, err = s.loadInstitution(r.inst.Int64); err != nil {
				return nil, err
			}
		}
		if r.c.Affiliations, err = s.loadAffiliations("contributor_id", r.joinID); err != nil {
			return nil, err
		}
		out = append(out, r.c)
	}
	return out, nil
}

func (s *Store) loadPerson(id int64) (*model.Person, error) {
	var p model.Person
	var given, identifier, scheme sql.NullString
	err := s.db.QueryRow(
		`SELECT id, given_name, family_name, identifier, identifier_scheme
		 FROM persons WHERE id = ?`, id,
	).Scan(&p.ID, &given, &p.FamilyName, &identifier, &scheme)
	if err != nil {
		return nil, fmt.Errorf("loading person %d: %w", id, err)
	}
	if given.Valid {
		p.GivenName = &given.String
	}
	p.Identifier = identifier.String
	p.Scheme = scheme.String
	return &p, nil
}

func (s *Store) loadInstitution(id int64) (*model.Institution, error) {
	var in model.Institution
	var identifier, scheme sql.NullString
	err := s.db.QueryRow(
		`SELECT id, name, identifier, identifier_scheme FROM institutions WHERE id = ?`, id,
	).Scan(&in.ID, &in.Name, &identifier, &scheme)
	if err != nil {
		return nil, fmt.Errorf("loading institution %d: %w", id, err)
	}
	in.Identifier = identifier.String
	in.Scheme = scheme.String
	return &in, nil
}

func (s *Store) loadAffiliations(ownerCol string, ownerID int64) ([]model.Affiliation, error) {
	rows, err := s.db.Query(
		`SELECT name, identifier, identifier_scheme, scheme_uri FROM affiliations
		 WHERE `+ownerCol+` = ? ORDER BY position`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("loading affiliations: %w", err)
	}
	defer rows.Close()

	var out []model.Affiliation
	for rows.Next() {
		var a model.Affiliation
		if err := rows.Scan(&a.Name, &a.Identifier, &a.Scheme, &a.SchemeURI); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *Store) loadDescriptions(id int64) ([]model.Description, error) {
	rows, err := s.db.Query(
		`SELECT value, description_type_id, language FROM descriptions
		 WHERE resource_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("loading descriptions: %w", err)
	}
	defer rows.Close()

	var out []model.Description
	for rows.Next() {
		var d model.Description
		var typeID int64
		if err := rows.Scan(&d.Value, &typeID, &d.Language); err != nil {
			return nil, err
		}
		d.Type = s.lookups.descriptionTypesByID[typeID].Slug
		out = append(out, d)
	}
	return out, rows.Err()
}

func (s *Store) loadDates(id int64) ([]model.ResourceDate, error) {
	rows, err := s.db.Query(
		`SELECT date_type_id, value, start_date, end_date, information
		 FROM resource_dates WHERE resource_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("loading dates: %w", err)
	}
	defer rows.Close()

	var out []model.ResourceDate
	for rows.Next() {
		var d model.ResourceDate
		var typeID int64
		if err := rows.Scan(&typeID, &d.Value, &d.Start, &d.End, &d.Information); err != nil {
			return nil, err
		}
		d.Type = s.lookups.dateTypesByID[typeID].Slug
		out = append(out, d)
	}
	return out, rows.Err()
}

func (s *Store) loadSubjects(id int64) ([]model.Subject, error) {
	rows, err := s.db.Query(
		`SELECT value, scheme, scheme_uri, value_uri, classification_code
		 FROM subjects WHERE resource_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("loading subjects: %w", err)
	}
	defer rows.Close()

	var out []model.Subject
	for rows.Next() {
		var sub model.Subject
		if err := rows.Scan(&sub.Value, &sub.Scheme, &sub.SchemeURI, &sub.ValueURI, &sub.ClassificationCode); err != nil {
			return nil, err
		}
		out = append(out, sub)
	}
	return out, rows.Err()
}

func (s *Store) loadGeoLocations(id int64) ([]model.GeoLocation, error) {
	rows, err := s.db.Query(
		`SELECT place, point_lat, point_lon, west, east, south, north,
		        polygon_json, in_point_lat, in_point_lon
		 FROM geolocations WHERE resource_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("loading geolocations: %w", err)
	}
	defer rows.Close()

	var out []model.GeoLocation
	for rows.Next() {
		var g model.GeoLocation
		var pLat, pLon, w, e, so, n, iLat, iLon sql.NullFloat64
		var polygonJSON string
		if err := rows.Scan(&g.Place, &pLat, &pLon, &w, &e, &so, &n, &polygonJSON, &iLat, &iLon); err != nil {
			return nil, err
		}
		if pLat.Valid && pLon.Valid {
			g.Point = &model.GeoPoint{Latitude: pLat.Float64, Longitude: pLon.Float64}
		}
		if w.Valid && e.Valid && so.Valid && n.Valid {
			g.Box = &model.GeoBox{West: w.Float64, East: e.Float64, South: so.Float64, North: n.Float64}
		}
		if polygonJSON != "" {
			if err := json.Unmarshal([]byte(polygonJSON), &g.Polygon); err != nil {
				return nil, fmt.Errorf("decoding polygon for resource %d: %w", id, err)
			}
		}
		if iLat.Valid && iLon.Valid {
			g.InPolygonPoint = &model.GeoPoint{Latitude: iLat.Float64, Longitude: iLon.Float64}
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func (s *Store) loadRelatedIdentifiers(id int64) ([]model.RelatedIdentifier, error) {
	rows, err := s.db.Query(
		`SELECT identifier, identifier_type_id, relation_type_id, resource_type_general, position
		 FROM related_identifiers WHERE resource_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("loading related identifiers: %w", err)
	}
	defer rows.Close()

	var out []model.RelatedIdentifier
	for rows.Next() {
		var r model.RelatedIdentifier
		var typeID, relID int64
		if err := rows.Scan(&r.Identifier, &typeID, &relID, &r.ResourceTypeGeneral, &r.Position); err != nil {
			return nil, err
		}
		r.Type = s.lookups.identifierTypesByID[typeID].Name
		r.RelationType = s.lookups.relationTypesByID[relID].Name
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Store) loadFundingReferences(id int64) ([]model.FundingReference, error) {
	rows, err := s.db.Query(
		`SELECT funder_name, funder_identifier, funder_identifier_type,
		        award_number, award_uri, award_title
		 FROM funding_references WHERE resource_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("loading funding references: %w", err)
	}
	defer rows.Close()

	var out []model.FundingReference
	for rows.Next() {
		var f model.FundingReference
		if err := rows.Scan(&f.FunderName, &f.FunderIdentifier, &f.FunderIdentifierType,
			&f.AwardNumber, &f.AwardURI, &f.AwardTitle); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func (s *Store) loadRights(id int64) ([]model.Right, error) {
	rows, err := s.db.Query(
		`SELECT l.identifier, l.name, l.url FROM resource_licenses rl
		 JOIN licenses l ON l.id = rl.license_id
		 WHERE rl.resource_id = ? ORDER BY l.identifier`, id)
	if err != nil {
		return nil, fmt.Errorf("loading rights: %w", err)
	}
	defer rows.Close()

	var out []model.Right
	for rows.Next() {
		var r model.Right
		if err := rows.Scan(&r.Identifier, &r.Name, &r.URI); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Store) loadValues(table string, id int64) ([]string, error) {
	rows, err := s.db.Query(
		`SELECT value FROM `+table+` WHERE resource_id = ? ORDER BY id`, id)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", table, err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (s *Store) loadSample(id int64) (*model.PhysicalSample, error) {
	var sm model.PhysicalSample
	err := s.db.QueryRow(
		`SELECT igsn, parent_igsn, sample_type, material, collection_method,
		        elevation, depth_min, depth_max
		 FROM physical_samples WHERE resource_id = ?`, id,
	).Scan(&sm.IGSN, &sm.ParentIGSN, &sm.SampleType, &sm.Material,
		&sm.CollectionMethod, &sm.Elevation, &sm.DepthMin, &sm.DepthMax)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading physical sample: %w", err)
	}
	return &sm, nil
}
