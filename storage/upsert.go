package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/geosamples/curator/model"
)

// Save stores the submitted payload as a new resource or as the new state
// of an existing one, and reports whether it was an update. The whole write
// runs in one immediate-mode transaction; on update every child collection
// is deleted and recreated from the payload, except the system-managed
// Created date (preserved verbatim) and the license associations (synced by
// SPDX identifier). Person and institution records are resolved through the
// entity resolver and are never deleted here, only dereferenced.
func (s *Store) Save(p EditPayload, actorID string) (*model.Resource, bool, error) {
	geo, err := s.validate(&p)
	if err != nil {
		return nil, false, err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, false, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	id, isUpdate, err := s.saveTx(tx, p, geo, actorID)
	if err != nil {
		return nil, false, err
	}
	if err := tx.Commit(); err != nil {
		return nil, false, fmt.Errorf("committing: %w", err)
	}

	res, err := s.Get(id)
	return res, isUpdate, err
}

// Batch groups several creates into one transaction. Used by the IGSN
// ingestion pipeline: per-row failures are collected by the caller while
// the surviving rows commit together.
type Batch struct {
	s  *Store
	tx *sql.Tx
}

// Batch runs fn inside a single transaction; the transaction commits only
// if fn returns nil.
func (s *Store) Batch(fn func(*Batch) error) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning batch transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(&Batch{s: s, tx: tx}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing batch: %w", err)
	}
	return nil
}

// Create stores one new resource inside the batch transaction.
func (b *Batch) Create(p EditPayload, actorID string) (int64, error) {
	p.ID = nil
	geo, err := b.s.validate(&p)
	if err != nil {
		return 0, err
	}
	id, _, err := b.s.saveTx(b.tx, p, geo, actorID)
	return id, err
}

// geoRow is a geolocation input after numeric validation.
type geoRow struct {
	place   string
	point   *model.GeoPoint
	box     *model.GeoBox
	polygon []model.GeoPoint
	inPoint *model.GeoPoint
}

// validate checks the payload against the lookup tables and parses the
// geolocation coordinates. Unknown type slugs are hard validation failures
// here: this is the interactive-edit path, where silently dropping
// submitted rows would be surprising data loss. A missing MainTitle lookup
// row is a configuration error, not a validation error.
func (s *Store) validate(p *EditPayload) ([]geoRow, error) {
	if _, ok := s.lookups.titleTypes[model.TitleMain]; !ok {
		return nil, fmt.Errorf("title type table has no %q row: configuration error", model.TitleMain)
	}

	var verrs model.ValidationErrors

	if _, ok := s.lookups.resourceTypes[p.ResourceType]; !ok {
		verrs = verrs.Errorf("resourceType", "unknown resource type %q", p.ResourceType)
	}

	for i, t := range p.Titles {
		field := fmt.Sprintf("titles[%d]", i)
		if t.Value == "" {
			verrs = verrs.Errorf(field, "title value must not be empty")
		}
		if _, ok := s.lookups.titleTypes[t.Type]; !ok {
			verrs = verrs.Errorf(field+".type", "unknown title type %q", t.Type)
		}
	}

	for i, d := range p.Descriptions {
		if _, ok := s.lookups.descriptionTypes[d.Type]; !ok {
			verrs = verrs.Errorf(fmt.Sprintf("descriptions[%d].type", i), "unknown description type %q", d.Type)
		}
	}

	for i, d := range p.Dates {
		field := fmt.Sprintf("dates[%d]", i)
		if _, ok := s.lookups.dateTypes[d.Type]; !ok {
			verrs = verrs.Errorf(field+".type", "unknown date type %q", d.Type)
		}
		if d.Value != "" && d.Start != "" {
			verrs = verrs.Errorf(field, "date has both a single value and a range start")
		}
		if d.Value == "" && d.Start == "" && d.End != "" {
			verrs = verrs.Errorf(field, "date range has an end but no start")
		}
	}

	for i, c := range p.Creators {
		verrs = validateAgent(verrs, fmt.Sprintf("creators[%d]", i), c, false, s.lookups)
	}
	for i, c := range p.Contributors {
		verrs = validateAgent(verrs, fmt.Sprintf("contributors[%d]", i), c, true, s.lookups)
	}

	for i, r := range p.RelatedIdentifiers {
		field := fmt.Sprintf("relatedIdentifiers[%d]", i)
		if r.Identifier == "" {
			verrs = verrs.Errorf(field, "identifier must not be empty")
		}
		if _, ok := s.lookups.identifierTypes[r.Type]; !ok {
			verrs = verrs.Errorf(field+".type", "unknown identifier type %q", r.Type)
		}
		if _, ok := s.lookups.relationTypes[r.RelationType]; !ok {
			verrs = verrs.Errorf(field+".relationType", "unknown relation type %q", r.RelationType)
		}
	}

	for i, f := range p.FundingReferences {
		if f.FunderName == "" {
			verrs = verrs.Errorf(fmt.Sprintf("fundingReferences[%d].funderName", i), "funder name is required")
		}
	}

	geo := make([]geoRow, 0, len(p.GeoLocations))
	for i, g := range p.GeoLocations {
		row, errs := parseGeoLocation(fmt.Sprintf("geolocations[%d]", i), g)
		verrs = append(verrs, errs...)
		geo = append(geo, row)
	}

	if len(verrs) > 0 {
		return nil, verrs
	}
	return geo, nil
}

func validateAgent(verrs model.ValidationErrors, field string, a AgentInput, contributor bool, l *lookups) model.ValidationErrors {
	switch a.Kind {
	case AgentPerson:
		if a.FamilyName == "" {
			verrs = verrs.Errorf(field+".familyName", "family name is required for persons")
		}
	case AgentInstitution:
		if a.Name == "" {
			verrs = verrs.Errorf(field+".name", "name is required for institutions")
		}
	default:
		verrs = verrs.Errorf(field+".kind", "unknown agent kind %q", a.Kind)
	}
	if contributor {
		if _, ok := l.contributorTypes[a.Role]; !ok {
			verrs = verrs.Errorf(field+".role", "unknown contributor type %q", a.Role)
		}
	}
	return verrs
}

// parseGeoLocation validates one geolocation input. Polygon points that are
// not numeric or fall outside WGS84 bounds are individually reported; a
// polygon left with fewer than three valid points fails the whole request
// rather than silently shrinking.
func parseGeoLocation(field string, g GeoLocationInput) (geoRow, model.ValidationErrors) {
	var verrs model.ValidationErrors
	row := geoRow{place: g.Place}

	parse := func(sub, lat, lon string) *model.GeoPoint {
		if lat == "" && lon == "" {
			return nil
		}
		la, errLa := strconv.ParseFloat(lat, 64)
		lo, errLo := strconv.ParseFloat(lon, 64)
		if errLa != nil || errLo != nil {
			verrs = verrs.Errorf(field+sub, "coordinates must be numeric")
			return nil
		}
		pt := model.GeoPoint{Latitude: la, Longitude: lo}
		if !pt.InBounds() {
			verrs = verrs.Errorf(field+sub, "coordinates outside WGS84 bounds")
			return nil
		}
		return &pt
	}

	row.point = parse(".point", g.PointLatitude, g.PointLongitude)
	row.inPoint = parse(".inPolygonPoint", g.InPointLatitude, g.InPointLongitude)

	if g.West != "" || g.East != "" || g.South != "" || g.North != "" {
		w, errW := strconv.ParseFloat(g.West, 64)
		e, errE := strconv.ParseFloat(g.East, 64)
		so, errS := strconv.ParseFloat(g.South, 64)
		n, errN := strconv.ParseFloat(g.North, 64)
		if errW != nil || errE != nil || errS != nil || errN != nil {
			verrs = verrs.Errorf(field+".box", "box coordinates must be numeric")
		} else if w < -180 || w > 180 || e < -180 || e > 180 || so < -90 || so > 90 || n < -90 || n > 90 {
			verrs = verrs.Errorf(field+".box", "box coordinates outside WGS84 bounds")
		} else {
			row.box = &model.GeoBox{West: w, East: e, South: so, North: n}
		}
	}

	if len(g.Polygon) > 0 {
		valid := make([]model.GeoPoint, 0, len(g.Polygon))
		for _, p := range g.Polygon {
			la, errLa := strconv.ParseFloat(p.Latitude, 64)
			lo, errLo := strconv.ParseFloat(p.Longitude, 64)
			if errLa != nil || errLo != nil {
				continue
			}
			pt := model.GeoPoint{Latitude: la, Longitude: lo}
			if !pt.InBounds() {
				continue
			}
			valid = append(valid, pt)
		}
		if len(valid) < 3 {
			verrs = verrs.Errorf(field+".polygon", "polygon needs at least 3 valid points, got %d", len(valid))
		} else {
			row.polygon = valid
		}
	}

	return row, verrs
}

// saveTx performs the actual write. The caller owns the transaction.
func (s *Store) saveTx(tx *sql.Tx, p EditPayload, geo []geoRow, actorID string) (int64, bool, error) {
	l := s.lookups
	now := time.Now().UTC()
	nowStr := now.Format(time.RFC3339)
	today := now.Format("2006-01-02")

	var id int64
	isUpdate := p.ID != nil
	var preservedCreated *DateInput

	if isUpdate {
		id = *p.ID

		// Re-read inside the transaction; the immediate-mode transaction
		// serializes concurrent editors of the same row.
		var exists int
		err := tx.QueryRow(`SELECT 1 FROM resources WHERE id = ?`, id).Scan(&exists)
		if err == sql.ErrNoRows {
			return 0, false, ErrNotFound
		}
		if err != nil {
			return 0, false, fmt.Errorf("locking resource %d: %w", id, err)
		}

		preservedCreated, err = s.readCreatedDate(tx, id)
		if err != nil {
			return 0, false, err
		}

		if err := deleteChildren(tx, id); err != nil {
			return 0, false, err
		}

		_, err = tx.Exec(
			`UPDATE resources
			 SET doi = ?, publication_year = ?, version = ?, resource_type_id = ?,
			     language = ?, publisher = ?, updated_at = ?
			 WHERE id = ?`,
			nullable(p.DOI), p.PublicationYear, p.Version,
			l.resourceTypes[p.ResourceType].ID, p.Language, p.Publisher, nowStr, id,
		)
		if err != nil {
			return 0, false, fmt.Errorf("updating resource %d: %w", id, err)
		}
	} else {
		res, err := tx.Exec(
			`INSERT INTO resources
			 (doi, publication_year, version, resource_type_id, language, publisher,
			  created_by, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			nullable(p.DOI), p.PublicationYear, p.Version,
			l.resourceTypes[p.ResourceType].ID, p.Language, p.Publisher,
			actorID, nowStr, nowStr,
		)
		if err != nil {
			return 0, false, fmt.Errorf("creating resource: %w", err)
		}
		if id, err = res.LastInsertId(); err != nil {
			return 0, false, err
		}
	}

	if err := s.insertChildren(tx, id, p, geo); err != nil {
		return 0, false, err
	}
	if err := s.insertDates(tx, id, p.Dates, preservedCreated, today); err != nil {
		return 0, false, err
	}
	if err := s.syncLicenses(tx, id, p.Licenses); err != nil {
		return 0, false, err
	}

	return id, isUpdate, nil
}

func (s *Store) readCreatedDate(tx *sql.Tx, id int64) (*DateInput, error) {
	createdID := s.lookups.dateTypes[model.DateCreated].ID
	var d DateInput
	d.Type = model.DateCreated
	err := tx.QueryRow(
		`SELECT value, start_date, end_date, information FROM resource_dates
		 WHERE resource_id = ? AND date_type_id = ? LIMIT 1`,
		id, createdID,
	).Scan(&d.Value, &d.Start, &d.End, &d.Information)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading created date: %w", err)
	}
	return &d, nil
}

func deleteChildren(tx *sql.Tx, id int64) error {
	// Affiliations go first, routed through their owning join rows; the
	// shared person/institution rows are left untouched.
	stmts := []string{
		`DELETE FROM affiliations WHERE creator_id IN (SELECT id FROM creators WHERE resource_id = ?)`,
		`DELETE FROM affiliations WHERE contributor_id IN (SELECT id FROM contributors WHERE resource_id = ?)`,
		`DELETE FROM creators WHERE resource_id = ?`,
		`DELETE FROM contributors WHERE resource_id = ?`,
		`DELETE FROM titles WHERE resource_id = ?`,
		`DELETE FROM descriptions WHERE resource_id = ?`,
		`DELETE FROM resource_dates WHERE resource_id = ?`,
		`DELETE FROM subjects WHERE resource_id = ?`,
		`DELETE FROM geolocations WHERE resource_id = ?`,
		`DELETE FROM related_identifiers WHERE resource_id = ?`,
		`DELETE FROM funding_references WHERE resource_id = ?`,
		`DELETE FROM sizes WHERE resource_id = ?`,
		`DELETE FROM formats WHERE resource_id = ?`,
		`DELETE FROM physical_samples WHERE resource_id = ?`,
	}
	for _, q := range stmts {
		if _, err := tx.Exec(q, id); err != nil {
			return fmt.Errorf("clearing children: %w", err)
		}
	}
	return nil
}

func (s *Store) insertChildren(tx *sql.Tx, id int64, p EditPayload, geo []geoRow) error {
	l := s.lookups

	for i, t := range p.Titles {
		_, err := tx.Exec(
			`INSERT INTO titles (resource_id, value, title_type_id, language, position)
			 VALUES (?, ?, ?, ?, ?)`,
			id, t.Value, l.titleTypes[t.Type].ID, t.Language, i,
		)
		if err != nil {
			return fmt.Errorf("inserting title %d: %w", i, err)
		}
	}

	for i, c := range p.Creators {
		personID, instID, err := resolveAgent(tx, c)
		if err != nil {
			return err
		}
		res, err := tx.Exec(
			`INSERT INTO creators (resource_id, position, person_id, institution_id)
			 VALUES (?, ?, ?, ?)`,
			id, i, personID, instID,
		)
		if err != nil {
			return fmt.Errorf("inserting creator %d: %w", i, err)
		}
		creatorID, err := res.LastInsertId()
		if err != nil {
			return err
		}
		if err := insertAffiliations(tx, "creator_id", creatorID, c.Affiliations); err != nil {
			return err
		}
	}

	for i, c := range p.Contributors {
		personID, instID, err := resolveAgent(tx, c)
		if err != nil {
			return err
		}
		res, err := tx.Exec(
			`INSERT INTO contributors (resource_id, position, contributor_type_id, person_id, institution_id)
			 VALUES (?, ?, ?, ?, ?)`,
			id, i, l.contributorTypes[c.Role].ID, personID, instID,
		)
		if err != nil {
			return fmt.Errorf("inserting contributor %d: %w", i, err)
		}
		contribID, err := res.LastInsertId()
		if err != nil {
			return err
		}
		if err := insertAffiliations(tx, "contributor_id", contribID, c.Affiliations); err != nil {
			return err
		}
	}

	for i, d := range p.Descriptions {
		_, err := tx.Exec(
			`INSERT INTO descriptions (resource_id, value, description_type_id, language, position)
			 VALUES (?, ?, ?, ?, ?)`,
			id, d.Value, l.descriptionTypes[d.Type].ID, d.Language, i,
		)
		if err != nil {
			return fmt.Errorf("inserting description %d: %w", i, err)
		}
	}

	for i, sub := range p.Subjects {
		_, err := tx.Exec(
			`INSERT INTO subjects (resource_id, value, scheme, scheme_uri, value_uri, classification_code, position)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			id, sub.Value, sub.Scheme, sub.SchemeURI, sub.ValueURI, sub.ClassificationCode, i,
		)
		if err != nil {
			return fmt.Errorf("inserting subject %d: %w", i, err)
		}
	}

	for i, g := range geo {
		var polygonJSON string
		if len(g.polygon) > 0 {
			b, err := json.Marshal(g.polygon)
			if err != nil {
				return fmt.Errorf("marshaling polygon %d: %w", i, err)
			}
			polygonJSON = string(b)
		}
		_, err := tx.Exec(
			`INSERT INTO geolocations
			 (resource_id, place, point_lat, point_lon, west, east, south, north,
			  polygon_json, in_point_lat, in_point_lon, position)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			id, g.place,
			pointLat(g.point), pointLon(g.point),
			boxCoord(g.box, 'w'), boxCoord(g.box, 'e'), boxCoord(g.box, 's'), boxCoord(g.box, 'n'),
			polygonJSON,
			pointLat(g.inPoint), pointLon(g.inPoint), i,
		)
		if err != nil {
			return fmt.Errorf("inserting geolocation %d: %w", i, err)
		}
	}

	for i, r := range p.RelatedIdentifiers {
		_, err := tx.Exec(
			`INSERT INTO related_identifiers
			 (resource_id, identifier, identifier_type_id, relation_type_id, resource_type_general, position)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			id, r.Identifier, l.identifierTypes[r.Type].ID, l.relationTypes[r.RelationType].ID,
			r.ResourceTypeGeneral, i,
		)
		if err != nil {
			return fmt.Errorf("inserting related identifier %d: %w", i, err)
		}
	}

	for i, f := range p.FundingReferences {
		_, err := tx.Exec(
			`INSERT INTO funding_references
			 (resource_id, funder_name, funder_identifier, funder_identifier_type,
			  award_number, award_uri, award_title, position)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			id, f.FunderName, f.FunderIdentifier, f.FunderIdentifierType,
			f.AwardNumber, f.AwardURI, f.AwardTitle, i,
		)
		if err != nil {
			return fmt.Errorf("inserting funding reference %d: %w", i, err)
		}
	}

	for _, v := range p.Sizes {
		if _, err := tx.Exec(`INSERT INTO sizes (resource_id, value) VALUES (?, ?)`, id, v); err != nil {
			return fmt.Errorf("inserting size: %w", err)
		}
	}
	for _, v := range p.Formats {
		if _, err := tx.Exec(`INSERT INTO formats (resource_id, value) VALUES (?, ?)`, id, v); err != nil {
			return fmt.Errorf("inserting format: %w", err)
		}
	}

	if p.Sample != nil {
		sm := p.Sample
		_, err := tx.Exec(
			`INSERT INTO physical_samples
			 (resource_id, igsn, parent_igsn, sample_type, material, collection_method,
			  elevation, depth_min, depth_max)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			id, sm.IGSN, sm.ParentIGSN, sm.SampleType, sm.Material, sm.CollectionMethod,
			sm.Elevation, sm.DepthMin, sm.DepthMax,
		)
		if err != nil {
			return fmt.Errorf("inserting physical sample: %w", err)
		}
	}

	return nil
}

// insertDates writes the payload dates plus the system-managed pair:
// Created is carried over from the previous state (or set to today on
// first store) and Updated is always today. Payload-supplied Created or
// Updated entries are ignored.
func (s *Store) insertDates(tx *sql.Tx, id int64, dates []DateInput, preservedCreated *DateInput, today string) error {
	l := s.lookups
	pos := 0

	insert := func(d DateInput) error {
		_, err := tx.Exec(
			`INSERT INTO resource_dates
			 (resource_id, date_type_id, value, start_date, end_date, information, position)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			id, l.dateTypes[d.Type].ID, d.Value, d.Start, d.End, d.Information, pos,
		)
		pos++
		if err != nil {
			return fmt.Errorf("inserting date: %w", err)
		}
		return nil
	}

	for _, d := range dates {
		if d.Type == model.DateCreated || d.Type == model.DateUpdated {
			continue
		}
		if err := insert(d); err != nil {
			return err
		}
	}

	created := preservedCreated
	if created == nil {
		created = &DateInput{Type: model.DateCreated, Value: today}
	}
	if err := insert(*created); err != nil {
		return err
	}
	return insert(DateInput{Type: model.DateUpdated, Value: today})
}

// syncLicenses reconciles the license associations by SPDX identifier
// instead of delete-and-recreate: rights are a pure many-to-many link with
// no owned attributes. Unknown identifiers become new license rows.
func (s *Store) syncLicenses(tx *sql.Tx, id int64, identifiers []string) error {
	want := make(map[string]bool, len(identifiers))
	for _, ident := range identifiers {
		if ident != "" {
			want[ident] = true
		}
	}

	rows, err := tx.Query(
		`SELECT l.id, l.identifier FROM resource_licenses rl
		 JOIN licenses l ON l.id = rl.license_id
		 WHERE rl.resource_id = ?`, id)
	if err != nil {
		return fmt.Errorf("reading license links: %w", err)
	}
	have := make(map[string]int64)
	for rows.Next() {
		var lid int64
		var ident string
		if err := rows.Scan(&lid, &ident); err != nil {
			rows.Close()
			return err
		}
		have[ident] = lid
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	for ident, lid := range have {
		if !want[ident] {
			if _, err := tx.Exec(
				`DELETE FROM resource_licenses WHERE resource_id = ? AND license_id = ?`,
				id, lid,
			); err != nil {
				return fmt.Errorf("unlinking license %s: %w", ident, err)
			}
		}
	}

	for ident := range want {
		if _, ok := have[ident]; ok {
			continue
		}
		lid, err := findOrCreateLicense(tx, ident)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(
			`INSERT INTO resource_licenses (resource_id, license_id) VALUES (?, ?)`,
			id, lid,
		); err != nil {
			return fmt.Errorf("linking license %s: %w", ident, err)
		}
	}
	return nil
}

func findOrCreateLicense(tx *sql.Tx, identifier string) (int64, error) {
	var id int64
	err := tx.QueryRow(`SELECT id FROM licenses WHERE identifier = ?`, identifier).Scan(&id)
	if err == nil {
		return id, nil
	}
	if err != sql.ErrNoRows {
		return 0, fmt.Errorf("looking up license %s: %w", identifier, err)
	}
	res, err := tx.Exec(
		`INSERT INTO licenses (identifier, name) VALUES (?, ?)`,
		identifier, identifier,
	)
	if err != nil {
		return 0, fmt.Errorf("creating license %s: %w", identifier, err)
	}
	return res.LastInsertId()
}

func resolveAgent(tx *sql.Tx, a AgentInput) (personID, institutionID any, err error) {
	switch a.Kind {
	case AgentPerson:
		id, err := resolvePerson(tx, a)
		if err != nil {
			return nil, nil, err
		}
		return id, nil, nil
	case AgentInstitution:
		id, err := resolveInstitution(tx, a)
		if err != nil {
			return nil, nil, err
		}
		return nil, id, nil
	default:
		return nil, nil, fmt.Errorf("unknown agent kind %q", a.Kind)
	}
}

func insertAffiliations(tx *sql.Tx, ownerCol string, ownerID int64, affs []AffiliationInput) error {
	for i, a := range affs {
		if a.Name == "" {
			continue
		}
		_, err := tx.Exec(
			`INSERT INTO affiliations (`+ownerCol+`, name, identifier, identifier_scheme, scheme_uri, position)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			ownerID, a.Name, a.Identifier, a.Scheme, a.SchemeURI, i,
		)
		if err != nil {
			return fmt.Errorf("inserting affiliation %d: %w", i, err)
		}
	}
	return nil
}

func pointLat(p *model.GeoPoint) any {
	if p == nil {
		return nil
	}
	return p.Latitude
}

func pointLon(p *model.GeoPoint) any {
	if p == nil {
		return nil
	}
	return p.Longitude
}

func boxCoord(b *model.GeoBox, which byte) any {
	if b == nil {
		return nil
	}
	switch which {
	case 'w':
		return b.West
	case 'e':
		return b.East
	case 's':
		return b.South
	default:
		return b.North
	}
}
