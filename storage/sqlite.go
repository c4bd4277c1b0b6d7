// Package storage persists the Resource aggregate in SQLite: the schema,
// the lookup caches, the person/institution entity resolver, the aggregate
// loader, and the upsert engine used by the editing front end and both
// import pipelines.
package storage

import (
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("resource not found")

// Store wraps the SQLite database and its lookup caches.
type Store struct {
	db      *sql.DB
	lookups *lookups
}

// Open opens or creates the curation database at the given path.
// Transactions start in immediate mode so concurrent edits of the same
// resource serialize at the database instead of failing mid-write.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path+"?_txlock=immediate")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// SQLite allows a single writer; funneling everything through one
	// connection avoids SQLITE_BUSY on overlapping transactions.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	s := &Store{db: db}
	if err := s.ReloadLookups(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS resource_types (
			id INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			slug TEXT NOT NULL UNIQUE
		);
		CREATE TABLE IF NOT EXISTS title_types (
			id INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			slug TEXT NOT NULL UNIQUE
		);
		CREATE TABLE IF NOT EXISTS date_types (
			id INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			slug TEXT NOT NULL UNIQUE
		);
		CREATE TABLE IF NOT EXISTS description_types (
			id INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			slug TEXT NOT NULL UNIQUE
		);
		CREATE TABLE IF NOT EXISTS contributor_types (
			id INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			slug TEXT NOT NULL UNIQUE
		);
		CREATE TABLE IF NOT EXISTS identifier_types (
			id INTEGER PRIMARY KEY,
			name TEXT NOT NULL UNIQUE
		);
		CREATE TABLE IF NOT EXISTS relation_types (
			id INTEGER PRIMARY KEY,
			name TEXT NOT NULL UNIQUE
		);
		CREATE TABLE IF NOT EXISTS licenses (
			id INTEGER PRIMARY KEY,
			identifier TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL,
			url TEXT NOT NULL DEFAULT ''
		);

		CREATE TABLE IF NOT EXISTS persons (
			id INTEGER PRIMARY KEY,
			given_name TEXT,
			family_name TEXT NOT NULL,
			identifier TEXT,
			identifier_scheme TEXT
		);
		CREATE INDEX IF NOT EXISTS idx_persons_identifier
			ON persons(identifier) WHERE identifier IS NOT NULL;

		CREATE TABLE IF NOT EXISTS institutions (
			id INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			identifier TEXT,
			identifier_scheme TEXT
		);
		CREATE INDEX IF NOT EXISTS idx_institutions_identifier
			ON institutions(identifier) WHERE identifier IS NOT NULL;

		CREATE TABLE IF NOT EXISTS resources (
			id INTEGER PRIMARY KEY,
			doi TEXT,
			publication_year INTEGER NOT NULL,
			version TEXT NOT NULL DEFAULT '',
			resource_type_id INTEGER NOT NULL REFERENCES resource_types(id),
			language TEXT NOT NULL DEFAULT '',
			publisher TEXT NOT NULL DEFAULT '',
			created_by TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_resources_doi
			ON resources(doi) WHERE doi IS NOT NULL;

		CREATE TABLE IF NOT EXISTS titles (
			id INTEGER PRIMARY KEY,
			resource_id INTEGER NOT NULL REFERENCES resources(id) ON DELETE CASCADE,
			value TEXT NOT NULL,
			title_type_id INTEGER NOT NULL REFERENCES title_types(id),
			language TEXT NOT NULL DEFAULT '',
			position INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS creators (
			id INTEGER PRIMARY KEY,
			resource_id INTEGER NOT NULL REFERENCES resources(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			person_id INTEGER REFERENCES persons(id),
			institution_id INTEGER REFERENCES institutions(id),
			CHECK ((person_id IS NULL) != (institution_id IS NULL))
		);

		CREATE TABLE IF NOT EXISTS contributors (
			id INTEGER PRIMARY KEY,
			resource_id INTEGER NOT NULL REFERENCES resources(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			contributor_type_id INTEGER NOT NULL REFERENCES contributor_types(id),
			person_id INTEGER REFERENCES persons(id),
			institution_id INTEGER REFERENCES institutions(id),
			CHECK ((person_id IS NULL) != (institution_id IS NULL))
		);

		CREATE TABLE IF NOT EXISTS affiliations (
			id INTEGER PRIMARY KEY,
			creator_id INTEGER REFERENCES creators(id) ON DELETE CASCADE,
			contributor_id INTEGER REFERENCES contributors(id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			identifier TEXT NOT NULL DEFAULT '',
			identifier_scheme TEXT NOT NULL DEFAULT '',
			scheme_uri TEXT NOT NULL DEFAULT '',
			position INTEGER NOT NULL,
			CHECK ((creator_id IS NULL) != (contributor_id IS NULL))
		);

		CREATE TABLE IF NOT EXISTS descriptions (
			id INTEGER PRIMARY KEY,
			resource_id INTEGER NOT NULL REFERENCES resources(id) ON DELETE CASCADE,
			value TEXT NOT NULL,
			description_type_id INTEGER NOT NULL REFERENCES description_types(id),
			language TEXT NOT NULL DEFAULT '',
			position INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS resource_dates (
			id INTEGER PRIMARY KEY,
			resource_id INTEGER NOT NULL REFERENCES resources(id) ON DELETE CASCADE,
			date_type_id INTEGER NOT NULL REFERENCES date_types(id),
			value TEXT NOT NULL DEFAULT '',
			start_date TEXT NOT NULL DEFAULT '',
			end_date TEXT NOT NULL DEFAULT '',
			information TEXT NOT NULL DEFAULT '',
			position INTEGER NOT NULL,
			CHECK (value = '' OR start_date = '')
		);

		CREATE TABLE IF NOT EXISTS subjects (
			id INTEGER PRIMARY KEY,
			resource_id INTEGER NOT NULL REFERENCES resources(id) ON DELETE CASCADE,
			value TEXT NOT NULL,
			scheme TEXT NOT NULL DEFAULT '',
			scheme_uri TEXT NOT NULL DEFAULT '',
			value_uri TEXT NOT NULL DEFAULT '',
			classification_code TEXT NOT NULL DEFAULT '',
			position INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS geolocations (
			id INTEGER PRIMARY KEY,
			resource_id INTEGER NOT NULL REFERENCES resources(id) ON DELETE CASCADE,
			place TEXT NOT NULL DEFAULT '',
			point_lat REAL, point_lon REAL,
			west REAL, east REAL, south REAL, north REAL,
			polygon_json TEXT NOT NULL DEFAULT '',
			in_point_lat REAL, in_point_lon REAL,
			position INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS related_identifiers (
			id INTEGER PRIMARY KEY,
			resource_id INTEGER NOT NULL REFERENCES resources(id) ON DELETE CASCADE,
			identifier TEXT NOT NULL,
			identifier_type_id INTEGER NOT NULL REFERENCES identifier_types(id),
			relation_type_id INTEGER NOT NULL REFERENCES relation_types(id),
			resource_type_general TEXT NOT NULL DEFAULT '',
			position INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS funding_references (
			id INTEGER PRIMARY KEY,
			resource_id INTEGER NOT NULL REFERENCES resources(id) ON DELETE CASCADE,
			funder_name TEXT NOT NULL,
			funder_identifier TEXT NOT NULL DEFAULT '',
			funder_identifier_type TEXT NOT NULL DEFAULT '',
			award_number TEXT NOT NULL DEFAULT '',
			award_uri TEXT NOT NULL DEFAULT '',
			award_title TEXT NOT NULL DEFAULT '',
			position INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS resource_licenses (
			resource_id INTEGER NOT NULL REFERENCES resources(id) ON DELETE CASCADE,
			license_id INTEGER NOT NULL REFERENCES licenses(id),
			PRIMARY KEY (resource_id, license_id)
		);

		CREATE TABLE IF NOT EXISTS sizes (
			id INTEGER PRIMARY KEY,
			resource_id INTEGER NOT NULL REFERENCES resources(id) ON DELETE CASCADE,
			value TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS formats (
			id INTEGER PRIMARY KEY,
			resource_id INTEGER NOT NULL REFERENCES resources(id) ON DELETE CASCADE,
			value TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS physical_samples (
			resource_id INTEGER PRIMARY KEY REFERENCES resources(id) ON DELETE CASCADE,
			igsn TEXT NOT NULL,
			parent_igsn TEXT NOT NULL DEFAULT '',
			sample_type TEXT NOT NULL DEFAULT '',
			material TEXT NOT NULL DEFAULT '',
			collection_method TEXT NOT NULL DEFAULT '',
			elevation REAL, depth_min REAL, depth_max REAL
		);
	`
	if _, err := db.Exec(schema); err != nil {
		return err
	}
	return seedLookups(db)
}
