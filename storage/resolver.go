package storage

import (
	"database/sql"
	"fmt"
)

// Entity resolution: find-or-create for shared person and institution
// records. Matches never overwrite populated names or identifiers; the only
// write on a match is backfilling a missing identifier. Lookups are not
// separately locked — two concurrent first-time submissions of the same new
// author can create a duplicate row, which is a data-quality issue to merge
// later, not a correctness hazard.

// resolvePerson finds or creates the person for the candidate and returns
// its row id. Precedence: exact identifier (ORCID) match, then exact
// (family_name, given_name) match where a nil given name matches only rows
// with a NULL given name.
func resolvePerson(tx *sql.Tx, in AgentInput) (int64, error) {
	if in.Identifier != "" {
		var id int64
		err := tx.QueryRow(
			`SELECT id FROM persons WHERE identifier = ? AND identifier_scheme = ?`,
			in.Identifier, in.Scheme,
		).Scan(&id)
		if err == nil {
			return id, nil
		}
		if err != sql.ErrNoRows {
			return 0, fmt.Errorf("looking up person by identifier: %w", err)
		}
	}

	var row *sql.Row
	if in.GivenName == nil {
		row = tx.QueryRow(
			`SELECT id, identifier FROM persons
			 WHERE family_name = ? AND given_name IS NULL`,
			in.FamilyName,
		)
	} else {
		row = tx.QueryRow(
			`SELECT id, identifier FROM persons
			 WHERE family_name = ? AND given_name = ?`,
			in.FamilyName, *in.GivenName,
		)
	}

	var id int64
	var identifier sql.NullString
	err := row.Scan(&id, &identifier)
	switch {
	case err == nil:
		if in.Identifier != "" && identifier.String == "" {
			_, err = tx.Exec(
				`UPDATE persons SET identifier = ?, identifier_scheme = ? WHERE id = ?`,
				in.Identifier, in.Scheme, id,
			)
			if err != nil {
				return 0, fmt.Errorf("backfilling person identifier: %w", err)
			}
		}
		return id, nil
	case err != sql.ErrNoRows:
		return 0, fmt.Errorf("looking up person by name: %w", err)
	}

	res, err := tx.Exec(
		`INSERT INTO persons (given_name, family_name, identifier, identifier_scheme)
		 VALUES (?, ?, ?, ?)`,
		in.GivenName, in.FamilyName, nullable(in.Identifier), nullable(in.Scheme),
	)
	if err != nil {
		return 0, fmt.Errorf("creating person: %w", err)
	}
	return res.LastInsertId()
}

// resolveInstitution finds or creates the institution for the candidate.
// Precedence: (identifier, scheme) pair, identifier alone as a
// scheme-agnostic fallback, then name among rows with no identifier.
func resolveInstitution(tx *sql.Tx, in AgentInput) (int64, error) {
	if in.Identifier != "" {
		var id int64
		err := tx.QueryRow(
			`SELECT id FROM institutions WHERE identifier = ? AND identifier_scheme = ?`,
			in.Identifier, in.Scheme,
		).Scan(&id)
		if err == nil {
			return id, nil
		}
		if err != sql.ErrNoRows {
			return 0, fmt.Errorf("looking up institution by identifier and scheme: %w", err)
		}

		err = tx.QueryRow(
			`SELECT id FROM institutions WHERE identifier = ?`, in.Identifier,
		).Scan(&id)
		if err == nil {
			return id, nil
		}
		if err != sql.ErrNoRows {
			return 0, fmt.Errorf("looking up institution by identifier: %w", err)
		}
	}

	var id int64
	err := tx.QueryRow(
		`SELECT id FROM institutions
		 WHERE name = ? AND (identifier IS NULL OR identifier = '')`,
		in.Name,
	).Scan(&id)
	switch {
	case err == nil:
		if in.Identifier != "" {
			_, err = tx.Exec(
				`UPDATE institutions SET identifier = ?, identifier_scheme = ? WHERE id = ?`,
				in.Identifier, in.Scheme, id,
			)
			if err != nil {
				return 0, fmt.Errorf("backfilling institution identifier: %w", err)
			}
		}
		return id, nil
	case err != sql.ErrNoRows:
		return 0, fmt.Errorf("looking up institution by name: %w", err)
	}

	res, err := tx.Exec(
		`INSERT INTO institutions (name, identifier, identifier_scheme) VALUES (?, ?, ?)`,
		in.Name, nullable(in.Identifier), nullable(in.Scheme),
	)
	if err != nil {
		return 0, fmt.Errorf("creating institution: %w", err)
	}
	return res.LastInsertId()
}

func nullable(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
