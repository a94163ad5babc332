package store

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
)

// InsertLocation creates a new canonical Location row.
func (s *Store) InsertLocation(ctx context.Context, l Location) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO locations
		 (rink_id, rink_name, rink_address, rink_city, rink_state, rink_country,
		  rink_zip, rink_phone, rink_url, rink_tz, rink_status, latitude, longitude,
		  data_source, date_created)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)`,
		l.RinkID, l.Name, l.Address, l.City, l.State, l.Country, l.Zip, l.Phone,
		l.URL, l.Timezone, l.Status, l.Latitude, l.Longitude, l.DataSource, l.CreatedAt)
	return errors.Wrap(err, "insert location")
}

// LocationByID fetches a Location by rink_id.
func (s *Store) LocationByID(ctx context.Context, id string) (Location, bool, error) {
	var l Location
	err := s.pool.QueryRow(ctx,
		`SELECT rink_id, rink_name, rink_address, rink_city, rink_state, rink_country,
		  rink_zip, rink_phone, rink_url, rink_tz, rink_status, latitude, longitude,
		  data_source, date_created
		 FROM locations WHERE rink_id = $1`, id).
		Scan(&l.RinkID, &l.Name, &l.Address, &l.City, &l.State, &l.Country, &l.Zip,
			&l.Phone, &l.URL, &l.Timezone, &l.Status, &l.Latitude, &l.Longitude,
			&l.DataSource, &l.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Location{}, false, nil
	}
	if err != nil {
		return Location{}, false, errors.Wrap(err, "location by id")
	}
	return l, true, nil
}

// ActiveLocations returns locations whose status is neither "merged" nor
// "disabled" — see DESIGN.md's Open Question resolution on the
// promoter's matching pool, which follows original_source/pipeline/promoter.py
// literally rather than spec.md's "active-only" prose.
func (s *Store) ActiveLocations(ctx context.Context) ([]Location, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT rink_id, rink_name, rink_address, rink_city, rink_state, rink_country,
		  rink_zip, rink_phone, rink_url, rink_tz, rink_status, latitude, longitude,
		  data_source, date_created
		 FROM locations WHERE rink_status NOT IN ('merged', 'disabled')`)
	if err != nil {
		return nil, errors.Wrap(err, "query active locations")
	}
	defer rows.Close()

	var out []Location
	for rows.Next() {
		var l Location
		if err := rows.Scan(&l.RinkID, &l.Name, &l.Address, &l.City, &l.State, &l.Country,
			&l.Zip, &l.Phone, &l.URL, &l.Timezone, &l.Status, &l.Latitude, &l.Longitude,
			&l.DataSource, &l.CreatedAt); err != nil {
			return nil, errors.Wrap(err, "scan location")
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// ActiveLocationsWithStatus returns locations matching exactly one
// rink_status, used by the peer-push path, which (per
// skatetrax_push.py) only ever pushes rink_status='active' rows —
// unlike the promoter's broader "not merged/disabled" pool.
func (s *Store) ActiveLocationsWithStatus(ctx context.Context, status string) ([]Location, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT rink_id, rink_name, rink_address, rink_city, rink_state, rink_country,
		  rink_zip, rink_phone, rink_url, rink_tz, rink_status, latitude, longitude,
		  data_source, date_created
		 FROM locations WHERE rink_status = $1 ORDER BY rink_state, rink_city`, status)
	if err != nil {
		return nil, errors.Wrap(err, "query locations by status")
	}
	defer rows.Close()

	var out []Location
	for rows.Next() {
		var l Location
		if err := rows.Scan(&l.RinkID, &l.Name, &l.Address, &l.City, &l.State, &l.Country,
			&l.Zip, &l.Phone, &l.URL, &l.Timezone, &l.Status, &l.Latitude, &l.Longitude,
			&l.DataSource, &l.CreatedAt); err != nil {
			return nil, errors.Wrap(err, "scan location")
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// UpdateLocationStatus performs a demote/merge/etc. status transition.
func (s *Store) UpdateLocationStatus(ctx context.Context, id, status string) error {
	_, err := s.pool.Exec(ctx, `UPDATE locations SET rink_status = $2 WHERE rink_id = $1`, id, status)
	return errors.Wrap(err, "update location status")
}

// RenameLocation changes a location's display name.
func (s *Store) RenameLocation(ctx context.Context, id, newName string) error {
	_, err := s.pool.Exec(ctx, `UPDATE locations SET rink_name = $2 WHERE rink_id = $1`, id, newName)
	return errors.Wrap(err, "rename location")
}

// SearchLocationsByName does a case-insensitive substring search,
// returning candidates for the curator's find/demote/merge/rename
// commands, matching demoter.py's _find_location partial-match mode.
func (s *Store) SearchLocationsByName(ctx context.Context, query string) ([]Location, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT rink_id, rink_name, rink_address, rink_city, rink_state, rink_country,
		  rink_zip, rink_phone, rink_url, rink_tz, rink_status, latitude, longitude,
		  data_source, date_created
		 FROM locations WHERE rink_name ILIKE '%' || $1 || '%' ORDER BY rink_name`, query)
	if err != nil {
		return nil, errors.Wrap(err, "search locations")
	}
	defer rows.Close()

	var out []Location
	for rows.Next() {
		var l Location
		if err := rows.Scan(&l.RinkID, &l.Name, &l.Address, &l.City, &l.State, &l.Country,
			&l.Zip, &l.Phone, &l.URL, &l.Timezone, &l.Status, &l.Latitude, &l.Longitude,
			&l.DataSource, &l.CreatedAt); err != nil {
			return nil, errors.Wrap(err, "scan location")
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// UpsertLocationSource inserts or refreshes the link between a location
// and a source, matching promoter.py's _add_location_source: on first
// link, first_seen_at and last_seen_at take the values in ls (the
// promoter passes "now" for both); on repeat visits, last_seen_at is
// replaced by ls.LastSeenAt and is_present set true.
func (s *Store) UpsertLocationSource(ctx context.Context, ls LocationSource) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO location_sources (location_id, source_id, candidate_id, first_seen_at, last_seen_at, is_present)
		 VALUES ($1,$2,$3,$4,$5,true)
		 ON CONFLICT (location_id, source_id) DO UPDATE SET
		   last_seen_at = EXCLUDED.last_seen_at, is_present = true`,
		ls.LocationID, ls.SourceID, ls.CandidateID, ls.FirstSeenAt, ls.LastSeenAt)
	return errors.Wrap(err, "upsert location source")
}

// LocationSourcesFor returns every source link for a location.
func (s *Store) LocationSourcesFor(ctx context.Context, locationID string) ([]LocationSource, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, location_id, source_id, candidate_id, first_seen_at, last_seen_at, is_present
		 FROM location_sources WHERE location_id = $1`, locationID)
	if err != nil {
		return nil, errors.Wrap(err, "query location sources")
	}
	defer rows.Close()

	var out []LocationSource
	for rows.Next() {
		var ls LocationSource
		if err := rows.Scan(&ls.ID, &ls.LocationID, &ls.SourceID, &ls.CandidateID, &ls.FirstSeenAt, &ls.LastSeenAt, &ls.IsPresent); err != nil {
			return nil, errors.Wrap(err, "scan location source")
		}
		out = append(out, ls)
	}
	return out, rows.Err()
}

// RepointLocationSource moves a location_sources row to a different
// location_id, used by merge to reassign the duplicate's sources onto
// the surviving primary. If the primary already has a row for that
// source_id, the duplicate's row is widened into it (min first_seen_at,
// max last_seen_at, per the merge timestamp Open Question) and deleted
// instead of creating a UNIQUE(location_id, source_id) conflict.
func (s *Store) RepointLocationSource(ctx context.Context, lsID int64, newLocationID string) error {
	var existingID int64
	var existingFirst, existingLast time.Time
	err := s.pool.QueryRow(ctx,
		`SELECT ls2.id, ls2.first_seen_at, ls2.last_seen_at
		 FROM location_sources ls1
		 JOIN location_sources ls2 ON ls2.location_id = $2 AND ls2.source_id = ls1.source_id
		 WHERE ls1.id = $1`, lsID, newLocationID,
	).Scan(&existingID, &existingFirst, &existingLast)

	if errors.Is(err, pgx.ErrNoRows) {
		_, uerr := s.pool.Exec(ctx, `UPDATE location_sources SET location_id = $2 WHERE id = $1`, lsID, newLocationID)
		return errors.Wrap(uerr, "repoint location source")
	}
	if err != nil {
		return errors.Wrap(err, "check existing location source")
	}

	var dupFirst, dupLast time.Time
	if serr := s.pool.QueryRow(ctx, `SELECT first_seen_at, last_seen_at FROM location_sources WHERE id = $1`, lsID).
		Scan(&dupFirst, &dupLast); serr != nil {
		return errors.Wrap(serr, "read duplicate location source")
	}

	mergedFirst := minTime(dupFirst, existingFirst)
	mergedLast := maxTime(dupLast, existingLast)

	if _, uerr := s.pool.Exec(ctx,
		`UPDATE location_sources SET first_seen_at = $2, last_seen_at = $3 WHERE id = $1`,
		existingID, mergedFirst, mergedLast); uerr != nil {
		return errors.Wrap(uerr, "widen surviving location source")
	}
	_, derr := s.pool.Exec(ctx, `DELETE FROM location_sources WHERE id = $1`, lsID)
	return errors.Wrap(derr, "delete duplicate location source")
}

func minTime(a, b time.Time) time.Time {
	if a.IsZero() {
		return b
	}
	if b.IsZero() {
		return a
	}
	if a.Before(b) {
		return a
	}
	return b
}

func maxTime(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

// CreateAlias records alias as a former/alternate name for locationID if
// it doesn't already exist, matching skatetrax_push.py's _record_alias.
func (s *Store) CreateAlias(ctx context.Context, locationID, alias, notes string) (bool, error) {
	tag, err := s.pool.Exec(ctx,
		`INSERT INTO location_aliases (location_id, alias_name, notes)
		 VALUES ($1,$2,$3) ON CONFLICT (location_id, alias_name) DO NOTHING`,
		locationID, alias, notes)
	if err != nil {
		return false, errors.Wrap(err, "create alias")
	}
	return tag.RowsAffected() > 0, nil
}

// RepointCandidateLocations reassigns every candidate promoted/linked to
// fromLocationID over to toLocationID, used by merge so a duplicate's
// candidates (and the dedup/promoter history they carry) follow the
// surviving primary location instead of pointing at a merged-away one.
func (s *Store) RepointCandidateLocations(ctx context.Context, fromLocationID, toLocationID string) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE candidates SET location_id = $2, updated_at = now() WHERE location_id = $1`,
		fromLocationID, toLocationID)
	return errors.Wrap(err, "repoint candidate locations")
}
