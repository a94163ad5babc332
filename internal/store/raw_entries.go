package store

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
)

// CheckAndInsertRaw records a fetched (name, address) pair under its
// fingerprint for sourceID if it hasn't been seen before, matching
// fingerprint.py's check_and_insert_raw: returns (entry, isNew). When
// the fingerprint already exists, last_seen_at is bumped and isNew is
// false — the caller should skip parsing/geocoding and move on to the
// next fetched row. rawName/rawAddress are persisted verbatim so a later
// parser bugfix can re-normalize from the original text without
// re-scraping (runner.py's repair_geocode_failed).
func (s *Store) CheckAndInsertRaw(ctx context.Context, sourceID int64, fingerprint, rawName, rawAddress string) (RawEntry, bool, error) {
	now := time.Now().UTC()

	var existing RawEntry
	err := s.pool.QueryRow(ctx,
		`SELECT id, source_id, raw_name, raw_address, fingerprint, parse_status, first_seen_at, last_seen_at
		 FROM raw_entries WHERE source_id = $1 AND fingerprint = $2`,
		sourceID, fingerprint,
	).Scan(&existing.ID, &existing.SourceID, &existing.RawName, &existing.RawAddress,
		&existing.Fingerprint, &existing.ParseStatus, &existing.FirstSeenAt, &existing.LastSeenAt)

	switch {
	case err == nil:
		_, uerr := s.pool.Exec(ctx,
			`UPDATE raw_entries SET last_seen_at = $2 WHERE id = $1`, existing.ID, now)
		if uerr != nil {
			return RawEntry{}, false, errors.Wrap(uerr, "bump last_seen_at")
		}
		existing.LastSeenAt = now
		return existing, false, nil

	case errors.Is(err, pgx.ErrNoRows):
		var created RawEntry
		qerr := s.pool.QueryRow(ctx,
			`INSERT INTO raw_entries (source_id, raw_name, raw_address, fingerprint, parse_status, first_seen_at, last_seen_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $6)
			 RETURNING id, source_id, raw_name, raw_address, fingerprint, parse_status, first_seen_at, last_seen_at`,
			sourceID, rawName, rawAddress, fingerprint, RawParsePending, now,
		).Scan(&created.ID, &created.SourceID, &created.RawName, &created.RawAddress,
			&created.Fingerprint, &created.ParseStatus, &created.FirstSeenAt, &created.LastSeenAt)
		if qerr != nil {
			return RawEntry{}, false, errors.Wrap(qerr, "insert raw entry")
		}
		return created, true, nil

	default:
		return RawEntry{}, false, errors.Wrap(err, "check raw entry")
	}
}

// UpdateRawEntryParseStatus records whether the raw entry's name/address
// text successfully turned into a Candidate, matching runner.py setting
// raw_entry.parse_status to 'parsed' or 'failed' after _parse_entry.
func (s *Store) UpdateRawEntryParseStatus(ctx context.Context, id int64, status RawParseStatus) error {
	_, err := s.pool.Exec(ctx, `UPDATE raw_entries SET parse_status = $2 WHERE id = $1`, id, status)
	return errors.Wrap(err, "update raw entry parse status")
}

// RawEntryByID fetches a single raw entry, used by repair-failed to
// re-normalize from the originally captured text.
func (s *Store) RawEntryByID(ctx context.Context, id int64) (RawEntry, bool, error) {
	var r RawEntry
	err := s.pool.QueryRow(ctx,
		`SELECT id, source_id, raw_name, raw_address, fingerprint, parse_status, first_seen_at, last_seen_at
		 FROM raw_entries WHERE id = $1`, id).
		Scan(&r.ID, &r.SourceID, &r.RawName, &r.RawAddress, &r.Fingerprint, &r.ParseStatus, &r.FirstSeenAt, &r.LastSeenAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return RawEntry{}, false, nil
	}
	if err != nil {
		return RawEntry{}, false, errors.Wrap(err, "raw entry by id")
	}
	return r, true, nil
}
