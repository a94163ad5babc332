package store

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
)

// InsertRejection records an entry that will never be promoted, keyed to
// the raw entry it came from, with the exact reason text the runner
// produced. For dedup rejections, Error carries the
// "Matches candidate <id>: <name>" detail the promoter's link-duplicates
// phase parses back out (see internal/promote).
func (s *Store) InsertRejection(ctx context.Context, r RejectedEntry) (int64, error) {
	var id int64
	err := s.pool.QueryRow(ctx,
		`INSERT INTO rejected_entries (raw_entry_id, reason, error, reviewed)
		 VALUES ($1,$2,$3,$4) RETURNING id`,
		r.RawEntryID, r.Reason, r.Error, r.Reviewed,
	).Scan(&id)
	return id, errors.Wrap(err, "insert rejection")
}

// RejectionByRawEntryID finds the dedup rejection a duplicate candidate
// produced, matching promoter.py's link_duplicates lookup of
// RejectedEntries by raw_entry_id restricted to the two dedup reasons.
func (s *Store) RejectionByRawEntryID(ctx context.Context, rawEntryID int64) (RejectedEntry, bool, error) {
	var r RejectedEntry
	err := s.pool.QueryRow(ctx,
		`SELECT id, raw_entry_id, reason, error, reviewed, rejected_at
		 FROM rejected_entries
		 WHERE raw_entry_id = $1 AND reason IN ($2, $3)
		 ORDER BY id LIMIT 1`,
		rawEntryID, RejectReasonDuplicateExact, RejectReasonSuspectedDuplicate,
	).Scan(&r.ID, &r.RawEntryID, &r.Reason, &r.Error, &r.Reviewed, &r.RejectedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return RejectedEntry{}, false, nil
	}
	if err != nil {
		return RejectedEntry{}, false, errors.Wrap(err, "rejection by raw entry id")
	}
	return r, true, nil
}
