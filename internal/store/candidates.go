package store

import (
	"context"
	"encoding/json"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
)

// InsertCandidate creates a new candidate row, normally in
// CandidateUnverified status with a nil LocationID.
func (s *Store) InsertCandidate(ctx context.Context, c Candidate) (int64, error) {
	extra, err := json.Marshal(c.Extra)
	if err != nil {
		return 0, errors.Wrap(err, "marshal extra")
	}
	var id int64
	err = s.pool.QueryRow(ctx,
		`INSERT INTO candidates
		 (source_id, raw_entry_id, name, address, address_number, street_name,
		  street_suffix, city, state, zip, latitude, longitude, confidence, status, location_id, extra)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
		 RETURNING id`,
		c.SourceID, c.RawEntryID, c.Name, c.Address, c.AddressNumber, c.StreetName,
		c.StreetSuffix, c.City, c.State, c.Zip, c.Latitude, c.Longitude, c.Confidence,
		c.Status, c.LocationID, extra,
	).Scan(&id)
	if err != nil {
		return 0, errors.Wrap(err, "insert candidate")
	}
	return id, nil
}

// UpdateCandidateGeocode records a geocode outcome: coordinates,
// confidence, and the resulting status (geocode_match, geocode_failed,
// or geocode_mismatch).
func (s *Store) UpdateCandidateGeocode(ctx context.Context, id int64, lat, lon, confidence float64, status CandidateStatus) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE candidates SET latitude=$2, longitude=$3, confidence=$4, status=$5, updated_at=now()
		 WHERE id=$1`, id, lat, lon, confidence, status)
	return errors.Wrap(err, "update candidate geocode")
}

// UpdateCandidateStatus transitions status without touching geocode
// fields (used for source-verification and for marking a candidate a
// dedup duplicate).
func (s *Store) UpdateCandidateStatus(ctx context.Context, id int64, status CandidateStatus) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE candidates SET status=$2, updated_at=now() WHERE id=$1`, id, status)
	return errors.Wrap(err, "update candidate status")
}

// SetCandidateLocation records that a candidate has been promoted (or,
// for duplicates/wiki entries, linked) to a Location, matching
// promoter.py setting cand.location_id directly.
func (s *Store) SetCandidateLocation(ctx context.Context, id int64, locationID string) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE candidates SET location_id=$2, updated_at=now() WHERE id=$1`, id, locationID)
	return errors.Wrap(err, "set candidate location")
}

const candidateColumns = `id, source_id, raw_entry_id, name, address, address_number, street_name,
	          street_suffix, city, state, zip, latitude, longitude, confidence, status, location_id,
	          created_at, updated_at`

func scanCandidate(row interface {
	Scan(dest ...interface{}) error
}) (Candidate, error) {
	var c Candidate
	err := row.Scan(&c.ID, &c.SourceID, &c.RawEntryID, &c.Name, &c.Address, &c.AddressNumber,
		&c.StreetName, &c.StreetSuffix, &c.City, &c.State, &c.Zip, &c.Latitude, &c.Longitude,
		&c.Confidence, &c.Status, &c.LocationID, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

// CandidateByID fetches a single candidate, used by the promoter's
// link-duplicates phase to resolve a rejection's primary candidate.
func (s *Store) CandidateByID(ctx context.Context, id int64) (Candidate, bool, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+candidateColumns+` FROM candidates WHERE id = $1`, id)
	c, err := scanCandidate(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Candidate{}, false, nil
	}
	if err != nil {
		return Candidate{}, false, errors.Wrap(err, "candidate by id")
	}
	return c, true, nil
}

// CandidatesByStatus returns every candidate in the given status,
// optionally limited to one source.
func (s *Store) CandidatesByStatus(ctx context.Context, status CandidateStatus, sourceID *int64) ([]Candidate, error) {
	query := `SELECT ` + candidateColumns + ` FROM candidates WHERE status = $1`
	args := []interface{}{status}
	if sourceID != nil {
		query += " AND source_id = $2"
		args = append(args, *sourceID)
	}
	query += " ORDER BY id"

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "query candidates by status")
	}
	defer rows.Close()

	var out []Candidate
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan candidate")
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// CandidatesByStatuses returns every candidate whose status is in the
// given set, regardless of promotion state — the pool the deduplicator
// checks new entries against, matching matcher.py's
// verification_status.in_(...) filter.
func (s *Store) CandidatesByStatuses(ctx context.Context, statuses []CandidateStatus) ([]Candidate, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+candidateColumns+` FROM candidates WHERE status = ANY($1) ORDER BY id`,
		statusStrings(statuses))
	if err != nil {
		return nil, errors.Wrap(err, "query candidates by statuses")
	}
	defer rows.Close()

	var out []Candidate
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan candidate")
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// CandidatesByStatusesUnlinked is CandidatesByStatuses restricted to
// candidates with no location_id yet, matching promoter.py's
// Candidates.location_id.is_(None) filter on each phase's input query.
func (s *Store) CandidatesByStatusesUnlinked(ctx context.Context, statuses []CandidateStatus) ([]Candidate, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+candidateColumns+` FROM candidates WHERE location_id IS NULL AND status = ANY($1) ORDER BY id`,
		statusStrings(statuses))
	if err != nil {
		return nil, errors.Wrap(err, "query unlinked candidates by statuses")
	}
	defer rows.Close()

	var out []Candidate
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan candidate")
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func statusStrings(statuses []CandidateStatus) []string {
	out := make([]string, len(statuses))
	for i, st := range statuses {
		out[i] = string(st)
	}
	return out
}

// VerifiedAndUnverifiedForDedup returns the candidate pools the
// deduplicator checks new entries against: verified candidates
// (geocode_match, source_verified, human_approved) and unverified
// candidates, the latter only consulted for streetless entries'
// extended-pool fuzzy-name check.
func (s *Store) VerifiedAndUnverifiedForDedup(ctx context.Context) (verified, unverified []Candidate, err error) {
	verified, err = s.CandidatesByStatuses(ctx, []CandidateStatus{
		CandidateGeocodeMatch, CandidateSourceVerified, CandidateHumanApproved,
	})
	if err != nil {
		return nil, nil, err
	}
	unverified, err = s.CandidatesByStatuses(ctx, []CandidateStatus{CandidateUnverified})
	if err != nil {
		return nil, nil, err
	}
	return verified, unverified, nil
}
