package store

import (
	"context"
	"time"

	"github.com/go-faster/errors"
)

// EnabledSources returns every source with enabled=true, excluding
// "skatetrax" when excludeSkatetrax is set (run-all orchestration never
// scrapes the synthetic peer-confirmation source).
func (s *Store) EnabledSources(ctx context.Context, excludeSkatetrax bool) ([]Source, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, enabled, last_run_at, last_run_status, last_run_error
		 FROM sources WHERE enabled = true ORDER BY id`)
	if err != nil {
		return nil, errors.Wrap(err, "query enabled sources")
	}
	defer rows.Close()

	var out []Source
	for rows.Next() {
		var src Source
		if err := rows.Scan(&src.ID, &src.Name, &src.Enabled, &src.LastRunAt, &src.LastRunStatus, &src.LastRunError); err != nil {
			return nil, errors.Wrap(err, "scan source")
		}
		if excludeSkatetrax && src.Name == "skatetrax" {
			continue
		}
		out = append(out, src)
	}
	return out, rows.Err()
}

// SourceByName looks up a source by its unique name.
func (s *Store) SourceByName(ctx context.Context, name string) (Source, error) {
	var src Source
	err := s.pool.QueryRow(ctx,
		`SELECT id, name, enabled, last_run_at, last_run_status, last_run_error
		 FROM sources WHERE name = $1`, name).
		Scan(&src.ID, &src.Name, &src.Enabled, &src.LastRunAt, &src.LastRunStatus, &src.LastRunError)
	if err != nil {
		return Source{}, errors.Wrapf(err, "source %q", name)
	}
	return src, nil
}

// UpdateSourceRunMeta records the outcome of a run, mirroring runner.py's
// _update_source_meta: "success" when nothing failed, "partial" when some
// entries failed but progress was made, "failed" when nothing succeeded.
func (s *Store) UpdateSourceRunMeta(ctx context.Context, sourceID int64, status, errMsg string) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE sources SET last_run_at = $2, last_run_status = $3, last_run_error = $4 WHERE id = $1`,
		sourceID, time.Now().UTC(), status, errMsg)
	return errors.Wrap(err, "update source run meta")
}

// RunStatus picks success/partial/failed from scraped/succeeded/failed
// counts the same way runner.py's _update_source_meta does.
func RunStatus(scraped, succeeded, failed int) string {
	switch {
	case failed == 0:
		return "success"
	case succeeded == 0 && failed > 0:
		return "failed"
	default:
		return "partial"
	}
}
