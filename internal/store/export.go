package store

import (
	"github.com/go-faster/errors"
	"github.com/jmoiron/sqlx"

	_ "github.com/lib/pq"
)

// ExportRow is one row of the locations CSV export, matching
// run_pipeline.py's export_csv field list exactly.
type ExportRow struct {
	RinkID      string `db:"rink_id" csv:"rink_id"`
	RinkName    string `db:"rink_name" csv:"rink_name"`
	RinkAddress string `db:"rink_address" csv:"rink_address"`
	RinkCity    string `db:"rink_city" csv:"rink_city"`
	RinkState   string `db:"rink_state" csv:"rink_state"`
	RinkZip     string `db:"rink_zip" csv:"rink_zip"`
	RinkStatus  string `db:"rink_status" csv:"rink_status"`
	DataSource  string `db:"data_source" csv:"data_source"`
	SourceCount int    `db:"source_count" csv:"source_count"`
}

// Reporter is a separate database/sql-backed connection used only for
// the read-only CSV export and Skatetrax peer-mirror reads: a second,
// simpler access style alongside the pgxpool transactional path, the
// same split original_source kept between its SQLAlchemy ORM session and
// ad hoc reporting queries. See DESIGN.md.
type Reporter struct {
	db *sqlx.DB
}

// NewReporter opens a sqlx connection (via lib/pq) against dsn.
func NewReporter(dsn string) (*Reporter, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "open reporter connection")
	}
	return &Reporter{db: db}, nil
}

// Close releases the underlying connection.
func (r *Reporter) Close() error { return r.db.Close() }

// ExportLocations returns every location with its LEFT JOIN source
// count, ordered by state then city, matching export_csv's query.
func (r *Reporter) ExportLocations() ([]ExportRow, error) {
	const q = `
		SELECT l.rink_id, l.rink_name, COALESCE(l.rink_address, '') AS rink_address,
		       l.rink_city, l.rink_state, COALESCE(l.rink_zip, '') AS rink_zip,
		       l.rink_status, l.data_source, COUNT(ls.id) AS source_count
		FROM locations l
		LEFT JOIN location_sources ls ON ls.location_id = l.rink_id
		GROUP BY l.rink_id
		ORDER BY l.rink_state, l.rink_city`

	var rows []ExportRow
	if err := r.db.Select(&rows, q); err != nil {
		return nil, errors.Wrap(err, "export locations")
	}
	return rows, nil
}
