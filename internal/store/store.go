package store

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Store wraps the staging database's connection pool. It is sized to a
// single connection: the pipeline is batch-sequential by design (spec
// §5), never running concurrent writers against the staging schema.
type Store struct {
	pool *pgxpool.Pool
	log  *zap.Logger
}

// Option configures a Store at construction time, following the
// functional-options pattern the teacher used for GeobedConfig.
type Option func(*pgxpool.Config)

// WithMaxConns overrides the default single-connection pool size. Tests
// that exercise real concurrency (rare; most of this codebase is
// intentionally sequential) can widen it.
func WithMaxConns(n int32) Option {
	return func(c *pgxpool.Config) { c.MaxConns = n }
}

// New builds a Store against dsn, applying migrations before returning.
func New(ctx context.Context, dsn string, log *zap.Logger, opts ...Option) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, errors.Wrap(err, "parse dsn")
	}
	cfg.MaxConns = 1
	for _, opt := range opts {
		opt(cfg)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, errors.Wrap(err, "open pool")
	}

	s := &Store{pool: pool, log: log}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, errors.Wrap(err, "migrate")
	}
	if err := s.seedSources(ctx); err != nil {
		pool.Close()
		return nil, errors.Wrap(err, "seed sources")
	}
	return s, nil
}

// Close releases the pool.
func (s *Store) Close() { s.pool.Close() }

// Pool exposes the underlying pgxpool.Pool. The CSV export and peer-read
// paths do not use it; they open their own sqlx connection (see
// internal/store/export.go).
func (s *Store) Pool() *pgxpool.Pool { return s.pool }

func (s *Store) migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, schemaDDL)
	return err
}

func (s *Store) seedSources(ctx context.Context) error {
	for _, name := range SeedSources {
		_, err := s.pool.Exec(ctx,
			`INSERT INTO sources (name, enabled) VALUES ($1, true)
			 ON CONFLICT (name) DO NOTHING`, name)
		if err != nil {
			return errors.Wrapf(err, "seed source %q", name)
		}
	}
	return nil
}

// schemaDDL matches original_source/pipeline/staging.py's declarative
// models, adapted to plain SQL DDL since this port has no ORM layer.
const schemaDDL = `
CREATE TABLE IF NOT EXISTS sources (
	id SERIAL PRIMARY KEY,
	name TEXT UNIQUE NOT NULL,
	enabled BOOLEAN NOT NULL DEFAULT true,
	last_run_at TIMESTAMPTZ,
	last_run_status TEXT,
	last_run_error TEXT
);

CREATE TABLE IF NOT EXISTS raw_entries (
	id SERIAL PRIMARY KEY,
	source_id INTEGER NOT NULL REFERENCES sources(id),
	raw_name TEXT,
	raw_address TEXT,
	fingerprint TEXT NOT NULL,
	parse_status TEXT NOT NULL DEFAULT 'pending',
	first_seen_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	last_seen_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	UNIQUE (source_id, fingerprint)
);

CREATE TABLE IF NOT EXISTS locations (
	rink_id TEXT PRIMARY KEY,
	rink_name TEXT NOT NULL,
	rink_address TEXT,
	rink_city TEXT NOT NULL,
	rink_state TEXT NOT NULL,
	rink_country TEXT NOT NULL DEFAULT 'US',
	rink_zip TEXT,
	rink_phone TEXT,
	rink_url TEXT,
	rink_tz TEXT,
	rink_status TEXT NOT NULL DEFAULT 'active',
	latitude DOUBLE PRECISION NOT NULL,
	longitude DOUBLE PRECISION NOT NULL,
	data_source TEXT NOT NULL,
	date_created TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS candidates (
	id SERIAL PRIMARY KEY,
	source_id INTEGER NOT NULL REFERENCES sources(id),
	raw_entry_id INTEGER NOT NULL REFERENCES raw_entries(id),
	name TEXT NOT NULL,
	address TEXT,
	address_number TEXT,
	street_name TEXT,
	street_suffix TEXT,
	city TEXT,
	state TEXT,
	zip TEXT,
	latitude DOUBLE PRECISION,
	longitude DOUBLE PRECISION,
	confidence DOUBLE PRECISION NOT NULL DEFAULT 0,
	status TEXT NOT NULL DEFAULT 'unverified',
	location_id TEXT REFERENCES locations(rink_id),
	extra JSONB,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS rejected_entries (
	id SERIAL PRIMARY KEY,
	raw_entry_id INTEGER NOT NULL REFERENCES raw_entries(id),
	reason TEXT NOT NULL,
	error TEXT,
	reviewed BOOLEAN NOT NULL DEFAULT false,
	rejected_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS location_sources (
	id SERIAL PRIMARY KEY,
	location_id TEXT NOT NULL REFERENCES locations(rink_id),
	source_id INTEGER NOT NULL REFERENCES sources(id),
	candidate_id INTEGER REFERENCES candidates(id),
	first_seen_at TIMESTAMPTZ NOT NULL,
	last_seen_at TIMESTAMPTZ NOT NULL,
	is_present BOOLEAN NOT NULL DEFAULT true,
	UNIQUE (location_id, source_id)
);

CREATE TABLE IF NOT EXISTS location_aliases (
	id SERIAL PRIMARY KEY,
	location_id TEXT NOT NULL REFERENCES locations(rink_id),
	alias_name TEXT NOT NULL,
	notes TEXT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	UNIQUE (location_id, alias_name)
);
`
