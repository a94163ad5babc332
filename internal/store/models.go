// Package store is the staging database layer: Sources, RawEntries,
// Candidates, RejectedEntries, Locations, LocationSources and
// LocationAliases, matching original_source/pipeline/staging.py's
// SQLAlchemy models table-for-table.
package store

import "time"

// Source is one directory/feed this pipeline scrapes, plus the
// synthetic "skatetrax" source used for peer-confirmation links.
type Source struct {
	ID            int64
	Name          string
	Enabled       bool
	LastRunAt     *time.Time
	LastRunStatus string // "success", "partial", "failed", or "" if never run
	LastRunError  string
}

// RawParseStatus tracks whether a raw entry's captured name/address has
// been successfully turned into a Candidate yet, matching
// original_source/pipeline/staging.py's RawEntries.parse_status.
type RawParseStatus string

const (
	RawParsePending RawParseStatus = "pending"
	RawParseParsed  RawParseStatus = "parsed"
	RawParseFailed  RawParseStatus = "failed"
)

// RawEntry records a fetched payload's fingerprint, for incremental
// re-scrape detection (a repeat fingerprint means nothing changed), plus
// the immutable raw name/address text runner.py's repair_geocode_failed
// re-parses from when a formatter bug is fixed.
type RawEntry struct {
	ID          int64
	SourceID    int64
	RawName     string
	RawAddress  string
	Fingerprint string
	ParseStatus RawParseStatus
	FirstSeenAt time.Time
	LastSeenAt  time.Time
}

// CandidateStatus enumerates the lifecycle of a parsed, not-yet-promoted
// rink entry, matching original_source/pipeline/staging.py's
// Candidates.verification_status values exactly.
type CandidateStatus string

const (
	CandidateUnverified      CandidateStatus = "unverified"
	CandidateGeocodeMatch    CandidateStatus = "geocode_match"
	CandidateGeocodeMismatch CandidateStatus = "geocode_mismatch"
	CandidateGeocodeFailed   CandidateStatus = "geocode_failed"
	CandidateSourceVerified  CandidateStatus = "source_verified"
	CandidateDuplicate       CandidateStatus = "duplicate"
	CandidateHumanApproved   CandidateStatus = "human_approved"
)

// Candidate is a normalized entry awaiting geocode verification and
// promotion into Locations. A non-nil LocationID means this candidate
// has been promoted (or linked, for duplicates/wiki entries) and is
// never re-geocoded or re-matched again.
type Candidate struct {
	ID            int64
	SourceID      int64
	RawEntryID    int64
	Name          string
	Address       string // full street address line, empty for streetless (wiki) entries
	AddressNumber string
	StreetName    string
	StreetSuffix  string
	City          string
	State         string
	Zip           string
	Latitude      *float64
	Longitude     *float64
	Confidence    float64
	Status        CandidateStatus
	LocationID    *string
	Extra         map[string]string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// RejectedEntry is a raw entry that failed parsing, was flagged a
// duplicate, or failed geocode verification, matching
// original_source/pipeline/staging.py's RejectedEntries: Reason is the
// fixed category the promoter's link-duplicates phase filters on, Error
// is the free-text detail (including, for dedup rejections,
// the "Matches candidate <id>: <name>" text Phase 2 parses back out).
type RejectedEntry struct {
	ID         int64
	RawEntryID int64
	Reason     string
	Error      string
	Reviewed   bool
	RejectedAt time.Time
}

// Rejection reason categories, matching runner.py/matcher.py's literal
// rejection_reason values.
const (
	RejectReasonParseFailure       = "parse_failure"
	RejectReasonDuplicateExact     = "duplicate_address_exact"
	RejectReasonSuspectedDuplicate = "suspected_duplicate"
	RejectReasonGeocodeMismatch    = "geocode_mismatch"
)

// Location is a promoted, canonical rink entry — the row ice-maker's
// downstream consumers (Skatetrax) ultimately care about.
type Location struct {
	RinkID     string // UUID, possibly adopted from Skatetrax
	Name       string
	Address    string
	City       string
	State      string
	Country    string
	Zip        string
	Phone      string
	URL        string
	Timezone   string
	Status     string // "active", "seasonal", "closed_permanently", "merged", "disabled"
	Latitude   float64
	Longitude  float64
	DataSource string
	CreatedAt  time.Time
}

// LocationSource links a Location to every Source that has ever
// confirmed it, tracking the observation window.
type LocationSource struct {
	ID          int64
	LocationID  string
	SourceID    int64
	CandidateID *int64
	FirstSeenAt time.Time
	LastSeenAt  time.Time
	IsPresent   bool
}

// LocationAlias records an alternate name a Location has been observed
// under (merge survivors, push-time name mismatches, renames).
type LocationAlias struct {
	ID         int64
	LocationID string
	AliasName  string
	Notes      string
	CreatedAt  time.Time
}

// SeedSources matches original_source/pipeline/staging.py's SEED_SOURCES.
var SeedSources = []string{
	"sk8stuff", "arena_guide", "learntoskate", "fandom_wiki", "skatetrax",
}
