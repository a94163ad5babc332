// Package fetchers defines the pluggable boundary between this module
// and any per-directory scraper. No scraper implementations ship here —
// per spec.md's Non-goals, this module only defines the interface a
// scraper must satisfy to feed the runner; sk8stuff/arena_guide/
// learntoskate/fandom_wiki-specific fetching logic lives outside this
// module's scope.
package fetchers

import "context"

// Entry is one fetched, not-yet-parsed row: a raw name/address pair plus
// whatever source-specific extras the scraper captured, matching
// original_source/pipeline/runner.py's per-source dicts
// ({"name": ..., "address": ..., "_extra": {...}}).
type Entry struct {
	Name    string
	Address string // empty for streetless (wiki-style) sources
	Extra   map[string]string
}

// Fetcher is the contract a per-source scraper implements. Fetch
// streams every currently-listed entry for one run; HasStreet reports
// whether this source's entries carry a parseable street address (false
// for wiki-style directories, which only ever supply a name and a
// "City, State").
type Fetcher interface {
	// Name is the source's row in the sources table (e.g. "sk8stuff").
	Name() string

	// HasStreet reports whether entries from this source include a
	// street address line, or are streetless (wiki-style).
	HasStreet() bool

	// Fetch streams all currently-listed entries. It should return
	// promptly on ctx cancellation.
	Fetch(ctx context.Context) ([]Entry, error)
}
