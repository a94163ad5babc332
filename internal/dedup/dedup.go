// Package dedup implements the three-layer duplicate check new entries
// go through before being treated as a new rink, matching
// original_source/pipeline/matcher.py's find_duplicate.
package dedup

import (
	"strings"

	"github.com/Skatetrax/ice-maker/internal/normalize"
)

// Entry is the minimal shape dedup compares: either an existing,
// possibly-verified candidate/location, or the new entry being checked
// against the pool.
type Entry struct {
	ID                string
	Name              string
	NormalizedAddress string // output of NormalizeForDedup; "" if streetless
	City              string
	State             string
	HasStreet         bool
	Latitude          float64
	Longitude         float64
	Verified          bool
}

// Thresholds are the tunables from internal/config, passed explicitly
// rather than read from package globals.
type Thresholds struct {
	FuzzyNameThreshold         float64
	FuzzyNameThresholdNoStreet float64
	GeoProximityMiles          float64
}

// Layer names the matching layer a duplicate was found at.
type Layer string

const (
	LayerExactAddress Layer = "exact_address"
	LayerFuzzyName    Layer = "fuzzy_name"
	LayerGeoProximity Layer = "geo_proximity"
)

// Match is the duplicate found, if any. Name carries the matched entry's
// display name so callers can build a human-readable rejection detail
// (runner.go's "Matches candidate <id>: <name>").
type Match struct {
	ID    string
	Name  string
	Layer Layer
	Score float64
}

// NormalizeForDedup produces the canonical key used for Layer 1's exact
// match: the address lowercased, punctuation stripped, and whitespace
// collapsed, matching matcher.py's _normalize_for_dedup.
func NormalizeForDedup(address string) string {
	s := strings.ToLower(strings.TrimSpace(address))
	var b strings.Builder
	lastSpace := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastSpace = false
		case r == ' ' || r == ',' || r == '.':
			if !lastSpace {
				b.WriteRune(' ')
				lastSpace = true
			}
		}
	}
	return strings.TrimSpace(b.String())
}

// FindDuplicate checks candidate against verifiedPool and unverifiedPool,
// in layer order: exact normalized-address match, fuzzy-name-in-locality
// match, then geographic proximity. Layer 2 is checked against
// verifiedPool alone unless either side lacks a street address, in which
// case it is checked against the "extended pool" (verified ∪
// unverified) — streetless (wiki) entries otherwise could never match
// anything, since they will never produce an exact address key or valid
// coordinates.
func FindDuplicate(candidate Entry, verifiedPool, unverifiedPool []Entry, th Thresholds) (Match, bool) {
	if candidate.HasStreet {
		key := NormalizeForDedup(candidate.NormalizedAddress)
		for _, e := range verifiedPool {
			if e.HasStreet && NormalizeForDedup(e.NormalizedAddress) == key && sameLocality(candidate, e) {
				return Match{ID: e.ID, Name: e.Name, Layer: LayerExactAddress, Score: 1.0}, true
			}
		}
	}

	pool := append([]Entry{}, verifiedPool...)
	for _, e := range unverifiedPool {
		if !candidate.HasStreet || !e.HasStreet {
			pool = append(pool, e)
		}
	}

	var best Match
	found := false
	for _, e := range pool {
		if !sameLocality(candidate, e) {
			continue
		}
		threshold := th.FuzzyNameThreshold
		if !candidate.HasStreet || !e.HasStreet {
			threshold = th.FuzzyNameThresholdNoStreet
		}
		score := normalize.Ratio(strings.ToUpper(candidate.Name), strings.ToUpper(e.Name))
		if score >= threshold && (!found || score > best.Score) {
			best = Match{ID: e.ID, Name: e.Name, Layer: LayerFuzzyName, Score: score}
			found = true
		}
	}
	if found {
		return best, true
	}

	if candidate.Latitude != 0 || candidate.Longitude != 0 {
		for _, e := range verifiedPool {
			if e.Latitude == 0 && e.Longitude == 0 {
				continue
			}
			d := HaversineMiles(candidate.Latitude, candidate.Longitude, e.Latitude, e.Longitude)
			if d <= th.GeoProximityMiles {
				return Match{ID: e.ID, Name: e.Name, Layer: LayerGeoProximity, Score: d}, true
			}
		}
	}

	return Match{}, false
}

func sameLocality(a, b Entry) bool {
	return strings.EqualFold(a.City, b.City) && strings.EqualFold(a.State, b.State)
}
