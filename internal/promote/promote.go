// Package promote runs the three-phase promotion pipeline that turns
// verified candidates into canonical Locations, matching
// original_source/pipeline/promoter.py's run_promotion.
package promote

import (
	"context"
	"regexp"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Skatetrax/ice-maker/internal/dedup"
	"github.com/Skatetrax/ice-maker/internal/store"
)

// BatchSize matches promoter.py's BATCH_SIZE=100 commit cadence. This
// port commits per-row via pgx rather than batching SQLAlchemy session
// flushes, and the promotion phases do not reference this constant.
const BatchSize = 100

// Stats mirrors run_pipeline.py's promo_stats dict key names
// (phase1_new_locations, phase1_linked_existing, total_locations) plus
// the finer-grained phase1/phase2/phase3 outcome counts promoter.py logs
// but run_pipeline.py otherwise drops on the floor.
type Stats struct {
	Phase1NewLocations         int
	Phase1LinkedExisting       int
	Phase1SkippedNoZip         int
	Phase1AdoptedSkatetraxUUID int
	Phase2Linked               int
	Phase2PrimaryNotPromoted   int
	Phase2ParseFailed          int
	Phase3Linked               int
	Phase3NoMatch              int
	TotalLocations             int
}

// Promoter wires the staging store and the Skatetrax peer lookup
// together.
type Promoter struct {
	Store      *store.Store
	Peer       PeerLookup
	Thresholds dedup.Thresholds
	Log        *zap.Logger
}

// PeerLookup resolves an existing Skatetrax rink UUID for a
// name/address, so promotion adopts the peer system's identifier
// instead of minting a new one whenever a rink already exists there —
// see internal/promote/peer.go.
type PeerLookup interface {
	FindMatch(ctx context.Context, name, city, state string) (rinkID string, found bool, err error)
}

// Run executes all three phases in order and returns the combined
// stats, matching run_promotion's orchestration.
func (p *Promoter) Run(ctx context.Context) (Stats, error) {
	var stats Stats

	if err := p.phase1PromoteVerified(ctx, &stats); err != nil {
		return stats, err
	}
	if err := p.phase2LinkDuplicates(ctx, &stats); err != nil {
		return stats, err
	}
	if err := p.phase3LinkWiki(ctx, &stats); err != nil {
		return stats, err
	}

	locs, err := p.Store.ActiveLocations(ctx)
	if err != nil {
		return stats, err
	}
	stats.TotalLocations = len(locs)
	return stats, nil
}

// phase1PromoteVerified promotes every not-yet-linked geocode_match/
// source_verified candidate: link it to an existing matching Location
// if one exists among locations that are neither merged nor disabled (see
// DESIGN.md's Open Question on this exact filter), otherwise mint (or
// adopt from Skatetrax) a new Location. Candidates with no zip are
// skipped entirely — promoter.py refuses to promote a rink it can't
// place in a zip-scoped region, matching promote_verified's zip gate.
func (p *Promoter) phase1PromoteVerified(ctx context.Context, stats *Stats) error {
	verified, err := p.Store.CandidatesByStatusesUnlinked(ctx, []store.CandidateStatus{
		store.CandidateGeocodeMatch, store.CandidateSourceVerified,
	})
	if err != nil {
		return err
	}
	active, err := p.Store.ActiveLocations(ctx)
	if err != nil {
		return err
	}
	activePool := toDedupEntries(active)

	for _, c := range verified {
		if c.Zip == "" {
			stats.Phase1SkippedNoZip++
			continue
		}

		candEntry := candidateToDedupEntry(c)

		if match, found := dedup.FindDuplicate(candEntry, activePool, nil, p.Thresholds); found {
			if err := p.linkCandidateToLocation(ctx, c, match.ID); err != nil {
				return err
			}
			stats.Phase1LinkedExisting++
			continue
		}

		rinkID, fromPeer, err := p.resolveRinkID(ctx, c)
		if err != nil {
			return err
		}

		if fromPeer {
			if loc, ok, err := p.Store.LocationByID(ctx, rinkID); err != nil {
				return err
			} else if ok {
				if err := p.linkCandidateToLocation(ctx, c, loc.RinkID); err != nil {
					return err
				}
				stats.Phase1LinkedExisting++
				continue
			}
		}

		loc := store.Location{
			RinkID:     rinkID,
			Name:       c.Name,
			Address:    c.Address,
			City:       c.City,
			State:      c.State,
			Country:    "US",
			Zip:        c.Zip,
			Status:     "active",
			DataSource: "icemaker",
			CreatedAt:  time.Now().UTC(),
		}
		if c.Latitude != nil {
			loc.Latitude = *c.Latitude
		}
		if c.Longitude != nil {
			loc.Longitude = *c.Longitude
		}
		if err := p.Store.InsertLocation(ctx, loc); err != nil {
			return err
		}
		if err := p.linkCandidateToLocation(ctx, c, rinkID); err != nil {
			return err
		}

		activePool = append(activePool, dedup.Entry{
			ID: rinkID, Name: loc.Name, NormalizedAddress: loc.Address,
			City: loc.City, State: loc.State, HasStreet: loc.Address != "",
			Latitude: loc.Latitude, Longitude: loc.Longitude, Verified: true,
		})
		stats.Phase1NewLocations++
		if fromPeer {
			stats.Phase1AdoptedSkatetraxUUID++
		}
	}
	return nil
}

// linkCandidateToLocation records the location_sources observation and
// sets the candidate's location_id — the single field that marks a
// candidate promoted/linked; CandidateStatus itself never changes to a
// "promoted" value (see DESIGN.md).
func (p *Promoter) linkCandidateToLocation(ctx context.Context, c store.Candidate, locationID string) error {
	now := time.Now().UTC()
	if err := p.Store.UpsertLocationSource(ctx, store.LocationSource{
		LocationID: locationID, SourceID: c.SourceID, CandidateID: &c.ID,
		FirstSeenAt: now, LastSeenAt: now,
	}); err != nil {
		return err
	}
	return p.Store.SetCandidateLocation(ctx, c.ID, locationID)
}

// resolveRinkID adopts an existing Skatetrax UUID when the peer system
// already knows about this rink, so downstream identifiers stay
// aligned; otherwise it mints a fresh UUID locally. fromPeer tells the
// caller to check for an already-promoted local Location under that
// adopted UUID before minting a new row.
func (p *Promoter) resolveRinkID(ctx context.Context, c store.Candidate) (id string, fromPeer bool, err error) {
	if p.Peer != nil {
		if peerID, found, err := p.Peer.FindMatch(ctx, c.Name, c.City, c.State); err != nil {
			return "", false, err
		} else if found {
			return peerID, true, nil
		}
	}
	return uuid.NewString(), false, nil
}

// matchCandidateRe extracts the primary candidate id out of rejection
// details produced by internal/runner's dedup rejection
// ("Matches candidate <id>: <name>").
var matchCandidateRe = regexp.MustCompile(`Matches candidate (\d+):`)

// phase2LinkDuplicates re-examines duplicate candidates not yet linked
// to a Location: each duplicate's RejectedEntry names the candidate it
// matched; if that primary has since been promoted, the duplicate links
// to the same Location. It never creates a new Location, matching
// promoter.py's link_duplicates semantics.
func (p *Promoter) phase2LinkDuplicates(ctx context.Context, stats *Stats) error {
	dups, err := p.Store.CandidatesByStatusesUnlinked(ctx, []store.CandidateStatus{store.CandidateDuplicate})
	if err != nil {
		return err
	}

	for _, c := range dups {
		rej, ok, err := p.Store.RejectionByRawEntryID(ctx, c.RawEntryID)
		if err != nil {
			return err
		}
		if !ok {
			stats.Phase2ParseFailed++
			continue
		}

		m := matchCandidateRe.FindStringSubmatch(rej.Error)
		if m == nil {
			stats.Phase2ParseFailed++
			continue
		}
		primaryID, perr := strconv.ParseInt(m[1], 10, 64)
		if perr != nil {
			stats.Phase2ParseFailed++
			continue
		}

		primary, ok, err := p.Store.CandidateByID(ctx, primaryID)
		if err != nil {
			return err
		}
		if !ok || primary.LocationID == nil {
			stats.Phase2PrimaryNotPromoted++
			continue
		}

		if err := p.linkCandidateToLocation(ctx, c, *primary.LocationID); err != nil {
			return err
		}
		stats.Phase2Linked++
	}
	return nil
}

// phase3LinkWiki handles the streetless-entry analogue of phase 2:
// unverified candidates with no address, matched against active
// Locations by the same two-layer check phase 1 uses. It links when a
// match is found and never creates a Location, matching promoter.py's
// link_wiki_entries.
func (p *Promoter) phase3LinkWiki(ctx context.Context, stats *Stats) error {
	cands, err := p.Store.CandidatesByStatusesUnlinked(ctx, []store.CandidateStatus{store.CandidateUnverified})
	if err != nil {
		return err
	}
	active, err := p.Store.ActiveLocations(ctx)
	if err != nil {
		return err
	}
	activePool := toDedupEntries(active)

	for _, c := range cands {
		if c.Address != "" {
			continue // this phase only concerns itself with streetless entries
		}

		candEntry := candidateToDedupEntry(c)
		match, found := dedup.FindDuplicate(candEntry, activePool, nil, p.Thresholds)
		if !found {
			stats.Phase3NoMatch++
			continue
		}

		if err := p.linkCandidateToLocation(ctx, c, match.ID); err != nil {
			return err
		}
		stats.Phase3Linked++
	}
	return nil
}

func toDedupEntries(locs []store.Location) []dedup.Entry {
	out := make([]dedup.Entry, 0, len(locs))
	for _, l := range locs {
		out = append(out, dedup.Entry{
			ID: l.RinkID, Name: l.Name, NormalizedAddress: l.Address,
			City: l.City, State: l.State, HasStreet: l.Address != "",
			Latitude: l.Latitude, Longitude: l.Longitude, Verified: true,
		})
	}
	return out
}

// candidateToDedupEntry leaves the candidate's coordinates out, so
// Location matching uses only the exact-address and fuzzy-name layers.
func candidateToDedupEntry(c store.Candidate) dedup.Entry {
	return dedup.Entry{
		ID: strconv.FormatInt(c.ID, 10), Name: c.Name, NormalizedAddress: c.Address,
		City: c.City, State: c.State, HasStreet: c.Address != "",
	}
}
