// Package runner orchestrates one source's end-to-end pipeline pass:
// fetch, fingerprint, normalize, deduplicate, then either geocode or
// source-verify, matching original_source/pipeline/runner.py's
// run_source.
package runner

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/Skatetrax/ice-maker/internal/dedup"
	"github.com/Skatetrax/ice-maker/internal/fetchers"
	"github.com/Skatetrax/ice-maker/internal/fingerprint"
	"github.com/Skatetrax/ice-maker/internal/geocode"
	"github.com/Skatetrax/ice-maker/internal/normalize"
	"github.com/Skatetrax/ice-maker/internal/store"
)

// Stats summarizes one run, with field names matching run_pipeline.py's
// combined stats dict keys (scraped, new, parsed, plus the geocode_*
// counters _run_all reads off run_source/geocode_pending's return).
type Stats struct {
	Scraped         int
	New             int
	Parsed          int
	ParseFailed     int
	Rejected        int
	SourceVerified  int
	GeocodeMatch    int
	GeocodeMismatch int
	GeocodeFailed   int
}

// Options mirrors run_pipeline.py's --scrape-only/--no-geocode/--limit
// flags.
type Options struct {
	ScrapeOnly bool
	NoGeocode  bool
	Limit      int // 0 means unlimited
}

// Runner wires the staging store, geocoder, and dedup thresholds
// together for one pipeline pass.
type Runner struct {
	Store         *store.Store
	Geocoder      *geocode.Client
	Thresholds    dedup.Thresholds
	ConfidenceMin float64
	Log           *zap.Logger
	opts          Options
}

// RunSource fetches every entry f currently lists, fingerprints it to
// skip unchanged content, normalizes and deduplicates what's new, then
// geocodes (or source-verifies, when the source already supplies
// coordinates and a zip) whatever survives — exactly run_source's stage
// order. The dedup pool is candidates only, never promoted Locations:
// matcher.py's find_duplicate at this stage only ever compares a new
// entry against other raw candidates from this and earlier runs, not
// against what's already been promoted (that's promoter.py's concern).
func (r *Runner) RunSource(ctx context.Context, f fetchers.Fetcher) (Stats, error) {
	var stats Stats

	src, err := r.Store.SourceByName(ctx, f.Name())
	if err != nil {
		return stats, err
	}

	entries, err := f.Fetch(ctx)
	if err != nil {
		r.Store.UpdateSourceRunMeta(ctx, src.ID, "failed", err.Error())
		return stats, err
	}
	stats.Scraped = len(entries)

	verifiedCands, unverifiedCands, err := r.Store.VerifiedAndUnverifiedForDedup(ctx)
	if err != nil {
		return stats, err
	}
	verifiedPool := candidatesToEntries(verifiedCands)
	unverifiedPool := candidatesToEntries(unverifiedCands)

	failed := 0
	for i, e := range entries {
		if r.opts.Limit > 0 && i >= r.opts.Limit {
			break
		}

		fp := fingerprint.Compute(src.ID, e.Name, e.Address)
		raw, isNew, err := r.Store.CheckAndInsertRaw(ctx, src.ID, fp, e.Name, e.Address)
		if err != nil {
			failed++
			continue
		}
		if !isNew {
			continue
		}
		stats.New++

		if r.opts.ScrapeOnly {
			continue
		}

		result := r.normalizeEntry(f, e)

		if !parsedOK(f, result) {
			stats.ParseFailed++
			r.Store.UpdateRawEntryParseStatus(ctx, raw.ID, store.RawParseFailed)
			r.Store.InsertRejection(ctx, store.RejectedEntry{
				RawEntryID: raw.ID,
				Reason:     store.RejectReasonParseFailure,
				Error:      "missing required fields: name or street",
			})
			continue
		}
		r.Store.UpdateRawEntryParseStatus(ctx, raw.ID, store.RawParseParsed)
		stats.Parsed++

		srcZip, srcLat, srcLon, hasSourceCoords := sourceCoords(e)
		candZip := result.Tagged.ZipCode
		if candZip == "" {
			candZip = srcZip
		}

		candID, err := r.Store.InsertCandidate(ctx, store.Candidate{
			SourceID:      src.ID,
			RawEntryID:    raw.ID,
			Name:          result.Name,
			Address:       result.Address,
			AddressNumber: result.Tagged.AddressNumber,
			StreetName:    result.Tagged.StreetName,
			StreetSuffix:  result.Tagged.StreetNamePostType,
			City:          result.Tagged.PlaceName,
			State:         result.Tagged.StateName,
			Zip:           candZip,
			Status:        store.CandidateUnverified,
			Extra:         e.Extra,
		})
		if err != nil {
			failed++
			continue
		}

		dedupEntry := dedup.Entry{
			ID:                strconv.FormatInt(candID, 10),
			Name:              result.Name,
			NormalizedAddress: result.Address,
			City:              result.Tagged.PlaceName,
			State:             result.Tagged.StateName,
			HasStreet:         f.HasStreet(),
		}

		if match, found := dedup.FindDuplicate(dedupEntry, verifiedPool, unverifiedPool, r.Thresholds); found {
			stats.Rejected++
			reason := store.RejectReasonSuspectedDuplicate
			if match.Layer == dedup.LayerExactAddress {
				reason = store.RejectReasonDuplicateExact
			}
			r.Store.UpdateCandidateStatus(ctx, candID, store.CandidateDuplicate)
			r.Store.InsertRejection(ctx, store.RejectedEntry{
				RawEntryID: raw.ID,
				Reason:     reason,
				Error:      fmt.Sprintf("Matches candidate %s: %s", match.ID, match.Name),
			})
			continue
		}

		switch {
		case hasSourceCoords:
			stats.SourceVerified++
			if err := r.Store.UpdateCandidateGeocode(ctx, candID, srcLat, srcLon, 1.0, store.CandidateSourceVerified); err != nil {
				continue
			}
			dedupEntry.Latitude, dedupEntry.Longitude, dedupEntry.Verified = srcLat, srcLon, true
			verifiedPool = append(verifiedPool, dedupEntry)

		case !r.opts.NoGeocode:
			outcome, lat, lon, gerr := r.geocodeOne(ctx, candID, result)
			switch {
			case gerr != nil:
				stats.GeocodeFailed++
			case outcome == store.CandidateGeocodeMatch:
				stats.GeocodeMatch++
				dedupEntry.Latitude, dedupEntry.Longitude, dedupEntry.Verified = lat, lon, true
				verifiedPool = append(verifiedPool, dedupEntry)
			case outcome == store.CandidateGeocodeMismatch:
				stats.GeocodeMismatch++
			default:
				stats.GeocodeFailed++
			}

		default:
			unverifiedPool = append(unverifiedPool, dedupEntry)
		}
	}

	status := store.RunStatus(stats.Scraped, stats.New-failed, failed)
	r.Store.UpdateSourceRunMeta(ctx, src.ID, status, "")
	return stats, nil
}

// Options returns the currently configured run options, matching
// run_pipeline.py passing scrape_only/geocode/limit straight through to
// run_source.
func (r *Runner) Options() Options { return r.opts }

func (r *Runner) WithOptions(o Options) *Runner {
	r.opts = o
	return r
}

func (r *Runner) normalizeEntry(f fetchers.Fetcher, e fetchers.Entry) normalize.Result {
	if f.HasStreet() {
		return normalize.Normalize(e.Name, e.Address)
	}
	return normalize.NormalizeWiki(e.Name, e.Address)
}

// parsedOK matches _parse_entry's literal check: a name is always
// required; a source that advertises street addresses must also have
// produced one, or the entry is unusable. Streetless (wiki) sources have
// no such requirement.
func parsedOK(f fetchers.Fetcher, result normalize.Result) bool {
	if result.Name == "" {
		return false
	}
	if f.HasStreet() && result.Tagged.StreetName == "" {
		return false
	}
	return true
}

// sourceCoords pulls the zip/lat/lng a fetcher may already have
// attached to an entry (learntoskate's {'zip','lat','lng'} extra),
// matching run_source's has_source_coords check — present only when all
// three are non-empty and numeric.
func sourceCoords(e fetchers.Entry) (zip string, lat, lon float64, ok bool) {
	zip = e.Extra["zip"]
	latStr := e.Extra["lat"]
	lonStr := e.Extra["lng"]
	if zip == "" || latStr == "" || lonStr == "" {
		return zip, 0, 0, false
	}
	latVal, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return zip, 0, 0, false
	}
	lonVal, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return zip, 0, 0, false
	}
	return zip, latVal, lonVal, true
}

// geocodeOne resolves result's address against the geocoder, scores
// every candidate result, and records whichever matches best. It
// returns the coordinates alongside the status so RunSource can append
// the candidate to the in-run verified pool without a round-trip read.
func (r *Runner) geocodeOne(ctx context.Context, candID int64, result normalize.Result) (store.CandidateStatus, float64, float64, error) {
	query := result.Address
	results, err := r.Geocoder.Search(ctx, query)
	if err != nil {
		r.Store.UpdateCandidateStatus(ctx, candID, store.CandidateGeocodeFailed)
		return store.CandidateGeocodeFailed, 0, 0, err
	}
	if len(results) == 0 {
		r.Store.UpdateCandidateStatus(ctx, candID, store.CandidateGeocodeFailed)
		return store.CandidateGeocodeFailed, 0, 0, nil
	}

	submitted := geocode.SubmittedAddress{
		StreetName: result.Tagged.StreetName,
		PlaceName:  result.Tagged.PlaceName,
		StateName:  result.Tagged.StateName,
		ZipCode:    result.Tagged.ZipCode,
	}
	best := results[0]
	bestScore := geocode.Score(best, submitted)
	for _, cand := range results[1:] {
		if s := geocode.Score(cand, submitted); s > bestScore {
			best, bestScore = cand, s
		}
	}

	lat, lon, perr := best.ParseLatLon()
	if perr != nil {
		r.Store.UpdateCandidateStatus(ctx, candID, store.CandidateGeocodeFailed)
		return store.CandidateGeocodeFailed, 0, 0, perr
	}

	status := store.CandidateGeocodeMismatch
	if bestScore >= r.ConfidenceMin {
		status = store.CandidateGeocodeMatch
	}
	if err := r.Store.UpdateCandidateGeocode(ctx, candID, lat, lon, bestScore, status); err != nil {
		return store.CandidateGeocodeFailed, 0, 0, err
	}
	return status, lat, lon, nil
}

func candidatesToEntries(cands []store.Candidate) []dedup.Entry {
	out := make([]dedup.Entry, 0, len(cands))
	for _, c := range cands {
		var lat, lon float64
		if c.Latitude != nil {
			lat = *c.Latitude
		}
		if c.Longitude != nil {
			lon = *c.Longitude
		}
		out = append(out, dedup.Entry{
			ID:                strconv.FormatInt(c.ID, 10),
			Name:              c.Name,
			NormalizedAddress: c.Address,
			City:              c.City,
			State:             c.State,
			HasStreet:         c.Address != "",
			Latitude:          lat,
			Longitude:         lon,
			Verified: c.Status == store.CandidateGeocodeMatch ||
				c.Status == store.CandidateSourceVerified ||
				c.Status == store.CandidateHumanApproved,
		})
	}
	return out
}
