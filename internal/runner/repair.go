package runner

import (
	"context"

	"github.com/Skatetrax/ice-maker/internal/normalize"
	"github.com/Skatetrax/ice-maker/internal/store"
)

// RepairFailed re-normalizes and re-attempts geocoding for every
// candidate stuck in geocode_failed, matching runner.py's
// repair_geocode_failed — used after a parser bugfix, without
// re-scraping the source.
func (r *Runner) RepairFailed(ctx context.Context) (Stats, error) {
	var stats Stats

	failed, err := r.Store.CandidatesByStatus(ctx, store.CandidateGeocodeFailed, nil)
	if err != nil {
		return stats, err
	}

	for _, c := range failed {
		if c.Address == "" {
			continue
		}
		name, address := c.Name, c.Address
		if raw, ok, err := r.Store.RawEntryByID(ctx, c.RawEntryID); err != nil {
			return stats, err
		} else if ok {
			name, address = raw.RawName, raw.RawAddress
		}
		reNormalized := normalize.Normalize(name, address)

		outcome, _, _, gerr := r.geocodeOne(ctx, c.ID, reNormalized)
		switch {
		case gerr != nil:
			stats.GeocodeFailed++
		case outcome == store.CandidateGeocodeMatch:
			stats.GeocodeMatch++
		case outcome == store.CandidateGeocodeMismatch:
			stats.GeocodeMismatch++
		default:
			stats.GeocodeFailed++
		}
	}
	return stats, nil
}
