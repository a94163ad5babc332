package runner

import (
	"context"

	"github.com/Skatetrax/ice-maker/internal/normalize"
	"github.com/Skatetrax/ice-maker/internal/store"
)

// GeocodePending re-attempts geocoding for every unverified candidate
// that has a street address, optionally scoped to one source, matching
// runner.py's geocode_pending. Streetless candidates are skipped
// entirely — they have no address to geocode.
func (r *Runner) GeocodePending(ctx context.Context, sourceID *int64) (Stats, error) {
	var stats Stats

	pending, err := r.Store.CandidatesByStatus(ctx, store.CandidateUnverified, sourceID)
	if err != nil {
		return stats, err
	}

	for _, c := range pending {
		if c.Address == "" {
			continue
		}

		result := normalize.Result{
			Name:    c.Name,
			Address: c.Address,
			Tagged: normalize.Tagged{
				AddressNumber:      c.AddressNumber,
				StreetName:         c.StreetName,
				StreetNamePostType: c.StreetSuffix,
				PlaceName:          c.City,
				StateName:          c.State,
				ZipCode:            c.Zip,
			},
		}

		outcome, _, _, gerr := r.geocodeOne(ctx, c.ID, result)
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
