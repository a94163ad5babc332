package geocode

import (
	"strconv"
	"strings"

	"github.com/Skatetrax/ice-maker/internal/normalize"
)

// SubmittedAddress is the address components the geocoder scores each
// Nominatim candidate against, matching geocoder.py's _score_address
// inputs.
type SubmittedAddress struct {
	StreetName string
	PlaceName  string
	StateName  string
	ZipCode    string
}

// Score rates how well candidate matches submitted, as the mean of the
// sub-scores for whichever components are present on both sides
// (matching _score_address: a component missing from either side is
// simply excluded from the average rather than counted as zero).
// Street/city names are compared with the Ratcliff/Obershelp Ratio;
// state is compared via StateAbbrev-normalized exact match; zip is
// compared via exact prefix match (5-digit vs 5-digit, ignoring any
// +4 suffix on either side).
func Score(candidate NominatimResult, submitted SubmittedAddress) float64 {
	var scores []float64

	if submitted.StreetName != "" {
		if road, ok := candidate.Address["road"]; ok {
			scores = append(scores, normalize.Ratio(strings.ToUpper(submitted.StreetName), strings.ToUpper(road)))
		}
	}

	if submitted.PlaceName != "" {
		candCity := firstNonEmpty(candidate.Address["city"], candidate.Address["town"], candidate.Address["village"])
		if candCity != "" {
			scores = append(scores, normalize.Ratio(strings.ToUpper(submitted.PlaceName), strings.ToUpper(candCity)))
		}
	}

	if submitted.StateName != "" {
		if candState, ok := candidate.Address["state"]; ok && candState != "" {
			subAbbr := normalize.StateAbbrev(submitted.StateName)
			candAbbr := normalize.StateAbbrev(candState)
			if subAbbr != "" && subAbbr == candAbbr {
				scores = append(scores, 1.0)
			} else {
				scores = append(scores, 0.0)
			}
		}
	}

	if submitted.ZipCode != "" {
		if candZip, ok := candidate.Address["postcode"]; ok && candZip != "" {
			if zip5(submitted.ZipCode) == zip5(candZip) {
				scores = append(scores, 1.0)
			} else {
				scores = append(scores, 0.0)
			}
		}
	}

	if len(scores) == 0 {
		return 0
	}
	var sum float64
	for _, s := range scores {
		sum += s
	}
	return sum / float64(len(scores))
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func zip5(z string) string {
	if len(z) >= 5 {
		return z[:5]
	}
	return z
}

// ParseLatLon converts a Nominatim result's string lat/lon into floats.
func (r NominatimResult) ParseLatLon() (lat, lon float64, err error) {
	lat, err = strconv.ParseFloat(r.Lat, 64)
	if err != nil {
		return 0, 0, err
	}
	lon, err = strconv.ParseFloat(r.Lon, 64)
	if err != nil {
		return 0, 0, err
	}
	return lat, lon, nil
}
