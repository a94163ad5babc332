package promote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-faster/errors"
	"github.com/jmoiron/sqlx"

	"github.com/Skatetrax/ice-maker/internal/normalize"
)

// skatetraxLocation is the subset of the peer locations table promotion
// needs to match against, mirroring promoter.py's
// _load_skatetrax_locations projection.
type skatetraxLocation struct {
	RinkID string `json:"rink_id" db:"rink_id"`
	Name   string `json:"rink_name" db:"rink_name"`
	City   string `json:"rink_city" db:"rink_city"`
	State  string `json:"rink_state" db:"rink_state"`
}

// HTTPPeer looks up existing Skatetrax rinks over its HTTP API, with
// retry/backoff (the peer API is a shared service outside this
// pipeline's control, unlike Nominatim's own fixed rate limit — hence
// backoff here and not in internal/geocode; see DESIGN.md).
type HTTPPeer struct {
	BaseURL    string
	HTTPClient *http.Client
}

func (p *HTTPPeer) FindMatch(ctx context.Context, name, city, state string) (string, bool, error) {
	locs, err := p.fetchWithRetry(ctx)
	if err != nil {
		return "", false, err
	}
	return findMatchingLocation(locs, name, city, state)
}

func (p *HTTPPeer) fetchWithRetry(ctx context.Context) ([]skatetraxLocation, error) {
	var locs []skatetraxLocation

	op := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.BaseURL+"/locations", nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		hc := p.HTTPClient
		if hc == nil {
			hc = http.DefaultClient
		}
		resp, err := hc.Do(req)
		if err != nil {
			return err // transient, retry
		}
		defer resp.Body.Close()
		if resp.StatusCode >= 500 {
			return fmt.Errorf("skatetrax API returned %d", resp.StatusCode)
		}
		if resp.StatusCode != http.StatusOK {
			return backoff.Permanent(fmt.Errorf("skatetrax API returned %d", resp.StatusCode))
		}
		return json.NewDecoder(resp.Body).Decode(&locs)
	}

	bo := backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 3)
	if err := backoff.Retry(op, bo); err != nil {
		return nil, errors.Wrap(err, "fetch skatetrax locations")
	}
	return locs, nil
}

// DBPeer looks up existing Skatetrax rinks directly against its
// database. cmd/icemaker picks it once, at startup, only when the
// configured SKATETRAX_API_URL is empty and SKATETRAX_DB_URL is set; an
// unreachable API does not switch a run over to it.
type DBPeer struct {
	DB *sqlx.DB
}

func (p *DBPeer) FindMatch(ctx context.Context, name, city, state string) (string, bool, error) {
	var locs []skatetraxLocation
	err := p.DB.SelectContext(ctx, &locs,
		`SELECT rink_id, rink_name, rink_city, rink_state FROM locations`)
	if err != nil {
		return "", false, errors.Wrap(err, "query skatetrax locations")
	}
	return findMatchingLocation(locs, name, city, state)
}

// findMatchingLocation is shared by both peer-lookup transports,
// matching promoter.py's _find_skatetrax_match: same city/state plus a
// high-confidence fuzzy name match.
func findMatchingLocation(locs []skatetraxLocation, name, city, state string) (string, bool, error) {
	const threshold = 0.85
	var bestID string
	var bestScore float64
	for _, l := range locs {
		if !strings.EqualFold(l.City, city) || !strings.EqualFold(l.State, state) {
			continue
		}
		score := normalize.Ratio(strings.ToUpper(l.Name), strings.ToUpper(name))
		if score > bestScore {
			bestScore, bestID = score, l.RinkID
		}
	}
	if bestScore >= threshold {
		return bestID, true, nil
	}
	return "", false, nil
}
