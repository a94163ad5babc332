// Package peerpush pushes ice-maker's directory into the Skatetrax peer
// database and pulls ice_time confirmations back, matching
// original_source/pipeline/skatetrax_push.py and ice_time_sync.py.
package peerpush

import (
	"context"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/Skatetrax/ice-maker/internal/store"
)

// PushStats mirrors skatetrax_push.py's push_locations stats dict keys.
type PushStats struct {
	IcemakerActive    int
	AlreadyInSkatetrax int
	Updated           int
	Inserted          int
	AliasesCreated    int
	SkippedNoZip      int
	Errors            int
}

// Pusher pushes active ice-maker locations into the Skatetrax peer
// database.
type Pusher struct {
	Store     *store.Store
	PeerDB    *sqlx.DB
	Log       *zap.Logger
}

type peerLocation struct {
	RinkID  string `db:"rink_id"`
	RinkName string `db:"rink_name"`
}

// Push pushes every active, zip-having ice-maker location into
// Skatetrax: existing rows get their address fields updated but keep
// their curated name/phone/url/tz; new rink_ids are inserted whole. Name
// mismatches on existing rows are recorded as local aliases, never
// overwritten on the peer side. dryRun previews without writing.
func (p *Pusher) Push(ctx context.Context, dryRun bool) (PushStats, error) {
	var stats PushStats

	locs, err := p.Store.ActiveLocationsWithStatus(ctx, "active")
	if err != nil {
		return stats, err
	}
	stats.IcemakerActive = len(locs)

	var pushable []store.Location
	for _, l := range locs {
		if l.Zip == "" {
			stats.SkippedNoZip++
			continue
		}
		pushable = append(pushable, l)
	}

	var existing []peerLocation
	if err := p.PeerDB.SelectContext(ctx, &existing, `SELECT rink_id, rink_name FROM locations`); err != nil {
		return stats, errors.Wrap(err, "query peer locations")
	}
	stats.AlreadyInSkatetrax = len(existing)

	byID := make(map[string]string, len(existing))
	for _, e := range existing {
		byID[e.RinkID] = e.RinkName
	}

	type aliasQueueItem struct {
		locationID, aliasName string
	}
	var aliasQueue []aliasQueueItem

	for _, l := range pushable {
		peerName, found := byID[l.RinkID]
		if found {
			nameDiffers := nameMismatch(peerName, l.Name)

			if dryRun {
				stats.Updated++
				if nameDiffers {
					stats.AliasesCreated++
				}
				continue
			}

			if _, err := p.PeerDB.ExecContext(ctx,
				`UPDATE locations SET rink_address=$2, rink_city=$3, rink_state=$4, rink_country=$5, rink_zip=$6 WHERE rink_id=$1`,
				l.RinkID, l.Address, l.City, l.State, l.Country, l.Zip); err != nil {
				stats.Errors++
				continue
			}
			stats.Updated++
			if nameDiffers {
				aliasQueue = append(aliasQueue, aliasQueueItem{l.RinkID, l.Name})
			}
			continue
		}

		if dryRun {
			stats.Inserted++
			continue
		}

		if _, err := p.PeerDB.ExecContext(ctx,
			`INSERT INTO locations (rink_id, rink_name, rink_address, rink_city, rink_state, rink_country, rink_zip, data_source, date_created)
			 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
			l.RinkID, l.Name, l.Address, l.City, l.State, l.Country, l.Zip, l.DataSource, time.Now().UTC()); err != nil {
			stats.Errors++
			continue
		}
		stats.Inserted++
	}

	if !dryRun {
		for _, a := range aliasQueue {
			created, err := p.Store.CreateAlias(ctx, a.locationID, a.aliasName, "auto: push name mismatch")
			if err != nil {
				stats.Errors++
				continue
			}
			if created {
				stats.AliasesCreated++
			}
		}
	}

	return stats, nil
}

// nameMismatch reports whether the Skatetrax peer's name for a rink
// disagrees with ice-maker's curated name, ignoring case and surrounding
// whitespace. Either side being blank is not a mismatch.
func nameMismatch(peerName, localName string) bool {
	return peerName != "" && localName != "" &&
		!strings.EqualFold(strings.TrimSpace(peerName), strings.TrimSpace(localName))
}
