package peerpush

import (
	"context"
	"time"

	"github.com/go-faster/errors"

	"github.com/Skatetrax/ice-maker/internal/store"
)

// SyncStats mirrors ice_time_sync.py's sync_ice_time stats dict keys.
type SyncStats struct {
	TotalRinksInIceTime   int
	Confirmed             int
	MissingFromDirectory  int
}

type rinkLastSkated struct {
	RinkID     string    `db:"rink_id"`
	LastSkated time.Time `db:"last_skated"`
}

// SyncIceTime reads distinct rink_ids out of the Skatetrax peer
// database's ice_time table and records each as a LocationSources row
// for the synthetic "skatetrax" source — a rink appearing there is proof
// a skater was actually present, the highest-confidence signal this
// pipeline has.
func (p *Pusher) SyncIceTime(ctx context.Context) (SyncStats, error) {
	var stats SyncStats

	var rows []rinkLastSkated
	err := p.PeerDB.SelectContext(ctx, &rows,
		`SELECT rink_id, MAX(date) AS last_skated FROM ice_time GROUP BY rink_id`)
	if err != nil {
		return stats, errors.Wrap(err, "query ice_time")
	}
	stats.TotalRinksInIceTime = len(rows)
	if len(rows) == 0 {
		return stats, nil
	}

	skatetraxSource, err := p.Store.SourceByName(ctx, "skatetrax")
	if err != nil {
		return stats, errors.Wrap(err, `"skatetrax" source not found`)
	}

	for _, row := range rows {
		loc, ok, err := p.Store.LocationByID(ctx, row.RinkID)
		if err != nil {
			return stats, err
		}
		if !ok {
			stats.MissingFromDirectory++
			continue
		}

		lastSkated := row.LastSkated
		if lastSkated.IsZero() {
			lastSkated = time.Now().UTC()
		}
		if err := p.Store.UpsertLocationSource(ctx, store.LocationSource{
			LocationID:  loc.RinkID,
			SourceID:    skatetraxSource.ID,
			FirstSeenAt: lastSkated,
			LastSeenAt:  lastSkated,
		}); err != nil {
			return stats, err
		}
		stats.Confirmed++
	}

	return stats, nil
}
