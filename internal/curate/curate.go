// Package curate implements the hand-curation operations an operator
// runs against the directory after promotion: demote, merge, rename, and
// search, matching original_source/pipeline/demoter.py.
package curate

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Skatetrax/ice-maker/internal/store"
)

// ValidStatuses are the rink_status values demote may transition a
// Location into, matching demoter.py's VALID_STATUSES. "merged" is
// reached only via Merge, never directly via Demote.
var ValidStatuses = map[string]bool{
	"active": true, "seasonal": true, "closed_permanently": true, "disabled": true,
}

// Curator wires the staging store for curation commands.
type Curator struct {
	Store *store.Store
	Log   *zap.Logger
}

// Find resolves id-or-name to exactly one Location, matching
// demoter.py's _find_location: an exact rink_id match wins outright;
// otherwise an exact case-insensitive name match; otherwise a partial
// name search that must resolve to exactly one row or it's reported as
// ambiguous.
func (c *Curator) Find(ctx context.Context, idOrName string) (store.Location, error) {
	if loc, ok, err := c.Store.LocationByID(ctx, idOrName); err != nil {
		return store.Location{}, err
	} else if ok {
		return loc, nil
	}

	matches, err := c.Store.SearchLocationsByName(ctx, idOrName)
	if err != nil {
		return store.Location{}, err
	}

	for _, l := range matches {
		if strings.EqualFold(l.Name, idOrName) {
			return l, nil
		}
	}

	switch len(matches) {
	case 0:
		return store.Location{}, fmt.Errorf("no location found matching %q", idOrName)
	case 1:
		return matches[0], nil
	default:
		names := make([]string, 0, len(matches))
		for _, l := range matches {
			names = append(names, fmt.Sprintf("%s (%s)", l.Name, l.RinkID))
		}
		return store.Location{}, fmt.Errorf("ambiguous match for %q: %v", idOrName, names)
	}
}

// Demote transitions a Location to a new status. "merged" is rejected
// here; Merge is the only path that produces it.
func (c *Curator) Demote(ctx context.Context, idOrName, newStatus string) (store.Location, error) {
	if newStatus == "merged" {
		return store.Location{}, fmt.Errorf("use Merge to set status=merged")
	}
	if !ValidStatuses[newStatus] {
		return store.Location{}, fmt.Errorf("invalid status %q", newStatus)
	}

	loc, err := c.Find(ctx, idOrName)
	if err != nil {
		return store.Location{}, err
	}
	if err := c.Store.UpdateLocationStatus(ctx, loc.RinkID, newStatus); err != nil {
		return store.Location{}, err
	}
	loc.Status = newStatus
	return loc, nil
}

// Rename changes a Location's display name, capturing the old name as
// an alias first so the prior identity remains searchable, matching
// demoter.py's rename_location.
func (c *Curator) Rename(ctx context.Context, idOrName, newName string) (store.Location, error) {
	loc, err := c.Find(ctx, idOrName)
	if err != nil {
		return store.Location{}, err
	}
	if _, err := c.Store.CreateAlias(ctx, loc.RinkID, loc.Name, "auto: renamed"); err != nil {
		return store.Location{}, err
	}
	if err := c.Store.RenameLocation(ctx, loc.RinkID, newName); err != nil {
		return store.Location{}, err
	}
	loc.Name = newName
	return loc, nil
}

// Search is the data-returning form of demoter.py's search_locations,
// which printed directly to stdout — restructured here so cmd/icecurate
// owns CLI presentation and this package stays presentation-free.
func (c *Curator) Search(ctx context.Context, query string) ([]store.Location, error) {
	return c.Store.SearchLocationsByName(ctx, query)
}

// MergeResult summarizes what Merge changed.
type MergeResult struct {
	PrimaryID      string
	DuplicateIDs   []string
	SourcesMoved   int
	AliasesCreated int
}

// Merge folds one or more duplicate Locations into a single surviving
// primary: every duplicate's LocationSources are moved onto the primary
// (or widened into an existing link for the same source, using the
// min-first-seen/max-last-seen union — see DESIGN.md's Open Question),
// its Candidates are repointed, its name is captured as an alias when it
// differs from the primary's, and
// finally it is marked "merged" — never deleted, so old rink_ids
// referenced elsewhere keep resolving, matching demoter.py's
// merge_locations.
func (c *Curator) Merge(ctx context.Context, primaryIDOrName string, duplicateIDsOrNames ...string) (MergeResult, error) {
	primary, err := c.Find(ctx, primaryIDOrName)
	if err != nil {
		return MergeResult{}, err
	}

	result := MergeResult{PrimaryID: primary.RinkID}

	for _, dupRef := range duplicateIDsOrNames {
		dup, err := c.Find(ctx, dupRef)
		if err != nil {
			return result, err
		}
		if dup.RinkID == primary.RinkID {
			return result, fmt.Errorf("cannot merge location %s into itself", dup.RinkID)
		}

		sources, err := c.Store.LocationSourcesFor(ctx, dup.RinkID)
		if err != nil {
			return result, err
		}
		for _, ls := range sources {
			if err := c.Store.RepointLocationSource(ctx, ls.ID, primary.RinkID); err != nil {
				return result, err
			}
			result.SourcesMoved++
		}

		if err := c.Store.RepointCandidateLocations(ctx, dup.RinkID, primary.RinkID); err != nil {
			return result, err
		}

		if dup.Name != primary.Name {
			created, err := c.Store.CreateAlias(ctx, primary.RinkID, dup.Name, "auto: merged from "+dup.RinkID)
			if err != nil {
				return result, err
			}
			if created {
				result.AliasesCreated++
			}
		}

		if err := c.Store.UpdateLocationStatus(ctx, dup.RinkID, "merged"); err != nil {
			return result, err
		}
		result.DuplicateIDs = append(result.DuplicateIDs, dup.RinkID)
	}

	return result, nil
}
