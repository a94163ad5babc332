package main

import (
	"fmt"

	"github.com/Skatetrax/ice-maker/internal/fetchers"
)

// fetcherRegistry maps a source name to its Fetcher constructor. No
// entries ship here: per fetchers.Fetcher's doc comment, this module
// only defines the scraping contract — sk8stuff/arena_guide/
// learntoskate/fandom_wiki-specific scrapers are plugged in by whatever
// deployment wires them, not built into icemaker itself.
var fetcherRegistry = map[string]func() fetchers.Fetcher{}

// resolveFetcher looks up a registered Fetcher by source name.
func resolveFetcher(name string) (fetchers.Fetcher, error) {
	ctor, ok := fetcherRegistry[name]
	if !ok {
		return nil, fmt.Errorf("no fetcher registered for source %q (register one in fetcherRegistry)", name)
	}
	return ctor(), nil
}
