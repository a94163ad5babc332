package normalize

import "strings"

// Result is what the runner hands each parsed entry on to the
// deduplicator and geocoder as, combining Tagged's address components
// with the cleaned display name.
type Result struct {
	Name    string
	Tagged  Tagged
	Address string // whole input address (street, city, state, zip), trimmed; empty for streetless entries
}

// Normalize parses a scraped (name, address) pair the way
// original_source/pipeline/runner.py's _parse_entry does: repair any
// mojibake, expand "Rec Ctr"/"Rec. Center"-style abbreviations in the
// name, title-case the name, then tag the street line and the
// "City, State Zip" tail. Tagged components keep their input casing,
// except the street type (expanded to its upper-case full form) and the
// state (resolved to its two-letter code).
func Normalize(name, address string) Result {
	name = RepairMojibake(name)
	address = RepairMojibake(address)

	name = expandRecCenter(name)
	name = titleCase(trimSpace(name))

	street, cityStateZip := splitAddress(address)
	tagged := TagStreet(street)
	place, state, zip := TagCityStateZip(cityStateZip)
	tagged.PlaceName = place
	tagged.StateName = state
	tagged.ZipCode = zip

	return Result{
		Name:    name,
		Tagged:  tagged,
		Address: trimSpace(address),
	}
}

// NormalizeWiki parses a streetless (wiki-sourced) entry: only a rink
// name and a "City, State" pair, no street address at all, matching
// original_source/pipeline/runner.py's _parse_wiki_entry.
func NormalizeWiki(name, cityState string) Result {
	name = titleCase(trimSpace(expandRecCenter(RepairMojibake(name))))
	place, state, _ := TagCityStateZip(RepairMojibake(cityState))

	return Result{
		Name: name,
		Tagged: Tagged{
			PlaceName: place,
			StateName: state,
		},
	}
}

// splitAddress separates a full "123 Main St, Chicago, IL 60601" line
// into its street portion and its "City, State Zip" tail on the first
// comma.
func splitAddress(address string) (street, cityStateZip string) {
	idx := strings.Index(address, ",")
	if idx < 0 {
		return trimSpace(address), ""
	}
	return trimSpace(address[:idx]), trimSpace(address[idx+1:])
}

// recCenterVariants expands the common "Rec Ctr" / "Rec. Center" /
// "Recreation Ctr" shorthand scraped venue names carry into the full
// "Recreation Center" form, matching runner.py's _expand_rec_ctrs.
var recCenterVariants = []struct {
	from string
	to   string
}{
	{"REC CTR", "RECREATION CENTER"},
	{"REC. CTR", "RECREATION CENTER"},
	{"REC CENTER", "RECREATION CENTER"},
	{"REC. CENTER", "RECREATION CENTER"},
	{"RECREATION CTR", "RECREATION CENTER"},
}

func expandRecCenter(name string) string {
	upper := toUpper(name)
	for _, v := range recCenterVariants {
		if idx := strings.Index(upper, v.from); idx >= 0 {
			return name[:idx] + v.to + name[idx+len(v.from):]
		}
	}
	return name
}

// titleCase upper-cases the first letter of each whitespace-delimited
// word and lower-cases the rest, matching the casing rule runner.py
// applies to parsed rink names.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		if len(w) == 0 {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}
