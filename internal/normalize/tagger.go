package normalize

import (
	"regexp"
	"strings"
)

// Tagged holds the labeled components of one parsed street address,
// naming its fields the way the original Python pipeline's usaddress-based
// tagger did (original_source/pipeline/runner.py's _parse_entry): this is
// a hand-built tagger grounded on the same component contract, since no
// library in the pack implements usaddress-style address tagging.
type Tagged struct {
	AddressNumber              string
	StreetNamePreDirectional   string
	StreetName                 string
	StreetNamePostType         string
	StreetNamePostDirectional  string
	OccupancyIdentifier        string
	PlaceName                  string
	StateName                  string
	ZipCode                    string
}

var (
	directionals = map[string]string{
		"N": "N", "NORTH": "N", "S": "S", "SOUTH": "S",
		"E": "E", "EAST": "E", "W": "W", "WEST": "W",
		"NE": "NE", "NORTHEAST": "NE", "NW": "NW", "NORTHWEST": "NW",
		"SE": "SE", "SOUTHEAST": "SE", "SW": "SW", "SOUTHWEST": "SW",
	}

	occupancyTokens = map[string]bool{
		"APT": true, "APARTMENT": true, "STE": true, "SUITE": true,
		"UNIT": true, "FL": true, "FLOOR": true, "RM": true, "ROOM": true,
		"BLDG": true, "BUILDING": true, "#": true,
	}

	leadingNumberRe = regexp.MustCompile(`^\d+[A-Za-z]?$`)
	zipRe           = regexp.MustCompile(`^\d{5}(-\d{4})?$`)
)

// TagStreet parses a full street-address line (no city/state/zip) into
// its labeled components. Addresses with no recognizable street-type
// token still return an AddressNumber/StreetName best-effort split; a
// wholly unparseable address yields all fields empty (the runner rejects
// such an entry as a parse failure when its source has street addresses).
func TagStreet(raw string) Tagged {
	var t Tagged
	tokens := strings.Fields(raw)
	if len(tokens) == 0 {
		return t
	}

	i := 0
	if leadingNumberRe.MatchString(tokens[i]) {
		t.AddressNumber = tokens[i]
		i++
	}

	if i < len(tokens) {
		if dir, ok := directionals[toUpper(tokens[i])]; ok && i+1 < len(tokens) {
			t.StreetNamePreDirectional = dir
			i++
		}
	}

	var streetTokens []string
	for ; i < len(tokens); i++ {
		upper := toUpper(tokens[i])
		if _, isType := streetAbbrev[upper]; isType {
			t.StreetNamePostType = ExpandStreetAbbrev(tokens[i])
			i++
			break
		}
		if isStreetTypeWord(upper) {
			t.StreetNamePostType = upper
			i++
			break
		}
		if occupancyTokens[upper] {
			break
		}
		streetTokens = append(streetTokens, tokens[i])
	}
	t.StreetName = strings.Join(streetTokens, " ")

	if i < len(tokens) {
		if dir, ok := directionals[toUpper(tokens[i])]; ok {
			t.StreetNamePostDirectional = dir
			i++
		}
	}

	if i < len(tokens) && occupancyTokens[toUpper(tokens[i])] {
		occ := tokens[i:]
		t.OccupancyIdentifier = strings.Join(occ, " ")
		i = len(tokens)
	}

	return t
}

// isStreetTypeWord reports whether upper is one of the expansion
// targets themselves (e.g. "STREET", not just "ST"), so a non-abbreviated
// input parses identically to an abbreviated one.
func isStreetTypeWord(upper string) bool {
	for _, full := range streetAbbrev {
		if full == upper {
			return true
		}
	}
	return false
}

// TagCityStateZip parses the "City, State Zip" tail of an address,
// accepting either a full state name or an abbreviation (StateAbbrev
// handles both).
func TagCityStateZip(raw string) (place, state, zip string) {
	raw = trimSpace(raw)
	parts := strings.Split(raw, ",")
	if len(parts) == 0 {
		return "", "", ""
	}
	place = trimSpace(parts[0])

	if len(parts) < 2 {
		return place, "", ""
	}

	tail := strings.Fields(trimSpace(parts[1]))
	var words []string
	for _, tok := range tail {
		if zipRe.MatchString(tok) {
			zip = tok
			continue
		}
		words = append(words, tok)
		if abbr := StateAbbrev(tok); abbr != "" && state == "" {
			state = abbr
		}
	}
	// Multi-word state names ("New York") resolve only as a whole.
	if abbr := StateAbbrev(strings.Join(words, " ")); abbr != "" {
		state = abbr
	}
	return place, state, zip
}
