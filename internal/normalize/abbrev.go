package normalize

// streetAbbrev expands common street-type and occupancy abbreviations,
// grounded on original_source/utils/common.py's country_us.st_abbr dict.
var streetAbbrev = map[string]string{
	"ST": "STREET", "AVE": "AVENUE", "BLVD": "BOULEVARD", "DR": "DRIVE",
	"RD": "ROAD", "LN": "LANE", "CT": "COURT", "PL": "PLACE",
	"CIR": "CIRCLE", "HWY": "HIGHWAY", "PKWY": "PARKWAY", "SQ": "SQUARE",
	"TER": "TERRACE", "TRL": "TRAIL", "WAY": "WAY", "LOOP": "LOOP",
	"PLZ": "PLAZA", "EXPY": "EXPRESSWAY", "FWY": "FREEWAY", "ALY": "ALLEY",
	"APT": "APARTMENT", "APTS": "APARTMENTS", "STE": "SUITE",
	"BR": "BRIDGE", "LK": "LAKE", "MT": "MOUNT", "MTN": "MOUNTAIN",
	"RTE": "ROUTE",
}

// ExpandStreetAbbrev expands a single token (case-insensitive) if it is
// a known street/occupancy abbreviation; otherwise returns the token
// unchanged.
func ExpandStreetAbbrev(token string) string {
	if full, ok := streetAbbrev[toUpper(trimSpace(token))]; ok {
		return full
	}
	return token
}
