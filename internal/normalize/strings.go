package normalize

import "strings"

// toUpper and trimSpace are thin aliases over strings.ToUpper/TrimSpace,
// kept as named helpers (rather than called inline everywhere) to match
// the teacher's toUpper/toLower helper style in geobed.go.
func toUpper(s string) string   { return strings.ToUpper(s) }
func trimSpace(s string) string { return strings.TrimSpace(s) }
