package normalize

import (
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// RepairMojibake undoes the common "UTF-8 bytes decoded as Latin-1 then
// re-encoded as UTF-8" mangling some scraped pages exhibit (e.g. "Ã©"
// for "é"), matching original_source/utils/common.py's reset_utf8.
//
// Re-encoding s's runes one-for-one as ISO-8859-1 bytes recovers the
// original UTF-8 byte sequence directly (a Go string is just bytes), so
// no separate UTF-8 decode step is needed. The repaired form is kept
// only when it is itself valid, different UTF-8 — otherwise s likely
// wasn't mojibake to begin with and is returned unchanged.
func RepairMojibake(s string) string {
	repaired, err := charmap.ISO8859_1.NewEncoder().String(s)
	if err != nil || repaired == s || !utf8.ValidString(repaired) {
		return s
	}
	return repaired
}
