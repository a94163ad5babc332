// Package fingerprint computes the content hash the runner uses to
// detect whether a scraped row has changed since the last run, matching
// original_source/pipeline/fingerprint.py's compute_fingerprint exactly:
// the whole "source_id|name|address" payload is lowercased and
// whitespace-trimmed before hashing, so re-runs of an unchanged page
// produce an identical fingerprint regardless of insignificant
// formatting drift upstream.
package fingerprint

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
)

// Compute returns the hex-encoded MD5 of sourceID, name and address
// joined with "|", after lowercasing and trimming the whole payload.
func Compute(sourceID int64, name, address string) string {
	payload := fmt.Sprintf("%d|%s|%s", sourceID, name, address)
	payload = strings.ToLower(strings.TrimSpace(payload))
	sum := md5.Sum([]byte(payload))
	return hex.EncodeToString(sum[:])
}
