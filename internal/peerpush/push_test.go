package peerpush

import "testing"

// Push and SyncIceTime are exercised against *store.Store, which wraps a
// concrete pgx pool with no mock/interface seam (see internal/runner's
// tests for the same constraint) — so these tests focus on the pure
// decision logic pulled out of Push.
func TestNameMismatch(t *testing.T) {
	cases := []struct {
		peer, local string
		want        bool
	}{
		{"Ice Palace", "Ice Palace", false},
		{"Ice Palace", "ICE PALACE", false},
		{"  Ice Palace  ", "Ice Palace", false},
		{"Ice Palace", "Ice Arena", true},
		{"", "Ice Arena", false},
		{"Ice Palace", "", false},
	}
	for _, c := range cases {
		if got := nameMismatch(c.peer, c.local); got != c.want {
			t.Errorf("nameMismatch(%q, %q) = %v, want %v", c.peer, c.local, got, c.want)
		}
	}
}

func TestPushStatsZeroValue(t *testing.T) {
	var stats PushStats
	if stats.Updated != 0 || stats.Inserted != 0 || stats.Errors != 0 {
		t.Errorf("expected zero-value PushStats, got %+v", stats)
	}
}

func TestSyncStatsZeroValue(t *testing.T) {
	var stats SyncStats
	if stats.Confirmed != 0 || stats.MissingFromDirectory != 0 {
		t.Errorf("expected zero-value SyncStats, got %+v", stats)
	}
}
