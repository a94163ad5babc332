package curate

import "testing"

func TestValidStatuses(t *testing.T) {
	for _, s := range []string{"active", "seasonal", "closed_permanently", "disabled"} {
		if !ValidStatuses[s] {
			t.Errorf("expected %q to be a valid status", s)
		}
	}
	if ValidStatuses["merged"] {
		t.Error("merged should not be directly demotable; only Merge produces it")
	}
	if ValidStatuses["bogus"] {
		t.Error("unknown status should not be valid")
	}
}
