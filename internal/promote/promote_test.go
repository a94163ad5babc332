package promote

import "testing"

func TestMatchCandidateRe(t *testing.T) {
	cases := []struct {
		detail string
		wantID string
	}{
		{"Matches candidate 42: Ice Palace", "42"},
		{"Matches candidate 7: Frozen Lake Rink", "7"},
	}
	for _, c := range cases {
		m := matchCandidateRe.FindStringSubmatch(c.detail)
		if m == nil {
			t.Fatalf("no match for %q", c.detail)
		}
		if m[1] != c.wantID {
			t.Errorf("detail %q: got %q, want %q", c.detail, m[1], c.wantID)
		}
	}
}

func TestMatchCandidateReNoMatch(t *testing.T) {
	if m := matchCandidateRe.FindStringSubmatch("geocode failed: no results"); m != nil {
		t.Fatalf("expected no match, got %v", m)
	}
}

func TestFindMatchingLocation(t *testing.T) {
	locs := []skatetraxLocation{
		{RinkID: "r1", Name: "Ice Palace", City: "Chicago", State: "IL"},
		{RinkID: "r2", Name: "Frost Arena", City: "Boston", State: "MA"},
	}
	id, found, err := findMatchingLocation(locs, "Ice Palace Rink", "Chicago", "IL")
	if err != nil {
		t.Fatal(err)
	}
	if !found || id != "r1" {
		t.Fatalf("got id=%q found=%v, want r1/true", id, found)
	}
}

func TestFindMatchingLocationWrongLocality(t *testing.T) {
	locs := []skatetraxLocation{{RinkID: "r1", Name: "Ice Palace", City: "Chicago", State: "IL"}}
	_, found, err := findMatchingLocation(locs, "Ice Palace", "Boston", "MA")
	if err != nil {
		t.Fatal(err)
	}
	if found {
		t.Fatal("should not match across localities")
	}
}

func TestFindMatchingLocationBelowThreshold(t *testing.T) {
	locs := []skatetraxLocation{{RinkID: "r1", Name: "Completely Different Name", City: "Chicago", State: "IL"}}
	_, found, err := findMatchingLocation(locs, "Ice Palace", "Chicago", "IL")
	if err != nil {
		t.Fatal(err)
	}
	if found {
		t.Fatal("should not match below similarity threshold")
	}
}
