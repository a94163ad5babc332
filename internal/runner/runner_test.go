package runner

import (
	"testing"

	"github.com/Skatetrax/ice-maker/internal/store"
)

func f64(v float64) *float64 { return &v }

func TestCandidatesToEntriesStreetless(t *testing.T) {
	cands := []store.Candidate{
		{ID: 7, Name: "Frozen Lake Rink", City: "Duluth", State: "MN", Status: store.CandidateUnverified},
	}
	got := candidatesToEntries(cands)
	if len(got) != 1 || got[0].HasStreet || got[0].Verified {
		t.Fatalf("unexpected conversion: %+v", got)
	}
	if got[0].ID != "7" {
		t.Errorf("ID = %q, want 7", got[0].ID)
	}
}

func TestCandidatesToEntriesCoordinates(t *testing.T) {
	cands := []store.Candidate{
		{ID: 1, Name: "Rink", Latitude: f64(10), Longitude: f64(20), Status: store.CandidateGeocodeMatch},
	}
	got := candidatesToEntries(cands)
	if got[0].Latitude != 10 || got[0].Longitude != 20 || !got[0].Verified {
		t.Fatalf("unexpected conversion: %+v", got[0])
	}
}

func TestCandidatesToEntriesSourceVerified(t *testing.T) {
	cands := []store.Candidate{
		{ID: 2, Name: "Rink", Address: "1 Main St", Status: store.CandidateSourceVerified},
	}
	got := candidatesToEntries(cands)
	if !got[0].Verified {
		t.Fatalf("expected source_verified candidate to count as verified: %+v", got[0])
	}
}

func TestRunnerOptionsDefault(t *testing.T) {
	r := &Runner{}
	if r.Options().Limit != 0 {
		t.Errorf("default Limit should be 0 (unlimited), got %d", r.Options().Limit)
	}
	r.WithOptions(Options{Limit: 5})
	if r.Options().Limit != 5 {
		t.Errorf("WithOptions did not take effect")
	}
}
