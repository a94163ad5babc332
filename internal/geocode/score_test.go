package geocode

import "testing"

func TestScorePerfectMatch(t *testing.T) {
	c := NominatimResult{Address: map[string]string{
		"road": "Main Street", "city": "Chicago", "state": "Illinois", "postcode": "60601",
	}}
	s := SubmittedAddress{StreetName: "MAIN STREET", PlaceName: "CHICAGO", StateName: "IL", ZipCode: "60601"}

	if got := Score(c, s); got < 0.95 {
		t.Errorf("Score = %v, want ~1", got)
	}
}

func TestScoreMissingComponentsExcluded(t *testing.T) {
	c := NominatimResult{Address: map[string]string{"road": "Main Street"}}
	s := SubmittedAddress{StreetName: "MAIN STREET"}

	if got := Score(c, s); got < 0.95 {
		t.Errorf("Score with only street present should be ~1, got %v", got)
	}
}

func TestScoreStateMismatch(t *testing.T) {
	c := NominatimResult{Address: map[string]string{"state": "California"}}
	s := SubmittedAddress{StateName: "IL"}

	if got := Score(c, s); got != 0 {
		t.Errorf("Score = %v, want 0 for mismatched state", got)
	}
}

func TestScoreNoComponents(t *testing.T) {
	if got := Score(NominatimResult{}, SubmittedAddress{}); got != 0 {
		t.Errorf("Score = %v, want 0 when nothing is comparable", got)
	}
}
