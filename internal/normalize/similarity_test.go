package normalize

import "testing"

func TestRatioIdentical(t *testing.T) {
	if r := Ratio("Ice Palace", "Ice Palace"); r != 1 {
		t.Fatalf("identical strings should ratio 1, got %v", r)
	}
}

func TestRatioEmpty(t *testing.T) {
	if r := Ratio("", ""); r != 1 {
		t.Fatalf("two empty strings should ratio 1, got %v", r)
	}
	if r := Ratio("abc", ""); r != 0 {
		t.Fatalf("one empty string should ratio 0, got %v", r)
	}
}

func TestRatioPartial(t *testing.T) {
	r := Ratio("Ice Palace Rink", "Ice Palace")
	if r <= 0.6 || r >= 1 {
		t.Fatalf("expected a high but non-1 ratio for a prefix match, got %v", r)
	}
}

func TestRatioDissimilar(t *testing.T) {
	r := Ratio("Ice Palace", "Completely Different Venue")
	if r > 0.4 {
		t.Fatalf("expected a low ratio for dissimilar strings, got %v", r)
	}
}

func TestRatioSymmetric(t *testing.T) {
	a, b := "Skating Rink", "Ice Rink"
	if Ratio(a, b) != Ratio(b, a) {
		t.Fatalf("ratio should be symmetric")
	}
}
