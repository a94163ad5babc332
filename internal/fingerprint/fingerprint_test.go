package fingerprint

import "testing"

func TestComputeStable(t *testing.T) {
	a := Compute(1, "Ice Palace", "123 Main St")
	b := Compute(1, "Ice Palace", "123 Main St")
	if a != b {
		t.Fatalf("fingerprint not stable: %s != %s", a, b)
	}
}

func TestComputeCaseInsensitive(t *testing.T) {
	a := Compute(1, "Ice Palace", "123 Main St")
	b := Compute(1, "ICE PALACE", "123 MAIN ST")
	if a != b {
		t.Fatalf("fingerprint should be case-insensitive: %s != %s", a, b)
	}
}

func TestComputeTrimsWhitespace(t *testing.T) {
	a := Compute(1, "Ice Palace", "123 Main St")
	b := Compute(1, "Ice Palace", "123 Main St  ")
	if a != b {
		t.Fatalf("fingerprint should trim trailing whitespace of the whole payload: %s != %s", a, b)
	}
}

func TestComputeDiffersBySource(t *testing.T) {
	a := Compute(1, "Ice Palace", "123 Main St")
	b := Compute(2, "Ice Palace", "123 Main St")
	if a == b {
		t.Fatal("fingerprint should differ across sources")
	}
}

func TestComputeDiffersByContent(t *testing.T) {
	a := Compute(1, "Ice Palace", "123 Main St")
	b := Compute(1, "Ice Palace", "124 Main St")
	if a == b {
		t.Fatal("fingerprint should differ when address changes")
	}
}
