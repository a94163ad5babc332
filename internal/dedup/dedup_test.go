package dedup

import "testing"

var th = Thresholds{FuzzyNameThreshold: 0.8, FuzzyNameThresholdNoStreet: 0.6, GeoProximityMiles: 0.5}

func TestFindDuplicateExactAddress(t *testing.T) {
	pool := []Entry{{ID: "a1", Name: "Ice Palace", NormalizedAddress: "123 Main St", City: "Chicago", State: "IL", HasStreet: true, Verified: true}}
	cand := Entry{Name: "Ice Palace Rink", NormalizedAddress: "123 main st.", City: "Chicago", State: "IL", HasStreet: true}

	m, ok := FindDuplicate(cand, pool, nil, th)
	if !ok || m.Layer != LayerExactAddress {
		t.Fatalf("expected exact address match, got %+v ok=%v", m, ok)
	}
}

func TestFindDuplicateExactAddressRequiresLocality(t *testing.T) {
	pool := []Entry{{ID: "a1", Name: "Ice Palace", NormalizedAddress: "100 Main St", City: "Raleigh", State: "NC", HasStreet: true, Verified: true}}
	cand := Entry{Name: "Ice Palace", NormalizedAddress: "100 Main St", City: "Austin", State: "TX", HasStreet: true}

	m, ok := FindDuplicate(cand, pool, nil, th)
	if ok && m.Layer == LayerExactAddress {
		t.Fatalf("same street in a different city/state must not match as exact_address, got %+v", m)
	}
}

func TestFindDuplicateFuzzyName(t *testing.T) {
	pool := []Entry{{ID: "a1", Name: "Riverside Ice Arena", NormalizedAddress: "1 Park Dr", City: "Riverside", State: "CA", HasStreet: true, Verified: true}}
	cand := Entry{Name: "Riverside Ice Arena Inc", NormalizedAddress: "2 Park Dr", City: "Riverside", State: "CA", HasStreet: true}

	m, ok := FindDuplicate(cand, pool, nil, th)
	if !ok || m.Layer != LayerFuzzyName {
		t.Fatalf("expected fuzzy name match, got %+v ok=%v", m, ok)
	}
}

func TestFindDuplicateStreetlessUsesExtendedPoolAndLowerThreshold(t *testing.T) {
	unverified := []Entry{{ID: "u1", Name: "Frozen Lake Rink", City: "Duluth", State: "MN", HasStreet: false}}
	cand := Entry{Name: "Frozen Lk Arena", City: "Duluth", State: "MN", HasStreet: false}

	m, ok := FindDuplicate(cand, nil, unverified, th)
	if !ok || m.Layer != LayerFuzzyName {
		t.Fatalf("expected streetless fuzzy match via extended pool, got %+v ok=%v", m, ok)
	}
}

func TestFindDuplicateGeoProximity(t *testing.T) {
	pool := []Entry{{ID: "a1", Name: "Totally Different Name", City: "Nowhere", State: "ZZ", Latitude: 41.8781, Longitude: -87.6298, Verified: true}}
	cand := Entry{Name: "Unrelated Venue", City: "Elsewhere", State: "YY", Latitude: 41.8785, Longitude: -87.6295}

	m, ok := FindDuplicate(cand, pool, nil, th)
	if !ok || m.Layer != LayerGeoProximity {
		t.Fatalf("expected geo proximity match, got %+v ok=%v", m, ok)
	}
}

func TestFindDuplicateNoMatch(t *testing.T) {
	pool := []Entry{{ID: "a1", Name: "Some Rink", City: "Chicago", State: "IL", Latitude: 10, Longitude: 10, Verified: true}}
	cand := Entry{Name: "Totally Unrelated Venue Name", City: "Boston", State: "MA", Latitude: 50, Longitude: 50}

	_, ok := FindDuplicate(cand, pool, nil, th)
	if ok {
		t.Fatal("expected no match")
	}
}
