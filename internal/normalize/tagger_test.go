package normalize

import "testing"

func TestTagStreetBasic(t *testing.T) {
	got := TagStreet("123 N Main St")
	if got.AddressNumber != "123" {
		t.Errorf("AddressNumber = %q, want 123", got.AddressNumber)
	}
	if got.StreetNamePreDirectional != "N" {
		t.Errorf("StreetNamePreDirectional = %q, want N", got.StreetNamePreDirectional)
	}
	if got.StreetName != "Main" {
		t.Errorf("StreetName = %q, want Main", got.StreetName)
	}
	if got.StreetNamePostType != "STREET" {
		t.Errorf("StreetNamePostType = %q, want STREET", got.StreetNamePostType)
	}
}

func TestTagStreetWithOccupancy(t *testing.T) {
	got := TagStreet("456 Elm Ave Apt 2B")
	if got.StreetName != "Elm" {
		t.Errorf("StreetName = %q, want Elm", got.StreetName)
	}
	if got.StreetNamePostType != "AVENUE" {
		t.Errorf("StreetNamePostType = %q, want AVENUE", got.StreetNamePostType)
	}
	if got.OccupancyIdentifier != "Apt 2B" {
		t.Errorf("OccupancyIdentifier = %q, want 'Apt 2B'", got.OccupancyIdentifier)
	}
}

func TestTagStreetNoNumber(t *testing.T) {
	got := TagStreet("Main St")
	if got.AddressNumber != "" {
		t.Errorf("AddressNumber = %q, want empty", got.AddressNumber)
	}
	if got.StreetName != "Main" {
		t.Errorf("StreetName = %q, want Main", got.StreetName)
	}
}

func TestTagCityStateZip(t *testing.T) {
	place, state, zip := TagCityStateZip("Chicago, IL 60601")
	if place != "Chicago" || state != "IL" || zip != "60601" {
		t.Errorf("got (%q, %q, %q), want (Chicago, IL, 60601)", place, state, zip)
	}
}

func TestTagCityStateZipFullStateName(t *testing.T) {
	_, state, _ := TagCityStateZip("Chicago, Illinois 60601")
	if state != "IL" {
		t.Errorf("state = %q, want IL", state)
	}
}
