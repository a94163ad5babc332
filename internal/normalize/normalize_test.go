package normalize

import "testing"

func TestNormalizeBasic(t *testing.T) {
	r := Normalize("ice palace rink", "123 N Main St, Chicago, IL 60601")
	if r.Name != "Ice Palace Rink" {
		t.Errorf("Name = %q, want %q", r.Name, "Ice Palace Rink")
	}
	if r.Tagged.StreetName != "Main" {
		t.Errorf("StreetName = %q, want Main", r.Tagged.StreetName)
	}
	if r.Tagged.PlaceName != "Chicago" {
		t.Errorf("PlaceName = %q, want Chicago", r.Tagged.PlaceName)
	}
	if r.Tagged.StateName != "IL" {
		t.Errorf("StateName = %q, want IL", r.Tagged.StateName)
	}
}

func TestNormalizeExpandsRecCenter(t *testing.T) {
	r := Normalize("Riverside Rec Ctr", "1 Park Dr, Riverside, CA 92501")
	if r.Name != "Riverside Recreation Center" {
		t.Errorf("Name = %q, want %q", r.Name, "Riverside Recreation Center")
	}
}

func TestNormalizeWiki(t *testing.T) {
	r := NormalizeWiki("frozen lake rink", "Duluth, MN")
	if r.Name != "Frozen Lake Rink" {
		t.Errorf("Name = %q, want %q", r.Name, "Frozen Lake Rink")
	}
	if r.Tagged.PlaceName != "Duluth" || r.Tagged.StateName != "MN" {
		t.Errorf("got place=%q state=%q", r.Tagged.PlaceName, r.Tagged.StateName)
	}
	if r.Address != "" {
		t.Errorf("wiki entries should have no street address, got %q", r.Address)
	}
}
