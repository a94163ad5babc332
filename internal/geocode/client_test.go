package geocode

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

type fakeClock struct {
	now    time.Time
	slept  []time.Duration
}

func (f *fakeClock) Now() time.Time { return f.now }
func (f *fakeClock) Sleep(d time.Duration) {
	f.slept = append(f.slept, d)
	f.now = f.now.Add(d)
}

func TestSearchReturnsResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		results := []NominatimResult{
			{Lat: "41.8781", Lon: "-87.6298", DisplayName: "Main St, Chicago, IL",
				Address: map[string]string{"road": "Main St", "city": "Chicago", "state": "Illinois", "postcode": "60601"}},
		}
		json.NewEncoder(w).Encode(results)
	}))
	defer srv.Close()

	clk := &fakeClock{now: time.Now()}
	c := New(srv.URL, time.Second, WithClock(clk))

	results, err := c.Search(context.Background(), "123 Main St, Chicago, IL")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	lat, lon, err := results[0].ParseLatLon()
	if err != nil {
		t.Fatalf("ParseLatLon: %v", err)
	}
	if lat != 41.8781 || lon != -87.6298 {
		t.Errorf("got (%v, %v), want (41.8781, -87.6298)", lat, lon)
	}
}

func TestSearchThrottles(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]NominatimResult{})
	}))
	defer srv.Close()

	clk := &fakeClock{now: time.Now()}
	c := New(srv.URL, time.Second, WithClock(clk))

	if _, err := c.Search(context.Background(), "a"); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Search(context.Background(), "b"); err != nil {
		t.Fatal(err)
	}
	if len(clk.slept) != 1 {
		t.Fatalf("expected exactly one throttle sleep on the second call, got %d", len(clk.slept))
	}
}

func TestSearchServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(srv.URL, time.Millisecond, WithClock(&fakeClock{now: time.Now()}))
	_, err := c.Search(context.Background(), "a")
	if err == nil {
		t.Fatal("expected an error for a 500 response")
	}
}
