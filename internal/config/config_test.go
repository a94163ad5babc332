package config

import "testing"

func TestLoadMissingRequired(t *testing.T) {
	t.Setenv("ICEMAKER_DB_URL", "")
	_, err := Load()
	if err == nil {
		t.Fatal("expected error when ICEMAKER_DB_URL is unset")
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ICEMAKER_DB_URL", "postgres://localhost/icemaker")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.GeocodeConfidenceMin != defaultGeocodeConfidenceMin {
		t.Errorf("GeocodeConfidenceMin = %v, want %v", cfg.GeocodeConfidenceMin, defaultGeocodeConfidenceMin)
	}
	if cfg.FuzzyNameThresholdNoStreet != defaultFuzzyNameThresholdNoStreet {
		t.Errorf("FuzzyNameThresholdNoStreet = %v, want %v", cfg.FuzzyNameThresholdNoStreet, defaultFuzzyNameThresholdNoStreet)
	}
	if cfg.NominatimRateLimit.Seconds() != defaultNominatimRateLimitSeconds {
		t.Errorf("NominatimRateLimit = %v, want 1s", cfg.NominatimRateLimit)
	}
}

func TestLoadBadFloat(t *testing.T) {
	t.Setenv("ICEMAKER_DB_URL", "postgres://localhost/icemaker")
	t.Setenv("GEO_PROXIMITY_MILES", "not-a-number")
	_, err := Load()
	if err == nil {
		t.Fatal("expected error for malformed GEO_PROXIMITY_MILES")
	}
}
