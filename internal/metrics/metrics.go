// Package metrics exposes Prometheus counters/gauges for the pipeline's
// batch stages. A single Registry is built per process; it is not a
// package-level global so tests can build an isolated registry. Handler
// serves it over HTTP, but neither command mounts that handler, so the
// counters are not exposed for scraping.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry groups the counters/gauges the pipeline updates.
type Registry struct {
	reg *prometheus.Registry

	RowsScraped   *prometheus.CounterVec
	RowsNew       *prometheus.CounterVec
	RowsRejected  *prometheus.CounterVec
	RowsGeocoded  *prometheus.CounterVec
	LocationsPromoted prometheus.Counter
}

// New builds a Registry with all metrics registered.
func New() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		reg: reg,
		RowsScraped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "icemaker_rows_scraped_total",
			Help: "Raw entries fetched per source.",
		}, []string{"source"}),
		RowsNew: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "icemaker_rows_new_total",
			Help: "Raw entries that were new content (fingerprint miss) per source.",
		}, []string{"source"}),
		RowsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "icemaker_rows_rejected_total",
			Help: "Entries rejected per source and reason.",
		}, []string{"source", "reason"}),
		RowsGeocoded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "icemaker_rows_geocoded_total",
			Help: "Geocode attempts per source and outcome.",
		}, []string{"source", "outcome"}),
		LocationsPromoted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "icemaker_locations_promoted_total",
			Help: "Candidates promoted to locations.",
		}),
	}

	reg.MustRegister(r.RowsScraped, r.RowsNew, r.RowsRejected, r.RowsGeocoded, r.LocationsPromoted)
	return r
}

// Handler returns the HTTP handler to mount at the metrics endpoint.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}
