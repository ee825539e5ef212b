// Package metrics registers the Prometheus collectors exposed by the query
// service. The /path handler updates QueriesTotal and QueryDurationSeconds
// and app.Run sets NavGridVertices; nothing in this repository increments
// GeneratorVerticesTotal, and the generator binary records no metrics.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Collectors bundles every metric the query service registers.
type Collectors struct {
	QueriesTotal            *prometheus.CounterVec
	QueryDurationSeconds    prometheus.Histogram
	GeneratorVerticesTotal  prometheus.Counter
	NavGridVertices         prometheus.Gauge
}

// NewCollectors constructs and registers every collector against registry.
func NewCollectors(registry *prometheus.Registry) *Collectors {
	c := &Collectors{
		QueriesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "worldnav_queries_total",
			Help: "Path queries served, labeled by outcome.",
		}, []string{"result"}),
		QueryDurationSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "worldnav_query_duration_seconds",
			Help:    "Wall-clock duration of served /path queries.",
			Buckets: prometheus.DefBuckets,
		}),
		GeneratorVerticesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "worldnav_generator_vertices_processed_total",
			Help: "Vertices whose collision flags were transformed by the generator.",
		}),
		NavGridVertices: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "worldnav_navgrid_vertices",
			Help: "Number of vertices in the currently loaded NavGrid.",
		}),
	}
	registry.MustRegister(c.QueriesTotal, c.QueryDurationSeconds, c.GeneratorVerticesTotal, c.NavGridVertices)
	// Create every result series up front so QueriesTotal is exposed at
	// zero before the first query is recorded.
	for _, result := range []string{ResultFound, ResultUnreachable, ResultBadRequest} {
		c.QueriesTotal.WithLabelValues(result)
	}
	return c
}

// Result labels for QueriesTotal.
const (
	ResultFound      = "found"
	ResultUnreachable = "unreachable"
	ResultBadRequest  = "bad_request"
)
