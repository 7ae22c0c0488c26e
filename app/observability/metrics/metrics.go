package metrics

import (
	"log"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// AppMetrics holds the application's metric instruments.
type AppMetrics struct {
	GenerationRequestsTotal     metric.Int64Counter
	GenerationDurationSeconds   metric.Float64Histogram
	CatalogQueryDurationSeconds metric.Float64Histogram
	CatalogQueryErrorsTotal     metric.Int64Counter
	ContactSubmissionsTotal     metric.Int64Counter
}

var (
	appMetrics *AppMetrics
	once       sync.Once
)

// InitAppMetrics initializes the global metric instruments exactly once,
// using the Meter from the globally configured MeterProvider.
func InitAppMetrics() {
	once.Do(func() {
		meter := otel.GetMeterProvider().Meter("PartyWeekendPlanner")
		var err error
		m := &AppMetrics{}

		m.GenerationRequestsTotal, err = meter.Int64Counter(
			"generation_requests_total",
			metric.WithDescription("Total number of itinerary generation requests completed"),
			metric.WithUnit("{request}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create generation_requests_total: %v", err)
		}

		m.GenerationDurationSeconds, err = meter.Float64Histogram(
			"generation_duration_seconds",
			metric.WithDescription("Duration of itinerary generation requests in seconds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create generation_duration_seconds: %v", err)
		}

		m.CatalogQueryDurationSeconds, err = meter.Float64Histogram(
			"catalog_query_duration_seconds",
			metric.WithDescription("Duration of party catalog queries in seconds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create catalog_query_duration_seconds: %v", err)
		}

		m.CatalogQueryErrorsTotal, err = meter.Int64Counter(
			"catalog_query_errors_total",
			metric.WithDescription("Total number of party catalog query errors"),
			metric.WithUnit("{error}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create catalog_query_errors_total: %v", err)
		}

		m.ContactSubmissionsTotal, err = meter.Int64Counter(
			"contact_submissions_total",
			metric.WithDescription("Total number of contact form submissions accepted"),
			metric.WithUnit("{submission}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create contact_submissions_total: %v", err)
		}

		log.Println("Application metrics instruments initialized.")
		appMetrics = m
	})
}

// Get returns the globally initialized AppMetrics instance, or nil if
// InitAppMetrics has not run (tests skip metrics this way).
func Get() *AppMetrics {
	return appMetrics
}
