package metrics

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

const instrumentation = "github.com/kirinyoku/carmeet"

// Meter returns the meter of the global provider. Until a provider is
// installed every instrument is a no-op.
func Meter() metric.Meter {
	return otel.Meter(instrumentation)
}

// Counter creates an Int64Counter, falling back to a no-op instrument if
// the provider rejects the definition.
func Counter(name, description, unit string) metric.Int64Counter {
	c, err := Meter().Int64Counter(name,
		metric.WithDescription(description),
		metric.WithUnit(unit),
	)
	if err != nil {
		return noop.Int64Counter{}
	}
	return c
}

func Histogram(name, description, unit string) metric.Float64Histogram {
	h, err := Meter().Float64Histogram(name,
		metric.WithDescription(description),
		metric.WithUnit(unit),
	)
	if err != nil {
		return noop.Float64Histogram{}
	}
	return h
}
