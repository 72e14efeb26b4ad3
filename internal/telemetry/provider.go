package telemetry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
)

const serviceName = "solarfarm"

// Metrics owns the SDK meter provider that collects the farm instruments and
// exports them as JSON lines to out every interval.
type Metrics struct {
	provider *sdkmetric.MeterProvider
	out      io.Closer
}

// NewMetrics starts a periodic reader exporting to out. out is closed by
// Shutdown after the final export.
func NewMetrics(out io.WriteCloser, interval time.Duration) (*Metrics, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("export interval %v must be positive", interval)
	}
	exp, err := stdoutmetric.New(stdoutmetric.WithWriter(out))
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}
	reader := sdkmetric.NewPeriodicReader(exp, sdkmetric.WithInterval(interval))
	return &Metrics{provider: newProvider(reader), out: out}, nil
}

func newProvider(reader sdkmetric.Reader) *sdkmetric.MeterProvider {
	return sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(reader),
		sdkmetric.WithResource(resource.NewSchemaless(
			attribute.String("service.name", serviceName),
		)),
	)
}

// Meter returns the farm meter of this provider.
func (m *Metrics) Meter() metric.Meter {
	return m.provider.Meter(instrumentationName)
}

// Shutdown flushes the last collection and closes the output.
func (m *Metrics) Shutdown(ctx context.Context) error {
	return errors.Join(m.provider.Shutdown(ctx), m.out.Close())
}
