package telemetry

import (
	"context"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/Faultbox/solarfarm/internal/telemetry"

func meter() metric.Meter {
	return otel.Meter(instrumentationName)
}

// Gauges publishes the most recent sample through the global OTel meter
// provider. Without a configured provider every call is a no-op.
type Gauges struct {
	power      metric.Float64ObservableGauge
	load       metric.Float64ObservableGauge
	net        metric.Float64ObservableGauge
	battery    metric.Float64ObservableGauge
	percent    metric.Float64ObservableGauge
	efficiency metric.Float64ObservableGauge

	reg metric.Registration

	mu     sync.RWMutex
	latest Sample
	seen   bool
}

// NewGauges registers the farm gauges on m, or on the global meter when m
// is nil.
func NewGauges(m metric.Meter) (*Gauges, error) {
	if m == nil {
		m = meter()
	}
	g := &Gauges{}

	var err error
	gauges := []struct {
		dst  *metric.Float64ObservableGauge
		name string
		desc string
		unit string
	}{
		{&g.power, "farm.power.generated", "Panel field output", "kW"},
		{&g.load, "farm.power.load", "Farm consumption", "kW"},
		{&g.net, "farm.power.net", "Generation minus consumption", "kW"},
		{&g.battery, "farm.battery.charge", "Stored energy", "kWh"},
		{&g.percent, "farm.battery.percent", "State of charge", "%"},
		{&g.efficiency, "farm.panel.efficiency", "Cosine between panel normal and sun", "1"},
	}
	for _, def := range gauges {
		*def.dst, err = m.Float64ObservableGauge(
			def.name,
			metric.WithDescription(def.desc),
			metric.WithUnit(def.unit),
		)
		if err != nil {
			return nil, fmt.Errorf("creating %s gauge: %w", def.name, err)
		}
	}

	g.reg, err = m.RegisterCallback(g.observe,
		g.power, g.load, g.net, g.battery, g.percent, g.efficiency)
	if err != nil {
		return nil, fmt.Errorf("registering farm callback: %w", err)
	}
	return g, nil
}

// Set replaces the sample reported at the next collection.
func (g *Gauges) Set(s Sample) {
	g.mu.Lock()
	g.latest = s
	g.seen = true
	g.mu.Unlock()
}

// Latest returns the last sample passed to Set.
func (g *Gauges) Latest() (Sample, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.latest, g.seen
}

func (g *Gauges) observe(_ context.Context, o metric.Observer) error {
	s, ok := g.Latest()
	if !ok {
		return nil
	}

	panel := metric.WithAttributes(attribute.Int("panel.wattage", s.Wattage))
	status := metric.WithAttributes(attribute.String("battery.status", s.Status))

	o.ObserveFloat64(g.power, float64(s.PowerKW), panel)
	o.ObserveFloat64(g.load, float64(s.LoadKW))
	o.ObserveFloat64(g.net, float64(s.NetKW))
	o.ObserveFloat64(g.battery, float64(s.BatteryKWh), status)
	o.ObserveFloat64(g.percent, float64(s.BatteryPct), status)
	o.ObserveFloat64(g.efficiency, float64(s.Efficiency), panel)
	return nil
}

// Close unregisters the callback.
func (g *Gauges) Close() error {
	if g.reg == nil {
		return nil
	}
	return g.reg.Unregister()
}
