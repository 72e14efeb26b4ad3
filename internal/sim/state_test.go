package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimulationStateDefaults(t *testing.T) {
	s := NewSimulationState(DefaultParams())

	assert.Equal(t, float32(12), s.Hour)
	assert.Equal(t, 610, s.Panel().Wattage)
	assert.Equal(t, 6, s.Layout.Count())
	assert.Equal(t, BatteryIdle, s.Battery.Status)
	assert.Greater(t, s.PowerKW, float32(0), "noon output is derived up front")
}

func TestSimulationStateHourWraps(t *testing.T) {
	s := NewSimulationState(DefaultParams())
	s.Hour = 23.5
	s.StepHour(HourStep)
	assert.Equal(t, float32(0), s.Hour)

	s.StepHour(-HourStep)
	assert.Equal(t, float32(23.5), s.Hour)
}

func TestSimulationStateAzimuthWraps(t *testing.T) {
	s := NewSimulationState(DefaultParams())
	s.RotateAzimuth(-AzimuthStep)
	assert.Equal(t, float32(355), s.AzimuthDeg)

	s.RotateAzimuth(AzimuthStep)
	assert.Equal(t, float32(0), s.AzimuthDeg)
}

func TestSimulationStateSelectPanel(t *testing.T) {
	s := NewSimulationState(DefaultParams())
	assert.True(t, s.SelectPanel(160))
	assert.Equal(t, float32(1.5), s.Panel().Size.X)
	assert.False(t, s.SelectPanel(999))
	assert.Equal(t, 160, s.Wattage)
}

func TestSimulationStateStepAtNight(t *testing.T) {
	p := DefaultParams()
	p.Hour = 22
	s := NewSimulationState(p)
	s.Step(3600)

	assert.Zero(t, s.PowerKW)
	assert.Equal(t, -p.LoadKW, s.NetKW)
	assert.InDelta(t, 38, s.Battery.CurrentKWh, 1e-4)
	assert.Equal(t, BatteryDischarging, s.Battery.Status)
}

func TestSimulationStateStepAtNoonCharges(t *testing.T) {
	s := NewSimulationState(DefaultParams())
	s.Step(1)

	assert.Equal(t, BatteryCharging, s.Battery.Status)
	assert.InDelta(t, s.PowerKW-s.LoadKW, s.NetKW, 1e-6)
}

func TestSimulationStateUnknownPanelFallsBack(t *testing.T) {
	p := DefaultParams()
	p.Wattage = 42
	s := NewSimulationState(p)
	assert.Equal(t, DefaultWattage, s.Wattage)
}
