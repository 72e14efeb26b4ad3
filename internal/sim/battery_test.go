package sim

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBatteryCharging(t *testing.T) {
	b := NewBattery(50, 40, 15)
	net := b.Update(5, 2, 3600)

	assert.Equal(t, float32(3), net)
	assert.InDelta(t, 43, b.CurrentKWh, 1e-4)
	assert.Equal(t, BatteryCharging, b.Status)
}

func TestBatteryChargeLimitedByMaxRate(t *testing.T) {
	b := NewBattery(50, 10, 15)
	b.Update(40, 2, 3600)

	// 38 kW surplus, only 15 kW accepted
	assert.InDelta(t, 25, b.CurrentKWh, 1e-4)
}

func TestBatteryDischargeUnlimited(t *testing.T) {
	b := NewBattery(50, 40, 15)
	net := b.Update(0, 20, 1800)

	assert.Equal(t, float32(-20), net)
	assert.InDelta(t, 30, b.CurrentKWh, 1e-4)
	assert.Equal(t, BatteryDischarging, b.Status)
}

func TestBatteryZeroNetDischarges(t *testing.T) {
	b := NewBattery(50, 40, 15)
	b.Update(2, 2, 1)

	assert.Equal(t, float32(40), b.CurrentKWh)
	assert.Equal(t, BatteryDischarging, b.Status)
}

func TestBatteryStartsIdle(t *testing.T) {
	b := NewBattery(50, 80, 15)
	assert.Equal(t, BatteryIdle, b.Status)
	assert.Equal(t, float32(50), b.CurrentKWh)
	assert.Equal(t, float32(100), b.Percentage())
}

func TestBatteryReachesFull(t *testing.T) {
	b := NewBattery(50, 40, 15)
	for i := 0; i < 10; i++ {
		b.Update(12, 2, 3600)
	}
	require.Equal(t, BatteryFull, b.Status)
	assert.Equal(t, float32(50), b.CurrentKWh)

	b.Update(12, 2, 3600)
	assert.Equal(t, float32(50), b.CurrentKWh, "full battery must not keep charging")
	assert.Equal(t, BatteryFull, b.Status)
}

func TestBatteryReachesEmpty(t *testing.T) {
	b := NewBattery(50, 40, 15)
	for i := 0; i < 25; i++ {
		b.Update(0, 2, 3600)
	}
	require.Equal(t, BatteryEmpty, b.Status)
	assert.Zero(t, b.CurrentKWh)

	b.Update(0, 2, 3600)
	assert.Zero(t, b.CurrentKWh, "empty battery must not go negative")
	assert.Equal(t, BatteryEmpty, b.Status)
}

func TestBatteryEmptyThenCharging(t *testing.T) {
	b := NewBattery(50, 0, 15)
	b.Update(0, 2, 10)
	require.Equal(t, BatteryEmpty, b.Status)

	b.Update(5, 2, 10)
	assert.Equal(t, BatteryCharging, b.Status)
	assert.Greater(t, b.CurrentKWh, float32(0))
}

func TestBatteryStaysInBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	b := NewBattery(50, 40, 15)

	for i := 0; i < 5000; i++ {
		gen := rng.Float32() * 30
		load := rng.Float32() * 30
		dt := rng.Float32() * 7200
		b.Update(gen, load, dt)

		if b.CurrentKWh < 0 || b.CurrentKWh > b.CapacityKWh {
			t.Fatalf("step %d: current %v outside [0, %v]", i, b.CurrentKWh, b.CapacityKWh)
		}
		p := b.Percentage()
		if p < 0 || p > 100 {
			t.Fatalf("step %d: percentage %v outside [0, 100]", i, p)
		}
	}
}

func TestBatteryStatusString(t *testing.T) {
	assert.Equal(t, "CHARGING", BatteryCharging.String())
	assert.Equal(t, "EMPTY", BatteryEmpty.String())
	assert.Equal(t, "BatteryStatus(9)", BatteryStatus(9).String())
}
