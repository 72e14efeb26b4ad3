package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/solarfarm/internal/sim"
)

func openMemory(t *testing.T) *Store {
	t.Helper()
	s, err := Open(DriverSQLite, "")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := Open("mysql", "root@/farm")
	assert.ErrorIs(t, err, ErrUnknownDriver)
}

func TestRecordAndRecent(t *testing.T) {
	store := openMemory(t)
	ctx := context.Background()
	base := time.Date(2024, 6, 21, 12, 0, 0, 0, time.UTC)

	state := sim.NewSimulationState(sim.DefaultParams())
	for i := 0; i < 5; i++ {
		state.Step(1)
		require.NoError(t, store.Record(ctx, NewSample(state, base.Add(time.Duration(i)*time.Minute))))
		state.StepHour(sim.HourStep)
	}

	recent, err := store.Recent(ctx, 3)
	require.NoError(t, err)
	require.Len(t, recent, 3)

	// Newest first.
	assert.True(t, recent[0].RecordedAt.Equal(base.Add(4*time.Minute)), "got %v", recent[0].RecordedAt)
	assert.True(t, recent[2].RecordedAt.Equal(base.Add(2*time.Minute)), "got %v", recent[2].RecordedAt)
	assert.Equal(t, float32(14), recent[0].Hour)
	assert.Equal(t, 6, recent[0].Panels)
	assert.Equal(t, 610, recent[0].Wattage)
	assert.NotZero(t, recent[0].ID)
}

func TestRecordBatchAndSummarize(t *testing.T) {
	store := openMemory(t)
	ctx := context.Background()

	samples := []Sample{
		{RecordedAt: time.Unix(10, 0), PowerKW: 1, BatteryKWh: 5},
		{RecordedAt: time.Unix(20, 0), PowerKW: 3, BatteryKWh: 6},
		{RecordedAt: time.Unix(30, 0), PowerKW: 2, BatteryKWh: 4},
	}
	require.NoError(t, store.RecordBatch(ctx, samples))
	require.NoError(t, store.RecordBatch(ctx, nil))

	sum, err := store.Summarize(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), sum.Samples)
	assert.InDelta(t, 2, sum.AvgPowerKW, 1e-6)
	assert.InDelta(t, 3, sum.PeakPowerKW, 1e-6)
	assert.InDelta(t, 4, sum.MinBattery, 1e-6)
	assert.InDelta(t, 6, sum.MaxBattery, 1e-6)
}

func TestSummarizeEmpty(t *testing.T) {
	store := openMemory(t)

	sum, err := store.Summarize(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Summary{}, sum)
}

func TestNewSampleMirrorsState(t *testing.T) {
	state := sim.NewSimulationState(sim.DefaultParams())
	state.Step(1)
	at := time.Unix(1000, 0)

	s := NewSample(state, at)
	assert.Equal(t, at, s.RecordedAt)
	assert.Equal(t, state.PowerKW, s.PowerKW)
	assert.Equal(t, state.NetKW, s.NetKW)
	assert.Equal(t, state.Battery.CurrentKWh, s.BatteryKWh)
	assert.Equal(t, state.Battery.Percentage(), s.BatteryPct)
	assert.Equal(t, state.Battery.Status.String(), s.Status)
	assert.Equal(t, state.Sun.Irradiance, s.Irradiance)
}
