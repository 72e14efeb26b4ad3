package farm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/solarfarm/internal/engine/ui2d"
	"github.com/Faultbox/solarfarm/internal/sim"
)

func TestTitle(t *testing.T) {
	state := sim.NewSimulationState(sim.DefaultParams())
	assert.Equal(t, "Fazenda | Hora: 12:00 | Painel: 610W | Azimute: 0.0°", Title(state))

	state.StepHour(-sim.HourStep)
	state.RotateAzimuth(-sim.AzimuthStep)
	state.SelectPanel(160)
	assert.Equal(t, "Fazenda | Hora: 11:30 | Painel: 160W | Azimute: 355.0°", Title(state))
}

func TestHUDLines(t *testing.T) {
	state := sim.NewSimulationState(sim.DefaultParams())
	state.Step(1)

	lines := HUDLines(state)
	require.Len(t, lines, 4)
	assert.Equal(t, "Geração Placas: 3.24 kW", lines[0].Text)
	assert.Equal(t, "Consumo Fazenda: 2.00 kW", lines[1].Text)
	assert.Equal(t, "Bateria: 40.00/50.0 kWh (80.0%)", lines[2].Text)
	assert.Equal(t, "Status: CARREGANDO", lines[3].Text)
	assert.Equal(t, ui2d.ColorGood, lines[3].Color)
}

func TestStatusLabel(t *testing.T) {
	tests := []struct {
		status sim.BatteryStatus
		want   string
	}{
		{sim.BatteryIdle, "OCIOSA"},
		{sim.BatteryCharging, "CARREGANDO"},
		{sim.BatteryDischarging, "DESCARREGANDO"},
		{sim.BatteryFull, "CARGA MÁXIMA"},
		{sim.BatteryEmpty, "SEM ENERGIA"},
		{sim.BatteryStatus(42), "BatteryStatus(42)"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StatusLabel(tt.status))
	}
}
