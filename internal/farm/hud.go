package farm

import (
	"fmt"

	"github.com/Faultbox/solarfarm/internal/engine/ui2d"
	"github.com/Faultbox/solarfarm/internal/sim"
)

// StatusLabel is the HUD wording for a battery status.
func StatusLabel(s sim.BatteryStatus) string {
	switch s {
	case sim.BatteryCharging:
		return "CARREGANDO"
	case sim.BatteryDischarging:
		return "DESCARREGANDO"
	case sim.BatteryFull:
		return "CARGA MÁXIMA"
	case sim.BatteryEmpty:
		return "SEM ENERGIA"
	case sim.BatteryIdle:
		return "OCIOSA"
	}
	return s.String()
}

// Title is the window caption: clock, panel model and azimuth.
func Title(state *sim.SimulationState) string {
	hours := int(state.Hour)
	minutes := int((state.Hour - float32(hours)) * 60)
	return fmt.Sprintf("Fazenda | Hora: %02d:%02d | Painel: %dW | Azimute: %.1f°",
		hours, minutes, state.Wattage, state.AzimuthDeg)
}

// HUDLine is one line of overlay text.
type HUDLine struct {
	Text  string
	Color ui2d.Color
}

// HUDLines returns the overlay text, top line first.
func HUDLines(state *sim.SimulationState) []HUDLine {
	b := state.Battery
	status := ui2d.ColorText
	switch b.Status {
	case sim.BatteryEmpty:
		status = ui2d.ColorWarning
	case sim.BatteryCharging, sim.BatteryFull:
		status = ui2d.ColorGood
	}
	return []HUDLine{
		{Text: fmt.Sprintf("Geração Placas: %.2f kW", state.PowerKW), Color: ui2d.ColorText},
		{Text: fmt.Sprintf("Consumo Fazenda: %.2f kW", state.LoadKW), Color: ui2d.ColorText},
		{Text: fmt.Sprintf("Bateria: %.2f/%.1f kWh (%.1f%%)", b.CurrentKWh, b.CapacityKWh, b.Percentage()), Color: ui2d.ColorText},
		{Text: "Status: " + StatusLabel(b.Status), Color: status},
	}
}

// HUD layout in pixels.
const (
	hudMargin  = 10
	hudPadding = 8
	hudSpacing = 6
	hudShadow  = 1
)

// DrawHUD queues the overlay panel and its lines on r. Each line gets a one
// pixel drop shadow so it stays readable over the bright sky.
func DrawHUD(r *ui2d.Renderer, lines []HUDLine) {
	lineH := r.LineHeight()
	var width float32
	for _, l := range lines {
		if w, _ := r.MeasureText(l.Text, 1); w > width {
			width = w
		}
	}
	height := float32(len(lines))*(lineH+hudSpacing) - hudSpacing

	r.DrawPanel(hudMargin, hudMargin, width+2*hudPadding, height+2*hudPadding, ui2d.ColorPanelBg, ui2d.ColorPanelBorder)
	y := float32(hudMargin + hudPadding)
	for _, l := range lines {
		r.DrawText(hudMargin+hudPadding+hudShadow, y+hudShadow, l.Text, 1, ui2d.ColorTextShadow)
		r.DrawText(hudMargin+hudPadding, y, l.Text, 1, l.Color)
		y += lineH + hudSpacing
	}
}
