package sim

import "github.com/chewxy/math32"

// Params seeds a SimulationState.
type Params struct {
	Hour        float32
	Wattage     int
	Rows        int
	Cols        int
	TiltDeg     float32
	AzimuthDeg  float32
	LoadKW      float32
	CapacityKWh float32
	InitialKWh  float32
	MaxChargeKW float32
}

// DefaultParams returns the startup scenario: noon, 2x3 field of 610 W
// panels tilted 20 degrees, half-full battery bank.
func DefaultParams() Params {
	return Params{
		Hour:        12,
		Wattage:     DefaultWattage,
		Rows:        2,
		Cols:        3,
		TiltDeg:     20,
		AzimuthDeg:  0,
		LoadKW:      DefaultFarmLoadKW,
		CapacityKWh: DefaultCapacityKWh,
		InitialKWh:  DefaultInitialKWh,
		MaxChargeKW: DefaultMaxChargeKW,
	}
}

// HourStep and AzimuthStep are the increments applied by the controls.
const (
	HourStep    = 0.5
	AzimuthStep = 5.0
)

// SimulationState is everything the frame loop mutates. It is owned by the
// render thread and passed by pointer; nothing here is safe for concurrent use.
type SimulationState struct {
	Hour       float32
	Wattage    int
	Layout     PanelLayout
	TiltDeg    float32
	AzimuthDeg float32
	LoadKW     float32
	Battery    BatteryState

	// Derived by Step.
	Sun        SunState
	Efficiency float32
	PowerKW    float32
	NetKW      float32
}

// NewSimulationState builds the state for p and derives the first frame's
// solar values without advancing the battery.
func NewSimulationState(p Params) *SimulationState {
	s := &SimulationState{
		Hour:       wrap(p.Hour, 24),
		Wattage:    p.Wattage,
		Layout:     NewPanelLayout(p.Rows, p.Cols),
		TiltDeg:    p.TiltDeg,
		AzimuthDeg: wrap(p.AzimuthDeg, 360),
		LoadKW:     p.LoadKW,
		Battery:    NewBattery(p.CapacityKWh, p.InitialKWh, p.MaxChargeKW),
	}
	if _, ok := LookupPanel(s.Wattage); !ok {
		s.Wattage = DefaultWattage
	}
	s.updateSolar()
	return s
}

// Panel returns the selected catalog entry.
func (s *SimulationState) Panel() PanelSpec {
	p, _ := LookupPanel(s.Wattage)
	return p
}

// SelectPanel switches the panel model. Unknown wattages are ignored.
func (s *SimulationState) SelectPanel(wattage int) bool {
	if _, ok := LookupPanel(wattage); !ok {
		return false
	}
	s.Wattage = wattage
	return true
}

// StepHour moves the clock by delta hours, wrapping into [0,24).
func (s *SimulationState) StepHour(delta float32) {
	s.Hour = wrap(s.Hour+delta, 24)
}

// RotateAzimuth turns the panels by delta degrees, wrapping into [0,360).
func (s *SimulationState) RotateAzimuth(delta float32) {
	s.AzimuthDeg = wrap(s.AzimuthDeg+delta, 360)
}

// Step advances the simulation by dt seconds: sun, panel output, then
// battery.
func (s *SimulationState) Step(dt float32) {
	s.updateSolar()
	s.NetKW = s.Battery.Update(s.PowerKW, s.LoadKW, dt)
}

func (s *SimulationState) updateSolar() {
	s.Sun = NewSunState(s.Hour)
	normal := PanelNormal(s.TiltDeg, s.AzimuthDeg)
	s.Efficiency = Efficiency(normal, s.Sun.Position)
	s.PowerKW = GeneratedPowerKW(s.Layout.Count(), s.Wattage, s.Efficiency, s.Sun.Irradiance)
}

func wrap(x, period float32) float32 {
	x = math32.Mod(x, period)
	if x < 0 {
		x += period
	}
	return x
}
