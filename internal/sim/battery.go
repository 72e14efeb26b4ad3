package sim

import (
	"fmt"

	"github.com/chewxy/math32"
)

// BatteryStatus is the discrete state shown on the HUD.
type BatteryStatus int

const (
	BatteryIdle BatteryStatus = iota
	BatteryCharging
	BatteryDischarging
	BatteryFull
	BatteryEmpty
)

var batteryStatusNames = [...]string{
	BatteryIdle:        "IDLE",
	BatteryCharging:    "CHARGING",
	BatteryDischarging: "DISCHARGING",
	BatteryFull:        "FULL",
	BatteryEmpty:       "EMPTY",
}

func (s BatteryStatus) String() string {
	if s < 0 || int(s) >= len(batteryStatusNames) {
		return fmt.Sprintf("BatteryStatus(%d)", int(s))
	}
	return batteryStatusNames[s]
}

// Battery defaults.
const (
	DefaultCapacityKWh = 50.0
	DefaultInitialKWh  = 40.0
	DefaultMaxChargeKW = 15.0
	DefaultFarmLoadKW  = 2.0
	secondsPerHour     = 3600.0
)

// BatteryState is the storage bank fed by the panel field.
// CurrentKWh always stays within [0, CapacityKWh].
type BatteryState struct {
	CapacityKWh float32
	CurrentKWh  float32
	MaxChargeKW float32
	Status      BatteryStatus
}

// NewBattery returns a battery holding initialKWh, clamped to capacity.
func NewBattery(capacityKWh, initialKWh, maxChargeKW float32) BatteryState {
	return BatteryState{
		CapacityKWh: capacityKWh,
		CurrentKWh:  math32.Min(math32.Max(initialKWh, 0), capacityKWh),
		MaxChargeKW: maxChargeKW,
		Status:      BatteryIdle,
	}
}

// Update integrates one frame of dt seconds and returns the net power
// (generation minus load) that drove it. Charging is limited to MaxChargeKW;
// discharging is not limited. Status depends only on the sign of the net
// power and whether a bound was hit this frame.
func (b *BatteryState) Update(generatedKW, loadKW, dt float32) float32 {
	net := generatedKW - loadKW

	if net > 0 {
		charge := math32.Min(net, b.MaxChargeKW)
		b.CurrentKWh += charge * dt / secondsPerHour
		b.Status = BatteryCharging
	} else {
		b.CurrentKWh -= math32.Abs(net) * dt / secondsPerHour
		b.Status = BatteryDischarging
	}

	if b.CurrentKWh <= 0 {
		b.CurrentKWh = 0
		if net < 0 {
			b.Status = BatteryEmpty
		}
	}
	if b.CurrentKWh >= b.CapacityKWh {
		b.CurrentKWh = b.CapacityKWh
		if net > 0 {
			b.Status = BatteryFull
		}
	}
	return net
}

// Percentage returns the charge level in [0,100].
func (b BatteryState) Percentage() float32 {
	if b.CapacityKWh <= 0 {
		return 0
	}
	return b.CurrentKWh / b.CapacityKWh * 100
}
