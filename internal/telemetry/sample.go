// Package telemetry records farm samples to a SQL store and exposes the
// latest values as OpenTelemetry gauges.
package telemetry

import (
	"time"

	"github.com/Faultbox/solarfarm/internal/sim"
)

// Sample is one snapshot of the farm as persisted by the Store.
type Sample struct {
	ID         uint      `gorm:"primarykey"`
	RecordedAt time.Time `gorm:"index"`
	Hour       float32
	Wattage    int
	Panels     int
	TiltDeg    float32
	AzimuthDeg float32
	Efficiency float32
	Irradiance float32
	PowerKW    float32 `gorm:"column:power_kw"`
	LoadKW     float32 `gorm:"column:load_kw"`
	NetKW      float32 `gorm:"column:net_kw"`
	BatteryKWh float32 `gorm:"column:battery_kwh"`
	BatteryPct float32 `gorm:"column:battery_pct"`
	Status     string  `gorm:"size:16"`
}

// TableName pins the table name independent of the struct name.
func (Sample) TableName() string {
	return "farm_samples"
}

// NewSample snapshots s at the given time.
func NewSample(s *sim.SimulationState, at time.Time) Sample {
	return Sample{
		RecordedAt: at,
		Hour:       s.Hour,
		Wattage:    s.Wattage,
		Panels:     s.Layout.Count(),
		TiltDeg:    s.TiltDeg,
		AzimuthDeg: s.AzimuthDeg,
		Efficiency: s.Efficiency,
		Irradiance: s.Sun.Irradiance,
		PowerKW:    s.PowerKW,
		LoadKW:     s.LoadKW,
		NetKW:      s.NetKW,
		BatteryKWh: s.Battery.CurrentKWh,
		BatteryPct: s.Battery.Percentage(),
		Status:     s.Battery.Status.String(),
	}
}
