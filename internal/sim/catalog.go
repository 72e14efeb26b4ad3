package sim

import "github.com/Faultbox/solarfarm/pkg/math"

// PanelSpec describes one catalog panel model.
type PanelSpec struct {
	Wattage int
	// Size is width, thickness and depth in world units.
	Size math.Vec3
}

// DefaultWattage is the panel selected at startup.
const DefaultWattage = 610

var catalog = []PanelSpec{
	{Wattage: 160, Size: math.Vec3{X: 1.5, Y: 0.05, Z: 0.7}},
	{Wattage: 330, Size: math.Vec3{X: 2.0, Y: 0.05, Z: 1.0}},
	{Wattage: 610, Size: math.Vec3{X: 2.4, Y: 0.05, Z: 1.3}},
}

// Catalog returns the available panel models ordered by wattage.
func Catalog() []PanelSpec {
	out := make([]PanelSpec, len(catalog))
	copy(out, catalog)
	return out
}

// LookupPanel returns the catalog entry for wattage.
func LookupPanel(wattage int) (PanelSpec, bool) {
	for _, p := range catalog {
		if p.Wattage == wattage {
			return p, true
		}
	}
	return PanelSpec{}, false
}
