package sim

import "github.com/Faultbox/solarfarm/pkg/math"

// Grid constants for the panel field.
const (
	SpacingX = 4.0
	SpacingZ = 5.0
	// FieldOffsetZ pushes the whole field forward of the origin.
	FieldOffsetZ = -10.0

	MinCols = 1
	MaxCols = 10
)

// PanelLayout is a rows x cols grid of panel base positions centered on x=0.
type PanelLayout struct {
	Rows      int
	Cols      int
	Positions []math.Vec3
}

// NewPanelLayout builds the grid for rows x cols.
func NewPanelLayout(rows, cols int) PanelLayout {
	l := PanelLayout{Rows: rows, Cols: cols}
	l.rebuild()
	return l
}

// Count returns the number of panels in the field.
func (l *PanelLayout) Count() int {
	return len(l.Positions)
}

// SetCols changes the column count, clamped to [MinCols, MaxCols], and
// recomputes the positions. It reports whether the count changed.
func (l *PanelLayout) SetCols(cols int) bool {
	if cols < MinCols {
		cols = MinCols
	}
	if cols > MaxCols {
		cols = MaxCols
	}
	if cols == l.Cols {
		return false
	}
	l.Cols = cols
	l.rebuild()
	return true
}

// AddCols adjusts the column count by delta.
func (l *PanelLayout) AddCols(delta int) bool {
	return l.SetCols(l.Cols + delta)
}

func (l *PanelLayout) rebuild() {
	positions := make([]math.Vec3, 0, l.Rows*l.Cols)
	for i := 0; i < l.Rows; i++ {
		for j := 0; j < l.Cols; j++ {
			x := (float32(j) - float32(l.Cols-1)/2) * SpacingX
			z := (float32(i)-float32(l.Rows-1)/2)*SpacingZ + FieldOffsetZ
			positions = append(positions, math.Vec3{X: x, Y: 0, Z: z})
		}
	}
	l.Positions = positions
}
