package lathe

import (
	"fmt"
	"strings"
)

// PreambleFormatter renders the setup codes that precede the motion blocks.
type PreambleFormatter interface {
	Preamble(m Machine) string
}

// LinuxCNC writes an absolute-coordinate XZ-plane lathe preamble.
type LinuxCNC struct{}

func (LinuxCNC) Preamble(m Machine) string {
	gcode := strings.Builder{}

	units := "G21" // mm
	if m.Inch {
		units = "G20"
	}
	latheMode := "G7" // diameter
	if m.RadiusMode {
		latheMode = "G8"
	}
	dir := "M4"
	if m.SpindleCW {
		dir = "M3"
	}

	// G64 path blending, G18 XZ plane
	fmt.Fprintf(&gcode, "G90 %s G64 G18 %s\n", units, latheMode)
	fmt.Fprintf(&gcode, "M6 T%d G43\n", m.Tool)
	fmt.Fprintf(&gcode, "G97 S%d %s\n", m.RPM, dir)

	return gcode.String()
}
