package lathe

// DefaultClearance is the distance kept between tool and stock on non-cutting
// moves when a Job does not set its own.
const DefaultClearance = 1.0

// Job holds the cut parameters for one program. Depths are measured on the axis
// the operation steps along: X for turning, Z for facing.
type Job struct {
	Operation Operation

	StartDepth  float64 // stock dimension before cutting
	FinishDepth float64 // dimension after the finishing pass
	Step        float64 // roughing depth of cut
	FinishStep  float64 // finishing depth of cut

	StartCut float64 // start position on the cutting axis
	Length   float64 // signed travel; negative cuts away from the chuck
	Feed     float64

	Clearance float64 // zero means DefaultClearance
}

// Machine holds the controller settings that go into the program preamble.
type Machine struct {
	RPM        int
	SpindleCW  bool
	Inch       bool
	Tool       int
	RadiusMode bool // false means diameter mode (G7)
}

func (j Job) clearance() float64 {
	if j.Clearance == 0 {
		return DefaultClearance
	}
	return j.Clearance
}

// End is the position on the cutting axis where every pass finishes.
func (j Job) End() float64 {
	return j.StartCut - j.Length
}

// Retract is the depth the tool backs off to after each pass.
func (j Job) Retract() float64 {
	return j.StartDepth + j.clearance()
}
