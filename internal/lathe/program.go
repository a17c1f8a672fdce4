package lathe

import (
	"fmt"
	"strings"
)

const EndOfProgram = "M2"

// strategy is the toolpath generator chosen for an operation.
type strategy struct {
	emitter Emitter
}

var (
	turning = strategy{emitter: LongitudinalCut{}}

	// facing and face boring share one lateral cut; nothing yet calls for a
	// different retract when boring through a faced surface
	lateralCut = strategy{emitter: TransverseCut{}}
)

var strategies = map[Operation]strategy{
	Turning:    turning,
	Facing:     lateralCut,
	FaceBoring: lateralCut,
}

// Program is a generated G-code program. When the operation has no toolpath
// generator, Marker holds the message that stands in for the motion blocks.
type Program struct {
	Operation Operation
	Preamble  string
	Passes    Passes
	Blocks    []Block
	Marker    string
}

// Generate builds the program for job on machine. A nil formatter selects the
// LinuxCNC preamble. Operations without a generator give a program whose
// Unsupported method returns true rather than an error.
func Generate(job Job, machine Machine, f PreambleFormatter) (*Program, error) {
	if f == nil {
		f = LinuxCNC{}
	}

	p := &Program{
		Operation: job.Operation,
		Preamble:  f.Preamble(machine),
	}

	s, ok := strategies[job.Operation]
	if !ok {
		p.Marker = unsupportedMarker(job.Operation)
		return p, nil
	}

	passes, err := PlanPasses(job)
	if err != nil {
		return nil, err
	}
	p.Passes = passes
	p.Blocks = s.emitter.Emit(passes, job)

	return p, nil
}

func unsupportedMarker(op Operation) string {
	name := op.String()
	return fmt.Sprintf("ERROR: %s functionality not yet available", strings.ToUpper(name[:1])+name[1:])
}

func (p *Program) Unsupported() bool {
	return p.Marker != ""
}

func (p *Program) Body() string {
	if p.Unsupported() {
		return p.Marker
	}
	return BlocksToGcode(p.Blocks)
}

func (p *Program) String() string {
	return p.Preamble + "\n" + p.Body() + "\n" + EndOfProgram
}
