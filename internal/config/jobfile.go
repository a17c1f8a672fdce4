package config

import (
	"errors"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"lathecam/internal/lathe"
)

// JobFile is the on-disk form of a job and the machine it runs on.
type JobFile struct {
	Job     JobSection     `yaml:"job" toml:"job"`
	Machine MachineSection `yaml:"machine" toml:"machine"`
}

type JobSection struct {
	Operation   string  `yaml:"operation" toml:"operation"`
	StartDepth  float64 `yaml:"start_depth" toml:"start_depth"`
	FinishDepth float64 `yaml:"finish_depth" toml:"finish_depth"`
	Step        float64 `yaml:"step" toml:"step"`
	FinishStep  float64 `yaml:"finish_step" toml:"finish_step"`
	StartCut    float64 `yaml:"start_cut" toml:"start_cut"`
	Length      float64 `yaml:"length" toml:"length"`
	Feed        float64 `yaml:"feed" toml:"feed"`
	Clearance   float64 `yaml:"clearance,omitempty" toml:"clearance,omitempty"`
}

type MachineSection struct {
	RPM        int  `yaml:"rpm" toml:"rpm"`
	SpindleCW  bool `yaml:"spindle_cw" toml:"spindle_cw"`
	Inch       bool `yaml:"inch" toml:"inch"`
	Tool       int  `yaml:"tool" toml:"tool"`
	RadiusMode bool `yaml:"radius_mode" toml:"radius_mode"`
}

type format int

const (
	yamlFormat format = iota
	tomlFormat
)

func formatFor(path string) (format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yamlFormat, nil
	case ".toml":
		return tomlFormat, nil
	}
	return 0, &UserError{
		Code:       ErrCodeFormat,
		Message:    "unsupported job file format",
		Context:    path,
		Suggestion: "use a .yaml, .yml or .toml file",
	}
}

// ReadJobFile decodes the job file at path on top of jf, so fields the file
// leaves out keep their current values.
func ReadJobFile(path string, jf *JobFile) error {
	f, err := formatFor(path)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &UserError{Code: ErrCodeFileNotFound, Message: "job file not found", Context: path, Underlying: err}
		}
		return &UserError{Code: ErrCodeJobParse, Message: "cannot read job file", Context: path, Underlying: err}
	}

	if f == tomlFormat {
		err = toml.Unmarshal(data, jf)
	} else {
		err = yaml.Unmarshal(data, jf)
	}
	if err != nil {
		return &UserError{Code: ErrCodeJobParse, Message: "cannot parse job file", Context: path, Underlying: err}
	}

	return nil
}

// WriteJobFile writes jf to path in the format its extension names.
func WriteJobFile(path string, jf *JobFile) error {
	f, err := formatFor(path)
	if err != nil {
		return err
	}

	var data []byte
	if f == tomlFormat {
		data, err = toml.Marshal(jf)
	} else {
		data, err = yaml.Marshal(jf)
	}
	if err != nil {
		return &UserError{Code: ErrCodeFileWrite, Message: "cannot encode job file", Context: path, Underlying: err}
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return &UserError{Code: ErrCodeFileWrite, Message: "cannot write job file", Context: path, Underlying: err}
	}

	return nil
}

// Validate checks the parameters a caller is responsible for before
// generation.
func (jf *JobFile) Validate() error {
	j := jf.Job

	if _, err := lathe.ParseOperation(j.Operation); err != nil {
		e := invalid("operation", "job type not recognised: %q", j.Operation)
		e.Suggestion = "use one of boring, facing, faceboring, turning, drilling"
		return e
	}

	for _, v := range []struct {
		name  string
		value float64
	}{
		{"start_depth", j.StartDepth},
		{"finish_depth", j.FinishDepth},
		{"step", j.Step},
		{"finish_step", j.FinishStep},
		{"start_cut", j.StartCut},
		{"length", j.Length},
		{"feed", j.Feed},
		{"clearance", j.Clearance},
	} {
		if math.IsNaN(v.value) || math.IsInf(v.value, 0) {
			return invalid(v.name, "%s must be a finite number", v.name)
		}
	}

	if j.Step <= 0 {
		return invalid("step", "step size must be greater than zero, got %g", j.Step)
	}
	if j.FinishStep < 0 {
		return invalid("finish_step", "finish step must not be negative, got %g", j.FinishStep)
	}
	if j.FinishDepth > j.StartDepth {
		e := invalid("finish_depth", "finish depth %g must not exceed start depth %g", j.FinishDepth, j.StartDepth)
		e.Suggestion = "swap the start and finish depths"
		return e
	}
	if j.Feed <= 0 {
		return invalid("feed", "feed rate must be greater than zero, got %g", j.Feed)
	}
	if j.Clearance < 0 {
		return invalid("clearance", "clearance must not be negative, got %g", j.Clearance)
	}
	if jf.Machine.RPM < 0 {
		return invalid("rpm", "rpm must not be negative, got %d", jf.Machine.RPM)
	}
	if jf.Machine.Tool < 0 {
		return invalid("tool", "tool number must not be negative, got %d", jf.Machine.Tool)
	}

	passes := lathe.Job{StartDepth: j.StartDepth, FinishDepth: j.FinishDepth, Step: j.Step, FinishStep: j.FinishStep}
	var perr *lathe.ParameterError
	if err := lathe.CheckPasses(passes); errors.As(err, &perr) {
		e := invalid(perr.Field, "%s %g %s", perr.Field, perr.Value, perr.Reason)
		e.Suggestion = "use a larger step or a smaller depth range"
		return e
	}

	return nil
}

// Params converts a validated job file into generator parameters.
func (jf *JobFile) Params() (lathe.Job, lathe.Machine, error) {
	if err := jf.Validate(); err != nil {
		return lathe.Job{}, lathe.Machine{}, err
	}

	op, _ := lathe.ParseOperation(jf.Job.Operation)
	j := jf.Job
	job := lathe.Job{
		Operation:   op,
		StartDepth:  j.StartDepth,
		FinishDepth: j.FinishDepth,
		Step:        j.Step,
		FinishStep:  j.FinishStep,
		StartCut:    j.StartCut,
		Length:      j.Length,
		Feed:        j.Feed,
		Clearance:   j.Clearance,
	}

	m := jf.Machine
	machine := lathe.Machine{
		RPM:        m.RPM,
		SpindleCW:  m.SpindleCW,
		Inch:       m.Inch,
		Tool:       m.Tool,
		RadiusMode: m.RadiusMode,
	}

	return job, machine, nil
}
