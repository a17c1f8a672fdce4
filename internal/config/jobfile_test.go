package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lathecam/internal/lathe"
)

func validJobFile() *JobFile {
	return &JobFile{
		Job: JobSection{
			Operation:   "turning",
			StartDepth:  10,
			FinishDepth: 8,
			Step:        1,
			FinishStep:  0.2,
			Length:      5,
			Feed:        100,
		},
		Machine: MachineSection{RPM: 1000, SpindleCW: true, Tool: 1, RadiusMode: true},
	}
}

func TestReadJobFileYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "job.yaml")
	data := `job:
  operation: facing
  start_depth: 2
  finish_depth: 0
  step: 0.5
  feed: 80
machine:
  rpm: 600
  inch: true
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	jf := (&Config{Clearance: 1, Tool: 4}).Defaults()
	require.NoError(t, ReadJobFile(path, jf))

	assert.Equal(t, "facing", jf.Job.Operation)
	assert.Equal(t, 0.5, jf.Job.Step)
	assert.Equal(t, 600, jf.Machine.RPM)
	assert.True(t, jf.Machine.Inch)
	// untouched by the file
	assert.Equal(t, 4, jf.Machine.Tool)
	assert.Equal(t, 1.0, jf.Job.Clearance)
}

func TestReadJobFileTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "job.toml")
	data := `[job]
operation = "turning"
start_depth = 25.4
finish_depth = 20.0
step = 0.75
length = -12.5
feed = 0.1

[machine]
rpm = 1200
radius_mode = false
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	jf := &JobFile{}
	require.NoError(t, ReadJobFile(path, jf))

	assert.Equal(t, 25.4, jf.Job.StartDepth)
	assert.Equal(t, -12.5, jf.Job.Length)
	assert.Equal(t, 1200, jf.Machine.RPM)
	assert.False(t, jf.Machine.RadiusMode)
}

func TestReadJobFileErrors(t *testing.T) {
	dir := t.TempDir()

	err := ReadJobFile(filepath.Join(dir, "job.json"), &JobFile{})
	assert.ErrorIs(t, err, &UserError{Code: ErrCodeFormat})

	err = ReadJobFile(filepath.Join(dir, "missing.yaml"), &JobFile{})
	assert.ErrorIs(t, err, &UserError{Code: ErrCodeFileNotFound})

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("job: [1, 2"), 0o644))
	err = ReadJobFile(bad, &JobFile{})
	assert.ErrorIs(t, err, &UserError{Code: ErrCodeJobParse})
}

func TestWriteJobFileRoundTrip(t *testing.T) {
	for _, name := range []string{"job.yaml", "job.toml"} {
		path := filepath.Join(t.TempDir(), name)
		jf := validJobFile()

		require.NoError(t, WriteJobFile(path, jf))

		got := &JobFile{}
		require.NoError(t, ReadJobFile(path, got))
		assert.Equal(t, jf, got, name)
	}
}

func TestValidate(t *testing.T) {
	require.NoError(t, validJobFile().Validate())

	cases := []struct {
		field  string
		modify func(jf *JobFile)
	}{
		{"operation", func(jf *JobFile) { jf.Job.Operation = "threading" }},
		{"step", func(jf *JobFile) { jf.Job.Step = 0 }},
		{"step", func(jf *JobFile) { jf.Job.Step = -0.5 }},
		{"finish_step", func(jf *JobFile) { jf.Job.FinishStep = -0.1 }},
		{"finish_depth", func(jf *JobFile) { jf.Job.FinishDepth = 11 }},
		{"feed", func(jf *JobFile) { jf.Job.Feed = 0 }},
		{"clearance", func(jf *JobFile) { jf.Job.Clearance = -1 }},
		{"rpm", func(jf *JobFile) { jf.Machine.RPM = -5 }},
		{"tool", func(jf *JobFile) { jf.Machine.Tool = -1 }},
		{"step", func(jf *JobFile) { jf.Job.StartDepth, jf.Job.FinishDepth, jf.Job.Step = 1e17, 1e16, 1 }},
		{"step", func(jf *JobFile) { jf.Job.StartDepth, jf.Job.Step = 1e6, 0.001 }},
	}

	for _, c := range cases {
		jf := validJobFile()
		c.modify(jf)

		err := jf.Validate()
		var uerr *UserError
		require.True(t, errors.As(err, &uerr), "expected UserError for %s, got %v", c.field, err)
		assert.Equal(t, ErrCodeJobInvalid, uerr.Code)
		assert.Equal(t, c.field, uerr.Context)
	}
}

func TestParams(t *testing.T) {
	job, machine, err := validJobFile().Params()
	require.NoError(t, err)

	assert.Equal(t, lathe.Turning, job.Operation)
	assert.Equal(t, 10.0, job.StartDepth)
	assert.Equal(t, 100.0, job.Feed)
	assert.Equal(t, lathe.Machine{RPM: 1000, SpindleCW: true, Tool: 1, RadiusMode: true}, machine)

	jf := validJobFile()
	jf.Job.Step = 0
	_, _, err = jf.Params()
	assert.Error(t, err)
}

func TestUserErrorMessage(t *testing.T) {
	err := &UserError{Message: "cannot read job file", Context: "a.yaml", Underlying: errors.New("boom")}
	assert.Equal(t, "cannot read job file (at a.yaml): boom", err.Error())
	assert.ErrorContains(t, err, "boom")
}
