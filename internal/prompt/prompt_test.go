package prompt

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lathecam/internal/config"
)

func TestJob(t *testing.T) {
	answers := strings.Join([]string{
		"Turning",
		"maybe", // asked again
		"y",
		"10", "8", "1", "0.2", "0", "5", "100",
		"1000",
		"n",
		"n",
		"2",
	}, "\n") + "\n"

	var out bytes.Buffer
	jf := &config.JobFile{Job: config.JobSection{Clearance: 0.5}}
	require.NoError(t, New(strings.NewReader(answers), &out).Job(jf))

	assert.Equal(t, "turning", jf.Job.Operation)
	assert.Equal(t, 10.0, jf.Job.StartDepth)
	assert.Equal(t, 8.0, jf.Job.FinishDepth)
	assert.Equal(t, 0.2, jf.Job.FinishStep)
	assert.Equal(t, 100.0, jf.Job.Feed)
	assert.Equal(t, 0.5, jf.Job.Clearance)
	assert.Equal(t, config.MachineSection{RPM: 1000, SpindleCW: false, Inch: true, Tool: 2, RadiusMode: true}, jf.Machine)

	assert.Equal(t, 2, strings.Count(out.String(), "Are you entering values as radius?"))
}

func TestBadNumber(t *testing.T) {
	_, err := New(strings.NewReader("ten\n"), &bytes.Buffer{}).Float("Start  depth:    ")
	assert.ErrorIs(t, err, &config.UserError{Code: config.ErrCodeInput})
	assert.ErrorContains(t, err, `"ten"`)
}

func TestUnknownOperation(t *testing.T) {
	_, err := New(strings.NewReader("knurling\n"), &bytes.Buffer{}).Operation("Job type:    ")
	assert.ErrorIs(t, err, &config.UserError{Code: config.ErrCodeInput})
}

func TestEndOfInput(t *testing.T) {
	p := New(strings.NewReader("42"), &bytes.Buffer{})

	i, err := p.Int("RPM:    ")
	require.NoError(t, err)
	assert.Equal(t, 42, i)

	_, err = p.Bool("Spindle CW (y/n):      ")
	assert.Error(t, err)
}
