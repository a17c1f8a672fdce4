package app

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lathecam/internal/config"
	"lathecam/internal/stock"
)

func testJobFile(op string) *config.JobFile {
	return &config.JobFile{
		Job: config.JobSection{
			Operation:   op,
			StartDepth:  10,
			FinishDepth: 8,
			Step:        1,
			FinishStep:  0.2,
			Length:      5,
			Feed:        100,
		},
		Machine: config.MachineSection{RPM: 1000, SpindleCW: true, Tool: 1, RadiusMode: true},
	}
}

func newTestApp(t *testing.T) (*App, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var logs, stdout bytes.Buffer
	return New(config.NewLogger("debug", &logs), &stdout), &logs, &stdout
}

func TestRunWritesProgram(t *testing.T) {
	a, logs, stdout := newTestApp(t)
	dir := t.TempDir()
	out := filepath.Join(dir, "part.ngc")

	p, err := a.Run(testJobFile("turning"), Options{Output: out})
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, p.String(), string(data))
	assert.True(t, strings.HasSuffix(string(data), "\nM2"))
	assert.Empty(t, stdout.String())
	assert.Contains(t, logs.String(), "successfully wrote to")
}

func TestRunStdout(t *testing.T) {
	a, _, stdout := newTestApp(t)

	p, err := a.Run(testJobFile("facing"), Options{Output: StdoutPath})
	require.NoError(t, err)
	assert.Equal(t, p.String()+"\n", stdout.String())
}

func TestRunUnsupported(t *testing.T) {
	a, logs, _ := newTestApp(t)
	out := filepath.Join(t.TempDir(), "bore.ngc")

	p, err := a.Run(testJobFile("boring"), Options{Output: out})
	assert.True(t, errors.Is(err, ErrUnsupported))
	require.NotNil(t, p)
	assert.True(t, p.Unsupported())

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "ERROR: Boring functionality not yet available")
	assert.Contains(t, logs.String(), "not yet available")
}

func TestRunInvalid(t *testing.T) {
	a, _, _ := newTestApp(t)
	out := filepath.Join(t.TempDir(), "bad.ngc")

	jf := testJobFile("turning")
	jf.Job.Step = 0

	p, err := a.Run(jf, Options{Output: out})
	assert.Nil(t, p)
	assert.ErrorIs(t, err, &config.UserError{Code: config.ErrCodeJobInvalid})
	assert.NoFileExists(t, out)
}

func TestRunStockFiles(t *testing.T) {
	a, _, _ := newTestApp(t)
	dir := t.TempDir()

	bar := filepath.Join(dir, "bar.stl")
	require.NoError(t, stock.Ring{Z0: -40, Z1: 0, R1: 12}.Solid("bar", stock.Facets).WriteFile(bar))

	removed := filepath.Join(dir, "removed.stl")
	saved := filepath.Join(dir, "job.yaml")

	jf := testJobFile("turning")
	p, err := a.Run(jf, Options{ReadStock: bar, WriteRemoved: removed, SaveJob: saved})
	require.NoError(t, err)

	assert.InDelta(t, 12, jf.Job.StartDepth, 0.0001)
	assert.GreaterOrEqual(t, p.Passes.Largest(), 11.99)
	assert.FileExists(t, removed)

	reread := &config.JobFile{}
	require.NoError(t, config.ReadJobFile(saved, reread))
	assert.InDelta(t, 12, reread.Job.StartDepth, 0.0001)
}

func TestRunWriteFailure(t *testing.T) {
	a, _, _ := newTestApp(t)

	_, err := a.Run(testJobFile("turning"), Options{Output: filepath.Join(t.TempDir(), "missing", "part.ngc")})
	assert.ErrorIs(t, err, &config.UserError{Code: config.ErrCodeFileWrite})
}
