// Package app ties job parameters, generation and the output files together.
package app

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"lathecam/internal/config"
	"lathecam/internal/lathe"
	"lathecam/internal/stock"
)

// ErrUnsupported is returned by Run after writing a program for an operation
// that has no toolpath generator.
var ErrUnsupported = errors.New("operation not supported")

// StdoutPath as an output path sends the program to the app's stdout.
const StdoutPath = "-"

// Options name the files a run reads and writes besides the program itself.
type Options struct {
	Output       string
	Print        bool
	ReadStock    string
	WriteRemoved string
	SaveJob      string
}

type App struct {
	log    *logrus.Logger
	stdout io.Writer
}

func New(log *logrus.Logger, stdout io.Writer) *App {
	return &App{log: log, stdout: stdout}
}

// Run generates the program described by jf and writes it out. The program is
// still written for unsupported operations, and the returned error then
// matches ErrUnsupported.
func (a *App) Run(jf *config.JobFile, opt Options) (*lathe.Program, error) {
	if opt.ReadStock != "" {
		if err := a.readStock(jf, opt.ReadStock); err != nil {
			return nil, err
		}
	}

	job, machine, err := jf.Params()
	if err != nil {
		return nil, err
	}

	if opt.SaveJob != "" {
		if err := config.WriteJobFile(opt.SaveJob, jf); err != nil {
			return nil, err
		}
		a.log.WithField("path", opt.SaveJob).Info("saved job file")
	}

	p, err := lathe.Generate(job, machine, nil)
	if err != nil {
		return nil, err
	}

	fields := logrus.Fields{
		"operation":    job.Operation,
		"start_depth":  job.StartDepth,
		"finish_depth": job.FinishDepth,
	}
	if p.Unsupported() {
		a.log.WithFields(fields).Warn(p.Marker)
	} else {
		fields["passes"] = len(p.Passes)
		a.log.WithFields(fields).Info("generated program")
	}

	if err := a.writeProgram(p, opt); err != nil {
		return p, err
	}

	if opt.WriteRemoved != "" {
		written, err := stock.WriteRemoved(opt.WriteRemoved, p, job, machine.RadiusMode)
		if err != nil {
			return p, err
		}
		if written {
			a.log.WithField("path", opt.WriteRemoved).Info("wrote removed material")
		} else {
			a.log.WithField("path", opt.WriteRemoved).Warn("no toolpath, removed material not written")
		}
	}

	if p.Unsupported() {
		return p, fmt.Errorf("%w: %s", ErrUnsupported, job.Operation)
	}
	return p, nil
}

func (a *App) readStock(jf *config.JobFile, path string) error {
	op, err := lathe.ParseOperation(jf.Job.Operation)
	if err != nil {
		return jf.Validate()
	}

	d, err := stock.StartDepth(path, op, jf.Machine.RadiusMode)
	if err != nil {
		return &config.UserError{Code: config.ErrCodeJobParse, Message: "cannot measure stock", Context: path, Underlying: err}
	}

	a.log.WithFields(logrus.Fields{"path": path, "start_depth": d}).Info("start depth taken from stock")
	jf.Job.StartDepth = d
	return nil
}

func (a *App) writeProgram(p *lathe.Program, opt Options) error {
	gcode := p.String()

	if opt.Print && opt.Output != StdoutPath {
		fmt.Fprintln(a.stdout, gcode)
	}

	if opt.Output == "" {
		return nil
	}
	if opt.Output == StdoutPath {
		_, err := fmt.Fprintln(a.stdout, gcode)
		return err
	}

	if err := os.WriteFile(opt.Output, []byte(gcode), 0o644); err != nil {
		return &config.UserError{Code: config.ErrCodeFileWrite, Message: "couldn't write program", Context: opt.Output, Underlying: err}
	}
	a.log.WithField("path", opt.Output).Infof("successfully wrote to %s", opt.Output)

	return nil
}
