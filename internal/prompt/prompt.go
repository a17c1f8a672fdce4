// Package prompt collects job parameters interactively from a terminal.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"lathecam/internal/config"
	"lathecam/internal/lathe"
)

type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

func (p *Prompter) String(question string) (string, error) {
	fmt.Fprintln(p.out, question)

	line, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", &config.UserError{Code: config.ErrCodeInput, Message: "no answer given", Context: strings.TrimSpace(question), Underlying: err}
	}

	return strings.TrimSpace(line), nil
}

// Bool asks until the answer is y or n.
func (p *Prompter) Bool(question string) (bool, error) {
	for {
		s, err := p.String(question)
		if err != nil {
			return false, err
		}
		switch strings.ToLower(s) {
		case "y":
			return true, nil
		case "n":
			return false, nil
		}
	}
}

func (p *Prompter) Float(question string) (float64, error) {
	s, err := p.String(question)
	if err != nil {
		return 0, err
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, &config.UserError{Code: config.ErrCodeInput, Message: "not a number: " + strconv.Quote(s), Context: strings.TrimSpace(question), Underlying: err}
	}
	return f, nil
}

func (p *Prompter) Int(question string) (int, error) {
	s, err := p.String(question)
	if err != nil {
		return 0, err
	}

	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, &config.UserError{Code: config.ErrCodeInput, Message: "not a whole number: " + strconv.Quote(s), Context: strings.TrimSpace(question), Underlying: err}
	}
	return i, nil
}

func (p *Prompter) Operation(question string) (lathe.Operation, error) {
	s, err := p.String(question)
	if err != nil {
		return 0, err
	}

	op, err := lathe.ParseOperation(s)
	if err != nil {
		return 0, &config.UserError{
			Code:       config.ErrCodeInput,
			Message:    "job type not recognised: " + strconv.Quote(s),
			Suggestion: "use one of boring, facing, faceboring, turning, drilling",
			Underlying: err,
		}
	}
	return op, nil
}

// Job asks for every job and machine parameter and stores the answers in jf.
// Values already in jf that have no question, such as the clearance, are kept.
func (p *Prompter) Job(jf *config.JobFile) error {
	op, err := p.Operation("Job type:    ")
	if err != nil {
		return err
	}
	jf.Job.Operation = op.String()

	if jf.Machine.RadiusMode, err = p.Bool("Are you entering values as radius? (y/n):      "); err != nil {
		return err
	}

	floats := []struct {
		question string
		dst      *float64
	}{
		{"Start  depth:    ", &jf.Job.StartDepth},
		{"Finish depth:    ", &jf.Job.FinishDepth},
		{"Step   size :    ", &jf.Job.Step},
		{"Finish step :    ", &jf.Job.FinishStep},
		{"Start  cut  :    ", &jf.Job.StartCut},
		{"Length      :    ", &jf.Job.Length},
		{"Feed rate   :    ", &jf.Job.Feed},
	}
	for _, f := range floats {
		if *f.dst, err = p.Float(f.question); err != nil {
			return err
		}
	}

	if jf.Machine.RPM, err = p.Int("RPM:    "); err != nil {
		return err
	}
	if jf.Machine.SpindleCW, err = p.Bool("Spindle CW (y/n):      "); err != nil {
		return err
	}
	mm, err := p.Bool("Use mm     (y/n):      ")
	if err != nil {
		return err
	}
	jf.Machine.Inch = !mm
	if jf.Machine.Tool, err = p.Int("Tool num        :      "); err != nil {
		return err
	}

	return nil
}
