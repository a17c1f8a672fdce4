package lathe

import (
	"fmt"
	"iter"
	"math"
)

type Order int

const (
	Ascending Order = iota
	Descending
)

// Passes is the ascending list of depths cut by a job, finishing depth first.
type Passes []float64

// MaxPasses is the most roughing passes a single job may plan.
const MaxPasses = 100000

// CheckPasses reports a *ParameterError for any job PlanPasses cannot plan in
// at most MaxPasses roughing passes.
func CheckPasses(job Job) error {
	for _, v := range []struct {
		field string
		value float64
	}{
		{"start_depth", job.StartDepth},
		{"finish_depth", job.FinishDepth},
		{"finish_step", job.FinishStep},
	} {
		if math.IsNaN(v.value) || math.IsInf(v.value, 0) {
			return &ParameterError{Field: v.field, Value: v.value, Reason: "must be a finite number"}
		}
	}

	if math.IsNaN(job.Step) || math.IsInf(job.Step, 0) || job.Step <= 0 {
		return &ParameterError{Field: "step", Value: job.Step, Reason: "must be greater than zero"}
	}

	last := job.FinishDepth + job.FinishStep
	if math.IsInf(last, 0) {
		return &ParameterError{Field: "finish_step", Value: job.FinishStep, Reason: "finish pass is out of range"}
	}
	if last >= job.StartDepth {
		return nil
	}

	// the step must move every depth between last and StartDepth
	m := math.Max(math.Abs(last), math.Abs(job.StartDepth))
	if job.Step <= math.Nextafter(m, math.Inf(1))-m {
		return &ParameterError{Field: "step", Value: job.Step, Reason: "too small to change the depth"}
	}
	if (job.StartDepth-last)/job.Step > MaxPasses {
		return &ParameterError{Field: "step", Value: job.Step, Reason: fmt.Sprintf("needs more than %d passes", MaxPasses)}
	}

	return nil
}

// PlanPasses returns the depths needed to take the stock from StartDepth down to
// FinishDepth. The last roughing pass may sit up to one Step beyond StartDepth so
// that the whole of the stock is cleared.
func PlanPasses(job Job) (Passes, error) {
	if err := CheckPasses(job); err != nil {
		return nil, err
	}

	last := job.FinishDepth + job.FinishStep
	passes := Passes{job.FinishDepth, last}
	for last < job.StartDepth {
		last += job.Step
		passes = append(passes, last)
	}

	return passes, nil
}

// InOrder yields the depths in the given order without touching the slice.
func (p Passes) InOrder(o Order) iter.Seq[float64] {
	return func(yield func(float64) bool) {
		if o == Descending {
			for i := len(p) - 1; i >= 0; i-- {
				if !yield(p[i]) {
					return
				}
			}
			return
		}
		for _, d := range p {
			if !yield(d) {
				return
			}
		}
	}
}

// Largest returns the depth of the first roughing pass.
func (p Passes) Largest() float64 {
	if len(p) == 0 {
		return 0
	}
	return p[len(p)-1]
}
