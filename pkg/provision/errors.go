package provision

import (
	"fmt"

	"github.com/pkg/errors"
)

const errMissingConfigFmt = "%s is not set"

// MissingConfigurationError is returned when a required value is unset or
// empty.
type MissingConfigurationError struct {
	Name string
}

func (e *MissingConfigurationError) Error() string {
	return fmt.Sprintf(errMissingConfigFmt, e.Name)
}

// InvalidConfigurationError is returned when a value is present but unusable.
type InvalidConfigurationError struct {
	Name   string
	Reason string
}

func (e *InvalidConfigurationError) Error() string {
	return e.Reason
}

// Step names one external step of a provisioning run.
type Step string

const (
	StepFetch       Step = "fetch"
	StepBuild       Step = "build"
	StepGenerate    Step = "generate"
	StepMaterialize Step = "materialize"
	StepCleanup     Step = "cleanup"
)

var stepDescriptions = map[Step]string{
	StepFetch:       "fetching generator source",
	StepBuild:       "building generator",
	StepGenerate:    "running generator",
	StepMaterialize: "moving table files",
	StepCleanup:     "removing temporary directory",
}

func (s Step) String() string {
	if d, ok := stepDescriptions[s]; ok {
		return d
	}
	return string(s)
}

// StepError is the failure of one step. For fetch, build and generate the
// wrapped error is usually a *runner.ExitError carrying the exit status.
type StepError struct {
	Step Step
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// Cause lets errors.Cause see through a StepError.
func (e *StepError) Cause() error {
	return e.Err
}

// FailedStep returns the step err comes from, if any.
func FailedStep(err error) (Step, bool) {
	var stepErr *StepError
	if errors.As(err, &stepErr) {
		return stepErr.Step, true
	}
	return "", false
}
