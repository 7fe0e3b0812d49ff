// Package runner executes the external commands a provisioning run delegates
// to: the version-control fetch, the generator build and the generator
// itself. Commands run synchronously, one at a time.
package runner

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"strings"

	"github.com/pkg/errors"
)

const errExitStatusFmt = "%s exited with status %d"

// Command describes a single external process invocation.
type Command struct {
	Name string
	Args []string
	// Dir is the working directory of the process. Empty means the current
	// directory of the calling process.
	Dir string
}

func (c Command) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// Runner runs a Command to completion.
type Runner interface {
	Run(ctx context.Context, cmd Command) error
}

// ExitError is returned when a command ran but exited with a non-zero status.
type ExitError struct {
	Command Command
	Code    int
	err     error
}

// NewExitError creates an ExitError for cmd with the given exit code.
func NewExitError(cmd Command, code int) *ExitError {
	return &ExitError{Command: cmd, Code: code}
}

func (e *ExitError) Error() string {
	return fmt.Sprintf(errExitStatusFmt, e.Command, e.Code)
}

func (e *ExitError) Unwrap() error {
	return e.err
}

// ExitCode maps err to a process exit status: 0 for nil, the status of the
// failing command when err wraps an ExitError, 1 otherwise.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) && exitErr.Code > 0 {
		return exitErr.Code
	}
	return 1
}

// ExecRunner runs commands as child processes, streaming their output to
// the configured writers.
type ExecRunner struct {
	stdout io.Writer
	stderr io.Writer
}

// NewExecRunner creates an ExecRunner. If stdout or stderr are nil, they
// default to os.Stdout and os.Stderr respectively.
func NewExecRunner(stdout, stderr io.Writer) *ExecRunner {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	return &ExecRunner{stdout: stdout, stderr: stderr}
}

// Run starts the command and waits for it to exit. Canceling ctx kills the
// process.
func (r *ExecRunner) Run(ctx context.Context, c Command) error {
	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Dir = c.Dir
	cmd.Stdout = r.stdout
	cmd.Stderr = r.stderr

	log.Printf("debug: running %s (dir %q)", c, c.Dir)
	err := cmd.Run()
	if err == nil {
		return nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return errors.Wrapf(ctxErr, "%s interrupted", c)
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &ExitError{Command: c, Code: exitErr.ExitCode(), err: err}
	}
	return errors.Wrapf(err, "could not run %s", c)
}
