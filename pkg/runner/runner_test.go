package runner

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
)

func requireShell(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
}

func TestCommandString(t *testing.T) {
	cases := []struct {
		desc string
		cmd  Command
		want string
	}{
		{
			desc: "no args",
			cmd:  Command{Name: "make"},
			want: "make",
		},
		{
			desc: "with args",
			cmd:  Command{Name: "./dbgen", Args: []string{"-f", "-s", "0.1"}, Dir: "/tmp/x"},
			want: "./dbgen -f -s 0.1",
		},
	}
	for _, c := range cases {
		if got := c.cmd.String(); got != c.want {
			t.Errorf("%s: got %q want %q", c.desc, got, c.want)
		}
	}
}

func TestExitCode(t *testing.T) {
	cmd := Command{Name: "make"}
	cases := []struct {
		desc string
		err  error
		want int
	}{
		{desc: "nil error", err: nil, want: 0},
		{desc: "plain error", err: fmt.Errorf("boom"), want: 1},
		{desc: "exit error", err: NewExitError(cmd, 2), want: 2},
		{desc: "wrapped exit error", err: errors.Wrap(NewExitError(cmd, 128), "building generator"), want: 128},
		{desc: "exit error with zero code", err: NewExitError(cmd, 0), want: 1},
	}
	for _, c := range cases {
		if got := ExitCode(c.err); got != c.want {
			t.Errorf("%s: got %d want %d", c.desc, got, c.want)
		}
	}
}

func TestNewExecRunnerDefaults(t *testing.T) {
	r := NewExecRunner(nil, nil)
	if r.stdout == nil || r.stderr == nil {
		t.Errorf("nil writers not defaulted")
	}
}

func TestExecRunnerRun(t *testing.T) {
	requireShell(t)
	dir := t.TempDir()
	var stdout, stderr bytes.Buffer
	r := NewExecRunner(&stdout, &stderr)

	err := r.Run(context.Background(), Command{
		Name: "sh",
		Args: []string{"-c", "pwd; echo oops >&2"},
		Dir:  dir,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// the temp dir may be reached through a symlink, compare resolved paths
	want, err := filepath.EvalSymlinks(dir)
	if err != nil {
		t.Fatal(err)
	}
	got, err := filepath.EvalSymlinks(strings.TrimSpace(stdout.String()))
	if err != nil {
		t.Fatalf("could not resolve output %q: %v", stdout.String(), err)
	}
	if got != want {
		t.Errorf("command did not run in Dir: got %s want %s", got, want)
	}
	if got := stderr.String(); got != "oops\n" {
		t.Errorf("incorrect stderr: got %q", got)
	}
}

func TestExecRunnerRunNonZero(t *testing.T) {
	requireShell(t)
	r := NewExecRunner(&bytes.Buffer{}, &bytes.Buffer{})
	cmd := Command{Name: "sh", Args: []string{"-c", "exit 3"}}

	err := r.Run(context.Background(), cmd)
	if err == nil {
		t.Fatal("unexpected lack of error")
	}
	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("error is not an ExitError: %T %v", err, err)
	}
	if exitErr.Code != 3 {
		t.Errorf("incorrect exit code: got %d want 3", exitErr.Code)
	}
	if want := fmt.Sprintf(errExitStatusFmt, cmd, 3); err.Error() != want {
		t.Errorf("incorrect error: got %s want %s", err.Error(), want)
	}
	if got := ExitCode(err); got != 3 {
		t.Errorf("incorrect ExitCode: got %d want 3", got)
	}
}

func TestExecRunnerRunMissingBinary(t *testing.T) {
	r := NewExecRunner(&bytes.Buffer{}, &bytes.Buffer{})
	err := r.Run(context.Background(), Command{Name: filepath.Join(t.TempDir(), "dbgen")})
	if err == nil {
		t.Fatal("unexpected lack of error")
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		t.Errorf("missing binary reported as exit status: %v", err)
	}
	if got := ExitCode(err); got != 1 {
		t.Errorf("incorrect ExitCode: got %d want 1", got)
	}
}

func TestExecRunnerRunCanceled(t *testing.T) {
	requireShell(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := NewExecRunner(&bytes.Buffer{}, &bytes.Buffer{})
	err := r.Run(ctx, Command{Name: "sh", Args: []string{"-c", "sleep 5"}})
	if err == nil {
		t.Fatal("unexpected lack of error")
	}
	if errors.Cause(err) != context.Canceled {
		t.Errorf("incorrect cause: got %v want %v", errors.Cause(err), context.Canceled)
	}
}
