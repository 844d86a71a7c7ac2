package command

import (
	"context"
	stderrors "errors"
	"io"
	"os"
	"os/exec"

	"github.com/matzehuels/px/pkg/errors"
)

// Runner executes commands.
type Runner interface {
	Run(ctx context.Context, cmd Command) error
}

// ExecRunner runs commands as subprocesses. Nil streams inherit the
// corresponding stream of the px process.
type ExecRunner struct {
	Dir    string
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Run executes cmd and waits for it. A non-zero exit yields a
// *errors.CommandError with the child's status.
func (r ExecRunner) Run(ctx context.Context, cmd Command) error {
	c := exec.CommandContext(ctx, string(cmd.Manager), cmd.Args...)
	c.Dir = r.Dir
	c.Stdin = orDefault[io.Reader](r.Stdin, os.Stdin)
	c.Stdout = orDefault[io.Writer](r.Stdout, os.Stdout)
	c.Stderr = orDefault[io.Writer](r.Stderr, os.Stderr)

	err := c.Run()
	if err == nil {
		return nil
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	var exitErr *exec.ExitError
	if stderrors.As(err, &exitErr) {
		code := exitErr.ExitCode()
		if code < 0 {
			code = 1 // killed by a signal
		}
		return &errors.CommandError{Command: cmd.String(), ExitCode: code, Cause: err}
	}
	if stderrors.Is(err, exec.ErrNotFound) {
		return &errors.CommandError{Command: cmd.String(), ExitCode: 127, Cause: err}
	}
	return &errors.CommandError{Command: cmd.String(), ExitCode: 1, Cause: err}
}

func orDefault[T comparable](v, def T) T {
	var zero T
	if v == zero {
		return def
	}
	return v
}

// Sequence runs cmds in order and stops at the first failure. before, when
// non-nil, is called with each command before it starts.
func Sequence(ctx context.Context, r Runner, cmds []Command, before func(Command)) error {
	for _, cmd := range cmds {
		if before != nil {
			before(cmd)
		}
		if err := r.Run(ctx, cmd); err != nil {
			return err
		}
	}
	return nil
}

var _ Runner = ExecRunner{}
