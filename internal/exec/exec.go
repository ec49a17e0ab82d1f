// Package exec wraps subprocess execution behind a narrow interface so
// commands that shell out are testable with fakes.
package exec

import (
	"bytes"
	"context"
	"errors"
	osexec "os/exec"
)

// RunOpts contains options for running a command.
type RunOpts struct {
	// Dir is the working directory for the command. Empty means inherit.
	Dir string

	// Env is the environment for the command. Nil means inherit.
	Env []string
}

// CmdResult holds the outcome of a completed command.
type CmdResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// CommandRunner runs external commands.
//
// Run returns an error only for execution failures (binary not found,
// context canceled). A non-zero exit is reported via CmdResult.ExitCode,
// not as an error.
type CommandRunner interface {
	Run(ctx context.Context, name string, args []string, opts RunOpts) (CmdResult, error)
	LookPath(file string) (string, error)
}

// RealRunner is the production CommandRunner backed by os/exec.
type RealRunner struct{}

// NewRealRunner creates a CommandRunner backed by os/exec.
func NewRealRunner() *RealRunner {
	return &RealRunner{}
}

var _ CommandRunner = (*RealRunner)(nil)

// Run implements CommandRunner.Run.
func (r *RealRunner) Run(ctx context.Context, name string, args []string, opts RunOpts) (CmdResult, error) {
	cmd := osexec.CommandContext(ctx, name, args...)
	cmd.Dir = opts.Dir
	cmd.Env = opts.Env

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := CmdResult{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if err != nil {
		var exitErr *osexec.ExitError
		if errors.As(err, &exitErr) {
			// Command ran and exited non-zero; not an execution failure.
			result.ExitCode = exitErr.ExitCode()
			return result, nil
		}
		// Binary not found, ctx canceled, or the process never started.
		return result, err
	}

	result.ExitCode = 0
	return result, nil
}

// LookPath implements CommandRunner.LookPath.
func (r *RealRunner) LookPath(file string) (string, error) {
	return osexec.LookPath(file)
}
