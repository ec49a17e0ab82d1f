// Package git wraps the git invocations relcheck needs. All calls go
// through exec.CommandRunner so tests can fake the subprocess layer.
package git

import (
	"context"
	"fmt"
	"strings"

	"github.com/NielsdaWheelz/relcheck/internal/errors"
	"github.com/NielsdaWheelz/relcheck/internal/exec"
)

// maxStderrLen is the maximum stderr length to include in error details.
const maxStderrLen = 4096

// EnsureInstalled verifies the git binary is on PATH.
// Returns E_GIT_NOT_INSTALLED otherwise.
func EnsureInstalled(cr exec.CommandRunner) error {
	if _, err := cr.LookPath("git"); err != nil {
		return errors.New(errors.EGitNotInstalled, "git not found on PATH")
	}
	return nil
}

// RepoRoot resolves the repository toplevel for the given path.
// Uses: git -C <path> rev-parse --show-toplevel
// Returns E_NO_REPO when the path is not inside a git repository.
func RepoRoot(ctx context.Context, cr exec.CommandRunner, path string) (string, error) {
	args := []string{"-C", path, "rev-parse", "--show-toplevel"}
	result, err := cr.Run(ctx, "git", args, exec.RunOpts{})
	if err != nil {
		return "", errors.Wrap(errors.EGitNotInstalled, "failed to execute git", err)
	}
	if result.ExitCode != 0 {
		return "", errors.NewWithDetails(
			errors.ENoRepo,
			fmt.Sprintf("not inside a git repository: %s", path),
			map[string]string{
				"repo":      path,
				"command":   "git " + strings.Join(args, " "),
				"exit_code": fmt.Sprintf("%d", result.ExitCode),
				"stderr":    truncate(result.Stderr),
			},
		)
	}
	return strings.TrimSpace(result.Stdout), nil
}

// TagExists reports whether a local tag with exactly the given name exists.
// Uses: git -C <repo> tag --list <name>
//
// A failing git invocation is an environment precondition failure, never a
// check outcome: it surfaces as E_NO_REPO or E_GIT_TAG_FAILED.
func TagExists(ctx context.Context, cr exec.CommandRunner, repoRoot, name string) (bool, error) {
	args := []string{"-C", repoRoot, "tag", "--list", name}
	result, err := cr.Run(ctx, "git", args, exec.RunOpts{})
	if err != nil {
		return false, errors.Wrap(errors.EGitNotInstalled, "failed to execute git", err)
	}
	if result.ExitCode != 0 {
		details := map[string]string{
			"repo":      repoRoot,
			"command":   "git " + strings.Join(args, " "),
			"exit_code": fmt.Sprintf("%d", result.ExitCode),
			"stderr":    truncate(result.Stderr),
		}
		if strings.Contains(result.Stderr, "not a git repository") {
			return false, errors.NewWithDetails(
				errors.ENoRepo,
				fmt.Sprintf("not inside a git repository: %s", repoRoot),
				details,
			)
		}
		return false, errors.NewWithDetails(
			errors.EGitTagFailed,
			"git tag --list failed: "+strings.TrimSpace(result.Stderr),
			details,
		)
	}
	return strings.TrimSpace(result.Stdout) == name, nil
}

// Version returns the installed git version string (for doctor output).
func Version(ctx context.Context, cr exec.CommandRunner) (string, error) {
	result, err := cr.Run(ctx, "git", []string{"--version"}, exec.RunOpts{})
	if err != nil {
		return "", errors.Wrap(errors.EGitNotInstalled, "failed to execute git", err)
	}
	if result.ExitCode != 0 {
		return "", errors.New(errors.EGitNotInstalled, "git --version failed")
	}
	return strings.TrimSpace(result.Stdout), nil
}

func truncate(s string) string {
	if len(s) > maxStderrLen {
		return s[:maxStderrLen]
	}
	return s
}
