// Package commands implements relcheck CLI commands.
package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/NielsdaWheelz/relcheck/internal/checks"
	"github.com/NielsdaWheelz/relcheck/internal/config"
	"github.com/NielsdaWheelz/relcheck/internal/errors"
	"github.com/NielsdaWheelz/relcheck/internal/exec"
	"github.com/NielsdaWheelz/relcheck/internal/fs"
	"github.com/NielsdaWheelz/relcheck/internal/git"
	"github.com/NielsdaWheelz/relcheck/internal/manifest"
	"github.com/NielsdaWheelz/relcheck/internal/output"
	"github.com/NielsdaWheelz/relcheck/internal/registry"
)

// osEnv implements output.Env using os.Getenv.
type osEnv struct{}

func (osEnv) Get(key string) string {
	return os.Getenv(key)
}

// CheckOpts holds options for the check command.
type CheckOpts struct {
	// RepoPath is the optional --repo flag to target a specific crate root.
	RepoPath string

	// Advisory, when set via --advisory, prints findings without failing
	// the exit code (legacy CI behaviour). AdvisorySet records whether the
	// flag was given; the config file value applies otherwise.
	Advisory    bool
	AdvisorySet bool

	// Registry overrides the registry client (tests). Nil means build the
	// HTTP client from config.
	Registry registry.Client

	// Env overrides the environment lookup for the output file (tests).
	Env output.Env

	// Clock overrides the reference time for the changelog date check
	// (tests). Nil means time.Now.
	Clock func() time.Time
}

// Check implements the `relcheck check` command.
//
// Flow: resolve crate root, load config and manifest, run the four
// consistency checks, report, write the pipeline output, decide the exit
// outcome. Soft findings are reported together; any environment failure
// aborts immediately with its coded error.
func Check(ctx context.Context, cr exec.CommandRunner, fsys fs.FS, cwd string, opts CheckOpts, stdout, stderr io.Writer) error {
	root := cwd
	if opts.RepoPath != "" {
		root = opts.RepoPath
	}

	// Environment preconditions: git present and target inside a repo.
	if err := git.EnsureInstalled(cr); err != nil {
		return err
	}
	if _, err := git.RepoRoot(ctx, cr, root); err != nil {
		return err
	}

	cfg, _, err := config.Load(fsys, root)
	if err != nil {
		return err
	}
	advisory := cfg.Advisory
	if opts.AdvisorySet {
		advisory = opts.Advisory
	}

	meta, err := manifest.Load(fsys, root)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(stdout, "Manifest: %s %s\n", meta.Name, meta.Version)

	client := opts.Registry
	if client == nil {
		client = registry.NewHTTP(cfg.Registry.URL, cfg.Registry.Timeout)
	}

	runner := &checks.Runner{
		FS:       fsys,
		CR:       cr,
		Registry: client,
		Config:   cfg,
		Clock:    opts.Clock,
	}

	report, err := runner.Run(ctx, root, meta)
	if err != nil {
		return err
	}

	for _, status := range report.Statuses {
		_, _ = fmt.Fprintln(stdout, status)
	}

	if !report.OK() {
		_, _ = fmt.Fprintln(stdout)
		_, _ = fmt.Fprintln(stdout, "Errors found:")
		for _, finding := range report.Findings {
			_, _ = fmt.Fprintf(stdout, "- %s\n", finding)
		}
	}

	// The resolved version is written even when findings exist so an
	// advisory pipeline can keep using it, matching the original flow.
	env := opts.Env
	if env == nil {
		env = osEnv{}
	}
	outPath, err := output.WriteVersion(fsys, env, meta.Version)
	if err != nil {
		return err
	}
	if outPath != "" {
		_, _ = fmt.Fprintf(stdout, "Version written to %s\n", outPath)
	}

	if report.OK() {
		_, _ = fmt.Fprintln(stdout, "All checks passed!")
		return nil
	}
	if advisory {
		_, _ = fmt.Fprintln(stdout, "Advisory mode: findings reported, exit status unchanged")
		return nil
	}
	return errors.NewWithDetails(
		errors.EChecksFailed,
		fmt.Sprintf("%d consistency finding(s); release blocked", len(report.Findings)),
		map[string]string{"version": meta.Version, "crate": meta.Name},
	)
}
