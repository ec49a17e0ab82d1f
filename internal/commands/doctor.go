package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/NielsdaWheelz/relcheck/internal/config"
	"github.com/NielsdaWheelz/relcheck/internal/exec"
	"github.com/NielsdaWheelz/relcheck/internal/fs"
	"github.com/NielsdaWheelz/relcheck/internal/git"
	"github.com/NielsdaWheelz/relcheck/internal/manifest"
	"github.com/NielsdaWheelz/relcheck/internal/output"
)

// DoctorReport holds the resolved environment for doctor output.
type DoctorReport struct {
	GitVersion    string
	RepoRoot      string
	CrateName     string
	CrateVersion  string
	ConfigFound   bool
	RegistryURL   string
	Changelog     string
	Descriptor    string
	ChangelogOK   bool
	DescriptorOK  bool
	Advisory      bool
	OutputFile    string
}

// DoctorOpts holds options for the doctor command.
type DoctorOpts struct {
	// RepoPath is the optional --repo flag to target a specific crate root.
	RepoPath string
}

// Doctor implements the `relcheck doctor` command.
// Validates git, repository, manifest, and config, then prints the
// resolved settings. File presence for changelog/descriptor is reported
// but not fatal here; check fails loudly on those at run time.
func Doctor(ctx context.Context, cr exec.CommandRunner, fsys fs.FS, cwd string, opts DoctorOpts, stdout, stderr io.Writer) error {
	root := cwd
	if opts.RepoPath != "" {
		root = opts.RepoPath
	}

	if err := git.EnsureInstalled(cr); err != nil {
		return err
	}
	gitVersion, err := git.Version(ctx, cr)
	if err != nil {
		return err
	}

	repoRoot, err := git.RepoRoot(ctx, cr, root)
	if err != nil {
		return err
	}

	cfg, found, err := config.Load(fsys, root)
	if err != nil {
		return err
	}

	meta, err := manifest.Load(fsys, root)
	if err != nil {
		return err
	}

	report := DoctorReport{
		GitVersion:   gitVersion,
		RepoRoot:     repoRoot,
		CrateName:    meta.Name,
		CrateVersion: meta.Version,
		ConfigFound:  found,
		RegistryURL:  cfg.Registry.URL,
		Changelog:    cfg.Changelog,
		Descriptor:   meta.DescriptorName(cfg.DescriptorExt),
		Advisory:     cfg.Advisory,
		OutputFile:   os.Getenv(output.EnvVar),
	}

	if _, err := fsys.Stat(filepath.Join(root, cfg.Changelog)); err == nil {
		report.ChangelogOK = true
	}
	if _, err := fsys.Stat(filepath.Join(root, report.Descriptor)); err == nil {
		report.DescriptorOK = true
	}

	printDoctorReport(stdout, report)
	return nil
}

func printDoctorReport(w io.Writer, r DoctorReport) {
	_, _ = fmt.Fprintf(w, "git:        %s\n", r.GitVersion)
	_, _ = fmt.Fprintf(w, "repo:       %s\n", r.RepoRoot)
	_, _ = fmt.Fprintf(w, "crate:      %s %s\n", r.CrateName, r.CrateVersion)
	if r.ConfigFound {
		_, _ = fmt.Fprintf(w, "config:     %s\n", config.FileName)
	} else {
		_, _ = fmt.Fprintln(w, "config:     (defaults)")
	}
	_, _ = fmt.Fprintf(w, "registry:   %s\n", r.RegistryURL)
	_, _ = fmt.Fprintf(w, "changelog:  %s%s\n", r.Changelog, missingSuffix(r.ChangelogOK))
	_, _ = fmt.Fprintf(w, "descriptor: %s%s\n", r.Descriptor, missingSuffix(r.DescriptorOK))
	if r.Advisory {
		_, _ = fmt.Fprintln(w, "mode:       advisory (findings do not fail the exit code)")
	} else {
		_, _ = fmt.Fprintln(w, "mode:       strict")
	}
	if r.OutputFile != "" {
		_, _ = fmt.Fprintf(w, "output:     %s\n", r.OutputFile)
	} else {
		_, _ = fmt.Fprintf(w, "output:     (%s unset)\n", output.EnvVar)
	}
}

func missingSuffix(ok bool) string {
	if ok {
		return ""
	}
	return " (missing)"
}
