package checks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/NielsdaWheelz/relcheck/internal/config"
	"github.com/NielsdaWheelz/relcheck/internal/errors"
	"github.com/NielsdaWheelz/relcheck/internal/exec"
	"github.com/NielsdaWheelz/relcheck/internal/fs"
	"github.com/NielsdaWheelz/relcheck/internal/logging"
	"github.com/NielsdaWheelz/relcheck/internal/manifest"
	"github.com/NielsdaWheelz/relcheck/internal/registry"
)

// Runner wires the checks to their collaborators. All I/O goes through
// the injected interfaces so the whole pipeline runs against fakes in
// tests.
type Runner struct {
	FS       fs.FS
	CR       exec.CommandRunner
	Registry registry.Client
	Config   config.Config

	// Clock supplies the reference time for the changelog date check.
	// Defaults to time.Now.
	Clock func() time.Time
}

// Run executes all consistency checks for the crate at root and returns
// the collected report. The check order (changelog, descriptor, tag,
// registry) matches the reference flow but carries no semantics: each
// check depends only on the metadata.
//
// Soft findings accumulate in the report; environment failures (missing
// files, broken descriptor, git failure, registry failure) abort with a
// coded error.
func (r *Runner) Run(ctx context.Context, root string, meta manifest.ReleaseMetadata) (*Report, error) {
	now := time.Now
	if r.Clock != nil {
		now = r.Clock
	}

	report := &Report{}
	log := logging.L()

	// Changelog
	changelogLabel := filepath.Base(r.Config.Changelog)
	changelogPath := filepath.Join(root, r.Config.Changelog)
	data, err := r.FS.ReadFile(changelogPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewWithDetails(
				errors.ENoChangelog,
				changelogLabel+" not found",
				map[string]string{"changelog": changelogPath},
			)
		}
		return nil, errors.WrapWithDetails(
			errors.ENoChangelog,
			"failed to read "+changelogLabel,
			err,
			map[string]string{"changelog": changelogPath},
		)
	}
	if findings := Changelog(meta, changelogLabel, data, now()); len(findings) > 0 {
		report.addFindings(findings)
	} else {
		report.addStatus(changelogLabel + ": up-to-date")
	}
	log.Debugw("changelog checked", "path", changelogPath)

	// Descriptor
	descriptorLabel := meta.DescriptorName(r.Config.DescriptorExt)
	descriptorPath := filepath.Join(root, descriptorLabel)
	data, err = r.FS.ReadFile(descriptorPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewWithDetails(
				errors.ENoDescriptor,
				descriptorLabel+" not found",
				map[string]string{"descriptor": descriptorPath},
			)
		}
		return nil, errors.WrapWithDetails(
			errors.ENoDescriptor,
			"failed to read "+descriptorLabel,
			err,
			map[string]string{"descriptor": descriptorPath},
		)
	}
	findings, err := Descriptor(meta, descriptorLabel, data)
	if err != nil {
		return nil, err
	}
	if len(findings) > 0 {
		report.addFindings(findings)
	} else {
		report.addStatus(descriptorLabel + ": up-to-date")
	}
	log.Debugw("descriptor checked", "path", descriptorPath)

	// Tag
	findings, err = Tag(ctx, r.CR, root, meta)
	if err != nil {
		return nil, err
	}
	if len(findings) > 0 {
		report.addFindings(findings)
	} else {
		report.addStatus(fmt.Sprintf("Tag: %s available", meta.TagName()))
	}
	log.Debugw("tag checked", "tag", meta.TagName())

	// Registry
	findings, err = Registry(ctx, r.Registry, meta)
	if err != nil {
		return nil, err
	}
	if len(findings) > 0 {
		report.addFindings(findings)
	} else {
		report.addStatus("Registry: ready")
	}
	log.Debugw("registry checked", "crate", meta.Name)

	return report, nil
}
