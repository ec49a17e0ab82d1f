package checks

import (
	"context"
	"fmt"

	"github.com/NielsdaWheelz/relcheck/internal/exec"
	"github.com/NielsdaWheelz/relcheck/internal/git"
	"github.com/NielsdaWheelz/relcheck/internal/manifest"
)

// Tag checks that no local tag named v<version> exists yet. A release must
// use an unused tag, so an existing one is a finding. A failing git
// invocation propagates as a fatal error.
func Tag(ctx context.Context, cr exec.CommandRunner, repoRoot string, meta manifest.ReleaseMetadata) ([]string, error) {
	tagName := meta.TagName()

	exists, err := git.TagExists(ctx, cr, repoRoot, tagName)
	if err != nil {
		return nil, err
	}
	if exists {
		return []string{fmt.Sprintf("release tag already exists: %s", tagName)}, nil
	}
	return nil, nil
}
