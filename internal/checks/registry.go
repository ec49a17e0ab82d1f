package checks

import (
	"context"
	"fmt"

	"github.com/NielsdaWheelz/relcheck/internal/manifest"
	"github.com/NielsdaWheelz/relcheck/internal/registry"
)

// Registry checks that the release version has not already been published.
// Transport and decode failures propagate from the client as fatal errors;
// the only soft outcome is "this version already exists on the registry".
func Registry(ctx context.Context, client registry.Client, meta manifest.ReleaseMetadata) ([]string, error) {
	published, err := client.PublishedVersions(ctx, meta.Name)
	if err != nil {
		return nil, err
	}

	for _, v := range published {
		if v == meta.Version {
			return []string{fmt.Sprintf("crate version %s already published", meta.Version)}, nil
		}
	}
	return nil, nil
}
