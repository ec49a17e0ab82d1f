package checks

import (
	"context"
	"strings"
	"testing"

	"github.com/NielsdaWheelz/relcheck/internal/errors"
)

type fakeRegistry struct {
	versions []string
	err      error
	crates   []string
}

func (f *fakeRegistry) PublishedVersions(ctx context.Context, name string) ([]string, error) {
	f.crates = append(f.crates, name)
	return f.versions, f.err
}

func TestRegistry_AlreadyPublished(t *testing.T) {
	fc := &fakeRegistry{versions: []string{"1.0.0", "1.2.3"}}

	findings, err := Registry(context.Background(), fc, testMeta)
	if err != nil {
		t.Fatalf("Registry() error = %v", err)
	}
	if len(findings) != 1 {
		t.Fatalf("findings = %v, want exactly one", findings)
	}
	if !strings.Contains(findings[0], "1.2.3") {
		t.Errorf("finding should mention the version: %q", findings[0])
	}
}

func TestRegistry_Unpublished(t *testing.T) {
	fc := &fakeRegistry{versions: []string{"1.0.0", "1.2.2"}}

	findings, err := Registry(context.Background(), fc, testMeta)
	if err != nil {
		t.Fatalf("Registry() error = %v", err)
	}
	if len(findings) != 0 {
		t.Errorf("findings = %v, want none", findings)
	}
	if len(fc.crates) != 1 || fc.crates[0] != "iksemel" {
		t.Errorf("queried crates = %v, want [iksemel]", fc.crates)
	}
}

func TestRegistry_ClientErrorIsFatal(t *testing.T) {
	fc := &fakeRegistry{err: errors.New(errors.ERegistryUnreachable, "request timed out")}

	_, err := Registry(context.Background(), fc, testMeta)
	if errors.GetCode(err) != errors.ERegistryUnreachable {
		t.Errorf("code = %s, want E_REGISTRY_UNREACHABLE", errors.GetCode(err))
	}
}
