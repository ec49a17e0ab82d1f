package checks

import (
	"context"
	iofs "io/fs"
	"os"
	"reflect"
	"testing"
	"time"

	"github.com/NielsdaWheelz/relcheck/internal/config"
	"github.com/NielsdaWheelz/relcheck/internal/errors"
	"github.com/NielsdaWheelz/relcheck/internal/exec"
	"github.com/NielsdaWheelz/relcheck/internal/fs"
)

// stubFS is a test stub for the fs.FS interface.
type stubFS struct {
	files map[string][]byte
}

func newStubFS() *stubFS {
	return &stubFS{files: make(map[string][]byte)}
}

func (s *stubFS) ReadFile(path string) ([]byte, error) {
	data, ok := s.files[path]
	if !ok {
		return nil, os.ErrNotExist
	}
	return data, nil
}

func (s *stubFS) Stat(path string) (iofs.FileInfo, error) {
	if _, ok := s.files[path]; !ok {
		return nil, os.ErrNotExist
	}
	return nil, nil
}

func (s *stubFS) AppendLine(path, line string) error { return nil }

var _ fs.FS = (*stubFS)(nil)

// consistentRunner builds a Runner whose collaborators describe a fully
// consistent, unpublished 1.2.3 release.
func consistentRunner() (*Runner, *stubFS) {
	stub := newStubFS()
	stub.files["/work/CHANGELOG.md"] = []byte("# 1.2.3 (2024-01-01)\n\n- changes\n")
	stub.files["/work/iksemel.doap"] = []byte(doapConsistent)

	return &Runner{
		FS:       stub,
		CR:       &fakeRunner{result: exec.CmdResult{ExitCode: 0, Stdout: ""}},
		Registry: &fakeRegistry{versions: []string{"1.2.2", "1.2.1"}},
		Config:   config.Default(),
		Clock:    testClock,
	}, stub
}

func TestRunner_AllConsistent(t *testing.T) {
	r, _ := consistentRunner()

	report, err := r.Run(context.Background(), "/work", testMeta)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !report.OK() {
		t.Errorf("findings = %v, want none", report.Findings)
	}

	wantStatuses := []string{
		"CHANGELOG.md: up-to-date",
		"iksemel.doap: up-to-date",
		"Tag: v1.2.3 available",
		"Registry: ready",
	}
	if !reflect.DeepEqual(report.Statuses, wantStatuses) {
		t.Errorf("statuses = %v, want %v", report.Statuses, wantStatuses)
	}
}

func TestRunner_SoftFindingsAccumulate(t *testing.T) {
	r, stub := consistentRunner()
	stub.files["/work/CHANGELOG.md"] = []byte("# 1.2.4 (2024-01-01)\n")
	r.CR = &fakeRunner{result: exec.CmdResult{ExitCode: 0, Stdout: "v1.2.3\n"}}
	r.Registry = &fakeRegistry{versions: []string{"1.2.3"}}

	report, err := r.Run(context.Background(), "/work", testMeta)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	// One check's finding must not prevent the others from running.
	if len(report.Findings) != 3 {
		t.Errorf("findings = %v, want 3 entries", report.Findings)
	}
}

func TestRunner_MissingChangelogIsFatal(t *testing.T) {
	r, stub := consistentRunner()
	delete(stub.files, "/work/CHANGELOG.md")

	_, err := r.Run(context.Background(), "/work", testMeta)
	if errors.GetCode(err) != errors.ENoChangelog {
		t.Errorf("code = %s, want E_NO_CHANGELOG", errors.GetCode(err))
	}
}

func TestRunner_MissingDescriptorIsFatal(t *testing.T) {
	r, stub := consistentRunner()
	delete(stub.files, "/work/iksemel.doap")

	_, err := r.Run(context.Background(), "/work", testMeta)
	if errors.GetCode(err) != errors.ENoDescriptor {
		t.Errorf("code = %s, want E_NO_DESCRIPTOR", errors.GetCode(err))
	}
}

func TestRunner_ConfiguredPaths(t *testing.T) {
	r, stub := consistentRunner()
	r.Config.Changelog = "docs/CHANGES.md"
	r.Config.DescriptorExt = "rdf"
	stub.files["/work/docs/CHANGES.md"] = []byte("# 1.2.3 (2024-01-01)\n")
	stub.files["/work/iksemel.rdf"] = []byte(doapConsistent)

	report, err := r.Run(context.Background(), "/work", testMeta)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !report.OK() {
		t.Errorf("findings = %v, want none", report.Findings)
	}
	if report.Statuses[0] != "CHANGES.md: up-to-date" {
		t.Errorf("status = %q, want changelog label from config", report.Statuses[0])
	}
}

func TestRunner_Idempotent(t *testing.T) {
	r, stub := consistentRunner()
	stub.files["/work/CHANGELOG.md"] = []byte("# 1.2.4 (2023-06-05)\n")

	first, err := r.Run(context.Background(), "/work", testMeta)
	if err != nil {
		t.Fatalf("first Run() error = %v", err)
	}
	second, err := r.Run(context.Background(), "/work", testMeta)
	if err != nil {
		t.Fatalf("second Run() error = %v", err)
	}
	if !reflect.DeepEqual(first.Findings, second.Findings) {
		t.Errorf("runs differ: %v vs %v", first.Findings, second.Findings)
	}
}

func TestRunner_DefaultClock(t *testing.T) {
	r, stub := consistentRunner()
	r.Clock = nil
	stub.files["/work/CHANGELOG.md"] = []byte("# 1.2.3 (" + time.Now().Format("2006-01-02") + ")\n")

	report, err := r.Run(context.Background(), "/work", testMeta)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !report.OK() {
		t.Errorf("findings = %v, want none", report.Findings)
	}
}
