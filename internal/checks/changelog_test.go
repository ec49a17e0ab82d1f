package checks

import (
	"strings"
	"testing"
	"time"

	"github.com/NielsdaWheelz/relcheck/internal/manifest"
)

var testMeta = manifest.ReleaseMetadata{Name: "iksemel", Version: "1.2.3"}

func testClock() time.Time {
	return time.Date(2024, 1, 1, 15, 4, 5, 0, time.UTC)
}

func TestChangelog(t *testing.T) {
	tests := []struct {
		name         string
		content      string
		wantFindings int
		wantContains []string
	}{
		{
			name:         "consistent",
			content:      "# 1.2.3 (2024-01-01)\n\n- Fixed parsing of empty elements\n",
			wantFindings: 0,
		},
		{
			name:         "version mismatch",
			content:      "# 1.2.4 (2024-01-01)\n",
			wantFindings: 1,
			wantContains: []string{"1.2.4", "1.2.3"},
		},
		{
			name:         "date mismatch",
			content:      "# 1.2.3 (2023-12-31)\n",
			wantFindings: 1,
			wantContains: []string{"2023-12-31", "2024-01-01"},
		},
		{
			name:         "version and date mismatch",
			content:      "# 1.2.4 (2023-12-31)\n",
			wantFindings: 2,
		},
		{
			name:         "no heading pattern",
			content:      "Release notes\n\n# 1.2.3 (2024-01-01)\n",
			wantFindings: 1,
			wantContains: []string{"first line of CHANGELOG.md must be of form"},
		},
		{
			name:         "empty file",
			content:      "",
			wantFindings: 1,
			wantContains: []string{"must be of form"},
		},
		{
			name:         "trailing text after heading tolerated",
			content:      "# 1.2.3 (2024-01-01) - hotfix\n",
			wantFindings: 0,
		},
		{
			name:         "crlf line ending",
			content:      "# 1.2.3 (2024-01-01)\r\nbody\r\n",
			wantFindings: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			findings := Changelog(testMeta, "CHANGELOG.md", []byte(tt.content), testClock())

			if len(findings) != tt.wantFindings {
				t.Fatalf("findings = %v, want %d entries", findings, tt.wantFindings)
			}
			for _, want := range tt.wantContains {
				found := false
				for _, f := range findings {
					if strings.Contains(f, want) {
						found = true
						break
					}
				}
				if !found {
					t.Errorf("no finding mentions %q in %v", want, findings)
				}
			}
		})
	}
}

func TestChangelog_NoComparisonWithoutMatch(t *testing.T) {
	// A malformed first line must produce the fixed finding only, even when
	// the rest of the content would mismatch on every axis.
	findings := Changelog(testMeta, "CHANGELOG.md", []byte("## 9.9.9 (1999-01-01)\n"), testClock())

	if len(findings) != 1 {
		t.Fatalf("findings = %v, want exactly one", findings)
	}
	if strings.Contains(findings[0], "9.9.9") {
		t.Errorf("fixed finding should not mention extracted values: %q", findings[0])
	}
}

func TestChangelog_LocalDate(t *testing.T) {
	// The comparison uses the clock's local calendar date.
	clock := func() time.Time {
		loc := time.FixedZone("UTC+13", 13*3600)
		return time.Date(2024, 1, 1, 23, 0, 0, 0, loc)
	}

	findings := Changelog(testMeta, "CHANGELOG.md", []byte("# 1.2.3 (2024-01-01)\n"), clock())
	if len(findings) != 0 {
		t.Errorf("findings = %v, want none", findings)
	}
}
