package checks

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/NielsdaWheelz/relcheck/internal/manifest"
)

// headingPattern matches the required changelog heading:
// "# X.Y.Z (YYYY-MM-DD)". Anchored at the start; trailing text after the
// closing parenthesis is tolerated, matching the original behaviour.
var headingPattern = regexp.MustCompile(`^# (\d+\.\d+\.\d+) \((\d{4}-\d{2}-\d{2})\)`)

// Changelog validates the first line of the changelog document against the
// release metadata and the current date.
//
// Only the first line is inspected. On a structural match the extracted
// version and date are compared independently, so a run can report both a
// version and a date finding. A non-matching first line yields exactly one
// fixed finding and no further comparison.
//
// The reference time is a parameter so the date comparison is
// deterministic under test.
func Changelog(meta manifest.ReleaseMetadata, label string, data []byte, now time.Time) []string {
	firstLine, _, _ := strings.Cut(string(data), "\n")
	firstLine = strings.TrimSuffix(firstLine, "\r")

	match := headingPattern.FindStringSubmatch(firstLine)
	if match == nil {
		return []string{
			fmt.Sprintf("first line of %s must be of form '# X.Y.Z (YYYY-MM-DD)'", label),
		}
	}

	var findings []string

	changelogVersion := match[1]
	changelogDate := match[2]

	if changelogVersion != meta.Version {
		findings = append(findings, fmt.Sprintf(
			"%s version %s does not match manifest version %s",
			label, changelogVersion, meta.Version))
	}

	currentDate := now.Format("2006-01-02")
	if changelogDate != currentDate {
		findings = append(findings, fmt.Sprintf(
			"%s date %s does not match current date %s",
			label, changelogDate, currentDate))
	}

	return findings
}
