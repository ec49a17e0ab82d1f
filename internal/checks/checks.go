// Package checks implements the release consistency checks.
//
// Each check is a pure probe over one source of truth (changelog,
// descriptor, tag list, registry). Soft findings accumulate in a Report
// while environment failures propagate as coded errors; one source's
// finding never stops the remaining checks from running.
package checks

// Report collects the outcome of a checker run.
//
// Findings is the ordered, append-only list of consistency violations;
// an empty list means the release is consistent. Statuses holds one
// human-readable line per source that checked out clean.
type Report struct {
	Findings []string
	Statuses []string
}

// OK reports whether the run produced no findings.
func (r *Report) OK() bool {
	return len(r.Findings) == 0
}

func (r *Report) addFindings(findings []string) {
	r.Findings = append(r.Findings, findings...)
}

func (r *Report) addStatus(status string) {
	r.Statuses = append(r.Statuses, status)
}
