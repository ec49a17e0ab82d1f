package checks

import (
	"strings"
	"testing"

	"github.com/NielsdaWheelz/relcheck/internal/errors"
)

const doapConsistent = `<?xml version="1.0" encoding="UTF-8"?>
<Project xmlns="http://usefulinc.com/ns/doap#"
         xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#">
  <name>iksemel</name>
  <release>
    <Version>
      <revision>1.2.3</revision>
      <created>2024-01-01</created>
    </Version>
  </release>
</Project>
`

const doapStale = `<?xml version="1.0" encoding="UTF-8"?>
<Project xmlns="http://usefulinc.com/ns/doap#">
  <release>
    <Version>
      <revision>1.2.2</revision>
    </Version>
  </release>
</Project>
`

const doapNoRevision = `<?xml version="1.0" encoding="UTF-8"?>
<Project xmlns="http://usefulinc.com/ns/doap#">
  <name>iksemel</name>
</Project>
`

func TestDescriptor_Consistent(t *testing.T) {
	findings, err := Descriptor(testMeta, "iksemel.doap", []byte(doapConsistent))
	if err != nil {
		t.Fatalf("Descriptor() error = %v", err)
	}
	if len(findings) != 0 {
		t.Errorf("findings = %v, want none", findings)
	}
}

func TestDescriptor_Mismatch(t *testing.T) {
	findings, err := Descriptor(testMeta, "iksemel.doap", []byte(doapStale))
	if err != nil {
		t.Fatalf("Descriptor() error = %v", err)
	}
	if len(findings) != 1 {
		t.Fatalf("findings = %v, want exactly one", findings)
	}
	if !strings.Contains(findings[0], "1.2.2") || !strings.Contains(findings[0], "1.2.3") {
		t.Errorf("finding should mention both versions: %q", findings[0])
	}
}

func TestDescriptor_StructureErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"no revision element", doapNoRevision},
		{"empty revision", `<Project><release><revision>  </revision></release></Project>`},
		{"malformed xml", `<Project><release>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Descriptor(testMeta, "iksemel.doap", []byte(tt.content))
			if err == nil {
				t.Fatal("expected structural error")
			}
			if errors.GetCode(err) != errors.EInvalidDescriptor {
				t.Errorf("code = %s, want E_INVALID_DESCRIPTOR", errors.GetCode(err))
			}
		})
	}
}

func TestDescriptor_FirstRevisionWins(t *testing.T) {
	// Two release entries; only the first revision element is consulted.
	content := `<Project>
  <release><Version><revision>1.2.3</revision></Version></release>
  <release><Version><revision>0.9.0</revision></Version></release>
</Project>`

	findings, err := Descriptor(testMeta, "iksemel.doap", []byte(content))
	if err != nil {
		t.Fatalf("Descriptor() error = %v", err)
	}
	if len(findings) != 0 {
		t.Errorf("findings = %v, want none", findings)
	}
}
