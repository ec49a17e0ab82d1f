package checks

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"

	"github.com/NielsdaWheelz/relcheck/internal/errors"
	"github.com/NielsdaWheelz/relcheck/internal/manifest"
)

// Descriptor validates the revision recorded in the project description
// document (DOAP XML) against the release metadata.
//
// The value checked is the text of the first element named "revision"
// anywhere in the document, regardless of namespace prefix. A document
// without such an element, or with an empty one, is a structural failure
// (E_INVALID_DESCRIPTOR) rather than a finding: the file is broken, not
// merely stale.
func Descriptor(meta manifest.ReleaseMetadata, label string, data []byte) ([]string, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, errors.WrapWithDetails(
			errors.EInvalidDescriptor,
			"invalid xml: "+err.Error(),
			err,
			map[string]string{"descriptor": label},
		)
	}

	revision := findFirstElement(doc.Root(), "revision")
	if revision == nil {
		return nil, errors.NewWithDetails(
			errors.EInvalidDescriptor,
			fmt.Sprintf("%s has no revision element", label),
			map[string]string{"descriptor": label},
		)
	}

	value := strings.TrimSpace(revision.Text())
	if value == "" {
		return nil, errors.NewWithDetails(
			errors.EInvalidDescriptor,
			fmt.Sprintf("%s revision element is empty", label),
			map[string]string{"descriptor": label},
		)
	}

	if value != meta.Version {
		return []string{fmt.Sprintf(
			"%s revision %s does not match manifest version %s",
			label, value, meta.Version)}, nil
	}
	return nil, nil
}

// findFirstElement walks the tree in document order and returns the first
// element whose local name matches tag, or nil.
func findFirstElement(el *etree.Element, tag string) *etree.Element {
	if el == nil {
		return nil
	}
	if el.Tag == tag {
		return el
	}
	for _, child := range el.ChildElements() {
		if found := findFirstElement(child, tag); found != nil {
			return found
		}
	}
	return nil
}
