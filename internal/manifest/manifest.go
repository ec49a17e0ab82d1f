// Package manifest loads release metadata from a crate's Cargo.toml.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/BurntSushi/toml"

	"github.com/NielsdaWheelz/relcheck/internal/errors"
	"github.com/NielsdaWheelz/relcheck/internal/fs"
)

// FileName is the build manifest file name at the crate root.
const FileName = "Cargo.toml"

// semverPattern matches MAJOR.MINOR.PATCH with no pre-release or build suffix.
var semverPattern = regexp.MustCompile(`^\d+\.\d+\.\d+$`)

// ReleaseMetadata is the declared identity of the release under check.
// Parsed once from the manifest and immutable for the run.
type ReleaseMetadata struct {
	Name    string
	Version string
}

// TagName returns the version-control tag the release would use.
func (m ReleaseMetadata) TagName() string {
	return "v" + m.Version
}

// DescriptorName returns the project description file name derived from
// the crate name and the configured extension.
func (m ReleaseMetadata) DescriptorName(ext string) string {
	return m.Name + "." + ext
}

// cargoManifest mirrors the subset of Cargo.toml relcheck reads.
type cargoManifest struct {
	Package cargoPackage `toml:"package"`
}

type cargoPackage struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
}

// Load reads and parses Cargo.toml from the given crate root.
// Returns E_NO_MANIFEST if the file does not exist or cannot be read.
// Returns E_INVALID_MANIFEST if the TOML is malformed, the package
// name/version fields are missing, or the version is not MAJOR.MINOR.PATCH.
func Load(fsys fs.FS, root string) (ReleaseMetadata, error) {
	path := filepath.Join(root, FileName)

	data, err := fsys.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return ReleaseMetadata{}, errors.NewWithDetails(
				errors.ENoManifest,
				"Cargo.toml not found; relcheck must run from a crate root",
				map[string]string{"manifest": path},
			)
		}
		return ReleaseMetadata{}, errors.WrapWithDetails(
			errors.ENoManifest,
			"failed to read Cargo.toml",
			err,
			map[string]string{"manifest": path},
		)
	}

	var m cargoManifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return ReleaseMetadata{}, errors.WrapWithDetails(
			errors.EInvalidManifest,
			"invalid toml: "+err.Error(),
			err,
			map[string]string{"manifest": path},
		)
	}

	if m.Package.Name == "" {
		return ReleaseMetadata{}, errors.NewWithDetails(
			errors.EInvalidManifest,
			"Cargo.toml is missing package.name",
			map[string]string{"manifest": path},
		)
	}
	if m.Package.Version == "" {
		return ReleaseMetadata{}, errors.NewWithDetails(
			errors.EInvalidManifest,
			"Cargo.toml is missing package.version",
			map[string]string{"manifest": path},
		)
	}
	if !semverPattern.MatchString(m.Package.Version) {
		return ReleaseMetadata{}, errors.NewWithDetails(
			errors.EInvalidManifest,
			fmt.Sprintf("package.version %q is not of form MAJOR.MINOR.PATCH", m.Package.Version),
			map[string]string{"manifest": path, "version": m.Package.Version},
		)
	}

	return ReleaseMetadata{
		Name:    m.Package.Name,
		Version: m.Package.Version,
	}, nil
}
