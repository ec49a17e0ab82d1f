// Package output communicates the resolved version to the CI pipeline.
package output

import (
	"github.com/NielsdaWheelz/relcheck/internal/errors"
	"github.com/NielsdaWheelz/relcheck/internal/fs"
)

// EnvVar names the environment variable holding the pipeline output file,
// the GitHub Actions step-output convention.
const EnvVar = "GITHUB_OUTPUT"

// Env reads environment variables; injected so tests control the value.
type Env interface {
	Get(key string) string
}

// WriteVersion appends "version=<version>" to the pipeline output file
// named by $GITHUB_OUTPUT. When the variable is unset nothing happens and
// the returned path is empty.
func WriteVersion(fsys fs.FS, env Env, version string) (string, error) {
	path := env.Get(EnvVar)
	if path == "" {
		return "", nil
	}
	if err := fsys.AppendLine(path, "version="+version); err != nil {
		return "", errors.WrapWithDetails(
			errors.EOutputWriteFailed,
			"failed to append to "+EnvVar+" file",
			err,
			map[string]string{"output": path},
		)
	}
	return path, nil
}
