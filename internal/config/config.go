// Package config handles loading and validation of .relcheck.yaml files.
//
// The config file is optional; every field has a default so a bare crate
// checks out of the box against crates.io.
package config

import (
	"bytes"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/NielsdaWheelz/relcheck/internal/errors"
	"github.com/NielsdaWheelz/relcheck/internal/fs"
)

// FileName is the checker config file name at the crate root.
const FileName = ".relcheck.yaml"

// Defaults applied when the config file or a field is absent.
const (
	DefaultRegistryURL     = "https://crates.io"
	DefaultRegistryTimeout = 10 * time.Second
	DefaultChangelog       = "CHANGELOG.md"
	DefaultDescriptorExt   = "doap"
)

// Config is the parsed and normalized checker configuration.
type Config struct {
	Registry RegistryConfig

	// Changelog is the changelog path relative to the crate root.
	Changelog string

	// DescriptorExt is the project description file extension (no dot).
	DescriptorExt string

	// Advisory keeps the legacy CI behaviour: findings are printed but the
	// exit code stays zero.
	Advisory bool
}

// RegistryConfig controls the package registry probe.
type RegistryConfig struct {
	URL     string
	Timeout time.Duration
}

// fileConfig mirrors the YAML document; timeout is a duration string
// ("10s", "1m") parsed during normalization.
type fileConfig struct {
	Registry struct {
		URL     string `yaml:"url"`
		Timeout string `yaml:"timeout"`
	} `yaml:"registry"`
	Changelog     string `yaml:"changelog"`
	DescriptorExt string `yaml:"descriptor_ext"`
	Advisory      bool   `yaml:"advisory"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Registry: RegistryConfig{
			URL:     DefaultRegistryURL,
			Timeout: DefaultRegistryTimeout,
		},
		Changelog:     DefaultChangelog,
		DescriptorExt: DefaultDescriptorExt,
	}
}

// Load reads .relcheck.yaml from the crate root if present.
// A missing file returns Default() with found=false and no error.
// Returns E_INVALID_CONFIG for unparseable YAML or invalid values.
func Load(fsys fs.FS, root string) (Config, bool, error) {
	path := filepath.Join(root, FileName)

	data, err := fsys.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), false, nil
		}
		return Config{}, false, errors.WrapWithDetails(
			errors.EInvalidConfig,
			"failed to read "+FileName,
			err,
			map[string]string{"config": path},
		)
	}

	cfg, err := Parse(data)
	if err != nil {
		if ce, ok := errors.AsCheckError(err); ok && ce.Details == nil {
			ce.Details = map[string]string{"config": path}
		}
		return Config{}, true, err
	}
	return cfg, true, nil
}

// Parse decodes a config payload and applies defaults and validation.
func Parse(data []byte) (Config, error) {
	var fc fileConfig

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil {
		// An empty file decodes to EOF; treat it as all-defaults.
		if err == io.EOF {
			return Default(), nil
		}
		return Config{}, errors.Wrap(errors.EInvalidConfig, "invalid yaml: "+err.Error(), err)
	}

	return normalize(fc)
}

// normalize fills defaulted fields and validates the result.
func normalize(fc fileConfig) (Config, error) {
	cfg := Default()
	cfg.Advisory = fc.Advisory

	if fc.Registry.URL != "" {
		cfg.Registry.URL = fc.Registry.URL
	}
	if fc.Registry.Timeout != "" {
		d, err := time.ParseDuration(fc.Registry.Timeout)
		if err != nil {
			return Config{}, errors.NewWithDetails(
				errors.EInvalidConfig,
				"registry.timeout must be a duration string like \"10s\"",
				map[string]string{"timeout": fc.Registry.Timeout},
			)
		}
		if d <= 0 {
			return Config{}, errors.New(errors.EInvalidConfig, "registry.timeout must be positive")
		}
		cfg.Registry.Timeout = d
	}
	if fc.Changelog != "" {
		cfg.Changelog = fc.Changelog
	}
	if fc.DescriptorExt != "" {
		cfg.DescriptorExt = strings.TrimPrefix(fc.DescriptorExt, ".")
	}

	u, err := url.Parse(cfg.Registry.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return Config{}, errors.NewWithDetails(
			errors.EInvalidConfig,
			"registry.url must be an absolute URL",
			map[string]string{"url": cfg.Registry.URL},
		)
	}
	if filepath.IsAbs(cfg.Changelog) {
		return Config{}, errors.NewWithDetails(
			errors.EInvalidConfig,
			"changelog must be a path relative to the crate root",
			map[string]string{"changelog": cfg.Changelog},
		)
	}

	return cfg, nil
}
