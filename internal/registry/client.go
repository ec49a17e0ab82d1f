// Package registry queries the package registry for published versions.
package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/NielsdaWheelz/relcheck/internal/errors"
)

// Client fetches the published version list for a crate.
type Client interface {
	PublishedVersions(ctx context.Context, name string) ([]string, error)
}

// HTTPClient is a Client backed by the crates.io-style HTTP API:
// GET <base>/api/v1/crates/<name> returning {"versions": [{"num": "..."}]}.
type HTTPClient struct {
	Base string
	HTTP *http.Client
}

// NewHTTP creates a registry client for the given base URL with an
// explicit request timeout. The original script used no timeout; CI jobs
// must not hang on a stalled registry, so one is always applied here.
func NewHTTP(base string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		Base: strings.TrimRight(base, "/"),
		HTTP: &http.Client{Timeout: timeout},
	}
}

var _ Client = (*HTTPClient)(nil)

// crateResponse mirrors the subset of the registry payload relcheck reads.
type crateResponse struct {
	Versions []struct {
		Num string `json:"num"`
	} `json:"versions"`
}

// PublishedVersions implements Client.PublishedVersions.
// Transport failures map to E_REGISTRY_UNREACHABLE; a non-2xx status or an
// undecodable body maps to E_REGISTRY_RESPONSE. Both are fatal to the run.
func (c *HTTPClient) PublishedVersions(ctx context.Context, name string) ([]string, error) {
	url := c.Base + "/api/v1/crates/" + name

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(errors.EInternal, "failed to build registry request", err)
	}
	// crates.io rejects requests without a descriptive user agent.
	req.Header.Set("User-Agent", "relcheck (release consistency checker)")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, errors.WrapWithDetails(
			errors.ERegistryUnreachable,
			"registry request failed: "+err.Error(),
			err,
			map[string]string{"url": url, "crate": name},
		)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		details := map[string]string{
			"url":    url,
			"crate":  name,
			"status": resp.Status,
		}
		if resp.StatusCode == http.StatusNotFound {
			details["hint"] = "a crate that has never been published returns 404"
		}
		return nil, errors.NewWithDetails(
			errors.ERegistryResponse,
			fmt.Sprintf("registry returned %s for crate %s", resp.Status, name),
			details,
		)
	}

	var body crateResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, errors.WrapWithDetails(
			errors.ERegistryResponse,
			"failed to decode registry response: "+err.Error(),
			err,
			map[string]string{"url": url, "crate": name},
		)
	}

	versions := make([]string, 0, len(body.Versions))
	for _, v := range body.Versions {
		versions = append(versions, v.Num)
	}
	return versions, nil
}
