// Package update checks GitHub releases for a newer arbor binary.
package update

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"runtime"
	"strconv"
	"strings"
	"time"
)

// DefaultAPIURL is the releases endpoint queried when no override is set.
const DefaultAPIURL = "https://api.github.com/repos/arbor-sh/arbor/releases/latest"

// EnvAPIURL overrides the releases endpoint, mainly for tests and
// self-hosted mirrors.
const EnvAPIURL = "ARBOR_UPDATE_URL"

// VersionInfo describes one published release.
type VersionInfo struct {
	// Version is the release tag (e.g. "v0.5.0").
	Version string

	// URL is the download location of this platform's archive, empty
	// when the release carries no matching asset.
	URL string

	// Date is the publication time.
	Date time.Time
}

// Checker queries the release feed.
type Checker interface {
	// CheckLatest fetches the newest release metadata.
	CheckLatest(ctx context.Context) (*VersionInfo, error)

	// IsUpdateAvailable compares the newest release against current.
	IsUpdateAvailable(ctx context.Context, current string) (bool, *VersionInfo, error)
}

// releaseResponse mirrors the GitHub releases API payload.
type releaseResponse struct {
	TagName     string          `json:"tag_name"`
	PublishedAt time.Time       `json:"published_at"`
	Assets      []assetResponse `json:"assets"`
}

type assetResponse struct {
	Name               string `json:"name"`
	BrowserDownloadURL string `json:"browser_download_url"`
}

// checker is the concrete Checker over HTTP.
type checker struct {
	apiURL string
	client *http.Client
}

var _ Checker = (*checker)(nil)

// NewChecker creates a Checker against apiURL. An empty URL uses the
// default endpoint; a nil client gets a 10 second timeout. For testing,
// pass the httptest.Server URL directly.
func NewChecker(apiURL string, client *http.Client) Checker {
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &checker{apiURL: apiURL, client: client}
}

// CheckLatest fetches the latest release metadata.
func (c *checker) CheckLatest(ctx context.Context) (*VersionInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("update: create request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("User-Agent", "arbor-updater")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("update: request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("update: no releases found (status 404)")
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("update: unexpected status %d", resp.StatusCode)
	}

	var release releaseResponse
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return nil, fmt.Errorf("update: decode response: %w", err)
	}

	info := &VersionInfo{
		Version: release.TagName,
		Date:    release.PublishedAt,
	}

	// Archives follow goreleaser naming: arbor_<version>_<os>_<arch>.<ext>
	// with the tag's "v" prefix stripped.
	ext := "tar.gz"
	if runtime.GOOS == "windows" {
		ext = "zip"
	}
	archive := fmt.Sprintf("arbor_%s_%s_%s.%s",
		strings.TrimPrefix(release.TagName, "v"), runtime.GOOS, runtime.GOARCH, ext)
	for _, asset := range release.Assets {
		if asset.Name == archive {
			info.URL = asset.BrowserDownloadURL
			break
		}
	}

	return info, nil
}

// IsUpdateAvailable reports whether the newest release is newer than
// current. Dev builds never see updates.
func (c *checker) IsUpdateAvailable(ctx context.Context, current string) (bool, *VersionInfo, error) {
	if current == "" || current == "dev" || strings.Contains(current, "dirty") {
		return false, nil, nil
	}

	info, err := c.CheckLatest(ctx)
	if err != nil {
		return false, nil, err
	}
	return CompareVersions(info.Version, current) > 0, info, nil
}

// CompareVersions compares two semver-ish tags, ignoring a leading "v"
// and any pre-release suffix. Returns -1, 0, or 1.
func CompareVersions(a, b string) int {
	pa, pb := parseVersion(a), parseVersion(b)
	for i := range 3 {
		if pa[i] != pb[i] {
			if pa[i] < pb[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// parseVersion extracts the numeric major.minor.patch triple. Malformed
// segments parse as zero, which sorts them below any real release.
func parseVersion(v string) [3]int {
	v = strings.TrimPrefix(v, "v")
	if i := strings.IndexAny(v, "-+"); i >= 0 {
		v = v[:i]
	}

	var parts [3]int
	for i, seg := range strings.SplitN(v, ".", 3) {
		n, err := strconv.Atoi(seg)
		if err != nil {
			break
		}
		parts[i] = n
	}
	return parts
}
