package version

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/studiowebux/restdeck/internal/composer"
	"github.com/studiowebux/restdeck/internal/types"
)

// LatestReleaseURL is the GitHub API endpoint for the newest release
const LatestReleaseURL = "https://api.github.com/repos/studiowebux/restdeck/releases/latest"

type githubRelease struct {
	TagName string `json:"tag_name"`
	HTMLURL string `json:"html_url"`
}

// Release describes the newest published release
type Release struct {
	Version   string
	URL       string
	Available bool // newer than the running version
}

// CheckForUpdate asks url for the latest release through client and
// compares it with currentVersion
func CheckForUpdate(ctx context.Context, client composer.Sender, url, currentVersion string) (Release, error) {
	resp := client.Send(ctx, types.RequestOptions{
		Method:  "GET",
		URL:     url,
		Headers: map[string]string{"Accept": "application/vnd.github+json"},
	})
	if resp.IsTransportError() {
		return Release{}, fmt.Errorf("failed to fetch latest release: %s", resp.Body)
	}
	if resp.Status != 200 {
		return Release{}, fmt.Errorf("unexpected status code: %d", resp.Status)
	}

	var release githubRelease
	if err := json.Unmarshal([]byte(resp.Body), &release); err != nil {
		return Release{}, fmt.Errorf("failed to decode response: %w", err)
	}

	latest := strings.TrimPrefix(release.TagName, "v")
	current := strings.TrimPrefix(currentVersion, "v")

	return Release{
		Version:   latest,
		URL:       release.HTMLURL,
		Available: latest != "" && isNewerVersion(latest, current),
	}, nil
}

// isNewerVersion compares two semantic versions and returns true if latest > current.
// Pre-release and build suffixes are ignored.
func isNewerVersion(latest, current string) bool {
	latestParts := parseVersion(latest)
	currentParts := parseVersion(current)

	n := max(len(latestParts), len(currentParts))
	for len(latestParts) < n {
		latestParts = append(latestParts, 0)
	}
	for len(currentParts) < n {
		currentParts = append(currentParts, 0)
	}

	for i := 0; i < n; i++ {
		if latestParts[i] != currentParts[i] {
			return latestParts[i] > currentParts[i]
		}
	}
	return false
}

// parseVersion splits "1.2.3-dev" into [1 2 3]
func parseVersion(version string) []int {
	if idx := strings.IndexAny(version, "-+"); idx != -1 {
		version = version[:idx]
	}

	parts := strings.Split(version, ".")
	result := make([]int, 0, len(parts))
	for _, part := range parts {
		num, err := strconv.Atoi(part)
		if err != nil {
			continue
		}
		result = append(result, num)
	}
	return result
}
