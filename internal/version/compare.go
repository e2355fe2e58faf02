package version

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// CheckVersionCompatibility checks whether a stats report written by
// another toolkit version can be read by this one.
// Returns nil if compatible, error with details if not.
//
// Compatibility Rules:
//   - If either version is "main" (development build), compatibility check is skipped
//   - Major versions must match exactly
//   - Minor versions must match exactly
//   - Patch versions can differ (e.g., 0.3.0 is compatible with 0.3.5)
func CheckVersionCompatibility(readerVersion, fileVersion string) error {
	// Strip 'v' prefix if present for consistency
	readerVersion = strings.TrimPrefix(readerVersion, "v")
	fileVersion = strings.TrimPrefix(fileVersion, "v")

	// Skip version check for "main" (development builds)
	if readerVersion == "main" || fileVersion == "main" {
		return nil
	}

	readerSemver, err := semver.NewVersion(readerVersion)
	if err != nil {
		return fmt.Errorf("invalid reader version '%s': %w", readerVersion, err)
	}

	fileSemver, err := semver.NewVersion(fileVersion)
	if err != nil {
		return fmt.Errorf("invalid file version '%s': %w", fileVersion, err)
	}

	if readerSemver.Major() != fileSemver.Major() {
		return fmt.Errorf("major version mismatch: reader is %d.x.x but file was written by %d.x.x",
			readerSemver.Major(), fileSemver.Major())
	}

	if readerSemver.Minor() != fileSemver.Minor() {
		return fmt.Errorf("minor version mismatch: reader is %d.%d.x but file was written by %d.%d.x",
			readerSemver.Major(), readerSemver.Minor(),
			fileSemver.Major(), fileSemver.Minor())
	}

	// Patch versions can differ, so we're compatible
	return nil
}
