// Package protocol handles plugin protocol detection and version compatibility.
package protocol

import (
	"fmt"
	"strconv"
	"strings"

	huekitplugin "github.com/jmylchreest/huekit/pkg/plugin"
)

// Version represents a parsed protocol version.
type Version struct {
	Major int
	Minor int
	Patch int
}

// Parse parses a version string in "MAJOR.MINOR.PATCH" format.
func Parse(version string) (Version, error) {
	parts := strings.Split(version, ".")
	if len(parts) != 3 {
		return Version{}, fmt.Errorf("invalid version format: %s (expected MAJOR.MINOR.PATCH)", version)
	}

	nums := make([]int, 3)
	labels := []string{"major", "minor", "patch"}
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return Version{}, fmt.Errorf("invalid %s version: %s", labels[i], part)
		}
		nums[i] = n
	}

	return Version{Major: nums[0], Minor: nums[1], Patch: nums[2]}, nil
}

// String returns the string representation of the version.
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Less reports whether v sorts before other.
func (v Version) Less(other Version) bool {
	if v.Major != other.Major {
		return v.Major < other.Major
	}
	if v.Minor != other.Minor {
		return v.Minor < other.Minor
	}
	return v.Patch < other.Patch
}

// IsCompatible checks a plugin's protocol version against the host.
// The major version must match and the plugin must not be older than
// MinCompatibleVersion. Newer minor and patch versions are accepted.
func IsCompatible(pluginVersionStr string) (bool, error) {
	pluginVersion, err := Parse(pluginVersionStr)
	if err != nil {
		return false, fmt.Errorf("failed to parse plugin version: %w", err)
	}

	current := Current()
	minVersion, err := Parse(huekitplugin.MinCompatibleVersion)
	if err != nil {
		return false, fmt.Errorf("failed to parse minimum compatible version: %w", err)
	}

	if pluginVersion.Major != current.Major {
		return false, fmt.Errorf(
			"incompatible major version: plugin is %s, huekit requires %d.x.x",
			pluginVersion,
			current.Major,
		)
	}

	if pluginVersion.Less(minVersion) {
		return false, fmt.Errorf(
			"plugin version %s is too old, minimum required is %s",
			pluginVersion,
			minVersion,
		)
	}

	return true, nil
}

// Current returns the host protocol version.
func Current() Version {
	v, err := Parse(huekitplugin.ProtocolVersion)
	if err != nil {
		panic(fmt.Sprintf("invalid ProtocolVersion constant: %v", err))
	}
	return v
}
