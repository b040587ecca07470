package fakehttp

import (
	"fmt"
	"net/http"
	"strings"
)

// Version is an HTTP protocol version.
type Version struct {
	Major int
	Minor int
}

var (
	// DefaultVersion is used for responses when no version is configured.
	DefaultVersion = Version{Major: 1, Minor: 0}

	// fallbackVersion is used for internal-error fallback responses.
	fallbackVersion = Version{Major: 1, Minor: 1}
)

// ParseVersion parses "major.minor", with or without an "HTTP/" prefix.
func ParseVersion(s string) (Version, error) {
	proto := strings.TrimSpace(s)
	if !strings.HasPrefix(proto, "HTTP/") {
		proto = "HTTP/" + proto
	}
	major, minor, ok := http.ParseHTTPVersion(proto)
	if !ok {
		return Version{}, fmt.Errorf("%w: %q", ErrInvalidVersion, s)
	}
	return Version{Major: major, Minor: minor}, nil
}

// Proto returns the version as it appears on a status line, e.g. "HTTP/1.1".
func (v Version) Proto() string {
	return fmt.Sprintf("HTTP/%d.%d", v.Major, v.Minor)
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}
