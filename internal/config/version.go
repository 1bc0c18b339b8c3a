package config

import (
	"fmt"
	"strconv"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// PHPVersion is a major.minor PHP release.
type PHPVersion struct {
	Major, Minor int
}

var (
	PHP74 = PHPVersion{7, 4}
	PHP80 = PHPVersion{8, 0}
)

// ParsePHPVersion accepts "7.3", "7.3.12" or "8".
func ParsePHPVersion(s string) (PHPVersion, error) {
	parts := strings.Split(strings.TrimSpace(s), ".")
	if len(parts) == 0 || parts[0] == "" {
		return PHPVersion{}, errors.Errorf("invalid PHP version %q", s)
	}
	major, err := strconv.Atoi(parts[0])
	if err != nil {
		return PHPVersion{}, errors.Errorf("invalid PHP version %q: %w", s, err)
	}
	v := PHPVersion{Major: major}
	if len(parts) > 1 {
		if v.Minor, err = strconv.Atoi(parts[1]); err != nil {
			return PHPVersion{}, errors.Errorf("invalid PHP version %q: %w", s, err)
		}
	}
	return v, nil
}

// Less reports whether v is older than o.
func (v PHPVersion) Less(o PHPVersion) bool {
	if v.Major != o.Major {
		return v.Major < o.Major
	}
	return v.Minor < o.Minor
}

func (v PHPVersion) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}
