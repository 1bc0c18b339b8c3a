package main

import (
	"strconv"
	"time"

	"gitlab.com/tozd/go/errors"
)

// parseTimeout accepts a Go duration or a bare number of seconds. Zero
// disables the per-file deadline.
func parseTimeout(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	if secs, err := strconv.ParseFloat(s, 64); err == nil {
		if secs <= 0 {
			return -1, nil
		}
		return time.Duration(secs * float64(time.Second)), nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, errors.Errorf("invalid --timeout %q: %w", s, err)
	}
	if d <= 0 {
		return -1, nil
	}
	return d, nil
}
