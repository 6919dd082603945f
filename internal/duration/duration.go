// Package duration provides parsing for human-readable duration strings.
//
// Users specify ages as "12h", "7d", "4w" or "3m" rather than Go's
// time.Duration format. Used by "lens log --since".
package duration

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// ErrInvalid is returned for strings that are not a count and a unit.
var ErrInvalid = errors.New("invalid duration")

var pattern = regexp.MustCompile(`^(\d+)([hdwm])$`)

const day = 24 * time.Hour

// Parse parses duration strings in the format Nh (hours), Nd (days),
// Nw (weeks) or Nm (months of 30 days).
func Parse(s string) (time.Duration, error) {
	matches := pattern.FindStringSubmatch(s)
	if matches == nil {
		return 0, fmt.Errorf("%w: %q (use 12h, 7d, 4w, or 3m)", ErrInvalid, s)
	}

	num, err := strconv.Atoi(matches[1])
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	switch matches[2] {
	case "h":
		return time.Duration(num) * time.Hour, nil
	case "d":
		return time.Duration(num) * day, nil
	case "w":
		return time.Duration(num) * 7 * day, nil
	default:
		return time.Duration(num) * 30 * day, nil
	}
}

// Since returns the instant d before now.
func Since(now time.Time, s string) (time.Time, error) {
	d, err := Parse(s)
	if err != nil {
		return time.Time{}, err
	}
	return now.Add(-d), nil
}
