// Package timeutil parses the short durations used for tile timers.
package timeutil

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	segment = regexp.MustCompile(`^\s*(\d+)\s*([a-z]+)`)
	units   = map[string]time.Duration{
		"s":       time.Second,
		"sec":     time.Second,
		"secs":    time.Second,
		"second":  time.Second,
		"seconds": time.Second,
		"m":       time.Minute,
		"min":     time.Minute,
		"mins":    time.Minute,
		"minute":  time.Minute,
		"minutes": time.Minute,
		"h":       time.Hour,
		"hr":      time.Hour,
		"hrs":     time.Hour,
		"hour":    time.Hour,
		"hours":   time.Hour,
	}
)

// ParseSpan parses "25m", "1h30m" or "90 sec" and returns the duration and
// its compact form. A bare number counts minutes.
func ParseSpan(input string) (time.Duration, string, error) {
	remaining := strings.ToLower(strings.TrimSpace(input))
	if remaining == "" {
		return 0, "", errors.New("timeutil: empty duration")
	}
	if n, err := strconv.ParseInt(remaining, 10, 64); err == nil {
		remaining = strconv.FormatInt(n, 10) + "m"
	}

	total := time.Duration(0)
	for len(remaining) > 0 {
		matches := segment.FindStringSubmatch(remaining)
		if len(matches) != 3 {
			return 0, "", fmt.Errorf("timeutil: invalid duration segment %q", strings.TrimSpace(remaining))
		}
		value, err := strconv.ParseInt(matches[1], 10, 64)
		if err != nil {
			return 0, "", fmt.Errorf("timeutil: invalid duration value %q: %w", matches[1], err)
		}
		base, ok := units[matches[2]]
		if !ok {
			return 0, "", fmt.Errorf("timeutil: unsupported duration unit %q", matches[2])
		}
		total += time.Duration(value) * base
		remaining = remaining[len(matches[0]):]
	}

	if total <= 0 {
		return 0, "", errors.New("timeutil: duration must be greater than zero")
	}
	return total, FormatSpan(total), nil
}

// EndTime is the unix millisecond timestamp input from now, as carried by
// timer actions.
func EndTime(now time.Time, input string) (int64, error) {
	d, _, err := ParseSpan(input)
	if err != nil {
		return 0, err
	}
	return now.Add(d).UnixMilli(), nil
}

// FormatSpan renders a duration with hour, minute and second tokens.
func FormatSpan(d time.Duration) string {
	if d <= 0 {
		return "0s"
	}
	var parts []string
	remaining := d
	for _, u := range []struct {
		label string
		value time.Duration
	}{{"h", time.Hour}, {"m", time.Minute}, {"s", time.Second}} {
		if remaining < u.value {
			continue
		}
		count := remaining / u.value
		remaining -= count * u.value
		parts = append(parts, fmt.Sprintf("%d%s", count, u.label))
	}
	if len(parts) == 0 {
		return "0s"
	}
	return strings.Join(parts, "")
}
