package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// FormatCount renders a counter the way the dashboard shows it:
// 1.5M, 12.3K or the plain integer below one thousand.
func FormatCount(n int64) string {
	switch {
	case n >= 1_000_000:
		return scaled(n, 1_000_000) + "M"
	case n >= 1_000:
		return scaled(n, 1_000) + "K"
	default:
		return strconv.FormatInt(n, 10)
	}
}

// scaled divides n by unit and keeps one decimal, rounding half up
func scaled(n, unit int64) string {
	tenths := (n*10 + unit/2) / unit
	return fmt.Sprintf("%d.%d", tenths/10, tenths%10)
}

// FormatCountString formats an upstream decimal string such as "1500000".
// An empty string counts as zero; anything else non-numeric is rejected.
func FormatCountString(s string) (string, error) {
	n, err := ParseCount(s)
	if err != nil {
		return "", err
	}
	return FormatCount(n), nil
}

// ParseCount parses an upstream decimal counter, treating an absent value as zero
func ParseCount(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid count %q: %w", s, err)
	}
	return n, nil
}

var isoDuration = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?$`)

// FormatDuration turns an ISO-8601 video duration (PT1H2M3S) into 1:02:03,
// or 4:13 when there is no hour component. Unparsable input yields "".
func FormatDuration(iso string) string {
	m := isoDuration.FindStringSubmatch(strings.TrimSpace(iso))
	if m == nil || (m[1] == "" && m[2] == "" && m[3] == "") {
		return ""
	}
	hours, _ := strconv.Atoi(orZero(m[1]))
	minutes, _ := strconv.Atoi(orZero(m[2]))
	seconds, _ := strconv.Atoi(orZero(m[3]))
	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}

func orZero(s string) string {
	if s == "" {
		return "0"
	}
	return s
}

const (
	secondsPerMinute = 60
	secondsPerHour   = 3600
	secondsPerDay    = 86400
	secondsPerMonth  = 2592000
	secondsPerYear   = 31536000
)

// TimeAgo buckets an elapsed duration into the compact labels used on
// cards and comments ("5m ago", "3d ago"). Negative durations are "just now".
func TimeAgo(elapsed time.Duration) string {
	return timeAgo(elapsed, [5]string{"m", "h", "d", "mo", "y"}, "")
}

// TimeAgoLong is the spelled-out variant used on the video detail header
func TimeAgoLong(elapsed time.Duration) string {
	return timeAgo(elapsed, [5]string{"minutes", "hours", "days", "months", "years"}, " ")
}

func timeAgo(elapsed time.Duration, units [5]string, sep string) string {
	secs := int64(elapsed / time.Second)
	switch {
	case secs < secondsPerMinute:
		return "just now"
	case secs < secondsPerHour:
		return fmt.Sprintf("%d%s%s ago", secs/secondsPerMinute, sep, units[0])
	case secs < secondsPerDay:
		return fmt.Sprintf("%d%s%s ago", secs/secondsPerHour, sep, units[1])
	case secs < secondsPerMonth:
		return fmt.Sprintf("%d%s%s ago", secs/secondsPerDay, sep, units[2])
	case secs < secondsPerYear:
		return fmt.Sprintf("%d%s%s ago", secs/secondsPerMonth, sep, units[3])
	default:
		return fmt.Sprintf("%d%s%s ago", secs/secondsPerYear, sep, units[4])
	}
}

// Since is TimeAgo measured from t to now
func Since(t, now time.Time) string {
	if t.IsZero() {
		return ""
	}
	return TimeAgo(now.Sub(t))
}
