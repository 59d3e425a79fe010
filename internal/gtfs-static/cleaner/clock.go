package cleaner

import (
	"math"
	"strconv"
	"strings"
)

// ParseClock converts an "HH:MM:SS" arrival time into seconds since midnight.
// Hours of 24 and above are kept as-is for service running past midnight.
// ok is false for anything that is not three non-negative integers, and for
// totals that do not fit in 32 bits.
func ParseClock(value string) (seconds int, ok bool) {
	parts := strings.Split(value, ":")
	if len(parts) != 3 {
		return 0, false
	}

	var hms [3]int64
	for i, part := range parts {
		n, err := strconv.ParseInt(strings.TrimSpace(part), 10, 32)
		// Negative components are rejected so hour buckets stay within 0-23.
		if err != nil || n < 0 {
			return 0, false
		}
		hms[i] = n
	}

	total := hms[0]*3600 + hms[1]*60 + hms[2]
	if total > math.MaxInt32 {
		return 0, false
	}
	return int(total), true
}

// HourBucket maps seconds since midnight to a display hour 0-23. 25:10:00
// lands in bucket 1 together with 01:xx of the same service day.
func HourBucket(seconds int) int {
	return (seconds / 3600) % 24
}
