package utils

import "time"

// Overlaps reports whether [aStart, aEnd) and [bStart, bEnd) share any instant.
// Windows that only touch (aEnd == bStart) do not overlap, which lets a vehicle be
// handed from one rental straight to the next.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// Contains reports whether t falls inside [start, end).
func Contains(start, end, t time.Time) bool {
	return !t.Before(start) && t.Before(end)
}
