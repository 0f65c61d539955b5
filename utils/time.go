package utils

import "time"

// timeNow is swapped out by MockTime so the target-date resolution can be
// pinned in tests
var timeNow = time.Now

// Now is the single source of wall-clock time for the exporter; the target
// date is always derived from it, never from time.Now directly.
func Now() time.Time {
	return timeNow()
}

// MockTime freezes Now at the given instant and returns a restore function.
func MockTime(mockTime time.Time) func() {
	original := timeNow
	timeNow = func() time.Time { return mockTime }
	return func() { timeNow = original }
}
