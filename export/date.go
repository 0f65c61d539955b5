package export

import (
	"fmt"
	"time"
)

// TargetDate returns the day before now in UTC, YYYY-MM-DD. The export
// always covers a fully elapsed day so late-finishing runs are included.
func TargetDate(now time.Time) string {
	return now.UTC().AddDate(0, 0, -1).Format(time.DateOnly)
}

// ValidateDate rejects anything that isn't a concrete calendar date.
func ValidateDate(date string) error {
	if date == "" {
		return fmt.Errorf("target date is empty")
	}
	if _, err := time.Parse(time.DateOnly, date); err != nil {
		return fmt.Errorf("invalid target date %q: %w", date, err)
	}
	return nil
}
