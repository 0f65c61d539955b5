package jobs

import (
	"fmt"

	"github.com/robfig/cron/v3"
)

var FuncScheduler = cron.New()

// ScheduleExport registers the export pass on the given cron schedule and
// starts the scheduler.
func ScheduleExport(schedule string, run func()) error {
	if _, err := FuncScheduler.AddFunc(schedule, run); err != nil {
		return fmt.Errorf("failed to schedule export at %q: %w", schedule, err)
	}
	FuncScheduler.Start()
	return nil
}

func Stop() {
	FuncScheduler.Stop()
}
