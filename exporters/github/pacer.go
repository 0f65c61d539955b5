package github

import (
	"math"
	"time"

	v1 "github.com/flanksource/workflow-db/api/v1"
)

// Pacer spaces successive job-list queries so the configured hourly quota is
// never exceeded. The interval is 3600s divided by the quota, rounded half-up
// to a whole second (1000/h comes out at 4s, not 3.6s).
type Pacer struct {
	Interval time.Duration
	sleep    func(time.Duration)
}

func NewPacer(requestsPerHour int) *Pacer {
	if requestsPerHour <= 0 {
		requestsPerHour = v1.DefaultRequestsPerHour
	}
	seconds := math.Round(3600 / float64(requestsPerHour))
	return &Pacer{
		Interval: time.Duration(seconds) * time.Second,
		sleep:    time.Sleep,
	}
}

// Wait blocks for one interval.
func (p *Pacer) Wait() {
	p.sleep(p.Interval)
}
