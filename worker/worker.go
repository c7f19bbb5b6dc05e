package worker

import (
	"github.com/robfig/cron/v3"
)

// OnWork one unit of work
type OnWork func() error

// BaseJob a cron-driven job that never overlaps itself
type BaseJob struct {
	Cron      *cron.Cron
	IsRunning bool
	OnWork    OnWork
}

// Start start the cron loop
func (job *BaseJob) Start() error {
	job.Cron.Start()
	return nil
}

// Stop stop the cron loop
func (job *BaseJob) Stop() error {
	job.Cron.Stop()
	return nil
}

// Run run the job once, skipped while a previous run is still going
func (job *BaseJob) Run() {
	if job.IsRunning {
		return
	}

	job.IsRunning = true
	job.OnWork()
	job.IsRunning = false
}
