// Package jobs provides scheduled background tasks for the fulfillment coordinator.
//
// Jobs are built on github.com/robfig/cron/v3 with second-level schedules.
//
// # Available Jobs
//
// 1. DispatchSweepJob - wakes every connected vehicle session so that orders confirmed while
// vehicles are silent get dispatched without waiting for the next telemetry frame.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(vehicleRegistry, "*/5 * * * * *", logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A job that fails to start stops the jobs already running. Dispatch failures are logged by
// the vehicle session that runs the pass, not by the sweep.
package jobs
