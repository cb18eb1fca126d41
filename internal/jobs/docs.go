// Package jobs provides scheduled background tasks for the job market
// client.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle the periodic work the session needs around the push stream.
//
// # Available Jobs
//
// 1. OfferPullJob - Refreshes the offered orders listing at a configured
// interval while the worker is online
// 2. StaleAcceptJob - Runs every second to roll back accepted orders
// whose requester confirmation never arrived
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(session, pullInterval, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// - The pull job absorbs transient backend failures inside the session;
// errors reaching the job are logged
// - The stale accept sweep never fails, it only rolls back timed-out
// accepts
package jobs
