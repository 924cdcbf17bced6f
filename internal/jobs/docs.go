// Package jobs provides scheduled background tasks for the order service.
//
// Jobs are cron-based, using github.com/robfig/cron/v3 with a seconds field.
//
// # Available Jobs
//
// OutboxRelayJob claims unprocessed outbox messages, hands them to the notification
// sink and marks them processed. It runs every five seconds unless configured otherwise
// and skips a tick while the previous pass is still running.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(relayHandler, relayCommand, "*/5 * * * * *", m, logger)
//	if err := jobManager.StartAll(); err != nil {
//		return err
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed pass is logged and counted; the messages it did not deliver stay in the outbox
// and are picked up by the next pass.
package jobs
