// Package jobs provides scheduled background tasks for the restaurant service.
//
// Jobs are cron runners built on github.com/robfig/cron/v3 with seconds precision.
//
// # Available Jobs
//
// OutboxRelayJob publishes pending transactional outbox events to RabbitMQ and marks
// them sent. It runs on OUTBOX_RELAY_SCHEDULE (every second by default) and handles
// at most OUTBOX_BATCH_SIZE events per tick.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(relayHandler, "*/5 * * * * *", 100, logger, relayMetrics)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed relay tick is logged and retried on the next tick; events stay pending
// until published. Overlapping ticks are skipped.
package jobs
