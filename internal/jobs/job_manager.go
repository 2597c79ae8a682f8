package jobs

import (
	"fmt"
	"log/slog"

	"restaurant/internal/pkg/metrics"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	outboxRelayJob *OutboxRelayJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	relayer OutboxRelayer,
	schedule string,
	batchSize int,
	logger *slog.Logger,
	m *metrics.RelayMetrics,
) *JobManager {
	return &JobManager{
		outboxRelayJob: NewOutboxRelayJob(relayer, schedule, batchSize, logger, m),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.outboxRelayJob.Start(); err != nil {
		return fmt.Errorf("failed to start outbox relay job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs and waits for running ticks to complete.
func (jm *JobManager) StopAll() {
	jm.outboxRelayJob.Stop()
}
