package jobs

import (
	"context"
	"log/slog"

	"restaurant/internal/core/application/usecases/commands"
	"restaurant/internal/pkg/metrics"

	"github.com/robfig/cron/v3"
)

// DefaultRelaySchedule runs the relay every second.
const DefaultRelaySchedule = "* * * * * *"

// OutboxRelayer publishes one batch of pending outbox events.
type OutboxRelayer interface {
	Handle(ctx context.Context, command commands.RelayOutboxCommand) (int, error)
}

// OutboxRelayJob drains the transactional outbox to the message bus on a cron schedule.
// A tick that is still running when the next one fires is skipped.
type OutboxRelayJob struct {
	relayer   OutboxRelayer
	schedule  string
	batchSize int
	cron      *cron.Cron
	logger    *slog.Logger
	metrics   *metrics.RelayMetrics
}

// NewOutboxRelayJob creates the relay job. An empty schedule falls back to
// DefaultRelaySchedule; m may be nil.
func NewOutboxRelayJob(
	relayer OutboxRelayer,
	schedule string,
	batchSize int,
	logger *slog.Logger,
	m *metrics.RelayMetrics,
) *OutboxRelayJob {
	if schedule == "" {
		schedule = DefaultRelaySchedule
	}
	logger = logger.With("component", "outbox_relay_job")
	cl := cronLogger{logger: logger}

	return &OutboxRelayJob{
		relayer:   relayer,
		schedule:  schedule,
		batchSize: batchSize,
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		logger:  logger,
		metrics: m,
	}
}

// Start schedules the relay and starts the cron runner.
func (j *OutboxRelayJob) Start() error {
	cmd, err := commands.NewRelayOutboxCommand(j.batchSize)
	if err != nil {
		return err
	}

	if _, err := j.cron.AddFunc(j.schedule, func() { j.Relay(context.Background(), cmd) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Outbox relay job started", "schedule", j.schedule, "batch_size", j.batchSize)
	return nil
}

// Relay runs one relay pass and returns the number of published events.
func (j *OutboxRelayJob) Relay(ctx context.Context, cmd commands.RelayOutboxCommand) int {
	sent, err := j.relayer.Handle(ctx, cmd)
	j.metrics.Record(sent, err)
	if err != nil {
		j.logger.ErrorContext(ctx, "Outbox relay failed", "error", err, "published", sent)
		return sent
	}
	if sent > 0 {
		j.logger.DebugContext(ctx, "Outbox relayed", "published", sent)
	}
	return sent
}

// Stop stops the scheduler and waits for a running relay to finish.
func (j *OutboxRelayJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("Outbox relay job stopped")
}

// cronLogger routes cron's own messages to slog.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error(msg, append(keysAndValues, "error", err)...)
}
