package jobs

import (
	"context"
	"log/slog"
	"time"

	"ordercore/internal/core/application/usecases/commands"
	"ordercore/internal/pkg/metrics"

	"github.com/robfig/cron/v3"
)

// DefaultOutboxRelaySchedule runs the relay every five seconds.
const DefaultOutboxRelaySchedule = "*/5 * * * * *"

const relayRunTimeout = 30 * time.Second

// OutboxRelayer is the handler the job drives.
type OutboxRelayer interface {
	Handle(ctx context.Context, command commands.RelayOutboxCommand) (commands.RelayOutboxResult, error)
}

// OutboxRelayJob periodically drains the outbox into the notification sink.
// A run that is still going when the next tick fires causes that tick to be skipped.
type OutboxRelayJob struct {
	handler  OutboxRelayer
	command  commands.RelayOutboxCommand
	schedule string
	cron     *cron.Cron
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

func NewOutboxRelayJob(
	handler OutboxRelayer,
	command commands.RelayOutboxCommand,
	schedule string,
	m *metrics.Metrics,
	logger *slog.Logger,
) *OutboxRelayJob {
	if schedule == "" {
		schedule = DefaultOutboxRelaySchedule
	}

	logger = logger.With("component", "outbox_relay_job")
	cronLog := cronLogger{logger: logger}

	return &OutboxRelayJob{
		handler:  handler,
		command:  command,
		schedule: schedule,
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithLogger(cronLog),
			cron.WithChain(cron.Recover(cronLog), cron.SkipIfStillRunning(cronLog)),
		),
		metrics: m,
		logger:  logger,
	}
}

// Start schedules the job. An invalid schedule is reported here, not at the first tick.
func (j *OutboxRelayJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.run); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Outbox relay job started", "schedule", j.schedule)
	return nil
}

// Stop waits for a running pass to finish.
func (j *OutboxRelayJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Outbox relay job stopped")
}

// RunOnce performs one relay pass.
func (j *OutboxRelayJob) RunOnce(ctx context.Context) (commands.RelayOutboxResult, error) {
	result, err := j.handler.Handle(ctx, j.command)
	j.metrics.OutboxRelayed(result.Delivered, result.Skipped, err != nil)

	if err != nil {
		j.logger.ErrorContext(ctx, "Outbox relay failed",
			"error", err,
			"claimed", result.Claimed,
			"delivered", result.Delivered,
		)
		return result, err
	}

	if result.Claimed > 0 {
		j.logger.InfoContext(ctx, "Outbox relayed",
			"claimed", result.Claimed,
			"delivered", result.Delivered,
			"skipped", result.Skipped,
		)
	}
	return result, nil
}

func (j *OutboxRelayJob) run() {
	ctx, cancel := context.WithTimeout(context.Background(), relayRunTimeout)
	defer cancel()

	_, _ = j.RunOnce(ctx)
}

// cronLogger routes cron's own messages to slog. Routine scheduling chatter is
// logged at debug level.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error(msg, append(keysAndValues, "error", err)...)
}
