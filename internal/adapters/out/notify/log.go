package notify

import (
	"context"
	"log/slog"

	"ordercore/internal/core/ports"
)

// LogSink writes notifications to the structured log. It is the default sink for
// local runs and never fails.
type LogSink struct {
	logger *slog.Logger
}

func NewLogSink(logger *slog.Logger) *LogSink {
	return &LogSink{logger: logger.With("component", "notification_sink")}
}

func (s *LogSink) Notify(ctx context.Context, n ports.Notification) error {
	attrs := []any{
		slog.String("user_id", n.UserID),
		slog.String("kind", n.Kind),
		slog.String("title", n.Title),
	}
	if len(n.Metadata) > 0 {
		group := make([]any, 0, len(n.Metadata))
		for k, v := range n.Metadata {
			group = append(group, slog.String(k, v))
		}
		attrs = append(attrs, slog.Group("metadata", group...))
	}

	s.logger.InfoContext(ctx, "notification", attrs...)
	return nil
}

func (s *LogSink) Close() error {
	return nil
}
