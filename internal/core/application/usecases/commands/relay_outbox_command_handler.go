package commands

import (
	"context"
	"time"

	"ordercore/internal/core/ports"
	"ordercore/internal/pkg/errs"
)

// NotificationComposer turns a stored event into the message handed to the sink.
type NotificationComposer interface {
	Compose(message ports.OutboxMessage) (ports.Notification, error)
}

// RelayOutboxResult summarizes one relay pass.
type RelayOutboxResult struct {
	Claimed   int
	Delivered int
	// Skipped counts messages that can never be composed (unknown event or corrupt
	// payload). They are marked processed so they do not block the queue.
	Skipped int
}

// RelayOutboxCommandHandler drains the outbox into the notification sink.
//
// Messages are claimed oldest first and delivered one by one. Each delivered message is
// marked processed; the first sink failure stops the pass, keeping what was already
// delivered. Undelivered messages are retried by the next pass, so delivery is
// at-least-once.
type RelayOutboxCommandHandler struct {
	uowFactory OutboxUoWFactory
	composer   NotificationComposer
	sink       ports.NotificationSink
	clock      func() time.Time
}

func NewRelayOutboxCommandHandler(
	uowFactory OutboxUoWFactory,
	composer NotificationComposer,
	sink ports.NotificationSink,
	clock func() time.Time,
) RelayOutboxCommandHandler {
	return RelayOutboxCommandHandler{
		uowFactory: uowFactory,
		composer:   composer,
		sink:       sink,
		clock:      clock,
	}
}

// Handle returns the pass summary. A sink error is returned after the messages
// delivered before it have been committed as processed.
func (h RelayOutboxCommandHandler) Handle(ctx context.Context, command RelayOutboxCommand) (RelayOutboxResult, error) {
	if err := command.Validate(); err != nil {
		return RelayOutboxResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return RelayOutboxResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	outbox := uow.OutboxRepository()
	messages, err := outbox.GetUnprocessed(ctx, command.BatchSize())
	if err != nil {
		return RelayOutboxResult{}, err
	}

	result := RelayOutboxResult{Claimed: len(messages)}
	var deliveryErr error

	for _, message := range messages {
		notification, composeErr := h.composer.Compose(message)
		if composeErr == nil {
			if deliveryErr = h.sink.Notify(ctx, notification); deliveryErr != nil {
				deliveryErr = errs.NewInternalError("notify "+message.EventName, deliveryErr)
				break
			}
		}

		if err = outbox.MarkProcessed(ctx, message.ID, h.clock()); err != nil {
			return RelayOutboxResult{}, err
		}

		if composeErr != nil {
			result.Skipped++
		} else {
			result.Delivered++
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return RelayOutboxResult{}, err
	}

	return result, deliveryErr
}
