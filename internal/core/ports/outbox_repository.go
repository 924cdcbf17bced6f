package ports

import (
	"context"
	"time"

	"ordercore/internal/core/domain/model/kernel"
)

// OutboxMessage is a domain event persisted in the same transaction as its aggregate.
type OutboxMessage struct {
	ID          kernel.UUID
	AggregateID kernel.UUID
	EventName   string
	Payload     []byte
	OccurredAt  time.Time
}

// OutboxRepository stores committed domain events until they are relayed.
type OutboxRepository interface {
	// Add stores messages in the current transaction.
	Add(ctx context.Context, messages ...OutboxMessage) error

	// GetUnprocessed claims up to limit undelivered messages, oldest first. Claimed rows
	// stay locked until the transaction ends and are skipped by concurrent relays.
	GetUnprocessed(ctx context.Context, limit int) ([]OutboxMessage, error)

	// MarkProcessed records successful delivery.
	MarkProcessed(ctx context.Context, id kernel.UUID, at time.Time) error
}
