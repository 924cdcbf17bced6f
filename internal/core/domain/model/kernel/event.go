package kernel

import "time"

// DomainEvent is a fact recorded by an aggregate. Events are persisted together with the
// aggregate and delivered only after the transaction commits.
type DomainEvent interface {
	// EventName identifies the payload type, e.g. "order.placed".
	EventName() string
	AggregateID() UUID
	OccurredAt() time.Time
}
