package order

import (
	"time"

	"ordercore/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

const (
	EventOrderPlaced        = "order.placed"
	EventOrderStatusChanged = "order.status_changed"
	EventOrderCancelled     = "order.cancelled"
)

// PlacedEvent is recorded once, when checkout creates the order.
type PlacedEvent struct {
	OrderID        kernel.UUID     `json:"order_id"`
	UserID         kernel.UUID     `json:"user_id"`
	OrderNumber    string          `json:"order_number"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	TotalItemCount int             `json:"total_item_count"`
	At             time.Time       `json:"at"`
}

func (e PlacedEvent) EventName() string        { return EventOrderPlaced }
func (e PlacedEvent) AggregateID() kernel.UUID { return e.OrderID }
func (e PlacedEvent) OccurredAt() time.Time    { return e.At }

// StatusChangedEvent is recorded for every committed transition except cancellation.
type StatusChangedEvent struct {
	OrderID     kernel.UUID `json:"order_id"`
	UserID      kernel.UUID `json:"user_id"`
	OrderNumber string      `json:"order_number"`
	From        string      `json:"from"`
	To          string      `json:"to"`
	Note        string      `json:"note,omitempty"`
	At          time.Time   `json:"at"`
}

func (e StatusChangedEvent) EventName() string        { return EventOrderStatusChanged }
func (e StatusChangedEvent) AggregateID() kernel.UUID { return e.OrderID }
func (e StatusChangedEvent) OccurredAt() time.Time    { return e.At }

// CancelledEvent replaces StatusChangedEvent when the target status is Cancelled.
type CancelledEvent struct {
	OrderID     kernel.UUID `json:"order_id"`
	UserID      kernel.UUID `json:"user_id"`
	OrderNumber string      `json:"order_number"`
	From        string      `json:"from"`
	Reason      string      `json:"reason,omitempty"`
	At          time.Time   `json:"at"`
}

func (e CancelledEvent) EventName() string        { return EventOrderCancelled }
func (e CancelledEvent) AggregateID() kernel.UUID { return e.OrderID }
func (e CancelledEvent) OccurredAt() time.Time    { return e.At }
