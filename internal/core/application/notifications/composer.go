// Package notifications renders stored order events into sink messages.
package notifications

import (
	"encoding/json"
	"fmt"

	"ordercore/internal/core/domain/model/order"
	"ordercore/internal/core/ports"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Composer maps order events to notifications. Text goes through a printer for the
// configured locale; amounts are rendered as the store currency code followed by the
// exact two-place decimal, without locale grouping.
type Composer struct {
	unit    currency.Unit
	printer *message.Printer
}

func NewComposer(unit currency.Unit, locale language.Tag) Composer {
	return Composer{
		unit:    unit,
		printer: message.NewPrinter(locale),
	}
}

// Compose decodes message by its event name. Unknown events and undecodable payloads
// return an error; the caller decides whether to skip them.
func (c Composer) Compose(m ports.OutboxMessage) (ports.Notification, error) {
	switch m.EventName {
	case order.EventOrderPlaced:
		var e order.PlacedEvent
		if err := json.Unmarshal(m.Payload, &e); err != nil {
			return ports.Notification{}, fmt.Errorf("decode %s: %w", m.EventName, err)
		}
		return c.placed(e), nil

	case order.EventOrderStatusChanged:
		var e order.StatusChangedEvent
		if err := json.Unmarshal(m.Payload, &e); err != nil {
			return ports.Notification{}, fmt.Errorf("decode %s: %w", m.EventName, err)
		}
		return c.statusChanged(e), nil

	case order.EventOrderCancelled:
		var e order.CancelledEvent
		if err := json.Unmarshal(m.Payload, &e); err != nil {
			return ports.Notification{}, fmt.Errorf("decode %s: %w", m.EventName, err)
		}
		return c.cancelled(e), nil
	}

	return ports.Notification{}, fmt.Errorf("unknown event %q", m.EventName)
}

func (c Composer) placed(e order.PlacedEvent) ports.Notification {
	return ports.Notification{
		UserID: e.UserID.String(),
		Kind:   ports.NotificationOrderPlaced,
		Title:  c.printer.Sprintf("Order %s placed", e.OrderNumber),
		Body: c.printer.Sprintf("Your order %s for %d item(s) totalling %s has been placed.",
			e.OrderNumber, e.TotalItemCount, c.amount(e.TotalAmount)),
		Metadata: map[string]string{
			"order_id":     e.OrderID.String(),
			"order_number": e.OrderNumber,
			"total_amount": e.TotalAmount.StringFixed(2),
			"currency":     c.unit.String(),
		},
	}
}

func (c Composer) statusChanged(e order.StatusChangedEvent) ports.Notification {
	body := c.printer.Sprintf("Order %s changed status from %s to %s.", e.OrderNumber, e.From, e.To)
	if e.Note != "" {
		body += "\n" + e.Note
	}
	return ports.Notification{
		UserID: e.UserID.String(),
		Kind:   ports.NotificationOrderStatusChanged,
		Title:  c.printer.Sprintf("Order %s is now %s", e.OrderNumber, e.To),
		Body:   body,
		Metadata: map[string]string{
			"order_id":     e.OrderID.String(),
			"order_number": e.OrderNumber,
			"from":         e.From,
			"to":           e.To,
		},
	}
}

func (c Composer) cancelled(e order.CancelledEvent) ports.Notification {
	body := c.printer.Sprintf("Order %s has been cancelled.", e.OrderNumber)
	if e.Reason != "" {
		body += "\n" + c.printer.Sprintf("Reason: %s", e.Reason)
	}
	return ports.Notification{
		UserID: e.UserID.String(),
		Kind:   ports.NotificationOrderCancelled,
		Title:  c.printer.Sprintf("Order %s cancelled", e.OrderNumber),
		Body:   body,
		Metadata: map[string]string{
			"order_id":     e.OrderID.String(),
			"order_number": e.OrderNumber,
			"from":         e.From,
			"reason":       e.Reason,
		},
	}
}

// amount keeps the exact decimal; the printer only adds the currency code.
func (c Composer) amount(d decimal.Decimal) string {
	return c.printer.Sprintf("%s %s", c.unit, d.StringFixed(2))
}
