package ports

import "context"

// Notification kinds emitted by the order lifecycle.
const (
	NotificationOrderPlaced        = "order_placed"
	NotificationOrderStatusChanged = "order_status_changed"
	NotificationOrderCancelled     = "order_cancelled"
)

// Notification is an "event happened" message for one user. Rendering and delivery
// belong to the sink.
type Notification struct {
	UserID   string            `json:"user_id"`
	Kind     string            `json:"kind"`
	Title    string            `json:"title"`
	Body     string            `json:"body"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// NotificationSink accepts notifications. From the core's point of view delivery is
// fire-and-forget; a returned error only means the message should be retried.
type NotificationSink interface {
	Notify(ctx context.Context, n Notification) error
}
