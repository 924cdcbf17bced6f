package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"ordercore/internal/core/ports"

	"github.com/nats-io/nats.go"
)

// msgPublisher is the part of *nats.Conn the sink uses.
type msgPublisher interface {
	PublishMsg(m *nats.Msg) error
	FlushWithContext(ctx context.Context) error
}

// NatsSink publishes each notification on <subjectPrefix>.<kind>, so subscribers can
// filter by kind with a wildcard.
type NatsSink struct {
	conn          msgPublisher
	subjectPrefix string
	closeConn     func()
}

// NewNatsSink connects to url. The returned sink owns the connection.
func NewNatsSink(url, subjectPrefix string) (*NatsSink, error) {
	conn, err := nats.Connect(url, nats.Name("ordercore"), nats.MaxReconnects(-1))
	if err != nil {
		return nil, fmt.Errorf("connect to nats: %w", err)
	}

	sink := newNatsSink(conn, subjectPrefix)
	sink.closeConn = conn.Close
	return sink, nil
}

func newNatsSink(conn msgPublisher, subjectPrefix string) *NatsSink {
	return &NatsSink{conn: conn, subjectPrefix: subjectPrefix}
}

// Notify publishes and flushes, so a nil error means the server has the message.
func (s *NatsSink) Notify(ctx context.Context, n ports.Notification) error {
	data, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}

	msg := nats.NewMsg(s.subjectPrefix + "." + n.Kind)
	msg.Data = data
	msg.Header.Set("User-Id", n.UserID)

	if err = s.conn.PublishMsg(msg); err != nil {
		return fmt.Errorf("publish to nats: %w", err)
	}
	if err = s.conn.FlushWithContext(ctx); err != nil {
		return fmt.Errorf("flush nats: %w", err)
	}

	return nil
}

func (s *NatsSink) Close() error {
	if s.closeConn != nil {
		s.closeConn()
	}
	return nil
}
