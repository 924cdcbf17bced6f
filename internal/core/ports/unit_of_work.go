package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary.
// Client code must explicitly manage transaction lifecycle.
//
// Commit writes the domain events of every aggregate saved through its repositories
// to the outbox before committing, so events are stored if and only if the change is.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit flushes pending domain events to the outbox and commits the transaction.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction and discards pending events.
	Rollback(ctx context.Context) error

	// CartRepository returns a CartRepository bound to the current transaction.
	CartRepository() CartRepository

	// OrderRepository returns an OrderRepository bound to the current transaction.
	OrderRepository() OrderRepository

	// ProductCatalog returns a catalog reader bound to the current transaction, so
	// checkout validates against the same snapshot it converts.
	ProductCatalog() ProductCatalog

	// OutboxRepository returns an OutboxRepository bound to the current transaction.
	OutboxRepository() OutboxRepository
}
