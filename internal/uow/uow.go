// Package uow bounds one logical business operation as a single database
// transaction and guarantees that domain events recorded during the
// operation are dispatched if and only if the transaction commits.
package uow

import (
	"context"
	"fmt"

	"foodcourier/internal/database"
	"foodcourier/internal/logger"
	"foodcourier/internal/models"
)

// txHandle is the slice of pgx.Tx the unit of work needs.
type txHandle interface {
	database.Querier
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// Dispatcher receives domain events after a successful commit.
// messaging.Publisher is the production implementation.
type Dispatcher interface {
	PublishEvent(ctx context.Context, event models.Event) error
}

// Manager opens units of work against one database and dispatcher pair.
// Built once at process bootstrap and injected into services.
type Manager struct {
	db         *database.DB
	dispatcher Dispatcher
	logger     *logger.Logger
}

// NewManager creates a unit-of-work manager.
func NewManager(db *database.DB, dispatcher Dispatcher, log *logger.Logger) *Manager {
	return &Manager{
		db:         db,
		dispatcher: dispatcher,
		logger:     log,
	}
}

// Begin opens a transaction and returns the unit of work bound to it.
// Callers defer Rollback immediately so every exit path releases the
// transaction; Rollback after a successful Commit is a no-op.
func (m *Manager) Begin(ctx context.Context) (*UnitOfWork, error) {
	tx, err := m.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return &UnitOfWork{
		tx:         tx,
		dispatcher: m.dispatcher,
		logger:     m.logger,
	}, nil
}

// UnitOfWork is one open transaction plus the events queued during it.
type UnitOfWork struct {
	tx         txHandle
	dispatcher Dispatcher
	logger     *logger.Logger
	events     []models.Event
	finished   bool
}

// Tx exposes the transaction as a query surface for store construction.
func (u *UnitOfWork) Tx() database.Querier {
	return u.tx
}

// AddEvent queues a domain event for post-commit dispatch. Queuing never
// fails; events queue in dispatch order.
func (u *UnitOfWork) AddEvent(event models.Event) {
	u.events = append(u.events, event)
}

// Commit persists all pending writes, then flushes queued events to the
// dispatcher in queue order. A uniqueness violation surfaced at commit
// time is translated to DuplicateItem. A dispatch failure after a
// successful commit does not fail the operation: the write is durable and
// the loss is logged for out-of-band retry.
func (u *UnitOfWork) Commit(ctx context.Context) error {
	if err := u.tx.Commit(ctx); err != nil {
		u.finished = true
		if database.IsUniqueViolation(err) {
			return models.ErrDuplicateItem(map[string]interface{}{
				"constraint": database.ConstraintName(err),
			})
		}
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	u.finished = true

	for _, event := range u.events {
		if err := u.dispatcher.PublishEvent(ctx, event); err != nil {
			u.logger.Error("event_dispatch_failed",
				fmt.Sprintf("Order is persisted but %s event was not dispatched", event.Kind()),
				"", err, event.Payload())
		}
	}
	u.events = nil

	return nil
}

// Rollback aborts the transaction and discards queued events. Safe to
// defer unconditionally: after Commit it does nothing.
func (u *UnitOfWork) Rollback(ctx context.Context) {
	if u.finished {
		return
	}
	u.finished = true
	u.events = nil
	_ = u.tx.Rollback(ctx)
}
