package uow

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodcourier/internal/logger"
	"foodcourier/internal/models"
)

type fakeTx struct {
	commitErr  error
	committed  bool
	rolledBack bool
}

func (f *fakeTx) Commit(ctx context.Context) error {
	f.committed = true
	return f.commitErr
}

func (f *fakeTx) Rollback(ctx context.Context) error {
	f.rolledBack = true
	return nil
}

func (f *fakeTx) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (f *fakeTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}

func (f *fakeTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return nil
}

type fakeDispatcher struct {
	published []models.Event
	fail      bool
}

func (f *fakeDispatcher) PublishEvent(ctx context.Context, event models.Event) error {
	if f.fail {
		return errors.New("broker unreachable")
	}
	f.published = append(f.published, event)
	return nil
}

func newTestUoW(tx *fakeTx, d *fakeDispatcher) *UnitOfWork {
	return &UnitOfWork{
		tx:         tx,
		dispatcher: d,
		logger:     logger.New("uow-test"),
	}
}

func TestCommit_DispatchesQueuedEventsInOrder(t *testing.T) {
	tx := &fakeTx{}
	dispatcher := &fakeDispatcher{}
	u := newTestUoW(tx, dispatcher)

	u.AddEvent(models.OrderCreatedEvent{OrderID: 1})
	u.AddEvent(models.OrderStatusUpdatedEvent{OrderID: 1, Status: models.StatusPreparing})

	require.NoError(t, u.Commit(context.Background()))
	assert.True(t, tx.committed)

	require.Len(t, dispatcher.published, 2)
	assert.Equal(t, "OrderCreated", dispatcher.published[0].Kind())
	assert.Equal(t, "OrderStatusUpdated", dispatcher.published[1].Kind())
}

func TestRollback_DiscardsQueuedEvents(t *testing.T) {
	tx := &fakeTx{}
	dispatcher := &fakeDispatcher{}
	u := newTestUoW(tx, dispatcher)

	u.AddEvent(models.OrderCreatedEvent{OrderID: 7})
	u.Rollback(context.Background())

	assert.True(t, tx.rolledBack)
	assert.Empty(t, dispatcher.published)
}

func TestRollback_AfterCommitIsNoOp(t *testing.T) {
	tx := &fakeTx{}
	dispatcher := &fakeDispatcher{}
	u := newTestUoW(tx, dispatcher)

	require.NoError(t, u.Commit(context.Background()))
	u.Rollback(context.Background())

	assert.False(t, tx.rolledBack)
}

func TestCommit_UniqueViolationBecomesDuplicateItem(t *testing.T) {
	tx := &fakeTx{commitErr: &pgconn.PgError{Code: "23505", ConstraintName: "unique_name_and_size"}}
	dispatcher := &fakeDispatcher{}
	u := newTestUoW(tx, dispatcher)

	u.AddEvent(models.OrderCreatedEvent{OrderID: 3})
	err := u.Commit(context.Background())

	appErr, ok := models.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, models.CodeDuplicateItem, appErr.Code)
	assert.Empty(t, dispatcher.published, "events must not dispatch on a failed commit")
}

func TestCommit_DispatchFailureDoesNotFailOperation(t *testing.T) {
	tx := &fakeTx{}
	dispatcher := &fakeDispatcher{fail: true}
	u := newTestUoW(tx, dispatcher)

	u.AddEvent(models.OrderCreatedEvent{OrderID: 9})
	assert.NoError(t, u.Commit(context.Background()))
}
