// Package metaprotocol tracks the outcome of remark transactions. Remark
// payloads are user-submitted, so a bad payload is recorded as a failed
// transaction instead of stopping the projection.
package metaprotocol

import (
	"context"

	"github.com/louisbranch/mediagraph/internal/domain/event"
	"github.com/louisbranch/mediagraph/internal/storage"
)

// Tracker writes metaprotocol transaction status rows. Open and
// ResolveErrored run against the root store so their writes survive the
// event transaction rolling back; ResolveSuccess runs inside it so the
// terminal status commits atomically with the remark's effects.
type Tracker struct {
	store storage.Store
}

// NewTracker wraps the root (autocommit) store.
func NewTracker(store storage.Store) *Tracker {
	return &Tracker{store: store}
}

// Open records the transaction as Pending before the remark is attempted.
// The row id derives from the event position, so a replay lands on the same
// row and the upsert stays idempotent.
func (t *Tracker) Open(ctx context.Context, evt event.Event) error {
	return t.store.PutMetaprotocolTransaction(ctx, storage.MetaprotocolTransactionRecord{
		ID:           evt.ID(),
		Status:       storage.TransactionStatusPending,
		BlockHeight:  evt.BlockHeight,
		IndexInBlock: evt.IndexInBlock,
	})
}

// ResolveSuccess marks the transaction Successful through the given
// transaction-scoped store.
func (t *Tracker) ResolveSuccess(ctx context.Context, st storage.Store, evt event.Event) error {
	return st.PutMetaprotocolTransaction(ctx, storage.MetaprotocolTransactionRecord{
		ID:           evt.ID(),
		Status:       storage.TransactionStatusSuccessful,
		BlockHeight:  evt.BlockHeight,
		IndexInBlock: evt.IndexInBlock,
	})
}

// ResolveErrored marks the transaction Errored with the failure message.
// Called after the event transaction rolled back.
func (t *Tracker) ResolveErrored(ctx context.Context, evt event.Event, cause error) error {
	message := ""
	if cause != nil {
		message = cause.Error()
	}
	return t.store.PutMetaprotocolTransaction(ctx, storage.MetaprotocolTransactionRecord{
		ID:           evt.ID(),
		Status:       storage.TransactionStatusErrored,
		ErrorMessage: message,
		BlockHeight:  evt.BlockHeight,
		IndexInBlock: evt.IndexInBlock,
	})
}
