package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/louisbranch/mediagraph/internal/storage"
)

func (s *Store) PutMetaprotocolTransaction(ctx context.Context, record storage.MetaprotocolTransactionRecord) error {
	_, err := s.exec.ExecContext(ctx, `
INSERT INTO metaprotocol_transactions (id, status, error_message, block_height, index_in_block)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT (id) DO UPDATE SET
    status = excluded.status,
    error_message = excluded.error_message,
    block_height = excluded.block_height,
    index_in_block = excluded.index_in_block`,
		record.ID, string(record.Status), record.ErrorMessage,
		record.BlockHeight, record.IndexInBlock)
	if err != nil {
		return fmt.Errorf("put metaprotocol transaction: %w", err)
	}
	return nil
}

func (s *Store) GetMetaprotocolTransaction(ctx context.Context, id string) (storage.MetaprotocolTransactionRecord, error) {
	row := s.exec.QueryRowContext(ctx, `
SELECT id, status, error_message, block_height, index_in_block
FROM metaprotocol_transactions WHERE id = ?`, id)

	var record storage.MetaprotocolTransactionRecord
	var status string
	err := row.Scan(&record.ID, &status, &record.ErrorMessage,
		&record.BlockHeight, &record.IndexInBlock)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.MetaprotocolTransactionRecord{}, storage.ErrNotFound
		}
		return storage.MetaprotocolTransactionRecord{}, fmt.Errorf("get metaprotocol transaction: %w", err)
	}
	record.Status = storage.TransactionStatus(status)
	return record, nil
}

func (s *Store) PutModerationEvent(ctx context.Context, record storage.ModerationEventRecord) error {
	_, err := s.exec.ExecContext(ctx, `
INSERT INTO moderation_events (id, kind, channel_id, actor_type, actor_id, rationale, block_height)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (id) DO UPDATE SET
    kind = excluded.kind,
    channel_id = excluded.channel_id,
    actor_type = excluded.actor_type,
    actor_id = excluded.actor_id,
    rationale = excluded.rationale,
    block_height = excluded.block_height`,
		record.ID, record.Kind, record.ChannelID,
		record.ActorType, record.ActorID, record.Rationale, record.BlockHeight)
	if err != nil {
		return fmt.Errorf("put moderation event: %w", err)
	}
	return nil
}

func (s *Store) ListChannelModerationEvents(ctx context.Context, channelID string) ([]storage.ModerationEventRecord, error) {
	rows, err := s.exec.QueryContext(ctx, `
SELECT id, kind, channel_id, actor_type, actor_id, rationale, block_height
FROM moderation_events
WHERE channel_id = ?
ORDER BY block_height, id`, channelID)
	if err != nil {
		return nil, fmt.Errorf("list moderation events: %w", err)
	}
	defer rows.Close()

	var records []storage.ModerationEventRecord
	for rows.Next() {
		var record storage.ModerationEventRecord
		if err := rows.Scan(&record.ID, &record.Kind, &record.ChannelID,
			&record.ActorType, &record.ActorID, &record.Rationale, &record.BlockHeight); err != nil {
			return nil, fmt.Errorf("scan moderation event: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list moderation events: %w", err)
	}
	return records, nil
}

// GetWatermark returns the zero watermark when no event was applied yet.
func (s *Store) GetWatermark(ctx context.Context) (storage.Watermark, error) {
	row := s.exec.QueryRowContext(ctx, `
SELECT block_height, index_in_block FROM watermark WHERE id = 1`)

	var mark storage.Watermark
	if err := row.Scan(&mark.BlockHeight, &mark.IndexInBlock); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.Watermark{}, nil
		}
		return storage.Watermark{}, fmt.Errorf("get watermark: %w", err)
	}
	return mark, nil
}

func (s *Store) SetWatermark(ctx context.Context, mark storage.Watermark) error {
	_, err := s.exec.ExecContext(ctx, `
INSERT INTO watermark (id, block_height, index_in_block)
VALUES (1, ?, ?)
ON CONFLICT (id) DO UPDATE SET
    block_height = excluded.block_height,
    index_in_block = excluded.index_in_block`,
		mark.BlockHeight, mark.IndexInBlock)
	if err != nil {
		return fmt.Errorf("set watermark: %w", err)
	}
	return nil
}
