package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/louisbranch/mediagraph/internal/storage"
)

func (s *Store) PutDataObject(ctx context.Context, record storage.DataObjectRecord) error {
	_, err := s.exec.ExecContext(ctx, `
INSERT INTO data_objects (
    id, storage_bag_id, size, ipfs_hash,
    channel_avatar_for_id, channel_cover_for_id,
    video_media_for_id, video_thumbnail_for_id
) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (id) DO UPDATE SET
    storage_bag_id = excluded.storage_bag_id,
    size = excluded.size,
    ipfs_hash = excluded.ipfs_hash,
    channel_avatar_for_id = excluded.channel_avatar_for_id,
    channel_cover_for_id = excluded.channel_cover_for_id,
    video_media_for_id = excluded.video_media_for_id,
    video_thumbnail_for_id = excluded.video_thumbnail_for_id`,
		record.ID, record.StorageBagID, record.Size, record.IpfsHash,
		record.ChannelAvatarForID, record.ChannelCoverForID,
		record.VideoMediaForID, record.VideoThumbnailForID)
	if err != nil {
		return fmt.Errorf("put data object: %w", err)
	}
	return nil
}

func (s *Store) GetDataObject(ctx context.Context, id string) (storage.DataObjectRecord, error) {
	row := s.exec.QueryRowContext(ctx, `
SELECT id, storage_bag_id, size, ipfs_hash,
    channel_avatar_for_id, channel_cover_for_id,
    video_media_for_id, video_thumbnail_for_id
FROM data_objects WHERE id = ?`, id)

	record, err := scanDataObject(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.DataObjectRecord{}, storage.ErrNotFound
		}
		return storage.DataObjectRecord{}, fmt.Errorf("get data object: %w", err)
	}
	return record, nil
}

func (s *Store) ListChannelDataObjects(ctx context.Context, channelID string) ([]storage.DataObjectRecord, error) {
	rows, err := s.exec.QueryContext(ctx, `
SELECT id, storage_bag_id, size, ipfs_hash,
    channel_avatar_for_id, channel_cover_for_id,
    video_media_for_id, video_thumbnail_for_id
FROM data_objects
WHERE channel_avatar_for_id = ? OR channel_cover_for_id = ?
ORDER BY id`, channelID, channelID)
	if err != nil {
		return nil, fmt.Errorf("list channel data objects: %w", err)
	}
	defer rows.Close()

	var records []storage.DataObjectRecord
	for rows.Next() {
		record, err := scanDataObject(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan data object: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list channel data objects: %w", err)
	}
	return records, nil
}

func scanDataObject(scan func(...any) error) (storage.DataObjectRecord, error) {
	var record storage.DataObjectRecord
	err := scan(&record.ID, &record.StorageBagID, &record.Size, &record.IpfsHash,
		&record.ChannelAvatarForID, &record.ChannelCoverForID,
		&record.VideoMediaForID, &record.VideoThumbnailForID)
	return record, err
}

func (s *Store) PutStorageBag(ctx context.Context, record storage.StorageBagRecord) error {
	_, err := s.exec.ExecContext(ctx, `
INSERT INTO storage_bags (id) VALUES (?)
ON CONFLICT (id) DO NOTHING`, record.ID)
	if err != nil {
		return fmt.Errorf("put storage bag: %w", err)
	}
	return nil
}

func (s *Store) GetStorageBag(ctx context.Context, id string) (storage.StorageBagRecord, error) {
	row := s.exec.QueryRowContext(ctx, `SELECT id FROM storage_bags WHERE id = ?`, id)

	var record storage.StorageBagRecord
	if err := row.Scan(&record.ID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.StorageBagRecord{}, storage.ErrNotFound
		}
		return storage.StorageBagRecord{}, fmt.Errorf("get storage bag: %w", err)
	}
	return record, nil
}
