package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/louisbranch/mediagraph/internal/storage"
)

func (s *Store) PutVideo(ctx context.Context, record storage.VideoRecord) error {
	_, err := s.exec.ExecContext(ctx, `
INSERT INTO videos (
    id, channel_id, category_id, title, description, duration, language,
    is_public, is_censored, is_explicit, reactions_enabled,
    media_object_id, thumbnail_photo_id, created_in_block
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (id) DO UPDATE SET
    channel_id = excluded.channel_id,
    category_id = excluded.category_id,
    title = excluded.title,
    description = excluded.description,
    duration = excluded.duration,
    language = excluded.language,
    is_public = excluded.is_public,
    is_censored = excluded.is_censored,
    is_explicit = excluded.is_explicit,
    reactions_enabled = excluded.reactions_enabled,
    media_object_id = excluded.media_object_id,
    thumbnail_photo_id = excluded.thumbnail_photo_id,
    created_in_block = excluded.created_in_block`,
		record.ID, record.ChannelID, record.CategoryID,
		record.Title, record.Description, record.Duration, record.Language,
		record.IsPublic, record.IsCensored, record.IsExplicit, record.ReactionsEnabled,
		record.MediaObjectID, record.ThumbnailPhotoID, record.CreatedInBlock)
	if err != nil {
		return fmt.Errorf("put video: %w", err)
	}
	return nil
}

func (s *Store) GetVideo(ctx context.Context, id string) (storage.VideoRecord, error) {
	row := s.exec.QueryRowContext(ctx, `
SELECT id, channel_id, category_id, title, description, duration, language,
    is_public, is_censored, is_explicit, reactions_enabled,
    media_object_id, thumbnail_photo_id, created_in_block
FROM videos WHERE id = ?`, id)

	record, err := scanVideo(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.VideoRecord{}, storage.ErrNotFound
		}
		return storage.VideoRecord{}, fmt.Errorf("get video: %w", err)
	}
	return record, nil
}

func (s *Store) DeleteVideo(ctx context.Context, id string) error {
	_, err := s.exec.ExecContext(ctx, `DELETE FROM videos WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete video: %w", err)
	}
	return nil
}

func (s *Store) CountChannelVideos(ctx context.Context, channelID string) (int64, error) {
	var count int64
	row := s.exec.QueryRowContext(ctx, `SELECT COUNT(*) FROM videos WHERE channel_id = ?`, channelID)
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("count channel videos: %w", err)
	}
	return count, nil
}

func (s *Store) CountActiveVideos(ctx context.Context, channelID, categoryID string) (int64, error) {
	query := `
SELECT COUNT(*) FROM videos v
JOIN channels c ON c.id = v.channel_id
WHERE v.is_public = 1 AND v.is_censored = 0 AND c.is_censored = 0`
	var args []any
	if channelID != "" {
		query += " AND v.channel_id = ?"
		args = append(args, channelID)
	}
	if categoryID != "" {
		query += " AND v.category_id = ?"
		args = append(args, categoryID)
	}

	var count int64
	row := s.exec.QueryRowContext(ctx, query, args...)
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("count active videos: %w", err)
	}
	return count, nil
}

func (s *Store) ListChannelVideos(ctx context.Context, channelID string) ([]storage.VideoRecord, error) {
	rows, err := s.exec.QueryContext(ctx, `
SELECT id, channel_id, category_id, title, description, duration, language,
    is_public, is_censored, is_explicit, reactions_enabled,
    media_object_id, thumbnail_photo_id, created_in_block
FROM videos WHERE channel_id = ? ORDER BY id`, channelID)
	if err != nil {
		return nil, fmt.Errorf("list channel videos: %w", err)
	}
	defer rows.Close()

	var records []storage.VideoRecord
	for rows.Next() {
		record, err := scanVideo(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan video: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list channel videos: %w", err)
	}
	return records, nil
}

func scanVideo(scan func(...any) error) (storage.VideoRecord, error) {
	var record storage.VideoRecord
	err := scan(&record.ID, &record.ChannelID, &record.CategoryID,
		&record.Title, &record.Description, &record.Duration, &record.Language,
		&record.IsPublic, &record.IsCensored, &record.IsExplicit, &record.ReactionsEnabled,
		&record.MediaObjectID, &record.ThumbnailPhotoID, &record.CreatedInBlock)
	return record, err
}

func (s *Store) PutVideoCategory(ctx context.Context, record storage.VideoCategoryRecord) error {
	_, err := s.exec.ExecContext(ctx, `
INSERT INTO video_categories (id, active_video_count)
VALUES (?, ?)
ON CONFLICT (id) DO UPDATE SET active_video_count = excluded.active_video_count`,
		record.ID, record.ActiveVideoCount)
	if err != nil {
		return fmt.Errorf("put video category: %w", err)
	}
	return nil
}

func (s *Store) GetVideoCategory(ctx context.Context, id string) (storage.VideoCategoryRecord, error) {
	row := s.exec.QueryRowContext(ctx, `
SELECT id, active_video_count FROM video_categories WHERE id = ?`, id)

	var record storage.VideoCategoryRecord
	if err := row.Scan(&record.ID, &record.ActiveVideoCount); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.VideoCategoryRecord{}, storage.ErrNotFound
		}
		return storage.VideoCategoryRecord{}, fmt.Errorf("get video category: %w", err)
	}
	return record, nil
}

func (s *Store) PutComment(ctx context.Context, record storage.CommentRecord) error {
	_, err := s.exec.ExecContext(ctx, `
INSERT INTO comments (id, video_id, author_member_id, text, status, is_pinned, moderation_rationale)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (id) DO UPDATE SET
    video_id = excluded.video_id,
    author_member_id = excluded.author_member_id,
    text = excluded.text,
    status = excluded.status,
    is_pinned = excluded.is_pinned,
    moderation_rationale = excluded.moderation_rationale`,
		record.ID, record.VideoID, record.AuthorMemberID, record.Text,
		string(record.Status), record.IsPinned, record.ModerationRationale)
	if err != nil {
		return fmt.Errorf("put comment: %w", err)
	}
	return nil
}

func (s *Store) GetComment(ctx context.Context, id string) (storage.CommentRecord, error) {
	row := s.exec.QueryRowContext(ctx, `
SELECT id, video_id, author_member_id, text, status, is_pinned, moderation_rationale
FROM comments WHERE id = ?`, id)

	var record storage.CommentRecord
	var status string
	err := row.Scan(&record.ID, &record.VideoID, &record.AuthorMemberID,
		&record.Text, &status, &record.IsPinned, &record.ModerationRationale)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.CommentRecord{}, storage.ErrNotFound
		}
		return storage.CommentRecord{}, fmt.Errorf("get comment: %w", err)
	}
	record.Status = storage.CommentStatus(status)
	return record, nil
}
