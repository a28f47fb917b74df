package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/louisbranch/mediagraph/internal/storage"
)

func (s *Store) PutChannel(ctx context.Context, record storage.ChannelRecord) error {
	_, err := s.exec.ExecContext(ctx, `
INSERT INTO channels (
    id, owner_member_id, owner_curator_group_id, title, description, language,
    is_public, is_censored, reward_account, cover_photo_id, avatar_photo_id,
    active_video_count, created_in_block
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (id) DO UPDATE SET
    owner_member_id = excluded.owner_member_id,
    owner_curator_group_id = excluded.owner_curator_group_id,
    title = excluded.title,
    description = excluded.description,
    language = excluded.language,
    is_public = excluded.is_public,
    is_censored = excluded.is_censored,
    reward_account = excluded.reward_account,
    cover_photo_id = excluded.cover_photo_id,
    avatar_photo_id = excluded.avatar_photo_id,
    active_video_count = excluded.active_video_count,
    created_in_block = excluded.created_in_block`,
		record.ID, record.OwnerMemberID, record.OwnerCuratorGroupID,
		record.Title, record.Description, record.Language,
		record.IsPublic, record.IsCensored, record.RewardAccount,
		record.CoverPhotoID, record.AvatarPhotoID,
		record.ActiveVideoCount, record.CreatedInBlock)
	if err != nil {
		return fmt.Errorf("put channel: %w", err)
	}
	return nil
}

func (s *Store) GetChannel(ctx context.Context, id string) (storage.ChannelRecord, error) {
	row := s.exec.QueryRowContext(ctx, `
SELECT id, owner_member_id, owner_curator_group_id, title, description, language,
    is_public, is_censored, reward_account, cover_photo_id, avatar_photo_id,
    active_video_count, created_in_block
FROM channels WHERE id = ?`, id)

	var record storage.ChannelRecord
	err := row.Scan(&record.ID, &record.OwnerMemberID, &record.OwnerCuratorGroupID,
		&record.Title, &record.Description, &record.Language,
		&record.IsPublic, &record.IsCensored, &record.RewardAccount,
		&record.CoverPhotoID, &record.AvatarPhotoID,
		&record.ActiveVideoCount, &record.CreatedInBlock)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.ChannelRecord{}, storage.ErrNotFound
		}
		return storage.ChannelRecord{}, fmt.Errorf("get channel: %w", err)
	}
	return record, nil
}

func (s *Store) DeleteChannel(ctx context.Context, id string) error {
	_, err := s.exec.ExecContext(ctx, `DELETE FROM channels WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete channel: %w", err)
	}
	return nil
}

func (s *Store) PutChannelPermission(ctx context.Context, record storage.ChannelPermissionRecord) error {
	_, err := s.exec.ExecContext(ctx, `
INSERT INTO channel_permissions (channel_id, member_id, permission)
VALUES (?, ?, ?)
ON CONFLICT (channel_id, member_id, permission) DO NOTHING`,
		record.ChannelID, record.MemberID, record.Permission)
	if err != nil {
		return fmt.Errorf("put channel permission: %w", err)
	}
	return nil
}

func (s *Store) DeleteChannelPermissions(ctx context.Context, channelID string) error {
	_, err := s.exec.ExecContext(ctx, `DELETE FROM channel_permissions WHERE channel_id = ?`, channelID)
	if err != nil {
		return fmt.Errorf("delete channel permissions: %w", err)
	}
	return nil
}

func (s *Store) ListChannelPermissions(ctx context.Context, channelID string) ([]storage.ChannelPermissionRecord, error) {
	rows, err := s.exec.QueryContext(ctx, `
SELECT channel_id, member_id, permission
FROM channel_permissions
WHERE channel_id = ?
ORDER BY member_id, permission`, channelID)
	if err != nil {
		return nil, fmt.Errorf("list channel permissions: %w", err)
	}
	defer rows.Close()

	var records []storage.ChannelPermissionRecord
	for rows.Next() {
		var record storage.ChannelPermissionRecord
		if err := rows.Scan(&record.ChannelID, &record.MemberID, &record.Permission); err != nil {
			return nil, fmt.Errorf("scan channel permission: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list channel permissions: %w", err)
	}
	return records, nil
}

func (s *Store) PutBannedMember(ctx context.Context, record storage.BannedMemberRecord) error {
	_, err := s.exec.ExecContext(ctx, `
INSERT INTO banned_members (channel_id, member_id)
VALUES (?, ?)
ON CONFLICT (channel_id, member_id) DO NOTHING`,
		record.ChannelID, record.MemberID)
	if err != nil {
		return fmt.Errorf("put banned member: %w", err)
	}
	return nil
}

func (s *Store) DeleteBannedMember(ctx context.Context, channelID, memberID string) error {
	_, err := s.exec.ExecContext(ctx, `
DELETE FROM banned_members WHERE channel_id = ? AND member_id = ?`, channelID, memberID)
	if err != nil {
		return fmt.Errorf("delete banned member: %w", err)
	}
	return nil
}

func (s *Store) ListBannedMembers(ctx context.Context, channelID string) ([]storage.BannedMemberRecord, error) {
	rows, err := s.exec.QueryContext(ctx, `
SELECT channel_id, member_id FROM banned_members
WHERE channel_id = ?
ORDER BY member_id`, channelID)
	if err != nil {
		return nil, fmt.Errorf("list banned members: %w", err)
	}
	defer rows.Close()

	var records []storage.BannedMemberRecord
	for rows.Next() {
		var record storage.BannedMemberRecord
		if err := rows.Scan(&record.ChannelID, &record.MemberID); err != nil {
			return nil, fmt.Errorf("scan banned member: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list banned members: %w", err)
	}
	return records, nil
}
