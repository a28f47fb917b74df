// Package storage defines the persistence contracts for the projected
// content graph. Implementations live in subpackages; the projection layer
// depends only on these interfaces.
package storage

import (
	"context"
	"fmt"

	apperrors "github.com/louisbranch/mediagraph/internal/platform/errors"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = apperrors.New(apperrors.CodeNotFound, "record not found")

// ChannelRecord is the materialized state of one channel. Owner fields are
// mutually exclusive; empty string means the variant is not set. Asset
// pointer fields hold data object ids, empty when unset.
type ChannelRecord struct {
	ID                  string
	OwnerMemberID       string
	OwnerCuratorGroupID string
	Title               string
	Description         string
	Language            string
	IsPublic            bool
	IsCensored          bool
	RewardAccount       string
	CoverPhotoID        string
	AvatarPhotoID       string
	ActiveVideoCount    int64
	CreatedInBlock      uint64
}

// VideoRecord is the materialized state of one video.
type VideoRecord struct {
	ID               string
	ChannelID        string
	CategoryID       string
	Title            string
	Description      string
	Duration         uint32
	Language         string
	IsPublic         bool
	IsCensored       bool
	IsExplicit       bool
	ReactionsEnabled bool
	MediaObjectID    string
	ThumbnailPhotoID string
	CreatedInBlock   uint64
}

// VideoCategoryRecord tracks a category and its derived active video count.
type VideoCategoryRecord struct {
	ID               string
	ActiveVideoCount int64
}

// DataObjectRecord is one uploaded asset. The relation pointer fields tie it
// to the channel or video surface it currently backs; unsetting a relation
// clears the pointer without deleting the row, since the storage subsystem
// may still track the object.
type DataObjectRecord struct {
	ID                  string
	StorageBagID        string
	Size                uint64
	IpfsHash            string
	ChannelAvatarForID  string
	ChannelCoverForID   string
	VideoMediaForID     string
	VideoThumbnailForID string
}

// StorageBagRecord is the per-channel dynamic storage bag assets are
// uploaded into.
type StorageBagRecord struct {
	ID string
}

// ChannelPermissionRecord is one collaborator permission edge.
type ChannelPermissionRecord struct {
	ChannelID  string
	MemberID   string
	Permission string
}

// BannedMemberRecord marks a member banned from a channel.
type BannedMemberRecord struct {
	ChannelID string
	MemberID  string
}

// CommentStatus is the moderation state of a comment.
type CommentStatus string

const (
	CommentStatusVisible   CommentStatus = "VISIBLE"
	CommentStatusModerated CommentStatus = "MODERATED"
)

// CommentRecord is one comment on a video.
type CommentRecord struct {
	ID                  string
	VideoID             string
	AuthorMemberID      string
	Text                string
	Status              CommentStatus
	IsPinned            bool
	ModerationRationale string
}

// TransactionStatus is the lifecycle state of a metaprotocol transaction.
type TransactionStatus string

const (
	TransactionStatusPending    TransactionStatus = "PENDING"
	TransactionStatusSuccessful TransactionStatus = "SUCCESSFUL"
	TransactionStatusErrored    TransactionStatus = "ERRORED"
)

// MetaprotocolTransactionRecord tracks the outcome of one remark event. The
// id is derived from the event position, so replays land on the same row.
type MetaprotocolTransactionRecord struct {
	ID           string
	Status       TransactionStatus
	ErrorMessage string
	BlockHeight  uint64
	IndexInBlock uint32
}

// ModerationEventRecord is an audit row for a moderator action.
type ModerationEventRecord struct {
	ID          string
	Kind        string
	ChannelID   string
	ActorType   string
	ActorID     string
	Rationale   string
	BlockHeight uint64
}

// Watermark is the position of the last fully applied event.
type Watermark struct {
	BlockHeight  uint64
	IndexInBlock uint32
}

func (w Watermark) String() string {
	return fmt.Sprintf("%d-%d", w.BlockHeight, w.IndexInBlock)
}

// ChannelStore persists channels.
type ChannelStore interface {
	PutChannel(ctx context.Context, record ChannelRecord) error
	GetChannel(ctx context.Context, id string) (ChannelRecord, error)
	DeleteChannel(ctx context.Context, id string) error
}

// VideoStore persists videos.
type VideoStore interface {
	PutVideo(ctx context.Context, record VideoRecord) error
	GetVideo(ctx context.Context, id string) (VideoRecord, error)
	DeleteVideo(ctx context.Context, id string) error
	CountChannelVideos(ctx context.Context, channelID string) (int64, error)
	// CountActiveVideos counts videos that are public, uncensored, and
	// belong to an uncensored channel, optionally scoped to one category.
	CountActiveVideos(ctx context.Context, channelID, categoryID string) (int64, error)
	ListChannelVideos(ctx context.Context, channelID string) ([]VideoRecord, error)
}

// VideoCategoryStore persists categories and their derived counters.
type VideoCategoryStore interface {
	PutVideoCategory(ctx context.Context, record VideoCategoryRecord) error
	GetVideoCategory(ctx context.Context, id string) (VideoCategoryRecord, error)
}

// DataObjectStore persists uploaded assets and their relation pointers.
type DataObjectStore interface {
	PutDataObject(ctx context.Context, record DataObjectRecord) error
	GetDataObject(ctx context.Context, id string) (DataObjectRecord, error)
	ListChannelDataObjects(ctx context.Context, channelID string) ([]DataObjectRecord, error)
}

// StorageBagStore persists dynamic storage bags.
type StorageBagStore interface {
	PutStorageBag(ctx context.Context, record StorageBagRecord) error
	GetStorageBag(ctx context.Context, id string) (StorageBagRecord, error)
}

// ChannelPermissionStore persists collaborator permission edges. Replace
// semantics are full: callers delete all edges for a channel and reinsert.
type ChannelPermissionStore interface {
	PutChannelPermission(ctx context.Context, record ChannelPermissionRecord) error
	DeleteChannelPermissions(ctx context.Context, channelID string) error
	ListChannelPermissions(ctx context.Context, channelID string) ([]ChannelPermissionRecord, error)
}

// BannedMemberStore persists channel member bans.
type BannedMemberStore interface {
	PutBannedMember(ctx context.Context, record BannedMemberRecord) error
	DeleteBannedMember(ctx context.Context, channelID, memberID string) error
	ListBannedMembers(ctx context.Context, channelID string) ([]BannedMemberRecord, error)
}

// CommentStore persists video comments.
type CommentStore interface {
	PutComment(ctx context.Context, record CommentRecord) error
	GetComment(ctx context.Context, id string) (CommentRecord, error)
}

// MetaprotocolTransactionStore persists remark transaction statuses.
type MetaprotocolTransactionStore interface {
	PutMetaprotocolTransaction(ctx context.Context, record MetaprotocolTransactionRecord) error
	GetMetaprotocolTransaction(ctx context.Context, id string) (MetaprotocolTransactionRecord, error)
}

// ModerationEventStore persists moderation audit rows.
type ModerationEventStore interface {
	PutModerationEvent(ctx context.Context, record ModerationEventRecord) error
	ListChannelModerationEvents(ctx context.Context, channelID string) ([]ModerationEventRecord, error)
}

// WatermarkStore persists the applied-event watermark.
type WatermarkStore interface {
	GetWatermark(ctx context.Context) (Watermark, error)
	SetWatermark(ctx context.Context, mark Watermark) error
}

// Store is the composite persistence surface. InTx runs fn against a
// transaction-scoped store; fn returning an error rolls the transaction
// back, otherwise it commits.
type Store interface {
	ChannelStore
	VideoStore
	VideoCategoryStore
	DataObjectStore
	StorageBagStore
	ChannelPermissionStore
	BannedMemberStore
	CommentStore
	MetaprotocolTransactionStore
	ModerationEventStore
	WatermarkStore

	InTx(ctx context.Context, fn func(Store) error) error
}
