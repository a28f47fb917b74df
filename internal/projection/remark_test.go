package projection

import (
	"context"
	"testing"

	"github.com/louisbranch/mediagraph/internal/domain/content"
	"github.com/louisbranch/mediagraph/internal/domain/event"
	"github.com/louisbranch/mediagraph/internal/metadata"
	apperrors "github.com/louisbranch/mediagraph/internal/platform/errors"
	"github.com/louisbranch/mediagraph/internal/storage"
)

func seedChannelWithVideo(t *testing.T, a *Applier, st storage.Store) {
	t.Helper()
	apply(t, a, st, mustEvent(t, event.NameChannelCreated, 100, 0, content.ChannelCreatedParams{
		ChannelID: "1", Owner: content.ChannelOwner{MemberID: "7"},
	}))
	createVideo(t, a, st, 101, "10", "1", 0)
}

func ownerRemarkEvent(t *testing.T, block uint64, index uint32, remark *metadata.OwnerRemark) event.Event {
	t.Helper()
	return mustEvent(t, event.NameChannelOwnerRemarked, block, index, content.ChannelOwnerRemarkedParams{
		ChannelID: "1",
		Message:   metadata.EncodeOwnerRemark(remark),
	})
}

func TestOwnerRemarkBanAndUnban(t *testing.T) {
	store := openTestStore(t)
	a := newTestApplier()
	ctx := context.Background()
	seedChannelWithVideo(t, a, store)

	apply(t, a, store, ownerRemarkEvent(t, 102, 0, &metadata.OwnerRemark{
		BanOrUnbanMember: &metadata.BanOrUnbanMember{MemberID: "44", Option: metadata.BanOptionBan},
	}))
	banned, err := store.ListBannedMembers(ctx, "1")
	if err != nil {
		t.Fatalf("list banned: %v", err)
	}
	if len(banned) != 1 || banned[0].MemberID != "44" {
		t.Fatalf("banned = %+v", banned)
	}

	apply(t, a, store, ownerRemarkEvent(t, 103, 0, &metadata.OwnerRemark{
		BanOrUnbanMember: &metadata.BanOrUnbanMember{MemberID: "44", Option: metadata.BanOptionUnban},
	}))
	banned, err = store.ListBannedMembers(ctx, "1")
	if err != nil {
		t.Fatalf("list banned: %v", err)
	}
	if len(banned) != 0 {
		t.Fatalf("banned after unban = %+v", banned)
	}
}

func TestOwnerRemarkPinComment(t *testing.T) {
	store := openTestStore(t)
	a := newTestApplier()
	ctx := context.Background()
	seedChannelWithVideo(t, a, store)

	if err := store.PutComment(ctx, storage.CommentRecord{
		ID: "c-1", VideoID: "10", AuthorMemberID: "44", Text: "first", Status: storage.CommentStatusVisible,
	}); err != nil {
		t.Fatalf("seed comment: %v", err)
	}

	apply(t, a, store, ownerRemarkEvent(t, 102, 0, &metadata.OwnerRemark{
		PinOrUnpinComment: &metadata.PinOrUnpinComment{VideoID: "10", CommentID: "c-1", Option: metadata.PinOptionPin},
	}))
	comment, err := store.GetComment(ctx, "c-1")
	if err != nil {
		t.Fatalf("get comment: %v", err)
	}
	if !comment.IsPinned {
		t.Fatal("comment should be pinned")
	}
}

func TestOwnerRemarkReactionsPreference(t *testing.T) {
	store := openTestStore(t)
	a := newTestApplier()
	ctx := context.Background()
	seedChannelWithVideo(t, a, store)

	apply(t, a, store, ownerRemarkEvent(t, 102, 0, &metadata.OwnerRemark{
		VideoReactionsPreference: &metadata.VideoReactionsPreference{VideoID: "10", Option: metadata.ReactionsOptionDisable},
	}))
	video, err := store.GetVideo(ctx, "10")
	if err != nil {
		t.Fatalf("get video: %v", err)
	}
	if video.ReactionsEnabled {
		t.Fatal("reactions should be disabled")
	}
}

func TestOwnerRemarkOtherChannelsVideoRejected(t *testing.T) {
	store := openTestStore(t)
	a := newTestApplier()
	ctx := context.Background()
	seedChannelWithVideo(t, a, store)
	apply(t, a, store, mustEvent(t, event.NameChannelCreated, 101, 5, content.ChannelCreatedParams{
		ChannelID: "2", Owner: content.ChannelOwner{MemberID: "8"},
	}))
	createVideo(t, a, store, 101, "20", "2", 0)

	err := a.Apply(ctx, store, ownerRemarkEvent(t, 102, 0, &metadata.OwnerRemark{
		VideoReactionsPreference: &metadata.VideoReactionsPreference{VideoID: "20", Option: metadata.ReactionsOptionDisable},
	}))
	if apperrors.CodeOf(err) != apperrors.CodeInvalidMetadata {
		t.Fatalf("code = %v, want INVALID_METADATA", apperrors.CodeOf(err))
	}
}

func TestAgentRemarkModeratesComment(t *testing.T) {
	store := openTestStore(t)
	a := newTestApplier()
	ctx := context.Background()
	seedChannelWithVideo(t, a, store)

	if err := store.PutComment(ctx, storage.CommentRecord{
		ID: "c-1", VideoID: "10", Text: "rude", Status: storage.CommentStatusVisible,
	}); err != nil {
		t.Fatalf("seed comment: %v", err)
	}

	evt := mustEvent(t, event.NameChannelAgentRemarked, 102, 0, content.ChannelAgentRemarkedParams{
		Actor:     content.Actor{Type: content.ActorTypeCurator, CuratorID: "3", CuratorGroupID: "2"},
		ChannelID: "1",
		Message: metadata.EncodeModeratorRemark(&metadata.ModeratorRemark{
			ModerateComment: &metadata.ModerateComment{CommentID: "c-1", Rationale: "abusive"},
		}),
	})
	apply(t, a, store, evt)

	comment, err := store.GetComment(ctx, "c-1")
	if err != nil {
		t.Fatalf("get comment: %v", err)
	}
	if comment.Status != storage.CommentStatusModerated || comment.Text != "" || comment.ModerationRationale != "abusive" {
		t.Fatalf("comment = %+v", comment)
	}
}

func TestRemarkUnknownChannelIsInconsistent(t *testing.T) {
	store := openTestStore(t)
	a := newTestApplier()

	err := a.Apply(context.Background(), store, ownerRemarkEvent(t, 102, 0, &metadata.OwnerRemark{
		BanOrUnbanMember: &metadata.BanOrUnbanMember{MemberID: "44", Option: metadata.BanOptionBan},
	}))
	if apperrors.CodeOf(err) != apperrors.CodeInconsistentState {
		t.Fatalf("code = %v, want INCONSISTENT_STATE", apperrors.CodeOf(err))
	}
}

func TestTransferAcceptedMovesOwnershipAndCollaborators(t *testing.T) {
	store := openTestStore(t)
	a := newTestApplier()
	ctx := context.Background()

	apply(t, a, store, mustEvent(t, event.NameChannelCreated, 100, 0, content.ChannelCreatedParams{
		ChannelID: "1", Owner: content.ChannelOwner{MemberID: "7"},
		Collaborators: map[string][]string{"5": {"AddVideo"}},
	}))
	apply(t, a, store, mustEvent(t, event.NameChannelTransferAccepted, 101, 0, content.ChannelTransferAcceptedParams{
		ChannelID:        "1",
		NewOwner:         content.ChannelOwner{CuratorGroupID: "2"},
		NewCollaborators: map[string][]string{"9": {"TransferChannel"}},
	}))

	channel, err := store.GetChannel(ctx, "1")
	if err != nil {
		t.Fatalf("get channel: %v", err)
	}
	// The owner union switched variants: member side must be empty now.
	if channel.OwnerCuratorGroupID != "2" || channel.OwnerMemberID != "" {
		t.Fatalf("owner = member %q / group %q", channel.OwnerMemberID, channel.OwnerCuratorGroupID)
	}

	perms, err := store.ListChannelPermissions(ctx, "1")
	if err != nil {
		t.Fatalf("list permissions: %v", err)
	}
	if len(perms) != 1 || perms[0].MemberID != "9" {
		t.Fatalf("perms = %+v", perms)
	}
}
