package projection

import (
	"context"
	"errors"

	"github.com/louisbranch/mediagraph/internal/domain/content"
	"github.com/louisbranch/mediagraph/internal/domain/event"
	"github.com/louisbranch/mediagraph/internal/metadata"
	apperrors "github.com/louisbranch/mediagraph/internal/platform/errors"
	"github.com/louisbranch/mediagraph/internal/storage"
)

// Remark handlers run under metaprotocol tracking: errors other than
// InconsistentState roll back the event transaction and resolve the
// transaction status to Errored, without stopping the pipeline.

func (a *Applier) applyChannelOwnerRemarked(ctx context.Context, st storage.Store, evt event.Event) error {
	p, err := decodeParams[content.ChannelOwnerRemarkedParams](evt)
	if err != nil {
		return err
	}
	if err := a.requireChannel(ctx, st, p.ChannelID); err != nil {
		return err
	}

	remark, err := metadata.DecodeOwnerRemark(p.Message)
	if err != nil {
		return err
	}

	switch {
	case remark.PinOrUnpinComment != nil:
		return applyPinOrUnpinComment(ctx, st, p.ChannelID, remark.PinOrUnpinComment)
	case remark.BanOrUnbanMember != nil:
		return applyBanOrUnbanMember(ctx, st, p.ChannelID, remark.BanOrUnbanMember)
	case remark.VideoReactionsPreference != nil:
		return applyVideoReactionsPreference(ctx, st, p.ChannelID, remark.VideoReactionsPreference)
	case remark.ModerateComment != nil:
		return applyModerateComment(ctx, st, remark.ModerateComment)
	}
	return apperrors.New(apperrors.CodeInvalidMetadata, "unsupported channel owner remark message")
}

func (a *Applier) applyChannelAgentRemarked(ctx context.Context, st storage.Store, evt event.Event) error {
	p, err := decodeParams[content.ChannelAgentRemarkedParams](evt)
	if err != nil {
		return err
	}
	if err := a.requireChannel(ctx, st, p.ChannelID); err != nil {
		return err
	}

	remark, err := metadata.DecodeModeratorRemark(p.Message)
	if err != nil {
		return err
	}
	return applyModerateComment(ctx, st, remark.ModerateComment)
}

// requireChannel checks the remark's channel exists. The chain emits remark
// events only for live channels, so absence is fatal divergence rather than
// a bad payload.
func (a *Applier) requireChannel(ctx context.Context, st storage.Store, channelID string) error {
	if _, err := st.GetChannel(ctx, channelID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return inconsistent("remark for unknown channel", map[string]string{"channelId": channelID})
		}
		return err
	}
	return nil
}

func applyPinOrUnpinComment(ctx context.Context, st storage.Store, channelID string, action *metadata.PinOrUnpinComment) error {
	video, err := channelVideo(ctx, st, channelID, action.VideoID)
	if err != nil {
		return err
	}
	comment, err := st.GetComment(ctx, action.CommentID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return apperrors.WithMetadata(apperrors.CodeNotFound, "comment not found", map[string]string{
				"commentId": action.CommentID,
			})
		}
		return err
	}
	if comment.VideoID != video.ID {
		return apperrors.WithMetadata(apperrors.CodeInvalidMetadata, "comment does not belong to video", map[string]string{
			"commentId": action.CommentID,
			"videoId":   action.VideoID,
		})
	}
	comment.IsPinned = action.Option == metadata.PinOptionPin
	return st.PutComment(ctx, comment)
}

func applyBanOrUnbanMember(ctx context.Context, st storage.Store, channelID string, action *metadata.BanOrUnbanMember) error {
	if action.Option == metadata.BanOptionBan {
		return st.PutBannedMember(ctx, storage.BannedMemberRecord{
			ChannelID: channelID,
			MemberID:  action.MemberID,
		})
	}
	return st.DeleteBannedMember(ctx, channelID, action.MemberID)
}

func applyVideoReactionsPreference(ctx context.Context, st storage.Store, channelID string, action *metadata.VideoReactionsPreference) error {
	video, err := channelVideo(ctx, st, channelID, action.VideoID)
	if err != nil {
		return err
	}
	video.ReactionsEnabled = action.Option == metadata.ReactionsOptionEnable
	return st.PutVideo(ctx, video)
}

func applyModerateComment(ctx context.Context, st storage.Store, action *metadata.ModerateComment) error {
	comment, err := st.GetComment(ctx, action.CommentID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return apperrors.WithMetadata(apperrors.CodeNotFound, "comment not found", map[string]string{
				"commentId": action.CommentID,
			})
		}
		return err
	}
	comment.Status = storage.CommentStatusModerated
	comment.Text = ""
	comment.ModerationRationale = action.Rationale
	return st.PutComment(ctx, comment)
}

// channelVideo loads a video and verifies it belongs to the remarked
// channel. Remarks naming another channel's video are bad payloads, not
// store divergence.
func channelVideo(ctx context.Context, st storage.Store, channelID, videoID string) (storage.VideoRecord, error) {
	video, err := st.GetVideo(ctx, videoID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return storage.VideoRecord{}, apperrors.WithMetadata(apperrors.CodeNotFound, "video not found", map[string]string{
				"videoId": videoID,
			})
		}
		return storage.VideoRecord{}, err
	}
	if video.ChannelID != channelID {
		return storage.VideoRecord{}, apperrors.WithMetadata(apperrors.CodeInvalidMetadata, "video does not belong to channel", map[string]string{
			"videoId":   videoID,
			"channelId": channelID,
		})
	}
	return video, nil
}
