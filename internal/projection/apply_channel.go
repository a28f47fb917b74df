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

func (a *Applier) applyChannelCreated(ctx context.Context, st storage.Store, evt event.Event) error {
	p, err := decodeParams[content.ChannelCreatedParams](evt)
	if err != nil {
		return err
	}
	if err := p.Owner.Validate(); err != nil {
		return err
	}

	objects, err := createChannelAssets(ctx, st, p.ChannelID, p.Assets)
	if err != nil {
		return err
	}

	record := storage.ChannelRecord{
		ID:                  p.ChannelID,
		OwnerMemberID:       p.Owner.MemberID,
		OwnerCuratorGroupID: p.Owner.CuratorGroupID,
		IsPublic:            true,
		RewardAccount:       p.RewardAccount,
		CreatedInBlock:      evt.BlockHeight,
	}
	if len(p.Meta) > 0 {
		meta, err := metadata.DecodeChannelMetadata(p.Meta)
		if err != nil {
			return err
		}
		if err := applyChannelMetadata(ctx, st, &record, meta, objects); err != nil {
			return err
		}
	}
	if err := st.PutChannel(ctx, record); err != nil {
		return err
	}
	return replaceChannelPermissions(ctx, st, p.ChannelID, p.Collaborators)
}

func (a *Applier) applyChannelUpdated(ctx context.Context, st storage.Store, evt event.Event) error {
	p, err := decodeParams[content.ChannelUpdatedParams](evt)
	if err != nil {
		return err
	}

	channel, err := st.GetChannel(ctx, p.ChannelID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return inconsistent("channel update for unknown channel", map[string]string{"channelId": p.ChannelID})
		}
		return err
	}

	objects, err := createChannelAssets(ctx, st, p.ChannelID, p.NewAssets)
	if err != nil {
		return err
	}
	if len(p.NewMeta) > 0 {
		meta, err := metadata.DecodeChannelMetadata(p.NewMeta)
		if err != nil {
			return err
		}
		if err := applyChannelMetadata(ctx, st, &channel, meta, objects); err != nil {
			return err
		}
	}
	if p.Collaborators != nil {
		if err := replaceChannelPermissions(ctx, st, p.ChannelID, p.Collaborators); err != nil {
			return err
		}
	}
	if err := st.PutChannel(ctx, channel); err != nil {
		return err
	}
	return resyncChannelCounter(ctx, st, p.ChannelID)
}

func (a *Applier) applyChannelDeleted(ctx context.Context, st storage.Store, evt event.Event) error {
	p, err := decodeParams[content.ChannelDeletedParams](evt)
	if err != nil {
		return err
	}
	return deleteChannel(ctx, st, p.ChannelID)
}

func (a *Applier) applyChannelDeletedByModerator(ctx context.Context, st storage.Store, evt event.Event) error {
	p, err := decodeParams[content.ChannelDeletedByModeratorParams](evt)
	if err != nil {
		return err
	}
	if err := deleteChannel(ctx, st, p.ChannelID); err != nil {
		return err
	}
	return recordModeration(ctx, st, evt, "ChannelDeletedByModerator", p.ChannelID, p.Actor, p.Rationale)
}

func (a *Applier) applyChannelVisibilitySet(ctx context.Context, st storage.Store, evt event.Event) error {
	p, err := decodeParams[content.ChannelVisibilitySetByModeratorParams](evt)
	if err != nil {
		return err
	}

	channel, err := st.GetChannel(ctx, p.ChannelID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return inconsistent("visibility change for unknown channel", map[string]string{"channelId": p.ChannelID})
		}
		return err
	}
	channel.IsCensored = p.IsHidden
	if err := st.PutChannel(ctx, channel); err != nil {
		return err
	}
	// A channel-level flag flips active eligibility for every video in the
	// channel, so the whole scope gets recounted.
	if err := resyncChannelScope(ctx, st, p.ChannelID); err != nil {
		return err
	}
	return recordModeration(ctx, st, evt, "ChannelVisibilitySetByModerator", p.ChannelID, p.Actor, p.Rationale)
}

func (a *Applier) applyChannelTransferAccepted(ctx context.Context, st storage.Store, evt event.Event) error {
	p, err := decodeParams[content.ChannelTransferAcceptedParams](evt)
	if err != nil {
		return err
	}
	channel, err := st.GetChannel(ctx, p.ChannelID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return inconsistent("transfer accepted for unknown channel", map[string]string{"channelId": p.ChannelID})
		}
		return err
	}
	if err := p.NewOwner.Validate(); err != nil {
		return err
	}
	channel.OwnerMemberID = p.NewOwner.MemberID
	channel.OwnerCuratorGroupID = p.NewOwner.CuratorGroupID
	if err := st.PutChannel(ctx, channel); err != nil {
		return err
	}
	// The transfer commitment carries the complete new collaborator set; a
	// nil map replaces with nothing, wiping previous collaborators.
	return replaceChannelPermissions(ctx, st, p.ChannelID, p.NewCollaborators)
}

// deleteChannel removes a channel row after verifying the chain already
// removed its videos. A channel that still has videos at delete time means
// the store diverged from the chain, which is fatal.
func deleteChannel(ctx context.Context, st storage.Store, channelID string) error {
	if _, err := st.GetChannel(ctx, channelID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return inconsistent("delete for unknown channel", map[string]string{"channelId": channelID})
		}
		return err
	}

	count, err := st.CountChannelVideos(ctx, channelID)
	if err != nil {
		return err
	}
	if count > 0 {
		return inconsistent("channel deleted while videos remain", map[string]string{"channelId": channelID})
	}

	objects, err := st.ListChannelDataObjects(ctx, channelID)
	if err != nil {
		return err
	}
	for _, obj := range objects {
		obj.ChannelAvatarForID = ""
		obj.ChannelCoverForID = ""
		if err := st.PutDataObject(ctx, obj); err != nil {
			return err
		}
	}

	if err := st.DeleteChannelPermissions(ctx, channelID); err != nil {
		return err
	}
	banned, err := st.ListBannedMembers(ctx, channelID)
	if err != nil {
		return err
	}
	for _, ban := range banned {
		if err := st.DeleteBannedMember(ctx, channelID, ban.MemberID); err != nil {
			return err
		}
	}
	return st.DeleteChannel(ctx, channelID)
}

// applyChannelMetadata merges a decoded metadata update into the channel
// record. Absent fields keep their value, present empty fields clear it.
// Photo indexes resolve against the assets delivered with this event.
func applyChannelMetadata(ctx context.Context, st storage.Store, record *storage.ChannelRecord, meta *metadata.ChannelMetadata, objects []storage.DataObjectRecord) error {
	if meta.Title != nil {
		record.Title = *meta.Title
	}
	if meta.Description != nil {
		record.Description = *meta.Description
	}
	if meta.Language != nil {
		record.Language = *meta.Language
	}
	if meta.IsPublic != nil {
		record.IsPublic = *meta.IsPublic
	}
	if meta.CoverPhotoIndex != nil {
		obj, err := objectAt(objects, *meta.CoverPhotoIndex, "cover photo")
		if err != nil {
			return err
		}
		if record.CoverPhotoID != "" && record.CoverPhotoID != obj.ID {
			err := clearObjectRelation(ctx, st, record.CoverPhotoID, func(o *storage.DataObjectRecord) { o.ChannelCoverForID = "" })
			if err != nil {
				return err
			}
		}
		obj.ChannelCoverForID = record.ID
		if err := st.PutDataObject(ctx, obj); err != nil {
			return err
		}
		record.CoverPhotoID = obj.ID
	}
	if meta.AvatarPhotoIndex != nil {
		obj, err := objectAt(objects, *meta.AvatarPhotoIndex, "avatar photo")
		if err != nil {
			return err
		}
		if record.AvatarPhotoID != "" && record.AvatarPhotoID != obj.ID {
			err := clearObjectRelation(ctx, st, record.AvatarPhotoID, func(o *storage.DataObjectRecord) { o.ChannelAvatarForID = "" })
			if err != nil {
				return err
			}
		}
		obj.ChannelAvatarForID = record.ID
		if err := st.PutDataObject(ctx, obj); err != nil {
			return err
		}
		record.AvatarPhotoID = obj.ID
	}
	return nil
}

func objectAt(objects []storage.DataObjectRecord, index uint32, kind string) (storage.DataObjectRecord, error) {
	if int(index) >= len(objects) {
		return storage.DataObjectRecord{}, apperrors.WithMetadata(apperrors.CodeInvalidMetadata,
			"asset index out of range", map[string]string{"kind": kind})
	}
	return objects[index], nil
}

func recordModeration(ctx context.Context, st storage.Store, evt event.Event, kind, channelID string, actor content.Actor, rationale string) error {
	return st.PutModerationEvent(ctx, storage.ModerationEventRecord{
		ID:          evt.ID(),
		Kind:        kind,
		ChannelID:   channelID,
		ActorType:   string(actor.Type),
		ActorID:     actorID(actor),
		Rationale:   rationale,
		BlockHeight: evt.BlockHeight,
	})
}

func actorID(actor content.Actor) string {
	switch actor.Type {
	case content.ActorTypeMember:
		return actor.MemberID
	case content.ActorTypeCurator:
		return actor.CuratorID
	}
	return ""
}
