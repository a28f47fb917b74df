package projection

import (
	"context"
	"errors"

	"github.com/louisbranch/mediagraph/internal/domain/content"
	"github.com/louisbranch/mediagraph/internal/domain/event"
	"github.com/louisbranch/mediagraph/internal/storage"
)

// storageBagID derives the dynamic bag id assets of a channel live in.
func storageBagID(channelID string) string {
	return "dynamic:channel:" + channelID
}

func (a *Applier) applyChannelAssetsRemoved(ctx context.Context, st storage.Store, evt event.Event) error {
	p, err := decodeParams[content.ChannelAssetsRemovedParams](evt)
	if err != nil {
		return err
	}
	return unsetAssetRelations(ctx, st, p.DataObjectIDs)
}

func (a *Applier) applyChannelAssetsDeletedByModerator(ctx context.Context, st storage.Store, evt event.Event) error {
	p, err := decodeParams[content.ChannelAssetsDeletedByModeratorParams](evt)
	if err != nil {
		return err
	}
	if err := unsetAssetRelations(ctx, st, p.DataObjectIDs); err != nil {
		return err
	}
	return recordModeration(ctx, st, evt, "ChannelAssetsDeletedByModerator", p.ChannelID, p.Actor, p.Rationale)
}

// createChannelAssets inserts data object rows for assets uploaded with a
// channel event. The channel's dynamic storage bag must already exist; the
// chain creates it before any upload can reference it, so a missing bag is
// fatal divergence.
func createChannelAssets(ctx context.Context, st storage.Store, channelID string, assets []content.DataObjectCreation) ([]storage.DataObjectRecord, error) {
	if len(assets) == 0 {
		return nil, nil
	}
	bagID := storageBagID(channelID)
	if _, err := st.GetStorageBag(ctx, bagID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, inconsistent("storage bag missing for channel assets", map[string]string{
				"channelId": channelID,
				"bagId":     bagID,
			})
		}
		return nil, err
	}

	records := make([]storage.DataObjectRecord, 0, len(assets))
	for _, asset := range assets {
		record := storage.DataObjectRecord{
			ID:           asset.ID,
			StorageBagID: bagID,
			Size:         asset.Size,
			IpfsHash:     asset.IpfsHash,
		}
		if err := st.PutDataObject(ctx, record); err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

// unsetAssetRelations clears the relation pointers between data objects and
// the channel or video surfaces they back. The object rows themselves stay:
// the storage subsystem tracks them independently of content visibility.
// Referencing surfaces drop their side of the pointer too.
func unsetAssetRelations(ctx context.Context, st storage.Store, objectIDs []string) error {
	for _, id := range objectIDs {
		obj, err := st.GetDataObject(ctx, id)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return inconsistent("asset removal for unknown data object", map[string]string{"dataObjectId": id})
			}
			return err
		}

		if obj.ChannelCoverForID != "" {
			if err := clearChannelPhoto(ctx, st, obj.ChannelCoverForID, obj.ID, false); err != nil {
				return err
			}
		}
		if obj.ChannelAvatarForID != "" {
			if err := clearChannelPhoto(ctx, st, obj.ChannelAvatarForID, obj.ID, true); err != nil {
				return err
			}
		}
		if obj.VideoMediaForID != "" || obj.VideoThumbnailForID != "" {
			if err := clearVideoAsset(ctx, st, obj); err != nil {
				return err
			}
		}

		obj.ChannelAvatarForID = ""
		obj.ChannelCoverForID = ""
		obj.VideoMediaForID = ""
		obj.VideoThumbnailForID = ""
		if err := st.PutDataObject(ctx, obj); err != nil {
			return err
		}
	}
	return nil
}

// clearObjectRelation drops one relation pointer on a data object when a
// surface replaces the asset backing it. The replaced row stays; only its
// back-reference goes away.
func clearObjectRelation(ctx context.Context, st storage.Store, objectID string, clear func(*storage.DataObjectRecord)) error {
	obj, err := st.GetDataObject(ctx, objectID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil
		}
		return err
	}
	clear(&obj)
	return st.PutDataObject(ctx, obj)
}

func clearChannelPhoto(ctx context.Context, st storage.Store, channelID, objectID string, avatar bool) error {
	channel, err := st.GetChannel(ctx, channelID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil
		}
		return err
	}
	changed := false
	if avatar && channel.AvatarPhotoID == objectID {
		channel.AvatarPhotoID = ""
		changed = true
	}
	if !avatar && channel.CoverPhotoID == objectID {
		channel.CoverPhotoID = ""
		changed = true
	}
	if !changed {
		return nil
	}
	return st.PutChannel(ctx, channel)
}

func clearVideoAsset(ctx context.Context, st storage.Store, obj storage.DataObjectRecord) error {
	videoID := obj.VideoMediaForID
	if videoID == "" {
		videoID = obj.VideoThumbnailForID
	}
	video, err := st.GetVideo(ctx, videoID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil
		}
		return err
	}
	changed := false
	if video.MediaObjectID == obj.ID {
		video.MediaObjectID = ""
		changed = true
	}
	if video.ThumbnailPhotoID == obj.ID {
		video.ThumbnailPhotoID = ""
		changed = true
	}
	if !changed {
		return nil
	}
	return st.PutVideo(ctx, video)
}
