package projection

import (
	"context"
	"errors"
	"strconv"

	"github.com/louisbranch/mediagraph/internal/domain/content"
	"github.com/louisbranch/mediagraph/internal/domain/event"
	"github.com/louisbranch/mediagraph/internal/metadata"
	"github.com/louisbranch/mediagraph/internal/storage"
)

func (a *Applier) applyVideoCreated(ctx context.Context, st storage.Store, evt event.Event) error {
	p, err := decodeParams[content.VideoCreatedParams](evt)
	if err != nil {
		return err
	}

	if _, err := st.GetChannel(ctx, p.ChannelID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return inconsistent("video created in unknown channel", map[string]string{
				"channelId": p.ChannelID,
				"videoId":   p.VideoID,
			})
		}
		return err
	}

	objects, err := createChannelAssets(ctx, st, p.ChannelID, p.Assets)
	if err != nil {
		return err
	}

	record := storage.VideoRecord{
		ID:               p.VideoID,
		ChannelID:        p.ChannelID,
		IsPublic:         true,
		ReactionsEnabled: true,
		CreatedInBlock:   evt.BlockHeight,
	}
	if len(p.Meta) > 0 {
		meta, err := metadata.DecodeVideoMetadata(p.Meta)
		if err != nil {
			return err
		}
		if err := applyVideoMetadata(ctx, st, &record, meta, objects); err != nil {
			return err
		}
	}
	if err := st.PutVideo(ctx, record); err != nil {
		return err
	}
	return resyncVideoCounters(ctx, st, nil, &record)
}

func (a *Applier) applyVideoUpdated(ctx context.Context, st storage.Store, evt event.Event) error {
	p, err := decodeParams[content.VideoUpdatedParams](evt)
	if err != nil {
		return err
	}

	video, err := st.GetVideo(ctx, p.VideoID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return inconsistent("video update for unknown video", map[string]string{"videoId": p.VideoID})
		}
		return err
	}
	before := video

	objects, err := createChannelAssets(ctx, st, video.ChannelID, p.NewAssets)
	if err != nil {
		return err
	}
	if len(p.NewMeta) > 0 {
		meta, err := metadata.DecodeVideoMetadata(p.NewMeta)
		if err != nil {
			return err
		}
		if err := applyVideoMetadata(ctx, st, &video, meta, objects); err != nil {
			return err
		}
	}
	if err := st.PutVideo(ctx, video); err != nil {
		return err
	}
	return resyncVideoCounters(ctx, st, &before, &video)
}

func (a *Applier) applyVideoDeleted(ctx context.Context, st storage.Store, evt event.Event) error {
	p, err := decodeParams[content.VideoDeletedParams](evt)
	if err != nil {
		return err
	}

	video, err := st.GetVideo(ctx, p.VideoID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return inconsistent("delete for unknown video", map[string]string{"videoId": p.VideoID})
		}
		return err
	}

	for _, objectID := range []string{video.MediaObjectID, video.ThumbnailPhotoID} {
		if objectID == "" {
			continue
		}
		obj, err := st.GetDataObject(ctx, objectID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				continue
			}
			return err
		}
		obj.VideoMediaForID = ""
		obj.VideoThumbnailForID = ""
		if err := st.PutDataObject(ctx, obj); err != nil {
			return err
		}
	}

	if err := st.DeleteVideo(ctx, p.VideoID); err != nil {
		return err
	}
	return resyncVideoCounters(ctx, st, &video, nil)
}

func (a *Applier) applyVideoVisibilitySet(ctx context.Context, st storage.Store, evt event.Event) error {
	p, err := decodeParams[content.VideoVisibilitySetByModeratorParams](evt)
	if err != nil {
		return err
	}

	video, err := st.GetVideo(ctx, p.VideoID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return inconsistent("visibility change for unknown video", map[string]string{"videoId": p.VideoID})
		}
		return err
	}
	before := video
	video.IsCensored = p.IsHidden
	if err := st.PutVideo(ctx, video); err != nil {
		return err
	}
	if err := resyncVideoCounters(ctx, st, &before, &video); err != nil {
		return err
	}
	return recordModeration(ctx, st, evt, "VideoVisibilitySetByModerator", video.ChannelID, p.Actor, p.Rationale)
}

// applyVideoMetadata merges a decoded metadata update into the video record.
// Asset indexes resolve against the assets delivered with this event. A
// present category id of zero clears the assignment; any other value points
// the video at the category, creating its counter row on first reference.
func applyVideoMetadata(ctx context.Context, st storage.Store, record *storage.VideoRecord, meta *metadata.VideoMetadata, objects []storage.DataObjectRecord) error {
	if meta.Title != nil {
		record.Title = *meta.Title
	}
	if meta.Description != nil {
		record.Description = *meta.Description
	}
	if meta.Duration != nil {
		record.Duration = *meta.Duration
	}
	if meta.Language != nil {
		record.Language = *meta.Language
	}
	if meta.IsPublic != nil {
		record.IsPublic = *meta.IsPublic
	}
	if meta.IsExplicit != nil {
		record.IsExplicit = *meta.IsExplicit
	}
	if meta.CategoryID != nil {
		if *meta.CategoryID == 0 {
			record.CategoryID = ""
		} else {
			categoryID := strconv.FormatUint(*meta.CategoryID, 10)
			if _, err := st.GetVideoCategory(ctx, categoryID); err != nil {
				if !errors.Is(err, storage.ErrNotFound) {
					return err
				}
				if err := st.PutVideoCategory(ctx, storage.VideoCategoryRecord{ID: categoryID}); err != nil {
					return err
				}
			}
			record.CategoryID = categoryID
		}
	}
	if meta.VideoAssetIndex != nil {
		obj, err := objectAt(objects, *meta.VideoAssetIndex, "video media")
		if err != nil {
			return err
		}
		if record.MediaObjectID != "" && record.MediaObjectID != obj.ID {
			err := clearObjectRelation(ctx, st, record.MediaObjectID, func(o *storage.DataObjectRecord) { o.VideoMediaForID = "" })
			if err != nil {
				return err
			}
		}
		obj.VideoMediaForID = record.ID
		if err := st.PutDataObject(ctx, obj); err != nil {
			return err
		}
		record.MediaObjectID = obj.ID
	}
	if meta.ThumbnailAssetIndex != nil {
		obj, err := objectAt(objects, *meta.ThumbnailAssetIndex, "video thumbnail")
		if err != nil {
			return err
		}
		if record.ThumbnailPhotoID != "" && record.ThumbnailPhotoID != obj.ID {
			err := clearObjectRelation(ctx, st, record.ThumbnailPhotoID, func(o *storage.DataObjectRecord) { o.VideoThumbnailForID = "" })
			if err != nil {
				return err
			}
		}
		obj.VideoThumbnailForID = record.ID
		if err := st.PutDataObject(ctx, obj); err != nil {
			return err
		}
		record.ThumbnailPhotoID = obj.ID
	}
	return nil
}
