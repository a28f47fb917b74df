package projection

import (
	"context"
	"errors"

	"github.com/louisbranch/mediagraph/internal/storage"
)

// Derived counters are recomputed from the video table instead of being
// adjusted by deltas. Recomputing keeps replays and visibility flips
// trivially consistent: the counter can never drift from the rows it
// summarizes.

// resyncChannelCounter recounts the channel's active videos and stores the
// result on the channel row. A channel deleted mid-resync is fine to skip.
func resyncChannelCounter(ctx context.Context, st storage.Store, channelID string) error {
	channel, err := st.GetChannel(ctx, channelID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil
		}
		return err
	}
	count, err := st.CountActiveVideos(ctx, channelID, "")
	if err != nil {
		return err
	}
	if channel.ActiveVideoCount == count {
		return nil
	}
	channel.ActiveVideoCount = count
	return st.PutChannel(ctx, channel)
}

// resyncCategoryCounter recounts a category's active videos across all
// channels. Empty category ids (uncategorized videos) have no counter.
func resyncCategoryCounter(ctx context.Context, st storage.Store, categoryID string) error {
	if categoryID == "" {
		return nil
	}
	count, err := st.CountActiveVideos(ctx, "", categoryID)
	if err != nil {
		return err
	}
	return st.PutVideoCategory(ctx, storage.VideoCategoryRecord{
		ID:               categoryID,
		ActiveVideoCount: count,
	})
}

// resyncVideoCounters resynchronizes every counter a video mutation can
// touch: the channels and categories of the before and after states.
func resyncVideoCounters(ctx context.Context, st storage.Store, before, after *storage.VideoRecord) error {
	channels := map[string]struct{}{}
	categories := map[string]struct{}{}
	for _, v := range []*storage.VideoRecord{before, after} {
		if v == nil {
			continue
		}
		if v.ChannelID != "" {
			channels[v.ChannelID] = struct{}{}
		}
		if v.CategoryID != "" {
			categories[v.CategoryID] = struct{}{}
		}
	}
	for channelID := range channels {
		if err := resyncChannelCounter(ctx, st, channelID); err != nil {
			return err
		}
	}
	for categoryID := range categories {
		if err := resyncCategoryCounter(ctx, st, categoryID); err != nil {
			return err
		}
	}
	return nil
}

// resyncChannelScope resynchronizes the channel counter plus the category
// counters of every video in the channel. Used when a channel-level flag
// flips the active eligibility of all its videos at once.
func resyncChannelScope(ctx context.Context, st storage.Store, channelID string) error {
	if err := resyncChannelCounter(ctx, st, channelID); err != nil {
		return err
	}
	videos, err := st.ListChannelVideos(ctx, channelID)
	if err != nil {
		return err
	}
	seen := map[string]struct{}{}
	for _, v := range videos {
		if v.CategoryID == "" {
			continue
		}
		if _, ok := seen[v.CategoryID]; ok {
			continue
		}
		seen[v.CategoryID] = struct{}{}
		if err := resyncCategoryCounter(ctx, st, v.CategoryID); err != nil {
			return err
		}
	}
	return nil
}
