package projection

import (
	"context"
	"sort"

	"github.com/louisbranch/mediagraph/internal/domain/content"
	"github.com/louisbranch/mediagraph/internal/storage"
)

// replaceChannelPermissions replaces the full set of collaborator permission
// edges for a channel with the given collaborator map. Replacement is never
// partial: all existing edges are deleted first, then the new set is
// inserted. A collaborator mapped to an empty permission list contributes no
// edges and effectively loses access; the rest of the map is still applied.
func replaceChannelPermissions(ctx context.Context, st storage.Store, channelID string, collaborators map[string][]string) error {
	if err := st.DeleteChannelPermissions(ctx, channelID); err != nil {
		return err
	}

	memberIDs := make([]string, 0, len(collaborators))
	for memberID := range collaborators {
		memberIDs = append(memberIDs, memberID)
	}
	sort.Strings(memberIDs)

	for _, memberID := range memberIDs {
		for _, raw := range collaborators[memberID] {
			perm, err := content.ParseChannelActionPermission(raw)
			if err != nil {
				return err
			}
			record := storage.ChannelPermissionRecord{
				ChannelID:  channelID,
				MemberID:   memberID,
				Permission: string(perm),
			}
			if err := st.PutChannelPermission(ctx, record); err != nil {
				return err
			}
		}
	}
	return nil
}
