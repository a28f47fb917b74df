package projection

import (
	"context"

	"github.com/louisbranch/mediagraph/internal/domain/event"
	"github.com/louisbranch/mediagraph/internal/storage"
)

// applyFunc applies one event against a transaction-scoped store.
type applyFunc func(ctx context.Context, st storage.Store, evt event.Event) error

// handlerSpec declares how one event kind is dispatched. Metaprotocol
// handlers get the two-phase transaction treatment from the pipeline: a
// pending status row outside the event transaction and a terminal status on
// resolution.
type handlerSpec struct {
	apply        applyFunc
	metaprotocol bool
}

// registry maps event names to their handlers. Built once per Applier.
func (a *Applier) registry() map[event.Name]handlerSpec {
	return map[event.Name]handlerSpec{
		event.NameChannelCreated:                  {apply: a.applyChannelCreated},
		event.NameChannelUpdated:                  {apply: a.applyChannelUpdated},
		event.NameChannelDeleted:                  {apply: a.applyChannelDeleted},
		event.NameChannelDeletedByModerator:       {apply: a.applyChannelDeletedByModerator},
		event.NameChannelAssetsRemoved:            {apply: a.applyChannelAssetsRemoved},
		event.NameChannelAssetsDeletedByModerator: {apply: a.applyChannelAssetsDeletedByModerator},
		event.NameChannelVisibilitySetByModerator: {apply: a.applyChannelVisibilitySet},
		event.NameChannelTransferAccepted:         {apply: a.applyChannelTransferAccepted},
		event.NameChannelOwnerRemarked:            {apply: a.applyChannelOwnerRemarked, metaprotocol: true},
		event.NameChannelAgentRemarked:            {apply: a.applyChannelAgentRemarked, metaprotocol: true},
		event.NameVideoCreated:                    {apply: a.applyVideoCreated},
		event.NameVideoUpdated:                    {apply: a.applyVideoUpdated},
		event.NameVideoDeleted:                    {apply: a.applyVideoDeleted},
		event.NameVideoVisibilitySetByModerator:   {apply: a.applyVideoVisibilitySet},
	}
}
