// Package event defines the inbound chain event envelope consumed by the
// projection layer. The upstream indexing runtime delivers events strictly
// ordered by (block height, index in block) with already-decoded arguments
// encoded as a JSON object per event kind.
package event

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Name identifies a chain event kind as "<Pallet>.<Event>".
type Name string

// Channel lifecycle events.
const (
	NameChannelCreated            Name = "Content.ChannelCreated"
	NameChannelUpdated            Name = "Content.ChannelUpdated"
	NameChannelDeleted            Name = "Content.ChannelDeleted"
	NameChannelDeletedByModerator Name = "Content.ChannelDeletedByModerator"
	NameChannelAssetsRemoved      Name = "Content.ChannelAssetsRemoved"
	// NameChannelAssetsDeletedByModerator additionally records an audit row
	// with the acting moderator and rationale.
	NameChannelAssetsDeletedByModerator Name = "Content.ChannelAssetsDeletedByModerator"
	NameChannelVisibilitySetByModerator Name = "Content.ChannelVisibilitySetByModerator"
	NameChannelTransferAccepted         Name = "Content.ChannelTransferAccepted"
)

// Channel metaprotocol (remark) events.
const (
	NameChannelOwnerRemarked Name = "Content.ChannelOwnerRemarked"
	NameChannelAgentRemarked Name = "Content.ChannelAgentRemarked"
)

// Video lifecycle events.
const (
	NameVideoCreated                  Name = "Content.VideoCreated"
	NameVideoUpdated                  Name = "Content.VideoUpdated"
	NameVideoDeleted                  Name = "Content.VideoDeleted"
	NameVideoVisibilitySetByModerator Name = "Content.VideoVisibilitySetByModerator"
)

// Event is one record of the inbound event stream. Params holds the ordered,
// already-decoded event arguments as a JSON object; each handler unmarshals
// the params struct for its event kind.
type Event struct {
	Name         Name            `json:"name"`
	BlockHeight  uint64          `json:"blockHeight"`
	IndexInBlock uint32          `json:"indexInBlock"`
	Params       json.RawMessage `json:"params"`
}

// ID returns the deterministic event identifier used to key rows derived
// from this event (metaprotocol statuses, audit rows). Replays of the same
// event map to the same identifier.
func (e Event) ID() string {
	return fmt.Sprintf("%d-%d", e.BlockHeight, e.IndexInBlock)
}

// After reports whether e is strictly after (block, index) in chain order.
func (e Event) After(block uint64, index uint32) bool {
	if e.BlockHeight != block {
		return e.BlockHeight > block
	}
	return e.IndexInBlock > index
}

// Validate checks the envelope for structural problems before dispatch.
func (e Event) Validate() error {
	if strings.TrimSpace(string(e.Name)) == "" {
		return fmt.Errorf("event name is required")
	}
	if len(e.Params) == 0 {
		return fmt.Errorf("event params are required")
	}
	return nil
}
