package content

// Params structs mirror the ordered argument tuples of the chain events,
// flattened into JSON objects by the upstream argument decoder. Metadata
// payloads stay opaque ([]byte marshals as base64) and are interpreted by
// the metadata codec, not here.

// DataObjectCreation describes one uploaded asset accompanying a channel or
// video mutation.
type DataObjectCreation struct {
	ID       string `json:"id"`
	Size     uint64 `json:"size"`
	IpfsHash string `json:"ipfsHash"`
}

// ChannelCreatedParams carries the arguments of Content.ChannelCreated.
type ChannelCreatedParams struct {
	ChannelID     string               `json:"channelId"`
	Owner         ChannelOwner         `json:"owner"`
	Meta          []byte               `json:"meta,omitempty"`
	Assets        []DataObjectCreation `json:"assets,omitempty"`
	Collaborators map[string][]string  `json:"collaborators,omitempty"`
	RewardAccount string               `json:"rewardAccount"`
}

// ChannelUpdatedParams carries the arguments of Content.ChannelUpdated.
// NewMeta nil means the metadata was untouched on chain; Collaborators nil
// means the collaborator map was untouched, while an empty non-nil map
// clears every edge. The field cannot be omitempty for that reason.
type ChannelUpdatedParams struct {
	Actor         Actor                `json:"actor"`
	ChannelID     string               `json:"channelId"`
	NewMeta       []byte               `json:"newMeta,omitempty"`
	NewAssets     []DataObjectCreation `json:"newAssets,omitempty"`
	Collaborators map[string][]string  `json:"collaborators"`
}

// ChannelDeletedParams carries the arguments of Content.ChannelDeleted.
type ChannelDeletedParams struct {
	Actor     Actor  `json:"actor"`
	ChannelID string `json:"channelId"`
}

// ChannelDeletedByModeratorParams adds the moderation rationale.
type ChannelDeletedByModeratorParams struct {
	Actor     Actor  `json:"actor"`
	ChannelID string `json:"channelId"`
	Rationale string `json:"rationale"`
}

// ChannelAssetsRemovedParams carries the arguments of
// Content.ChannelAssetsRemoved.
type ChannelAssetsRemovedParams struct {
	Actor         Actor    `json:"actor"`
	ChannelID     string   `json:"channelId"`
	DataObjectIDs []string `json:"dataObjectIds"`
}

// ChannelAssetsDeletedByModeratorParams adds the moderation rationale.
type ChannelAssetsDeletedByModeratorParams struct {
	Actor         Actor    `json:"actor"`
	ChannelID     string   `json:"channelId"`
	DataObjectIDs []string `json:"dataObjectIds"`
	Rationale     string   `json:"rationale"`
}

// ChannelVisibilitySetByModeratorParams toggles the channel censorship flag.
type ChannelVisibilitySetByModeratorParams struct {
	Actor     Actor  `json:"actor"`
	ChannelID string `json:"channelId"`
	IsHidden  bool   `json:"isHidden"`
	Rationale string `json:"rationale"`
}

// ChannelTransferAcceptedParams carries the accepted-transfer commitment:
// the new owner and the complete replacement collaborator set.
type ChannelTransferAcceptedParams struct {
	ChannelID        string              `json:"channelId"`
	NewOwner         ChannelOwner        `json:"newOwner"`
	NewCollaborators map[string][]string `json:"newCollaborators"`
}

// ChannelOwnerRemarkedParams carries an owner remark with its opaque
// metaprotocol message bytes.
type ChannelOwnerRemarkedParams struct {
	ChannelID string `json:"channelId"`
	Message   []byte `json:"message"`
}

// ChannelAgentRemarkedParams carries a moderator remark.
type ChannelAgentRemarkedParams struct {
	Actor     Actor  `json:"actor"`
	ChannelID string `json:"channelId"`
	Message   []byte `json:"message"`
}

// VideoCreatedParams carries the arguments of Content.VideoCreated.
type VideoCreatedParams struct {
	Actor     Actor                `json:"actor"`
	ChannelID string               `json:"channelId"`
	VideoID   string               `json:"videoId"`
	Meta      []byte               `json:"meta,omitempty"`
	Assets    []DataObjectCreation `json:"assets,omitempty"`
}

// VideoUpdatedParams carries the arguments of Content.VideoUpdated.
type VideoUpdatedParams struct {
	Actor     Actor                `json:"actor"`
	VideoID   string               `json:"videoId"`
	NewMeta   []byte               `json:"newMeta,omitempty"`
	NewAssets []DataObjectCreation `json:"newAssets,omitempty"`
}

// VideoDeletedParams carries the arguments of Content.VideoDeleted.
type VideoDeletedParams struct {
	Actor   Actor  `json:"actor"`
	VideoID string `json:"videoId"`
}

// VideoVisibilitySetByModeratorParams toggles the video censorship flag.
type VideoVisibilitySetByModeratorParams struct {
	Actor     Actor  `json:"actor"`
	VideoID   string `json:"videoId"`
	IsHidden  bool   `json:"isHidden"`
	Rationale string `json:"rationale"`
}
