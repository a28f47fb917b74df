// Package content defines the chain-side content domain vocabulary: channel
// ownership, acting identities, and the channel agent permission set.
package content

import (
	"fmt"
	"strings"

	apperrors "github.com/louisbranch/mediagraph/internal/platform/errors"
)

// ChannelOwner is the tagged owner union of a channel: exactly one of
// MemberID or CuratorGroupID is set.
type ChannelOwner struct {
	MemberID       string `json:"memberId,omitempty"`
	CuratorGroupID string `json:"curatorGroupId,omitempty"`
}

// Validate enforces the single-variant rule.
func (o ChannelOwner) Validate() error {
	member := strings.TrimSpace(o.MemberID)
	group := strings.TrimSpace(o.CuratorGroupID)
	if member == "" && group == "" {
		return apperrors.New(apperrors.CodeEventMalformed, "channel owner must name a member or a curator group")
	}
	if member != "" && group != "" {
		return apperrors.New(apperrors.CodeEventMalformed, "channel owner names both a member and a curator group")
	}
	return nil
}

// ActorType discriminates the acting identity attributed to a mutation.
type ActorType string

const (
	ActorTypeMember  ActorType = "member"
	ActorTypeCurator ActorType = "curator"
	ActorTypeLead    ActorType = "lead"
)

// Actor is the resolved acting identity (ContentActor) of an event: a
// member, a curator acting on behalf of a group, or the group lead.
type Actor struct {
	Type           ActorType `json:"type"`
	MemberID       string    `json:"memberId,omitempty"`
	CuratorID      string    `json:"curatorId,omitempty"`
	CuratorGroupID string    `json:"curatorGroupId,omitempty"`
}

// Validate checks the discriminant and its required fields.
func (a Actor) Validate() error {
	switch a.Type {
	case ActorTypeMember:
		if strings.TrimSpace(a.MemberID) == "" {
			return apperrors.New(apperrors.CodeEventMalformed, "member actor requires a member id")
		}
	case ActorTypeCurator:
		if strings.TrimSpace(a.CuratorID) == "" || strings.TrimSpace(a.CuratorGroupID) == "" {
			return apperrors.New(apperrors.CodeEventMalformed, "curator actor requires curator and group ids")
		}
	case ActorTypeLead:
	default:
		return apperrors.WithMetadata(apperrors.CodeEventMalformed, "unknown content actor type", map[string]string{
			"type": string(a.Type),
		})
	}
	return nil
}

// ChannelActionPermission is one entry of the fixed channel agent permission
// vocabulary mirrored from the chain.
type ChannelActionPermission string

const (
	PermissionUpdateChannelMetadata      ChannelActionPermission = "UpdateChannelMetadata"
	PermissionManageNonVideoAssets       ChannelActionPermission = "ManageNonVideoChannelAssets"
	PermissionManageChannelCollaborators ChannelActionPermission = "ManageChannelCollaborators"
	PermissionUpdateVideoMetadata        ChannelActionPermission = "UpdateVideoMetadata"
	PermissionAddVideo                   ChannelActionPermission = "AddVideo"
	PermissionManageVideoAssets          ChannelActionPermission = "ManageVideoAssets"
	PermissionDeleteChannel              ChannelActionPermission = "DeleteChannel"
	PermissionDeleteVideo                ChannelActionPermission = "DeleteVideo"
	PermissionManageVideoNfts            ChannelActionPermission = "ManageVideoNfts"
	PermissionAgentRemark                ChannelActionPermission = "AgentRemark"
	PermissionTransferChannel            ChannelActionPermission = "TransferChannel"
	PermissionClaimChannelReward         ChannelActionPermission = "ClaimChannelReward"
	PermissionWithdrawFromChannelBalance ChannelActionPermission = "WithdrawFromChannelBalance"
	PermissionIssueCreatorToken          ChannelActionPermission = "IssueCreatorToken"
)

var channelActionPermissions = map[string]ChannelActionPermission{
	string(PermissionUpdateChannelMetadata):      PermissionUpdateChannelMetadata,
	string(PermissionManageNonVideoAssets):       PermissionManageNonVideoAssets,
	string(PermissionManageChannelCollaborators): PermissionManageChannelCollaborators,
	string(PermissionUpdateVideoMetadata):        PermissionUpdateVideoMetadata,
	string(PermissionAddVideo):                   PermissionAddVideo,
	string(PermissionManageVideoAssets):          PermissionManageVideoAssets,
	string(PermissionDeleteChannel):              PermissionDeleteChannel,
	string(PermissionDeleteVideo):                PermissionDeleteVideo,
	string(PermissionManageVideoNfts):            PermissionManageVideoNfts,
	string(PermissionAgentRemark):                PermissionAgentRemark,
	string(PermissionTransferChannel):            PermissionTransferChannel,
	string(PermissionClaimChannelReward):         PermissionClaimChannelReward,
	string(PermissionWithdrawFromChannelBalance): PermissionWithdrawFromChannelBalance,
	string(PermissionIssueCreatorToken):          PermissionIssueCreatorToken,
}

// ParseChannelActionPermission translates a raw on-chain permission code.
// Unknown codes are an InvalidMetadata condition, never silently dropped:
// dropping one would desynchronize authorization state from the chain's
// authoritative bitmap.
func ParseChannelActionPermission(raw string) (ChannelActionPermission, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", apperrors.New(apperrors.CodeInvalidMetadata, "channel action permission is required")
	}
	if perm, ok := channelActionPermissions[trimmed]; ok {
		return perm, nil
	}
	return "", apperrors.WithMetadata(apperrors.CodeInvalidMetadata,
		fmt.Sprintf("unknown channel action permission: %s", trimmed),
		map[string]string{"permission": trimmed})
}
