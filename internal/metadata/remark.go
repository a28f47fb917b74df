package metadata

import (
	"fmt"
	"strconv"

	"google.golang.org/protobuf/encoding/protowire"
)

// Remark message wire schema. Owner and moderator remarks are oneof
// wrappers; the set field selects the metaprotocol action.
const (
	ownerRemarkFieldPinComment      = 1
	ownerRemarkFieldBanMember       = 2
	ownerRemarkFieldReactionsPref   = 3
	ownerRemarkFieldModerateComment = 4

	moderatorRemarkFieldModerateComment = 1
)

// PinOption selects pinning or unpinning a comment.
type PinOption string

const (
	PinOptionPin   PinOption = "PIN"
	PinOptionUnpin PinOption = "UNPIN"
)

// BanOption selects banning or unbanning a member.
type BanOption string

const (
	BanOptionBan   BanOption = "BAN"
	BanOptionUnban BanOption = "UNBAN"
)

// ReactionsOption enables or disables video reactions.
type ReactionsOption string

const (
	ReactionsOptionEnable  ReactionsOption = "ENABLE"
	ReactionsOptionDisable ReactionsOption = "DISABLE"
)

// PinOrUnpinComment pins or unpins a comment on one of the channel's videos.
type PinOrUnpinComment struct {
	VideoID   string
	CommentID string
	Option    PinOption
}

// BanOrUnbanMember bans or unbans a member from the channel.
type BanOrUnbanMember struct {
	MemberID string
	Option   BanOption
}

// VideoReactionsPreference toggles reactions on one of the channel's videos.
type VideoReactionsPreference struct {
	VideoID string
	Option  ReactionsOption
}

// ModerateComment deletes a comment's text with a rationale.
type ModerateComment struct {
	CommentID string
	Rationale string
}

// OwnerRemark is the decoded channel owner metaprotocol message. Exactly one
// action field is set.
type OwnerRemark struct {
	PinOrUnpinComment        *PinOrUnpinComment
	BanOrUnbanMember         *BanOrUnbanMember
	VideoReactionsPreference *VideoReactionsPreference
	ModerateComment          *ModerateComment
}

// ModeratorRemark is the decoded channel moderator metaprotocol message.
type ModeratorRemark struct {
	ModerateComment *ModerateComment
}

// DecodeOwnerRemark parses a channel owner remark. A payload that sets none
// of the known action fields is an unsupported message type, reported as
// InvalidMetadata rather than ignored. When a malformed payload sets more
// than one action the highest field number wins, matching oneof decoding.
func DecodeOwnerRemark(buf []byte) (*OwnerRemark, error) {
	remark := &OwnerRemark{}
	err := rangeFields(buf, func(num protowire.Number, typ protowire.Type, value []byte) error {
		sub, err := fieldBytes(typ, value)
		if err != nil && num >= ownerRemarkFieldPinComment && num <= ownerRemarkFieldModerateComment {
			return err
		}
		switch num {
		case ownerRemarkFieldPinComment:
			action, err := decodePinOrUnpinComment(sub)
			if err != nil {
				return err
			}
			*remark = OwnerRemark{PinOrUnpinComment: action}
		case ownerRemarkFieldBanMember:
			action, err := decodeBanOrUnbanMember(sub)
			if err != nil {
				return err
			}
			*remark = OwnerRemark{BanOrUnbanMember: action}
		case ownerRemarkFieldReactionsPref:
			action, err := decodeVideoReactionsPreference(sub)
			if err != nil {
				return err
			}
			*remark = OwnerRemark{VideoReactionsPreference: action}
		case ownerRemarkFieldModerateComment:
			action, err := decodeModerateComment(sub)
			if err != nil {
				return err
			}
			*remark = OwnerRemark{ModerateComment: action}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if remark.PinOrUnpinComment == nil && remark.BanOrUnbanMember == nil &&
		remark.VideoReactionsPreference == nil && remark.ModerateComment == nil {
		return nil, invalid("unsupported channel owner remark message")
	}
	return remark, nil
}

// DecodeModeratorRemark parses a channel moderator remark.
func DecodeModeratorRemark(buf []byte) (*ModeratorRemark, error) {
	remark := &ModeratorRemark{}
	err := rangeFields(buf, func(num protowire.Number, typ protowire.Type, value []byte) error {
		if num != moderatorRemarkFieldModerateComment {
			return nil
		}
		sub, err := fieldBytes(typ, value)
		if err != nil {
			return err
		}
		action, err := decodeModerateComment(sub)
		if err != nil {
			return err
		}
		remark.ModerateComment = action
		return nil
	})
	if err != nil {
		return nil, err
	}
	if remark.ModerateComment == nil {
		return nil, invalid("unsupported channel moderator remark message")
	}
	return remark, nil
}

func decodePinOrUnpinComment(buf []byte) (*PinOrUnpinComment, error) {
	action := &PinOrUnpinComment{Option: PinOptionPin}
	err := rangeFields(buf, func(num protowire.Number, typ protowire.Type, value []byte) error {
		switch num {
		case 1:
			v, err := fieldUvarint(typ, value)
			if err != nil {
				return err
			}
			action.VideoID = strconv.FormatUint(v, 10)
		case 2:
			v, err := fieldString(typ, value)
			if err != nil {
				return err
			}
			action.CommentID = v
		case 3:
			v, err := fieldUvarint(typ, value)
			if err != nil {
				return err
			}
			switch v {
			case 0:
				action.Option = PinOptionPin
			case 1:
				action.Option = PinOptionUnpin
			default:
				return invalid(fmt.Sprintf("unknown pin option: %d", v))
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if action.VideoID == "" || action.CommentID == "" {
		return nil, invalid("pin or unpin comment requires video and comment ids")
	}
	return action, nil
}

func decodeBanOrUnbanMember(buf []byte) (*BanOrUnbanMember, error) {
	action := &BanOrUnbanMember{Option: BanOptionBan}
	err := rangeFields(buf, func(num protowire.Number, typ protowire.Type, value []byte) error {
		switch num {
		case 1:
			v, err := fieldUvarint(typ, value)
			if err != nil {
				return err
			}
			action.MemberID = strconv.FormatUint(v, 10)
		case 2:
			v, err := fieldUvarint(typ, value)
			if err != nil {
				return err
			}
			switch v {
			case 0:
				action.Option = BanOptionBan
			case 1:
				action.Option = BanOptionUnban
			default:
				return invalid(fmt.Sprintf("unknown ban option: %d", v))
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if action.MemberID == "" {
		return nil, invalid("ban or unban requires a member id")
	}
	return action, nil
}

func decodeVideoReactionsPreference(buf []byte) (*VideoReactionsPreference, error) {
	action := &VideoReactionsPreference{Option: ReactionsOptionEnable}
	err := rangeFields(buf, func(num protowire.Number, typ protowire.Type, value []byte) error {
		switch num {
		case 1:
			v, err := fieldUvarint(typ, value)
			if err != nil {
				return err
			}
			action.VideoID = strconv.FormatUint(v, 10)
		case 2:
			v, err := fieldUvarint(typ, value)
			if err != nil {
				return err
			}
			switch v {
			case 0:
				action.Option = ReactionsOptionEnable
			case 1:
				action.Option = ReactionsOptionDisable
			default:
				return invalid(fmt.Sprintf("unknown reactions option: %d", v))
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if action.VideoID == "" {
		return nil, invalid("video reactions preference requires a video id")
	}
	return action, nil
}

func decodeModerateComment(buf []byte) (*ModerateComment, error) {
	action := &ModerateComment{}
	err := rangeFields(buf, func(num protowire.Number, typ protowire.Type, value []byte) error {
		switch num {
		case 1:
			v, err := fieldString(typ, value)
			if err != nil {
				return err
			}
			action.CommentID = v
		case 2:
			v, err := fieldString(typ, value)
			if err != nil {
				return err
			}
			action.Rationale = v
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if action.CommentID == "" {
		return nil, invalid("moderate comment requires a comment id")
	}
	return action, nil
}

// EncodeOwnerRemark serializes an owner remark for tests and fixtures.
func EncodeOwnerRemark(remark *OwnerRemark) []byte {
	var buf []byte
	switch {
	case remark.PinOrUnpinComment != nil:
		a := remark.PinOrUnpinComment
		var sub []byte
		sub = appendUvarintField(sub, 1, mustUint(a.VideoID))
		sub = appendStringField(sub, 2, a.CommentID)
		sub = appendUvarintField(sub, 3, pinVarint(a.Option))
		buf = appendMessageField(buf, ownerRemarkFieldPinComment, sub)
	case remark.BanOrUnbanMember != nil:
		a := remark.BanOrUnbanMember
		var sub []byte
		sub = appendUvarintField(sub, 1, mustUint(a.MemberID))
		sub = appendUvarintField(sub, 2, banVarint(a.Option))
		buf = appendMessageField(buf, ownerRemarkFieldBanMember, sub)
	case remark.VideoReactionsPreference != nil:
		a := remark.VideoReactionsPreference
		var sub []byte
		sub = appendUvarintField(sub, 1, mustUint(a.VideoID))
		sub = appendUvarintField(sub, 2, reactionsVarint(a.Option))
		buf = appendMessageField(buf, ownerRemarkFieldReactionsPref, sub)
	case remark.ModerateComment != nil:
		buf = appendMessageField(buf, ownerRemarkFieldModerateComment, encodeModerateComment(remark.ModerateComment))
	}
	return buf
}

// EncodeModeratorRemark serializes a moderator remark for tests and fixtures.
func EncodeModeratorRemark(remark *ModeratorRemark) []byte {
	var buf []byte
	if remark.ModerateComment != nil {
		buf = appendMessageField(buf, moderatorRemarkFieldModerateComment, encodeModerateComment(remark.ModerateComment))
	}
	return buf
}

func encodeModerateComment(a *ModerateComment) []byte {
	var sub []byte
	sub = appendStringField(sub, 1, a.CommentID)
	sub = appendStringField(sub, 2, a.Rationale)
	return sub
}

func appendStringField(buf []byte, num protowire.Number, v string) []byte {
	buf = protowire.AppendTag(buf, num, protowire.BytesType)
	return protowire.AppendString(buf, v)
}

func appendUvarintField(buf []byte, num protowire.Number, v uint64) []byte {
	buf = protowire.AppendTag(buf, num, protowire.VarintType)
	return protowire.AppendVarint(buf, v)
}

func appendMessageField(buf []byte, num protowire.Number, sub []byte) []byte {
	buf = protowire.AppendTag(buf, num, protowire.BytesType)
	return protowire.AppendBytes(buf, sub)
}

func mustUint(v string) uint64 {
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

func pinVarint(o PinOption) uint64 {
	if o == PinOptionUnpin {
		return 1
	}
	return 0
}

func banVarint(o BanOption) uint64 {
	if o == BanOptionUnban {
		return 1
	}
	return 0
}

func reactionsVarint(o ReactionsOption) uint64 {
	if o == ReactionsOptionDisable {
		return 1
	}
	return 0
}
