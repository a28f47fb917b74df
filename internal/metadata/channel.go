package metadata

import "google.golang.org/protobuf/encoding/protowire"

// Channel metadata wire schema.
const (
	channelFieldTitle       = 1
	channelFieldDescription = 2
	channelFieldIsPublic    = 3
	channelFieldLanguage    = 4
	channelFieldCoverPhoto  = 5
	channelFieldAvatarPhoto = 6
)

// ChannelMetadata is a decoded channel metadata update. CoverPhotoIndex and
// AvatarPhotoIndex point into the asset list delivered alongside the event,
// not into stored objects.
type ChannelMetadata struct {
	Title            *string
	Description      *string
	IsPublic         *bool
	Language         *string
	CoverPhotoIndex  *uint32
	AvatarPhotoIndex *uint32
}

// DecodeChannelMetadata parses wire bytes into a channel metadata update.
// Unknown fields are ignored so payloads produced by newer schema revisions
// still decode.
func DecodeChannelMetadata(buf []byte) (*ChannelMetadata, error) {
	meta := &ChannelMetadata{}
	err := rangeFields(buf, func(num protowire.Number, typ protowire.Type, value []byte) error {
		switch num {
		case channelFieldTitle:
			v, err := fieldString(typ, value)
			if err != nil {
				return err
			}
			meta.Title = &v
		case channelFieldDescription:
			v, err := fieldString(typ, value)
			if err != nil {
				return err
			}
			meta.Description = &v
		case channelFieldIsPublic:
			v, err := fieldBool(typ, value)
			if err != nil {
				return err
			}
			meta.IsPublic = &v
		case channelFieldLanguage:
			v, err := fieldString(typ, value)
			if err != nil {
				return err
			}
			meta.Language = &v
		case channelFieldCoverPhoto:
			v, err := fieldUvarint(typ, value)
			if err != nil {
				return err
			}
			meta.CoverPhotoIndex = ptr(uint32(v))
		case channelFieldAvatarPhoto:
			v, err := fieldUvarint(typ, value)
			if err != nil {
				return err
			}
			meta.AvatarPhotoIndex = ptr(uint32(v))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return meta, nil
}

// EncodeChannelMetadata serializes a channel metadata update back to wire
// bytes. Only present fields are written, preserving the decode presence
// semantics on a round trip.
func EncodeChannelMetadata(meta *ChannelMetadata) []byte {
	var buf []byte
	if meta.Title != nil {
		buf = protowire.AppendTag(buf, channelFieldTitle, protowire.BytesType)
		buf = protowire.AppendString(buf, *meta.Title)
	}
	if meta.Description != nil {
		buf = protowire.AppendTag(buf, channelFieldDescription, protowire.BytesType)
		buf = protowire.AppendString(buf, *meta.Description)
	}
	if meta.IsPublic != nil {
		buf = protowire.AppendTag(buf, channelFieldIsPublic, protowire.VarintType)
		buf = protowire.AppendVarint(buf, boolVarint(*meta.IsPublic))
	}
	if meta.Language != nil {
		buf = protowire.AppendTag(buf, channelFieldLanguage, protowire.BytesType)
		buf = protowire.AppendString(buf, *meta.Language)
	}
	if meta.CoverPhotoIndex != nil {
		buf = protowire.AppendTag(buf, channelFieldCoverPhoto, protowire.VarintType)
		buf = protowire.AppendVarint(buf, uint64(*meta.CoverPhotoIndex))
	}
	if meta.AvatarPhotoIndex != nil {
		buf = protowire.AppendTag(buf, channelFieldAvatarPhoto, protowire.VarintType)
		buf = protowire.AppendVarint(buf, uint64(*meta.AvatarPhotoIndex))
	}
	return buf
}

func boolVarint(v bool) uint64 {
	if v {
		return 1
	}
	return 0
}
