package metadata

import "google.golang.org/protobuf/encoding/protowire"

// Video metadata wire schema.
const (
	videoFieldTitle       = 1
	videoFieldDescription = 2
	videoFieldVideoAsset  = 3
	videoFieldThumbnail   = 4
	videoFieldDuration    = 5
	videoFieldLanguage    = 6
	videoFieldCategory    = 7
	videoFieldIsPublic    = 8
	videoFieldIsExplicit  = 9
)

// VideoMetadata is a decoded video metadata update. VideoAssetIndex and
// ThumbnailAssetIndex point into the asset list delivered alongside the
// event. CategoryID zero clears the category assignment.
type VideoMetadata struct {
	Title               *string
	Description         *string
	VideoAssetIndex     *uint32
	ThumbnailAssetIndex *uint32
	Duration            *uint32
	Language            *string
	CategoryID          *uint64
	IsPublic            *bool
	IsExplicit          *bool
}

// DecodeVideoMetadata parses wire bytes into a video metadata update,
// ignoring unknown fields.
func DecodeVideoMetadata(buf []byte) (*VideoMetadata, error) {
	meta := &VideoMetadata{}
	err := rangeFields(buf, func(num protowire.Number, typ protowire.Type, value []byte) error {
		switch num {
		case videoFieldTitle:
			v, err := fieldString(typ, value)
			if err != nil {
				return err
			}
			meta.Title = &v
		case videoFieldDescription:
			v, err := fieldString(typ, value)
			if err != nil {
				return err
			}
			meta.Description = &v
		case videoFieldVideoAsset:
			v, err := fieldUvarint(typ, value)
			if err != nil {
				return err
			}
			meta.VideoAssetIndex = ptr(uint32(v))
		case videoFieldThumbnail:
			v, err := fieldUvarint(typ, value)
			if err != nil {
				return err
			}
			meta.ThumbnailAssetIndex = ptr(uint32(v))
		case videoFieldDuration:
			v, err := fieldUvarint(typ, value)
			if err != nil {
				return err
			}
			meta.Duration = ptr(uint32(v))
		case videoFieldLanguage:
			v, err := fieldString(typ, value)
			if err != nil {
				return err
			}
			meta.Language = &v
		case videoFieldCategory:
			v, err := fieldUvarint(typ, value)
			if err != nil {
				return err
			}
			meta.CategoryID = &v
		case videoFieldIsPublic:
			v, err := fieldBool(typ, value)
			if err != nil {
				return err
			}
			meta.IsPublic = &v
		case videoFieldIsExplicit:
			v, err := fieldBool(typ, value)
			if err != nil {
				return err
			}
			meta.IsExplicit = &v
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return meta, nil
}

// EncodeVideoMetadata serializes a video metadata update back to wire bytes.
func EncodeVideoMetadata(meta *VideoMetadata) []byte {
	var buf []byte
	if meta.Title != nil {
		buf = protowire.AppendTag(buf, videoFieldTitle, protowire.BytesType)
		buf = protowire.AppendString(buf, *meta.Title)
	}
	if meta.Description != nil {
		buf = protowire.AppendTag(buf, videoFieldDescription, protowire.BytesType)
		buf = protowire.AppendString(buf, *meta.Description)
	}
	if meta.VideoAssetIndex != nil {
		buf = protowire.AppendTag(buf, videoFieldVideoAsset, protowire.VarintType)
		buf = protowire.AppendVarint(buf, uint64(*meta.VideoAssetIndex))
	}
	if meta.ThumbnailAssetIndex != nil {
		buf = protowire.AppendTag(buf, videoFieldThumbnail, protowire.VarintType)
		buf = protowire.AppendVarint(buf, uint64(*meta.ThumbnailAssetIndex))
	}
	if meta.Duration != nil {
		buf = protowire.AppendTag(buf, videoFieldDuration, protowire.VarintType)
		buf = protowire.AppendVarint(buf, uint64(*meta.Duration))
	}
	if meta.Language != nil {
		buf = protowire.AppendTag(buf, videoFieldLanguage, protowire.BytesType)
		buf = protowire.AppendString(buf, *meta.Language)
	}
	if meta.CategoryID != nil {
		buf = protowire.AppendTag(buf, videoFieldCategory, protowire.VarintType)
		buf = protowire.AppendVarint(buf, *meta.CategoryID)
	}
	if meta.IsPublic != nil {
		buf = protowire.AppendTag(buf, videoFieldIsPublic, protowire.VarintType)
		buf = protowire.AppendVarint(buf, boolVarint(*meta.IsPublic))
	}
	if meta.IsExplicit != nil {
		buf = protowire.AppendTag(buf, videoFieldIsExplicit, protowire.VarintType)
		buf = protowire.AppendVarint(buf, boolVarint(*meta.IsExplicit))
	}
	return buf
}
