package metadata

import (
	"errors"
	"testing"

	"google.golang.org/protobuf/encoding/protowire"

	apperrors "github.com/louisbranch/mediagraph/internal/platform/errors"
)

func TestDecodeChannelMetadataPresence(t *testing.T) {
	payload := EncodeChannelMetadata(&ChannelMetadata{
		Title:       ptr("Deep Field"),
		Description: ptr(""),
	})

	meta, err := DecodeChannelMetadata(payload)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if meta.Title == nil || *meta.Title != "Deep Field" {
		t.Fatalf("title = %v, want Deep Field", meta.Title)
	}
	if meta.Description == nil || *meta.Description != "" {
		t.Fatal("description should be present and empty")
	}
	if meta.Language != nil {
		t.Fatal("language should be absent")
	}
	if meta.IsPublic != nil {
		t.Fatal("isPublic should be absent")
	}
}

func TestDecodeChannelMetadataIgnoresUnknownFields(t *testing.T) {
	payload := EncodeChannelMetadata(&ChannelMetadata{Title: ptr("t")})
	payload = protowire.AppendTag(payload, 99, protowire.BytesType)
	payload = protowire.AppendString(payload, "future field")

	meta, err := DecodeChannelMetadata(payload)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if meta.Title == nil || *meta.Title != "t" {
		t.Fatalf("title = %v, want t", meta.Title)
	}
}

func TestDecodeChannelMetadataRejectsTruncatedBytes(t *testing.T) {
	payload := EncodeChannelMetadata(&ChannelMetadata{Title: ptr("truncate me")})
	_, err := DecodeChannelMetadata(payload[:len(payload)-3])
	if err == nil {
		t.Fatal("expected error for truncated payload")
	}
	if apperrors.CodeOf(err) != apperrors.CodeInvalidMetadata {
		t.Fatalf("code = %v, want %v", apperrors.CodeOf(err), apperrors.CodeInvalidMetadata)
	}
}

func TestDecodeVideoMetadataRoundTrip(t *testing.T) {
	in := &VideoMetadata{
		Title:               ptr("launch day"),
		VideoAssetIndex:     ptr(uint32(0)),
		ThumbnailAssetIndex: ptr(uint32(1)),
		Duration:            ptr(uint32(371)),
		CategoryID:          ptr(uint64(12)),
		IsExplicit:          ptr(false),
	}

	meta, err := DecodeVideoMetadata(EncodeVideoMetadata(in))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if meta.Title == nil || *meta.Title != "launch day" {
		t.Fatalf("title = %v", meta.Title)
	}
	if meta.Duration == nil || *meta.Duration != 371 {
		t.Fatalf("duration = %v", meta.Duration)
	}
	if meta.CategoryID == nil || *meta.CategoryID != 12 {
		t.Fatalf("category = %v", meta.CategoryID)
	}
	if meta.IsExplicit == nil || *meta.IsExplicit != false {
		t.Fatal("isExplicit should be present and false")
	}
	if meta.Description != nil || meta.Language != nil || meta.IsPublic != nil {
		t.Fatal("absent fields must stay nil")
	}
}

func TestDecodeOwnerRemark(t *testing.T) {
	tests := []struct {
		name   string
		remark *OwnerRemark
	}{
		{"pin comment", &OwnerRemark{PinOrUnpinComment: &PinOrUnpinComment{VideoID: "8", CommentID: "c-1", Option: PinOptionPin}}},
		{"unpin comment", &OwnerRemark{PinOrUnpinComment: &PinOrUnpinComment{VideoID: "8", CommentID: "c-1", Option: PinOptionUnpin}}},
		{"ban member", &OwnerRemark{BanOrUnbanMember: &BanOrUnbanMember{MemberID: "44", Option: BanOptionBan}}},
		{"unban member", &OwnerRemark{BanOrUnbanMember: &BanOrUnbanMember{MemberID: "44", Option: BanOptionUnban}}},
		{"reactions", &OwnerRemark{VideoReactionsPreference: &VideoReactionsPreference{VideoID: "3", Option: ReactionsOptionDisable}}},
		{"moderate comment", &OwnerRemark{ModerateComment: &ModerateComment{CommentID: "c-2", Rationale: "spam"}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := DecodeOwnerRemark(EncodeOwnerRemark(tc.remark))
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if !ownerRemarksEqual(got, tc.remark) {
				t.Fatalf("got %+v, want %+v", got, tc.remark)
			}
		})
	}
}

func TestDecodeOwnerRemarkUnsupported(t *testing.T) {
	var payload []byte
	payload = protowire.AppendTag(payload, 50, protowire.BytesType)
	payload = protowire.AppendBytes(payload, []byte{0x08, 0x01})

	_, err := DecodeOwnerRemark(payload)
	if err == nil {
		t.Fatal("expected error for unsupported remark")
	}
	if !errors.Is(err, apperrors.New(apperrors.CodeInvalidMetadata, "")) {
		t.Fatalf("expected INVALID_METADATA, got %v", err)
	}
}

func TestDecodeModeratorRemark(t *testing.T) {
	payload := EncodeModeratorRemark(&ModeratorRemark{
		ModerateComment: &ModerateComment{CommentID: "c-9", Rationale: "off topic"},
	})
	got, err := DecodeModeratorRemark(payload)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.ModerateComment == nil || got.ModerateComment.CommentID != "c-9" || got.ModerateComment.Rationale != "off topic" {
		t.Fatalf("got %+v", got.ModerateComment)
	}

	if _, err := DecodeModeratorRemark(nil); err == nil {
		t.Fatal("expected error for empty moderator remark")
	}
}

func ownerRemarksEqual(a, b *OwnerRemark) bool {
	switch {
	case a.PinOrUnpinComment != nil && b.PinOrUnpinComment != nil:
		return *a.PinOrUnpinComment == *b.PinOrUnpinComment
	case a.BanOrUnbanMember != nil && b.BanOrUnbanMember != nil:
		return *a.BanOrUnbanMember == *b.BanOrUnbanMember
	case a.VideoReactionsPreference != nil && b.VideoReactionsPreference != nil:
		return *a.VideoReactionsPreference == *b.VideoReactionsPreference
	case a.ModerateComment != nil && b.ModerateComment != nil:
		return *a.ModerateComment == *b.ModerateComment
	}
	return false
}
