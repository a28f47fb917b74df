// Package metadata decodes and encodes the binary protocol buffer payloads
// attached to content events: channel metadata, video metadata, and the
// metaprotocol remark messages. Decoding works directly on the wire format,
// skips unknown future fields, and reports structurally invalid bytes as
// InvalidMetadata.
//
// All decoded structs use pointer fields to carry presence: a nil pointer
// means the field was absent on the wire and the existing value must be
// kept, a pointer to the zero value means the field was present and empty
// and the existing value must be cleared.
package metadata

import (
	"google.golang.org/protobuf/encoding/protowire"

	apperrors "github.com/louisbranch/mediagraph/internal/platform/errors"
)

func invalid(message string) error {
	return apperrors.New(apperrors.CodeInvalidMetadata, message)
}

func invalidWire(err error) error {
	return apperrors.Wrap(apperrors.CodeInvalidMetadata, "malformed metadata bytes", err)
}

// rangeFields walks every top-level field of a wire-encoded message and
// hands the field number, wire type, and raw value window to visit. Fields
// the visitor does not recognize are simply skipped by it.
func rangeFields(buf []byte, visit func(num protowire.Number, typ protowire.Type, value []byte) error) error {
	for len(buf) > 0 {
		num, typ, n := protowire.ConsumeTag(buf)
		if n < 0 {
			return invalidWire(protowire.ParseError(n))
		}
		buf = buf[n:]
		size := protowire.ConsumeFieldValue(num, typ, buf)
		if size < 0 {
			return invalidWire(protowire.ParseError(size))
		}
		if err := visit(num, typ, buf[:size]); err != nil {
			return err
		}
		buf = buf[size:]
	}
	return nil
}

func fieldString(typ protowire.Type, value []byte) (string, error) {
	if typ != protowire.BytesType {
		return "", invalid("expected length-delimited field")
	}
	v, n := protowire.ConsumeBytes(value)
	if n < 0 {
		return "", invalidWire(protowire.ParseError(n))
	}
	return string(v), nil
}

func fieldBytes(typ protowire.Type, value []byte) ([]byte, error) {
	if typ != protowire.BytesType {
		return nil, invalid("expected length-delimited field")
	}
	v, n := protowire.ConsumeBytes(value)
	if n < 0 {
		return nil, invalidWire(protowire.ParseError(n))
	}
	return v, nil
}

func fieldUvarint(typ protowire.Type, value []byte) (uint64, error) {
	if typ != protowire.VarintType {
		return 0, invalid("expected varint field")
	}
	v, n := protowire.ConsumeVarint(value)
	if n < 0 {
		return 0, invalidWire(protowire.ParseError(n))
	}
	return v, nil
}

func fieldBool(typ protowire.Type, value []byte) (bool, error) {
	v, err := fieldUvarint(typ, value)
	if err != nil {
		return false, err
	}
	return v != 0, nil
}

func ptr[T any](v T) *T { return &v }
