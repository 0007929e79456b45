package transport

import (
	"fmt"
	"math"

	"google.golang.org/protobuf/encoding/protowire"
)

// Field numbers of the PositionUpdate message, see position.proto
const (
	fieldSeq protowire.Number = 1
	fieldX   protowire.Number = 2
	fieldY   protowire.Number = 3
	fieldZ   protowire.Number = 4
)

// PositionUpdate is the message sent to the peer when the cube moves
type PositionUpdate struct {
	Seq     uint32
	X, Y, Z float32
}

// Marshal encodes the update in protobuf wire format
func (u PositionUpdate) Marshal() []byte {
	b := make([]byte, 0, 24)
	b = protowire.AppendTag(b, fieldSeq, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(u.Seq))
	b = appendFloat(b, fieldX, u.X)
	b = appendFloat(b, fieldY, u.Y)
	b = appendFloat(b, fieldZ, u.Z)
	return b
}

func appendFloat(b []byte, num protowire.Number, v float32) []byte {
	b = protowire.AppendTag(b, num, protowire.Fixed32Type)
	return protowire.AppendFixed32(b, math.Float32bits(v))
}

// UnmarshalPositionUpdate decodes an update. Unknown fields are skipped and
// missing fields read as zero.
func UnmarshalPositionUpdate(b []byte) (PositionUpdate, error) {
	var u PositionUpdate
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return PositionUpdate{}, fmt.Errorf("decode tag: %w", protowire.ParseError(n))
		}
		b = b[n:]

		switch {
		case num == fieldSeq && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return PositionUpdate{}, fmt.Errorf("decode seq: %w", protowire.ParseError(n))
			}
			u.Seq = uint32(v)
			b = b[n:]
		case (num == fieldX || num == fieldY || num == fieldZ) && typ == protowire.Fixed32Type:
			v, n := protowire.ConsumeFixed32(b)
			if n < 0 {
				return PositionUpdate{}, fmt.Errorf("decode field %d: %w", num, protowire.ParseError(n))
			}
			f := math.Float32frombits(v)
			switch num {
			case fieldX:
				u.X = f
			case fieldY:
				u.Y = f
			case fieldZ:
				u.Z = f
			}
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return PositionUpdate{}, fmt.Errorf("skip field %d: %w", num, protowire.ParseError(n))
			}
			b = b[n:]
		}
	}
	return u, nil
}

// SequenceFilter drops updates older than the newest one seen from a
// source. Sequence numbers may wrap around.
type SequenceFilter struct {
	last map[string]uint32
}

// NewSequenceFilter creates an empty filter
func NewSequenceFilter() *SequenceFilter {
	return &SequenceFilter{last: make(map[string]uint32)}
}

// Accept reports whether seq from source is newer than anything seen before
func (f *SequenceFilter) Accept(source string, seq uint32) bool {
	last, seen := f.last[source]
	if seen && int32(seq-last) <= 0 {
		return false
	}
	f.last[source] = seq
	return true
}
