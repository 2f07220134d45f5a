package schema

import "github.com/wippyai/ecs-layout/schema/internal/tag"

// Tag is the one-byte type discriminator sent to the component registry.
type Tag = tag.Tag

const (
	TagU8      = tag.U8
	TagU16     = tag.U16
	TagU32     = tag.U32
	TagU64     = tag.U64
	TagI8      = tag.I8
	TagI16     = tag.I16
	TagI32     = tag.I32
	TagI64     = tag.I64
	TagF32     = tag.F32
	TagF64     = tag.F64
	TagBool    = tag.Bool
	TagString  = tag.String
	TagPointer = tag.Pointer
)

// TagCount is the number of tags in the closed set.
const TagCount = tag.Count

// ParseTag returns the tag with the given name ("u8", "string", ...).
func ParseTag(s string) (Tag, bool) {
	return tag.Parse(s)
}

// Repr says how a field's slot is interpreted.
type Repr = tag.Repr

const (
	ReprScalar   = tag.ReprScalar
	ReprHandle   = tag.ReprHandle
	ReprText     = tag.ReprText
	ReprSequence = tag.ReprSequence
)
