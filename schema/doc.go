// Package schema classifies field types and plans record layouts.
//
// A record is an ordered list of named, typed fields. Classify maps each Go
// type to a one-byte Tag plus size and alignment; the planner then walks the
// fields in declaration order, aligning a running cursor before each one:
//
//	offset = (cursor + align - 1) &^ (align - 1)
//	cursor = offset + size
//
// Alignment always equals size and every size is a power of two. No
// trailing padding is added, so Size is the end of the last field.
//
// # Type Mapping
//
//	Go type                       Tag      Size
//	uint8 .. uint64               U8..U64  1, 2, 4, 8
//	int8 .. int64                 I8..I64  1, 2, 4, 8
//	float32, float64              F32, F64 4, 8
//	bool                          Bool     1
//	ecslayout.Pointer, EntityID   Pointer  8
//	string                        String   pointer width
//	[]T (T fixed-size)            Pointer  pointer width
//
// Text and sequence fields hold a pointer-width reference to a payload
// owned by the store. Planning the same record under Width32 and Width64
// yields the same offsets until the first such field.
//
// # Declaring Records
//
// From a struct, with the field name taken from the `ecs` tag:
//
//	type Position struct {
//	    X uint32 `ecs:"x"`
//	    Y uint32 `ecs:"y"`
//	}
//	s, err := schema.Compile[Position](schema.TargetWidth)
//
// Or explicitly:
//
//	s, err := schema.Declare("Position", []schema.Decl{
//	    schema.Field[uint32]("x"),
//	    schema.Field[uint32]("y"),
//	}, schema.Width64)
//
// FromWIT and FromTags build the same schema from a WIT record or from
// registration metadata.
package schema
