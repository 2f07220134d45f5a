// Package accessor generates per-field read and write operations.
//
// Each operation is a pass-through to the Members primitive for the
// field's tag at the field's planned offset. Nothing is cached and the
// handle is not checked; callers must only pass attached handles.
//
// Two flavours are generated from the same schema:
//
//	acc := accessor.Generate(s)          // dynamic, type-checked, any values
//	x := accessor.MustFor[uint32](s, "x") // typed, bound once
//	x.Set(members, h, 10)
//
// Text and sequence values are moved into the store on write; the store
// releases the previous payload before the write returns. Reads return a
// copy the caller owns. Sequences travel as little-endian element bytes.
package accessor
