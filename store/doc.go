// Package store provides a reference implementation of the external
// entity/component store that component records are attached to.
//
// A Store owns a flat Memory, an Arena allocating component blocks and
// payloads inside it, and a resource.Table mapping record handles to
// those blocks. It implements ecslayout.Members, so generated accessors
// read and write fields at their planned offsets directly in the memory.
//
// Text and sequence fields hold a slot of Width bytes with the address of
// a payload: a u32 byte length followed by the bytes. Address 0 means
// empty. Writing such a field copies the value into a new payload and
// frees the previous one before returning; releasing a record frees its
// block and every payload it references.
//
// Member primitives have no error return. An access through a dead
// handle, out of a block's bounds or failing to allocate panics with an
// *errors.Error.
//
// Concrete memories live in subpackages: heap (a Go byte slice, width 4
// or 8) and linear (a wazero wasm32 linear memory, width 4).
package store
