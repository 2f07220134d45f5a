package ecslayout

// Handle is an opaque reference to a component's backing descriptor.
// Handle 0 is reserved and always invalid.
type Handle uint32

// TypeID identifies a registered component kind. 0 is never assigned.
type TypeID uint64

// EntityID identifies an entity in the external store.
type EntityID uint64

// Pointer is a 64-bit opaque handle stored inline in a component.
type Pointer uint64

// Members is the fixed family of raw get/set-member primitives. Every
// method addresses the block behind h at a byte offset planned by the
// schema package. Implementations may panic on an invalid handle; callers
// must never pass one.
type Members interface {
	GetU8(h Handle, offset uint32) uint8
	GetU16(h Handle, offset uint32) uint16
	GetU32(h Handle, offset uint32) uint32
	GetU64(h Handle, offset uint32) uint64
	GetI8(h Handle, offset uint32) int8
	GetI16(h Handle, offset uint32) int16
	GetI32(h Handle, offset uint32) int32
	GetI64(h Handle, offset uint32) int64
	GetF32(h Handle, offset uint32) float32
	GetF64(h Handle, offset uint32) float64
	GetBool(h Handle, offset uint32) bool
	GetPointer(h Handle, offset uint32) uint64

	SetU8(h Handle, offset uint32, v uint8)
	SetU16(h Handle, offset uint32, v uint16)
	SetU32(h Handle, offset uint32, v uint32)
	SetU64(h Handle, offset uint32, v uint64)
	SetI8(h Handle, offset uint32, v int8)
	SetI16(h Handle, offset uint32, v int16)
	SetI32(h Handle, offset uint32, v int32)
	SetI64(h Handle, offset uint32, v int64)
	SetF32(h Handle, offset uint32, v float32)
	SetF64(h Handle, offset uint32, v float64)
	SetBool(h Handle, offset uint32, v bool)
	SetPointer(h Handle, offset uint32, v uint64)

	// GetString returns a copy of the text payload referenced at offset.
	GetString(h Handle, offset uint32) string
	// SetString moves s into the store and releases the previous payload.
	SetString(h Handle, offset uint32, s string)

	// GetList returns a copy of the sequence payload bytes referenced at offset.
	GetList(h Handle, offset uint32) []byte
	// SetList moves data into the store and releases the previous payload.
	// The caller must not modify data after the call.
	SetList(h Handle, offset uint32, data []byte)
}

// Releaser releases a descriptor handle. Releasing an already released
// handle reports false and has no effect.
type Releaser interface {
	Release(h Handle) bool
}

// Allocator allocates blocks in a store's address space.
type Allocator interface {
	Alloc(size, align uint32) (uint32, error)
	Free(ptr, size, align uint32)
}

// Memory is a flat little-endian address space backing a store. Read
// returns a view that is only valid until the next Grow.
type Memory interface {
	Read(offset, length uint32) ([]byte, error)
	Write(offset uint32, data []byte) error
	ReadU8(offset uint32) (uint8, error)
	ReadU16(offset uint32) (uint16, error)
	ReadU32(offset uint32) (uint32, error)
	ReadU64(offset uint32) (uint64, error)
	WriteU8(offset uint32, value uint8) error
	WriteU16(offset uint32, value uint16) error
	WriteU32(offset uint32, value uint32) error
	WriteU64(offset uint32, value uint64) error

	// Size returns the current size in bytes.
	Size() uint32
	// Grow extends the memory to at least minSize bytes. New bytes are zero.
	Grow(minSize uint32) error
}
