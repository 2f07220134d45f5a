package linear

import (
	"github.com/tetratelabs/wazero/api"
	"github.com/wippyai/ecs-layout/errors"
)

// PageSize is the wasm page size in bytes.
const PageSize = 65536

// Memory adapts a wazero linear memory to ecslayout.Memory.
type Memory struct {
	mem api.Memory
}

// NewMemory wraps mem. The store built on it allocates from address 8
// upward, so mem must not be shared with a guest's own allocator.
func NewMemory(mem api.Memory) *Memory {
	return &Memory{mem: mem}
}

func oob(offset, length uint32, size uint32) error {
	return errors.New(errors.PhaseStore, errors.KindOutOfBounds).
		Value(offset).
		Detail("linear memory access at %d+%d out of bounds (size %d)", offset, length, size).
		Build()
}

func (m *Memory) Read(offset, length uint32) ([]byte, error) {
	data, ok := m.mem.Read(offset, length)
	if !ok {
		return nil, oob(offset, length, m.mem.Size())
	}
	return data, nil
}

func (m *Memory) Write(offset uint32, data []byte) error {
	if !m.mem.Write(offset, data) {
		return oob(offset, uint32(len(data)), m.mem.Size())
	}
	return nil
}

func (m *Memory) ReadU8(offset uint32) (uint8, error) {
	v, ok := m.mem.ReadByte(offset)
	if !ok {
		return 0, oob(offset, 1, m.mem.Size())
	}
	return v, nil
}

func (m *Memory) ReadU16(offset uint32) (uint16, error) {
	v, ok := m.mem.ReadUint16Le(offset)
	if !ok {
		return 0, oob(offset, 2, m.mem.Size())
	}
	return v, nil
}

func (m *Memory) ReadU32(offset uint32) (uint32, error) {
	v, ok := m.mem.ReadUint32Le(offset)
	if !ok {
		return 0, oob(offset, 4, m.mem.Size())
	}
	return v, nil
}

func (m *Memory) ReadU64(offset uint32) (uint64, error) {
	v, ok := m.mem.ReadUint64Le(offset)
	if !ok {
		return 0, oob(offset, 8, m.mem.Size())
	}
	return v, nil
}

func (m *Memory) WriteU8(offset uint32, value uint8) error {
	if !m.mem.WriteByte(offset, value) {
		return oob(offset, 1, m.mem.Size())
	}
	return nil
}

func (m *Memory) WriteU16(offset uint32, value uint16) error {
	if !m.mem.WriteUint16Le(offset, value) {
		return oob(offset, 2, m.mem.Size())
	}
	return nil
}

func (m *Memory) WriteU32(offset uint32, value uint32) error {
	if !m.mem.WriteUint32Le(offset, value) {
		return oob(offset, 4, m.mem.Size())
	}
	return nil
}

func (m *Memory) WriteU64(offset uint32, value uint64) error {
	if !m.mem.WriteUint64Le(offset, value) {
		return oob(offset, 8, m.mem.Size())
	}
	return nil
}

func (m *Memory) Size() uint32 {
	if m.mem == nil {
		return 0
	}
	return m.mem.Size()
}

// Grow adds whole pages until the memory holds minSize bytes.
func (m *Memory) Grow(minSize uint32) error {
	size := m.mem.Size()
	if minSize <= size {
		return nil
	}
	want := (uint64(minSize) + PageSize - 1) / PageSize
	have := uint64(size) / PageSize
	if _, ok := m.mem.Grow(uint32(want - have)); !ok {
		return errors.New(errors.PhaseStore, errors.KindAllocation).
			Value(minSize).
			Detail("linear memory cannot grow by %d pages", want-have).
			Build()
	}
	return nil
}
