package heap

import (
	"encoding/binary"
	"math"

	"github.com/wippyai/ecs-layout/errors"
)

// Memory is a growable little-endian byte arena on the Go heap.
type Memory struct {
	data  []byte
	limit uint32
}

// NewMemory creates a zeroed memory of size bytes that may grow up to limit
// bytes. A zero limit means 4 GiB.
func NewMemory(size, limit uint32) *Memory {
	return &Memory{data: make([]byte, size), limit: limit}
}

func (m *Memory) span(offset, length uint32) ([]byte, error) {
	end := uint64(offset) + uint64(length)
	if end > uint64(len(m.data)) {
		return nil, errors.OutOfBounds(errors.PhaseStore, nil, offset, uint32(len(m.data)))
	}
	return m.data[offset:end:end], nil
}

func (m *Memory) Read(offset, length uint32) ([]byte, error) {
	return m.span(offset, length)
}

func (m *Memory) Write(offset uint32, data []byte) error {
	b, err := m.span(offset, uint32(len(data)))
	if err != nil {
		return err
	}
	copy(b, data)
	return nil
}

func (m *Memory) ReadU8(offset uint32) (uint8, error) {
	b, err := m.span(offset, 1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (m *Memory) ReadU16(offset uint32) (uint16, error) {
	b, err := m.span(offset, 2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (m *Memory) ReadU32(offset uint32) (uint32, error) {
	b, err := m.span(offset, 4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (m *Memory) ReadU64(offset uint32) (uint64, error) {
	b, err := m.span(offset, 8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

func (m *Memory) WriteU8(offset uint32, value uint8) error {
	b, err := m.span(offset, 1)
	if err != nil {
		return err
	}
	b[0] = value
	return nil
}

func (m *Memory) WriteU16(offset uint32, value uint16) error {
	b, err := m.span(offset, 2)
	if err != nil {
		return err
	}
	binary.LittleEndian.PutUint16(b, value)
	return nil
}

func (m *Memory) WriteU32(offset uint32, value uint32) error {
	b, err := m.span(offset, 4)
	if err != nil {
		return err
	}
	binary.LittleEndian.PutUint32(b, value)
	return nil
}

func (m *Memory) WriteU64(offset uint32, value uint64) error {
	b, err := m.span(offset, 8)
	if err != nil {
		return err
	}
	binary.LittleEndian.PutUint64(b, value)
	return nil
}

func (m *Memory) Size() uint32 { return uint32(len(m.data)) }

// Grow reallocates to at least minSize bytes, doubling where the limit
// allows. Views returned by Read before the call no longer alias the
// memory.
func (m *Memory) Grow(minSize uint32) error {
	if minSize <= uint32(len(m.data)) {
		return nil
	}
	limit := uint64(m.limit)
	if limit == 0 {
		limit = math.MaxUint32
	}
	if uint64(minSize) > limit {
		return errors.New(errors.PhaseStore, errors.KindAllocation).
			Value(minSize).
			Detail("heap limit %d bytes reached", limit).
			Build()
	}

	n := max(uint64(minSize), 2*uint64(len(m.data)), 64)
	n = min(n, limit)
	data := make([]byte, n)
	copy(data, m.data)
	m.data = data
	return nil
}
