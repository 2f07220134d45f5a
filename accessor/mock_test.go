package accessor

import (
	"encoding/binary"
	"math"

	ecslayout "github.com/wippyai/ecs-layout"
)

// mockMembers implements ecslayout.Members over one byte block per handle.
// Text and sequence slots hold an 8-byte key into a payload table.
type mockMembers struct {
	blocks   map[ecslayout.Handle][]byte
	payloads map[uint64][]byte
	next     uint64
	frees    int
}

func newMockMembers() *mockMembers {
	return &mockMembers{
		blocks:   make(map[ecslayout.Handle][]byte),
		payloads: make(map[uint64][]byte),
	}
}

func (m *mockMembers) block(h ecslayout.Handle, size uint32) {
	m.blocks[h] = make([]byte, size)
}

func (m *mockMembers) GetU8(h ecslayout.Handle, off uint32) uint8 { return m.blocks[h][off] }
func (m *mockMembers) GetU16(h ecslayout.Handle, off uint32) uint16 {
	return binary.LittleEndian.Uint16(m.blocks[h][off:])
}
func (m *mockMembers) GetU32(h ecslayout.Handle, off uint32) uint32 {
	return binary.LittleEndian.Uint32(m.blocks[h][off:])
}
func (m *mockMembers) GetU64(h ecslayout.Handle, off uint32) uint64 {
	return binary.LittleEndian.Uint64(m.blocks[h][off:])
}
func (m *mockMembers) GetI8(h ecslayout.Handle, off uint32) int8   { return int8(m.GetU8(h, off)) }
func (m *mockMembers) GetI16(h ecslayout.Handle, off uint32) int16 { return int16(m.GetU16(h, off)) }
func (m *mockMembers) GetI32(h ecslayout.Handle, off uint32) int32 { return int32(m.GetU32(h, off)) }
func (m *mockMembers) GetI64(h ecslayout.Handle, off uint32) int64 { return int64(m.GetU64(h, off)) }
func (m *mockMembers) GetF32(h ecslayout.Handle, off uint32) float32 {
	return math.Float32frombits(m.GetU32(h, off))
}
func (m *mockMembers) GetF64(h ecslayout.Handle, off uint32) float64 {
	return math.Float64frombits(m.GetU64(h, off))
}
func (m *mockMembers) GetBool(h ecslayout.Handle, off uint32) bool      { return m.GetU8(h, off) != 0 }
func (m *mockMembers) GetPointer(h ecslayout.Handle, off uint32) uint64 { return m.GetU64(h, off) }

func (m *mockMembers) SetU8(h ecslayout.Handle, off uint32, v uint8) { m.blocks[h][off] = v }
func (m *mockMembers) SetU16(h ecslayout.Handle, off uint32, v uint16) {
	binary.LittleEndian.PutUint16(m.blocks[h][off:], v)
}
func (m *mockMembers) SetU32(h ecslayout.Handle, off uint32, v uint32) {
	binary.LittleEndian.PutUint32(m.blocks[h][off:], v)
}
func (m *mockMembers) SetU64(h ecslayout.Handle, off uint32, v uint64) {
	binary.LittleEndian.PutUint64(m.blocks[h][off:], v)
}
func (m *mockMembers) SetI8(h ecslayout.Handle, off uint32, v int8)   { m.SetU8(h, off, uint8(v)) }
func (m *mockMembers) SetI16(h ecslayout.Handle, off uint32, v int16) { m.SetU16(h, off, uint16(v)) }
func (m *mockMembers) SetI32(h ecslayout.Handle, off uint32, v int32) { m.SetU32(h, off, uint32(v)) }
func (m *mockMembers) SetI64(h ecslayout.Handle, off uint32, v int64) { m.SetU64(h, off, uint64(v)) }
func (m *mockMembers) SetF32(h ecslayout.Handle, off uint32, v float32) {
	m.SetU32(h, off, math.Float32bits(v))
}
func (m *mockMembers) SetF64(h ecslayout.Handle, off uint32, v float64) {
	m.SetU64(h, off, math.Float64bits(v))
}
func (m *mockMembers) SetBool(h ecslayout.Handle, off uint32, v bool) {
	var b uint8
	if v {
		b = 1
	}
	m.SetU8(h, off, b)
}
func (m *mockMembers) SetPointer(h ecslayout.Handle, off uint32, v uint64) { m.SetU64(h, off, v) }

func (m *mockMembers) GetString(h ecslayout.Handle, off uint32) string {
	return string(m.payloads[m.GetU64(h, off)])
}

func (m *mockMembers) SetString(h ecslayout.Handle, off uint32, s string) {
	m.SetList(h, off, []byte(s))
}

func (m *mockMembers) GetList(h ecslayout.Handle, off uint32) []byte {
	p := m.payloads[m.GetU64(h, off)]
	if len(p) == 0 {
		return nil
	}
	out := make([]byte, len(p))
	copy(out, p)
	return out
}

func (m *mockMembers) SetList(h ecslayout.Handle, off uint32, data []byte) {
	if old := m.GetU64(h, off); old != 0 {
		delete(m.payloads, old)
		m.frees++
	}
	if len(data) == 0 {
		m.SetU64(h, off, 0)
		return
	}
	m.next++
	m.payloads[m.next] = data
	m.SetU64(h, off, m.next)
}
