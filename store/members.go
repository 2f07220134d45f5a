package store

import (
	"math"
	"slices"

	ecslayout "github.com/wippyai/ecs-layout"
)

func (s *Store) load8(h ecslayout.Handle, off uint32) uint8 {
	addr := s.resolve(h, off, 1)
	s.memMu.RLock()
	defer s.memMu.RUnlock()
	v, err := s.mem.ReadU8(addr)
	check(err)
	return v
}

func (s *Store) load16(h ecslayout.Handle, off uint32) uint16 {
	addr := s.resolve(h, off, 2)
	s.memMu.RLock()
	defer s.memMu.RUnlock()
	v, err := s.mem.ReadU16(addr)
	check(err)
	return v
}

func (s *Store) load32(h ecslayout.Handle, off uint32) uint32 {
	addr := s.resolve(h, off, 4)
	s.memMu.RLock()
	defer s.memMu.RUnlock()
	v, err := s.mem.ReadU32(addr)
	check(err)
	return v
}

func (s *Store) load64(h ecslayout.Handle, off uint32) uint64 {
	addr := s.resolve(h, off, 8)
	s.memMu.RLock()
	defer s.memMu.RUnlock()
	v, err := s.mem.ReadU64(addr)
	check(err)
	return v
}

// Scalar writes take the read lock: they never move memory, and a record
// is only written by one goroutine at a time.

func (s *Store) store8(h ecslayout.Handle, off uint32, v uint8) {
	addr := s.resolve(h, off, 1)
	s.memMu.RLock()
	defer s.memMu.RUnlock()
	check(s.mem.WriteU8(addr, v))
}

func (s *Store) store16(h ecslayout.Handle, off uint32, v uint16) {
	addr := s.resolve(h, off, 2)
	s.memMu.RLock()
	defer s.memMu.RUnlock()
	check(s.mem.WriteU16(addr, v))
}

func (s *Store) store32(h ecslayout.Handle, off uint32, v uint32) {
	addr := s.resolve(h, off, 4)
	s.memMu.RLock()
	defer s.memMu.RUnlock()
	check(s.mem.WriteU32(addr, v))
}

func (s *Store) store64(h ecslayout.Handle, off uint32, v uint64) {
	addr := s.resolve(h, off, 8)
	s.memMu.RLock()
	defer s.memMu.RUnlock()
	check(s.mem.WriteU64(addr, v))
}

func (s *Store) GetU8(h ecslayout.Handle, off uint32) uint8   { return s.load8(h, off) }
func (s *Store) GetU16(h ecslayout.Handle, off uint32) uint16 { return s.load16(h, off) }
func (s *Store) GetU32(h ecslayout.Handle, off uint32) uint32 { return s.load32(h, off) }
func (s *Store) GetU64(h ecslayout.Handle, off uint32) uint64 { return s.load64(h, off) }
func (s *Store) GetI8(h ecslayout.Handle, off uint32) int8    { return int8(s.load8(h, off)) }
func (s *Store) GetI16(h ecslayout.Handle, off uint32) int16  { return int16(s.load16(h, off)) }
func (s *Store) GetI32(h ecslayout.Handle, off uint32) int32  { return int32(s.load32(h, off)) }
func (s *Store) GetI64(h ecslayout.Handle, off uint32) int64  { return int64(s.load64(h, off)) }
func (s *Store) GetF32(h ecslayout.Handle, off uint32) float32 {
	return math.Float32frombits(s.load32(h, off))
}
func (s *Store) GetF64(h ecslayout.Handle, off uint32) float64 {
	return math.Float64frombits(s.load64(h, off))
}
func (s *Store) GetBool(h ecslayout.Handle, off uint32) bool      { return s.load8(h, off) != 0 }
func (s *Store) GetPointer(h ecslayout.Handle, off uint32) uint64 { return s.load64(h, off) }

func (s *Store) SetU8(h ecslayout.Handle, off uint32, v uint8)   { s.store8(h, off, v) }
func (s *Store) SetU16(h ecslayout.Handle, off uint32, v uint16) { s.store16(h, off, v) }
func (s *Store) SetU32(h ecslayout.Handle, off uint32, v uint32) { s.store32(h, off, v) }
func (s *Store) SetU64(h ecslayout.Handle, off uint32, v uint64) { s.store64(h, off, v) }
func (s *Store) SetI8(h ecslayout.Handle, off uint32, v int8)    { s.store8(h, off, uint8(v)) }
func (s *Store) SetI16(h ecslayout.Handle, off uint32, v int16)  { s.store16(h, off, uint16(v)) }
func (s *Store) SetI32(h ecslayout.Handle, off uint32, v int32)  { s.store32(h, off, uint32(v)) }
func (s *Store) SetI64(h ecslayout.Handle, off uint32, v int64)  { s.store64(h, off, uint64(v)) }
func (s *Store) SetF32(h ecslayout.Handle, off uint32, v float32) {
	s.store32(h, off, math.Float32bits(v))
}
func (s *Store) SetF64(h ecslayout.Handle, off uint32, v float64) {
	s.store64(h, off, math.Float64bits(v))
}
func (s *Store) SetBool(h ecslayout.Handle, off uint32, v bool) {
	var b uint8
	if v {
		b = 1
	}
	s.store8(h, off, b)
}
func (s *Store) SetPointer(h ecslayout.Handle, off uint32, v uint64) { s.store64(h, off, v) }

// GetString returns a copy of the text payload, or "" for an empty slot.
func (s *Store) GetString(h ecslayout.Handle, off uint32) string {
	addr := s.resolve(h, off, uint32(s.width))
	s.memMu.RLock()
	defer s.memMu.RUnlock()
	p, err := s.readSlot(addr)
	check(err)
	data, err := s.payload(p)
	check(err)
	return string(data)
}

// SetString copies str into a new payload and frees the previous one.
func (s *Store) SetString(h ecslayout.Handle, off uint32, str string) {
	addr := s.resolve(h, off, uint32(s.width))
	if err := s.storePayload(addr, []byte(str)); err != nil {
		panic(err)
	}
}

// GetList returns a copy of the sequence payload, or nil for an empty slot.
func (s *Store) GetList(h ecslayout.Handle, off uint32) []byte {
	addr := s.resolve(h, off, uint32(s.width))
	s.memMu.RLock()
	defer s.memMu.RUnlock()
	p, err := s.readSlot(addr)
	check(err)
	data, err := s.payload(p)
	check(err)
	return slices.Clone(data)
}

// SetList copies data into a new payload and frees the previous one.
func (s *Store) SetList(h ecslayout.Handle, off uint32, data []byte) {
	addr := s.resolve(h, off, uint32(s.width))
	if err := s.storePayload(addr, data); err != nil {
		panic(err)
	}
}
