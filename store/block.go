package store

import (
	ecslayout "github.com/wippyai/ecs-layout"
	"github.com/wippyai/ecs-layout/errors"
	"github.com/wippyai/ecs-layout/record"
	"github.com/wippyai/ecs-layout/schema"
	"go.uber.org/zap"
)

// payloadAlign is the alignment of text and sequence payloads. A payload
// is a u32 byte length followed by the bytes.
const payloadAlign = 4

// block is the descriptor behind a record handle.
type block struct {
	store  *Store
	layout *schema.Schema
	rec    *record.Record
	entity ecslayout.EntityID
	typeID ecslayout.TypeID
	addr   uint32
}

// Drop frees the block and every payload its slots reference.
func (b *block) Drop() {
	s := b.store
	s.memMu.Lock()
	defer s.memMu.Unlock()

	for _, f := range b.layout.Fields() {
		if !f.Repr.Indirect() {
			continue
		}
		p, err := s.readSlot(b.addr + f.Offset)
		if err != nil {
			Logger().Warn("payload slot unreadable on release",
				zap.String("component", b.layout.Name()),
				zap.String("field", f.Name),
				zap.Error(err))
			continue
		}
		s.freePayload(p)
	}
	s.arena.Free(b.addr, b.layout.Size(), b.layout.Align())
}

func (s *Store) readSlot(addr uint32) (uint32, error) {
	if s.width == schema.Width32 {
		return s.mem.ReadU32(addr)
	}
	v, err := s.mem.ReadU64(addr)
	return uint32(v), err
}

func (s *Store) writeSlot(addr, p uint32) error {
	if s.width == schema.Width32 {
		return s.mem.WriteU32(addr, p)
	}
	return s.mem.WriteU64(addr, uint64(p))
}

// payload returns a view of the payload at p. The view is valid until the
// memory lock is released.
func (s *Store) payload(p uint32) ([]byte, error) {
	if p == 0 {
		return nil, nil
	}
	n, err := s.mem.ReadU32(p)
	if err != nil {
		return nil, err
	}
	return s.mem.Read(p+4, n)
}

func (s *Store) freePayload(p uint32) {
	if p == 0 {
		return
	}
	n, err := s.mem.ReadU32(p)
	if err != nil {
		return
	}
	s.arena.Free(p, 4+n, payloadAlign)
}

// storePayload copies data into a new payload, points the slot at addr to
// it and frees the payload it pointed to before.
func (s *Store) storePayload(addr uint32, data []byte) error {
	s.memMu.Lock()
	defer s.memMu.Unlock()

	old, err := s.readSlot(addr)
	if err != nil {
		return memoryError(err)
	}
	p, err := s.writePayload(data)
	if err != nil {
		return err
	}
	if err := s.writeSlot(addr, p); err != nil {
		s.arena.Free(p, 4+uint32(len(data)), payloadAlign)
		return memoryError(err)
	}
	s.freePayload(old)
	return nil
}

// writePayload allocates a payload and fills it with data. Empty data
// needs no payload and returns 0.
func (s *Store) writePayload(data []byte) (uint32, error) {
	if len(data) == 0 {
		return 0, nil
	}
	n := uint32(len(data))
	p, err := s.arena.Alloc(4+n, payloadAlign)
	if err != nil {
		return 0, err
	}
	if err = s.mem.WriteU32(p, n); err == nil {
		err = s.mem.Write(p+4, data)
	}
	if err != nil {
		s.arena.Free(p, 4+n, payloadAlign)
		return 0, memoryError(err)
	}
	return p, nil
}

// resolve maps (handle, field offset, access size) to an absolute address.
// Member primitives have no error return; an invalid access panics with a
// structured error.
func (s *Store) resolve(h ecslayout.Handle, off, n uint32) uint32 {
	v, ok := s.table.Get(h)
	if !ok {
		panic(errors.New(errors.PhaseStore, errors.KindNullHandle).
			Value(uint32(h)).
			Detail("handle %d is not live", uint32(h)).
			Build())
	}
	b := v.(*block)
	if off+n > b.layout.Size() || off+n < off {
		panic(errors.OutOfBounds(errors.PhaseStore, []string{b.layout.Name()}, off, b.layout.Size()))
	}
	return b.addr + off
}

func check(err error) {
	if err != nil {
		panic(memoryError(err))
	}
}

func memoryError(err error) error {
	return errors.Wrap(errors.PhaseStore, errors.KindOutOfBounds, err, "memory access")
}
