package store

import (
	"fmt"
	"slices"
	"sync"

	ecslayout "github.com/wippyai/ecs-layout"
	"github.com/wippyai/ecs-layout/errors"
	"github.com/wippyai/ecs-layout/record"
	"github.com/wippyai/ecs-layout/registry"
	"github.com/wippyai/ecs-layout/resource"
	"github.com/wippyai/ecs-layout/schema"
	"go.uber.org/zap"
)

// singletonEntity owns every singleton component.
const singletonEntity ecslayout.EntityID = 0

// Store is a reference external entity/component store. Component blocks
// live in a Memory at offsets planned by the schema package; records are
// attached to descriptor handles that map to those blocks.
//
// Store implements registry.Registry by delegating to its registry, and
// registry.LayoutRegistrar so registration also records the planned
// layout it allocates by.
type Store struct {
	mem     ecslayout.Memory
	arena   *Arena
	table   *resource.Table
	reg     registry.Registry
	layouts map[ecslayout.TypeID]*schema.Schema
	comps   map[ecslayout.EntityID]map[ecslayout.TypeID]*record.Record
	next    ecslayout.EntityID
	width   schema.Width
	mu      sync.RWMutex
	memMu   sync.RWMutex
	closed  bool
}

type config struct {
	reg registry.Registry
}

// Option configures a Store.
type Option func(*config)

// WithRegistry delegates registration to reg instead of a private
// registry.Local.
func WithRegistry(reg registry.Registry) Option {
	return func(c *config) { c.reg = reg }
}

// New creates a store over mem whose slots are w bytes wide.
func New(mem ecslayout.Memory, w schema.Width, opts ...Option) (*Store, error) {
	if !w.Valid() {
		return nil, errors.InvalidWidth(uint32(w))
	}
	if mem == nil {
		return nil, errors.InvalidInput(errors.PhaseStore, "store needs a memory")
	}
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.reg == nil {
		cfg.reg = registry.NewLocal()
	}

	return &Store{
		mem:     mem,
		arena:   NewArena(mem),
		table:   resource.NewTable(),
		reg:     cfg.reg,
		layouts: make(map[ecslayout.TypeID]*schema.Schema),
		comps:   make(map[ecslayout.EntityID]map[ecslayout.TypeID]*record.Record),
		next:    1,
		width:   w,
	}, nil
}

// Width returns the slot width of text and sequence references.
func (s *Store) Width() schema.Width { return s.width }

// Registry returns the registry registrations are delegated to.
func (s *Store) Registry() registry.Registry { return s.reg }

// Descriptors returns the descriptor table backing record handles.
func (s *Store) Descriptors() *resource.Table { return s.table }

func (s *Store) RegisterComponent(name string, names []string, tags []schema.Tag) (ecslayout.TypeID, error) {
	return s.reg.RegisterComponent(name, names, tags)
}

func (s *Store) ComponentID(name string) (ecslayout.TypeID, error) {
	return s.reg.ComponentID(name)
}

// RegisterLayout records the layout blocks of type id are allocated by.
// The layout must be planned for the store's width.
func (s *Store) RegisterLayout(id ecslayout.TypeID, l *schema.Schema) error {
	if l.Width() != s.width {
		return errors.WidthMismatch(l.Name(), uint32(l.Width()), uint32(s.width))
	}
	if lr, ok := s.reg.(registry.LayoutRegistrar); ok {
		if err := lr.RegisterLayout(id, l); err != nil {
			return err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if have, ok := s.layouts[id]; ok && !have.SameLayout(l) {
		return errors.SchemaMismatch(l.Name(), fmt.Sprintf("layout %s differs from registered %s", l, have))
	}
	s.layouts[id] = l
	return nil
}

// Layout returns the layout registered for id.
func (s *Store) Layout(id ecslayout.TypeID) (*schema.Schema, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, ok := s.layouts[id]
	return l, ok
}

// NewEntity allocates an entity id. Ids start at 1.
func (s *Store) NewEntity() ecslayout.EntityID {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.next
	s.next++
	s.comps[e] = make(map[ecslayout.TypeID]*record.Record)
	return e
}

// Add allocates a zeroed block for rec, attaches it and records it as
// entity e's component of type id. A component of the same type already
// on e is released and replaced.
func (s *Store) Add(e ecslayout.EntityID, id ecslayout.TypeID, rec *record.Record) (*record.Record, error) {
	if e == singletonEntity {
		return nil, errors.InvalidInput(errors.PhaseStore, "entity 0 is reserved for singletons")
	}
	return s.add(e, id, rec, false)
}

// AddSingleton stores rec as the one component of type id that belongs to
// no entity.
func (s *Store) AddSingleton(id ecslayout.TypeID, rec *record.Record) (*record.Record, error) {
	return s.add(singletonEntity, id, rec, true)
}

func (s *Store) add(e ecslayout.EntityID, id ecslayout.TypeID, rec *record.Record, singleton bool) (*record.Record, error) {
	if rec.Attached() || rec.Released() {
		return nil, errors.AlreadyAttached(rec.Kind().Name())
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, resource.ErrClosed
	}
	l, err := s.checkLayout(id, rec.Schema())
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	comps, ok := s.comps[e]
	if !ok {
		if !singleton {
			s.mu.Unlock()
			return nil, errors.NotFound(errors.PhaseStore, "entity", fmt.Sprint(uint64(e)))
		}
		comps = make(map[ecslayout.TypeID]*record.Record)
		s.comps[e] = comps
	}

	s.memMu.Lock()
	addr, err := s.arena.Alloc(l.Size(), l.Align())
	s.memMu.Unlock()
	if err != nil {
		s.mu.Unlock()
		Logger().Warn("component block allocation failed",
			zap.String("component", l.Name()),
			zap.Uint32("size", l.Size()),
			zap.Error(err))
		return nil, err
	}

	b := &block{store: s, layout: l, rec: rec, entity: e, typeID: id, addr: addr}
	h, err := s.table.Insert(id, b)
	if err != nil {
		s.memMu.Lock()
		s.arena.Free(addr, l.Size(), l.Align())
		s.memMu.Unlock()
		s.mu.Unlock()
		return nil, err
	}
	if err := rec.Attach(h, s, s); err != nil {
		s.mu.Unlock()
		s.table.Release(h)
		return nil, err
	}
	rec.SetEntityAdded(e)
	rec.SetComponentType(id)
	rec.SetSingleton(singleton)

	prev := comps[id]
	comps[id] = rec
	s.mu.Unlock()

	if prev != nil {
		prev.Release()
	}

	Logger().Debug("component attached",
		zap.String("component", l.Name()),
		zap.Uint64("entity", uint64(e)),
		zap.Uint32("handle", uint32(h)),
		zap.Uint32("addr", addr))
	return rec, nil
}

func (s *Store) checkLayout(id ecslayout.TypeID, rs *schema.Schema) (*schema.Schema, error) {
	l, ok := s.layouts[id]
	if !ok {
		return nil, errors.NotFound(errors.PhaseStore, "layout for type id", fmt.Sprint(uint64(id)))
	}
	if rs.Width() != s.width {
		return nil, errors.WidthMismatch(rs.Name(), uint32(rs.Width()), uint32(s.width))
	}
	if !l.SameLayout(rs) {
		return nil, errors.SchemaMismatch(rs.Name(), fmt.Sprintf("record layout %s differs from registered %s", rs, l))
	}
	return l, nil
}

// Get returns entity e's component of type id.
func (s *Store) Get(e ecslayout.EntityID, id ecslayout.TypeID) (*record.Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.comps[e][id]
	return rec, ok
}

// Has reports whether entity e has a component of type id.
func (s *Store) Has(e ecslayout.EntityID, id ecslayout.TypeID) bool {
	_, ok := s.Get(e, id)
	return ok
}

// Singleton returns the singleton component of type id.
func (s *Store) Singleton(id ecslayout.TypeID) (*record.Record, bool) {
	return s.Get(singletonEntity, id)
}

// Remove releases entity e's component of type id.
func (s *Store) Remove(e ecslayout.EntityID, id ecslayout.TypeID) bool {
	s.mu.Lock()
	rec, ok := s.comps[e][id]
	if ok {
		delete(s.comps[e], id)
	}
	s.mu.Unlock()

	if !ok {
		return false
	}
	rec.Release()
	return true
}

// DeleteEntity releases every component of e and forgets the entity. It
// returns the number of components released.
func (s *Store) DeleteEntity(e ecslayout.EntityID) int {
	s.mu.Lock()
	comps := s.comps[e]
	delete(s.comps, e)
	s.mu.Unlock()

	for _, rec := range comps {
		rec.Release()
	}
	return len(comps)
}

// Entities returns the live entity ids in ascending order.
func (s *Store) Entities() []ecslayout.EntityID {
	s.mu.RLock()
	out := make([]ecslayout.EntityID, 0, len(s.comps))
	for e := range s.comps {
		if e != singletonEntity {
			out = append(out, e)
		}
	}
	s.mu.RUnlock()

	slices.Sort(out)
	return out
}

// Release releases a component handle. It is called by Record.Release;
// the component's block and payloads are freed before it returns.
func (s *Store) Release(h ecslayout.Handle) bool {
	v, ok := s.table.Get(h)
	if !ok {
		return false
	}
	if !s.table.Release(h) {
		return false
	}
	s.forget(v.(*block))
	return true
}

func (s *Store) forget(b *block) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if comps, ok := s.comps[b.entity]; ok && comps[b.typeID] == b.rec {
		delete(comps, b.typeID)
	}
}

// Stats is a snapshot of store occupancy.
type Stats struct {
	Entities   int
	Components int
	Blocks     int
	LiveBytes  uint32
	HighWater  uint32
	MemorySize uint32
}

func (s *Store) Stats() Stats {
	s.mu.RLock()
	st := Stats{Components: s.table.Len()}
	for e := range s.comps {
		if e != singletonEntity {
			st.Entities++
		}
	}
	s.mu.RUnlock()

	s.memMu.RLock()
	st.Blocks = s.arena.Blocks()
	st.LiveBytes = s.arena.Live()
	st.HighWater = s.arena.Top()
	st.MemorySize = s.mem.Size()
	s.memMu.RUnlock()
	return st
}

// Close releases every component and rejects further adds.
func (s *Store) Close() error {
	s.mu.Lock()
	s.closed = true
	var recs []*record.Record
	for _, comps := range s.comps {
		for _, rec := range comps {
			recs = append(recs, rec)
		}
	}
	s.comps = make(map[ecslayout.EntityID]map[ecslayout.TypeID]*record.Record)
	s.mu.Unlock()

	for _, rec := range recs {
		rec.Release()
	}
	return s.table.Close()
}

var (
	_ registry.Registry        = (*Store)(nil)
	_ registry.LayoutRegistrar = (*Store)(nil)
	_ ecslayout.Releaser       = (*Store)(nil)
	_ ecslayout.Members        = (*Store)(nil)
)
