package resource

import (
	"errors"
	"sync"

	ecslayout "github.com/wippyai/ecs-layout"
)

var ErrClosed = errors.New("descriptor table closed")

const (
	indexBits = 24
	indexMask = 1<<indexBits - 1
	maxIndex  = indexMask
)

// Table maps handles to backing descriptors. Handle 0 is never issued.
// Released slots are reused under a new generation, so a stale handle
// never reaches the descriptor that replaced it.
type Table struct {
	entries   []entry
	freeList  []uint32
	observers []Observer
	mu        sync.RWMutex
	obsMu     sync.RWMutex
	closed    bool
}

type entry struct {
	value  any
	typeID ecslayout.TypeID
	gen    uint8
	valid  bool
}

// NewTable creates an empty descriptor table.
func NewTable() *Table {
	return &Table{
		entries:  make([]entry, 0, 64),
		freeList: make([]uint32, 0, 16),
	}
}

func makeHandle(idx uint32, gen uint8) ecslayout.Handle {
	return ecslayout.Handle(uint32(gen)<<indexBits | (idx + 1))
}

func splitHandle(h ecslayout.Handle) (uint32, uint8, bool) {
	low := uint32(h) & indexMask
	if low == 0 {
		return 0, 0, false
	}
	return low - 1, uint8(uint32(h) >> indexBits), true
}

// Insert stores a descriptor and returns its handle.
func (t *Table) Insert(typeID ecslayout.TypeID, value any) (ecslayout.Handle, error) {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return 0, ErrClosed
	}

	var idx uint32
	if n := len(t.freeList); n > 0 {
		idx = t.freeList[n-1]
		t.freeList = t.freeList[:n-1]
	} else {
		if len(t.entries) >= maxIndex {
			t.mu.Unlock()
			return 0, errors.New("descriptor table full")
		}
		t.entries = append(t.entries, entry{})
		idx = uint32(len(t.entries) - 1)
	}

	e := &t.entries[idx]
	e.value = value
	e.typeID = typeID
	e.valid = true
	h := makeHandle(idx, e.gen)
	t.mu.Unlock()

	t.notify(Event{Type: EventCreated, Handle: h, TypeID: typeID, Value: value})
	return h, nil
}

func (t *Table) lookup(h ecslayout.Handle) (*entry, bool) {
	idx, gen, ok := splitHandle(h)
	if !ok || int(idx) >= len(t.entries) {
		return nil, false
	}
	e := &t.entries[idx]
	if !e.valid || e.gen != gen {
		return nil, false
	}
	return e, true
}

// Get retrieves a descriptor by handle.
func (t *Table) Get(h ecslayout.Handle) (any, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	e, ok := t.lookup(h)
	if !ok {
		return nil, false
	}
	return e.value, true
}

// GetTyped retrieves a descriptor only if it was inserted under typeID.
func (t *Table) GetTyped(h ecslayout.Handle, typeID ecslayout.TypeID) (any, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	e, ok := t.lookup(h)
	if !ok || e.typeID != typeID {
		return nil, false
	}
	return e.value, true
}

// TypeOf returns the type id a handle was inserted under.
func (t *Table) TypeOf(h ecslayout.Handle) (ecslayout.TypeID, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	e, ok := t.lookup(h)
	if !ok {
		return 0, false
	}
	return e.typeID, true
}

// Release invalidates a handle and drops its descriptor. It reports false,
// and does nothing, for an unknown or already released handle.
func (t *Table) Release(h ecslayout.Handle) bool {
	t.mu.Lock()
	e, ok := t.lookup(h)
	if !ok {
		t.mu.Unlock()
		return false
	}

	idx, _, _ := splitHandle(h)
	value, typeID := e.value, e.typeID
	e.value = nil
	e.valid = false
	e.gen++
	t.freeList = append(t.freeList, idx)
	t.mu.Unlock()

	if d, ok := value.(Dropper); ok {
		d.Drop()
	}
	t.notify(Event{Type: EventReleased, Handle: h, TypeID: typeID, Value: value})
	return true
}

// Subscribe adds an observer for lifecycle events.
func (t *Table) Subscribe(o Observer) {
	t.obsMu.Lock()
	defer t.obsMu.Unlock()
	t.observers = append(t.observers, o)
}

// Unsubscribe removes an observer. o must be comparable, so an
// ObserverFunc cannot be unsubscribed.
func (t *Table) Unsubscribe(o Observer) {
	t.obsMu.Lock()
	defer t.obsMu.Unlock()
	for i, obs := range t.observers {
		if obs == o {
			t.observers = append(t.observers[:i], t.observers[i+1:]...)
			return
		}
	}
}

// Len returns the number of live descriptors.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	n := 0
	for _, e := range t.entries {
		if e.valid {
			n++
		}
	}
	return n
}

// Each iterates over live descriptors until fn returns false.
func (t *Table) Each(fn func(ecslayout.Handle, ecslayout.TypeID, any) bool) {
	t.mu.RLock()
	type live struct {
		value  any
		h      ecslayout.Handle
		typeID ecslayout.TypeID
	}
	items := make([]live, 0, len(t.entries))
	for i, e := range t.entries {
		if e.valid {
			items = append(items, live{h: makeHandle(uint32(i), e.gen), typeID: e.typeID, value: e.value})
		}
	}
	t.mu.RUnlock()

	for _, it := range items {
		if !fn(it.h, it.typeID, it.value) {
			return
		}
	}
}

// Clear releases every live descriptor.
func (t *Table) Clear() {
	var handles []ecslayout.Handle
	t.Each(func(h ecslayout.Handle, _ ecslayout.TypeID, _ any) bool {
		handles = append(handles, h)
		return true
	})
	for _, h := range handles {
		t.Release(h)
	}
}

// Close releases every live descriptor and rejects further inserts.
func (t *Table) Close() error {
	t.Clear()

	t.mu.Lock()
	defer t.mu.Unlock()
	t.closed = true
	return nil
}

func (t *Table) notify(e Event) {
	t.obsMu.RLock()
	defer t.obsMu.RUnlock()
	for _, o := range t.observers {
		o.OnResourceEvent(e)
	}
}

var _ ecslayout.Releaser = (*Table)(nil)
