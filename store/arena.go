package store

import (
	ecslayout "github.com/wippyai/ecs-layout"
	"github.com/wippyai/ecs-layout/errors"
	"github.com/wippyai/ecs-layout/internal/abi"
)

const (
	// granule is the allocation unit and the largest supported alignment.
	granule = 8
	// base is the first address handed out. Address 0 stays reserved so a
	// zero slot always means "no payload".
	base = granule
)

// Arena is a size-class allocator over a Memory. Blocks are rounded up to
// a multiple of 8 bytes and reused per size class; memory is never
// returned to the backing Memory.
type Arena struct {
	mem   ecslayout.Memory
	free  map[uint32][]uint32
	top   uint32
	live  uint32
	count int
}

// NewArena creates an arena that allocates from mem starting at address 8.
func NewArena(mem ecslayout.Memory) *Arena {
	return &Arena{
		mem:  mem,
		free: make(map[uint32][]uint32),
		top:  base,
	}
}

func sizeClass(size uint32) (uint32, bool) {
	if size == 0 {
		return granule, true
	}
	return abi.AlignUpChecked(size, granule)
}

// Alloc returns the address of a zeroed block of at least size bytes.
func (a *Arena) Alloc(size, align uint32) (uint32, error) {
	if !abi.IsPowerOfTwo(align) || align > granule {
		return 0, errors.New(errors.PhaseStore, errors.KindInvalidInput).
			Value(align).
			Detail("alignment %d is not a power of two up to %d", align, granule).
			Build()
	}
	class, ok := sizeClass(size)
	if !ok {
		return 0, errors.AllocationFailed(errors.PhaseStore, size, align)
	}

	if list := a.free[class]; len(list) > 0 {
		ptr := list[len(list)-1]
		a.free[class] = list[:len(list)-1]
		if err := a.zero(ptr, class); err != nil {
			return 0, err
		}
		a.live += class
		a.count++
		return ptr, nil
	}

	end, ok := abi.SafeAddU32(a.top, class)
	if !ok {
		return 0, errors.AllocationFailed(errors.PhaseStore, size, align)
	}
	if end > a.mem.Size() {
		if err := a.mem.Grow(end); err != nil {
			return 0, errors.New(errors.PhaseStore, errors.KindAllocation).
				Cause(err).
				Detail("grow to %d bytes for %d-byte block", end, size).
				Build()
		}
	}
	ptr := a.top
	a.top = end
	a.live += class
	a.count++
	return ptr, nil
}

// Free returns a block to its size class. Freeing address 0 is a no-op.
func (a *Arena) Free(ptr, size, _ uint32) {
	if ptr == 0 {
		return
	}
	class, _ := sizeClass(size)
	a.free[class] = append(a.free[class], ptr)
	a.live -= class
	a.count--
}

func (a *Arena) zero(ptr, n uint32) error {
	view, err := a.mem.Read(ptr, n)
	if err != nil {
		return err
	}
	clear(view)
	return nil
}

// Live returns the bytes held by allocated blocks, including rounding.
func (a *Arena) Live() uint32 { return a.live }

// Blocks returns the number of allocated blocks.
func (a *Arena) Blocks() int { return a.count }

// Top returns the high-water mark.
func (a *Arena) Top() uint32 { return a.top }

var _ ecslayout.Allocator = (*Arena)(nil)
