package plan

import (
	"github.com/wippyai/ecs-layout/errors"
	"github.com/wippyai/ecs-layout/internal/abi"
)

// Item is one field as seen by the planner.
type Item struct {
	Name  string
	Size  uint32
	Align uint32
}

// Offsets places items in order, aligning a running cursor before each one.
// It returns the per-item offsets and the end of the last item. No trailing
// padding is added.
func Offsets(items []Item) ([]uint32, uint32, error) {
	offsets := make([]uint32, len(items))
	cursor := uint32(0)

	for i, it := range items {
		if !abi.IsPowerOfTwo(it.Align) {
			return nil, 0, errors.New(errors.PhasePlan, errors.KindInvalidInput).
				Path(it.Name).
				Value(it.Align).
				Detail("alignment %d is not a power of two", it.Align).
				Build()
		}

		aligned, ok := abi.AlignUpChecked(cursor, it.Align)
		if !ok {
			return nil, 0, errors.Overflow(errors.PhasePlan, []string{it.Name}, cursor, "uint32 offset")
		}
		offsets[i] = aligned

		end, ok := abi.SafeAddU32(aligned, it.Size)
		if !ok {
			return nil, 0, errors.Overflow(errors.PhasePlan, []string{it.Name}, aligned, "uint32 offset")
		}
		cursor = end
	}

	return offsets, cursor, nil
}

// MaxAlign returns the largest alignment among items, 1 for none.
func MaxAlign(items []Item) uint32 {
	m := uint32(1)
	for _, it := range items {
		if it.Align > m {
			m = it.Align
		}
	}
	return m
}
