package schema

import (
	"strconv"

	"github.com/wippyai/ecs-layout/errors"
)

// Width is the pointer width in bytes a schema is planned for.
type Width uint32

const (
	Width32 Width = 4
	Width64 Width = 8
)

func (w Width) Valid() bool {
	return w == Width32 || w == Width64
}

func (w Width) String() string {
	switch w {
	case Width32:
		return "32-bit"
	case Width64:
		return "64-bit"
	default:
		return "width(" + strconv.FormatUint(uint64(w), 10) + ")"
	}
}

func checkWidth(w Width) error {
	if !w.Valid() {
		return errors.InvalidWidth(uint32(w))
	}
	return nil
}
