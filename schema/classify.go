package schema

import (
	"reflect"

	ecslayout "github.com/wippyai/ecs-layout"
	"github.com/wippyai/ecs-layout/errors"
)

// Class is the memory representation of one field type.
type Class struct {
	Tag   Tag
	Elem  Tag // element tag for sequences, otherwise Tag
	Repr  Repr
	Size  uint32
	Align uint32
}

// entry sizes of 0 mean "pointer width".
type entry struct {
	tag  Tag
	repr Repr
	size uint32
}

var (
	byType map[reflect.Type]entry
	byKind map[reflect.Kind]entry
)

func init() {
	byType = map[reflect.Type]entry{
		reflect.TypeFor[uint8]():              {TagU8, ReprScalar, 1},
		reflect.TypeFor[uint16]():             {TagU16, ReprScalar, 2},
		reflect.TypeFor[uint32]():             {TagU32, ReprScalar, 4},
		reflect.TypeFor[uint64]():             {TagU64, ReprScalar, 8},
		reflect.TypeFor[int8]():               {TagI8, ReprScalar, 1},
		reflect.TypeFor[int16]():              {TagI16, ReprScalar, 2},
		reflect.TypeFor[int32]():              {TagI32, ReprScalar, 4},
		reflect.TypeFor[int64]():              {TagI64, ReprScalar, 8},
		reflect.TypeFor[float32]():            {TagF32, ReprScalar, 4},
		reflect.TypeFor[float64]():            {TagF64, ReprScalar, 8},
		reflect.TypeFor[bool]():               {TagBool, ReprScalar, 1},
		reflect.TypeFor[string]():             {TagString, ReprText, 0},
		reflect.TypeFor[ecslayout.Pointer]():  {TagPointer, ReprHandle, 8},
		reflect.TypeFor[ecslayout.EntityID](): {TagPointer, ReprHandle, 8},
	}

	// named types fall back to their underlying kind
	byKind = make(map[reflect.Kind]entry, len(byType))
	for t, e := range byType {
		if t.PkgPath() == "" {
			byKind[t.Kind()] = e
		}
	}
}

// Classify maps a Go type to its tag, size and alignment under width w.
// Supported types are the fixed-size integers, float32, float64, bool,
// string, ecslayout.Pointer, ecslayout.EntityID, named types over those
// kinds, and slices of any scalar or handle type. Anything else, including
// int, uint and uintptr, is rejected.
func Classify(t reflect.Type, w Width) (Class, error) {
	if err := checkWidth(w); err != nil {
		return Class{}, err
	}
	if t == nil {
		return Class{}, errors.UnsupportedType(nil, "<nil>")
	}

	if e, ok := lookup(t); ok {
		size := e.size
		if size == 0 {
			size = uint32(w)
		}
		return Class{Tag: e.tag, Elem: e.tag, Repr: e.repr, Size: size, Align: size}, nil
	}

	if t.Kind() == reflect.Slice {
		e, ok := lookup(t.Elem())
		if !ok || e.repr.Indirect() {
			return Class{}, errors.UnsupportedType(nil, t.String())
		}
		return Class{Tag: TagPointer, Elem: e.tag, Repr: ReprSequence, Size: uint32(w), Align: uint32(w)}, nil
	}

	return Class{}, errors.UnsupportedType(nil, t.String())
}

func lookup(t reflect.Type) (entry, bool) {
	if e, ok := byType[t]; ok {
		return e, true
	}
	e, ok := byKind[t.Kind()]
	return e, ok
}

// ElemSize returns the encoded byte size of one sequence element.
func ElemSize(elem Tag) uint32 {
	switch elem {
	case TagU8, TagI8, TagBool:
		return 1
	case TagU16, TagI16:
		return 2
	case TagU32, TagI32, TagF32:
		return 4
	case TagU64, TagI64, TagF64, TagPointer:
		return 8
	default:
		return 0
	}
}

// GoType returns the canonical Go type for a class.
func (c Class) GoType() reflect.Type {
	switch c.Repr {
	case ReprSequence:
		return reflect.SliceOf(canonical(c.Elem))
	default:
		return canonical(c.Tag)
	}
}

func canonical(t Tag) reflect.Type {
	switch t {
	case TagU8:
		return reflect.TypeFor[uint8]()
	case TagU16:
		return reflect.TypeFor[uint16]()
	case TagU32:
		return reflect.TypeFor[uint32]()
	case TagU64:
		return reflect.TypeFor[uint64]()
	case TagI8:
		return reflect.TypeFor[int8]()
	case TagI16:
		return reflect.TypeFor[int16]()
	case TagI32:
		return reflect.TypeFor[int32]()
	case TagI64:
		return reflect.TypeFor[int64]()
	case TagF32:
		return reflect.TypeFor[float32]()
	case TagF64:
		return reflect.TypeFor[float64]()
	case TagBool:
		return reflect.TypeFor[bool]()
	case TagString:
		return reflect.TypeFor[string]()
	case TagPointer:
		return reflect.TypeFor[ecslayout.Pointer]()
	default:
		return nil
	}
}
