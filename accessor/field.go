package accessor

import (
	"reflect"
	"unsafe"

	ecslayout "github.com/wippyai/ecs-layout"
	"github.com/wippyai/ecs-layout/errors"
	"github.com/wippyai/ecs-layout/schema"
)

// Field is a typed accessor bound to one field's offset. Get and Set call
// the member primitive directly with no checks; the handle must be valid.
type Field[V any] struct {
	get  func(m ecslayout.Members, h ecslayout.Handle) V
	set  func(m ecslayout.Members, h ecslayout.Handle, v V)
	spec schema.FieldSpec
}

// For binds a typed accessor for the named field. V must classify to the
// field's tag; named types over the same kind are accepted.
func For[V any](s *schema.Schema, name string) (Field[V], error) {
	f, ok := s.Lookup(name)
	if !ok {
		return Field[V]{}, errors.FieldMissing(errors.PhaseAccess, []string{s.Name()}, name)
	}

	vt := reflect.TypeFor[V]()
	c, err := schema.Classify(vt, s.Width())
	if err != nil || c.Tag != f.Tag || c.Elem != f.Elem || c.Repr != f.Repr {
		want := f.Tag.String()
		if f.Repr == schema.ReprSequence {
			want = "list<" + f.Elem.String() + ">"
		}
		return Field[V]{}, errors.TypeMismatch(errors.PhaseAccess, []string{s.Name(), name}, vt.String(), want)
	}

	fld := Field[V]{spec: f}
	off := f.Offset

	switch f.Repr {
	case schema.ReprText:
		fld.get, fld.set = bind[V](off, ecslayout.Members.GetString, ecslayout.Members.SetString)
		return fld, nil
	case schema.ReprSequence:
		elem := f.Elem
		fld.get = func(m ecslayout.Members, h ecslayout.Handle) V {
			v, err := decodeSeq(elem, m.GetList(h, off), vt)
			if err != nil {
				panic(err)
			}
			return v.Interface().(V)
		}
		fld.set = func(m ecslayout.Members, h ecslayout.Handle, v V) {
			m.SetList(h, off, encodeSeq(elem, reflect.ValueOf(v)))
		}
		return fld, nil
	}

	switch f.Tag {
	case schema.TagU8:
		fld.get, fld.set = bind[V](off, ecslayout.Members.GetU8, ecslayout.Members.SetU8)
	case schema.TagU16:
		fld.get, fld.set = bind[V](off, ecslayout.Members.GetU16, ecslayout.Members.SetU16)
	case schema.TagU32:
		fld.get, fld.set = bind[V](off, ecslayout.Members.GetU32, ecslayout.Members.SetU32)
	case schema.TagU64:
		fld.get, fld.set = bind[V](off, ecslayout.Members.GetU64, ecslayout.Members.SetU64)
	case schema.TagI8:
		fld.get, fld.set = bind[V](off, ecslayout.Members.GetI8, ecslayout.Members.SetI8)
	case schema.TagI16:
		fld.get, fld.set = bind[V](off, ecslayout.Members.GetI16, ecslayout.Members.SetI16)
	case schema.TagI32:
		fld.get, fld.set = bind[V](off, ecslayout.Members.GetI32, ecslayout.Members.SetI32)
	case schema.TagI64:
		fld.get, fld.set = bind[V](off, ecslayout.Members.GetI64, ecslayout.Members.SetI64)
	case schema.TagF32:
		fld.get, fld.set = bind[V](off, ecslayout.Members.GetF32, ecslayout.Members.SetF32)
	case schema.TagF64:
		fld.get, fld.set = bind[V](off, ecslayout.Members.GetF64, ecslayout.Members.SetF64)
	case schema.TagBool:
		fld.get, fld.set = bind[V](off, ecslayout.Members.GetBool, ecslayout.Members.SetBool)
	case schema.TagPointer:
		fld.get, fld.set = bind[V](off, ecslayout.Members.GetPointer, ecslayout.Members.SetPointer)
	}
	return fld, nil
}

// MustFor is For that panics on error.
func MustFor[V any](s *schema.Schema, name string) Field[V] {
	f, err := For[V](s, name)
	if err != nil {
		panic(err)
	}
	return f
}

// bind adapts a primitive over raw type R to V. Callers guarantee V has
// R as its underlying type, so the two share a memory layout.
func bind[V, R any](
	off uint32,
	get func(ecslayout.Members, ecslayout.Handle, uint32) R,
	set func(ecslayout.Members, ecslayout.Handle, uint32, R),
) (func(ecslayout.Members, ecslayout.Handle) V, func(ecslayout.Members, ecslayout.Handle, V)) {
	getV := func(m ecslayout.Members, h ecslayout.Handle) V {
		r := get(m, h, off)
		return *(*V)(unsafe.Pointer(&r))
	}
	setV := func(m ecslayout.Members, h ecslayout.Handle, v V) {
		set(m, h, off, *(*R)(unsafe.Pointer(&v)))
	}
	return getV, setV
}

func (f Field[V]) Get(m ecslayout.Members, h ecslayout.Handle) V {
	return f.get(m, h)
}

func (f Field[V]) Set(m ecslayout.Members, h ecslayout.Handle, v V) {
	f.set(m, h, v)
}

// Spec returns the planned field this accessor is bound to.
func (f Field[V]) Spec() schema.FieldSpec {
	return f.spec
}
