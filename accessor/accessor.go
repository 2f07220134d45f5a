package accessor

import (
	"reflect"

	ecslayout "github.com/wippyai/ecs-layout"
	"github.com/wippyai/ecs-layout/errors"
	"github.com/wippyai/ecs-layout/schema"
)

// Reader reads one field through the raw member primitives. The handle
// must be attached and not yet released.
type Reader func(m ecslayout.Members, h ecslayout.Handle) (any, error)

// Writer writes one field through the raw member primitives. Text and
// sequence values are moved into the store before Writer returns.
type Writer func(m ecslayout.Members, h ecslayout.Handle, v any) error

// Accessor is the generated read and write pair for one field.
type Accessor struct {
	Read  Reader
	Write Writer
	Field schema.FieldSpec
}

// Generate builds one Accessor per field in declaration order. It runs
// once per schema; the returned operations hold only the field's offset,
// tag and Go type.
func Generate(s *schema.Schema) []Accessor {
	out := make([]Accessor, s.Len())
	for i := range out {
		f := s.Field(i)
		path := []string{s.Name(), f.Name}
		out[i] = Accessor{
			Field: f,
			Read:  reader(f, path),
			Write: writer(f, path),
		}
	}
	return out
}

func reader(f schema.FieldSpec, path []string) Reader {
	off := f.Offset
	typ := f.Type

	// values come back in the declared Go type
	wrap := func(raw any) any {
		rv := reflect.ValueOf(raw)
		if rv.Type() == typ {
			return raw
		}
		return rv.Convert(typ).Interface()
	}

	switch f.Repr {
	case schema.ReprText:
		return func(m ecslayout.Members, h ecslayout.Handle) (any, error) {
			return wrap(m.GetString(h, off)), nil
		}
	case schema.ReprSequence:
		elem := f.Elem
		return func(m ecslayout.Members, h ecslayout.Handle) (any, error) {
			v, err := decodeSeq(elem, m.GetList(h, off), typ)
			if err != nil {
				if e, ok := err.(*errors.Error); ok {
					e.Path = path
				}
				return nil, err
			}
			return v.Interface(), nil
		}
	}

	var get func(m ecslayout.Members, h ecslayout.Handle) any
	switch f.Tag {
	case schema.TagU8:
		get = func(m ecslayout.Members, h ecslayout.Handle) any { return m.GetU8(h, off) }
	case schema.TagU16:
		get = func(m ecslayout.Members, h ecslayout.Handle) any { return m.GetU16(h, off) }
	case schema.TagU32:
		get = func(m ecslayout.Members, h ecslayout.Handle) any { return m.GetU32(h, off) }
	case schema.TagU64:
		get = func(m ecslayout.Members, h ecslayout.Handle) any { return m.GetU64(h, off) }
	case schema.TagI8:
		get = func(m ecslayout.Members, h ecslayout.Handle) any { return m.GetI8(h, off) }
	case schema.TagI16:
		get = func(m ecslayout.Members, h ecslayout.Handle) any { return m.GetI16(h, off) }
	case schema.TagI32:
		get = func(m ecslayout.Members, h ecslayout.Handle) any { return m.GetI32(h, off) }
	case schema.TagI64:
		get = func(m ecslayout.Members, h ecslayout.Handle) any { return m.GetI64(h, off) }
	case schema.TagF32:
		get = func(m ecslayout.Members, h ecslayout.Handle) any { return m.GetF32(h, off) }
	case schema.TagF64:
		get = func(m ecslayout.Members, h ecslayout.Handle) any { return m.GetF64(h, off) }
	case schema.TagBool:
		get = func(m ecslayout.Members, h ecslayout.Handle) any { return m.GetBool(h, off) }
	case schema.TagPointer:
		get = func(m ecslayout.Members, h ecslayout.Handle) any { return m.GetPointer(h, off) }
	}

	return func(m ecslayout.Members, h ecslayout.Handle) (any, error) {
		return wrap(get(m, h)), nil
	}
}

func writer(f schema.FieldSpec, path []string) Writer {
	off := f.Offset
	want := f.Tag.String()
	if f.Repr == schema.ReprSequence {
		want = "list<" + f.Elem.String() + ">"
	}

	mismatch := func(v any) error {
		return errors.TypeMismatch(errors.PhaseAccess, path, typeName(v), want)
	}

	switch f.Repr {
	case schema.ReprText:
		return func(m ecslayout.Members, h ecslayout.Handle, v any) error {
			rv := reflect.ValueOf(v)
			if rv.Kind() != reflect.String {
				return mismatch(v)
			}
			m.SetString(h, off, rv.String())
			return nil
		}
	case schema.ReprSequence:
		elem := f.Elem
		return func(m ecslayout.Members, h ecslayout.Handle, v any) error {
			rv := reflect.ValueOf(v)
			if rv.Kind() != reflect.Slice || !kindMatches(elem, rv.Type().Elem().Kind()) {
				return mismatch(v)
			}
			m.SetList(h, off, encodeSeq(elem, rv))
			return nil
		}
	}

	tg := f.Tag
	return func(m ecslayout.Members, h ecslayout.Handle, v any) error {
		rv := reflect.ValueOf(v)
		if !rv.IsValid() || !kindMatches(tg, rv.Kind()) {
			return mismatch(v)
		}
		switch tg {
		case schema.TagU8:
			m.SetU8(h, off, uint8(rv.Uint()))
		case schema.TagU16:
			m.SetU16(h, off, uint16(rv.Uint()))
		case schema.TagU32:
			m.SetU32(h, off, uint32(rv.Uint()))
		case schema.TagU64:
			m.SetU64(h, off, rv.Uint())
		case schema.TagI8:
			m.SetI8(h, off, int8(rv.Int()))
		case schema.TagI16:
			m.SetI16(h, off, int16(rv.Int()))
		case schema.TagI32:
			m.SetI32(h, off, int32(rv.Int()))
		case schema.TagI64:
			m.SetI64(h, off, rv.Int())
		case schema.TagF32:
			m.SetF32(h, off, float32(rv.Float()))
		case schema.TagF64:
			m.SetF64(h, off, rv.Float())
		case schema.TagBool:
			m.SetBool(h, off, rv.Bool())
		case schema.TagPointer:
			m.SetPointer(h, off, rv.Uint())
		}
		return nil
	}
}

// Zero returns the zero value of a field in its declared Go type.
func Zero(f schema.FieldSpec) any {
	return reflect.Zero(f.Type).Interface()
}
