package schema

import (
	"reflect"

	"github.com/wippyai/ecs-layout/errors"
	"go.bytecodealliance.org/wit"
)

// FromWIT declares a schema from a WIT record. Supported field types are
// u8..u64, s8..s64, f32, f64, bool, string and list<T> of any of the
// fixed-size types.
func FromWIT(name string, r *wit.Record, w Width) (*Schema, error) {
	if r == nil {
		return nil, errors.InvalidInput(errors.PhaseDeclare, "WIT record cannot be nil")
	}

	decls := make([]Decl, len(r.Fields))
	for i, f := range r.Fields {
		t, err := goTypeOfWIT(f.Type)
		if err != nil {
			if e, ok := err.(*errors.Error); ok {
				e.Path = []string{name, f.Name}
			}
			return nil, err
		}
		decls[i] = Decl{Name: f.Name, Type: t}
	}
	return Declare(name, decls, w)
}

func goTypeOfWIT(t wit.Type) (reflect.Type, error) {
	switch typ := t.(type) {
	case wit.U8:
		return canonical(TagU8), nil
	case wit.U16:
		return canonical(TagU16), nil
	case wit.U32:
		return canonical(TagU32), nil
	case wit.U64:
		return canonical(TagU64), nil
	case wit.S8:
		return canonical(TagI8), nil
	case wit.S16:
		return canonical(TagI16), nil
	case wit.S32:
		return canonical(TagI32), nil
	case wit.S64:
		return canonical(TagI64), nil
	case wit.F32:
		return canonical(TagF32), nil
	case wit.F64:
		return canonical(TagF64), nil
	case wit.Bool:
		return canonical(TagBool), nil
	case wit.String:
		return canonical(TagString), nil
	case *wit.TypeDef:
		switch kind := typ.Kind.(type) {
		case *wit.List:
			elem, err := goTypeOfWIT(kind.Type)
			if err != nil {
				return nil, err
			}
			if elem.Kind() == reflect.String || elem.Kind() == reflect.Slice {
				return nil, errors.New(errors.PhaseDeclare, errors.KindUnsupportedType).
					Detail("list element must be a fixed-size type").
					Build()
			}
			return reflect.SliceOf(elem), nil
		case wit.Type:
			return goTypeOfWIT(kind)
		}
	}
	return nil, errors.New(errors.PhaseDeclare, errors.KindUnsupportedType).
		Detail("unsupported WIT type %T", t).
		Build()
}

// WIT exports the schema as a WIT record type. Handle fields become u64,
// so a round trip through WIT loses the handle distinction.
func (s *Schema) WIT() *wit.TypeDef {
	fields := make([]wit.Field, len(s.fields))
	for i, f := range s.fields {
		var t wit.Type
		if f.Repr == ReprSequence {
			t = &wit.TypeDef{Kind: &wit.List{Type: witOf(f.Elem)}}
		} else {
			t = witOf(f.Tag)
		}
		fields[i] = wit.Field{Name: f.Name, Type: t}
	}
	return &wit.TypeDef{Kind: &wit.Record{Fields: fields}}
}

func witOf(t Tag) wit.Type {
	switch t {
	case TagU8:
		return wit.U8{}
	case TagU16:
		return wit.U16{}
	case TagU32:
		return wit.U32{}
	case TagU64, TagPointer:
		return wit.U64{}
	case TagI8:
		return wit.S8{}
	case TagI16:
		return wit.S16{}
	case TagI32:
		return wit.S32{}
	case TagI64:
		return wit.S64{}
	case TagF32:
		return wit.F32{}
	case TagF64:
		return wit.F64{}
	case TagBool:
		return wit.Bool{}
	default:
		return wit.String{}
	}
}
