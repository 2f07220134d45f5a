package schema

import (
	"reflect"

	"github.com/wippyai/ecs-layout/errors"
)

// FromTags rebuilds a schema from registration metadata. Registration
// carries no element information, so a Pointer tag is planned as an
// 8-byte handle unless seq names that field; seq maps field name to the
// element tag of a sequence field.
func FromTags(name string, names []string, tags []Tag, seq map[string]Tag, w Width) (*Schema, error) {
	if len(names) != len(tags) {
		return nil, errors.New(errors.PhaseDeclare, errors.KindInvalidInput).
			Path(name).
			Detail("%d field names but %d tags", len(names), len(tags)).
			Build()
	}

	decls := make([]Decl, len(names))
	for i, n := range names {
		t := tags[i]
		if !t.Valid() {
			return nil, errors.New(errors.PhaseDeclare, errors.KindUnsupportedType).
				Path(name, n).
				Tag(t.String()).
				Value(uint8(t)).
				Build()
		}

		var typ reflect.Type
		if elem, ok := seq[n]; ok && t == TagPointer {
			et := canonical(elem)
			if et == nil || !elem.Fixed() && elem != TagPointer {
				return nil, errors.New(errors.PhaseDeclare, errors.KindUnsupportedType).
					Path(name, n).
					Tag(elem.String()).
					Detail("sequence element must be a fixed-size type").
					Build()
			}
			typ = reflect.SliceOf(et)
		} else {
			typ = canonical(t)
		}
		decls[i] = Decl{Name: n, Type: typ}
	}
	return Declare(name, decls, w)
}
