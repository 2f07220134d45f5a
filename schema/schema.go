package schema

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/wippyai/ecs-layout/errors"
	"github.com/wippyai/ecs-layout/schema/internal/plan"
)

// FieldSpec is one planned field.
type FieldSpec struct {
	Type   reflect.Type
	Name   string
	Index  []int // struct field index when compiled from a Go type
	Offset uint32
	Size   uint32
	Align  uint32
	Tag    Tag
	Elem   Tag
	Repr   Repr
}

// End returns the first byte past the field.
func (f FieldSpec) End() uint32 {
	return f.Offset + f.Size
}

// Decl declares one field before planning.
type Decl struct {
	Type  reflect.Type
	Name  string
	Index []int
}

// Field is shorthand for building a Decl from a sample value.
func Field[T any](name string) Decl {
	return Decl{Name: name, Type: reflect.TypeFor[T]()}
}

// Schema is the immutable plan of one record kind.
type Schema struct {
	goType reflect.Type
	index  map[string]int
	name   string
	fields []FieldSpec
	size   uint32
	align  uint32
	width  Width
}

// Declare classifies and plans fields in declaration order. It is the
// single entry point every other constructor funnels through.
func Declare(name string, decls []Decl, w Width) (*Schema, error) {
	if err := checkWidth(w); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, errors.InvalidInput(errors.PhaseDeclare, "record name is empty")
	}

	fields := make([]FieldSpec, len(decls))
	items := make([]plan.Item, len(decls))
	index := make(map[string]int, len(decls))

	for i, d := range decls {
		if d.Name == "" {
			return nil, errors.New(errors.PhaseDeclare, errors.KindInvalidInput).
				Path(name).
				Detail("field %d has no name", i).
				Build()
		}
		if _, dup := index[d.Name]; dup {
			return nil, errors.DuplicateField(name, d.Name)
		}
		index[d.Name] = i

		c, err := Classify(d.Type, w)
		if err != nil {
			if e, ok := err.(*errors.Error); ok && e.Kind == errors.KindUnsupportedType {
				e.Path = []string{name, d.Name}
			}
			return nil, err
		}

		fields[i] = FieldSpec{
			Name:  d.Name,
			Type:  d.Type,
			Index: d.Index,
			Tag:   c.Tag,
			Elem:  c.Elem,
			Repr:  c.Repr,
			Size:  c.Size,
			Align: c.Align,
		}
		items[i] = plan.Item{Name: d.Name, Size: c.Size, Align: c.Align}
	}

	offsets, end, err := plan.Offsets(items)
	if err != nil {
		if e, ok := err.(*errors.Error); ok {
			e.Path = append([]string{name}, e.Path...)
		}
		return nil, err
	}
	for i := range fields {
		fields[i].Offset = offsets[i]
	}

	return &Schema{
		name:   name,
		fields: fields,
		index:  index,
		width:  w,
		size:   end,
		align:  plan.MaxAlign(items),
	}, nil
}

// MustDeclare is Declare that panics on error, for package-level declarations.
func MustDeclare(name string, decls []Decl, w Width) *Schema {
	s, err := Declare(name, decls, w)
	if err != nil {
		panic(err)
	}
	return s
}

func (s *Schema) Name() string { return s.name }

func (s *Schema) Width() Width { return s.width }

// Size is the end of the last field. No trailing padding is included.
func (s *Schema) Size() uint32 { return s.size }

// Align is the largest field alignment, 1 for an empty record.
func (s *Schema) Align() uint32 { return s.align }

func (s *Schema) Len() int { return len(s.fields) }

// GoType is the struct type the schema was compiled from, or nil.
func (s *Schema) GoType() reflect.Type { return s.goType }

// Field returns the i-th field in declaration order.
func (s *Schema) Field(i int) FieldSpec { return s.fields[i] }

// Fields returns a copy of the planned fields.
func (s *Schema) Fields() []FieldSpec {
	out := make([]FieldSpec, len(s.fields))
	copy(out, s.fields)
	return out
}

// Lookup finds a field by name.
func (s *Schema) Lookup(name string) (FieldSpec, bool) {
	i, ok := s.index[name]
	if !ok {
		return FieldSpec{}, false
	}
	return s.fields[i], true
}

// Index returns the declaration index of a field, or -1.
func (s *Schema) Index(name string) int {
	if i, ok := s.index[name]; ok {
		return i
	}
	return -1
}

// Names returns field names in declaration order.
func (s *Schema) Names() []string {
	out := make([]string, len(s.fields))
	for i, f := range s.fields {
		out[i] = f.Name
	}
	return out
}

// Tags returns field tags in declaration order.
func (s *Schema) Tags() []Tag {
	out := make([]Tag, len(s.fields))
	for i, f := range s.fields {
		out[i] = f.Tag
	}
	return out
}

// SameLayout reports whether o has the same name, width, and field
// names, tags, and offsets as s.
func (s *Schema) SameLayout(o *Schema) bool {
	if s.name != o.name || s.width != o.width || len(s.fields) != len(o.fields) {
		return false
	}
	for i := range s.fields {
		a, b := s.fields[i], o.fields[i]
		if a.Name != b.Name || a.Tag != b.Tag || a.Offset != b.Offset || a.Size != b.Size {
			return false
		}
	}
	return true
}

func (s *Schema) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s, size %d, align %d) {", s.name, s.width, s.size, s.align)
	for i, f := range s.fields {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, " %s: %s@%d", f.Name, f.Tag, f.Offset)
	}
	b.WriteString(" }")
	return b.String()
}
