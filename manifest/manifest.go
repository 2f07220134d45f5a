package manifest

import (
	"bytes"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/goccy/go-json"
	ecslayout "github.com/wippyai/ecs-layout"
	"github.com/wippyai/ecs-layout/errors"
	"github.com/wippyai/ecs-layout/schema"
)

// Manifest declares component kinds independently of Go struct types.
type Manifest struct {
	Package    string      `json:"package,omitempty"`
	Components []Component `json:"components"`
	Width      uint32      `json:"width,omitempty"`
}

// Component is one declared record kind.
type Component struct {
	Name   string  `json:"name"`
	Fields []Field `json:"fields"`
}

// Field is one named, typed field. Type is a tag name ("u32", "string",
// "pointer"), "entity" for an entity handle, or "list<T>" for a sequence
// of a fixed-size or handle type.
type Field struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// Parse decodes a manifest. Unknown keys are rejected.
func Parse(data []byte) (*Manifest, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var m Manifest
	if err := dec.Decode(&m); err != nil {
		return nil, errors.Load("decode manifest", err)
	}
	if err := m.validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Load reads and parses the manifest at path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Load("read manifest "+path, err)
	}
	return Parse(data)
}

func (m *Manifest) validate() error {
	if m.Width != 0 && !schema.Width(m.Width).Valid() {
		return errors.InvalidWidth(m.Width)
	}
	seen := make(map[string]struct{}, len(m.Components))
	for _, c := range m.Components {
		if c.Name == "" {
			return errors.InvalidData(errors.PhaseLoad, nil, "component without a name")
		}
		if _, dup := seen[c.Name]; dup {
			return errors.InvalidData(errors.PhaseLoad, []string{c.Name}, "component declared twice")
		}
		seen[c.Name] = struct{}{}
	}
	return nil
}

// ResolveWidth returns w if set, else the manifest's width, else the
// build target's.
func (m *Manifest) ResolveWidth(w schema.Width) schema.Width {
	switch {
	case w != 0:
		return w
	case m.Width != 0:
		return schema.Width(m.Width)
	default:
		return schema.TargetWidth
	}
}

// Schemas plans every component under width w (see ResolveWidth).
func (m *Manifest) Schemas(w schema.Width) ([]*schema.Schema, error) {
	w = m.ResolveWidth(w)
	out := make([]*schema.Schema, 0, len(m.Components))
	for _, c := range m.Components {
		s, err := c.Schema(w)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// Schema plans the component under width w.
func (c Component) Schema(w schema.Width) (*schema.Schema, error) {
	decls := make([]schema.Decl, len(c.Fields))
	for i, f := range c.Fields {
		t, err := TypeOf(f.Type)
		if err != nil {
			if e, ok := err.(*errors.Error); ok {
				e.Path = []string{c.Name, f.Name}
			}
			return nil, err
		}
		decls[i] = schema.Decl{Name: f.Name, Type: t}
	}
	return schema.Declare(c.Name, decls, w)
}

var (
	entityType  = reflect.TypeFor[ecslayout.EntityID]()
	pointerType = reflect.TypeFor[ecslayout.Pointer]()
	scalarTypes = map[string]reflect.Type{
		"u8":      reflect.TypeFor[uint8](),
		"u16":     reflect.TypeFor[uint16](),
		"u32":     reflect.TypeFor[uint32](),
		"u64":     reflect.TypeFor[uint64](),
		"i8":      reflect.TypeFor[int8](),
		"i16":     reflect.TypeFor[int16](),
		"i32":     reflect.TypeFor[int32](),
		"i64":     reflect.TypeFor[int64](),
		"f32":     reflect.TypeFor[float32](),
		"f64":     reflect.TypeFor[float64](),
		"bool":    reflect.TypeFor[bool](),
		"string":  reflect.TypeFor[string](),
		"pointer": pointerType,
		"entity":  entityType,
	}
)

// TypeOf maps a manifest type name to the Go type it is planned as.
func TypeOf(name string) (reflect.Type, error) {
	name = strings.TrimSpace(name)
	if t, ok := scalarTypes[name]; ok {
		return t, nil
	}
	if inner, ok := strings.CutPrefix(name, "list<"); ok {
		if inner, ok = strings.CutSuffix(inner, ">"); ok {
			et, ok := scalarTypes[strings.TrimSpace(inner)]
			if ok && et.Kind() != reflect.String {
				return reflect.SliceOf(et), nil
			}
		}
	}
	return nil, errors.New(errors.PhaseLoad, errors.KindUnsupportedType).
		Tag(name).
		Detail("unknown field type").
		Build()
}

// TypeName is the manifest type name of a planned field.
func TypeName(f schema.FieldSpec) string {
	switch {
	case f.Type == entityType:
		return "entity"
	case f.Repr == schema.ReprSequence:
		elem := f.Elem.String()
		if f.Type.Elem() == entityType {
			elem = "entity"
		}
		return fmt.Sprintf("list<%s>", elem)
	default:
		return f.Tag.String()
	}
}

// FromSchemas builds a manifest describing ss.
func FromSchemas(ss ...*schema.Schema) *Manifest {
	m := &Manifest{Components: make([]Component, len(ss))}
	for i, s := range ss {
		c := Component{Name: s.Name(), Fields: make([]Field, s.Len())}
		for j, f := range s.Fields() {
			c.Fields[j] = Field{Name: f.Name, Type: TypeName(f)}
		}
		m.Components[i] = c
		if i == 0 {
			m.Width = uint32(s.Width())
		}
	}
	return m
}

// Marshal renders the manifest as indented JSON.
func (m *Manifest) Marshal() ([]byte, error) {
	return json.MarshalIndent(m, "", "  ")
}
