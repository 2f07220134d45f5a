package codegen

import (
	"bytes"
	"go/format"
	"go/token"
	"reflect"
	"strings"
	"text/template"
	"unicode"

	ecslayout "github.com/wippyai/ecs-layout"
	"github.com/wippyai/ecs-layout/errors"
	"github.com/wippyai/ecs-layout/schema"
)

var entityType = reflect.TypeFor[ecslayout.EntityID]()

// Options configures generated source.
type Options struct {
	// Package is the package clause of the generated file.
	Package string
	// Source names the input in the generated header, such as a manifest path.
	Source string
}

type fileData struct {
	Package string
	Source  string
	Views   []viewData
	NeedSeq bool
}

type viewData struct {
	Name        string
	Component   string
	Width       uint32
	Size        uint32
	Align       uint32
	Fingerprint string
	Fields      []fieldData
}

type fieldData struct {
	Name    string
	Field   string
	Tag     string
	GoType  string
	Elem    string
	ElemTag string
	Get     string
	Set     string
	Offset  uint32
	Seq     bool
	Convert bool
}

var fileTmpl = template.Must(template.New("file").Parse(`// Code generated by ecslayout. DO NOT EDIT.
{{- if .Source}}
// Source: {{.Source}}
{{- end}}

package {{.Package}}

import (
	ecslayout "github.com/wippyai/ecs-layout"
{{- if .NeedSeq}}
	"github.com/wippyai/ecs-layout/accessor"
	"github.com/wippyai/ecs-layout/schema"
{{- end}}
)
{{range .Views}}{{$v := .}}
// {{.Name}} layout, planned for {{.Width}}-byte pointers.
const (
	{{.Name}}Size        uint32 = {{.Size}}
	{{.Name}}Align       uint32 = {{.Align}}
	{{.Name}}Fingerprint        = "{{.Fingerprint}}"
)

// {{.Name}} field offsets.
const (
{{- range .Fields}}
	{{$v.Name}}Offset{{.Name}} uint32 = {{.Offset}} // {{.Field}}: {{.Tag}}
{{- end}}
)

// {{.Name}}View reads and writes a {{.Component}} block through a store's
// member primitives at constant offsets.
type {{.Name}}View struct {
	m ecslayout.Members
	h ecslayout.Handle
}

func New{{.Name}}View(m ecslayout.Members, h ecslayout.Handle) {{.Name}}View {
	return {{.Name}}View{m: m, h: h}
}

func (v {{.Name}}View) Handle() ecslayout.Handle { return v.h }
{{range .Fields}}
{{- if .Seq}}
func (v {{$v.Name}}View) {{.Name}}() []{{.Elem}} {
	return accessor.ReadSeq[{{.Elem}}](v.m, v.h, {{$v.Name}}Offset{{.Name}}, schema.{{.ElemTag}})
}

func (v {{$v.Name}}View) Set{{.Name}}(x []{{.Elem}}) {
	accessor.WriteSeq(v.m, v.h, {{$v.Name}}Offset{{.Name}}, schema.{{.ElemTag}}, x)
}
{{- else if .Convert}}
func (v {{$v.Name}}View) {{.Name}}() {{.GoType}} {
	return {{.GoType}}(v.m.{{.Get}}(v.h, {{$v.Name}}Offset{{.Name}}))
}

func (v {{$v.Name}}View) Set{{.Name}}(x {{.GoType}}) {
	v.m.{{.Set}}(v.h, {{$v.Name}}Offset{{.Name}}, uint64(x))
}
{{- else}}
func (v {{$v.Name}}View) {{.Name}}() {{.GoType}} {
	return v.m.{{.Get}}(v.h, {{$v.Name}}Offset{{.Name}})
}

func (v {{$v.Name}}View) Set{{.Name}}(x {{.GoType}}) {
	v.m.{{.Set}}(v.h, {{$v.Name}}Offset{{.Name}}, x)
}
{{- end}}
{{end}}{{end}}`))

var members = [...]string{
	schema.TagU8:      "U8",
	schema.TagU16:     "U16",
	schema.TagU32:     "U32",
	schema.TagU64:     "U64",
	schema.TagI8:      "I8",
	schema.TagI16:     "I16",
	schema.TagI32:     "I32",
	schema.TagI64:     "I64",
	schema.TagF32:     "F32",
	schema.TagF64:     "F64",
	schema.TagBool:    "Bool",
	schema.TagString:  "String",
	schema.TagPointer: "Pointer",
}

var goTypes = [...]string{
	schema.TagU8:      "uint8",
	schema.TagU16:     "uint16",
	schema.TagU32:     "uint32",
	schema.TagU64:     "uint64",
	schema.TagI8:      "int8",
	schema.TagI16:     "int16",
	schema.TagI32:     "int32",
	schema.TagI64:     "int64",
	schema.TagF32:     "float32",
	schema.TagF64:     "float64",
	schema.TagBool:    "bool",
	schema.TagString:  "string",
	schema.TagPointer: "ecslayout.Pointer",
}

var tagConsts = [...]string{
	schema.TagU8:      "TagU8",
	schema.TagU16:     "TagU16",
	schema.TagU32:     "TagU32",
	schema.TagU64:     "TagU64",
	schema.TagI8:      "TagI8",
	schema.TagI16:     "TagI16",
	schema.TagI32:     "TagI32",
	schema.TagI64:     "TagI64",
	schema.TagF32:     "TagF32",
	schema.TagF64:     "TagF64",
	schema.TagBool:    "TagBool",
	schema.TagString:  "TagString",
	schema.TagPointer: "TagPointer",
}

// Generate renders one typed view per schema as a gofmt-formatted Go file.
func Generate(opts Options, ss ...*schema.Schema) ([]byte, error) {
	if !token.IsIdentifier(opts.Package) {
		return nil, errors.InvalidInput(errors.PhaseGenerate, "invalid package name "+quote(opts.Package))
	}
	if len(ss) == 0 {
		return nil, errors.InvalidInput(errors.PhaseGenerate, "no components to generate")
	}

	data := fileData{Package: opts.Package, Source: opts.Source}
	seen := make(map[string]string, len(ss))
	for _, s := range ss {
		v, err := view(s)
		if err != nil {
			return nil, err
		}
		if other, dup := seen[v.Name]; dup {
			return nil, errors.New(errors.PhaseGenerate, errors.KindDuplicateField).
				Path(s.Name()).
				Detail("view name %s already used by %s", v.Name, other).
				Build()
		}
		seen[v.Name] = s.Name()
		for _, f := range v.Fields {
			data.NeedSeq = data.NeedSeq || f.Seq
		}
		data.Views = append(data.Views, v)
	}

	var buf bytes.Buffer
	if err := fileTmpl.Execute(&buf, data); err != nil {
		return nil, errors.Wrap(errors.PhaseGenerate, errors.KindInvalidData, err, "execute template")
	}
	out, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, errors.Wrap(errors.PhaseGenerate, errors.KindInvalidData, err, "format generated source")
	}
	return out, nil
}

func view(s *schema.Schema) (viewData, error) {
	v := viewData{
		Name:        Exported(s.Name()),
		Component:   s.Name(),
		Width:       uint32(s.Width()),
		Size:        s.Size(),
		Align:       s.Align(),
		Fingerprint: s.FingerprintHex(),
	}
	if v.Name == "" {
		return viewData{}, errors.InvalidInput(errors.PhaseGenerate, "component name "+quote(s.Name())+" has no identifier form")
	}

	methods := make(map[string]string, 2*s.Len())
	for _, f := range s.Fields() {
		fd := fieldData{
			Name:   Exported(f.Name),
			Field:  f.Name,
			Tag:    f.Tag.String(),
			Offset: f.Offset,
		}
		if fd.Name == "" || fd.Name == "Handle" {
			return viewData{}, errors.New(errors.PhaseGenerate, errors.KindInvalidInput).
				Path(s.Name(), f.Name).
				Detail("field name has no usable method form").
				Build()
		}
		// a field named set_x has the getter SetX, which is also x's setter
		for _, method := range []string{fd.Name, "Set" + fd.Name} {
			if other, dup := methods[method]; dup {
				return viewData{}, errors.New(errors.PhaseGenerate, errors.KindDuplicateField).
					Path(s.Name(), f.Name).
					Detail("method %s also generated for field %s", method, other).
					Build()
			}
		}
		methods[fd.Name] = f.Name
		methods["Set"+fd.Name] = f.Name

		switch {
		case f.Repr == schema.ReprSequence:
			fd.Seq = true
			fd.Elem = goTypes[f.Elem]
			fd.ElemTag = tagConsts[f.Elem]
			fd.Tag = "list<" + f.Elem.String() + ">"
			if f.Elem == schema.TagPointer && f.Type.Elem() == entityType {
				fd.Elem = "ecslayout.EntityID"
			}
		case f.Tag == schema.TagPointer:
			fd.Convert = true
			fd.GoType = "ecslayout.Pointer"
			if f.Type == entityType {
				fd.GoType = "ecslayout.EntityID"
			}
			fd.Get = "Get" + members[f.Tag]
			fd.Set = "Set" + members[f.Tag]
		default:
			fd.GoType = goTypes[f.Tag]
			fd.Get = "Get" + members[f.Tag]
			fd.Set = "Set" + members[f.Tag]
		}
		v.Fields = append(v.Fields, fd)
	}
	return v, nil
}

// Exported turns a component or field name into an exported Go
// identifier: "segment_count" becomes "SegmentCount". It returns "" when
// nothing usable remains.
func Exported(name string) string {
	var b strings.Builder
	upper := true
	for _, r := range name {
		switch {
		case r == '_' || r == '-' || r == ' ' || r == '.':
			upper = true
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if b.Len() == 0 && unicode.IsDigit(r) {
				b.WriteByte('X')
			}
			if upper {
				r = unicode.ToUpper(r)
				upper = false
			}
			b.WriteRune(r)
		}
	}
	out := b.String()
	if !token.IsIdentifier(out) || !token.IsExported(out) {
		return ""
	}
	return out
}

func quote(s string) string {
	return "\"" + s + "\""
}
