package schema

import (
	"reflect"
	"strings"
	"sync"
	"unicode"

	"github.com/wippyai/ecs-layout/errors"
)

type cacheKey struct {
	goType reflect.Type
	width  Width
}

var cache sync.Map // cacheKey -> *Schema

// Compile plans the struct type T under width w. Results are cached per
// (type, width), so repeated calls return the same *Schema.
func Compile[T any](w Width) (*Schema, error) {
	return CompileType(reflect.TypeFor[T](), w)
}

// CompileType is Compile for a reflect.Type. Pointer types are dereferenced.
// The record name is the Go type name.
func CompileType(t reflect.Type, w Width) (*Schema, error) {
	if t == nil {
		return nil, errors.InvalidInput(errors.PhaseDeclare, "type cannot be nil")
	}
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	key := cacheKey{goType: t, width: w}
	if cached, ok := cache.Load(key); ok {
		return cached.(*Schema), nil
	}

	s, err := CompileNamed(t, t.Name(), w)
	if err != nil {
		return nil, err
	}

	actual, _ := cache.LoadOrStore(key, s)
	return actual.(*Schema), nil
}

// CompileNamed plans t under an explicit record name. It is not cached.
func CompileNamed(t reflect.Type, name string, w Width) (*Schema, error) {
	if t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	decls, err := DeclsOf(t)
	if err != nil {
		return nil, err
	}
	s, err := Declare(name, decls, w)
	if err != nil {
		return nil, err
	}
	s.goType = t
	return s, nil
}

// DeclsOf derives field declarations from a struct type. The field name is
// the `ecs:"name"` tag, else the snake_case Go name. `ecs:"-"` and
// unexported fields are skipped.
func DeclsOf(t reflect.Type) ([]Decl, error) {
	if t == nil || t.Kind() != reflect.Struct {
		goType := "<nil>"
		if t != nil {
			goType = t.String()
		}
		return nil, errors.New(errors.PhaseDeclare, errors.KindUnsupportedType).
			GoType(goType).
			Detail("record must be a struct").
			Build()
	}

	decls := make([]Decl, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		name := sf.Tag.Get("ecs")
		if name == "-" {
			continue
		}
		if name == "" {
			name = SnakeCase(sf.Name)
		}
		decls = append(decls, Decl{Name: name, Type: sf.Type, Index: sf.Index})
	}
	return decls, nil
}

// SnakeCase converts a Go identifier to lower snake case. Runs of capitals
// are kept together: "HTTPPort" becomes "http_port".
func SnakeCase(s string) string {
	runes := []rune(s)
	var b strings.Builder
	b.Grow(len(s) + 4)

	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 {
				prev := runes[i-1]
				nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
				if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
					b.WriteByte('_')
				}
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
