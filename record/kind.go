package record

import (
	"reflect"
	"sync/atomic"

	ecslayout "github.com/wippyai/ecs-layout"
	"github.com/wippyai/ecs-layout/accessor"
	"github.com/wippyai/ecs-layout/errors"
	"github.com/wippyai/ecs-layout/registry"
	"github.com/wippyai/ecs-layout/schema"
)

// Kind is one declared record kind: its planned schema and the accessors
// generated from it. A Kind is immutable and shared by all its records.
type Kind struct {
	schema *schema.Schema
	acc    []accessor.Accessor
}

type options struct {
	name  string
	width schema.Width
}

// Option configures Declare.
type Option func(*options)

// WithWidth plans the kind for a pointer width other than the target's.
func WithWidth(w schema.Width) Option {
	return func(o *options) { o.width = w }
}

// WithName registers the kind under a name other than the Go type name.
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

// Declare plans the struct type T into a Kind. Field names come from the
// `ecs` struct tag, else the snake_case Go field name.
func Declare[T any](opts ...Option) (*Kind, error) {
	o := options{width: schema.TargetWidth}
	for _, opt := range opts {
		opt(&o)
	}

	t := reflect.TypeFor[T]()
	var (
		s   *schema.Schema
		err error
	)
	if o.name == "" {
		s, err = schema.CompileType(t, o.width)
	} else {
		s, err = schema.CompileNamed(t, o.name, o.width)
	}
	if err != nil {
		return nil, err
	}
	return FromSchema(s), nil
}

// MustDeclare is Declare that panics on error, for package-level kinds.
func MustDeclare[T any](opts ...Option) *Kind {
	k, err := Declare[T](opts...)
	if err != nil {
		panic(err)
	}
	return k
}

// FromSchema wraps an already planned schema, such as one loaded from a
// manifest or rebuilt from registration metadata.
func FromSchema(s *schema.Schema) *Kind {
	return &Kind{
		schema: s,
		acc:    accessor.Generate(s),
	}
}

func (k *Kind) Schema() *schema.Schema { return k.schema }

func (k *Kind) Name() string { return k.schema.Name() }

// Accessors returns the generated per-field operations.
func (k *Kind) Accessors() []accessor.Accessor { return k.acc }

var nextInstance atomic.Uint64

// New returns a default-constructed record: zero header, no handle. It
// does not plan anything; the layout was fixed when the kind was declared.
func (k *Kind) New() *Record {
	return &Record{
		kind: k,
		id:   nextInstance.Add(1),
	}
}

// Register sends the kind's name, field names and tags to reg.
func (k *Kind) Register(reg registry.Registry) (ecslayout.TypeID, error) {
	return registry.Register(reg, k.schema)
}

// ID looks up the kind's type id in reg.
func (k *Kind) ID(reg registry.Registry) (ecslayout.TypeID, error) {
	return registry.Lookup(reg, k.schema.Name())
}

// Field binds a typed accessor for one of the kind's fields.
func Field[V any](k *Kind, name string) (accessor.Field[V], error) {
	return accessor.For[V](k.schema, name)
}

// MustField is Field that panics on error.
func MustField[V any](k *Kind, name string) accessor.Field[V] {
	f, err := Field[V](k, name)
	if err != nil {
		panic(err)
	}
	return f
}

func (k *Kind) accessor(name string) (accessor.Accessor, error) {
	i := k.schema.Index(name)
	if i < 0 {
		return accessor.Accessor{}, errors.FieldMissing(errors.PhaseAccess, []string{k.schema.Name()}, name)
	}
	return k.acc[i], nil
}
