package record

import (
	"reflect"

	ecslayout "github.com/wippyai/ecs-layout"
	"github.com/wippyai/ecs-layout/accessor"
	"github.com/wippyai/ecs-layout/errors"
	"github.com/wippyai/ecs-layout/schema"
)

// Record is a view over one component's store-owned block. It holds the
// identity header and the handle; field values live only behind the
// handle.
type Record struct {
	kind      *Kind
	members   ecslayout.Members
	owner     ecslayout.Releaser
	entity    ecslayout.EntityID
	typeID    ecslayout.TypeID
	id        uint64
	handle    ecslayout.Handle
	singleton bool
	released  bool
}

func (r *Record) Kind() *Kind { return r.kind }

func (r *Record) Schema() *schema.Schema { return r.kind.schema }

// Entity is the owning entity, set by the store when the component is added.
func (r *Record) Entity() ecslayout.EntityID { return r.entity }

// Type is the component type id, set by the store.
func (r *Record) Type() ecslayout.TypeID { return r.typeID }

// ID is the process-unique instance id assigned at construction.
func (r *Record) ID() uint64 { return r.id }

func (r *Record) Handle() ecslayout.Handle { return r.handle }

func (r *Record) Singleton() bool { return r.singleton }

// Attached reports whether the record currently holds a usable handle.
func (r *Record) Attached() bool { return r.handle != 0 }

// Released reports whether the record's handle has been released.
func (r *Record) Released() bool { return r.released }

// Attach populates the handle. Stores call it exactly once, when the
// component is added; a record never constructs its own handle.
func (r *Record) Attach(h ecslayout.Handle, m ecslayout.Members, owner ecslayout.Releaser) error {
	if r.handle != 0 || r.released {
		return errors.AlreadyAttached(r.kind.Name())
	}
	if h == 0 || m == nil {
		return errors.New(errors.PhaseAttach, errors.KindInvalidInput).
			Path(r.kind.Name()).
			Detail("attach needs a non-zero handle and members").
			Build()
	}
	r.handle = h
	r.members = m
	r.owner = owner
	return nil
}

func (r *Record) SetEntityAdded(e ecslayout.EntityID) { r.entity = e }

func (r *Record) SetComponentType(id ecslayout.TypeID) { r.typeID = id }

func (r *Record) SetSingleton(v bool) { r.singleton = v }

// Release releases the handle through its owner and nulls it. Only the
// first call does anything; it reports whether this call released.
func (r *Record) Release() bool {
	if r.handle == 0 {
		return false
	}
	h, owner := r.handle, r.owner
	r.handle = 0
	r.members = nil
	r.owner = nil
	r.released = true
	if owner != nil {
		owner.Release(h)
	}
	return true
}

// Get reads a field by name.
func (r *Record) Get(name string) (v any, err error) {
	if r.handle == 0 {
		return nil, errors.NullHandle(r.kind.Name())
	}
	a, err := r.kind.accessor(name)
	if err != nil {
		return nil, err
	}
	defer recoverStore(&err)
	return a.Read(r.members, r.handle)
}

// Set writes a field by name. Text and sequence values are moved into
// the store.
func (r *Record) Set(name string, v any) (err error) {
	if r.handle == 0 {
		return errors.NullHandle(r.kind.Name())
	}
	a, err := r.kind.accessor(name)
	if err != nil {
		return err
	}
	defer recoverStore(&err)
	return a.Write(r.members, r.handle, v)
}

// Values reads every field, keyed by name.
func (r *Record) Values() (out map[string]any, err error) {
	if r.handle == 0 {
		return nil, errors.NullHandle(r.kind.Name())
	}
	defer recoverStore(&err)
	out = make(map[string]any, len(r.kind.acc))
	for _, a := range r.kind.acc {
		v, err := a.Read(r.members, r.handle)
		if err != nil {
			return nil, err
		}
		out[a.Field.Name] = v
	}
	return out, nil
}

// Value reads a field through a typed accessor. It panics with a null
// handle error if the record is not attached.
func Value[V any](r *Record, f accessor.Field[V]) V {
	if r.handle == 0 {
		panic(errors.NullHandle(r.kind.Name()))
	}
	return f.Get(r.members, r.handle)
}

// Put writes a field through a typed accessor. It panics with a null
// handle error if the record is not attached.
func Put[V any](r *Record, f accessor.Field[V], v V) {
	if r.handle == 0 {
		panic(errors.NullHandle(r.kind.Name()))
	}
	f.Set(r.members, r.handle, v)
}

// Load copies every field into a new T. T must be the struct the kind was
// declared from.
func Load[T any](r *Record) (out T, err error) {
	if err := r.checkGoType(reflect.TypeFor[T]()); err != nil {
		return out, err
	}
	if r.handle == 0 {
		return out, errors.NullHandle(r.kind.Name())
	}
	defer recoverStore(&err)

	rv := reflect.ValueOf(&out).Elem()
	for _, a := range r.kind.acc {
		v, err := a.Read(r.members, r.handle)
		if err != nil {
			return out, err
		}
		rv.FieldByIndex(a.Field.Index).Set(reflect.ValueOf(v))
	}
	return out, nil
}

// Store writes every field of v. T must be the struct the kind was
// declared from.
func Store[T any](r *Record, v T) (err error) {
	if err := r.checkGoType(reflect.TypeFor[T]()); err != nil {
		return err
	}
	if r.handle == 0 {
		return errors.NullHandle(r.kind.Name())
	}
	defer recoverStore(&err)

	rv := reflect.ValueOf(v)
	for _, a := range r.kind.acc {
		if err := a.Write(r.members, r.handle, rv.FieldByIndex(a.Field.Index).Interface()); err != nil {
			return err
		}
	}
	return nil
}

func (r *Record) checkGoType(t reflect.Type) error {
	if gt := r.kind.schema.GoType(); gt != t {
		name := "<none>"
		if gt != nil {
			name = gt.String()
		}
		return errors.New(errors.PhaseAccess, errors.KindTypeMismatch).
			Path(r.kind.Name()).
			GoType(t.String()).
			Detail("kind was declared from %s", name).
			Build()
	}
	return nil
}

// recoverStore turns a structured error panic raised by a store's member
// primitives into a returned error. Other panics propagate.
func recoverStore(err *error) {
	if p := recover(); p != nil {
		e, ok := p.(*errors.Error)
		if !ok {
			panic(p)
		}
		*err = e
	}
}
