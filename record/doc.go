// Package record turns a declared struct type into a component kind and
// provides the record view stores hand out for it.
//
// A Kind is planned once and shared; a Record is a thin view holding an
// identity header (entity, component type, singleton flag, instance id)
// and the handle of a store-owned block. Field values never live in the
// Record itself.
//
// Record lifecycle:
//
//	kind.New()      default: zero header, no handle
//	store.Add(...)  attached: Attach populates the handle exactly once
//	rec.Release()   released: handle returned to its owner and nulled
//
// Dynamic access (Get, Set, Values, Load, Store) returns a null handle
// error on a record that is not attached. Typed access through Value and
// Put skips all checks on the hot path and panics instead.
package record
