// Package registry emits component registrations and provides an
// in-process reference registry.
//
// The external registry contract is two calls:
//
//	RegisterComponent(name, fieldNames, tags) -> TypeID
//	ComponentID(name) -> TypeID
//
// Register sends a planned schema through that contract; Lookup resolves a
// name and fails with a not-found error if it was never registered.
// Registries that also implement LayoutRegistrar receive the full layout
// after the three-argument call, which is how the reference stores learn
// block sizes and sequence element types that tags alone do not carry.
//
// # Local Registry
//
// Local assigns ids from 1 in registration order:
//
//	reg := registry.NewLocal()
//	id, err := registry.Register(reg, s)
//	same, err := registry.Lookup(reg, "Position") // same == id
//
// Re-registering an identical schema returns the existing id. A different
// field list under a known name fails with errors.ErrSchemaMismatch.
//
// With WithStorage, registrations are checked against and persisted to a
// SchemaStorage so independently started processes agree on shapes. See
// the redisstore and sqlitestore subpackages.
package registry
