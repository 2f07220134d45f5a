// Package errors provides structured error types for ecs-layout.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error
// category). Declaration-time failures (unsupported field types, too many
// query terms, duplicate fields) surface in PhaseDeclare and abort schema
// compilation. Runtime failures (unknown names, access without a handle)
// surface in PhaseRegister, PhaseAccess and PhaseAttach.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseDeclare, errors.KindUnsupportedType).
//		Path("Position", "x").
//		GoType("complex64").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.NotFound(errors.PhaseRegister, "component", "Position")
//	err := errors.NullHandle("Position")
//
// Sentinels match on Kind alone:
//
//	if errors.Is(err, errors.ErrNotFound) { ... }
package errors
