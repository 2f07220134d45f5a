// Package codegen renders typed component views as Go source.
//
// For each schema it emits size, alignment, fingerprint and per-field
// offset constants, plus a <Name>View that wraps a member primitive table
// and a handle with one getter and setter per field. Offsets are baked in
// at generation time, so a view is only valid against a store planned for
// the same pointer width; compare the Fingerprint constant with the
// registered layout to detect drift.
package codegen
