// Package plan computes field offsets for a record.
//
// The planner sees only an ordered list of (size, alignment) pairs. Names
// are carried for error reporting and never influence the result, so two
// independently compiled modules that classify the same ordered types under
// the same pointer width produce byte-identical offsets.
//
// This package is internal to schema.
package plan
