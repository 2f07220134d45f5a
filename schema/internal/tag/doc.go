// Package tag defines the closed set of field type tags.
//
// Every declared field maps to exactly one Tag. Tags travel to the external
// registry as single bytes, so their numeric values are fixed by declaration
// order here.
//
// This package is internal to schema.
package tag
