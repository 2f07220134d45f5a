//go:build wasm

package schema

// TargetWidth is the pointer width of the compilation target.
const TargetWidth = Width32
