//go:build !wasm

package schema

import "unsafe"

// TargetWidth is the pointer width of the compilation target.
const TargetWidth = Width(unsafe.Sizeof(uintptr(0)))
