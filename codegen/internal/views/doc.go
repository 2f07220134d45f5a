// Package views holds typed views generated from components.json. The
// codegen tests regenerate it and fail when the committed file drifts.
package views

//go:generate go run ../../../cmd/ecslayout -manifest components.json -width 8 -gen views -out views_gen.go
