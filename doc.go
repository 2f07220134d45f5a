// Package ecslayout computes binary layouts for ECS component records and
// accesses their fields directly through store-owned memory.
//
// A component kind is declared once as an ordered list of named, typed
// fields. The declaration is planned into byte offsets with natural
// alignment, turned into per-field accessors, and registered with an
// external component registry as (name, field names, one-byte type tags).
// Two modules that declare the same fields in the same order under the same
// pointer width always agree on every offset.
//
// # Architecture Overview
//
//	ecslayout/           Root package with shared identifiers and store contracts
//	├── schema/          Type classification and layout planning
//	├── accessor/        Per-field read/write operations over Members
//	├── record/          Component kinds and handle-backed record views
//	├── registry/        Registration emitter and a reference registry
//	├── resource/        Descriptor handle table with exactly-once release
//	├── store/           Reference external stores (heap, wasm linear memory)
//	├── query/           Fixed-arity component queries
//	├── codegen/         Go source generation for typed record views
//	├── manifest/        JSON schema manifests
//	├── errors/          Structured error types
//	├── internal/abi/    Alignment and overflow-checked arithmetic
//	└── cmd/ecslayout/   Layout planner, generator and registrar CLI
//
// # Quick Start
//
//	type Position struct {
//	    X uint32 `ecs:"x"`
//	    Y uint32 `ecs:"y"`
//	}
//
//	st, err := heap.New()
//	kind := record.MustDeclare[Position]()
//	id, err := kind.Register(st)
//
//	e := st.NewEntity()
//	rec, err := st.Add(e, id, kind.New())
//	defer rec.Release()
//
//	err = rec.Set("x", uint32(10))
//	x := record.Value(rec, record.MustField[uint32](kind, "x"))
//
// The cmd/ecslayout tool plans JSON manifests, generates typed views from
// them and registers them with redis or SQLite backed schema storage.
//
// # Memory Model
//
// Field values live only behind the record's handle; a Record is a view,
// never a copy. Text and sequence fields occupy one pointer-width slot that
// references a separately owned payload. Writing such a field moves the
// payload into the store, which releases the previous payload before the
// call returns. Reading returns a copy owned by the caller.
//
// # Thread Safety
//
// Schemas are immutable and safe for concurrent use. Records are not; the
// store that hands them out owns concurrency control.
package ecslayout
