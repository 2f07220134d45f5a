// Package linear provides an external component store backed by a wasm32
// linear memory running in wazero.
//
// Component blocks are laid out exactly as a 32-bit guest would lay them
// out, so a guest module sharing the memory reads the same offsets:
//
//	st, err := linear.New(ctx, linear.WithPages(1, 16))
//	defer st.Close(ctx)
//
//	id, err := kind.Register(st)
//	rec, err := st.Add(st.NewEntity(), id, kind.New())
package linear
