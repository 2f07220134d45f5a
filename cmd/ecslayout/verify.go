package main

import (
	"context"
	"fmt"
	"io"
	"reflect"

	"github.com/wippyai/ecs-layout/record"
	"github.com/wippyai/ecs-layout/schema"
	"github.com/wippyai/ecs-layout/store"
	"github.com/wippyai/ecs-layout/store/heap"
	"github.com/wippyai/ecs-layout/store/linear"
)

// openStore picks the backing memory for a width: a wasm32 linear memory
// for 4-byte pointers, a Go heap arena otherwise.
func openStore(ctx context.Context, w schema.Width) (*store.Store, func(), error) {
	if w == schema.Width32 {
		ls, err := linear.New(ctx)
		if err != nil {
			return nil, nil, err
		}
		return ls.Store, func() { ls.Close(ctx) }, nil
	}
	st, err := heap.New(heap.WithWidth(w))
	if err != nil {
		return nil, nil, err
	}
	return st, func() { st.Close() }, nil
}

// verify attaches one record per schema, writes a sample value into every
// field, reads it back and releases the record. Any payload still live
// afterwards is reported as a leak.
func verify(ctx context.Context, out io.Writer, ss []*schema.Schema) error {
	if len(ss) == 0 {
		return nil
	}
	st, done, err := openStore(ctx, ss[0].Width())
	if err != nil {
		return err
	}
	defer done()

	for _, s := range ss {
		if err := roundTrip(st, s); err != nil {
			return fmt.Errorf("%s (width %d): %w", s.Name(), s.Width(), err)
		}
		fmt.Fprintf(out, "ok   %-20s width %d  %d fields\n", s.Name(), s.Width(), s.Len())
	}

	if stats := st.Stats(); stats.Blocks != 0 || stats.LiveBytes != 0 {
		return fmt.Errorf("leak: %d blocks and %d bytes still live", stats.Blocks, stats.LiveBytes)
	}
	return nil
}

func roundTrip(st *store.Store, s *schema.Schema) error {
	kind := record.FromSchema(s)
	id, err := kind.Register(st)
	if err != nil {
		return err
	}
	rec, err := st.Add(st.NewEntity(), id, kind.New())
	if err != nil {
		return err
	}
	defer rec.Release()

	for i, f := range s.Fields() {
		want := sample(f.Type, i).Interface()
		if err := rec.Set(f.Name, want); err != nil {
			return err
		}
		got, err := rec.Get(f.Name)
		if err != nil {
			return err
		}
		if !reflect.DeepEqual(got, want) {
			return fmt.Errorf("field %s: wrote %v, read %v", f.Name, want, got)
		}
	}
	return nil
}

// sample returns a non-zero value of t that differs per field index.
func sample(t reflect.Type, i int) reflect.Value {
	v := reflect.New(t).Elem()
	switch t.Kind() {
	case reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v.SetUint(uint64(i + 1))
	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v.SetInt(-int64(i + 1))
	case reflect.Float32, reflect.Float64:
		v.SetFloat(float64(i) + 0.5)
	case reflect.Bool:
		v.SetBool(true)
	case reflect.String:
		v.SetString(fmt.Sprintf("sample-%d", i))
	case reflect.Slice:
		v = reflect.MakeSlice(t, 3, 3)
		for j := 0; j < 3; j++ {
			v.Index(j).Set(sample(t.Elem(), i+j))
		}
	}
	return v
}
