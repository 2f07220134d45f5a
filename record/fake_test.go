package record

import (
	ecslayout "github.com/wippyai/ecs-layout"
)

// fakeStore keeps one typed value per (handle, offset) and counts releases.
type fakeStore struct {
	cells    map[ecslayout.Handle]map[uint32]any
	released map[ecslayout.Handle]int
	fail     any // panicked with by SetString when non-nil
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		cells:    make(map[ecslayout.Handle]map[uint32]any),
		released: make(map[ecslayout.Handle]int),
	}
}

func cell[T any](f *fakeStore, h ecslayout.Handle, off uint32) T {
	v, _ := f.cells[h][off].(T)
	return v
}

func (f *fakeStore) put(h ecslayout.Handle, off uint32, v any) {
	c, ok := f.cells[h]
	if !ok {
		c = make(map[uint32]any)
		f.cells[h] = c
	}
	c[off] = v
}

func (f *fakeStore) Release(h ecslayout.Handle) bool {
	f.released[h]++
	delete(f.cells, h)
	return f.released[h] == 1
}

func (f *fakeStore) GetU8(h ecslayout.Handle, o uint32) uint8          { return cell[uint8](f, h, o) }
func (f *fakeStore) GetU16(h ecslayout.Handle, o uint32) uint16        { return cell[uint16](f, h, o) }
func (f *fakeStore) GetU32(h ecslayout.Handle, o uint32) uint32        { return cell[uint32](f, h, o) }
func (f *fakeStore) GetU64(h ecslayout.Handle, o uint32) uint64        { return cell[uint64](f, h, o) }
func (f *fakeStore) GetI8(h ecslayout.Handle, o uint32) int8           { return cell[int8](f, h, o) }
func (f *fakeStore) GetI16(h ecslayout.Handle, o uint32) int16         { return cell[int16](f, h, o) }
func (f *fakeStore) GetI32(h ecslayout.Handle, o uint32) int32         { return cell[int32](f, h, o) }
func (f *fakeStore) GetI64(h ecslayout.Handle, o uint32) int64         { return cell[int64](f, h, o) }
func (f *fakeStore) GetF32(h ecslayout.Handle, o uint32) float32       { return cell[float32](f, h, o) }
func (f *fakeStore) GetF64(h ecslayout.Handle, o uint32) float64       { return cell[float64](f, h, o) }
func (f *fakeStore) GetBool(h ecslayout.Handle, o uint32) bool         { return cell[bool](f, h, o) }
func (f *fakeStore) GetPointer(h ecslayout.Handle, o uint32) uint64    { return cell[uint64](f, h, o) }
func (f *fakeStore) GetString(h ecslayout.Handle, o uint32) string     { return cell[string](f, h, o) }
func (f *fakeStore) GetList(h ecslayout.Handle, o uint32) []byte       { return cell[[]byte](f, h, o) }
func (f *fakeStore) SetU8(h ecslayout.Handle, o uint32, v uint8)       { f.put(h, o, v) }
func (f *fakeStore) SetU16(h ecslayout.Handle, o uint32, v uint16)     { f.put(h, o, v) }
func (f *fakeStore) SetU32(h ecslayout.Handle, o uint32, v uint32)     { f.put(h, o, v) }
func (f *fakeStore) SetU64(h ecslayout.Handle, o uint32, v uint64)     { f.put(h, o, v) }
func (f *fakeStore) SetI8(h ecslayout.Handle, o uint32, v int8)        { f.put(h, o, v) }
func (f *fakeStore) SetI16(h ecslayout.Handle, o uint32, v int16)      { f.put(h, o, v) }
func (f *fakeStore) SetI32(h ecslayout.Handle, o uint32, v int32)      { f.put(h, o, v) }
func (f *fakeStore) SetI64(h ecslayout.Handle, o uint32, v int64)      { f.put(h, o, v) }
func (f *fakeStore) SetF32(h ecslayout.Handle, o uint32, v float32)    { f.put(h, o, v) }
func (f *fakeStore) SetF64(h ecslayout.Handle, o uint32, v float64)    { f.put(h, o, v) }
func (f *fakeStore) SetBool(h ecslayout.Handle, o uint32, v bool)      { f.put(h, o, v) }
func (f *fakeStore) SetPointer(h ecslayout.Handle, o uint32, v uint64) { f.put(h, o, v) }
func (f *fakeStore) SetList(h ecslayout.Handle, o uint32, v []byte)    { f.put(h, o, v) }

func (f *fakeStore) SetString(h ecslayout.Handle, o uint32, v string) {
	if f.fail != nil {
		panic(f.fail)
	}
	f.put(h, o, v)
}

var (
	_ ecslayout.Members  = (*fakeStore)(nil)
	_ ecslayout.Releaser = (*fakeStore)(nil)
)
