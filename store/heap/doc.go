// Package heap provides an external component store whose memory is a
// growable byte slice on the Go heap.
//
// The slot width is configurable, so one process can host stores that
// lay components out the way a 32-bit and a 64-bit module would:
//
//	st32, _ := heap.New(heap.WithWidth(schema.Width32))
//	st64, _ := heap.New(heap.WithWidth(schema.Width64))
package heap
