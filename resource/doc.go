// Package resource provides the descriptor handle table used by stores.
//
// A store allocates a block for every component it attaches and inserts a
// descriptor for that block here. The returned Handle is what a record
// holds and what every member primitive is addressed by.
//
//	table := resource.NewTable()
//
//	// Insert a descriptor, get a handle
//	h, err := table.Insert(typeID, block)
//
//	// Retrieve it by handle
//	value, ok := table.Get(h)
//
//	// Release it; the second call reports false
//	table.Release(h) // true
//	table.Release(h) // false
//
// # Exactly-Once Release
//
// Release invalidates the handle before dropping the descriptor. A value
// implementing Dropper has Drop called exactly once. Slots are reused, but
// each reuse bumps an 8-bit generation encoded in the handle's top byte, so
// a stale handle does not resolve to the slot's new occupant.
//
// # Observers
//
// Register observers to track lifecycle events:
//
//	table.Subscribe(resource.ObserverFunc(func(e resource.Event) {
//	    log.Printf("descriptor %d %s", e.Handle, e.Type)
//	}))
package resource
